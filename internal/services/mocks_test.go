package services_test

import (
	"foodnova/internal/models"
	"foodnova/internal/repositories"

	"github.com/stretchr/testify/mock"
)

// MockUserRepository is a mock implementation of repositories.UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(user *models.User) error {
	args := m.Called(user)
	return args.Error(0)
}

func (m *MockUserRepository) GetByEmail(email string) (*models.User, error) {
	args := m.Called(email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) GetByID(id uint) (*models.User, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

// MockProductRepository is a mock implementation of repositories.ProductRepository
type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) GetAll(activeOnly bool, categoryID *uint) ([]models.Product, error) {
	args := m.Called(activeOnly, categoryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Product), args.Error(1)
}

func (m *MockProductRepository) GetByID(id uint) (*models.Product, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Product), args.Error(1)
}

func (m *MockProductRepository) Create(product *models.Product) error {
	args := m.Called(product)
	return args.Error(0)
}

func (m *MockProductRepository) Update(product *models.Product) error {
	args := m.Called(product)
	return args.Error(0)
}

func (m *MockProductRepository) Delete(id uint) error {
	args := m.Called(id)
	return args.Error(0)
}

func (m *MockProductRepository) AdjustStock(id uint, delta int) error {
	args := m.Called(id, delta)
	return args.Error(0)
}

func (m *MockProductRepository) SetStock(id uint, qty int) error {
	args := m.Called(id, qty)
	return args.Error(0)
}

// MockPackRepository is a mock implementation of repositories.PackRepository
type MockPackRepository struct {
	mock.Mock
}

func (m *MockPackRepository) GetAll(activeOnly bool) ([]models.Pack, error) {
	args := m.Called(activeOnly)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Pack), args.Error(1)
}

func (m *MockPackRepository) GetByID(id uint, activeOnly bool) (*models.Pack, error) {
	args := m.Called(id, activeOnly)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Pack), args.Error(1)
}

func (m *MockPackRepository) Create(pack *models.Pack) error {
	args := m.Called(pack)
	return args.Error(0)
}

func (m *MockPackRepository) Update(pack *models.Pack) error {
	args := m.Called(pack)
	return args.Error(0)
}

func (m *MockPackRepository) Delete(id uint) error {
	args := m.Called(id)
	return args.Error(0)
}

func (m *MockPackRepository) GetVariant(id uint) (*models.PackVariant, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.PackVariant), args.Error(1)
}

func (m *MockPackRepository) AddVariant(variant *models.PackVariant) error {
	args := m.Called(variant)
	return args.Error(0)
}

func (m *MockPackRepository) UpdateVariant(variant *models.PackVariant) error {
	args := m.Called(variant)
	return args.Error(0)
}

func (m *MockPackRepository) DeleteVariant(id uint) error {
	args := m.Called(id)
	return args.Error(0)
}

func (m *MockPackRepository) AddItem(item *models.PackVariantItem) error {
	args := m.Called(item)
	return args.Error(0)
}

func (m *MockPackRepository) DeleteItem(id uint) error {
	args := m.Called(id)
	return args.Error(0)
}

// MockOrderRepository is a mock implementation of repositories.OrderRepository
type MockOrderRepository struct {
	mock.Mock
}

func (m *MockOrderRepository) GetAll() ([]models.Order, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Order), args.Error(1)
}

func (m *MockOrderRepository) GetByID(id uint) (*models.Order, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Order), args.Error(1)
}

func (m *MockOrderRepository) GetByUser(userID uint) ([]models.Order, error) {
	args := m.Called(userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Order), args.Error(1)
}

func (m *MockOrderRepository) Place(order *models.Order, deductions []repositories.StockDeduction) error {
	args := m.Called(order, deductions)
	return args.Error(0)
}

func (m *MockOrderRepository) UpdateStatus(id uint, status string) error {
	args := m.Called(id, status)
	return args.Error(0)
}

// MockReceiptRepository is a mock implementation of repositories.ReceiptRepository
type MockReceiptRepository struct {
	mock.Mock
}

func (m *MockReceiptRepository) GetByID(id uint) (*models.Receipt, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Receipt), args.Error(1)
}

func (m *MockReceiptRepository) GetByOrder(orderID uint) (*models.Receipt, error) {
	args := m.Called(orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Receipt), args.Error(1)
}

func (m *MockReceiptRepository) Create(receipt *models.Receipt) error {
	args := m.Called(receipt)
	return args.Error(0)
}

func (m *MockReceiptRepository) Update(receipt *models.Receipt) error {
	args := m.Called(receipt)
	return args.Error(0)
}

func (m *MockReceiptRepository) GetPaymentByID(id uint) (*models.Payment, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Payment), args.Error(1)
}

func (m *MockReceiptRepository) GetPaymentByOrder(orderID uint) (*models.Payment, error) {
	args := m.Called(orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Payment), args.Error(1)
}

func (m *MockReceiptRepository) UpdatePayment(payment *models.Payment) error {
	args := m.Called(payment)
	return args.Error(0)
}
