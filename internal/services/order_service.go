package services

import (
	"fmt"
	"log"
	"time"

	"foodnova/internal/models"
	"foodnova/internal/repositories"
	"foodnova/pkg/sms"
)

// OrderItemCreate is one requested line: a product or a pack variant,
// never both.
type OrderItemCreate struct {
	ProductID     *uint `json:"product_id"`
	PackVariantID *uint `json:"pack_variant_id"`
	Qty           int   `json:"qty" validate:"gt=0"`
}

// OrderCreate is the order placement request.
type OrderCreate struct {
	Items           []OrderItemCreate `json:"items" validate:"required,min=1,dive"`
	DeliveryAddress string            `json:"delivery_address" validate:"required"`
	Phone           string            `json:"phone" validate:"required"`
	PaymentMethod   string            `json:"payment_method"`
}

// OrderResponse is the full order shape, including receipt state.
type OrderResponse struct {
	ID              uint               `json:"id"`
	UserID          uint               `json:"user_id"`
	Status          string             `json:"status"`
	TotalAmount     int64              `json:"total_amount"`
	DeliveryAddress string             `json:"delivery_address"`
	Phone           string             `json:"phone"`
	PaymentMethod   string             `json:"payment_method"`
	CreatedAt       time.Time          `json:"created_at"`
	Items           []models.OrderItem `json:"items"`
	HasReceipt      bool               `json:"has_receipt"`
	ReceiptID       *uint              `json:"receipt_id,omitempty"`
	ReceiptStatus   string             `json:"receipt_status,omitempty"`
	Payment         *models.Payment    `json:"payment,omitempty"`
}

// OrderListResponse is the compact order row for listings.
type OrderListResponse struct {
	ID          uint      `json:"id"`
	UserID      uint      `json:"user_id"`
	Status      string    `json:"status"`
	TotalAmount int64     `json:"total_amount"`
	CreatedAt   time.Time `json:"created_at"`
	ItemCount   int       `json:"item_count"`
}

// allowedTransitions is the order status graph. Delivered and cancelled
// are terminal.
var allowedTransitions = map[string][]string{
	models.OrderStatusPending:        {models.OrderStatusConfirmed, models.OrderStatusCancelled},
	models.OrderStatusConfirmed:      {models.OrderStatusOutForDelivery, models.OrderStatusCancelled},
	models.OrderStatusOutForDelivery: {models.OrderStatusDelivered, models.OrderStatusCancelled},
	models.OrderStatusDelivered:      {},
	models.OrderStatusCancelled:      {},
}

// OrderService handles order placement, listing and the status state
// machine, triggering SMS notifications at lifecycle transitions.
type OrderService struct {
	orderRepo   repositories.OrderRepository
	productRepo repositories.ProductRepository
	packRepo    repositories.PackRepository
	receiptRepo repositories.ReceiptRepository
	userRepo    repositories.UserRepository
	inventory   *InventoryService
	notifier    *sms.Service
}

// NewOrderService creates a new OrderService.
func NewOrderService(
	orderRepo repositories.OrderRepository,
	productRepo repositories.ProductRepository,
	packRepo repositories.PackRepository,
	receiptRepo repositories.ReceiptRepository,
	userRepo repositories.UserRepository,
	inventory *InventoryService,
	notifier *sms.Service,
) *OrderService {
	return &OrderService{
		orderRepo:   orderRepo,
		productRepo: productRepo,
		packRepo:    packRepo,
		receiptRepo: receiptRepo,
		userRepo:    userRepo,
		inventory:   inventory,
		notifier:    notifier,
	}
}

// Place creates an order for a user: every line snapshots its name and
// unit price, line totals sum into the order total, and all stock
// deductions commit atomically with the order rows. Any uncoverable
// deduction fails the whole order.
func (s *OrderService) Place(userID uint, req OrderCreate) (*OrderResponse, error) {
	if len(req.Items) == 0 {
		return nil, fmt.Errorf("order needs at least one item: %w", ErrInvalidInput)
	}

	paymentMethod := req.PaymentMethod
	if paymentMethod == "" {
		paymentMethod = "etransfer"
	}

	var (
		items      []models.OrderItem
		deductions []repositories.StockDeduction
		total      int64
	)
	for _, line := range req.Items {
		if line.Qty <= 0 {
			return nil, fmt.Errorf("item quantity must be positive: %w", ErrInvalidInput)
		}
		if (line.ProductID == nil) == (line.PackVariantID == nil) {
			return nil, fmt.Errorf("each item references exactly one product or pack variant: %w", ErrInvalidInput)
		}

		var item models.OrderItem
		switch {
		case line.ProductID != nil:
			product, err := s.productRepo.GetByID(*line.ProductID)
			if err != nil {
				return nil, err
			}
			if !product.IsActive {
				return nil, fmt.Errorf("product %d: %w", product.ID, ErrNotFound)
			}
			item = models.OrderItem{
				ProductID:    line.ProductID,
				NameSnapshot: product.Name,
				UnitPrice:    product.Price,
			}
			deductions = append(deductions, repositories.StockDeduction{
				ProductID: product.ID,
				Qty:       line.Qty,
			})
		default:
			variant, err := s.packRepo.GetVariant(*line.PackVariantID)
			if err != nil {
				return nil, err
			}
			pack, err := s.packRepo.GetByID(variant.PackID, false)
			if err != nil {
				return nil, err
			}
			if !pack.IsActive {
				return nil, fmt.Errorf("pack %d: %w", pack.ID, ErrNotFound)
			}
			item = models.OrderItem{
				PackVariantID: line.PackVariantID,
				NameSnapshot:  pack.Name + " - " + variant.Name,
				UnitPrice:     variant.Price,
			}
			// Ordering a bundle consumes the stock of its contents.
			for _, content := range variant.Items {
				deductions = append(deductions, repositories.StockDeduction{
					ProductID: content.ProductID,
					Qty:       content.Qty * line.Qty,
				})
			}
		}

		item.Qty = line.Qty
		item.LineTotal = item.UnitPrice * int64(line.Qty)
		total += item.LineTotal
		items = append(items, item)
	}

	order := &models.Order{
		UserID:          userID,
		Status:          models.OrderStatusPending,
		TotalAmount:     total,
		DeliveryAddress: req.DeliveryAddress,
		Phone:           req.Phone,
		PaymentMethod:   paymentMethod,
		Items:           items,
	}
	if err := s.orderRepo.Place(order, deductions); err != nil {
		return nil, err
	}

	s.notify(order, func(phone, name string) sms.Result {
		return s.notifier.OrderPlaced(phone, order.ID, name, order.TotalAmount)
	})

	resp := s.buildResponse(order)
	return &resp, nil
}

// ListMine returns the caller's orders, newest first.
func (s *OrderService) ListMine(userID uint) ([]OrderListResponse, error) {
	orders, err := s.orderRepo.GetByUser(userID)
	if err != nil {
		return nil, err
	}
	return toListResponses(orders), nil
}

// GetForUser returns one order if it belongs to the caller. Orders of
// other users are indistinguishable from missing ones.
func (s *OrderService) GetForUser(orderID, userID uint) (*OrderResponse, error) {
	order, err := s.orderRepo.GetByID(orderID)
	if err != nil {
		return nil, err
	}
	if order.UserID != userID {
		return nil, fmt.Errorf("order %d: %w", orderID, ErrNotFound)
	}
	resp := s.buildResponse(order)
	return &resp, nil
}

// ListAll returns every order for the admin view.
func (s *OrderService) ListAll() ([]OrderListResponse, error) {
	orders, err := s.orderRepo.GetAll()
	if err != nil {
		return nil, err
	}
	return toListResponses(orders), nil
}

// Get returns one order without ownership restriction (admin). The
// response carries the payment record so it can be verified by id.
func (s *OrderService) Get(orderID uint) (*OrderResponse, error) {
	order, err := s.orderRepo.GetByID(orderID)
	if err != nil {
		return nil, err
	}
	resp := s.buildResponse(order)
	if payment, err := s.receiptRepo.GetPaymentByOrder(order.ID); err == nil {
		resp.Payment = payment
	}
	return &resp, nil
}

// UpdateStatus moves an order through the lifecycle graph. Unknown
// statuses and unreachable transitions are rejected. Cancellation
// restores the stock the order consumed; confirmed and out-for-delivery
// transitions notify the customer.
func (s *OrderService) UpdateStatus(orderID uint, status string) (*OrderResponse, error) {
	if _, known := allowedTransitions[status]; !known {
		return nil, fmt.Errorf("unknown order status %q: %w", status, ErrInvalidInput)
	}

	order, err := s.orderRepo.GetByID(orderID)
	if err != nil {
		return nil, err
	}
	if !transitionAllowed(order.Status, status) {
		return nil, fmt.Errorf("cannot move order %d from %s to %s: %w",
			orderID, order.Status, status, ErrInvalidTransition)
	}

	if err := s.orderRepo.UpdateStatus(orderID, status); err != nil {
		return nil, err
	}
	order.Status = status

	switch status {
	case models.OrderStatusCancelled:
		s.restoreStock(order)
	case models.OrderStatusConfirmed:
		s.notify(order, func(phone, name string) sms.Result {
			return s.notifier.OrderConfirmed(phone, order.ID, name)
		})
	case models.OrderStatusOutForDelivery:
		s.notify(order, func(phone, name string) sms.Result {
			return s.notifier.OrderOutForDelivery(phone, order.ID, name)
		})
	}

	resp := s.buildResponse(order)
	return &resp, nil
}

func transitionAllowed(from, to string) bool {
	for _, next := range allowedTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// restoreStock gives back what the order consumed. Pack lines restore
// through the variant's current item list; a variant edited since the
// order restores its present contents.
func (s *OrderService) restoreStock(order *models.Order) {
	for _, item := range order.Items {
		switch {
		case item.ProductID != nil:
			if !s.inventory.RestoreStock(*item.ProductID, item.Qty) {
				log.Printf("could not restore %d units of product %d for cancelled order %d",
					item.Qty, *item.ProductID, order.ID)
			}
		case item.PackVariantID != nil:
			variant, err := s.packRepo.GetVariant(*item.PackVariantID)
			if err != nil {
				log.Printf("could not restore pack variant %d for cancelled order %d: %v",
					*item.PackVariantID, order.ID, err)
				continue
			}
			for _, content := range variant.Items {
				if !s.inventory.RestoreStock(content.ProductID, content.Qty*item.Qty) {
					log.Printf("could not restore %d units of product %d for cancelled order %d",
						content.Qty*item.Qty, content.ProductID, order.ID)
				}
			}
		}
	}
}

// notify sends an SMS for an order without ever failing the caller.
func (s *OrderService) notify(order *models.Order, send func(phone, name string) sms.Result) {
	if s.notifier == nil {
		return
	}
	name := "customer"
	if user, err := s.userRepo.GetByID(order.UserID); err == nil {
		name = user.FullName
	}
	send(order.Phone, name)
}

func (s *OrderService) buildResponse(order *models.Order) OrderResponse {
	resp := OrderResponse{
		ID:              order.ID,
		UserID:          order.UserID,
		Status:          order.Status,
		TotalAmount:     order.TotalAmount,
		DeliveryAddress: order.DeliveryAddress,
		Phone:           order.Phone,
		PaymentMethod:   order.PaymentMethod,
		CreatedAt:       order.CreatedAt,
		Items:           order.Items,
	}
	if resp.Items == nil {
		resp.Items = []models.OrderItem{}
	}
	if receipt, err := s.receiptRepo.GetByOrder(order.ID); err == nil {
		resp.HasReceipt = true
		resp.ReceiptID = &receipt.ID
		resp.ReceiptStatus = receipt.Status
	}
	return resp
}

func toListResponses(orders []models.Order) []OrderListResponse {
	result := make([]OrderListResponse, 0, len(orders))
	for _, order := range orders {
		result = append(result, OrderListResponse{
			ID:          order.ID,
			UserID:      order.UserID,
			Status:      order.Status,
			TotalAmount: order.TotalAmount,
			CreatedAt:   order.CreatedAt,
			ItemCount:   len(order.Items),
		})
	}
	return result
}
