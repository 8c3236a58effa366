package services

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"foodnova/internal/models"
	"foodnova/internal/repositories"
	"foodnova/pkg/sms"
	"foodnova/pkg/storage"

	"github.com/google/uuid"
)

// allowedReceiptExts is the upload allow-list.
var allowedReceiptExts = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".webp": true,
	".pdf":  true,
}

// ReceiptService validates and stores uploaded payment receipts and
// handles admin review of receipts and payments.
type ReceiptService struct {
	receiptRepo repositories.ReceiptRepository
	orderRepo   repositories.OrderRepository
	userRepo    repositories.UserRepository
	driver      storage.Driver
	notifier    *sms.Service
	maxBytes    int
}

// NewReceiptService creates a new ReceiptService. maxUploadMB caps the
// accepted file size.
func NewReceiptService(
	receiptRepo repositories.ReceiptRepository,
	orderRepo repositories.OrderRepository,
	userRepo repositories.UserRepository,
	driver storage.Driver,
	notifier *sms.Service,
	maxUploadMB int,
) *ReceiptService {
	return &ReceiptService{
		receiptRepo: receiptRepo,
		orderRepo:   orderRepo,
		userRepo:    userRepo,
		driver:      driver,
		notifier:    notifier,
		maxBytes:    maxUploadMB * 1024 * 1024,
	}
}

// Upload validates and stores a receipt file for the caller's order.
// The stored key is derived from a fresh UUID, never the client
// filename. Re-uploading replaces a pending or rejected receipt; an
// approved one is final.
func (s *ReceiptService) Upload(orderID, userID uint, filename string, data []byte) (*models.Receipt, error) {
	order, err := s.orderRepo.GetByID(orderID)
	if err != nil {
		return nil, err
	}
	if order.UserID != userID {
		return nil, fmt.Errorf("order %d: %w", orderID, ErrNotFound)
	}

	ext := strings.ToLower(filepath.Ext(filename))
	if !allowedReceiptExts[ext] {
		return nil, fmt.Errorf("invalid file type %q, allowed: png, jpg, jpeg, webp, pdf: %w", ext, ErrInvalidInput)
	}
	if len(data) > s.maxBytes {
		return nil, fmt.Errorf("file too large, maximum %dMB: %w", s.maxBytes/(1024*1024), ErrInvalidInput)
	}

	existing, err := s.receiptRepo.GetByOrder(orderID)
	if err == nil && existing.Status == models.ReceiptStatusApproved {
		return nil, fmt.Errorf("receipt for order %d already approved: %w", orderID, ErrInvalidInput)
	}

	key := uuid.New().String() + ext
	if _, err := s.driver.Save(data, key); err != nil {
		return nil, fmt.Errorf("failed to store receipt: %w", err)
	}

	if existing != nil {
		// Replace a pending or rejected upload, dropping the old file.
		s.driver.Delete(existing.FileKey)
		existing.FileKey = key
		existing.FileURL = s.driver.URL(key)
		existing.Status = models.ReceiptStatusPending
		existing.AdminNote = ""
		existing.UploadedAt = time.Now().UTC()
		if err := s.receiptRepo.Update(existing); err != nil {
			return nil, err
		}
		return existing, nil
	}

	receipt := &models.Receipt{
		OrderID:    orderID,
		UserID:     userID,
		FileKey:    key,
		FileURL:    s.driver.URL(key),
		Status:     models.ReceiptStatusPending,
		UploadedAt: time.Now().UTC(),
	}
	if err := s.receiptRepo.Create(receipt); err != nil {
		return nil, err
	}
	return receipt, nil
}

// GetForOrder returns the receipt of an order, restricted to its owner
// unless the caller is an admin.
func (s *ReceiptService) GetForOrder(orderID, userID uint, isAdmin bool) (*models.Receipt, error) {
	receipt, err := s.receiptRepo.GetByOrder(orderID)
	if err != nil {
		return nil, err
	}
	if !isAdmin && receipt.UserID != userID {
		return nil, fmt.Errorf("receipt for order %d: %w", orderID, ErrNotFound)
	}
	return receipt, nil
}

// Review approves or rejects a receipt and notifies the customer. The
// admin note travels as the rejection reason.
func (s *ReceiptService) Review(receiptID uint, status, adminNote string) (*models.Receipt, error) {
	if status != models.ReceiptStatusApproved && status != models.ReceiptStatusRejected {
		return nil, fmt.Errorf("receipt status must be approved or rejected: %w", ErrInvalidInput)
	}

	receipt, err := s.receiptRepo.GetByID(receiptID)
	if err != nil {
		return nil, err
	}
	receipt.Status = status
	receipt.AdminNote = adminNote
	if err := s.receiptRepo.Update(receipt); err != nil {
		return nil, err
	}

	if s.notifier != nil {
		if order, err := s.orderRepo.GetByID(receipt.OrderID); err == nil {
			name := s.customerName(order.UserID)
			if status == models.ReceiptStatusApproved {
				s.notifier.ReceiptApproved(order.Phone, order.ID, name)
			} else {
				s.notifier.ReceiptRejected(order.Phone, order.ID, name, adminNote)
			}
		}
	}
	return receipt, nil
}

// UpdatePayment records the outcome of a payment verification and
// notifies the customer on success.
func (s *ReceiptService) UpdatePayment(paymentID uint, status, reference string) (*models.Payment, error) {
	if status != models.PaymentStatusVerified && status != models.PaymentStatusFailed {
		return nil, fmt.Errorf("payment status must be verified or failed: %w", ErrInvalidInput)
	}

	payment, err := s.receiptRepo.GetPaymentByID(paymentID)
	if err != nil {
		return nil, err
	}
	payment.Status = status
	if reference != "" {
		payment.Reference = reference
	}
	if status == models.PaymentStatusVerified {
		now := time.Now().UTC()
		payment.VerifiedAt = &now
	}
	if err := s.receiptRepo.UpdatePayment(payment); err != nil {
		return nil, err
	}

	if status == models.PaymentStatusVerified && s.notifier != nil {
		if order, err := s.orderRepo.GetByID(payment.OrderID); err == nil {
			s.notifier.OrderPaid(order.Phone, order.ID, s.customerName(order.UserID))
		}
	}
	return payment, nil
}

func (s *ReceiptService) customerName(userID uint) string {
	if user, err := s.userRepo.GetByID(userID); err == nil {
		return user.FullName
	}
	return "customer"
}
