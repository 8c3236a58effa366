package sms

import (
	"fmt"
	"log"
	"strconv"
)

// Service formats the order-lifecycle SMS messages and hands them to the
// gateway. A nil gateway degrades every send to a structured failure so
// an unconfigured deployment never breaks order flows.
type Service struct {
	gateway Gateway
}

// NewService creates a new notification service.
func NewService(gateway Gateway) *Service {
	return &Service{gateway: gateway}
}

func (s *Service) send(phone, message string) Result {
	if s.gateway == nil {
		return Result{Success: false, Err: "sms gateway not configured"}
	}
	result := s.gateway.Send(phone, message)
	if !result.Success {
		log.Printf("SMS to %s failed: %s", phone, result.Err)
	}
	return result
}

// OrderPlaced notifies the customer that their order was created.
func (s *Service) OrderPlaced(phone string, orderID uint, customerName string, total int64) Result {
	message := fmt.Sprintf(
		"Hi %s, your FoodNova order #%d has been placed! Total: %s. Please upload your payment receipt to confirm.",
		customerName, orderID, FormatNaira(total))
	return s.send(phone, message)
}

// OrderPaid notifies the customer that payment was verified.
func (s *Service) OrderPaid(phone string, orderID uint, customerName string) Result {
	message := fmt.Sprintf(
		"Hi %s, payment for your FoodNova order #%d has been verified! Your order is being processed.",
		customerName, orderID)
	return s.send(phone, message)
}

// OrderConfirmed notifies the customer that the order was confirmed.
func (s *Service) OrderConfirmed(phone string, orderID uint, customerName string) Result {
	message := fmt.Sprintf(
		"Hi %s, your FoodNova order #%d has been confirmed and is being prepared for delivery/pickup.",
		customerName, orderID)
	return s.send(phone, message)
}

// OrderOutForDelivery notifies the customer that the order left the store.
func (s *Service) OrderOutForDelivery(phone string, orderID uint, customerName string) Result {
	message := fmt.Sprintf(
		"Hi %s, your FoodNova order #%d is out for delivery! Please have your delivery fee ready.",
		customerName, orderID)
	return s.send(phone, message)
}

// ReceiptApproved notifies the customer that their receipt passed review.
func (s *Service) ReceiptApproved(phone string, orderID uint, customerName string) Result {
	message := fmt.Sprintf(
		"Hi %s, your payment receipt for FoodNova order #%d has been approved! Your order will be processed shortly.",
		customerName, orderID)
	return s.send(phone, message)
}

// ReceiptRejected notifies the customer that their receipt was declined,
// including the reviewer's reason when one was given.
func (s *Service) ReceiptRejected(phone string, orderID uint, customerName, reason string) Result {
	message := fmt.Sprintf(
		"Hi %s, your payment receipt for FoodNova order #%d was not approved.",
		customerName, orderID)
	if reason != "" {
		message += " Reason: " + reason + "."
	}
	message += " Please upload a valid receipt."
	return s.send(phone, message)
}

// FormatNaira renders an amount in whole naira with comma grouping.
func FormatNaira(amount int64) string {
	digits := strconv.FormatInt(amount, 10)
	negative := false
	if digits[0] == '-' {
		negative = true
		digits = digits[1:]
	}

	var grouped []byte
	for i, d := range []byte(digits) {
		if i > 0 && (len(digits)-i)%3 == 0 {
			grouped = append(grouped, ',')
		}
		grouped = append(grouped, d)
	}

	out := "₦" + string(grouped)
	if negative {
		out = "-" + out
	}
	return out
}
