package handlers

import (
	"log"

	"foodnova/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// AdminOrderHandler handles the admin order, receipt review and payment
// verification routes.
type AdminOrderHandler struct {
	orders   *services.OrderService
	receipts *services.ReceiptService
	validate *validator.Validate
}

// NewAdminOrderHandler creates a new AdminOrderHandler.
func NewAdminOrderHandler(orders *services.OrderService, receipts *services.ReceiptService) *AdminOrderHandler {
	return &AdminOrderHandler{
		orders:   orders,
		receipts: receipts,
		validate: validator.New(),
	}
}

// RegisterRoutes registers the routes under an admin-only group.
func (h *AdminOrderHandler) RegisterRoutes(router fiber.Router) {
	orderRoutes := router.Group("/orders")
	orderRoutes.Get("/", h.HandleListOrders)
	orderRoutes.Get("/:id", h.HandleGetOrder)
	orderRoutes.Get("/:id/receipt", h.HandleGetReceipt)
	orderRoutes.Patch("/:id", h.HandleUpdateStatus)

	router.Patch("/receipts/:id", h.HandleReviewReceipt)
	router.Patch("/payments/:id", h.HandleUpdatePayment)
}

type UpdateOrderStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

type ReviewReceiptRequest struct {
	Status    string `json:"status" validate:"required"`
	AdminNote string `json:"admin_note"`
}

type UpdatePaymentRequest struct {
	Status    string `json:"status" validate:"required"`
	Reference string `json:"reference"`
}

func (h *AdminOrderHandler) HandleListOrders(c *fiber.Ctx) error {
	orders, err := h.orders.ListAll()
	if err != nil {
		log.Printf("Error listing orders: %v", err)
		return respondError(c, "Could not retrieve orders", err)
	}
	return c.JSON(orders)
}

func (h *AdminOrderHandler) HandleGetOrder(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}

	order, err := h.orders.Get(id)
	if err != nil {
		return respondError(c, "Could not retrieve order", err)
	}
	return c.JSON(order)
}

func (h *AdminOrderHandler) HandleGetReceipt(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}

	receipt, err := h.receipts.GetForOrder(id, 0, true)
	if err != nil {
		return respondError(c, "Could not retrieve receipt", err)
	}
	return c.JSON(receipt)
}

func (h *AdminOrderHandler) HandleUpdateStatus(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}

	var req UpdateOrderStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	if err := h.validate.Struct(req); err != nil {
		return respondValidationError(c, err)
	}

	order, err := h.orders.UpdateStatus(id, req.Status)
	if err != nil {
		return respondError(c, "Could not update order status", err)
	}
	return c.JSON(order)
}

func (h *AdminOrderHandler) HandleReviewReceipt(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}

	var req ReviewReceiptRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	if err := h.validate.Struct(req); err != nil {
		return respondValidationError(c, err)
	}

	receipt, err := h.receipts.Review(id, req.Status, req.AdminNote)
	if err != nil {
		return respondError(c, "Could not review receipt", err)
	}
	return c.JSON(receipt)
}

func (h *AdminOrderHandler) HandleUpdatePayment(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}

	var req UpdatePaymentRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	if err := h.validate.Struct(req); err != nil {
		return respondValidationError(c, err)
	}

	payment, err := h.receipts.UpdatePayment(id, req.Status, req.Reference)
	if err != nil {
		return respondError(c, "Could not update payment", err)
	}
	return c.JSON(payment)
}
