package handlers

import (
	"io"
	"log"

	"foodnova/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// OrderHandler handles the customer-facing order and receipt routes.
type OrderHandler struct {
	orders   *services.OrderService
	receipts *services.ReceiptService
	validate *validator.Validate
}

// NewOrderHandler creates a new OrderHandler.
func NewOrderHandler(orders *services.OrderService, receipts *services.ReceiptService) *OrderHandler {
	return &OrderHandler{
		orders:   orders,
		receipts: receipts,
		validate: validator.New(),
	}
}

// RegisterRoutes registers the order routes; all of them require auth.
func (h *OrderHandler) RegisterRoutes(router fiber.Router) {
	orderRoutes := router.Group("/orders")
	orderRoutes.Post("/", h.HandleCreateOrder)
	orderRoutes.Get("/my", h.HandleMyOrders)
	orderRoutes.Get("/:id", h.HandleGetOrder)
	orderRoutes.Post("/:id/receipt", h.HandleUploadReceipt)
	orderRoutes.Get("/:id/receipt", h.HandleGetReceipt)
}

// HandleCreateOrder places a new order for the authenticated customer.
func (h *OrderHandler) HandleCreateOrder(c *fiber.Ctx) error {
	var req services.OrderCreate
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	if err := h.validate.Struct(req); err != nil {
		return respondValidationError(c, err)
	}

	order, err := h.orders.Place(currentUserID(c), req)
	if err != nil {
		log.Printf("Error creating order: %v", err)
		return respondError(c, "Could not create order", err)
	}
	return c.Status(fiber.StatusCreated).JSON(order)
}

// HandleMyOrders lists the caller's orders.
func (h *OrderHandler) HandleMyOrders(c *fiber.Ctx) error {
	orders, err := h.orders.ListMine(currentUserID(c))
	if err != nil {
		log.Printf("Error listing orders: %v", err)
		return respondError(c, "Could not retrieve orders", err)
	}
	return c.JSON(orders)
}

// HandleGetOrder returns one of the caller's orders.
func (h *OrderHandler) HandleGetOrder(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}

	order, err := h.orders.GetForUser(id, currentUserID(c))
	if err != nil {
		return respondError(c, "Could not retrieve order", err)
	}
	return c.JSON(order)
}

// HandleUploadReceipt accepts a multipart payment-receipt upload for
// one of the caller's orders. The whole payload is read into memory
// before validation; the configured size cap bounds it.
func (h *OrderHandler) HandleUploadReceipt(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "A 'file' form field is required",
		})
	}

	file, err := fileHeader.Open()
	if err != nil {
		return respondError(c, "Could not read upload", err)
	}
	defer file.Close()
	data, err := io.ReadAll(file)
	if err != nil {
		return respondError(c, "Could not read upload", err)
	}

	receipt, err := h.receipts.Upload(id, currentUserID(c), fileHeader.Filename, data)
	if err != nil {
		log.Printf("Error uploading receipt for order %d: %v", id, err)
		return respondError(c, "Could not upload receipt", err)
	}
	return c.Status(fiber.StatusCreated).JSON(receipt)
}

// HandleGetReceipt returns the receipt of one of the caller's orders.
func (h *OrderHandler) HandleGetReceipt(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}

	receipt, err := h.receipts.GetForOrder(id, currentUserID(c), false)
	if err != nil {
		return respondError(c, "Could not retrieve receipt", err)
	}
	return c.JSON(receipt)
}
