package handlers

import (
	"log"

	"foodnova/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// AdminPackHandler handles the admin pack routes: nested pack CRUD plus
// standalone variant and item management.
type AdminPackHandler struct {
	packs    *services.PackService
	catalog  *services.CatalogService
	validate *validator.Validate
}

// NewAdminPackHandler creates a new AdminPackHandler.
func NewAdminPackHandler(packs *services.PackService, catalog *services.CatalogService) *AdminPackHandler {
	return &AdminPackHandler{
		packs:    packs,
		catalog:  catalog,
		validate: validator.New(),
	}
}

// RegisterRoutes registers the routes under an admin-only group.
func (h *AdminPackHandler) RegisterRoutes(router fiber.Router) {
	packRoutes := router.Group("/packs")
	packRoutes.Get("/", h.HandleListPacks)
	packRoutes.Post("/", h.HandleCreatePack)
	packRoutes.Patch("/:id", h.HandleUpdatePack)
	packRoutes.Delete("/:id", h.HandleDeletePack)
	packRoutes.Post("/:id/variants", h.HandleAddVariant)
	packRoutes.Patch("/variants/:id", h.HandleUpdateVariant)
	packRoutes.Delete("/variants/:id", h.HandleDeleteVariant)
	packRoutes.Post("/variants/:id/items", h.HandleAddItem)
	packRoutes.Delete("/variants/items/:id", h.HandleDeleteItem)
}

func (h *AdminPackHandler) HandleListPacks(c *fiber.Ctx) error {
	packs, err := h.catalog.ListPacksAdmin()
	if err != nil {
		log.Printf("Error listing packs: %v", err)
		return respondError(c, "Could not retrieve packs", err)
	}
	return c.JSON(packs)
}

func (h *AdminPackHandler) HandleCreatePack(c *fiber.Ctx) error {
	var req services.PackCreate
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	if err := h.validate.Struct(req); err != nil {
		return respondValidationError(c, err)
	}

	pack, err := h.packs.Create(req)
	if err != nil {
		return respondError(c, "Could not create pack", err)
	}
	return c.Status(fiber.StatusCreated).JSON(pack)
}

func (h *AdminPackHandler) HandleUpdatePack(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}

	var req services.PackUpdate
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	if err := h.packs.Update(id, req); err != nil {
		return respondError(c, "Could not update pack", err)
	}
	return c.JSON(fiber.Map{"message": "Pack updated successfully"})
}

func (h *AdminPackHandler) HandleDeletePack(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}

	if err := h.packs.Delete(id); err != nil {
		return respondError(c, "Could not delete pack", err)
	}
	return c.JSON(fiber.Map{"message": "Pack deleted successfully"})
}

func (h *AdminPackHandler) HandleAddVariant(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}

	var req services.PackVariantCreate
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	if err := h.validate.Struct(req); err != nil {
		return respondValidationError(c, err)
	}

	variant, err := h.packs.AddVariant(id, req)
	if err != nil {
		return respondError(c, "Could not add variant", err)
	}
	return c.Status(fiber.StatusCreated).JSON(variant)
}

func (h *AdminPackHandler) HandleUpdateVariant(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}

	var req services.PackVariantUpdate
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	if err := h.packs.UpdateVariant(id, req); err != nil {
		return respondError(c, "Could not update variant", err)
	}
	return c.JSON(fiber.Map{"message": "Variant updated successfully"})
}

func (h *AdminPackHandler) HandleDeleteVariant(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}

	if err := h.packs.DeleteVariant(id); err != nil {
		return respondError(c, "Could not delete variant", err)
	}
	return c.JSON(fiber.Map{"message": "Variant deleted successfully"})
}

func (h *AdminPackHandler) HandleAddItem(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}

	var req services.PackVariantItemCreate
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	if err := h.validate.Struct(req); err != nil {
		return respondValidationError(c, err)
	}

	item, err := h.packs.AddItem(id, req)
	if err != nil {
		return respondError(c, "Could not add item", err)
	}
	return c.Status(fiber.StatusCreated).JSON(item)
}

func (h *AdminPackHandler) HandleDeleteItem(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}

	if err := h.packs.DeleteItem(id); err != nil {
		return respondError(c, "Could not delete item", err)
	}
	return c.JSON(fiber.Map{"message": "Item deleted successfully"})
}
