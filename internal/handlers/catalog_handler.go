package handlers

import (
	"log"
	"strconv"

	"foodnova/internal/services"

	"github.com/gofiber/fiber/v2"
)

// CatalogHandler handles the public storefront read routes.
type CatalogHandler struct {
	catalog *services.CatalogService
}

// NewCatalogHandler creates a new CatalogHandler.
func NewCatalogHandler(catalog *services.CatalogService) *CatalogHandler {
	return &CatalogHandler{catalog: catalog}
}

// RegisterRoutes registers the public catalog routes.
func (h *CatalogHandler) RegisterRoutes(router fiber.Router) {
	router.Get("/categories", h.HandleListCategories)
	router.Get("/products", h.HandleListProducts)
	router.Get("/packs", h.HandleListPacks)
	router.Get("/packs/:id", h.HandleGetPack)
}

// HandleListCategories returns every category.
func (h *CatalogHandler) HandleListCategories(c *fiber.Ctx) error {
	categories, err := h.catalog.ListCategories()
	if err != nil {
		log.Printf("Error listing categories: %v", err)
		return respondError(c, "Could not retrieve categories", err)
	}
	return c.JSON(categories)
}

// HandleListProducts returns active products, optionally filtered by
// ?category_id=.
func (h *CatalogHandler) HandleListProducts(c *fiber.Ctx) error {
	var categoryID *uint
	if raw := c.Query("category_id"); raw != "" {
		parsed, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"message": "invalid category_id parameter",
			})
		}
		id := uint(parsed)
		categoryID = &id
	}

	products, err := h.catalog.ListProducts(categoryID)
	if err != nil {
		log.Printf("Error listing products: %v", err)
		return respondError(c, "Could not retrieve products", err)
	}
	return c.JSON(products)
}

// HandleListPacks returns active pack summaries.
func (h *CatalogHandler) HandleListPacks(c *fiber.Ctx) error {
	packs, err := h.catalog.ListPacks()
	if err != nil {
		log.Printf("Error listing packs: %v", err)
		return respondError(c, "Could not retrieve packs", err)
	}
	return c.JSON(packs)
}

// HandleGetPack returns one active pack with its full nested structure.
func (h *CatalogHandler) HandleGetPack(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}

	pack, err := h.catalog.GetPack(id)
	if err != nil {
		return respondError(c, "Could not retrieve pack", err)
	}
	return c.JSON(pack)
}
