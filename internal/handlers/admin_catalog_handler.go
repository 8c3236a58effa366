package handlers

import (
	"log"

	"foodnova/internal/models"
	"foodnova/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// AdminCatalogHandler handles the admin category and product routes.
type AdminCatalogHandler struct {
	categories *services.CategoryService
	products   *services.ProductService
	inventory  *services.InventoryService
	validate   *validator.Validate
}

// NewAdminCatalogHandler creates a new AdminCatalogHandler.
func NewAdminCatalogHandler(categories *services.CategoryService, products *services.ProductService, inventory *services.InventoryService) *AdminCatalogHandler {
	return &AdminCatalogHandler{
		categories: categories,
		products:   products,
		inventory:  inventory,
		validate:   validator.New(),
	}
}

// RegisterRoutes registers the routes under an admin-only group.
func (h *AdminCatalogHandler) RegisterRoutes(router fiber.Router) {
	categoryRoutes := router.Group("/categories")
	categoryRoutes.Get("/", h.HandleListCategories)
	categoryRoutes.Post("/", h.HandleCreateCategory)
	categoryRoutes.Delete("/:id", h.HandleDeleteCategory)

	productRoutes := router.Group("/products")
	productRoutes.Get("/", h.HandleListProducts)
	productRoutes.Post("/", h.HandleCreateProduct)
	productRoutes.Patch("/:id", h.HandleUpdateProduct)
	productRoutes.Delete("/:id", h.HandleDeleteProduct)
	productRoutes.Patch("/:id/stock", h.HandleUpdateStock)
}

type CreateCategoryRequest struct {
	Name string `json:"name" validate:"required"`
}

type CreateProductRequest struct {
	Name       string `json:"name" validate:"required"`
	Price      int64  `json:"price" validate:"required,gt=0"`
	StockQty   int    `json:"stock_qty" validate:"gte=0"`
	ImageURL   string `json:"image_url"`
	CategoryID *uint  `json:"category_id"`
	IsActive   *bool  `json:"is_active"`
}

type UpdateStockRequest struct {
	StockQty *int `json:"stock_qty" validate:"required"`
}

func (h *AdminCatalogHandler) HandleListCategories(c *fiber.Ctx) error {
	categories, err := h.categories.ListAll()
	if err != nil {
		log.Printf("Error listing categories: %v", err)
		return respondError(c, "Could not retrieve categories", err)
	}
	return c.JSON(categories)
}

func (h *AdminCatalogHandler) HandleCreateCategory(c *fiber.Ctx) error {
	var req CreateCategoryRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	if err := h.validate.Struct(req); err != nil {
		return respondValidationError(c, err)
	}

	category, err := h.categories.Create(req.Name)
	if err != nil {
		return respondError(c, "Could not create category", err)
	}
	return c.Status(fiber.StatusCreated).JSON(category)
}

func (h *AdminCatalogHandler) HandleDeleteCategory(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}

	if err := h.categories.Delete(id); err != nil {
		return respondError(c, "Could not delete category", err)
	}
	return c.JSON(fiber.Map{"message": "Category deleted successfully"})
}

func (h *AdminCatalogHandler) HandleListProducts(c *fiber.Ctx) error {
	products, err := h.products.ListAll()
	if err != nil {
		log.Printf("Error listing products: %v", err)
		return respondError(c, "Could not retrieve products", err)
	}
	return c.JSON(products)
}

func (h *AdminCatalogHandler) HandleCreateProduct(c *fiber.Ctx) error {
	var req CreateProductRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	if err := h.validate.Struct(req); err != nil {
		return respondValidationError(c, err)
	}

	product := models.Product{
		Name:       req.Name,
		Price:      req.Price,
		StockQty:   req.StockQty,
		ImageURL:   req.ImageURL,
		CategoryID: req.CategoryID,
		IsActive:   true,
	}
	if req.IsActive != nil {
		product.IsActive = *req.IsActive
	}
	if err := h.products.Create(&product); err != nil {
		return respondError(c, "Could not create product", err)
	}
	return c.Status(fiber.StatusCreated).JSON(product)
}

func (h *AdminCatalogHandler) HandleUpdateProduct(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}

	var req services.ProductUpdate
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	product, err := h.products.Update(id, req)
	if err != nil {
		return respondError(c, "Could not update product", err)
	}
	return c.JSON(product)
}

func (h *AdminCatalogHandler) HandleDeleteProduct(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}

	if err := h.products.Delete(id); err != nil {
		return respondError(c, "Could not delete product", err)
	}
	return c.JSON(fiber.Map{"message": "Product deleted successfully"})
}

func (h *AdminCatalogHandler) HandleUpdateStock(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}

	var req UpdateStockRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	if err := h.validate.Struct(req); err != nil {
		return respondValidationError(c, err)
	}

	if ok := h.inventory.UpdateStock(id, *req.StockQty); !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Could not update stock",
		})
	}
	product, err := h.products.GetByID(id)
	if err != nil {
		return respondError(c, "Could not retrieve product", err)
	}
	return c.JSON(product)
}
