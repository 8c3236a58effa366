package handlers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"sync/atomic"
	"testing"
	"time"

	"foodnova/internal/handlers"
	"foodnova/internal/middleware"
	"foodnova/internal/models"
	"foodnova/internal/repositories"
	"foodnova/internal/services"
	"foodnova/pkg/storage"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

var dbCounter int64

// setupApp builds a Fiber app over a fresh in-memory SQLite database
// with all handlers, services and route guards wired like production.
func setupApp(t *testing.T) *fiber.App {
	t.Helper()

	dsn := fmt.Sprintf("file:handlers_test_%d?mode=memory&cache=shared", atomic.AddInt64(&dbCounter, 1))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&models.User{},
		&models.Category{},
		&models.Product{},
		&models.Pack{},
		&models.PackVariant{},
		&models.PackVariantItem{},
		&models.Order{},
		&models.OrderItem{},
		&models.Receipt{},
		&models.Payment{},
	)
	require.NoError(t, err)

	userRepo := repositories.NewGORMUserRepository(db)
	categoryRepo := repositories.NewGORMCategoryRepository(db)
	productRepo := repositories.NewGORMProductRepository(db)
	packRepo := repositories.NewGORMPackRepository(db)
	orderRepo := repositories.NewGORMOrderRepository(db)
	receiptRepo := repositories.NewGORMReceiptRepository(db)

	uploadDriver, err := storage.NewLocalDriver(t.TempDir(), "")
	require.NoError(t, err)

	authService := services.NewAuthService(userRepo, "test_jwt_secret", 30*time.Minute, 24*time.Hour)
	catalogService := services.NewCatalogService(categoryRepo, productRepo, packRepo)
	categoryService := services.NewCategoryService(categoryRepo)
	productService := services.NewProductService(productRepo)
	packService := services.NewPackService(packRepo)
	inventoryService := services.NewInventoryService(productRepo)
	orderService := services.NewOrderService(orderRepo, productRepo, packRepo, receiptRepo, userRepo, inventoryService, nil)
	receiptService := services.NewReceiptService(receiptRepo, orderRepo, userRepo, uploadDriver, nil, 5)

	authHandler := handlers.NewAuthHandler(authService)
	catalogHandler := handlers.NewCatalogHandler(catalogService)
	orderHandler := handlers.NewOrderHandler(orderService, receiptService)
	adminCatalogHandler := handlers.NewAdminCatalogHandler(categoryService, productService, inventoryService)
	adminPackHandler := handlers.NewAdminPackHandler(packService, catalogService)
	adminOrderHandler := handlers.NewAdminOrderHandler(orderService, receiptService)

	app := fiber.New()

	api := app.Group("/api/v1")
	authHandler.RegisterRoutes(api)
	catalogHandler.RegisterRoutes(api)

	authed := api.Group("", middleware.AuthRequired(authService))
	authHandler.RegisterProtectedRoutes(authed)
	orderHandler.RegisterRoutes(authed)

	admin := api.Group("/admin", middleware.AdminRequired(authService))
	adminCatalogHandler.RegisterRoutes(admin)
	adminPackHandler.RegisterRoutes(admin)
	adminOrderHandler.RegisterRoutes(admin)

	seedAdminForTest(t, userRepo)
	return app
}

// seedAdminForTest creates the admin account tests log in with.
func seedAdminForTest(t *testing.T, userRepo repositories.UserRepository) {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("adminpass"), bcrypt.MinCost)
	require.NoError(t, err)
	require.NoError(t, userRepo.Create(&models.User{
		Email:        "admin@foodnova.test",
		PasswordHash: string(hash),
		FullName:     "Store Admin",
		Role:         models.RoleAdmin,
		IsActive:     true,
	}))
}

// doRequest performs a JSON request against the app, optionally with a
// bearer token.
func doRequest(t *testing.T, app *fiber.App, method, path string, body interface{}, token string) *http.Response {
	t.Helper()
	var reader io.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(jsonBody)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decodeBody(t *testing.T, resp *http.Response, out interface{}) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
}

// registerAndLogin creates a customer account and returns its access token.
func registerAndLogin(t *testing.T, app *fiber.App, email string) string {
	t.Helper()
	resp := doRequest(t, app, http.MethodPost, "/api/v1/auth/register", map[string]string{
		"email":     email,
		"password":  "password123",
		"full_name": "Test Customer",
	}, "")
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()
	return login(t, app, email, "password123")
}

func login(t *testing.T, app *fiber.App, email, password string) string {
	t.Helper()
	resp := doRequest(t, app, http.MethodPost, "/api/v1/auth/login", map[string]string{
		"email":    email,
		"password": password,
	}, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var pair services.TokenPair
	decodeBody(t, resp, &pair)
	require.NotEmpty(t, pair.AccessToken)
	return pair.AccessToken
}

func adminToken(t *testing.T, app *fiber.App) string {
	t.Helper()
	return login(t, app, "admin@foodnova.test", "adminpass")
}

// createProduct seeds a product through the admin API and returns its id.
func createProduct(t *testing.T, app *fiber.App, token, name string, price int64, stock int, categoryID *uint) uint {
	t.Helper()
	body := map[string]interface{}{
		"name":      name,
		"price":     price,
		"stock_qty": stock,
	}
	if categoryID != nil {
		body["category_id"] = *categoryID
	}
	resp := doRequest(t, app, http.MethodPost, "/api/v1/admin/products", body, token)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var product models.Product
	decodeBody(t, resp, &product)
	require.NotZero(t, product.ID)
	return product.ID
}

func TestMain(m *testing.M) {
	log.SetOutput(io.Discard)
	os.Exit(m.Run())
}

func TestAuthRegisterLoginRefresh(t *testing.T) {
	app := setupApp(t)

	// Register
	resp := doRequest(t, app, http.MethodPost, "/api/v1/auth/register", map[string]string{
		"email":     "ada@example.com",
		"password":  "password123",
		"full_name": "Ada Obi",
	}, "")
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	var registered models.User
	decodeBody(t, resp, &registered)
	assert.Equal(t, "ada@example.com", registered.Email)
	assert.Equal(t, models.RoleCustomer, registered.Role)

	// Duplicate registration conflicts
	resp = doRequest(t, app, http.MethodPost, "/api/v1/auth/register", map[string]string{
		"email":     "ada@example.com",
		"password":  "password123",
		"full_name": "Ada Again",
	}, "")
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	resp.Body.Close()

	// Login
	resp = doRequest(t, app, http.MethodPost, "/api/v1/auth/login", map[string]string{
		"email":    "ada@example.com",
		"password": "password123",
	}, "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var pair services.TokenPair
	decodeBody(t, resp, &pair)
	assert.NotEmpty(t, pair.AccessToken)
	assert.NotEmpty(t, pair.RefreshToken)
	assert.Equal(t, "bearer", pair.TokenType)

	// Wrong password
	resp = doRequest(t, app, http.MethodPost, "/api/v1/auth/login", map[string]string{
		"email":    "ada@example.com",
		"password": "nope",
	}, "")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	resp.Body.Close()

	// Refresh rotates the pair
	resp = doRequest(t, app, http.MethodPost, "/api/v1/auth/refresh", map[string]string{
		"refresh_token": pair.RefreshToken,
	}, "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var rotated services.TokenPair
	decodeBody(t, resp, &rotated)
	assert.NotEmpty(t, rotated.AccessToken)

	// An access token is not accepted as a refresh token
	resp = doRequest(t, app, http.MethodPost, "/api/v1/auth/refresh", map[string]string{
		"refresh_token": pair.AccessToken,
	}, "")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	resp.Body.Close()

	// /auth/me returns the caller
	resp = doRequest(t, app, http.MethodGet, "/api/v1/auth/me", nil, rotated.AccessToken)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var me models.User
	decodeBody(t, resp, &me)
	assert.Equal(t, "ada@example.com", me.Email)
}

func TestRouteGuards(t *testing.T) {
	app := setupApp(t)

	// No token on a protected route
	resp := doRequest(t, app, http.MethodGet, "/api/v1/orders/my", nil, "")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	resp.Body.Close()

	// Garbage token
	resp = doRequest(t, app, http.MethodGet, "/api/v1/orders/my", nil, "garbage")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	resp.Body.Close()

	// A customer on an admin route
	customer := registerAndLogin(t, app, "customer@example.com")
	resp = doRequest(t, app, http.MethodGet, "/api/v1/admin/orders", nil, customer)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	resp.Body.Close()

	// The admin gets through
	resp = doRequest(t, app, http.MethodGet, "/api/v1/admin/orders", nil, adminToken(t, app))
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()
}

func TestCategoryAdminFlow(t *testing.T) {
	app := setupApp(t)
	admin := adminToken(t, app)

	// Create
	resp := doRequest(t, app, http.MethodPost, "/api/v1/admin/categories", map[string]string{"name": "Snacks"}, admin)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	var category models.Category
	decodeBody(t, resp, &category)
	assert.Equal(t, "Snacks", category.Name)
	assert.NotZero(t, category.ID)

	// Duplicate name conflicts
	resp = doRequest(t, app, http.MethodPost, "/api/v1/admin/categories", map[string]string{"name": "Snacks"}, admin)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	resp.Body.Close()

	// Public listing sees it
	resp = doRequest(t, app, http.MethodGet, "/api/v1/categories", nil, "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var categories []models.Category
	decodeBody(t, resp, &categories)
	assert.Len(t, categories, 1)

	// Deleting detaches products instead of removing them
	productID := createProduct(t, app, admin, "Plantain Chips", 1200, 10, &category.ID)
	resp = doRequest(t, app, http.MethodDelete, fmt.Sprintf("/api/v1/admin/categories/%d", category.ID), nil, admin)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	resp = doRequest(t, app, http.MethodGet, "/api/v1/products", nil, "")
	var products []services.ProductResponse
	decodeBody(t, resp, &products)
	assert.Len(t, products, 1)
	assert.Equal(t, productID, products[0].ID)
	assert.Nil(t, products[0].CategoryID)

	// Deleting again is a 404
	resp = doRequest(t, app, http.MethodDelete, fmt.Sprintf("/api/v1/admin/categories/%d", category.ID), nil, admin)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()
}

func TestProductAdminFlow(t *testing.T) {
	app := setupApp(t)
	admin := adminToken(t, app)

	resp := doRequest(t, app, http.MethodPost, "/api/v1/admin/categories", map[string]string{"name": "Staples"}, admin)
	var category models.Category
	decodeBody(t, resp, &category)

	riceID := createProduct(t, app, admin, "Rice 5kg", 8500, 5, &category.ID)
	createProduct(t, app, admin, "Groundnut Oil 1L", 3200, 10, nil)

	// Category filter on the public listing
	resp = doRequest(t, app, http.MethodGet, fmt.Sprintf("/api/v1/products?category_id=%d", category.ID), nil, "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var products []services.ProductResponse
	decodeBody(t, resp, &products)
	assert.Len(t, products, 1)
	assert.Equal(t, "Rice 5kg", products[0].Name)
	assert.Equal(t, "Staples", products[0].CategoryName)

	resp = doRequest(t, app, http.MethodGet, "/api/v1/products?category_id=abc", nil, "")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()

	// Partial update
	resp = doRequest(t, app, http.MethodPatch, fmt.Sprintf("/api/v1/admin/products/%d", riceID),
		map[string]interface{}{"price": 9000}, admin)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var updated models.Product
	decodeBody(t, resp, &updated)
	assert.Equal(t, int64(9000), updated.Price)
	assert.Equal(t, "Rice 5kg", updated.Name)

	// Deactivated products disappear from the storefront but stay
	// visible to admins.
	resp = doRequest(t, app, http.MethodPatch, fmt.Sprintf("/api/v1/admin/products/%d", riceID),
		map[string]interface{}{"is_active": false}, admin)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	resp = doRequest(t, app, http.MethodGet, "/api/v1/products", nil, "")
	decodeBody(t, resp, &products)
	assert.Len(t, products, 1)
	assert.Equal(t, "Groundnut Oil 1L", products[0].Name)

	resp = doRequest(t, app, http.MethodGet, "/api/v1/admin/products", nil, admin)
	var adminProducts []models.Product
	decodeBody(t, resp, &adminProducts)
	assert.Len(t, adminProducts, 2)

	// Stock override
	resp = doRequest(t, app, http.MethodPatch, fmt.Sprintf("/api/v1/admin/products/%d/stock", riceID),
		map[string]int{"stock_qty": 42}, admin)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	decodeBody(t, resp, &updated)
	assert.Equal(t, 42, updated.StockQty)

	// Delete
	resp = doRequest(t, app, http.MethodDelete, fmt.Sprintf("/api/v1/admin/products/%d", riceID), nil, admin)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()
	resp = doRequest(t, app, http.MethodDelete, fmt.Sprintf("/api/v1/admin/products/%d", riceID), nil, admin)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()
}

func TestPackAdminAndStorefront(t *testing.T) {
	app := setupApp(t)
	admin := adminToken(t, app)

	riceID := createProduct(t, app, admin, "Rice 5kg", 8500, 50, nil)
	oilID := createProduct(t, app, admin, "Groundnut Oil 1L", 3200, 50, nil)

	// Nested create: pack + variants + items in one request
	resp := doRequest(t, app, http.MethodPost, "/api/v1/admin/packs", map[string]interface{}{
		"name":        "Monthly Essentials",
		"description": "Everything a household needs",
		"variants": []map[string]interface{}{
			{
				"name":  "Mini",
				"price": 15000,
				"items": []map[string]interface{}{
					{"product_id": riceID, "qty": 1},
				},
			},
			{
				"name":  "Family",
				"price": 25000,
				"items": []map[string]interface{}{
					{"product_id": riceID, "qty": 2},
					{"product_id": oilID, "qty": 1},
				},
			},
		},
	}, admin)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	var pack models.Pack
	decodeBody(t, resp, &pack)
	require.NotZero(t, pack.ID)
	require.Len(t, pack.Variants, 2)

	// A pack with an unknown product is rejected outright
	resp = doRequest(t, app, http.MethodPost, "/api/v1/admin/packs", map[string]interface{}{
		"name": "Broken Pack",
		"variants": []map[string]interface{}{
			{"name": "Only", "price": 1000, "items": []map[string]interface{}{
				{"product_id": 9999, "qty": 1},
			}},
		},
	}, admin)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()

	// Storefront summary carries variant count and cheapest price
	resp = doRequest(t, app, http.MethodGet, "/api/v1/packs", nil, "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var list []services.PackListResponse
	decodeBody(t, resp, &list)
	require.Len(t, list, 1)
	assert.Equal(t, 2, list[0].VariantCount)
	require.NotNil(t, list[0].MinPrice)
	assert.Equal(t, int64(15000), *list[0].MinPrice)

	// Full detail resolves product names inside items
	resp = doRequest(t, app, http.MethodGet, fmt.Sprintf("/api/v1/packs/%d", pack.ID), nil, "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var detail services.PackResponse
	decodeBody(t, resp, &detail)
	require.Len(t, detail.Variants, 2)
	assert.Equal(t, "Rice 5kg", detail.Variants[0].Items[0].ProductName)

	// Add a variant, then an item, then prune them again
	resp = doRequest(t, app, http.MethodPost, fmt.Sprintf("/api/v1/admin/packs/%d/variants", pack.ID),
		map[string]interface{}{"name": "Bulk", "price": 40000, "items": []map[string]interface{}{
			{"product_id": riceID, "qty": 4},
		}}, admin)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	var bulk models.PackVariant
	decodeBody(t, resp, &bulk)
	require.NotZero(t, bulk.ID)

	resp = doRequest(t, app, http.MethodPost, fmt.Sprintf("/api/v1/admin/packs/variants/%d/items", bulk.ID),
		map[string]interface{}{"product_id": oilID, "qty": 2}, admin)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	var item models.PackVariantItem
	decodeBody(t, resp, &item)
	require.NotZero(t, item.ID)

	resp = doRequest(t, app, http.MethodDelete, fmt.Sprintf("/api/v1/admin/packs/variants/items/%d", item.ID), nil, admin)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	resp = doRequest(t, app, http.MethodDelete, fmt.Sprintf("/api/v1/admin/packs/variants/%d", bulk.ID), nil, admin)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	// Deleting the pack cascades; the detail route then 404s
	resp = doRequest(t, app, http.MethodDelete, fmt.Sprintf("/api/v1/admin/packs/%d", pack.ID), nil, admin)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	resp = doRequest(t, app, http.MethodGet, fmt.Sprintf("/api/v1/packs/%d", pack.ID), nil, "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()
}

func TestOrderPlacementDeductsStock(t *testing.T) {
	app := setupApp(t)
	admin := adminToken(t, app)
	customer := registerAndLogin(t, app, "shopper@example.com")

	riceID := createProduct(t, app, admin, "Rice 5kg", 8500, 5, nil)

	// qty 3 of stock 5 succeeds and leaves 2
	resp := doRequest(t, app, http.MethodPost, "/api/v1/orders", map[string]interface{}{
		"items":            []map[string]interface{}{{"product_id": riceID, "qty": 3}},
		"delivery_address": "12 Allen Avenue, Ikeja",
		"phone":            "08031234567",
	}, customer)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	var order services.OrderResponse
	decodeBody(t, resp, &order)
	assert.Equal(t, models.OrderStatusPending, order.Status)
	assert.Equal(t, int64(25500), order.TotalAmount)
	require.Len(t, order.Items, 1)
	assert.Equal(t, "Rice 5kg", order.Items[0].NameSnapshot)
	assert.Equal(t, int64(8500), order.Items[0].UnitPrice)
	assert.False(t, order.HasReceipt)

	resp = doRequest(t, app, http.MethodGet, "/api/v1/products", nil, "")
	var products []services.ProductResponse
	decodeBody(t, resp, &products)
	require.Len(t, products, 1)
	assert.Equal(t, 2, products[0].StockQty)

	// qty 10 fails and stock stays at 2
	resp = doRequest(t, app, http.MethodPost, "/api/v1/orders", map[string]interface{}{
		"items":            []map[string]interface{}{{"product_id": riceID, "qty": 10}},
		"delivery_address": "12 Allen Avenue, Ikeja",
		"phone":            "08031234567",
	}, customer)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()

	resp = doRequest(t, app, http.MethodGet, "/api/v1/products", nil, "")
	decodeBody(t, resp, &products)
	assert.Equal(t, 2, products[0].StockQty)

	// The order shows up in the customer's history
	resp = doRequest(t, app, http.MethodGet, "/api/v1/orders/my", nil, customer)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var mine []services.OrderListResponse
	decodeBody(t, resp, &mine)
	require.Len(t, mine, 1)
	assert.Equal(t, order.ID, mine[0].ID)
	assert.Equal(t, 1, mine[0].ItemCount)

	// Another customer cannot see it
	stranger := registerAndLogin(t, app, "stranger@example.com")
	resp = doRequest(t, app, http.MethodGet, fmt.Sprintf("/api/v1/orders/%d", order.ID), nil, stranger)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()
}

func TestOrderPackVariantLineDeductsContents(t *testing.T) {
	app := setupApp(t)
	admin := adminToken(t, app)
	customer := registerAndLogin(t, app, "bundles@example.com")

	riceID := createProduct(t, app, admin, "Rice 5kg", 8500, 10, nil)
	oilID := createProduct(t, app, admin, "Groundnut Oil 1L", 3200, 10, nil)

	resp := doRequest(t, app, http.MethodPost, "/api/v1/admin/packs", map[string]interface{}{
		"name": "Monthly Essentials",
		"variants": []map[string]interface{}{
			{"name": "Family", "price": 25000, "items": []map[string]interface{}{
				{"product_id": riceID, "qty": 2},
				{"product_id": oilID, "qty": 1},
			}},
		},
	}, admin)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var pack models.Pack
	decodeBody(t, resp, &pack)
	require.Len(t, pack.Variants, 1)
	variantID := pack.Variants[0].ID

	resp = doRequest(t, app, http.MethodPost, "/api/v1/orders", map[string]interface{}{
		"items":            []map[string]interface{}{{"pack_variant_id": variantID, "qty": 2}},
		"delivery_address": "3 Marina Road, Lagos",
		"phone":            "08030000000",
	}, customer)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	var order services.OrderResponse
	decodeBody(t, resp, &order)
	assert.Equal(t, int64(50000), order.TotalAmount)
	assert.Equal(t, "Monthly Essentials - Family", order.Items[0].NameSnapshot)

	// Two packs consumed 4 rice and 2 oil
	resp = doRequest(t, app, http.MethodGet, "/api/v1/admin/products", nil, admin)
	var products []models.Product
	decodeBody(t, resp, &products)
	stockByID := map[uint]int{}
	for _, p := range products {
		stockByID[p.ID] = p.StockQty
	}
	assert.Equal(t, 6, stockByID[riceID])
	assert.Equal(t, 8, stockByID[oilID])
}

func TestOrderStatusLifecycle(t *testing.T) {
	app := setupApp(t)
	admin := adminToken(t, app)
	customer := registerAndLogin(t, app, "lifecycle@example.com")

	riceID := createProduct(t, app, admin, "Rice 5kg", 8500, 5, nil)
	resp := doRequest(t, app, http.MethodPost, "/api/v1/orders", map[string]interface{}{
		"items":            []map[string]interface{}{{"product_id": riceID, "qty": 3}},
		"delivery_address": "12 Allen Avenue, Ikeja",
		"phone":            "08031234567",
	}, customer)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var order services.OrderResponse
	decodeBody(t, resp, &order)

	statusPath := fmt.Sprintf("/api/v1/admin/orders/%d", order.ID)

	// Skipping a step is rejected
	resp = doRequest(t, app, http.MethodPatch, statusPath, map[string]string{"status": "delivered"}, admin)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()

	// Unknown statuses too
	resp = doRequest(t, app, http.MethodPatch, statusPath, map[string]string{"status": "teleported"}, admin)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()

	// Walk the graph to delivered
	for _, status := range []string{
		models.OrderStatusConfirmed,
		models.OrderStatusOutForDelivery,
		models.OrderStatusDelivered,
	} {
		resp = doRequest(t, app, http.MethodPatch, statusPath, map[string]string{"status": status}, admin)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		var updated services.OrderResponse
		decodeBody(t, resp, &updated)
		assert.Equal(t, status, updated.Status)
	}

	// Delivered is terminal
	resp = doRequest(t, app, http.MethodPatch, statusPath, map[string]string{"status": models.OrderStatusCancelled}, admin)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()
}

func TestOrderCancellationRestoresStock(t *testing.T) {
	app := setupApp(t)
	admin := adminToken(t, app)
	customer := registerAndLogin(t, app, "cancel@example.com")

	riceID := createProduct(t, app, admin, "Rice 5kg", 8500, 5, nil)
	resp := doRequest(t, app, http.MethodPost, "/api/v1/orders", map[string]interface{}{
		"items":            []map[string]interface{}{{"product_id": riceID, "qty": 3}},
		"delivery_address": "12 Allen Avenue, Ikeja",
		"phone":            "08031234567",
	}, customer)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var order services.OrderResponse
	decodeBody(t, resp, &order)

	resp = doRequest(t, app, http.MethodPatch, fmt.Sprintf("/api/v1/admin/orders/%d", order.ID),
		map[string]string{"status": models.OrderStatusCancelled}, admin)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	resp = doRequest(t, app, http.MethodGet, "/api/v1/products", nil, "")
	var products []services.ProductResponse
	decodeBody(t, resp, &products)
	require.Len(t, products, 1)
	assert.Equal(t, 5, products[0].StockQty)
}

// uploadReceipt posts a multipart receipt file for an order.
func uploadReceipt(t *testing.T, app *fiber.App, token string, orderID uint, filename string, payload []byte) *http.Response {
	t.Helper()
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile("file", filename)
	require.NoError(t, err)
	_, err = part.Write(payload)
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, fmt.Sprintf("/api/v1/orders/%d/receipt", orderID), &buf)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func TestReceiptUploadAndReview(t *testing.T) {
	app := setupApp(t)
	admin := adminToken(t, app)
	customer := registerAndLogin(t, app, "payer@example.com")

	riceID := createProduct(t, app, admin, "Rice 5kg", 8500, 5, nil)
	resp := doRequest(t, app, http.MethodPost, "/api/v1/orders", map[string]interface{}{
		"items":            []map[string]interface{}{{"product_id": riceID, "qty": 1}},
		"delivery_address": "12 Allen Avenue, Ikeja",
		"phone":            "08031234567",
	}, customer)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var order services.OrderResponse
	decodeBody(t, resp, &order)

	// Disallowed file type
	resp = uploadReceipt(t, app, customer, order.ID, "receipt.exe", []byte("nope"))
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()

	// Upload
	resp = uploadReceipt(t, app, customer, order.ID, "transfer.png", []byte("pngdata"))
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	var receipt models.Receipt
	decodeBody(t, resp, &receipt)
	assert.Equal(t, models.ReceiptStatusPending, receipt.Status)
	assert.NotEmpty(t, receipt.FileURL)

	// The customer can fetch it back
	resp = doRequest(t, app, http.MethodGet, fmt.Sprintf("/api/v1/orders/%d/receipt", order.ID), nil, customer)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	// A stranger cannot
	stranger := registerAndLogin(t, app, "nosy@example.com")
	resp = doRequest(t, app, http.MethodGet, fmt.Sprintf("/api/v1/orders/%d/receipt", order.ID), nil, stranger)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()

	// The order now reports its receipt state
	resp = doRequest(t, app, http.MethodGet, fmt.Sprintf("/api/v1/orders/%d", order.ID), nil, customer)
	var withReceipt services.OrderResponse
	decodeBody(t, resp, &withReceipt)
	assert.True(t, withReceipt.HasReceipt)
	assert.Equal(t, models.ReceiptStatusPending, withReceipt.ReceiptStatus)
	require.NotNil(t, withReceipt.ReceiptID)
	assert.Equal(t, receipt.ID, *withReceipt.ReceiptID)

	// The admin reads it through the order, without owning it
	resp = doRequest(t, app, http.MethodGet, fmt.Sprintf("/api/v1/admin/orders/%d/receipt", order.ID), nil, admin)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var adminView models.Receipt
	decodeBody(t, resp, &adminView)
	assert.Equal(t, receipt.ID, adminView.ID)

	// Reject, re-upload, approve, reviewing by the id the admin routes expose
	resp = doRequest(t, app, http.MethodPatch, fmt.Sprintf("/api/v1/admin/receipts/%d", adminView.ID),
		map[string]string{"status": "rejected", "admin_note": "blurry photo"}, admin)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var reviewed models.Receipt
	decodeBody(t, resp, &reviewed)
	assert.Equal(t, models.ReceiptStatusRejected, reviewed.Status)
	assert.Equal(t, "blurry photo", reviewed.AdminNote)

	resp = uploadReceipt(t, app, customer, order.ID, "retry.jpg", []byte("jpgdata"))
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	decodeBody(t, resp, &receipt)
	assert.Equal(t, models.ReceiptStatusPending, receipt.Status)
	assert.Empty(t, receipt.AdminNote)

	resp = doRequest(t, app, http.MethodPatch, fmt.Sprintf("/api/v1/admin/receipts/%d", receipt.ID),
		map[string]string{"status": "approved"}, admin)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	decodeBody(t, resp, &reviewed)
	assert.Equal(t, models.ReceiptStatusApproved, reviewed.Status)

	// No replacing an approved receipt
	resp = uploadReceipt(t, app, customer, order.ID, "again.png", []byte("pngdata"))
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()
}

func TestPaymentVerification(t *testing.T) {
	app := setupApp(t)
	admin := adminToken(t, app)
	customer := registerAndLogin(t, app, "verified@example.com")

	riceID := createProduct(t, app, admin, "Rice 5kg", 8500, 5, nil)
	resp := doRequest(t, app, http.MethodPost, "/api/v1/orders", map[string]interface{}{
		"items":            []map[string]interface{}{{"product_id": riceID, "qty": 1}},
		"delivery_address": "12 Allen Avenue, Ikeja",
		"phone":            "08031234567",
	}, customer)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var order services.OrderResponse
	decodeBody(t, resp, &order)

	// Placement created a pending payment row; the admin order detail
	// surfaces it for verification.
	resp = doRequest(t, app, http.MethodGet, fmt.Sprintf("/api/v1/admin/orders/%d", order.ID), nil, admin)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var adminOrder services.OrderResponse
	decodeBody(t, resp, &adminOrder)
	require.NotNil(t, adminOrder.Payment)
	assert.Equal(t, models.PaymentStatusPending, adminOrder.Payment.Status)

	resp = doRequest(t, app, http.MethodPatch, fmt.Sprintf("/api/v1/admin/payments/%d", adminOrder.Payment.ID),
		map[string]string{"status": "verified", "reference": "TRX-001"}, admin)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var payment models.Payment
	decodeBody(t, resp, &payment)
	assert.Equal(t, models.PaymentStatusVerified, payment.Status)
	assert.Equal(t, "TRX-001", payment.Reference)
	assert.NotNil(t, payment.VerifiedAt)
	assert.Equal(t, order.ID, payment.OrderID)

	// Unknown status is rejected
	resp = doRequest(t, app, http.MethodPatch, fmt.Sprintf("/api/v1/admin/payments/%d", adminOrder.Payment.ID),
		map[string]string{"status": "maybe"}, admin)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()
}
