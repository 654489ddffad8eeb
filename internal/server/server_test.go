package server

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"storefront/internal/config"
	"storefront/internal/database"
	"storefront/internal/middleware"
	"storefront/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

const testSecret = "server_test_secret"

type testEnv struct {
	app *fiber.App
	db  *gorm.DB
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	t.Setenv("APP_ENV", "test")

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(database.Models()...))

	cfg := &config.Config{
		JWTSecret:      testSecret,
		Env:            "test",
		AdminHostLabel: "admin",
	}

	srv, err := NewServerWithDeps(cfg, db, nil)
	require.NoError(t, err)

	app := fiber.New()
	srv.SetupMiddleware(app)
	srv.SetupRoutes(app)

	return &testEnv{app: app, db: db}
}

func (e *testEnv) createUser(t *testing.T, username, role string) *models.User {
	t.Helper()
	hashed, err := bcrypt.GenerateFromPassword([]byte("ServerTest123!"), bcrypt.MinCost)
	require.NoError(t, err)
	user := &models.User{
		Username: username,
		Email:    username + "@example.com",
		Password: string(hashed),
		Role:     role,
	}
	require.NoError(t, e.db.Create(user).Error)
	return user
}

func (e *testEnv) token(t *testing.T, user *models.User) string {
	t.Helper()
	token, err := middleware.SignSession(testSecret, user.ID, user.Username, user.Role)
	require.NoError(t, err)
	return token
}

func (e *testEnv) request(t *testing.T, method, path, token string, body any) *http.Response {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := e.app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decodeBody(t *testing.T, resp *http.Response, out any) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
}

func (e *testEnv) seedProduct(t *testing.T, slug string, priceCents int64, stock int) *models.Product {
	t.Helper()
	category := &models.Category{Name: slug + " cat", Slug: slug + "-cat"}
	require.NoError(t, e.db.Create(category).Error)
	product := &models.Product{
		Name: slug, Slug: slug, PriceCents: priceCents, Stock: stock,
		Active: true, CategoryID: category.ID,
	}
	require.NoError(t, e.db.Create(product).Error)
	return product
}

func TestSignupLoginFlow(t *testing.T) {
	env := newTestEnv(t)

	resp := env.request(t, fiber.MethodPost, "/api/auth/signup", "", fiber.Map{
		"username": "flow_user",
		"email":    "flow@example.com",
		"password": "SuperSecret123!",
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	var auth models.AuthResponse
	decodeBody(t, resp, &auth)
	assert.NotEmpty(t, auth.Token)
	assert.Equal(t, models.RoleUser, auth.User.Role)

	// duplicate email conflicts
	resp = env.request(t, fiber.MethodPost, "/api/auth/signup", "", fiber.Map{
		"username": "flow_user_2",
		"email":    "flow@example.com",
		"password": "SuperSecret123!",
	})
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)

	resp = env.request(t, fiber.MethodPost, "/api/auth/login", "", fiber.Map{
		"email":    "flow@example.com",
		"password": "SuperSecret123!",
	})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp = env.request(t, fiber.MethodPost, "/api/auth/login", "", fiber.Map{
		"email":    "flow@example.com",
		"password": "WrongSecret123!",
	})
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestProtectedRoutesRequireIdentity(t *testing.T) {
	env := newTestEnv(t)

	for _, path := range []string{"/api/users/me", "/api/cart/", "/api/orders/", "/api/wishlist/"} {
		resp := env.request(t, fiber.MethodGet, path, "", nil)
		assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode, path)
	}
}

func TestCartFlowOverHTTP(t *testing.T) {
	env := newTestEnv(t)
	user := env.createUser(t, "carter", models.RoleUser)
	token := env.token(t, user)
	product := env.seedProduct(t, "travel-mug", 1899, 5)

	resp := env.request(t, fiber.MethodPost, "/api/cart/items", token, fiber.Map{
		"product_id": product.ID,
		"quantity":   2,
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	var cart models.CartResponse
	decodeBody(t, resp, &cart)
	require.Len(t, cart.Cart.Items, 1)
	assert.Equal(t, int64(2*1899), cart.SubtotalCents)

	// quantity beyond stock conflicts
	resp = env.request(t, fiber.MethodPost, "/api/cart/items", token, fiber.Map{
		"product_id": product.ID,
		"quantity":   4,
	})
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)
}

func TestWishlistDoubleAddOverHTTP(t *testing.T) {
	env := newTestEnv(t)
	user := env.createUser(t, "wisher", models.RoleUser)
	token := env.token(t, user)
	product := env.seedProduct(t, "field-knife", 3499, 2)

	path := fmt.Sprintf("/api/wishlist/%d", product.ID)

	resp := env.request(t, fiber.MethodPost, path, token, nil)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	resp = env.request(t, fiber.MethodPost, path, token, nil)
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)

	resp = env.request(t, fiber.MethodDelete, path, token, nil)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp = env.request(t, fiber.MethodDelete, path, token, nil)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestCheckoutOverHTTP(t *testing.T) {
	env := newTestEnv(t)
	user := env.createUser(t, "buyer", models.RoleUser)
	token := env.token(t, user)
	product := env.seedProduct(t, "desk-lamp", 4599, 10)

	resp := env.request(t, fiber.MethodPost, "/api/cart/items", token, fiber.Map{
		"product_id": product.ID,
		"quantity":   2,
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	resp = env.request(t, fiber.MethodPost, "/api/checkout", token, fiber.Map{
		"ship_name":    "Pat Buyer",
		"ship_address": "1 Main St",
		"ship_city":    "Springfield",
		"ship_zip":     "12345",
		"ship_country": "US",
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	var order models.Order
	decodeBody(t, resp, &order)
	assert.Equal(t, models.OrderStatusPending, order.Status)
	assert.Equal(t, int64(2*4599), order.TotalCents)

	// cart is now empty, second checkout fails validation
	resp = env.request(t, fiber.MethodPost, "/api/checkout", token, fiber.Map{
		"ship_name":    "Pat Buyer",
		"ship_address": "1 Main St",
		"ship_city":    "Springfield",
		"ship_zip":     "12345",
		"ship_country": "US",
	})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestAdminRoutesGatedEndToEnd(t *testing.T) {
	env := newTestEnv(t)
	user := env.createUser(t, "plain", models.RoleUser)
	manager := env.createUser(t, "manager", models.RoleManager)
	admin := env.createUser(t, "chief", models.RoleAdmin)

	// the gate rejects non-admin credentials before routing
	resp := env.request(t, fiber.MethodGet, "/api/admin/dashboard", env.token(t, user), nil)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

	resp = env.request(t, fiber.MethodGet, "/api/admin/dashboard", env.token(t, manager), nil)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

	resp = env.request(t, fiber.MethodGet, "/api/admin/dashboard", env.token(t, admin), nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var dashboard models.DashboardResponse
	decodeBody(t, resp, &dashboard)
	assert.Equal(t, int64(3), dashboard.Users)
}

func TestStaffBlogAuthoringOverHTTP(t *testing.T) {
	env := newTestEnv(t)
	user := env.createUser(t, "plain", models.RoleUser)
	manager := env.createUser(t, "writer", models.RoleManager)

	// plain users cannot author posts
	resp := env.request(t, fiber.MethodPost, "/api/posts/", env.token(t, user), fiber.Map{
		"title": "Nope",
		"body":  "body",
	})
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)

	// managers can, without any admin credential
	resp = env.request(t, fiber.MethodPost, "/api/posts/", env.token(t, manager), fiber.Map{
		"title": "October Picks",
		"body":  "Our favorites this month.",
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	var post models.BlogPost
	decodeBody(t, resp, &post)
	assert.Equal(t, "october-picks", post.Slug)
	assert.False(t, post.Published)

	// drafts are invisible on the public read
	resp = env.request(t, fiber.MethodGet, "/api/posts/october-picks", "", nil)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)

	resp = env.request(t, fiber.MethodPost, fmt.Sprintf("/api/posts/%d/publish", post.ID), env.token(t, manager), nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp = env.request(t, fiber.MethodGet, "/api/posts/october-picks", "", nil)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestPublicCatalogReads(t *testing.T) {
	env := newTestEnv(t)
	env.seedProduct(t, "plain-tee", 1999, 50)

	resp := env.request(t, fiber.MethodGet, "/api/products/", "", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var list models.ProductListResponse
	decodeBody(t, resp, &list)
	require.Len(t, list.Products, 1)
	assert.Equal(t, "plain-tee", list.Products[0].Slug)

	resp = env.request(t, fiber.MethodGet, "/api/products/plain-tee", "", nil)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp = env.request(t, fiber.MethodGet, "/api/products/no-such-item", "", nil)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}
