// Package server contains the HTTP handlers for the storefront API.
package server

import (
	"context"
	"fmt"
	"time"

	"storefront/internal/cache"
	"storefront/internal/config"
	"storefront/internal/database"
	"storefront/internal/middleware"
	"storefront/internal/models"
	"storefront/internal/repository"
	"storefront/internal/service"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/monitor"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Server holds all dependencies and provides handlers
type Server struct {
	config         *config.Config
	db             *gorm.DB
	redis          *redis.Client
	promMiddleware *fiberprometheus.FiberPrometheus

	userRepo       repository.UserRepository
	categoryRepo   repository.CategoryRepository
	productRepo    repository.ProductRepository
	cartRepo       repository.CartRepository
	orderRepo      repository.OrderRepository
	reviewRepo     repository.ReviewRepository
	wishlistRepo   repository.WishlistRepository
	blogRepo       repository.BlogRepository
	commentRepo    repository.CommentRepository
	engagementRepo repository.EngagementRepository

	userService     *service.UserService
	catalogService  *service.CatalogService
	cartService     *service.CartService
	orderService    *service.OrderService
	reviewService   *service.ReviewService
	wishlistService *service.WishlistService
	blogService     *service.BlogService
	commentService  *service.CommentService
	adminService    *service.AdminService
}

// NewServer creates a new server instance with all dependencies
func NewServer(cfg *config.Config) (*Server, error) {
	db, err := database.Connect(cfg)
	if err != nil {
		return nil, fmt.Errorf("database connection failed: %w", err)
	}

	cache.InitRedis(cfg.RedisURL)

	return NewServerWithDeps(cfg, db, cache.GetClient())
}

// NewServerWithDeps creates a Server using already-initialized dependencies.
// Use this in tests or when a bootstrap layer establishes DB/Redis.
func NewServerWithDeps(cfg *config.Config, db *gorm.DB, redisClient *redis.Client) (*Server, error) {
	s := &Server{
		config:         cfg,
		db:             db,
		redis:          redisClient,
		promMiddleware: middleware.InitMetrics("storefront-api"),

		userRepo:       repository.NewUserRepository(db),
		categoryRepo:   repository.NewCategoryRepository(db),
		productRepo:    repository.NewProductRepository(db),
		cartRepo:       repository.NewCartRepository(db),
		orderRepo:      repository.NewOrderRepository(db),
		reviewRepo:     repository.NewReviewRepository(db),
		wishlistRepo:   repository.NewWishlistRepository(db),
		blogRepo:       repository.NewBlogRepository(db),
		commentRepo:    repository.NewCommentRepository(db),
		engagementRepo: repository.NewEngagementRepository(db),
	}

	s.userService = service.NewUserService(s.userRepo, cfg.JWTSecret)
	s.catalogService = service.NewCatalogService(s.productRepo, s.categoryRepo)
	s.cartService = service.NewCartService(s.cartRepo, s.productRepo)
	s.orderService = service.NewOrderService(db, s.orderRepo, s.cartRepo)
	s.reviewService = service.NewReviewService(s.reviewRepo, s.productRepo)
	s.wishlistService = service.NewWishlistService(s.wishlistRepo, s.productRepo)
	s.blogService = service.NewBlogService(s.blogRepo, s.engagementRepo)
	s.commentService = service.NewCommentService(s.commentRepo, s.blogRepo, s.engagementRepo)
	s.adminService = service.NewAdminService(s.userRepo, s.productRepo, s.orderRepo, s.blogRepo, s.commentRepo, s.reviewRepo)

	return s, nil
}

// SetupMiddleware configures middleware for the Fiber app. The gate runs
// before any route handling so every request is classified and routed
// exactly once.
func (s *Server) SetupMiddleware(app *fiber.App) {
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(middleware.ContextMiddleware())

	if s.promMiddleware != nil {
		app.Use(middleware.MetricsMiddleware(s.promMiddleware))
	}

	app.Use(helmet.New())

	if s.config.TracingEnabled {
		app.Use(middleware.TracingMiddleware())
	}

	app.Use(middleware.StructuredLogger())

	// CORS runs before middlewares that can short-circuit so browser
	// clients still receive CORS headers on error responses.
	origins := s.config.AllowedOrigins
	if origins == "" {
		origins = "http://localhost:5173,http://localhost:3000,http://127.0.0.1:5173"
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowCredentials: true,
		MaxAge:           86400,
	}))

	// Global rate limiting (100 requests per minute per IP)
	app.Use(limiter.New(limiter.Config{
		Max:        100,
		Expiration: 1 * time.Minute,
		Next: func(c *fiber.Ctx) bool {
			return c.Method() == fiber.MethodOptions
		},
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"error": "Too many requests, please try again later.",
			})
		},
	}))

	// The gate decodes the session credential once, rewrites admin-host
	// requests, and enforces the admin boundary.
	app.Use(middleware.Gate(s.config))
}

// SetupRoutes configures all routes for the application
func (s *Server) SetupRoutes(app *fiber.App) {
	// Health checks
	app.Get("/health/live", s.LivenessCheck)
	app.Get("/health/ready", s.ReadinessCheck)
	app.Get("/health", s.ReadinessCheck)

	if s.promMiddleware != nil {
		s.promMiddleware.RegisterAt(app, "/metrics")
	}

	// Page shells. The SPA owns rendering; these exist so gate redirects
	// and host rewrites always land on a served route.
	app.Get("/", s.HomePage)
	app.Get("/login", s.LoginPage)
	app.Get("/admin/login", s.AdminLoginPage)
	app.Get("/admin", s.AdminPage)
	app.Get("/admin/*", s.AdminPage)

	api := app.Group("/api")
	api.Get("/", s.HealthCheck)
	api.Get("/metrics/dashboard", monitor.New(monitor.Config{
		Title: "Storefront Metrics Dashboard",
	}))

	// Auth routes
	auth := api.Group("/auth")
	auth.Post("/signup", middleware.RateLimit(
		s.redis, 3, 10*time.Minute, "signup"), s.Signup)
	auth.Post("/login", middleware.RateLimit(
		s.redis, 10, 5*time.Minute, "login"), s.Login)
	auth.Post("/logout", s.Logout)

	// Public catalog routes
	api.Get("/categories", s.GetCategories)
	products := api.Group("/products")
	products.Get("/", s.GetProducts)
	products.Get("/search", middleware.RateLimit(
		s.redis, 10, time.Minute, "search"), s.SearchProducts)
	products.Get("/:id/reviews", s.GetProductReviews)
	products.Get("/:slug", s.GetProduct)

	// Public blog routes
	posts := api.Group("/posts")
	posts.Get("/", s.GetPosts)
	posts.Get("/:id/comments", s.GetComments)
	posts.Get("/:slug", s.GetPost)

	// Protected routes
	protected := api.Group("", s.AuthRequired())

	// Profile
	users := protected.Group("/users")
	users.Get("/me", s.GetMyProfile)
	users.Put("/me", s.UpdateMyProfile)

	// Cart and checkout
	cart := protected.Group("/cart")
	cart.Get("/", s.GetCart)
	cart.Post("/items", s.AddCartItem)
	cart.Put("/items/:id", s.UpdateCartItem)
	cart.Delete("/items/:id", s.RemoveCartItem)
	cart.Delete("/", s.ClearCart)
	protected.Post("/checkout", middleware.RateLimit(
		s.redis, 5, time.Minute, "checkout"), s.Checkout)

	// Orders
	orders := protected.Group("/orders")
	orders.Get("/", s.GetMyOrders)
	orders.Post("/:id/cancel", s.CancelOrder)
	orders.Get("/:id", s.GetOrder)

	// Reviews
	protected.Post("/products/:id/reviews", middleware.RateLimit(
		s.redis, 5, time.Minute, "create_review"), s.CreateReview)
	protected.Put("/reviews/:id", s.UpdateReview)
	protected.Delete("/reviews/:id", s.DeleteReview)

	// Wishlist
	wishlist := protected.Group("/wishlist")
	wishlist.Get("/", s.GetWishlist)
	wishlist.Post("/:productId", s.AddWishlistItem)
	wishlist.Delete("/:productId", s.RemoveWishlistItem)

	// Blog engagement and comments
	protectedPosts := protected.Group("/posts")
	protectedPosts.Post("/:id/like", s.TogglePostLike)
	protectedPosts.Post("/:id/bookmark", s.TogglePostBookmark)
	protectedPosts.Post("/:id/comments", middleware.RateLimit(
		s.redis, 10, time.Minute, "create_comment"), s.CreateComment)
	protected.Put("/comments/:id", s.UpdateComment)
	protected.Delete("/comments/:id", s.DeleteComment)
	protected.Post("/comments/:id/like", s.ToggleCommentLike)

	// Blog authoring for staff (admin or manager). These live outside the
	// /api/admin prefix because managers are not admins to the gate.
	staffPosts := protected.Group("/posts", s.StaffRequired())
	staffPosts.Post("/", s.CreatePost)
	staffPosts.Put("/:id", s.UpdatePost)
	staffPosts.Delete("/:id", s.DeletePost)
	staffPosts.Post("/:id/publish", s.PublishPost)
	staffPosts.Post("/:id/unpublish", s.UnpublishPost)
	protected.Get("/drafts", s.StaffRequired(), s.GetDrafts)

	// Admin API. The gate has already returned 401 for non-admin
	// credentials; AdminRequired is the in-process backstop.
	admin := api.Group("/admin", s.AuthRequired(), s.AdminRequired())
	admin.Get("/dashboard", s.AdminDashboard)
	admin.Get("/users", s.AdminGetUsers)
	admin.Put("/users/:id/role", s.AdminUpdateUserRole)
	admin.Get("/products", s.AdminGetProducts)
	admin.Post("/products", s.AdminCreateProduct)
	admin.Put("/products/:id", s.AdminUpdateProduct)
	admin.Delete("/products/:id", s.AdminDeleteProduct)
	admin.Post("/categories", s.AdminCreateCategory)
	admin.Put("/categories/:id", s.AdminUpdateCategory)
	admin.Delete("/categories/:id", s.AdminDeleteCategory)
	admin.Get("/orders", s.AdminGetOrders)
	admin.Put("/orders/:id/status", s.AdminUpdateOrderStatus)
	admin.Get("/comments", s.AdminGetComments)
	admin.Delete("/comments/:id", s.AdminDeleteComment)
}

// Shutdown releases server resources. Safe to call once after the fiber
// app has stopped accepting requests.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.redis != nil {
		if err := s.redis.Close(); err != nil {
			return err
		}
	}
	if s.db != nil {
		sqlDB, err := s.db.DB()
		if err != nil {
			return err
		}
		return sqlDB.Close()
	}
	return nil
}

// HealthCheck is a legacy/simple alias for ReadinessCheck
func (s *Server) HealthCheck(c *fiber.Ctx) error {
	return s.ReadinessCheck(c)
}

// LivenessCheck handles liveness probe requests
func (s *Server) LivenessCheck(c *fiber.Ctx) error {
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"status": "up",
		"time":   time.Now(),
	})
}

// ReadinessCheck handles readiness probe requests
func (s *Server) ReadinessCheck(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 5*time.Second)
	defer cancel()

	dbStatus := "healthy"
	sqlDB, err := s.db.DB()
	if err != nil {
		dbStatus = "unhealthy"
	} else if err := sqlDB.PingContext(ctx); err != nil {
		dbStatus = "unhealthy"
	}

	redisStatus := "healthy"
	if s.redis != nil {
		if err := s.redis.Ping(ctx).Err(); err != nil {
			redisStatus = "unhealthy"
		}
	} else {
		// The app degrades without Redis; readiness only reports it.
		redisStatus = "unavailable"
	}

	status := fiber.StatusOK
	overall := "healthy"
	if dbStatus == "unhealthy" {
		status = fiber.StatusServiceUnavailable
		overall = "unhealthy"
	}

	return c.Status(status).JSON(fiber.Map{
		"status": overall,
		"checks": fiber.Map{
			"database": dbStatus,
			"redis":    redisStatus,
		},
		"time": time.Now(),
	})
}

// AuthRequired rejects requests that carry no decoded identity. The gate
// has already parsed the credential; this only checks that it did.
func (s *Server) AuthRequired() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if _, ok := c.Locals(middleware.LocalUserID).(uint); !ok {
			return models.RespondWithError(c, fiber.StatusUnauthorized,
				models.NewUnauthorizedError("Authorization required"))
		}
		return c.Next()
	}
}

// AdminRequired rejects non-admin users with 403. Must be placed after
// AuthRequired so the identity locals are present.
func (s *Server) AdminRequired() fiber.Handler {
	return func(c *fiber.Ctx) error {
		role, _ := c.Locals(middleware.LocalRole).(string)
		if role != models.RoleAdmin {
			return models.RespondWithError(c, fiber.StatusForbidden,
				models.NewForbiddenError("Admin access required"))
		}
		return c.Next()
	}
}

// StaffRequired admits admins and managers.
func (s *Server) StaffRequired() fiber.Handler {
	return func(c *fiber.Ctx) error {
		role, _ := c.Locals(middleware.LocalRole).(string)
		if role != models.RoleAdmin && role != models.RoleManager {
			return models.RespondWithError(c, fiber.StatusForbidden,
				models.NewForbiddenError("Staff access required"))
		}
		return c.Next()
	}
}
