package routes

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/iliri/iliri-api/internal/config"
	domainRepo "github.com/iliri/iliri-api/internal/domain/repository"
	"github.com/iliri/iliri-api/internal/presentation/http/handler"
	"github.com/iliri/iliri-api/internal/presentation/http/middleware"
)

// Handlers holds all the HTTP handlers used for route registration.
type Handlers struct {
	Auth      *handler.AuthHandler
	Dashboard *handler.DashboardHandler
	Article   *handler.ArticleHandler
	Supplier  *handler.SupplierHandler
	Client    *handler.ClientHandler
	Purchase  *handler.PurchaseHandler
	Sale      *handler.SaleHandler
	Receipt   *handler.ReceiptHandler
}

// Deps holds shared dependencies needed by the routes.
type Deps struct {
	TokenValidator  middleware.TokenValidator
	Cfg             *config.Config
	IdempotencyRepo domainRepo.IdempotencyRepository
}

// Setup creates the Gin router and registers all routes.
func Setup(h *Handlers, deps *Deps) *gin.Engine {
	router := gin.New()

	// Global middleware
	router.Use(gin.Recovery())
	router.Use(middleware.LoggerMiddleware())
	router.Use(middleware.CORSMiddleware(&deps.Cfg.CORS))

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"service": deps.Cfg.App.Name,
		})
	})

	requests, duration := deps.Cfg.RateLimit.Requests, deps.Cfg.RateLimit.Duration
	if requests <= 0 {
		requests = 100
	}
	if duration <= 0 {
		duration = 60
	}
	rateLimiter := middleware.NewRateLimiter(middleware.RateLimiterConfig{
		RequestsPerSecond: float64(requests) / float64(duration),
		BurstSize:         requests,
		CleanupInterval:   5 * time.Minute,
		EntryTTL:          10 * time.Minute,
	})

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		// Public routes (no authentication required)
		public := v1.Group("")
		public.Use(rateLimiter.Middleware())
		registerAuthRoutes(public, h)

		// Protected routes (authentication required)
		protected := v1.Group("")
		protected.Use(middleware.AuthMiddleware(deps.TokenValidator))
		protected.Use(rateLimiter.Middleware())

		registerProtectedRoutes(protected, h, deps)
	}

	return router
}

func registerAuthRoutes(v1 *gin.RouterGroup, h *Handlers) {
	auth := v1.Group("/auth")
	{
		auth.POST("/login", h.Auth.Login)
		auth.GET("/session", h.Auth.Session)
	}
}

func registerProtectedRoutes(protected *gin.RouterGroup, h *Handlers, deps *Deps) {
	// Auth/Profile routes
	protected.POST("/auth/logout", h.Auth.Logout)
	protected.GET("/profile", h.Auth.GetProfile)
	protected.PUT("/profile", h.Auth.UpdateProfile)
	protected.PUT("/profile/password", h.Auth.ChangePassword)

	// Dashboard
	registerDashboardRoutes(protected, h)

	// Articles
	registerArticleRoutes(protected, h)

	// Suppliers
	registerSupplierRoutes(protected, h)

	// Clients
	registerClientRoutes(protected, h)

	idempotency := middleware.Idempotency(middleware.IdempotencyConfig{
		Repo: deps.IdempotencyRepo,
	})

	// Purchases
	registerPurchaseRoutes(protected, h, idempotency)

	// Sales and payments
	registerSaleRoutes(protected, h, idempotency)

	// Receipts
	registerReceiptRoutes(protected, h)
}

func registerDashboardRoutes(protected *gin.RouterGroup, h *Handlers) {
	dashboard := protected.Group("/dashboard")
	{
		dashboard.GET("", h.Dashboard.GetStats)
		dashboard.POST("/refresh", h.Dashboard.Refresh)
		dashboard.GET("/notes", h.Dashboard.GetNotes)
		dashboard.PUT("/notes", h.Dashboard.SaveNotes)
	}

	notifications := protected.Group("/notifications")
	{
		notifications.GET("", h.Dashboard.ListNotifications)
		notifications.POST("/read-all", h.Dashboard.MarkAllNotificationsRead)
		notifications.POST("/:id/read", h.Dashboard.MarkNotificationRead)
	}
}

func registerArticleRoutes(protected *gin.RouterGroup, h *Handlers) {
	articles := protected.Group("/articles")
	{
		articles.GET("", h.Article.List)
		articles.GET("/search", h.Article.Search)
		articles.GET("/low-stock", h.Article.LowStock)
		articles.GET("/:id", h.Article.Get)
		articles.POST("", h.Article.Create)
		articles.PUT("/:id", h.Article.Update)
		articles.PATCH("/:id/field", h.Article.Patch)
		articles.DELETE("/:id", h.Article.Delete)
	}
}

func registerSupplierRoutes(protected *gin.RouterGroup, h *Handlers) {
	suppliers := protected.Group("/suppliers")
	{
		suppliers.GET("", h.Supplier.List)
		suppliers.GET("/:id", h.Supplier.Get)
		suppliers.POST("", h.Supplier.Create)
		suppliers.PUT("/:id", h.Supplier.Update)
		suppliers.DELETE("/:id", h.Supplier.Delete)
	}
}

func registerClientRoutes(protected *gin.RouterGroup, h *Handlers) {
	clients := protected.Group("/clients")
	{
		clients.GET("", h.Client.List)
		clients.GET("/:id", h.Client.Get)
		clients.POST("", h.Client.Create)
		clients.PUT("/:id", h.Client.Update)
		clients.DELETE("/:id", h.Client.Delete)
	}
}

func registerPurchaseRoutes(protected *gin.RouterGroup, h *Handlers, idempotency gin.HandlerFunc) {
	purchases := protected.Group("/purchases")
	{
		purchases.GET("", h.Purchase.List)
		purchases.GET("/:id", h.Purchase.Get)
		purchases.POST("", idempotency, h.Purchase.Create)
		purchases.DELETE("/:id", h.Purchase.Delete)
	}
}

func registerSaleRoutes(protected *gin.RouterGroup, h *Handlers, idempotency gin.HandlerFunc) {
	sales := protected.Group("/sales")
	{
		sales.GET("", h.Sale.List)
		sales.GET("/:id", h.Sale.Get)
		sales.POST("", idempotency, h.Sale.Create)
		sales.PUT("/:id/reference", h.Sale.UpdateReference)
		sales.DELETE("/:id", h.Sale.Delete)
		sales.GET("/:id/payments", h.Sale.ListPayments)
		sales.POST("/:id/payments", idempotency, h.Sale.RecordPayment)
		sales.POST("/:id/settle", h.Sale.Settle)
	}

	protected.GET("/prices/last", h.Sale.LastUsedPrice)
}

func registerReceiptRoutes(protected *gin.RouterGroup, h *Handlers) {
	protected.GET("/printer/status", h.Receipt.GetStatus)
	protected.POST("/sales/:id/print", h.Receipt.PrintSale)
	protected.POST("/purchases/:id/print", h.Receipt.PrintPurchase)
}
