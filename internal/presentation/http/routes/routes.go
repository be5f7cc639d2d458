package routes

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/kayatek/servis-api/internal/config"
	"github.com/kayatek/servis-api/internal/domain/entity"
	"github.com/kayatek/servis-api/internal/presentation/http/handler"
	"github.com/kayatek/servis-api/internal/presentation/http/middleware"
	"github.com/kayatek/servis-api/pkg/utils"
)

// Handlers holds all the HTTP handlers used for route registration.
type Handlers struct {
	Auth     *handler.AuthHandler
	Customer *handler.CustomerHandler
	Quote    *handler.QuoteHandler
	Ticket   *handler.TicketHandler
	Sale     *handler.SaleHandler
}

// Deps holds shared dependencies needed by the routes.
type Deps struct {
	JWTManager *utils.JWTManager
	Cfg        *config.Config
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

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		// Public routes (no authentication required)
		registerAuthRoutes(v1, h)

		// Protected routes (authentication required)
		protected := v1.Group("")
		protected.Use(middleware.AuthMiddleware(deps.JWTManager))

		// Per-user rate limiter
		rateLimiter := middleware.NewUserRateLimiter(middleware.RateLimiterConfig{
			RequestsPerSecond: float64(deps.Cfg.RateLimit.Requests) / float64(deps.Cfg.RateLimit.Duration),
			BurstSize:         deps.Cfg.RateLimit.Requests,
			CleanupInterval:   5 * time.Minute,
			EntryTTL:          10 * time.Minute,
		})
		protected.Use(rateLimiter.Middleware())

		registerProtectedRoutes(protected, h)
	}

	return router
}

func registerAuthRoutes(v1 *gin.RouterGroup, h *Handlers) {
	auth := v1.Group("/auth")
	{
		auth.POST("/login", h.Auth.Login)
		auth.POST("/register", h.Auth.Register)
		auth.POST("/refresh", h.Auth.Refresh)
	}
}

func registerProtectedRoutes(protected *gin.RouterGroup, h *Handlers) {
	// Profile
	protected.GET("/auth/me", h.Auth.Me)

	// Customers
	registerCustomerRoutes(protected, h)

	// Quotes
	registerQuoteRoutes(protected, h)

	// Service tickets
	registerTicketRoutes(protected, h)

	// Sales and commissions
	registerSaleRoutes(protected, h)
}

func registerCustomerRoutes(protected *gin.RouterGroup, h *Handlers) {
	customers := protected.Group("/customers")
	{
		customers.GET("", h.Customer.List)
		customers.POST("", h.Customer.Create)
		customers.GET("/:id", h.Customer.Get)
		customers.PUT("/:id", h.Customer.Update)
		customers.DELETE("/:id", middleware.RequireRole(entity.RoleAdmin), h.Customer.Delete)
	}
}

func registerQuoteRoutes(protected *gin.RouterGroup, h *Handlers) {
	quotes := protected.Group("/quotes")
	{
		quotes.GET("", h.Quote.List)
		quotes.POST("", h.Quote.Create)
		quotes.GET("/archive", h.Quote.ListArchive)
		quotes.GET("/:id", h.Quote.Get)
		quotes.PUT("/:id", h.Quote.Update)
		quotes.DELETE("/:id", h.Quote.Delete)
		quotes.POST("/:id/send", h.Quote.Send)
		quotes.GET("/:id/sent", h.Quote.ListSent)
		quotes.POST("/:id/approve", h.Sale.ApproveQuote)
	}
}

func registerTicketRoutes(protected *gin.RouterGroup, h *Handlers) {
	tickets := protected.Group("/tickets")
	{
		tickets.GET("", h.Ticket.List)
		tickets.POST("", h.Ticket.Create)
		tickets.POST("/bulk-quote", h.Ticket.SendBulkQuote)
		tickets.GET("/:id", h.Ticket.Get)
		tickets.PUT("/:id", h.Ticket.Update)
		tickets.DELETE("/:id", h.Ticket.Delete)
		tickets.PUT("/:id/status", h.Ticket.SetStatus)
	}
}

func registerSaleRoutes(protected *gin.RouterGroup, h *Handlers) {
	sales := protected.Group("/sales")
	{
		sales.GET("", h.Sale.List)
		sales.GET("/:id", h.Sale.Get)
		sales.POST("/:id/payments", h.Sale.ApplyPayment)
	}

	commissions := protected.Group("/commissions")
	{
		commissions.GET("", h.Sale.ListCommissions)
	}
}
