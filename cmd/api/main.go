package main

import (
	"log"

	"github.com/gin-gonic/gin"

	"github.com/kayatek/servis-api/internal/application/service"
	"github.com/kayatek/servis-api/internal/config"
	"github.com/kayatek/servis-api/internal/infrastructure/database"
	"github.com/kayatek/servis-api/internal/infrastructure/repository"
	"github.com/kayatek/servis-api/internal/presentation/http/handler"
	"github.com/kayatek/servis-api/internal/presentation/http/routes"
	"github.com/kayatek/servis-api/pkg/email"
	"github.com/kayatek/servis-api/pkg/renderer"
	"github.com/kayatek/servis-api/pkg/utils"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Set Gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Connect to database
	db, err := database.NewPostgresDB(&cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Run auto-migrations
	if err := database.AutoMigrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Seed default data
	if err := database.SeedDefaultData(db); err != nil {
		log.Printf("Warning: Failed to seed default data: %v", err)
	}

	// Initialize JWT manager
	jwtManager := utils.NewJWTManager(
		cfg.JWT.Secret,
		cfg.JWT.ExpiryHours,
		cfg.JWT.RefreshExpiryHours,
	)

	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	customerRepo := repository.NewCustomerRepository(db)
	quoteRepo := repository.NewQuoteRepository(db)
	quoteLineRepo := repository.NewQuoteLineRepository(db)
	sentQuoteRepo := repository.NewSentQuoteRepository(db)
	ticketRepo := repository.NewTicketRepository(db)
	ticketItemRepo := repository.NewTicketItemRepository(db)
	saleRepo := repository.NewSaleRepository(db)
	paymentRepo := repository.NewPaymentRepository(db)
	commissionRepo := repository.NewCommissionRepository(db)
	txManager := repository.NewTransactionManager(db)

	// Initialize shared services
	documentBuilder := service.NewDocumentBuilder()
	documentRenderer := renderer.New()
	mailer := email.NewEmailService(cfg.SMTP)

	// Initialize application services
	authService := service.NewAuthService(userRepo, jwtManager)
	customerService := service.NewCustomerService(customerRepo)
	quoteService := service.NewQuoteService(
		quoteRepo, quoteLineRepo, sentQuoteRepo, txManager,
		documentBuilder, documentRenderer, mailer,
	)
	ticketService := service.NewTicketService(
		ticketRepo, ticketItemRepo, quoteRepo, quoteLineRepo, sentQuoteRepo,
		txManager, documentBuilder, documentRenderer, mailer,
	)
	settlementService := service.NewSettlementService(
		quoteRepo, saleRepo, paymentRepo, commissionRepo, txManager,
	)

	// Initialize handlers
	handlers := &routes.Handlers{
		Auth:     handler.NewAuthHandler(authService),
		Customer: handler.NewCustomerHandler(customerService),
		Quote:    handler.NewQuoteHandler(quoteService),
		Ticket:   handler.NewTicketHandler(ticketService),
		Sale:     handler.NewSaleHandler(settlementService),
	}

	// Setup routes
	router := routes.Setup(handlers, &routes.Deps{
		JWTManager: jwtManager,
		Cfg:        cfg,
	})

	// Start server
	addr := ":" + cfg.App.Port
	log.Printf("Starting %s on %s", cfg.App.Name, addr)
	if err := router.Run(addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
