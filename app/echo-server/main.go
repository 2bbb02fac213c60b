package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"pricedeck/app/echo-server/router"
	"pricedeck/business/alerts"
	"pricedeck/business/approvals"
	"pricedeck/business/competitor"
	"pricedeck/business/ingest"
	"pricedeck/business/insights"
	"pricedeck/business/orders"
	"pricedeck/business/pricing"
	"pricedeck/business/product"
	"pricedeck/business/user"
	"pricedeck/domain"
	"pricedeck/internal/middleware"
	"pricedeck/internal/repository/notification"
	psqlRepo "pricedeck/internal/repository/postgres"
	redisRepo "pricedeck/internal/repository/redis"
	"pricedeck/internal/rest"
	"pricedeck/pkg/config"
	"pricedeck/pkg/database"
	redisdb "pricedeck/pkg/database/redis"
	"pricedeck/pkg/logger"
	"pricedeck/pkg/metrics"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger.Init(cfg.App.Environment)
	logger.Info("Starting PriceDeck", "version", cfg.App.Version)

	metrics.Init()

	db, err := database.InitPostgres(cfg)
	if err != nil {
		logger.Fatal("Failed to connect to database", "error", err)
	}

	logger.Info("Database connected successfully")

	if err := db.AutoMigrate(
		&domain.User{},
		&domain.Product{},
		&domain.CompetitorPrice{},
		&domain.OrderLine{},
		&domain.PriceApproval{},
	); err != nil {
		logger.Fatal("Failed to migrate database", "error", err)
	}

	// Redis is optional: without it the API falls back to plain JWT auth
	// and recomputes recommendations on every request.
	var recommendationCache pricing.RecommendationCache
	var tokenRepo user.TokenRepository
	authRequired := middleware.AuthMiddleware()

	redisClient, err := redisdb.NewRedisClient(cfg)
	if err != nil {
		logger.Warn("Redis unavailable, running without cache and session store", "error", err)
	} else {
		logger.Info("Redis connected successfully")
		recommendationCache = redisRepo.NewRecommendationCache(
			redisClient,
			time.Duration(cfg.Pricing.CacheTTLSeconds)*time.Second,
		)
		tokenRepo = redisRepo.NewTokenRepository(redisClient)
	}

	// Init notification from mailjet
	mailjetEmail := notification.NewMailjetRepository(
		notification.MailjetConfig{
			MailjetBaseURL:           cfg.Mailjet.MailjetBaseUrl,
			MailjetBasicAuthUsername: cfg.Mailjet.MailjetBasicAuthUsername,
			MailjetBasicAuthPassword: cfg.Mailjet.MailjetBasicAuthPassword,
			MailjetSenderEmail:       cfg.Mailjet.MailjetSenderEmail,
			MailjetSenderName:        cfg.Mailjet.MailjetSenderName,
			AlertRecipientEmail:      cfg.Mailjet.AlertRecipientEmail,
			AlertRecipientName:       cfg.Mailjet.AlertRecipientName,
		},
	)

	// Init validate
	validate := validator.New()

	// Init repo
	userRepo := psqlRepo.NewUserRepository(db)
	productsRepo := psqlRepo.NewProductRepository(db)
	competitorRepo := psqlRepo.NewCompetitorRepository(db)
	ordersRepo := psqlRepo.NewOrdersRepository(db)
	approvalRepo := psqlRepo.NewApprovalRepository(db)

	// Init pricing engine
	pricingCfg := pricing.DefaultConfig()
	pricingCfg.MLWeight = cfg.Pricing.MLWeight
	pricingCfg.TrainingSamples = cfg.Pricing.TrainingSamples

	engine := pricing.NewEngine(pricingCfg)

	trainStart := time.Now()
	if err := engine.Train(); err != nil {
		logger.Fatal("Failed to train pricing model", "error", err)
	}
	logger.Info("Pricing model trained", "duration", time.Since(trainStart).String())

	// Init service
	userSvc := user.NewUserService(userRepo, tokenRepo, validate)
	productSvc := product.NewProductService(productsRepo)
	competitorSvc := competitor.NewCompetitorService(competitorRepo)
	ordersSvc := orders.NewOrdersService(ordersRepo)
	ingestSvc := ingest.NewService(productsRepo, competitorRepo, ordersRepo)
	pricingSvc := pricing.NewService(engine, ingestSvc, recommendationCache)
	approvalsSvc := approvals.NewService(approvalRepo)
	alertsSvc := alerts.NewService(ingestSvc, mailjetEmail)
	insightsSvc := insights.NewService(productsRepo)

	if tokenRepo != nil {
		authRequired = middleware.AuthMiddlewareWithRedis(userSvc)
	}
	adminOnly := middleware.AdminOnly()
	selfOrAdmin := middleware.SelfOrAdmin()

	// Init handler
	userHandler := rest.NewUserHandler(userSvc)
	productHandler := rest.NewProductHandler(productSvc)
	competitorHandler := rest.NewCompetitorHandler(competitorSvc)
	ordersHandler := rest.NewOrdersHandler(ordersSvc)
	ingestHandler := rest.NewIngestHandler(ingestSvc, pricingSvc)
	pricingHandler := rest.NewPricingHandler(pricingSvc)
	approvalsHandler := rest.NewApprovalsHandler(approvalsSvc, pricingSvc)
	alertsHandler := rest.NewAlertsHandler(alertsSvc)
	insightsHandler := rest.NewInsightsHandler(insightsSvc)

	// Init echo
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	// Global middleware
	e.Use(echomiddleware.Recover())
	e.Use(middleware.RequestTrace())
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins: []string{"http://localhost:3000", "http://localhost:8080"},
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodPatch},
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
	}))

	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	// Setup routes
	api := e.Group("/api/v1")
	router.SetupUserRoutes(api, userHandler, authRequired, adminOnly, selfOrAdmin)
	router.SetupProductRoutes(api, productHandler, authRequired, adminOnly)
	router.SetupCompetitorRoutes(api, competitorHandler, authRequired, adminOnly)
	router.SetupOrdersRoutes(api, ordersHandler, authRequired)
	router.SetupIngestRoutes(api, ingestHandler, authRequired, adminOnly)
	router.SetupPricingRoutes(api, pricingHandler, authRequired, adminOnly)
	router.SetupApprovalsRoutes(api, approvalsHandler, authRequired)
	router.SetupAlertsRoutes(api, alertsHandler, authRequired)
	router.SetupInsightsRoutes(api, insightsHandler, authRequired)

	// Goroutine server
	go func() {
		addr := fmt.Sprintf(":%s", cfg.Server.Port)
		logger.Info("Server starting", "address", addr)
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed to start server", "error", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := e.Shutdown(ctx); err != nil {
		logger.Error("Server shutdown error", "error", err)
	}

	if err := redisdb.CloseRedisClient(redisClient); err != nil {
		logger.Error("Redis close error", "error", err)
	}

	logger.Info("Server stopped")
}
