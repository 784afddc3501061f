package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "coinnecta/api/swagger" // swagger docs
	"coinnecta/internal/calculator"
	"coinnecta/internal/catalog"
	"coinnecta/internal/config"
	"coinnecta/internal/currency"
	"coinnecta/internal/database"
	"coinnecta/internal/handler"
	"coinnecta/internal/logger"
	"coinnecta/internal/middleware"
	"coinnecta/internal/orders"
	"coinnecta/internal/repository"
	"coinnecta/internal/service"
	"coinnecta/internal/websocket"
	"coinnecta/pkg/display"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// @title           Coinnecta API
// @version         1.0
// @description     Unit economics, courier report imports and campaign profitability for cash-on-delivery dropshipping.
// @host            localhost:8080
// @BasePath        /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	cfg := config.Load()

	log := logger.New(logger.Options{Level: cfg.LogLevel, Format: cfg.LogFormat, File: cfg.LogFile})
	if err := cfg.Validate(); err != nil {
		log.WithError(err).Fatal("invalid configuration")
	}

	cat := catalog.Default()
	if cfg.ReferenceDataPath != "" {
		loaded, err := catalog.Load(cfg.ReferenceDataPath)
		if err != nil {
			log.WithError(err).Fatal("failed to load reference data")
		}
		cat = loaded
		log.WithField("path", cfg.ReferenceDataPath).Info("reference data loaded")
	}
	conv := currency.NewConverter(cat.Rates(), log)

	db, err := database.NewConnection(database.OptionsFromConfig(cfg), log)
	if err != nil {
		log.WithError(err).Fatal("database connection failed")
	}
	log.WithField("driver", cfg.StoreDriver).Info("connected to store")

	// Set up WebSocket Hub
	wsHub := websocket.NewHub(log)
	go wsHub.Run()

	// Set up dependencies (Repository -> Service -> Handler)
	stateRepo := repository.NewStateRepository(db)
	auditRepo := repository.NewAuditRepository(db)
	txManager := repository.NewTransactionManager(db)

	workspace := service.NewWorkspace(cfg.StateKey, stateRepo, auditRepo, txManager, log)
	if err := workspace.Load(context.Background()); err != nil {
		log.WithError(err).Fatal("failed to load workspace")
	}

	rates := calculator.Rates{Confirm: cfg.DefaultConfirmRate, Deliver: cfg.DefaultDeliverRate}
	format := display.NewFormatter(cfg.DisplayLocale)
	reportService := service.NewReportService(workspace, cat, conv, format, cfg.ReportCacheTTL)
	productService := service.NewProductService(workspace, cat, conv, format, rates, wsHub)
	settingsService := service.NewSettingsService(workspace, cat, wsHub)
	importService := service.NewImportService(workspace, cat, orders.NewClassifier(log), reportService, wsHub, log)
	referenceService := service.NewReferenceService(cat, conv, rates)
	auditService := service.NewAuditService(auditRepo)

	if err := handler.RegisterValidators(cat, conv); err != nil {
		log.WithError(err).Fatal("failed to register validators")
	}

	// Initialize Handlers
	productHandler := handler.NewProductHandler(productService)
	settingsHandler := handler.NewSettingsHandler(settingsService)
	importHandler := handler.NewImportHandler(importService, cfg.MaxUploadSizeBytes)
	reportHandler := handler.NewReportHandler(reportService, referenceService)
	auditHandler := handler.NewAuditHandler(auditService)

	// Set up Gin Router
	gin.SetMode(cfg.GinMode)
	router := gin.New()
	router.Use(gin.Recovery(), logger.GinMiddleware(log))
	router.MaxMultipartMemory = cfg.MaxUploadSizeBytes

	// CORS configuration
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = cfg.CORSOrigins
	corsConfig.AllowCredentials = true
	corsConfig.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization", "Accept"}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	router.Use(cors.New(corsConfig))
	router.Use(middleware.RateLimit(cfg.RateLimitRPS, cfg.RateLimitBurst, log))

	// Swagger route
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "OK"})
	})

	secret := []byte(cfg.JWTSecret)

	// WebSocket endpoint
	router.GET("/ws", func(c *gin.Context) {
		websocket.ServeWs(wsHub, c, secret)
	})

	// API Routing
	api := router.Group("", middleware.RequireOperator(secret))
	productHandler.RegisterRoutes(api)
	settingsHandler.RegisterRoutes(api)
	importHandler.RegisterRoutes(api)
	reportHandler.RegisterRoutes(api)
	auditHandler.RegisterRoutes(api)

	if !cfg.AuthEnabled() {
		log.Warn("JWT_SECRET is empty, API authentication is disabled")
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.WithField("port", cfg.Port).Info("server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.WithError(err).Fatal("server failed")
		}
	}()

	waitForShutdown(srv, log)
}

func waitForShutdown(srv *http.Server, log logrus.FieldLogger) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.WithError(err).Error("server forced to shutdown")
	}
}
