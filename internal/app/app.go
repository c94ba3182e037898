package app

import (
	"context"
	"fmt"
	"time"

	"organmatch_backend/internal/config"
	"organmatch_backend/internal/handlers"
	"organmatch_backend/internal/logger"
	"organmatch_backend/internal/middleware"
	"organmatch_backend/internal/pkg/email"
	"organmatch_backend/internal/repositories"
	"organmatch_backend/internal/routes"
	"organmatch_backend/internal/services"
	"organmatch_backend/internal/validator"
	"organmatch_backend/internal/workers"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func Run() {
	config.LoadConfig()
	cfg := config.AppConfig
	logger.Init(cfg.Server.Env)
	logger.Info("Logger initialized", "env", cfg.Server.Env)

	logger.Info("Connecting to database...")
	gormDB, err := gorm.Open(postgres.Open(cfg.Database.DSN), &gorm.Config{})
	if err != nil {
		logger.Fatal("Failed to connect to GORM", "error", err)
	}
	sqlDB, err := gormDB.DB()
	if err != nil {
		logger.Fatal("Failed to get *sql.DB from GORM", "error", err)
	}
	if err = sqlDB.Ping(); err != nil {
		logger.Fatal("Database unavailable", "error", err)
	}
	logger.Info("Database connected")

	ginRouter := SetupRouter(cfg, gormDB)

	// Background expiry of donors past their preservation window.
	donorRepo := repositories.NewDonorRepository(gormDB)
	worker := workers.NewViabilityWorker(donorRepo,
		time.Duration(cfg.Workers.ViabilityIntervalMinutes)*time.Minute)
	worker.Start(context.Background())

	address := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	logger.Info(fmt.Sprintf("Server starting on %s", address))
	if err := ginRouter.Run(address); err != nil {
		logger.Fatal("Server startup error", "error", err)
	}
}

func SetupRouter(cfg *config.Config, gormDB *gorm.DB) *gin.Engine {
	serviceContainer := initializeServices(cfg, gormDB)
	appHandlers := initializeHandlers(serviceContainer)

	ginRouter := initializeGinRouter(cfg)
	routes.RegisterRoutes(ginRouter, appHandlers)

	return ginRouter
}

func initializeServices(cfg *config.Config, gormDB *gorm.DB) *services.ServiceContainer {
	donorRepo := repositories.NewDonorRepository(gormDB)
	recipientRepo := repositories.NewRecipientRepository(gormDB)
	allocationRepo := repositories.NewAllocationRepository(gormDB)

	var notifier email.Notifier = email.NopNotifier{}
	if cfg.Alerts.Enabled {
		notifier = email.NewSMTPNotifier(cfg)
		logger.Info("Coordinator match alerts enabled", "recipients", len(cfg.Alerts.CoordinatorEmails))
	}

	matchingService := services.NewMatchingService(donorRepo, recipientRepo, notifier, cfg)
	donorService := services.NewDonorService(donorRepo)
	recipientService := services.NewRecipientService(recipientRepo)
	allocationService := services.NewAllocationService(allocationRepo, donorRepo, recipientRepo, matchingService)

	return &services.ServiceContainer{
		MatchingService:   matchingService,
		DonorService:      donorService,
		RecipientService:  recipientService,
		AllocationService: allocationService,
	}
}

func initializeHandlers(container *services.ServiceContainer) *handlers.AppHandlers {
	baseHandler := handlers.NewBaseHandler(validator.New())

	return &handlers.AppHandlers{
		MatchingHandler:   handlers.NewMatchingHandler(baseHandler, container.MatchingService),
		DonorHandler:      handlers.NewDonorHandler(baseHandler, container.DonorService),
		RecipientHandler:  handlers.NewRecipientHandler(baseHandler, container.RecipientService),
		AllocationHandler: handlers.NewAllocationHandler(baseHandler, container.AllocationService),
	}
}

func initializeGinRouter(cfg *config.Config) *gin.Engine {
	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.LoggingMiddleware())

	return router
}
