package app

import (
	"fmt"

	"feedback_backend/internal/config"
	"feedback_backend/internal/database"
	"feedback_backend/internal/handlers"
	"feedback_backend/internal/logger"
	"feedback_backend/internal/middleware"
	"feedback_backend/internal/notify"
	"feedback_backend/internal/repositories"
	"feedback_backend/internal/routes"
	"feedback_backend/internal/services"
	"feedback_backend/internal/storage"
	"feedback_backend/internal/validator"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func Run() {
	config.LoadConfig()
	cfg := config.AppConfig
	logger.Init(cfg.Server.Env)
	logger.Info("Logger initialized", "env", cfg.Server.Env)

	logger.Info("Connecting to database...")
	gormDB, err := database.Connect(cfg.Database.DSN)
	if err != nil {
		logger.Fatal("Failed to connect to database", "error", err)
	}
	sqlDB, err := gormDB.DB()
	if err != nil {
		logger.Fatal("Failed to get *sql.DB from GORM", "error", err)
	}
	if err = sqlDB.Ping(); err != nil {
		logger.Fatal("Database unavailable", "error", err)
	}
	logger.Info("Database connected")

	if err := database.AutoMigrate(gormDB); err != nil {
		logger.Fatal("AutoMigrate failed", "error", err)
	}

	ginRouter := SetupRouter(cfg, gormDB)

	address := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	logger.Info("Server starting", "address", address)
	if err := ginRouter.Run(address); err != nil {
		logger.Fatal("Server startup error", "error", err)
	}
}

// SetupRouter собирает все зависимости и возвращает готовый *gin.Engine
func SetupRouter(cfg *config.Config, gormDB *gorm.DB) *gin.Engine {
	store, err := storage.NewLocalStorage(storage.Config{
		BasePath: cfg.Storage.BasePath,
		BaseURL:  cfg.Storage.BaseURL,
	})
	if err != nil {
		logger.Fatal("Failed to initialize storage", "error", err)
	}
	logger.Info("Storage initialized", "base_path", cfg.Storage.BasePath)

	feedbackRepo := repositories.NewFeedbackRepository()
	v := validator.New()

	var notifier notify.Notifier
	if cfg.Notify.Enabled {
		mailNotifier, err := notify.NewMailNotifier(notify.Config{
			Enabled:  cfg.Notify.Enabled,
			SMTPHost: cfg.Notify.SMTPHost,
			SMTPPort: cfg.Notify.SMTPPort,
			Username: cfg.Notify.SMTPUsername,
			Password: cfg.Notify.SMTPPassword,
			From:     cfg.Notify.FromEmail,
			To:       cfg.Notify.ToEmail,
		})
		if err != nil {
			// Сервис работает и без уведомлений
			logger.Warn("Notifications disabled: bad config", "error", err)
		} else {
			notifier = mailNotifier
			logger.Info("Notifications enabled", "to", cfg.Notify.ToEmail)
		}
	}

	feedbackService := services.NewFeedbackService(feedbackRepo, store, v, &services.UploadConfig{
		MaxSize:     cfg.Upload.MaxSize,
		AllowedExts: cfg.Upload.AllowedExts,
		Dir:         cfg.Upload.Dir,
	}, notifier)

	feedbackHandler := handlers.NewFeedbackHandler(gormDB, feedbackService)

	ginRouter := initializeGinRouter(cfg)
	routes.RegisterRoutes(ginRouter, feedbackHandler, cfg)

	return ginRouter
}

func initializeGinRouter(cfg *config.Config) *gin.Engine {
	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	ginRouter := gin.New()
	ginRouter.Use(middleware.RequestIDMiddleware())
	ginRouter.Use(middleware.LoggingMiddleware())
	ginRouter.Use(gin.Recovery())
	ginRouter.LoadHTMLGlob("templates/*.html")

	return ginRouter
}
