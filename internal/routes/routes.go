package routes

import (
	"path/filepath"

	"feedback_backend/internal/config"
	"feedback_backend/internal/handlers"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes регистрирует все HTTP маршруты
func RegisterRoutes(
	ginRouter *gin.Engine,
	feedbackHandler *handlers.FeedbackHandler,
	cfg *config.Config,
) {
	feedback := ginRouter.Group("/feedback")
	{
		feedbackHandler.RegisterRoutes(feedback)
	}

	// Статика: принятые вложения доступны по /static/uploads/<имя>
	ginRouter.Static("/static", filepath.Join(cfg.Storage.BasePath, "static"))
}
