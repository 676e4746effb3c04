package handlers

import (
	"net/http"

	"feedback_backend/internal/dto"
	"feedback_backend/internal/models"
	"feedback_backend/internal/services"
	"feedback_backend/pkg/apperrors"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type FeedbackHandler struct {
	db      *gorm.DB
	service services.FeedbackService
}

func NewFeedbackHandler(db *gorm.DB, service services.FeedbackService) *FeedbackHandler {
	return &FeedbackHandler{
		db:      db,
		service: service,
	}
}

func (h *FeedbackHandler) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("/", h.ShowForm)
	r.POST("/submit", h.Submit)
	r.GET("/success", h.ShowSuccess)
}

// ShowForm отдает HTML-страницу формы обращения
func (h *FeedbackHandler) ShowForm(c *gin.Context) {
	c.HTML(http.StatusOK, "feedback_form.html", gin.H{
		"feedback_types": []gin.H{
			{"value": models.FeedbackTypeSuggestion, "label": "Предложение"},
			{"value": models.FeedbackTypeProblem, "label": "Проблема"},
			{"value": models.FeedbackTypeComplaint, "label": "Жалоба"},
			{"value": models.FeedbackTypeOther, "label": "Другое"},
		},
		"example_data": gin.H{
			"full_name":    "Иванов Иван Иванович",
			"email":        "example@example.com",
			"phone":        "+7 999 123-45-67",
			"order_number": "ORD-123456",
			"message":      "Опишите вашу проблему или предложение здесь...",
		},
	})
}

// Submit принимает multipart-форму обращения.
// Успех - 303 редирект на страницу подтверждения,
// ошибки - JSON {"detail": ...} с соответствующим статусом.
func (h *FeedbackHandler) Submit(c *gin.Context) {
	var req dto.FeedbackCreate
	if err := c.ShouldBind(&req); err != nil {
		apperrors.HandleError(c, apperrors.ValidationError(err, "Некорректные данные формы"))
		return
	}

	// Файл необязательный: его отсутствие - не ошибка
	fileHeader, err := c.FormFile("file")
	if err != nil {
		fileHeader = nil
	}

	_, err = h.service.CreateFeedback(c.Request.Context(), h.db, &req, fileHeader)
	if err != nil {
		apperrors.HandleError(c, err)
		return
	}

	c.Redirect(http.StatusSeeOther, "/feedback/success")
}

// ShowSuccess отдает страницу подтверждения
func (h *FeedbackHandler) ShowSuccess(c *gin.Context) {
	c.HTML(http.StatusOK, "feedback_success.html", gin.H{})
}
