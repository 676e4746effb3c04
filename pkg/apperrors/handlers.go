package apperrors

import (
	"feedback_backend/internal/logger"

	"github.com/gin-gonic/gin"
)

// ErrorResponse - тело ответа об ошибке
type ErrorResponse struct {
	Detail string `json:"detail"`
}

// HandleError отправляет клиенту ответ по AppError.
// Клиентские ошибки (4xx) уходят с текстом как есть, серверные (5xx)
// логируются с полными деталями, а клиент видит только общее сообщение.
func HandleError(c *gin.Context, err error) {
	appErr, ok := AsAppError(err)
	if !ok {
		appErr = InternalError(err)
	}

	if appErr.HTTPCode >= 500 {
		logger.CtxWithError(c.Request.Context(), "server error", appErr)
	}

	c.JSON(appErr.HTTPCode, ErrorResponse{Detail: appErr.Message})
}
