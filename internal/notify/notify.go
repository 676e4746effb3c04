package notify

import (
	"context"
	"fmt"

	"feedback_backend/internal/models"
)

// Notifier уведомляет поддержку о новом обращении.
// Отправка всегда best-effort: вызывающий логирует ошибку и продолжает.
type Notifier interface {
	NotifyNewFeedback(ctx context.Context, feedback *models.Feedback) error
}

// Config - настройки SMTP уведомлений
type Config struct {
	Enabled  bool
	SMTPHost string
	SMTPPort int
	Username string
	Password string
	From     string
	To       string // Ящик поддержки
}

// Validate проверяет валидность конфигурации
func (c Config) Validate() error {
	if c.SMTPHost == "" {
		return fmt.Errorf("SMTP host is required")
	}
	if c.SMTPPort <= 0 || c.SMTPPort > 65535 {
		return fmt.Errorf("invalid SMTP port: %d", c.SMTPPort)
	}
	if c.From == "" {
		return fmt.Errorf("from email is required")
	}
	if c.To == "" {
		return fmt.Errorf("recipient email is required")
	}
	return nil
}
