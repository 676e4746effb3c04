package notify

import (
	"context"
	"fmt"
	"strings"

	"feedback_backend/internal/models"

	"gopkg.in/gomail.v2"
)

// MailNotifier отправляет письмо о новом обращении через SMTP
type MailNotifier struct {
	cfg    Config
	dialer *gomail.Dialer
}

// NewMailNotifier создает новый SMTP нотификатор
func NewMailNotifier(cfg Config) (*MailNotifier, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid notify config: %w", err)
	}

	return &MailNotifier{
		cfg:    cfg,
		dialer: gomail.NewDialer(cfg.SMTPHost, cfg.SMTPPort, cfg.Username, cfg.Password),
	}, nil
}

// NotifyNewFeedback шлет короткое письмо в ящик поддержки
func (n *MailNotifier) NotifyNewFeedback(ctx context.Context, feedback *models.Feedback) error {
	m := gomail.NewMessage()
	m.SetHeader("From", n.cfg.From)
	m.SetHeader("To", n.cfg.To)
	m.SetHeader("Subject", fmt.Sprintf("Новое обращение #%d (%s)", feedback.ID, feedback.FeedbackType))
	m.SetBody("text/plain", buildBody(feedback))

	if err := n.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("send notification: %w", err)
	}
	return nil
}

func buildBody(feedback *models.Feedback) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Тип: %s\n", feedback.FeedbackType)
	fmt.Fprintf(&b, "Имя: %s\n", feedback.FullName)
	fmt.Fprintf(&b, "Email: %s\n", feedback.Email)
	if feedback.Phone != nil {
		fmt.Fprintf(&b, "Телефон: %s\n", *feedback.Phone)
	}
	if feedback.OrderNumber != nil {
		fmt.Fprintf(&b, "Номер заказа: %s\n", *feedback.OrderNumber)
	}
	if feedback.FilePath != nil {
		fmt.Fprintf(&b, "Вложение: %s\n", *feedback.FilePath)
	}
	fmt.Fprintf(&b, "Создано: %s\n\n", feedback.CreatedAt.Format("2006-01-02 15:04:05"))
	fmt.Fprintf(&b, "Сообщение:\n%s\n", feedback.Message)
	return b.String()
}
