package repositories

import (
	"fmt"
	"time"

	"feedback_backend/internal/models"

	"gorm.io/gorm"
)

type FeedbackRepository interface {
	// CreateFeedback вставляет одно обращение и заполняет ID и CreatedAt
	CreateFeedback(db *gorm.DB, feedback *models.Feedback) error
}

type FeedbackRepositoryImpl struct{}

func NewFeedbackRepository() FeedbackRepository {
	return &FeedbackRepositoryImpl{}
}

// CreateFeedback выполняет вставку в транзакции: либо строка видна целиком,
// либо не видна вовсе. CreatedAt ставится по часам сервера в момент вставки.
func (r *FeedbackRepositoryImpl) CreateFeedback(db *gorm.DB, feedback *models.Feedback) error {
	feedback.CreatedAt = time.Now()

	err := db.Transaction(func(tx *gorm.DB) error {
		return tx.Create(feedback).Error
	})
	if err != nil {
		return fmt.Errorf("create feedback failed: %w", err)
	}
	return nil
}
