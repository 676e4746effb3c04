package models

import (
	"strings"
	"time"
)

type FeedbackType string

const (
	FeedbackTypeSuggestion FeedbackType = "suggestion"
	FeedbackTypeProblem    FeedbackType = "problem"
	FeedbackTypeComplaint  FeedbackType = "complaint"
	FeedbackTypeOther      FeedbackType = "other"
)

// FeedbackTypes - все допустимые типы обращений, в фиксированном порядке
var FeedbackTypes = []FeedbackType{
	FeedbackTypeSuggestion,
	FeedbackTypeProblem,
	FeedbackTypeComplaint,
	FeedbackTypeOther,
}

// Valid проверяет, что тип обращения допустимый (с учетом регистра)
func (t FeedbackType) Valid() bool {
	switch t {
	case FeedbackTypeSuggestion, FeedbackTypeProblem, FeedbackTypeComplaint, FeedbackTypeOther:
		return true
	default:
		return false
	}
}

// FeedbackTypeValues возвращает список допустимых значений через запятую
// (для сообщений об ошибке)
func FeedbackTypeValues() string {
	values := make([]string, 0, len(FeedbackTypes))
	for _, t := range FeedbackTypes {
		values = append(values, string(t))
	}
	return strings.Join(values, ", ")
}

// Feedback - сохраненное обращение пользователя.
// ID и CreatedAt назначаются на стороне сервера при вставке.
type Feedback struct {
	ID           uint         `gorm:"primaryKey" json:"id"`
	FeedbackType FeedbackType `gorm:"size:20;not null" json:"feedback_type"`
	FullName     string       `gorm:"size:255;not null" json:"full_name"`
	Email        string       `gorm:"size:255;not null" json:"email"`
	Phone        *string      `gorm:"size:64" json:"phone,omitempty"`
	Message      string       `gorm:"type:text;not null" json:"message"`
	OrderNumber  *string      `gorm:"size:64" json:"order_number,omitempty"`
	FilePath     *string      `gorm:"size:255" json:"file_path,omitempty"`
	CreatedAt    time.Time    `json:"created_at"`
}

func (Feedback) TableName() string {
	return "feedback"
}
