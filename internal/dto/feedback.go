package dto

// FeedbackCreate - данные формы обращения.
// feedback_type проверяется отдельно до остальных полей,
// поэтому здесь на нем только required.
type FeedbackCreate struct {
	FeedbackType string  `form:"feedback_type" validate:"required"`
	FullName     string  `form:"full_name" validate:"required,min=2,max=100"`
	Email        string  `form:"email" validate:"required,email"`
	Phone        *string `form:"phone" validate:"omitempty,max=20,phone_chars,phone_digits"`
	Message      string  `form:"message" validate:"required,min=10,max=1000"`
	OrderNumber  *string `form:"order_number" validate:"omitempty,max=20"`
}
