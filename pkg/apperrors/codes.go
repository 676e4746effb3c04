package apperrors

// ErrorCode - тип для кодов ошибок
type ErrorCode string

const (
	// Системные ошибки
	CodeInternalError ErrorCode = "INTERNAL_ERROR"
	CodeDatabaseError ErrorCode = "DATABASE_ERROR"
	CodeStorageError  ErrorCode = "STORAGE_ERROR"

	// Ошибки валидации формы обращения
	CodeInvalidFeedbackType ErrorCode = "INVALID_FEEDBACK_TYPE"
	CodeValidationFailed    ErrorCode = "VALIDATION_FAILED"

	// Ошибки вложений
	CodeUnsupportedFileType ErrorCode = "UNSUPPORTED_FILE_TYPE"
	CodeFileTooLarge        ErrorCode = "FILE_TOO_LARGE"
)
