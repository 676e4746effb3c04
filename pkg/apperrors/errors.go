package apperrors

import (
	stderrors "errors"
	"fmt"
	"net/http"
)

// AppError - основная структура ошибки приложения.
// Message предназначен для клиента, Err - для серверных логов.
type AppError struct {
	Code     ErrorCode `json:"code"`
	Message  string    `json:"message"`
	Err      error     `json:"-"`
	HTTPCode int       `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s (%v)", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// New - базовый конструктор
func New(code ErrorCode, message string, httpCode int) *AppError {
	return &AppError{
		Code:     code,
		Message:  message,
		HTTPCode: httpCode,
	}
}

// Wrap - оборачивает существующую ошибку в AppError
func Wrap(err error, code ErrorCode, message string, httpCode int) *AppError {
	return &AppError{
		Code:     code,
		Message:  message,
		Err:      err,
		HTTPCode: httpCode,
	}
}

// Is - обертка над стандартной функцией errors.Is
func Is(err, target error) bool {
	return stderrors.Is(err, target)
}

// As - обертка над стандартной функцией errors.As
func As(err error, target interface{}) bool {
	return stderrors.As(err, target)
}

// AsAppError - пытается преобразовать error в *AppError
func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// --- ХЕЛПЕРЫ ПО ТАКСОНОМИИ ---

// InternalMessage - единое сообщение клиенту для всех серверных ошибок,
// детали остаются в логах.
const InternalMessage = "Произошла внутренняя ошибка сервера"

// InvalidFeedbackType создает ошибку недопустимого типа обращения (422)
func InvalidFeedbackType(message string) *AppError {
	return New(CodeInvalidFeedbackType, message, http.StatusUnprocessableEntity)
}

// ValidationError создает ошибку валидации полей формы (422)
func ValidationError(err error, message string) *AppError {
	return Wrap(err, CodeValidationFailed, message, http.StatusUnprocessableEntity)
}

// UnsupportedFileType создает ошибку недопустимого типа файла (415)
func UnsupportedFileType(message string) *AppError {
	return New(CodeUnsupportedFileType, message, http.StatusUnsupportedMediaType)
}

// FileTooLarge создает ошибку превышения размера файла (413)
func FileTooLarge(message string) *AppError {
	return New(CodeFileTooLarge, message, http.StatusRequestEntityTooLarge)
}

// StorageError оборачивает ошибку файлового хранилища (500)
func StorageError(err error) *AppError {
	return Wrap(err, CodeStorageError, InternalMessage, http.StatusInternalServerError)
}

// DatabaseError оборачивает ошибку базы данных (500)
func DatabaseError(err error) *AppError {
	return Wrap(err, CodeDatabaseError, InternalMessage, http.StatusInternalServerError)
}

// InternalError оборачивает неизвестную системную ошибку (500)
func InternalError(err error) *AppError {
	return Wrap(err, CodeInternalError, InternalMessage, http.StatusInternalServerError)
}
