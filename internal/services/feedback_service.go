package services

import (
	"context"
	"fmt"
	"html"
	"mime/multipart"
	"path"
	"strings"

	"feedback_backend/internal/dto"
	"feedback_backend/internal/logger"
	"feedback_backend/internal/models"
	"feedback_backend/internal/notify"
	"feedback_backend/internal/repositories"
	"feedback_backend/internal/storage"
	"feedback_backend/internal/validator"
	"feedback_backend/pkg/apperrors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type FeedbackService interface {
	// CreateFeedback проводит обращение через весь конвейер:
	// тип -> вложение -> поля -> вставка. При любой ошибке после
	// сохранения вложения файл удаляется.
	CreateFeedback(ctx context.Context, db *gorm.DB, req *dto.FeedbackCreate, file *multipart.FileHeader) (*models.Feedback, error)
}

// UploadConfig - ограничения на вложения
type UploadConfig struct {
	MaxSize     int64    // Максимальный размер файла в байтах
	AllowedExts []string // Разрешенные расширения (в нижнем регистре)
	Dir         string   // Подкаталог хранилища для вложений
}

type feedbackService struct {
	repo      repositories.FeedbackRepository
	storage   storage.Storage
	validator *validator.Validator
	cfg       *UploadConfig
	notifier  notify.Notifier // nil, если уведомления выключены
}

func NewFeedbackService(
	repo repositories.FeedbackRepository,
	store storage.Storage,
	v *validator.Validator,
	cfg *UploadConfig,
	notifier notify.Notifier,
) FeedbackService {
	if cfg == nil {
		cfg = &UploadConfig{
			MaxSize:     5 * 1024 * 1024,
			AllowedExts: []string{"jpg", "jpeg", "png", "pdf"},
			Dir:         "static/uploads",
		}
	}

	return &feedbackService{
		repo:      repo,
		storage:   store,
		validator: v,
		cfg:       cfg,
		notifier:  notifier,
	}
}

func (s *feedbackService) CreateFeedback(ctx context.Context, db *gorm.DB, req *dto.FeedbackCreate, file *multipart.FileHeader) (*models.Feedback, error) {
	// Шаг 1: тип обращения проверяется до всего остального
	feedbackType := models.FeedbackType(req.FeedbackType)
	if !feedbackType.Valid() {
		return nil, apperrors.InvalidFeedbackType(fmt.Sprintf(
			"Недопустимый тип обращения. Допустимые значения: %s",
			models.FeedbackTypeValues(),
		))
	}

	// Шаг 2: валидация и сохранение вложения.
	// Если здесь ошибка - чистить еще нечего.
	filePath, err := s.saveAttachment(ctx, file)
	if err != nil {
		return nil, err
	}

	// Шаг 3: валидация остальных полей.
	// Длины проверяются по обрезанным значениям.
	s.normalize(req)
	if err := s.validator.Validate(req); err != nil {
		s.cleanupAttachment(ctx, filePath)
		if vErr, ok := err.(*validator.ValidationError); ok {
			return nil, apperrors.ValidationError(vErr, vErr.Error())
		}
		return nil, apperrors.InternalError(err)
	}

	// Экранирование применяется ровно один раз: после валидации,
	// до попадания значений в хранилище.
	feedback := &models.Feedback{
		FeedbackType: feedbackType,
		FullName:     html.EscapeString(req.FullName),
		Email:        req.Email,
		Phone:        escapeOptional(req.Phone),
		Message:      html.EscapeString(req.Message),
		OrderNumber:  escapeOptional(req.OrderNumber),
		FilePath:     filePath,
	}

	// Шаг 4: вставка в базу
	if err := s.repo.CreateFeedback(db, feedback); err != nil {
		s.cleanupAttachment(ctx, filePath)
		return nil, apperrors.DatabaseError(err)
	}

	logger.CtxInfo(ctx, "обращение создано", "id", feedback.ID, "type", feedback.FeedbackType)

	// Уведомление поддержки - строго best-effort, запись уже сохранена
	if s.notifier != nil {
		if err := s.notifier.NotifyNewFeedback(ctx, feedback); err != nil {
			logger.CtxWithError(ctx, "не удалось отправить уведомление о новом обращении", err, "id", feedback.ID)
		}
	}

	return feedback, nil
}

// saveAttachment проверяет и сохраняет вложение.
// Возвращает nil без ошибки, если файла нет.
func (s *feedbackService) saveAttachment(ctx context.Context, file *multipart.FileHeader) (*string, error) {
	if file == nil || file.Filename == "" {
		return nil, nil
	}

	// Проверка типа файла по расширению
	ext := fileExt(file.Filename)
	if !s.extAllowed(ext) {
		return nil, apperrors.UnsupportedFileType("Неподдерживаемый тип файла. Разрешены: JPG, PNG, PDF")
	}

	// Размер проверяется после расширения: порядок ошибок фиксирован.
	// Решение по 413 принимается по заявленному размеру из multipart-заголовка.
	if file.Size > s.cfg.MaxSize {
		return nil, apperrors.FileTooLarge(fmt.Sprintf(
			"Файл слишком большой. Максимальный размер: %d байт", s.cfg.MaxSize,
		))
	}

	src, err := file.Open()
	if err != nil {
		return nil, apperrors.StorageError(fmt.Errorf("open uploaded file: %w", err))
	}
	defer src.Close()

	fileName := fmt.Sprintf("%s.%s", uuid.New().String(), ext)
	relPath := path.Join(s.cfg.Dir, fileName)

	written, err := s.storage.Save(ctx, relPath, src)
	if err != nil {
		return nil, apperrors.StorageError(fmt.Errorf("save attachment: %w", err))
	}
	if written != file.Size {
		logger.CtxWarn(ctx, "размер вложения не совпал с заявленным",
			"declared", file.Size, "written", written, "path", relPath)
	}

	logger.CtxInfo(ctx, "вложение сохранено", "path", relPath, "size", written)
	return &relPath, nil
}

// cleanupAttachment удаляет сохраненное вложение после сбоя.
// Ошибка удаления логируется и никогда не подменяет исходную ошибку.
func (s *feedbackService) cleanupAttachment(ctx context.Context, filePath *string) {
	if filePath == nil {
		return
	}
	if err := s.storage.Delete(ctx, *filePath); err != nil {
		logger.CtxWithError(ctx, "не удалось удалить вложение", err, "path", *filePath)
		return
	}
	logger.CtxInfo(ctx, "вложение удалено из-за ошибки обработки", "path", *filePath)
}

// normalize обрезает пробелы и убирает пустые необязательные поля.
// Телефон не обрезается: его длина и набор символов проверяются
// по сырому значению.
func (s *feedbackService) normalize(req *dto.FeedbackCreate) {
	req.FullName = strings.TrimSpace(req.FullName)
	req.Email = strings.TrimSpace(req.Email)
	req.Message = strings.TrimSpace(req.Message)
	req.Phone = emptyToNil(req.Phone)
	req.OrderNumber = trimOptional(req.OrderNumber)
}

func (s *feedbackService) extAllowed(ext string) bool {
	for _, allowed := range s.cfg.AllowedExts {
		if ext == allowed {
			return true
		}
	}
	return false
}

// fileExt возвращает расширение файла: текст после последней точки,
// в нижнем регистре
func fileExt(filename string) string {
	idx := strings.LastIndex(filename, ".")
	if idx < 0 {
		return strings.ToLower(filename)
	}
	return strings.ToLower(filename[idx+1:])
}

func emptyToNil(v *string) *string {
	if v == nil || *v == "" {
		return nil
	}
	return v
}

func trimOptional(v *string) *string {
	if v == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*v)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

func escapeOptional(v *string) *string {
	if v == nil {
		return nil
	}
	escaped := html.EscapeString(*v)
	return &escaped
}
