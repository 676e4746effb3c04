package repositories_test

import (
	"errors"
	"testing"

	"feedback_backend/internal/models"
	"feedback_backend/internal/repositories"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	gormDB, err := gorm.Open(postgres.New(postgres.Config{
		Conn:       sqlDB,
		DriverName: "postgres",
	}), &gorm.Config{})
	require.NoError(t, err)

	return gormDB, mock
}

func TestCreateFeedback_Insert(t *testing.T) {
	db, mock := newMockDB(t)
	repo := repositories.NewFeedbackRepository()

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO "feedback"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(42))
	mock.ExpectCommit()

	phone := "+7 999 123-45-67"
	feedback := &models.Feedback{
		FeedbackType: models.FeedbackTypeProblem,
		FullName:     "Иванов Иван Иванович",
		Email:        "test@example.com",
		Phone:        &phone,
		Message:      "Тестовое сообщение длиной более 10 символов",
	}

	err := repo.CreateFeedback(db, feedback)
	require.NoError(t, err)

	assert.Equal(t, uint(42), feedback.ID)
	// created_at назначается репозиторием, не вызывающим кодом
	assert.False(t, feedback.CreatedAt.IsZero())

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateFeedback_RollbackOnError(t *testing.T) {
	db, mock := newMockDB(t)
	repo := repositories.NewFeedbackRepository()

	dbErr := errors.New("connection refused")

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO "feedback"`).WillReturnError(dbErr)
	mock.ExpectRollback()

	feedback := &models.Feedback{
		FeedbackType: models.FeedbackTypeOther,
		FullName:     "Тестов Тест",
		Email:        "test@example.com",
		Message:      "Достаточно длинное сообщение",
	}

	err := repo.CreateFeedback(db, feedback)
	require.Error(t, err)
	assert.ErrorIs(t, err, dbErr)

	assert.NoError(t, mock.ExpectationsWereMet())
}
