package handlers_test

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"feedback_backend/internal/handlers"
	"feedback_backend/internal/models"
	"feedback_backend/internal/services"
	"feedback_backend/internal/storage"
	"feedback_backend/internal/validator"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type stubRepo struct {
	created []*models.Feedback
	err     error
}

func (s *stubRepo) CreateFeedback(db *gorm.DB, feedback *models.Feedback) error {
	if s.err != nil {
		return s.err
	}
	feedback.ID = uint(len(s.created) + 1)
	feedback.CreatedAt = time.Now()
	s.created = append(s.created, feedback)
	return nil
}

// newTestRouter собирает роутер так же, как app.SetupRouter,
// но на заглушке репозитория и временном каталоге хранилища
func newTestRouter(t *testing.T, repo *stubRepo) (*gin.Engine, string) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dir := t.TempDir()
	store, err := storage.NewLocalStorage(storage.Config{BasePath: dir})
	require.NoError(t, err)

	svc := services.NewFeedbackService(repo, store, validator.New(), nil, nil)
	handler := handlers.NewFeedbackHandler(nil, svc)

	router := gin.New()
	router.LoadHTMLGlob(filepath.Join("..", "..", "templates", "*.html"))

	feedback := router.Group("/feedback")
	handler.RegisterRoutes(feedback)

	return router, dir
}

func validFields() map[string]string {
	return map[string]string{
		"feedback_type": "problem",
		"full_name":     "Иванов Иван Иванович",
		"email":         "test@example.com",
		"message":       "Тестовое сообщение длиной более 10 символов",
		"phone":         "+7 999 123-45-67",
		"order_number":  "ORD-123456",
	}
}

// buildForm собирает multipart-тело формы
func buildForm(t *testing.T, fields map[string]string, fileName string, fileContent []byte) (*bytes.Buffer, string) {
	t.Helper()
	body := new(bytes.Buffer)
	w := multipart.NewWriter(body)
	for key, value := range fields {
		require.NoError(t, w.WriteField(key, value))
	}
	if fileName != "" {
		part, err := w.CreateFormFile("file", fileName)
		require.NoError(t, err)
		_, err = part.Write(fileContent)
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())
	return body, w.FormDataContentType()
}

func submit(t *testing.T, router *gin.Engine, fields map[string]string, fileName string, fileContent []byte) *httptest.ResponseRecorder {
	t.Helper()
	body, contentType := buildForm(t, fields, fileName, fileContent)
	req := httptest.NewRequest(http.MethodPost, "/feedback/submit", body)
	req.Header.Set("Content-Type", contentType)
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)
	return recorder
}

func detail(t *testing.T, recorder *httptest.ResponseRecorder) string {
	t.Helper()
	var resp struct {
		Detail string `json:"detail"`
	}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &resp))
	return resp.Detail
}

func TestSubmit_Success(t *testing.T) {
	repo := &stubRepo{}
	router, _ := newTestRouter(t, repo)

	recorder := submit(t, router, validFields(), "", nil)

	assert.Equal(t, http.StatusSeeOther, recorder.Code)
	assert.Equal(t, "/feedback/success", recorder.Header().Get("Location"))

	require.Len(t, repo.created, 1)
	created := repo.created[0]
	assert.Equal(t, models.FeedbackTypeProblem, created.FeedbackType)
	assert.Equal(t, "Иванов Иван Иванович", created.FullName)
	assert.Nil(t, created.FilePath)
	require.NotNil(t, created.Phone)
	assert.Equal(t, "+7 999 123-45-67", *created.Phone)
}

func TestSubmit_MissingRequiredFields(t *testing.T) {
	tests := []struct {
		field    string
		expected string // подстрока, которая должна быть в detail
	}{
		{"feedback_type", "тип обращения"},
		{"full_name", "full_name"},
		{"email", "email"},
		{"message", "message"},
	}

	for _, tt := range tests {
		t.Run(tt.field, func(t *testing.T) {
			repo := &stubRepo{}
			router, _ := newTestRouter(t, repo)

			fields := validFields()
			delete(fields, tt.field)

			recorder := submit(t, router, fields, "", nil)

			assert.Equal(t, http.StatusUnprocessableEntity, recorder.Code)
			assert.Contains(t, detail(t, recorder), tt.expected)
			assert.Empty(t, repo.created)
		})
	}
}

func TestSubmit_InvalidFeedbackType(t *testing.T) {
	repo := &stubRepo{}
	router, _ := newTestRouter(t, repo)

	fields := validFields()
	fields["feedback_type"] = "spam"

	recorder := submit(t, router, fields, "", nil)

	assert.Equal(t, http.StatusUnprocessableEntity, recorder.Code)
	assert.Contains(t, detail(t, recorder), "suggestion, problem, complaint, other")
}

func TestSubmit_InvalidEmail(t *testing.T) {
	repo := &stubRepo{}
	router, _ := newTestRouter(t, repo)

	fields := validFields()
	fields["email"] = "not-an-email"

	recorder := submit(t, router, fields, "", nil)

	assert.Equal(t, http.StatusUnprocessableEntity, recorder.Code)
	assert.Contains(t, detail(t, recorder), "email")
}

func TestSubmit_InvalidPhone(t *testing.T) {
	repo := &stubRepo{}
	router, _ := newTestRouter(t, repo)

	fields := validFields()
	fields["phone"] = "123"

	recorder := submit(t, router, fields, "", nil)

	assert.Equal(t, http.StatusUnprocessableEntity, recorder.Code)
	assert.Contains(t, detail(t, recorder), "phone")
}

func TestSubmit_WithAttachment(t *testing.T) {
	repo := &stubRepo{}
	router, dir := newTestRouter(t, repo)

	recorder := submit(t, router, validFields(), "screenshot.jpg", []byte("jpeg bytes"))

	assert.Equal(t, http.StatusSeeOther, recorder.Code)

	require.Len(t, repo.created, 1)
	created := repo.created[0]
	require.NotNil(t, created.FilePath)

	// Файл реально лежит на диске по сохраненному относительному пути
	_, err := os.Stat(filepath.Join(dir, filepath.FromSlash(*created.FilePath)))
	require.NoError(t, err)
}

func TestSubmit_UnsupportedFileType(t *testing.T) {
	repo := &stubRepo{}
	router, _ := newTestRouter(t, repo)

	recorder := submit(t, router, validFields(), "malware.exe", []byte("bytes"))

	assert.Equal(t, http.StatusUnsupportedMediaType, recorder.Code)
	assert.Contains(t, detail(t, recorder), "Неподдерживаемый тип файла")
	assert.Empty(t, repo.created)
}

func TestSubmit_FileTooLarge(t *testing.T) {
	repo := &stubRepo{}
	router, _ := newTestRouter(t, repo)

	recorder := submit(t, router, validFields(), "big.pdf", bytes.Repeat([]byte("a"), 5*1024*1024+1))

	assert.Equal(t, http.StatusRequestEntityTooLarge, recorder.Code)
	assert.Contains(t, detail(t, recorder), "Файл слишком большой")
	assert.Empty(t, repo.created)
}

func TestSubmit_CompensationRemovesAttachment(t *testing.T) {
	repo := &stubRepo{}
	router, dir := newTestRouter(t, repo)

	fields := validFields()
	fields["message"] = "коротко"

	recorder := submit(t, router, fields, "doc.pdf", []byte("pdf bytes"))

	assert.Equal(t, http.StatusUnprocessableEntity, recorder.Code)

	entries, err := os.ReadDir(filepath.Join(dir, "static", "uploads"))
	if !os.IsNotExist(err) {
		require.NoError(t, err)
		assert.Empty(t, entries)
	}
}

func TestSubmit_PersistenceFailure(t *testing.T) {
	repo := &stubRepo{err: gorm.ErrInvalidDB}
	router, dir := newTestRouter(t, repo)

	recorder := submit(t, router, validFields(), "doc.pdf", []byte("pdf bytes"))

	assert.Equal(t, http.StatusInternalServerError, recorder.Code)
	// Детали ошибки наружу не уходят
	assert.Equal(t, "Произошла внутренняя ошибка сервера", detail(t, recorder))

	entries, err := os.ReadDir(filepath.Join(dir, "static", "uploads"))
	if !os.IsNotExist(err) {
		require.NoError(t, err)
		assert.Empty(t, entries)
	}
}

func TestSubmit_TwoIdenticalSubmissionsAreIndependent(t *testing.T) {
	repo := &stubRepo{}
	router, _ := newTestRouter(t, repo)

	first := submit(t, router, validFields(), "a.jpg", []byte("same"))
	second := submit(t, router, validFields(), "a.jpg", []byte("same"))

	assert.Equal(t, http.StatusSeeOther, first.Code)
	assert.Equal(t, http.StatusSeeOther, second.Code)

	require.Len(t, repo.created, 2)
	assert.NotEqual(t, repo.created[0].ID, repo.created[1].ID)
	require.NotNil(t, repo.created[0].FilePath)
	require.NotNil(t, repo.created[1].FilePath)
	assert.NotEqual(t, *repo.created[0].FilePath, *repo.created[1].FilePath)
}

func TestShowForm(t *testing.T) {
	repo := &stubRepo{}
	router, _ := newTestRouter(t, repo)

	req := httptest.NewRequest(http.MethodGet, "/feedback/", nil)
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)

	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Contains(t, recorder.Body.String(), "Форма обратной связи")
	assert.Contains(t, recorder.Body.String(), "suggestion")
}

func TestShowSuccess(t *testing.T) {
	repo := &stubRepo{}
	router, _ := newTestRouter(t, repo)

	req := httptest.NewRequest(http.MethodGet, "/feedback/success", nil)
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)

	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Contains(t, recorder.Body.String(), "Спасибо за обращение")
}
