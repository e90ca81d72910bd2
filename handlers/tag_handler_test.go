package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/szl-run/szl-backend/models"
	"github.com/szl-run/szl-backend/services"
)

// stubTagService гоняет строковые ID через модельный разбор так же, как
// боевой сервис, но держит метки в памяти.
type stubTagService struct {
	tags map[models.TagKey]*models.Tag
}

func newStubTagService() *stubTagService {
	return &stubTagService{tags: make(map[models.TagKey]*models.Tag)}
}

func (s *stubTagService) CreateTag(ctx context.Context, input services.CreateTagInput) (*models.Tag, error) {
	id, err := models.ParseTagKey(input.TagID)
	if err != nil {
		return nil, services.ErrTagInvalidID
	}
	status, err := models.ParseTagStatus(input.Status)
	if err != nil {
		return nil, services.ErrTagInvalidStatus
	}
	if _, ok := s.tags[id]; ok {
		return nil, services.ErrTagConflict
	}
	tag := &models.Tag{ID: id, Status: status}
	s.tags[id] = tag
	return tag, nil
}

func (s *stubTagService) GetTagByID(ctx context.Context, rawID string) (*models.Tag, error) {
	id, err := models.ParseTagKey(rawID)
	if err != nil {
		return nil, services.ErrTagInvalidID
	}
	tag, ok := s.tags[id]
	if !ok {
		return nil, services.ErrTagNotFound
	}
	return tag, nil
}

func (s *stubTagService) GetAllTags(ctx context.Context) ([]models.Tag, error) {
	var tags []models.Tag
	for _, tag := range s.tags {
		tags = append(tags, *tag)
	}
	return tags, nil
}

func (s *stubTagService) SetTagStatus(ctx context.Context, rawID, rawStatus string) (*models.Tag, error) {
	id, err := models.ParseTagKey(rawID)
	if err != nil {
		return nil, services.ErrTagInvalidID
	}
	status, err := models.ParseTagStatus(rawStatus)
	if err != nil {
		return nil, services.ErrTagInvalidStatus
	}
	tag, ok := s.tags[id]
	if !ok {
		return nil, services.ErrTagNotFound
	}
	if tag.Status == models.TagStatusTaken && status == models.TagStatusTaken {
		return nil, services.ErrTagAlreadyTaken
	}
	tag.Status = status
	return tag, nil
}

func (s *stubTagService) DeleteTag(ctx context.Context, rawID string) error {
	id, err := models.ParseTagKey(rawID)
	if err != nil {
		return services.ErrTagInvalidID
	}
	if _, ok := s.tags[id]; !ok {
		return services.ErrTagNotFound
	}
	delete(s.tags, id)
	return nil
}

func newTagRouter(svc services.TagService) *chi.Mux {
	h := NewTagHandler(svc)
	router := chi.NewRouter()
	router.Post("/api/tags", h.CreateTag)
	router.Get("/api/tags/{tagID}", h.GetTagByID)
	router.Put("/api/tags/{tagID}", h.SetTagStatus)
	router.Delete("/api/tags/{tagID}", h.DeleteTag)
	return router
}

func TestTagHandler_CreateTag(t *testing.T) {
	router := newTagRouter(newStubTagService())

	req := httptest.NewRequest(http.MethodPost, "/api/tags", strings.NewReader(`{"tag_id":"12345","status":"free"}`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "/api/tags/12345", rec.Header().Get("Location"))
	assert.Contains(t, rec.Body.String(), `"tag_id": "12345"`)
}

func TestTagHandler_CreateDuplicateConflicts(t *testing.T) {
	svc := newStubTagService()
	router := newTagRouter(svc)

	body := `{"tag_id":"12345","status":"free"}`
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/tags", strings.NewReader(body)))
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/tags", strings.NewReader(body)))
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestTagHandler_NonNumericIDIsBadRequest(t *testing.T) {
	router := newTagRouter(newStubTagService())

	// Нечисловой ID — 400, а не 404.
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/tags/garbage", nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestTagHandler_MissingTagIsNotFound(t *testing.T) {
	router := newTagRouter(newStubTagService())

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/tags/42", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestTagHandler_AssignTakenTagConflicts(t *testing.T) {
	svc := newStubTagService()
	svc.tags[7] = &models.Tag{ID: 7, Status: models.TagStatusTaken}
	router := newTagRouter(svc)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPut, "/api/tags/7", strings.NewReader(`{"status":"taken"}`))
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusConflict, rec.Code)

	// Освобождение проходит.
	rec = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodPut, "/api/tags/7", strings.NewReader(`{"status":"free"}`))
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Empty(t, rec.Body.String())
}

func TestTagHandler_SetStatusReturnsNoContent(t *testing.T) {
	svc := newStubTagService()
	svc.tags[123] = &models.Tag{ID: 123, Status: models.TagStatusFree}
	router := newTagRouter(svc)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPut, "/api/tags/123", strings.NewReader(`{"status":"taken"}`))
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Empty(t, rec.Body.String())
}

func TestTagHandler_UnknownBodyFieldRejected(t *testing.T) {
	router := newTagRouter(newStubTagService())

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/tags", strings.NewReader(`{"tag_id":"1","status":"free","extra":1}`))
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
