package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/szl-run/szl-backend/models"
	"github.com/szl-run/szl-backend/repositories"
)

type MockTagRepository struct {
	tags         map[models.TagKey]*models.Tag
	statusWrites int
}

func NewMockTagRepository() *MockTagRepository {
	return &MockTagRepository{tags: make(map[models.TagKey]*models.Tag)}
}

func (m *MockTagRepository) AddTag(tag *models.Tag) {
	m.tags[tag.ID] = tag
}

func (m *MockTagRepository) Create(ctx context.Context, tag *models.Tag) error {
	if _, ok := m.tags[tag.ID]; ok {
		return repositories.ErrTagConflict
	}
	copied := *tag
	m.tags[tag.ID] = &copied
	return nil
}

func (m *MockTagRepository) GetByID(ctx context.Context, id models.TagKey) (*models.Tag, error) {
	tag, ok := m.tags[id]
	if !ok {
		return nil, repositories.ErrTagNotFound
	}
	copied := *tag
	return &copied, nil
}

func (m *MockTagRepository) GetAll(ctx context.Context) ([]models.Tag, error) {
	var tags []models.Tag
	for _, tag := range m.tags {
		tags = append(tags, *tag)
	}
	return tags, nil
}

func (m *MockTagRepository) UpdateStatus(ctx context.Context, id models.TagKey, status models.TagStatus) error {
	tag, ok := m.tags[id]
	if !ok {
		return repositories.ErrTagNotFound
	}
	m.statusWrites++
	tag.Status = status
	return nil
}

func (m *MockTagRepository) Delete(ctx context.Context, id models.TagKey) error {
	if _, ok := m.tags[id]; !ok {
		return repositories.ErrTagNotFound
	}
	delete(m.tags, id)
	return nil
}

func TestTagService_CreateTag(t *testing.T) {
	repo := NewMockTagRepository()
	svc := NewTagService(repo)

	tag, err := svc.CreateTag(context.Background(), CreateTagInput{TagID: "12345", Status: "free"})
	require.NoError(t, err)
	assert.Equal(t, models.TagKey(12345), tag.ID)
	assert.Equal(t, models.TagStatusFree, tag.Status)

	_, err = svc.CreateTag(context.Background(), CreateTagInput{TagID: "12345", Status: "free"})
	assert.ErrorIs(t, err, ErrTagConflict)
}

func TestTagService_CreateTagValidation(t *testing.T) {
	svc := NewTagService(NewMockTagRepository())

	_, err := svc.CreateTag(context.Background(), CreateTagInput{TagID: "abc", Status: "free"})
	assert.ErrorIs(t, err, ErrTagInvalidID)

	_, err = svc.CreateTag(context.Background(), CreateTagInput{TagID: "1", Status: "reserved"})
	assert.ErrorIs(t, err, ErrTagInvalidStatus)
}

func TestTagService_SetTagStatusTakenConflict(t *testing.T) {
	repo := NewMockTagRepository()
	repo.AddTag(&models.Tag{ID: 7, Status: models.TagStatusTaken})
	svc := NewTagService(repo)

	// Выдать уже занятую метку нельзя: конфликт, статус не трогаем.
	_, err := svc.SetTagStatus(context.Background(), "7", "taken")
	assert.ErrorIs(t, err, ErrTagAlreadyTaken)
	assert.Equal(t, 0, repo.statusWrites)
	assert.Equal(t, models.TagStatusTaken, repo.tags[7].Status)
}

func TestTagService_SetTagStatusFreeIdempotent(t *testing.T) {
	repo := NewMockTagRepository()
	repo.AddTag(&models.Tag{ID: 7, Status: models.TagStatusFree})
	svc := NewTagService(repo)

	// Повторное освобождение свободной метки — no-op, не ошибка.
	tag, err := svc.SetTagStatus(context.Background(), "7", "free")
	require.NoError(t, err)
	assert.Equal(t, models.TagStatusFree, tag.Status)
}

func TestTagService_SetTagStatusTransitions(t *testing.T) {
	repo := NewMockTagRepository()
	repo.AddTag(&models.Tag{ID: 7, Status: models.TagStatusFree})
	svc := NewTagService(repo)

	tag, err := svc.SetTagStatus(context.Background(), "7", "taken")
	require.NoError(t, err)
	assert.Equal(t, models.TagStatusTaken, tag.Status)

	tag, err = svc.SetTagStatus(context.Background(), "7", "free")
	require.NoError(t, err)
	assert.Equal(t, models.TagStatusFree, tag.Status)
}

func TestTagService_NonNumericIDIsValidationError(t *testing.T) {
	repo := NewMockTagRepository()
	svc := NewTagService(repo)

	// Нечисловой ID — ошибка валидации, а не "не найдено".
	_, err := svc.GetTagByID(context.Background(), "garbage")
	assert.ErrorIs(t, err, ErrTagInvalidID)

	_, err = svc.SetTagStatus(context.Background(), "garbage", "free")
	assert.ErrorIs(t, err, ErrTagInvalidID)

	err = svc.DeleteTag(context.Background(), "garbage")
	assert.ErrorIs(t, err, ErrTagInvalidID)
}

func TestTagService_GetTagByIDNotFound(t *testing.T) {
	svc := NewTagService(NewMockTagRepository())

	_, err := svc.GetTagByID(context.Background(), "404")
	assert.ErrorIs(t, err, ErrTagNotFound)
}
