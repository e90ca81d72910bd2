package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/szl-run/szl-backend/models"
	"github.com/szl-run/szl-backend/repositories"
)

type TagService interface {
	CreateTag(ctx context.Context, input CreateTagInput) (*models.Tag, error)
	GetTagByID(ctx context.Context, rawID string) (*models.Tag, error)
	GetAllTags(ctx context.Context) ([]models.Tag, error)
	SetTagStatus(ctx context.Context, rawID string, rawStatus string) (*models.Tag, error)
	DeleteTag(ctx context.Context, rawID string) error
}

type CreateTagInput struct {
	TagID  string `json:"tag_id"`
	Status string `json:"status"`
}

type tagService struct {
	tagRepo repositories.TagRepository
}

func NewTagService(tagRepo repositories.TagRepository) TagService {
	return &tagService{tagRepo: tagRepo}
}

func (s *tagService) CreateTag(ctx context.Context, input CreateTagInput) (*models.Tag, error) {
	id, err := models.ParseTagKey(input.TagID)
	if err != nil {
		return nil, ErrTagInvalidID
	}
	status, err := models.ParseTagStatus(input.Status)
	if err != nil {
		return nil, ErrTagInvalidStatus
	}

	tag := &models.Tag{ID: id, Status: status}
	if err := s.tagRepo.Create(ctx, tag); err != nil {
		if errors.Is(err, repositories.ErrTagConflict) {
			return nil, ErrTagConflict
		}
		return nil, fmt.Errorf("failed to create tag %s: %w", id, err)
	}
	return tag, nil
}

func (s *tagService) GetTagByID(ctx context.Context, rawID string) (*models.Tag, error) {
	id, err := models.ParseTagKey(rawID)
	if err != nil {
		return nil, ErrTagInvalidID
	}

	tag, err := s.tagRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrTagNotFound) {
			return nil, ErrTagNotFound
		}
		return nil, fmt.Errorf("failed to get tag %s: %w", id, err)
	}
	return tag, nil
}

func (s *tagService) GetAllTags(ctx context.Context) ([]models.Tag, error) {
	tags, err := s.tagRepo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get all tags: %w", err)
	}
	return tags, nil
}

// SetTagStatus применяет переход статуса. Переход taken→taken отклоняется
// конфликтом без записи в хранилище; free→free принимается как no-op,
// остальные переходы применяются безусловно.
func (s *tagService) SetTagStatus(ctx context.Context, rawID string, rawStatus string) (*models.Tag, error) {
	id, err := models.ParseTagKey(rawID)
	if err != nil {
		return nil, ErrTagInvalidID
	}
	status, err := models.ParseTagStatus(rawStatus)
	if err != nil {
		return nil, ErrTagInvalidStatus
	}

	current, err := s.tagRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrTagNotFound) {
			return nil, ErrTagNotFound
		}
		return nil, fmt.Errorf("failed to get tag %s: %w", id, err)
	}

	if current.Status == models.TagStatusTaken && status == models.TagStatusTaken {
		return nil, ErrTagAlreadyTaken
	}

	if err := s.tagRepo.UpdateStatus(ctx, id, status); err != nil {
		switch {
		case errors.Is(err, repositories.ErrTagNotFound):
			return nil, ErrTagNotFound
		case errors.Is(err, repositories.ErrConcurrentUpdate):
			return nil, ErrConcurrentModification
		default:
			return nil, fmt.Errorf("failed to update tag %s: %w", id, err)
		}
	}

	current.Status = status
	return current, nil
}

func (s *tagService) DeleteTag(ctx context.Context, rawID string) error {
	id, err := models.ParseTagKey(rawID)
	if err != nil {
		return ErrTagInvalidID
	}

	if err := s.tagRepo.Delete(ctx, id); err != nil {
		switch {
		case errors.Is(err, repositories.ErrTagNotFound):
			return ErrTagNotFound
		case errors.Is(err, repositories.ErrTagInUse):
			return ErrResourceInUse
		default:
			return fmt.Errorf("failed to delete tag %s: %w", id, err)
		}
	}
	return nil
}
