package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/szl-run/szl-backend/models"
	"github.com/szl-run/szl-backend/repositories"
)

type ParticipateService interface {
	CreateParticipate(ctx context.Context, input CreateParticipateInput) (*models.Participate, error)
	GetParticipateByID(ctx context.Context, id int) (*models.Participate, error)
	GetParticipateByTag(ctx context.Context, rawTagID string) (*models.Participate, error)
	GetAllParticipates(ctx context.Context) ([]models.Participate, error)
	UpdateParticipate(ctx context.Context, id int, input CreateParticipateInput) (*models.Participate, error)
	DeleteParticipate(ctx context.Context, id int) error
}

// CreateParticipateInput: метка приходит десятичной строкой; разбор в int64
// случается здесь, чтобы нечисловой ввод давал ошибку валидации, а не 404.
type CreateParticipateInput struct {
	TeamID     *int    `json:"team_id"`
	EventID    *int    `json:"event_id"`
	RunnerID   *int    `json:"runner_id"`
	TagID      *string `json:"tag_id"`
	CategoryID *int    `json:"category_id"`
}

type participateService struct {
	participateRepo repositories.ParticipateRepository
}

func NewParticipateService(participateRepo repositories.ParticipateRepository) ParticipateService {
	return &participateService{participateRepo: participateRepo}
}

func (s *participateService) buildModel(input CreateParticipateInput) (*models.Participate, error) {
	if input.TeamID == nil || *input.TeamID <= 0 || input.EventID == nil || *input.EventID <= 0 {
		return nil, ErrParticipateInvalidIDs
	}

	var tagID *models.TagKey
	if input.TagID != nil {
		parsed, err := models.ParseTagKey(*input.TagID)
		if err != nil {
			return nil, ErrTagInvalidID
		}
		tagID = &parsed
	}

	return &models.Participate{
		TeamID:     input.TeamID,
		RunnerID:   input.RunnerID,
		EventID:    input.EventID,
		TagID:      tagID,
		CategoryID: input.CategoryID,
	}, nil
}

func (s *participateService) CreateParticipate(ctx context.Context, input CreateParticipateInput) (*models.Participate, error) {
	p, err := s.buildModel(input)
	if err != nil {
		return nil, err
	}

	if err := s.participateRepo.Create(ctx, p); err != nil {
		return nil, s.translateRepoError(err)
	}
	return p, nil
}

func (s *participateService) GetParticipateByID(ctx context.Context, id int) (*models.Participate, error) {
	p, err := s.participateRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrParticipateNotFound) {
			return nil, ErrParticipateNotFound
		}
		return nil, fmt.Errorf("failed to get participate %d: %w", id, err)
	}
	return p, nil
}

// GetParticipateByTag ищет по числовому значению метки, разобранному из
// строки запроса: два строковых представления одного номера находят одну
// и ту же запись.
func (s *participateService) GetParticipateByTag(ctx context.Context, rawTagID string) (*models.Participate, error) {
	tagID, err := models.ParseTagKey(rawTagID)
	if err != nil {
		return nil, ErrTagInvalidID
	}

	p, err := s.participateRepo.FindByTag(ctx, tagID)
	if err != nil {
		if errors.Is(err, repositories.ErrParticipateNotFound) {
			return nil, ErrParticipateNotFound
		}
		return nil, fmt.Errorf("failed to find participate by tag %s: %w", tagID, err)
	}
	return p, nil
}

func (s *participateService) GetAllParticipates(ctx context.Context) ([]models.Participate, error) {
	participates, err := s.participateRepo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get all participates: %w", err)
	}
	return participates, nil
}

func (s *participateService) UpdateParticipate(ctx context.Context, id int, input CreateParticipateInput) (*models.Participate, error) {
	p, err := s.buildModel(input)
	if err != nil {
		return nil, err
	}
	p.ID = id

	if err := s.participateRepo.Update(ctx, p); err != nil {
		return nil, s.translateRepoError(err)
	}
	return p, nil
}

func (s *participateService) DeleteParticipate(ctx context.Context, id int) error {
	if err := s.participateRepo.Delete(ctx, id); err != nil {
		switch {
		case errors.Is(err, repositories.ErrParticipateNotFound):
			return ErrParticipateNotFound
		case errors.Is(err, repositories.ErrParticipateInUse):
			return ErrResourceInUse
		default:
			return fmt.Errorf("failed to delete participate %d: %w", id, err)
		}
	}
	return nil
}

func (s *participateService) translateRepoError(err error) error {
	switch {
	case errors.Is(err, repositories.ErrParticipateNotFound):
		return ErrParticipateNotFound
	case errors.Is(err, repositories.ErrParticipateTeamInvalid),
		errors.Is(err, repositories.ErrParticipateRunnerInvalid),
		errors.Is(err, repositories.ErrParticipateEventInvalid),
		errors.Is(err, repositories.ErrParticipateTagInvalid),
		errors.Is(err, repositories.ErrParticipateCategoryInvalid):
		return ErrInvalidReference
	case errors.Is(err, repositories.ErrConcurrentUpdate):
		return ErrConcurrentModification
	default:
		return err
	}
}
