package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/szl-run/szl-backend/models"
	"github.com/szl-run/szl-backend/repositories"
)

type RunnerService interface {
	CreateRunner(ctx context.Context, input RunnerInput) (*models.Runner, error)
	GetRunnerByID(ctx context.Context, id int) (*models.Runner, error)
	GetAllRunners(ctx context.Context) ([]models.Runner, error)
	UpdateRunner(ctx context.Context, id int, input RunnerInput) (*models.Runner, error)
	DeleteRunner(ctx context.Context, id int) error
}

type RunnerInput struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

type runnerService struct {
	runnerRepo repositories.RunnerRepository
}

func NewRunnerService(runnerRepo repositories.RunnerRepository) RunnerService {
	return &runnerService{runnerRepo: runnerRepo}
}

func (s *runnerService) CreateRunner(ctx context.Context, input RunnerInput) (*models.Runner, error) {
	firstName := strings.TrimSpace(input.FirstName)
	if firstName == "" {
		return nil, ErrRunnerNameRequired
	}

	runner := &models.Runner{
		FirstName: firstName,
		LastName:  strings.TrimSpace(input.LastName),
	}
	if err := s.runnerRepo.Create(ctx, runner); err != nil {
		return nil, fmt.Errorf("failed to create runner: %w", err)
	}
	return runner, nil
}

func (s *runnerService) GetRunnerByID(ctx context.Context, id int) (*models.Runner, error) {
	runner, err := s.runnerRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrRunnerNotFound) {
			return nil, ErrRunnerNotFound
		}
		return nil, fmt.Errorf("failed to get runner %d: %w", id, err)
	}
	return runner, nil
}

func (s *runnerService) GetAllRunners(ctx context.Context) ([]models.Runner, error) {
	runners, err := s.runnerRepo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get all runners: %w", err)
	}
	return runners, nil
}

func (s *runnerService) UpdateRunner(ctx context.Context, id int, input RunnerInput) (*models.Runner, error) {
	firstName := strings.TrimSpace(input.FirstName)
	if firstName == "" {
		return nil, ErrRunnerNameRequired
	}

	runner := &models.Runner{
		ID:        id,
		FirstName: firstName,
		LastName:  strings.TrimSpace(input.LastName),
	}
	if err := s.runnerRepo.Update(ctx, runner); err != nil {
		if errors.Is(err, repositories.ErrRunnerNotFound) {
			return nil, ErrRunnerNotFound
		}
		return nil, fmt.Errorf("failed to update runner %d: %w", id, err)
	}
	return runner, nil
}

func (s *runnerService) DeleteRunner(ctx context.Context, id int) error {
	if err := s.runnerRepo.Delete(ctx, id); err != nil {
		switch {
		case errors.Is(err, repositories.ErrRunnerNotFound):
			return ErrRunnerNotFound
		case errors.Is(err, repositories.ErrRunnerInUse):
			return ErrResourceInUse
		default:
			return fmt.Errorf("failed to delete runner %d: %w", id, err)
		}
	}
	return nil
}
