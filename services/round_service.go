package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/szl-run/szl-backend/models"
	"github.com/szl-run/szl-backend/repositories"
)

// RoundBroadcaster рассылает события пересечения линии подписчикам
// комнаты забега (live-фид). Реализуется live.Hub; nil отключает рассылку.
type RoundBroadcaster interface {
	BroadcastToRoom(roomID string, message interface{})
}

type RoundService interface {
	RecordRound(ctx context.Context, input RecordRoundInput) (*models.Round, error)
	GetRoundByID(ctx context.Context, id int) (*models.Round, error)
	GetAllRounds(ctx context.Context) ([]models.Round, error)
	GetRoundsByParticipate(ctx context.Context, participateID int) ([]models.Round, error)
	CountRoundsByParticipate(ctx context.Context, participateID int) (int, error)
	UpdateRound(ctx context.Context, id int, input RecordRoundInput) (*models.Round, error)
	DeleteRound(ctx context.Context, id int) error
	GetBestTimes(ctx context.Context) ([]models.BestTime, error)
	GetBestTimeByParticipate(ctx context.Context, participateID int) (*models.BestTime, error)
}

type RecordRoundInput struct {
	ParticipateID int        `json:"participate_id"`
	Timestamp     *time.Time `json:"round_timestamp"`
}

type roundService struct {
	db              *sql.DB
	roundRepo       repositories.RoundRepository
	participateRepo repositories.ParticipateRepository
	hub             RoundBroadcaster
}

func NewRoundService(
	db *sql.DB,
	roundRepo repositories.RoundRepository,
	participateRepo repositories.ParticipateRepository,
	hub RoundBroadcaster,
) RoundService {
	return &roundService{
		db:              db,
		roundRepo:       roundRepo,
		participateRepo: participateRepo,
		hub:             hub,
	}
}

// RecordRound записывает пересечение линии. Время круга считается от
// предыдущего круга того же участника; предыдущая запись блокируется в
// транзакции, чтобы два одновременных считывания не взяли один и тот же
// круг за основу.
func (s *roundService) RecordRound(ctx context.Context, input RecordRoundInput) (*models.Round, error) {
	if input.ParticipateID <= 0 {
		return nil, ErrRoundInvalidParticipate
	}

	participate, err := s.participateRepo.GetByID(ctx, input.ParticipateID)
	if err != nil {
		if errors.Is(err, repositories.ErrParticipateNotFound) {
			return nil, ErrParticipateNotFound
		}
		return nil, fmt.Errorf("failed to resolve participate %d: %w", input.ParticipateID, err)
	}

	timestamp := time.Now().UTC()
	if input.Timestamp != nil {
		timestamp = input.Timestamp.UTC()
	}

	round := &models.Round{
		ParticipateID: input.ParticipateID,
		Timestamp:     timestamp,
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	previous, err := s.roundRepo.LastTimestampForUpdate(ctx, tx, input.ParticipateID)
	if err != nil {
		return nil, s.translateRepoError(err)
	}
	if previous != nil && timestamp.After(*previous) {
		elapsed := timestamp.Sub(*previous).Seconds()
		round.RoundTime = &elapsed
	}

	if err := s.roundRepo.Create(ctx, tx, round); err != nil {
		return nil, s.translateRepoError(err)
	}
	if err := tx.Commit(); err != nil {
		return nil, s.translateRepoError(err)
	}

	if s.hub != nil && participate.EventID != nil {
		s.hub.BroadcastToRoom(fmt.Sprintf("event_%d", *participate.EventID), round)
	}
	return round, nil
}

func (s *roundService) GetRoundByID(ctx context.Context, id int) (*models.Round, error) {
	round, err := s.roundRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrRoundNotFound) {
			return nil, ErrRoundNotFound
		}
		return nil, fmt.Errorf("failed to get round %d: %w", id, err)
	}
	return round, nil
}

func (s *roundService) GetAllRounds(ctx context.Context) ([]models.Round, error) {
	rounds, err := s.roundRepo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get all rounds: %w", err)
	}
	return rounds, nil
}

func (s *roundService) GetRoundsByParticipate(ctx context.Context, participateID int) ([]models.Round, error) {
	rounds, err := s.roundRepo.ListByParticipate(ctx, participateID)
	if err != nil {
		return nil, fmt.Errorf("failed to list rounds for participate %d: %w", participateID, err)
	}
	return rounds, nil
}

func (s *roundService) CountRoundsByParticipate(ctx context.Context, participateID int) (int, error) {
	count, err := s.roundRepo.CountByParticipate(ctx, participateID)
	if err != nil {
		return 0, fmt.Errorf("failed to count rounds for participate %d: %w", participateID, err)
	}
	return count, nil
}

func (s *roundService) UpdateRound(ctx context.Context, id int, input RecordRoundInput) (*models.Round, error) {
	if input.ParticipateID <= 0 {
		return nil, ErrRoundInvalidParticipate
	}

	round, err := s.GetRoundByID(ctx, id)
	if err != nil {
		return nil, err
	}

	round.ParticipateID = input.ParticipateID
	if input.Timestamp != nil {
		round.Timestamp = input.Timestamp.UTC()
	}

	if err := s.roundRepo.Update(ctx, round); err != nil {
		return nil, s.translateRepoError(err)
	}
	return round, nil
}

func (s *roundService) DeleteRound(ctx context.Context, id int) error {
	if err := s.roundRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repositories.ErrRoundNotFound) {
			return ErrRoundNotFound
		}
		return fmt.Errorf("failed to delete round %d: %w", id, err)
	}
	return nil
}

func (s *roundService) GetBestTimes(ctx context.Context) ([]models.BestTime, error) {
	bestTimes, err := s.roundRepo.BestTimes(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get best times: %w", err)
	}
	return bestTimes, nil
}

func (s *roundService) GetBestTimeByParticipate(ctx context.Context, participateID int) (*models.BestTime, error) {
	bestTime, err := s.roundRepo.BestTimeByParticipate(ctx, participateID)
	if err != nil {
		if errors.Is(err, repositories.ErrBestTimeNotFound) {
			return nil, ErrBestTimeNotFound
		}
		return nil, fmt.Errorf("failed to get best time for participate %d: %w", participateID, err)
	}
	return bestTime, nil
}

func (s *roundService) translateRepoError(err error) error {
	switch {
	case errors.Is(err, repositories.ErrRoundNotFound):
		return ErrRoundNotFound
	case errors.Is(err, repositories.ErrRoundParticipateInvalid):
		return ErrInvalidReference
	case errors.Is(err, repositories.ErrConcurrentUpdate):
		return ErrConcurrentModification
	default:
		return err
	}
}
