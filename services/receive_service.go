package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/szl-run/szl-backend/models"
	"github.com/szl-run/szl-backend/repositories"
)

type ReceiveService interface {
	CreateReceive(ctx context.Context, input ReceiveInput) (*models.Receive, error)
	GetAllReceives(ctx context.Context) ([]models.Receive, error)
	GetReceivesByParticipate(ctx context.Context, participateID int) ([]models.Receive, error)
	DeleteReceive(ctx context.Context, participateID, giftID int) error
}

type ReceiveInput struct {
	ParticipateID int `json:"participate_id"`
	GiftID        int `json:"gift_id"`
}

type receiveService struct {
	receiveRepo repositories.ReceiveRepository
}

func NewReceiveService(receiveRepo repositories.ReceiveRepository) ReceiveService {
	return &receiveService{receiveRepo: receiveRepo}
}

func (s *receiveService) CreateReceive(ctx context.Context, input ReceiveInput) (*models.Receive, error) {
	if input.ParticipateID <= 0 || input.GiftID <= 0 {
		return nil, ErrReceiveInvalidIDs
	}

	receive := &models.Receive{
		ParticipateID: input.ParticipateID,
		GiftID:        input.GiftID,
	}
	if err := s.receiveRepo.Create(ctx, receive); err != nil {
		switch {
		case errors.Is(err, repositories.ErrReceiveConflict):
			return nil, ErrReceiveConflict
		case errors.Is(err, repositories.ErrReceiveParticipateInvalid),
			errors.Is(err, repositories.ErrReceiveGiftInvalid):
			return nil, ErrInvalidReference
		default:
			return nil, fmt.Errorf("failed to create receive record: %w", err)
		}
	}
	return receive, nil
}

func (s *receiveService) GetAllReceives(ctx context.Context) ([]models.Receive, error) {
	receives, err := s.receiveRepo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get all receives: %w", err)
	}
	return receives, nil
}

func (s *receiveService) GetReceivesByParticipate(ctx context.Context, participateID int) ([]models.Receive, error) {
	receives, err := s.receiveRepo.ListByParticipate(ctx, participateID)
	if err != nil {
		return nil, fmt.Errorf("failed to list receives for participate %d: %w", participateID, err)
	}
	return receives, nil
}

func (s *receiveService) DeleteReceive(ctx context.Context, participateID, giftID int) error {
	if err := s.receiveRepo.Delete(ctx, participateID, giftID); err != nil {
		if errors.Is(err, repositories.ErrReceiveNotFound) {
			return ErrReceiveNotFound
		}
		return fmt.Errorf("failed to delete receive record: %w", err)
	}
	return nil
}
