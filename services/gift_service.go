package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/szl-run/szl-backend/models"
	"github.com/szl-run/szl-backend/repositories"
)

type GiftService interface {
	CreateGift(ctx context.Context, input GiftInput) (*models.Gift, error)
	GetGiftByID(ctx context.Context, id int) (*models.Gift, error)
	GetAllGifts(ctx context.Context) ([]models.Gift, error)
	UpdateGift(ctx context.Context, id int, input GiftInput) (*models.Gift, error)
	DeleteGift(ctx context.Context, id int) error
}

type GiftInput struct {
	Name        string `json:"name"`
	Requirement *int   `json:"requirement"`
}

type giftService struct {
	giftRepo repositories.GiftRepository
}

func NewGiftService(giftRepo repositories.GiftRepository) GiftService {
	return &giftService{giftRepo: giftRepo}
}

func (s *giftService) validate(input GiftInput) (string, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return "", ErrGiftNameRequired
	}
	if input.Requirement != nil && *input.Requirement <= 0 {
		return "", ErrGiftInvalidRequirement
	}
	return name, nil
}

func (s *giftService) CreateGift(ctx context.Context, input GiftInput) (*models.Gift, error) {
	name, err := s.validate(input)
	if err != nil {
		return nil, err
	}

	gift := &models.Gift{Name: name, Requirement: input.Requirement}
	if err := s.giftRepo.Create(ctx, gift); err != nil {
		return nil, fmt.Errorf("failed to create gift: %w", err)
	}
	return gift, nil
}

func (s *giftService) GetGiftByID(ctx context.Context, id int) (*models.Gift, error) {
	gift, err := s.giftRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrGiftNotFound) {
			return nil, ErrGiftNotFound
		}
		return nil, fmt.Errorf("failed to get gift %d: %w", id, err)
	}
	return gift, nil
}

func (s *giftService) GetAllGifts(ctx context.Context) ([]models.Gift, error) {
	gifts, err := s.giftRepo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get all gifts: %w", err)
	}
	return gifts, nil
}

func (s *giftService) UpdateGift(ctx context.Context, id int, input GiftInput) (*models.Gift, error) {
	name, err := s.validate(input)
	if err != nil {
		return nil, err
	}

	gift := &models.Gift{ID: id, Name: name, Requirement: input.Requirement}
	if err := s.giftRepo.Update(ctx, gift); err != nil {
		if errors.Is(err, repositories.ErrGiftNotFound) {
			return nil, ErrGiftNotFound
		}
		return nil, fmt.Errorf("failed to update gift %d: %w", id, err)
	}
	return gift, nil
}

func (s *giftService) DeleteGift(ctx context.Context, id int) error {
	if err := s.giftRepo.Delete(ctx, id); err != nil {
		switch {
		case errors.Is(err, repositories.ErrGiftNotFound):
			return ErrGiftNotFound
		case errors.Is(err, repositories.ErrGiftInUse):
			return ErrResourceInUse
		default:
			return fmt.Errorf("failed to delete gift %d: %w", id, err)
		}
	}
	return nil
}
