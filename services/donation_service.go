package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/szl-run/szl-backend/models"
	"github.com/szl-run/szl-backend/repositories"
)

type DonationService interface {
	// RecordDonation применяет активную политику. created=true означает
	// новую строку (HTTP 201), false — слияние в существующую (HTTP 200).
	RecordDonation(ctx context.Context, input RecordDonationInput) (donation *models.Donation, created bool, err error)
	GetDonationByID(ctx context.Context, id int) (*models.Donation, error)
	GetDonationByParticipate(ctx context.Context, participateID int) (*models.Donation, error)
	GetAllDonations(ctx context.Context) ([]models.Donation, error)
	UpdateDonation(ctx context.Context, id int, input RecordDonationInput) (*models.Donation, error)
	DeleteDonation(ctx context.Context, id int) error
}

type RecordDonationInput struct {
	ParticipateID *int    `json:"participate_id"`
	Amount        float64 `json:"amount"`
}

type donationService struct {
	db           *sql.DB
	donationRepo repositories.DonationRepository
	// aggregate=true: сумма вливается в существующую строку участника
	// (политика ранней ревизии); false: каждый вызов — отдельная строка.
	aggregate bool
}

func NewDonationService(db *sql.DB, donationRepo repositories.DonationRepository, aggregate bool) DonationService {
	return &donationService{
		db:           db,
		donationRepo: donationRepo,
		aggregate:    aggregate,
	}
}

func (s *donationService) RecordDonation(ctx context.Context, input RecordDonationInput) (*models.Donation, bool, error) {
	if input.Amount <= 0 {
		return nil, false, ErrDonationInvalidAmount
	}
	if input.ParticipateID != nil && *input.ParticipateID <= 0 {
		return nil, false, ErrRoundInvalidParticipate
	}

	donation := &models.Donation{
		ParticipateID: input.ParticipateID,
		Amount:        input.Amount,
	}

	// Без привязки к участнику сливать не во что — всегда новая строка.
	if !s.aggregate || input.ParticipateID == nil {
		if err := s.donationRepo.Create(ctx, nil, donation); err != nil {
			return nil, false, s.translateRepoError(err)
		}
		return donation, true, nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, false, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	existing, err := s.donationRepo.FindByParticipateForUpdate(ctx, tx, *input.ParticipateID)
	switch {
	case err == nil:
		merged, addErr := s.donationRepo.AddAmount(ctx, tx, existing.ID, input.Amount)
		if addErr != nil {
			return nil, false, s.translateRepoError(addErr)
		}
		if commitErr := tx.Commit(); commitErr != nil {
			return nil, false, s.translateRepoError(commitErr)
		}
		return merged, false, nil

	case errors.Is(err, repositories.ErrDonationNotFound):
		if createErr := s.donationRepo.Create(ctx, tx, donation); createErr != nil {
			return nil, false, s.translateRepoError(createErr)
		}
		if commitErr := tx.Commit(); commitErr != nil {
			return nil, false, s.translateRepoError(commitErr)
		}
		return donation, true, nil

	default:
		return nil, false, s.translateRepoError(err)
	}
}

func (s *donationService) GetDonationByID(ctx context.Context, id int) (*models.Donation, error) {
	donation, err := s.donationRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrDonationNotFound) {
			return nil, ErrDonationNotFound
		}
		return nil, fmt.Errorf("failed to get donation %d: %w", id, err)
	}
	return donation, nil
}

func (s *donationService) GetDonationByParticipate(ctx context.Context, participateID int) (*models.Donation, error) {
	donation, err := s.donationRepo.FindByParticipate(ctx, participateID)
	if err != nil {
		if errors.Is(err, repositories.ErrDonationNotFound) {
			return nil, ErrDonationNotFound
		}
		return nil, fmt.Errorf("failed to get donation for participate %d: %w", participateID, err)
	}
	return donation, nil
}

func (s *donationService) GetAllDonations(ctx context.Context) ([]models.Donation, error) {
	donations, err := s.donationRepo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get all donations: %w", err)
	}
	return donations, nil
}

func (s *donationService) UpdateDonation(ctx context.Context, id int, input RecordDonationInput) (*models.Donation, error) {
	if input.Amount <= 0 {
		return nil, ErrDonationInvalidAmount
	}

	donation := &models.Donation{
		ID:            id,
		ParticipateID: input.ParticipateID,
		Amount:        input.Amount,
	}
	if err := s.donationRepo.Update(ctx, donation); err != nil {
		return nil, s.translateRepoError(err)
	}
	return donation, nil
}

func (s *donationService) DeleteDonation(ctx context.Context, id int) error {
	if err := s.donationRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repositories.ErrDonationNotFound) {
			return ErrDonationNotFound
		}
		return fmt.Errorf("failed to delete donation %d: %w", id, err)
	}
	return nil
}

func (s *donationService) translateRepoError(err error) error {
	switch {
	case errors.Is(err, repositories.ErrDonationNotFound):
		return ErrDonationNotFound
	case errors.Is(err, repositories.ErrDonationParticipateInvalid):
		return ErrInvalidReference
	case errors.Is(err, repositories.ErrConcurrentUpdate):
		return ErrConcurrentModification
	default:
		return err
	}
}
