package repositories

import (
	"context"
	"database/sql"
	"errors"

	"github.com/lib/pq"
	"github.com/szl-run/szl-backend/models"
)

var (
	ErrDonationNotFound           = errors.New("donation not found")
	ErrDonationParticipateInvalid = errors.New("donation participate conflict or invalid")
)

type DonationRepository interface {
	Create(ctx context.Context, exec SQLExecutor, donation *models.Donation) error
	GetByID(ctx context.Context, id int) (*models.Donation, error)
	// FindByParticipateForUpdate locks the participant's donation row so a
	// concurrent merge serializes instead of losing an increment.
	FindByParticipateForUpdate(ctx context.Context, exec SQLExecutor, participateID int) (*models.Donation, error)
	FindByParticipate(ctx context.Context, participateID int) (*models.Donation, error)
	GetAll(ctx context.Context) ([]models.Donation, error)
	AddAmount(ctx context.Context, exec SQLExecutor, id int, amount float64) (*models.Donation, error)
	Update(ctx context.Context, donation *models.Donation) error
	Delete(ctx context.Context, id int) error
	SumAmounts(ctx context.Context) (float64, error)
}

type postgresDonationRepository struct {
	db *sql.DB
}

func NewPostgresDonationRepository(db *sql.DB) DonationRepository {
	return &postgresDonationRepository{db: db}
}

func (r *postgresDonationRepository) getExecutor(exec SQLExecutor) SQLExecutor {
	if exec != nil {
		return exec
	}
	return r.db
}

const donationColumns = `id, participate_id, amount, created_at`

func scanDonation(row interface{ Scan(dest ...interface{}) error }, d *models.Donation) error {
	return row.Scan(&d.ID, &d.ParticipateID, &d.Amount, &d.CreatedAt)
}

func (r *postgresDonationRepository) Create(ctx context.Context, exec SQLExecutor, donation *models.Donation) error {
	query := `
		INSERT INTO donations (participate_id, amount)
		VALUES ($1, $2)
		RETURNING id, created_at`

	err := r.getExecutor(exec).QueryRowContext(ctx, query,
		donation.ParticipateID,
		donation.Amount,
	).Scan(&donation.ID, &donation.CreatedAt)

	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23503" {
			return ErrDonationParticipateInvalid
		}
		return translateConcurrency(err)
	}
	return nil
}

func (r *postgresDonationRepository) GetByID(ctx context.Context, id int) (*models.Donation, error) {
	query := `SELECT ` + donationColumns + ` FROM donations WHERE id = $1`

	var donation models.Donation
	err := scanDonation(r.db.QueryRowContext(ctx, query, id), &donation)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrDonationNotFound
		}
		return nil, err
	}
	return &donation, nil
}

func (r *postgresDonationRepository) FindByParticipateForUpdate(ctx context.Context, exec SQLExecutor, participateID int) (*models.Donation, error) {
	query := `SELECT ` + donationColumns + ` FROM donations WHERE participate_id = $1 ORDER BY id LIMIT 1 FOR UPDATE`

	var donation models.Donation
	err := scanDonation(r.getExecutor(exec).QueryRowContext(ctx, query, participateID), &donation)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrDonationNotFound
		}
		return nil, translateConcurrency(err)
	}
	return &donation, nil
}

func (r *postgresDonationRepository) FindByParticipate(ctx context.Context, participateID int) (*models.Donation, error) {
	query := `SELECT ` + donationColumns + ` FROM donations WHERE participate_id = $1 ORDER BY id LIMIT 1`

	var donation models.Donation
	err := scanDonation(r.db.QueryRowContext(ctx, query, participateID), &donation)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrDonationNotFound
		}
		return nil, err
	}
	return &donation, nil
}

func (r *postgresDonationRepository) GetAll(ctx context.Context) ([]models.Donation, error) {
	query := `SELECT ` + donationColumns + ` FROM donations ORDER BY id ASC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	donations := make([]models.Donation, 0)
	for rows.Next() {
		var donation models.Donation
		if scanErr := scanDonation(rows, &donation); scanErr != nil {
			return nil, scanErr
		}
		donations = append(donations, donation)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return donations, nil
}

func (r *postgresDonationRepository) AddAmount(ctx context.Context, exec SQLExecutor, id int, amount float64) (*models.Donation, error) {
	query := `
		UPDATE donations
		SET amount = amount + $1
		WHERE id = $2
		RETURNING ` + donationColumns

	var donation models.Donation
	err := scanDonation(r.getExecutor(exec).QueryRowContext(ctx, query, amount, id), &donation)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrDonationNotFound
		}
		return nil, translateConcurrency(err)
	}
	return &donation, nil
}

func (r *postgresDonationRepository) Update(ctx context.Context, donation *models.Donation) error {
	query := `UPDATE donations SET participate_id = $1, amount = $2 WHERE id = $3`

	result, err := r.db.ExecContext(ctx, query, donation.ParticipateID, donation.Amount, donation.ID)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23503" {
			return ErrDonationParticipateInvalid
		}
		return translateConcurrency(err)
	}
	return checkAffectedRows(result, ErrDonationNotFound)
}

func (r *postgresDonationRepository) Delete(ctx context.Context, id int) error {
	query := `DELETE FROM donations WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrDonationNotFound)
}

func (r *postgresDonationRepository) SumAmounts(ctx context.Context) (float64, error) {
	var total float64
	err := r.db.QueryRowContext(ctx, `SELECT COALESCE(SUM(amount), 0) FROM donations`).Scan(&total)
	return total, err
}
