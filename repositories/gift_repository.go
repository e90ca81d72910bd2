package repositories

import (
	"context"
	"database/sql"
	"errors"

	"github.com/lib/pq"
	"github.com/szl-run/szl-backend/models"
)

var (
	ErrGiftNotFound = errors.New("gift not found")
	ErrGiftInUse    = errors.New("gift cannot be deleted as it is in use")
)

type GiftRepository interface {
	Create(ctx context.Context, gift *models.Gift) error
	GetByID(ctx context.Context, id int) (*models.Gift, error)
	GetAll(ctx context.Context) ([]models.Gift, error)
	Update(ctx context.Context, gift *models.Gift) error
	Delete(ctx context.Context, id int) error
}

type postgresGiftRepository struct {
	db *sql.DB
}

func NewPostgresGiftRepository(db *sql.DB) GiftRepository {
	return &postgresGiftRepository{db: db}
}

func (r *postgresGiftRepository) Create(ctx context.Context, gift *models.Gift) error {
	query := `INSERT INTO gifts (name, requirement) VALUES ($1, $2) RETURNING id`

	return r.db.QueryRowContext(ctx, query, gift.Name, gift.Requirement).Scan(&gift.ID)
}

func (r *postgresGiftRepository) GetByID(ctx context.Context, id int) (*models.Gift, error) {
	query := `SELECT id, name, requirement FROM gifts WHERE id = $1`

	var gift models.Gift
	err := r.db.QueryRowContext(ctx, query, id).Scan(&gift.ID, &gift.Name, &gift.Requirement)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrGiftNotFound
		}
		return nil, err
	}
	return &gift, nil
}

func (r *postgresGiftRepository) GetAll(ctx context.Context) ([]models.Gift, error) {
	query := `SELECT id, name, requirement FROM gifts ORDER BY id ASC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	gifts := make([]models.Gift, 0)
	for rows.Next() {
		var gift models.Gift
		if scanErr := rows.Scan(&gift.ID, &gift.Name, &gift.Requirement); scanErr != nil {
			return nil, scanErr
		}
		gifts = append(gifts, gift)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return gifts, nil
}

func (r *postgresGiftRepository) Update(ctx context.Context, gift *models.Gift) error {
	query := `UPDATE gifts SET name = $1, requirement = $2 WHERE id = $3`

	result, err := r.db.ExecContext(ctx, query, gift.Name, gift.Requirement, gift.ID)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrGiftNotFound)
}

func (r *postgresGiftRepository) Delete(ctx context.Context, id int) error {
	query := `DELETE FROM gifts WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23503" {
			return ErrGiftInUse
		}
		return err
	}
	return checkAffectedRows(result, ErrGiftNotFound)
}
