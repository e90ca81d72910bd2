package repositories

import (
	"context"
	"database/sql"
	"errors"

	"github.com/lib/pq"
	"github.com/szl-run/szl-backend/models"
)

var (
	ErrReceiveNotFound           = errors.New("receive record not found")
	ErrReceiveConflict           = errors.New("receive record already exists")
	ErrReceiveParticipateInvalid = errors.New("receive participate conflict or invalid")
	ErrReceiveGiftInvalid        = errors.New("receive gift conflict or invalid")
)

// ReceiveRepository хранит выдачи призов в БД. В ранней ревизии исходной
// системы это был процессный список; здесь — join-таблица, переживающая
// рестарт и работающая на нескольких инстансах.
type ReceiveRepository interface {
	Create(ctx context.Context, receive *models.Receive) error
	GetAll(ctx context.Context) ([]models.Receive, error)
	ListByParticipate(ctx context.Context, participateID int) ([]models.Receive, error)
	Delete(ctx context.Context, participateID, giftID int) error
}

type postgresReceiveRepository struct {
	db *sql.DB
}

func NewPostgresReceiveRepository(db *sql.DB) ReceiveRepository {
	return &postgresReceiveRepository{db: db}
}

func (r *postgresReceiveRepository) Create(ctx context.Context, receive *models.Receive) error {
	query := `
		INSERT INTO receives (participate_id, gift_id)
		VALUES ($1, $2)
		RETURNING created_at`

	err := r.db.QueryRowContext(ctx, query, receive.ParticipateID, receive.GiftID).Scan(&receive.CreatedAt)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok {
			switch pqErr.Code {
			case "23505":
				return ErrReceiveConflict
			case "23503":
				if pqErr.Constraint == "receives_gift_id_fkey" {
					return ErrReceiveGiftInvalid
				}
				return ErrReceiveParticipateInvalid
			}
		}
		return err
	}
	return nil
}

func (r *postgresReceiveRepository) GetAll(ctx context.Context) ([]models.Receive, error) {
	return r.list(ctx, `SELECT participate_id, gift_id, created_at FROM receives ORDER BY participate_id, gift_id`)
}

func (r *postgresReceiveRepository) ListByParticipate(ctx context.Context, participateID int) ([]models.Receive, error) {
	return r.list(ctx, `SELECT participate_id, gift_id, created_at FROM receives WHERE participate_id = $1 ORDER BY gift_id`, participateID)
}

func (r *postgresReceiveRepository) list(ctx context.Context, query string, args ...interface{}) ([]models.Receive, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	receives := make([]models.Receive, 0)
	for rows.Next() {
		var receive models.Receive
		if scanErr := rows.Scan(&receive.ParticipateID, &receive.GiftID, &receive.CreatedAt); scanErr != nil {
			return nil, scanErr
		}
		receives = append(receives, receive)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return receives, nil
}

func (r *postgresReceiveRepository) Delete(ctx context.Context, participateID, giftID int) error {
	query := `DELETE FROM receives WHERE participate_id = $1 AND gift_id = $2`

	result, err := r.db.ExecContext(ctx, query, participateID, giftID)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrReceiveNotFound)
}
