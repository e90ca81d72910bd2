package repositories

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/lib/pq"
	"github.com/szl-run/szl-backend/models"
)

var (
	ErrRoundNotFound           = errors.New("round not found")
	ErrRoundParticipateInvalid = errors.New("round participate conflict or invalid")
	ErrBestTimeNotFound        = errors.New("no timed rounds recorded for participate")
)

type RoundRepository interface {
	Create(ctx context.Context, exec SQLExecutor, round *models.Round) error
	GetByID(ctx context.Context, id int) (*models.Round, error)
	GetAll(ctx context.Context) ([]models.Round, error)
	ListByParticipate(ctx context.Context, participateID int) ([]models.Round, error)
	CountByParticipate(ctx context.Context, participateID int) (int, error)
	// LastTimestampForUpdate locks the participate's latest round so
	// concurrent crossings compute elapsed time from a stable predecessor.
	LastTimestampForUpdate(ctx context.Context, exec SQLExecutor, participateID int) (*time.Time, error)
	Update(ctx context.Context, round *models.Round) error
	Delete(ctx context.Context, id int) error
	BestTimes(ctx context.Context) ([]models.BestTime, error)
	BestTimeByParticipate(ctx context.Context, participateID int) (*models.BestTime, error)
	Count(ctx context.Context) (int, error)
}

type postgresRoundRepository struct {
	db *sql.DB
}

func NewPostgresRoundRepository(db *sql.DB) RoundRepository {
	return &postgresRoundRepository{db: db}
}

func (r *postgresRoundRepository) getExecutor(exec SQLExecutor) SQLExecutor {
	if exec != nil {
		return exec
	}
	return r.db
}

const roundColumns = `id, participate_id, round_timestamp, round_time`

func scanRound(row interface{ Scan(dest ...interface{}) error }, round *models.Round) error {
	return row.Scan(&round.ID, &round.ParticipateID, &round.Timestamp, &round.RoundTime)
}

func (r *postgresRoundRepository) Create(ctx context.Context, exec SQLExecutor, round *models.Round) error {
	query := `
		INSERT INTO rounds (participate_id, round_timestamp, round_time)
		VALUES ($1, $2, $3)
		RETURNING id`

	err := r.getExecutor(exec).QueryRowContext(ctx, query,
		round.ParticipateID,
		round.Timestamp,
		round.RoundTime,
	).Scan(&round.ID)

	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23503" {
			return ErrRoundParticipateInvalid
		}
		return translateConcurrency(err)
	}
	return nil
}

func (r *postgresRoundRepository) GetByID(ctx context.Context, id int) (*models.Round, error) {
	query := `SELECT ` + roundColumns + ` FROM rounds WHERE id = $1`

	var round models.Round
	err := scanRound(r.db.QueryRowContext(ctx, query, id), &round)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrRoundNotFound
		}
		return nil, err
	}
	return &round, nil
}

func (r *postgresRoundRepository) GetAll(ctx context.Context) ([]models.Round, error) {
	return r.list(ctx, `SELECT `+roundColumns+` FROM rounds ORDER BY id ASC`)
}

func (r *postgresRoundRepository) ListByParticipate(ctx context.Context, participateID int) ([]models.Round, error) {
	return r.list(ctx, `SELECT `+roundColumns+` FROM rounds WHERE participate_id = $1 ORDER BY round_timestamp ASC`, participateID)
}

func (r *postgresRoundRepository) list(ctx context.Context, query string, args ...interface{}) ([]models.Round, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	rounds := make([]models.Round, 0)
	for rows.Next() {
		var round models.Round
		if scanErr := scanRound(rows, &round); scanErr != nil {
			return nil, scanErr
		}
		rounds = append(rounds, round)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return rounds, nil
}

func (r *postgresRoundRepository) CountByParticipate(ctx context.Context, participateID int) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM rounds WHERE participate_id = $1`, participateID).Scan(&count)
	return count, err
}

func (r *postgresRoundRepository) LastTimestampForUpdate(ctx context.Context, exec SQLExecutor, participateID int) (*time.Time, error) {
	query := `
		SELECT round_timestamp FROM rounds
		WHERE participate_id = $1
		ORDER BY round_timestamp DESC
		LIMIT 1
		FOR UPDATE`

	var ts time.Time
	err := r.getExecutor(exec).QueryRowContext(ctx, query, participateID).Scan(&ts)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, translateConcurrency(err)
	}
	return &ts, nil
}

func (r *postgresRoundRepository) Update(ctx context.Context, round *models.Round) error {
	query := `UPDATE rounds SET participate_id = $1, round_timestamp = $2, round_time = $3 WHERE id = $4`

	result, err := r.db.ExecContext(ctx, query, round.ParticipateID, round.Timestamp, round.RoundTime, round.ID)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23503" {
			return ErrRoundParticipateInvalid
		}
		return translateConcurrency(err)
	}
	return checkAffectedRows(result, ErrRoundNotFound)
}

func (r *postgresRoundRepository) Delete(ctx context.Context, id int) error {
	query := `DELETE FROM rounds WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrRoundNotFound)
}

// BestTimes повторяет best_time view исходной схемы: минимальный круг
// на участника, DISTINCT ON отдаёт конкретный round_id рекорда.
func (r *postgresRoundRepository) BestTimes(ctx context.Context) ([]models.BestTime, error) {
	query := `
		SELECT DISTINCT ON (participate_id) participate_id, id, round_time
		FROM rounds
		WHERE round_time IS NOT NULL
		ORDER BY participate_id ASC, round_time ASC, id ASC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	bestTimes := make([]models.BestTime, 0)
	for rows.Next() {
		var bt models.BestTime
		if scanErr := rows.Scan(&bt.ParticipateID, &bt.RoundID, &bt.BestTime); scanErr != nil {
			return nil, scanErr
		}
		bestTimes = append(bestTimes, bt)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return bestTimes, nil
}

func (r *postgresRoundRepository) BestTimeByParticipate(ctx context.Context, participateID int) (*models.BestTime, error) {
	query := `
		SELECT participate_id, id, round_time
		FROM rounds
		WHERE participate_id = $1 AND round_time IS NOT NULL
		ORDER BY round_time ASC, id ASC
		LIMIT 1`

	var bt models.BestTime
	err := r.db.QueryRowContext(ctx, query, participateID).Scan(&bt.ParticipateID, &bt.RoundID, &bt.BestTime)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrBestTimeNotFound
		}
		return nil, err
	}
	return &bt, nil
}

func (r *postgresRoundRepository) Count(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM rounds`).Scan(&count)
	return count, err
}
