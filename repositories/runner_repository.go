package repositories

import (
	"context"
	"database/sql"
	"errors"

	"github.com/lib/pq"
	"github.com/szl-run/szl-backend/models"
)

var (
	ErrRunnerNotFound = errors.New("runner not found")
	ErrRunnerInUse    = errors.New("runner cannot be deleted as it is in use")
)

type RunnerRepository interface {
	Create(ctx context.Context, runner *models.Runner) error
	GetByID(ctx context.Context, id int) (*models.Runner, error)
	GetAll(ctx context.Context) ([]models.Runner, error)
	Update(ctx context.Context, runner *models.Runner) error
	Delete(ctx context.Context, id int) error
	Count(ctx context.Context) (int, error)
}

type postgresRunnerRepository struct {
	db *sql.DB
}

func NewPostgresRunnerRepository(db *sql.DB) RunnerRepository {
	return &postgresRunnerRepository{db: db}
}

func (r *postgresRunnerRepository) Create(ctx context.Context, runner *models.Runner) error {
	query := `INSERT INTO runners (first_name, last_name) VALUES ($1, $2) RETURNING id`

	return r.db.QueryRowContext(ctx, query, runner.FirstName, runner.LastName).Scan(&runner.ID)
}

func (r *postgresRunnerRepository) GetByID(ctx context.Context, id int) (*models.Runner, error) {
	query := `SELECT id, first_name, last_name FROM runners WHERE id = $1`

	var runner models.Runner
	err := r.db.QueryRowContext(ctx, query, id).Scan(&runner.ID, &runner.FirstName, &runner.LastName)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrRunnerNotFound
		}
		return nil, err
	}
	return &runner, nil
}

func (r *postgresRunnerRepository) GetAll(ctx context.Context) ([]models.Runner, error) {
	query := `SELECT id, first_name, last_name FROM runners ORDER BY id ASC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	runners := make([]models.Runner, 0)
	for rows.Next() {
		var runner models.Runner
		if scanErr := rows.Scan(&runner.ID, &runner.FirstName, &runner.LastName); scanErr != nil {
			return nil, scanErr
		}
		runners = append(runners, runner)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return runners, nil
}

func (r *postgresRunnerRepository) Update(ctx context.Context, runner *models.Runner) error {
	query := `UPDATE runners SET first_name = $1, last_name = $2 WHERE id = $3`

	result, err := r.db.ExecContext(ctx, query, runner.FirstName, runner.LastName, runner.ID)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrRunnerNotFound)
}

func (r *postgresRunnerRepository) Delete(ctx context.Context, id int) error {
	query := `DELETE FROM runners WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23503" {
			return ErrRunnerInUse
		}
		return err
	}
	return checkAffectedRows(result, ErrRunnerNotFound)
}

func (r *postgresRunnerRepository) Count(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM runners`).Scan(&count)
	return count, err
}
