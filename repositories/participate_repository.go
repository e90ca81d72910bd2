package repositories

import (
	"context"
	"database/sql"
	"errors"

	"github.com/lib/pq"
	"github.com/szl-run/szl-backend/models"
)

var (
	ErrParticipateNotFound        = errors.New("participate not found")
	ErrParticipateTeamInvalid     = errors.New("participate team conflict or invalid")
	ErrParticipateRunnerInvalid   = errors.New("participate runner conflict or invalid")
	ErrParticipateEventInvalid    = errors.New("participate event conflict or invalid")
	ErrParticipateTagInvalid      = errors.New("participate tag conflict or invalid")
	ErrParticipateCategoryInvalid = errors.New("participate category conflict or invalid")
	ErrParticipateInUse           = errors.New("participate cannot be deleted as it is in use")
)

type ParticipateRepository interface {
	Create(ctx context.Context, p *models.Participate) error
	GetByID(ctx context.Context, id int) (*models.Participate, error)
	FindByTag(ctx context.Context, tagID models.TagKey) (*models.Participate, error)
	GetAll(ctx context.Context) ([]models.Participate, error)
	Update(ctx context.Context, p *models.Participate) error
	Delete(ctx context.Context, id int) error
	Count(ctx context.Context) (int, error)
}

type postgresParticipateRepository struct {
	db *sql.DB
}

func NewPostgresParticipateRepository(db *sql.DB) ParticipateRepository {
	return &postgresParticipateRepository{db: db}
}

const participateColumns = `id, team_id, runner_id, event_id, tag_id, category_id, created_at`

func scanParticipate(row interface{ Scan(dest ...interface{}) error }, p *models.Participate) error {
	return row.Scan(
		&p.ID,
		&p.TeamID,
		&p.RunnerID,
		&p.EventID,
		&p.TagID,
		&p.CategoryID,
		&p.CreatedAt,
	)
}

// handleParticipateFKError распознаёт нарушенную FK по имени constraint.
func handleParticipateFKError(pqErr *pq.Error) error {
	switch pqErr.Constraint {
	case "participates_team_id_fkey":
		return ErrParticipateTeamInvalid
	case "participates_runner_id_fkey":
		return ErrParticipateRunnerInvalid
	case "participates_event_id_fkey":
		return ErrParticipateEventInvalid
	case "participates_tag_id_fkey":
		return ErrParticipateTagInvalid
	case "participates_category_id_fkey":
		return ErrParticipateCategoryInvalid
	}
	return pqErr
}

func (r *postgresParticipateRepository) Create(ctx context.Context, p *models.Participate) error {
	query := `
		INSERT INTO participates (team_id, runner_id, event_id, tag_id, category_id)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at`

	err := r.db.QueryRowContext(ctx, query,
		p.TeamID,
		p.RunnerID,
		p.EventID,
		p.TagID,
		p.CategoryID,
	).Scan(&p.ID, &p.CreatedAt)

	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23503" {
			return handleParticipateFKError(pqErr)
		}
		return err
	}
	return nil
}

func (r *postgresParticipateRepository) GetByID(ctx context.Context, id int) (*models.Participate, error) {
	query := `SELECT ` + participateColumns + ` FROM participates WHERE id = $1`

	var p models.Participate
	err := scanParticipate(r.db.QueryRowContext(ctx, query, id), &p)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrParticipateNotFound
		}
		return nil, err
	}
	return &p, nil
}

// FindByTag ищет по разобранному числовому значению метки: единственное
// представление ключа, строковая форма остаётся на границе HTTP.
func (r *postgresParticipateRepository) FindByTag(ctx context.Context, tagID models.TagKey) (*models.Participate, error) {
	query := `SELECT ` + participateColumns + ` FROM participates WHERE tag_id = $1 ORDER BY id LIMIT 1`

	var p models.Participate
	err := scanParticipate(r.db.QueryRowContext(ctx, query, int64(tagID)), &p)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrParticipateNotFound
		}
		return nil, err
	}
	return &p, nil
}

func (r *postgresParticipateRepository) GetAll(ctx context.Context) ([]models.Participate, error) {
	query := `SELECT ` + participateColumns + ` FROM participates ORDER BY id ASC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	participates := make([]models.Participate, 0)
	for rows.Next() {
		var p models.Participate
		if scanErr := scanParticipate(rows, &p); scanErr != nil {
			return nil, scanErr
		}
		participates = append(participates, p)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return participates, nil
}

func (r *postgresParticipateRepository) Update(ctx context.Context, p *models.Participate) error {
	query := `
		UPDATE participates
		SET team_id = $1, runner_id = $2, event_id = $3, tag_id = $4, category_id = $5
		WHERE id = $6`

	result, err := r.db.ExecContext(ctx, query,
		p.TeamID,
		p.RunnerID,
		p.EventID,
		p.TagID,
		p.CategoryID,
		p.ID,
	)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23503" {
			return handleParticipateFKError(pqErr)
		}
		return translateConcurrency(err)
	}
	return checkAffectedRows(result, ErrParticipateNotFound)
}

func (r *postgresParticipateRepository) Delete(ctx context.Context, id int) error {
	query := `DELETE FROM participates WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23503" {
			return ErrParticipateInUse
		}
		return err
	}
	return checkAffectedRows(result, ErrParticipateNotFound)
}

func (r *postgresParticipateRepository) Count(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM participates`).Scan(&count)
	return count, err
}
