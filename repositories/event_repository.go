package repositories

import (
	"context"
	"database/sql"
	"errors"

	"github.com/lib/pq"
	"github.com/szl-run/szl-backend/models"
)

var (
	ErrEventNotFound        = errors.New("event not found")
	ErrEventCategoryInvalid = errors.New("event category conflict or invalid")
)

type EventRepository interface {
	Create(ctx context.Context, exec SQLExecutor, event *models.Event) error
	GetByID(ctx context.Context, id int) (*models.Event, error)
	GetAll(ctx context.Context) ([]models.Event, error)
	Update(ctx context.Context, exec SQLExecutor, event *models.Event) error
	Delete(ctx context.Context, id int) error
	// ListActiveForUpdate locks every currently-active event (except
	// excludeID) so a concurrent activation sweep serializes on the rows.
	ListActiveForUpdate(ctx context.Context, exec SQLExecutor, excludeID int) ([]int, error)
	SetStatus(ctx context.Context, exec SQLExecutor, id int, status models.EventStatus) error
	UpdateLogoKey(ctx context.Context, id int, logoKey *string) error
	FindActiveID(ctx context.Context) (*int, error)
	Count(ctx context.Context) (int, error)
}

type postgresEventRepository struct {
	db *sql.DB
}

func NewPostgresEventRepository(db *sql.DB) EventRepository {
	return &postgresEventRepository{db: db}
}

func (r *postgresEventRepository) getExecutor(exec SQLExecutor) SQLExecutor {
	if exec != nil {
		return exec
	}
	return r.db
}

const eventColumns = `id, name, place, status, start_time, end_time, category_id, logo_key, created_at`

func scanEvent(row interface{ Scan(dest ...interface{}) error }, event *models.Event) error {
	return row.Scan(
		&event.ID,
		&event.Name,
		&event.Place,
		&event.Status,
		&event.StartTime,
		&event.EndTime,
		&event.CategoryID,
		&event.LogoKey,
		&event.CreatedAt,
	)
}

func (r *postgresEventRepository) Create(ctx context.Context, exec SQLExecutor, event *models.Event) error {
	query := `
		INSERT INTO events (name, place, status, start_time, end_time, category_id)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at`

	err := r.getExecutor(exec).QueryRowContext(ctx, query,
		event.Name,
		event.Place,
		event.Status,
		event.StartTime,
		event.EndTime,
		event.CategoryID,
	).Scan(&event.ID, &event.CreatedAt)

	if err != nil {
		return translateEventWriteError(err)
	}
	return nil
}

// translateEventWriteError разбирает ошибки записи события. Нарушение
// частичного индекса events_single_active_idx означает, что две активации
// одновременно прошли пустой sweep: проигравший получает конфликт и
// повторяет запрос.
func translateEventWriteError(err error) error {
	if pqErr, ok := err.(*pq.Error); ok {
		switch {
		case pqErr.Code == "23503":
			return ErrEventCategoryInvalid
		case pqErr.Code == "23505" && pqErr.Constraint == "events_single_active_idx":
			return ErrConcurrentUpdate
		}
	}
	return translateConcurrency(err)
}

func (r *postgresEventRepository) GetByID(ctx context.Context, id int) (*models.Event, error) {
	query := `SELECT ` + eventColumns + ` FROM events WHERE id = $1`

	var event models.Event
	err := scanEvent(r.db.QueryRowContext(ctx, query, id), &event)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrEventNotFound
		}
		return nil, err
	}
	return &event, nil
}

func (r *postgresEventRepository) GetAll(ctx context.Context) ([]models.Event, error) {
	query := `SELECT ` + eventColumns + ` FROM events ORDER BY id ASC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	events := make([]models.Event, 0)
	for rows.Next() {
		var event models.Event
		if scanErr := scanEvent(rows, &event); scanErr != nil {
			return nil, scanErr
		}
		events = append(events, event)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return events, nil
}

func (r *postgresEventRepository) Update(ctx context.Context, exec SQLExecutor, event *models.Event) error {
	query := `
		UPDATE events
		SET name = $1, place = $2, status = $3, start_time = $4, end_time = $5, category_id = $6
		WHERE id = $7`

	result, err := r.getExecutor(exec).ExecContext(ctx, query,
		event.Name,
		event.Place,
		event.Status,
		event.StartTime,
		event.EndTime,
		event.CategoryID,
		event.ID,
	)
	if err != nil {
		return translateEventWriteError(err)
	}
	return checkAffectedRows(result, ErrEventNotFound)
}

func (r *postgresEventRepository) Delete(ctx context.Context, id int) error {
	query := `DELETE FROM events WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrEventNotFound)
}

func (r *postgresEventRepository) ListActiveForUpdate(ctx context.Context, exec SQLExecutor, excludeID int) ([]int, error) {
	query := `SELECT id FROM events WHERE status = $1 AND id <> $2 ORDER BY id FOR UPDATE`

	rows, err := r.getExecutor(exec).QueryContext(ctx, query, models.EventStatusActive, excludeID)
	if err != nil {
		return nil, translateConcurrency(err)
	}
	defer rows.Close()

	ids := make([]int, 0)
	for rows.Next() {
		var id int
		if scanErr := rows.Scan(&id); scanErr != nil {
			return nil, scanErr
		}
		ids = append(ids, id)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return ids, nil
}

func (r *postgresEventRepository) SetStatus(ctx context.Context, exec SQLExecutor, id int, status models.EventStatus) error {
	query := `UPDATE events SET status = $1 WHERE id = $2`

	result, err := r.getExecutor(exec).ExecContext(ctx, query, status, id)
	if err != nil {
		return translateConcurrency(err)
	}
	return checkAffectedRows(result, ErrEventNotFound)
}

func (r *postgresEventRepository) UpdateLogoKey(ctx context.Context, id int, logoKey *string) error {
	query := `UPDATE events SET logo_key = $1 WHERE id = $2`

	result, err := r.db.ExecContext(ctx, query, logoKey, id)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrEventNotFound)
}

func (r *postgresEventRepository) FindActiveID(ctx context.Context) (*int, error) {
	query := `SELECT id FROM events WHERE status = $1 ORDER BY id LIMIT 1`

	var id int
	err := r.db.QueryRowContext(ctx, query, models.EventStatusActive).Scan(&id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &id, nil
}

func (r *postgresEventRepository) Count(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM events`).Scan(&count)
	return count, err
}
