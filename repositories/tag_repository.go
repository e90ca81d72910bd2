package repositories

import (
	"context"
	"database/sql"
	"errors"

	"github.com/lib/pq"
	"github.com/szl-run/szl-backend/models"
)

var (
	ErrTagNotFound = errors.New("tag not found")
	ErrTagConflict = errors.New("tag already exists")
	ErrTagInUse    = errors.New("tag cannot be deleted as it is in use")
)

type TagRepository interface {
	Create(ctx context.Context, tag *models.Tag) error
	GetByID(ctx context.Context, id models.TagKey) (*models.Tag, error)
	GetAll(ctx context.Context) ([]models.Tag, error)
	UpdateStatus(ctx context.Context, id models.TagKey, status models.TagStatus) error
	Delete(ctx context.Context, id models.TagKey) error
}

type postgresTagRepository struct {
	db *sql.DB
}

func NewPostgresTagRepository(db *sql.DB) TagRepository {
	return &postgresTagRepository{db: db}
}

func (r *postgresTagRepository) Create(ctx context.Context, tag *models.Tag) error {
	query := `INSERT INTO tags (id, status) VALUES ($1, $2)`

	_, err := r.db.ExecContext(ctx, query, int64(tag.ID), tag.Status)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" {
			return ErrTagConflict
		}
		return err
	}
	return nil
}

func (r *postgresTagRepository) GetByID(ctx context.Context, id models.TagKey) (*models.Tag, error) {
	query := `SELECT id, status FROM tags WHERE id = $1`

	var tag models.Tag
	err := r.db.QueryRowContext(ctx, query, int64(id)).Scan(&tag.ID, &tag.Status)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrTagNotFound
		}
		return nil, err
	}
	return &tag, nil
}

func (r *postgresTagRepository) GetAll(ctx context.Context) ([]models.Tag, error) {
	query := `SELECT id, status FROM tags ORDER BY id ASC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tags := make([]models.Tag, 0)
	for rows.Next() {
		var tag models.Tag
		if scanErr := rows.Scan(&tag.ID, &tag.Status); scanErr != nil {
			return nil, scanErr
		}
		tags = append(tags, tag)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return tags, nil
}

func (r *postgresTagRepository) UpdateStatus(ctx context.Context, id models.TagKey, status models.TagStatus) error {
	query := `UPDATE tags SET status = $1 WHERE id = $2`

	result, err := r.db.ExecContext(ctx, query, status, int64(id))
	if err != nil {
		return translateConcurrency(err)
	}
	return checkAffectedRows(result, ErrTagNotFound)
}

func (r *postgresTagRepository) Delete(ctx context.Context, id models.TagKey) error {
	query := `DELETE FROM tags WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, int64(id))
	if err != nil {
		// participates.tag_id держит ON DELETE RESTRICT
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23503" {
			return ErrTagInUse
		}
		return err
	}
	return checkAffectedRows(result, ErrTagNotFound)
}
