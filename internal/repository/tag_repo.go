package repository

import (
	"context"
	"database/sql"

	"github.com/blog-personal-api/internal/database"
	"github.com/blog-personal-api/internal/models"
)

// tagRepo is the concrete implementation of TagRepository
type tagRepo struct {
	db *database.DB
}

// NewTagRepo creates a new tag repository
func NewTagRepo(db *database.DB) TagRepository {
	return &tagRepo{db: db}
}

// List returns all tags ordered by name
func (r *tagRepo) List(ctx context.Context) ([]*models.Tag, error) {
	rows, err := r.db.QueryContext(ctx, "SELECT id, name, slug FROM tags ORDER BY name, id")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tags := []*models.Tag{}
	for rows.Next() {
		var tag models.Tag
		if err := rows.Scan(&tag.ID, &tag.Name, &tag.Slug); err != nil {
			return nil, err
		}
		tags = append(tags, &tag)
	}
	return tags, rows.Err()
}

// GetByID retrieves a tag by ID
func (r *tagRepo) GetByID(ctx context.Context, id int64) (*models.Tag, error) {
	var tag models.Tag
	err := r.db.QueryRowContext(ctx, "SELECT id, name, slug FROM tags WHERE id = $1", id).
		Scan(&tag.ID, &tag.Name, &tag.Slug)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &tag, nil
}

// Create inserts a new tag and sets its generated ID
func (r *tagRepo) Create(ctx context.Context, tag *models.Tag) error {
	err := r.db.QueryRowContext(ctx,
		"INSERT INTO tags (name, slug) VALUES ($1, $2) RETURNING id",
		tag.Name, tag.Slug,
	).Scan(&tag.ID)
	return mapError(err)
}

// Update renames a tag
func (r *tagRepo) Update(ctx context.Context, tag *models.Tag) (bool, error) {
	result, err := r.db.ExecContext(ctx,
		"UPDATE tags SET name = $1, slug = $2 WHERE id = $3",
		tag.Name, tag.Slug, tag.ID,
	)
	if err != nil {
		return false, mapError(err)
	}
	rows, err := result.RowsAffected()
	return rows > 0, err
}

// Delete removes a tag; its post links cascade
func (r *tagRepo) Delete(ctx context.Context, id int64) (bool, error) {
	result, err := r.db.ExecContext(ctx, "DELETE FROM tags WHERE id = $1", id)
	if err != nil {
		return false, err
	}
	rows, err := result.RowsAffected()
	return rows > 0, err
}
