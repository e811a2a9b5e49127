package repository

import (
	"context"

	"github.com/blog-personal-api/internal/database"
	"github.com/blog-personal-api/internal/models"
)

type lookupRepo struct {
	db *database.DB
}

// NewLookupRepo creates a repository over the seeded lookup tables
func NewLookupRepo(db *database.DB) LookupRepository {
	return &lookupRepo{db: db}
}

// RoleExists checks the roles table for the given id
func (r *lookupRepo) RoleExists(ctx context.Context, role models.Role) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx, "SELECT EXISTS(SELECT 1 FROM roles WHERE id = $1)", int(role)).Scan(&exists)
	return exists, err
}

// CommentStatusExists checks the comment_statuses table for the given id
func (r *lookupRepo) CommentStatusExists(ctx context.Context, status models.CommentStatus) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx, "SELECT EXISTS(SELECT 1 FROM comment_statuses WHERE id = $1)", int(status)).Scan(&exists)
	return exists, err
}
