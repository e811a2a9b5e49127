package repository

import (
	"context"
	"database/sql"

	"github.com/blog-personal-api/internal/database"
	"github.com/blog-personal-api/internal/models"
)

// commentRepo is the concrete implementation of CommentRepository
type commentRepo struct {
	db *database.DB
}

// NewCommentRepo creates a new comment repository
func NewCommentRepo(db *database.DB) CommentRepository {
	return &commentRepo{db: db}
}

// ListByPost returns every comment of a post in creation order, flat
func (r *commentRepo) ListByPost(ctx context.Context, postID int64) ([]*models.CommentView, error) {
	query := `
		SELECT c.id, c.post_id, c.author_id, u.username, c.body, c.status_id, c.created_at, c.parent_id
		FROM comments c
		JOIN users u ON u.id = c.author_id
		WHERE c.post_id = $1
		ORDER BY c.created_at, c.id
	`
	rows, err := r.db.QueryContext(ctx, query, postID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	comments := []*models.CommentView{}
	for rows.Next() {
		var c models.CommentView
		var parentID sql.NullInt64
		err := rows.Scan(
			&c.ID, &c.PostID, &c.AuthorID, &c.AuthorName, &c.Body, &c.Status,
			&c.CreatedAt, &parentID,
		)
		if err != nil {
			return nil, err
		}
		if parentID.Valid {
			c.ParentID = &parentID.Int64
		}
		comments = append(comments, &c)
	}

	return comments, rows.Err()
}

// GetByID retrieves a comment by ID
func (r *commentRepo) GetByID(ctx context.Context, id int64) (*models.Comment, error) {
	query := `SELECT id, post_id, author_id, body, status_id, parent_id, created_at FROM comments WHERE id = $1`

	var comment models.Comment
	var parentID sql.NullInt64
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&comment.ID, &comment.PostID, &comment.AuthorID, &comment.Body, &comment.Status,
		&parentID, &comment.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	if parentID.Valid {
		comment.ParentID = &parentID.Int64
	}
	return &comment, nil
}

// Create inserts a new comment and sets its generated ID
func (r *commentRepo) Create(ctx context.Context, comment *models.Comment) error {
	query := `
		INSERT INTO comments (post_id, author_id, body, status_id, parent_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`
	err := r.db.QueryRowContext(ctx, query,
		comment.PostID, comment.AuthorID, comment.Body, int(comment.Status),
		comment.ParentID, comment.CreatedAt,
	).Scan(&comment.ID)
	return mapError(err)
}
