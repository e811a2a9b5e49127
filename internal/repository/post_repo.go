package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/blog-personal-api/internal/database"
	"github.com/blog-personal-api/internal/models"
	"github.com/lib/pq"
	"github.com/samber/lo"
)

const postColumns = `
	SELECT p.id, p.title, p.slug, p.body, p.summary, p.author_id, u.username,
		p.status_id, p.language_id, l.name, p.allow_comments, p.created_at,
		p.published_at, p.views,
		(SELECT COUNT(*) FROM comments c WHERE c.post_id = p.id)
	FROM posts p
	JOIN users u ON u.id = p.author_id
	JOIN languages l ON l.id = p.language_id
`

// postRepo is the concrete implementation of PostRepository
type postRepo struct {
	db *database.DB
}

// NewPostRepo creates a new post repository
func NewPostRepo(db *database.DB) PostRepository {
	return &postRepo{db: db}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanPost(row rowScanner) (*models.Post, error) {
	var post models.Post
	var summary sql.NullString
	var publishedAt sql.NullTime

	err := row.Scan(
		&post.ID, &post.Title, &post.Slug, &post.Body, &summary, &post.AuthorID, &post.AuthorName,
		&post.Status, &post.LanguageID, &post.LanguageName, &post.AllowComments, &post.CreatedAt,
		&publishedAt, &post.Views, &post.CommentCount,
	)
	if err != nil {
		return nil, err
	}

	post.Summary = stringPtr(summary)
	if publishedAt.Valid {
		post.PublishedAt = &publishedAt.Time
	}
	post.StatusName = post.Status.Name()
	post.Categories = []string{}
	post.Tags = []models.Tag{}
	return &post, nil
}

// List returns posts matching the filter, newest first
func (r *postRepo) List(ctx context.Context, filter models.PostFilter) ([]*models.Post, error) {
	if filter.Statuses != nil && len(filter.Statuses) == 0 {
		return []*models.Post{}, nil
	}

	var where []string
	var args []any

	if filter.Statuses != nil {
		args = append(args, pq.Array(statusIDs(filter.Statuses)))
		where = append(where, fmt.Sprintf("p.status_id = ANY($%d)", len(args)))
	}
	if term := strings.TrimSpace(filter.Search); term != "" {
		args = append(args, term)
		n := len(args)
		where = append(where, fmt.Sprintf(
			"(strpos(lower(p.title), lower($%d)) > 0 OR strpos(lower(p.body), lower($%d)) > 0 OR strpos(lower(COALESCE(p.summary, '')), lower($%d)) > 0)",
			n, n, n,
		))
	}

	query := postColumns
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY p.created_at DESC, p.id DESC"

	return r.queryPosts(ctx, query, args...)
}

// ListByAuthor returns the author's posts ordered by publication date,
// unpublished posts last
func (r *postRepo) ListByAuthor(ctx context.Context, authorID int64, status *models.PostStatus) ([]*models.Post, error) {
	query := postColumns + " WHERE p.author_id = $1"
	args := []any{authorID}
	if status != nil {
		query += " AND p.status_id = $2"
		args = append(args, int(*status))
	}
	query += " ORDER BY p.published_at DESC NULLS LAST, p.created_at DESC, p.id DESC"

	return r.queryPosts(ctx, query, args...)
}

// GetByID retrieves a post by ID
func (r *postRepo) GetByID(ctx context.Context, id int64) (*models.Post, error) {
	return r.getOne(ctx, postColumns+" WHERE p.id = $1", id)
}

// GetBySlug retrieves a post by slug
func (r *postRepo) GetBySlug(ctx context.Context, slug string) (*models.Post, error) {
	return r.getOne(ctx, postColumns+" WHERE p.slug = $1", slug)
}

// Exists checks if a post with the given ID exists
func (r *postRepo) Exists(ctx context.Context, id int64) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx, "SELECT EXISTS(SELECT 1 FROM posts WHERE id = $1)", id).Scan(&exists)
	return exists, err
}

// SlugExists checks if a post with the given slug exists
func (r *postRepo) SlugExists(ctx context.Context, slug string) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx, "SELECT EXISTS(SELECT 1 FROM posts WHERE slug = $1)", slug).Scan(&exists)
	return exists, err
}

// Create inserts a post and its category and tag links in one transaction
func (r *postRepo) Create(ctx context.Context, post *models.Post) error {
	query := `
		INSERT INTO posts (title, slug, body, summary, author_id, status_id, language_id,
			allow_comments, created_at, published_at, views)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, 0)
		RETURNING id
	`
	err := r.db.WithTx(ctx, func(tx *sql.Tx) error {
		err := tx.QueryRowContext(ctx, query,
			post.Title, post.Slug, post.Body, post.Summary, post.AuthorID, int(post.Status),
			post.LanguageID, post.AllowComments, post.CreatedAt, post.PublishedAt,
		).Scan(&post.ID)
		if err != nil {
			return err
		}
		return linkPost(ctx, tx, post)
	})
	return mapError(err)
}

// Update overwrites the editable fields of a post and replaces its links.
// The slug is never changed.
func (r *postRepo) Update(ctx context.Context, post *models.Post) (bool, error) {
	query := `
		UPDATE posts SET
			title = $1, body = $2, summary = $3, status_id = $4, language_id = $5,
			allow_comments = $6, published_at = $7
		WHERE id = $8
	`
	found := false
	err := r.db.WithTx(ctx, func(tx *sql.Tx) error {
		result, err := tx.ExecContext(ctx, query,
			post.Title, post.Body, post.Summary, int(post.Status), post.LanguageID,
			post.AllowComments, post.PublishedAt, post.ID,
		)
		if err != nil {
			return err
		}
		rows, err := result.RowsAffected()
		if err != nil {
			return err
		}
		if rows == 0 {
			return nil
		}
		found = true

		if _, err := tx.ExecContext(ctx, "DELETE FROM post_categories WHERE post_id = $1", post.ID); err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, "DELETE FROM post_tags WHERE post_id = $1", post.ID); err != nil {
			return err
		}
		return linkPost(ctx, tx, post)
	})
	if err != nil {
		return false, mapError(err)
	}
	return found, nil
}

// Delete removes a post; comments and links cascade
func (r *postRepo) Delete(ctx context.Context, id int64) (bool, error) {
	result, err := r.db.ExecContext(ctx, "DELETE FROM posts WHERE id = $1", id)
	if err != nil {
		return false, err
	}
	rows, err := result.RowsAffected()
	return rows > 0, err
}

// IncrementViews atomically bumps the view counter
func (r *postRepo) IncrementViews(ctx context.Context, id int64) (bool, error) {
	result, err := r.db.ExecContext(ctx, "UPDATE posts SET views = views + 1 WHERE id = $1", id)
	if err != nil {
		return false, err
	}
	rows, err := result.RowsAffected()
	return rows > 0, err
}

func (r *postRepo) getOne(ctx context.Context, query string, arg any) (*models.Post, error) {
	post, err := scanPost(r.db.QueryRowContext(ctx, query, arg))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	if err := r.loadRelations(ctx, []*models.Post{post}); err != nil {
		return nil, err
	}
	return post, nil
}

func (r *postRepo) queryPosts(ctx context.Context, query string, args ...any) ([]*models.Post, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	posts := []*models.Post{}
	for rows.Next() {
		post, err := scanPost(rows)
		if err != nil {
			return nil, err
		}
		posts = append(posts, post)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if err := r.loadRelations(ctx, posts); err != nil {
		return nil, err
	}
	return posts, nil
}

// loadRelations fills categories and tags for all posts with one query each
func (r *postRepo) loadRelations(ctx context.Context, posts []*models.Post) error {
	if len(posts) == 0 {
		return nil
	}
	byID := lo.KeyBy(posts, func(p *models.Post) int64 { return p.ID })
	ids := pq.Array(lo.Keys(byID))

	catRows, err := r.db.QueryContext(ctx, `
		SELECT pc.post_id, c.id, c.name
		FROM post_categories pc
		JOIN categories c ON c.id = pc.category_id
		WHERE pc.post_id = ANY($1)
		ORDER BY c.name, c.id
	`, ids)
	if err != nil {
		return err
	}
	defer catRows.Close()

	for catRows.Next() {
		var postID, categoryID int64
		var name string
		if err := catRows.Scan(&postID, &categoryID, &name); err != nil {
			return err
		}
		if post, ok := byID[postID]; ok {
			post.Categories = append(post.Categories, name)
			post.CategoryIDs = append(post.CategoryIDs, categoryID)
		}
	}
	if err := catRows.Err(); err != nil {
		return err
	}

	tagRows, err := r.db.QueryContext(ctx, `
		SELECT pt.post_id, t.id, t.name, t.slug
		FROM post_tags pt
		JOIN tags t ON t.id = pt.tag_id
		WHERE pt.post_id = ANY($1)
		ORDER BY t.name, t.id
	`, ids)
	if err != nil {
		return err
	}
	defer tagRows.Close()

	for tagRows.Next() {
		var postID int64
		var tag models.Tag
		if err := tagRows.Scan(&postID, &tag.ID, &tag.Name, &tag.Slug); err != nil {
			return err
		}
		if post, ok := byID[postID]; ok {
			post.Tags = append(post.Tags, tag)
			post.TagIDs = append(post.TagIDs, tag.ID)
		}
	}
	return tagRows.Err()
}

func linkPost(ctx context.Context, tx *sql.Tx, post *models.Post) error {
	if len(post.CategoryIDs) > 0 {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO post_categories (post_id, category_id)
			SELECT $1, unnest($2::bigint[])
			ON CONFLICT DO NOTHING
		`, post.ID, pq.Array(post.CategoryIDs))
		if err != nil {
			return err
		}
	}
	if len(post.TagIDs) > 0 {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO post_tags (post_id, tag_id)
			SELECT $1, unnest($2::bigint[])
			ON CONFLICT DO NOTHING
		`, post.ID, pq.Array(post.TagIDs))
		if err != nil {
			return err
		}
	}
	return nil
}

func statusIDs(statuses []models.PostStatus) []int64 {
	return lo.Map(statuses, func(s models.PostStatus, _ int) int64 { return int64(s) })
}
