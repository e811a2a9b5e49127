package repository

import (
	"context"

	"github.com/blog-personal-api/internal/database"
	"github.com/blog-personal-api/internal/models"
)

// PostRepository defines the interface for post data operations
type PostRepository interface {
	List(ctx context.Context, filter models.PostFilter) ([]*models.Post, error)
	ListByAuthor(ctx context.Context, authorID int64, status *models.PostStatus) ([]*models.Post, error)
	GetByID(ctx context.Context, id int64) (*models.Post, error)
	GetBySlug(ctx context.Context, slug string) (*models.Post, error)
	Exists(ctx context.Context, id int64) (bool, error)
	SlugExists(ctx context.Context, slug string) (bool, error)
	Create(ctx context.Context, post *models.Post) error
	Update(ctx context.Context, post *models.Post) (bool, error)
	Delete(ctx context.Context, id int64) (bool, error)
	IncrementViews(ctx context.Context, id int64) (bool, error)
}

// CommentRepository defines the interface for comment data operations
type CommentRepository interface {
	ListByPost(ctx context.Context, postID int64) ([]*models.CommentView, error)
	GetByID(ctx context.Context, id int64) (*models.Comment, error)
	Create(ctx context.Context, comment *models.Comment) error
}

// UserRepository defines the interface for user data operations
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id int64) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	EmailExists(ctx context.Context, email string) (bool, error)
	UsernameExists(ctx context.Context, username string) (bool, error)
}

// TagRepository defines the interface for tag data operations
type TagRepository interface {
	List(ctx context.Context) ([]*models.Tag, error)
	GetByID(ctx context.Context, id int64) (*models.Tag, error)
	Create(ctx context.Context, tag *models.Tag) error
	Update(ctx context.Context, tag *models.Tag) (bool, error)
	Delete(ctx context.Context, id int64) (bool, error)
}

// CategoryRepository defines the interface for category lookups
type CategoryRepository interface {
	List(ctx context.Context) ([]*models.Category, error)
}

// AuditRepository records changes to posts and tags
type AuditRepository interface {
	Record(ctx context.Context, entry *models.AuditEntry) error
	ListByEntity(ctx context.Context, entity string, entityID int64, limit int) ([]*models.AuditEntry, error)
}

// LookupRepository checks seeded reference rows
type LookupRepository interface {
	RoleExists(ctx context.Context, role models.Role) (bool, error)
	CommentStatusExists(ctx context.Context, status models.CommentStatus) (bool, error)
}

// Repositories holds all repository interfaces
type Repositories struct {
	Post     PostRepository
	Comment  CommentRepository
	User     UserRepository
	Tag      TagRepository
	Category CategoryRepository
	Audit    AuditRepository
	Lookup   LookupRepository
}

// New creates all repositories with the given database connection
func New(db *database.DB) *Repositories {
	return &Repositories{
		Post:     NewPostRepo(db),
		Comment:  NewCommentRepo(db),
		User:     NewUserRepo(db),
		Tag:      NewTagRepo(db),
		Category: NewCategoryRepo(db),
		Audit:    NewAuditRepo(db),
		Lookup:   NewLookupRepo(db),
	}
}
