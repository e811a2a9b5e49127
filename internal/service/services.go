package service

import (
	"context"
	"fmt"
	"time"

	"github.com/blog-personal-api/internal/auth"
	"github.com/blog-personal-api/internal/config"
	"github.com/blog-personal-api/internal/models"
	"github.com/blog-personal-api/internal/repository"
	"github.com/rs/zerolog"
)

// PostService defines the interface for post operations
type PostService interface {
	List(ctx context.Context, p auth.Principal, search string) ([]*models.Post, error)
	MyPosts(ctx context.Context, p auth.Principal, status *models.PostStatus) ([]*models.Post, error)
	GetByID(ctx context.Context, p auth.Principal, id int64) (*models.Post, error)
	GetBySlug(ctx context.Context, p auth.Principal, slug string) (*models.Post, error)
	Create(ctx context.Context, p auth.Principal, in *models.PostInput) (*models.Post, error)
	Update(ctx context.Context, p auth.Principal, id int64, in *models.PostInput) (*models.Post, error)
	Delete(ctx context.Context, p auth.Principal, id int64) error
	IncrementViews(ctx context.Context, id int64) error
}

// CommentService defines the interface for comment operations
type CommentService interface {
	ListForPost(ctx context.Context, postID int64) ([]*models.CommentView, error)
	Create(ctx context.Context, p auth.Principal, in *models.CommentInput) (*models.CommentView, error)
}

// TagService defines the interface for tag management
type TagService interface {
	List(ctx context.Context) ([]*models.Tag, error)
	Get(ctx context.Context, id int64) (*models.Tag, error)
	Create(ctx context.Context, p auth.Principal, in *models.TagInput) (*models.Tag, error)
	Update(ctx context.Context, p auth.Principal, id int64, in *models.TagInput) (*models.Tag, error)
	Delete(ctx context.Context, p auth.Principal, id int64) error
}

// CategoryService defines the interface for category lookups
type CategoryService interface {
	List(ctx context.Context) ([]*models.Category, error)
}

// AuthService defines the interface for registration and login
type AuthService interface {
	Register(ctx context.Context, req *models.RegisterRequest) (*models.AuthResponse, error)
	Login(ctx context.Context, req *models.LoginRequest) (*models.AuthResponse, error)
	Authenticate(raw string) (auth.Principal, error)
}

// Services holds all service interfaces
type Services struct {
	Posts      PostService
	Comments   CommentService
	Tags       TagService
	Categories CategoryService
	Auth       AuthService
}

// NewServices creates all services
func NewServices(repos *repository.Repositories, cfg *config.Config, tokens *auth.TokenIssuer, log zerolog.Logger) *Services {
	audit := newAuditor(repos.Audit, log)

	return &Services{
		Posts:      newPostService(repos.Post, audit, log),
		Comments:   newCommentService(repos, cfg.DefaultCommentStatus(), log),
		Tags:       newTagService(repos.Tag, audit, log),
		Categories: newCategoryService(repos.Category),
		Auth:       newAuthService(repos.User, tokens, cfg.DefaultRole(), cfg.Auth.BcryptCost, log),
	}
}

// VerifyReferenceData checks that the configured default role and comment
// status exist in the database. The server must not start without them.
func VerifyReferenceData(ctx context.Context, lookup repository.LookupRepository, cfg *config.Config) error {
	ok, err := lookup.RoleExists(ctx, cfg.DefaultRole())
	if err != nil {
		return fmt.Errorf("look up default role: %w", err)
	}
	if !ok {
		return fmt.Errorf("%w: role id %d", ErrDefaultRoleNotFound, cfg.Auth.DefaultRoleID)
	}

	ok, err = lookup.CommentStatusExists(ctx, cfg.DefaultCommentStatus())
	if err != nil {
		return fmt.Errorf("look up default comment status: %w", err)
	}
	if !ok {
		return fmt.Errorf("default comment status id %d not found", cfg.Comments.DefaultStatusID)
	}
	return nil
}

// auditor writes audit entries without ever failing the caller
type auditor struct {
	repo repository.AuditRepository
	log  zerolog.Logger
}

func newAuditor(repo repository.AuditRepository, log zerolog.Logger) *auditor {
	return &auditor{repo: repo, log: log.With().Str("component", "audit").Logger()}
}

func (a *auditor) record(ctx context.Context, p auth.Principal, entity string, id int64, action models.AuditAction, detail string) {
	entry := &models.AuditEntry{
		Entity:    entity,
		EntityID:  id,
		Action:    action,
		Detail:    detail,
		Timestamp: time.Now().UTC(),
	}
	if p.Authenticated {
		userID := p.UserID
		entry.UserID = &userID
	}

	if err := a.repo.Record(ctx, entry); err != nil {
		a.log.Warn().Err(err).
			Str("entity", entity).
			Int64("entity_id", id).
			Str("action", string(action)).
			Msg("Failed to write audit entry")
	}
}
