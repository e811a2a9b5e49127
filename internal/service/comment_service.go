package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/blog-personal-api/internal/auth"
	"github.com/blog-personal-api/internal/models"
	"github.com/blog-personal-api/internal/repository"
	"github.com/blog-personal-api/internal/threads"
	"github.com/blog-personal-api/internal/validation"
	"github.com/blog-personal-api/internal/visibility"
	"github.com/rs/zerolog"
)

// commentService is the concrete implementation of CommentService
type commentService struct {
	comments      repository.CommentRepository
	posts         repository.PostRepository
	users         repository.UserRepository
	defaultStatus models.CommentStatus
	log           zerolog.Logger
	now           func() time.Time
}

func newCommentService(repos *repository.Repositories, defaultStatus models.CommentStatus, log zerolog.Logger) *commentService {
	return &commentService{
		comments:      repos.Comment,
		posts:         repos.Post,
		users:         repos.User,
		defaultStatus: defaultStatus,
		log:           log.With().Str("service", "comment").Logger(),
		now:           func() time.Time { return time.Now().UTC() },
	}
}

// ListForPost returns the comments of a post as a forest of reply threads
func (s *commentService) ListForPost(ctx context.Context, postID int64) ([]*models.CommentView, error) {
	flat, err := s.comments.ListByPost(ctx, postID)
	if err != nil {
		return nil, fmt.Errorf("list comments of post %d: %w", postID, err)
	}

	tree, err := threads.Build(flat)
	if err != nil {
		return nil, fmt.Errorf("build comment tree of post %d: %w", postID, err)
	}
	return tree, nil
}

// Create adds a comment by p in the configured default moderation state
func (s *commentService) Create(ctx context.Context, p auth.Principal, in *models.CommentInput) (*models.CommentView, error) {
	if !p.Authenticated {
		return nil, ErrForbidden
	}
	if err := invalid(validation.ValidateComment(in)); err != nil {
		return nil, err
	}

	post, err := s.posts.GetByID(ctx, in.PostID)
	if err != nil {
		return nil, err
	}
	switch visibility.Resolve(post, p) {
	case visibility.NotFound:
		return nil, ErrNotFound
	case visibility.Forbidden:
		return nil, ErrForbidden
	}
	if !post.AllowComments {
		return nil, ErrCommentsDisabled
	}

	if in.ParentID != nil {
		parent, err := s.comments.GetByID(ctx, *in.ParentID)
		if err != nil {
			return nil, err
		}
		if parent == nil {
			return nil, badArgument("comentarioPadreId", "parent comment does not exist")
		}
		if parent.PostID != in.PostID {
			return nil, badArgument("comentarioPadreId", "parent comment belongs to another post")
		}
	}

	comment := &models.Comment{
		PostID:    in.PostID,
		AuthorID:  p.UserID,
		Body:      strings.TrimSpace(in.Body),
		Status:    s.defaultStatus,
		ParentID:  in.ParentID,
		CreatedAt: s.now(),
	}
	if err := s.comments.Create(ctx, comment); err != nil {
		if errors.Is(err, repository.ErrInvalidReference) {
			// post or parent removed since the checks above
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("create comment: %w", err)
	}

	s.log.Info().
		Int64("comment_id", comment.ID).
		Int64("post_id", comment.PostID).
		Int64("author_id", comment.AuthorID).
		Str("status", comment.Status.Name()).
		Msg("Comment created")

	view := &models.CommentView{
		ID:        comment.ID,
		PostID:    comment.PostID,
		AuthorID:  comment.AuthorID,
		Body:      comment.Body,
		Status:    comment.Status,
		CreatedAt: comment.CreatedAt,
		ParentID:  comment.ParentID,
		Replies:   []*models.CommentView{},
	}
	if author, err := s.users.GetByID(ctx, p.UserID); err == nil && author != nil {
		view.AuthorName = author.Username
	}
	return view, nil
}
