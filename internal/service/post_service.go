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
	"github.com/blog-personal-api/internal/slug"
	"github.com/blog-personal-api/internal/validation"
	"github.com/blog-personal-api/internal/visibility"
	"github.com/rs/zerolog"
	"github.com/samber/lo"
)

// maxSlugAttempts bounds the number of slug candidates tried for one post
const maxSlugAttempts = 5

const auditEntityPost = "post"

// postService is the concrete implementation of PostService
type postService struct {
	posts repository.PostRepository
	audit *auditor
	log   zerolog.Logger
	now   func() time.Time
}

func newPostService(posts repository.PostRepository, audit *auditor, log zerolog.Logger) *postService {
	return &postService{
		posts: posts,
		audit: audit,
		log:   log.With().Str("service", "post").Logger(),
		now:   func() time.Time { return time.Now().UTC() },
	}
}

// List returns the posts visible to p, newest first, optionally narrowed by
// a case-insensitive search over title, body and summary
func (s *postService) List(ctx context.Context, p auth.Principal, search string) ([]*models.Post, error) {
	return s.posts.List(ctx, models.PostFilter{
		Statuses: visibility.VisibleStatuses(p),
		Search:   strings.TrimSpace(search),
	})
}

// MyPosts returns every post authored by p regardless of visibility
func (s *postService) MyPosts(ctx context.Context, p auth.Principal, status *models.PostStatus) ([]*models.Post, error) {
	if !p.Authenticated {
		return nil, ErrForbidden
	}
	if status != nil && !status.Valid() {
		return nil, badArgument("estadoId", "unknown post status")
	}
	return s.posts.ListByAuthor(ctx, p.UserID, status)
}

func (s *postService) GetByID(ctx context.Context, p auth.Principal, id int64) (*models.Post, error) {
	post, err := s.posts.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return resolve(post, p)
}

func (s *postService) GetBySlug(ctx context.Context, p auth.Principal, postSlug string) (*models.Post, error) {
	post, err := s.posts.GetBySlug(ctx, postSlug)
	if err != nil {
		return nil, err
	}
	return resolve(post, p)
}

func resolve(post *models.Post, p auth.Principal) (*models.Post, error) {
	switch visibility.Resolve(post, p) {
	case visibility.NotFound:
		return nil, ErrNotFound
	case visibility.Forbidden:
		return nil, ErrForbidden
	}
	return post, nil
}

// Create stores a new post owned by p under a unique slug derived from its title
func (s *postService) Create(ctx context.Context, p auth.Principal, in *models.PostInput) (*models.Post, error) {
	if !p.IsAuthor() {
		return nil, ErrForbidden
	}
	if err := invalid(validation.ValidatePost(in)); err != nil {
		return nil, err
	}

	status := in.Status
	if status == 0 {
		status = models.PostDraft
	}
	now := s.now()

	post := &models.Post{
		Title:         strings.TrimSpace(in.Title),
		Body:          in.Body,
		Summary:       in.Summary,
		AuthorID:      p.UserID,
		Status:        status,
		LanguageID:    in.LanguageID,
		AllowComments: in.CommentsAllowed(),
		CreatedAt:     now,
		PublishedAt:   publicationDate(status, in.PublishedAt, nil, now),
		CategoryIDs:   lo.Uniq(in.CategoryIDs),
		TagIDs:        lo.Uniq(in.TagIDs),
	}

	if err := s.insertWithUniqueSlug(ctx, post); err != nil {
		return nil, err
	}

	s.log.Info().
		Int64("post_id", post.ID).
		Str("slug", post.Slug).
		Int64("author_id", post.AuthorID).
		Str("status", status.Name()).
		Msg("Post created")
	s.audit.record(ctx, p, auditEntityPost, post.ID, models.AuditCreate, post.Slug)

	return s.reload(ctx, post.ID)
}

// insertWithUniqueSlug tries the bare slug first, then suffixed variants.
// A unique violation on insert means another writer took the candidate.
func (s *postService) insertWithUniqueSlug(ctx context.Context, post *models.Post) error {
	base := slug.Make(post.Title)

	for attempt := 0; attempt < maxSlugAttempts; attempt++ {
		candidate := base
		if attempt > 0 || base == "" {
			candidate = slug.WithSuffix(base)
		}

		taken, err := s.posts.SlugExists(ctx, candidate)
		if err != nil {
			return fmt.Errorf("check slug %q: %w", candidate, err)
		}
		if taken {
			continue
		}

		post.Slug = candidate
		err = s.posts.Create(ctx, post)
		switch {
		case err == nil:
			return nil
		case errors.Is(err, repository.ErrDuplicate):
			s.log.Debug().Str("slug", candidate).Msg("Slug taken concurrently, retrying")
			continue
		case errors.Is(err, repository.ErrInvalidReference):
			return badArgument("idiomaId", "referenced language, category or tag does not exist")
		default:
			return fmt.Errorf("create post: %w", err)
		}
	}

	return fmt.Errorf("no unique slug for %q after %d attempts", base, maxSlugAttempts)
}

// Update overwrites a post owned by p, or any post when p is an admin.
// The slug never changes.
func (s *postService) Update(ctx context.Context, p auth.Principal, id int64, in *models.PostInput) (*models.Post, error) {
	existing, err := s.editable(ctx, p, id)
	if err != nil {
		return nil, err
	}
	if err := invalid(validation.ValidatePost(in)); err != nil {
		return nil, err
	}

	status := in.Status
	if status == 0 {
		status = existing.Status
	}

	post := &models.Post{
		ID:            existing.ID,
		Title:         strings.TrimSpace(in.Title),
		Slug:          existing.Slug,
		Body:          in.Body,
		Summary:       in.Summary,
		AuthorID:      existing.AuthorID,
		Status:        status,
		LanguageID:    in.LanguageID,
		AllowComments: in.CommentsAllowed(),
		CreatedAt:     existing.CreatedAt,
		PublishedAt:   publicationDate(status, in.PublishedAt, existing.PublishedAt, s.now()),
		CategoryIDs:   lo.Uniq(in.CategoryIDs),
		TagIDs:        lo.Uniq(in.TagIDs),
	}

	found, err := s.posts.Update(ctx, post)
	if errors.Is(err, repository.ErrInvalidReference) {
		return nil, badArgument("idiomaId", "referenced language, category or tag does not exist")
	}
	if err != nil {
		return nil, fmt.Errorf("update post %d: %w", id, err)
	}
	if !found {
		return nil, ErrNotFound
	}

	s.log.Info().Int64("post_id", id).Str("status", status.Name()).Msg("Post updated")
	s.audit.record(ctx, p, auditEntityPost, id, models.AuditUpdate, "")

	return s.reload(ctx, id)
}

// Delete removes a post owned by p, or any post when p is an admin
func (s *postService) Delete(ctx context.Context, p auth.Principal, id int64) error {
	existing, err := s.editable(ctx, p, id)
	if err != nil {
		return err
	}

	found, err := s.posts.Delete(ctx, id)
	if err != nil {
		return fmt.Errorf("delete post %d: %w", id, err)
	}
	if !found {
		return ErrNotFound
	}

	s.log.Info().Int64("post_id", id).Msg("Post deleted")
	s.audit.record(ctx, p, auditEntityPost, id, models.AuditDelete, existing.Slug)
	return nil
}

// IncrementViews bumps the view counter of a post
func (s *postService) IncrementViews(ctx context.Context, id int64) error {
	found, err := s.posts.IncrementViews(ctx, id)
	if err != nil {
		return fmt.Errorf("increment views of post %d: %w", id, err)
	}
	if !found {
		return ErrNotFound
	}
	return nil
}

// editable loads a post and checks that p may change it
func (s *postService) editable(ctx context.Context, p auth.Principal, id int64) (*models.Post, error) {
	if !p.IsAuthor() {
		return nil, ErrForbidden
	}
	existing, err := s.posts.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, ErrNotFound
	}
	if !p.Owns(existing.AuthorID) && !p.IsAdmin() {
		s.log.Warn().
			Int64("post_id", id).
			Int64("user_id", p.UserID).
			Msg("Rejected change to post owned by another author")
		return nil, ErrForbidden
	}
	return existing, nil
}

func (s *postService) reload(ctx context.Context, id int64) (*models.Post, error) {
	post, err := s.posts.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, ErrNotFound
	}
	return post, nil
}

// publicationDate picks the publication timestamp: the requested one, else
// the current one, else now for a post that is being published
func publicationDate(status models.PostStatus, requested, current *time.Time, now time.Time) *time.Time {
	if requested != nil {
		return requested
	}
	if current != nil {
		return current
	}
	if status == models.PostPublished {
		return &now
	}
	return nil
}
