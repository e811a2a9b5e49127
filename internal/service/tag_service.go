package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/blog-personal-api/internal/auth"
	"github.com/blog-personal-api/internal/models"
	"github.com/blog-personal-api/internal/repository"
	"github.com/blog-personal-api/internal/slug"
	"github.com/blog-personal-api/internal/validation"
	"github.com/rs/zerolog"
)

const auditEntityTag = "tag"

// tagService is the concrete implementation of TagService
type tagService struct {
	tags  repository.TagRepository
	audit *auditor
	log   zerolog.Logger
}

func newTagService(tags repository.TagRepository, audit *auditor, log zerolog.Logger) *tagService {
	return &tagService{
		tags:  tags,
		audit: audit,
		log:   log.With().Str("service", "tag").Logger(),
	}
}

func (s *tagService) List(ctx context.Context) ([]*models.Tag, error) {
	return s.tags.List(ctx)
}

func (s *tagService) Get(ctx context.Context, id int64) (*models.Tag, error) {
	tag, err := s.tags.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if tag == nil {
		return nil, ErrNotFound
	}
	return tag, nil
}

func (s *tagService) Create(ctx context.Context, p auth.Principal, in *models.TagInput) (*models.Tag, error) {
	tag, err := s.prepare(p, in)
	if err != nil {
		return nil, err
	}

	if err := s.tags.Create(ctx, tag); err != nil {
		return nil, tagWriteError(err)
	}

	s.log.Info().Int64("tag_id", tag.ID).Str("slug", tag.Slug).Msg("Tag created")
	s.audit.record(ctx, p, auditEntityTag, tag.ID, models.AuditCreate, tag.Slug)
	return tag, nil
}

// Update renames a tag. A non-zero body id must match the path id.
func (s *tagService) Update(ctx context.Context, p auth.Principal, id int64, in *models.TagInput) (*models.Tag, error) {
	if in.ID != 0 && in.ID != id {
		return nil, badArgument("id", "id does not match the tag being updated")
	}
	tag, err := s.prepare(p, in)
	if err != nil {
		return nil, err
	}
	tag.ID = id

	found, err := s.tags.Update(ctx, tag)
	if err != nil {
		return nil, tagWriteError(err)
	}
	if !found {
		return nil, ErrNotFound
	}

	s.log.Info().Int64("tag_id", id).Str("slug", tag.Slug).Msg("Tag updated")
	s.audit.record(ctx, p, auditEntityTag, id, models.AuditUpdate, tag.Slug)
	return tag, nil
}

func (s *tagService) Delete(ctx context.Context, p auth.Principal, id int64) error {
	if !p.IsAuthor() {
		return ErrForbidden
	}

	found, err := s.tags.Delete(ctx, id)
	if err != nil {
		return fmt.Errorf("delete tag %d: %w", id, err)
	}
	if !found {
		return ErrNotFound
	}

	s.log.Info().Int64("tag_id", id).Msg("Tag deleted")
	s.audit.record(ctx, p, auditEntityTag, id, models.AuditDelete, "")
	return nil
}

func (s *tagService) prepare(p auth.Principal, in *models.TagInput) (*models.Tag, error) {
	if !p.IsAuthor() {
		return nil, ErrForbidden
	}
	if err := invalid(validation.ValidateTag(in)); err != nil {
		return nil, err
	}

	name := strings.TrimSpace(in.Name)
	tagSlug := slug.Make(name)
	if tagSlug == "" {
		return nil, badArgument("nombre", "nombre must contain at least one letter or digit")
	}
	return &models.Tag{Name: name, Slug: tagSlug}, nil
}

func tagWriteError(err error) error {
	if errors.Is(err, repository.ErrDuplicate) {
		return badArgument("nombre", "a tag with this name already exists")
	}
	return fmt.Errorf("write tag: %w", err)
}

// categoryService is the concrete implementation of CategoryService
type categoryService struct {
	categories repository.CategoryRepository
}

func newCategoryService(categories repository.CategoryRepository) *categoryService {
	return &categoryService{categories: categories}
}

func (s *categoryService) List(ctx context.Context) ([]*models.Category, error) {
	return s.categories.List(ctx)
}
