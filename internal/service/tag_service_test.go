package service_test

import (
	"context"
	"testing"

	"github.com/blog-personal-api/internal/models"
	"github.com/blog-personal-api/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTagService_CRUD(t *testing.T) {
	svcs, store := newTestServices(t)
	ctx := context.Background()

	tag, err := svcs.Tags.Create(ctx, author, &models.TagInput{Name: "  Programación Go "})
	require.NoError(t, err)
	assert.Equal(t, "Programación Go", tag.Name)
	assert.Equal(t, "programacion-go", tag.Slug)

	got, err := svcs.Tags.Get(ctx, tag.ID)
	require.NoError(t, err)
	assert.Equal(t, tag.Slug, got.Slug)

	updated, err := svcs.Tags.Update(ctx, admin, tag.ID, &models.TagInput{ID: tag.ID, Name: "Golang"})
	require.NoError(t, err)
	assert.Equal(t, "golang", updated.Slug)

	tags, err := svcs.Tags.List(ctx)
	require.NoError(t, err)
	require.Len(t, tags, 1)
	assert.Equal(t, "Golang", tags[0].Name)

	require.NoError(t, svcs.Tags.Delete(ctx, author, tag.ID))
	_, err = svcs.Tags.Get(ctx, tag.ID)
	assert.ErrorIs(t, err, service.ErrNotFound)

	actions := []models.AuditAction{}
	for _, e := range store.Audit.Entries {
		assert.Equal(t, "tag", e.Entity)
		actions = append(actions, e.Action)
	}
	assert.Equal(t, []models.AuditAction{models.AuditCreate, models.AuditUpdate, models.AuditDelete}, actions)
}

func TestTagService_Rejections(t *testing.T) {
	svcs, _ := newTestServices(t)
	ctx := context.Background()

	existing, err := svcs.Tags.Create(ctx, author, &models.TagInput{Name: "Go"})
	require.NoError(t, err)

	_, err = svcs.Tags.Create(ctx, author, &models.TagInput{Name: "GO"})
	assert.ErrorIs(t, err, service.ErrBadArgument, "same slug as an existing tag")

	_, err = svcs.Tags.Create(ctx, author, &models.TagInput{Name: "!!!"})
	assert.ErrorIs(t, err, service.ErrBadArgument)

	_, err = svcs.Tags.Create(ctx, reader, &models.TagInput{Name: "Rust"})
	assert.ErrorIs(t, err, service.ErrForbidden)

	_, err = svcs.Tags.Update(ctx, author, existing.ID, &models.TagInput{ID: existing.ID + 1, Name: "Otro"})
	assert.ErrorIs(t, err, service.ErrBadArgument)

	_, err = svcs.Tags.Update(ctx, author, 9999, &models.TagInput{Name: "Otro"})
	assert.ErrorIs(t, err, service.ErrNotFound)

	assert.ErrorIs(t, svcs.Tags.Delete(ctx, anonymous, existing.ID), service.ErrForbidden)
	assert.ErrorIs(t, svcs.Tags.Delete(ctx, author, 9999), service.ErrNotFound)
}

func TestCategoryService_List(t *testing.T) {
	svcs, store := newTestServices(t)
	store.Categories.Categories[2] = &models.Category{ID: 2, Name: "Programación", Slug: "programacion"}
	store.Categories.Categories[1] = &models.Category{ID: 1, Name: "Personal", Slug: "personal"}

	categories, err := svcs.Categories.List(context.Background())
	require.NoError(t, err)
	require.Len(t, categories, 2)
	assert.Equal(t, "Personal", categories[0].Name)
}
