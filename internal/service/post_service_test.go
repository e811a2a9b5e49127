package service_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/blog-personal-api/internal/auth"
	"github.com/blog-personal-api/internal/models"
	"github.com/blog-personal-api/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPostService_ListAppliesVisibility(t *testing.T) {
	svcs, store := newTestServices(t)
	ctx := context.Background()

	seedPost(store, "borrador", models.PostDraft, 0)
	seedPost(store, "publicado", models.PostPublished, 1)
	seedPost(store, "archivado", models.PostArchived, 2)
	seedPost(store, "privado", models.PostPrivate, 3)

	tests := []struct {
		name      string
		principal auth.Principal
		want      []string
	}{
		{"anonymous sees published only", anonymous, []string{"publicado"}},
		{"user sees published and private", reader, []string{"privado", "publicado"}},
		{"visitor role sees published and private", visitor, []string{"privado", "publicado"}},
		{"author sees everything", rivalAuthor, []string{"privado", "archivado", "publicado", "borrador"}},
		{"admin sees everything", admin, []string{"privado", "archivado", "publicado", "borrador"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			posts, err := svcs.Posts.List(ctx, tt.principal, "")
			require.NoError(t, err)
			assert.Equal(t, tt.want, slugsOf(posts))
		})
	}
}

func TestPostService_ListSearch(t *testing.T) {
	svcs, store := newTestServices(t)
	ctx := context.Background()

	summary := "Notas sobre CONCURRENCIA"
	seedPost(store, "uno", models.PostPublished, 0)
	p := seedPost(store, "dos", models.PostPublished, 1)
	p.Summary = &summary
	store.Posts.Seed(p)
	seedPost(store, "concurrencia-en-borrador", models.PostDraft, 2)

	posts, err := svcs.Posts.List(ctx, anonymous, "concurrencia")
	require.NoError(t, err)
	assert.Equal(t, []string{"dos"}, slugsOf(posts))

	posts, err = svcs.Posts.List(ctx, anonymous, "   ")
	require.NoError(t, err)
	assert.Len(t, posts, 2, "whitespace search must not filter")
}

func TestPostService_SingleLookupOutcomes(t *testing.T) {
	svcs, store := newTestServices(t)
	ctx := context.Background()

	draft := seedPost(store, "borrador", models.PostDraft, 0)
	published := seedPost(store, "publicado", models.PostPublished, 1)
	archived := seedPost(store, "archivado", models.PostArchived, 2)
	private := seedPost(store, "privado", models.PostPrivate, 3)

	tests := []struct {
		name      string
		post      *models.Post
		principal auth.Principal
		wantErr   error
	}{
		{"anonymous reads published", published, anonymous, nil},
		{"anonymous blocked from draft", draft, anonymous, service.ErrForbidden},
		{"anonymous blocked from private", private, anonymous, service.ErrForbidden},
		{"anonymous blocked from archived", archived, anonymous, service.ErrForbidden},
		{"user reads private", private, reader, nil},
		{"user blocked from draft", draft, reader, service.ErrForbidden},
		{"user blocked from archived", archived, reader, service.ErrForbidden},
		{"other author reads draft", draft, rivalAuthor, nil},
		{"admin reads archived", archived, admin, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			byID, err := svcs.Posts.GetByID(ctx, tt.principal, tt.post.ID)
			bySlug, slugErr := svcs.Posts.GetBySlug(ctx, tt.principal, tt.post.Slug)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.ErrorIs(t, slugErr, tt.wantErr)
				return
			}
			require.NoError(t, err)
			require.NoError(t, slugErr)
			assert.Equal(t, tt.post.ID, byID.ID)
			assert.Equal(t, tt.post.ID, bySlug.ID)
		})
	}

	_, err := svcs.Posts.GetByID(ctx, admin, 9999)
	assert.ErrorIs(t, err, service.ErrNotFound)
	_, err = svcs.Posts.GetBySlug(ctx, admin, "no-existe")
	assert.ErrorIs(t, err, service.ErrNotFound)
}

func TestPostService_CreateDefaults(t *testing.T) {
	svcs, store := newTestServices(t)
	ctx := context.Background()

	post, err := svcs.Posts.Create(ctx, author, &models.PostInput{
		Title:      "Introducción a .NET Core",
		Body:       "Contenido",
		LanguageID: 1,
	})
	require.NoError(t, err)

	assert.Equal(t, "introduccion-a-net-core", post.Slug)
	assert.Equal(t, models.PostDraft, post.Status)
	assert.Equal(t, "Borrador", post.StatusName)
	assert.Nil(t, post.PublishedAt)
	assert.True(t, post.AllowComments)
	assert.Equal(t, author.UserID, post.AuthorID)
	assert.Equal(t, "autora", post.AuthorName)
	assert.Zero(t, post.Views)

	require.Len(t, store.Audit.Entries, 1)
	assert.Equal(t, "post", store.Audit.Entries[0].Entity)
	assert.Equal(t, models.AuditCreate, store.Audit.Entries[0].Action)
	assert.Equal(t, author.UserID, *store.Audit.Entries[0].UserID)
}

func TestPostService_CreatePublishedGetsPublicationDate(t *testing.T) {
	svcs, _ := newTestServices(t)
	ctx := context.Background()
	disabled := false

	before := time.Now().UTC().Add(-time.Second)
	post, err := svcs.Posts.Create(ctx, author, &models.PostInput{
		Title:         "Publicado ya",
		Body:          "Contenido",
		LanguageID:    1,
		Status:        models.PostPublished,
		AllowComments: &disabled,
	})
	require.NoError(t, err)
	require.NotNil(t, post.PublishedAt)
	assert.True(t, post.PublishedAt.After(before))
	assert.False(t, post.AllowComments)

	scheduled := baseTime.Add(48 * time.Hour)
	post, err = svcs.Posts.Create(ctx, author, &models.PostInput{
		Title:       "Con fecha",
		Body:        "Contenido",
		LanguageID:  1,
		Status:      models.PostPublished,
		PublishedAt: &scheduled,
	})
	require.NoError(t, err)
	assert.True(t, scheduled.Equal(*post.PublishedAt))
}

func TestPostService_CreateSlugCollisionGetsSuffix(t *testing.T) {
	svcs, store := newTestServices(t)
	ctx := context.Background()
	seedPost(store, "hola-mundo", models.PostPublished, 0)

	post, err := svcs.Posts.Create(ctx, author, &models.PostInput{Title: "Hola Mundo", Body: "x", LanguageID: 1})
	require.NoError(t, err)

	assert.NotEqual(t, "hola-mundo", post.Slug)
	assert.True(t, strings.HasPrefix(post.Slug, "hola-mundo-"), post.Slug)
	assert.Len(t, post.Slug, len("hola-mundo-")+8)
}

func TestPostService_CreateSlugRaceRetries(t *testing.T) {
	svcs, store := newTestServices(t)
	ctx := context.Background()
	store.Posts.SlugConflicts = 1

	post, err := svcs.Posts.Create(ctx, author, &models.PostInput{Title: "Carrera", Body: "x", LanguageID: 1})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(post.Slug, "carrera-"), post.Slug)
	assert.Equal(t, 2, store.Posts.CreateCalls)
}

func TestPostService_CreateSlugAttemptsAreBounded(t *testing.T) {
	svcs, store := newTestServices(t)
	ctx := context.Background()
	store.Posts.SlugConflicts = 100

	_, err := svcs.Posts.Create(ctx, author, &models.PostInput{Title: "Carrera", Body: "x", LanguageID: 1})
	require.Error(t, err)
	assert.NotErrorIs(t, err, service.ErrBadArgument)
	assert.Equal(t, 5, store.Posts.CreateCalls)
	assert.Empty(t, store.Posts.Posts)
}

func TestPostService_CreateTitleWithoutSlugCharacters(t *testing.T) {
	svcs, _ := newTestServices(t)

	post, err := svcs.Posts.Create(context.Background(), author, &models.PostInput{Title: "¿¡!?", Body: "x", LanguageID: 1})
	require.NoError(t, err)
	assert.Len(t, post.Slug, 8)
}

func TestPostService_CreateRejections(t *testing.T) {
	svcs, store := newTestServices(t)
	ctx := context.Background()
	valid := &models.PostInput{Title: "Hola", Body: "x", LanguageID: 1}

	_, err := svcs.Posts.Create(ctx, reader, valid)
	assert.ErrorIs(t, err, service.ErrForbidden)

	_, err = svcs.Posts.Create(ctx, anonymous, valid)
	assert.ErrorIs(t, err, service.ErrForbidden)

	_, err = svcs.Posts.Create(ctx, author, &models.PostInput{Title: "Hola", Body: "x", LanguageID: 1, Status: 7})
	assert.ErrorIs(t, err, service.ErrBadArgument)
	var verr *service.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "estadoId", verr.Errors[0].Field)

	assert.Empty(t, store.Posts.Posts)
}

func TestPostService_UpdateOwnership(t *testing.T) {
	svcs, store := newTestServices(t)
	ctx := context.Background()
	post := seedPost(store, "original", models.PostPublished, 0)
	in := &models.PostInput{Title: "Nuevo título", Body: "nuevo", LanguageID: 1}

	_, err := svcs.Posts.Update(ctx, rivalAuthor, post.ID, in)
	assert.ErrorIs(t, err, service.ErrForbidden)
	unchanged, _ := store.Posts.GetByID(ctx, post.ID)
	assert.Equal(t, "original", unchanged.Title)

	_, err = svcs.Posts.Update(ctx, reader, post.ID, in)
	assert.ErrorIs(t, err, service.ErrForbidden)

	updated, err := svcs.Posts.Update(ctx, author, post.ID, in)
	require.NoError(t, err)
	assert.Equal(t, "Nuevo título", updated.Title)
	assert.Equal(t, "original", updated.Slug, "slug must survive title changes")
	assert.Equal(t, models.PostPublished, updated.Status, "status 0 keeps the current status")

	in.Status = models.PostArchived
	updated, err = svcs.Posts.Update(ctx, admin, post.ID, in)
	require.NoError(t, err)
	assert.Equal(t, models.PostArchived, updated.Status)

	_, err = svcs.Posts.Update(ctx, admin, 9999, in)
	assert.ErrorIs(t, err, service.ErrNotFound)
}

func TestPostService_UpdateKeepsPublicationDate(t *testing.T) {
	svcs, store := newTestServices(t)
	ctx := context.Background()
	published := baseTime.Add(time.Hour)
	post := seedPost(store, "p", models.PostPublished, 0)
	post.PublishedAt = &published
	store.Posts.Seed(post)

	updated, err := svcs.Posts.Update(ctx, author, post.ID, &models.PostInput{Title: "p", Body: "b", LanguageID: 1})
	require.NoError(t, err)
	require.NotNil(t, updated.PublishedAt)
	assert.True(t, published.Equal(*updated.PublishedAt))
}

func TestPostService_DeleteAsNonOwnerLeavesPostIntact(t *testing.T) {
	svcs, store := newTestServices(t)
	ctx := context.Background()
	post := seedPost(store, "mio", models.PostPublished, 0)

	err := svcs.Posts.Delete(ctx, rivalAuthor, post.ID)
	assert.ErrorIs(t, err, service.ErrForbidden)
	exists, _ := store.Posts.Exists(ctx, post.ID)
	assert.True(t, exists)

	require.NoError(t, svcs.Posts.Delete(ctx, admin, post.ID))
	exists, _ = store.Posts.Exists(ctx, post.ID)
	assert.False(t, exists)

	assert.ErrorIs(t, svcs.Posts.Delete(ctx, admin, post.ID), service.ErrNotFound)
}

func TestPostService_IncrementViews(t *testing.T) {
	svcs, store := newTestServices(t)
	ctx := context.Background()
	a := seedPost(store, "a", models.PostPublished, 0)
	b := seedPost(store, "b", models.PostDraft, 1)

	require.NoError(t, svcs.Posts.IncrementViews(ctx, a.ID))
	require.NoError(t, svcs.Posts.IncrementViews(ctx, a.ID))
	assert.ErrorIs(t, svcs.Posts.IncrementViews(ctx, 9999), service.ErrNotFound)

	gotA, _ := store.Posts.GetByID(ctx, a.ID)
	gotB, _ := store.Posts.GetByID(ctx, b.ID)
	assert.EqualValues(t, 2, gotA.Views)
	assert.EqualValues(t, 0, gotB.Views)
}

func TestPostService_MyPosts(t *testing.T) {
	svcs, store := newTestServices(t)
	ctx := context.Background()
	seedPost(store, "borrador", models.PostDraft, 0)
	seedPost(store, "publicado", models.PostPublished, 1)
	store.Posts.Seed(&models.Post{Slug: "ajeno", AuthorID: rivalAuthor.UserID, Status: models.PostDraft})

	posts, err := svcs.Posts.MyPosts(ctx, author, nil)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"borrador", "publicado"}, slugsOf(posts))

	draft := models.PostDraft
	posts, err = svcs.Posts.MyPosts(ctx, author, &draft)
	require.NoError(t, err)
	assert.Equal(t, []string{"borrador"}, slugsOf(posts))

	unknown := models.PostStatus(42)
	_, err = svcs.Posts.MyPosts(ctx, author, &unknown)
	assert.ErrorIs(t, err, service.ErrBadArgument)

	_, err = svcs.Posts.MyPosts(ctx, anonymous, nil)
	assert.ErrorIs(t, err, service.ErrForbidden)
}

func TestPostService_AuditFailureDoesNotFailRequest(t *testing.T) {
	svcs, store := newTestServices(t)
	store.Audit.RecordError = errors.New("audit table unavailable")

	post, err := svcs.Posts.Create(context.Background(), author, &models.PostInput{Title: "Igual", Body: "x", LanguageID: 1})
	require.NoError(t, err)
	assert.NotZero(t, post.ID)
	assert.Empty(t, store.Audit.Entries)
}
