package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/blog-personal-api/internal/auth"
	"github.com/blog-personal-api/internal/config"
	"github.com/blog-personal-api/internal/mocks"
	"github.com/blog-personal-api/internal/models"
	"github.com/blog-personal-api/internal/service"
	"github.com/rs/zerolog"
)

var (
	anonymous   = auth.Anonymous
	reader      = auth.User(10, models.RoleUser)
	visitor     = auth.User(11, models.RoleVisitor)
	author      = auth.User(20, models.RoleAuthor)
	rivalAuthor = auth.User(21, models.RoleAuthor)
	admin       = auth.User(30, models.RoleAdmin)

	baseTime = time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
)

func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.Auth.JWTSecret = "test-secret"
	cfg.Auth.Issuer = "blog-test"
	cfg.Auth.TokenTTL = time.Hour
	cfg.Auth.BcryptCost = 4
	cfg.Auth.DefaultRoleID = int(models.RoleUser)
	cfg.Comments.DefaultStatusID = int(models.CommentPending)
	return cfg
}

func testTokens(cfg *config.Config) *auth.TokenIssuer {
	return auth.NewTokenIssuer(cfg.Auth.JWTSecret, cfg.Auth.Issuer, cfg.Auth.TokenTTL)
}

func newTestServices(t *testing.T) (*service.Services, *mocks.MockRepositories) {
	t.Helper()
	return newTestServicesWithConfig(t, testConfig())
}

func newTestServicesWithConfig(t *testing.T, cfg *config.Config) (*service.Services, *mocks.MockRepositories) {
	t.Helper()
	store := mocks.NewMockRepositories()
	for _, p := range []auth.Principal{reader, visitor, author, rivalAuthor, admin} {
		store.Users.Create(context.Background(), &models.User{
			ID:       p.UserID,
			Email:    usernameOf(p) + "@example.com",
			Username: usernameOf(p),
			Role:     p.Role,
			Active:   true,
		})
	}
	svcs := service.NewServices(store.Repositories(), cfg, testTokens(cfg), zerolog.Nop())
	return svcs, store
}

func usernameOf(p auth.Principal) string {
	switch p.UserID {
	case reader.UserID:
		return "lector"
	case visitor.UserID:
		return "visitante"
	case author.UserID:
		return "autora"
	case rivalAuthor.UserID:
		return "otro"
	case admin.UserID:
		return "admin"
	}
	return "desconocido"
}

// seedPost stores a post with the given status owned by author, created
// offset minutes after baseTime
func seedPost(store *mocks.MockRepositories, slug string, status models.PostStatus, offset int) *models.Post {
	return store.Posts.Seed(&models.Post{
		Title:         slug,
		Slug:          slug,
		Body:          "contenido de " + slug,
		AuthorID:      author.UserID,
		Status:        status,
		LanguageID:    1,
		AllowComments: true,
		CreatedAt:     baseTime.Add(time.Duration(offset) * time.Minute),
	})
}

func slugsOf(posts []*models.Post) []string {
	out := make([]string, 0, len(posts))
	for _, p := range posts {
		out = append(out, p.Slug)
	}
	return out
}

func int64Ptr(v int64) *int64 { return &v }
