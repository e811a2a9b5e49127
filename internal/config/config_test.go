package config

import (
	"testing"
	"time"

	"github.com/blog-personal-api/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_DefaultsAndOverrides(t *testing.T) {
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("PORT", "9000")
	t.Setenv("CORS_ALLOWED_ORIGINS", "http://a.test,http://b.test")
	t.Setenv("COMMENT_DEFAULT_STATUS_ID", "2")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9000", cfg.Server.Port)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.Server.AllowedOrigins)
	assert.Equal(t, 24*time.Hour, cfg.Auth.TokenTTL)
	assert.Equal(t, models.RoleUser, cfg.DefaultRole())
	assert.Equal(t, models.CommentApproved, cfg.DefaultCommentStatus())
	assert.Equal(t, "./migrations", cfg.Database.MigrationsPath)
}

func TestLoad_RequiresSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")
	_, err := Load()
	assert.ErrorContains(t, err, "JWT_SECRET")
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		c := &Config{}
		c.Database.Host = "localhost"
		c.Database.Name = "blog"
		c.Auth.JWTSecret = "x"
		c.Auth.TokenTTL = time.Hour
		c.Auth.DefaultRoleID = int(models.RoleUser)
		c.Comments.DefaultStatusID = int(models.CommentPending)
		return c
	}

	require.NoError(t, valid().Validate())

	tests := []struct {
		name   string
		mutate func(*Config)
		want   string
	}{
		{"missing host", func(c *Config) { c.Database.Host = "" }, "DB_HOST"},
		{"missing name", func(c *Config) { c.Database.Name = "" }, "DB_NAME"},
		{"zero ttl", func(c *Config) { c.Auth.TokenTTL = 0 }, "JWT_TTL"},
		{"unknown role", func(c *Config) { c.Auth.DefaultRoleID = 9 }, "DEFAULT_ROLE_ID"},
		{"unknown comment status", func(c *Config) { c.Comments.DefaultStatusID = 0 }, "COMMENT_DEFAULT_STATUS_ID"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := valid()
			tt.mutate(c)
			assert.ErrorContains(t, c.Validate(), tt.want)
		})
	}
}

func TestGetDSN(t *testing.T) {
	c := DatabaseConfig{Host: "db", Port: "5432", User: "u", Password: "p", Name: "blog", SSLMode: "disable"}
	assert.Equal(t, "host=db port=5432 user=u password=p dbname=blog sslmode=disable", c.GetDSN())
}
