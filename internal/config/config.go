package config

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/blog-personal-api/internal/models"
	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

// Config holds all application configuration
type Config struct {
	// Server configuration
	Server ServerConfig

	// Database configuration
	Database DatabaseConfig

	// Authentication configuration
	Auth AuthConfig

	// Comment defaults
	Comments CommentsConfig

	// Logging configuration
	Log LogConfig
}

// ServerConfig holds HTTP server settings
type ServerConfig struct {
	Port            string        `env:"PORT" env-default:"5141"`
	ReadTimeout     time.Duration `env:"SERVER_READ_TIMEOUT" env-default:"15s"`
	WriteTimeout    time.Duration `env:"SERVER_WRITE_TIMEOUT" env-default:"30s"`
	ShutdownTimeout time.Duration `env:"SERVER_SHUTDOWN_TIMEOUT" env-default:"15s"`
	AllowedOrigins  []string      `env:"CORS_ALLOWED_ORIGINS" env-separator:"," env-default:"http://localhost:5173"`
}

// DatabaseConfig holds database connection settings
type DatabaseConfig struct {
	Host           string        `env:"DB_HOST" env-default:"localhost"`
	Port           string        `env:"DB_PORT" env-default:"5432"`
	User           string        `env:"DB_USER" env-default:"postgres"`
	Password       string        `env:"DB_PASSWORD" env-default:"postgres"`
	Name           string        `env:"DB_NAME" env-default:"blog_personal"`
	SSLMode        string        `env:"DB_SSLMODE" env-default:"disable"`
	MaxOpenConns   int           `env:"DB_MAX_OPEN_CONNS" env-default:"25"`
	MaxIdleConns   int           `env:"DB_MAX_IDLE_CONNS" env-default:"5"`
	MaxLifetime    time.Duration `env:"DB_MAX_LIFETIME" env-default:"5m"`
	MigrationsPath string        `env:"MIGRATIONS_PATH" env-default:"./migrations"`
}

// AuthConfig holds token and account settings
type AuthConfig struct {
	JWTSecret     string        `env:"JWT_SECRET"`
	Issuer        string        `env:"JWT_ISSUER" env-default:"blog-personal-api"`
	TokenTTL      time.Duration `env:"JWT_TTL" env-default:"24h"`
	BcryptCost    int           `env:"BCRYPT_COST" env-default:"10"`
	DefaultRoleID int           `env:"DEFAULT_ROLE_ID" env-default:"3"`
}

// CommentsConfig holds the moderation state assigned to new comments
type CommentsConfig struct {
	DefaultStatusID int `env:"COMMENT_DEFAULT_STATUS_ID" env-default:"1"`
}

// LogConfig holds logging settings
type LogConfig struct {
	Level  string `env:"LOG_LEVEL" env-default:"info"`
	Format string `env:"LOG_FORMAT" env-default:"json"` // "json" or "pretty"
}

// Load reads configuration from an optional .env file and the environment
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("godotenv.Load: %w", err)
	}

	cfg := &Config{}
	if err := cleanenv.ReadEnv(cfg); err != nil {
		return nil, fmt.Errorf("cleanenv.ReadEnv: %w", err)
	}

	// Validate required configuration
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Database.Host == "" {
		return fmt.Errorf("DB_HOST is required")
	}
	if c.Database.Name == "" {
		return fmt.Errorf("DB_NAME is required")
	}
	if c.Auth.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET is required")
	}
	if c.Auth.TokenTTL <= 0 {
		return fmt.Errorf("JWT_TTL must be positive")
	}
	if !c.DefaultRole().Valid() {
		return fmt.Errorf("DEFAULT_ROLE_ID %d is not a known role", c.Auth.DefaultRoleID)
	}
	if !c.DefaultCommentStatus().Valid() {
		return fmt.Errorf("COMMENT_DEFAULT_STATUS_ID %d is not a known comment status", c.Comments.DefaultStatusID)
	}
	return nil
}

// DefaultRole is the role given to newly registered users
func (c *Config) DefaultRole() models.Role {
	return models.Role(c.Auth.DefaultRoleID)
}

// DefaultCommentStatus is the moderation state given to new comments
func (c *Config) DefaultCommentStatus() models.CommentStatus {
	return models.CommentStatus(c.Comments.DefaultStatusID)
}

// GetDSN returns the PostgreSQL connection string
func (c *DatabaseConfig) GetDSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Name, c.SSLMode,
	)
}
