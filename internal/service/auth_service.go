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
	"github.com/blog-personal-api/internal/validation"
	"github.com/rs/zerolog"
)

// authService is the concrete implementation of AuthService
type authService struct {
	users       repository.UserRepository
	tokens      *auth.TokenIssuer
	defaultRole models.Role
	bcryptCost  int
	log         zerolog.Logger
	now         func() time.Time
}

func newAuthService(users repository.UserRepository, tokens *auth.TokenIssuer, defaultRole models.Role, bcryptCost int, log zerolog.Logger) *authService {
	return &authService{
		users:       users,
		tokens:      tokens,
		defaultRole: defaultRole,
		bcryptCost:  bcryptCost,
		log:         log.With().Str("service", "auth").Logger(),
		now:         func() time.Time { return time.Now().UTC() },
	}
}

// Register creates an active account with the configured default role
func (s *authService) Register(ctx context.Context, req *models.RegisterRequest) (*models.AuthResponse, error) {
	if err := invalid(validation.ValidateRegister(req)); err != nil {
		return nil, err
	}
	email := normalizeEmail(req.Email)
	username := strings.TrimSpace(req.Username)

	taken, err := s.users.EmailExists(ctx, email)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, ErrEmailTaken
	}
	taken, err = s.users.UsernameExists(ctx, username)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, ErrUsernameTaken
	}

	hash, err := auth.HashPassword(req.Password, s.bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &models.User{
		Email:        email,
		Username:     username,
		PasswordHash: hash,
		Role:         s.defaultRole,
		Active:       true,
		CreatedAt:    s.now(),
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, registrationError(err)
	}

	s.log.Info().Int64("user_id", user.ID).Str("role", user.Role.Name()).Msg("User registered")
	return s.respond(user)
}

// registrationError resolves races with the uniqueness checks and a default
// role that vanished after startup
func registrationError(err error) error {
	switch {
	case errors.Is(err, repository.ErrDuplicate) && strings.Contains(err.Error(), "username"):
		return ErrUsernameTaken
	case errors.Is(err, repository.ErrDuplicate):
		return ErrEmailTaken
	case errors.Is(err, repository.ErrInvalidReference):
		return ErrDefaultRoleNotFound
	}
	return fmt.Errorf("create user: %w", err)
}

// Login checks credentials and issues a bearer token
func (s *authService) Login(ctx context.Context, req *models.LoginRequest) (*models.AuthResponse, error) {
	user, err := s.users.GetByEmail(ctx, normalizeEmail(req.Email))
	if err != nil {
		return nil, err
	}
	if user == nil || !auth.CheckPassword(user.PasswordHash, req.Password) {
		return nil, ErrInvalidCredentials
	}
	if !user.Active {
		s.log.Warn().Int64("user_id", user.ID).Msg("Login attempt on inactive account")
		return nil, ErrInvalidCredentials
	}

	return s.respond(user)
}

// Authenticate resolves a raw bearer token into a principal
func (s *authService) Authenticate(raw string) (auth.Principal, error) {
	return s.tokens.Parse(raw)
}

func (s *authService) respond(user *models.User) (*models.AuthResponse, error) {
	token, err := s.tokens.Issue(user)
	if err != nil {
		return nil, fmt.Errorf("issue token: %w", err)
	}
	return &models.AuthResponse{
		ID:       user.ID,
		Email:    user.Email,
		Username: user.Username,
		Token:    token,
		Role:     user.Role.Name(),
	}, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
