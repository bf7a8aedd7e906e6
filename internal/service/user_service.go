package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/blog-comments-api/internal/config"
	"github.com/blog-comments-api/internal/models"
	"github.com/blog-comments-api/internal/repository"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"
)

// userService is the concrete implementation of UserService
type userService struct {
	users repository.UserRepository
	cfg   *config.Config
	log   zerolog.Logger
}

func newUserService(users repository.UserRepository, cfg *config.Config, log zerolog.Logger) UserService {
	return &userService{
		users: users,
		cfg:   cfg,
		log:   log.With().Str("service", "user").Logger(),
	}
}

// Register creates a regular user account
func (s *userService) Register(ctx context.Context, username, password string) (*models.User, error) {
	return s.create(ctx, username, password, models.RoleUser)
}

// CreateAdmin creates an account with the admin role
func (s *userService) CreateAdmin(ctx context.Context, username, password string) (*models.User, error) {
	return s.create(ctx, username, password, models.RoleAdmin)
}

func (s *userService) create(ctx context.Context, username, password, role string) (*models.User, error) {
	username = strings.TrimSpace(username)

	taken, err := s.users.UsernameExists(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("check username: %w", err)
	}
	if taken {
		return nil, ErrUsernameTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &models.User{
		ID:           uuid.New().String(),
		Username:     username,
		PasswordHash: string(hash),
		Role:         role,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}

	s.log.Info().Str("user_id", user.ID).Str("username", username).Str("role", role).Msg("User created")
	return user, nil
}

// Authenticate verifies credentials and returns the matching user.
// Unknown usernames and wrong passwords fail identically.
func (s *userService) Authenticate(ctx context.Context, username, password string) (*models.User, error) {
	user, err := s.users.GetByUsername(ctx, strings.TrimSpace(username))
	if err != nil {
		return nil, fmt.Errorf("fetch user: %w", err)
	}
	if user == nil {
		return nil, ErrInvalidCredentials
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}

// GetByID returns a user by id, or ErrNotFound
func (s *userService) GetByID(ctx context.Context, id string) (*models.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("fetch user: %w", err)
	}
	if user == nil {
		return nil, ErrNotFound
	}
	return user, nil
}

// List returns all users, newest first
func (s *userService) List(ctx context.Context) ([]*models.User, error) {
	return s.users.List(ctx)
}

// EnsureDefaultAdmin seeds the configured admin account on first start
func (s *userService) EnsureDefaultAdmin(ctx context.Context) error {
	exists, err := s.users.AdminExists(ctx)
	if err != nil {
		return fmt.Errorf("check admin: %w", err)
	}
	if exists {
		return nil
	}

	admin, err := s.CreateAdmin(ctx, s.cfg.Auth.DefaultAdminUsername, s.cfg.Auth.DefaultAdminPassword)
	if err != nil {
		return fmt.Errorf("seed default admin: %w", err)
	}
	s.log.Info().Str("username", admin.Username).Msg("Default admin created")
	return nil
}
