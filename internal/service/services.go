package service

import (
	"context"

	"github.com/blog-comments-api/internal/config"
	"github.com/blog-comments-api/internal/models"
	"github.com/blog-comments-api/internal/repository"
	"github.com/rs/zerolog"
)

// CommentService defines the comment-facing engine operations
type CommentService interface {
	// List returns the reply forest for a post. viewerID may be empty,
	// in which case no comment is marked liked.
	List(ctx context.Context, postID string, includeDeleted bool, viewerID string) ([]*models.CommentNode, error)
	// Post stores a new comment and returns its materialized view
	Post(ctx context.Context, postID, authorID, body string, parentID *string) (*models.CommentNode, error)
	// ToggleLike flips the viewer's like on a comment and returns the
	// new state together with the recomputed total
	ToggleLike(ctx context.Context, commentID, userID string) (*models.LikeResult, error)
}

// ModerationService defines administrative operations
type ModerationService interface {
	// SoftDelete marks a comment deleted; the row is kept
	SoftDelete(ctx context.Context, commentID string) error
	// Feed returns the reply forest across all posts for review
	Feed(ctx context.Context, includeDeleted bool) ([]*models.CommentNode, error)
}

// UserService defines user lifecycle operations
type UserService interface {
	Register(ctx context.Context, username, password string) (*models.User, error)
	Authenticate(ctx context.Context, username, password string) (*models.User, error)
	GetByID(ctx context.Context, id string) (*models.User, error)
	CreateAdmin(ctx context.Context, username, password string) (*models.User, error)
	List(ctx context.Context) ([]*models.User, error)
	// EnsureDefaultAdmin seeds the configured admin account when no
	// admin exists yet
	EnsureDefaultAdmin(ctx context.Context) error
}

// Services holds all service interfaces
type Services struct {
	Comment    CommentService
	Moderation ModerationService
	User       UserService
}

// NewServices creates all services
func NewServices(repos *repository.Repositories, cfg *config.Config, log zerolog.Logger) *Services {
	return &Services{
		Comment:    newCommentService(repos, log),
		Moderation: newModerationService(repos, log),
		User:       newUserService(repos.User, cfg, log),
	}
}
