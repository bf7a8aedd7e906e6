package repository

import (
	"context"

	"github.com/blog-comments-api/internal/database"
	"github.com/blog-comments-api/internal/models"
)

// UserRepository defines the interface for user data operations
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id string) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	UsernameExists(ctx context.Context, username string) (bool, error)
	AdminExists(ctx context.Context) (bool, error)
	List(ctx context.Context) ([]*models.User, error)
}

// CommentRepository defines the query surface the comment engine needs
// from the comments table. Fetch joins each comment with its author's
// username and a precomputed like count.
type CommentRepository interface {
	// Fetch returns rows for a post, or for all posts when postID is
	// empty. Deleted comments are excluded unless includeDeleted is set.
	Fetch(ctx context.Context, postID string, includeDeleted bool) ([]*models.CommentRow, error)
	// GetByID returns the row for a single comment, or nil when absent.
	GetByID(ctx context.Context, id string) (*models.CommentRow, error)
	Insert(ctx context.Context, comment *models.Comment) error
	// MarkDeleted soft-deletes a comment and reports the affected row count.
	MarkDeleted(ctx context.Context, id string) (int64, error)
}

// LikeRepository defines the interface for like row operations. The
// storage layer owns the unique (comment, user) pair constraint.
type LikeRepository interface {
	// LikedIDs returns the subset of commentIDs the viewer has liked.
	LikedIDs(ctx context.Context, viewerID string, commentIDs []string) (map[string]bool, error)
	Exists(ctx context.Context, commentID, userID string) (bool, error)
	Insert(ctx context.Context, commentID, userID string) error
	Delete(ctx context.Context, commentID, userID string) error
	Count(ctx context.Context, commentID string) (int, error)
}

// Repositories holds all repository interfaces
type Repositories struct {
	User    UserRepository
	Comment CommentRepository
	Like    LikeRepository
}

// New creates all repositories with the given database connection
func New(db *database.DB) *Repositories {
	return &Repositories{
		User:    NewUserRepo(db),
		Comment: NewCommentRepo(db),
		Like:    NewLikeRepo(db),
	}
}
