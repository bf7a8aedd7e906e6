package validation

import (
	"fmt"
	"strings"

	"github.com/blog-comments-api/internal/models"
)

// Field bounds accepted at the HTTP boundary
const (
	MinUsernameLength = 3
	MaxUsernameLength = 50
	MinPasswordLength = 3
	MaxPasswordLength = 128
	MaxPostIDLength   = 255
)

// Username validates a username for registration
func Username(username string) error {
	username = strings.TrimSpace(username)
	if len(username) < MinUsernameLength || len(username) > MaxUsernameLength {
		return fmt.Errorf("username must be between %d and %d characters", MinUsernameLength, MaxUsernameLength)
	}
	return nil
}

// Password validates a password for registration
func Password(password string) error {
	if len(password) < MinPasswordLength || len(password) > MaxPasswordLength {
		return fmt.Errorf("password must be between %d and %d characters", MinPasswordLength, MaxPasswordLength)
	}
	return nil
}

// PostID validates the external content identifier a comment attaches to
func PostID(postID string) error {
	postID = strings.TrimSpace(postID)
	if postID == "" {
		return fmt.Errorf("post_id is required")
	}
	if len(postID) > MaxPostIDLength {
		return fmt.Errorf("post_id must be at most %d characters", MaxPostIDLength)
	}
	return nil
}

// CommentBody validates a comment body's length. Blank bodies are the
// engine's concern; this only guards the upper bound.
func CommentBody(body string) error {
	if len(body) > models.MaxBodyLength {
		return fmt.Errorf("comment body must be at most %d characters", models.MaxBodyLength)
	}
	return nil
}
