package service

import (
	"context"
	"fmt"

	"github.com/blog-comments-api/internal/models"
	"github.com/blog-comments-api/internal/repository"
	"github.com/rs/zerolog"
)

// moderationService is the concrete implementation of ModerationService
type moderationService struct {
	comments repository.CommentRepository
	log      zerolog.Logger
}

func newModerationService(repos *repository.Repositories, log zerolog.Logger) ModerationService {
	return &moderationService{
		comments: repos.Comment,
		log:      log.With().Str("service", "moderation").Logger(),
	}
}

// SoftDelete marks a comment deleted. The update only matches live
// rows, so a missing or already-deleted comment reports ErrNotFound.
func (s *moderationService) SoftDelete(ctx context.Context, commentID string) error {
	affected, err := s.comments.MarkDeleted(ctx, commentID)
	if err != nil {
		return fmt.Errorf("mark deleted: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}

	s.log.Info().Str("comment_id", commentID).Msg("Comment soft-deleted")
	return nil
}

// Feed returns the assembled forest across all posts, with no viewer
// personalization
func (s *moderationService) Feed(ctx context.Context, includeDeleted bool) ([]*models.CommentNode, error) {
	rows, err := s.comments.Fetch(ctx, "", includeDeleted)
	if err != nil {
		return nil, fmt.Errorf("fetch comments: %w", err)
	}
	return assembleThread(rows, nil), nil
}
