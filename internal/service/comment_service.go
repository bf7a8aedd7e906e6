package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/blog-comments-api/internal/models"
	"github.com/blog-comments-api/internal/repository"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// commentService is the concrete implementation of CommentService
type commentService struct {
	comments repository.CommentRepository
	likes    repository.LikeRepository
	log      zerolog.Logger
}

func newCommentService(repos *repository.Repositories, log zerolog.Logger) CommentService {
	return &commentService{
		comments: repos.Comment,
		likes:    repos.Like,
		log:      log.With().Str("service", "comment").Logger(),
	}
}

// List fetches a post's comments and the viewer's like memberships,
// then assembles the reply forest
func (s *commentService) List(ctx context.Context, postID string, includeDeleted bool, viewerID string) ([]*models.CommentNode, error) {
	rows, err := s.comments.Fetch(ctx, postID, includeDeleted)
	if err != nil {
		return nil, fmt.Errorf("fetch comments: %w", err)
	}

	ids := make([]string, 0, len(rows))
	for _, row := range rows {
		ids = append(ids, row.ID)
	}
	likedIDs, err := s.likes.LikedIDs(ctx, viewerID, ids)
	if err != nil {
		return nil, fmt.Errorf("fetch liked ids: %w", err)
	}

	return assembleThread(rows, likedIDs), nil
}

// Post validates and stores a new comment, then re-reads it for the
// database-generated timestamp. All validation happens before the
// insert, so a rejected comment leaves no partial state.
func (s *commentService) Post(ctx context.Context, postID, authorID, body string, parentID *string) (*models.CommentNode, error) {
	body = strings.TrimSpace(body)
	if body == "" {
		return nil, ErrEmptyContent
	}

	if parentID != nil {
		parent, err := s.comments.GetByID(ctx, *parentID)
		if err != nil {
			return nil, fmt.Errorf("fetch parent comment: %w", err)
		}
		if parent == nil || parent.IsDeleted {
			return nil, ErrInvalidParent
		}
		if parent.PostID != postID {
			return nil, fmt.Errorf("%w: belongs to another post", ErrInvalidParent)
		}
	}

	comment := &models.Comment{
		ID:       uuid.New().String(),
		PostID:   postID,
		UserID:   authorID,
		Body:     body,
		ParentID: parentID,
	}
	if err := s.comments.Insert(ctx, comment); err != nil {
		return nil, fmt.Errorf("insert comment: %w", err)
	}

	row, err := s.comments.GetByID(ctx, comment.ID)
	if err != nil {
		return nil, fmt.Errorf("read back comment: %w", err)
	}
	if row == nil {
		return nil, fmt.Errorf("comment %s vanished after insert", comment.ID)
	}

	s.log.Info().
		Str("comment_id", row.ID).
		Str("post_id", postID).
		Str("author_id", authorID).
		Bool("is_reply", parentID != nil).
		Msg("Comment created")

	// A brand-new comment cannot have likes yet
	row.LikeCount = 0
	return newNode(row, false), nil
}

// ToggleLike removes the viewer's like if present, otherwise creates
// it, and returns the recomputed total
func (s *commentService) ToggleLike(ctx context.Context, commentID, userID string) (*models.LikeResult, error) {
	comment, err := s.comments.GetByID(ctx, commentID)
	if err != nil {
		return nil, fmt.Errorf("fetch comment: %w", err)
	}
	if comment == nil || comment.IsDeleted {
		return nil, ErrNotFound
	}

	liked, err := s.likes.Exists(ctx, commentID, userID)
	if err != nil {
		return nil, fmt.Errorf("check like: %w", err)
	}

	if liked {
		if err := s.likes.Delete(ctx, commentID, userID); err != nil {
			return nil, fmt.Errorf("delete like: %w", err)
		}
	} else {
		if err := s.likes.Insert(ctx, commentID, userID); err != nil {
			return nil, fmt.Errorf("insert like: %w", err)
		}
	}

	total, err := s.likes.Count(ctx, commentID)
	if err != nil {
		return nil, fmt.Errorf("count likes: %w", err)
	}

	return &models.LikeResult{Liked: !liked, Likes: total}, nil
}
