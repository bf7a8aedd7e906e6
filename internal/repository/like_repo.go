package repository

import (
	"context"

	"github.com/blog-comments-api/internal/database"
	"github.com/lib/pq"
)

// likeRepo is the concrete implementation of LikeRepository
type likeRepo struct {
	db *database.DB
}

// NewLikeRepo creates a new like repository
func NewLikeRepo(db *database.DB) LikeRepository {
	return &likeRepo{db: db}
}

// LikedIDs returns which of the given comments the viewer has liked
func (r *likeRepo) LikedIDs(ctx context.Context, viewerID string, commentIDs []string) (map[string]bool, error) {
	liked := make(map[string]bool)
	if viewerID == "" || len(commentIDs) == 0 {
		return liked, nil
	}

	query := `SELECT comment_id FROM comment_likes WHERE user_id = $1 AND comment_id = ANY($2)`
	rows, err := r.db.QueryContext(ctx, query, viewerID, pq.Array(commentIDs))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		liked[id] = true
	}
	return liked, rows.Err()
}

// Exists checks if a like row exists for the (comment, user) pair
func (r *likeRepo) Exists(ctx context.Context, commentID, userID string) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx,
		"SELECT EXISTS(SELECT 1 FROM comment_likes WHERE comment_id = $1 AND user_id = $2)",
		commentID, userID,
	).Scan(&exists)
	return exists, err
}

// Insert creates a like row. The composite primary key makes the pair
// unique; ON CONFLICT turns a lost race into a no-op instead of an error.
func (r *likeRepo) Insert(ctx context.Context, commentID, userID string) error {
	_, err := r.db.ExecContext(ctx,
		"INSERT INTO comment_likes (comment_id, user_id) VALUES ($1, $2) ON CONFLICT (comment_id, user_id) DO NOTHING",
		commentID, userID,
	)
	return err
}

// Delete removes the like row for the (comment, user) pair if present
func (r *likeRepo) Delete(ctx context.Context, commentID, userID string) error {
	_, err := r.db.ExecContext(ctx,
		"DELETE FROM comment_likes WHERE comment_id = $1 AND user_id = $2",
		commentID, userID,
	)
	return err
}

// Count returns the current total like count for a comment
func (r *likeRepo) Count(ctx context.Context, commentID string) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM comment_likes WHERE comment_id = $1", commentID,
	).Scan(&count)
	return count, err
}
