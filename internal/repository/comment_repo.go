package repository

import (
	"context"
	"database/sql"

	"github.com/blog-comments-api/internal/database"
	"github.com/blog-comments-api/internal/models"
)

// commentRepo is the concrete implementation of CommentRepository
type commentRepo struct {
	db *database.DB
}

// NewCommentRepo creates a new comment repository
func NewCommentRepo(db *database.DB) CommentRepository {
	return &commentRepo{db: db}
}

const commentRowColumns = `
	c.id, c.post_id, c.user_id, u.username, c.body, c.created_at, c.is_deleted, c.parent_comment_id,
	COALESCE(l.like_count, 0) AS like_count
`

const commentRowJoins = `
	FROM comments c
	INNER JOIN users u ON u.id = c.user_id
	LEFT JOIN (SELECT comment_id, COUNT(*) AS like_count FROM comment_likes GROUP BY comment_id) l
		ON l.comment_id = c.id
`

// Fetch retrieves comment rows, optionally scoped to a post and
// optionally including soft-deleted rows
func (r *commentRepo) Fetch(ctx context.Context, postID string, includeDeleted bool) ([]*models.CommentRow, error) {
	query := "SELECT " + commentRowColumns + commentRowJoins
	var args []interface{}

	where := ""
	if postID != "" {
		where = " WHERE c.post_id = $1"
		args = append(args, postID)
	}
	if !includeDeleted {
		if where == "" {
			where = " WHERE c.is_deleted = FALSE"
		} else {
			where += " AND c.is_deleted = FALSE"
		}
	}
	query += where + " ORDER BY c.created_at"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := make([]*models.CommentRow, 0)
	for rows.Next() {
		row, err := scanCommentRow(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, row)
	}
	return result, rows.Err()
}

// GetByID retrieves a single comment row by ID, nil when absent
func (r *commentRepo) GetByID(ctx context.Context, id string) (*models.CommentRow, error) {
	query := "SELECT " + commentRowColumns + commentRowJoins + " WHERE c.id = $1"

	row, err := scanCommentRow(r.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return row, nil
}

// Insert stores a new comment; created_at is assigned by the database
// and read back via GetByID
func (r *commentRepo) Insert(ctx context.Context, comment *models.Comment) error {
	query := `
		INSERT INTO comments (id, post_id, user_id, body, parent_comment_id)
		VALUES ($1, $2, $3, $4, $5)
	`
	_, err := r.db.ExecContext(ctx, query,
		comment.ID, comment.PostID, comment.UserID, comment.Body, comment.ParentID,
	)
	return err
}

// MarkDeleted flips the deleted flag on a live comment. Rows already
// deleted are not matched, so the affected count is authoritative for
// "was there anything to delete".
func (r *commentRepo) MarkDeleted(ctx context.Context, id string) (int64, error) {
	result, err := r.db.ExecContext(ctx,
		"UPDATE comments SET is_deleted = TRUE WHERE id = $1 AND is_deleted = FALSE", id)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanCommentRow(s rowScanner) (*models.CommentRow, error) {
	var row models.CommentRow
	var parentID sql.NullString
	err := s.Scan(
		&row.ID, &row.PostID, &row.UserID, &row.Username, &row.Body,
		&row.CreatedAt, &row.IsDeleted, &parentID, &row.LikeCount,
	)
	if err != nil {
		return nil, err
	}
	if parentID.Valid {
		row.ParentID = &parentID.String
	}
	return &row, nil
}
