package models

import (
	"time"
)

// Comment represents a stored comment row as written by the engine
type Comment struct {
	ID        string    `json:"id" db:"id"`
	PostID    string    `json:"post_id" db:"post_id"`
	UserID    string    `json:"user_id" db:"user_id"`
	Body      string    `json:"body" db:"body"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	IsDeleted bool      `json:"is_deleted" db:"is_deleted"`
	ParentID  *string   `json:"parent_comment_id" db:"parent_comment_id"`
}

// CommentRow is the fixed-shape result of the comment listing query:
// a comment joined with its author's username and a precomputed like
// aggregate. Repositories scan into it at the adapter boundary.
type CommentRow struct {
	ID        string
	PostID    string
	UserID    string
	Username  string
	Body      string
	CreatedAt time.Time
	IsDeleted bool
	ParentID  *string
	LikeCount int
}

// CommentNode is the request-scoped tree view of a comment: the row
// plus rendered body, the viewer's like state, and ordered replies.
// Replies is always non-nil so it serializes as [] rather than null.
type CommentNode struct {
	ID            string         `json:"id"`
	PostID        string         `json:"post_id"`
	UserID        string         `json:"user_id"`
	Username      string         `json:"username"`
	Body          string         `json:"body"`
	BodyHTML      string         `json:"body_html"`
	CreatedAt     time.Time      `json:"created_at"`
	IsDeleted     bool           `json:"is_deleted"`
	ParentID      *string        `json:"parent_comment_id"`
	LikeCount     int            `json:"like_count"`
	LikedByViewer bool           `json:"liked_by_viewer"`
	Replies       []*CommentNode `json:"replies"`
}

// LikeResult reports the outcome of a like toggle
type LikeResult struct {
	Liked bool `json:"liked"`
	Likes int  `json:"likes"`
}

// MaxBodyLength is the maximum allowed comment body length in characters
const MaxBodyLength = 2000
