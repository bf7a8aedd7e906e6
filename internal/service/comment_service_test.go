package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/blog-comments-api/internal/mocks"
	"github.com/blog-comments-api/internal/models"
	"github.com/rs/zerolog"
)

func newTestCommentService() (*commentService, *mocks.MockCommentRepository, *mocks.MockLikeRepository) {
	comments := mocks.NewMockCommentRepository()
	likes := mocks.NewMockLikeRepository()
	comments.Likes = likes
	svc := &commentService{
		comments: comments,
		likes:    likes,
		log:      zerolog.Nop(),
	}
	return svc, comments, likes
}

func seedComment(repo *mocks.MockCommentRepository, id, postID string, parentID *string, deleted bool, at time.Time) {
	repo.Add(&models.Comment{
		ID:        id,
		PostID:    postID,
		UserID:    "author",
		Body:      "body " + id,
		CreatedAt: at,
		IsDeleted: deleted,
		ParentID:  parentID,
	})
}

func TestPostEmptyBody(t *testing.T) {
	svc, comments, _ := newTestCommentService()

	for _, body := range []string{"", "   ", "\n\t  "} {
		_, err := svc.Post(context.Background(), "post-1", "u1", body, nil)
		if !errors.Is(err, ErrEmptyContent) {
			t.Errorf("Post(%q) error = %v, want ErrEmptyContent", body, err)
		}
	}
	if comments.InsertCalls != 0 {
		t.Errorf("expected no inserts, got %d", comments.InsertCalls)
	}
}

func TestPostMissingParent(t *testing.T) {
	svc, comments, _ := newTestCommentService()

	_, err := svc.Post(context.Background(), "post-1", "u1", "hello", ptr("nope"))
	if !errors.Is(err, ErrInvalidParent) {
		t.Fatalf("expected ErrInvalidParent, got %v", err)
	}
	if comments.InsertCalls != 0 {
		t.Error("insert must not happen for invalid parent")
	}
}

func TestPostDeletedParent(t *testing.T) {
	svc, comments, _ := newTestCommentService()
	seedComment(comments, "parent", "post-1", nil, true, time.Unix(10, 0))

	_, err := svc.Post(context.Background(), "post-1", "u1", "hello", ptr("parent"))
	if !errors.Is(err, ErrInvalidParent) {
		t.Fatalf("expected ErrInvalidParent for deleted parent, got %v", err)
	}
	if comments.InsertCalls != 0 {
		t.Error("insert must not happen for deleted parent")
	}
}

func TestPostCrossPostParent(t *testing.T) {
	svc, comments, _ := newTestCommentService()
	seedComment(comments, "parent", "post-2", nil, false, time.Unix(10, 0))

	_, err := svc.Post(context.Background(), "post-1", "u1", "hello", ptr("parent"))
	if !errors.Is(err, ErrInvalidParent) {
		t.Fatalf("expected ErrInvalidParent for cross-post parent, got %v", err)
	}
}

func TestPostSuccess(t *testing.T) {
	svc, comments, _ := newTestCommentService()
	comments.Usernames["u1"] = "alice"
	seedComment(comments, "parent", "post-1", nil, false, time.Unix(10, 0))

	node, err := svc.Post(context.Background(), "post-1", "u1", "  hello there  ", ptr("parent"))
	if err != nil {
		t.Fatalf("Post() error = %v", err)
	}
	if node.Body != "hello there" {
		t.Errorf("body not trimmed: %q", node.Body)
	}
	if node.Username != "alice" {
		t.Errorf("expected joined username, got %q", node.Username)
	}
	if node.LikeCount != 0 {
		t.Errorf("new comment like count = %d, want 0", node.LikeCount)
	}
	if node.CreatedAt.IsZero() {
		t.Error("expected store-assigned timestamp")
	}
	if node.Replies == nil || len(node.Replies) != 0 {
		t.Error("expected empty non-nil replies")
	}
	if node.ParentID == nil || *node.ParentID != "parent" {
		t.Error("expected parent id preserved")
	}
}

func TestToggleLikeUnknownComment(t *testing.T) {
	svc, _, likes := newTestCommentService()

	_, err := svc.ToggleLike(context.Background(), "nope", "u1")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if len(likes.Pairs) != 0 {
		t.Error("no like rows should exist")
	}
}

func TestToggleLikeDeletedComment(t *testing.T) {
	svc, comments, _ := newTestCommentService()
	seedComment(comments, "c1", "post-1", nil, true, time.Unix(10, 0))

	_, err := svc.ToggleLike(context.Background(), "c1", "u1")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for deleted comment, got %v", err)
	}
}

func TestToggleLikeIsItsOwnInverse(t *testing.T) {
	svc, comments, _ := newTestCommentService()
	seedComment(comments, "c1", "post-1", nil, false, time.Unix(10, 0))

	first, err := svc.ToggleLike(context.Background(), "c1", "u1")
	if err != nil {
		t.Fatalf("first toggle error = %v", err)
	}
	if !first.Liked || first.Likes != 1 {
		t.Fatalf("first toggle = %+v, want {liked:true likes:1}", first)
	}

	second, err := svc.ToggleLike(context.Background(), "c1", "u1")
	if err != nil {
		t.Fatalf("second toggle error = %v", err)
	}
	if second.Liked || second.Likes != 0 {
		t.Fatalf("second toggle = %+v, want {liked:false likes:0}", second)
	}
}

func TestToggleLikeCountsOtherUsers(t *testing.T) {
	svc, comments, likes := newTestCommentService()
	seedComment(comments, "c1", "post-1", nil, false, time.Unix(10, 0))
	likes.Insert(context.Background(), "c1", "someone-else")

	result, err := svc.ToggleLike(context.Background(), "c1", "u1")
	if err != nil {
		t.Fatalf("toggle error = %v", err)
	}
	if !result.Liked || result.Likes != 2 {
		t.Fatalf("toggle = %+v, want {liked:true likes:2}", result)
	}
}

func TestListExcludesDeletedByDefault(t *testing.T) {
	svc, comments, _ := newTestCommentService()
	seedComment(comments, "live", "post-1", nil, false, time.Unix(10, 0))
	seedComment(comments, "dead", "post-1", nil, true, time.Unix(20, 0))

	nodes, err := svc.List(context.Background(), "post-1", false, "")
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(nodes) != 1 || nodes[0].ID != "live" {
		t.Fatalf("expected only live comment, got %+v", nodes)
	}

	all, err := svc.List(context.Background(), "post-1", true, "")
	if err != nil {
		t.Fatalf("List(includeDeleted) error = %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("expected both comments with includeDeleted, got %d", len(all))
	}
}

func TestListMarksViewerLikes(t *testing.T) {
	svc, comments, likes := newTestCommentService()
	seedComment(comments, "c1", "post-1", nil, false, time.Unix(10, 0))
	seedComment(comments, "c2", "post-1", nil, false, time.Unix(20, 0))
	likes.Insert(context.Background(), "c1", "viewer")

	nodes, err := svc.List(context.Background(), "post-1", false, "viewer")
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	for _, n := range nodes {
		want := n.ID == "c1"
		if n.LikedByViewer != want {
			t.Errorf("node %s liked = %v, want %v", n.ID, n.LikedByViewer, want)
		}
	}

	// Anonymous viewers never see liked state
	anon, err := svc.List(context.Background(), "post-1", false, "")
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	for _, n := range anon {
		if n.LikedByViewer {
			t.Errorf("anonymous viewer saw liked state on %s", n.ID)
		}
	}
}

func TestListScopedToPost(t *testing.T) {
	svc, comments, _ := newTestCommentService()
	seedComment(comments, "c1", "post-1", nil, false, time.Unix(10, 0))
	seedComment(comments, "c2", "post-2", nil, false, time.Unix(20, 0))

	nodes, err := svc.List(context.Background(), "post-1", false, "")
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(nodes) != 1 || nodes[0].PostID != "post-1" {
		t.Fatalf("expected only post-1 comments, got %+v", nodes)
	}
}
