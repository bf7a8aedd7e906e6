package api_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/blog-comments-api/internal/api"
	"github.com/blog-comments-api/internal/auth"
	"github.com/blog-comments-api/internal/config"
	"github.com/blog-comments-api/internal/mocks"
	"github.com/blog-comments-api/internal/models"
	"github.com/blog-comments-api/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

type testEnv struct {
	router     *gin.Engine
	registry   *auth.Registry
	comments   *mocks.MockCommentService
	moderation *mocks.MockModerationService
	users      *mocks.MockUserService
}

func setupTestRouter() *testEnv {
	gin.SetMode(gin.TestMode)

	env := &testEnv{
		registry:   auth.NewRegistry(time.Hour),
		comments:   mocks.NewMockCommentService(),
		moderation: mocks.NewMockModerationService(),
		users:      mocks.NewMockUserService(),
	}

	services := &service.Services{
		Comment:    env.comments,
		Moderation: env.moderation,
		User:       env.users,
	}
	cfg := &config.Config{
		Server: config.ServerConfig{Port: "8080"},
		Auth:   config.AuthConfig{TokenTTL: time.Hour},
	}

	env.router = api.NewRouter(services, env.registry, cfg, zerolog.Nop())
	return env
}

func doJSON(router *gin.Engine, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestHealthEndpoint(t *testing.T) {
	env := setupTestRouter()

	w := doJSON(env.router, "GET", "/health", "", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}

	var response map[string]interface{}
	json.Unmarshal(w.Body.Bytes(), &response)
	if response["status"] != "ok" {
		t.Errorf("expected status 'ok', got %v", response["status"])
	}
}

func TestListCommentsRequiresPostID(t *testing.T) {
	env := setupTestRouter()

	w := doJSON(env.router, "GET", "/api/comments", "", nil)
	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400 without post_id, got %d", w.Code)
	}
}

func TestListCommentsAnonymous(t *testing.T) {
	env := setupTestRouter()

	w := doJSON(env.router, "GET", "/api/comments?post_id=post-1", "", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if env.comments.LastViewer != "" {
		t.Errorf("anonymous request carried viewer %q", env.comments.LastViewer)
	}
	if env.comments.LastPostID != "post-1" {
		t.Errorf("post id = %q, want post-1", env.comments.LastPostID)
	}
}

func TestListCommentsWithViewer(t *testing.T) {
	env := setupTestRouter()
	token, _ := env.registry.Issue("viewer-1", models.RoleUser)

	w := doJSON(env.router, "GET", "/api/comments?post_id=post-1", token, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if env.comments.LastViewer != "viewer-1" {
		t.Errorf("viewer = %q, want viewer-1", env.comments.LastViewer)
	}
}

func TestListCommentsIgnoresBadToken(t *testing.T) {
	env := setupTestRouter()

	w := doJSON(env.router, "GET", "/api/comments?post_id=post-1", "garbage", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("optional auth must not reject, got %d", w.Code)
	}
	if env.comments.LastViewer != "" {
		t.Error("invalid token must not resolve a viewer")
	}
}

func TestCreateCommentRequiresAuth(t *testing.T) {
	env := setupTestRouter()

	w := doJSON(env.router, "POST", "/api/comments", "", map[string]string{
		"post_id": "post-1", "body": "hi",
	})
	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected 401 without token, got %d", w.Code)
	}
}

func TestCreateComment(t *testing.T) {
	env := setupTestRouter()
	token, _ := env.registry.Issue("user-1", models.RoleUser)

	w := doJSON(env.router, "POST", "/api/comments", token, map[string]string{
		"post_id": "post-1", "body": "first!",
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}

	var node models.CommentNode
	json.Unmarshal(w.Body.Bytes(), &node)
	if node.UserID != "user-1" {
		t.Errorf("author = %q, want user-1", node.UserID)
	}
}

func TestCreateCommentEmptyBody(t *testing.T) {
	env := setupTestRouter()
	token, _ := env.registry.Issue("user-1", models.RoleUser)
	env.comments.PostFunc = func(ctx context.Context, postID, authorID, body string, parentID *string) (*models.CommentNode, error) {
		return nil, service.ErrEmptyContent
	}

	w := doJSON(env.router, "POST", "/api/comments", token, map[string]string{
		"post_id": "post-1", "body": "   ",
	})
	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for blank body, got %d", w.Code)
	}
}

func TestCreateCommentInvalidParent(t *testing.T) {
	env := setupTestRouter()
	token, _ := env.registry.Issue("user-1", models.RoleUser)
	env.comments.PostFunc = func(ctx context.Context, postID, authorID, body string, parentID *string) (*models.CommentNode, error) {
		return nil, service.ErrInvalidParent
	}

	w := doJSON(env.router, "POST", "/api/comments", token, map[string]interface{}{
		"post_id": "post-1", "body": "hi", "parent_comment_id": "gone",
	})
	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for invalid parent, got %d", w.Code)
	}
}

func TestToggleLike(t *testing.T) {
	env := setupTestRouter()
	token, _ := env.registry.Issue("user-1", models.RoleUser)

	w := doJSON(env.router, "POST", "/api/comments/c-1/like", token, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	var response map[string]interface{}
	json.Unmarshal(w.Body.Bytes(), &response)
	if response["comment_id"] != "c-1" {
		t.Errorf("comment_id = %v, want c-1", response["comment_id"])
	}
	if response["liked"] != true {
		t.Errorf("liked = %v, want true", response["liked"])
	}
}

func TestToggleLikeNotFound(t *testing.T) {
	env := setupTestRouter()
	token, _ := env.registry.Issue("user-1", models.RoleUser)
	env.comments.ToggleLikeFunc = func(ctx context.Context, commentID, userID string) (*models.LikeResult, error) {
		return nil, service.ErrNotFound
	}

	w := doJSON(env.router, "POST", "/api/comments/missing/like", token, nil)
	if w.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", w.Code)
	}
}

func TestLoginIssuesToken(t *testing.T) {
	env := setupTestRouter()
	env.users.AuthenticateFunc = func(ctx context.Context, username, password string) (*models.User, error) {
		if password != "secret" {
			return nil, service.ErrInvalidCredentials
		}
		return &models.User{ID: "user-1", Username: username, Role: models.RoleUser}, nil
	}

	w := doJSON(env.router, "POST", "/api/users/login", "", map[string]string{
		"username": "alice", "password": "secret",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	var response map[string]string
	json.Unmarshal(w.Body.Bytes(), &response)
	if response["token"] == "" {
		t.Fatal("expected a token in the response")
	}

	// The issued token is immediately valid
	if _, err := env.registry.Validate(response["token"]); err != nil {
		t.Fatalf("issued token failed validation: %v", err)
	}

	bad := doJSON(env.router, "POST", "/api/users/login", "", map[string]string{
		"username": "alice", "password": "wrong",
	})
	if bad.Code != http.StatusUnauthorized {
		t.Errorf("expected 401 for bad credentials, got %d", bad.Code)
	}
}

func TestLogoutRevokesToken(t *testing.T) {
	env := setupTestRouter()
	token, _ := env.registry.Issue("user-1", models.RoleUser)

	w := doJSON(env.router, "POST", "/api/users/logout", token, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if _, err := env.registry.Validate(token); err == nil {
		t.Fatal("token still valid after logout")
	}
}

func TestRegisterValidation(t *testing.T) {
	env := setupTestRouter()

	w := doJSON(env.router, "POST", "/api/users/register", "", map[string]string{
		"username": "al", "password": "secret",
	})
	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for short username, got %d", w.Code)
	}

	ok := doJSON(env.router, "POST", "/api/users/register", "", map[string]string{
		"username": "alice", "password": "secret",
	})
	if ok.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", ok.Code)
	}
}

func TestAdminEndpointsRequireAdminRole(t *testing.T) {
	env := setupTestRouter()
	userToken, _ := env.registry.Issue("user-1", models.RoleUser)
	adminToken, _ := env.registry.Issue("admin-1", models.RoleAdmin)

	// No token
	if w := doJSON(env.router, "GET", "/api/admin/comments", "", nil); w.Code != http.StatusUnauthorized {
		t.Errorf("expected 401 without token, got %d", w.Code)
	}
	// Valid token, wrong role
	if w := doJSON(env.router, "GET", "/api/admin/comments", userToken, nil); w.Code != http.StatusForbidden {
		t.Errorf("expected 403 for user role, got %d", w.Code)
	}
	// Admin role
	if w := doJSON(env.router, "GET", "/api/admin/comments", adminToken, nil); w.Code != http.StatusOK {
		t.Errorf("expected 200 for admin, got %d", w.Code)
	}
}

func TestAdminDeleteComment(t *testing.T) {
	env := setupTestRouter()
	adminToken, _ := env.registry.Issue("admin-1", models.RoleAdmin)

	w := doJSON(env.router, "POST", "/api/admin/delete_comment", adminToken, map[string]string{
		"comment_id": "c-1",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if len(env.moderation.DeletedIDs) != 1 || env.moderation.DeletedIDs[0] != "c-1" {
		t.Errorf("deleted ids = %v, want [c-1]", env.moderation.DeletedIDs)
	}

	env.moderation.SoftDeleteFunc = func(ctx context.Context, commentID string) error {
		return service.ErrNotFound
	}
	missing := doJSON(env.router, "POST", "/api/admin/delete_comment", adminToken, map[string]string{
		"comment_id": "missing",
	})
	if missing.Code != http.StatusNotFound {
		t.Errorf("expected 404 for unknown comment, got %d", missing.Code)
	}
}

func TestRevokedTokenIsUnauthorized(t *testing.T) {
	env := setupTestRouter()
	token, _ := env.registry.Issue("user-1", models.RoleUser)
	env.registry.Revoke(token)

	w := doJSON(env.router, "POST", "/api/comments", token, map[string]string{
		"post_id": "post-1", "body": "hi",
	})
	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected 401 for revoked token, got %d", w.Code)
	}
}
