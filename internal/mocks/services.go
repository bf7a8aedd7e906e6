package mocks

import (
	"context"

	"github.com/blog-comments-api/internal/models"
)

// MockCommentService is a configurable implementation of CommentService
type MockCommentService struct {
	ListFunc       func(ctx context.Context, postID string, includeDeleted bool, viewerID string) ([]*models.CommentNode, error)
	PostFunc       func(ctx context.Context, postID, authorID, body string, parentID *string) (*models.CommentNode, error)
	ToggleLikeFunc func(ctx context.Context, commentID, userID string) (*models.LikeResult, error)

	ListCalls   int
	LastViewer  string
	LastPostID  string
	ToggleCalls int
}

func NewMockCommentService() *MockCommentService {
	return &MockCommentService{}
}

func (m *MockCommentService) List(ctx context.Context, postID string, includeDeleted bool, viewerID string) ([]*models.CommentNode, error) {
	m.ListCalls++
	m.LastPostID = postID
	m.LastViewer = viewerID
	if m.ListFunc != nil {
		return m.ListFunc(ctx, postID, includeDeleted, viewerID)
	}
	return []*models.CommentNode{}, nil
}

func (m *MockCommentService) Post(ctx context.Context, postID, authorID, body string, parentID *string) (*models.CommentNode, error) {
	if m.PostFunc != nil {
		return m.PostFunc(ctx, postID, authorID, body, parentID)
	}
	return &models.CommentNode{
		ID:      "mock-comment",
		PostID:  postID,
		UserID:  authorID,
		Body:    body,
		Replies: []*models.CommentNode{},
	}, nil
}

func (m *MockCommentService) ToggleLike(ctx context.Context, commentID, userID string) (*models.LikeResult, error) {
	m.ToggleCalls++
	if m.ToggleLikeFunc != nil {
		return m.ToggleLikeFunc(ctx, commentID, userID)
	}
	return &models.LikeResult{Liked: true, Likes: 1}, nil
}

// MockModerationService is a configurable implementation of ModerationService
type MockModerationService struct {
	SoftDeleteFunc func(ctx context.Context, commentID string) error
	FeedFunc       func(ctx context.Context, includeDeleted bool) ([]*models.CommentNode, error)

	DeletedIDs []string
}

func NewMockModerationService() *MockModerationService {
	return &MockModerationService{}
}

func (m *MockModerationService) SoftDelete(ctx context.Context, commentID string) error {
	if m.SoftDeleteFunc != nil {
		return m.SoftDeleteFunc(ctx, commentID)
	}
	m.DeletedIDs = append(m.DeletedIDs, commentID)
	return nil
}

func (m *MockModerationService) Feed(ctx context.Context, includeDeleted bool) ([]*models.CommentNode, error) {
	if m.FeedFunc != nil {
		return m.FeedFunc(ctx, includeDeleted)
	}
	return []*models.CommentNode{}, nil
}

// MockUserService is a configurable implementation of UserService
type MockUserService struct {
	RegisterFunc     func(ctx context.Context, username, password string) (*models.User, error)
	AuthenticateFunc func(ctx context.Context, username, password string) (*models.User, error)
	GetByIDFunc      func(ctx context.Context, id string) (*models.User, error)
	CreateAdminFunc  func(ctx context.Context, username, password string) (*models.User, error)
	ListFunc         func(ctx context.Context) ([]*models.User, error)
}

func NewMockUserService() *MockUserService {
	return &MockUserService{}
}

func (m *MockUserService) Register(ctx context.Context, username, password string) (*models.User, error) {
	if m.RegisterFunc != nil {
		return m.RegisterFunc(ctx, username, password)
	}
	return &models.User{ID: "mock-user", Username: username, Role: models.RoleUser}, nil
}

func (m *MockUserService) Authenticate(ctx context.Context, username, password string) (*models.User, error) {
	if m.AuthenticateFunc != nil {
		return m.AuthenticateFunc(ctx, username, password)
	}
	return &models.User{ID: "mock-user", Username: username, Role: models.RoleUser}, nil
}

func (m *MockUserService) GetByID(ctx context.Context, id string) (*models.User, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return &models.User{ID: id, Username: "mock", Role: models.RoleUser}, nil
}

func (m *MockUserService) CreateAdmin(ctx context.Context, username, password string) (*models.User, error) {
	if m.CreateAdminFunc != nil {
		return m.CreateAdminFunc(ctx, username, password)
	}
	return &models.User{ID: "mock-admin", Username: username, Role: models.RoleAdmin}, nil
}

func (m *MockUserService) List(ctx context.Context) ([]*models.User, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx)
	}
	return []*models.User{}, nil
}

func (m *MockUserService) EnsureDefaultAdmin(ctx context.Context) error {
	return nil
}
