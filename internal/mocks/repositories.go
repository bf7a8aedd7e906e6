package mocks

import (
	"context"
	"sort"
	"time"

	"github.com/blog-comments-api/internal/models"
)

// MockUserRepository is a map-backed implementation of UserRepository
type MockUserRepository struct {
	Users          map[string]*models.User
	UsernameToUser map[string]*models.User
	CreateError    error
}

func NewMockUserRepository() *MockUserRepository {
	return &MockUserRepository{
		Users:          make(map[string]*models.User),
		UsernameToUser: make(map[string]*models.User),
	}
}

func (m *MockUserRepository) Create(ctx context.Context, user *models.User) error {
	if m.CreateError != nil {
		return m.CreateError
	}
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now()
	}
	m.Users[user.ID] = user
	m.UsernameToUser[user.Username] = user
	return nil
}

func (m *MockUserRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	return m.Users[id], nil
}

func (m *MockUserRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	return m.UsernameToUser[username], nil
}

func (m *MockUserRepository) UsernameExists(ctx context.Context, username string) (bool, error) {
	_, exists := m.UsernameToUser[username]
	return exists, nil
}

func (m *MockUserRepository) AdminExists(ctx context.Context) (bool, error) {
	for _, user := range m.Users {
		if user.Role == models.RoleAdmin {
			return true, nil
		}
	}
	return false, nil
}

func (m *MockUserRepository) List(ctx context.Context) ([]*models.User, error) {
	users := make([]*models.User, 0, len(m.Users))
	for _, user := range m.Users {
		users = append(users, user)
	}
	sort.Slice(users, func(i, j int) bool {
		return users[i].CreatedAt.After(users[j].CreatedAt)
	})
	return users, nil
}

// MockCommentRepository is a map-backed implementation of CommentRepository.
// Usernames and like counts are resolved against the attached stores the
// way the SQL join does.
type MockCommentRepository struct {
	Comments    map[string]*models.Comment
	Usernames   map[string]string // user id -> username
	Likes       *MockLikeRepository
	InsertError error
	FetchError  error
	InsertCalls int
	Clock       time.Time
}

func NewMockCommentRepository() *MockCommentRepository {
	return &MockCommentRepository{
		Comments:  make(map[string]*models.Comment),
		Usernames: make(map[string]string),
		Clock:     time.Unix(1000, 0),
	}
}

// Add seeds a stored comment with an explicit timestamp
func (m *MockCommentRepository) Add(c *models.Comment) {
	m.Comments[c.ID] = c
}

func (m *MockCommentRepository) Fetch(ctx context.Context, postID string, includeDeleted bool) ([]*models.CommentRow, error) {
	if m.FetchError != nil {
		return nil, m.FetchError
	}
	rows := make([]*models.CommentRow, 0)
	for _, c := range m.Comments {
		if postID != "" && c.PostID != postID {
			continue
		}
		if !includeDeleted && c.IsDeleted {
			continue
		}
		rows = append(rows, m.toRow(c))
	}
	// Store order: ascending created_at, like the listing query
	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].CreatedAt.Before(rows[j].CreatedAt)
	})
	return rows, nil
}

func (m *MockCommentRepository) GetByID(ctx context.Context, id string) (*models.CommentRow, error) {
	c, ok := m.Comments[id]
	if !ok {
		return nil, nil
	}
	return m.toRow(c), nil
}

func (m *MockCommentRepository) Insert(ctx context.Context, comment *models.Comment) error {
	m.InsertCalls++
	if m.InsertError != nil {
		return m.InsertError
	}
	stored := *comment
	m.Clock = m.Clock.Add(time.Second)
	stored.CreatedAt = m.Clock
	m.Comments[stored.ID] = &stored
	return nil
}

func (m *MockCommentRepository) MarkDeleted(ctx context.Context, id string) (int64, error) {
	c, ok := m.Comments[id]
	if !ok || c.IsDeleted {
		return 0, nil
	}
	c.IsDeleted = true
	return 1, nil
}

func (m *MockCommentRepository) toRow(c *models.Comment) *models.CommentRow {
	likeCount := 0
	if m.Likes != nil {
		likeCount = len(m.Likes.likers(c.ID))
	}
	return &models.CommentRow{
		ID:        c.ID,
		PostID:    c.PostID,
		UserID:    c.UserID,
		Username:  m.Usernames[c.UserID],
		Body:      c.Body,
		CreatedAt: c.CreatedAt,
		IsDeleted: c.IsDeleted,
		ParentID:  c.ParentID,
		LikeCount: likeCount,
	}
}

// MockLikeRepository is a map-backed implementation of LikeRepository
type MockLikeRepository struct {
	Pairs       map[string]map[string]bool // comment id -> user id set
	InsertError error
}

func NewMockLikeRepository() *MockLikeRepository {
	return &MockLikeRepository{Pairs: make(map[string]map[string]bool)}
}

func (m *MockLikeRepository) likers(commentID string) map[string]bool {
	return m.Pairs[commentID]
}

func (m *MockLikeRepository) LikedIDs(ctx context.Context, viewerID string, commentIDs []string) (map[string]bool, error) {
	liked := make(map[string]bool)
	if viewerID == "" {
		return liked, nil
	}
	for _, id := range commentIDs {
		if m.Pairs[id][viewerID] {
			liked[id] = true
		}
	}
	return liked, nil
}

func (m *MockLikeRepository) Exists(ctx context.Context, commentID, userID string) (bool, error) {
	return m.Pairs[commentID][userID], nil
}

func (m *MockLikeRepository) Insert(ctx context.Context, commentID, userID string) error {
	if m.InsertError != nil {
		return m.InsertError
	}
	if m.Pairs[commentID] == nil {
		m.Pairs[commentID] = make(map[string]bool)
	}
	m.Pairs[commentID][userID] = true
	return nil
}

func (m *MockLikeRepository) Delete(ctx context.Context, commentID, userID string) error {
	delete(m.Pairs[commentID], userID)
	return nil
}

func (m *MockLikeRepository) Count(ctx context.Context, commentID string) (int, error) {
	return len(m.Pairs[commentID]), nil
}
