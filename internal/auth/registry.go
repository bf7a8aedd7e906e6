package auth

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"sync"
	"time"
)

// ErrInvalidToken is returned for tokens that are unknown or expired.
// The two cases are deliberately indistinguishable to callers.
var ErrInvalidToken = errors.New("invalid or expired token")

// Session binds an opaque token to a subject identity. Role is a
// snapshot taken at issuance and is not re-synchronized if the user's
// role later changes.
type Session struct {
	UserID    string
	Role      string
	ExpiresAt int64 // unix seconds
}

// Registry issues, validates, and revokes session tokens. All access
// to the session map is serialized through the mutex; a single shared
// instance per process is expected.
type Registry struct {
	mu       sync.Mutex
	ttl      time.Duration
	sessions map[string]Session
	now      func() time.Time
}

// NewRegistry creates a registry whose tokens live for ttl
func NewRegistry(ttl time.Duration) *Registry {
	return &Registry{
		ttl:      ttl,
		sessions: make(map[string]Session),
		now:      time.Now,
	}
}

// Issue generates an unguessable token for the subject and stores the
// session under it
func (r *Registry) Issue(userID, role string) (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}
	token := hex.EncodeToString(buf)

	session := Session{
		UserID:    userID,
		Role:      role,
		ExpiresAt: r.now().Add(r.ttl).Unix(),
	}

	r.mu.Lock()
	r.sessions[token] = session
	r.mu.Unlock()

	return token, nil
}

// Validate looks up a token and returns its session. Expired entries
// are evicted on lookup and reported the same as unknown tokens.
func (r *Registry) Validate(token string) (Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	session, ok := r.sessions[token]
	if !ok {
		return Session{}, ErrInvalidToken
	}
	if session.ExpiresAt < r.now().Unix() {
		delete(r.sessions, token)
		return Session{}, ErrInvalidToken
	}
	return session, nil
}

// Revoke removes a token if present; revoking an unknown token is a no-op
func (r *Registry) Revoke(token string) {
	r.mu.Lock()
	delete(r.sessions, token)
	r.mu.Unlock()
}
