package api

import (
	"net/http"
	"strings"

	"github.com/blog-comments-api/internal/auth"
	"github.com/blog-comments-api/internal/models"
	"github.com/blog-comments-api/internal/service"
	"github.com/gin-gonic/gin"
)

// Context keys set by the auth middleware
const (
	SessionKey = "session"
	UserKey    = "user"
	TokenKey   = "token"
)

func bearerToken(c *gin.Context) (string, bool) {
	header := c.GetHeader("Authorization")
	if header == "" || !strings.HasPrefix(strings.ToLower(header), "bearer ") {
		return "", false
	}
	return strings.TrimSpace(header[len("bearer "):]), true
}

// AuthRequired validates the bearer token, resolves its user, and
// stores both on the context. The role carried forward is the session
// snapshot, not the user row's current role.
func AuthRequired(registry *auth.Registry, users service.UserService) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Missing Bearer token"})
			return
		}

		session, err := registry.Validate(token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			return
		}

		user, err := users.GetByID(c.Request.Context(), session.UserID)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "User not found"})
			return
		}
		user.Role = session.Role

		c.Set(SessionKey, session)
		c.Set(UserKey, user)
		c.Set(TokenKey, token)
		c.Next()
	}
}

// AdminRequired rejects sessions whose role snapshot is not admin.
// Must run after AuthRequired.
func AdminRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		session, exists := c.Get(SessionKey)
		if !exists || session.(auth.Session).Role != models.RoleAdmin {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Admin privileges required"})
			return
		}
		c.Next()
	}
}

// OptionalAuth resolves a viewer when a valid bearer token is present
// and silently continues anonymous otherwise
func OptionalAuth(registry *auth.Registry, users service.UserService) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c)
		if !ok {
			c.Next()
			return
		}

		session, err := registry.Validate(token)
		if err != nil {
			c.Next()
			return
		}

		user, err := users.GetByID(c.Request.Context(), session.UserID)
		if err != nil {
			c.Next()
			return
		}
		user.Role = session.Role

		c.Set(SessionKey, session)
		c.Set(UserKey, user)
		c.Set(TokenKey, token)
		c.Next()
	}
}

// currentUser returns the authenticated user set by the middleware
func currentUser(c *gin.Context) (*models.User, bool) {
	value, exists := c.Get(UserKey)
	if !exists {
		return nil, false
	}
	user, ok := value.(*models.User)
	return user, ok
}
