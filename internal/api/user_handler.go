package api

import (
	"errors"
	"net/http"
	"strings"

	"github.com/blog-comments-api/internal/auth"
	"github.com/blog-comments-api/internal/service"
	"github.com/blog-comments-api/internal/validation"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// UserHandler handles registration and session endpoints
type UserHandler struct {
	services *service.Services
	registry *auth.Registry
	log      zerolog.Logger
}

// NewUserHandler creates a new UserHandler
func NewUserHandler(services *service.Services, registry *auth.Registry, log zerolog.Logger) *UserHandler {
	return &UserHandler{
		services: services,
		registry: registry,
		log:      log.With().Str("handler", "user").Logger(),
	}
}

// CredentialsRequest is the payload for register and login
type CredentialsRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (r *CredentialsRequest) validate() error {
	r.Username = strings.TrimSpace(r.Username)
	if err := validation.Username(r.Username); err != nil {
		return err
	}
	return validation.Password(r.Password)
}

// Register handles POST /api/users/register
func (h *UserHandler) Register(c *gin.Context) {
	var req CredentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}
	if err := req.validate(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.services.User.Register(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrUsernameTaken) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		h.log.Error().Err(err).Msg("Registration failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"id":       user.ID,
		"username": user.Username,
		"role":     user.Role,
	})
}

// Login handles POST /api/users/login
func (h *UserHandler) Login(c *gin.Context) {
	var req CredentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	user, err := h.services.User.Authenticate(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
			return
		}
		h.log.Error().Err(err).Msg("Login failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	token, err := h.registry.Issue(user.ID, user.Role)
	if err != nil {
		h.log.Error().Err(err).Msg("Token issuance failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token":    token,
		"username": user.Username,
		"role":     user.Role,
	})
}

// Logout handles POST /api/users/logout; revoking is idempotent
func (h *UserHandler) Logout(c *gin.Context) {
	if token, exists := c.Get(TokenKey); exists {
		h.registry.Revoke(token.(string))
	}
	c.JSON(http.StatusOK, gin.H{"status": "logged_out"})
}
