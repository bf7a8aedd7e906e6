package api

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/blog-comments-api/internal/service"
	"github.com/blog-comments-api/internal/validation"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// AdminHandler handles the moderation console endpoints
type AdminHandler struct {
	services *service.Services
	log      zerolog.Logger
}

// NewAdminHandler creates a new AdminHandler
func NewAdminHandler(services *service.Services, log zerolog.Logger) *AdminHandler {
	return &AdminHandler{
		services: services,
		log:      log.With().Str("handler", "admin").Logger(),
	}
}

// DeleteCommentRequest is the payload for POST /api/admin/delete_comment
type DeleteCommentRequest struct {
	CommentID string `json:"comment_id"`
}

// CreateAdmin handles POST /api/admin/create
func (h *AdminHandler) CreateAdmin(c *gin.Context) {
	var req CredentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}
	req.Username = strings.TrimSpace(req.Username)
	if err := validation.Username(req.Username); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := validation.Password(req.Password); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	admin, err := h.services.User.CreateAdmin(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrUsernameTaken) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		h.log.Error().Err(err).Msg("Admin creation failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"id":       admin.ID,
		"username": admin.Username,
		"role":     admin.Role,
	})
}

// DeleteComment handles POST /api/admin/delete_comment
func (h *AdminHandler) DeleteComment(c *gin.Context) {
	var req DeleteCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.CommentID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "comment_id is required"})
		return
	}

	if err := h.services.Moderation.SoftDelete(c.Request.Context(), req.CommentID); err != nil {
		if errors.Is(err, service.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		h.log.Error().Err(err).Msg("Comment deletion failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "deleted", "comment_id": req.CommentID})
}

// ModerationFeed handles GET /api/admin/comments?include_deleted=
func (h *AdminHandler) ModerationFeed(c *gin.Context) {
	includeDeleted := true
	if raw := c.Query("include_deleted"); raw != "" {
		if parsed, err := strconv.ParseBool(raw); err == nil {
			includeDeleted = parsed
		}
	}

	items, err := h.services.Moderation.Feed(c.Request.Context(), includeDeleted)
	if err != nil {
		h.log.Error().Err(err).Msg("Moderation feed failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": items})
}

// ListUsers handles GET /api/admin/users
func (h *AdminHandler) ListUsers(c *gin.Context) {
	users, err := h.services.User.List(c.Request.Context())
	if err != nil {
		h.log.Error().Err(err).Msg("User listing failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": users})
}
