package api

import (
	"errors"
	"net/http"
	"strings"

	"github.com/blog-comments-api/internal/service"
	"github.com/blog-comments-api/internal/validation"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// CommentHandler handles the comment endpoints used by the widget
type CommentHandler struct {
	services *service.Services
	log      zerolog.Logger
}

// NewCommentHandler creates a new CommentHandler
func NewCommentHandler(services *service.Services, log zerolog.Logger) *CommentHandler {
	return &CommentHandler{
		services: services,
		log:      log.With().Str("handler", "comment").Logger(),
	}
}

// CommentCreateRequest is the payload for POST /api/comments
type CommentCreateRequest struct {
	PostID   string  `json:"post_id"`
	Body     string  `json:"body"`
	ParentID *string `json:"parent_comment_id"`
}

// List handles GET /api/comments?post_id=
func (h *CommentHandler) List(c *gin.Context) {
	postID := strings.TrimSpace(c.Query("post_id"))
	if err := validation.PostID(postID); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	viewerID := ""
	if user, ok := currentUser(c); ok {
		viewerID = user.ID
	}

	items, err := h.services.Comment.List(c.Request.Context(), postID, false, viewerID)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": items})
}

// Create handles POST /api/comments
func (h *CommentHandler) Create(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}

	var req CommentCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}
	req.PostID = strings.TrimSpace(req.PostID)
	if err := validation.PostID(req.PostID); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := validation.CommentBody(req.Body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	comment, err := h.services.Comment.Post(c.Request.Context(), req.PostID, user.ID, req.Body, req.ParentID)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, comment)
}

// ToggleLike handles POST /api/comments/:comment_id/like
func (h *CommentHandler) ToggleLike(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}

	commentID := c.Param("comment_id")
	result, err := h.services.Comment.ToggleLike(c.Request.Context(), commentID, user.ID)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"comment_id": commentID,
		"liked":      result.Liked,
		"likes":      result.Likes,
	})
}

func (h *CommentHandler) respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrInvalidParent), errors.Is(err, service.ErrEmptyContent):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		h.log.Error().Err(err).Msg("Comment operation failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}
