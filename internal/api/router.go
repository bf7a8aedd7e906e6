package api

import (
	"net/http"
	"time"

	"github.com/blog-comments-api/internal/auth"
	"github.com/blog-comments-api/internal/config"
	"github.com/blog-comments-api/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// NewRouter creates and configures the Gin router
func NewRouter(services *service.Services, registry *auth.Registry, cfg *config.Config, log zerolog.Logger) *gin.Engine {
	// Set Gin mode
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()

	// Middleware
	router.Use(recoveryMiddleware(log))
	router.Use(loggingMiddleware(log))
	router.Use(corsMiddleware())

	// Handlers
	commentHandler := NewCommentHandler(services, log)
	userHandler := NewUserHandler(services, registry, log)
	adminHandler := NewAdminHandler(services, log)

	// Health check
	router.GET("/health", healthCheck)

	api := router.Group("/api")
	{
		users := api.Group("/users")
		{
			users.POST("/register", userHandler.Register)
			users.POST("/login", userHandler.Login)
			users.POST("/logout", AuthRequired(registry, services.User), userHandler.Logout)
		}

		comments := api.Group("/comments")
		{
			comments.GET("", OptionalAuth(registry, services.User), commentHandler.List)
			comments.POST("", AuthRequired(registry, services.User), commentHandler.Create)
			comments.POST("/:comment_id/like", AuthRequired(registry, services.User), commentHandler.ToggleLike)
		}

		admin := api.Group("/admin")
		admin.Use(AuthRequired(registry, services.User), AdminRequired())
		{
			admin.POST("/create", adminHandler.CreateAdmin)
			admin.POST("/delete_comment", adminHandler.DeleteComment)
			admin.GET("/comments", adminHandler.ModerationFeed)
			admin.GET("/users", adminHandler.ListUsers)
		}
	}

	return router
}

// healthCheck returns the health status
func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "ok",
		"timestamp": time.Now().Format(time.RFC3339),
		"service":   "blog-comments-api",
	})
}

// recoveryMiddleware handles panics
func recoveryMiddleware(log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				log.Error().Interface("error", err).Msg("Panic recovered")
				c.JSON(http.StatusInternalServerError, gin.H{
					"error": "Internal server error",
				})
				c.Abort()
			}
		}()
		c.Next()
	}
}

// loggingMiddleware logs requests
func loggingMiddleware(log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path

		c.Next()

		duration := time.Since(start)
		statusCode := c.Writer.Status()

		event := log.Info()
		if statusCode >= 400 {
			event = log.Warn()
		}
		if statusCode >= 500 {
			event = log.Error()
		}

		event.
			Str("method", c.Request.Method).
			Str("path", path).
			Int("status", statusCode).
			Dur("duration", duration).
			Str("client_ip", c.ClientIP()).
			Msg("Request completed")
	}
}

// corsMiddleware handles CORS for the embedded widget
func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}
