package api

import (
	"net/http"
	"strings"
	"time"

	"github.com/club-roster-api/internal/config"
	"github.com/club-roster-api/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// NewRouter creates and configures the Gin router
func NewRouter(services *service.Services, cfg *config.Config, log zerolog.Logger) *gin.Engine {
	// Set Gin mode
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()

	// Middleware
	router.Use(recoveryMiddleware(log))
	router.Use(loggingMiddleware(log))
	router.Use(corsMiddleware())

	// Handlers
	authHandler := NewAuthHandler(services, log)
	importHandler := NewImportHandler(services, cfg, log)
	rosterHandler := NewRosterHandler(services, log)

	// Health check
	router.GET("/health", healthCheck)

	// API
	apiGroup := router.Group("/api")
	apiGroup.POST("/login", authHandler.Login)

	authed := apiGroup.Group("")
	authed.Use(authMiddleware(services.Auth))
	{
		// Members
		authed.GET("/members", rosterHandler.ListMembers)
		authed.POST("/members", rosterHandler.CreateMember)
		authed.PUT("/members/:id", rosterHandler.UpdateMember)
		authed.DELETE("/members/:id", rosterHandler.DeleteMember)
		authed.POST("/members/:id/send-welcome", rosterHandler.SendWelcome)

		// Groups
		authed.GET("/groups", rosterHandler.ListGroups)
		authed.POST("/groups", rosterHandler.CreateGroup)
		authed.PUT("/groups/:id", rosterHandler.UpdateGroup)
		authed.DELETE("/groups/:id", rosterHandler.DeleteGroup)

		// Settings
		authed.GET("/settings", rosterHandler.GetSettings)
		authed.PUT("/settings", rosterHandler.UpdateSettings)

		// Imports
		authed.POST("/imports/members", importHandler.CreateImport)
		authed.GET("/imports", importHandler.ListImports)
		authed.GET("/imports/:id", importHandler.GetImport)
	}

	return router
}

// healthCheck returns the health status
func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "healthy",
		"timestamp": time.Now().Format(time.RFC3339),
		"service":   "club-roster-api",
	})
}

// authMiddleware validates the bearer token on protected routes
func authMiddleware(auth service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		username, err := auth.VerifyToken(parts[1])
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			return
		}

		c.Set("username", username)
		c.Next()
	}
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

// corsMiddleware handles CORS
func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}
