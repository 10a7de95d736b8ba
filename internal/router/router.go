package router

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/quizforge/qbank-backend/internal/config"
	"github.com/quizforge/qbank-backend/internal/handler"
	"github.com/quizforge/qbank-backend/internal/middleware"
	"github.com/quizforge/qbank-backend/internal/response"
	"github.com/quizforge/qbank-backend/internal/service"
)

// Handlers groups all handler instances for route setup.
type Handlers struct {
	Auth     *handler.AuthHandler
	Question *handler.QuestionHandler
	Monitor  *handler.MonitorHandler
}

// SetupRouter configures all Gin route groups with appropriate middlewares.
func SetupRouter(
	authService *service.AuthService,
	handlers *Handlers,
	cfg *config.Config,
) *gin.Engine {
	gin.SetMode(cfg.GinMode)
	router := gin.Default()

	// ─── CORS ──────────────────────────────────────────────────────────
	// If AllowedOrigins is set in config, restrict to that list;
	// otherwise allow all (*) so dev works without extra config.
	corsConfig := cors.DefaultConfig()
	if len(cfg.AllowedOrigins) > 0 {
		corsConfig.AllowOrigins = cfg.AllowedOrigins
	} else {
		corsConfig.AllowAllOrigins = true
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Authorization", "X-Request-ID"}
	corsConfig.ExposeHeaders = []string{"X-Request-ID"}
	corsConfig.MaxAge = 12 * time.Hour
	router.Use(cors.New(corsConfig))

	// Apply request ID middleware globally so every response includes metadata.
	router.Use(response.RequestIDMiddleware())

	// Health check.
	router.GET("/health", func(c *gin.Context) {
		response.Success(c, http.StatusOK, gin.H{"status": "ok"})
	})

	// ─── 1. Auth Group (Public) ────────────────────────────────────────
	auth := router.Group("/api/v1/auth")
	{
		auth.POST("/login", handlers.Auth.Login)
		auth.POST("/logout", middleware.RequireAuthorJWT(authService), handlers.Auth.Logout)
	}

	// ─── 2. Author Group (JWT) ─────────────────────────────────────────
	// The write-path rate limiter lives inside the upsert pipeline, not
	// here: throttling is per identity and bank, not per IP.
	authorAPI := router.Group("/api/v1/author")
	authorAPI.Use(middleware.RequireAuthorJWT(authService))
	{
		authorAPI.PUT("/banks/:bank_id/questions", handlers.Question.UpsertQuestion)
		authorAPI.GET("/banks/:bank_id/questions", handlers.Question.ListQuestions)
		authorAPI.GET("/banks/:bank_id/questions/:source_id", handlers.Question.GetQuestion)
	}

	// ─── 3. WebSocket Group (WS Auth) ──────────────────────────────────
	wsGroup := router.Group("/ws/v1")
	wsGroup.Use(middleware.RequireAuthorWSAuth(authService))
	{
		wsGroup.GET("/monitor/audit", handlers.Monitor.AuditStream)
	}

	return router
}
