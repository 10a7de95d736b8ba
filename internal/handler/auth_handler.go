package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/quizforge/qbank-backend/internal/middleware"
	"github.com/quizforge/qbank-backend/internal/model"
	"github.com/quizforge/qbank-backend/internal/repository"
	"github.com/quizforge/qbank-backend/internal/response"
	"github.com/quizforge/qbank-backend/internal/service"
	"github.com/quizforge/qbank-backend/internal/validator"
)

// AuthHandler handles author authentication endpoints.
type AuthHandler struct {
	authService *service.AuthService
	authorRepo  *repository.AuthorRepository
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authService *service.AuthService, authorRepo *repository.AuthorRepository) *AuthHandler {
	return &AuthHandler{authService: authService, authorRepo: authorRepo}
}

// Login godoc
// POST /api/v1/auth/login
// Authenticates an author and records the session-origin baseline.
func (h *AuthHandler) Login(c *gin.Context) {
	var req model.AuthorLoginRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	author, err := h.authorRepo.GetByEmail(c.Request.Context(), req.Email)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	if author == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrInvalidCredentials)
		return
	}

	if err := h.authService.CheckPassword(author.PasswordHash, req.Password); err != nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrInvalidCredentials)
		return
	}

	origin := model.SessionOrigin{
		ClientIP:  c.ClientIP(),
		UserAgent: c.GetHeader("User-Agent"),
	}
	token, err := h.authService.GenerateToken(c.Request.Context(), author.ID, origin)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"token":  token,
		"author": author,
	})
}

// Logout godoc
// POST /api/v1/auth/logout
// Clears the caller's session-origin baseline.
func (h *AuthHandler) Logout(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	if err := h.authService.ClearBaseline(c.Request.Context(), claims.UserID); err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "logged out"})
}
