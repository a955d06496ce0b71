package handler

import (
	"net/http"
	"time"

	"github.com/gdugdh24/datepoint-backend/internal/delivery/http/middleware"
	"github.com/gdugdh24/datepoint-backend/internal/domain"
	"github.com/gdugdh24/datepoint-backend/internal/usecase/auth"
	"github.com/gdugdh24/datepoint-backend/internal/usecase/profile"
	"github.com/gin-gonic/gin"
)

const tokenTTL = 24 * time.Hour

type AuthHandler struct {
	tokens   *auth.TokenService
	profiles *profile.ProfileUseCase
}

func NewAuthHandler(tokens *auth.TokenService, profiles *profile.ProfileUseCase) *AuthHandler {
	return &AuthHandler{
		tokens:   tokens,
		profiles: profiles,
	}
}

// AuthResponse is the response structure
type AuthResponse struct {
	Token     string `json:"token"`
	ExpiresAt int64  `json:"expires_at"`
	UserID    string `json:"user_id"`
}

// Refresh handles POST /auth/refresh
// @Summary Refresh session
// @Description Exchange a valid bearer token for a fresh one and mark the user active
// @Tags auth
// @Security BearerAuth
// @Produce json
// @Success 200 {object} AuthResponse
// @Failure 401 {object} ErrorResponse
// @Router /auth/refresh [post]
func (h *AuthHandler) Refresh(c *gin.Context) {
	userID := middleware.UserID(c)
	if userID == "" {
		respondError(c, domain.ErrUnauthenticated)
		return
	}

	token, expiresAt, err := h.tokens.IssueToken(userID, tokenTTL)
	if err != nil {
		respondError(c, domain.Dependency("failed to issue token", err))
		return
	}
	h.profiles.MarkActive(c.Request.Context(), userID)

	c.JSON(http.StatusOK, AuthResponse{
		Token:     token,
		ExpiresAt: expiresAt.Unix(),
		UserID:    userID,
	})
}

// Me handles GET /auth/me
func (h *AuthHandler) Me(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"user_id": middleware.UserID(c),
	})
}
