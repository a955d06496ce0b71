package middleware

import (
	"net/http"
	"strings"

	"github.com/gdugdh24/datepoint-backend/internal/domain"
	"github.com/gdugdh24/datepoint-backend/internal/usecase/auth"
	"github.com/gin-gonic/gin"
)

// UserIDKey is the gin context key holding the authenticated user id.
const UserIDKey = "user_id"

type AuthMiddleware struct {
	tokens *auth.TokenService
}

func NewAuthMiddleware(tokens *auth.TokenService) *AuthMiddleware {
	return &AuthMiddleware{tokens: tokens}
}

// RequireAuth rejects requests without a valid bearer token.
func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		scheme, token, ok := strings.Cut(header, " ")
		if !ok || !strings.EqualFold(scheme, "Bearer") {
			abort(c, domain.ErrUnauthenticated)
			return
		}

		userID, err := m.tokens.VerifyToken(strings.TrimSpace(token))
		if err != nil {
			abort(c, err)
			return
		}

		c.Set(UserIDKey, userID)
		c.Next()
	}
}

func abort(c *gin.Context, err error) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
		"error":     err.Error(),
		"code":      domain.KindUnauthenticated,
		"retryable": false,
	})
}

// UserID returns the id set by RequireAuth.
func UserID(c *gin.Context) string {
	return c.GetString(UserIDKey)
}
