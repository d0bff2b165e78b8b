package middleware

import (
	"errors"
	"net/http"

	"github.com/Abhisheksinghchauhan192/AuthenticationProject/internal/app/models/dto"
	"github.com/Abhisheksinghchauhan192/AuthenticationProject/internal/pkg/apperrors"
	"github.com/Abhisheksinghchauhan192/AuthenticationProject/internal/pkg/auth"
	"github.com/gin-gonic/gin"
)

// Context keys set by SessionGuard
const (
	ContextUserID = "userID"
	ContextEmail  = "email"
)

// TokenVerifier checks session tokens
type TokenVerifier interface {
	Verify(token string) (*auth.Claims, error)
}

// AuthMiddleware guards routes with the session cookie
type AuthMiddleware struct {
	tokens     TokenVerifier
	cookieName string
}

// NewAuthMiddleware creates a new AuthMiddleware
func NewAuthMiddleware(tokens TokenVerifier, cookieName string) *AuthMiddleware {
	return &AuthMiddleware{
		tokens:     tokens,
		cookieName: cookieName,
	}
}

// SessionGuard rejects requests without a valid session cookie.
// It only inspects the token and never touches storage.
func (m *AuthMiddleware) SessionGuard() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(m.cookieName)
		if err != nil || token == "" {
			errorDetail := dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Access denied, no token provided")
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponse(errorDetail))
			return
		}

		claims, err := m.tokens.Verify(token)
		if err != nil {
			errorDetail := dto.NewErrorDetail(dto.ErrorCodeInvalidToken, "Authentication failed")
			if errors.Is(err, apperrors.ErrTokenExpired) {
				errorDetail = dto.NewErrorDetail(dto.ErrorCodeExpiredToken, "Token expired, please login again.")
			}

			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponse(errorDetail))
			return
		}

		c.Set(ContextUserID, claims.UserID)
		c.Set(ContextEmail, claims.Email)

		c.Next()
	}
}

// GetUserID returns the authenticated user id set by SessionGuard
func GetUserID(c *gin.Context) (int64, bool) {
	v, ok := c.Get(ContextUserID)
	if !ok {
		return 0, false
	}
	id, ok := v.(int64)
	return id, ok && id > 0
}
