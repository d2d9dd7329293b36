// Package middleware provides HTTP middleware for the API endpoints.
package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/finance-tracker/recurring/internal/application/adapter"
	domainerror "github.com/finance-tracker/recurring/internal/domain/error"
	"github.com/finance-tracker/recurring/internal/integration/entrypoint/dto"
)

// ContextKey is a type for context keys.
type ContextKey string

const (
	// UserIDKey is the context key for the authenticated user's ID.
	UserIDKey ContextKey = "user_id"
	// UserEmailKey is the context key for the authenticated user's email.
	UserEmailKey ContextKey = "user_email"
)

// AuthMiddleware provides JWT authentication middleware.
type AuthMiddleware struct {
	validator adapter.TokenValidator
}

// NewAuthMiddleware creates a new auth middleware instance.
func NewAuthMiddleware(validator adapter.TokenValidator) *AuthMiddleware {
	return &AuthMiddleware{
		validator: validator,
	}
}

// Authenticate returns a Gin middleware handler that enforces JWT authentication.
func (m *AuthMiddleware) Authenticate() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			abortUnauthorized(c, "Authorization header is required", domainerror.ErrCodeMissingToken)
			return
		}

		if !strings.HasPrefix(authHeader, "Bearer ") {
			abortUnauthorized(c, "Invalid authorization header format", domainerror.ErrCodeInvalidToken)
			return
		}

		token := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
		if token == "" {
			abortUnauthorized(c, "Token is required", domainerror.ErrCodeMissingToken)
			return
		}

		claims, err := m.validator.ValidateAccessToken(c.Request.Context(), token)
		if errors.Is(err, domainerror.ErrExpiredToken) {
			abortUnauthorized(c, "Token has expired", domainerror.ErrCodeExpiredToken)
			return
		}
		if err != nil {
			abortUnauthorized(c, "Invalid token", domainerror.ErrCodeInvalidToken)
			return
		}

		c.Set(string(UserIDKey), claims.UserID)
		c.Set(string(UserEmailKey), claims.Email)

		c.Next()
	}
}

func abortUnauthorized(c *gin.Context, message string, code domainerror.AuthErrorCode) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, dto.ErrorResponse{
		Error: message,
		Code:  string(code),
	})
}

// GetUserIDFromContext extracts the user ID from the Gin context.
func GetUserIDFromContext(c *gin.Context) (uuid.UUID, bool) {
	userID, exists := c.Get(string(UserIDKey))
	if !exists {
		return uuid.Nil, false
	}
	id, ok := userID.(uuid.UUID)
	return id, ok
}

// GetUserEmailFromContext extracts the user email from the Gin context.
func GetUserEmailFromContext(c *gin.Context) (string, bool) {
	email, exists := c.Get(string(UserEmailKey))
	if !exists {
		return "", false
	}
	emailStr, ok := email.(string)
	return emailStr, ok
}
