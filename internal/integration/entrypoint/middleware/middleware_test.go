package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/finance-tracker/recurring/internal/application/adapter"
	domainerror "github.com/finance-tracker/recurring/internal/domain/error"
)

type stubValidator struct {
	userID uuid.UUID
}

func (s *stubValidator) ValidateAccessToken(_ context.Context, token string) (*adapter.TokenClaims, error) {
	switch token {
	case "good":
	case "expired":
		return nil, domainerror.ErrExpiredToken
	default:
		return nil, errors.New("invalid")
	}
	return &adapter.TokenClaims{UserID: s.userID, Email: "user@example.com"}, nil
}

func init() {
	gin.SetMode(gin.TestMode)
}

func TestAuthMiddleware(t *testing.T) {
	userID := uuid.New()
	auth := NewAuthMiddleware(&stubValidator{userID: userID})

	router := gin.New()
	router.GET("/me", auth.Authenticate(), func(c *gin.Context) {
		id, _ := GetUserIDFromContext(c)
		email, _ := GetUserEmailFromContext(c)
		c.JSON(http.StatusOK, gin.H{"id": id.String(), "email": email})
	})

	tests := []struct {
		name       string
		header     string
		wantStatus int
		wantCode   domainerror.AuthErrorCode
	}{
		{name: "missing header", header: "", wantStatus: http.StatusUnauthorized, wantCode: domainerror.ErrCodeMissingToken},
		{name: "wrong scheme", header: "Basic abc", wantStatus: http.StatusUnauthorized, wantCode: domainerror.ErrCodeInvalidToken},
		{name: "empty token", header: "Bearer ", wantStatus: http.StatusUnauthorized, wantCode: domainerror.ErrCodeMissingToken},
		{name: "invalid token", header: "Bearer bad", wantStatus: http.StatusUnauthorized, wantCode: domainerror.ErrCodeInvalidToken},
		{name: "expired token", header: "Bearer expired", wantStatus: http.StatusUnauthorized, wantCode: domainerror.ErrCodeExpiredToken},
		{name: "valid token", header: "Bearer good", wantStatus: http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/me", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			if w.Code != tt.wantStatus {
				t.Errorf("expected status %d, got %d", tt.wantStatus, w.Code)
			}
			if tt.wantCode != "" && !strings.Contains(w.Body.String(), string(tt.wantCode)) {
				t.Errorf("expected code %s in body, got %s", tt.wantCode, w.Body.String())
			}
		})
	}
}

func TestRateLimiter(t *testing.T) {
	t.Run("limits each key independently", func(t *testing.T) {
		rl := NewRateLimiter(1, 2)

		if !rl.allow("a") || !rl.allow("a") {
			t.Fatal("expected burst of 2 to be allowed")
		}
		if rl.allow("a") {
			t.Error("expected third request to be limited")
		}
		if !rl.allow("b") {
			t.Error("expected other key to be allowed")
		}
	})

	t.Run("reset clears state", func(t *testing.T) {
		rl := NewRateLimiter(1, 1)
		rl.allow("a")
		rl.Reset()
		if !rl.allow("a") {
			t.Error("expected request after reset to be allowed")
		}
	})

	t.Run("idle keys are evicted", func(t *testing.T) {
		rl := NewRateLimiter(1, 1)
		rl.allow("a")
		rl.allow("b")

		rl.mu.Lock()
		rl.entries["a"].lastSeen = time.Now().Add(-11 * time.Minute)
		rl.mu.Unlock()

		if evicted := rl.evictIdle(time.Now()); evicted != 1 {
			t.Errorf("expected 1 evicted key, got %d", evicted)
		}
		if size := rl.Size(); size != 1 {
			t.Errorf("expected 1 remaining key, got %d", size)
		}
		rl.mu.Lock()
		_, stillThere := rl.entries["a"]
		rl.mu.Unlock()
		if stillThere {
			t.Error("expected idle key to be gone")
		}

		rl.Cleanup()
		if size := rl.Size(); size != 1 {
			t.Errorf("expected active key to survive cleanup, got %d keys", size)
		}
	})

	t.Run("middleware answers 429", func(t *testing.T) {
		rl := NewRateLimiter(1, 1)
		router := gin.New()
		router.POST("/trigger", rl.Middleware(), func(c *gin.Context) {
			c.Status(http.StatusAccepted)
		})

		codes := make([]int, 0, 2)
		for i := 0; i < 2; i++ {
			w := httptest.NewRecorder()
			router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/trigger", nil))
			codes = append(codes, w.Code)
		}

		if codes[0] != http.StatusAccepted {
			t.Errorf("expected first request accepted, got %d", codes[0])
		}
		if codes[1] != http.StatusTooManyRequests {
			t.Errorf("expected second request limited, got %d", codes[1])
		}
	})
}
