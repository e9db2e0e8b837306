package middleware

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/amirhossein-jamali/fraud-scoring/internal/domain/entity"
	errs "github.com/amirhossein-jamali/fraud-scoring/internal/domain/error"
	"github.com/amirhossein-jamali/fraud-scoring/internal/infrastructure/adapter/api/dto"
	mocks "github.com/amirhossein-jamali/fraud-scoring/mocks/port/core"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestErrorResponse_StatusMapping(t *testing.T) {
	_, categoryErr := entity.ParseCategory("crypto")

	testCases := []struct {
		name    string
		err     error
		status  int
		message string
	}{
		{"invalid credentials", errs.ErrInvalidCredentials, http.StatusUnauthorized, "Invalid credentials"},
		{"bad token", errs.ErrUnauthorized, http.StatusUnauthorized, "Could not validate credentials"},
		{"not admin", errs.ErrAdminRequired, http.StatusForbidden, "Admin access required"},
		{"admin deletion", errs.ErrAdminDeletion, http.StatusForbidden, "Cannot delete admin user"},
		{"user not found", fmt.Errorf("load: %w", errs.ErrUserNotFound), http.StatusNotFound, "User not found"},
		{"transaction not found", errs.ErrTransactionNotFound, http.StatusNotFound, "Transaction not found"},
		{"email taken", errs.ErrEmailTaken, http.StatusConflict, "Email already registered"},
		{"username taken", errs.ErrUsernameTaken, http.StatusConflict, "Username already taken"},
		{"validation", categoryErr, http.StatusBadRequest, categoryErr.Error()},
		{"invalid amount", errs.ErrInvalidAmount, http.StatusBadRequest, errs.ErrInvalidAmount.Error()},
		{"insufficient credits", errs.NewInsufficientCreditsError(1, 10, 0), http.StatusPaymentRequired, "Insufficient credits. Fraud check requires 10 credits."},
		{"classifier", errs.NewClassifierError("predict", assert.AnError), http.StatusInternalServerError, "Error processing fraud detection request"},
		{"rate limited", errs.ErrRateLimited, http.StatusTooManyRequests, "Too many requests"},
		{"locked", errs.ErrUserLocked, http.StatusLocked, "Account is busy, retry shortly"},
		{"database", errs.ErrDatabaseConnection, http.StatusServiceUnavailable, "Service temporarily unavailable"},
		{"unknown", assert.AnError, http.StatusInternalServerError, "Internal server error"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			status, body := ErrorResponse(tc.err)
			assert.Equal(t, tc.status, status)
			assert.Equal(t, tc.message, body.Message)
			assert.Equal(t, errs.ErrorCode(tc.err), body.Code)
		})
	}
}

func serve(router *gin.Engine, method, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(method, path, nil))
	return w
}

func TestErrorHandler(t *testing.T) {
	t.Run("Renders the last attached error", func(t *testing.T) {
		log := mocks.NewMockLogger(t)
		log.On("Debug", "Request rejected", mock.MatchedBy(func(f map[string]any) bool {
			return f["status"] == http.StatusPaymentRequired && f["error_type"] == "insufficient_credits"
		})).Once()

		router := gin.New()
		router.Use(ErrorHandler(log))
		router.GET("/x", func(c *gin.Context) {
			_ = c.Error(errs.NewInsufficientCreditsError(1, 10, 3))
		})

		w := serve(router, http.MethodGet, "/x")

		assert.Equal(t, http.StatusPaymentRequired, w.Code)
		var body dto.ErrorResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, errs.CodePaymentRequired, body.Code)
	})

	t.Run("Server errors are logged at error level", func(t *testing.T) {
		log := mocks.NewMockLogger(t)
		log.On("Error", "Request failed", mock.Anything).Once()

		router := gin.New()
		router.Use(ErrorHandler(log))
		router.GET("/x", func(c *gin.Context) { _ = c.Error(assert.AnError) })

		assert.Equal(t, http.StatusInternalServerError, serve(router, http.MethodGet, "/x").Code)
	})

	t.Run("A written response is left alone", func(t *testing.T) {
		router := gin.New()
		router.Use(ErrorHandler(mocks.NewMockLogger(t)))
		router.GET("/x", func(c *gin.Context) {
			_ = c.Error(assert.AnError)
			c.JSON(http.StatusAccepted, gin.H{"ok": true})
		})

		assert.Equal(t, http.StatusAccepted, serve(router, http.MethodGet, "/x").Code)
	})

	t.Run("Panics become 500", func(t *testing.T) {
		log := mocks.NewMockLogger(t)
		log.On("Error", "Panic recovered in API request", mock.MatchedBy(func(f map[string]any) bool {
			return f["error"] == "boom"
		})).Once()

		router := gin.New()
		router.Use(ErrorHandler(log))
		router.GET("/x", func(c *gin.Context) { panic("boom") })

		w := serve(router, http.MethodGet, "/x")

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.JSONEq(t, `{"code":5000,"message":"Internal server error"}`, w.Body.String())
	})
}
