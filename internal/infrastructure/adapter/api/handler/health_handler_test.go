package handler_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/amirhossein-jamali/fraud-scoring/internal/domain/port/ml"
	"github.com/amirhossein-jamali/fraud-scoring/internal/infrastructure/adapter/api/dto"
	"github.com/amirhossein-jamali/fraud-scoring/internal/infrastructure/adapter/api/handler"
	"github.com/amirhossein-jamali/fraud-scoring/internal/infrastructure/adapter/logger"
	mlmocks "github.com/amirhossein-jamali/fraud-scoring/mocks/port/ml"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

type pingFunc func(ctx context.Context) error

func (f pingFunc) Ping(ctx context.Context) error { return f(ctx) }

func TestHealthHandler(t *testing.T) {
	classifier := mlmocks.NewMockClassifier(t)
	classifier.On("Mode").Maybe().Return(ml.ModeFallback)
	classifier.On("Version").Maybe().Return("synthetic-v1")

	serve := func(db handler.Pinger, path string) *httptest.ResponseRecorder {
		h := handler.NewHealthHandler(db, classifier, logger.NewNoopLogger())
		router := gin.New()
		router.GET("/", h.Root)
		router.GET("/health", h.Health)

		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
		return w
	}
	healthy := pingFunc(func(context.Context) error { return nil })

	t.Run("Root", func(t *testing.T) {
		w := serve(healthy, "/")
		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"status":"ok","service":"fraud-backend"}`, w.Body.String())
	})

	t.Run("Healthy", func(t *testing.T) {
		w := serve(healthy, "/health")
		assert.Equal(t, http.StatusOK, w.Code)
		resp := decode[dto.HealthResponse](t, w)
		assert.Equal(t, "ok", resp.Database)
		assert.Equal(t, "fallback", resp.ModelMode)
		assert.Equal(t, "synthetic-v1", resp.ModelVersion)
	})

	t.Run("Database down", func(t *testing.T) {
		w := serve(pingFunc(func(context.Context) error { return errors.New("closed") }), "/health")
		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
		assert.Equal(t, "degraded", decode[dto.HealthResponse](t, w).Status)
	})
}
