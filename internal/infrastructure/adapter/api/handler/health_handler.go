package handler

import (
	"context"
	"net/http"

	coreport "github.com/amirhossein-jamali/fraud-scoring/internal/domain/port/core"
	"github.com/amirhossein-jamali/fraud-scoring/internal/domain/port/ml"
	"github.com/amirhossein-jamali/fraud-scoring/internal/infrastructure/adapter/api/dto"
	"github.com/gin-gonic/gin"
)

// ServiceName is reported by the root endpoint
const ServiceName = "fraud-backend"

// Pinger checks that a dependency answers
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthHandler reports liveness and dependency status
type HealthHandler struct {
	db         Pinger
	classifier ml.Classifier
	logger     coreport.Logger
}

// NewHealthHandler creates a new health handler instance
func NewHealthHandler(db Pinger, classifier ml.Classifier, logger coreport.Logger) *HealthHandler {
	return &HealthHandler{db: db, classifier: classifier, logger: logger}
}

// Root handles the GET / endpoint
func (h *HealthHandler) Root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok", "service": ServiceName})
}

// Health handles the GET /health endpoint
func (h *HealthHandler) Health(c *gin.Context) {
	resp := dto.HealthResponse{
		Status:       "ok",
		Database:     "ok",
		ModelMode:    string(h.classifier.Mode()),
		ModelVersion: h.classifier.Version(),
	}

	status := http.StatusOK
	if err := h.db.Ping(c.Request.Context()); err != nil {
		h.logger.Error("Health check failed", map[string]any{"error": err.Error()})
		resp.Status = "degraded"
		resp.Database = "unavailable"
		status = http.StatusServiceUnavailable
	}
	c.JSON(status, resp)
}
