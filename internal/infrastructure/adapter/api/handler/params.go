package handler

import (
	"fmt"
	"strconv"
	"time"

	errs "github.com/amirhossein-jamali/fraud-scoring/internal/domain/error"
	"github.com/amirhossein-jamali/fraud-scoring/internal/infrastructure/adapter/api/middleware"
	"github.com/gin-gonic/gin"
)

const dateOnly = "2006-01-02"

// bindError marks a request body or query that failed gin binding
func bindError(err error) error {
	return fmt.Errorf("%w: %s", errs.ErrInvalidInput, err.Error())
}

// pathID parses a positive numeric path parameter
func pathID(c *gin.Context, name string) (uint64, error) {
	raw := c.Param(name)
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		return 0, errs.NewValidationError(name, raw, "must be a positive integer", nil)
	}
	return id, nil
}

// parseDate accepts RFC3339 or a bare date. A bare end date covers the whole day.
func parseDate(field, raw string, endOfDay bool) (*time.Time, error) {
	if raw == "" {
		return nil, nil
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		t = t.UTC()
		return &t, nil
	}
	t, err := time.Parse(dateOnly, raw)
	if err != nil {
		return nil, errs.NewValidationError(field, raw, "must be RFC3339 or YYYY-MM-DD", nil)
	}
	if endOfDay {
		t = t.Add(24*time.Hour - time.Nanosecond)
	}
	return &t, nil
}

// currentUserID returns the authenticated caller
func currentUserID(c *gin.Context) (uint64, error) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		return 0, errs.ErrUnauthorized
	}
	return user.ID, nil
}
