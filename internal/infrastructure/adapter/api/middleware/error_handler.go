package middleware

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/amirhossein-jamali/fraud-scoring/internal/domain/entity"
	errs "github.com/amirhossein-jamali/fraud-scoring/internal/domain/error"
	coreport "github.com/amirhossein-jamali/fraud-scoring/internal/domain/port/core"
	"github.com/amirhossein-jamali/fraud-scoring/internal/infrastructure/adapter/api/dto"
	"github.com/gin-gonic/gin"
)

// loggable is implemented by typed domain errors
type loggable interface {
	LogFields() map[string]any
}

// ErrorHandler recovers from panics and renders the last error a handler
// attached with c.Error as a {code, message} body
func ErrorHandler(logger coreport.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				logger.Error("Panic recovered in API request", map[string]any{
					"error":      fmt.Sprint(err),
					"path":       c.Request.URL.Path,
					"method":     c.Request.Method,
					"client_ip":  c.ClientIP(),
					"request_id": RequestIDFrom(c),
					"user_agent": c.Request.UserAgent(),
				})

				c.AbortWithStatusJSON(http.StatusInternalServerError, dto.ErrorResponse{
					Code:    errs.ErrorCode(errs.ErrInternalServer),
					Message: "Internal server error",
				})
			}
		}()

		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}

		err := c.Errors.Last().Err
		status, body := ErrorResponse(err)

		fields := map[string]any{
			"path":       c.Request.URL.Path,
			"method":     c.Request.Method,
			"status":     status,
			"request_id": RequestIDFrom(c),
			"error":      err.Error(),
		}
		var typed loggable
		if errors.As(err, &typed) {
			for k, v := range typed.LogFields() {
				fields[k] = v
			}
		}
		if status >= http.StatusInternalServerError {
			logger.Error("Request failed", fields)
		} else {
			logger.Debug("Request rejected", fields)
		}

		c.AbortWithStatusJSON(status, body)
	}
}

// ErrorResponse maps a domain error to its HTTP status and response body
func ErrorResponse(err error) (int, dto.ErrorResponse) {
	status, message := statusAndMessage(err)
	return status, dto.ErrorResponse{Code: errs.ErrorCode(err), Message: message}
}

func statusAndMessage(err error) (int, string) {
	var validation *errs.ValidationError

	switch {
	case errors.Is(err, errs.ErrInvalidCredentials):
		return http.StatusUnauthorized, "Invalid credentials"
	case errors.Is(err, errs.ErrUnauthorized):
		return http.StatusUnauthorized, "Could not validate credentials"
	case errors.Is(err, errs.ErrAdminRequired):
		return http.StatusForbidden, "Admin access required"
	case errors.Is(err, errs.ErrAdminDeletion):
		return http.StatusForbidden, "Cannot delete admin user"
	case errors.Is(err, errs.ErrForbidden):
		return http.StatusForbidden, "Forbidden"
	case errors.Is(err, errs.ErrUserNotFound):
		return http.StatusNotFound, "User not found"
	case errors.Is(err, errs.ErrTransactionNotFound):
		return http.StatusNotFound, "Transaction not found"
	case errors.Is(err, errs.ErrNotFound):
		return http.StatusNotFound, "Resource not found"
	case errors.Is(err, errs.ErrEmailTaken):
		return http.StatusConflict, "Email already registered"
	case errors.Is(err, errs.ErrUsernameTaken):
		return http.StatusConflict, "Username already taken"
	case errors.Is(err, errs.ErrConflict):
		return http.StatusConflict, "Resource already exists"
	case errors.As(err, &validation):
		return http.StatusBadRequest, validation.Error()
	case errors.Is(err, errs.ErrInvalidInput):
		return http.StatusBadRequest, err.Error()
	case errors.Is(err, errs.ErrInsufficientCredits):
		return http.StatusPaymentRequired, fmt.Sprintf("Insufficient credits. Fraud check requires %d credits.", entity.PredictionCost)
	case errors.Is(err, errs.ErrClassifierFailure):
		return http.StatusInternalServerError, "Error processing fraud detection request"
	case errors.Is(err, errs.ErrRateLimited):
		return http.StatusTooManyRequests, "Too many requests"
	case errors.Is(err, errs.ErrUserLocked):
		return http.StatusLocked, "Account is busy, retry shortly"
	case errors.Is(err, errs.ErrDatabaseConnection), errors.Is(err, errs.ErrShuttingDown):
		return http.StatusServiceUnavailable, "Service temporarily unavailable"
	default:
		return http.StatusInternalServerError, "Internal server error"
	}
}
