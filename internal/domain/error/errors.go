package error

import (
	"errors"
	"fmt"
)

// Error codes for standardized API responses
const (
	// 4xxx - Client errors
	CodeInvalidInput        = 4000
	CodeUnauthorized        = 4010
	CodePaymentRequired     = 4020
	CodeForbidden           = 4030
	CodeUserNotFound        = 4040
	CodeTransactionNotFound = 4041
	CodeConflict            = 4090
	CodeUserLocked          = 4230
	CodeRateLimited         = 4290

	// 5xxx - Server errors
	CodeInternalServer    = 5000
	CodeClassifierFailure = 5001
	CodeDatabase          = 5030
)

// Base error types
var (
	// ErrUnauthorized is returned for missing, invalid or expired credentials
	ErrUnauthorized = errors.New("unauthorized")

	// ErrInvalidCredentials is returned when an email and password pair does not match
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrForbidden is returned when the caller is not allowed to perform the operation
	ErrForbidden = errors.New("forbidden")

	// ErrAdminRequired is returned when a non-admin calls an admin operation
	ErrAdminRequired = fmt.Errorf("%w: admin access required", ErrForbidden)

	// ErrAdminDeletion is returned when an admin account is targeted for deletion
	ErrAdminDeletion = fmt.Errorf("%w: cannot delete admin user", ErrForbidden)

	// ErrNotFound is returned when a generic resource is not found
	ErrNotFound = errors.New("resource not found")

	// ErrUserNotFound is returned when the requested user doesn't exist
	ErrUserNotFound = errors.New("user not found")

	// ErrTransactionNotFound is returned when the requested transaction doesn't exist
	ErrTransactionNotFound = errors.New("transaction not found")

	// ErrConflict is returned when a unique attribute is already taken
	ErrConflict = errors.New("conflict")

	// ErrEmailTaken is returned when registering with an email that already exists
	ErrEmailTaken = fmt.Errorf("%w: email already registered", ErrConflict)

	// ErrUsernameTaken is returned when registering with a username that already exists
	ErrUsernameTaken = fmt.Errorf("%w: username already taken", ErrConflict)

	// ErrInvalidInput is returned for schema, range or enum violations
	ErrInvalidInput = errors.New("invalid input")

	// ErrInvalidUserID is returned when the user ID is not a positive integer
	ErrInvalidUserID = fmt.Errorf("%w: user ID must be positive", ErrInvalidInput)

	// ErrInvalidAmount is returned when a purchase amount is not strictly positive
	ErrInvalidAmount = fmt.Errorf("%w: amount must be greater than zero", ErrInvalidInput)

	// ErrInvalidCategory is returned when a category is outside the supported set
	ErrInvalidCategory = fmt.Errorf("%w: unsupported category", ErrInvalidInput)

	// ErrInvalidFeature is returned when the classifier cannot encode a record field
	ErrInvalidFeature = fmt.Errorf("%w: feature cannot be encoded", ErrInvalidInput)

	// ErrNegativeCredits is returned when an operation would set a negative balance
	ErrNegativeCredits = fmt.Errorf("%w: credits cannot be negative", ErrInvalidInput)

	// ErrInsufficientCredits is returned when a user cannot pay for an operation
	ErrInsufficientCredits = errors.New("insufficient credits")

	// ErrClassifierFailure is returned when the classifier could not produce a score
	ErrClassifierFailure = errors.New("classifier failure")

	// ErrUserLocked is returned when a user row is locked by another operation
	ErrUserLocked = errors.New("user is locked by another operation")

	// ErrDatabaseConnection is returned when there's a problem talking to the database
	ErrDatabaseConnection = errors.New("database connection error")

	// ErrInternalServer is returned for unexpected server-side errors
	ErrInternalServer = errors.New("internal server error")

	// ErrShuttingDown is returned when work is submitted after shutdown started
	ErrShuttingDown = errors.New("service is shutting down")

	// ErrRateLimited is returned when a client exceeds its request budget
	ErrRateLimited = errors.New("too many requests")
)

// ErrorCode returns standardized error codes for known errors
func ErrorCode(err error) int {
	switch {
	case errors.Is(err, ErrUnauthorized), errors.Is(err, ErrInvalidCredentials):
		return CodeUnauthorized
	case errors.Is(err, ErrForbidden):
		return CodeForbidden
	case errors.Is(err, ErrUserNotFound):
		return CodeUserNotFound
	case errors.Is(err, ErrTransactionNotFound), errors.Is(err, ErrNotFound):
		return CodeTransactionNotFound
	case errors.Is(err, ErrConflict):
		return CodeConflict
	case errors.Is(err, ErrInvalidInput):
		return CodeInvalidInput
	case errors.Is(err, ErrInsufficientCredits):
		return CodePaymentRequired
	case errors.Is(err, ErrUserLocked):
		return CodeUserLocked
	case errors.Is(err, ErrRateLimited):
		return CodeRateLimited
	case errors.Is(err, ErrClassifierFailure):
		return CodeClassifierFailure
	case errors.Is(err, ErrDatabaseConnection):
		return CodeDatabase
	default:
		return CodeInternalServer
	}
}

// InsufficientCreditsError provides detailed error information for a failed debit
type InsufficientCreditsError struct {
	UserID    uint64
	Required  int64
	Available int64
}

// Error implements the error interface
func (e *InsufficientCreditsError) Error() string {
	return fmt.Sprintf("insufficient credits for user %d: required %d, available %d",
		e.UserID, e.Required, e.Available)
}

// Is checks if the target error is an ErrInsufficientCredits
func (e *InsufficientCreditsError) Is(target error) bool {
	return target == ErrInsufficientCredits
}

// LogFields returns a map of fields for structured logging
func (e *InsufficientCreditsError) LogFields() map[string]any {
	return map[string]any{
		"error_type": "insufficient_credits",
		"user_id":    e.UserID,
		"required":   e.Required,
		"available":  e.Available,
		"error_code": CodePaymentRequired,
	}
}

// NewInsufficientCreditsError creates a new detailed insufficient credits error
func NewInsufficientCreditsError(userID uint64, required, available int64) error {
	return &InsufficientCreditsError{
		UserID:    userID,
		Required:  required,
		Available: available,
	}
}

// ConflictError names the unique attribute a write collided with
type ConflictError struct {
	Field string
	Value string
	Err   error
}

// Error implements the error interface for ConflictError
func (e *ConflictError) Error() string {
	return fmt.Sprintf("%s %q: %v", e.Field, e.Value, e.Err)
}

// Unwrap returns the underlying sentinel
func (e *ConflictError) Unwrap() error {
	return e.Err
}

// Is matches ErrConflict even when the wrapped sentinel is more specific
func (e *ConflictError) Is(target error) bool {
	return target == ErrConflict
}

// LogFields returns a map of fields for structured logging
func (e *ConflictError) LogFields() map[string]any {
	return map[string]any{
		"error_type": "conflict",
		"field":      e.Field,
		"value":      e.Value,
		"error_code": CodeConflict,
	}
}

// NewConflictError wraps ErrEmailTaken, ErrUsernameTaken or ErrConflict with the clashing value
func NewConflictError(field, value string, err error) error {
	if err == nil {
		err = ErrConflict
	}
	return &ConflictError{Field: field, Value: value, Err: err}
}

// ValidationError describes which field of a request failed validation
type ValidationError struct {
	Field  string
	Value  any
	Reason string
	Err    error
}

// Error implements the error interface for ValidationError
func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed for %s: %s", e.Field, e.Reason)
}

// Unwrap returns the underlying error
func (e *ValidationError) Unwrap() error {
	return e.Err
}

// LogFields returns a map of fields for structured logging
func (e *ValidationError) LogFields() map[string]any {
	return map[string]any{
		"error_type": "validation_error",
		"field":      e.Field,
		"value":      e.Value,
		"reason":     e.Reason,
		"error_code": ErrorCode(e.Err),
	}
}

// NewValidationError creates a validation error wrapping one of the invalid input sentinels
func NewValidationError(field string, value any, reason string, err error) error {
	if err == nil {
		err = ErrInvalidInput
	}
	return &ValidationError{
		Field:  field,
		Value:  value,
		Reason: reason,
		Err:    err,
	}
}

// ClassifierError wraps a failure raised while scoring a record
type ClassifierError struct {
	Stage string
	Err   error
}

// Error implements the error interface for ClassifierError
func (e *ClassifierError) Error() string {
	return fmt.Sprintf("classifier failed during %s: %v", e.Stage, e.Err)
}

// Unwrap returns the underlying error
func (e *ClassifierError) Unwrap() error {
	return e.Err
}

// Is reports classifier failures unless the cause is an invalid feature
func (e *ClassifierError) Is(target error) bool {
	return target == ErrClassifierFailure && !errors.Is(e.Err, ErrInvalidFeature)
}

// LogFields returns a map of fields for structured logging
func (e *ClassifierError) LogFields() map[string]any {
	return map[string]any{
		"error_type": "classifier_error",
		"stage":      e.Stage,
		"error":      e.Err.Error(),
		"error_code": ErrorCode(e),
	}
}

// NewClassifierError creates a classifier error for the given stage
func NewClassifierError(stage string, err error) error {
	return &ClassifierError{Stage: stage, Err: err}
}

// IsUnauthorizedError checks if the error should be surfaced as an auth failure
func IsUnauthorizedError(err error) bool {
	return errors.Is(err, ErrUnauthorized) || errors.Is(err, ErrInvalidCredentials)
}

// IsInsufficientCreditsError checks if the error is related to insufficient credits
func IsInsufficientCreditsError(err error) bool {
	return errors.Is(err, ErrInsufficientCredits)
}

// IsUserNotFoundError checks if the error is a user not found error
func IsUserNotFoundError(err error) bool {
	return errors.Is(err, ErrUserNotFound)
}

// IsNotFoundError checks if the error is any "not found" type of error
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound) ||
		errors.Is(err, ErrUserNotFound) ||
		errors.Is(err, ErrTransactionNotFound)
}

// IsConflictError checks if the error is a uniqueness conflict
func IsConflictError(err error) bool {
	return errors.Is(err, ErrConflict)
}

// IsInvalidInputError checks if the error is a validation failure
func IsInvalidInputError(err error) bool {
	return errors.Is(err, ErrInvalidInput)
}

// IsForbiddenError checks if the error is a permission denial
func IsForbiddenError(err error) bool {
	return errors.Is(err, ErrForbidden)
}

// IsClassifierFailure checks if the error comes from the scoring step
func IsClassifierFailure(err error) bool {
	return errors.Is(err, ErrClassifierFailure)
}
