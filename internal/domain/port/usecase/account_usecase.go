package usecase

import (
	"context"
	"time"

	"github.com/amirhossein-jamali/fraud-scoring/internal/domain/entity"
)

// RegisterRequest carries the fields needed to open an account
type RegisterRequest struct {
	Name     string
	Email    string
	Username string
	Password string
}

// AuthResult is returned by register and login
type AuthResult struct {
	Token     string
	TokenType string
	ExpiresAt time.Time
	User      *entity.User
}

// UserStats summarises a user's fraud checks
type UserStats struct {
	TotalTransactions      int64
	FraudulentTransactions int64
	RemainingCredits       int64
	AverageProbability     float64
}

// AccountUseCase covers registration, login and the caller's own profile
type AccountUseCase interface {
	// Register creates an account and issues a token
	//
	// Possible errors:
	// - ErrEmailTaken / ErrUsernameTaken: duplicate identity
	// - ErrInvalidInput: missing fields
	Register(ctx context.Context, req RegisterRequest) (*AuthResult, error)

	// Login checks credentials and issues a token
	//
	// Possible errors:
	// - ErrInvalidCredentials: unknown email or wrong password
	Login(ctx context.Context, email, password string) (*AuthResult, error)

	// Authenticate resolves a bearer token to its user; any failure is ErrUnauthorized
	Authenticate(ctx context.Context, token string) (*entity.User, error)

	// Profile returns the user after running the credit reset check
	Profile(ctx context.Context, userID uint64) (*entity.User, error)

	// Stats aggregates the user's past predictions
	Stats(ctx context.Context, userID uint64) (*UserStats, error)

	// Transactions lists the user's past predictions
	Transactions(ctx context.Context, userID uint64, filter entity.TransactionFilter) (*entity.TransactionPage, error)
}
