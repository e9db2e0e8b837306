package usecase

import (
	"context"

	"github.com/amirhossein-jamali/fraud-scoring/internal/domain/entity"
)

// SystemStats is the admin dashboard summary
type SystemStats struct {
	TotalUsers        int64
	TotalTransactions int64
	FraudTransactions int64
}

// AdminUseCase holds operations reserved for administrators
type AdminUseCase interface {
	ListUsers(ctx context.Context) ([]*entity.User, error)

	// SetCredits overwrites a user's balance
	//
	// Possible errors:
	// - ErrUserNotFound: user doesn't exist
	// - ErrNegativeCredits: credits below zero
	SetCredits(ctx context.Context, userID uint64, credits int64) (*entity.User, error)

	// DeleteUser removes a non-admin account
	//
	// Possible errors:
	// - ErrUserNotFound: user doesn't exist
	// - ErrAdminDeletion: target is an admin
	DeleteUser(ctx context.Context, userID uint64) error

	Stats(ctx context.Context) (*SystemStats, error)
}
