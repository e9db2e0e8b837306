package usecase

import (
	"context"

	"github.com/amirhossein-jamali/fraud-scoring/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// PurchaseResult is the outcome of a credit purchase
type PurchaseResult struct {
	Purchase *entity.CreditPurchase
	Credits  int64
}

// LedgerUseCase manages per-user credit balances
type LedgerUseCase interface {
	// CheckAndReset restores the default allowance when the reset window elapsed
	CheckAndReset(ctx context.Context, userID uint64) (*entity.User, error)

	// ResetIfDue does the same as CheckAndReset for callers that already
	// hold the user's sequencer slot
	ResetIfDue(ctx context.Context, userID uint64) (*entity.User, error)

	// Purchase converts dollars to credits and appends a purchase record
	//
	// Possible errors:
	// - ErrInvalidAmount: amount is not strictly positive
	// - ErrUserNotFound: user doesn't exist
	Purchase(ctx context.Context, userID uint64, amount decimal.Decimal) (*PurchaseResult, error)

	// Balance returns the credits after the reset check
	Balance(ctx context.Context, userID uint64) (int64, error)

	// History returns the user's purchases, newest first
	History(ctx context.Context, userID uint64) ([]*entity.CreditPurchase, error)
}
