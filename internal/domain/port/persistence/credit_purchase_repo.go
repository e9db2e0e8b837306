package persistence

import (
	"context"

	"github.com/amirhossein-jamali/fraud-scoring/internal/domain/entity"
)

// CreditPurchaseRepository stores the append-only purchase ledger
type CreditPurchaseRepository interface {
	// Create appends a purchase and assigns its ID
	//
	// Possible errors:
	// - ErrUserNotFound: If referenced user does not exist
	// - ErrDatabaseConnection: If database connection fails
	Create(ctx context.Context, purchase *entity.CreditPurchase) error

	// ListByUser returns a user's purchases, newest first
	ListByUser(ctx context.Context, userID uint64) ([]*entity.CreditPurchase, error)
}
