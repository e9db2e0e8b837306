package persistence

import (
	"context"

	"github.com/amirhossein-jamali/fraud-scoring/internal/domain/entity"
)

// TransactionRepository stores scored prediction records
type TransactionRepository interface {
	// Create saves a new prediction record
	//
	// Possible errors:
	// - ErrUserNotFound: If referenced user does not exist
	// - ErrDatabaseConnection: If database connection fails
	Create(ctx context.Context, transaction *entity.Transaction) error

	// GetByIDForUser retrieves a record owned by the given user
	//
	// Possible errors:
	// - ErrTransactionNotFound: If the record doesn't exist or belongs to someone else
	GetByIDForUser(ctx context.Context, id, userID uint64) (*entity.Transaction, error)

	// UpdateFeedback stores the feedback fields of a record
	//
	// Possible errors:
	// - ErrTransactionNotFound: If the record doesn't exist
	UpdateFeedback(ctx context.Context, transaction *entity.Transaction) error

	// ListByUser returns one page of a user's records, newest first
	ListByUser(ctx context.Context, userID uint64, filter entity.TransactionFilter) (*entity.TransactionPage, error)

	// StatsByUser aggregates a user's records
	StatsByUser(ctx context.Context, userID uint64) (*entity.TransactionStats, error)

	// Stats aggregates every record in the system
	Stats(ctx context.Context) (*entity.TransactionStats, error)
}
