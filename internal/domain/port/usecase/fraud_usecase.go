package usecase

import (
	"context"

	"github.com/amirhossein-jamali/fraud-scoring/internal/domain/entity"
)

// PredictionResult is a scored and paid fraud check
type PredictionResult struct {
	Transaction      *entity.Transaction
	RemainingCredits int64
	// Submitted is the request as received, before normalization
	Submitted entity.TransactionInput
}

// FraudUseCase runs credit-gated fraud checks
type FraudUseCase interface {
	// Predict scores a transaction and debits the fixed cost on success
	//
	// Possible errors:
	// - ErrInsufficientCredits: fewer credits than the cost
	// - ErrInvalidInput: the payload failed normalization
	// - ErrClassifierFailure: no score could be produced; nothing was debited
	Predict(ctx context.Context, userID uint64, input entity.TransactionInput) (*PredictionResult, error)

	// SubmitFeedback records the user's verdict on one of their predictions
	//
	// Possible errors:
	// - ErrTransactionNotFound: unknown record or owned by another user
	SubmitFeedback(ctx context.Context, userID, transactionID uint64, correct bool, notes *string) (*entity.Transaction, error)
}
