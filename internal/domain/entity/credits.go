package entity

import (
	"fmt"
	"math"
	"time"

	errs "github.com/amirhossein-jamali/fraud-scoring/internal/domain/error"
	"github.com/shopspring/decimal"
)

const (
	// DefaultCredits is granted at registration and restored by every reset
	DefaultCredits int64 = 100
	// CreditResetInterval is the minimum time between two resets
	CreditResetInterval = 5 * 24 * time.Hour
	// CreditsPerDollar is the purchase exchange rate
	CreditsPerDollar int64 = 20
	// PredictionCost is debited for every successful fraud check
	PredictionCost int64 = 10

	maxCredits = math.MaxInt64
)

// CreditsForPurchase converts a dollar amount into credits, rounding down.
// The amount must be strictly positive.
func CreditsForPurchase(amount decimal.Decimal) (int64, error) {
	if !amount.IsPositive() {
		return 0, errs.ErrInvalidAmount
	}

	credits := amount.Mul(decimal.NewFromInt(CreditsPerDollar)).Floor()
	if credits.GreaterThan(decimal.NewFromInt(maxCredits)) {
		return 0, fmt.Errorf("%w: amount %s is too large", errs.ErrInvalidAmount, amount.String())
	}
	return credits.IntPart(), nil
}

// CreditPurchase is an immutable record of a paid top-up
type CreditPurchase struct {
	ID           uint64
	UserID       uint64
	Amount       decimal.Decimal
	CreditsAdded int64
	CreatedAt    time.Time
}

// NewCreditPurchase prices a purchase for the given user
func NewCreditPurchase(userID uint64, amount decimal.Decimal, now time.Time) (*CreditPurchase, error) {
	if userID == 0 {
		return nil, errs.ErrInvalidUserID
	}
	credits, err := CreditsForPurchase(amount)
	if err != nil {
		return nil, err
	}
	return &CreditPurchase{
		UserID:       userID,
		Amount:       amount,
		CreditsAdded: credits,
		CreatedAt:    now,
	}, nil
}
