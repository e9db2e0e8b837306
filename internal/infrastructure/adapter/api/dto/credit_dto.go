package dto

import (
	"fmt"
	"time"

	"github.com/amirhossein-jamali/fraud-scoring/internal/domain/entity"
	"github.com/amirhossein-jamali/fraud-scoring/internal/domain/port/usecase"
	"github.com/shopspring/decimal"
)

// PurchaseRequest represents the API request for buying credits.
// Amount accepts a JSON number or a numeric string.
type PurchaseRequest struct {
	Amount decimal.Decimal `json:"amount"`
}

// PurchaseResponse represents the API response for a completed purchase
type PurchaseResponse struct {
	Message      string `json:"message"`
	CreditsAdded int64  `json:"credits_added"`
	Credits      int64  `json:"credits"`
}

// NewPurchaseResponse maps a purchase result
func NewPurchaseResponse(result *usecase.PurchaseResult) PurchaseResponse {
	return PurchaseResponse{
		Message:      fmt.Sprintf("Successfully purchased %d credits", result.Purchase.CreditsAdded),
		CreditsAdded: result.Purchase.CreditsAdded,
		Credits:      result.Credits,
	}
}

// BalanceResponse represents the API response for a user's credit balance
type BalanceResponse struct {
	Credits int64 `json:"credits"`
}

// CreditPurchaseResponse is one entry of the purchase history
type CreditPurchaseResponse struct {
	ID           uint64    `json:"id"`
	Amount       float64   `json:"amount"`
	CreditsAdded int64     `json:"credits_added"`
	CreatedAt    time.Time `json:"created_at"`
}

// NewCreditPurchaseResponses maps the purchase history
func NewCreditPurchaseResponses(purchases []*entity.CreditPurchase) []CreditPurchaseResponse {
	out := make([]CreditPurchaseResponse, 0, len(purchases))
	for _, p := range purchases {
		out = append(out, CreditPurchaseResponse{
			ID:           p.ID,
			Amount:       p.Amount.InexactFloat64(),
			CreditsAdded: p.CreditsAdded,
			CreatedAt:    p.CreatedAt,
		})
	}
	return out
}
