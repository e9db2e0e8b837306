package dto

import (
	"github.com/amirhossein-jamali/fraud-scoring/internal/domain/entity"
	"github.com/amirhossein-jamali/fraud-scoring/internal/domain/port/usecase"
)

// TransactionQuery holds the listing filters taken from the query string
type TransactionQuery struct {
	Merchant    string `form:"merchant"`
	Category    string `form:"category"`
	FraudStatus string `form:"fraud_status" binding:"omitempty,oneof=fraud legitimate"`
	StartDate   string `form:"start_date"`
	EndDate     string `form:"end_date"`
	Page        int    `form:"page" binding:"omitempty,min=1"`
	PerPage     int    `form:"per_page" binding:"omitempty,min=1,max=100"`
}

// TransactionListResponse is one page of the user's predictions
type TransactionListResponse struct {
	Items   []TransactionResponse `json:"items"`
	Total   int64                 `json:"total"`
	Page    int                   `json:"page"`
	PerPage int                   `json:"per_page"`
}

// NewTransactionListResponse maps a transaction page
func NewTransactionListResponse(page *entity.TransactionPage) TransactionListResponse {
	items := make([]TransactionResponse, 0, len(page.Items))
	for _, tx := range page.Items {
		items = append(items, NewTransactionResponse(tx))
	}
	return TransactionListResponse{
		Items:   items,
		Total:   page.Total,
		Page:    page.Page,
		PerPage: page.PerPage,
	}
}

// UserStatsResponse summarises the caller's fraud checks
type UserStatsResponse struct {
	TotalTransactions      int64   `json:"total_transactions"`
	FraudulentTransactions int64   `json:"fraudulent_transactions"`
	RemainingCredits       int64   `json:"remaining_credits"`
	AverageProbability     float64 `json:"average_fraud_probability"`
}

// NewUserStatsResponse maps user stats
func NewUserStatsResponse(stats *usecase.UserStats) UserStatsResponse {
	return UserStatsResponse{
		TotalTransactions:      stats.TotalTransactions,
		FraudulentTransactions: stats.FraudulentTransactions,
		RemainingCredits:       stats.RemainingCredits,
		AverageProbability:     entity.RoundProbability(stats.AverageProbability),
	}
}
