package dto

import "github.com/amirhossein-jamali/fraud-scoring/internal/domain/port/usecase"

// SetCreditsRequest is the optional JSON body of the admin credit update
type SetCreditsRequest struct {
	Credits *int64 `json:"credits"`
}

// SystemStatsResponse is the admin dashboard summary
type SystemStatsResponse struct {
	TotalUsers        int64 `json:"total_users"`
	TotalTransactions int64 `json:"total_transactions"`
	FraudTransactions int64 `json:"fraud_transactions"`
}

// NewSystemStatsResponse maps system stats
func NewSystemStatsResponse(stats *usecase.SystemStats) SystemStatsResponse {
	return SystemStatsResponse{
		TotalUsers:        stats.TotalUsers,
		TotalTransactions: stats.TotalTransactions,
		FraudTransactions: stats.FraudTransactions,
	}
}

// HealthResponse reports dependency status
type HealthResponse struct {
	Status       string `json:"status"`
	Database     string `json:"database"`
	ModelMode    string `json:"model_mode"`
	ModelVersion string `json:"model_version"`
}
