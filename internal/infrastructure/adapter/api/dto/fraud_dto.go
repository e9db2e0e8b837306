package dto

import (
	"time"

	"github.com/amirhossein-jamali/fraud-scoring/internal/domain/entity"
	"github.com/amirhossein-jamali/fraud-scoring/internal/domain/port/usecase"
)

// PredictRequest represents the API request for a fraud check.
// Hour is a pointer so that midnight passes the required check.
type PredictRequest struct {
	Amount      float64 `json:"amount" binding:"required,gt=0"`
	Merchant    string  `json:"merchant" binding:"required,min=1,max=100"`
	Category    string  `json:"category" binding:"required,min=1,max=50"`
	Hour        *int    `json:"hour" binding:"required,min=0,max=23"`
	UserAge     int     `json:"user_age" binding:"required,min=18,max=120"`
	Description *string `json:"description" binding:"omitempty,max=500"`
}

// ToInput maps the request to the domain input
func (r PredictRequest) ToInput() entity.TransactionInput {
	in := entity.TransactionInput{
		Amount:      r.Amount,
		Merchant:    r.Merchant,
		Category:    r.Category,
		UserAge:     r.UserAge,
		Description: r.Description,
	}
	if r.Hour != nil {
		in.Hour = *r.Hour
	}
	return in
}

// PredictionBody is the classifier verdict
type PredictionBody struct {
	IsFraud          bool    `json:"is_fraud"`
	FraudProbability float64 `json:"fraud_probability"`
	RiskLevel        string  `json:"risk_level"`
}

// TransactionEcho repeats the scored request
type TransactionEcho struct {
	ID       uint64  `json:"id"`
	Amount   float64 `json:"amount"`
	Merchant string  `json:"merchant"`
	Category string  `json:"category"`
	Hour     int     `json:"hour"`
}

// PredictResponse represents the API response for a fraud check
type PredictResponse struct {
	Prediction       PredictionBody  `json:"prediction"`
	Transaction      TransactionEcho `json:"transaction"`
	RemainingCredits int64           `json:"remaining_credits"`
}

// NewPredictResponse maps a prediction result.
// Merchant and category are echoed as the client sent them.
func NewPredictResponse(result *usecase.PredictionResult) PredictResponse {
	tx := result.Transaction
	merchant, category := result.Submitted.Merchant, result.Submitted.Category
	if merchant == "" {
		merchant = tx.Merchant
	}
	if category == "" {
		category = string(tx.Category)
	}
	return PredictResponse{
		Prediction: PredictionBody{
			IsFraud:          tx.IsFraud,
			FraudProbability: entity.RoundProbability(tx.FraudProbability),
			RiskLevel:        string(tx.RiskLevel),
		},
		Transaction: TransactionEcho{
			ID:       tx.ID,
			Amount:   tx.Amount,
			Merchant: merchant,
			Category: category,
			Hour:     tx.Hour,
		},
		RemainingCredits: result.RemainingCredits,
	}
}

// FeedbackRequest represents a user's verdict on a past prediction
type FeedbackRequest struct {
	FeedbackCorrect *bool   `json:"feedback_correct" binding:"required"`
	FeedbackNotes   *string `json:"feedback_notes" binding:"omitempty,max=500"`
}

// TransactionResponse is the full persisted view of a prediction
type TransactionResponse struct {
	ID               uint64     `json:"id"`
	Amount           float64    `json:"amount"`
	Merchant         string     `json:"merchant"`
	Category         string     `json:"category"`
	Hour             int        `json:"hour"`
	UserAge          int        `json:"user_age"`
	Description      *string    `json:"description"`
	IsFraud          bool       `json:"is_fraud"`
	FraudProbability float64    `json:"fraud_probability"`
	ConfidenceScore  float64    `json:"confidence_score"`
	RiskLevel        string     `json:"risk_level"`
	CreatedAt        time.Time  `json:"created_at"`
	ProcessedAt      time.Time  `json:"processed_at"`
	FeedbackCorrect  *bool      `json:"feedback_correct"`
	FeedbackNotes    *string    `json:"feedback_notes"`
	FeedbackDate     *time.Time `json:"feedback_date"`
}

// NewTransactionResponse maps a transaction entity
func NewTransactionResponse(tx *entity.Transaction) TransactionResponse {
	resp := TransactionResponse{
		ID:               tx.ID,
		Amount:           tx.Amount,
		Merchant:         tx.Merchant,
		Category:         string(tx.Category),
		Hour:             tx.Hour,
		UserAge:          tx.UserAge,
		Description:      tx.Description,
		IsFraud:          tx.IsFraud,
		FraudProbability: entity.RoundProbability(tx.FraudProbability),
		ConfidenceScore:  entity.RoundProbability(tx.ConfidenceScore),
		RiskLevel:        string(tx.RiskLevel),
		CreatedAt:        tx.CreatedAt,
		ProcessedAt:      tx.ProcessedAt,
	}
	if fb := tx.Feedback; fb != nil {
		correct, date := fb.Correct, fb.Date
		resp.FeedbackCorrect = &correct
		resp.FeedbackNotes = fb.Notes
		resp.FeedbackDate = &date
	}
	return resp
}
