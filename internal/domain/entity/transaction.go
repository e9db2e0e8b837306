package entity

import (
	"math"
	"strings"
	"time"

	errs "github.com/amirhossein-jamali/fraud-scoring/internal/domain/error"
)

// RiskLevel buckets a fraud probability
type RiskLevel string

const (
	RiskLow    RiskLevel = "low"
	RiskMedium RiskLevel = "medium"
	RiskHigh   RiskLevel = "high"
)

// Risk tier thresholds; both comparisons are strict
const (
	HighRiskThreshold   = 0.7
	MediumRiskThreshold = 0.3
)

// ClassifyRisk maps a probability to a risk level
func ClassifyRisk(probability float64) RiskLevel {
	switch {
	case probability > HighRiskThreshold:
		return RiskHigh
	case probability > MediumRiskThreshold:
		return RiskMedium
	default:
		return RiskLow
	}
}

// RoundProbability rounds to three decimals for presentation
func RoundProbability(p float64) float64 {
	return math.Round(p*1000) / 1000
}

// Category is one of the supported transaction categories
type Category string

const (
	CategoryShopping      Category = "shopping"
	CategoryEntertainment Category = "entertainment"
	CategoryTravel        Category = "travel"
	CategoryFood          Category = "food"
	CategoryTransfer      Category = "transfer"
	CategoryWithdrawal    Category = "withdrawal"
	CategoryPayment       Category = "payment"
)

var categories = []Category{
	CategoryShopping,
	CategoryEntertainment,
	CategoryTravel,
	CategoryFood,
	CategoryTransfer,
	CategoryWithdrawal,
	CategoryPayment,
}

// Categories returns the supported categories in their canonical order
func Categories() []Category {
	out := make([]Category, len(categories))
	copy(out, categories)
	return out
}

// ParseCategory lower-cases and validates a category name
func ParseCategory(raw string) (Category, error) {
	c := Category(strings.ToLower(strings.TrimSpace(raw)))
	for _, known := range categories {
		if c == known {
			return c, nil
		}
	}
	return "", errs.NewValidationError("category", raw, "must be one of shopping, entertainment, travel, food, transfer, withdrawal, payment", errs.ErrInvalidCategory)
}

// Record field limits
const (
	MinHour           = 0
	MaxHour           = 23
	MinUserAge        = 18
	MaxUserAge        = 120
	MaxMerchantLen    = 100
	MaxDescriptionLen = 500
)

// TransactionInput is a fraud check request as submitted by a client
type TransactionInput struct {
	Amount      float64
	Merchant    string
	Category    string
	Hour        int
	UserAge     int
	Description *string
}

// FeatureRecord is the normalized shape the classifier consumes
type FeatureRecord struct {
	Amount   float64
	Merchant string
	Category Category
	Hour     int
	UserAge  int
}

// Normalize lower-cases the merchant, validates the category and checks ranges
func (in TransactionInput) Normalize() (FeatureRecord, error) {
	if math.IsNaN(in.Amount) || math.IsInf(in.Amount, 0) || in.Amount <= 0 {
		return FeatureRecord{}, errs.NewValidationError("amount", in.Amount, "must be greater than zero", nil)
	}

	merchant := strings.ToLower(strings.TrimSpace(in.Merchant))
	if merchant == "" || len(merchant) > MaxMerchantLen {
		return FeatureRecord{}, errs.NewValidationError("merchant", in.Merchant, "must be between 1 and 100 characters", nil)
	}

	category, err := ParseCategory(in.Category)
	if err != nil {
		return FeatureRecord{}, err
	}

	if in.Hour < MinHour || in.Hour > MaxHour {
		return FeatureRecord{}, errs.NewValidationError("hour", in.Hour, "must be between 0 and 23", nil)
	}
	if in.UserAge < MinUserAge || in.UserAge > MaxUserAge {
		return FeatureRecord{}, errs.NewValidationError("user_age", in.UserAge, "must be between 18 and 120", nil)
	}
	if in.Description != nil && len(*in.Description) > MaxDescriptionLen {
		return FeatureRecord{}, errs.NewValidationError("description", len(*in.Description), "must be at most 500 characters", nil)
	}

	return FeatureRecord{
		Amount:   in.Amount,
		Merchant: merchant,
		Category: category,
		Hour:     in.Hour,
		UserAge:  in.UserAge,
	}, nil
}

// Score is the classifier output for one record
type Score struct {
	Probability float64
	IsFraud     bool
}

// Confidence is the distance of the decision from a coin flip, in [0.5, 1]
func (s Score) Confidence() float64 {
	return math.Max(s.Probability, 1-s.Probability)
}

// Feedback is a user's verdict on a past prediction
type Feedback struct {
	Correct bool
	Notes   *string
	Date    time.Time
}

// Transaction is the persisted record of one scored request
type Transaction struct {
	ID               uint64
	UserID           uint64
	Amount           float64
	Merchant         string
	Category         Category
	Hour             int
	UserAge          int
	Description      *string
	IsFraud          bool
	FraudProbability float64
	ConfidenceScore  float64
	RiskLevel        RiskLevel
	CreatedAt        time.Time
	ProcessedAt      time.Time
	Feedback         *Feedback
}

// NewTransaction builds the record for a scored request
func NewTransaction(userID uint64, record FeatureRecord, description *string, score Score, now time.Time) *Transaction {
	return &Transaction{
		UserID:           userID,
		Amount:           record.Amount,
		Merchant:         record.Merchant,
		Category:         record.Category,
		Hour:             record.Hour,
		UserAge:          record.UserAge,
		Description:      description,
		IsFraud:          score.IsFraud,
		FraudProbability: score.Probability,
		ConfidenceScore:  score.Confidence(),
		RiskLevel:        ClassifyRisk(score.Probability),
		CreatedAt:        now,
		ProcessedAt:      now,
	}
}

// ApplyFeedback records or replaces the user's verdict
func (t *Transaction) ApplyFeedback(correct bool, notes *string, now time.Time) error {
	if notes != nil && len(*notes) > MaxDescriptionLen {
		return errs.NewValidationError("feedback_notes", len(*notes), "must be at most 500 characters", nil)
	}
	t.Feedback = &Feedback{Correct: correct, Notes: notes, Date: now}
	return nil
}
