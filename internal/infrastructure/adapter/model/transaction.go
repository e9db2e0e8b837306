package model

import (
	"time"
)

// Transaction represents the database model for scored predictions
type Transaction struct {
	ID               uint64    `gorm:"primaryKey;autoIncrement"`
	UserID           uint64    `gorm:"not null;index"`
	Amount           float64   `gorm:"not null"`
	Merchant         string    `gorm:"not null;size:100;index"`
	Category         string    `gorm:"not null;size:50;index"`
	Hour             int       `gorm:"not null"`
	UserAge          int       `gorm:"not null"`
	Description      *string   `gorm:"type:text"`
	IsFraud          bool      `gorm:"not null;index"`
	FraudProbability float64   `gorm:"not null"`
	ConfidenceScore  float64   `gorm:"not null"`
	RiskLevel        string    `gorm:"not null;size:10"`
	CreatedAt        time.Time `gorm:"not null;index"`
	ProcessedAt      time.Time `gorm:"not null"`

	FeedbackCorrect *bool
	FeedbackNotes   *string `gorm:"type:text"`
	FeedbackDate    *time.Time
}

// TableName specifies the table name for Transaction
func (Transaction) TableName() string {
	return "transactions"
}
