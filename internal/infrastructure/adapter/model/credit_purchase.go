package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreditPurchase represents the database model for paid top-ups
type CreditPurchase struct {
	ID           uint64          `gorm:"primaryKey;autoIncrement"`
	UserID       uint64          `gorm:"not null;index"`
	Amount       decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	CreditsAdded int64           `gorm:"not null"`
	CreatedAt    time.Time       `gorm:"not null;index"`
}

// TableName specifies the table name for CreditPurchase
func (CreditPurchase) TableName() string {
	return "credit_purchases"
}
