package model

import (
	"time"
)

// User represents the database model for accounts
type User struct {
	ID              uint64    `gorm:"primaryKey;autoIncrement"`
	Name            string    `gorm:"not null;size:60"`
	Email           string    `gorm:"not null;size:120;uniqueIndex"`
	Username        string    `gorm:"not null;size:60;uniqueIndex"`
	PasswordHash    string    `gorm:"not null;size:255"`
	Credits         int64     `gorm:"not null;default:100"`
	LastCreditReset time.Time `gorm:"not null"`
	IsAdmin         bool      `gorm:"not null;default:false"`
	CreatedAt       time.Time `gorm:"not null"`
	UpdatedAt       time.Time `gorm:"not null"`

	CreditPurchases []CreditPurchase `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	Transactions    []Transaction    `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the table name for User
func (User) TableName() string {
	return "users"
}
