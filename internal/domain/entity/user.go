package entity

import (
	"fmt"
	"strings"
	"time"

	errs "github.com/amirhossein-jamali/fraud-scoring/internal/domain/error"
)

// User represents an account with a credit balance
type User struct {
	ID              uint64
	Name            string
	Email           string
	Username        string
	PasswordHash    string
	credits         int64 // never negative after a successful debit
	LastCreditReset time.Time
	IsAdmin         bool
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// NewUser creates a regular user holding the default credit allowance
func NewUser(name, email, username, passwordHash string, now time.Time) (*User, error) {
	name = strings.TrimSpace(name)
	email = NormalizeEmail(email)
	username = strings.TrimSpace(username)

	switch {
	case name == "":
		return nil, errs.NewValidationError("name", name, "must not be empty", nil)
	case email == "":
		return nil, errs.NewValidationError("email", email, "must not be empty", nil)
	case username == "":
		return nil, errs.NewValidationError("username", username, "must not be empty", nil)
	case passwordHash == "":
		return nil, errs.NewValidationError("password", "", "must not be empty", nil)
	}

	return &User{
		Name:            name,
		Email:           email,
		Username:        username,
		PasswordHash:    passwordHash,
		credits:         DefaultCredits,
		LastCreditReset: now,
		CreatedAt:       now,
		UpdatedAt:       now,
	}, nil
}

// NormalizeEmail trims and lower-cases an email address
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Credits returns the current credit balance
func (u *User) Credits() int64 {
	return u.credits
}

// SetCredits overwrites the balance (used by repositories and admin updates)
func (u *User) SetCredits(credits int64, now time.Time) error {
	if credits < 0 {
		return errs.ErrNegativeCredits
	}
	u.credits = credits
	u.UpdatedAt = now
	return nil
}

// ResetDue reports whether the reset interval has elapsed since the last reset
func (u *User) ResetDue(now time.Time) bool {
	return now.Sub(u.LastCreditReset) >= CreditResetInterval
}

// ResetCreditsIfDue restores the default allowance once per reset window.
// It returns true when a reset was applied.
func (u *User) ResetCreditsIfDue(now time.Time) bool {
	if !u.ResetDue(now) {
		return false
	}
	u.credits = DefaultCredits
	u.LastCreditReset = now
	u.UpdatedAt = now
	return true
}

// CanAfford checks if the user has enough credits for an operation
func (u *User) CanAfford(cost int64) bool {
	return u.credits >= cost
}

// Debit removes cost credits, refusing to go below zero
func (u *User) Debit(cost int64, now time.Time) error {
	if cost < 0 {
		return errs.NewValidationError("cost", cost, "must not be negative", nil)
	}
	if !u.CanAfford(cost) {
		return errs.NewInsufficientCreditsError(u.ID, cost, u.credits)
	}
	u.credits -= cost
	u.UpdatedAt = now
	return nil
}

// AddCredits grants purchased credits; there is no upper bound on the balance
func (u *User) AddCredits(credits int64, now time.Time) error {
	if credits < 0 {
		return errs.ErrNegativeCredits
	}
	if u.credits > maxCredits-credits {
		return fmt.Errorf("%w: credit balance would overflow", errs.ErrInvalidAmount)
	}
	u.credits += credits
	u.UpdatedAt = now
	return nil
}
