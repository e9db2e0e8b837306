package entity

import "time"

// Pagination defaults for transaction listings
const (
	DefaultPerPage = 10
	MaxPerPage     = 100
)

// TransactionFilter narrows a user's transaction listing
type TransactionFilter struct {
	Merchant    string
	Category    Category
	FraudStatus *bool
	StartDate   *time.Time
	EndDate     *time.Time
	Page        int
	PerPage     int
}

// Normalized clamps pagination to sane bounds
func (f TransactionFilter) Normalized() TransactionFilter {
	if f.Page < 1 {
		f.Page = 1
	}
	switch {
	case f.PerPage < 1:
		f.PerPage = DefaultPerPage
	case f.PerPage > MaxPerPage:
		f.PerPage = MaxPerPage
	}
	return f
}

// Offset returns the row offset of the requested page
func (f TransactionFilter) Offset() int {
	return (f.Page - 1) * f.PerPage
}

// TransactionPage is one page of a filtered listing
type TransactionPage struct {
	Items   []*Transaction
	Total   int64
	Page    int
	PerPage int
}

// TransactionStats aggregates a set of transactions
type TransactionStats struct {
	Total              int64
	Fraudulent         int64
	AverageProbability float64
}
