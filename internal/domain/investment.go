package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// MonthlyReturnRate is the contractual monthly return rate applied to every
// investment at creation time (10% of committed capital per month).
var MonthlyReturnRate = decimal.NewFromFloat(0.10)

// InvestmentStatus represents the lifecycle state of an investment
type InvestmentStatus string

const (
	InvestmentStatusActive InvestmentStatus = "Active"
	InvestmentStatusClosed InvestmentStatus = "Closed"
)

// Investment represents a discrete capital allocation from the money pool.
// ExpectedReturn is computed once at creation (Amount * MonthlyReturnRate)
// and stored, never recomputed.
type Investment struct {
	ID             uuid.UUID        `json:"id"`
	Date           time.Time        `json:"date"`
	Amount         decimal.Decimal  `json:"amount"`
	Notes          string           `json:"notes"`
	Status         InvestmentStatus `json:"status"`
	ExpectedReturn decimal.Decimal  `json:"expectedReturn"`
}

// NewInvestment creates an Active investment with its expected return snapshot
func NewInvestment(date time.Time, amount decimal.Decimal, notes string) *Investment {
	return &Investment{
		ID:             uuid.New(),
		Date:           date,
		Amount:         amount,
		Notes:          notes,
		Status:         InvestmentStatusActive,
		ExpectedReturn: amount.Mul(MonthlyReturnRate),
	}
}

// Validate ensures the investment adheres to domain rules
func (i *Investment) Validate() error {
	if i.Amount.LessThanOrEqual(decimal.Zero) {
		return ErrInvalidAmount
	}
	return nil
}

// Label returns the display label for this investment: its notes, or a
// synthesized fallback when no notes were given
func (i *Investment) Label() string {
	if i.Notes != "" {
		return i.Notes
	}
	return "₱" + i.Amount.StringFixed(2) + " investment"
}
