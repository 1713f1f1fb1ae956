package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// SourceType indicates which record a manual transaction draws from
type SourceType string

const (
	SourceTypeGeneral    SourceType = "general"
	SourceTypeInvestment SourceType = "investment"
	SourceTypeReturn     SourceType = "return"
)

// Common manual transaction types. The field is an open string enum: the
// presentation layer may send other labels and they are stored as-is.
const (
	ManualTypeWithdrawal = "Personal Withdrawal"
	ManualTypeExpense    = "Personal Expense"
	ManualTypeAdjustment = "Manual Adjustment"
)

// ManualTransaction represents a manually recorded outflow (withdrawal,
// expense or adjustment). Amount is always positive; the paired ledger
// entry carries the negated value.
type ManualTransaction struct {
	ID          uuid.UUID       `json:"id"`
	Date        time.Time       `json:"date"`
	Type        string          `json:"type"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
	SourceType  SourceType      `json:"sourceType"`
	SourceID    *uuid.UUID      `json:"sourceId,omitempty"`
}

// Validate ensures the manual transaction adheres to domain rules.
// SourceID resolution is intentionally not validated here: an unresolvable
// source only means the ledger description loses its annotation.
func (t *ManualTransaction) Validate() error {
	if t.Amount.LessThanOrEqual(decimal.Zero) {
		return ErrInvalidAmount
	}
	if t.Description == "" {
		return ErrEmptyDescription
	}
	return nil
}
