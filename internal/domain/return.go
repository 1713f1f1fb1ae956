package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Return represents a recorded inflow attributed to a specific investment's
// period. Expected, Warning and InvestmentNotes are snapshots captured at
// record time; they are never re-derived from the linked investment, so the
// history stays stable even if the investment is later closed or removed.
type Return struct {
	ID              uuid.UUID       `json:"id"`
	Date            time.Time       `json:"date"`
	Amount          decimal.Decimal `json:"amount"`
	Expected        decimal.Decimal `json:"expected"`
	Warning         bool            `json:"warning"`
	InvestmentID    uuid.UUID       `json:"investmentId"`
	InvestmentNotes string          `json:"investmentNotes"`
}

// Validate ensures the return adheres to domain rules. A zero amount is
// valid: a missed month can be logged explicitly.
func (r *Return) Validate() error {
	if r.Amount.IsNegative() {
		return ErrNegativeAmount
	}
	return nil
}
