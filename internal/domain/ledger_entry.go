package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Ledger entry types produced by engine operations. Manual transactions
// carry their own type label instead.
const (
	EntryTypeInitialSetup    = "Initial Setup"
	EntryTypeCapitalGiven    = "Capital Given"
	EntryTypeCapitalReturned = "Capital Returned"
	EntryTypeReturnReceived  = "Return Received"
)

// LedgerEntry is an immutable, balance-carrying record of a state-changing
// event. Entries are append-only and strictly ordered by insertion;
// BalanceAfter of entry n equals BalanceAfter of entry n-1 (or the pool
// amount for the first entry) plus Amount of entry n. The running balance
// is always read from the last entry, never recomputed from summed history.
type LedgerEntry struct {
	ID           uuid.UUID       `json:"id"`
	Date         time.Time       `json:"date"`
	Type         string          `json:"type"`
	Description  string          `json:"description"`
	Amount       decimal.Decimal `json:"amount"`
	BalanceAfter decimal.Decimal `json:"balanceAfter"`
}
