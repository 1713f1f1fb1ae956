package domain

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Snapshot is the full persisted state shape: pool settings plus the four
// collections. It is the complete contract with the snapshot store and the
// unit the engine holds in memory.
type Snapshot struct {
	TotalMoneyPool     decimal.Decimal     `json:"totalMoneyPool"`
	Investments        []Investment        `json:"investments"`
	Returns            []Return            `json:"returns"`
	ManualTransactions []ManualTransaction `json:"manualTransactions"`
	Transactions       []LedgerEntry       `json:"transactions"`
	Settings           PoolSettings        `json:"settings"`
}

// NewSnapshot returns the pristine pre-setup state
func NewSnapshot() Snapshot {
	return Snapshot{
		TotalMoneyPool:     decimal.Zero,
		Investments:        []Investment{},
		Returns:            []Return{},
		ManualTransactions: []ManualTransaction{},
		Transactions:       []LedgerEntry{},
	}
}

// LastBalance returns the running balance: the last ledger entry's
// BalanceAfter, or the pool amount when the ledger is empty
func (s *Snapshot) LastBalance() decimal.Decimal {
	if len(s.Transactions) == 0 {
		return s.TotalMoneyPool
	}
	return s.Transactions[len(s.Transactions)-1].BalanceAfter
}

// InvestmentByID finds an investment by ID, or nil when absent
func (s *Snapshot) InvestmentByID(id uuid.UUID) *Investment {
	for i := range s.Investments {
		if s.Investments[i].ID == id {
			return &s.Investments[i]
		}
	}
	return nil
}

// ReturnByID finds a return by ID, or nil when absent
func (s *Snapshot) ReturnByID(id uuid.UUID) *Return {
	for i := range s.Returns {
		if s.Returns[i].ID == id {
			return &s.Returns[i]
		}
	}
	return nil
}

// Clone returns a deep copy of the snapshot so readers can work on it
// without observing later mutations
func (s *Snapshot) Clone() Snapshot {
	out := *s
	out.Investments = append([]Investment(nil), s.Investments...)
	out.Returns = append([]Return(nil), s.Returns...)
	out.ManualTransactions = append([]ManualTransaction(nil), s.ManualTransactions...)
	out.Transactions = append([]LedgerEntry(nil), s.Transactions...)
	if s.Settings.SetupDate != nil {
		d := *s.Settings.SetupDate
		out.Settings.SetupDate = &d
	}
	return out
}
