package domain

import "github.com/shopspring/decimal"

// MutationKind identifies the engine operation that produced a mutation
type MutationKind string

const (
	MutationInitializePool    MutationKind = "INITIALIZE_POOL"
	MutationAddInvestment     MutationKind = "ADD_INVESTMENT"
	MutationCloseInvestment   MutationKind = "CLOSE_INVESTMENT"
	MutationRecordReturn      MutationKind = "RECORD_RETURN"
	MutationManualTransaction MutationKind = "MANUAL_TRANSACTION"
	MutationReset             MutationKind = "RESET"
)

// Mutation is the row-level record of a single engine operation, used to
// feed the row-oriented mirror store in order. Each mutation carries
// exactly the rows the operation touched; Entry is set for every kind
// except RESET (every mutating action pairs with one ledger entry).
type Mutation struct {
	Kind              MutationKind
	Pool              *decimal.Decimal
	Settings          *PoolSettings
	Investment        *Investment
	Return            *Return
	ManualTransaction *ManualTransaction
	Entry             *LedgerEntry
}
