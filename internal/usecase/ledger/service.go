package ledger

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/simaogato/poolledger-backend/internal/domain"
)

// MutationSink receives the row-level record of every committed mutation,
// in commit order, for best-effort propagation to the mirror backend.
type MutationSink interface {
	Enqueue(m domain.Mutation)
}

// Service is the ledger engine: it owns the canonical in-memory state and
// guarantees the append-only ledger and balance-recurrence invariants under
// every mutating operation. Mutations are serialized by a single mutex so
// no two callers can interleave against a stale balance read. The in-memory
// state is authoritative; snapshot writes and mirror propagation are
// best-effort and never block or roll back a committed mutation.
type Service struct {
	mu        sync.Mutex
	state     domain.Snapshot
	snapshots domain.SnapshotStore
	sink      MutationSink
	logger    *zap.Logger
}

// NewService creates a ledger engine seeded from the snapshot store
func NewService(ctx context.Context, snapshots domain.SnapshotStore, sink MutationSink, logger *zap.Logger) (*Service, error) {
	state, err := snapshots.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load snapshot: %w", err)
	}
	return &Service{
		state:     state,
		snapshots: snapshots,
		sink:      sink,
		logger:    logger,
	}, nil
}

// State returns a deep copy of the current state for read-only consumers
func (s *Service) State() domain.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Clone()
}

// InitializePool sets the total money pool and writes the single
// "Initial Setup" ledger entry. Re-running replaces the ledger with a
// fresh setup entry while other collections are kept, matching the
// permissive re-initialization policy.
func (s *Service) InitializePool(ctx context.Context, amount decimal.Decimal) (*domain.LedgerEntry, error) {
	if amount.LessThanOrEqual(decimal.Zero) {
		return nil, domain.ErrInvalidAmount
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	settings := domain.PoolSettings{SetupComplete: true, SetupDate: &now}
	entry := domain.LedgerEntry{
		ID:           uuid.New(),
		Date:         now,
		Type:         domain.EntryTypeInitialSetup,
		Description:  "Total money pool initialized at ₱" + amount.StringFixed(2),
		Amount:       amount,
		BalanceAfter: amount,
	}

	s.state.TotalMoneyPool = amount
	s.state.Settings = settings
	s.state.Transactions = []domain.LedgerEntry{entry}

	s.persist(ctx, domain.Mutation{
		Kind:     domain.MutationInitializePool,
		Pool:     &amount,
		Settings: &settings,
		Entry:    &entry,
	})
	return &entry, nil
}

// AddInvestmentInput represents the input for adding an investment
type AddInvestmentInput struct {
	Date   time.Time
	Amount decimal.Decimal
	Notes  string
}

// AddInvestment deploys capital from the pool: it creates an Active
// investment and appends the paired "Capital Given" ledger entry. The
// balance is allowed to go negative; over-commitment is not blocked.
func (s *Service) AddInvestment(ctx context.Context, input AddInvestmentInput) (*domain.Investment, error) {
	inv := domain.NewInvestment(input.Date, input.Amount, input.Notes)
	if err := inv.Validate(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	notes := inv.Notes
	if notes == "" {
		notes = "No notes"
	}
	entry := domain.LedgerEntry{
		ID:           uuid.New(),
		Date:         input.Date,
		Type:         domain.EntryTypeCapitalGiven,
		Description:  "Capital investment: " + notes,
		Amount:       input.Amount.Neg(),
		BalanceAfter: s.state.LastBalance().Sub(input.Amount),
	}

	s.state.Investments = append(s.state.Investments, *inv)
	s.state.Transactions = append(s.state.Transactions, entry)

	s.persist(ctx, domain.Mutation{
		Kind:       domain.MutationAddInvestment,
		Investment: inv,
		Entry:      &entry,
	})
	return inv, nil
}

// CloseInvestment marks an Active investment as Closed and returns its
// capital to the pool via a "Capital Returned" ledger entry. If the
// investment is missing or already Closed this is a silent no-op, not an
// error: it returns (nil, nil) and appends nothing.
func (s *Service) CloseInvestment(ctx context.Context, investmentID uuid.UUID) (*domain.Investment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	inv := s.state.InvestmentByID(investmentID)
	if inv == nil || inv.Status == domain.InvestmentStatusClosed {
		return nil, nil
	}
	inv.Status = domain.InvestmentStatusClosed

	notes := inv.Notes
	if notes == "" {
		notes = "No notes"
	}
	entry := domain.LedgerEntry{
		ID:           uuid.New(),
		Date:         time.Now(),
		Type:         domain.EntryTypeCapitalReturned,
		Description:  "Investment closed - capital returned (" + notes + ")",
		Amount:       inv.Amount,
		BalanceAfter: s.state.LastBalance().Add(inv.Amount),
	}
	s.state.Transactions = append(s.state.Transactions, entry)

	closed := *inv
	s.persist(ctx, domain.Mutation{
		Kind:       domain.MutationCloseInvestment,
		Investment: &closed,
		Entry:      &entry,
	})
	return &closed, nil
}

// RecordReturnInput represents the input for recording a monthly return
type RecordReturnInput struct {
	Date         time.Time
	Amount       decimal.Decimal
	InvestmentID uuid.UUID
}

// RecordReturn records a received return against an investment and appends
// the paired "Return Received" ledger entry. If the investment cannot be
// resolved the write still succeeds degraded: expected is zero and the
// label falls back to "Unknown". Expected, Warning and the label are
// captured as snapshots at record time.
func (s *Service) RecordReturn(ctx context.Context, input RecordReturnInput) (*domain.Return, error) {
	if input.Amount.IsNegative() {
		return nil, domain.ErrNegativeAmount
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	expected := decimal.Zero
	label := "Unknown"
	if inv := s.state.InvestmentByID(input.InvestmentID); inv != nil {
		expected = inv.Amount.Mul(domain.MonthlyReturnRate)
		label = inv.Label()
	}

	ret := domain.Return{
		ID:              uuid.New(),
		Date:            input.Date,
		Amount:          input.Amount,
		Expected:        expected,
		Warning:         input.Amount.LessThan(expected),
		InvestmentID:    input.InvestmentID,
		InvestmentNotes: label,
	}

	desc := "Return from: " + label
	if ret.Warning {
		desc += " (below expected)"
	}
	entry := domain.LedgerEntry{
		ID:           uuid.New(),
		Date:         input.Date,
		Type:         domain.EntryTypeReturnReceived,
		Description:  desc,
		Amount:       input.Amount,
		BalanceAfter: s.state.LastBalance().Add(input.Amount),
	}

	s.state.Returns = append(s.state.Returns, ret)
	s.state.Transactions = append(s.state.Transactions, entry)

	s.persist(ctx, domain.Mutation{
		Kind:   domain.MutationRecordReturn,
		Return: &ret,
		Entry:  &entry,
	})
	return &ret, nil
}

// AddManualTransactionInput represents the input for a manual outflow
type AddManualTransactionInput struct {
	Date        time.Time
	Type        string
	Description string
	Amount      decimal.Decimal
	SourceType  domain.SourceType
	SourceID    *uuid.UUID
}

// AddManualTransaction records a manual outflow (withdrawal, expense,
// adjustment) and appends a ledger entry carrying the transaction's own
// type label and the negated amount. When the source reference resolves,
// the ledger description is annotated with the source label; when it does
// not, the annotation is simply omitted.
func (s *Service) AddManualTransaction(ctx context.Context, input AddManualTransactionInput) (*domain.ManualTransaction, error) {
	if input.SourceType == "" {
		input.SourceType = domain.SourceTypeGeneral
	}

	tx := domain.ManualTransaction{
		ID:          uuid.New(),
		Date:        input.Date,
		Type:        input.Type,
		Description: input.Description,
		Amount:      input.Amount,
		SourceType:  input.SourceType,
		SourceID:    input.SourceID,
	}
	if err := tx.Validate(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	entry := domain.LedgerEntry{
		ID:           uuid.New(),
		Date:         input.Date,
		Type:         input.Type,
		Description:  input.Description + s.sourceLabel(input.SourceType, input.SourceID),
		Amount:       input.Amount.Neg(),
		BalanceAfter: s.state.LastBalance().Sub(input.Amount),
	}

	s.state.ManualTransactions = append(s.state.ManualTransactions, tx)
	s.state.Transactions = append(s.state.Transactions, entry)

	s.persist(ctx, domain.Mutation{
		Kind:              domain.MutationManualTransaction,
		ManualTransaction: &tx,
		Entry:             &entry,
	})
	return &tx, nil
}

// sourceLabel resolves the source annotation for a manual transaction's
// ledger description. Caller must hold s.mu.
func (s *Service) sourceLabel(sourceType domain.SourceType, sourceID *uuid.UUID) string {
	if sourceID == nil {
		return ""
	}
	switch sourceType {
	case domain.SourceTypeInvestment:
		if inv := s.state.InvestmentByID(*sourceID); inv != nil {
			return " (from investment: " + inv.Label() + ")"
		}
	case domain.SourceTypeReturn:
		if ret := s.state.ReturnByID(*sourceID); ret != nil {
			label := ret.InvestmentNotes
			if label == "" {
				label = "₱" + ret.Amount.StringFixed(2)
			}
			return " (from return: " + label + ")"
		}
	}
	return ""
}

// ResetAll destroys all collections and pool settings, returning to the
// pristine pre-setup state. Irreversible; always succeeds.
func (s *Service) ResetAll(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state = domain.NewSnapshot()
	if err := s.snapshots.Reset(ctx); err != nil {
		s.logger.Warn("snapshot reset failed", zap.Error(err))
	}
	if s.sink != nil {
		s.sink.Enqueue(domain.Mutation{Kind: domain.MutationReset})
	}
	return nil
}

// persist writes the snapshot back and hands the mutation to the mirror
// sink. Persistence failures are logged and swallowed: the in-memory state
// has already been committed and stays authoritative. Caller must hold s.mu.
func (s *Service) persist(ctx context.Context, m domain.Mutation) {
	if err := s.snapshots.Save(ctx, s.state); err != nil {
		s.logger.Warn("snapshot save failed",
			zap.String("mutation", string(m.Kind)),
			zap.Error(err))
	}
	if s.sink != nil {
		s.sink.Enqueue(m)
	}
}
