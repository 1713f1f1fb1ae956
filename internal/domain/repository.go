package domain

import "context"

// SnapshotStore defines the interface for whole-state snapshot persistence.
// The engine loads one snapshot at startup and writes the full state back
// after every mutation. The in-memory state is authoritative: Save failures
// are logged by the caller and never block the mutation.
type SnapshotStore interface {
	// Load reads the persisted snapshot, or returns the pristine default
	// state when nothing has been persisted yet
	Load(ctx context.Context) (Snapshot, error)

	// Save writes the full snapshot back
	Save(ctx context.Context, snap Snapshot) error

	// Reset removes the persisted snapshot entirely
	Reset(ctx context.Context) error
}

// MirrorStore defines the interface for the row-oriented mirror backend
// (five tables: settings, investments, returns, manual_transactions,
// ledger). Mutations must be applied in the order they were produced.
type MirrorStore interface {
	// Apply writes all rows of a single mutation atomically
	Apply(ctx context.Context, m Mutation) error
}
