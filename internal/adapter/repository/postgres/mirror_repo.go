package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/simaogato/poolledger-backend/internal/domain"
)

// mirrorRepository implements domain.MirrorStore over the five-table
// Postgres schema. Each mutation is applied in one database transaction
// so the mirror never holds half a mutation.
type mirrorRepository struct {
	db *DB
}

// NewMirrorRepository creates a new mirror repository
func NewMirrorRepository(db *DB) domain.MirrorStore {
	return &mirrorRepository{db: db}
}

// Apply writes all rows of a single mutation atomically
func (r *mirrorRepository) Apply(ctx context.Context, m domain.Mutation) error {
	dbTx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer dbTx.Rollback()

	switch m.Kind {
	case domain.MutationInitializePool:
		if err := r.applyInitialize(ctx, dbTx, m); err != nil {
			return err
		}
	case domain.MutationAddInvestment:
		if err := r.insertInvestment(ctx, dbTx, m.Investment); err != nil {
			return err
		}
	case domain.MutationCloseInvestment:
		if err := r.updateInvestmentStatus(ctx, dbTx, m.Investment); err != nil {
			return err
		}
	case domain.MutationRecordReturn:
		if err := r.insertReturn(ctx, dbTx, m.Return); err != nil {
			return err
		}
	case domain.MutationManualTransaction:
		if err := r.insertManualTransaction(ctx, dbTx, m.ManualTransaction); err != nil {
			return err
		}
	case domain.MutationReset:
		if err := r.truncateAll(ctx, dbTx); err != nil {
			return err
		}
	default:
		return fmt.Errorf("unknown mutation kind: %s", m.Kind)
	}

	if m.Entry != nil {
		if err := r.insertLedgerEntry(ctx, dbTx, m.Entry); err != nil {
			return err
		}
	}

	if err := dbTx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// applyInitialize upserts the single settings row and replaces the ledger.
// Re-initialization keeps the other collections, matching the engine.
func (r *mirrorRepository) applyInitialize(ctx context.Context, dbTx *sql.Tx, m domain.Mutation) error {
	query := `
		INSERT INTO settings (id, total_money_pool, setup_complete, setup_date)
		VALUES (1, $1, $2, $3)
		ON CONFLICT (id) DO UPDATE
		SET total_money_pool = EXCLUDED.total_money_pool,
		    setup_complete = EXCLUDED.setup_complete,
		    setup_date = EXCLUDED.setup_date
	`
	if _, err := dbTx.ExecContext(ctx, query,
		m.Pool.String(),
		m.Settings.SetupComplete,
		m.Settings.SetupDate,
	); err != nil {
		return fmt.Errorf("failed to upsert settings: %w", err)
	}

	if _, err := dbTx.ExecContext(ctx, `DELETE FROM ledger`); err != nil {
		return fmt.Errorf("failed to clear ledger: %w", err)
	}
	return nil
}

func (r *mirrorRepository) insertInvestment(ctx context.Context, dbTx *sql.Tx, inv *domain.Investment) error {
	query := `
		INSERT INTO investments (id, date, amount, notes, status, expected_return)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	if _, err := dbTx.ExecContext(ctx, query,
		inv.ID,
		inv.Date,
		inv.Amount.String(),
		inv.Notes,
		string(inv.Status),
		inv.ExpectedReturn.String(),
	); err != nil {
		return fmt.Errorf("failed to insert investment: %w", err)
	}
	return nil
}

func (r *mirrorRepository) updateInvestmentStatus(ctx context.Context, dbTx *sql.Tx, inv *domain.Investment) error {
	query := `UPDATE investments SET status = $1 WHERE id = $2`
	if _, err := dbTx.ExecContext(ctx, query, string(inv.Status), inv.ID); err != nil {
		return fmt.Errorf("failed to update investment status: %w", err)
	}
	return nil
}

func (r *mirrorRepository) insertReturn(ctx context.Context, dbTx *sql.Tx, ret *domain.Return) error {
	query := `
		INSERT INTO returns (id, date, amount, expected, warning, investment_id, investment_notes)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	if _, err := dbTx.ExecContext(ctx, query,
		ret.ID,
		ret.Date,
		ret.Amount.String(),
		ret.Expected.String(),
		ret.Warning,
		ret.InvestmentID,
		ret.InvestmentNotes,
	); err != nil {
		return fmt.Errorf("failed to insert return: %w", err)
	}
	return nil
}

func (r *mirrorRepository) insertManualTransaction(ctx context.Context, dbTx *sql.Tx, tx *domain.ManualTransaction) error {
	query := `
		INSERT INTO manual_transactions (id, date, type, description, amount, source_type, source_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	var sourceID interface{}
	if tx.SourceID != nil {
		sourceID = *tx.SourceID
	}
	if _, err := dbTx.ExecContext(ctx, query,
		tx.ID,
		tx.Date,
		tx.Type,
		tx.Description,
		tx.Amount.String(),
		string(tx.SourceType),
		sourceID,
	); err != nil {
		return fmt.Errorf("failed to insert manual transaction: %w", err)
	}
	return nil
}

func (r *mirrorRepository) insertLedgerEntry(ctx context.Context, dbTx *sql.Tx, e *domain.LedgerEntry) error {
	query := `
		INSERT INTO ledger (id, date, type, description, amount, balance_after)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	if _, err := dbTx.ExecContext(ctx, query,
		e.ID,
		e.Date,
		e.Type,
		e.Description,
		e.Amount.String(),
		e.BalanceAfter.String(),
	); err != nil {
		return fmt.Errorf("failed to insert ledger entry: %w", err)
	}
	return nil
}

func (r *mirrorRepository) truncateAll(ctx context.Context, dbTx *sql.Tx) error {
	for _, table := range []string{"ledger", "returns", "manual_transactions", "investments", "settings"} {
		if _, err := dbTx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return fmt.Errorf("failed to clear %s: %w", table, err)
		}
	}
	return nil
}
