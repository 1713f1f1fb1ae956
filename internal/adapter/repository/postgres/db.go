package postgres

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/lib/pq" // PostgreSQL driver
)

// DB wraps the database connection
type DB struct {
	*sql.DB
}

// NewDB creates a new database connection
// connectionString should be in the format: "host=localhost port=5432 user=postgres password=postgres dbname=poolledger sslmode=disable"
func NewDB(connectionString string) (*DB, error) {
	db, err := sql.Open("postgres", connectionString)
	if err != nil {
		return nil, fmt.Errorf("failed to open database connection: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &DB{DB: db}, nil
}

// Close closes the database connection
func (db *DB) Close() error {
	return db.DB.Close()
}

// EnsureSchema creates the five mirror tables when they do not exist yet.
// The settings table holds a single row (id = 1).
func (db *DB) EnsureSchema(ctx context.Context) error {
	const schema = `
CREATE TABLE IF NOT EXISTS settings (
	id              INT PRIMARY KEY DEFAULT 1,
	total_money_pool NUMERIC NOT NULL DEFAULT 0,
	setup_complete  BOOLEAN NOT NULL DEFAULT FALSE,
	setup_date      TIMESTAMPTZ,
	CONSTRAINT settings_single_row CHECK (id = 1)
);

CREATE TABLE IF NOT EXISTS investments (
	id              UUID PRIMARY KEY,
	date            TIMESTAMPTZ NOT NULL,
	amount          NUMERIC NOT NULL,
	notes           TEXT NOT NULL DEFAULT '',
	status          TEXT NOT NULL,
	expected_return NUMERIC NOT NULL
);

CREATE TABLE IF NOT EXISTS returns (
	id               UUID PRIMARY KEY,
	date             TIMESTAMPTZ NOT NULL,
	amount           NUMERIC NOT NULL,
	expected         NUMERIC NOT NULL,
	warning          BOOLEAN NOT NULL,
	investment_id    UUID NOT NULL,
	investment_notes TEXT NOT NULL DEFAULT ''
);

CREATE TABLE IF NOT EXISTS manual_transactions (
	id          UUID PRIMARY KEY,
	date        TIMESTAMPTZ NOT NULL,
	type        TEXT NOT NULL,
	description TEXT NOT NULL,
	amount      NUMERIC NOT NULL,
	source_type TEXT NOT NULL,
	source_id   UUID
);

CREATE TABLE IF NOT EXISTS ledger (
	id            UUID PRIMARY KEY,
	date          TIMESTAMPTZ NOT NULL,
	type          TEXT NOT NULL,
	description   TEXT NOT NULL,
	amount        NUMERIC NOT NULL,
	balance_after NUMERIC NOT NULL,
	seq           BIGSERIAL
);

CREATE INDEX IF NOT EXISTS idx_ledger_date ON ledger (date);
CREATE INDEX IF NOT EXISTS idx_returns_investment ON returns (investment_id);
`
	if _, err := db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("failed to ensure schema: %w", err)
	}
	return nil
}
