package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	_ "modernc.org/sqlite"
)

// ErrNotFound is returned when a lookup matches no row.
var ErrNotFound = errors.New("not found")

// querier is satisfied by both *sql.DB and *sql.Tx so repositories can run
// inside a caller's transaction.
type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// InitDB opens (or creates) a SQLite database at the given path and ensures
// all required tables exist. Pass ":memory:" for an in-memory database.
func InitDB(dsn string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	// Every connection to ":memory:" is a separate database.
	if dsn == ":memory:" {
		db.SetMaxOpenConns(1)
	}

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set wal mode: %w", err)
	}

	if _, err := db.Exec("PRAGMA foreign_keys=ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enable foreign keys: %w", err)
	}

	if _, err := db.Exec("PRAGMA busy_timeout=5000"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set busy timeout: %w", err)
	}

	if err := createTables(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("create tables: %w", err)
	}

	return db, nil
}

func createTables(db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS accounts (
			account_id TEXT PRIMARY KEY,
			institution_id TEXT NOT NULL,
			iban TEXT NOT NULL,
			currency TEXT NOT NULL,
			mask TEXT NOT NULL,
			name TEXT NOT NULL,
			official_name TEXT NOT NULL,
			type TEXT NOT NULL,
			updated_at DATETIME NOT NULL
		)`,

		`CREATE TABLE IF NOT EXISTS transactions (
			id TEXT PRIMARY KEY,
			account_id TEXT NOT NULL,
			transaction_id TEXT,
			booked INTEGER NOT NULL,
			date TEXT NOT NULL,
			position INTEGER NOT NULL,
			amount INTEGER NOT NULL,
			currency TEXT NOT NULL,
			payee_name TEXT NOT NULL,
			notes TEXT NOT NULL,
			raw TEXT NOT NULL,
			synced_at DATETIME NOT NULL,
			FOREIGN KEY (account_id) REFERENCES accounts(account_id)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_transactions_account_date ON transactions(account_id, date)`,
		`CREATE INDEX IF NOT EXISTS idx_transactions_account_booked ON transactions(account_id, booked)`,

		`CREATE TABLE IF NOT EXISTS sync_runs (
			id TEXT PRIMARY KEY,
			account_id TEXT NOT NULL,
			institution_id TEXT NOT NULL,
			adapter TEXT NOT NULL,
			payload_hash TEXT NOT NULL,
			status TEXT NOT NULL,
			booked_count INTEGER NOT NULL,
			pending_count INTEGER NOT NULL,
			dropped_count INTEGER NOT NULL,
			starting_balance INTEGER NOT NULL,
			currency TEXT NOT NULL,
			transactions_new INTEGER NOT NULL,
			synced_at DATETIME NOT NULL,
			FOREIGN KEY (account_id) REFERENCES accounts(account_id)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_sync_runs_account ON sync_runs(account_id, synced_at)`,

		`CREATE TABLE IF NOT EXISTS discrepancies (
			id TEXT PRIMARY KEY,
			run_id TEXT NOT NULL,
			account_id TEXT NOT NULL,
			institution_id TEXT NOT NULL,
			type TEXT NOT NULL,
			transaction_id TEXT,
			severity TEXT NOT NULL,
			description TEXT NOT NULL,
			detected_at DATETIME NOT NULL,
			FOREIGN KEY (run_id) REFERENCES sync_runs(id)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_discrepancies_type ON discrepancies(type)`,
		`CREATE INDEX IF NOT EXISTS idx_discrepancies_account ON discrepancies(account_id)`,
	}

	for _, stmt := range stmts {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("exec %q: %w", stmt[:40], err)
		}
	}

	return nil
}

func pageOffset(page, limit int) (int, int) {
	if limit <= 0 {
		limit = 50
	}
	if page <= 0 {
		page = 1
	}
	return limit, (page - 1) * limit
}

func nullableString(s string) any {
	if s == "" {
		return nil
	}
	return s
}
