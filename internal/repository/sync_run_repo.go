package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/wakala/banksync/internal/domain"
)

type SyncRunRepo struct {
	q querier
}

func NewSyncRunRepo(db *sql.DB) *SyncRunRepo {
	return &SyncRunRepo{q: db}
}

func (r *SyncRunRepo) Insert(ctx context.Context, run *domain.SyncRun) error {
	_, err := r.q.ExecContext(ctx,
		`INSERT INTO sync_runs
		(id, account_id, institution_id, adapter, payload_hash, status, booked_count,
		 pending_count, dropped_count, starting_balance, currency, transactions_new, synced_at)
		VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?)`,
		run.ID, run.AccountID, run.InstitutionID, run.Adapter, run.PayloadHash,
		string(run.Status), run.BookedCount, run.PendingCount, run.DroppedCount,
		run.StartingBalance, run.Currency, run.TransactionsNew,
		run.SyncedAt.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("insert sync run: %w", err)
	}
	return nil
}

// LastPayloadHash returns the payload hash of the account's latest run, or
// "" when the account was never synced.
func (r *SyncRunRepo) LastPayloadHash(ctx context.Context, accountID string) (string, error) {
	var hash string
	err := r.q.QueryRowContext(ctx,
		`SELECT payload_hash FROM sync_runs WHERE account_id = ?
		ORDER BY synced_at DESC, rowid DESC LIMIT 1`, accountID,
	).Scan(&hash)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("last payload hash: %w", err)
	}
	return hash, nil
}

type SyncRunFilter struct {
	AccountID string
	Status    string
	Page      int
	Limit     int
}

func (r *SyncRunRepo) List(ctx context.Context, f SyncRunFilter) ([]domain.SyncRun, int, error) {
	where := ""
	var args []any
	switch {
	case f.AccountID != "" && f.Status != "":
		where = " WHERE account_id = ? AND status = ?"
		args = append(args, f.AccountID, f.Status)
	case f.AccountID != "":
		where = " WHERE account_id = ?"
		args = append(args, f.AccountID)
	case f.Status != "":
		where = " WHERE status = ?"
		args = append(args, f.Status)
	}

	var total int
	if err := r.q.QueryRowContext(ctx, "SELECT COUNT(*) FROM sync_runs"+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count: %w", err)
	}

	limit, offset := pageOffset(f.Page, f.Limit)
	rows, err := r.q.QueryContext(ctx,
		`SELECT id, account_id, institution_id, adapter, payload_hash, status, booked_count,
		 pending_count, dropped_count, starting_balance, currency, transactions_new, synced_at
		FROM sync_runs`+where+` ORDER BY synced_at DESC, rowid DESC LIMIT ? OFFSET ?`,
		append(args, limit, offset)...,
	)
	if err != nil {
		return nil, 0, fmt.Errorf("query: %w", err)
	}
	defer rows.Close()

	var runs []domain.SyncRun
	for rows.Next() {
		var run domain.SyncRun
		var status, syncedAt string
		if err := rows.Scan(&run.ID, &run.AccountID, &run.InstitutionID, &run.Adapter,
			&run.PayloadHash, &status, &run.BookedCount, &run.PendingCount, &run.DroppedCount,
			&run.StartingBalance, &run.Currency, &run.TransactionsNew, &syncedAt); err != nil {
			return nil, 0, fmt.Errorf("scan: %w", err)
		}
		run.Status = domain.SyncStatus(status)
		run.SyncedAt, _ = time.Parse(time.RFC3339Nano, syncedAt)
		runs = append(runs, run)
	}
	return runs, total, rows.Err()
}
