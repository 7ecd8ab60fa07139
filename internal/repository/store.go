package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/wakala/banksync/internal/reconciliation"
)

// Store persists reconciliation results. It implements reconciliation.Sink.
type Store struct {
	db            *sql.DB
	Accounts      *AccountRepo
	Transactions  *TransactionRepo
	Runs          *SyncRunRepo
	Discrepancies *DiscrepancyRepo
}

func NewStore(db *sql.DB) *Store {
	return &Store{
		db:            db,
		Accounts:      NewAccountRepo(db),
		Transactions:  NewTransactionRepo(db),
		Runs:          NewSyncRunRepo(db),
		Discrepancies: NewDiscrepancyRepo(db),
	}
}

// Save writes one result atomically: the account, new booked transactions,
// the current pending set, the run and its discrepancies. It returns how
// many booked transactions were new.
func (s *Store) Save(ctx context.Context, res *reconciliation.Result) (int, error) {
	sqlTx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin tx: %w", err)
	}
	defer sqlTx.Rollback()

	accounts := &AccountRepo{q: sqlTx}
	txns := &TransactionRepo{q: sqlTx}
	runs := &SyncRunRepo{q: sqlTx}
	discs := &DiscrepancyRepo{q: sqlTx}

	now := res.Run.SyncedAt
	accountID := res.Run.AccountID

	if err := accounts.Upsert(ctx, &res.Account, now); err != nil {
		return 0, err
	}
	inserted, err := txns.InsertBooked(ctx, accountID, res.Booked, now)
	if err != nil {
		return 0, fmt.Errorf("booked: %w", err)
	}
	if err := txns.ReplacePending(ctx, accountID, res.Pending, now); err != nil {
		return 0, fmt.Errorf("pending: %w", err)
	}

	run := res.Run
	run.TransactionsNew = inserted
	if err := runs.Insert(ctx, &run); err != nil {
		return 0, err
	}
	if _, err := discs.BulkInsert(ctx, res.Discrepancies); err != nil {
		return 0, fmt.Errorf("discrepancies: %w", err)
	}

	if err := sqlTx.Commit(); err != nil {
		return 0, fmt.Errorf("commit: %w", err)
	}
	return inserted, nil
}

func (s *Store) LastPayloadHash(ctx context.Context, accountID string) (string, error) {
	return s.Runs.LastPayloadHash(ctx, accountID)
}
