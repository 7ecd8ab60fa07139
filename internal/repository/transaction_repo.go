package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"cloud.google.com/go/civil"
	"github.com/google/uuid"

	"github.com/wakala/banksync/internal/domain"
)

// rowNamespace seeds the name-based row ids of stored transactions.
var rowNamespace = uuid.MustParse("5b0f8a3e-2f4d-4c55-9a57-0d6c1b7e9f21")

type TransactionRepo struct {
	q querier
}

func NewTransactionRepo(db *sql.DB) *TransactionRepo {
	return &TransactionRepo{q: db}
}

// RowIDs derives a stable row id for each transaction of an account.
// Records with a transaction id are keyed by it. Others are keyed by their
// content plus an ordinal, so identical records in one batch stay distinct
// and the same batch always maps to the same ids.
func RowIDs(accountID string, txs []domain.CanonicalTransaction) []string {
	ids := make([]string, len(txs))
	seen := make(map[string]int)
	for i, tx := range txs {
		state := "pending"
		if tx.Booked {
			state = "booked"
		}
		var key string
		if tx.TransactionID != "" {
			key = strings.Join([]string{accountID, state, "id", tx.TransactionID}, "\x00")
		} else {
			key = strings.Join([]string{
				accountID, state, "content", tx.Date.String(),
				strconv.FormatInt(tx.Amount, 10), tx.Currency, tx.PayeeName, tx.Notes,
			}, "\x00")
		}
		n := seen[key]
		seen[key] = n + 1
		if n > 0 {
			key += "\x00" + strconv.Itoa(n)
		}
		ids[i] = uuid.NewSHA1(rowNamespace, []byte(key)).String()
	}
	return ids
}

// InsertBooked stores booked transactions, skipping rows already present.
// It returns how many were new.
func (r *TransactionRepo) InsertBooked(ctx context.Context, accountID string, txs []domain.CanonicalTransaction, now time.Time) (int, error) {
	return r.insert(ctx, accountID, txs, now, "INSERT OR IGNORE")
}

// ReplacePending drops every stored pending transaction of the account and
// stores txs in their place.
func (r *TransactionRepo) ReplacePending(ctx context.Context, accountID string, txs []domain.CanonicalTransaction, now time.Time) error {
	if _, err := r.q.ExecContext(ctx,
		"DELETE FROM transactions WHERE account_id = ? AND booked = 0", accountID,
	); err != nil {
		return fmt.Errorf("delete pending: %w", err)
	}
	_, err := r.insert(ctx, accountID, txs, now, "INSERT OR REPLACE")
	return err
}

func (r *TransactionRepo) insert(ctx context.Context, accountID string, txs []domain.CanonicalTransaction, now time.Time, verb string) (int, error) {
	ids := RowIDs(accountID, txs)
	inserted := 0
	for i := range txs {
		tx := &txs[i]
		raw, err := json.Marshal(tx.Raw)
		if err != nil {
			return inserted, fmt.Errorf("encode raw %d: %w", i, err)
		}
		res, err := r.q.ExecContext(ctx,
			verb+` INTO transactions
			(id, account_id, transaction_id, booked, date, position, amount, currency,
			 payee_name, notes, raw, synced_at)
			VALUES (?,?,?,?,?,?,?,?,?,?,?,?)`,
			ids[i], accountID, nullableString(tx.TransactionID), tx.Booked,
			tx.Date.String(), i, tx.Amount, tx.Currency, tx.PayeeName, tx.Notes,
			string(raw), now.Format(time.RFC3339Nano),
		)
		if err != nil {
			return inserted, fmt.Errorf("insert row %d: %w", i, err)
		}
		ra, _ := res.RowsAffected()
		inserted += int(ra)
	}
	return inserted, nil
}

func (r *TransactionRepo) Count(ctx context.Context, accountID string) (int, error) {
	var count int
	err := r.q.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM transactions WHERE account_id = ?", accountID,
	).Scan(&count)
	return count, err
}

type TransactionFilter struct {
	AccountID string
	Booked    *bool
	From      *civil.Date
	To        *civil.Date
	Page      int
	Limit     int
}

// List returns transactions newest first, keeping the adapter's order
// within a date.
func (r *TransactionRepo) List(ctx context.Context, f TransactionFilter) ([]domain.CanonicalTransaction, int, error) {
	where, args := buildTransactionWhere(f)

	var total int
	if err := r.q.QueryRowContext(ctx, "SELECT COUNT(*) FROM transactions"+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count: %w", err)
	}

	limit, offset := pageOffset(f.Page, f.Limit)
	querySQL := `SELECT transaction_id, booked, date, amount, currency, payee_name, notes, raw
		FROM transactions` + where + ` ORDER BY date DESC, booked ASC, position ASC LIMIT ? OFFSET ?`
	args = append(args, limit, offset)

	rows, err := r.q.QueryContext(ctx, querySQL, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("query: %w", err)
	}
	defer rows.Close()

	var txns []domain.CanonicalTransaction
	for rows.Next() {
		tx, err := scanTransaction(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan: %w", err)
		}
		txns = append(txns, *tx)
	}
	return txns, total, rows.Err()
}

func buildTransactionWhere(f TransactionFilter) (string, []any) {
	var clauses []string
	var args []any

	if f.AccountID != "" {
		clauses = append(clauses, "account_id = ?")
		args = append(args, f.AccountID)
	}
	if f.Booked != nil {
		clauses = append(clauses, "booked = ?")
		args = append(args, *f.Booked)
	}
	if f.From != nil {
		clauses = append(clauses, "date >= ?")
		args = append(args, f.From.String())
	}
	if f.To != nil {
		clauses = append(clauses, "date <= ?")
		args = append(args, f.To.String())
	}

	if len(clauses) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(clauses, " AND "), args
}

func scanTransaction(rows *sql.Rows) (*domain.CanonicalTransaction, error) {
	var tx domain.CanonicalTransaction
	var txnID sql.NullString
	var date, raw string
	if err := rows.Scan(&txnID, &tx.Booked, &date, &tx.Amount, &tx.Currency,
		&tx.PayeeName, &tx.Notes, &raw); err != nil {
		return nil, err
	}
	d, err := civil.ParseDate(date)
	if err != nil {
		return nil, fmt.Errorf("parse date %q: %w", date, err)
	}
	tx.Date = d
	tx.TransactionID = txnID.String
	if err := json.Unmarshal([]byte(raw), &tx.Raw); err != nil {
		return nil, fmt.Errorf("decode raw: %w", err)
	}
	return &tx, nil
}
