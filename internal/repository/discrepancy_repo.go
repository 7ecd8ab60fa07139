package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/wakala/banksync/internal/domain"
)

type DiscrepancyRepo struct {
	q querier
}

func NewDiscrepancyRepo(db *sql.DB) *DiscrepancyRepo {
	return &DiscrepancyRepo{q: db}
}

func (r *DiscrepancyRepo) BulkInsert(ctx context.Context, discs []domain.Discrepancy) (int, error) {
	inserted := 0
	for i := range discs {
		d := &discs[i]
		res, err := r.q.ExecContext(ctx,
			`INSERT OR IGNORE INTO discrepancies
			(id, run_id, account_id, institution_id, type, transaction_id, severity,
			 description, detected_at)
			VALUES (?,?,?,?,?,?,?,?,?)`,
			d.ID, d.RunID, d.AccountID, d.InstitutionID, string(d.Type),
			nullableString(d.TransactionID), string(d.Severity), d.Description,
			d.DetectedAt.UTC().Format(time.RFC3339Nano),
		)
		if err != nil {
			return inserted, fmt.Errorf("insert %d: %w", i, err)
		}
		ra, _ := res.RowsAffected()
		inserted += int(ra)
	}
	return inserted, nil
}

type DiscrepancyFilter struct {
	Type      string
	Severity  string
	AccountID string
	Page      int
	Limit     int
}

func (r *DiscrepancyRepo) List(ctx context.Context, f DiscrepancyFilter) ([]domain.Discrepancy, int, error) {
	where, args := buildDiscrepancyWhere(f)

	var total int
	if err := r.q.QueryRowContext(ctx, "SELECT COUNT(*) FROM discrepancies"+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count: %w", err)
	}

	limit, offset := pageOffset(f.Page, f.Limit)
	q := `SELECT id, run_id, account_id, institution_id, type, transaction_id, severity,
		description, detected_at FROM discrepancies` + where +
		` ORDER BY detected_at DESC, rowid DESC LIMIT ? OFFSET ?`
	args = append(args, limit, offset)

	rows, err := r.q.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("query: %w", err)
	}
	defer rows.Close()

	var discs []domain.Discrepancy
	for rows.Next() {
		var d domain.Discrepancy
		var typ, severity, detectedAt string
		var txnID sql.NullString
		if err := rows.Scan(&d.ID, &d.RunID, &d.AccountID, &d.InstitutionID, &typ, &txnID,
			&severity, &d.Description, &detectedAt); err != nil {
			return nil, 0, fmt.Errorf("scan: %w", err)
		}
		d.Type = domain.DiscrepancyType(typ)
		d.Severity = domain.Severity(severity)
		d.TransactionID = txnID.String
		d.DetectedAt, _ = time.Parse(time.RFC3339Nano, detectedAt)
		discs = append(discs, d)
	}
	return discs, total, rows.Err()
}

type DiscrepancySummary struct {
	TotalCount int            `json:"total_count"`
	ByType     map[string]int `json:"by_type"`
	BySeverity map[string]int `json:"by_severity"`
	ByAccount  map[string]int `json:"by_account"`
}

func (r *DiscrepancyRepo) Summary(ctx context.Context) (*DiscrepancySummary, error) {
	s := &DiscrepancySummary{
		ByType:     make(map[string]int),
		BySeverity: make(map[string]int),
		ByAccount:  make(map[string]int),
	}

	rows, err := r.q.QueryContext(ctx,
		"SELECT type, severity, account_id, COUNT(*) FROM discrepancies GROUP BY type, severity, account_id",
	)
	if err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var typ, severity, account string
		var n int
		if err := rows.Scan(&typ, &severity, &account, &n); err != nil {
			return nil, fmt.Errorf("scan: %w", err)
		}
		s.TotalCount += n
		s.ByType[typ] += n
		s.BySeverity[severity] += n
		s.ByAccount[account] += n
	}
	return s, rows.Err()
}

func buildDiscrepancyWhere(f DiscrepancyFilter) (string, []any) {
	var clauses []string
	var args []any

	if f.Type != "" {
		clauses = append(clauses, "type = ?")
		args = append(args, f.Type)
	}
	if f.Severity != "" {
		clauses = append(clauses, "severity = ?")
		args = append(args, f.Severity)
	}
	if f.AccountID != "" {
		clauses = append(clauses, "account_id = ?")
		args = append(args, f.AccountID)
	}

	if len(clauses) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(clauses, " AND "), args
}
