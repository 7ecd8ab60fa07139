package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/wakala/banksync/internal/domain"
)

type AccountRepo struct {
	q querier
}

func NewAccountRepo(db *sql.DB) *AccountRepo {
	return &AccountRepo{q: db}
}

func (r *AccountRepo) Upsert(ctx context.Context, a *domain.CanonicalAccount, now time.Time) error {
	_, err := r.q.ExecContext(ctx,
		`INSERT INTO accounts
		(account_id, institution_id, iban, currency, mask, name, official_name, type, updated_at)
		VALUES (?,?,?,?,?,?,?,?,?)
		ON CONFLICT(account_id) DO UPDATE SET
			institution_id = excluded.institution_id,
			iban = excluded.iban,
			currency = excluded.currency,
			mask = excluded.mask,
			name = excluded.name,
			official_name = excluded.official_name,
			type = excluded.type,
			updated_at = excluded.updated_at`,
		a.AccountID, a.InstitutionID, a.IBAN, a.Currency, a.Mask, a.Name,
		a.OfficialName, string(a.Type), now.Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("upsert account: %w", err)
	}
	return nil
}

func (r *AccountRepo) Get(ctx context.Context, id string) (*domain.CanonicalAccount, error) {
	row := r.q.QueryRowContext(ctx,
		`SELECT account_id, institution_id, iban, currency, mask, name, official_name, type
		FROM accounts WHERE account_id = ?`, id,
	)
	a, err := scanAccount(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("account %s: %w", id, ErrNotFound)
	}
	return a, err
}

func (r *AccountRepo) List(ctx context.Context) ([]domain.CanonicalAccount, error) {
	rows, err := r.q.QueryContext(ctx,
		`SELECT account_id, institution_id, iban, currency, mask, name, official_name, type
		FROM accounts ORDER BY account_id`,
	)
	if err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}
	defer rows.Close()

	var accounts []domain.CanonicalAccount
	for rows.Next() {
		a, err := scanAccount(rows)
		if err != nil {
			return nil, fmt.Errorf("scan: %w", err)
		}
		accounts = append(accounts, *a)
	}
	return accounts, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanAccount(s rowScanner) (*domain.CanonicalAccount, error) {
	var a domain.CanonicalAccount
	var typ string
	if err := s.Scan(&a.AccountID, &a.InstitutionID, &a.IBAN, &a.Currency, &a.Mask,
		&a.Name, &a.OfficialName, &typ); err != nil {
		return nil, err
	}
	a.Type = domain.AccountType(typ)
	return &a, nil
}
