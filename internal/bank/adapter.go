// Package bank turns raw aggregator records into canonical accounts and
// transactions. Every institution is served by an Adapter; institutions
// with known data defects get a Variant that corrects the record and then
// delegates to the Default behavior.
package bank

import (
	"github.com/wakala/banksync/internal/domain"
)

// Adapter normalizes the records of one institution.
//
// Implementations must be pure: the same input always yields the same
// output, inputs are never modified, and malformed data degrades to a
// best-effort value instead of an error.
type Adapter interface {
	// Name identifies the adapter in sync runs and logs.
	Name() string

	NormalizeAccount(acc domain.Account) domain.CanonicalAccount

	// NormalizeTransaction returns ok=false when the record must be
	// dropped, for example because it carries no usable date.
	NormalizeTransaction(tx domain.Transaction, booked bool) (out domain.CanonicalTransaction, ok bool)

	// SortTransactions returns a newest-first copy of txs. Records that
	// compare equal keep their input order.
	SortTransactions(txs []domain.CanonicalTransaction) []domain.CanonicalTransaction

	// CalculateStartingBalance reconstructs the balance before the
	// earliest of txs, in minor units.
	CalculateStartingBalance(txs []domain.CanonicalTransaction, balances []domain.Balance) int64
}
