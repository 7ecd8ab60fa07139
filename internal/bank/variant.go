package bank

import (
	"github.com/wakala/banksync/internal/domain"
)

// Fixup corrects a private copy of a raw transaction before it is
// normalized. Returning false drops the record.
type Fixup func(tx *domain.Transaction, booked bool) bool

// AccountFixup adjusts a normalized account.
type AccountFixup func(out *domain.CanonicalAccount, raw domain.Account)

// Finisher adjusts a normalized transaction.
type Finisher func(out *domain.CanonicalTransaction)

// Variant is an Adapter for institutions whose data needs correcting. Each
// hook left nil falls through to Base.
type Variant struct {
	Label          string
	InstitutionIDs []string

	// Base defaults to NewDefault().
	Base Adapter

	Account []AccountFixup
	Fixups  []Fixup
	Finish  []Finisher

	// SortDates and TieBreak replace the base ordering when either is set.
	SortDates []DateField
	TieBreak  TieBreak

	// Balance replaces the base balance selection. When it finds nothing
	// the base calculation is used.
	Balance BalanceBase
}

func (v *Variant) base() Adapter {
	if v.Base == nil {
		return NewDefault()
	}
	return v.Base
}

func (v *Variant) Name() string { return v.Label }

// Serves reports whether id is one of the variant's institution ids.
func (v *Variant) Serves(id string) bool {
	for _, own := range v.InstitutionIDs {
		if own == id {
			return true
		}
	}
	return false
}

func (v *Variant) NormalizeAccount(acc domain.Account) domain.CanonicalAccount {
	out := v.base().NormalizeAccount(acc)
	for _, fix := range v.Account {
		fix(&out, acc)
	}
	return out
}

func (v *Variant) NormalizeTransaction(tx domain.Transaction, booked bool) (domain.CanonicalTransaction, bool) {
	fixed := tx.Clone()
	for _, fix := range v.Fixups {
		if !fix(&fixed, booked) {
			return domain.CanonicalTransaction{}, false
		}
	}

	out, ok := v.base().NormalizeTransaction(fixed, booked)
	if !ok {
		return out, false
	}
	for _, finish := range v.Finish {
		finish(&out)
	}
	return out, true
}

func (v *Variant) SortTransactions(txs []domain.CanonicalTransaction) []domain.CanonicalTransaction {
	if v.SortDates == nil && v.TieBreak == nil {
		return v.base().SortTransactions(txs)
	}
	order := v.SortDates
	if order == nil {
		order = DefaultDateOrder
	}
	return SortNewestFirst(txs, order, v.TieBreak)
}

func (v *Variant) CalculateStartingBalance(txs []domain.CanonicalTransaction, balances []domain.Balance) int64 {
	if v.Balance != nil {
		if base, ok := v.Balance(balances); ok {
			return StartingBalance(base, txs)
		}
	}
	return v.base().CalculateStartingBalance(txs, balances)
}

func (v *Variant) StartingBase(balances []domain.Balance) (int64, bool) {
	if v.Balance != nil {
		if base, ok := v.Balance(balances); ok {
			return base, true
		}
	}
	if sel, ok := v.base().(BalanceSelector); ok {
		return sel.StartingBase(balances)
	}
	return 0, HasKnownBalance(balances)
}
