package bank

import (
	"github.com/wakala/banksync/internal/currency"
	"github.com/wakala/banksync/internal/domain"
)

// BalanceBase picks the snapshot amount, in minor units, that a starting
// balance is reconstructed from. ok is false when the balances hold nothing
// it can use.
type BalanceBase func(balances []domain.Balance) (amount int64, ok bool)

// BalanceSelector is implemented by adapters that can report the snapshot
// amount their starting balance is reconstructed from. ok is false when
// none of the balances is usable and the reconstruction starts from zero.
type BalanceSelector interface {
	StartingBase(balances []domain.Balance) (amount int64, ok bool)
}

// SelectBalance returns the amount of the first balance whose type appears
// earliest in preference.
func SelectBalance(balances []domain.Balance, preference []domain.BalanceType) (int64, bool) {
	for _, want := range preference {
		for _, b := range balances {
			if b.BalanceType == want {
				return currency.ToMinor(b.BalanceAmount.Amount, b.BalanceAmount.Currency), true
			}
		}
	}
	return 0, false
}

// StartingBalance subtracts every transaction amount from the snapshot.
func StartingBalance(snapshot int64, txs []domain.CanonicalTransaction) int64 {
	for _, tx := range txs {
		snapshot -= tx.Amount
	}
	return snapshot
}

// HasBase reports whether adapter finds a usable balance. Adapters that do
// not implement BalanceSelector are trusted with any recognized type.
func HasBase(adapter Adapter, balances []domain.Balance) bool {
	if sel, ok := adapter.(BalanceSelector); ok {
		_, found := sel.StartingBase(balances)
		return found
	}
	return HasKnownBalance(balances)
}

// HasKnownBalance reports whether any balance carries a recognized type.
func HasKnownBalance(balances []domain.Balance) bool {
	for _, b := range balances {
		if b.BalanceType != domain.BalanceUnknown {
			return true
		}
	}
	return false
}

// Prefer selects by the given preference order.
func Prefer(types ...domain.BalanceType) BalanceBase {
	return func(balances []domain.Balance) (int64, bool) {
		return SelectBalance(balances, types)
	}
}

// Negate flips the sign of base, for institutions that report debt as a
// positive balance.
func Negate(base BalanceBase) BalanceBase {
	return func(balances []domain.Balance) (int64, bool) {
		v, ok := base(balances)
		return -v, ok
	}
}

// Sum adds every base that resolves. It is ok when at least one does.
func Sum(bases ...BalanceBase) BalanceBase {
	return func(balances []domain.Balance) (int64, bool) {
		var total int64
		found := false
		for _, base := range bases {
			if v, ok := base(balances); ok {
				total += v
				found = true
			}
		}
		return total, found
	}
}
