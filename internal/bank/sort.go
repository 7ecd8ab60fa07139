package bank

import (
	"slices"
	"strconv"
	"strings"

	"cloud.google.com/go/civil"

	"github.com/wakala/banksync/internal/domain"
)

// TieBreak orders two transactions that share a date. It follows the
// cmp convention: negative places a first.
type TieBreak func(a, b domain.CanonicalTransaction) int

type sortKey struct {
	tx    domain.CanonicalTransaction
	date  civil.Date
	dated bool
}

// SortNewestFirst returns a copy of txs ordered by the calendar date of the
// first parseable field in order, newest first. Time of day is ignored.
// Equal dates are ordered by tie, then by input position. Records without
// any parseable date sort last.
func SortNewestFirst(txs []domain.CanonicalTransaction, order []DateField, tie TieBreak) []domain.CanonicalTransaction {
	keys := make([]sortKey, len(txs))
	for i, tx := range txs {
		when, ok := FirstDate(tx.Raw, order)
		keys[i] = sortKey{tx: tx, date: civil.DateOf(when), dated: ok}
	}

	slices.SortStableFunc(keys, func(a, b sortKey) int {
		if c := compareNewestFirst(a, b); c != 0 {
			return c
		}
		if tie != nil {
			return tie(a.tx, b.tx)
		}
		return 0
	})

	out := make([]domain.CanonicalTransaction, len(keys))
	for i, k := range keys {
		out[i] = k.tx
	}
	return out
}

func compareNewestFirst(a, b sortKey) int {
	switch {
	case a.dated != b.dated:
		if a.dated {
			return -1
		}
		return 1
	case a.date.After(b.date):
		return -1
	case a.date.Before(b.date):
		return 1
	}
	return 0
}

// ByNumericIDDesc places the larger numeric transaction id first. Ids that
// are not numeric leave the pair unordered.
func ByNumericIDDesc(a, b domain.CanonicalTransaction) int {
	x, okA := numericID(a.TransactionID)
	y, okB := numericID(b.TransactionID)
	if !okA || !okB {
		return 0
	}
	switch {
	case x > y:
		return -1
	case x < y:
		return 1
	}
	return 0
}

func numericID(id string) (uint64, bool) {
	id = strings.TrimSpace(id)
	if id == "" {
		return 0, false
	}
	n, err := strconv.ParseUint(id, 10, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}
