package reconciliation

import (
	"fmt"

	"github.com/wakala/banksync/internal/bank"
	"github.com/wakala/banksync/internal/domain"
)

// Result is the outcome of reconciling one account snapshot.
type Result struct {
	Run             domain.SyncRun                `json:"run"`
	Account         domain.CanonicalAccount       `json:"account"`
	Booked          []domain.CanonicalTransaction `json:"booked"`
	Pending         []domain.CanonicalTransaction `json:"pending"`
	All             []domain.CanonicalTransaction `json:"all"`
	StartingBalance int64                         `json:"starting_balance"`
	Discrepancies   []domain.Discrepancy          `json:"discrepancies"`
}

// Reconcile normalizes a snapshot with adapter. Booked and pending records
// are normalized and sorted separately, All merges both newest-first, and
// the starting balance is reconstructed from the booked records only.
// Reconcile is deterministic; ids and timestamps are left for the caller.
func Reconcile(adapter bank.Adapter, snap *domain.Snapshot) *Result {
	res := &Result{
		Account: adapter.NormalizeAccount(snap.Account),
	}

	booked, bookedDropped := normalize(adapter, snap.Transactions.Booked, true, res)
	pending, pendingDropped := normalize(adapter, snap.Transactions.Pending, false, res)

	res.Booked = adapter.SortTransactions(booked)
	res.Pending = adapter.SortTransactions(pending)

	all := make([]domain.CanonicalTransaction, 0, len(booked)+len(pending))
	all = append(all, res.Booked...)
	all = append(all, res.Pending...)
	res.All = adapter.SortTransactions(all)

	res.StartingBalance = adapter.CalculateStartingBalance(res.Booked, snap.Balances)

	if !bank.HasBase(adapter, snap.Balances) {
		res.Discrepancies = append(res.Discrepancies, domain.Discrepancy{
			Type:     domain.DiscrepancyMissingBalance,
			Severity: domain.SeverityHigh,
			Description: fmt.Sprintf(
				"no usable balance among %d reported; starting balance computed from zero",
				len(snap.Balances),
			),
		})
	}

	res.Run = domain.SyncRun{
		AccountID:       snap.Account.ID,
		InstitutionID:   snap.Account.InstitutionID,
		Adapter:         adapter.Name(),
		PayloadHash:     snap.PayloadHash,
		Status:          domain.SyncCompleted,
		BookedCount:     len(res.Booked),
		PendingCount:    len(res.Pending),
		DroppedCount:    bookedDropped + pendingDropped,
		StartingBalance: res.StartingBalance,
		Currency:        runCurrency(snap),
	}
	for i := range res.Discrepancies {
		res.Discrepancies[i].AccountID = snap.Account.ID
		res.Discrepancies[i].InstitutionID = snap.Account.InstitutionID
	}
	return res
}

func normalize(adapter bank.Adapter, raw []domain.Transaction, booked bool, res *Result) ([]domain.CanonicalTransaction, int) {
	out := make([]domain.CanonicalTransaction, 0, len(raw))
	dropped := 0
	for _, tx := range raw {
		c, ok := adapter.NormalizeTransaction(tx, booked)
		if ok {
			out = append(out, c)
			continue
		}
		dropped++
		if _, dated := bank.FirstDate(tx, bank.DefaultDateOrder); !dated {
			res.Discrepancies = append(res.Discrepancies, domain.Discrepancy{
				Type:          domain.DiscrepancyUndatedTransaction,
				TransactionID: tx.TransactionID,
				Severity:      domain.SeverityLow,
				Description:   fmt.Sprintf("%s transaction without a usable date was dropped", bookedLabel(booked)),
			})
		}
	}
	return out, dropped
}

func bookedLabel(booked bool) string {
	if booked {
		return "booked"
	}
	return "pending"
}

func runCurrency(snap *domain.Snapshot) string {
	if snap.Account.Currency != "" {
		return snap.Account.Currency
	}
	for _, b := range snap.Balances {
		if b.BalanceAmount.Currency != "" {
			return b.BalanceAmount.Currency
		}
	}
	return ""
}
