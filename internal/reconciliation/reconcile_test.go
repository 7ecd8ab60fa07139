package reconciliation

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/wakala/banksync/internal/bank"
	"github.com/wakala/banksync/internal/domain"
)

func eur(amount string) domain.Amount {
	return domain.Amount{Amount: amount, Currency: "EUR"}
}

func sampleSnapshot() *domain.Snapshot {
	return &domain.Snapshot{
		Account: domain.Account{
			ID:            "acc-1",
			IBAN:          "DE89370400440532013000",
			Currency:      "EUR",
			Product:       "Girokonto",
			InstitutionID: "SANDBOX_BANK",
		},
		Balances: []domain.Balance{
			{BalanceAmount: eur("150.00"), BalanceType: domain.BalanceInterimAvailable},
		},
		Transactions: domain.Transactions{
			Booked: []domain.Transaction{
				{TransactionID: "b1", BookingDate: "2024-01-01", TransactionAmount: eur("100.00"), DebtorName: "Employer"},
				{TransactionID: "b2", BookingDate: "2024-01-03", TransactionAmount: eur("-25.00"), CreditorName: "Grocer"},
				{TransactionID: "b3", TransactionAmount: eur("-1.00")},
			},
			Pending: []domain.Transaction{
				{TransactionID: "p1", BookingDate: "2024-01-04", TransactionAmount: eur("-10.00"), CreditorName: "Cafe"},
				{TransactionID: "p2", ValueDate: "2024-01-02", TransactionAmount: eur("-5.00"), CreditorName: "Kiosk"},
			},
		},
		PayloadHash: "hash-1",
	}
}

func ids(txs []domain.CanonicalTransaction) []string {
	out := make([]string, 0, len(txs))
	for _, tx := range txs {
		out = append(out, tx.TransactionID)
	}
	return out
}

func TestReconcile(t *testing.T) {
	res := Reconcile(bank.NewDefault(), sampleSnapshot())

	if diff := cmp.Diff([]string{"b2", "b1"}, ids(res.Booked)); diff != "" {
		t.Errorf("booked (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"p1", "p2"}, ids(res.Pending)); diff != "" {
		t.Errorf("pending (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"p1", "b2", "p2", "b1"}, ids(res.All)); diff != "" {
		t.Errorf("all (-want +got):\n%s", diff)
	}
	for _, tx := range res.All {
		if tx.Booked != (tx.TransactionID[0] == 'b') {
			t.Errorf("%s booked flag = %v", tx.TransactionID, tx.Booked)
		}
	}

	// 15000 - (10000 - 2500); pending records do not move the start.
	if res.StartingBalance != 7500 {
		t.Errorf("starting balance got=%d want=7500", res.StartingBalance)
	}

	if res.Run.DroppedCount != 1 || res.Run.BookedCount != 2 || res.Run.PendingCount != 2 {
		t.Errorf("run counts = %+v", res.Run)
	}
	if res.Run.Adapter != "default" || res.Run.PayloadHash != "hash-1" || res.Run.Currency != "EUR" {
		t.Errorf("run = %+v", res.Run)
	}

	if len(res.Discrepancies) != 1 {
		t.Fatalf("discrepancies = %+v", res.Discrepancies)
	}
	d := res.Discrepancies[0]
	if d.Type != domain.DiscrepancyUndatedTransaction || d.TransactionID != "b3" || d.AccountID != "acc-1" {
		t.Errorf("discrepancy = %+v", d)
	}

	if res.Account.Name != "Girokonto (XXX 3000) EUR" {
		t.Errorf("account name = %q", res.Account.Name)
	}
}

func TestReconcileMissingBalance(t *testing.T) {
	snap := sampleSnapshot()
	snap.Balances = []domain.Balance{{BalanceAmount: eur("99.00"), BalanceType: domain.BalanceUnknown}}

	res := Reconcile(bank.NewDefault(), snap)
	if res.StartingBalance != -7500 {
		t.Errorf("starting balance got=%d want=-7500", res.StartingBalance)
	}
	var found bool
	for _, d := range res.Discrepancies {
		if d.Type == domain.DiscrepancyMissingBalance {
			found = true
			if d.Severity != domain.SeverityHigh {
				t.Errorf("severity = %s", d.Severity)
			}
		}
	}
	if !found {
		t.Error("missing balance not reported")
	}
}

func TestReconcileFlagsBalanceTheAdapterCannotUse(t *testing.T) {
	tests := []struct {
		name        string
		institution string
		balanceType domain.BalanceType
		start       int64
		flagged     bool
	}{
		// information is outside the default preference list.
		{"default with information only", "SANDBOX_BANK", domain.BalanceInformation, -7500, true},
		{"default with previously closed only", "SANDBOX_BANK", domain.BalancePreviouslyClosedBooked, -7500, true},
		{"card issuer reading information", "AMERICAN_EXPRESS_AESUDEF1", domain.BalanceInformation, -50000 + 7500, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			snap := sampleSnapshot()
			snap.Account.InstitutionID = tt.institution
			snap.Balances = []domain.Balance{{BalanceAmount: eur("500.00"), BalanceType: tt.balanceType}}

			res := Reconcile(bank.DefaultRegistry().Resolve(tt.institution), snap)
			if res.StartingBalance != tt.start {
				t.Errorf("starting balance got=%d want=%d", res.StartingBalance, tt.start)
			}
			flagged := false
			for _, d := range res.Discrepancies {
				if d.Type == domain.DiscrepancyMissingBalance {
					flagged = true
				}
			}
			if flagged != tt.flagged {
				t.Errorf("missing balance flagged=%v want=%v", flagged, tt.flagged)
			}
		})
	}
}

func TestReconcileSuppressedPendingIsNotADiscrepancy(t *testing.T) {
	snap := sampleSnapshot()
	snap.Account.InstitutionID = "ING_INGBROBU"
	snap.Transactions.Booked = snap.Transactions.Booked[:2]

	res := Reconcile(bank.DefaultRegistry().Resolve(snap.Account.InstitutionID), snap)
	if len(res.Pending) != 0 {
		t.Errorf("pending kept: %v", ids(res.Pending))
	}
	if res.Run.DroppedCount != 2 {
		t.Errorf("dropped got=%d want=2", res.Run.DroppedCount)
	}
	if len(res.Discrepancies) != 0 {
		t.Errorf("discrepancies = %+v", res.Discrepancies)
	}
}

func TestReconcileIsDeterministic(t *testing.T) {
	a := Reconcile(bank.NewDefault(), sampleSnapshot())
	b := Reconcile(bank.NewDefault(), sampleSnapshot())
	if diff := cmp.Diff(a, b); diff != "" {
		t.Errorf("results differ (-a +b):\n%s", diff)
	}
}
