// Command generate writes synthetic account snapshots into
// testdata/snapshots. Every snapshot is built backwards from a chosen
// starting balance, so a correct sync must reproduce it exactly.
package main

import (
	"encoding/json"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"time"

	"github.com/shopspring/decimal"

	"github.com/wakala/banksync/internal/domain"
)

type profile struct {
	accountID     string
	institutionID string
	institution   string
	currency      string
	iban          string
	start         decimal.Decimal
	booked        int
	pending       int
	balanceType   string
	// invert reports amounts and balance with the card issuer's sign.
	invert bool
}

var payees = []string{
	"Lidl", "Rewe", "Deutsche Bahn", "Spotify", "Stadtwerke", "Aral",
	"Amazon", "Apotheke am Markt", "Miete Hausverwaltung", "Gehalt ACME GmbH",
}

func main() {
	rng := rand.New(rand.NewSource(42))
	dir := filepath.Join(findTestdataDir(), "snapshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		panic(err)
	}

	profiles := []profile{
		{"acc-revolut-001", "REVOLUT_REVOGB21", "Revolut", "EUR", "LT603250012345678901", decimal.RequireFromString("1250.00"), 30, 3, "closingBooked", false},
		{"acc-amex-001", "AMERICAN_EXPRESS_AESUDEF1", "American Express", "EUR", "", decimal.RequireFromString("-420.15"), 12, 2, "information", true},
		{"acc-nobalance-001", "BUNQ_BUNQNL2A", "bunq", "EUR", "NL91BUNQ0417164300", decimal.Zero, 8, 0, "", false},
	}

	end := time.Date(2024, 3, 31, 0, 0, 0, 0, time.UTC)
	for _, p := range profiles {
		snap := buildSnapshot(rng, p, end)
		writeJSONFile(filepath.Join(dir, p.accountID+".json"), snap)
		fmt.Printf("%s (%s): %d booked, %d pending, starting balance %s\n",
			p.accountID, p.institutionID, p.booked, p.pending, p.start.StringFixed(2))
	}

	fmt.Println("Snapshot generation complete.")
}

// buildSnapshot walks forward from the starting balance, so the reported
// balance minus the booked amounts gives back p.start.
func buildSnapshot(rng *rand.Rand, p profile, end time.Time) domain.Snapshot {
	snap := domain.Snapshot{
		Account: domain.Account{
			ID:            p.accountID,
			IBAN:          p.iban,
			Currency:      p.currency,
			OwnerName:     "Jane Doe",
			InstitutionID: p.institutionID,
			Institution:   &domain.Institution{ID: p.institutionID, Name: p.institution},
		},
	}

	sign := decimal.NewFromInt(1)
	if p.invert {
		sign = sign.Neg()
	}

	balance := p.start
	for i := 0; i < p.booked; i++ {
		amount := randomAmount(rng)
		balance = balance.Add(amount)
		day := end.AddDate(0, 0, -(p.booked - i))
		snap.Transactions.Booked = append(snap.Transactions.Booked,
			transaction(rng, fmt.Sprintf("%s-B%03d", p.accountID, i+1), day, amount.Mul(sign), p.currency))
	}

	for i := 0; i < p.pending; i++ {
		snap.Transactions.Pending = append(snap.Transactions.Pending,
			transaction(rng, "", end.AddDate(0, 0, i), randomAmount(rng).Mul(sign), p.currency))
	}

	if p.balanceType != "" {
		snap.Balances = []domain.Balance{{
			BalanceAmount: domain.Amount{Amount: balance.Mul(sign).StringFixed(2), Currency: p.currency},
			BalanceType:   domain.ParseBalanceType(p.balanceType),
			ReferenceDate: end.Format("2006-01-02"),
		}}
	}
	return snap
}

func transaction(rng *rand.Rand, id string, day time.Time, amount decimal.Decimal, code string) domain.Transaction {
	tx := domain.Transaction{
		TransactionID:     id,
		BookingDate:       day.Format("2006-01-02"),
		ValueDate:         day.Format("2006-01-02"),
		TransactionAmount: domain.Amount{Amount: amount.StringFixed(2), Currency: code},
	}
	name := payees[rng.Intn(len(payees))]
	if amount.IsNegative() {
		tx.CreditorName = name
	} else {
		tx.DebtorName = name
	}
	tx.RemittanceInformationUnstructured = fmt.Sprintf("Ref %06d", rng.Intn(1000000))
	return tx
}

// randomAmount returns a two-decimal amount, mostly debits.
func randomAmount(rng *rand.Rand) decimal.Decimal {
	cents := int64(rng.Intn(20000) + 100)
	if rng.Float64() < 0.8 {
		cents = -cents
	}
	return decimal.New(cents, -2)
}

func writeJSONFile(path string, v any) {
	f, err := os.Create(path)
	if err != nil {
		panic(err)
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		panic(err)
	}
}

func findTestdataDir() string {
	candidates := []string{"testdata", "../testdata", "../../testdata"}
	for _, c := range candidates {
		if info, err := os.Stat(c); err == nil && info.IsDir() {
			return c
		}
	}
	return "testdata"
}
