package ingestion

import (
	"errors"
	"testing"

	"github.com/wakala/banksync/internal/domain"
	"github.com/wakala/banksync/internal/reconciliation"
)

const sampleJSON = `{
  "account": {"id": "acc-1", "iban": "DE02500105170137075030", "currency": "EUR", "product": "Girokonto", "institution_id": "ING_INGDDEFF"},
  "balances": [{"balanceAmount": {"amount": "3596.87", "currency": "EUR"}, "balanceType": "interimBooked"}],
  "transactions": {
    "booked": [{"transactionId": "1", "bookingDate": "2023-12-29", "transactionAmount": {"amount": "-4.00", "currency": "EUR"}, "creditorAccount": "DE89370400440532013000"}],
    "pending": []
  },
  "status": "READY"
}`

func TestDecodeSnapshot(t *testing.T) {
	snap, err := DecodeSnapshot([]byte(sampleJSON))
	if err != nil {
		t.Fatalf("DecodeSnapshot: %v", err)
	}
	if snap.Account.InstitutionID != "ING_INGDDEFF" {
		t.Errorf("institution = %q", snap.Account.InstitutionID)
	}
	if len(snap.Balances) != 1 || snap.Balances[0].BalanceType != domain.BalanceInterimBooked {
		t.Errorf("balances = %+v", snap.Balances)
	}
	if len(snap.Transactions.Booked) != 1 || snap.Transactions.Booked[0].CreditorAccount.IBAN != "DE89370400440532013000" {
		t.Errorf("booked = %+v", snap.Transactions.Booked)
	}
	if snap.PayloadHash != Hash([]byte(sampleJSON)) {
		t.Errorf("hash = %q", snap.PayloadHash)
	}
}

func TestDecodeSnapshotInvalid(t *testing.T) {
	for _, in := range []string{"", "   ", "{", `{"balances": "nope"}`} {
		if _, err := DecodeSnapshot([]byte(in)); !errors.Is(err, ErrInvalidSnapshot) {
			t.Errorf("DecodeSnapshot(%q) err = %v", in, err)
		}
	}
}

func TestHashIsStable(t *testing.T) {
	if Hash([]byte("a")) != Hash([]byte("a")) || Hash([]byte("a")) == Hash([]byte("b")) {
		t.Error("unexpected hash behavior")
	}
}

func TestSnapshotNotFoundMatchesAccountNotFound(t *testing.T) {
	if !errors.Is(ErrSnapshotNotFound, reconciliation.ErrAccountNotFound) {
		t.Error("ErrSnapshotNotFound should wrap ErrAccountNotFound")
	}
}
