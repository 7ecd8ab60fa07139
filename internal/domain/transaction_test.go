package domain

import (
	"encoding/json"
	"testing"
)

func TestAccountReferenceAcceptsBareString(t *testing.T) {
	var tx Transaction
	data := []byte(`{"creditorAccount": "DE89370400440532013000", "debtorAccount": {"iban": "GB33BUKB20201555555555"}}`)
	if err := json.Unmarshal(data, &tx); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if tx.CreditorAccount == nil || tx.CreditorAccount.IBAN != "DE89370400440532013000" {
		t.Errorf("creditor account = %+v", tx.CreditorAccount)
	}
	if tx.DebtorAccount == nil || tx.DebtorAccount.IBAN != "GB33BUKB20201555555555" {
		t.Errorf("debtor account = %+v", tx.DebtorAccount)
	}
}

func TestCloneIsIndependent(t *testing.T) {
	orig := Transaction{
		CreditorAccount:                        &AccountReference{IBAN: "A"},
		RemittanceInformationUnstructuredArray: []string{"one", "two"},
	}
	c := orig.Clone()
	c.CreditorAccount.IBAN = "B"
	c.RemittanceInformationUnstructuredArray[0] = "changed"

	if orig.CreditorAccount.IBAN != "A" {
		t.Errorf("original account mutated: %q", orig.CreditorAccount.IBAN)
	}
	if orig.RemittanceInformationUnstructuredArray[0] != "one" {
		t.Errorf("original remittance mutated: %q", orig.RemittanceInformationUnstructuredArray[0])
	}
}
