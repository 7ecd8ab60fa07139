package domain

import (
	"encoding/json"
	"fmt"
)

// Amount is a decimal amount as reported by the aggregator, kept as text so
// no precision is lost before scaling.
type Amount struct {
	Amount   string `json:"amount"`
	Currency string `json:"currency"`
}

// AccountReference identifies a counterparty account. Some institutions send
// a bare string instead of an object; it is read as the IBAN.
type AccountReference struct {
	IBAN      string `json:"iban,omitempty"`
	BBAN      string `json:"bban,omitempty"`
	MaskedPAN string `json:"maskedPan,omitempty"`
	Currency  string `json:"currency,omitempty"`
}

func (r *AccountReference) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*r = AccountReference{IBAN: s}
		return nil
	}
	type plain AccountReference
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return fmt.Errorf("account reference: %w", err)
	}
	*r = AccountReference(p)
	return nil
}

// Transaction is a raw transaction record exactly as the aggregator reports
// it. Any field may be empty.
type Transaction struct {
	TransactionID         string `json:"transactionId,omitempty"`
	InternalTransactionID string `json:"internalTransactionId,omitempty"`
	EntryReference        string `json:"entryReference,omitempty"`
	EndToEndID            string `json:"endToEndId,omitempty"`

	BookingDate     string `json:"bookingDate,omitempty"`
	BookingDateTime string `json:"bookingDateTime,omitempty"`
	ValueDate       string `json:"valueDate,omitempty"`
	ValueDateTime   string `json:"valueDateTime,omitempty"`

	TransactionAmount Amount `json:"transactionAmount"`

	CreditorName     string            `json:"creditorName,omitempty"`
	CreditorAccount  *AccountReference `json:"creditorAccount,omitempty"`
	UltimateCreditor string            `json:"ultimateCreditor,omitempty"`
	DebtorName       string            `json:"debtorName,omitempty"`
	DebtorAccount    *AccountReference `json:"debtorAccount,omitempty"`
	UltimateDebtor   string            `json:"ultimateDebtor,omitempty"`

	RemittanceInformationUnstructured      string   `json:"remittanceInformationUnstructured,omitempty"`
	RemittanceInformationUnstructuredArray []string `json:"remittanceInformationUnstructuredArray,omitempty"`
	RemittanceInformationStructured        string   `json:"remittanceInformationStructured,omitempty"`
	RemittanceInformationStructuredArray   []string `json:"remittanceInformationStructuredArray,omitempty"`
	AdditionalInformation                  string   `json:"additionalInformation,omitempty"`

	ProprietaryBankTransactionCode string `json:"proprietaryBankTransactionCode,omitempty"`
	BankTransactionCode            string `json:"bankTransactionCode,omitempty"`
	MerchantCategoryCode           string `json:"merchantCategoryCode,omitempty"`
}

// Clone returns a deep copy so callers can correct fields without touching
// the record they were handed.
func (t Transaction) Clone() Transaction {
	c := t
	if t.CreditorAccount != nil {
		ref := *t.CreditorAccount
		c.CreditorAccount = &ref
	}
	if t.DebtorAccount != nil {
		ref := *t.DebtorAccount
		c.DebtorAccount = &ref
	}
	if t.RemittanceInformationUnstructuredArray != nil {
		c.RemittanceInformationUnstructuredArray = append([]string(nil), t.RemittanceInformationUnstructuredArray...)
	}
	if t.RemittanceInformationStructuredArray != nil {
		c.RemittanceInformationStructuredArray = append([]string(nil), t.RemittanceInformationStructuredArray...)
	}
	return c
}

// Transactions is the booked/pending split the aggregator returns.
type Transactions struct {
	Booked  []Transaction `json:"booked"`
	Pending []Transaction `json:"pending"`
}
