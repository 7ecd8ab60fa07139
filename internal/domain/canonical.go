package domain

import "cloud.google.com/go/civil"

// CanonicalTransaction is the institution-independent transaction record.
// Amount is in minor currency units. Raw holds the record it was built from,
// after any institution corrections, and is used for ordering keys.
type CanonicalTransaction struct {
	Date          civil.Date  `json:"date"`
	Amount        int64       `json:"amount"`
	Currency      string      `json:"currency"`
	PayeeName     string      `json:"payee_name"`
	Notes         string      `json:"notes,omitempty"`
	TransactionID string      `json:"transaction_id,omitempty"`
	Booked        bool        `json:"booked"`
	Raw           Transaction `json:"raw"`
}

// Snapshot is everything one fetch cycle returned for a single account.
type Snapshot struct {
	Account      Account      `json:"account"`
	Balances     []Balance    `json:"balances"`
	Transactions Transactions `json:"transactions"`
	PayloadHash  string       `json:"-"`
}
