// Package payee derives a display name for the counterparty of a transaction.
package payee

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/wakala/banksync/internal/currency"
	"github.com/wakala/banksync/internal/domain"
)

// Format returns the payee name for tx. Incoming money (zero or positive
// amount) is attributed to the debtor, outgoing money to the creditor. When
// the counterparty name is missing, the other party's name, the unstructured
// remittance text, the joined remittance lines and the additional
// information are tried in order. The result is title-cased and, if the
// counterparty account has an IBAN, suffixed with its masked form. An empty
// string means no field carried a usable name.
func Format(tx domain.Transaction) string {
	outgoing := currency.Sign(tx.TransactionAmount.Amount) < 0

	primary, other := tx.DebtorName, tx.CreditorName
	account := tx.DebtorAccount
	if outgoing {
		primary, other = tx.CreditorName, tx.DebtorName
		account = tx.CreditorAccount
	}

	name := FirstNonEmpty(
		primary,
		other,
		tx.RemittanceInformationUnstructured,
		strings.Join(tx.RemittanceInformationUnstructuredArray, ", "),
		tx.AdditionalInformation,
	)

	var parts []string
	if name != "" {
		parts = append(parts, Title(name))
	}
	if account != nil {
		if masked := MaskIBAN(account.IBAN); masked != "" {
			parts = append(parts, "("+masked+")")
		}
	}
	return strings.Join(parts, " ")
}

// MaskIBAN keeps the first and last four characters of an IBAN. Values too
// short to mask are returned unchanged.
func MaskIBAN(iban string) string {
	iban = strings.TrimSpace(iban)
	if len(iban) < 4 {
		return iban
	}
	return iban[:4] + " XXX " + iban[len(iban)-4:]
}

// Title collapses runs of whitespace and title-cases every word.
func Title(s string) string {
	return cases.Title(language.Und).String(Clean(s))
}

// Clean trims s and collapses internal whitespace to single spaces.
func Clean(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// FirstNonEmpty returns the first value that is not blank after cleaning.
func FirstNonEmpty(values ...string) string {
	for _, v := range values {
		if c := Clean(v); c != "" {
			return c
		}
	}
	return ""
}
