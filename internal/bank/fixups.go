package bank

import (
	"regexp"
	"strings"

	"github.com/wakala/banksync/internal/currency"
	"github.com/wakala/banksync/internal/domain"
	"github.com/wakala/banksync/internal/payee"
)

// OnlyPending applies fix to pending records and passes booked ones through.
func OnlyPending(fix Fixup) Fixup {
	return func(tx *domain.Transaction, booked bool) bool {
		if booked {
			return true
		}
		return fix(tx, booked)
	}
}

// OnlyBooked applies fix to booked records and passes pending ones through.
func OnlyBooked(fix Fixup) Fixup {
	return func(tx *domain.Transaction, booked bool) bool {
		if !booked {
			return true
		}
		return fix(tx, booked)
	}
}

// SkipPending drops every pending record.
func SkipPending() Fixup {
	return func(_ *domain.Transaction, booked bool) bool {
		return booked
	}
}

// InvertSign flips the sign of the transaction amount.
func InvertSign() Fixup {
	return func(tx *domain.Transaction, _ bool) bool {
		tx.TransactionAmount.Amount = negateAmount(tx.TransactionAmount.Amount)
		return true
	}
}

func negateAmount(amount string) string {
	a := strings.TrimSpace(amount)
	switch {
	case a == "":
		return amount
	case strings.HasPrefix(a, "-"):
		return a[1:]
	case strings.HasPrefix(a, "+"):
		return "-" + a[1:]
	}
	return "-" + a
}

// KeepIDIf clears transaction ids rejected by valid.
func KeepIDIf(valid func(id string) bool) Fixup {
	return func(tx *domain.Transaction, _ bool) bool {
		if tx.TransactionID != "" && !valid(tx.TransactionID) {
			tx.TransactionID = ""
		}
		return true
	}
}

// ClearID removes the transaction id.
func ClearID() Fixup {
	return func(tx *domain.Transaction, _ bool) bool {
		tx.TransactionID = ""
		return true
	}
}

// UseInternalID replaces the transaction id with the internal id when one
// is present.
func UseInternalID() Fixup {
	return func(tx *domain.Transaction, _ bool) bool {
		if id := strings.TrimSpace(tx.InternalTransactionID); id != "" {
			tx.TransactionID = id
		}
		return true
	}
}

// IDLength accepts ids of exactly n characters.
func IDLength(n int) func(string) bool {
	return func(id string) bool { return len(id) == n }
}

// NotPlaceholder rejects ids made only of zeros, dashes and spaces.
func NotPlaceholder(id string) bool {
	return strings.Trim(id, "0- ") != ""
}

// PreferDates dates the record by the first populated field in order,
// overriding the default chain.
func PreferDates(order ...DateField) Fixup {
	return func(tx *domain.Transaction, _ bool) bool {
		for _, f := range order {
			if v := f.Of(*tx); v != "" {
				tx.BookingDate = v
				tx.BookingDateTime = ""
				return true
			}
		}
		return true
	}
}

// CaptureRemittance replaces the unstructured remittance text with the
// first capture group of re when it matches.
func CaptureRemittance(re *regexp.Regexp) Fixup {
	return func(tx *domain.Transaction, _ bool) bool {
		if m := re.FindStringSubmatch(tx.RemittanceInformationUnstructured); len(m) > 1 {
			tx.RemittanceInformationUnstructured = strings.TrimSpace(m[1])
		}
		return true
	}
}

// RemittanceFromStructured fills missing unstructured remittance text from
// the structured fields, joining structured lines with spaces.
func RemittanceFromStructured() Fixup {
	return func(tx *domain.Transaction, _ bool) bool {
		if payee.Clean(tx.RemittanceInformationUnstructured) != "" {
			return true
		}
		tx.RemittanceInformationUnstructured = payee.FirstNonEmpty(
			tx.RemittanceInformationStructured,
			strings.Join(tx.RemittanceInformationStructuredArray, " "),
		)
		return true
	}
}

// TextField reads free text from a raw transaction.
type TextField func(tx domain.Transaction) string

func StructuredRemittance(tx domain.Transaction) string { return tx.RemittanceInformationStructured }
func AdditionalInformation(tx domain.Transaction) string { return tx.AdditionalInformation }

// RemittanceText is the unstructured text, or its lines joined by spaces.
func RemittanceText(tx domain.Transaction) string {
	return payee.FirstNonEmpty(
		tx.RemittanceInformationUnstructured,
		strings.Join(tx.RemittanceInformationUnstructuredArray, " "),
	)
}

// NameFrom fills the counterparty name from field when the institution
// leaves it empty.
func NameFrom(field TextField) Fixup {
	return func(tx *domain.Transaction, _ bool) bool {
		setCounterparty(tx, payee.Clean(field(*tx)))
		return true
	}
}

// ExtractFromText runs ex on the remittance text and fills the
// counterparty name and booking date it recovers.
func ExtractFromText(ex Extractor) Fixup {
	return func(tx *domain.Transaction, _ bool) bool {
		e, ok := ex(RemittanceText(*tx))
		if !ok {
			return true
		}
		setCounterparty(tx, e.Payee)
		if e.Date.IsValid() {
			tx.BookingDate = e.Date.String()
			tx.BookingDateTime = ""
		}
		return true
	}
}

// setCounterparty writes name into the role the payee is read from, unless
// that role already has a name.
func setCounterparty(tx *domain.Transaction, name string) {
	if name == "" {
		return
	}
	if currency.Sign(tx.TransactionAmount.Amount) < 0 {
		if payee.Clean(tx.CreditorName) == "" {
			tx.CreditorName = name
		}
		return
	}
	if payee.Clean(tx.DebtorName) == "" {
		tx.DebtorName = name
	}
}

// AsCredit marks the account as a credit card account.
func AsCredit() AccountFixup {
	return func(out *domain.CanonicalAccount, _ domain.Account) {
		out.Type = domain.AccountCredit
	}
}
