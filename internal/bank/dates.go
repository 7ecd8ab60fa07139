package bank

import (
	"time"

	"github.com/wakala/banksync/internal/domain"
)

// DateField names one of the four date fields of a raw transaction.
type DateField int

const (
	BookingDate DateField = iota
	BookingDateTime
	ValueDate
	ValueDateTime
)

// DefaultDateOrder is the fallback chain used to date a transaction.
var DefaultDateOrder = []DateField{BookingDate, BookingDateTime, ValueDate, ValueDateTime}

func (f DateField) String() string {
	switch f {
	case BookingDate:
		return "bookingDate"
	case BookingDateTime:
		return "bookingDateTime"
	case ValueDate:
		return "valueDate"
	case ValueDateTime:
		return "valueDateTime"
	}
	return "unknown"
}

// Of returns the field's value in tx.
func (f DateField) Of(tx domain.Transaction) string {
	switch f {
	case BookingDate:
		return tx.BookingDate
	case BookingDateTime:
		return tx.BookingDateTime
	case ValueDate:
		return tx.ValueDate
	case ValueDateTime:
		return tx.ValueDateTime
	}
	return ""
}

var dateLayouts = []string{
	"2006-01-02",
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999Z0700",
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05",
}

// ParseDate accepts a plain date or a date-time with or without offset.
// The returned time keeps the offset as written, so its calendar date is
// the one the institution reported.
func ParseDate(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// FirstDate walks order and returns the first field that parses. Fields
// that are present but malformed are skipped.
func FirstDate(tx domain.Transaction, order []DateField) (time.Time, bool) {
	for _, f := range order {
		if t, ok := ParseDate(f.Of(tx)); ok {
			return t, true
		}
	}
	return time.Time{}, false
}
