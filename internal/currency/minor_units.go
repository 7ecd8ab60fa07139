package currency

import (
	"strings"

	"github.com/shopspring/decimal"
)

// DefaultMinorUnits applies to every code not listed in minorUnits.
const DefaultMinorUnits int32 = 2

// minorUnits holds the ISO 4217 exponents that differ from the default.
// Codes without a minor unit (metals, funds, testing codes) are scaled by 1.
var minorUnits = map[string]int32{
	// three decimals
	"BHD": 3, "IQD": 3, "JOD": 3, "KWD": 3, "LYD": 3, "OMR": 3, "TND": 3,

	// no decimals
	"BIF": 0, "CLP": 0, "DJF": 0, "GNF": 0, "ISK": 0, "JPY": 0, "KMF": 0,
	"KRW": 0, "PYG": 0, "RWF": 0, "UGX": 0, "UYI": 0, "VND": 0, "VUV": 0,
	"XAF": 0, "XOF": 0, "XPF": 0,

	// four decimals
	"CLF": 4, "UYW": 4,

	// no minor unit
	"XAG": 0, "XAU": 0, "XBA": 0, "XBB": 0, "XBC": 0, "XBD": 0, "XDR": 0,
	"XPD": 0, "XPT": 0, "XSU": 0, "XTS": 0, "XUA": 0, "XXX": 0,
}

// MinorUnits returns the number of decimal places of the currency code.
func MinorUnits(code string) int32 {
	if n, ok := minorUnits[strings.ToUpper(strings.TrimSpace(code))]; ok {
		return n
	}
	return DefaultMinorUnits
}

// Parse reads a decimal amount string. ok is false for empty or malformed
// input.
func Parse(amount string) (d decimal.Decimal, ok bool) {
	amount = strings.TrimSpace(amount)
	if amount == "" {
		return decimal.Zero, false
	}
	d, err := decimal.NewFromString(amount)
	if err != nil {
		return decimal.Zero, false
	}
	return d, true
}

// ToMinor converts a decimal amount string into integer minor units of the
// given currency. The conversion is exact; any digits beyond the currency's
// precision are rounded half away from zero. Malformed or empty input
// yields 0.
func ToMinor(amount, code string) int64 {
	d, ok := Parse(amount)
	if !ok {
		return 0
	}
	return d.Shift(MinorUnits(code)).Round(0).IntPart()
}

// FromMinor renders minor units back to a fixed-point decimal string.
func FromMinor(minor int64, code string) string {
	exp := MinorUnits(code)
	return decimal.New(minor, -exp).StringFixed(exp)
}

// Sign reports -1, 0 or 1 for the amount. Malformed input counts as zero.
func Sign(amount string) int {
	d, _ := Parse(amount)
	return d.Sign()
}
