package bank

import (
	"regexp"
	"strings"
	"time"

	"cloud.google.com/go/civil"
)

// Extraction is what a text heuristic recovered from free text. Date is
// the zero value when the text carried none.
type Extraction struct {
	Payee string
	Date  civil.Date
}

// Extractor recovers structured fields from remittance text.
type Extractor func(text string) (Extraction, bool)

var cardPurchaseRe = regexp.MustCompile(`^\(\.\.\d{4}\)\s+(\d{4}-\d{2}-\d{2})(?:\s+\d{2}:\d{2})?\s+(.+)$`)

// CardPurchase reads card lines of the form
// "(..1234) 2025-01-02 09:32 Merchant\Street\City". The merchant is the
// first backslash-separated segment.
func CardPurchase(text string) (Extraction, bool) {
	m := cardPurchaseRe.FindStringSubmatch(strings.TrimSpace(text))
	if m == nil {
		return Extraction{}, false
	}
	d, err := civil.ParseDate(m[1])
	if err != nil {
		return Extraction{}, false
	}
	merchant := strings.TrimSpace(strings.SplitN(m[2], `\`, 2)[0])
	if merchant == "" {
		return Extraction{}, false
	}
	return Extraction{Payee: merchant, Date: d}, true
}

var balticPurchaseRe = regexp.MustCompile(`^PIRKUMS\s+\S+\s+(\d{2}\.\d{2}\.\d{4})\s+[\d.,]+\s+[A-Z]{3}\s+\(\d+\)\s+(.+)$`)

// BalticCardPurchase reads lines of the form
// "PIRKUMS 424242******4242 28.05.2024 12.34 EUR (111111) MERCHANT".
func BalticCardPurchase(text string) (Extraction, bool) {
	m := balticPurchaseRe.FindStringSubmatch(strings.TrimSpace(text))
	if m == nil {
		return Extraction{}, false
	}
	t, err := time.Parse("02.01.2006", m[1])
	if err != nil {
		return Extraction{}, false
	}
	return Extraction{Payee: strings.TrimSpace(m[2]), Date: civil.DateOf(t)}, true
}

var danishPurchaseRe = regexp.MustCompile(`^(?:Dankort-køb|Visa/Dankort|MobilePay|\d{4})\s+([^,]+),`)

// DanishCardPurchase reads "Dankort-køb Store XYZ, Copenhagen" and
// "3127 MAXI ZOO, Copenhagen Nota 12345". Only the merchant is recovered.
func DanishCardPurchase(text string) (Extraction, bool) {
	m := danishPurchaseRe.FindStringSubmatch(strings.TrimSpace(text))
	if m == nil {
		return Extraction{}, false
	}
	merchant := strings.TrimSpace(m[1])
	if merchant == "" {
		return Extraction{}, false
	}
	return Extraction{Payee: merchant}, true
}
