package bank

import (
	"strings"

	"cloud.google.com/go/civil"

	"github.com/wakala/banksync/internal/currency"
	"github.com/wakala/banksync/internal/domain"
	"github.com/wakala/banksync/internal/payee"
)

// DefaultBalancePreference is the order in which balance types are tried
// as the base of the starting balance.
var DefaultBalancePreference = []domain.BalanceType{
	domain.BalanceClosingBooked,
	domain.BalanceExpected,
	domain.BalanceForwardAvailable,
	domain.BalanceInterimAvailable,
	domain.BalanceInterimBooked,
	domain.BalanceNonInvoiced,
	domain.BalanceOpeningBooked,
}

// Default is the adapter used for any institution without a Variant.
// The zero value uses DefaultDateOrder and DefaultBalancePreference.
type Default struct {
	DateOrder         []DateField
	BalancePreference []domain.BalanceType
}

func NewDefault() Default {
	return Default{}
}

func (d Default) Name() string { return "default" }

func (d Default) dateOrder() []DateField {
	if len(d.DateOrder) == 0 {
		return DefaultDateOrder
	}
	return d.DateOrder
}

func (d Default) balancePreference() []domain.BalanceType {
	if len(d.BalancePreference) == 0 {
		return DefaultBalancePreference
	}
	return d.BalancePreference
}

func (d Default) NormalizeAccount(acc domain.Account) domain.CanonicalAccount {
	iban := strings.TrimSpace(acc.IBAN)
	mask := "0000"
	if len(iban) >= 4 {
		mask = iban[len(iban)-4:]
	}

	var institutionName string
	if acc.Institution != nil {
		institutionName = acc.Institution.Name
	}

	var parts []string
	if label := payee.FirstNonEmpty(acc.DisplayName, acc.Name, acc.Product, institutionName); label != "" {
		parts = append(parts, label)
	}
	if iban != "" {
		parts = append(parts, "(XXX "+mask+")")
	}
	if c := strings.TrimSpace(acc.Currency); c != "" {
		parts = append(parts, c)
	}

	return domain.CanonicalAccount{
		AccountID:     acc.ID,
		InstitutionID: acc.InstitutionID,
		IBAN:          iban,
		Currency:      strings.TrimSpace(acc.Currency),
		Mask:          mask,
		Name:          strings.Join(parts, " "),
		OfficialName:  payee.FirstNonEmpty(acc.Product, "integration-"+acc.InstitutionID),
		Type:          domain.AccountChecking,
	}
}

func (d Default) NormalizeTransaction(tx domain.Transaction, booked bool) (domain.CanonicalTransaction, bool) {
	when, ok := FirstDate(tx, d.dateOrder())
	if !ok {
		return domain.CanonicalTransaction{}, false
	}

	code := strings.TrimSpace(tx.TransactionAmount.Currency)
	return domain.CanonicalTransaction{
		Date:      civil.DateOf(when),
		Amount:    currency.ToMinor(tx.TransactionAmount.Amount, code),
		Currency:  code,
		PayeeName: payee.Format(tx),
		Notes: payee.FirstNonEmpty(
			tx.RemittanceInformationUnstructured,
			strings.Join(tx.RemittanceInformationUnstructuredArray, ", "),
		),
		TransactionID: strings.TrimSpace(tx.TransactionID),
		Booked:        booked,
		Raw:           tx.Clone(),
	}, true
}

func (d Default) SortTransactions(txs []domain.CanonicalTransaction) []domain.CanonicalTransaction {
	return SortNewestFirst(txs, d.dateOrder(), nil)
}

func (d Default) CalculateStartingBalance(txs []domain.CanonicalTransaction, balances []domain.Balance) int64 {
	base, _ := d.StartingBase(balances)
	return StartingBalance(base, txs)
}

// StartingBase selects by the configured preference order.
func (d Default) StartingBase(balances []domain.Balance) (int64, bool) {
	return SelectBalance(balances, d.balancePreference())
}
