package domain

type Institution struct {
	ID        string   `json:"id"`
	Name      string   `json:"name"`
	BIC       string   `json:"bic,omitempty"`
	Countries []string `json:"countries,omitempty"`
	Logo      string   `json:"logo,omitempty"`
}

// Account is the raw account record as reported by the aggregator.
type Account struct {
	ID              string       `json:"id"`
	ResourceID      string       `json:"resourceId,omitempty"`
	IBAN            string       `json:"iban,omitempty"`
	Currency        string       `json:"currency,omitempty"`
	Name            string       `json:"name,omitempty"`
	DisplayName     string       `json:"displayName,omitempty"`
	Product         string       `json:"product,omitempty"`
	OwnerName       string       `json:"ownerName,omitempty"`
	CashAccountType string       `json:"cashAccountType,omitempty"`
	InstitutionID   string       `json:"institution_id"`
	Institution     *Institution `json:"institution,omitempty"`
}

type AccountType string

const (
	AccountChecking AccountType = "checking"
	AccountSavings  AccountType = "savings"
	AccountCredit   AccountType = "credit"
)

// CanonicalAccount is the normalized account the ledger consumes.
type CanonicalAccount struct {
	AccountID     string      `json:"account_id"`
	InstitutionID string      `json:"institution_id"`
	IBAN          string      `json:"iban,omitempty"`
	Currency      string      `json:"currency,omitempty"`
	Mask          string      `json:"mask"`
	Name          string      `json:"name"`
	OfficialName  string      `json:"official_name"`
	Type          AccountType `json:"type"`
}
