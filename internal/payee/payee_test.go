package payee

import (
	"testing"

	"github.com/wakala/banksync/internal/domain"
)

func TestFormat(t *testing.T) {
	tests := []struct {
		name string
		tx   domain.Transaction
		want string
	}{
		{
			name: "incoming uses debtor with masked account",
			tx: domain.Transaction{
				TransactionAmount: domain.Amount{Amount: "328.18", Currency: "EUR"},
				DebtorName:        "string",
				DebtorAccount:     &domain.AccountReference{IBAN: "string"},
			},
			want: "String (stri XXX ring)",
		},
		{
			name: "outgoing uses creditor",
			tx: domain.Transaction{
				TransactionAmount: domain.Amount{Amount: "-12.99", Currency: "EUR"},
				CreditorName:      "ACME  corp",
				CreditorAccount:   &domain.AccountReference{IBAN: "DE89370400440532013000"},
				DebtorName:        "Me",
				DebtorAccount:     &domain.AccountReference{IBAN: "GB33BUKB20201555555555"},
			},
			want: "Acme Corp (DE89 XXX 3000)",
		},
		{
			name: "zero amount counts as incoming",
			tx: domain.Transaction{
				TransactionAmount: domain.Amount{Amount: "0.00"},
				DebtorName:        "refund desk",
				CreditorName:      "shop",
			},
			want: "Refund Desk",
		},
		{
			name: "falls back to other party name",
			tx: domain.Transaction{
				TransactionAmount: domain.Amount{Amount: "-1.00"},
				DebtorName:        "someone",
			},
			want: "Someone",
		},
		{
			name: "remittance array when names missing",
			tx: domain.Transaction{
				TransactionAmount:                      domain.Amount{Amount: "-5.00"},
				RemittanceInformationUnstructuredArray: []string{"Some Payee Name"},
			},
			want: "Some Payee Name",
		},
		{
			name: "unstructured remittance before array",
			tx: domain.Transaction{
				TransactionAmount:                      domain.Amount{Amount: "-5.00"},
				RemittanceInformationUnstructured:      "coffee",
				RemittanceInformationUnstructuredArray: []string{"ignored"},
			},
			want: "Coffee",
		},
		{
			name: "additional information last",
			tx: domain.Transaction{
				TransactionAmount:     domain.Amount{Amount: "-5.00"},
				AdditionalInformation: "card payment",
			},
			want: "Card Payment",
		},
		{
			name: "blank names are absent",
			tx: domain.Transaction{
				TransactionAmount:                 domain.Amount{Amount: "-5.00"},
				CreditorName:                      "   ",
				RemittanceInformationUnstructured: "  lunch   money ",
			},
			want: "Lunch Money",
		},
		{
			name: "account only",
			tx: domain.Transaction{
				TransactionAmount: domain.Amount{Amount: "-5.00"},
				CreditorAccount:   &domain.AccountReference{IBAN: "NL91ABNA0417164300"},
			},
			want: "(NL91 XXX 4300)",
		},
		{
			name: "nothing populated",
			tx:   domain.Transaction{TransactionAmount: domain.Amount{Amount: "-5.00"}},
			want: "",
		},
		{
			name: "unparseable amount counts as incoming",
			tx: domain.Transaction{
				TransactionAmount: domain.Amount{Amount: "n/a"},
				DebtorName:        "debtor",
				CreditorName:      "creditor",
			},
			want: "Debtor",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Format(tt.tx); got != tt.want {
				t.Errorf("Format() got=%q want=%q", got, tt.want)
			}
		})
	}
}

func TestMaskIBAN(t *testing.T) {
	tests := map[string]string{
		"DE02500105170137075030":   "DE02 XXX 5030",
		" GB33BUKB20201555555555 ": "GB33 XXX 5555",
		"abc":                      "abc",
		"":                         "",
	}
	for in, want := range tests {
		if got := MaskIBAN(in); got != want {
			t.Errorf("MaskIBAN(%q) got=%q want=%q", in, got, want)
		}
	}
}
