package domain

import (
	"encoding/json"
	"fmt"
)

// BalanceType is the closed set of balance kinds an institution may report.
// Tags outside the set decode to BalanceUnknown.
type BalanceType int

const (
	BalanceUnknown BalanceType = iota
	BalanceClosingBooked
	BalanceExpected
	BalanceForwardAvailable
	BalanceInterimAvailable
	BalanceInterimBooked
	BalanceNonInvoiced
	BalanceOpeningBooked
	BalanceInformation
	BalancePreviouslyClosedBooked
)

var balanceTags = map[BalanceType]string{
	BalanceUnknown:                "unknown",
	BalanceClosingBooked:          "closingBooked",
	BalanceExpected:               "expected",
	BalanceForwardAvailable:       "forwardAvailable",
	BalanceInterimAvailable:       "interimAvailable",
	BalanceInterimBooked:          "interimBooked",
	BalanceNonInvoiced:            "nonInvoiced",
	BalanceOpeningBooked:          "openingBooked",
	BalanceInformation:            "information",
	BalancePreviouslyClosedBooked: "previouslyClosedBooked",
}

var balanceByTag = func() map[string]BalanceType {
	m := make(map[string]BalanceType, len(balanceTags))
	for t, tag := range balanceTags {
		m[tag] = t
	}
	return m
}()

// ParseBalanceType maps an aggregator tag to a BalanceType. Unrecognized tags
// yield BalanceUnknown.
func ParseBalanceType(tag string) BalanceType {
	return balanceByTag[tag]
}

func (t BalanceType) String() string {
	if tag, ok := balanceTags[t]; ok {
		return tag
	}
	return fmt.Sprintf("BalanceType(%d)", int(t))
}

func (t BalanceType) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.String())
}

func (t *BalanceType) UnmarshalJSON(data []byte) error {
	var tag string
	if err := json.Unmarshal(data, &tag); err != nil {
		return fmt.Errorf("balance type: %w", err)
	}
	*t = ParseBalanceType(tag)
	return nil
}

// Balance is one balance snapshot reported for an account.
type Balance struct {
	BalanceAmount       Amount      `json:"balanceAmount"`
	BalanceType         BalanceType `json:"balanceType"`
	ReferenceDate       string      `json:"referenceDate,omitempty"`
	LastChangeDateTime  string      `json:"lastChangeDateTime,omitempty"`
	CreditLimitIncluded bool        `json:"creditLimitIncluded,omitempty"`
}
