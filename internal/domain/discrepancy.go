package domain

import "time"

type DiscrepancyType string

const (
	DiscrepancyMissingBalance     DiscrepancyType = "MISSING_BALANCE"
	DiscrepancyUndatedTransaction DiscrepancyType = "UNDATED_TRANSACTION"
)

type Severity string

const (
	SeverityLow      Severity = "LOW"
	SeverityMedium   Severity = "MEDIUM"
	SeverityHigh     Severity = "HIGH"
	SeverityCritical Severity = "CRITICAL"
)

// Discrepancy records a data-quality gap found while reconciling an account.
// Gaps never fail a sync; they are surfaced here instead.
type Discrepancy struct {
	ID            string          `json:"id"`
	RunID         string          `json:"run_id"`
	AccountID     string          `json:"account_id"`
	InstitutionID string          `json:"institution_id"`
	Type          DiscrepancyType `json:"type"`
	TransactionID string          `json:"transaction_id,omitempty"`
	Severity      Severity        `json:"severity"`
	Description   string          `json:"description"`
	DetectedAt    time.Time       `json:"detected_at"`
}
