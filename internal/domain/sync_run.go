package domain

import "time"

type SyncStatus string

const (
	SyncCompleted SyncStatus = "completed"
	SyncUnchanged SyncStatus = "unchanged"
)

// SyncRun is the record of one account sync. PayloadHash identifies the
// snapshot it was computed from.
type SyncRun struct {
	ID              string     `json:"id"`
	AccountID       string     `json:"account_id"`
	InstitutionID   string     `json:"institution_id"`
	Adapter         string     `json:"adapter"`
	PayloadHash     string     `json:"payload_hash"`
	Status          SyncStatus `json:"status"`
	BookedCount     int        `json:"booked_count"`
	PendingCount    int        `json:"pending_count"`
	DroppedCount    int        `json:"dropped_count"`
	StartingBalance int64      `json:"starting_balance"`
	Currency        string     `json:"currency"`
	TransactionsNew int        `json:"transactions_new"`
	SyncedAt        time.Time  `json:"synced_at"`
}
