package ingestion

import (
	"bytes"
	"crypto/sha256"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/wakala/banksync/internal/domain"
	"github.com/wakala/banksync/internal/reconciliation"
)

var (
	// ErrSnapshotNotFound also matches reconciliation.ErrAccountNotFound.
	ErrSnapshotNotFound = fmt.Errorf("snapshot missing: %w", reconciliation.ErrAccountNotFound)
	ErrInvalidSnapshot  = errors.New("invalid snapshot")
)

// Hash identifies a payload so repeated deliveries can be recognized.
func Hash(data []byte) string {
	return fmt.Sprintf("%x", sha256.Sum256(data))
}

// DecodeSnapshot reads an aggregator snapshot document:
//
//	{"account": {...}, "balances": [...], "transactions": {"booked": [...], "pending": [...]}}
//
// Unknown fields are ignored.
func DecodeSnapshot(data []byte) (*domain.Snapshot, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: empty payload", ErrInvalidSnapshot)
	}
	var snap domain.Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSnapshot, err)
	}
	snap.PayloadHash = Hash(data)
	return &snap, nil
}
