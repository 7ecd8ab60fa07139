package ingestion

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/wakala/banksync/internal/reconciliation"
)

// Service accepts snapshots pushed by a caller instead of fetched from a
// source.
type Service struct {
	reconSvc *reconciliation.Service
	log      zerolog.Logger
}

// NewService creates a new ingestion service.
func NewService(reconSvc *reconciliation.Service, log zerolog.Logger) *Service {
	return &Service{reconSvc: reconSvc, log: log}
}

// Ingest decodes a snapshot payload and runs it through reconciliation.
func (s *Service) Ingest(ctx context.Context, data []byte) (*reconciliation.Result, error) {
	snap, err := DecodeSnapshot(data)
	if err != nil {
		return nil, err
	}
	if snap.Account.ID == "" {
		return nil, fmt.Errorf("%w: account id is required", ErrInvalidSnapshot)
	}

	s.log.Debug().
		Str("account_id", snap.Account.ID).
		Str("payload_hash", snap.PayloadHash).
		Int("bytes", len(data)).
		Msg("snapshot received")

	res, err := s.reconSvc.SyncSnapshot(ctx, snap)
	if err != nil {
		return nil, fmt.Errorf("ingest %s: %w", snap.Account.ID, err)
	}
	return res, nil
}
