package reconciliation

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/wakala/banksync/internal/bank"
	"github.com/wakala/banksync/internal/domain"
)

// ErrAccountNotFound is returned when the source has nothing for an account.
var ErrAccountNotFound = errors.New("account not found")

// Source supplies account snapshots.
type Source interface {
	Fetch(ctx context.Context, accountID string) (*domain.Snapshot, error)
	ListAccounts(ctx context.Context) ([]string, error)
}

// Sink persists reconciled results. Save returns how many booked
// transactions were new.
type Sink interface {
	Save(ctx context.Context, res *Result) (int, error)
	LastPayloadHash(ctx context.Context, accountID string) (string, error)
}

// Outcome pairs an account with its sync result or error.
type Outcome struct {
	AccountID string  `json:"account_id"`
	Result    *Result `json:"result,omitempty"`
	Err       error   `json:"-"`
	Error     string  `json:"error,omitempty"`
}

// Service fetches snapshots, reconciles them with the institution's adapter
// and hands the result to the sink.
type Service struct {
	source   Source
	registry *bank.Registry
	sink     Sink
	log      zerolog.Logger
	workers  int
	now      func() time.Time
}

// NewService creates a new reconciliation service. workers bounds how many
// accounts SyncAccounts processes at once.
func NewService(source Source, registry *bank.Registry, sink Sink, log zerolog.Logger, workers int) *Service {
	if workers < 1 {
		workers = 1
	}
	return &Service{
		source:   source,
		registry: registry,
		sink:     sink,
		log:      log,
		workers:  workers,
		now:      time.Now,
	}
}

// Registry exposes the adapters the service resolves from.
func (s *Service) Registry() *bank.Registry { return s.registry }

// SyncAccount runs one fetch, reconcile and persist cycle.
func (s *Service) SyncAccount(ctx context.Context, accountID string) (*Result, error) {
	snap, err := s.source.Fetch(ctx, accountID)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", accountID, err)
	}
	if snap.Account.ID == "" {
		snap.Account.ID = accountID
	}
	return s.SyncSnapshot(ctx, snap)
}

// SyncSnapshot reconciles and persists a snapshot that has already been
// fetched.
func (s *Service) SyncSnapshot(ctx context.Context, snap *domain.Snapshot) (*Result, error) {
	accountID := snap.Account.ID
	if accountID == "" {
		return nil, errors.New("snapshot has no account id")
	}

	adapter := s.registry.Resolve(snap.Account.InstitutionID)
	res := Reconcile(adapter, snap)

	prev, err := s.sink.LastPayloadHash(ctx, accountID)
	if err != nil {
		return nil, fmt.Errorf("last payload hash: %w", err)
	}
	if prev != "" && prev == snap.PayloadHash {
		res.Run.Status = domain.SyncUnchanged
	}

	now := s.now().UTC()
	res.Run.ID = uuid.NewString()
	res.Run.SyncedAt = now
	for i := range res.Discrepancies {
		res.Discrepancies[i].ID = uuid.NewString()
		res.Discrepancies[i].RunID = res.Run.ID
		res.Discrepancies[i].DetectedAt = now
	}

	inserted, err := s.sink.Save(ctx, res)
	if err != nil {
		return nil, fmt.Errorf("save %s: %w", accountID, err)
	}
	res.Run.TransactionsNew = inserted

	log := s.log.With().
		Str("account_id", accountID).
		Str("institution_id", snap.Account.InstitutionID).
		Str("adapter", adapter.Name()).
		Logger()
	for _, d := range res.Discrepancies {
		log.Warn().
			Str("type", string(d.Type)).
			Str("transaction_id", d.TransactionID).
			Msg(d.Description)
	}
	log.Info().
		Str("status", string(res.Run.Status)).
		Int("booked", res.Run.BookedCount).
		Int("pending", res.Run.PendingCount).
		Int("dropped", res.Run.DroppedCount).
		Int("new", inserted).
		Int64("starting_balance", res.StartingBalance).
		Msg("account synced")

	return res, nil
}

// SyncAccounts syncs every account with bounded concurrency. A failing
// account does not stop the others; outcomes keep the order of ids with
// duplicates removed.
func (s *Service) SyncAccounts(ctx context.Context, ids []string) []Outcome {
	seen := make(map[string]bool, len(ids))
	var unique []string
	for _, id := range ids {
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		unique = append(unique, id)
	}

	outcomes := make([]Outcome, len(unique))
	var g errgroup.Group
	g.SetLimit(s.workers)
	for i, id := range unique {
		g.Go(func() error {
			out := Outcome{AccountID: id}
			if err := ctx.Err(); err != nil {
				out.Err = err
			} else {
				out.Result, out.Err = s.SyncAccount(ctx, id)
			}
			if out.Err != nil {
				out.Error = out.Err.Error()
				s.log.Error().Err(out.Err).Str("account_id", id).Msg("account sync failed")
			}
			outcomes[i] = out
			return nil
		})
	}
	_ = g.Wait()
	return outcomes
}

// SyncAll syncs every account the source knows about.
func (s *Service) SyncAll(ctx context.Context) ([]Outcome, error) {
	ids, err := s.source.ListAccounts(ctx)
	if err != nil {
		return nil, fmt.Errorf("list accounts: %w", err)
	}
	return s.SyncAccounts(ctx, ids), nil
}
