package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"github.com/wakala/banksync/internal/ingestion"
	"github.com/wakala/banksync/internal/reconciliation"
	"github.com/wakala/banksync/internal/repository"
)

// NewRouter creates the Chi router with all API routes mounted.
func NewRouter(
	reconSvc *reconciliation.Service,
	ingestSvc *ingestion.Service,
	store *repository.Store,
	log zerolog.Logger,
) http.Handler {
	h := &Handlers{
		reconSvc:  reconSvc,
		ingestSvc: ingestSvc,
		store:     store,
		log:       log,
	}

	r := chi.NewRouter()

	// Middleware.
	r.Use(middleware.RequestID)
	r.Use(requestLogger(log))
	r.Use(middleware.Recoverer)
	r.Use(middleware.SetHeader("Content-Type", "application/json"))

	r.Route("/api/v1", func(r chi.Router) {
		// Sync.
		r.Post("/sync", h.SyncAccounts)
		r.Post("/snapshots", h.IngestSnapshot)

		// Accounts.
		r.Get("/accounts", h.ListAccounts)
		r.Get("/accounts/{id}", h.GetAccount)
		r.Post("/accounts/{id}/sync", h.SyncAccount)
		r.Get("/accounts/{id}/transactions", h.ListTransactions)

		// Runs and discrepancies.
		r.Get("/sync-runs", h.ListSyncRuns)
		r.Get("/discrepancies", h.ListDiscrepancies)
		r.Get("/discrepancies/summary", h.GetDiscrepancySummary)

		// Adapters.
		r.Get("/institutions", h.ListInstitutions)
	})

	return r
}
