package api

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"

	"cloud.google.com/go/civil"
	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/wakala/banksync/internal/ingestion"
	"github.com/wakala/banksync/internal/reconciliation"
	"github.com/wakala/banksync/internal/repository"
)

const maxSnapshotBytes = 32 << 20

// Handlers groups all HTTP handler methods and their dependencies.
type Handlers struct {
	reconSvc  *reconciliation.Service
	ingestSvc *ingestion.Service
	store     *repository.Store
	log       zerolog.Logger
}

// --- helpers ---

func (h *Handlers) writeJSON(w http.ResponseWriter, status int, v any) {
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.log.Error().Err(err).Msg("encode response")
	}
}

func (h *Handlers) writeError(w http.ResponseWriter, status int, msg string) {
	h.writeJSON(w, status, map[string]string{"error": msg})
}

// statusFor maps service errors onto HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, reconciliation.ErrAccountNotFound), errors.Is(err, repository.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ingestion.ErrInvalidSnapshot):
		return http.StatusUnprocessableEntity
	}
	return http.StatusInternalServerError
}

func parseDate(s string) *civil.Date {
	if s == "" {
		return nil
	}
	d, err := civil.ParseDate(s)
	if err != nil {
		return nil
	}
	return &d
}

func parseBool(s string) *bool {
	if s == "" {
		return nil
	}
	b, err := strconv.ParseBool(s)
	if err != nil {
		return nil
	}
	return &b
}

func parseIntDefault(s string, def int) int {
	if s == "" {
		return def
	}
	v, err := strconv.Atoi(s)
	if err != nil || v < 1 {
		return def
	}
	return v
}

// --- SyncAccounts ---

type syncRequest struct {
	AccountIDs []string `json:"account_ids"`
}

// SyncAccounts syncs the listed accounts, or every known account when the
// list is empty.
func (h *Handlers) SyncAccounts(w http.ResponseWriter, r *http.Request) {
	var req syncRequest
	if r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
			h.writeError(w, http.StatusBadRequest, "invalid body: "+err.Error())
			return
		}
	}

	var outcomes []reconciliation.Outcome
	if len(req.AccountIDs) == 0 {
		var err error
		outcomes, err = h.reconSvc.SyncAll(r.Context())
		if err != nil {
			h.writeError(w, http.StatusBadGateway, err.Error())
			return
		}
	} else {
		outcomes = h.reconSvc.SyncAccounts(r.Context(), req.AccountIDs)
	}

	failed := 0
	for _, o := range outcomes {
		if o.Err != nil {
			failed++
		}
	}
	h.writeJSON(w, http.StatusOK, map[string]any{
		"outcomes": outcomes,
		"synced":   len(outcomes) - failed,
		"failed":   failed,
	})
}

// --- SyncAccount ---

func (h *Handlers) SyncAccount(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	res, err := h.reconSvc.SyncAccount(r.Context(), id)
	if err != nil {
		h.writeError(w, statusFor(err), err.Error())
		return
	}
	h.writeJSON(w, http.StatusOK, res)
}

// --- IngestSnapshot ---

// IngestSnapshot accepts a snapshot document either as the request body or
// as the "file" field of a multipart form.
func (h *Handlers) IngestSnapshot(w http.ResponseWriter, r *http.Request) {
	var body io.Reader = http.MaxBytesReader(w, r.Body, maxSnapshotBytes)
	if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		if err := r.ParseMultipartForm(maxSnapshotBytes); err != nil {
			h.writeError(w, http.StatusBadRequest, "invalid multipart form: "+err.Error())
			return
		}
		file, _, err := r.FormFile("file")
		if err != nil {
			h.writeError(w, http.StatusBadRequest, "file field is required: "+err.Error())
			return
		}
		defer file.Close()
		body = file
	}

	data, err := io.ReadAll(body)
	if err != nil {
		h.writeError(w, http.StatusBadRequest, "read body: "+err.Error())
		return
	}

	res, err := h.ingestSvc.Ingest(r.Context(), data)
	if err != nil {
		h.writeError(w, statusFor(err), err.Error())
		return
	}
	h.writeJSON(w, http.StatusOK, res)
}

// --- accounts ---

func (h *Handlers) ListAccounts(w http.ResponseWriter, r *http.Request) {
	accounts, err := h.store.Accounts.List(r.Context())
	if err != nil {
		h.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	h.writeJSON(w, http.StatusOK, map[string]any{
		"accounts": accounts,
		"total":    len(accounts),
	})
}

func (h *Handlers) GetAccount(w http.ResponseWriter, r *http.Request) {
	acc, err := h.store.Accounts.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.writeError(w, statusFor(err), err.Error())
		return
	}
	h.writeJSON(w, http.StatusOK, acc)
}

func (h *Handlers) ListTransactions(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if _, err := h.store.Accounts.Get(r.Context(), id); err != nil {
		h.writeError(w, statusFor(err), err.Error())
		return
	}

	q := r.URL.Query()
	filter := repository.TransactionFilter{
		AccountID: id,
		Booked:    parseBool(q.Get("booked")),
		From:      parseDate(q.Get("from")),
		To:        parseDate(q.Get("to")),
		Page:      parseIntDefault(q.Get("page"), 1),
		Limit:     parseIntDefault(q.Get("limit"), 50),
	}

	txns, total, err := h.store.Transactions.List(r.Context(), filter)
	if err != nil {
		h.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]any{
		"transactions": txns,
		"total":        total,
		"page":         filter.Page,
		"limit":        filter.Limit,
	})
}

// --- ListSyncRuns ---

func (h *Handlers) ListSyncRuns(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := repository.SyncRunFilter{
		AccountID: q.Get("account_id"),
		Status:    q.Get("status"),
		Page:      parseIntDefault(q.Get("page"), 1),
		Limit:     parseIntDefault(q.Get("limit"), 50),
	}

	runs, total, err := h.store.Runs.List(r.Context(), filter)
	if err != nil {
		h.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]any{
		"sync_runs": runs,
		"total":     total,
		"page":      filter.Page,
		"limit":     filter.Limit,
	})
}

// --- discrepancies ---

func (h *Handlers) ListDiscrepancies(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := repository.DiscrepancyFilter{
		Type:      q.Get("type"),
		Severity:  q.Get("severity"),
		AccountID: q.Get("account_id"),
		Page:      parseIntDefault(q.Get("page"), 1),
		Limit:     parseIntDefault(q.Get("limit"), 50),
	}

	discs, total, err := h.store.Discrepancies.List(r.Context(), filter)
	if err != nil {
		h.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]any{
		"discrepancies": discs,
		"total":         total,
		"page":          filter.Page,
		"limit":         filter.Limit,
	})
}

func (h *Handlers) GetDiscrepancySummary(w http.ResponseWriter, r *http.Request) {
	summary, err := h.store.Discrepancies.Summary(r.Context())
	if err != nil {
		h.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	h.writeJSON(w, http.StatusOK, summary)
}

// --- ListInstitutions ---

type institution struct {
	Adapter        string   `json:"adapter"`
	InstitutionIDs []string `json:"institution_ids"`
}

func (h *Handlers) ListInstitutions(w http.ResponseWriter, r *http.Request) {
	variants := h.reconSvc.Registry().Variants()
	out := make([]institution, 0, len(variants))
	for _, v := range variants {
		out = append(out, institution{Adapter: v.Name(), InstitutionIDs: v.InstitutionIDs})
	}
	h.writeJSON(w, http.StatusOK, map[string]any{
		"institutions": out,
		"fallback":     "default",
	})
}
