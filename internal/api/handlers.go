package api

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/starford/dailyfiles/internal/apperr"
	"github.com/starford/dailyfiles/internal/runservice"
)

// Handler holds API route handlers.
type Handler struct {
	svc *runservice.Service
}

// NewHandler creates a new Handler.
func NewHandler(svc *runservice.Service) *Handler {
	return &Handler{svc: svc}
}

// ledgerError maps ledger-side errors to responses.
func ledgerError(w http.ResponseWriter, op string, err error) {
	switch {
	case errors.Is(err, apperr.ErrLedgerDisabled):
		writeJSON(w, http.StatusServiceUnavailable, errorBody("ledger disabled"))
	case errors.Is(err, apperr.ErrNotFound):
		writeJSON(w, http.StatusNotFound, errorBody("not found"))
	default:
		slog.Error(op+" failed", slog.String("error", err.Error()))
		writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
	}
}

// Candidates handles GET /api/candidates.
func (h *Handler) Candidates(w http.ResponseWriter, r *http.Request) {
	names, err := h.svc.Candidates(r.Context())
	if err != nil {
		slog.Error("list candidates failed", slog.String("error", err.Error()))
		writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
		return
	}
	writeJSON(w, http.StatusOK, newCandidatesResponse(names))
}

// Relocate handles POST /api/relocate. Per-file failures are part of a
// 200 response; only setup errors produce 500.
func (h *Handler) Relocate(w http.ResponseWriter, r *http.Request) {
	sum, err := h.svc.Relocate(r.Context())
	if err != nil {
		slog.Error("relocate failed", slog.String("error", err.Error()))
		writeJSON(w, http.StatusInternalServerError, errorBody(err.Error()))
		return
	}
	writeJSON(w, http.StatusOK, sum)
}

// ListRuns handles GET /api/runs.
func (h *Handler) ListRuns(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	runs, err := h.svc.ListRuns(r.Context(), limit)
	if err != nil {
		ledgerError(w, "list runs", err)
		return
	}
	writeJSON(w, http.StatusOK, RunListResponse{Runs: runs})
}

// GetRun handles GET /api/runs/{id}.
func (h *Handler) GetRun(w http.ResponseWriter, r *http.Request) {
	run, err := h.svc.GetRun(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		ledgerError(w, "get run", err)
		return
	}
	writeJSON(w, http.StatusOK, run)
}

// FindMoves handles GET /api/moves?q=.
func (h *Handler) FindMoves(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("q")
	if q == "" {
		writeJSON(w, http.StatusBadRequest, errorBody("query parameter 'q' is required"))
		return
	}
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	moves, err := h.svc.FindMoves(r.Context(), q, limit)
	if err != nil {
		ledgerError(w, "find moves", err)
		return
	}
	writeJSON(w, http.StatusOK, MoveListResponse{Moves: moves})
}
