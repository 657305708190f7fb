// Package runservice exposes relocation and run history to the API and
// MCP layers.
package runservice

import (
	"context"
	"strings"

	"github.com/starford/dailyfiles/internal/apperr"
	"github.com/starford/dailyfiles/internal/ledger"
	"github.com/starford/dailyfiles/internal/models"
)

// Runner performs relocation runs.
type Runner interface {
	Candidates() ([]string, error)
	Relocate() (*models.Summary, error)
}

// Service coordinates the relocator and the ledger.
type Service struct {
	runner Runner
	ledger ledger.Store
}

// NewService creates a new run service. store may be nil when the
// ledger is disabled.
func NewService(runner Runner, store ledger.Store) *Service {
	return &Service{runner: runner, ledger: store}
}

// Candidates lists daily files waiting in the source directory.
func (s *Service) Candidates(_ context.Context) ([]string, error) {
	return s.runner.Candidates()
}

// Relocate performs one run.
func (s *Service) Relocate(_ context.Context) (*models.Summary, error) {
	return s.runner.Relocate()
}

// LedgerEnabled reports whether run history is available.
func (s *Service) LedgerEnabled() bool {
	return s.ledger != nil
}

// ListRuns returns recent runs, newest first.
func (s *Service) ListRuns(_ context.Context, limit int) ([]ledger.RunRow, error) {
	if s.ledger == nil {
		return nil, apperr.ErrLedgerDisabled
	}
	return s.ledger.ListRuns(limit)
}

// GetRun returns one run with its per-file outcomes.
func (s *Service) GetRun(_ context.Context, id string) (*ledger.RunDetail, error) {
	if s.ledger == nil {
		return nil, apperr.ErrLedgerDisabled
	}
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, apperr.ErrNotFound
	}
	return s.ledger.GetRun(id)
}

// FindMoves searches recorded moves by file name.
func (s *Service) FindMoves(_ context.Context, query string, limit int) ([]ledger.MoveRow, error) {
	if s.ledger == nil {
		return nil, apperr.ErrLedgerDisabled
	}
	return s.ledger.FindMoves(query, limit)
}
