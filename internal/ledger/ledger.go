package ledger

import "github.com/starford/dailyfiles/internal/models"

// Recorder is the write side of the ledger used by the relocator.
type Recorder interface {
	RecordRun(s *models.Summary) error
}

// Store defines the interface for run history operations.
// Consumers should depend on this interface rather than the concrete *DB type
// to facilitate testing with mocks.
type Store interface {
	Recorder
	ListRuns(limit int) ([]RunRow, error)
	GetRun(id string) (*RunDetail, error)
	FindMoves(query string, limit int) ([]MoveRow, error)
	Close() error
}

// Verify *DB satisfies Store at compile time.
var _ Store = (*DB)(nil)
