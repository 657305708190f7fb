package ledger

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/starford/dailyfiles/internal/apperr"
	"github.com/starford/dailyfiles/internal/models"
)

const defaultLimit = 20

// RunRow represents a row in the runs table.
type RunRow struct {
	ID         string    `json:"id"`
	Source     string    `json:"source"`
	Candidates int       `json:"candidates"`
	Moved      int       `json:"moved"`
	Failed     int       `json:"failed"`
	StartedAt  time.Time `json:"started_at"`
	FinishedAt time.Time `json:"finished_at"`
}

// MoveRow represents a row in the moves table.
type MoveRow struct {
	RunID     string    `json:"run_id"`
	Name      string    `json:"name"`
	Status    string    `json:"status"`
	Error     string    `json:"error,omitempty"`
	Size      int64     `json:"size"`
	Checksum  string    `json:"checksum,omitempty"`
	StartedAt time.Time `json:"started_at"`
}

// RunDetail is a run together with its per-file outcomes.
type RunDetail struct {
	RunRow
	Moves []MoveRow `json:"moves"`
}

// RecordRun stores a summary and its outcomes within a transaction.
func (db *DB) RecordRun(s *models.Summary) error {
	tx, err := db.conn.Begin()
	if err != nil {
		return fmt.Errorf("ledger: begin tx: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // best-effort on failure path

	_, err = tx.Exec(`
		INSERT INTO runs (id, source, candidates, moved, failed, started_at, finished_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, s.RunID, s.Source, len(s.Candidates), s.Moved, s.Failed, s.StartedAt.UTC(), s.FinishedAt.UTC())
	if err != nil {
		return fmt.Errorf("ledger: insert run: %w", err)
	}

	if len(s.Outcomes) > 0 {
		stmt, err := tx.Prepare(`
			INSERT INTO moves (run_id, seq, name, status, error, size, checksum)
			VALUES (?, ?, ?, ?, ?, ?, ?)
		`)
		if err != nil {
			return fmt.Errorf("ledger: prepare move insert: %w", err)
		}
		defer stmt.Close()
		for i, o := range s.Outcomes {
			if _, err := stmt.Exec(s.RunID, i, o.Name, o.Status, o.Error, o.Size, o.Checksum); err != nil {
				return fmt.Errorf("ledger: insert move: %w", err)
			}
		}
	}

	return tx.Commit()
}

// ListRuns returns the most recent runs first.
func (db *DB) ListRuns(limit int) ([]RunRow, error) {
	if limit <= 0 {
		limit = defaultLimit
	}
	rows, err := db.conn.Query(`
		SELECT id, source, candidates, moved, failed, started_at, finished_at
		FROM runs
		ORDER BY started_at DESC, rowid DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("ledger: list runs: %w", err)
	}
	defer rows.Close()

	out := []RunRow{}
	for rows.Next() {
		var r RunRow
		if err := rows.Scan(&r.ID, &r.Source, &r.Candidates, &r.Moved, &r.Failed, &r.StartedAt, &r.FinishedAt); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// GetRun returns one run with its moves, or apperr.ErrNotFound.
func (db *DB) GetRun(id string) (*RunDetail, error) {
	var d RunDetail
	err := db.conn.QueryRow(`
		SELECT id, source, candidates, moved, failed, started_at, finished_at
		FROM runs WHERE id = ?
	`, id).Scan(&d.ID, &d.Source, &d.Candidates, &d.Moved, &d.Failed, &d.StartedAt, &d.FinishedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperr.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("ledger: get run: %w", err)
	}

	rows, err := db.conn.Query(`
		SELECT run_id, name, status, error, size, checksum
		FROM moves WHERE run_id = ? ORDER BY seq
	`, id)
	if err != nil {
		return nil, fmt.Errorf("ledger: run moves: %w", err)
	}
	defer rows.Close()

	d.Moves = []MoveRow{}
	for rows.Next() {
		m := MoveRow{StartedAt: d.StartedAt}
		if err := rows.Scan(&m.RunID, &m.Name, &m.Status, &m.Error, &m.Size, &m.Checksum); err != nil {
			return nil, err
		}
		d.Moves = append(d.Moves, m)
	}
	return &d, rows.Err()
}

// FindMoves performs a substring search on file names, newest first.
func (db *DB) FindMoves(query string, limit int) ([]MoveRow, error) {
	if limit <= 0 {
		limit = defaultLimit
	}
	like := "%" + query + "%"
	rows, err := db.conn.Query(`
		SELECT m.run_id, m.name, m.status, m.error, m.size, m.checksum, r.started_at
		FROM moves m JOIN runs r ON r.id = m.run_id
		WHERE m.name LIKE ?
		ORDER BY r.started_at DESC, m.seq
		LIMIT ?
	`, like, limit)
	if err != nil {
		return nil, fmt.Errorf("ledger: find moves: %w", err)
	}
	defer rows.Close()

	out := []MoveRow{}
	for rows.Next() {
		var m MoveRow
		if err := rows.Scan(&m.RunID, &m.Name, &m.Status, &m.Error, &m.Size, &m.Checksum, &m.StartedAt); err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}
