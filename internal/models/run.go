// Package models defines the domain types for dailyfiles.
package models

import "time"

// Outcome statuses.
const (
	StatusMoved  = "moved"
	StatusFailed = "failed"
)

// Outcome is the result of one attempted move.
type Outcome struct {
	Name     string `json:"name"`
	Status   string `json:"status"`
	Error    string `json:"error,omitempty"`
	Size     int64  `json:"size,omitempty"`
	Checksum string `json:"checksum,omitempty"`
}

// Moved reports whether the move succeeded.
func (o Outcome) Moved() bool {
	return o.Status == StatusMoved
}

// Summary is the aggregate result of one relocation run.
// Moved + Failed always equals len(Candidates).
type Summary struct {
	RunID      string    `json:"run_id"`
	Source     string    `json:"source"`
	Candidates []string  `json:"candidates"`
	Outcomes   []Outcome `json:"outcomes"`
	Moved      int       `json:"moved"`
	Failed     int       `json:"failed"`
	StartedAt  time.Time `json:"started_at"`
	FinishedAt time.Time `json:"finished_at"`
}

// Duration returns how long the run took.
func (s *Summary) Duration() time.Duration {
	return s.FinishedAt.Sub(s.StartedAt)
}
