package api

import (
	"time"

	"github.com/starford/dailyfiles/internal/dailyfile"
	"github.com/starford/dailyfiles/internal/ledger"
	"github.com/starford/dailyfiles/internal/models"
)

// CandidatesResponse lists daily files waiting to be moved.
type CandidatesResponse struct {
	Candidates []string        `json:"candidates"`
	Files      []CandidateFile `json:"files"`
}

// CandidateFile classifies one candidate by prefix and embedded date.
type CandidateFile struct {
	Name string `json:"name"`
	Kind string `json:"kind"`
	Date string `json:"date,omitempty"`
}

func newCandidatesResponse(names []string) CandidatesResponse {
	files := make([]CandidateFile, 0, len(names))
	for _, name := range names {
		f := CandidateFile{Name: name}
		f.Kind, _ = dailyfile.Kind(name)
		if d, ok := dailyfile.Date(name); ok {
			f.Date = d.Format(time.DateOnly)
		}
		files = append(files, f)
	}
	return CandidatesResponse{Candidates: names, Files: files}
}

// RelocateResponse is the summary of a triggered run.
type RelocateResponse = models.Summary

// RunListResponse wraps recent runs.
type RunListResponse struct {
	Runs []ledger.RunRow `json:"runs"`
}

// RunDetailResponse is one run with its moves.
type RunDetailResponse = ledger.RunDetail

// MoveListResponse wraps move search results.
type MoveListResponse struct {
	Moves []ledger.MoveRow `json:"moves"`
}
