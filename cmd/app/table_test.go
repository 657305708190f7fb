package main

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/starford/dailyfiles/internal/ledger"
	"github.com/starford/dailyfiles/internal/models"
)

func TestRenderTable_NoHeaders(t *testing.T) {
	if got := renderTable(nil, [][]string{{"a"}}, nil); got != "" {
		t.Errorf("renderTable = %q, want empty", got)
	}
}

func TestRenderTable_PadsShortRows(t *testing.T) {
	out := renderTable([]string{"A", "B"}, [][]string{{"only"}}, []columnAlignment{alignLeft, alignRight})
	if !strings.Contains(out, "only") {
		t.Errorf("missing cell:\n%s", out)
	}
	if !strings.Contains(out, "╭") {
		t.Errorf("expected rounded style:\n%s", out)
	}
}

func TestRenderRuns(t *testing.T) {
	start := time.Date(2025, 1, 15, 9, 30, 0, 0, time.UTC)
	out := renderRuns([]ledger.RunRow{{
		ID:         "0f3c9a7e-1111-2222-3333-444455556666",
		Source:     "/tmp/work",
		Candidates: 3,
		Moved:      2,
		Failed:     1,
		StartedAt:  start,
		FinishedAt: start.Add(1500 * time.Millisecond),
	}})

	for _, want := range []string{"0f3c9a7e", "1.5s", "Moved", "Failed"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "1111-2222") {
		t.Errorf("run id should be shortened:\n%s", out)
	}
}

func TestRenderRuns_Empty(t *testing.T) {
	if got := renderRuns(nil); got != "No runs recorded." {
		t.Errorf("renderRuns(nil) = %q", got)
	}
}

func TestRenderMoves(t *testing.T) {
	out := renderMoves([]ledger.MoveRow{
		{
			RunID:    "abcdef0123456789",
			Name:     "tracker-data-2025-01-15.json",
			Status:   models.StatusMoved,
			Size:     2048,
			Checksum: "9f86d081884c7d659a2feaa0c55ad015",
		},
		{
			RunID:  "abcdef0123456789",
			Name:   "test-data-2025-01-15.json",
			Status: models.StatusFailed,
			Error:  "permission denied",
		},
	})

	for _, want := range []string{"tracker-data-2025-01-15.json", "2.0 kB", "9f86d081884c", "permission denied", "abcdef01"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "9f86d081884c7d") {
		t.Errorf("checksum should be abbreviated:\n%s", out)
	}
}

func TestRenderMoves_Empty(t *testing.T) {
	if got := renderMoves(nil); got != "No matching moves." {
		t.Errorf("renderMoves(nil) = %q", got)
	}
}

func TestPrintCandidates(t *testing.T) {
	var buf bytes.Buffer
	printCandidates(&buf, []string{"test-data-a.json", "tracker-data-b.json"})

	want := "Found 2 daily files to move:\n  • test-data-a.json\n  • tracker-data-b.json\n"
	if buf.String() != want {
		t.Errorf("got %q, want %q", buf.String(), want)
	}
}
