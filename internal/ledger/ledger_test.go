package ledger

import (
	"errors"
	"os"
	"testing"
	"time"

	"github.com/starford/dailyfiles/internal/apperr"
	"github.com/starford/dailyfiles/internal/models"
)

func testDB(t *testing.T) *DB {
	t.Helper()
	f, err := os.CreateTemp("", "dailyfiles-test-*.db")
	if err != nil {
		t.Fatal(err)
	}
	f.Close()
	t.Cleanup(func() { os.Remove(f.Name()) })

	db, err := Open(f.Name())
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func summary(id string, started time.Time, outcomes ...models.Outcome) *models.Summary {
	s := &models.Summary{
		RunID:      id,
		Source:     "/work",
		StartedAt:  started,
		FinishedAt: started.Add(time.Second),
		Outcomes:   outcomes,
	}
	for _, o := range outcomes {
		s.Candidates = append(s.Candidates, o.Name)
		if o.Moved() {
			s.Moved++
		} else {
			s.Failed++
		}
	}
	return s
}

func TestSchemaCreation(t *testing.T) {
	db := testDB(t)
	var count int
	if err := db.conn.QueryRow(`SELECT count(*) FROM runs`).Scan(&count); err != nil {
		t.Fatalf("runs table missing: %v", err)
	}
	if err := db.conn.QueryRow(`SELECT count(*) FROM moves`).Scan(&count); err != nil {
		t.Fatalf("moves table missing: %v", err)
	}
}

func TestRecordAndGetRun(t *testing.T) {
	db := testDB(t)
	s := summary("run-1", time.Now(),
		models.Outcome{Name: "tracker-data-1.json", Status: models.StatusMoved, Size: 12, Checksum: "abc"},
		models.Outcome{Name: "test-data-x.json", Status: models.StatusFailed, Error: "file exists"},
	)
	if err := db.RecordRun(s); err != nil {
		t.Fatalf("RecordRun: %v", err)
	}

	got, err := db.GetRun("run-1")
	if err != nil {
		t.Fatalf("GetRun: %v", err)
	}
	if got.Candidates != 2 || got.Moved != 1 || got.Failed != 1 {
		t.Errorf("counts = %d/%d/%d", got.Candidates, got.Moved, got.Failed)
	}
	if got.Source != "/work" {
		t.Errorf("source = %q", got.Source)
	}
	if len(got.Moves) != 2 {
		t.Fatalf("moves = %d, want 2", len(got.Moves))
	}
	if got.Moves[0].Name != "tracker-data-1.json" || got.Moves[0].Checksum != "abc" || got.Moves[0].Size != 12 {
		t.Errorf("first move = %+v", got.Moves[0])
	}
	if got.Moves[1].Status != models.StatusFailed || got.Moves[1].Error != "file exists" {
		t.Errorf("second move = %+v", got.Moves[1])
	}
}

func TestRecordRun_NoCandidates(t *testing.T) {
	db := testDB(t)
	if err := db.RecordRun(summary("empty", time.Now())); err != nil {
		t.Fatalf("RecordRun: %v", err)
	}
	got, err := db.GetRun("empty")
	if err != nil {
		t.Fatalf("GetRun: %v", err)
	}
	if got.Candidates != 0 || len(got.Moves) != 0 {
		t.Errorf("got %+v", got)
	}
}

func TestRecordRun_DuplicateID(t *testing.T) {
	db := testDB(t)
	_ = db.RecordRun(summary("dup", time.Now()))
	if err := db.RecordRun(summary("dup", time.Now())); err == nil {
		t.Error("expected error for duplicate run id")
	}
}

func TestGetRun_NotFound(t *testing.T) {
	db := testDB(t)
	_, err := db.GetRun("missing")
	if !errors.Is(err, apperr.ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestListRuns_NewestFirst(t *testing.T) {
	db := testDB(t)
	base := time.Now().Add(-time.Hour)
	_ = db.RecordRun(summary("old", base))
	_ = db.RecordRun(summary("mid", base.Add(10*time.Minute)))
	_ = db.RecordRun(summary("new", base.Add(20*time.Minute)))

	runs, err := db.ListRuns(2)
	if err != nil {
		t.Fatalf("ListRuns: %v", err)
	}
	if len(runs) != 2 {
		t.Fatalf("len = %d, want 2", len(runs))
	}
	if runs[0].ID != "new" || runs[1].ID != "mid" {
		t.Errorf("order = %s, %s", runs[0].ID, runs[1].ID)
	}
}

func TestListRuns_Empty(t *testing.T) {
	db := testDB(t)
	runs, err := db.ListRuns(0)
	if err != nil {
		t.Fatalf("ListRuns: %v", err)
	}
	if runs == nil || len(runs) != 0 {
		t.Errorf("runs = %v, want empty non-nil slice", runs)
	}
}

func TestFindMoves(t *testing.T) {
	db := testDB(t)
	_ = db.RecordRun(summary("r1", time.Now().Add(-time.Minute),
		models.Outcome{Name: "tracker-data-2024-01-01.json", Status: models.StatusMoved},
		models.Outcome{Name: "test-data-a.json", Status: models.StatusMoved},
	))
	_ = db.RecordRun(summary("r2", time.Now(),
		models.Outcome{Name: "tracker-data-2024-01-02.json", Status: models.StatusMoved},
	))

	got, err := db.FindMoves("tracker-data", 10)
	if err != nil {
		t.Fatalf("FindMoves: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("len = %d, want 2", len(got))
	}
	if got[0].Name != "tracker-data-2024-01-02.json" || got[0].RunID != "r2" {
		t.Errorf("newest first expected, got %+v", got[0])
	}

	none, err := db.FindMoves("nothing-like-this", 10)
	if err != nil {
		t.Fatalf("FindMoves: %v", err)
	}
	if len(none) != 0 {
		t.Errorf("expected no hits, got %v", none)
	}
}
