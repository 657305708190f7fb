package api

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/starford/dailyfiles/internal/relocator"
	"github.com/starford/dailyfiles/internal/runservice"
	"github.com/starford/dailyfiles/internal/sse"
	"github.com/starford/dailyfiles/internal/testutil"
)

type env struct {
	dir    string
	router http.Handler
}

// testEnv sets up a temp source directory, ledger, service, and router.
// An empty authToken means disabled mode.
func testEnv(t *testing.T, authToken string, withLedger bool, files ...string) env {
	t.Helper()
	dir, store := testutil.TestWorkspace(t, files...)

	opts := []relocator.Option{
		relocator.WithOutput(io.Discard),
		relocator.WithLogger(slog.New(slog.NewJSONHandler(io.Discard, nil))),
	}
	var svc *runservice.Service
	if withLedger {
		db := testutil.TestLedger(t)
		opts = append(opts, relocator.WithRecorder(db))
		svc = runservice.NewService(relocator.New(store, opts...), db)
	} else {
		svc = runservice.NewService(relocator.New(store, opts...), nil)
	}
	return env{dir: dir, router: NewRouter(svc, authToken != "", authToken, nil)}
}

func do(t *testing.T, h http.Handler, method, target string, hdr map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, nil)
	for k, v := range hdr {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func TestCandidates(t *testing.T) {
	e := testEnv(t, "", false, "tracker-data-1.json", "notes.txt")
	w := do(t, e.router, http.MethodGet, "/candidates", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	var resp CandidatesResponse
	_ = json.Unmarshal(w.Body.Bytes(), &resp)
	if len(resp.Candidates) != 1 || resp.Candidates[0] != "tracker-data-1.json" {
		t.Errorf("candidates = %v", resp.Candidates)
	}
}

func TestCandidates_Classified(t *testing.T) {
	e := testEnv(t, "", false, "real-news-tracker-2025-01-15.json", "test-data-x.json")
	w := do(t, e.router, http.MethodGet, "/candidates", nil)
	var resp CandidatesResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if len(resp.Files) != 2 {
		t.Fatalf("files = %+v", resp.Files)
	}
	want := map[string]CandidateFile{
		"real-news-tracker-2025-01-15.json": {Name: "real-news-tracker-2025-01-15.json", Kind: "real-news-tracker", Date: "2025-01-15"},
		"test-data-x.json":                  {Name: "test-data-x.json", Kind: "test-data"},
	}
	for _, f := range resp.Files {
		if f != want[f.Name] {
			t.Errorf("file = %+v, want %+v", f, want[f.Name])
		}
	}
}

func TestCandidates_EmptyIsArray(t *testing.T) {
	e := testEnv(t, "", false)
	w := do(t, e.router, http.MethodGet, "/candidates", nil)
	if !strings.Contains(w.Body.String(), `"candidates":[]`) {
		t.Errorf("body = %s", w.Body.String())
	}
}

func TestRelocate(t *testing.T) {
	e := testEnv(t, "", true, "tracker-data-1.json", "test-data-2.json", "notes.txt")
	w := do(t, e.router, http.MethodPost, "/relocate", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}
	var sum RelocateResponse
	if err := json.Unmarshal(w.Body.Bytes(), &sum); err != nil {
		t.Fatal(err)
	}
	if sum.Moved != 2 || sum.Failed != 0 || sum.RunID == "" {
		t.Errorf("summary = %+v", sum)
	}
	if _, err := os.Stat(filepath.Join(e.dir, "data", "test-data-2.json")); err != nil {
		t.Errorf("file not moved: %v", err)
	}
}

func TestRelocate_SetupErrorIs500(t *testing.T) {
	e := testEnv(t, "", false, "tracker-data-1.json")
	if err := os.WriteFile(filepath.Join(e.dir, "data"), []byte("blocker"), 0o644); err != nil {
		t.Fatal(err)
	}
	w := do(t, e.router, http.MethodPost, "/relocate", nil)
	if w.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want 500", w.Code)
	}
}

func TestRunsAfterRelocate(t *testing.T) {
	e := testEnv(t, "", true, "tracker-data-1.json")
	w := do(t, e.router, http.MethodPost, "/relocate", nil)
	var sum RelocateResponse
	_ = json.Unmarshal(w.Body.Bytes(), &sum)

	w = do(t, e.router, http.MethodGet, "/runs?limit=5", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("runs status = %d", w.Code)
	}
	var list RunListResponse
	_ = json.Unmarshal(w.Body.Bytes(), &list)
	if len(list.Runs) != 1 || list.Runs[0].ID != sum.RunID {
		t.Fatalf("runs = %+v", list.Runs)
	}

	w = do(t, e.router, http.MethodGet, "/runs/"+sum.RunID, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("run detail status = %d", w.Code)
	}
	var detail RunDetailResponse
	_ = json.Unmarshal(w.Body.Bytes(), &detail)
	if len(detail.Moves) != 1 || detail.Moves[0].Name != "tracker-data-1.json" {
		t.Errorf("detail = %+v", detail)
	}

	w = do(t, e.router, http.MethodGet, "/moves?q=tracker", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("moves status = %d", w.Code)
	}
	var moves MoveListResponse
	_ = json.Unmarshal(w.Body.Bytes(), &moves)
	if len(moves.Moves) != 1 {
		t.Errorf("moves = %+v", moves.Moves)
	}
}

func TestGetRun_NotFound(t *testing.T) {
	e := testEnv(t, "", true)
	w := do(t, e.router, http.MethodGet, "/runs/nope", nil)
	if w.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", w.Code)
	}
}

func TestRuns_LedgerDisabled(t *testing.T) {
	e := testEnv(t, "", false)
	for _, target := range []string{"/runs", "/runs/x", "/moves?q=a"} {
		w := do(t, e.router, http.MethodGet, target, nil)
		if w.Code != http.StatusServiceUnavailable {
			t.Errorf("%s status = %d, want 503", target, w.Code)
		}
	}
}

func TestFindMoves_MissingQuery(t *testing.T) {
	e := testEnv(t, "", true)
	w := do(t, e.router, http.MethodGet, "/moves", nil)
	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
}

func TestAuthMiddleware_ValidToken(t *testing.T) {
	e := testEnv(t, "secret123", false)
	w := do(t, e.router, http.MethodGet, "/candidates", map[string]string{"Authorization": "Bearer secret123"})
	if w.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", w.Code)
	}
}

func TestAuthMiddleware_MissingToken(t *testing.T) {
	e := testEnv(t, "secret123", false)
	w := do(t, e.router, http.MethodGet, "/candidates", nil)
	if w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", w.Code)
	}
}

func TestAuthMiddleware_WrongToken(t *testing.T) {
	e := testEnv(t, "secret123", false, "tracker-data-1.json")
	w := do(t, e.router, http.MethodPost, "/relocate", map[string]string{"Authorization": "Bearer wrong"})
	if w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", w.Code)
	}
	if _, err := os.Stat(filepath.Join(e.dir, "tracker-data-1.json")); err != nil {
		t.Error("unauthorised request must not move files")
	}
}

func TestAuthMiddleware_Disabled(t *testing.T) {
	e := testEnv(t, "", false)
	w := do(t, e.router, http.MethodGet, "/candidates", nil)
	if w.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", w.Code)
	}
}

func TestSSEEvents_AuthProtected(t *testing.T) {
	_, store := testutil.TestWorkspace(t)
	b := sse.NewBroker(time.Second)
	defer b.Close()
	svc := runservice.NewService(relocator.New(store, relocator.WithOutput(io.Discard)), nil)
	router := NewRouter(svc, true, "tok", b)

	w := do(t, router, http.MethodGet, "/events", nil)
	if w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", w.Code)
	}
}

func TestSSEEvents_ValidToken(t *testing.T) {
	_, store := testutil.TestWorkspace(t)
	b := sse.NewBroker(time.Second)
	defer b.Close()
	svc := runservice.NewService(relocator.New(store, relocator.WithOutput(io.Discard)), nil)
	router := NewRouter(svc, true, "tok", b)

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()
	req := httptest.NewRequest(http.MethodGet, "/events", nil).WithContext(ctx)
	req.Header.Set("Authorization", "Bearer tok")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); ct != "text/event-stream" {
		t.Errorf("content type = %q", ct)
	}
}
