// Package testutil provides shared test helpers for workspaces and ledgers.
package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/starford/dailyfiles/internal/ledger"
	"github.com/starford/dailyfiles/internal/storage"
)

// TestLedger creates a temporary SQLite ledger that is automatically cleaned up.
func TestLedger(t *testing.T) *ledger.DB {
	t.Helper()
	dbFile, err := os.CreateTemp("", "dailyfiles-test-*.db")
	if err != nil {
		t.Fatal(err)
	}
	dbFile.Close()
	t.Cleanup(func() { os.Remove(dbFile.Name()) })

	db, err := ledger.Open(dbFile.Name())
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

// TestWorkspace creates a temporary source directory holding the named
// files (each with a small JSON body) and a storage.Provider over it.
func TestWorkspace(t *testing.T, files ...string) (string, storage.Provider) {
	t.Helper()
	dir := t.TempDir()
	for _, f := range files {
		if err := os.WriteFile(filepath.Join(dir, f), []byte(`{"file":"`+f+`"}`), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	store, err := storage.NewFS(dir)
	if err != nil {
		t.Fatal(err)
	}
	return dir, store
}
