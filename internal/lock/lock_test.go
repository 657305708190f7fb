package lock

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/starford/dailyfiles/internal/apperr"
)

func TestPathFor_OutsideSource(t *testing.T) {
	dir := t.TempDir()
	p, err := PathFor(dir)
	if err != nil {
		t.Fatalf("PathFor: %v", err)
	}
	if strings.HasPrefix(p, dir+string(os.PathSeparator)) {
		t.Errorf("lock file %s should not live inside %s", p, dir)
	}
	if filepath.Dir(p) != filepath.Clean(os.TempDir()) {
		t.Errorf("lock dir = %s", filepath.Dir(p))
	}
	other, _ := PathFor(t.TempDir())
	if other == p {
		t.Error("different directories should get different locks")
	}
}

func TestAcquire_Exclusive(t *testing.T) {
	dir := t.TempDir()
	l, err := Acquire(dir)
	if err != nil {
		t.Fatalf("Acquire: %v", err)
	}

	_, err = Acquire(dir)
	if !errors.Is(err, apperr.ErrLocked) {
		t.Fatalf("second Acquire err = %v, want ErrLocked", err)
	}

	if err := l.Release(); err != nil {
		t.Fatalf("Release: %v", err)
	}
	if _, err := os.Stat(l.Path()); !os.IsNotExist(err) {
		t.Errorf("lock file should be removed, stat err = %v", err)
	}

	again, err := Acquire(dir)
	if err != nil {
		t.Fatalf("Acquire after release: %v", err)
	}
	_ = again.Release()
}
