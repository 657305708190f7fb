// Package lock keeps long-running relocators from sharing a source directory.
package lock

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"

	"github.com/starford/dailyfiles/internal/apperr"
	"github.com/starford/dailyfiles/internal/checksum"
)

// Lock is a held instance lock.
type Lock struct {
	fl *flock.Flock
}

// PathFor returns the lock file used for dir. It lives in the temp
// directory so neither the source nor the data folder gains entries.
func PathFor(dir string) (string, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("lock: resolve dir: %w", err)
	}
	name := "dailyfiles-" + checksum.Short([]byte(abs), 16) + ".lock"
	return filepath.Join(os.TempDir(), name), nil
}

// Acquire takes the lock for dir without blocking. It returns
// apperr.ErrLocked when another holder owns it.
func Acquire(dir string) (*Lock, error) {
	path, err := PathFor(dir)
	if err != nil {
		return nil, err
	}
	fl := flock.New(path)
	ok, err := fl.TryLock()
	if err != nil {
		return nil, fmt.Errorf("lock: acquire %s: %w", path, err)
	}
	if !ok {
		return nil, fmt.Errorf("lock: %s: %w", dir, apperr.ErrLocked)
	}
	return &Lock{fl: fl}, nil
}

// Path returns the lock file path.
func (l *Lock) Path() string {
	return l.fl.Path()
}

// Release unlocks and removes the lock file.
func (l *Lock) Release() error {
	if err := l.fl.Unlock(); err != nil {
		return fmt.Errorf("lock: release: %w", err)
	}
	_ = os.Remove(l.fl.Path())
	return nil
}
