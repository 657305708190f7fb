// Package watch re-runs relocation when new daily files appear.
package watch

import (
	"context"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/starford/dailyfiles/internal/dailyfile"
)

// DefaultDebounce is used when a non-positive debounce is given.
const DefaultDebounce = 200 * time.Millisecond

// TriggerFunc performs one relocation run.
type TriggerFunc func() error

// Run watches dir (non-recursively) and calls trigger once at start and
// again, debounced, whenever a daily file is created, written or renamed
// into dir. It returns when ctx is cancelled. Trigger errors are logged
// and do not stop the watcher.
func Run(ctx context.Context, dir string, trigger TriggerFunc, debounce time.Duration, logger *slog.Logger) error {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer w.Close()

	if err := w.Add(dir); err != nil {
		return err
	}

	logger.Info("watcher: started", slog.String("dir", dir), slog.Duration("debounce", debounce))

	fire := func(reason string) {
		logger.Debug("watcher: relocating", slog.String("reason", reason))
		if err := trigger(); err != nil {
			logger.Error("watcher: relocation failed", slog.String("error", err.Error()))
		}
	}

	fire("startup")

	var timer *time.Timer
	var timerCh <-chan time.Time

	schedule := func() {
		if timer == nil {
			timer = time.NewTimer(debounce)
			timerCh = timer.C
		} else {
			timer.Reset(debounce)
		}
	}

	for {
		select {
		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			logger.Info("watcher: stopped")
			return nil

		case <-timerCh:
			fire("change")

		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if !relevant(ev) {
				continue
			}
			logger.Debug("watcher: event", slog.String("name", filepath.Base(ev.Name)), slog.String("op", ev.Op.String()))
			schedule()

		case watchErr, ok := <-w.Errors:
			if !ok {
				return nil
			}
			logger.Error("watcher: error", slog.String("error", watchErr.Error()))
		}
	}
}

// relevant reports whether ev may have introduced a daily file.
// Rename fires on the old name, so the new name arrives as Create.
func relevant(ev fsnotify.Event) bool {
	if !ev.Op.Has(fsnotify.Create) && !ev.Op.Has(fsnotify.Write) {
		return false
	}
	return dailyfile.Match(filepath.Base(ev.Name))
}
