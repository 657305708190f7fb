// Package relocator moves daily files from the source directory into its
// data folder and reports what happened.
package relocator

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/starford/dailyfiles/internal/checksum"
	"github.com/starford/dailyfiles/internal/dailyfile"
	"github.com/starford/dailyfiles/internal/ledger"
	"github.com/starford/dailyfiles/internal/models"
	"github.com/starford/dailyfiles/internal/storage"
)

// EventSink receives outcomes as they happen and the summary once a run ends.
type EventSink interface {
	PublishOutcome(o models.Outcome)
	PublishSummary(s *models.Summary)
}

// Option configures a Relocator.
type Option func(*Relocator)

// WithOutput sets where the console report is written. Defaults to stdout.
func WithOutput(w io.Writer) Option {
	return func(r *Relocator) {
		r.out = w
	}
}

// WithLogger sets the structured logger.
func WithLogger(l *slog.Logger) Option {
	return func(r *Relocator) {
		r.logger = l
	}
}

// WithRecorder stores every finished run in a ledger.
func WithRecorder(rec ledger.Recorder) Option {
	return func(r *Relocator) {
		r.recorder = rec
	}
}

// WithSink publishes outcomes and summaries to sink.
func WithSink(sink EventSink) Option {
	return func(r *Relocator) {
		r.sink = sink
	}
}

// WithColor toggles coloured glyphs in the report.
func WithColor(enabled bool) Option {
	return func(r *Relocator) {
		r.colorize = enabled
	}
}

// Relocator performs relocation runs against one source directory.
// Runs are serialised; concurrent callers wait for the active run.
type Relocator struct {
	store    storage.Provider
	out      io.Writer
	logger   *slog.Logger
	recorder ledger.Recorder
	sink     EventSink
	colorize bool
	now      func() time.Time

	mu sync.Mutex
}

// New creates a Relocator over store.
func New(store storage.Provider, opts ...Option) *Relocator {
	r := &Relocator{
		store:  store,
		out:    os.Stdout,
		logger: slog.Default(),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Candidates lists the daily files currently in the source directory
// without moving anything.
func (r *Relocator) Candidates() ([]string, error) {
	names, err := r.store.Entries()
	if err != nil {
		return nil, fmt.Errorf("relocator: list source: %w", err)
	}
	return dailyfile.Filter(names), nil
}

// Relocate ensures the data folder exists, then moves every daily file
// found in a single listing of the source directory. Per-file failures
// are counted and reported; only destination creation and listing
// errors are returned.
func (r *Relocator) Relocate() (*models.Summary, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	s := &models.Summary{
		RunID:     uuid.NewString(),
		Source:    r.store.Root(),
		StartedAt: r.now(),
	}

	if err := r.store.EnsureDir(dailyfile.DestinationDir); err != nil {
		return nil, fmt.Errorf("relocator: prepare destination: %w", err)
	}
	names, err := r.store.Entries()
	if err != nil {
		return nil, fmt.Errorf("relocator: list source: %w", err)
	}
	s.Candidates = dailyfile.Filter(names)
	s.Outcomes = make([]models.Outcome, 0, len(s.Candidates))

	rep := newReport(r.out, r.colorize)
	rep.header(len(s.Candidates))

	for _, name := range s.Candidates {
		o := r.move(name)
		if o.Moved() {
			s.Moved++
			rep.moved(name)
			r.logger.Debug("relocator: moved", slog.String("name", name))
		} else {
			s.Failed++
			rep.failed(name, o.Error)
			r.logger.Warn("relocator: move failed", slog.String("name", name), slog.String("error", o.Error))
		}
		s.Outcomes = append(s.Outcomes, o)
		if r.sink != nil {
			r.sink.PublishOutcome(o)
		}
	}

	s.FinishedAt = r.now()
	rep.summary(s.Moved, s.Failed)

	r.logger.Info("relocator: run finished",
		slog.String("run_id", s.RunID),
		slog.String("source", s.Source),
		slog.Int("candidates", len(s.Candidates)),
		slog.Int("moved", s.Moved),
		slog.Int("failed", s.Failed),
		slog.Duration("took", s.Duration()))

	if r.recorder != nil {
		if err := r.recorder.RecordRun(s); err != nil {
			r.logger.Warn("relocator: record run failed", slog.String("run_id", s.RunID), slog.String("error", err.Error()))
		}
	}
	if r.sink != nil {
		r.sink.PublishSummary(s)
	}
	return s, nil
}

// move makes the single attempt for one candidate.
func (r *Relocator) move(name string) models.Outcome {
	if err := r.store.MoveInto(name, dailyfile.DestinationDir); err != nil {
		return models.Outcome{Name: name, Status: models.StatusFailed, Error: err.Error()}
	}
	o := models.Outcome{Name: name, Status: models.StatusMoved}
	if r.recorder != nil || r.sink != nil {
		r.describe(&o)
	}
	return o
}

// describe fills size and checksum for a moved regular file.
func (r *Relocator) describe(o *models.Outcome) {
	dest := filepath.Join(dailyfile.DestinationDir, o.Name)
	info, err := r.store.Stat(dest)
	if err != nil || !info.Mode().IsRegular() {
		return
	}
	data, err := r.store.Read(dest)
	if err != nil {
		r.logger.Debug("relocator: checksum skipped", slog.String("name", o.Name), slog.String("error", err.Error()))
		return
	}
	o.Size = info.Size()
	o.Checksum = checksum.Sum(data)
}
