// Package internal provides the application wiring and the run modes.
package internal

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"golang.org/x/sync/errgroup"

	"github.com/starford/dailyfiles/internal/api"
	"github.com/starford/dailyfiles/internal/apperr"
	"github.com/starford/dailyfiles/internal/ledger"
	"github.com/starford/dailyfiles/internal/lock"
	"github.com/starford/dailyfiles/internal/mcpserver"
	"github.com/starford/dailyfiles/internal/models"
	"github.com/starford/dailyfiles/internal/relocator"
	"github.com/starford/dailyfiles/internal/runservice"
	"github.com/starford/dailyfiles/internal/sse"
	"github.com/starford/dailyfiles/internal/storage"
	"github.com/starford/dailyfiles/internal/watch"
)

// runtime holds the components shared by every mode.
type runtime struct {
	cfg    *Config
	logger *slog.Logger
	store  *storage.FS
	ledger *ledger.DB
}

func (rt *runtime) close() {
	if rt.ledger != nil {
		if err := rt.ledger.Close(); err != nil {
			rt.logger.Warn("ledger close failed", slog.String("error", err.Error()))
		}
	}
}

// ledgerStore returns the ledger as an interface value, nil when disabled.
func (rt *runtime) ledgerStore() ledger.Store {
	if rt.ledger == nil {
		return nil
	}
	return rt.ledger
}

func newApplication(opts []Option) (*application, error) {
	app := &application{
		out:     os.Stdout,
		logOut:  os.Stderr,
		version: "dev",
	}
	for _, opt := range opts {
		opt(app)
	}
	if app.config == nil {
		return nil, fmt.Errorf("config is required")
	}
	return app, nil
}

func newLogger(cfg *Config, w io.Writer) *slog.Logger {
	hopts := &slog.HandlerOptions{Level: cfg.App.LogLevel}
	if cfg.App.LogFormat == LogFormatText {
		return slog.New(slog.NewTextHandler(w, hopts))
	}
	return slog.New(slog.NewJSONHandler(w, hopts))
}

// setup builds the logger, the working-directory provider and, when
// enabled, the ledger.
func setup(app *application, needLedger bool) (*runtime, error) {
	cfg := app.config
	logger := newLogger(cfg, app.logOut)
	slog.SetDefault(logger)

	store, err := storage.NewWorkingDir()
	if err != nil {
		return nil, err
	}

	logger.Debug("Configuration loaded",
		slog.String("source", store.Root()),
		slog.Bool("ledger_enabled", cfg.Ledger.Enabled),
		slog.String("log_level", cfg.App.LogLevel.String()))

	rt := &runtime{cfg: cfg, logger: logger, store: store}

	if needLedger && !cfg.Ledger.Enabled {
		return nil, apperr.ErrLedgerDisabled
	}
	if cfg.Ledger.Enabled {
		db, err := ledger.Open(cfg.Ledger.Path)
		if err != nil {
			return nil, fmt.Errorf("init ledger: %w", err)
		}
		rt.ledger = db
	}
	return rt, nil
}

func (rt *runtime) relocator(out io.Writer, sink relocator.EventSink) *relocator.Relocator {
	opts := []relocator.Option{
		relocator.WithOutput(out),
		relocator.WithLogger(rt.logger),
		relocator.WithColor(relocator.ShouldColor(rt.cfg.App.Color, out)),
	}
	if rt.ledger != nil {
		opts = append(opts, relocator.WithRecorder(rt.ledger))
	}
	if sink != nil {
		opts = append(opts, relocator.WithSink(sink))
	}
	return relocator.New(rt.store, opts...)
}

// Relocate performs a single relocation of the working directory and
// prints the report.
func Relocate(_ context.Context, opts ...Option) (*models.Summary, error) {
	app, err := newApplication(opts)
	if err != nil {
		return nil, err
	}
	rt, err := setup(app, false)
	if err != nil {
		return nil, err
	}
	defer rt.close()

	return rt.relocator(app.out, nil).Relocate()
}

// Candidates lists the daily files in the working directory without
// moving them.
func Candidates(_ context.Context, opts ...Option) ([]string, error) {
	app, err := newApplication(opts)
	if err != nil {
		return nil, err
	}
	rt, err := setup(app, false)
	if err != nil {
		return nil, err
	}
	defer rt.close()

	return rt.relocator(app.out, nil).Candidates()
}

// History returns recent runs from the ledger.
func History(_ context.Context, limit int, opts ...Option) ([]ledger.RunRow, error) {
	app, err := newApplication(opts)
	if err != nil {
		return nil, err
	}
	rt, err := setup(app, true)
	if err != nil {
		return nil, err
	}
	defer rt.close()

	return rt.ledger.ListRuns(limit)
}

// FindMoves searches the ledger for moves whose file name contains query.
func FindMoves(_ context.Context, query string, limit int, opts ...Option) ([]ledger.MoveRow, error) {
	app, err := newApplication(opts)
	if err != nil {
		return nil, err
	}
	rt, err := setup(app, true)
	if err != nil {
		return nil, err
	}
	defer rt.close()

	return rt.ledger.FindMoves(query, limit)
}

// Watch relocates now and again whenever daily files appear, until ctx
// is cancelled or the process receives SIGINT/SIGTERM.
func Watch(ctx context.Context, opts ...Option) error {
	app, err := newApplication(opts)
	if err != nil {
		return err
	}
	rt, err := setup(app, false)
	if err != nil {
		return err
	}
	defer rt.close()

	l, err := lock.Acquire(rt.store.Root())
	if err != nil {
		return err
	}
	defer l.Release() //nolint:errcheck

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	r := rt.relocator(app.out, nil)
	return watch.Run(ctx, rt.store.Root(), relocateOnly(r), rt.cfg.Watch.Debounce, rt.logger)
}

func relocateOnly(r *relocator.Relocator) watch.TriggerFunc {
	return func() error {
		_, err := r.Relocate()
		return err
	}
}

// Serve starts the HTTP API with the SSE event stream, plus the watcher
// when watch.enabled is set.
func Serve(ctx context.Context, opts ...Option) error {
	app, err := newApplication(opts)
	if err != nil {
		return err
	}
	rt, err := setup(app, false)
	if err != nil {
		return err
	}
	defer rt.close()
	cfg := rt.cfg
	logger := rt.logger

	l, err := lock.Acquire(rt.store.Root())
	if err != nil {
		return err
	}
	defer l.Release() //nolint:errcheck

	broker := sse.NewBroker(2 * time.Second)
	defer broker.Close()

	reloc := rt.relocator(app.out, broker)
	svc := runservice.NewService(reloc, rt.ledgerStore())
	apiRouter := api.NewRouter(svc, cfg.Auth.AuthEnabled(), cfg.Auth.Token, broker)

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.RequestLogger(&middleware.DefaultLogFormatter{
		Logger:  slog.NewLogLogger(logger.Handler(), slog.LevelDebug),
		NoColor: true,
	}))
	r.Use(middleware.Recoverer)

	// Health check endpoints (unauthenticated).
	r.Get("/health/live", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})
	r.Get("/health/ready", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	r.Mount("/api", apiRouter)

	httpServer := &http.Server{
		Addr:              cfg.App.HTTP.Address(),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gCtx := errgroup.WithContext(ctx)

	if cfg.Watch.Enabled {
		g.Go(func() error {
			return watch.Run(gCtx, rt.store.Root(), relocateOnly(reloc), cfg.Watch.Debounce, logger)
		})
	}

	g.Go(func() error {
		logger.Info("Starting HTTP server", slog.String("address", cfg.App.HTTP.Address()))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("HTTP server error: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		defer signal.Stop(quit)

		select {
		case sig := <-quit:
			logger.Info("Received shutdown signal", slog.String("signal", sig.String()))
		case <-gCtx.Done():
			logger.Info("Context cancelled, initiating shutdown")
		}

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			logger.Error("HTTP server shutdown error", slog.String("error", err.Error()))
		}
		return context.Canceled
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("Application error", slog.String("error", err.Error()))
		return err
	}

	logger.Info("Server stopped successfully")
	return nil
}

// ServeMCP runs the MCP server over stdio. Reports go to the log output
// because stdout carries the protocol.
func ServeMCP(_ context.Context, opts ...Option) error {
	app, err := newApplication(opts)
	if err != nil {
		return err
	}
	rt, err := setup(app, false)
	if err != nil {
		return err
	}
	defer rt.close()

	reloc := rt.relocator(app.logOut, nil)
	srv := mcpserver.New(runservice.NewService(reloc, rt.ledgerStore()), app.version)
	rt.logger.Info("MCP server starting on stdio", slog.String("source", rt.store.Root()))
	return srv.ServeStdio()
}
