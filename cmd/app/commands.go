package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/starford/dailyfiles/internal"
	pkgconfig "github.com/starford/dailyfiles/pkg/config"
)

func stdout(cmd *cli.Command) io.Writer {
	if w := cmd.Root().Writer; w != nil {
		return w
	}
	return os.Stdout
}

func loadOptions(cmd *cli.Command) ([]internal.Option, error) {
	cfg := internal.NewDefaultConfig()
	if err := pkgconfig.LoadOptional(cmd.String("config"), cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return []internal.Option{
		internal.WithConfig(cfg),
		internal.WithOutput(stdout(cmd)),
		internal.WithVersion(version),
	}, nil
}

func relocateAction(ctx context.Context, cmd *cli.Command) error {
	opts, err := loadOptions(cmd)
	if err != nil {
		return err
	}

	if cmd.Bool("dry-run") {
		names, err := internal.Candidates(ctx, opts...)
		if err != nil {
			return fmt.Errorf("list candidates: %w", err)
		}
		printCandidates(stdout(cmd), names)
		return nil
	}

	if _, err := internal.Relocate(ctx, opts...); err != nil {
		return fmt.Errorf("relocate: %w", err)
	}
	return nil
}

func printCandidates(w io.Writer, names []string) {
	fmt.Fprintf(w, "Found %d daily files to move:\n", len(names))
	for _, name := range names {
		fmt.Fprintf(w, "  • %s\n", name)
	}
}

func watchAction(ctx context.Context, cmd *cli.Command) error {
	opts, err := loadOptions(cmd)
	if err != nil {
		return err
	}
	if err := internal.Watch(ctx, opts...); err != nil {
		return fmt.Errorf("watch: %w", err)
	}
	return nil
}

func serveAction(ctx context.Context, cmd *cli.Command) error {
	opts, err := loadOptions(cmd)
	if err != nil {
		return err
	}
	if err := internal.Serve(ctx, opts...); err != nil {
		return fmt.Errorf("app run error: %w", err)
	}
	return nil
}

func mcpAction(ctx context.Context, cmd *cli.Command) error {
	opts, err := loadOptions(cmd)
	if err != nil {
		return err
	}
	if err := internal.ServeMCP(ctx, opts...); err != nil {
		return fmt.Errorf("mcp: %w", err)
	}
	return nil
}

func historyAction(ctx context.Context, cmd *cli.Command) error {
	opts, err := loadOptions(cmd)
	if err != nil {
		return err
	}
	limit := int(cmd.Int("limit"))
	out := stdout(cmd)

	if q := cmd.String("find"); q != "" {
		moves, err := internal.FindMoves(ctx, q, limit, opts...)
		if err != nil {
			return fmt.Errorf("history: %w", err)
		}
		fmt.Fprintln(out, renderMoves(moves))
		return nil
	}

	runs, err := internal.History(ctx, limit, opts...)
	if err != nil {
		return fmt.Errorf("history: %w", err)
	}
	fmt.Fprintln(out, renderRuns(runs))
	return nil
}
