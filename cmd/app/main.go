package main

import (
	"context"
	"log/slog"
	"os"

	_ "github.com/joho/godotenv/autoload"
	"github.com/urfave/cli/v3"
)

var version = "dev"

func main() {
	cmd := &cli.Command{
		Name:    "dailyfiles",
		Usage:   "Move generated daily tracker JSON files into the data folder",
		Version: version,
		Action:  relocateAction,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "config",
				Aliases:     []string{"c"},
				Usage:       "Path to config file",
				DefaultText: "config/config.yaml",
				Value:       "config/config.yaml",
				Sources:     cli.EnvVars("APP_CONFIG_FILE"),
			},
			&cli.BoolFlag{
				Name:  "dry-run",
				Usage: "List the files that would be moved without moving them",
			},
		},
		Commands: []*cli.Command{
			{
				Name:   "watch",
				Usage:  "Relocate now and whenever new daily files appear",
				Action: watchAction,
			},
			{
				Name:   "serve",
				Usage:  "Start the HTTP API and event stream",
				Action: serveAction,
			},
			{
				Name:   "mcp",
				Usage:  "Serve the relocation tools over MCP stdio",
				Action: mcpAction,
			},
			{
				Name:   "history",
				Usage:  "Show recorded runs, or search moved files with --find",
				Action: historyAction,
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:  "limit",
						Usage: "Maximum number of rows",
						Value: 20,
					},
					&cli.StringFlag{
						Name:  "find",
						Usage: "Substring of a file name to search for",
					},
				},
			},
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		slog.Error("application error", slog.String("error", err.Error()))
		os.Exit(1)
	}
}
