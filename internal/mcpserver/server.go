// Package mcpserver provides an MCP (Model Context Protocol) server
// that exposes dailyfiles tools for LLM integration via stdio transport.
package mcpserver

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/starford/dailyfiles/internal/apperr"
	"github.com/starford/dailyfiles/internal/runservice"
)

const namingURI = "dailyfiles://naming"

// Server wraps the MCP server with dailyfiles tools.
type Server struct {
	mcp *server.MCPServer
	svc *runservice.Service
}

// New creates a new MCP server with all tools registered.
func New(svc *runservice.Service, version string) *Server {
	s := &Server{svc: svc}

	s.mcp = server.NewMCPServer(
		"dailyfiles",
		version,
		server.WithToolCapabilities(false),
		server.WithResourceCapabilities(false, false),
	)

	s.mcp.AddTool(mcp.NewTool("relocate_daily_files",
		mcp.WithDescription("Move every daily tracker file in the working directory into data/. "+
			"Returns the run summary with per-file outcomes."),
	), s.relocate)

	s.mcp.AddTool(mcp.NewTool("list_candidates",
		mcp.WithDescription("List daily files currently waiting in the working directory, without moving them."),
	), s.listCandidates)

	s.mcp.AddTool(mcp.NewTool("list_runs",
		mcp.WithDescription("List recent relocation runs from the ledger, newest first."),
		mcp.WithNumber("limit", mcp.Description("Maximum number of runs (default 20)")),
	), s.listRuns)

	s.mcp.AddTool(mcp.NewTool("find_moves",
		mcp.WithDescription("Search recorded moves by file name substring."),
		mcp.WithString("query", mcp.Required(), mcp.Description("Substring of the file name")),
	), s.findMoves)

	s.mcp.AddTool(mcp.NewTool("get_naming_contract",
		mcp.WithDescription("Returns the rules that decide which files count as daily files."),
	), s.getNamingContract)

	s.mcp.AddResource(
		mcp.NewResource(namingURI, "Daily File Naming Contract",
			mcp.WithResourceDescription("Which file names are moved into data/."),
			mcp.WithMIMEType("text/markdown"),
		),
		s.readNamingResource,
	)

	return s
}

// ServeStdio starts the MCP server on stdin/stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcp)
}

func jsonResult(v any) (*mcp.CallToolResult, error) {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(string(out)), nil
}

func ledgerResult(err error) *mcp.CallToolResult {
	if errors.Is(err, apperr.ErrLedgerDisabled) {
		return mcp.NewToolResultError("ledger is disabled; set ledger.enabled in the config")
	}
	return mcp.NewToolResultError(err.Error())
}

func (s *Server) relocate(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sum, err := s.svc.Relocate(ctx)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(sum)
}

func (s *Server) listCandidates(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	names, err := s.svc.Candidates(ctx)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if len(names) == 0 {
		return mcp.NewToolResultText("no daily files found"), nil
	}
	return mcp.NewToolResultText(strings.Join(names, "\n")), nil
}

func (s *Server) listRuns(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	runs, err := s.svc.ListRuns(ctx, req.GetInt("limit", 0))
	if err != nil {
		return ledgerResult(err), nil
	}
	return jsonResult(runs)
}

func (s *Server) findMoves(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	query, err := req.RequireString("query")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	moves, err := s.svc.FindMoves(ctx, query, 50)
	if err != nil {
		return ledgerResult(err), nil
	}
	if len(moves) == 0 {
		return mcp.NewToolResultText(fmt.Sprintf("no moves matching %q", query)), nil
	}
	return jsonResult(moves)
}

func (s *Server) getNamingContract(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultText(NamingContract), nil
}

func (s *Server) readNamingResource(_ context.Context, _ mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      namingURI,
			MIMEType: "text/markdown",
			Text:     NamingContract,
		},
	}, nil
}
