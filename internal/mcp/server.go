// Package mcp provides the stdio MCP server exposing the profile engine to
// external application shells.
package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/spoolworks/spool/internal/buildinfo"
	"github.com/spoolworks/spool/internal/service"
)

const buildDescription = `Resolve a named filament profile: walk its inherits chain across the user and system tiers, flatten the chain into one document, and return it as JSON. Pass a JSONPath query (e.g. "$.bed_temp") to extract a single value instead of the whole profile.` //nolint:lll

const exportDescription = `Resolve a named filament profile and write the flattened JSON document to a file. Returns the output path.`

const listDescription = `List the names of all profiles in the user tier, sorted and duplicate-free. Unreadable files are skipped.`

// NewServer creates and registers all profile tools on a new MCP server.
// It is intentionally separate from Serve so that tests and other callers can
// obtain a fully configured server without committing to the stdio transport.
func NewServer(svc *service.Service) *mcpserver.MCPServer {
	s := mcpserver.NewMCPServer("spool", buildinfo.Version)
	registerTools(s, svc)
	return s
}

// Serve starts the stdio MCP server, blocking until stdin closes.
func Serve(_ context.Context, dataRoot string) error {
	svc, err := service.New(dataRoot)
	if err != nil {
		return fmt.Errorf("mcp: init service: %w", err)
	}

	return mcpserver.ServeStdio(NewServer(svc))
}

// registerTools wires all three profile tools into the server.
func registerTools(s *mcpserver.MCPServer, svc *service.Service) {
	s.AddTool(mcp.NewTool("profile_build",
		mcp.WithDescription(buildDescription),
		mcp.WithString("name",
			mcp.Description("Profile lookup key, with or without the .json extension."),
			mcp.Required(),
		),
		mcp.WithString("query",
			mcp.Description("Optional JSONPath expression evaluated against the flattened profile."),
		),
	), func(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return handleBuild(svc, req)
	})

	s.AddTool(mcp.NewTool("profile_export",
		mcp.WithDescription(exportDescription),
		mcp.WithString("name",
			mcp.Description("Profile lookup key."),
			mcp.Required(),
		),
		mcp.WithString("path",
			mcp.Description("Output file path."),
			mcp.Required(),
		),
	), func(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return handleExport(svc, req)
	})

	s.AddTool(mcp.NewTool("profile_list",
		mcp.WithDescription(listDescription),
	), func(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return handleList(svc)
	})
}

// ---------------------------------------------------------------------------
// Tool handlers
// ---------------------------------------------------------------------------

func handleBuild(svc *service.Service, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	name := req.GetString("name", "")
	if name == "" {
		return mcp.NewToolResultError("name is required"), nil
	}

	if query := req.GetString("query", ""); query != "" {
		out, err := svc.Query(name, query)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return mcp.NewToolResultText(out), nil
	}

	out, err := svc.Build(name)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(out), nil
}

func handleExport(svc *service.Service, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	name := req.GetString("name", "")
	path := req.GetString("path", "")
	if name == "" || path == "" {
		return mcp.NewToolResultError("name and path are required"), nil
	}

	outPath, err := svc.Export(name, path)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(map[string]any{"path": outPath})
}

func handleList(svc *service.Service) (*mcp.CallToolResult, error) {
	return jsonResult(map[string]any{"profiles": svc.ListProfiles()})
}

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

func jsonResult(v any) (*mcp.CallToolResult, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(string(b)), nil
}
