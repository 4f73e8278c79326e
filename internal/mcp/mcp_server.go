// Package mcp provides the Model Context Protocol (MCP) server implementation.
package mcp

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"incsight/internal/contract"
)

// NewMCPServer initializes and configures the Incsight MCP server without starting it.
// This is exposed for unit testing.
func NewMCPServer(baseCfg *contract.Config, mgr contract.HistoryManager) *server.MCPServer {
	s := server.NewMCPServer(
		"Incsight Incident Server",
		"1.0.0",
		server.WithLogging(),
	)

	h := &toolHandler{
		baseCfg: baseCfg,
		mgr:     mgr,
	}

	// --- 1. Tool: list_fields ---
	s.AddTool(mcp.NewTool("list_fields",
		mcp.WithDescription("List the distinct field paths present in a fetched incident batch file."),
		mcp.WithString("input", mcp.Description("Path to the incident batch JSON file."), mcp.Required()),
	), h.handleListFields)

	// --- 2. Tool: analyze ---
	s.AddTool(mcp.NewTool("analyze",
		mcp.WithDescription("Compute the most frequent values of a field across a fetched incident batch."),
		mcp.WithString("input", mcp.Description("Path to the incident batch JSON file."), mcp.Required()),
		mcp.WithString("group_by", mcp.Description("Field path or alias to group by (e.g. 'service', 'tags.env.value'). Defaults to 'service'.")),
		mcp.WithNumber("top", mcp.Description("Number of top values to return.")),
	), h.handleAnalyze)

	// --- 3. Tool: history_status ---
	s.AddTool(mcp.NewTool("history_status",
		mcp.WithDescription("Report the status of the fetch run history store."),
	), h.handleHistoryStatus)

	return s
}

// StartMCPServer starts the Incsight MCP server.
func StartMCPServer(_ context.Context, baseCfg *contract.Config, mgr contract.HistoryManager) error {
	s := NewMCPServer(baseCfg, mgr)
	return server.ServeStdio(s)
}
