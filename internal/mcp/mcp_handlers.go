package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"incsight/core"
	"incsight/internal/contract"
)

// toolHandler holds common dependencies for MCP tool handlers.
type toolHandler struct {
	baseCfg *contract.Config
	mgr     contract.HistoryManager
}

func (h *toolHandler) handleListFields(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg := h.baseCfg.Clone()
	cfg.InputFile = request.GetString("input", "")

	result, err := core.GetFieldListResult(cfg)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("field listing failed: %v", err)), nil
	}

	jsonData, _ := json.MarshalIndent(result, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleAnalyze(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg := h.baseCfg.Clone()
	cfg.InputFile = request.GetString("input", "")
	if g := request.GetString("group_by", ""); g != "" {
		cfg.GroupBy = g
	}
	if n := request.GetInt("top", 0); n > 0 {
		cfg.TopN = n
	}

	result, err := core.GetAnalysisResult(cfg)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("analysis failed: %v", err)), nil
	}

	jsonData, _ := json.MarshalIndent(result, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleHistoryStatus(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	status, err := h.mgr.GetHistoryStore().GetStatus()
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("history status failed: %v", err)), nil
	}

	jsonData, _ := json.MarshalIndent(status, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}
