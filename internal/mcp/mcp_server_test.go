package mcp_test

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"incsight/internal/contract"
	"incsight/internal/fetchlog"
	mcp_internal "incsight/internal/mcp"
	"incsight/schema"
)

func writeBatchFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "incidents.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func callTool(t *testing.T, req mcp.CallToolRequest, baseCfg *contract.Config, mgr contract.HistoryManager) *mcp.CallToolResult {
	t.Helper()
	s := mcp_internal.NewMCPServer(baseCfg, mgr)

	tool := s.GetTool(req.Params.Name)
	require.NotNil(t, tool, "Tool %s should exist", req.Params.Name)

	res, err := tool.Handler(context.Background(), req)
	require.NoError(t, err, "The MCP handler should not return a raw error for tool logic failures")
	return res
}

func TestMCPServerHandlers_ValidationErrors(t *testing.T) {
	baseCfg := &contract.Config{
		GroupBy: contract.DefaultGroupBy,
		TopN:    contract.DefaultTopN,
	}

	t.Run("list_fields missing input", func(t *testing.T) {
		req := mcp.CallToolRequest{
			Params: mcp.CallToolParams{
				Name: "list_fields",
				Arguments: map[string]any{
					"input": "", // Missing required
				},
			},
		}

		res := callTool(t, req, baseCfg, nil)
		assert.True(t, res.IsError, "The response should indicate an error state")
		assert.Contains(t, res.Content[0].(mcp.TextContent).Text, "--input is required")
	})

	t.Run("analyze unknown group_by", func(t *testing.T) {
		input := writeBatchFile(t, `[{"service": "api"}]`)
		req := mcp.CallToolRequest{
			Params: mcp.CallToolParams{
				Name: "analyze",
				Arguments: map[string]any{
					"input":    input,
					"group_by": "nonexistent", // Invalid
				},
			},
		}

		res := callTool(t, req, baseCfg, nil)
		assert.True(t, res.IsError)
		assert.Contains(t, res.Content[0].(mcp.TextContent).Text, "no field matches")
	})

	t.Run("analyze empty batch", func(t *testing.T) {
		input := writeBatchFile(t, `[]`)
		req := mcp.CallToolRequest{
			Params: mcp.CallToolParams{
				Name: "analyze",
				Arguments: map[string]any{
					"input": input,
				},
			},
		}

		res := callTool(t, req, baseCfg, nil)
		assert.True(t, res.IsError)
		assert.Contains(t, res.Content[0].(mcp.TextContent).Text, "no records to analyze")
	})
}

func TestMCPServerHandlers_ListFields(t *testing.T) {
	baseCfg := &contract.Config{}
	input := writeBatchFile(t, `[{"id": "a", "tags": {"env": {"value": "prod"}}}]`)

	req := mcp.CallToolRequest{
		Params: mcp.CallToolParams{
			Name: "list_fields",
			Arguments: map[string]any{
				"input": input,
			},
		},
	}

	res := callTool(t, req, baseCfg, nil)
	require.False(t, res.IsError)

	var result schema.FieldListResult
	require.NoError(t, json.Unmarshal([]byte(res.Content[0].(mcp.TextContent).Text), &result))
	assert.Equal(t, []string{"id", "tags.env.value"}, result.Paths)
	assert.Equal(t, 2, result.Count)
}

func TestMCPServerHandlers_Analyze(t *testing.T) {
	baseCfg := &contract.Config{
		GroupBy: contract.DefaultGroupBy,
		TopN:    contract.DefaultTopN,
	}
	input := writeBatchFile(t, `[
		{"service": "api"},
		{"service": "api"},
		{"service": "web"}
	]`)

	req := mcp.CallToolRequest{
		Params: mcp.CallToolParams{
			Name: "analyze",
			Arguments: map[string]any{
				"input": input,
				"top":   1.0,
			},
		},
	}

	res := callTool(t, req, baseCfg, nil)
	require.False(t, res.IsError)

	var result schema.AnalysisResult
	require.NoError(t, json.Unmarshal([]byte(res.Content[0].(mcp.TextContent).Text), &result))
	assert.Equal(t, "service", result.GroupBy)
	assert.Equal(t, 3, result.TotalCount)
	require.Len(t, result.Entries, 1)
	assert.Equal(t, schema.ValueCount{Value: "api", Count: 2}, result.Entries[0])
}

func TestMCPServerHandlers_HistoryStatus(t *testing.T) {
	mockStore := &fetchlog.MockHistoryStore{}
	mockStore.On("GetStatus").Return(schema.HistoryStatus{
		Backend:   string(schema.SQLiteBackend),
		Connected: true,
		TotalRuns: 3,
	}, nil)

	mockMgr := &fetchlog.MockHistoryManager{}
	mockMgr.On("GetHistoryStore").Return(mockStore)

	req := mcp.CallToolRequest{
		Params: mcp.CallToolParams{
			Name: "history_status",
		},
	}

	res := callTool(t, req, &contract.Config{}, mockMgr)
	require.False(t, res.IsError)

	var status schema.HistoryStatus
	require.NoError(t, json.Unmarshal([]byte(res.Content[0].(mcp.TextContent).Text), &status))
	assert.Equal(t, "sqlite", status.Backend)
	assert.True(t, status.Connected)
	assert.Equal(t, 3, status.TotalRuns)
	mockStore.AssertExpectations(t)
}
