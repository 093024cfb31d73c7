package tools

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/HendryAvila/ppmfit/internal/spaces"
)

// --- Helpers ---

type handler interface {
	Definition() mcp.Tool
	Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error)
}

// twoToolSpace has one heavy criterion that a wins and two light ones b wins:
// a scores 77, b scores 43.
const twoToolSpace = `
name: PPM selection
criteria:
  - {id: c1, name: Criterion c1, weight: 5}
  - {id: c2, name: Criterion c2, weight: 1}
  - {id: c3, name: Criterion c3, weight: 1}
tools:
  - {id: a, name: Tool A, ratings: {c1: 5, c2: 1, c3: 1}}
  - {id: b, name: Tool B, ratings: {c1: 1, c2: 5, c3: 5}}
`

func newTestRepo(t *testing.T) *spaces.SQLiteStore {
	t.Helper()
	repo, err := spaces.Open(filepath.Join(t.TempDir(), "spaces.db"))
	require.NoError(t, err)
	t.Cleanup(func() { repo.Close() })
	return repo
}

// seedSpace stores a space parsed from YAML and returns its ID.
func seedSpace(t *testing.T, repo spaces.Repository, doc string) string {
	t.Helper()
	sp, err := spaces.ParseFile([]byte(doc))
	require.NoError(t, err)
	require.NoError(t, repo.Create(context.Background(), sp))
	return sp.ID
}

func call(t *testing.T, h handler, args map[string]any) *mcp.CallToolResult {
	t.Helper()
	req := mcp.CallToolRequest{}
	req.Params.Name = h.Definition().Name
	req.Params.Arguments = args
	result, err := h.Handle(context.Background(), req)
	require.NoError(t, err)
	require.NotNil(t, result)
	return result
}

// isErrorResult checks if a CallToolResult is an error result.
func isErrorResult(result *mcp.CallToolResult) bool {
	return result != nil && result.IsError
}

// getResultText extracts the text content from a CallToolResult.
func getResultText(result *mcp.CallToolResult) string {
	if result == nil || len(result.Content) == 0 {
		return ""
	}
	for _, c := range result.Content {
		if tc, ok := c.(mcp.TextContent); ok {
			return tc.Text
		}
	}
	return ""
}

// --- Helper functions ---

func TestSlugify(t *testing.T) {
	tests := map[string]string{
		"Ease of Use":        "ease-of-use",
		"  Cost / TCO  ":     "cost-tco",
		"Resource mgmt (v2)": "resource-mgmt-v2",
		"!!!":                "",
	}
	for in, want := range tests {
		assert.Equal(t, want, slugify(in), "slugify(%q)", in)
	}
}

func TestIntMapArg(t *testing.T) {
	req := mcp.CallToolRequest{}
	req.Params.Arguments = map[string]any{
		"ok":    map[string]any{"cost": float64(4)},
		"frac":  map[string]any{"cost": 2.5},
		"wrong": "cost=4",
	}

	got, err := intMapArg(req, "ok")
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"cost": 4}, got)

	got, err = intMapArg(req, "missing")
	require.NoError(t, err)
	assert.Empty(t, got)

	_, err = intMapArg(req, "frac")
	assert.Error(t, err)
	_, err = intMapArg(req, "wrong")
	assert.Error(t, err)
}

func TestDefinitions_HaveUniqueNames(t *testing.T) {
	repo := newTestRepo(t)
	all := []handler{
		NewSpaceCreateTool(repo), NewSpaceListTool(repo), NewSpaceImportTool(repo),
		NewSpaceStatusTool(repo), NewSpaceDeleteTool(repo),
		NewCriterionAddTool(repo), NewCriterionSetWeightTool(repo),
		NewToolAddTool(repo), NewToolRemoveTool(repo), NewToolRateTool(repo),
		NewDecisionScoreTool(repo, nil), NewDecisionTradeoffsTool(repo, nil, 0),
		NewDecisionTransitionTool(repo, 0), NewDecisionAdvanceTool(repo, 0), NewDecisionBackTool(repo, 0),
	}

	seen := map[string]bool{}
	for _, h := range all {
		name := h.Definition().Name
		assert.False(t, seen[name], "duplicate tool %s", name)
		seen[name] = true
	}
	assert.Len(t, seen, 15)
}

func newRequest(args map[string]any) mcp.CallToolRequest {
	req := mcp.CallToolRequest{}
	req.Params.Arguments = args
	return req
}
