package tools

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDetailLevel(t *testing.T) {
	assert.Equal(t, DetailSummary, parseDetailLevel("summary"))
	assert.Equal(t, DetailFull, parseDetailLevel("full"))
	assert.Equal(t, DetailStandard, parseDetailLevel(""))
	assert.Equal(t, DetailStandard, parseDetailLevel("verbose"))
}

func TestEstimateTokens(t *testing.T) {
	assert.Zero(t, estimateTokens(""))
	assert.Equal(t, 1, estimateTokens("ab"))
	assert.Equal(t, 25, estimateTokens(string(make([]byte, 100))))
}

func TestDecisionScoreTool_Handle_DetailLevels(t *testing.T) {
	repo := newTestRepo(t)
	id := seedSpace(t, repo, twoToolSpace)
	tool := NewDecisionScoreTool(repo, nil)

	summary := getResultText(call(t, tool, map[string]any{"space_id": id, "detail_level": "summary"}))
	require.Contains(t, summary, "| 1 | Tool A | 77 |")
	assert.NotContains(t, summary, "**Confidence:**")
	assert.NotContains(t, summary, "## Breakdown")
	assert.Contains(t, summary, "Use detail_level")

	standard := getResultText(call(t, tool, map[string]any{"space_id": id}))
	assert.Contains(t, standard, "**Confidence:** 80/100")
	assert.Contains(t, standard, "### Tool A (77)")
	assert.NotContains(t, standard, "### Tool B")

	full := getResultText(call(t, tool, map[string]any{"space_id": id, "detail_level": "full"}))
	assert.Contains(t, full, "## Breakdown")
	assert.Contains(t, full, "### Tool B (43)")
	assert.Contains(t, full, "tokens")
}
