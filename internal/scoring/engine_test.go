package scoring

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEngine_AnalyzeMatchesPureFunctions(t *testing.T) {
	tools, criteria := threeCriteriaSetup()
	e := NewEngine(8, time.Minute)

	assert.Equal(t, Analyze(tools, criteria, 3), e.Analyze(tools, criteria, 3))
	assert.Equal(t, SortToolsByScore(tools, criteria), e.Rank(tools, criteria))
}

func TestEngine_CachesBySnapshotContent(t *testing.T) {
	tools, criteria := threeCriteriaSetup()
	e := NewEngine(8, time.Minute)

	e.Analyze(tools, criteria, 0)
	e.Analyze(tools, criteria, DefaultTopTradeoffs)
	assert.Equal(t, 1, e.Len(), "topN 0 and the default share a key")

	changed := append([]Criterion(nil), criteria...)
	changed[0].SetWeight(2)
	got := e.Analyze(tools, changed, 0)
	assert.Equal(t, 2, e.Len())
	assert.Equal(t, Analyze(tools, changed, 0), got)
}

func TestEngine_Purge(t *testing.T) {
	tools, criteria := threeCriteriaSetup()
	e := NewEngine(0, 0)

	e.Analyze(tools, criteria, 0)
	require.Equal(t, 1, e.Len())

	e.Purge()
	assert.Zero(t, e.Len())
}

// --- Markdown ---

func TestSummarizeTradeoffs(t *testing.T) {
	tools, criteria := threeCriteriaSetup()

	got := SummarizeTradeoffs(Analyze(tools, criteria, 0))

	assert.Contains(t, got, "**Leader:** Tool a (77)")
	assert.Contains(t, got, "**Runner-up:** Tool b (43), 34 points behind")
	assert.Contains(t, got, "**Confidence:** 80/100")
	assert.Contains(t, got, "## Key Tradeoffs")
	assert.Contains(t, got, "## Where Tool a Falls Behind")
	assert.Contains(t, got, "Tool b wins if the decision came down to: Criterion c2, Criterion c3")
}

func TestSummarizeTradeoffs_NoTools(t *testing.T) {
	got := SummarizeTradeoffs(Analyze(nil, nil, 0))
	assert.True(t, strings.Contains(got, "No tools to compare yet"))
}

func TestRenderBreakdown(t *testing.T) {
	ranked := SortToolsByScore([]Tool{tool("a", map[string]int{"c1": 4})}, []Criterion{crit("c1", 2)})

	got := RenderBreakdown(ranked[0])

	assert.Contains(t, got, "### Tool a (80)")
	assert.Contains(t, got, "| Criterion c1 | 4/5 | 2 | 100% |")
}

func TestRenderRanking(t *testing.T) {
	tools, criteria := threeCriteriaSetup()

	got := RenderRanking(SortToolsByScore(tools, criteria))

	assert.Contains(t, got, "| 1 | Tool a | 77 |")
	assert.Contains(t, got, "| 2 | Tool b | 43 |")
}

// --- Validation ---

func TestValidateCriterion(t *testing.T) {
	assert.NoError(t, ValidateCriterion(crit("c1", 3)))
	assert.Error(t, ValidateCriterion(crit("c1", 0)))
	assert.Error(t, ValidateCriterion(crit("c1", 6)))
	assert.Error(t, ValidateCriterion(Criterion{Name: "no id", UserRating: 3}))
}

func TestValidateTool(t *testing.T) {
	assert.NoError(t, ValidateTool(tool("a", map[string]int{"c1": 1, "c2": 5})))
	assert.NoError(t, ValidateTool(tool("a", nil)))
	assert.Error(t, ValidateTool(tool("a", map[string]int{"c1": 7})))
	assert.Error(t, ValidateTool(Tool{ID: "a"}))
}

func TestValidateRating(t *testing.T) {
	for v := MinRating; v <= MaxRating; v++ {
		assert.NoError(t, ValidateRating(v))
	}
	assert.Error(t, ValidateRating(0))
	assert.Error(t, ValidateRating(6))
}
