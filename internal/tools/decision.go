package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/mark3labs/mcp-go/mcp"

	"github.com/HendryAvila/ppmfit/internal/scoring"
	"github.com/HendryAvila/ppmfit/internal/spaces"
)

const (
	formatMarkdown = "markdown"
	formatJSON     = "json"
)

// DecisionScoreTool handles the decision_score MCP tool.
type DecisionScoreTool struct {
	repo     spaces.Repository
	analyzer Analyzer
}

// NewDecisionScoreTool creates a DecisionScoreTool. A nil analyzer means
// PureAnalyzer.
func NewDecisionScoreTool(repo spaces.Repository, analyzer Analyzer) *DecisionScoreTool {
	if analyzer == nil {
		analyzer = PureAnalyzer
	}
	return &DecisionScoreTool{repo: repo, analyzer: analyzer}
}

// Definition returns the MCP tool definition for registration.
func (t *DecisionScoreTool) Definition() mcp.Tool {
	return mcp.NewTool("decision_score",
		mcp.WithDescription(
			"Rank the tools in a decision space by weighted match score (0-100) with a "+
				"per-criterion breakdown and the decision confidence.",
		),
		mcp.WithString("space_id", mcp.Required(), mcp.Description("ID of the decision space")),
		mcp.WithString("format",
			mcp.Description("Output format"),
			mcp.Enum(formatMarkdown, formatJSON),
			mcp.DefaultString(formatMarkdown),
		),
		withDetailLevel(),
	)
}

// Handle processes the decision_score tool call. detail_level only shapes
// markdown output: summary is the ranking, standard adds confidence and the
// leader's breakdown, full adds every breakdown and the confidence factors.
func (t *DecisionScoreTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sp, errRes, err := loadSpace(ctx, t.repo, req)
	if sp == nil {
		return errRes, err
	}

	a := t.analyzer.Analyze(sp.Tools, sp.Criteria, scoring.DefaultTopTradeoffs)

	switch req.GetString("format", formatMarkdown) {
	case formatJSON:
		return jsonResult(struct {
			Ranking    []scoring.RankedTool `json:"ranking"`
			ScoreGap   int                  `json:"score_gap"`
			Confidence scoring.Confidence   `json:"confidence"`
		}{a.Ranking, a.ScoreGap, a.Confidence})
	case formatMarkdown:
	default:
		return mcp.NewToolResultError("'format' must be markdown or json"), nil
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "# Ranking: %s\n\n", sp.Name)
	if len(a.Ranking) == 0 {
		sb.WriteString("No tools to score yet. Add candidates with `tool_add`.\n")
		return mcp.NewToolResultText(sb.String()), nil
	}
	sb.WriteString(scoring.RenderRanking(a.Ranking))

	detail := parseDetailLevel(req.GetString("detail_level", DetailStandard))
	if detail == DetailSummary {
		sb.WriteString(summaryFooter)
		return mcp.NewToolResultText(sb.String()), nil
	}

	fmt.Fprintf(&sb, "\n**Confidence:** %d/100\n", a.Confidence.Confidence)
	breakdowns := a.Ranking[:1]
	if detail == DetailFull {
		for _, f := range a.Confidence.Factors {
			fmt.Fprintf(&sb, "- %s (%+d)\n", f.Description, f.Impact)
		}
		breakdowns = a.Ranking
	}
	sb.WriteString("\n## Breakdown\n\n")
	for _, r := range breakdowns {
		sb.WriteString(scoring.RenderBreakdown(r))
		sb.WriteString("\n")
	}
	if detail == DetailFull {
		sb.WriteString(tokenFooter(sb.String()))
	}
	return mcp.NewToolResultText(sb.String()), nil
}

// DecisionTradeoffsTool handles the decision_tradeoffs MCP tool.
type DecisionTradeoffsTool struct {
	repo       spaces.Repository
	analyzer   Analyzer
	defaultTop int
}

// NewDecisionTradeoffsTool creates a DecisionTradeoffsTool. defaultTop is
// used when the caller does not pass 'top'.
func NewDecisionTradeoffsTool(repo spaces.Repository, analyzer Analyzer, defaultTop int) *DecisionTradeoffsTool {
	if analyzer == nil {
		analyzer = PureAnalyzer
	}
	if defaultTop <= 0 {
		defaultTop = scoring.DefaultTopTradeoffs
	}
	return &DecisionTradeoffsTool{repo: repo, analyzer: analyzer, defaultTop: defaultTop}
}

// Definition returns the MCP tool definition for registration.
func (t *DecisionTradeoffsTool) Definition() mcp.Tool {
	return mcp.NewTool("decision_tradeoffs",
		mcp.WithDescription(
			"Explain the decision: the most important tradeoffs, where the leader falls behind, "+
				"a head-to-head of the top two tools, and which criteria would flip the result. "+
				"Use this to discuss the choice with the user, not just report the score.",
		),
		mcp.WithString("space_id", mcp.Required(), mcp.Description("ID of the decision space")),
		mcp.WithNumber("top", mcp.Description("How many top tradeoffs to include"), mcp.Min(1)),
		mcp.WithString("format",
			mcp.Description("Output format"),
			mcp.Enum(formatMarkdown, formatJSON),
			mcp.DefaultString(formatMarkdown),
		),
	)
}

// Handle processes the decision_tradeoffs tool call.
func (t *DecisionTradeoffsTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sp, errRes, err := loadSpace(ctx, t.repo, req)
	if sp == nil {
		return errRes, err
	}
	top, ok, err := optionalInt(req, "top")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if !ok || top <= 0 {
		top = t.defaultTop
	}

	a := t.analyzer.Analyze(sp.Tools, sp.Criteria, top)

	switch req.GetString("format", formatMarkdown) {
	case formatJSON:
		return jsonResult(a)
	case formatMarkdown:
		return mcp.NewToolResultText(scoring.SummarizeTradeoffs(a)), nil
	default:
		return mcp.NewToolResultError("'format' must be markdown or json"), nil
	}
}

func jsonResult(v any) (*mcp.CallToolResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, errors.Wrap(err, "encoding result")
	}
	return mcp.NewToolResultText(string(data)), nil
}
