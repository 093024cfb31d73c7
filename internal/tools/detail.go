package tools

import (
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
)

// Detail levels for read-heavy tools. They trade completeness for
// context cost:
//   - summary: ranking only
//   - standard: ranking, confidence and the leader's breakdown
//   - full: every breakdown, the confidence factors and a token estimate
const (
	DetailSummary  = "summary"
	DetailStandard = "standard"
	DetailFull     = "full"
)

// summaryFooter is appended to summary-mode responses so the assistant
// knows more detail is available.
const summaryFooter = "\n---\n💡 Use detail_level: standard or full for more detail."

// parseDetailLevel normalizes a detail_level string, defaulting to
// standard for empty or unrecognized values.
func parseDetailLevel(s string) string {
	switch s {
	case DetailSummary, DetailFull:
		return s
	default:
		return DetailStandard
	}
}

func withDetailLevel() mcp.ToolOption {
	return mcp.WithString("detail_level",
		mcp.Description("How much to include: summary, standard (default) or full"),
		mcp.Enum(DetailSummary, DetailStandard, DetailFull),
		mcp.DefaultString(DetailStandard),
	)
}

// estimateTokens approximates the token count of a response with the
// chars/4 heuristic. Non-empty text is at least 1 token.
func estimateTokens(text string) int {
	n := len(text)
	if n == 0 {
		return 0
	}
	return max(1, n/4)
}

// tokenFooter reports the estimated size of a response.
func tokenFooter(text string) string {
	return fmt.Sprintf("\n📏 ~%d tokens", estimateTokens(text))
}
