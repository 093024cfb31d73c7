package scoring

import (
	"fmt"
	"strings"
)

// RenderRanking renders the ranking as a markdown table.
func RenderRanking(ranked []RankedTool) string {
	var sb strings.Builder
	sb.WriteString("| # | Tool | Score |\n")
	sb.WriteString("|---|------|-------|\n")
	for i, r := range ranked {
		fmt.Fprintf(&sb, "| %d | %s | %d |\n", i+1, r.Tool.Name, r.Score.Total)
	}
	return sb.String()
}

// RenderBreakdown renders one tool's per-criterion breakdown.
func RenderBreakdown(r RankedTool) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "### %s (%d)\n\n", r.Tool.Name, r.Score.Total)
	if len(r.Score.Breakdown) == 0 {
		sb.WriteString("No criteria to score against yet.\n")
		return sb.String()
	}
	sb.WriteString("| Criterion | Rating | Weight | Share |\n")
	sb.WriteString("|-----------|--------|--------|-------|\n")
	for _, b := range r.Score.Breakdown {
		fmt.Fprintf(&sb, "| %s | %d/5 | %d | %.0f%% |\n",
			b.CriterionName, b.RawScore, b.Weight, b.Contribution)
	}
	return sb.String()
}

// SummarizeTradeoffs renders an analysis as a short markdown brief for the
// assistant to turn into conversation.
func SummarizeTradeoffs(a Analysis) string {
	var sb strings.Builder

	sb.WriteString("# Tradeoff Summary\n\n")

	if len(a.Ranking) == 0 {
		sb.WriteString("No tools to compare yet. Add at least two tools to see tradeoffs.\n")
		return sb.String()
	}

	leader := a.Ranking[0]
	fmt.Fprintf(&sb, "**Leader:** %s (%d)\n", leader.Tool.Name, leader.Score.Total)
	if len(a.Ranking) > 1 {
		fmt.Fprintf(&sb, "**Runner-up:** %s (%d), %d points behind\n",
			a.Ranking[1].Tool.Name, a.Ranking[1].Score.Total, a.ScoreGap)
	}
	fmt.Fprintf(&sb, "**Confidence:** %d/100\n\n", a.Confidence.Confidence)

	for _, f := range a.Confidence.Factors {
		fmt.Fprintf(&sb, "- %s (%+d)\n", f.Description, f.Impact)
	}
	sb.WriteString("\n")

	if len(a.TopTradeoffs) > 0 {
		sb.WriteString("## Key Tradeoffs\n\n")
		for _, t := range a.TopTradeoffs {
			fmt.Fprintf(&sb, "- **%s**: %s beats %s by %d (%s)\n",
				t.CriterionName, t.Winner.Name, t.Loser.Name, t.Gap, t.Significance)
		}
		sb.WriteString("\n")
	}

	if len(a.LeaderWeaknesses) > 0 {
		fmt.Fprintf(&sb, "## Where %s Falls Behind\n\n", leader.Tool.Name)
		for _, t := range a.LeaderWeaknesses {
			fmt.Fprintf(&sb, "- %s: %s scores %d vs %d\n",
				t.CriterionName, t.Winner.Name, t.WinnerScore, t.LoserScore)
		}
		sb.WriteString("\n")
	}

	if len(a.FlipCriteria) > 0 && a.HeadToHead.Tool2 != nil {
		fmt.Fprintf(&sb, "## What Would Flip It\n\n%s wins if the decision came down to: %s\n",
			a.HeadToHead.Tool2.Name, strings.Join(a.FlipCriteria, ", "))
	}

	return sb.String()
}
