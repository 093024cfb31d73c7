package spaces

import (
	"fmt"
	"sort"
	"strings"

	"github.com/HendryAvila/ppmfit/internal/lifecycle"
)

// recentHistory is how many transitions RenderStatus shows.
const recentHistory = 5

// RenderStatus renders a space as a markdown status report: where the
// decision stands, what has been rated, and what is needed to move on.
func RenderStatus(sp *Space) string {
	var sb strings.Builder
	m := sp.Machine()
	def := m.Definition()
	p := sp.Progress()

	fmt.Fprintf(&sb, "# %s\n\n", sp.Name)
	if sp.Description != "" {
		fmt.Fprintf(&sb, "%s\n\n", sp.Description)
	}
	fmt.Fprintf(&sb, "**ID:** `%s`\n", sp.ID)
	fmt.Fprintf(&sb, "**State:** %s (%s)\n", def.Label, sp.State)
	fmt.Fprintf(&sb, "**Criteria rated:** %d/%d\n", p.CriteriaRated, len(sp.Criteria))
	fmt.Fprintf(&sb, "**Tools:** %d\n\n", p.Candidates)

	// Pipeline
	sb.WriteString("## Lifecycle\n\n")
	current := lifecycle.Index(sp.State)
	for i, s := range lifecycle.Order {
		marker := "⬜"
		switch {
		case i < current:
			marker = "✅"
		case i == current:
			marker = "🔄"
		}
		fmt.Fprintf(&sb, "%s %s\n", marker, lifecycle.States[s].Label)
	}
	sb.WriteString("\n")

	sb.WriteString("## Criteria\n\n")
	if len(sp.Criteria) == 0 {
		sb.WriteString("No criteria yet.\n\n")
	} else {
		sb.WriteString("| Criterion | Weight | Rated |\n")
		sb.WriteString("|-----------|--------|-------|\n")
		for _, c := range sp.Criteria {
			rated := "no"
			if c.Touched {
				rated = "yes"
			}
			fmt.Fprintf(&sb, "| %s (`%s`) | %d | %s |\n", c.Name, c.ID, c.UserRating, rated)
		}
		sb.WriteString("\n")
	}

	sb.WriteString("## Tools\n\n")
	if len(sp.Tools) == 0 {
		sb.WriteString("No tools yet.\n\n")
	} else {
		for _, t := range sp.Tools {
			fmt.Fprintf(&sb, "- **%s** (`%s`): %s\n", t.Name, t.ID, formatRatings(t.Ratings))
		}
		sb.WriteString("\n")
	}

	sb.WriteString("## Next Step\n\n")
	idx := lifecycle.Index(sp.State)
	if idx < len(lifecycle.Order)-1 {
		next := lifecycle.Order[idx+1]
		if res := m.CanTransitionTo(next); res.Success {
			fmt.Fprintf(&sb, "Ready to move to **%s**.\n", lifecycle.States[next].Label)
		} else {
			fmt.Fprintf(&sb, "%s\n", res.Error)
		}
	} else {
		sb.WriteString("Decision made. Go back to evaluating to revisit it.\n")
	}

	if len(sp.History) > 0 {
		sb.WriteString("\n## Recent Transitions\n\n")
		start := max(0, len(sp.History)-recentHistory)
		for _, t := range sp.History[start:] {
			fmt.Fprintf(&sb, "- %s: %s → %s (%s)\n", t.Timestamp, t.From, t.To, t.Trigger)
		}
	}

	return sb.String()
}

func formatRatings(ratings map[string]int) string {
	if len(ratings) == 0 {
		return "not rated"
	}
	ids := make([]string, 0, len(ratings))
	for id := range ratings {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = fmt.Sprintf("%s=%d", id, ratings[id])
	}
	return strings.Join(parts, ", ")
}
