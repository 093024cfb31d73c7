package scoring

import (
	"cmp"
	"math"
	"slices"
)

// CalculateWeightedScore computes a tool's 0-100 match score.
//
// Each criterion contributes (raw/5) * (weight/sum of weights); the total is
// that sum scaled to 100 and rounded. With no criteria, or when every weight
// is zero, the neutral score of 50 is returned.
func CalculateWeightedScore(src RatingSource, criteria []Criterion) WeightedScore {
	if len(criteria) == 0 {
		return WeightedScore{Total: NeutralScore, Breakdown: []ScoreBreakdown{}}
	}

	totalWeight := 0
	for _, c := range criteria {
		totalWeight += weightOf(c)
	}

	breakdown := make([]ScoreBreakdown, 0, len(criteria))

	if totalWeight == 0 {
		for _, c := range criteria {
			breakdown = append(breakdown, ScoreBreakdown{
				CriterionID:   c.ID,
				CriterionName: c.Name,
				RawScore:      RatingOf(src, c.ID),
			})
		}
		return WeightedScore{Total: NeutralScore, Breakdown: breakdown}
	}

	sum := 0.0
	for _, c := range criteria {
		raw := RatingOf(src, c.ID)
		w := weightOf(c)
		normalizedWeight := float64(w) / float64(totalWeight)
		weighted := (float64(raw) / MaxRating) * normalizedWeight
		sum += weighted

		breakdown = append(breakdown, ScoreBreakdown{
			CriterionID:      c.ID,
			CriterionName:    c.Name,
			RawScore:         raw,
			Weight:           w,
			NormalizedWeight: normalizedWeight,
			WeightedScore:    weighted,
			Contribution:     normalizedWeight * 100,
		})
	}

	total := int(math.Round(sum * 100))
	return WeightedScore{Total: clamp(total, 0, 100), Breakdown: breakdown}
}

// SortToolsByScore ranks tools by weighted total, highest first.
// Equal totals are ordered by tool ID so the leader is deterministic.
func SortToolsByScore(tools []Tool, criteria []Criterion) []RankedTool {
	ranked := make([]RankedTool, 0, len(tools))
	for _, t := range tools {
		ranked = append(ranked, RankedTool{Tool: t, Score: CalculateWeightedScore(t, criteria)})
	}

	slices.SortStableFunc(ranked, func(a, b RankedTool) int {
		if c := cmp.Compare(b.Score.Total, a.Score.Total); c != 0 {
			return c
		}
		return cmp.Compare(a.Tool.ID, b.Tool.ID)
	})
	return ranked
}

// CalculateScoreGap returns how many points the leader is ahead of second
// place, or 0 with fewer than two tools.
func CalculateScoreGap(tools []Tool, criteria []Criterion) int {
	if len(tools) < 2 {
		return 0
	}
	return scoreGap(SortToolsByScore(tools, criteria))
}

func scoreGap(ranked []RankedTool) int {
	if len(ranked) < 2 {
		return 0
	}
	return ranked[0].Score.Total - ranked[1].Score.Total
}

// weightOf treats negative weights as zero.
func weightOf(c Criterion) int {
	if c.UserRating < 0 {
		return 0
	}
	return c.UserRating
}

func clamp(v, lo, hi int) int {
	return max(lo, min(v, hi))
}
