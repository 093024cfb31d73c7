package scoring

import (
	"cmp"
	"slices"
)

// DefaultTopTradeoffs is how many tradeoffs GetTopTradeoffs returns when
// the caller does not ask for a specific number.
const DefaultTopTradeoffs = 5

// ClassifySignificance maps a raw-scale gap to its tier.
func ClassifySignificance(gap int) Significance {
	switch {
	case gap >= 2:
		return SignificanceMajor
	case gap == 1:
		return SignificanceNotable
	default:
		return SignificanceMinor
	}
}

type toolRating struct {
	tool   Tool
	rating int
}

// DetectTradeoffs compares tools criterion by criterion. For each criterion
// the highest-rated tool is the local winner, and every other tool trailing
// it by at least one point yields a Tradeoff. Tools tied with the winner
// yield nothing.
//
// The local winner need not be the overall leader.
func DetectTradeoffs(tools []Tool, criteria []Criterion) []Tradeoff {
	tradeoffs := []Tradeoff{}
	if len(tools) < 2 || len(criteria) == 0 {
		return tradeoffs
	}

	for _, c := range criteria {
		rated := make([]toolRating, 0, len(tools))
		for _, t := range tools {
			rated = append(rated, toolRating{tool: t, rating: RatingOf(t, c.ID)})
		}
		slices.SortStableFunc(rated, func(a, b toolRating) int {
			if d := cmp.Compare(b.rating, a.rating); d != 0 {
				return d
			}
			return cmp.Compare(a.tool.ID, b.tool.ID)
		})

		winner := rated[0]
		for _, other := range rated[1:] {
			gap := winner.rating - other.rating
			if gap < 1 {
				continue
			}
			tradeoffs = append(tradeoffs, newTradeoff(c, winner, other))
		}
	}

	return tradeoffs
}

func newTradeoff(c Criterion, winner, loser toolRating) Tradeoff {
	gap := winner.rating - loser.rating
	return Tradeoff{
		CriterionID:   c.ID,
		CriterionName: c.Name,
		Winner:        winner.tool.Ref(),
		Loser:         loser.tool.Ref(),
		WinnerScore:   winner.rating,
		LoserScore:    loser.rating,
		Gap:           gap,
		Significance:  ClassifySignificance(gap),
	}
}

// GetTopTradeoffs returns the topN tradeoffs ordered by gap multiplied by
// the criterion's importance weight. A non-positive topN means
// DefaultTopTradeoffs.
func GetTopTradeoffs(tools []Tool, criteria []Criterion, topN int) []Tradeoff {
	return topTradeoffs(DetectTradeoffs(tools, criteria), criteria, topN)
}

func topTradeoffs(tradeoffs []Tradeoff, criteria []Criterion, topN int) []Tradeoff {
	if topN <= 0 {
		topN = DefaultTopTradeoffs
	}

	weights := make(map[string]int, len(criteria))
	for _, c := range criteria {
		weights[c.ID] = weightOf(c)
	}
	impact := func(t Tradeoff) int { return t.Gap * weights[t.CriterionID] }

	sorted := slices.Clone(tradeoffs)
	slices.SortStableFunc(sorted, func(a, b Tradeoff) int {
		return cmp.Compare(impact(b), impact(a))
	})

	if len(sorted) > topN {
		sorted = sorted[:topN]
	}
	return sorted
}

// GetLeaderWeaknesses returns the tradeoffs in which the overall leader, by
// weighted score, is the loser.
func GetLeaderWeaknesses(tools []Tool, criteria []Criterion) []Tradeoff {
	if len(tools) < 2 {
		return []Tradeoff{}
	}
	ranked := SortToolsByScore(tools, criteria)
	return leaderWeaknesses(ranked, DetectTradeoffs(tools, criteria))
}

func leaderWeaknesses(ranked []RankedTool, tradeoffs []Tradeoff) []Tradeoff {
	weaknesses := []Tradeoff{}
	if len(ranked) == 0 {
		return weaknesses
	}
	leaderID := ranked[0].Tool.ID
	for _, t := range tradeoffs {
		if t.Loser.ID == leaderID {
			weaknesses = append(weaknesses, t)
		}
	}
	return weaknesses
}

// GetHeadToHeadTradeoffs compares the two best-ranked tools on every
// criterion.
func GetHeadToHeadTradeoffs(tools []Tool, criteria []Criterion) HeadToHead {
	return headToHead(SortToolsByScore(tools, criteria), criteria)
}

func headToHead(ranked []RankedTool, criteria []Criterion) HeadToHead {
	h := HeadToHead{Tool1Wins: []Tradeoff{}, Tool2Wins: []Tradeoff{}, Ties: []string{}}
	if len(ranked) < 2 {
		return h
	}

	first, second := ranked[0].Tool, ranked[1].Tool
	ref1, ref2 := first.Ref(), second.Ref()
	h.Tool1, h.Tool2 = &ref1, &ref2

	for _, c := range criteria {
		r1 := toolRating{tool: first, rating: RatingOf(first, c.ID)}
		r2 := toolRating{tool: second, rating: RatingOf(second, c.ID)}
		switch {
		case r1.rating > r2.rating:
			h.Tool1Wins = append(h.Tool1Wins, newTradeoff(c, r1, r2))
		case r2.rating > r1.rating:
			h.Tool2Wins = append(h.Tool2Wins, newTradeoff(c, r2, r1))
		default:
			h.Ties = append(h.Ties, c.Name)
		}
	}
	return h
}

// FindFlipCriteria lists the criteria on which the runner-up beats the
// leader, i.e. the criteria that would flip the decision if they were the
// only one that mattered.
func FindFlipCriteria(tools []Tool, criteria []Criterion) []string {
	return flipCriteria(SortToolsByScore(tools, criteria), criteria)
}

func flipCriteria(ranked []RankedTool, criteria []Criterion) []string {
	flips := []string{}
	if len(ranked) < 2 {
		return flips
	}
	first, second := ranked[0].Tool, ranked[1].Tool
	for _, c := range criteria {
		if RatingOf(second, c.ID) > RatingOf(first, c.ID) {
			flips = append(flips, c.Name)
		}
	}
	return flips
}
