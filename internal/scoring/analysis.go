package scoring

// Analysis bundles every signal derived from one (tools, criteria) snapshot.
type Analysis struct {
	Ranking          []RankedTool `json:"ranking"`
	ScoreGap         int          `json:"score_gap"`
	Tradeoffs        []Tradeoff   `json:"tradeoffs"`
	TopTradeoffs     []Tradeoff   `json:"top_tradeoffs"`
	LeaderWeaknesses []Tradeoff   `json:"leader_weaknesses"`
	HeadToHead       HeadToHead   `json:"head_to_head"`
	FlipCriteria     []string     `json:"flip_criteria"`
	Confidence       Confidence   `json:"confidence"`
}

// Analyze ranks the tools once and derives the tradeoff signals from that
// ranking. The results are the same as calling each operation separately.
func Analyze(tools []Tool, criteria []Criterion, topN int) Analysis {
	ranked := SortToolsByScore(tools, criteria)
	tradeoffs := DetectTradeoffs(tools, criteria)
	weaknesses := leaderWeaknesses(ranked, tradeoffs)
	if len(tools) < 2 {
		weaknesses = []Tradeoff{}
	}

	confidence := singleOptionConfidence()
	if len(tools) >= 2 {
		confidence = confidenceFrom(scoreGap(ranked), weaknesses)
	}

	return Analysis{
		Ranking:          ranked,
		ScoreGap:         scoreGap(ranked),
		Tradeoffs:        tradeoffs,
		TopTradeoffs:     topTradeoffs(tradeoffs, criteria, topN),
		LeaderWeaknesses: weaknesses,
		HeadToHead:       headToHead(ranked, criteria),
		FlipCriteria:     flipCriteria(ranked, criteria),
		Confidence:       confidence,
	}
}
