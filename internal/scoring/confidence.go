package scoring

import "fmt"

// Confidence rubric. These are hand-tuned and kept as-is.
const (
	confidenceBase = 75

	clearLeadGap     = 15
	clearLeadBonus   = 20
	modestLeadGap    = 5
	modestLeadBonus  = 10
	closeRacePenalty = -10

	noWeaknessBonus       = 10
	manyWeaknessesCount   = 2
	manyWeaknessesPenalty = -15
)

// CalculateDecisionConfidence scores how settled the current ranking is.
//
// With fewer than two tools there is nothing to weigh and confidence is 100.
// Otherwise it starts at 75 and moves with the leader's margin and with how
// many criteria the leader loses by a major gap.
func CalculateDecisionConfidence(tools []Tool, criteria []Criterion) Confidence {
	if len(tools) < 2 {
		return singleOptionConfidence()
	}
	ranked := SortToolsByScore(tools, criteria)
	weaknesses := leaderWeaknesses(ranked, DetectTradeoffs(tools, criteria))
	return confidenceFrom(scoreGap(ranked), weaknesses)
}

func singleOptionConfidence() Confidence {
	return Confidence{
		Confidence: 100,
		Factors:    []ConfidenceFactor{{Description: "Only one option under consideration", Impact: 0}},
	}
}

func confidenceFrom(gap int, weaknesses []Tradeoff) Confidence {
	confidence := confidenceBase
	factors := make([]ConfidenceFactor, 0, 2)

	switch {
	case gap >= clearLeadGap:
		confidence += clearLeadBonus
		factors = append(factors, ConfidenceFactor{
			Description: fmt.Sprintf("Clear leader with a %d point lead", gap),
			Impact:      clearLeadBonus,
		})
	case gap >= modestLeadGap:
		confidence += modestLeadBonus
		factors = append(factors, ConfidenceFactor{
			Description: fmt.Sprintf("Moderate lead of %d points", gap),
			Impact:      modestLeadBonus,
		})
	default:
		confidence += closeRacePenalty
		factors = append(factors, ConfidenceFactor{
			Description: fmt.Sprintf("Close race, only %d points apart", gap),
			Impact:      closeRacePenalty,
		})
	}

	major := 0
	for _, w := range weaknesses {
		if w.Significance == SignificanceMajor {
			major++
		}
	}

	switch {
	case major == 0:
		confidence += noWeaknessBonus
		factors = append(factors, ConfidenceFactor{
			Description: "Leader has no major weaknesses",
			Impact:      noWeaknessBonus,
		})
	case major >= manyWeaknessesCount:
		confidence += manyWeaknessesPenalty
		factors = append(factors, ConfidenceFactor{
			Description: fmt.Sprintf("Leader has %d major weaknesses", major),
			Impact:      manyWeaknessesPenalty,
		})
	}

	return Confidence{Confidence: clamp(confidence, 0, 100), Factors: factors}
}
