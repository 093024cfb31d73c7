// Package scoring implements the weighted match score and the tradeoff
// analysis that sit on top of it.
//
// Everything here is a pure computation over the criteria and tools the
// caller supplies. Nothing is stored and nothing fails: degenerate input
// (no criteria, zero weights, a single tool) has a defined neutral result.
//
// This package follows the same split as the rest of the codebase:
// - types.go: data model and rating lookup
// - score.go: weighted scores and ranking
// - tradeoff.go: per-criterion pairwise comparison
// - confidence.go: the decision confidence rubric
// - engine.go: memoized front for callers that recompute on every change
package scoring

const (
	// MinRating and MaxRating bound both criterion weights and tool ratings.
	MinRating = 1
	MaxRating = 5

	// DefaultWeight is the importance every new criterion starts with.
	DefaultWeight = 3

	// DefaultRating is used when a tool has no usable rating for a criterion.
	DefaultRating = 3

	// NeutralScore is returned when there is nothing to score against.
	NeutralScore = 50
)

// Criterion is a named evaluation axis with a user-assigned importance.
type Criterion struct {
	ID          string `json:"id" yaml:"id" validate:"required"`
	Name        string `json:"name" yaml:"name" validate:"required"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
	// UserRating is the importance weight, 1-5.
	UserRating int `json:"user_rating" yaml:"weight" validate:"min=1,max=5"`
	// Touched is set whenever a weight is explicitly assigned, including
	// assigning the default value again.
	Touched bool `json:"touched" yaml:"touched,omitempty"`
}

// NewCriterion returns an untouched criterion at the default weight.
func NewCriterion(id, name string) Criterion {
	return Criterion{ID: id, Name: name, UserRating: DefaultWeight}
}

// SetWeight assigns an importance weight and marks the criterion as touched.
func (c *Criterion) SetWeight(w int) {
	c.UserRating = w
	c.Touched = true
}

// CountTouched returns how many criteria carry an explicit weight.
func CountTouched(criteria []Criterion) int {
	n := 0
	for _, c := range criteria {
		if c.Touched {
			n++
		}
	}
	return n
}

// RatingSource looks up a raw 1-5 rating for a criterion. The second
// return value is false when no rating is recorded.
type RatingSource interface {
	Rating(criterionID string) (int, bool)
}

// Tool is a candidate being scored against the criteria.
type Tool struct {
	ID          string         `json:"id" yaml:"id" validate:"required"`
	Name        string         `json:"name" yaml:"name" validate:"required"`
	Description string         `json:"description,omitempty" yaml:"description,omitempty"`
	Ratings     map[string]int `json:"ratings" yaml:"ratings" validate:"dive,min=1,max=5"`
}

// Rating implements RatingSource.
func (t Tool) Rating(criterionID string) (int, bool) {
	r, ok := t.Ratings[criterionID]
	return r, ok
}

// Ref returns the identity part of the tool.
func (t Tool) Ref() ToolRef {
	return ToolRef{ID: t.ID, Name: t.Name}
}

// ToolRef identifies a tool inside derived results.
type ToolRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// RatingOf returns the raw rating for a criterion, falling back to
// DefaultRating when the rating is missing or outside 1-5.
func RatingOf(src RatingSource, criterionID string) int {
	if src == nil {
		return DefaultRating
	}
	r, ok := src.Rating(criterionID)
	if !ok || r < MinRating || r > MaxRating {
		return DefaultRating
	}
	return r
}

// ScoreBreakdown explains one criterion's part in a tool's total.
type ScoreBreakdown struct {
	CriterionID      string  `json:"criterion_id"`
	CriterionName    string  `json:"criterion_name"`
	RawScore         int     `json:"raw_score"`
	Weight           int     `json:"weight"`
	NormalizedWeight float64 `json:"normalized_weight"`
	WeightedScore    float64 `json:"weighted_score"`
	// Contribution is the share (0-100) of the total this criterion can
	// influence. It depends on weights only, not on the raw score.
	Contribution float64 `json:"contribution"`
}

// WeightedScore is a tool's 0-100 match score with its breakdown.
type WeightedScore struct {
	Total     int              `json:"total"`
	Breakdown []ScoreBreakdown `json:"breakdown"`
}

// RankedTool pairs a tool with its weighted score.
type RankedTool struct {
	Tool  Tool          `json:"tool"`
	Score WeightedScore `json:"score"`
}

// Significance tiers a tradeoff gap on the raw 1-5 scale.
type Significance string

const (
	SignificanceMajor   Significance = "major"
	SignificanceNotable Significance = "notable"
	SignificanceMinor   Significance = "minor"
)

// Tradeoff records that, on one criterion, Winner beats Loser by Gap.
type Tradeoff struct {
	CriterionID   string       `json:"criterion_id"`
	CriterionName string       `json:"criterion_name"`
	Winner        ToolRef      `json:"winner"`
	Loser         ToolRef      `json:"loser"`
	WinnerScore   int          `json:"winner_score"`
	LoserScore    int          `json:"loser_score"`
	Gap           int          `json:"gap"`
	Significance  Significance `json:"significance"`
}

// HeadToHead compares the two best-ranked tools criterion by criterion.
type HeadToHead struct {
	Tool1     *ToolRef   `json:"tool1,omitempty"`
	Tool2     *ToolRef   `json:"tool2,omitempty"`
	Tool1Wins []Tradeoff `json:"tool1_wins"`
	Tool2Wins []Tradeoff `json:"tool2_wins"`
	Ties      []string   `json:"ties"`
}

// ConfidenceFactor is one line of the confidence rubric.
type ConfidenceFactor struct {
	Description string `json:"description"`
	Impact      int    `json:"impact"`
}

// Confidence is the heuristic decision confidence (0-100) and the factors
// that produced it.
type Confidence struct {
	Confidence int                `json:"confidence"`
	Factors    []ConfidenceFactor `json:"factors"`
}
