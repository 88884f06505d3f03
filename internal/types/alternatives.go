package types

// ScoreBreakdown holds the per-criterion scores behind an alternative
// role's total score. All values are in [0,1].
type ScoreBreakdown struct {
	TotalScore           float64 `json:"total_score"`
	SkillOverlap         float64 `json:"skill_overlap"`
	MarketDemand         float64 `json:"market_demand"`
	ProgressionPotential float64 `json:"progression_potential"`
	EaseOfEntry          float64 `json:"ease_of_entry"`
}

// Alternative is one scored reroute candidate
type Alternative struct {
	Role          string         `json:"role"`
	TotalScore    float64        `json:"total_score"`
	Breakdown     ScoreBreakdown `json:"breakdown"`
	Market        MarketSummary  `json:"market_analysis"`
	Justification string         `json:"justification,omitempty"`
}

// RerouteRecommendations is the output of an alternative search
type RerouteRecommendations struct {
	OriginalRole   string        `json:"original_role"`
	Alternatives   []Alternative `json:"alternatives"`
	TotalEvaluated int           `json:"total_alternatives_evaluated"`
}

// RoleComparison is a side-by-side view of the original goal against
// the recommended alternatives.
type RoleComparison struct {
	Original     ComparisonEntry   `json:"original"`
	Alternatives []ComparisonEntry `json:"alternatives"`
}

// ComparisonEntry is one row of a role comparison table
type ComparisonEntry struct {
	Role       string  `json:"role"`
	TotalScore float64 `json:"total_score,omitempty"`
	MarketSummary
}
