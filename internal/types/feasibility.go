package types

// Verdict classifies the feasibility of a career goal
type Verdict string

// Verdict constants
const (
	VerdictFeasible    Verdict = "FEASIBLE"
	VerdictChallenging Verdict = "CHALLENGING"
	VerdictNotFeasible Verdict = "NOT_FEASIBLE"
)

// Action constants describe what the advisor does next for each verdict
const (
	ActionGenerateDirectRoadmap = "generate_direct_roadmap"
	ActionOfferChoice           = "offer_choice"
	ActionSuggestReroute        = "suggest_reroute"
)

// Severity levels for structured reasons and re-evaluation triggers
const (
	SeverityCritical = "critical"
	SeverityHigh     = "high"
	SeverityMedium   = "medium"
	SeverityLow      = "low"
)

// Reason kinds emitted by the feasibility scorer
const (
	ReasonSkillGap         = "skill_gap"
	ReasonLowMarketDemand  = "low_market_demand"
	ReasonHighEntryBarrier = "high_entry_barrier"
	ReasonLongLearningPath = "long_learning_path"
)

// FactorScores holds the four factor scores behind a feasibility
// verdict, each in [0,1].
type FactorScores struct {
	SkillMatch       float64 `json:"skill_match"`
	MarketDemand     float64 `json:"market_demand"`
	EntryBarrier     float64 `json:"entry_barrier"`
	TimeToCompetency float64 `json:"time_to_competency"`
}

// Reason is a structured explanation for a factor scoring poorly
type Reason struct {
	Type          string   `json:"type"`
	Severity      string   `json:"severity"`
	Title         string   `json:"title"`
	Explanation   string   `json:"explanation"`
	Impact        string   `json:"impact"`
	MissingSkills []string `json:"missing_skills,omitempty"`
}

// FeasibilityResult is the full output of a feasibility evaluation.
// It is a pure function of (profile, market analysis) except for the
// Explanation prose, which may come from the text generator.
type FeasibilityResult struct {
	Verdict          Verdict      `json:"verdict"`
	Confidence       string       `json:"confidence"`
	Action           string       `json:"action"`
	FeasibilityScore float64      `json:"feasibility_score"`
	FactorScores     FactorScores `json:"factor_scores"`
	Reasons          []Reason     `json:"reasons"`
	Explanation      string       `json:"explanation"`
	Recommendation   string       `json:"recommendation,omitempty"`
}
