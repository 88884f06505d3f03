package types

// PrioritizedSkill is a missing skill ordered by learning priority
type PrioritizedSkill struct {
	Skill string `json:"skill"`
	// Demand is the skill's posting frequency (0-1).
	Demand float64 `json:"demand"`
	// Difficulty is the estimated learning difficulty (0-1).
	Difficulty    float64 `json:"difficulty"`
	LearningWeeks int     `json:"learning_weeks"`
	PriorityScore float64 `json:"priority_score"`
}

// Resource is a learning resource attached to a roadmap step
type Resource struct {
	Title string `json:"title"`
	URL   string `json:"url"`
	Type  string `json:"type,omitempty"`
}

// Step is one step of a learning roadmap
type Step struct {
	StepNumber    int        `json:"step_number"`
	Title         string     `json:"title"`
	Description   string     `json:"description"`
	DurationWeeks int        `json:"duration_weeks"`
	SuccessMetric string     `json:"success_metric,omitempty"`
	WhyImportant  string     `json:"why_important,omitempty"`
	SkillsCovered []string   `json:"skills_covered"`
	Resources     []Resource `json:"resources,omitempty"`
}

// Roadmap is a complete, market-aligned learning plan for one role
type Roadmap struct {
	TargetRole          string  `json:"target_role"`
	Steps               []Step  `json:"roadmap"`
	TotalDurationWeeks  int     `json:"total_duration_weeks"`
	TotalDurationMonths float64 `json:"total_duration_months"`
	// MarketAlignmentScore is the fraction of must-have skills the
	// roadmap covers (0.5 when the role lists none).
	MarketAlignmentScore float64 `json:"market_alignment_score"`
	SkillsCovered        int     `json:"skills_covered"`
}

// QuickWin is an easy, high-impact skill surfaced as an early step
type QuickWin struct {
	StepNumber    int    `json:"step_number"`
	Title         string `json:"title"`
	DurationWeeks int    `json:"duration_weeks"`
	Difficulty    string `json:"difficulty"`
	Impact        string `json:"impact"`
}
