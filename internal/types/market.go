package types

// Trend describes the direction of a role's job market
type Trend string

// Market trend constants
const (
	TrendGrowing   Trend = "growing"
	TrendStable    Trend = "stable"
	TrendDeclining Trend = "declining"
	TrendUnknown   Trend = "unknown"
)

// SkillRequirement is a single skill required by a role, with market
// metadata attached.
type SkillRequirement struct {
	Name string `json:"name"`
	// Frequency is the fraction of postings that mention the skill (0-1).
	Frequency float64 `json:"frequency"`
	// AvgLearningWeeks is the typical time to learn the skill from scratch.
	AvgLearningWeeks int `json:"avg_learning_weeks"`
}

// SalaryBand is a salary range for one seniority level
type SalaryBand struct {
	Min      int    `json:"min"`
	Max      int    `json:"max"`
	Currency string `json:"currency"`
}

// RoleSalary holds salary bands by seniority
type RoleSalary struct {
	EntryLevel SalaryBand `json:"entry_level"`
	MidLevel   SalaryBand `json:"mid_level"`
}

// RoleRequirements describes how hard a role is to enter
type RoleRequirements struct {
	// EntryBarrier is a 0-1 measure of how hard the role is to enter
	// regardless of skills.
	EntryBarrier     float64 `json:"entry_barrier"`
	FreshersAccepted bool    `json:"freshers_accepted"`
	Experience       string  `json:"experience,omitempty"`
}

// RoleMarketData holds the raw demand numbers for a role
type RoleMarketData struct {
	TotalJobs     int     `json:"total_jobs"`
	Trend         Trend   `json:"trend"`
	GrowthRateYoY float64 `json:"growth_rate_yoy"`
	DataSource    string  `json:"data_source,omitempty"`
	LastUpdated   string  `json:"last_updated,omitempty"`
}

// RoleSkills lists the skills a role requires
type RoleSkills struct {
	MustHave   []SkillRequirement `json:"must_have"`
	NiceToHave []SkillRequirement `json:"nice_to_have,omitempty"`
}

// RoleMarketRecord is the static per-role record loaded from the
// market catalog. Never mutated after load.
type RoleMarketRecord struct {
	Market       RoleMarketData   `json:"market_data"`
	Salary       RoleSalary       `json:"salary"`
	Requirements RoleRequirements `json:"requirements"`
	Skills       RoleSkills       `json:"skills"`
}

// MustHaveNames returns the names of the record's must-have skills in
// declared order.
func (r *RoleMarketRecord) MustHaveNames() []string {
	names := make([]string, 0, len(r.Skills.MustHave))
	for _, s := range r.Skills.MustHave {
		names = append(names, s.Name)
	}
	return names
}

// RequiredSkills groups a role's skill names by requirement level
type RequiredSkills struct {
	MustHave   []string `json:"must_have"`
	NiceToHave []string `json:"nice_to_have,omitempty"`
}

// MarketAnalysis is the derived, per-(role, student) analysis produced
// by the market catalog. Ephemeral; recomputed on each assessment.
type MarketAnalysis struct {
	Role        string  `json:"role"`
	DemandScore int     `json:"demand_score"` // 0-100
	ActiveJobs  int     `json:"active_jobs"`
	Trend       Trend   `json:"trend"`
	GrowthRate  float64 `json:"growth_rate"`

	AvgSalaryRange string `json:"avg_salary_range"`
	EntrySalaryMin int    `json:"entry_salary_min"`
	EntrySalaryMax int    `json:"entry_salary_max"`

	EntryBarrier      float64 `json:"entry_barrier"`
	EntryBarrierLabel string  `json:"entry_barrier_label"`
	CompetitionLevel  string  `json:"competition_level"`
	FreshersAccepted  bool    `json:"freshers_accepted"`

	RequiredSkills RequiredSkills `json:"required_skills"`
	// SkillMatch is |matched ∩ must_have| / |must_have|, 0 when the
	// role has no must-have skills.
	SkillMatch         float64  `json:"skill_match"`
	MatchedSkills      []string `json:"matched_skills,omitempty"`
	MissingSkills      []string `json:"missing_skills"`
	MissingSkillsCount int      `json:"missing_skills_count"`

	EstimatedTimeToJob string `json:"estimated_time_to_job"`
}

// MarketSummary is a compact per-role market view used when ranking
// alternatives and building comparison tables.
type MarketSummary struct {
	TotalJobs        int     `json:"total_jobs"`
	Trend            Trend   `json:"trend"`
	GrowthRate       float64 `json:"growth_rate"`
	SalaryRange      string  `json:"salary_range"`
	EntryBarrier     float64 `json:"entry_barrier"`
	FreshersAccepted bool    `json:"freshers_accepted"`
}

// SkillMatchedRole is a role matched against a student's skills,
// returned by skills-to-roles discovery.
type SkillMatchedRole struct {
	Role               string   `json:"role"`
	SkillMatch         float64  `json:"skill_match"`
	MatchedSkills      []string `json:"matched_skills,omitempty"`
	MissingSkillsCount int      `json:"missing_skills_count"`
}

// TrendingRole is a catalog role scored by current demand
type TrendingRole struct {
	Role        string `json:"role"`
	DemandScore int    `json:"demand_score"`
	TotalJobs   int    `json:"total_jobs"`
	Trend       Trend  `json:"trend"`
}
