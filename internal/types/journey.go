package types

import "time"

// Blocker records a step a student is stuck on
type Blocker struct {
	Step          int       `json:"step"`
	Reason        string    `json:"reason"`
	Attempts      int       `json:"attempts"`
	FirstReported time.Time `json:"first_reported"`
	LastReported  time.Time `json:"last_reported"`
}

// JourneyState is the mutable per-session state of a learning journey.
// The progress engine owns its mutation; persistence is the caller's
// concern via the session store.
type JourneyState struct {
	SessionID  string `json:"session_id"`
	TargetRole string `json:"target_role"`
	Roadmap    []Step `json:"roadmap"`
	TotalSteps int    `json:"total_steps"`
	// CurrentStep is the next step to work on (1-based).
	CurrentStep    int             `json:"current_step"`
	CompletedSteps []int           `json:"completed_steps"`
	BlockedSteps   []Blocker       `json:"blocked_steps"`
	TimeSpent      map[int]float64 `json:"time_spent"` // step -> hours
	// MotivationLevel is derived from the blocker count; stays in [0.1, 1.0].
	MotivationLevel float64 `json:"motivation_level"`
	// LastCheckpoint is the completion count at which the periodic
	// re-evaluation checkpoint last fired, so a checkpoint never
	// fires twice for the same count.
	LastCheckpoint int `json:"last_checkpoint"`
	RerouteCount   int `json:"reroute_count"`

	StartDate    time.Time `json:"start_date"`
	LastActivity time.Time `json:"last_activity"`

	// MarketSnapshot is the market analysis captured at journey start,
	// used to detect market shifts.
	MarketSnapshot MarketAnalysis `json:"market_snapshot"`
	Profile        StudentProfile `json:"student_profile"`
}

// IsCompleted reports whether a step number has been recorded as done
func (j *JourneyState) IsCompleted(step int) bool {
	for _, s := range j.CompletedSteps {
		if s == step {
			return true
		}
	}
	return false
}

// ProgressPercent returns completion as a percentage of total steps
func (j *JourneyState) ProgressPercent() float64 {
	if j.TotalSteps == 0 {
		return 0
	}
	return float64(len(j.CompletedSteps)) / float64(j.TotalSteps) * 100
}

// Trigger types emitted by the re-evaluation engine
const (
	TriggerPerformance      = "performance"
	TriggerMarketDecline    = "market_decline"
	TriggerNewOpportunities = "new_opportunities"
	TriggerSlowProgress     = "slow_progress"
)

// Re-evaluation actions
const (
	ReevalActionContinue = "continue"
	ReevalActionReroute  = "suggest_reroute"
)

// Trigger is one condition that fired during a re-evaluation check
type Trigger struct {
	Type     string `json:"type"`
	Severity string `json:"severity"`
	Reason   string `json:"reason"`
}

// MarketShift compares the journey's market snapshot against current data
type MarketShift struct {
	DemandChangePct     float64 `json:"demand_change_pct"`
	OriginalJobs        int     `json:"original_jobs"`
	CurrentJobs         int     `json:"current_jobs"`
	OriginalDemandScore int     `json:"original_demand_score"`
	CurrentDemandScore  int     `json:"current_demand_score"`
	TrendChange         int     `json:"trend_change"`
}

// ReevaluationResult is the outcome of a re-evaluation check
type ReevaluationResult struct {
	Action         string         `json:"action"`
	Triggers       []Trigger      `json:"triggers,omitempty"`
	MarketShift    *MarketShift   `json:"market_shift,omitempty"`
	CurrentMarket  MarketAnalysis `json:"current_market_analysis"`
	Alternatives   []Alternative  `json:"alternatives,omitempty"`
	Recommendation string         `json:"recommendation,omitempty"`
	ProgressPct    float64        `json:"progress,omitempty"`
}

// CompletionResult reports the effect of recording a step completion
type CompletionResult struct {
	Status             string              `json:"status"`
	StepNumber         int                 `json:"step_number"`
	ProgressPercentage float64             `json:"progress_percentage"`
	CompletedSteps     int                 `json:"completed_steps"`
	RemainingSteps     int                 `json:"remaining_steps"`
	ShouldReevaluate   bool                `json:"should_reevaluate"`
	Reevaluation       *ReevaluationResult `json:"reevaluation,omitempty"`
}

// BlockerResult reports the effect of recording a blocker
type BlockerResult struct {
	Status           string              `json:"status"`
	StepNumber       int                 `json:"step_number"`
	TotalBlockers    int                 `json:"total_blockers"`
	Attempts         int                 `json:"attempts"`
	MotivationLevel  float64             `json:"motivation_level"`
	ShouldReevaluate bool                `json:"should_reevaluate"`
	Reevaluation     *ReevaluationResult `json:"reevaluation,omitempty"`
	Recommendation   string              `json:"recommendation,omitempty"`
}

// ProgressSummary is a comprehensive view of a journey's progress
type ProgressSummary struct {
	SessionID  string `json:"session_id"`
	TargetRole string `json:"target_role"`

	CompletedSteps     int     `json:"completed_steps"`
	TotalSteps         int     `json:"total_steps"`
	ProgressPercentage float64 `json:"progress_percentage"`
	RemainingSteps     int     `json:"remaining_steps"`

	TotalHoursSpent      float64 `json:"total_hours_spent"`
	ExpectedHours        float64 `json:"expected_hours"`
	EfficiencyPercentage float64 `json:"efficiency_percentage"`

	BlockerCount    int       `json:"blocker_count"`
	Blockers        []Blocker `json:"blockers,omitempty"`
	MotivationLevel float64   `json:"motivation_level"`
	RerouteCount    int       `json:"reroute_count"`

	StartDate    time.Time `json:"start_date"`
	LastActivity time.Time `json:"last_activity"`
}
