package progress

import (
	"context"
	"fmt"
	"math"

	"github.com/jonathan/career-advisor/internal/types"
)

// Re-evaluation trigger thresholds.
const (
	// minBlockersForReeval forces a re-check once this many distinct
	// steps are blocked.
	minBlockersForReeval = 2
	// maxAttemptsPerBlocker forces a re-check when one step has been
	// retried this often.
	maxAttemptsPerBlocker = 3
	// checkpointInterval re-checks after every N completed steps.
	checkpointInterval = 3
	// overrunFactor flags journeys whose recorded hours exceed the
	// expected effort by this multiple.
	overrunFactor = 1.5
	// lowMotivation is the level below which progress counts as slow.
	lowMotivation = 0.5
	// newOpportunityMinSkills is how many learned skills it takes
	// before newly accessible roles are searched for.
	newOpportunityMinSkills = 3
	// accessibleRoleMinMatch is the skill match a role needs to count
	// as newly accessible.
	accessibleRoleMinMatch = 0.5
)

// shouldReevaluate checks the trigger conditions against the journey
// state. The periodic checkpoint fires once per completion count; the
// state's LastCheckpoint is advanced when it does.
func (e *Engine) shouldReevaluate(state *types.JourneyState) bool {
	if len(state.BlockedSteps) >= minBlockersForReeval {
		return true
	}
	for _, blocker := range state.BlockedSteps {
		if blocker.Attempts >= maxAttemptsPerBlocker {
			return true
		}
	}

	completed := len(state.CompletedSteps)
	if completed > 0 && completed%checkpointInterval == 0 && completed != state.LastCheckpoint {
		state.LastCheckpoint = completed
		return true
	}

	if completed > 0 {
		expected := expectedHours(state)
		if expected > 0 && totalTimeSpent(state) > expected*overrunFactor {
			return true
		}
	}

	return state.MotivationLevel < lowMotivation
}

// reevaluate runs the full path re-check against current market data.
// It mutates the state: learned skills are folded into the stored
// profile and the reroute counter advances. The caller persists it.
func (e *Engine) reevaluate(ctx context.Context, state *types.JourneyState) (*types.ReevaluationResult, error) {
	learned := skillsLearned(state)
	state.Profile.AddLearnedSkills(learned)
	currentSkills := state.Profile.AllSkills()

	analysis, err := e.catalog.Analyze(state.TargetRole, currentSkills)
	if err != nil {
		// The target role may have left the catalog since the journey
		// started. Re-evaluation still runs on an empty market view.
		analysis = &types.MarketAnalysis{Role: state.TargetRole}
	}

	shift := marketShift(&state.MarketSnapshot, analysis)

	var triggers []types.Trigger

	if blocked := len(state.BlockedSteps); blocked >= minBlockersForReeval {
		triggers = append(triggers, types.Trigger{
			Type:     types.TriggerPerformance,
			Severity: "high",
			Reason:   fmt.Sprintf("Blocked on %d steps", blocked),
		})
	}

	if shift.DemandChangePct < -20 {
		triggers = append(triggers, types.Trigger{
			Type:     types.TriggerMarketDecline,
			Severity: "high",
			Reason:   fmt.Sprintf("Job market decreased by %.0f%%", math.Abs(shift.DemandChangePct)),
		})
	}

	if len(learned) >= newOpportunityMinSkills {
		accessible := e.catalog.RolesForSkills(currentSkills, accessibleRoleMinMatch)
		if len(accessible) > 3 {
			accessible = accessible[:3]
		}
		if len(accessible) > 0 {
			triggers = append(triggers, types.Trigger{
				Type:     types.TriggerNewOpportunities,
				Severity: "low",
				Reason:   fmt.Sprintf("Your skills now qualify for %d additional roles", len(accessible)),
			})
		}
	}

	if state.MotivationLevel < lowMotivation {
		triggers = append(triggers, types.Trigger{
			Type:     types.TriggerSlowProgress,
			Severity: "medium",
			Reason:   "Progress is slower than expected",
		})
	}

	if len(triggers) == 0 {
		return &types.ReevaluationResult{
			Action:         types.ReevalActionContinue,
			CurrentMarket:  *analysis,
			MarketShift:    shift,
			ProgressPct:    state.ProgressPercent(),
			Recommendation: "You're making good progress. Keep going!",
		}, nil
	}

	result := &types.ReevaluationResult{
		Action:         types.ReevalActionReroute,
		Triggers:       triggers,
		CurrentMarket:  *analysis,
		MarketShift:    shift,
		Recommendation: recommendationFor(triggers),
	}

	recs, err := e.ranker.FindAlternatives(ctx, &state.Profile, state.TargetRole, analysis, 3)
	if err == nil && recs != nil {
		result.Alternatives = recs.Alternatives
	}

	state.RerouteCount++
	return result, nil
}

// skillsLearned collects the unique skills covered by completed steps,
// in completion order.
func skillsLearned(state *types.JourneyState) []string {
	seen := make(map[string]bool)
	var learned []string
	for _, stepNum := range state.CompletedSteps {
		if stepNum < 1 || stepNum > len(state.Roadmap) {
			continue
		}
		for _, skill := range state.Roadmap[stepNum-1].SkillsCovered {
			if !seen[skill] {
				seen[skill] = true
				learned = append(learned, skill)
			}
		}
	}
	return learned
}

// expectedHours is the effort the completed steps should have taken,
// at full-time pace.
func expectedHours(state *types.JourneyState) float64 {
	total := 0.0
	for _, stepNum := range state.CompletedSteps {
		if stepNum < 1 || stepNum > len(state.Roadmap) {
			continue
		}
		total += float64(state.Roadmap[stepNum-1].DurationWeeks) * hoursPerWeek
	}
	return total
}

func totalTimeSpent(state *types.JourneyState) float64 {
	total := 0.0
	for _, hours := range state.TimeSpent {
		total += hours
	}
	return total
}

// marketShift compares the journey's opening market snapshot with the
// current analysis. Demand change is zero when the snapshot had no
// jobs to compare against.
func marketShift(original *types.MarketAnalysis, current *types.MarketAnalysis) *types.MarketShift {
	changePct := 0.0
	if original.ActiveJobs > 0 {
		changePct = float64(current.ActiveJobs-original.ActiveJobs) / float64(original.ActiveJobs) * 100
	}
	return &types.MarketShift{
		DemandChangePct:     round1(changePct),
		OriginalJobs:        original.ActiveJobs,
		CurrentJobs:         current.ActiveJobs,
		OriginalDemandScore: original.DemandScore,
		CurrentDemandScore:  current.DemandScore,
		TrendChange:         current.DemandScore - original.DemandScore,
	}
}

// recommendationFor picks the advice matching the most severe trigger
func recommendationFor(triggers []types.Trigger) string {
	for _, trigger := range triggers {
		if trigger.Severity != "high" {
			continue
		}
		switch trigger.Type {
		case types.TriggerPerformance:
			return "Consider switching to an easier role that better matches your current skills"
		case types.TriggerMarketDecline:
			return "Market conditions have changed - explore growing career fields"
		}
	}
	return "Review alternative paths that might be better suited to your progress"
}
