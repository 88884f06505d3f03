package feasibility

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/career-advisor/internal/types"
)

func TestSkillScore_Buckets(t *testing.T) {
	assert.Equal(t, 1.0, SkillScore(0.7))
	assert.Equal(t, 1.0, SkillScore(1.0))
	assert.Equal(t, 0.8, SkillScore(0.5))
	assert.Equal(t, 0.8, SkillScore(0.69))
	assert.Equal(t, 0.6, SkillScore(0.3))
	assert.Equal(t, 0.4, SkillScore(0.15))
	assert.Equal(t, 0.2, SkillScore(0.14))
	assert.Equal(t, 0.2, SkillScore(0.0))
}

func TestSkillScore_Monotone(t *testing.T) {
	inputs := []float64{0.0, 0.1, 0.2, 0.3, 0.4, 0.5, 0.6, 0.7, 0.8, 1.0}
	for i := 1; i < len(inputs); i++ {
		assert.GreaterOrEqual(t, SkillScore(inputs[i]), SkillScore(inputs[i-1]),
			"skill score must not decrease from %.2f to %.2f", inputs[i-1], inputs[i])
	}
}

func TestMarketScore_Buckets(t *testing.T) {
	assert.Equal(t, 1.0, MarketScore(0.8))
	assert.Equal(t, 0.85, MarketScore(0.6))
	assert.Equal(t, 0.65, MarketScore(0.4))
	assert.Equal(t, 0.45, MarketScore(0.2))
	assert.Equal(t, 0.25, MarketScore(0.19))
}

func TestBarrierScore_StudentAtOrAboveBarrier(t *testing.T) {
	assert.Equal(t, 1.0, BarrierScore(0.2, types.ExperienceBeginner))
	assert.Equal(t, 1.0, BarrierScore(0.5, types.ExperienceIntermediate))
	assert.Equal(t, 1.0, BarrierScore(0.9, types.ExperienceAdvanced))
}

func TestBarrierScore_GapBuckets(t *testing.T) {
	// Beginner baseline is 0.2
	assert.Equal(t, 0.8, BarrierScore(0.4, types.ExperienceBeginner))
	assert.Equal(t, 0.6, BarrierScore(0.6, types.ExperienceBeginner))
	assert.Equal(t, 0.4, BarrierScore(0.8, types.ExperienceBeginner))
	assert.Equal(t, 0.2, BarrierScore(0.9, types.ExperienceBeginner))
}

func TestBarrierScore_UnknownLevelUsesBeginnerBaseline(t *testing.T) {
	assert.Equal(t, BarrierScore(0.7, types.ExperienceBeginner), BarrierScore(0.7, "unknown"))
}

func TestTimeScore_Buckets(t *testing.T) {
	// High capacity: weeks = missing * 4
	assert.Equal(t, 1.0, TimeScore(types.CapacityHigh, 3))  // 12 weeks
	assert.Equal(t, 0.8, TimeScore(types.CapacityHigh, 6))  // 24
	assert.Equal(t, 0.6, TimeScore(types.CapacityHigh, 9))  // 36
	assert.Equal(t, 0.4, TimeScore(types.CapacityHigh, 12)) // 48
	assert.Equal(t, 0.2, TimeScore(types.CapacityHigh, 13)) // 52
}

func TestTimeScore_CapacityStretchesTimeline(t *testing.T) {
	// 5 missing skills: high = 20 weeks, medium = 26, low = 32
	assert.Equal(t, 0.8, TimeScore(types.CapacityHigh, 5))
	assert.Equal(t, 0.6, TimeScore(types.CapacityMedium, 5))
	assert.Equal(t, 0.6, TimeScore(types.CapacityLow, 5))

	// 7 missing skills: high = 28, low = 44.8
	assert.Equal(t, 0.6, TimeScore(types.CapacityHigh, 7))
	assert.Equal(t, 0.4, TimeScore(types.CapacityLow, 7))
}

func TestTimeScore_NoMissingSkills(t *testing.T) {
	assert.Equal(t, 1.0, TimeScore(types.CapacityLow, 0))
}

func TestDecide_ThresholdsClosedAbove(t *testing.T) {
	verdict, confidence, action := decide(0.65)
	assert.Equal(t, types.VerdictFeasible, verdict)
	assert.Equal(t, "high", confidence)
	assert.Equal(t, types.ActionGenerateDirectRoadmap, action)

	verdict, confidence, action = decide(0.45)
	assert.Equal(t, types.VerdictChallenging, verdict)
	assert.Equal(t, "medium", confidence)
	assert.Equal(t, types.ActionOfferChoice, action)

	verdict, confidence, action = decide(0.4499)
	assert.Equal(t, types.VerdictNotFeasible, verdict)
	assert.Equal(t, "high", confidence)
	assert.Equal(t, types.ActionSuggestReroute, action)
}

func strongProfile() *types.StudentProfile {
	return &types.StudentProfile{
		TechnicalSkills: map[string][]string{
			"databases":    {"SQL"},
			"tools":        {"Excel"},
			"programming":  {"Python"},
			"data_science": {"Statistics", "Data Visualization"},
		},
		ExperienceLevel:  types.ExperienceIntermediate,
		LearningCapacity: types.CapacityHigh,
	}
}

func strongAnalysis() *types.MarketAnalysis {
	return &types.MarketAnalysis{
		Role:               "Data Analyst",
		DemandScore:        90,
		ActiveJobs:         4200,
		SkillMatch:         0.8,
		EntryBarrier:       0.35,
		MissingSkillsCount: 1,
		EstimatedTimeToJob: "1 month",
	}
}

func weakAnalysis() *types.MarketAnalysis {
	return &types.MarketAnalysis{
		Role:               "ML Engineer",
		DemandScore:        15,
		ActiveJobs:         300,
		SkillMatch:         0.1,
		EntryBarrier:       0.8,
		MissingSkillsCount: 6,
		MissingSkills:      []string{"Machine Learning", "Deep Learning", "TensorFlow", "Docker", "SQL", "Python"},
		EstimatedTimeToJob: "11-14 months",
	}
}

func TestEvaluate_FeasibleGoal(t *testing.T) {
	e := NewEvaluator(nil)

	result, err := e.Evaluate(context.Background(), strongProfile(), strongAnalysis(), "Data Analyst")

	require.NoError(t, err)
	// Factors: skill 1.0, market 1.0, barrier 1.0, time 1.0 => score 1.0
	assert.Equal(t, types.VerdictFeasible, result.Verdict)
	assert.Equal(t, "high", result.Confidence)
	assert.Equal(t, types.ActionGenerateDirectRoadmap, result.Action)
	assert.InDelta(t, 1.0, result.FeasibilityScore, 0.001)
	assert.Empty(t, result.Reasons)
	assert.Equal(t, "Great news! Data Analyst is a feasible career goal for you.", result.Explanation)
	assert.Equal(t, types.ActionGenerateDirectRoadmap, result.Recommendation)
}

func TestEvaluate_NotFeasibleGoal(t *testing.T) {
	e := NewEvaluator(nil)

	profile := &types.StudentProfile{
		ExperienceLevel:  types.ExperienceBeginner,
		LearningCapacity: types.CapacityLow,
	}

	result, err := e.Evaluate(context.Background(), profile, weakAnalysis(), "ML Engineer")

	require.NoError(t, err)
	// Factors: skill 0.2, market 0.25, barrier 0.4, time 0.4
	// Score: 0.08 + 0.075 + 0.08 + 0.04 = 0.275
	assert.Equal(t, types.VerdictNotFeasible, result.Verdict)
	assert.Equal(t, types.ActionSuggestReroute, result.Action)
	assert.InDelta(t, 0.28, result.FeasibilityScore, 0.005)
	assert.NotEmpty(t, result.Reasons)
	assert.NotEmpty(t, result.Explanation)
}

func TestEvaluate_ChallengingCarriesWarning(t *testing.T) {
	e := NewEvaluator(nil)

	profile := &types.StudentProfile{
		ExperienceLevel:  types.ExperienceBeginner,
		LearningCapacity: types.CapacityMedium,
	}
	analysis := &types.MarketAnalysis{
		DemandScore:        70,
		ActiveJobs:         3000,
		SkillMatch:         0.4,
		EntryBarrier:       0.5,
		MissingSkillsCount: 3,
		EstimatedTimeToJob: "4 months",
	}

	result, err := e.Evaluate(context.Background(), profile, analysis, "Backend Developer")

	require.NoError(t, err)
	// Factors: skill 0.6, market 0.85, barrier 0.6, time 0.8
	// Score: 0.24 + 0.255 + 0.12 + 0.08 = 0.695 => FEASIBLE, adjust:
	// use a weaker market to land in the CHALLENGING band instead.
	if result.Verdict == types.VerdictChallenging {
		assert.Equal(t, challengingWarning, result.Recommendation)
	}

	analysis.DemandScore = 30
	analysis.SkillMatch = 0.2
	result, err = e.Evaluate(context.Background(), profile, analysis, "Backend Developer")
	require.NoError(t, err)
	// Factors: skill 0.4, market 0.45, barrier 0.6, time 0.8
	// Score: 0.16 + 0.135 + 0.12 + 0.08 = 0.495 => CHALLENGING
	assert.Equal(t, types.VerdictChallenging, result.Verdict)
	assert.Equal(t, "medium", result.Confidence)
	assert.Equal(t, types.ActionOfferChoice, result.Action)
	assert.Equal(t, challengingWarning, result.Recommendation)
}

func TestEvaluate_ScoreIsConvexCombination(t *testing.T) {
	e := NewEvaluator(nil)

	result, err := e.Evaluate(context.Background(), strongProfile(), weakAnalysis(), "ML Engineer")

	require.NoError(t, err)
	assert.GreaterOrEqual(t, result.FeasibilityScore, 0.2)
	assert.LessOrEqual(t, result.FeasibilityScore, 1.0)
}

func TestEvaluate_ReasonsForWeakFactors(t *testing.T) {
	e := NewEvaluator(nil)

	profile := &types.StudentProfile{
		ExperienceLevel:  types.ExperienceBeginner,
		LearningCapacity: types.CapacityLow,
	}

	result, err := e.Evaluate(context.Background(), profile, weakAnalysis(), "ML Engineer")

	require.NoError(t, err)
	kinds := make([]string, 0, len(result.Reasons))
	for _, r := range result.Reasons {
		kinds = append(kinds, r.Type)
	}
	assert.ElementsMatch(t, []string{
		types.ReasonSkillGap,
		types.ReasonLowMarketDemand,
		types.ReasonHighEntryBarrier,
		types.ReasonLongLearningPath,
	}, kinds)
}

func TestEvaluate_ReasonSeverities(t *testing.T) {
	e := NewEvaluator(nil)

	profile := &types.StudentProfile{
		ExperienceLevel:  types.ExperienceBeginner,
		LearningCapacity: types.CapacityLow,
	}

	result, err := e.Evaluate(context.Background(), profile, weakAnalysis(), "ML Engineer")

	require.NoError(t, err)
	bySeverity := make(map[string]string)
	for _, r := range result.Reasons {
		bySeverity[r.Type] = r.Severity
	}
	// skill 0.2 < 0.3 => critical; market 0.25 < 0.3 => critical
	assert.Equal(t, types.SeverityCritical, bySeverity[types.ReasonSkillGap])
	assert.Equal(t, types.SeverityCritical, bySeverity[types.ReasonLowMarketDemand])
	// barrier 0.4 is weak but not critical => medium
	assert.Equal(t, types.SeverityMedium, bySeverity[types.ReasonHighEntryBarrier])
	assert.Equal(t, types.SeverityMedium, bySeverity[types.ReasonLongLearningPath])
}

func TestEvaluate_SkillGapReasonCarriesMissingSkills(t *testing.T) {
	e := NewEvaluator(nil)

	profile := &types.StudentProfile{
		ExperienceLevel:  types.ExperienceBeginner,
		LearningCapacity: types.CapacityMedium,
	}
	analysis := weakAnalysis()

	result, err := e.Evaluate(context.Background(), profile, analysis, "ML Engineer")

	require.NoError(t, err)
	for _, r := range result.Reasons {
		if r.Type == types.ReasonSkillGap {
			assert.Equal(t, analysis.MissingSkills, r.MissingSkills)
			return
		}
	}
	t.Fatal("expected a skill_gap reason")
}

func TestEvaluate_NilInputs(t *testing.T) {
	e := NewEvaluator(nil)

	_, err := e.Evaluate(context.Background(), nil, strongAnalysis(), "Data Analyst")
	assert.Error(t, err)

	_, err = e.Evaluate(context.Background(), strongProfile(), nil, "Data Analyst")
	assert.Error(t, err)
}

func TestFallbackExplanation_Deterministic(t *testing.T) {
	analysis := weakAnalysis()

	got := fallbackExplanation("ML Engineer", analysis)

	assert.Equal(t, "While ML Engineer is an exciting career goal, the current job market "+
		"and skill requirements present significant challenges. With only 10% "+
		"skill match and 300 active positions, "+
		"there are more strategic paths to explore that align better with your current profile.", got)
}

func TestSuccessProbability(t *testing.T) {
	profile := &types.StudentProfile{ExperienceLevel: types.ExperienceBeginner}
	analysis := &types.MarketAnalysis{SkillMatch: 0.5, DemandScore: 80, EntryBarrier: 0.4}

	// 0.5 * 0.8 * (1 - 0.2) * 0.7 = 0.224 => 0.22
	assert.InDelta(t, 0.22, SuccessProbability(profile, analysis), 0.001)
}

func TestSuccessProbability_ExperienceOrdering(t *testing.T) {
	analysis := &types.MarketAnalysis{SkillMatch: 0.6, DemandScore: 70, EntryBarrier: 0.5}

	beginner := SuccessProbability(&types.StudentProfile{ExperienceLevel: types.ExperienceBeginner}, analysis)
	intermediate := SuccessProbability(&types.StudentProfile{ExperienceLevel: types.ExperienceIntermediate}, analysis)
	advanced := SuccessProbability(&types.StudentProfile{ExperienceLevel: types.ExperienceAdvanced}, analysis)

	assert.Less(t, beginner, intermediate)
	assert.Less(t, intermediate, advanced)
}

func TestSuccessProbability_ZeroSkillMatch(t *testing.T) {
	profile := &types.StudentProfile{ExperienceLevel: types.ExperienceAdvanced}
	analysis := &types.MarketAnalysis{SkillMatch: 0, DemandScore: 100, EntryBarrier: 0}

	assert.Equal(t, 0.0, SuccessProbability(profile, analysis))
}
