// Package feasibility decides whether a career goal is realistic for a
// student, combining deterministic multi-factor scoring with generated
// prose explanations.
package feasibility

import (
	"context"
	"fmt"
	"math"

	"github.com/jonathan/career-advisor/internal/llm"
	"github.com/jonathan/career-advisor/internal/types"
)

// Factor weights for the overall feasibility score. They must sum to
// 1.0 so the score stays a convex combination of the factor scores.
const (
	WeightSkillMatch       = 0.4
	WeightMarketDemand     = 0.3
	WeightEntryBarrier     = 0.2
	WeightTimeToCompetency = 0.1
)

// Verdict thresholds, closed above: a score exactly at the threshold
// takes the stronger verdict.
const (
	FeasibleThreshold    = 0.65
	ChallengingThreshold = 0.45
)

// challengingWarning is surfaced as the recommendation for CHALLENGING
// verdicts.
const challengingWarning = "High effort required - consider alternatives or commit to intensive learning"

// Evaluator produces feasibility verdicts. The text generator is only
// used for prose; verdicts and scores are fully deterministic.
type Evaluator struct {
	llm llm.Client
}

// NewEvaluator creates an Evaluator. A nil client disables generated
// prose; explanations then always use the deterministic template.
func NewEvaluator(client llm.Client) *Evaluator {
	return &Evaluator{llm: client}
}

// Evaluate runs the full feasibility evaluation for a desired role
func (e *Evaluator) Evaluate(ctx context.Context, profile *types.StudentProfile, analysis *types.MarketAnalysis, desiredRole string) (*types.FeasibilityResult, error) {
	if profile == nil {
		return nil, fmt.Errorf("student profile is required")
	}
	if analysis == nil {
		return nil, fmt.Errorf("market analysis is required")
	}

	skillScore := SkillScore(analysis.SkillMatch)
	marketScore := MarketScore(float64(analysis.DemandScore) / 100.0)
	barrierScore := BarrierScore(analysis.EntryBarrier, profile.ExperienceLevel)
	timeScore := TimeScore(profile.LearningCapacity, analysis.MissingSkillsCount)

	score := skillScore*WeightSkillMatch +
		marketScore*WeightMarketDemand +
		barrierScore*WeightEntryBarrier +
		timeScore*WeightTimeToCompetency

	verdict, confidence, action := decide(score)

	reasons := buildReasons(reasonInputs{
		skillScore:   skillScore,
		marketScore:  marketScore,
		barrierScore: barrierScore,
		timeScore:    timeScore,
		profile:      profile,
		analysis:     analysis,
	})

	var explanation string
	if verdict == types.VerdictFeasible {
		explanation = fmt.Sprintf("Great news! %s is a feasible career goal for you.", desiredRole)
	} else {
		explanation = e.explainChallenge(ctx, desiredRole, verdict, reasons, analysis, profile)
	}

	recommendation := action
	if verdict == types.VerdictChallenging {
		recommendation = challengingWarning
	}

	return &types.FeasibilityResult{
		Verdict:          verdict,
		Confidence:       confidence,
		Action:           action,
		FeasibilityScore: round2(score),
		FactorScores: types.FactorScores{
			SkillMatch:       round2(skillScore),
			MarketDemand:     round2(marketScore),
			EntryBarrier:     round2(barrierScore),
			TimeToCompetency: round2(timeScore),
		},
		Reasons:        reasons,
		Explanation:    explanation,
		Recommendation: recommendation,
	}, nil
}

// SkillScore curves the raw skill match ratio so very low matches are
// penalized more heavily than a linear mapping would.
func SkillScore(skillMatch float64) float64 {
	switch {
	case skillMatch >= 0.7:
		return 1.0
	case skillMatch >= 0.5:
		return 0.8
	case skillMatch >= 0.3:
		return 0.6
	case skillMatch >= 0.15:
		return 0.4
	default:
		return 0.2
	}
}

// MarketScore buckets the normalized 0-1 demand score
func MarketScore(demand float64) float64 {
	switch {
	case demand >= 0.8:
		return 1.0
	case demand >= 0.6:
		return 0.85
	case demand >= 0.4:
		return 0.65
	case demand >= 0.2:
		return 0.45
	default:
		return 0.25
	}
}

// BarrierScore scores the mismatch between a role's entry barrier and
// the student's experience. A student at or above the barrier scores
// 1.0; otherwise the score falls with the size of the gap.
func BarrierScore(entryBarrier float64, level types.ExperienceLevel) float64 {
	baseline := level.ExperienceBaseline()
	if entryBarrier <= baseline {
		return 1.0
	}
	gap := entryBarrier - baseline
	switch {
	case gap <= 0.2:
		return 0.8
	case gap <= 0.4:
		return 0.6
	case gap <= 0.6:
		return 0.4
	default:
		return 0.2
	}
}

// Learning capacity stretches the estimated weeks per missing skill
const baseWeeksPerSkill = 4

func capacityMultiplier(capacity types.LearningCapacity) float64 {
	switch capacity {
	case types.CapacityHigh:
		return 1.0
	case types.CapacityLow:
		return 1.6
	default:
		return 1.3
	}
}

// TimeScore scores the estimated learning timeline for the missing
// skills, adjusted for the student's learning capacity.
func TimeScore(capacity types.LearningCapacity, missingSkillsCount int) float64 {
	totalWeeks := float64(missingSkillsCount) * baseWeeksPerSkill * capacityMultiplier(capacity)
	switch {
	case totalWeeks <= 12:
		return 1.0
	case totalWeeks <= 24:
		return 0.8
	case totalWeeks <= 36:
		return 0.6
	case totalWeeks <= 48:
		return 0.4
	default:
		return 0.2
	}
}

// decide maps an overall score to verdict, confidence, and next action
func decide(score float64) (types.Verdict, string, string) {
	switch {
	case score >= FeasibleThreshold:
		return types.VerdictFeasible, "high", types.ActionGenerateDirectRoadmap
	case score >= ChallengingThreshold:
		return types.VerdictChallenging, "medium", types.ActionOfferChoice
	default:
		return types.VerdictNotFeasible, "high", types.ActionSuggestReroute
	}
}

type reasonInputs struct {
	skillScore   float64
	marketScore  float64
	barrierScore float64
	timeScore    float64
	profile      *types.StudentProfile
	analysis     *types.MarketAnalysis
}

// buildReasons emits a structured reason for every factor scoring
// below 0.5. A FEASIBLE verdict can still carry reasons for its weak
// factors.
func buildReasons(in reasonInputs) []types.Reason {
	var reasons []types.Reason

	if in.skillScore < 0.5 {
		severity := types.SeverityHigh
		if in.skillScore < 0.3 {
			severity = types.SeverityCritical
		}
		reasons = append(reasons, types.Reason{
			Type:     types.ReasonSkillGap,
			Severity: severity,
			Title:    "Significant Skill Gap",
			Explanation: fmt.Sprintf("You currently have only %.0f%% of the required skills. Missing %d critical skills.",
				in.analysis.SkillMatch*100, in.analysis.MissingSkillsCount),
			Impact:        "Would require 6-12 months of intensive learning",
			MissingSkills: in.analysis.MissingSkills,
		})
	}

	if in.marketScore < 0.5 {
		severity := types.SeverityHigh
		if in.marketScore < 0.3 {
			severity = types.SeverityCritical
		}
		reasons = append(reasons, types.Reason{
			Type:     types.ReasonLowMarketDemand,
			Severity: severity,
			Title:    "Limited Market Opportunities",
			Explanation: fmt.Sprintf("Only %d active job postings found. Market demand score: %d/100.",
				in.analysis.ActiveJobs, in.analysis.DemandScore),
			Impact: "Very competitive job market with limited openings",
		})
	}

	if in.barrierScore < 0.5 {
		severity := types.SeverityMedium
		if in.barrierScore < 0.3 {
			severity = types.SeverityCritical
		}
		reasons = append(reasons, types.Reason{
			Type:     types.ReasonHighEntryBarrier,
			Severity: severity,
			Title:    "High Entry Requirements",
			Explanation: fmt.Sprintf("This role has an entry barrier of %.0f%%, but you're at %s level.",
				in.analysis.EntryBarrier*100, in.profile.ExperienceLevel),
			Impact: "Most positions require significant prior experience or advanced qualifications",
		})
	}

	if in.timeScore < 0.5 {
		reasons = append(reasons, types.Reason{
			Type:     types.ReasonLongLearningPath,
			Severity: types.SeverityMedium,
			Title:    "Extended Learning Timeline",
			Explanation: fmt.Sprintf("Given %d skills to learn, estimated time: %s",
				in.analysis.MissingSkillsCount, in.analysis.EstimatedTimeToJob),
			Impact: "Requires sustained long-term commitment",
		})
	}

	return reasons
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
