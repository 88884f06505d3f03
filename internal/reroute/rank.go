// Package reroute finds and justifies alternative career paths when a
// student's original goal is not feasible.
package reroute

import (
	"context"
	"math"
	"sort"
	"strings"

	"github.com/jonathan/career-advisor/internal/llm"
	"github.com/jonathan/career-advisor/internal/market"
	"github.com/jonathan/career-advisor/internal/types"
)

// Alternative ranking weights. Skill overlap dominates because a
// reroute should feel reachable from the student's current skills.
const (
	WeightSkillOverlap = 0.35
	WeightMarketDemand = 0.30
	WeightProgression  = 0.20
	WeightEaseOfEntry  = 0.15
)

// Ranker scores every catalog role as a reroute candidate
type Ranker struct {
	llm     llm.Client
	catalog *market.Catalog
	paths   *CareerPaths
}

// NewRanker creates a Ranker. A nil client disables generated
// justifications; the deterministic template is used instead.
func NewRanker(client llm.Client, catalog *market.Catalog, paths *CareerPaths) *Ranker {
	if catalog == nil {
		catalog = market.Default()
	}
	if paths == nil {
		paths = DefaultCareerPaths()
	}
	return &Ranker{llm: client, catalog: catalog, paths: paths}
}

// FindAlternatives scores every catalog role except the failed one and
// returns the topN with justifications.
func (r *Ranker) FindAlternatives(ctx context.Context, profile *types.StudentProfile, failedRole string, failedAnalysis *types.MarketAnalysis, topN int) (*types.RerouteRecommendations, error) {
	scored := r.scoreAllRoles(profile, failedRole)

	top := scored
	if topN > 0 && len(top) > topN {
		top = top[:topN]
	}

	if err := r.justifyAll(ctx, top, failedRole, failedAnalysis, profile); err != nil {
		return nil, err
	}

	return &types.RerouteRecommendations{
		OriginalRole:   failedRole,
		Alternatives:   top,
		TotalEvaluated: len(scored),
	}, nil
}

// scoreAllRoles ranks every role except the failed one, best first.
// The sort is stable so equal scores keep catalog order.
func (r *Ranker) scoreAllRoles(profile *types.StudentProfile, failedRole string) []types.Alternative {
	studentSkills := profile.AllSkills()

	var scored []types.Alternative
	for _, roleName := range r.catalog.RoleNames() {
		if strings.EqualFold(roleName, failedRole) {
			continue
		}
		rec := r.catalog.Record(roleName)

		breakdown := r.scoreRole(roleName, rec, studentSkills, failedRole, profile)
		scored = append(scored, types.Alternative{
			Role:       roleName,
			TotalScore: breakdown.TotalScore,
			Breakdown:  breakdown,
			Market:     market.Summary(rec),
		})
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].TotalScore > scored[j].TotalScore
	})
	return scored
}

// scoreRole computes the multi-criteria breakdown for one candidate
func (r *Ranker) scoreRole(roleName string, rec *types.RoleMarketRecord, studentSkills []string, failedRole string, profile *types.StudentProfile) types.ScoreBreakdown {
	overlap := r.skillOverlap(studentSkills, rec)
	demand := MarketDemandScore(rec.Market.TotalJobs, rec.Market.Trend, rec.Market.GrowthRateYoY)
	progression := r.progressionPotential(roleName, failedRole)
	ease := EaseOfEntry(rec.Requirements.EntryBarrier, profile.ExperienceLevel)

	total := overlap*WeightSkillOverlap +
		demand*WeightMarketDemand +
		progression*WeightProgression +
		ease*WeightEaseOfEntry

	return types.ScoreBreakdown{
		TotalScore:           round3(total),
		SkillOverlap:         round3(overlap),
		MarketDemand:         round3(demand),
		ProgressionPotential: round3(progression),
		EaseOfEntry:          round3(ease),
	}
}

// skillOverlap is the fraction of the role's must-have skills the
// student already covers.
func (r *Ranker) skillOverlap(studentSkills []string, rec *types.RoleMarketRecord) float64 {
	required := rec.MustHaveNames()
	if len(required) == 0 {
		return 0.0
	}

	tax := r.catalog.Taxonomy()
	normalizedStudent := make([]string, 0, len(studentSkills))
	for _, s := range studentSkills {
		normalizedStudent = append(normalizedStudent, tax.Normalize(s))
	}

	matches := 0
	for _, req := range required {
		normalized := tax.Normalize(req)
		for _, student := range normalizedStudent {
			if tax.Match(normalized, student) {
				matches++
				break
			}
		}
	}
	return float64(matches) / float64(len(required))
}

// MarketDemandScore normalizes raw market numbers to 0-1 for ranking.
// Unlike the 0-100 demand score shown to students, this variant
// multiplies by a trend factor and caps the growth bonus at 0.2.
func MarketDemandScore(totalJobs int, trend types.Trend, growthRate float64) float64 {
	base := math.Min(float64(totalJobs)/5000, 1.0)

	multiplier := 1.0
	switch trend {
	case types.TrendGrowing:
		multiplier = 1.2
	case types.TrendDeclining:
		multiplier = 0.8
	}

	growthBonus := math.Min(growthRate/100, 0.2)

	return math.Min(base*multiplier+growthBonus, 1.0)
}

// EaseOfEntry scores a candidate's entry barrier against the student's
// experience. Barriers at or below the student's level score 1.0; the
// penalty above that is steeper than the feasibility barrier curve
// because a reroute is supposed to be the easy path.
func EaseOfEntry(entryBarrier float64, level types.ExperienceLevel) float64 {
	baseline := level.ExperienceBaseline()
	if entryBarrier <= baseline {
		return 1.0
	}
	gap := entryBarrier - baseline
	return math.Max(1.0-gap*1.5, 0.0)
}

func round3(v float64) float64 {
	return math.Round(v*1000) / 1000
}
