package reroute

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/career-advisor/internal/types"
)

func analystProfile() *types.StudentProfile {
	return &types.StudentProfile{
		TechnicalSkills: map[string][]string{
			"databases":    {"SQL"},
			"tools":        {"Excel", "Git"},
			"programming":  {"Python"},
			"data_science": {"Statistics"},
		},
		ExperienceLevel:  types.ExperienceBeginner,
		LearningCapacity: types.CapacityMedium,
		StrengthAreas:    []string{"analytical thinking"},
	}
}

func mlAnalysis() *types.MarketAnalysis {
	return &types.MarketAnalysis{
		Role:         "ML Engineer",
		ActiveJobs:   1900,
		EntryBarrier: 0.8,
		SkillMatch:   0.2,
	}
}

func TestFindAlternatives_ExcludesFailedRole(t *testing.T) {
	r := NewRanker(nil, nil, nil)

	recs, err := r.FindAlternatives(context.Background(), analystProfile(), "ML Engineer", mlAnalysis(), 3)

	require.NoError(t, err)
	assert.Equal(t, "ML Engineer", recs.OriginalRole)
	for _, alt := range recs.Alternatives {
		assert.NotEqual(t, "ML Engineer", alt.Role)
	}
}

func TestFindAlternatives_ExclusionIsCaseInsensitive(t *testing.T) {
	r := NewRanker(nil, nil, nil)

	recs, err := r.FindAlternatives(context.Background(), analystProfile(), "ml engineer", mlAnalysis(), 0)

	require.NoError(t, err)
	for _, alt := range recs.Alternatives {
		assert.NotEqual(t, "ML Engineer", alt.Role)
	}
}

func TestFindAlternatives_TopNAndTotalEvaluated(t *testing.T) {
	r := NewRanker(nil, nil, nil)

	recs, err := r.FindAlternatives(context.Background(), analystProfile(), "ML Engineer", mlAnalysis(), 3)

	require.NoError(t, err)
	assert.Len(t, recs.Alternatives, 3)
	// Every non-failed catalog role is evaluated
	assert.Equal(t, len(r.catalog.RoleNames())-1, recs.TotalEvaluated)
}

func TestFindAlternatives_SortedByTotalScoreDesc(t *testing.T) {
	r := NewRanker(nil, nil, nil)

	recs, err := r.FindAlternatives(context.Background(), analystProfile(), "ML Engineer", mlAnalysis(), 0)

	require.NoError(t, err)
	for i := 1; i < len(recs.Alternatives); i++ {
		assert.GreaterOrEqual(t, recs.Alternatives[i-1].TotalScore, recs.Alternatives[i].TotalScore)
	}
}

func TestFindAlternatives_BreakdownIsConvexCombination(t *testing.T) {
	r := NewRanker(nil, nil, nil)

	recs, err := r.FindAlternatives(context.Background(), analystProfile(), "ML Engineer", mlAnalysis(), 0)

	require.NoError(t, err)
	for _, alt := range recs.Alternatives {
		b := alt.Breakdown
		expected := b.SkillOverlap*WeightSkillOverlap +
			b.MarketDemand*WeightMarketDemand +
			b.ProgressionPotential*WeightProgression +
			b.EaseOfEntry*WeightEaseOfEntry
		assert.InDelta(t, expected, b.TotalScore, 0.005)
		assert.GreaterOrEqual(t, b.TotalScore, 0.0)
		assert.LessOrEqual(t, b.TotalScore, 1.0)
	}
}

func TestFindAlternatives_AnalystSkillsFavorAnalystRoles(t *testing.T) {
	r := NewRanker(nil, nil, nil)

	recs, err := r.FindAlternatives(context.Background(), analystProfile(), "ML Engineer", mlAnalysis(), 3)

	require.NoError(t, err)
	require.NotEmpty(t, recs.Alternatives)
	assert.Equal(t, "Data Analyst", recs.Alternatives[0].Role)
}

func TestFindAlternatives_JustificationsAlwaysPresent(t *testing.T) {
	r := NewRanker(nil, nil, nil)

	recs, err := r.FindAlternatives(context.Background(), analystProfile(), "ML Engineer", mlAnalysis(), 3)

	require.NoError(t, err)
	for _, alt := range recs.Alternatives {
		assert.NotEmpty(t, alt.Justification)
	}
}

func TestMarketDemandScore_TrendMultiplier(t *testing.T) {
	growing := MarketDemandScore(2500, types.TrendGrowing, 0)
	stable := MarketDemandScore(2500, types.TrendStable, 0)
	declining := MarketDemandScore(2500, types.TrendDeclining, 0)

	assert.InDelta(t, 0.6, growing, 0.001)
	assert.InDelta(t, 0.5, stable, 0.001)
	assert.InDelta(t, 0.4, declining, 0.001)
}

func TestMarketDemandScore_GrowthBonusCapped(t *testing.T) {
	// 100% growth would add 1.0 uncapped; the bonus caps at 0.2
	assert.InDelta(t, 0.4, MarketDemandScore(1000, types.TrendStable, 100), 0.001)
}

func TestMarketDemandScore_CappedAtOne(t *testing.T) {
	assert.Equal(t, 1.0, MarketDemandScore(10000, types.TrendGrowing, 50))
}

func TestMarketDemandScore_UnknownTrendNeutral(t *testing.T) {
	assert.Equal(t,
		MarketDemandScore(2000, types.TrendStable, 5),
		MarketDemandScore(2000, types.TrendUnknown, 5))
}

func TestEaseOfEntry_AtOrBelowBaseline(t *testing.T) {
	assert.Equal(t, 1.0, EaseOfEntry(0.2, types.ExperienceBeginner))
	assert.Equal(t, 1.0, EaseOfEntry(0.5, types.ExperienceIntermediate))
}

func TestEaseOfEntry_LinearPenalty(t *testing.T) {
	// Beginner baseline 0.2, gap 0.4 => 1 - 0.6 = 0.4
	assert.InDelta(t, 0.4, EaseOfEntry(0.6, types.ExperienceBeginner), 0.001)
	// Gap 0.6 => 1 - 0.9 = 0.1
	assert.InDelta(t, 0.1, EaseOfEntry(0.8, types.ExperienceBeginner), 0.001)
}

func TestEaseOfEntry_FloorsAtZero(t *testing.T) {
	assert.Equal(t, 0.0, EaseOfEntry(0.9, types.ExperienceBeginner))
}

func TestProgressionPotential_RecommendedSteppingStone(t *testing.T) {
	r := NewRanker(nil, nil, nil)

	assert.Equal(t, 0.9, r.progressionPotential("Data Analyst", "ML Engineer"))
}

func TestProgressionPotential_NonRecommendedSteppingStone(t *testing.T) {
	r := NewRanker(nil, nil, nil)

	assert.Equal(t, 0.7, r.progressionPotential("Backend Developer", "ML Engineer"))
}

func TestProgressionPotential_CareerGraphEdge(t *testing.T) {
	r := NewRanker(nil, nil, nil)

	// Business Analyst -> Data Analyst has probability 0.6 and is not a
	// stepping stone for Data Analyst.
	assert.Equal(t, 0.6, r.progressionPotential("Business Analyst", "Data Analyst"))
}

func TestProgressionPotential_SkillSimilarityFallback(t *testing.T) {
	r := NewRanker(nil, nil, nil)

	// No stepping stone or graph edge from DevOps Engineer to Frontend
	// Developer; shared must-have skills decide.
	got := r.progressionPotential("DevOps Engineer", "Frontend Developer")

	assert.GreaterOrEqual(t, got, 0.0)
	assert.LessOrEqual(t, got, 0.6)
}

func TestProgressionPotential_DefaultForUnknownRoles(t *testing.T) {
	r := NewRanker(nil, nil, nil)

	assert.Equal(t, 0.3, r.progressionPotential("Astronaut", "Pilot"))
}

func TestComparisonTable(t *testing.T) {
	r := NewRanker(nil, nil, nil)

	recs, err := r.FindAlternatives(context.Background(), analystProfile(), "ML Engineer", mlAnalysis(), 5)
	require.NoError(t, err)

	cmp, err := r.ComparisonTable("ML Engineer", recs.Alternatives)

	require.NoError(t, err)
	assert.Equal(t, "ML Engineer", cmp.Original.Role)
	assert.Len(t, cmp.Alternatives, 3)
	for _, entry := range cmp.Alternatives {
		assert.Positive(t, entry.TotalScore)
	}
}

func TestComparisonTable_UnknownOriginal(t *testing.T) {
	r := NewRanker(nil, nil, nil)

	_, err := r.ComparisonTable("Astronaut", nil)

	assert.Error(t, err)
}

func TestFallbackJustification_MentionsSteppingStone(t *testing.T) {
	alt := &types.Alternative{
		Role: "Data Analyst",
		Breakdown: types.ScoreBreakdown{
			SkillOverlap:         0.8,
			ProgressionPotential: 0.9,
		},
		Market: types.MarketSummary{TotalJobs: 4200, EntryBarrier: 0.35},
	}

	text := fallbackJustification("ML Engineer", alt, mlAnalysis())

	assert.Contains(t, text, "4,200 active jobs")
	assert.Contains(t, text, "natural stepping stone to ML Engineer")
}

func TestFallbackJustification_NoSteppingStoneMention(t *testing.T) {
	alt := &types.Alternative{
		Role:      "Frontend Developer",
		Breakdown: types.ScoreBreakdown{SkillOverlap: 0.2, ProgressionPotential: 0.3},
		Market:    types.MarketSummary{TotalJobs: 3600, EntryBarrier: 0.4},
	}

	text := fallbackJustification("ML Engineer", alt, mlAnalysis())

	assert.NotContains(t, text, "stepping stone")
}

func TestFormatThousands(t *testing.T) {
	assert.Equal(t, "0", formatThousands(0))
	assert.Equal(t, "950", formatThousands(950))
	assert.Equal(t, "4,200", formatThousands(4200))
	assert.Equal(t, "1,234,567", formatThousands(1234567))
}
