package market

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/career-advisor/internal/types"
)

func TestAnalyze_FullMatch(t *testing.T) {
	c := Default()

	analysis, err := c.Analyze("Data Analyst",
		[]string{"SQL", "Excel", "Python", "Data Visualization", "Statistics"})

	require.NoError(t, err)
	assert.Equal(t, "Data Analyst", analysis.Role)
	assert.InDelta(t, 1.0, analysis.SkillMatch, 0.001)
	assert.Empty(t, analysis.MissingSkills)
	assert.Equal(t, 0, analysis.MissingSkillsCount)
	assert.Equal(t, "1 month", analysis.EstimatedTimeToJob)
}

func TestAnalyze_PartialMatch(t *testing.T) {
	c := Default()

	analysis, err := c.Analyze("Data Analyst", []string{"Excel", "SQL"})

	require.NoError(t, err)
	assert.InDelta(t, 0.4, analysis.SkillMatch, 0.001)
	assert.ElementsMatch(t, []string{"Python", "Data Visualization", "Statistics"}, analysis.MissingSkills)
	assert.Equal(t, 3, analysis.MissingSkillsCount)
}

func TestAnalyze_NoSkills(t *testing.T) {
	c := Default()

	analysis, err := c.Analyze("Data Analyst", nil)

	require.NoError(t, err)
	assert.Equal(t, 0.0, analysis.SkillMatch)
	assert.Len(t, analysis.MissingSkills, 5)
}

func TestAnalyze_AliasesNormalizedBeforeMatching(t *testing.T) {
	c := Default()

	analysis, err := c.Analyze("Data Analyst", []string{"ms excel", "structured query language"})

	require.NoError(t, err)
	assert.InDelta(t, 0.4, analysis.SkillMatch, 0.001)
	assert.Contains(t, analysis.MatchedSkills, "Excel")
	assert.Contains(t, analysis.MatchedSkills, "SQL")
}

func TestAnalyze_CatalogAliasNotDoubleCounted(t *testing.T) {
	// "ms excel" is declared in the dataset but normalizes to "Excel".
	// A matched skill must never also appear in missing_skills.
	data := []byte(`{
		"roles": {
			"Spreadsheet Analyst": {
				"market_data": {"total_jobs": 1000, "trend": "stable"},
				"salary": {"entry_level": {"min": 300000, "max": 500000, "currency": "INR"}},
				"requirements": {"entry_barrier": 0.3, "freshers_accepted": true},
				"skills": {"must_have": [{"name": "ms excel"}, {"name": "SQL"}]}
			}
		}
	}`)
	c, err := Load(data, nil)
	require.NoError(t, err)

	analysis, err := c.Analyze("Spreadsheet Analyst", []string{"Excel"})

	require.NoError(t, err)
	assert.InDelta(t, 0.5, analysis.SkillMatch, 0.001)
	assert.Equal(t, []string{"Excel"}, analysis.MatchedSkills)
	assert.Equal(t, []string{"SQL"}, analysis.MissingSkills)
	assert.Equal(t, 1, analysis.MissingSkillsCount)
}

func TestAnalyze_EchoesRequestedRoleName(t *testing.T) {
	c := Default()

	analysis, err := c.Analyze("data analyst", []string{"SQL"})

	require.NoError(t, err)
	assert.Equal(t, "data analyst", analysis.Role)
}

func TestAnalyze_UnknownRole(t *testing.T) {
	c := Default()

	_, err := c.Analyze("Astronaut", []string{"Python"})

	var notFound *NotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.NotEmpty(t, notFound.AvailableRoles)
}

func TestAnalyze_SalaryFormattedAsLPA(t *testing.T) {
	c := Default()

	analysis, err := c.Analyze("Data Analyst", nil)

	require.NoError(t, err)
	assert.Equal(t, "₹4.0-7.0 LPA", analysis.AvgSalaryRange)
	assert.Equal(t, 400000, analysis.EntrySalaryMin)
	assert.Equal(t, 700000, analysis.EntrySalaryMax)
}

func TestAnalyze_BarrierLabels(t *testing.T) {
	c := Default()

	low, err := c.Analyze("Business Analyst", nil)
	require.NoError(t, err)
	assert.Equal(t, "low", low.EntryBarrierLabel)

	medium, err := c.Analyze("Software Engineer", nil)
	require.NoError(t, err)
	assert.Equal(t, "medium", medium.EntryBarrierLabel)

	high, err := c.Analyze("Data Scientist", nil)
	require.NoError(t, err)
	assert.Equal(t, "high", high.EntryBarrierLabel)

	veryHigh, err := c.Analyze("ML Engineer", nil)
	require.NoError(t, err)
	assert.Equal(t, "very_high", veryHigh.EntryBarrierLabel)
	assert.Equal(t, "very_high", veryHigh.CompetitionLevel)
}

func TestBarrierLabel_Boundaries(t *testing.T) {
	assert.Equal(t, "low", barrierLabel(0.39))
	assert.Equal(t, "medium", barrierLabel(0.4))
	assert.Equal(t, "high", barrierLabel(0.6))
	assert.Equal(t, "very_high", barrierLabel(0.8))
}

func TestFormatSalaryRange_NonINR(t *testing.T) {
	got := formatSalaryRange(types.SalaryBand{Min: 60000, Max: 90000, Currency: "USD"})

	assert.Equal(t, "USD 60000-90000", got)
}

func TestEstimateTimeToJob_Buckets(t *testing.T) {
	rec := &types.RoleMarketRecord{
		Skills: types.RoleSkills{
			MustHave: []types.SkillRequirement{
				{Name: "A", AvgLearningWeeks: 10},
				{Name: "B", AvgLearningWeeks: 10},
			},
		},
	}

	// Full match leaves only the 4-week buffer
	assert.Equal(t, "1 month", estimateTimeToJob(1.0, rec))
	// Half match: 10 remaining + 4 buffer = 14 weeks
	assert.Equal(t, "3 months", estimateTimeToJob(0.5, rec))
	// No match: 20 + 4 = 24 weeks
	assert.Equal(t, "6 months", estimateTimeToJob(0.0, rec))
}

func TestEstimateTimeToJob_LongPathsReportRange(t *testing.T) {
	rec := &types.RoleMarketRecord{
		Skills: types.RoleSkills{
			MustHave: []types.SkillRequirement{
				{Name: "A", AvgLearningWeeks: 20},
				{Name: "B", AvgLearningWeeks: 20},
			},
		},
	}

	// 40 + 4 = 44 weeks => 11-14 months
	assert.Equal(t, "11-14 months", estimateTimeToJob(0.0, rec))
}

func TestEstimateTimeToJob_DefaultsMissingLearningWeeks(t *testing.T) {
	rec := &types.RoleMarketRecord{
		Skills: types.RoleSkills{
			MustHave: []types.SkillRequirement{{Name: "A"}},
		},
	}

	// Defaults to 4 weeks, plus the 4-week buffer
	assert.Equal(t, "2 months", estimateTimeToJob(0.0, rec))
}

func TestSummary(t *testing.T) {
	c := Default()

	rec := c.Record("Data Analyst")
	require.NotNil(t, rec)

	s := Summary(rec)

	assert.Equal(t, 4200, s.TotalJobs)
	assert.Equal(t, types.TrendGrowing, s.Trend)
	assert.True(t, s.FreshersAccepted)
	assert.Contains(t, s.SalaryRange, "LPA")
}
