package market

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/career-advisor/internal/types"
)

func TestDefault_LoadsEmbeddedDataset(t *testing.T) {
	c := Default()

	require.NotNil(t, c)
	assert.NotEmpty(t, c.RoleNames())
}

func TestLoad_RejectsInvalidJSON(t *testing.T) {
	_, err := Load([]byte("{not json"), nil)

	assert.Error(t, err)
}

func TestLoad_RejectsSchemaViolations(t *testing.T) {
	// total_jobs must be an integer
	bad := []byte(`{
		"roles": {
			"Data Analyst": {
				"market_data": {"total_jobs": "many", "trend": "growing"},
				"salary": {"entry_level": {"min": 1, "max": 2, "currency": "INR"}},
				"requirements": {"entry_barrier": 0.5, "freshers_accepted": true},
				"skills": {"must_have": [{"name": "SQL"}]}
			}
		}
	}`)

	_, err := Load(bad, nil)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "schema validation")
}

func TestLoad_PreservesDeclaredRoleOrder(t *testing.T) {
	c := Default()

	names := c.RoleNames()
	require.NotEmpty(t, names)
	assert.Equal(t, "Data Analyst", names[0])
}

func TestFindRole_ExactMatch(t *testing.T) {
	c := Default()

	name, rec, err := c.FindRole("Data Analyst")

	require.NoError(t, err)
	assert.Equal(t, "Data Analyst", name)
	assert.Positive(t, rec.Market.TotalJobs)
}

func TestFindRole_CaseInsensitive(t *testing.T) {
	c := Default()

	name, _, err := c.FindRole("data analyst")

	require.NoError(t, err)
	assert.Equal(t, "Data Analyst", name)
}

func TestFindRole_SubstringFallback(t *testing.T) {
	c := Default()

	name, _, err := c.FindRole("ML")

	require.NoError(t, err)
	assert.Equal(t, "ML Engineer", name)
}

func TestFindRole_AmbiguousSubstringTakesFirstDeclared(t *testing.T) {
	c := Default()

	// Both Data Analyst and Business Analyst contain "Analyst"; the
	// earlier declaration wins.
	name, _, err := c.FindRole("Analyst")

	require.NoError(t, err)
	assert.Equal(t, "Data Analyst", name)
}

func TestFindRole_NotFound(t *testing.T) {
	c := Default()

	_, _, err := c.FindRole("Astronaut")

	var notFound *NotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, "Astronaut", notFound.Role)
	assert.Contains(t, notFound.AvailableRoles, "Data Analyst")
}

func TestDemandScore_MaxComponents(t *testing.T) {
	score := DemandScore(5000, types.TrendGrowing, 25)

	assert.Equal(t, 100, score)
}

func TestDemandScore_UnknownTrendNegativeGrowth(t *testing.T) {
	score := DemandScore(0, types.TrendUnknown, -5)

	assert.Equal(t, 10, score)
}

func TestDemandScore_JobsComponentCapped(t *testing.T) {
	// 50000 jobs scores no higher than 5000 jobs
	assert.Equal(t,
		DemandScore(5000, types.TrendStable, 0),
		DemandScore(50000, types.TrendStable, 0))
}

func TestDemandScore_TrendOrdering(t *testing.T) {
	growing := DemandScore(2000, types.TrendGrowing, 5)
	stable := DemandScore(2000, types.TrendStable, 5)
	declining := DemandScore(2000, types.TrendDeclining, 5)

	assert.Greater(t, growing, stable)
	assert.Greater(t, stable, declining)
}

func TestDemandScore_GrowthBuckets(t *testing.T) {
	base := DemandScore(1000, types.TrendStable, -1)

	assert.Equal(t, base+5, DemandScore(1000, types.TrendStable, 0))
	assert.Equal(t, base+10, DemandScore(1000, types.TrendStable, 10))
	assert.Equal(t, base+15, DemandScore(1000, types.TrendStable, 20))
}

func TestTrendingRoles_SortedByDemandDesc(t *testing.T) {
	c := Default()

	trending := c.TrendingRoles(3)

	require.Len(t, trending, 3)
	assert.GreaterOrEqual(t, trending[0].DemandScore, trending[1].DemandScore)
	assert.GreaterOrEqual(t, trending[1].DemandScore, trending[2].DemandScore)
}

func TestTrendingRoles_ZeroMeansAll(t *testing.T) {
	c := Default()

	trending := c.TrendingRoles(0)

	assert.Len(t, trending, len(c.RoleNames()))
}

func TestRolesForSkills_FiltersByMinMatch(t *testing.T) {
	c := Default()

	matches := c.RolesForSkills([]string{"SQL", "Excel", "Python", "Statistics", "Tableau"}, 0.5)

	require.NotEmpty(t, matches)
	for _, m := range matches {
		assert.GreaterOrEqual(t, m.SkillMatch, 0.5)
	}
	// Best match first
	for i := 1; i < len(matches); i++ {
		assert.GreaterOrEqual(t, matches[i-1].SkillMatch, matches[i].SkillMatch)
	}
}

func TestRolesForSkills_NoSkillsNoStrictMatches(t *testing.T) {
	c := Default()

	matches := c.RolesForSkills(nil, 0.3)

	assert.Empty(t, matches)
}

func TestCompareRoles(t *testing.T) {
	c := Default()

	cmp, err := c.CompareRoles("Data Analyst", "ML Engineer")

	require.NoError(t, err)
	assert.Equal(t, "Data Analyst", cmp.Original.Role)
	require.Len(t, cmp.Alternatives, 1)
	assert.Equal(t, "ML Engineer", cmp.Alternatives[0].Role)
	assert.Contains(t, cmp.Original.MarketSummary.SalaryRange, "LPA")
}

func TestCompareRoles_UnknownRole(t *testing.T) {
	c := Default()

	_, err := c.CompareRoles("Data Analyst", "Astronaut")

	var notFound *NotFoundError
	assert.ErrorAs(t, err, &notFound)
}
