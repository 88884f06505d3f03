package market

import (
	"fmt"
	"math"

	"github.com/jonathan/career-advisor/internal/types"
)

// Weeks added on top of remaining learning time for portfolio projects
// and interview practice.
const (
	projectBufferWeeks  = 2
	practiceBufferWeeks = 2
)

// skillGap is the intermediate result of matching student skills
// against a role's must-have list.
type skillGap struct {
	mustHave   []string
	niceToHave []string
	matched    []string // normalized must-have names the student covers
	missing    []string // declared must-have names not covered
	skillMatch float64  // rounded to 2 decimals
}

// Analyze produces the full market analysis for a target role and a
// student's skill list. Returns NotFoundError when the role cannot be
// resolved.
func (c *Catalog) Analyze(roleName string, studentSkills []string) (*types.MarketAnalysis, error) {
	_, rec, err := c.FindRole(roleName)
	if err != nil {
		return nil, err
	}

	gap := c.analyzeSkillGap(rec, studentSkills)
	barrierLabel := barrierLabel(rec.Requirements.EntryBarrier)

	return &types.MarketAnalysis{
		// The analysis echoes the requested name, not the resolved
		// catalog key, so fuzzy lookups stay transparent to callers.
		Role:        roleName,
		DemandScore: DemandScore(rec.Market.TotalJobs, rec.Market.Trend, rec.Market.GrowthRateYoY),
		ActiveJobs:  rec.Market.TotalJobs,
		Trend:       rec.Market.Trend,
		GrowthRate:  rec.Market.GrowthRateYoY,

		AvgSalaryRange: formatSalaryRange(rec.Salary.EntryLevel),
		EntrySalaryMin: rec.Salary.EntryLevel.Min,
		EntrySalaryMax: rec.Salary.EntryLevel.Max,

		EntryBarrier:      rec.Requirements.EntryBarrier,
		EntryBarrierLabel: barrierLabel,
		// Barrier and competition share one scale in the static dataset
		CompetitionLevel: barrierLabel,
		FreshersAccepted: rec.Requirements.FreshersAccepted,

		RequiredSkills: types.RequiredSkills{
			MustHave:   gap.mustHave,
			NiceToHave: gap.niceToHave,
		},
		SkillMatch:         gap.skillMatch,
		MatchedSkills:      gap.matched,
		MissingSkills:      gap.missing,
		MissingSkillsCount: len(gap.missing),

		EstimatedTimeToJob: estimateTimeToJob(gap.skillMatch, rec),
	}, nil
}

// analyzeSkillGap matches student skills against a role's must-have
// list. Matched entries carry normalized names; missing entries keep
// the names exactly as declared in the catalog.
func (c *Catalog) analyzeSkillGap(rec *types.RoleMarketRecord, studentSkills []string) skillGap {
	mustHave := rec.MustHaveNames()
	niceToHave := make([]string, 0, len(rec.Skills.NiceToHave))
	for _, s := range rec.Skills.NiceToHave {
		niceToHave = append(niceToHave, s.Name)
	}

	normalizedStudent := make([]string, 0, len(studentSkills))
	for _, s := range studentSkills {
		normalizedStudent = append(normalizedStudent, c.tax.Normalize(s))
	}

	var matched []string
	var missing []string
	for _, required := range mustHave {
		normalized := c.tax.Normalize(required)
		covered := false
		for _, student := range normalizedStudent {
			if c.tax.Match(normalized, student) {
				covered = true
				break
			}
		}
		if covered {
			matched = append(matched, normalized)
		} else {
			missing = append(missing, required)
		}
	}

	var skillMatch float64
	if len(mustHave) > 0 {
		skillMatch = round2(float64(len(matched)) / float64(len(mustHave)))
	}

	return skillGap{
		mustHave:   mustHave,
		niceToHave: niceToHave,
		matched:    matched,
		missing:    missing,
		skillMatch: skillMatch,
	}
}

// barrierLabel buckets a 0-1 entry barrier into a coarse label
func barrierLabel(barrier float64) string {
	switch {
	case barrier >= 0.8:
		return "very_high"
	case barrier >= 0.6:
		return "high"
	case barrier >= 0.4:
		return "medium"
	default:
		return "low"
	}
}

// formatSalaryRange renders an entry-level band for display. INR is
// shown in lakhs per annum, other currencies as raw amounts.
func formatSalaryRange(band types.SalaryBand) string {
	if band.Currency == "INR" || band.Currency == "" {
		minLPA := float64(band.Min) / 100000
		maxLPA := float64(band.Max) / 100000
		return fmt.Sprintf("₹%.1f-%.1f LPA", minLPA, maxLPA)
	}
	return fmt.Sprintf("%s %d-%d", band.Currency, band.Min, band.Max)
}

// estimateTimeToJob converts the remaining learning load into a rough
// months estimate. Unmatched must-have skills contribute their average
// learning weeks, discounted by the overall match ratio, plus a fixed
// buffer for projects and practice.
func estimateTimeToJob(skillMatch float64, rec *types.RoleMarketRecord) string {
	totalLearningWeeks := 0
	for _, s := range rec.Skills.MustHave {
		weeks := s.AvgLearningWeeks
		if weeks == 0 {
			weeks = 4
		}
		totalLearningWeeks += weeks
	}

	remaining := int(float64(totalLearningWeeks) * (1 - skillMatch))
	totalWeeks := remaining + projectBufferWeeks + practiceBufferWeeks

	switch {
	case totalWeeks <= 4:
		return "1 month"
	case totalWeeks <= 8:
		return "2 months"
	case totalWeeks <= 12:
		return "3 months"
	case totalWeeks <= 24:
		return fmt.Sprintf("%d months", totalWeeks/4)
	default:
		months := totalWeeks / 4
		return fmt.Sprintf("%d-%d months", months, months+3)
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
