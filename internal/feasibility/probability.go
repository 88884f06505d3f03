package feasibility

import (
	"math"

	"github.com/jonathan/career-advisor/internal/types"
)

// experienceFactor discounts success probability for less experienced
// students.
func experienceFactor(level types.ExperienceLevel) float64 {
	switch level {
	case types.ExperienceAdvanced:
		return 1.0
	case types.ExperienceIntermediate:
		return 0.85
	default:
		return 0.7
	}
}

// SuccessProbability estimates the probability (0-1) that the student
// lands the analyzed role. The entry barrier is half-weighted so a
// hard-to-enter role dampens rather than zeroes the estimate.
func SuccessProbability(profile *types.StudentProfile, analysis *types.MarketAnalysis) float64 {
	demand := float64(analysis.DemandScore) / 100.0
	p := analysis.SkillMatch * demand * (1 - analysis.EntryBarrier*0.5) * experienceFactor(profile.ExperienceLevel)
	return math.Round(p*100) / 100
}
