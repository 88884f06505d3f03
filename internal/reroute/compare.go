package reroute

import (
	"github.com/jonathan/career-advisor/internal/market"
	"github.com/jonathan/career-advisor/internal/types"
)

// ComparisonTable builds a side-by-side view of the original goal
// against up to three recommended alternatives.
func (r *Ranker) ComparisonTable(originalRole string, alternatives []types.Alternative) (*types.RoleComparison, error) {
	_, origRec, err := r.catalog.FindRole(originalRole)
	if err != nil {
		return nil, err
	}

	comparison := &types.RoleComparison{
		Original: types.ComparisonEntry{
			Role:          originalRole,
			MarketSummary: market.Summary(origRec),
		},
	}

	limit := len(alternatives)
	if limit > 3 {
		limit = 3
	}
	for _, alt := range alternatives[:limit] {
		comparison.Alternatives = append(comparison.Alternatives, types.ComparisonEntry{
			Role:          alt.Role,
			TotalScore:    alt.TotalScore,
			MarketSummary: alt.Market,
		})
	}
	return comparison, nil
}
