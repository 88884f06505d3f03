package roadmap

import (
	"fmt"

	"github.com/jonathan/career-advisor/internal/types"
)

// QuickWins surfaces up to three easy missing skills as a mini
// roadmap, two weeks each. Meant to build momentum before the full
// plan starts.
func QuickWins(missingSkills []string) []types.QuickWin {
	var wins []types.QuickWin
	for _, skill := range missingSkills {
		if EstimateDifficulty(skill) >= 0.5 {
			continue
		}
		wins = append(wins, types.QuickWin{
			StepNumber:    len(wins) + 1,
			Title:         fmt.Sprintf("Quick Win: Learn %s", skill),
			DurationWeeks: 2,
			Difficulty:    "easy",
			Impact:        "immediate",
		})
		if len(wins) == 3 {
			break
		}
	}
	return wins
}
