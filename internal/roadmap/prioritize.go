// Package roadmap builds actionable, market-aligned learning plans
// for a target role.
package roadmap

import (
	"sort"
	"strings"

	"github.com/jonathan/career-advisor/internal/types"
)

// Priority weights: high-demand, low-difficulty skills come first so
// students see progress early.
const (
	priorityDemandWeight     = 0.7
	priorityDifficultyWeight = 0.3
)

// PrioritizeSkills orders missing skills by learning priority. Skill
// metadata (posting frequency, learning weeks) comes from the role's
// must-have list; skills without metadata get conservative defaults.
func PrioritizeSkills(missingSkills []string, mustHave []types.SkillRequirement) []types.PrioritizedSkill {
	byName := make(map[string]types.SkillRequirement, len(mustHave))
	for _, req := range mustHave {
		byName[req.Name] = req
	}

	prioritized := make([]types.PrioritizedSkill, 0, len(missingSkills))
	for _, skill := range missingSkills {
		demand := 0.3
		learningWeeks := 4
		if req, ok := byName[skill]; ok {
			demand = req.Frequency
			if demand == 0 {
				demand = 0.5
			}
			if req.AvgLearningWeeks > 0 {
				learningWeeks = req.AvgLearningWeeks
			}
		}

		difficulty := EstimateDifficulty(skill)
		prioritized = append(prioritized, types.PrioritizedSkill{
			Skill:         skill,
			Demand:        demand,
			Difficulty:    difficulty,
			LearningWeeks: learningWeeks,
			PriorityScore: demand*priorityDemandWeight + (1-difficulty)*priorityDifficultyWeight,
		})
	}

	sort.SliceStable(prioritized, func(i, j int) bool {
		return prioritized[i].PriorityScore > prioritized[j].PriorityScore
	})
	return prioritized
}

// Difficulty buckets keyed by substring match on the skill name
var (
	hardSkills = []string{"machine learning", "deep learning", "system design",
		"algorithms", "data structures", "cloud architecture"}
	mediumSkills = []string{"python", "java", "react", "node.js", "statistics"}
	easySkills   = []string{"git", "excel", "html", "css", "sql basics"}
)

// EstimateDifficulty buckets a skill into a 0-1 difficulty estimate
func EstimateDifficulty(skill string) float64 {
	lower := strings.ToLower(skill)
	for _, hard := range hardSkills {
		if strings.Contains(lower, hard) {
			return 0.9
		}
	}
	for _, medium := range mediumSkills {
		if strings.Contains(lower, medium) {
			return 0.6
		}
	}
	for _, easy := range easySkills {
		if strings.Contains(lower, easy) {
			return 0.3
		}
	}
	return 0.5
}
