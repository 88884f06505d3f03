// Package types provides type definitions for structured data used throughout the career-advisor system.
//
//nolint:revive // types is a standard Go package name pattern
package types

// ExperienceLevel describes a student's overall experience level
type ExperienceLevel string

// Experience level constants
const (
	ExperienceBeginner     ExperienceLevel = "beginner"
	ExperienceIntermediate ExperienceLevel = "intermediate"
	ExperienceAdvanced     ExperienceLevel = "advanced"
)

// LearningCapacity describes how much time a student can dedicate to learning
type LearningCapacity string

// Learning capacity constants
const (
	CapacityLow    LearningCapacity = "low"
	CapacityMedium LearningCapacity = "medium"
	CapacityHigh   LearningCapacity = "high"
)

// SkillCategoryLearned is the synthetic category that receives skills
// picked up during a learning journey. It is appended to TechnicalSkills
// as the journey progresses.
const SkillCategoryLearned = "learned"

// StudentProfile is the normalized student profile produced by profile
// analysis. The scoring core only reads it, except that the progress
// engine appends newly learned skills under the "learned" category.
type StudentProfile struct {
	// TechnicalSkills maps a category (programming, web_development,
	// databases, data_science, devops, ai_ml, tools, other, learned)
	// to an ordered list of skill names.
	TechnicalSkills map[string][]string `json:"technical_skills"`
	// ProficiencyMap maps a skill name to its proficiency level
	// (beginner, intermediate, advanced).
	ProficiencyMap   map[string]string `json:"proficiency_map,omitempty"`
	ExperienceLevel  ExperienceLevel   `json:"experience_level"`
	LearningCapacity LearningCapacity  `json:"learning_capacity"`
	StrengthAreas    []string          `json:"strength_areas,omitempty"`
	WeaknessAreas    []string          `json:"weakness_areas,omitempty"`
}

// AllSkills returns a flattened list of every skill in the profile,
// across all categories. Order follows category iteration and is not
// guaranteed; callers that need determinism should sort.
func (p *StudentProfile) AllSkills() []string {
	var all []string
	for _, skills := range p.TechnicalSkills {
		all = append(all, skills...)
	}
	return all
}

// AddLearnedSkills appends skills to the synthetic "learned" category,
// skipping names already recorded there. This mutates the profile in
// place.
func (p *StudentProfile) AddLearnedSkills(skills []string) {
	if p.TechnicalSkills == nil {
		p.TechnicalSkills = make(map[string][]string)
	}
	seen := make(map[string]bool, len(p.TechnicalSkills[SkillCategoryLearned]))
	for _, s := range p.TechnicalSkills[SkillCategoryLearned] {
		seen[s] = true
	}
	for _, s := range skills {
		if !seen[s] {
			p.TechnicalSkills[SkillCategoryLearned] = append(p.TechnicalSkills[SkillCategoryLearned], s)
			seen[s] = true
		}
	}
}

// ExperienceBaseline maps an experience level to the entry-barrier
// baseline used by the barrier scoring formulas. Unknown levels fall
// back to the beginner baseline.
func (l ExperienceLevel) ExperienceBaseline() float64 {
	switch l {
	case ExperienceAdvanced:
		return 0.9
	case ExperienceIntermediate:
		return 0.5
	default:
		return 0.2
	}
}
