package roadmap

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"strings"

	"github.com/jonathan/career-advisor/internal/llm"
	"github.com/jonathan/career-advisor/internal/prompts"
	"github.com/jonathan/career-advisor/internal/types"
)

// DefaultDurationWeeks is the planning horizon when the caller does
// not specify one.
const DefaultDurationWeeks = 12

// maxPromptSkills caps how many prioritized skills are offered to the
// step generator; maxSteps caps the generated learning steps (the
// portfolio project is added on top).
const (
	maxPromptSkills = 8
	maxSteps        = 6
)

// Generator builds learning roadmaps. Step text comes from the LLM
// when available; the structure, resources, and totals are
// deterministic, and a rule-based generator covers LLM failures.
type Generator struct {
	llm     llm.Client
	library *Library
}

// NewGenerator creates a Generator. A nil library uses the embedded
// one; a nil client makes every roadmap rule-based.
func NewGenerator(client llm.Client, library *Library) *Generator {
	if library == nil {
		library = DefaultLibrary()
	}
	return &Generator{llm: client, library: library}
}

// Generate builds the complete roadmap for a target role. Skill
// metadata defaults are conservative; use GenerateWithRequirements
// when the role's full must-have metadata is at hand.
func (g *Generator) Generate(ctx context.Context, targetRole string, profile *types.StudentProfile, analysis *types.MarketAnalysis, durationWeeks int) (*types.Roadmap, error) {
	if analysis == nil {
		return nil, fmt.Errorf("market analysis is required")
	}
	mustHave := make([]types.SkillRequirement, 0, len(analysis.RequiredSkills.MustHave))
	for _, name := range analysis.RequiredSkills.MustHave {
		mustHave = append(mustHave, types.SkillRequirement{Name: name, Frequency: 0.5, AvgLearningWeeks: 4})
	}
	return g.GenerateWithRequirements(ctx, targetRole, profile, analysis, mustHave, durationWeeks)
}

// GenerateWithRequirements is Generate with the role's full must-have
// metadata (posting frequency, learning weeks) instead of bare names.
func (g *Generator) GenerateWithRequirements(ctx context.Context, targetRole string, profile *types.StudentProfile, analysis *types.MarketAnalysis, mustHave []types.SkillRequirement, durationWeeks int) (*types.Roadmap, error) {
	if analysis == nil {
		return nil, fmt.Errorf("market analysis is required")
	}
	if durationWeeks <= 0 {
		durationWeeks = DefaultDurationWeeks
	}

	prioritized := PrioritizeSkills(analysis.MissingSkills, mustHave)

	var currentSkills []string
	if profile != nil {
		currentSkills = profile.AllSkills()
	}

	steps := g.generateSteps(ctx, targetRole, prioritized, currentSkills, durationWeeks, analysis)
	g.library.enrichSteps(steps)
	steps = g.addPortfolioProject(steps, targetRole, prioritized)

	totalWeeks := 0
	for _, step := range steps {
		totalWeeks += step.DurationWeeks
	}

	return &types.Roadmap{
		TargetRole:           targetRole,
		Steps:                steps,
		TotalDurationWeeks:   totalWeeks,
		TotalDurationMonths:  math.Round(float64(totalWeeks)/4*10) / 10,
		MarketAlignmentScore: marketAlignment(steps, analysis.RequiredSkills.MustHave),
		SkillsCovered:        len(prioritized),
	}, nil
}

// generateSteps asks the LLM for learning steps and falls back to the
// rule-based generator on any failure.
func (g *Generator) generateSteps(ctx context.Context, targetRole string, prioritized []types.PrioritizedSkill, currentSkills []string, durationWeeks int, analysis *types.MarketAnalysis) []types.Step {
	if g.llm == nil {
		return fallbackSteps(prioritized, durationWeeks)
	}

	promptSkills := prioritized
	if len(promptSkills) > maxPromptSkills {
		promptSkills = promptSkills[:maxPromptSkills]
	}

	var skillLines []string
	for i, s := range promptSkills {
		skillLines = append(skillLines, fmt.Sprintf("%d. %s (%d weeks)", i+1, s.Skill, s.LearningWeeks))
	}

	current := "None"
	if len(currentSkills) > 0 {
		current = strings.Join(currentSkills, ", ")
	}

	stepCount := len(promptSkills)
	if stepCount > maxSteps {
		stepCount = maxSteps
	}

	template := prompts.MustGet("roadmap.json", "generate-roadmap")
	prompt := prompts.Format(template, map[string]string{
		"TargetRole":      targetRole,
		"CurrentSkills":   current,
		"SkillsToLearn":   strings.Join(skillLines, "\n"),
		"DurationWeeks":   fmt.Sprintf("%d", durationWeeks),
		"ActiveJobs":      fmt.Sprintf("%d", analysis.ActiveJobs),
		"EntryBarrierPct": fmt.Sprintf("%.0f", analysis.EntryBarrier*100),
		"DemandScore":     fmt.Sprintf("%d", analysis.DemandScore),
		"StepCount":       fmt.Sprintf("%d", stepCount),
	})

	response, err := g.llm.GenerateJSON(ctx, prompt, llm.TierStandard)
	if err != nil {
		return fallbackSteps(prioritized, durationWeeks)
	}

	var parsed struct {
		Steps []types.Step `json:"steps"`
	}
	if err := json.Unmarshal([]byte(llm.CleanJSONBlock(response)), &parsed); err != nil || len(parsed.Steps) == 0 {
		return fallbackSteps(prioritized, durationWeeks)
	}
	return parsed.Steps
}

// fallbackSteps is the deterministic roadmap used when generation is
// unavailable: one step per prioritized skill, clipped to the duration
// budget.
func fallbackSteps(prioritized []types.PrioritizedSkill, durationWeeks int) []types.Step {
	var steps []types.Step
	weekCounter := 0

	limit := len(prioritized)
	if limit > maxSteps {
		limit = maxSteps
	}
	for i, skill := range prioritized[:limit] {
		weeks := skill.LearningWeeks
		if remaining := durationWeeks - weekCounter; weeks > remaining {
			weeks = remaining
		}
		if weeks <= 0 {
			break
		}

		steps = append(steps, types.Step{
			StepNumber:    i + 1,
			Title:         fmt.Sprintf("Learn %s", skill.Skill),
			Description:   fmt.Sprintf("Master %s through online courses and practice", skill.Skill),
			DurationWeeks: weeks,
			SuccessMetric: fmt.Sprintf("Complete %d practice exercises in %s", weeks*2, skill.Skill),
			WhyImportant:  "Required skill for target role",
			SkillsCovered: []string{skill.Skill},
		})
		weekCounter += weeks
	}
	return steps
}

// addPortfolioProject appends the capstone step, using a curated
// project idea for the role when one exists.
func (g *Generator) addPortfolioProject(steps []types.Step, targetRole string, prioritized []types.PrioritizedSkill) []types.Step {
	skillLimit := len(prioritized)
	if skillLimit > 5 {
		skillLimit = 5
	}
	covered := make([]string, 0, skillLimit)
	for _, s := range prioritized[:skillLimit] {
		covered = append(covered, s.Skill)
	}

	ideas := g.library.ProjectIdeas[targetRole]
	if len(ideas) > 0 {
		project := ideas[0]
		return append(steps, types.Step{
			StepNumber:    len(steps) + 1,
			Title:         fmt.Sprintf("Build Portfolio Project: %s", project.Title),
			Description:   project.Description,
			DurationWeeks: 2,
			SuccessMetric: "Complete project, deploy to GitHub, write documentation",
			WhyImportant:  "Portfolio projects are mentioned in 94% of job postings",
			SkillsCovered: covered,
			Resources: []types.Resource{
				{Title: "GitHub Repository Guide", URL: "https://guides.github.com/", Type: "documentation"},
			},
		})
	}

	return append(steps, types.Step{
		StepNumber:    len(steps) + 1,
		Title:         "Build Portfolio Project",
		Description:   fmt.Sprintf("Create a comprehensive %s project showcasing your skills", targetRole),
		DurationWeeks: 2,
		SuccessMetric: "Deploy project, add to GitHub, prepare case study",
		WhyImportant:  "Demonstrates practical skills to employers",
		SkillsCovered: covered,
	})
}

// marketAlignment is the fraction of the role's must-have skills the
// roadmap covers, compared case-insensitively. Roles with no declared
// must-have skills score a neutral 0.5.
func marketAlignment(steps []types.Step, mustHave []string) float64 {
	if len(mustHave) == 0 {
		return 0.5
	}

	covered := make(map[string]bool)
	for _, step := range steps {
		for _, skill := range step.SkillsCovered {
			covered[strings.ToLower(skill)] = true
		}
	}

	overlap := 0
	for _, name := range mustHave {
		if covered[strings.ToLower(name)] {
			overlap++
		}
	}
	return math.Round(float64(overlap)/float64(len(mustHave))*100) / 100
}
