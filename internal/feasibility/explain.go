package feasibility

import (
	"context"
	"fmt"
	"strings"

	"github.com/jonathan/career-advisor/internal/llm"
	"github.com/jonathan/career-advisor/internal/prompts"
	"github.com/jonathan/career-advisor/internal/types"
)

// explainChallenge generates the empathetic prose explanation for a
// non-feasible verdict. Falls back to a deterministic template when no
// client is configured or generation fails.
func (e *Evaluator) explainChallenge(ctx context.Context, desiredRole string, verdict types.Verdict, reasons []types.Reason, analysis *types.MarketAnalysis, profile *types.StudentProfile) string {
	fallback := fallbackExplanation(desiredRole, analysis)
	if e.llm == nil {
		return fallback
	}

	var reasonLines []string
	for _, r := range reasons {
		reasonLines = append(reasonLines, fmt.Sprintf("- %s: %s", r.Title, r.Explanation))
	}

	missing := analysis.MissingSkills
	if len(missing) > 5 {
		missing = missing[:5]
	}

	template := prompts.MustGet("feasibility.json", "explain-challenge")
	prompt := prompts.Format(template, map[string]string{
		"DesiredRole":        desiredRole,
		"Verdict":            string(verdict),
		"Reasons":            strings.Join(reasonLines, "\n"),
		"SkillMatchPct":      fmt.Sprintf("%.0f", analysis.SkillMatch*100),
		"MissingSkills":      strings.Join(missing, ", "),
		"ExperienceLevel":    string(profile.ExperienceLevel),
		"ActiveJobs":         fmt.Sprintf("%d", analysis.ActiveJobs),
		"EntryBarrierPct":    fmt.Sprintf("%.0f", analysis.EntryBarrier*100),
		"EstimatedTimeToJob": analysis.EstimatedTimeToJob,
	})

	explanation, err := e.llm.GenerateContent(ctx, prompt, llm.TierLite)
	if err != nil {
		return fallback
	}
	return strings.TrimSpace(explanation)
}

// fallbackExplanation is the deterministic explanation used when text
// generation is unavailable.
func fallbackExplanation(desiredRole string, analysis *types.MarketAnalysis) string {
	return fmt.Sprintf("While %s is an exciting career goal, the current job market "+
		"and skill requirements present significant challenges. With only %.0f%% "+
		"skill match and %d active positions, "+
		"there are more strategic paths to explore that align better with your current profile.",
		desiredRole, analysis.SkillMatch*100, analysis.ActiveJobs)
}
