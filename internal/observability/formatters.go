// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/jonathan/career-advisor/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	lines := strings.Split(content, "\n")
	for _, line := range lines {
		// Truncate long lines
		if len(line) > boxWidth-4 {
			line = line[:boxWidth-7] + "..."
		}
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, line)
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintMarketAnalysis outputs a human-readable summary of a role's market analysis.
func (p *Printer) PrintMarketAnalysis(analysis *types.MarketAnalysis) {
	if analysis == nil {
		return
	}

	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Role:     %s\n", analysis.Role))
	sb.WriteString(fmt.Sprintf("Demand:   %d/100 (%s)\n", analysis.DemandScore, analysis.Trend))
	sb.WriteString(fmt.Sprintf("Jobs:     %d active\n", analysis.ActiveJobs))
	sb.WriteString(fmt.Sprintf("Salary:   %s\n", analysis.AvgSalaryRange))
	sb.WriteString(fmt.Sprintf("Barrier:  %s\n", analysis.EntryBarrierLabel))
	sb.WriteString("\n")
	sb.WriteString(fmt.Sprintf("Skill match: %.0f%%\n", analysis.SkillMatch*100))

	if len(analysis.MissingSkills) > 0 {
		sb.WriteString("Missing skills:\n")
		count := min(len(analysis.MissingSkills), maxItemsToShow)
		for i := 0; i < count; i++ {
			sb.WriteString(fmt.Sprintf("  • %s\n", analysis.MissingSkills[i]))
		}
		if len(analysis.MissingSkills) > maxItemsToShow {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(analysis.MissingSkills)-maxItemsToShow))
		}
	}

	sb.WriteString(fmt.Sprintf("Time to job: %s", analysis.EstimatedTimeToJob))

	p.printBox("MARKET ANALYSIS", sb.String())
}

// PrintFeasibility outputs the feasibility verdict with its factor breakdown.
func (p *Printer) PrintFeasibility(result *types.FeasibilityResult) {
	if result == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Verdict:  %s\n", result.Verdict))
	sb.WriteString(fmt.Sprintf("Score:    %.2f\n", result.FeasibilityScore))
	sb.WriteString("\n")
	sb.WriteString("Factors:\n")
	sb.WriteString(fmt.Sprintf("  Skills:   %.2f\n", result.FactorScores.SkillMatch))
	sb.WriteString(fmt.Sprintf("  Market:   %.2f\n", result.FactorScores.MarketDemand))
	sb.WriteString(fmt.Sprintf("  Barrier:  %.2f\n", result.FactorScores.EntryBarrier))
	sb.WriteString(fmt.Sprintf("  Time:     %.2f\n", result.FactorScores.TimeToCompetency))

	if len(result.Reasons) > 0 {
		sb.WriteString("\nReasons:\n")
		count := min(len(result.Reasons), 3)
		for i := 0; i < count; i++ {
			reason := result.Reasons[i]
			sb.WriteString(fmt.Sprintf("⚠ %s (%s)\n", reason.Type, reason.Severity))
		}
		if len(result.Reasons) > 3 {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(result.Reasons)-3))
		}
	}

	p.printBox("FEASIBILITY", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintAlternatives outputs the ranked alternative roles with score breakdowns.
func (p *Printer) PrintAlternatives(recs *types.RerouteRecommendations) {
	if recs == nil || len(recs.Alternatives) == 0 {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Evaluated %d roles\n\n", recs.TotalEvaluated))

	count := min(len(recs.Alternatives), maxItemsToShow)
	for i := 0; i < count; i++ {
		alt := recs.Alternatives[i]
		sb.WriteString(fmt.Sprintf("#%d  %s\n", i+1, alt.Role))
		sb.WriteString(fmt.Sprintf("    Score: %.3f\n", alt.TotalScore))
		sb.WriteString(fmt.Sprintf("    Overlap %.2f | Demand %.2f | Entry %.2f\n",
			alt.Breakdown.SkillOverlap, alt.Breakdown.MarketDemand, alt.Breakdown.EaseOfEntry))
		if i < count-1 {
			sb.WriteString("\n")
		}
	}

	if len(recs.Alternatives) > maxItemsToShow {
		sb.WriteString(fmt.Sprintf("\n... and %d more roles", len(recs.Alternatives)-maxItemsToShow))
	}

	p.printBox("ALTERNATIVE PATHS", sb.String())
}

// PrintRoadmap outputs the learning roadmap steps with durations.
func (p *Printer) PrintRoadmap(roadmap *types.Roadmap) {
	if roadmap == nil || len(roadmap.Steps) == 0 {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Target:   %s\n", roadmap.TargetRole))
	sb.WriteString(fmt.Sprintf("Duration: %d weeks (%.1f months)\n", roadmap.TotalDurationWeeks, roadmap.TotalDurationMonths))
	sb.WriteString(fmt.Sprintf("Market alignment: %.0f%%\n\n", roadmap.MarketAlignmentScore*100))

	for i, step := range roadmap.Steps {
		title := step.Title
		if len(title) > 42 {
			title = title[:39] + "..."
		}
		sb.WriteString(fmt.Sprintf("%d. %s\n", step.StepNumber, title))
		sb.WriteString(fmt.Sprintf("   %d weeks", step.DurationWeeks))
		if len(step.SkillsCovered) > 0 {
			skills := strings.Join(step.SkillsCovered, ", ")
			if len(skills) > 35 {
				skills = skills[:32] + "..."
			}
			sb.WriteString(fmt.Sprintf(" [%s]", skills))
		}
		sb.WriteString("\n")
		if i < len(roadmap.Steps)-1 {
			sb.WriteString("\n")
		}
	}

	p.printBox("LEARNING ROADMAP", sb.String())
}

// PrintReevaluation outputs the result of a journey re-evaluation.
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) PrintReevaluation(result *types.ReevaluationResult) {
	if result == nil {
		return
	}

	if result.Action == types.ReevalActionContinue {
		fmt.Fprintf(p.out, "┌%s┐\n", strings.Repeat("─", boxWidth-2))
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, "✅ ON TRACK - KEEP GOING")
		fmt.Fprintf(p.out, "└%s┘\n", strings.Repeat("─", boxWidth-2))
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Action: %s\n\n", result.Action))

	for i, trigger := range result.Triggers {
		reason := trigger.Reason
		if len(reason) > 45 {
			reason = reason[:42] + "..."
		}
		sb.WriteString(fmt.Sprintf("⚠ %s (%s)\n", trigger.Type, trigger.Severity))
		sb.WriteString(fmt.Sprintf("  %s\n", reason))
		if i < len(result.Triggers)-1 {
			sb.WriteString("\n")
		}
	}

	if result.Recommendation != "" {
		sb.WriteString(fmt.Sprintf("\n%s", result.Recommendation))
	}

	p.printBox("PATH RE-EVALUATION", sb.String())
}

// PrintProgressSummary outputs a journey progress summary.
func (p *Printer) PrintProgressSummary(summary *types.ProgressSummary) {
	if summary == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Target:   %s\n", summary.TargetRole))
	sb.WriteString(fmt.Sprintf("Progress: %d/%d steps (%.1f%%)\n", summary.CompletedSteps, summary.TotalSteps, summary.ProgressPercentage))
	sb.WriteString(fmt.Sprintf("Hours:    %.1f spent / %.1f expected\n", summary.TotalHoursSpent, summary.ExpectedHours))
	sb.WriteString(fmt.Sprintf("Blockers: %d\n", summary.BlockerCount))
	sb.WriteString(fmt.Sprintf("Motivation: %.1f", summary.MotivationLevel))

	p.printBox("PROGRESS SUMMARY", sb.String())
}
