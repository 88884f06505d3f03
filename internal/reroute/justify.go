package reroute

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/jonathan/career-advisor/internal/llm"
	"github.com/jonathan/career-advisor/internal/prompts"
	"github.com/jonathan/career-advisor/internal/types"
)

// justifyAll fills in the Justification field for each alternative.
// Generation runs in parallel; any individual failure falls back to
// the deterministic template rather than failing the whole reroute.
func (r *Ranker) justifyAll(ctx context.Context, alternatives []types.Alternative, originalRole string, originalAnalysis *types.MarketAnalysis, profile *types.StudentProfile) error {
	if r.llm == nil {
		for i := range alternatives {
			alternatives[i].Justification = fallbackJustification(originalRole, &alternatives[i], originalAnalysis)
		}
		return nil
	}

	g, ctx := errgroup.WithContext(ctx)
	for i := range alternatives {
		g.Go(func() error {
			alt := &alternatives[i]
			text, err := r.generateJustification(ctx, originalRole, alt, originalAnalysis, profile)
			if err != nil {
				alt.Justification = fallbackJustification(originalRole, alt, originalAnalysis)
				return nil
			}
			alt.Justification = strings.TrimSpace(text)
			return nil
		})
	}
	return g.Wait()
}

func (r *Ranker) generateJustification(ctx context.Context, originalRole string, alt *types.Alternative, originalAnalysis *types.MarketAnalysis, profile *types.StudentProfile) (string, error) {
	var origJobs, origBarrier, origMatch float64
	if originalAnalysis != nil {
		origJobs = float64(originalAnalysis.ActiveJobs)
		origBarrier = originalAnalysis.EntryBarrier
		origMatch = originalAnalysis.SkillMatch
	}

	template := prompts.MustGet("reroute.json", "justify-alternative")
	prompt := prompts.Format(template, map[string]string{
		"AlternativeRole":       alt.Role,
		"OriginalRole":          originalRole,
		"OriginalJobs":          fmt.Sprintf("%.0f", origJobs),
		"OriginalBarrierPct":    fmt.Sprintf("%.0f", origBarrier*100),
		"OriginalMatchPct":      fmt.Sprintf("%.0f", origMatch*100),
		"AlternativeJobs":       fmt.Sprintf("%d", alt.Market.TotalJobs),
		"AlternativeBarrierPct": fmt.Sprintf("%.0f", alt.Market.EntryBarrier*100),
		"SkillOverlapPct":       fmt.Sprintf("%.0f", alt.Breakdown.SkillOverlap*100),
		"SalaryRange":           alt.Market.SalaryRange,
		"Trend":                 string(alt.Market.Trend),
		"ProgressionPct":        fmt.Sprintf("%.0f", alt.Breakdown.ProgressionPotential*100),
		"ExperienceLevel":       string(profile.ExperienceLevel),
		"StrengthAreas":         strings.Join(profile.StrengthAreas, ", "),
	})

	return r.llm.GenerateContent(ctx, prompt, llm.TierLite)
}

// fallbackJustification is the deterministic justification used when
// text generation is unavailable.
func fallbackJustification(originalRole string, alt *types.Alternative, originalAnalysis *types.MarketAnalysis) string {
	origJobs := 0
	origBarrier := 0.5
	if originalAnalysis != nil {
		origJobs = originalAnalysis.ActiveJobs
		origBarrier = originalAnalysis.EntryBarrier
	}

	var jobDiff float64
	if origJobs > 0 {
		jobDiff = float64(alt.Market.TotalJobs-origJobs) / float64(origJobs) * 100
	}
	direction := "fewer"
	if jobDiff > 0 {
		direction = "more"
	}

	text := fmt.Sprintf("%s offers %s active jobs (%.0f%% %s than %s), "+
		"with a lower entry barrier (%.0f%% vs %.0f%%). "+
		"You already have %.0f%% of required skills. ",
		alt.Role, formatThousands(alt.Market.TotalJobs), abs(jobDiff), direction, originalRole,
		alt.Market.EntryBarrier*100, origBarrier*100,
		alt.Breakdown.SkillOverlap*100)

	if alt.Breakdown.ProgressionPotential > 0.5 {
		text += fmt.Sprintf("This is a natural stepping stone to %s later.", originalRole)
	}
	return text
}

// formatThousands renders an int with comma separators (4200 -> "4,200")
func formatThousands(n int) string {
	s := fmt.Sprintf("%d", n)
	if n < 0 {
		s = s[1:]
	}
	var parts []string
	for len(s) > 3 {
		parts = append([]string{s[len(s)-3:]}, parts...)
		s = s[:len(s)-3]
	}
	parts = append([]string{s}, parts...)
	out := strings.Join(parts, ",")
	if n < 0 {
		return "-" + out
	}
	return out
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
