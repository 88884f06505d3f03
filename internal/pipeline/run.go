// Package pipeline provides the high-level orchestration for the career assessment process.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/jonathan/career-advisor/internal/db"
	"github.com/jonathan/career-advisor/internal/feasibility"
	"github.com/jonathan/career-advisor/internal/llm"
	"github.com/jonathan/career-advisor/internal/market"
	"github.com/jonathan/career-advisor/internal/observability"
	"github.com/jonathan/career-advisor/internal/reroute"
	"github.com/jonathan/career-advisor/internal/roadmap"
	"github.com/jonathan/career-advisor/internal/types"
)

// ProgressEvent represents a progress update during assessment execution
type ProgressEvent struct {
	Stage        string `json:"stage"`
	Message      string `json:"message"`
	AssessmentID string `json:"assessment_id,omitempty"`
	Content      any    `json:"content,omitempty"`
}

// ProgressCallback is called when assessment progress occurs
type ProgressCallback func(event ProgressEvent)

// RunOptions holds configuration for running an assessment
type RunOptions struct {
	Profile         *types.StudentProfile // Required: direct data injection
	DesiredRole     string
	DurationWeeks   int
	TopAlternatives int
	MarketDataPath  string // Optional custom dataset; embedded data otherwise
	ResourcesPath   string // Optional custom learning resource library
	APIKey          string
	Verbose         bool
	DatabaseURL     string
	OnProgress      ProgressCallback
}

// Path types attached to assessment results
const (
	PathDirect  = "direct"
	PathChoice  = "choice"
	PathReroute = "reroute"
)

// AlternativePath is a ranked alternative optionally carrying its own
// roadmap and full market analysis.
type AlternativePath struct {
	types.Alternative
	Roadmap    *types.Roadmap        `json:"roadmap,omitempty"`
	FullMarket *types.MarketAnalysis `json:"full_market_analysis,omitempty"`
}

// Result is the complete output of one assessment run
type Result struct {
	Status       string `json:"status"`
	AssessmentID string `json:"assessment_id,omitempty"`

	Verdict    types.Verdict `json:"verdict"`
	PathType   string        `json:"path_type"`
	TargetRole string        `json:"target_role"`

	Profile        *types.StudentProfile    `json:"profile"`
	MarketAnalysis *types.MarketAnalysis    `json:"market_analysis"`
	Feasibility    *types.FeasibilityResult `json:"feasibility"`

	// Roadmap is the direct-path roadmap (FEASIBLE and CHALLENGING).
	Roadmap *types.Roadmap `json:"roadmap,omitempty"`
	// DirectPathWarning carries the effort warning on CHALLENGING paths.
	DirectPathWarning string `json:"direct_path_warning,omitempty"`

	Alternatives []AlternativePath `json:"alternative_paths,omitempty"`
	Message      string            `json:"message"`
}

// emitProgress calls the progress callback if configured
func emitProgress(opts *RunOptions, stage, message string, content any) {
	if opts.OnProgress != nil {
		opts.OnProgress(ProgressEvent{
			Stage:   stage,
			Message: message,
			Content: content,
		})
	}
}

// Run orchestrates the full career assessment: market analysis,
// feasibility evaluation, then a roadmap or alternative search
// depending on the verdict.
func Run(ctx context.Context, opts RunOptions) (*Result, error) {
	if opts.Profile == nil {
		return nil, errors.New("student profile is required")
	}
	if opts.DesiredRole == "" {
		return nil, errors.New("desired role is required")
	}
	if opts.DurationWeeks <= 0 {
		opts.DurationWeeks = roadmap.DefaultDurationWeeks
	}
	if opts.TopAlternatives <= 0 {
		opts.TopAlternatives = 3
	}

	printer := observability.NewPrinter(os.Stdout)

	catalog := market.Default()
	if opts.MarketDataPath != "" {
		data, err := os.ReadFile(opts.MarketDataPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read market data: %w", err)
		}
		catalog, err = market.Load(data, nil)
		if err != nil {
			return nil, err
		}
	}

	var client llm.Client
	if opts.APIKey != "" {
		c, err := llm.NewClient(ctx, nil, opts.APIKey)
		if err != nil {
			fmt.Printf("Warning: Failed to initialize LLM client: %v\n", err)
			fmt.Printf("Continuing with deterministic generation...\n")
		} else {
			client = c
			defer client.Close()
		}
	}

	var library *roadmap.Library
	if opts.ResourcesPath != "" {
		data, err := os.ReadFile(opts.ResourcesPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read resource library: %w", err)
		}
		library, err = roadmap.LoadLibrary(data)
		if err != nil {
			return nil, err
		}
	}

	evaluator := feasibility.NewEvaluator(client)
	ranker := reroute.NewRanker(client, catalog, nil)
	generator := roadmap.NewGenerator(client, library)

	// Initialize database connection if configured
	var database *db.DB
	var assessmentID uuid.UUID
	if opts.DatabaseURL != "" {
		var err error
		database, err = db.Connect(ctx, opts.DatabaseURL)
		if err != nil {
			fmt.Printf("Warning: Failed to connect to database: %v\n", err)
			fmt.Printf("Continuing without database persistence...\n")
		} else {
			defer database.Close()
			if err := database.EnsureSchema(ctx); err != nil {
				fmt.Printf("Warning: Failed to ensure database schema: %v\n", err)
			}
			if assessmentID, err = database.CreateAssessment(ctx, opts.DesiredRole); err != nil {
				fmt.Printf("Warning: Failed to create assessment record: %v\n", err)
			}
		}
	}

	fmt.Printf("Step 1/3: Analyzing market for %s...\n", opts.DesiredRole)
	analysis, err := catalog.Analyze(opts.DesiredRole, opts.Profile.AllSkills())
	if err != nil {
		if database != nil && assessmentID != uuid.Nil {
			_ = database.FailAssessment(ctx, assessmentID)
		}
		return nil, err
	}
	if opts.Verbose {
		printer.PrintMarketAnalysis(analysis)
	}
	emitProgress(&opts, db.StageMarketAnalysis,
		fmt.Sprintf("Analyzed market for %s: demand %d/100", analysis.Role, analysis.DemandScore), analysis)
	if database != nil && assessmentID != uuid.Nil {
		_ = database.SaveArtifact(ctx, assessmentID, db.StageProfile, opts.Profile)
		_ = database.SaveArtifact(ctx, assessmentID, db.StageMarketAnalysis, analysis)
	}

	fmt.Printf("Step 2/3: Evaluating feasibility...\n")
	feas, err := evaluator.Evaluate(ctx, opts.Profile, analysis, opts.DesiredRole)
	if err != nil {
		if database != nil && assessmentID != uuid.Nil {
			_ = database.FailAssessment(ctx, assessmentID)
		}
		return nil, fmt.Errorf("feasibility evaluation failed: %w", err)
	}
	if opts.Verbose {
		printer.PrintFeasibility(feas)
	}
	emitProgress(&opts, db.StageFeasibility,
		fmt.Sprintf("Verdict: %s (score %.2f)", feas.Verdict, feas.FeasibilityScore), feas)
	if database != nil && assessmentID != uuid.Nil {
		_ = database.SaveArtifact(ctx, assessmentID, db.StageFeasibility, feas)
	}

	result := &Result{
		Status:         "success",
		Verdict:        feas.Verdict,
		TargetRole:     opts.DesiredRole,
		Profile:        opts.Profile,
		MarketAnalysis: analysis,
		Feasibility:    feas,
	}
	if assessmentID != uuid.Nil {
		result.AssessmentID = assessmentID.String()
	}

	fmt.Printf("Step 3/3: Building guidance for verdict %s...\n", feas.Verdict)
	switch feas.Verdict {
	case types.VerdictFeasible:
		err = runFeasiblePath(ctx, &opts, catalog, generator, analysis, printer, result)
	case types.VerdictChallenging:
		err = runChallengingPath(ctx, &opts, catalog, generator, ranker, analysis, feas, printer, result)
	default:
		err = runReroutePath(ctx, &opts, catalog, generator, ranker, analysis, printer, result)
	}
	if err != nil {
		if database != nil && assessmentID != uuid.Nil {
			_ = database.FailAssessment(ctx, assessmentID)
		}
		return nil, err
	}

	if database != nil && assessmentID != uuid.Nil {
		if result.Roadmap != nil {
			_ = database.SaveArtifact(ctx, assessmentID, db.StageRoadmap, result.Roadmap)
		}
		if len(result.Alternatives) > 0 {
			_ = database.SaveArtifact(ctx, assessmentID, db.StageAlternatives, result.Alternatives)
		}
		_ = database.CompleteAssessment(ctx, assessmentID, string(feas.Verdict), feas.FeasibilityScore)
	}

	return result, nil
}

// runFeasiblePath generates the direct roadmap for a feasible goal
func runFeasiblePath(ctx context.Context, opts *RunOptions, catalog *market.Catalog, generator *roadmap.Generator, analysis *types.MarketAnalysis, printer *observability.Printer, result *Result) error {
	rm, err := generateRoadmap(ctx, opts, catalog, generator, opts.DesiredRole, analysis, opts.DurationWeeks)
	if err != nil {
		return err
	}
	if opts.Verbose {
		printer.PrintRoadmap(rm)
	}
	emitProgress(opts, db.StageRoadmap,
		fmt.Sprintf("Generated %d-step roadmap", len(rm.Steps)), rm)

	result.PathType = PathDirect
	result.Roadmap = rm
	result.Message = fmt.Sprintf("Great news! %s is a realistic goal for you. Here's your personalized roadmap.", opts.DesiredRole)
	return nil
}

// runChallengingPath generates the direct roadmap plus easier
// alternatives so the student can choose.
func runChallengingPath(ctx context.Context, opts *RunOptions, catalog *market.Catalog, generator *roadmap.Generator, ranker *reroute.Ranker, analysis *types.MarketAnalysis, feas *types.FeasibilityResult, printer *observability.Printer, result *Result) error {
	direct, err := generateRoadmap(ctx, opts, catalog, generator, opts.DesiredRole, analysis, opts.DurationWeeks)
	if err != nil {
		return err
	}

	recs, err := ranker.FindAlternatives(ctx, opts.Profile, opts.DesiredRole, analysis, opts.TopAlternatives)
	if err != nil {
		return fmt.Errorf("alternative search failed: %w", err)
	}
	if opts.Verbose {
		printer.PrintAlternatives(recs)
	}
	emitProgress(opts, db.StageAlternatives,
		fmt.Sprintf("Found %d alternative paths", len(recs.Alternatives)), recs)

	alternatives := wrapAlternatives(recs.Alternatives)
	// Roadmap for the top alternative on a shorter timeline
	if len(alternatives) > 0 {
		if err := attachAlternativeRoadmaps(ctx, opts, catalog, generator, alternatives[:1], opts.DurationWeeks/2); err != nil {
			return err
		}
	}

	result.PathType = PathChoice
	result.Roadmap = direct
	result.DirectPathWarning = feas.Recommendation
	result.Alternatives = alternatives
	result.Message = fmt.Sprintf("%s is achievable but challenging. Consider these options:", opts.DesiredRole)
	return nil
}

// runReroutePath finds alternatives for an infeasible goal and
// attaches roadmaps to the top two.
func runReroutePath(ctx context.Context, opts *RunOptions, catalog *market.Catalog, generator *roadmap.Generator, ranker *reroute.Ranker, analysis *types.MarketAnalysis, printer *observability.Printer, result *Result) error {
	recs, err := ranker.FindAlternatives(ctx, opts.Profile, opts.DesiredRole, analysis, opts.TopAlternatives)
	if err != nil {
		return fmt.Errorf("alternative search failed: %w", err)
	}
	if opts.Verbose {
		printer.PrintAlternatives(recs)
	}
	emitProgress(opts, db.StageAlternatives,
		fmt.Sprintf("Found %d alternative paths", len(recs.Alternatives)), recs)

	alternatives := wrapAlternatives(recs.Alternatives)
	withRoadmaps := alternatives
	if len(withRoadmaps) > 2 {
		withRoadmaps = withRoadmaps[:2]
	}
	if err := attachAlternativeRoadmaps(ctx, opts, catalog, generator, withRoadmaps, opts.DurationWeeks); err != nil {
		return err
	}

	result.PathType = PathReroute
	result.Alternatives = alternatives
	result.Message = fmt.Sprintf("Based on current market conditions and your profile, consider these strategic alternatives to %s:", opts.DesiredRole)
	return nil
}

// generateRoadmap builds a roadmap for a role using the role's full
// must-have skill metadata when the catalog has it.
func generateRoadmap(ctx context.Context, opts *RunOptions, catalog *market.Catalog, generator *roadmap.Generator, role string, analysis *types.MarketAnalysis, durationWeeks int) (*types.Roadmap, error) {
	if _, rec, err := catalog.FindRole(role); err == nil {
		return generator.GenerateWithRequirements(ctx, role, opts.Profile, analysis, rec.Skills.MustHave, durationWeeks)
	}
	return generator.Generate(ctx, role, opts.Profile, analysis, durationWeeks)
}

// attachAlternativeRoadmaps fills in a fresh market analysis and a
// roadmap for each given alternative. The alternatives are
// independent, so they are generated concurrently.
func attachAlternativeRoadmaps(ctx context.Context, opts *RunOptions, catalog *market.Catalog, generator *roadmap.Generator, alternatives []AlternativePath, durationWeeks int) error {
	g, gCtx := errgroup.WithContext(ctx)
	for i := range alternatives {
		alt := &alternatives[i]
		g.Go(func() error {
			altAnalysis, err := catalog.Analyze(alt.Role, opts.Profile.AllSkills())
			if err != nil {
				return fmt.Errorf("market analysis for alternative %s failed: %w", alt.Role, err)
			}
			rm, err := generateRoadmap(gCtx, opts, catalog, generator, alt.Role, altAnalysis, durationWeeks)
			if err != nil {
				return fmt.Errorf("roadmap for alternative %s failed: %w", alt.Role, err)
			}
			alt.FullMarket = altAnalysis
			alt.Roadmap = rm
			return nil
		})
	}
	return g.Wait()
}

func wrapAlternatives(alternatives []types.Alternative) []AlternativePath {
	wrapped := make([]AlternativePath, 0, len(alternatives))
	for _, alt := range alternatives {
		wrapped = append(wrapped, AlternativePath{Alternative: alt})
	}
	return wrapped
}
