package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/career-advisor/internal/config"
	"github.com/jonathan/career-advisor/internal/pipeline"
	"github.com/jonathan/career-advisor/internal/types"
)

var assessCommand = &cobra.Command{
	Use:   "assess",
	Short: "Run a full career assessment for a desired role",
	Long: `Analyzes the job market for the desired role, evaluates feasibility
against the student profile, and produces either a direct learning roadmap
or ranked alternative career paths.

Configuration can be loaded from a JSON file using --config. Command-line
arguments override config file values.`,
	RunE: runAssessCmd,
}

var (
	assessConfigPath  string
	assessProfile     string
	assessRole        string
	assessDuration    int
	assessTopN        int
	assessMarketData  string
	assessResources   string
	assessOutput      string
	assessAPIKey      string
	assessVerbose     bool
	assessDatabaseURL string
)

func init() {
	// Config file flag (processed first)
	assessCommand.Flags().StringVar(&assessConfigPath, "config", "", "Path to config.json file (values can be overridden by other flags)")

	assessCommand.Flags().StringVarP(&assessProfile, "profile", "p", "", "Path to student profile JSON file")
	assessCommand.Flags().StringVarP(&assessRole, "role", "r", "", "Desired role to assess")
	assessCommand.Flags().IntVar(&assessDuration, "duration-weeks", 0, "Roadmap planning horizon in weeks")
	assessCommand.Flags().IntVar(&assessTopN, "top-alternatives", 0, "How many alternative roles to recommend")
	assessCommand.Flags().StringVar(&assessMarketData, "market-data", "", "Path to a custom job market dataset")
	assessCommand.Flags().StringVar(&assessResources, "resources", "", "Path to a custom learning resource library")
	assessCommand.Flags().StringVarP(&assessOutput, "output", "o", "", "Path to write the assessment result JSON to (default stdout)")
	assessCommand.Flags().BoolVarP(&assessVerbose, "verbose", "v", false, "Print detailed debug information")

	// API key can be passed as a flag, or read from env var GEMINI_API_KEY
	assessCommand.Flags().StringVar(&assessAPIKey, "api-key", "", "Gemini API Key (optional, defaults to GEMINI_API_KEY env var)")

	// Database URL for assessment persistence
	assessCommand.Flags().StringVar(&assessDatabaseURL, "db-url", "", "PostgreSQL connection URL (optional, defaults to DATABASE_URL env var)")

	rootCmd.AddCommand(assessCommand)
}

func runAssessCmd(cmd *cobra.Command, _ []string) error {
	ctx := context.Background()

	// Step 1: Load config file if provided
	var cfg config.Config
	if assessConfigPath != "" {
		loadedCfg, err := config.LoadConfig(assessConfigPath)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		if err := loadedCfg.Validate(); err != nil {
			return err
		}

		cfg = *loadedCfg
		if assessVerbose {
			_, _ = fmt.Fprintf(os.Stdout, "Loaded config from: %s\n", assessConfigPath)
		}
	}

	// Step 2: Apply CLI overrides (command-line args take priority)
	if cmd.Flags().Changed("profile") {
		cfg.Profile = assessProfile
	}
	if cmd.Flags().Changed("role") {
		cfg.DesiredRole = assessRole
	}
	if cmd.Flags().Changed("duration-weeks") {
		cfg.DurationWeeks = assessDuration
	}
	if cmd.Flags().Changed("top-alternatives") {
		cfg.TopAlternatives = assessTopN
	}
	if cmd.Flags().Changed("market-data") {
		cfg.MarketData = assessMarketData
	}
	if cmd.Flags().Changed("resources") {
		cfg.Resources = assessResources
	}
	if cmd.Flags().Changed("output") {
		cfg.Output = assessOutput
	}
	if cmd.Flags().Changed("api-key") {
		cfg.APIKey = assessAPIKey
	}
	if cmd.Flags().Changed("verbose") {
		cfg.Verbose = assessVerbose
	}
	if cmd.Flags().Changed("db-url") {
		cfg.DatabaseURL = assessDatabaseURL
	}

	// Step 3: Apply defaults for unset values
	cfg = cfg.MergeWithDefaults(config.Config{
		DurationWeeks: 12,
	})

	// Step 4: Validate required fields
	if cfg.Profile == "" {
		return fmt.Errorf("--profile is required (via flag or config)")
	}
	if cfg.DesiredRole == "" {
		return fmt.Errorf("--role is required (via flag or config)")
	}

	// Step 5: API key and database URL fall back to the environment.
	// Both are optional; assessments degrade to deterministic prose and
	// skip persistence.
	if cfg.APIKey == "" {
		cfg.APIKey = os.Getenv("GEMINI_API_KEY")
	}
	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	}

	profile, err := loadProfile(cfg.Profile)
	if err != nil {
		return err
	}

	result, err := pipeline.Run(ctx, pipeline.RunOptions{
		Profile:         profile,
		DesiredRole:     cfg.DesiredRole,
		DurationWeeks:   cfg.DurationWeeks,
		TopAlternatives: cfg.TopAlternatives,
		MarketDataPath:  cfg.MarketData,
		ResourcesPath:   cfg.Resources,
		APIKey:          cfg.APIKey,
		Verbose:         cfg.Verbose,
		DatabaseURL:     cfg.DatabaseURL,
	})
	if err != nil {
		return err
	}

	return writeResult(cfg.Output, result)
}

// loadProfile reads a student profile from a JSON file
func loadProfile(path string) (*types.StudentProfile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read profile file %s: %w", path, err)
	}

	var profile types.StudentProfile
	if err := json.Unmarshal(data, &profile); err != nil {
		return nil, fmt.Errorf("failed to parse profile JSON: %w", err)
	}
	if len(profile.TechnicalSkills) == 0 {
		return nil, fmt.Errorf("profile has no technical skills")
	}
	if profile.ExperienceLevel == "" {
		profile.ExperienceLevel = types.ExperienceBeginner
	}
	if profile.LearningCapacity == "" {
		profile.LearningCapacity = types.CapacityMedium
	}

	return &profile, nil
}

// writeResult writes the assessment result as indented JSON to the
// output path, or to stdout when no path is configured.
func writeResult(path string, result *pipeline.Result) error {
	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode result: %w", err)
	}

	if path == "" {
		_, err = fmt.Fprintln(os.Stdout, string(data))
		return err
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write result to %s: %w", path, err)
	}
	fmt.Printf("Assessment written to %s\n", path)
	return nil
}
