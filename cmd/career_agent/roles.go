package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/career-advisor/internal/market"
	"github.com/jonathan/career-advisor/internal/types"
)

var rolesCmd = &cobra.Command{
	Use:   "roles",
	Short: "List the roles in the job market catalog",
	Long:  `Lists every role the advisor knows about with its market summary. Use --market-data to point at a custom dataset.`,
	RunE:  runRoles,
}

var (
	rolesMarketData string
	rolesTrending   int
	rolesCompare    []string
)

func init() {
	rolesCmd.Flags().StringVar(&rolesMarketData, "market-data", "", "Path to a custom job market dataset")
	rolesCmd.Flags().IntVar(&rolesTrending, "trending", 0, "Show only the N roles with the highest demand")
	rolesCmd.Flags().StringSliceVar(&rolesCompare, "compare", nil, "Compare two roles side by side (exactly two names)")
	rootCmd.AddCommand(rolesCmd)
}

func runRoles(_ *cobra.Command, _ []string) error {
	catalog := market.Default()
	if rolesMarketData != "" {
		data, err := os.ReadFile(rolesMarketData)
		if err != nil {
			return fmt.Errorf("failed to read market data: %w", err)
		}
		catalog, err = market.Load(data, nil)
		if err != nil {
			return err
		}
	}

	if len(rolesCompare) > 0 {
		if len(rolesCompare) != 2 {
			return fmt.Errorf("--compare requires exactly two role names")
		}
		comparison, err := catalog.CompareRoles(rolesCompare[0], rolesCompare[1])
		if err != nil {
			return err
		}
		printComparisonRow(comparison.Original.Role, comparison.Original.MarketSummary)
		for _, alt := range comparison.Alternatives {
			printComparisonRow(alt.Role, alt.MarketSummary)
		}
		return nil
	}

	if rolesTrending > 0 {
		for i, role := range catalog.TrendingRoles(rolesTrending) {
			fmt.Printf("%d. %-22s demand %d/100, %d jobs (%s)\n",
				i+1, role.Role, role.DemandScore, role.TotalJobs, role.Trend)
		}
		return nil
	}

	for _, name := range catalog.RoleNames() {
		rec := catalog.Record(name)
		summary := market.Summary(rec)
		fmt.Printf("%-22s %5d jobs, %-10s %s, barrier %.0f%%\n",
			name, summary.TotalJobs, summary.Trend, summary.SalaryRange, summary.EntryBarrier*100)
	}
	return nil
}

func printComparisonRow(role string, summary types.MarketSummary) {
	freshers := "no freshers"
	if summary.FreshersAccepted {
		freshers = "freshers accepted"
	}
	fmt.Printf("%-22s %5d jobs, %s (%.1f%% YoY), %s, barrier %.0f%%, %s\n",
		role, summary.TotalJobs, summary.Trend, summary.GrowthRate,
		summary.SalaryRange, summary.EntryBarrier*100, freshers)
}
