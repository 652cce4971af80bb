package main

import (
	"fmt"

	"github.com/ripplescope/ripplescope/internal/orchestrator"
	"github.com/spf13/cobra"
)

var impactCmd = &cobra.Command{
	Use:   "impact <path> <name> <description>",
	Short: "Assess the change impact of modifying a function",
	Args:  cobra.ExactArgs(3),
	RunE:  runImpact,
}

func runImpact(cmd *cobra.Command, args []string) error {
	repoPath, name, description := args[0], args[1], args[2]

	o := orchestrator.New()
	if _, err := o.BuildGraph(repoPath, false); err != nil {
		return fmt.Errorf("build failed: %w", err)
	}

	report, ok, err := o.AssessChangeImpact(name, description)
	if err != nil {
		return err
	}
	if !ok {
		fmt.Printf("❓ no function named %q was indexed\n", name)
		return nil
	}

	fmt.Printf("🎯 change impact of %s\n\n", report.FunctionName)
	for _, m := range report.Modules {
		fmt.Printf("%-24s tier=%-13s usages=%-3d exports=%d imports=%d calls=%d tests=%d\n",
			m.ModuleName, m.Tier, m.TotalUsages, m.ExportCount, m.ImportCount, m.CallCount, m.TestCount)
		fmt.Printf("  %s\n", m.RiskSummary)
		fmt.Printf("  %s\n", m.ImpactSummary)
	}

	fmt.Printf("\nRisk score: %d (%s)\n", report.RiskScore, report.RiskLevel)
	fmt.Printf("Business impact: %s revenue/hr, %s, recovery %s\n",
		report.BusinessImpact.RevenuePerHourRange, report.BusinessImpact.AffectedUsers, report.BusinessImpact.RecoveryTimeRange)

	return nil
}
