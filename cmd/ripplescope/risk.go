package main

import (
	"fmt"

	"github.com/ripplescope/ripplescope/internal/orchestrator"
	"github.com/spf13/cobra"
)

var riskCmd = &cobra.Command{
	Use:   "risk <path> <name> <change-type>",
	Short: "Report fixed failure-mode probabilities for a change",
	Args:  cobra.ExactArgs(3),
	RunE:  runRisk,
}

func runRisk(cmd *cobra.Command, args []string) error {
	repoPath, name, changeType := args[0], args[1], args[2]

	o := orchestrator.New()
	if _, err := o.BuildGraph(repoPath, false); err != nil {
		return fmt.Errorf("build failed: %w", err)
	}

	report, err := o.FailureModes(name, changeType)
	if err != nil {
		return err
	}

	fmt.Printf("⚠️  failure modes for %s (%s change)\n\n", report.FunctionName, report.ChangeType)
	for _, m := range report.FailureModes {
		fmt.Printf("%-22s tier=%-8s p=%5.1f%%  recovery: %s\n", m.Name, m.Tier, m.Probability, m.RecoveryEstimate)
		fmt.Printf("  %s\n", m.ImpactDescription)
	}

	fmt.Printf("\nMitigations:\n")
	for _, m := range report.Mitigations {
		fmt.Printf("  - %s\n", m)
	}

	fmt.Printf("\nOverall success rate: %.1f%%\n", report.SuccessRate)
	return nil
}
