package main

import (
	"fmt"

	"github.com/ripplescope/ripplescope/internal/orchestrator"
	"github.com/spf13/cobra"
)

var usagesCmd = &cobra.Command{
	Use:   "usages <path> <name>",
	Short: "Report every usage site of a function",
	Args:  cobra.ExactArgs(2),
	RunE:  runUsages,
}

func runUsages(cmd *cobra.Command, args []string) error {
	repoPath, name := args[0], args[1]

	o := orchestrator.New()
	if _, err := o.BuildGraph(repoPath, false); err != nil {
		return fmt.Errorf("build failed: %w", err)
	}

	report, ok, err := o.FindUsages(name)
	if err != nil {
		return err
	}
	if !ok {
		fmt.Printf("❓ no function named %q was indexed\n", name)
		return nil
	}

	fmt.Printf("📍 usages of %s (%s)\n\n", report.FunctionName, report.NodeID)
	if report.Definition != nil {
		fmt.Printf("Definition: %s:%d\n", report.Definition.FilePath, report.Definition.Line)
	}
	fmt.Printf("Exports:    %d\n", len(report.Exports))
	fmt.Printf("Imports:    %d\n", len(report.Imports))
	fmt.Printf("Calls:      %d\n", len(report.Calls))
	fmt.Printf("Tests:      %d\n", len(report.Tests))
	fmt.Printf("Total:      %d across %d files\n", report.TotalCount, report.DistinctFilesAffected)

	return nil
}
