package main

import (
	"encoding/json"
	"fmt"

	"github.com/ripplescope/ripplescope/internal/orchestrator"
	"github.com/spf13/cobra"
)

var reportCmd = &cobra.Command{
	Use:   "report <path> <name> <description>",
	Short: "Print the combined usages/impact/risk analysis as JSON",
	Args:  cobra.ExactArgs(3),
	RunE:  runReport,
}

func runReport(cmd *cobra.Command, args []string) error {
	repoPath, name, description := args[0], args[1], args[2]

	o := orchestrator.New()
	if _, err := o.BuildGraph(repoPath, false); err != nil {
		return fmt.Errorf("build failed: %w", err)
	}

	combined, err := o.GetCompleteAnalysis(name, description)
	if err != nil {
		return err
	}

	data, err := json.MarshalIndent(combined, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal report: %w", err)
	}
	fmt.Println(string(data))
	return nil
}
