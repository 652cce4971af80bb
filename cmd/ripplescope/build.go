package main

import (
	"fmt"
	"os"
	"time"

	"github.com/ripplescope/ripplescope/internal/orchestrator"
	"github.com/ripplescope/ripplescope/internal/output"
	"github.com/spf13/cobra"
)

var (
	buildDumpPath string
	buildDotPath  string
	buildMaxNodes int
)

var buildCmd = &cobra.Command{
	Use:   "build <path>",
	Short: "Discover, parse, and graph a repository",
	Long: `build walks the given repository, parses every recognized source file
with tree-sitter, and constructs the call/import/export graph.

Examples:
  ripplescope build ./myrepo
  ripplescope build ./myrepo --dump graph.json
  ripplescope build ./myrepo --dot graph.dot --max-nodes 200`,
	Args: cobra.ExactArgs(1),
	RunE: runBuild,
}

func init() {
	buildCmd.Flags().StringVar(&buildDumpPath, "dump", "", "write the JSON graph dump to this file")
	buildCmd.Flags().StringVar(&buildDotPath, "dot", "", "write a Graphviz DOT visualization to this file")
	buildCmd.Flags().IntVar(&buildMaxNodes, "max-nodes", output.DefaultMaxNodes, "cap on nodes rendered in the DOT output")
}

func runBuild(cmd *cobra.Command, args []string) error {
	started := time.Now()
	repoPath := args[0]

	fmt.Printf("🔍 ripplescope build\n")
	fmt.Printf("Repository: %s\n\n", repoPath)

	o := orchestrator.New()
	stats, err := o.BuildGraph(repoPath, false)
	if err != nil {
		return fmt.Errorf("build failed: %w", err)
	}

	fmt.Printf("✅ Build complete in %v\n\n", time.Since(started))
	fmt.Printf("📊 Statistics:\n")
	fmt.Printf("  Files:       %d discovered, %d parsed, %d failed\n", stats.FilesDiscovered, stats.FilesParsed, stats.FilesFailed)
	fmt.Printf("  Functions:   %d\n", stats.Functions)
	fmt.Printf("  Calls:       %d (%d unresolved)\n", stats.Calls, stats.UnresolvedCalls)
	fmt.Printf("  Imports:     %d\n", stats.Imports)
	fmt.Printf("  Exports:     %d\n", stats.Exports)
	fmt.Printf("  Edges:       %d\n", stats.Edges)
	fmt.Printf("  Collisions:  %d\n", stats.IDCollisions)

	if len(stats.Warnings) > 0 {
		fmt.Printf("\n⚠️  Warnings (%d):\n", len(stats.Warnings))
		for i, w := range stats.Warnings {
			if i >= 10 {
				fmt.Printf("  ... and %d more\n", len(stats.Warnings)-10)
				break
			}
			fmt.Printf("  - %s\n", w)
		}
	}

	if buildDumpPath != "" {
		if err := writeDump(o, buildDumpPath); err != nil {
			return err
		}
		fmt.Printf("\n📄 JSON graph dump written to %s\n", buildDumpPath)
	}
	if buildDotPath != "" {
		if err := writeDOT(o, buildDotPath, buildMaxNodes); err != nil {
			return err
		}
		fmt.Printf("🖼️  DOT visualization written to %s\n", buildDotPath)
	}

	return nil
}

func writeDump(o *orchestrator.Orchestrator, path string) error {
	data, err := o.DumpJSON()
	if err != nil {
		return fmt.Errorf("dump failed: %w", err)
	}
	return os.WriteFile(path, data, 0644)
}

func writeDOT(o *orchestrator.Orchestrator, path string, maxNodes int) error {
	data, err := o.DumpDOT(maxNodes)
	if err != nil {
		return fmt.Errorf("dot export failed: %w", err)
	}
	return os.WriteFile(path, data, 0644)
}
