package graph

import (
	"fmt"
	"path/filepath"

	"github.com/ripplescope/ripplescope/internal/logging"
	"github.com/ripplescope/ripplescope/internal/treesitter"
)

// BuildStats accumulates the counters produced while assembling one graph,
// grounded on the Nodes/Edges accumulator shape used elsewhere in this
// codebase for build reporting.
type BuildStats struct {
	Files            int
	Functions        int
	Calls            int
	Imports          int
	Exports          int
	Edges            int
	IDCollisions     int
	UnresolvedCalls  int
	Warnings         []string
}

// Build runs the six-phase procedure from the component design over a set
// of parsed files and returns the resulting graph. Each phase processes all
// files before the next begins, matching file-discovery order throughout so
// the produced edge order is deterministic.
func Build(parsed []*treesitter.ParseResult) (*Graph, *BuildStats, error) {
	g := NewGraph()
	stats := &BuildStats{}

	// globalByName maps a bare function name to the first node ID registered
	// under that name. Used both as the fallback step of call resolution and
	// for import resolution. First-wins for every name, including exports —
	// the single collision policy chosen to replace the source's two
	// inconsistent ones (§9 open question 1).
	globalByName := make(map[string]string)

	// Phase 1: File nodes.
	for _, pf := range parsed {
		id := fileNodeID(pf.FilePath)
		if _, exists := g.Nodes[id]; exists {
			stats.IDCollisions++
			stats.Warnings = append(stats.Warnings, fmt.Sprintf("id_collision: file node %q already registered, keeping first", id))
			continue
		}
		g.addNode(&FileNode{StableID: id, Basename: filepath.Base(pf.FilePath), FilePath: pf.FilePath})
		stats.Files++
	}

	// Phase 2: Function nodes + Defines edges.
	for _, pf := range parsed {
		fileID := fileNodeID(pf.FilePath)
		for _, fn := range pf.Functions {
			id := functionNodeID(pf.FilePath, fn.Name)
			if _, exists := g.Nodes[id]; exists {
				stats.IDCollisions++
				stats.Warnings = append(stats.Warnings, fmt.Sprintf("id_collision: function node %q already defined, keeping first writer", id))
				continue
			}

			node := &FunctionNode{
				StableID:    id,
				DisplayName: fn.Name,
				FilePath:    fn.FilePath,
				StartLine:   fn.StartLine,
				EndLine:     fn.EndLine,
				Parameters:  fn.Parameters,
				IsExported:  fn.IsExported,
				IsAsync:     fn.IsAsync,
				Decorators:  fn.Decorators,
			}
			g.addNode(node)
			stats.Functions++

			if _, taken := globalByName[fn.Name]; !taken {
				globalByName[fn.Name] = id
			}

			g.addEdge(GraphEdge{
				EdgeID:         fmt.Sprintf("e%d", len(g.Edges)),
				SourceNodeID:   fileID,
				TargetNodeID:   id,
				Kind:           EdgeDefines,
				OccurrenceFile: pf.FilePath,
				OccurrenceLine: fn.StartLine,
			})
			stats.Edges++
		}
	}

	// Phase 3: Call edges.
	for _, pf := range parsed {
		fileID := fileNodeID(pf.FilePath)
		for _, call := range pf.Calls {
			sourceID := fileID
			if call.EnclosingFunction != "" {
				sourceID = functionNodeID(call.FilePath, call.EnclosingFunction)
				if _, ok := g.Nodes[sourceID]; !ok {
					sourceID = fileID
				}
			}

			targetID, ok := resolveCallee(g, globalByName, call.FilePath, call.CalleeName)
			if !ok {
				stats.UnresolvedCalls++
				continue
			}

			g.addEdge(GraphEdge{
				EdgeID:         fmt.Sprintf("e%d", len(g.Edges)),
				SourceNodeID:   sourceID,
				TargetNodeID:   targetID,
				Kind:           EdgeCalls,
				OccurrenceFile: call.FilePath,
				OccurrenceLine: call.Line,
			})
			stats.Edges++
			stats.Calls++
			if fn := g.Function(sourceID); fn != nil {
				fn.OutgoingCalls = append(fn.OutgoingCalls, targetID)
			}
		}
	}

	// Phase 4: Import edges.
	for _, pf := range parsed {
		fileID := fileNodeID(pf.FilePath)
		for _, imp := range pf.Imports {
			for _, name := range imp.ImportedNames {
				targetID, ok := globalByName[name]
				if !ok {
					continue
				}
				g.addEdge(GraphEdge{
					EdgeID:         fmt.Sprintf("e%d", len(g.Edges)),
					SourceNodeID:   fileID,
					TargetNodeID:   targetID,
					Kind:           EdgeImports,
					OccurrenceFile: pf.FilePath,
					OccurrenceLine: imp.Line,
					Context:        imp.SourceModule,
				})
				stats.Edges++
				stats.Imports++
				if fn := g.Function(targetID); fn != nil && fn.ImportedFrom == "" {
					fn.ImportedFrom = imp.SourceModule
				}
			}
		}
	}

	// Phase 5: Export edges.
	for _, pf := range parsed {
		fileID := fileNodeID(pf.FilePath)
		for _, exp := range pf.Exports {
			for _, name := range exp.ExportedNames {
				targetID := functionNodeID(pf.FilePath, name)
				if _, ok := g.Nodes[targetID]; !ok {
					continue
				}
				g.addEdge(GraphEdge{
					EdgeID:         fmt.Sprintf("e%d", len(g.Edges)),
					SourceNodeID:   fileID,
					TargetNodeID:   targetID,
					Kind:           EdgeExports,
					OccurrenceFile: pf.FilePath,
					OccurrenceLine: exp.Line,
				})
				stats.Edges++
				stats.Exports++
			}
		}
	}

	// Phase 6: Reverse relations.
	for _, e := range g.Edges {
		switch e.Kind {
		case EdgeCalls:
			if fn := g.Function(e.TargetNodeID); fn != nil {
				fn.IncomingCalls = append(fn.IncomingCalls, e.SourceNodeID)
			}
		case EdgeImports:
			if fn := g.Function(e.TargetNodeID); fn != nil {
				fn.FilesThatImportMe = append(fn.FilesThatImportMe, e.OccurrenceFile)
			}
		}
	}

	g.TotalFiles = stats.Files
	g.TotalFunctions = stats.Functions
	g.TotalCalls = stats.Calls
	g.TotalImports = stats.Imports

	if stats.IDCollisions > 0 {
		logging.Warn("graph build recorded id collisions", "count", stats.IDCollisions)
	}

	return g, stats, nil
}

// resolveCallee applies the three-step call-resolution policy: same-file
// match first, then the first-wins global function-name table, else drop.
func resolveCallee(g *Graph, globalByName map[string]string, callerFile, calleeName string) (string, bool) {
	sameFileID := functionNodeID(callerFile, calleeName)
	if _, ok := g.Nodes[sameFileID]; ok {
		return sameFileID, true
	}
	if id, ok := globalByName[calleeName]; ok {
		return id, true
	}
	return "", false
}
