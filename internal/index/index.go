// Package index constructs the lookup tables the rest of the pipeline
// queries against: the master usage table plus the four supporting indexes
// named in the data model. Built once per graph, from a completed graph.
package index

import (
	"strings"

	"github.com/ripplescope/ripplescope/internal/graph"
)

// UsageKind tags the nature of a usage site.
type UsageKind string

const (
	Definition UsageKind = "definition"
	Export     UsageKind = "export"
	Import     UsageKind = "import"
	Call       UsageKind = "call"
	Test       UsageKind = "test"
)

// UsageLocation is one concrete (file, line) reference to a function.
type UsageLocation struct {
	Kind              UsageKind
	FilePath          string
	Line              int
	SourceSnippet     string
	EnclosingFunction string
}

// Index holds the five derived lookup tables built from a completed graph.
type Index struct {
	ByFunctionName    map[string][]UsageLocation
	ByFunctionID      map[string][]UsageLocation
	FilePathFunctions map[string][]string
	Callees           map[string][]string
	Callers           map[string][]string
	ExportedNameToID  map[string]string

	// NameToID resolves a display name to the node ID whose usages are
	// stored under that name in ByFunctionName. First-wins when two
	// functions share a bare display name across files, the same policy
	// used everywhere else names collide in this system.
	NameToID map[string]string

	cache *fileContentCache
}

// Build constructs every index from a finished graph in one pass, walking
// nodes in NodeOrder so the resulting usage lists are in deterministic
// (discovery, then lexical) order.
func Build(g *graph.Graph) *Index {
	idx := &Index{
		ByFunctionName:    make(map[string][]UsageLocation),
		ByFunctionID:      make(map[string][]UsageLocation),
		FilePathFunctions: make(map[string][]string),
		Callees:           make(map[string][]string),
		Callers:           make(map[string][]string),
		ExportedNameToID:  make(map[string]string),
		NameToID:          make(map[string]string),
		cache:             newFileContentCache(),
	}

	exportsByTarget := groupEdgesByTarget(g.Edges, graph.EdgeExports)
	importsByTarget := groupEdgesByTarget(g.Edges, graph.EdgeImports)
	callsByTarget := groupEdgesByTarget(g.Edges, graph.EdgeCalls)

	for _, id := range g.NodeOrder {
		fn := g.Function(id)
		if fn == nil {
			continue
		}

		idx.FilePathFunctions[fn.FilePath] = append(idx.FilePathFunctions[fn.FilePath], id)
		idx.Callees[id] = append(idx.Callees[id], fn.OutgoingCalls...)
		idx.Callers[id] = append(idx.Callers[id], fn.IncomingCalls...)

		var usages []UsageLocation
		usages = append(usages, UsageLocation{
			Kind:          Definition,
			FilePath:      fn.FilePath,
			Line:          fn.StartLine,
			SourceSnippet: idx.cache.snippet(fn.FilePath, fn.StartLine),
		})

		for _, e := range exportsByTarget[id] {
			usages = append(usages, UsageLocation{
				Kind:          Export,
				FilePath:      e.OccurrenceFile,
				Line:          e.OccurrenceLine,
				SourceSnippet: idx.cache.snippet(e.OccurrenceFile, e.OccurrenceLine),
			})
			if _, taken := idx.ExportedNameToID[fn.DisplayName]; !taken {
				idx.ExportedNameToID[fn.DisplayName] = id
			}
		}

		for _, e := range importsByTarget[id] {
			usages = append(usages, UsageLocation{
				Kind:          Import,
				FilePath:      e.OccurrenceFile,
				Line:          e.OccurrenceLine,
				SourceSnippet: idx.cache.snippet(e.OccurrenceFile, e.OccurrenceLine),
			})
		}

		for _, e := range callsByTarget[id] {
			kind := Call
			if strings.Contains(strings.ToLower(e.OccurrenceFile), "test") {
				kind = Test
			}
			usages = append(usages, UsageLocation{
				Kind:              kind,
				FilePath:          e.OccurrenceFile,
				Line:              e.OccurrenceLine,
				SourceSnippet:     idx.cache.snippet(e.OccurrenceFile, e.OccurrenceLine),
				EnclosingFunction: enclosingDisplayName(g, e.SourceNodeID),
			})
		}

		if _, taken := idx.NameToID[fn.DisplayName]; !taken {
			idx.NameToID[fn.DisplayName] = id
			idx.ByFunctionName[fn.DisplayName] = usages
		}
		idx.ByFunctionID[id] = usages
	}

	return idx
}

func groupEdgesByTarget(edges []graph.GraphEdge, kind graph.EdgeKind) map[string][]graph.GraphEdge {
	m := make(map[string][]graph.GraphEdge)
	for _, e := range edges {
		if e.Kind == kind {
			m[e.TargetNodeID] = append(m[e.TargetNodeID], e)
		}
	}
	return m
}

// enclosingDisplayName resolves a call edge's source node to the display
// name carried through into the usage's EnclosingFunction: the calling
// function's name, or "" for a module-level call.
func enclosingDisplayName(g *graph.Graph, sourceID string) string {
	if fn := g.Function(sourceID); fn != nil {
		return fn.DisplayName
	}
	return ""
}
