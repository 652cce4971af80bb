package output

import (
	"encoding/json"

	"github.com/ripplescope/ripplescope/internal/graph"
	"github.com/ripplescope/ripplescope/internal/models"
)

// nodeDict is the JSON rendering of one graph node, a union of the File and
// Function field sets with kind discriminating which are populated.
type nodeDict struct {
	Kind              string   `json:"kind"`
	ID                string   `json:"id"`
	Name              string   `json:"name"`
	FilePath          string   `json:"file_path"`
	StartLine         int      `json:"start_line,omitempty"`
	EndLine           int      `json:"end_line,omitempty"`
	Parameters        []string `json:"parameters,omitempty"`
	IsExported        bool     `json:"is_exported,omitempty"`
	IsAsync           bool     `json:"is_async,omitempty"`
	Decorators        []string `json:"decorators,omitempty"`
	OutgoingCalls     []string `json:"outgoing_calls,omitempty"`
	IncomingCalls     []string `json:"incoming_calls,omitempty"`
	ImportedFrom      string   `json:"imported_from,omitempty"`
	FilesThatImportMe []string `json:"files_that_import_me,omitempty"`
}

// edgeDict is the JSON rendering of one graph edge.
type edgeDict struct {
	ID             string `json:"id"`
	Source         string `json:"source"`
	Target         string `json:"target"`
	Kind           string `json:"kind"`
	OccurrenceFile string `json:"occurrence_file"`
	OccurrenceLine int    `json:"occurrence_line"`
	Context        string `json:"context,omitempty"`
}

// graphDump is the top-level {nodes, edges, statistics} JSON shape.
type graphDump struct {
	Nodes      map[string]nodeDict `json:"nodes"`
	Edges      []edgeDict          `json:"edges"`
	Statistics models.Statistics   `json:"statistics"`
}

// DumpJSON renders g and stats as the documented JSON graph dump. Nodes are
// keyed by ID in a JSON object, which encoding/json writes in sorted key
// order rather than NodeOrder; edge order is preserved exactly as built.
func DumpJSON(g *graph.Graph, stats models.Statistics) ([]byte, error) {
	nodes := make(map[string]nodeDict, len(g.Nodes))
	for _, id := range g.NodeOrder {
		nodes[id] = toNodeDict(g.Nodes[id])
	}

	edges := make([]edgeDict, 0, len(g.Edges))
	for _, e := range g.Edges {
		edges = append(edges, edgeDict{
			ID:             e.EdgeID,
			Source:         e.SourceNodeID,
			Target:         e.TargetNodeID,
			Kind:           string(e.Kind),
			OccurrenceFile: e.OccurrenceFile,
			OccurrenceLine: e.OccurrenceLine,
			Context:        e.Context,
		})
	}

	dump := graphDump{Nodes: nodes, Edges: edges, Statistics: stats}
	return json.MarshalIndent(dump, "", "  ")
}

func toNodeDict(n graph.GraphNode) nodeDict {
	switch v := n.(type) {
	case *graph.FileNode:
		return nodeDict{
			Kind:     string(graph.KindFile),
			ID:       v.StableID,
			Name:     v.Basename,
			FilePath: v.FilePath,
		}
	case *graph.FunctionNode:
		return nodeDict{
			Kind:              string(graph.KindFunction),
			ID:                v.StableID,
			Name:              v.DisplayName,
			FilePath:          v.FilePath,
			StartLine:         v.StartLine,
			EndLine:           v.EndLine,
			Parameters:        v.Parameters,
			IsExported:        v.IsExported,
			IsAsync:           v.IsAsync,
			Decorators:        v.Decorators,
			OutgoingCalls:     v.OutgoingCalls,
			IncomingCalls:     v.IncomingCalls,
			ImportedFrom:      v.ImportedFrom,
			FilesThatImportMe: v.FilesThatImportMe,
		}
	default:
		return nodeDict{ID: n.NodeID(), Name: n.Name(), FilePath: n.Path()}
	}
}
