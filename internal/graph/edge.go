package graph

// EdgeKind tags the relationship a GraphEdge represents.
type EdgeKind string

const (
	EdgeCalls       EdgeKind = "calls"
	EdgeImports     EdgeKind = "imports"
	EdgeExports     EdgeKind = "exports"
	EdgeDefines     EdgeKind = "defines"
	EdgeContainedIn EdgeKind = "contained_in"
)

// GraphEdge is one directed relationship between two nodes. Edges are
// multi-valued: a function called from three places produces three distinct
// Calls edges, not one deduplicated edge.
type GraphEdge struct {
	EdgeID         string
	SourceNodeID   string
	TargetNodeID   string
	Kind           EdgeKind
	OccurrenceFile string
	OccurrenceLine int
	Context        string
}
