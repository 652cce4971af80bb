// Package output renders a built graph as either a JSON dump or a Graphviz
// DOT visualization.
package output

import (
	"fmt"
	"sort"

	"github.com/ripplescope/ripplescope/internal/graph"
	"gonum.org/v1/gonum/graph/encoding"
	"gonum.org/v1/gonum/graph/encoding/dot"
	"gonum.org/v1/gonum/graph/simple"
)

// DefaultMaxNodes is the cutoff applied when the caller doesn't specify one.
const DefaultMaxNodes = 100

// dotNode adapts one graph.GraphNode into gonum's dot.Node, carrying the
// shape/color attributes attributesFor derives from its kind and export
// flag. Criticality tiers do not affect the rendering, and edges carry no
// style attributes.
type dotNode struct {
	id    int64
	dotID string
	attrs []encoding.Attribute
}

func (n *dotNode) ID() int64                        { return n.id }
func (n *dotNode) DOTID() string                     { return n.dotID }
func (n *dotNode) Attributes() []encoding.Attribute  { return n.attrs }

// RenderDOT renders g as Graphviz DOT text, capping the number of rendered
// nodes at maxNodes (file nodes are preferred, then functions in discovery
// order) to keep large repositories visualizable. maxNodes <= 0 uses
// DefaultMaxNodes.
func RenderDOT(g *graph.Graph, maxNodes int) ([]byte, error) {
	if maxNodes <= 0 {
		maxNodes = DefaultMaxNodes
	}

	nodeOrder := g.NodeOrder
	if len(nodeOrder) > maxNodes {
		nodeOrder = nodeOrder[:maxNodes]
	}

	dg := simple.NewDirectedGraph()
	idByStableID := make(map[string]int64, len(nodeOrder))
	included := make(map[string]bool, len(nodeOrder))

	var nextID int64
	for _, stableID := range nodeOrder {
		n := g.Nodes[stableID]
		gid := nextID
		nextID++
		idByStableID[stableID] = gid
		included[stableID] = true
		dg.AddNode(&dotNode{
			id:    gid,
			dotID: sanitizeID(stableID),
			attrs: attributesFor(n),
		})
	}

	edges := make([]graph.GraphEdge, len(g.Edges))
	copy(edges, g.Edges)
	sort.SliceStable(edges, func(i, j int) bool { return edges[i].EdgeID < edges[j].EdgeID })

	for _, e := range edges {
		if !included[e.SourceNodeID] || !included[e.TargetNodeID] {
			continue
		}
		from := dg.Node(idByStableID[e.SourceNodeID])
		to := dg.Node(idByStableID[e.TargetNodeID])
		if from == nil || to == nil || dg.HasEdgeFromTo(from.ID(), to.ID()) {
			continue
		}
		dg.SetEdge(simple.Edge{F: from, T: to})
	}

	return dot.Marshal(dg, "ripplescope", "", "  ")
}

// attributesFor derives a node's shape and fill color: files render as
// boxes, functions as ellipses colored by whether they are exported.
func attributesFor(n graph.GraphNode) []encoding.Attribute {
	switch n.NodeKind() {
	case graph.KindFile:
		return []encoding.Attribute{
			{Key: "shape", Value: "box"},
			{Key: "label", Value: quote(n.Name())},
		}
	case graph.KindFunction:
		fn, _ := n.(*graph.FunctionNode)
		color := "lightgray"
		if fn != nil && fn.IsExported {
			color = "lightblue"
		}
		return []encoding.Attribute{
			{Key: "shape", Value: "ellipse"},
			{Key: "style", Value: "filled"},
			{Key: "fillcolor", Value: color},
			{Key: "label", Value: quote(n.Name())},
		}
	default:
		return nil
	}
}

func quote(s string) string {
	return fmt.Sprintf("%q", s)
}

// sanitizeID produces a DOT-safe identifier from a stable node ID, which may
// contain characters DOT's bare identifier syntax disallows.
func sanitizeID(stableID string) string {
	return fmt.Sprintf("%q", stableID)
}
