package graph

import (
	"testing"

	"github.com/ripplescope/ripplescope/internal/treesitter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// calc.py: def a(): pass / def b(): a()
func singleFileSelfCallFixture() []*treesitter.ParseResult {
	return []*treesitter.ParseResult{
		{
			FilePath: "calc.py",
			Language: "python",
			Functions: []treesitter.FunctionDef{
				{Name: "a", FilePath: "calc.py", StartLine: 1, EndLine: 1},
				{Name: "b", FilePath: "calc.py", StartLine: 2, EndLine: 2},
			},
			Calls: []treesitter.CallSite{
				{CalleeName: "a", FilePath: "calc.py", Line: 2, EnclosingFunction: "b"},
			},
		},
	}
}

func TestBuildSingleFileSelfCall(t *testing.T) {
	g, stats, err := Build(singleFileSelfCallFixture())
	require.NoError(t, err)

	assert.Equal(t, 1, stats.Files)
	assert.Equal(t, 2, stats.Functions)
	assert.Equal(t, 1, stats.Calls)
	assert.Equal(t, 0, stats.UnresolvedCalls)

	require.NotNil(t, g.Function("calc:a"))
	require.NotNil(t, g.Function("calc:b"))

	var callEdge *GraphEdge
	for i := range g.Edges {
		if g.Edges[i].Kind == EdgeCalls {
			callEdge = &g.Edges[i]
		}
	}
	require.NotNil(t, callEdge)
	assert.Equal(t, "calc:b", callEdge.SourceNodeID)
	assert.Equal(t, "calc:a", callEdge.TargetNodeID)

	assert.Equal(t, []string{"calc:b"}, g.Function("calc:a").IncomingCalls)
	assert.Equal(t, []string{"calc:a"}, g.Function("calc:b").OutgoingCalls)
}

// checkout.js exports calculatePrice; payment.js imports and calls it twice.
func crossFileImportCallFixture() []*treesitter.ParseResult {
	return []*treesitter.ParseResult{
		{
			FilePath: "checkout.js",
			Language: "javascript",
			Functions: []treesitter.FunctionDef{
				{Name: "calculatePrice", FilePath: "checkout.js", StartLine: 1, EndLine: 5, IsExported: true},
			},
			Exports: []treesitter.ExportStmt{
				{ExportedNames: []string{"calculatePrice"}, FilePath: "checkout.js", Line: 1},
			},
		},
		{
			FilePath: "payment.js",
			Language: "javascript",
			Functions: []treesitter.FunctionDef{
				{Name: "processPayment", FilePath: "payment.js", StartLine: 3, EndLine: 10},
			},
			Imports: []treesitter.ImportStmt{
				{ImportedNames: []string{"calculatePrice"}, SourceModule: "./checkout", FilePath: "payment.js", Line: 1},
			},
			Calls: []treesitter.CallSite{
				{CalleeName: "calculatePrice", FilePath: "payment.js", Line: 5, EnclosingFunction: "processPayment"},
				{CalleeName: "calculatePrice", FilePath: "payment.js", Line: 8, EnclosingFunction: "processPayment"},
			},
		},
	}
}

func TestBuildCrossFileImportAndCall(t *testing.T) {
	g, stats, err := Build(crossFileImportCallFixture())
	require.NoError(t, err)

	assert.Equal(t, 2, stats.Files)
	assert.Equal(t, 2, stats.Functions)
	assert.Equal(t, 2, stats.Calls)
	assert.Equal(t, 1, stats.Imports)
	assert.Equal(t, 1, stats.Exports)

	fn := g.Function("checkout:calculatePrice")
	require.NotNil(t, fn)
	assert.Equal(t, []string{"payment.js"}, fn.FilesThatImportMe)
	assert.Equal(t, "./checkout", fn.ImportedFrom)
	assert.Len(t, fn.IncomingCalls, 2)
}

func TestBuildIDCollisionFirstWins(t *testing.T) {
	parsed := []*treesitter.ParseResult{
		{
			FilePath: "dup.py",
			Functions: []treesitter.FunctionDef{
				{Name: "a", FilePath: "dup.py", StartLine: 1, EndLine: 1, Decorators: []string{"first"}},
				{Name: "a", FilePath: "dup.py", StartLine: 5, EndLine: 5, Decorators: []string{"second"}},
			},
		},
	}
	g, stats, err := Build(parsed)
	require.NoError(t, err)

	assert.Equal(t, 1, stats.Functions)
	assert.Equal(t, 1, stats.IDCollisions)
	fn := g.Function("dup:a")
	require.NotNil(t, fn)
	assert.Equal(t, []string{"first"}, fn.Decorators)
}

func TestBuildUnresolvedCallIsDropped(t *testing.T) {
	parsed := []*treesitter.ParseResult{
		{
			FilePath: "lonely.py",
			Functions: []treesitter.FunctionDef{
				{Name: "a", FilePath: "lonely.py", StartLine: 1, EndLine: 1},
			},
			Calls: []treesitter.CallSite{
				{CalleeName: "doesNotExist", FilePath: "lonely.py", Line: 2, EnclosingFunction: "a"},
			},
		},
	}
	_, stats, err := Build(parsed)
	require.NoError(t, err)
	assert.Equal(t, 1, stats.UnresolvedCalls)
	assert.Equal(t, 0, stats.Calls)
}
