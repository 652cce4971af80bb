package index

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/ripplescope/ripplescope/internal/graph"
	"github.com/ripplescope/ripplescope/internal/treesitter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

// repoDir returns a fresh directory for fixture files. t.TempDir() names its
// directory after the test, and "test" anywhere in a call site's path makes
// the indexer classify that call as a Test usage.
func repoDir(t *testing.T) string {
	t.Helper()
	dir, err := os.MkdirTemp("", "repo")
	require.NoError(t, err)
	t.Cleanup(func() { os.RemoveAll(dir) })
	return dir
}

func TestBuildPopulatesUsageTableAndNameToID(t *testing.T) {
	dir := repoDir(t)
	calc := writeFile(t, dir, "calc.py", "def a(): pass\ndef b(): a()\n")

	parsed := []*treesitter.ParseResult{
		{
			FilePath: calc,
			Functions: []treesitter.FunctionDef{
				{Name: "a", FilePath: calc, StartLine: 1, EndLine: 1},
				{Name: "b", FilePath: calc, StartLine: 2, EndLine: 2},
			},
			Calls: []treesitter.CallSite{
				{CalleeName: "a", FilePath: calc, Line: 2, EnclosingFunction: "b"},
			},
		},
	}
	g, _, err := graph.Build(parsed)
	require.NoError(t, err)

	idx := Build(g)

	aID, ok := idx.NameToID["a"]
	require.True(t, ok)
	assert.Equal(t, "calc:a", aID)

	usages := idx.ByFunctionName["a"]
	require.Len(t, usages, 2)
	assert.Equal(t, Definition, usages[0].Kind)
	assert.Equal(t, Call, usages[1].Kind)
	assert.Equal(t, "b", usages[1].EnclosingFunction)
}

func TestBuildFirstWinsOnSharedDisplayName(t *testing.T) {
	dir := t.TempDir()
	one := writeFile(t, dir, "one.py", "def shared(): pass\n")
	two := writeFile(t, dir, "two.py", "def shared(): pass\n")

	parsed := []*treesitter.ParseResult{
		{FilePath: one, Functions: []treesitter.FunctionDef{{Name: "shared", FilePath: one, StartLine: 1, EndLine: 1}}},
		{FilePath: two, Functions: []treesitter.FunctionDef{{Name: "shared", FilePath: two, StartLine: 1, EndLine: 1}}},
	}
	g, _, err := graph.Build(parsed)
	require.NoError(t, err)

	idx := Build(g)

	assert.Equal(t, "one:shared", idx.NameToID["shared"])
	require.Len(t, idx.ByFunctionName["shared"], 1)
	assert.Equal(t, one, idx.ByFunctionName["shared"][0].FilePath)

	// the second definition is still reachable by ID even though its name
	// lost the first-wins race
	require.Len(t, idx.ByFunctionID["two:shared"], 1)
}

func TestSnippetCacheReadsSourceLine(t *testing.T) {
	dir := t.TempDir()
	calc := writeFile(t, dir, "calc.py", "def a():\n    pass\n")

	parsed := []*treesitter.ParseResult{
		{FilePath: calc, Functions: []treesitter.FunctionDef{{Name: "a", FilePath: calc, StartLine: 1, EndLine: 2}}},
	}
	g, _, err := graph.Build(parsed)
	require.NoError(t, err)

	idx := Build(g)
	usages := idx.ByFunctionName["a"]
	require.Len(t, usages, 1)
	assert.Equal(t, "def a():", usages[0].SourceSnippet)
}
