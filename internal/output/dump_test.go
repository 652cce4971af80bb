package output

import (
	"encoding/json"
	"testing"

	"github.com/ripplescope/ripplescope/internal/graph"
	"github.com/ripplescope/ripplescope/internal/models"
	"github.com/ripplescope/ripplescope/internal/treesitter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDumpJSONRoundTrips(t *testing.T) {
	parsed := []*treesitter.ParseResult{
		{
			FilePath: "calc.py",
			Functions: []treesitter.FunctionDef{
				{Name: "a", FilePath: "calc.py", StartLine: 1, EndLine: 1},
				{Name: "b", FilePath: "calc.py", StartLine: 2, EndLine: 2},
			},
			Calls: []treesitter.CallSite{
				{CalleeName: "a", FilePath: "calc.py", Line: 2, EnclosingFunction: "b"},
			},
		},
	}
	g, stats, err := graph.Build(parsed)
	require.NoError(t, err)

	data, err := DumpJSON(g, models.Statistics{Functions: stats.Functions})
	require.NoError(t, err)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &decoded))

	nodes, ok := decoded["nodes"].(map[string]interface{})
	require.True(t, ok)
	assert.Len(t, nodes, 3) // file:calc.py, calc:a, calc:b

	edges, ok := decoded["edges"].([]interface{})
	require.True(t, ok)
	assert.Len(t, edges, 3) // two Defines + one Calls

	aNode := nodes["calc:a"].(map[string]interface{})
	assert.Equal(t, "function", aNode["kind"])
	assert.Equal(t, "a", aNode["name"])
}
