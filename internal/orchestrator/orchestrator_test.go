package orchestrator

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/ripplescope/ripplescope/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQueriesBeforeBuildReturnNotBuilt(t *testing.T) {
	o := New()

	_, _, err := o.FindUsages("a")
	require.Error(t, err)
	assert.Equal(t, errors.ErrorTypeValidation, errors.GetType(err))

	_, _, err = o.AssessChangeImpact("a", "_")
	require.Error(t, err)

	_, err = o.FailureModes("a", "general")
	require.Error(t, err)

	_, err = o.GetCompleteAnalysis("a", "_")
	require.Error(t, err)

	_, err = o.Statistics()
	require.Error(t, err)

	_, err = o.DumpJSON()
	require.Error(t, err)

	_, err = o.DumpDOT(0)
	require.Error(t, err)
}

func TestBuildGraphRejectsMissingPath(t *testing.T) {
	o := New()
	_, err := o.BuildGraph(filepath.Join(t.TempDir(), "missing"), false)
	assert.Error(t, err)
}

func TestBuildGraphEmptyRepoThenFailureModesWorks(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "README.md"), []byte("# empty\n"), 0o644))

	o := New()
	stats, err := o.BuildGraph(dir, false)
	require.NoError(t, err)
	assert.Equal(t, 0, stats.FilesDiscovered)

	report, ok, err := o.FindUsages("anything")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Nil(t, report)

	risk, err := o.FailureModes("anything", "general")
	require.NoError(t, err)
	assert.Len(t, risk.FailureModes, 5)

	_, err = o.Statistics()
	require.NoError(t, err)

	data, err := o.DumpJSON()
	require.NoError(t, err)
	assert.Contains(t, string(data), "\"statistics\"")
}

func TestBuildGraphIsANoOpUnlessForced(t *testing.T) {
	dir := t.TempDir()
	o := New()

	first, err := o.BuildGraph(dir, false)
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "new.py"), []byte("def x(): pass\n"), 0o644))

	second, err := o.BuildGraph(dir, false)
	require.NoError(t, err)
	assert.Equal(t, first, second)

	third, err := o.BuildGraph(dir, true)
	require.NoError(t, err)
	assert.Equal(t, 1, third.FilesDiscovered)
}
