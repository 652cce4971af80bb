package risk

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFailureModesFixedTable(t *testing.T) {
	c := NewCalculator(nil)

	report := c.FailureModes("calculatePrice", "rename")

	require.Len(t, report.FailureModes, 5)
	assert.Equal(t, "calculatePrice", report.FunctionName)
	assert.Equal(t, "rename", report.ChangeType)

	names := make([]string, len(report.FailureModes))
	for i, m := range report.FailureModes {
		names[i] = m.Name
		assert.Contains(t, m.RecoveryEstimate, "(rename change)")
	}
	assert.Equal(t, []string{"Missed Usage", "Inconsistent Rename", "Type Mismatch", "Test Failure", "Documentation Sync"}, names)

	// Documentation Sync is non-technical and excluded from the subtraction:
	// 100 - (12 + 8 + 10 + 15) = 55
	assert.InDelta(t, 55.0, report.SuccessRate, 0.001)

	assert.Len(t, report.Mitigations, 5)
}

func TestFailureModesIsGraphIndependent(t *testing.T) {
	c := NewCalculator(nil)
	a := c.FailureModes("foo", "general")
	b := c.FailureModes("bar", "general")
	assert.Equal(t, a.SuccessRate, b.SuccessRate)
	assert.Equal(t, a.FailureModes, b.FailureModes)
}
