package impact

import (
	"testing"

	"github.com/ripplescope/ripplescope/internal/graph"
	"github.com/ripplescope/ripplescope/internal/index"
	"github.com/ripplescope/ripplescope/internal/models"
	"github.com/ripplescope/ripplescope/internal/treesitter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildIndex(t *testing.T, parsed []*treesitter.ParseResult) *index.Index {
	t.Helper()
	g, _, err := graph.Build(parsed)
	require.NoError(t, err)
	return index.Build(g)
}

// A self-call confined to one file buckets into a single Secondary-tier
// module: every usage site (definition and call alike) counts toward that
// bucket's weighted score, since the module-weighted total is defined over
// all usage kinds, not calls alone.
func TestAssessChangeImpactSingleFileSelfCall(t *testing.T) {
	idx := buildIndex(t, []*treesitter.ParseResult{
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
	})

	report, ok := AssessChangeImpact(idx, "a", "refactor a")
	require.True(t, ok)
	require.Len(t, report.Modules, 1)
	assert.Equal(t, models.TierSecondary, report.Modules[0].Tier)
	assert.Equal(t, 2, report.Modules[0].TotalUsages)
	assert.Equal(t, 10, report.RiskScore)
	assert.Equal(t, models.RiskLevelLow, report.RiskLevel)
	assert.False(t, report.HasCriticalPath)
}

func crossFileFixture() []*treesitter.ParseResult {
	return []*treesitter.ParseResult{
		{
			FilePath:  "checkout.js",
			Functions: []treesitter.FunctionDef{{Name: "calculatePrice", FilePath: "checkout.js", StartLine: 1, EndLine: 1, IsExported: true}},
			Exports:   []treesitter.ExportStmt{{ExportedNames: []string{"calculatePrice"}, FilePath: "checkout.js", Line: 1}},
		},
		{
			FilePath:  "payment.js",
			Functions: []treesitter.FunctionDef{{Name: "processPayment", FilePath: "payment.js", StartLine: 2, EndLine: 5}},
			Imports:   []treesitter.ImportStmt{{ImportedNames: []string{"calculatePrice"}, SourceModule: "./checkout", FilePath: "payment.js", Line: 1}},
			Calls: []treesitter.CallSite{
				{CalleeName: "calculatePrice", FilePath: "payment.js", Line: 3, EnclosingFunction: "processPayment"},
				{CalleeName: "calculatePrice", FilePath: "payment.js", Line: 4, EnclosingFunction: "processPayment"},
			},
		},
	}
}

func TestAssessChangeImpactCrossFileImportAndCall(t *testing.T) {
	idx := buildIndex(t, crossFileFixture())

	report, ok := AssessChangeImpact(idx, "calculatePrice", "change price logic")
	require.True(t, ok)
	require.Len(t, report.Modules, 2)

	byName := map[string]models.ModuleUsage{}
	for _, m := range report.Modules {
		byName[m.ModuleName] = m
	}

	checkout := byName["CHECKOUT MODULE"]
	assert.Equal(t, models.TierCriticalPath, checkout.Tier)
	assert.Equal(t, 2, checkout.TotalUsages)

	payment := byName["PAYMENT MODULE"]
	assert.Equal(t, models.TierCriticalPath, payment.Tier)
	assert.Equal(t, 3, payment.TotalUsages)

	assert.Equal(t, 50, report.RiskScore)
	assert.Equal(t, models.RiskLevelMedium, report.RiskLevel)
	assert.True(t, report.HasCriticalPath)
}

func TestAssessChangeImpactTestFileReclassification(t *testing.T) {
	parsed := append(crossFileFixture(), &treesitter.ParseResult{
		FilePath: "payment.test.js",
		Calls:    []treesitter.CallSite{{CalleeName: "calculatePrice", FilePath: "payment.test.js", Line: 1}},
	})
	idx := buildIndex(t, parsed)

	report, ok := AssessChangeImpact(idx, "calculatePrice", "change price logic")
	require.True(t, ok)
	require.Len(t, report.Modules, 3)

	var testModule *models.ModuleUsage
	for i := range report.Modules {
		if report.Modules[i].Tier == models.TierNonCritical {
			testModule = &report.Modules[i]
		}
	}
	require.NotNil(t, testModule)
	assert.Equal(t, 1, testModule.TestCount)
	assert.Equal(t, 1, testModule.TotalUsages)

	assert.Equal(t, 51, report.RiskScore)
	assert.Equal(t, models.RiskLevelHigh, report.RiskLevel)
}

func TestAssessChangeImpactUnknownFunction(t *testing.T) {
	idx := buildIndex(t, nil)
	report, ok := AssessChangeImpact(idx, "nonexistent", "_")
	assert.False(t, ok)
	assert.Nil(t, report)
}

// src/test_checkout_helpers.py must classify NonCritical, not CriticalPath,
// because the NonCritical markers are probed first.
func TestClassifyTestSubstringPrecedence(t *testing.T) {
	assert.Equal(t, models.TierNonCritical, classify("src/test_checkout_helpers.py"))
	assert.Equal(t, models.TierCriticalPath, classify("src/checkout.js"))
	assert.Equal(t, models.TierSecondary, classify("src/invoice.js"))
	assert.Equal(t, models.TierTertiary, classify("src/format_utils.py"))
	assert.Equal(t, models.TierSecondary, classify("src/unrelated.py"))
}

func TestModuleName(t *testing.T) {
	assert.Equal(t, "CHECKOUT MODULE", moduleName("src/checkout.js"))
	assert.Equal(t, "CALC MODULE", moduleName("calc.py"))
}
