// Package impact buckets a function's usage sites by file and scores the
// blast radius of changing it, keyed on a fixed criticality-tier table.
package impact

import (
	"fmt"
	"sort"
	"strings"

	"github.com/ripplescope/ripplescope/internal/index"
	"github.com/ripplescope/ripplescope/internal/models"
	"github.com/ripplescope/ripplescope/internal/query"
)

// nonCriticalMarkers must be probed before criticalPathMarkers so that
// test_checkout.py lands in NonCritical rather than CriticalPath.
var nonCriticalMarkers = []string{"test", "spec", "mock", "fixture"}
var criticalPathMarkers = []string{"checkout", "payment", "auth", "billing"}
var secondaryMarkers = []string{"invoice", "report", "email", "notification"}
var tertiaryMarkers = []string{"util", "helper", "validate", "format"}

// tierWeights are the multipliers applied to each tier's usage count when
// computing RiskScore.
var tierWeights = map[models.CriticalityTier]int{
	models.TierCriticalPath: 10,
	models.TierSecondary:    5,
	models.TierTertiary:     2,
	models.TierNonCritical:  1,
}

// riskProse and impactProse are fixed templates keyed on tier, filled in
// with the module's display name.
var riskProse = map[models.CriticalityTier]string{
	models.TierCriticalPath: "%s sits on a critical user-facing path; a regression here can block core transactions.",
	models.TierSecondary:    "%s supports secondary business workflows; a regression degrades but does not block core transactions.",
	models.TierTertiary:     "%s is shared utility code; a regression surfaces indirectly through whatever calls it.",
	models.TierNonCritical:  "%s is test or fixture code; a regression here affects CI signal, not production behavior.",
}

var impactProse = map[models.CriticalityTier]string{
	models.TierCriticalPath: "Treat changes here as high-priority: require review from an owner and a staged rollout.",
	models.TierSecondary:    "Review changes normally; add regression coverage for the affected workflow.",
	models.TierTertiary:     "Check all call sites compile against the new signature before merging.",
	models.TierNonCritical:  "Update the affected tests alongside the change.",
}

// AssessChangeImpact buckets name's usage report by file, assigns each
// bucket a criticality tier, and derives an overall risk score. Returns
// ok=false if name was never indexed.
func AssessChangeImpact(idx *index.Index, name, description string) (*models.ImpactReport, bool) {
	usages, ok := query.FindAllUsages(idx, name)
	if !ok {
		return nil, false
	}

	buckets := make(map[string]*models.ModuleUsage)
	var order []string

	record := func(kind index.UsageKind, loc index.UsageLocation) {
		b, exists := buckets[loc.FilePath]
		if !exists {
			b = &models.ModuleUsage{
				ModuleName: moduleName(loc.FilePath),
				FilePath:   loc.FilePath,
				Tier:       classify(loc.FilePath),
			}
			buckets[loc.FilePath] = b
			order = append(order, loc.FilePath)
		}
		switch kind {
		case index.Export:
			b.ExportCount++
		case index.Import:
			b.ImportCount++
		case index.Call:
			b.CallCount++
		case index.Test:
			b.TestCount++
		}
		b.TotalUsages++
	}

	if usages.Definition != nil {
		record(index.Definition, *usages.Definition)
	}
	for _, u := range usages.Exports {
		record(index.Export, u)
	}
	for _, u := range usages.Imports {
		record(index.Import, u)
	}
	for _, u := range usages.Calls {
		record(index.Call, u)
	}
	for _, u := range usages.Tests {
		record(index.Test, u)
	}

	modules := make([]models.ModuleUsage, 0, len(order))
	hasCriticalPath := false
	riskScore := 0
	for _, path := range order {
		b := buckets[path]
		b.RiskSummary = fmt.Sprintf(riskProse[b.Tier], b.ModuleName)
		b.ImpactSummary = impactProse[b.Tier]
		if b.Tier == models.TierCriticalPath {
			hasCriticalPath = true
		}
		riskScore += b.TotalUsages * tierWeights[b.Tier]
		modules = append(modules, *b)
	}

	sort.SliceStable(modules, func(i, j int) bool {
		return models.TierPriority(modules[i].Tier) < models.TierPriority(modules[j].Tier)
	})

	level := models.LevelForScore(riskScore)

	return &models.ImpactReport{
		FunctionName:    name,
		Description:     description,
		Modules:         modules,
		RiskScore:       riskScore,
		RiskLevel:       level,
		HasCriticalPath: hasCriticalPath,
		BusinessImpact:  businessImpact(hasCriticalPath, level),
	}, true
}

// classify assigns a criticality tier by probing fixed substrings against
// the lowercased file path, NonCritical first so test_checkout.py resolves
// to NonCritical rather than CriticalPath.
func classify(path string) models.CriticalityTier {
	lower := strings.ToLower(path)
	if containsAny(lower, nonCriticalMarkers) {
		return models.TierNonCritical
	}
	if containsAny(lower, criticalPathMarkers) {
		return models.TierCriticalPath
	}
	if containsAny(lower, secondaryMarkers) {
		return models.TierSecondary
	}
	if containsAny(lower, tertiaryMarkers) {
		return models.TierTertiary
	}
	return models.TierSecondary
}

func containsAny(s string, markers []string) bool {
	for _, m := range markers {
		if strings.Contains(s, m) {
			return true
		}
	}
	return false
}

// moduleName derives a module's display name from its file stem: uppercase,
// suffixed " MODULE".
func moduleName(path string) string {
	base := path
	if i := strings.LastIndexByte(path, '/'); i >= 0 {
		base = path[i+1:]
	}
	if i := strings.LastIndexByte(base, '.'); i >= 0 {
		base = base[:i]
	}
	return strings.ToUpper(base) + " MODULE"
}

// businessImpact returns the fixed revenue/recovery prose for a
// (has-critical-path, risk-level) combination.
func businessImpact(hasCriticalPath bool, level models.RiskLevel) models.BusinessImpact {
	key := businessImpactKey{hasCriticalPath, level}
	if v, ok := businessImpactTable[key]; ok {
		return v
	}
	return businessImpactTable[businessImpactKey{false, models.RiskLevelLow}]
}

type businessImpactKey struct {
	criticalPath bool
	level        models.RiskLevel
}

var businessImpactTable = map[businessImpactKey]models.BusinessImpact{
	{false, models.RiskLevelLow}: {
		RevenuePerHourRange: "$0 - $500",
		AffectedUsers:       "internal tooling users only",
		RecoveryTimeRange:   "under 30 minutes",
	},
	{false, models.RiskLevelMedium}: {
		RevenuePerHourRange: "$500 - $2,000",
		AffectedUsers:       "a subset of active users on secondary workflows",
		RecoveryTimeRange:   "30 minutes - 2 hours",
	},
	{false, models.RiskLevelHigh}: {
		RevenuePerHourRange: "$2,000 - $10,000",
		AffectedUsers:       "most active users across several workflows",
		RecoveryTimeRange:   "2 - 6 hours",
	},
	{false, models.RiskLevelCritical}: {
		RevenuePerHourRange: "$10,000 - $50,000",
		AffectedUsers:       "the majority of active users",
		RecoveryTimeRange:   "6 - 12 hours",
	},
	{true, models.RiskLevelLow}: {
		RevenuePerHourRange: "$1,000 - $5,000",
		AffectedUsers:       "users on the affected critical-path flow",
		RecoveryTimeRange:   "30 minutes - 1 hour",
	},
	{true, models.RiskLevelMedium}: {
		RevenuePerHourRange: "$5,000 - $20,000",
		AffectedUsers:       "all users attempting checkout, payment, auth, or billing",
		RecoveryTimeRange:   "1 - 4 hours",
	},
	{true, models.RiskLevelHigh}: {
		RevenuePerHourRange: "$20,000 - $100,000",
		AffectedUsers:       "all users attempting checkout, payment, auth, or billing",
		RecoveryTimeRange:   "4 - 8 hours",
	},
	{true, models.RiskLevelCritical}: {
		RevenuePerHourRange: "$100,000+",
		AffectedUsers:       "effectively all active users, revenue-generating paths fully blocked",
		RecoveryTimeRange:   "8+ hours, incident-response escalation expected",
	},
}
