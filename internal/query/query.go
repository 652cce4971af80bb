// Package query answers "all usage sites for function F" from the
// precomputed usage table — no graph traversal at query time.
package query

import "github.com/ripplescope/ripplescope/internal/index"

// UsageReport is the full answer to find_all_usages. Each slice preserves
// insertion order from indexing (file discovery order, then intra-file
// lexical order), so repeated runs over the same graph give the same report.
type UsageReport struct {
	FunctionName          string
	NodeID                string
	Definition            *index.UsageLocation
	Exports               []index.UsageLocation
	Imports               []index.UsageLocation
	Calls                 []index.UsageLocation
	Tests                 []index.UsageLocation
	TotalCount            int
	DistinctFilesAffected map[string]struct{}
}

// FindAllUsages looks up name in idx and assembles a UsageReport, or returns
// ok=false if no function by that name was indexed.
func FindAllUsages(idx *index.Index, name string) (*UsageReport, bool) {
	usages, ok := idx.ByFunctionName[name]
	if !ok {
		return nil, false
	}

	report := &UsageReport{
		FunctionName:          name,
		NodeID:                idx.NameToID[name],
		DistinctFilesAffected: make(map[string]struct{}),
	}

	for _, u := range usages {
		report.DistinctFilesAffected[u.FilePath] = struct{}{}
		switch u.Kind {
		case index.Definition:
			loc := u
			report.Definition = &loc
			report.TotalCount++
		case index.Export:
			report.Exports = append(report.Exports, u)
			report.TotalCount++
		case index.Import:
			report.Imports = append(report.Imports, u)
			report.TotalCount++
		case index.Call:
			report.Calls = append(report.Calls, u)
			report.TotalCount++
		case index.Test:
			report.Tests = append(report.Tests, u)
			report.TotalCount++
		}
	}

	return report, true
}
