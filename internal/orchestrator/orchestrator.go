// Package orchestrator is the façade the embedder talks to: a small state
// machine that owns one repository's graph, indexes, and cache, and exposes
// the six public operations over them.
package orchestrator

import (
	"time"

	"github.com/ripplescope/ripplescope/internal/discovery"
	"github.com/ripplescope/ripplescope/internal/errors"
	"github.com/ripplescope/ripplescope/internal/graph"
	"github.com/ripplescope/ripplescope/internal/impact"
	"github.com/ripplescope/ripplescope/internal/index"
	"github.com/ripplescope/ripplescope/internal/logging"
	"github.com/ripplescope/ripplescope/internal/models"
	"github.com/ripplescope/ripplescope/internal/output"
	"github.com/ripplescope/ripplescope/internal/query"
	"github.com/ripplescope/ripplescope/internal/risk"
	"github.com/ripplescope/ripplescope/internal/treesitter"
	"github.com/sirupsen/logrus"
)

type state int

const (
	stateEmpty state = iota
	stateBuilt
)

// Orchestrator holds the graph and indexes produced by one build_graph call.
// Zero value is a valid, not-yet-built orchestrator.
type Orchestrator struct {
	state state

	graph *graph.Graph
	index *index.Index
	stats models.Statistics

	risk *risk.Calculator
}

// New returns an orchestrator ready for its first build_graph call.
func New() *Orchestrator {
	return &Orchestrator{
		state: stateEmpty,
		risk:  risk.NewCalculator(logrus.StandardLogger()),
	}
}

// BuildGraph runs discovery, parsing, graph construction, and indexing over
// repoPath in order, then transitions to Built. Calling it again with
// forceRebuild=false on an already-Built orchestrator is a no-op that
// returns the existing statistics; forceRebuild=true tears down the
// existing graph first and rebuilds from scratch.
func (o *Orchestrator) BuildGraph(repoPath string, forceRebuild bool) (models.Statistics, error) {
	if o.state == stateBuilt && !forceRebuild {
		return o.stats, nil
	}
	if forceRebuild {
		o.state = stateEmpty
		o.graph = nil
		o.index = nil
	}

	started := time.Now()

	descriptors, err := discovery.Walk(repoPath)
	if err != nil {
		return models.Statistics{}, err
	}

	parsed := make([]*treesitter.ParseResult, 0, len(descriptors))
	filesFailed := 0
	for _, d := range descriptors {
		pf, err := treesitter.ParseFile(d.AbsolutePath)
		if err != nil {
			filesFailed++
			continue
		}
		if len(pf.Errors) > 0 {
			logging.Warn("parse recorded errors", "file", d.AbsolutePath, "errors", pf.Errors)
		}
		parsed = append(parsed, pf)
	}

	g, buildStats, err := graph.Build(parsed)
	if err != nil {
		return models.Statistics{}, err
	}

	idx := index.Build(g)

	o.graph = g
	o.index = idx
	o.stats = models.Statistics{
		FilesDiscovered: len(descriptors),
		FilesParsed:     len(parsed),
		FilesFailed:     filesFailed,
		Functions:       buildStats.Functions,
		Imports:         buildStats.Imports,
		Exports:         buildStats.Exports,
		Calls:           buildStats.Calls,
		Edges:           buildStats.Edges,
		IDCollisions:    buildStats.IDCollisions,
		UnresolvedCalls: buildStats.UnresolvedCalls,
		Warnings:        buildStats.Warnings,
		BuildDuration:   time.Since(started),
	}
	o.state = stateBuilt

	logging.Info("build_graph completed",
		"files_discovered", o.stats.FilesDiscovered,
		"functions", o.stats.Functions,
		"edges", o.stats.Edges,
		"duration", o.stats.BuildDuration.String())

	return o.stats, nil
}

// FindUsages returns the usage report for name, or ok=false if unindexed.
// Returns not_built if called before a successful build.
func (o *Orchestrator) FindUsages(name string) (*models.UsageReport, bool, error) {
	if o.state != stateBuilt {
		return nil, false, errors.NotBuiltError("find_usages called before a successful build_graph")
	}
	report, ok := query.FindAllUsages(o.index, name)
	if !ok {
		return nil, false, nil
	}
	return toUsageReportView(report), true, nil
}

// AssessChangeImpact returns the change-impact report for name, or
// ok=false if unindexed. Returns not_built if called before a successful
// build.
func (o *Orchestrator) AssessChangeImpact(name, description string) (*models.ImpactReport, bool, error) {
	if o.state != stateBuilt {
		return nil, false, errors.NotBuiltError("assess_change_impact called before a successful build_graph")
	}
	report, ok := impact.AssessChangeImpact(o.index, name, description)
	return report, ok, nil
}

// FailureModes returns the fixed failure-mode report for name. It does not
// require name to resolve to an indexed function since the report is
// graph-independent, but it does require a prior build so the operation
// participates in the same state machine as every other query.
func (o *Orchestrator) FailureModes(name, changeType string) (*models.RiskAssessment, error) {
	if o.state != stateBuilt {
		return nil, errors.NotBuiltError("failure_modes called before a successful build_graph")
	}
	return o.risk.FailureModes(name, changeType), nil
}

// GetCompleteAnalysis bundles FindUsages, AssessChangeImpact, and
// FailureModes into one combined report.
func (o *Orchestrator) GetCompleteAnalysis(name, description string) (*models.CombinedReport, error) {
	if o.state != stateBuilt {
		return nil, errors.NotBuiltError("get_complete_analysis called before a successful build_graph")
	}

	combined := &models.CombinedReport{FunctionName: name}

	if report, ok := query.FindAllUsages(o.index, name); ok {
		combined.Usages = toUsageReportView(report)
	}
	if report, ok := impact.AssessChangeImpact(o.index, name, description); ok {
		combined.Impact = report
	}
	combined.Risk = o.risk.FailureModes(name, "general")

	return combined, nil
}

// Statistics returns the statistics of the most recent successful build.
// Returns not_built if no build has completed.
func (o *Orchestrator) Statistics() (models.Statistics, error) {
	if o.state != stateBuilt {
		return models.Statistics{}, errors.NotBuiltError("statistics called before a successful build_graph")
	}
	return o.stats, nil
}

// DumpJSON renders the built graph and its statistics as the documented
// {nodes, edges, statistics} JSON shape. Returns not_built if no build has
// completed.
func (o *Orchestrator) DumpJSON() ([]byte, error) {
	if o.state != stateBuilt {
		return nil, errors.NotBuiltError("dump requested before a successful build_graph")
	}
	return output.DumpJSON(o.graph, o.stats)
}

// DumpDOT renders the built graph as Graphviz DOT text, capped at maxNodes.
// Returns not_built if no build has completed.
func (o *Orchestrator) DumpDOT(maxNodes int) ([]byte, error) {
	if o.state != stateBuilt {
		return nil, errors.NotBuiltError("dot export requested before a successful build_graph")
	}
	return output.RenderDOT(o.graph, maxNodes)
}

// toUsageReportView converts the internal query.UsageReport into the
// JSON-facing models.UsageReport shape.
func toUsageReportView(r *query.UsageReport) *models.UsageReport {
	view := &models.UsageReport{
		FunctionName:          r.FunctionName,
		NodeID:                r.NodeID,
		Exports:               toLocationViews(r.Exports),
		Imports:               toLocationViews(r.Imports),
		Calls:                 toLocationViews(r.Calls),
		Tests:                 toLocationViews(r.Tests),
		TotalCount:            r.TotalCount,
		DistinctFilesAffected: len(r.DistinctFilesAffected),
	}
	if r.Definition != nil {
		loc := toLocationView(*r.Definition)
		view.Definition = &loc
	}
	return view
}

func toLocationViews(locs []index.UsageLocation) []models.UsageLocationView {
	views := make([]models.UsageLocationView, 0, len(locs))
	for _, l := range locs {
		views = append(views, toLocationView(l))
	}
	return views
}

func toLocationView(l index.UsageLocation) models.UsageLocationView {
	return models.UsageLocationView{
		FilePath:          l.FilePath,
		Line:              l.Line,
		SourceSnippet:     l.SourceSnippet,
		EnclosingFunction: l.EnclosingFunction,
	}
}
