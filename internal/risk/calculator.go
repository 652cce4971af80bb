// Package risk assembles the failure-mode report for a proposed change: a
// fixed, graph-independent table of probabilities, impact prose, and
// mitigations. It performs no statistical inference over the codebase —
// see the design notes for why this stays a stub rather than a model.
package risk

import (
	"fmt"

	"github.com/ripplescope/ripplescope/internal/models"
	"github.com/sirupsen/logrus"
)

// Calculator assembles failure-mode reports. It holds no graph state and
// is safe to reuse across calls.
type Calculator struct {
	logger *logrus.Logger
}

// NewCalculator returns a Calculator that logs through logger, or through
// logrus's standard logger if logger is nil.
func NewCalculator(logger *logrus.Logger) *Calculator {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &Calculator{logger: logger}
}

// failureModeTemplate is the fixed baseline for one of the five modes,
// before the change-type-specific recovery estimate is filled in.
type failureModeTemplate struct {
	name              string
	tier              string
	probability       float64
	impactDescription string
	recoveryEstimate  string
	technical         bool // technical=false means this mode is excluded from the success-rate subtraction
}

// baselineFailureModes is the fixed five-entry table §4.7 describes. Order
// is preserved in report output.
var baselineFailureModes = []failureModeTemplate{
	{
		name:              "Missed Usage",
		tier:               "high",
		probability:       12.0,
		impactDescription: "A call site outside the reviewed diff keeps calling the old signature or behavior and breaks at runtime.",
		recoveryEstimate:  "15 - 45 minutes to locate and patch the missed call site",
		technical:         true,
	},
	{
		name:              "Inconsistent Rename",
		tier:               "medium",
		probability:       8.0,
		impactDescription: "Some call sites are updated to the new name while others still reference the old one, causing a partial break.",
		recoveryEstimate:  "10 - 30 minutes to grep for the stale identifier and finish the rename",
		technical:         true,
	},
	{
		name:              "Type Mismatch",
		tier:               "medium",
		probability:       10.0,
		impactDescription: "A caller passes an argument shape the new implementation no longer accepts, surfacing as a runtime type error.",
		recoveryEstimate:  "20 - 60 minutes to trace the mismatch through the call chain",
		technical:         true,
	},
	{
		name:              "Test Failure",
		tier:               "low",
		probability:       15.0,
		impactDescription: "Existing tests exercising this function fail against the new behavior and block the merge until updated.",
		recoveryEstimate:  "10 - 40 minutes to update assertions or fixtures",
		technical:         true,
	},
	{
		name:              "Documentation Sync",
		tier:               "low",
		probability:       25.0,
		impactDescription: "Docstrings, READMEs, or API reference pages describing the old behavior go stale.",
		recoveryEstimate:  "5 - 20 minutes to update the affected documentation",
		technical:         false,
	},
}

// mitigations is the fixed five-entry list returned with every assessment.
var mitigations = []string{
	"Search the whole repository for the function's bare name before relying on the usage report alone.",
	"Run the full test suite locally, not just the tests colocated with the changed file.",
	"Keep the old signature available behind a thin wrapper during the rollout window if external callers are unknown.",
	"Request review from whoever last touched the function's file.",
	"Update docstrings and README references in the same commit as the behavioral change.",
}

// FailureModes assembles the fixed failure-mode report for name under the
// given change_type. The output does not depend on any built graph.
func (c *Calculator) FailureModes(name, changeType string) *models.RiskAssessment {
	modes := make([]models.FailureMode, 0, len(baselineFailureModes))
	successRate := 100.0

	for _, t := range baselineFailureModes {
		modes = append(modes, models.FailureMode{
			Name:              t.name,
			Tier:              t.tier,
			Probability:       t.probability,
			ImpactDescription: t.impactDescription,
			RecoveryEstimate:  fmt.Sprintf("%s (%s change)", t.recoveryEstimate, changeType),
		})
		if t.technical {
			successRate -= t.probability
		}
	}

	c.logger.WithFields(logrus.Fields{
		"function_name": name,
		"change_type":   changeType,
		"success_rate":  successRate,
	}).Debug("assembled failure mode report")

	return &models.RiskAssessment{
		FunctionName: name,
		ChangeType:   changeType,
		FailureModes: modes,
		Mitigations:  append([]string(nil), mitigations...),
		SuccessRate:  successRate,
	}
}
