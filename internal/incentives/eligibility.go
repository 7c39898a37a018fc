package incentives

import (
	"context"
	"strings"
	"time"

	"github.com/kevanbtc/donkey-financial-ecosystem/internal/logging"
)

// Evaluator decides whether a project qualifies for an incentive.
//
// Criteria are matched as independent positive signals by case-insensitive
// substring correspondence: a single satisfied criterion qualifies the
// project, and criteria that match no known signal never block eligibility
// on their own. Deadlines are hard gates regardless of criteria.
type Evaluator struct {
	// now supplies the clock; overridable in tests. "Today" is read once
	// per evaluation pass for determinism within a single evaluation.
	now func() time.Time
}

// NewEvaluator creates an Evaluator using the system clock.
func NewEvaluator() *Evaluator {
	return &Evaluator{now: time.Now}
}

// NewEvaluatorAt creates an Evaluator with a fixed clock, for tests and
// what-if evaluations against a past or future date.
func NewEvaluatorAt(now func() time.Time) *Evaluator {
	return &Evaluator{now: now}
}

// IsEligible reports whether the project qualifies for the incentive as of
// today's date.
func (e *Evaluator) IsEligible(inc Incentive, project ProjectProfile) bool {
	return e.isEligibleOn(inc, project, DateOf(e.now()))
}

// EligibleFrom filters incentives down to those the project qualifies for,
// preserving input order. The current date is read once and applied to every
// incentive in the pass.
func (e *Evaluator) EligibleFrom(ctx context.Context, incs []Incentive, project ProjectProfile) []Incentive {
	logger := logging.FromContext(ctx).With().
		Str("component", "incentives").
		Str("operation", "EligibleFrom").
		Logger()

	today := DateOf(e.now())

	var eligible []Incentive
	for _, inc := range incs {
		if e.isEligibleOn(inc, project, today) {
			eligible = append(eligible, inc)
		} else {
			logger.Debug().Str("incentive_id", inc.ID).Msg("incentive rejected")
		}
	}
	return eligible
}

func (e *Evaluator) isEligibleOn(inc Incentive, project ProjectProfile, today Date) bool {
	projectType := strings.ToLower(project.ProjectType)

	criteriaMet := 0
	for _, criterion := range inc.EligibilityCriteria {
		lower := strings.ToLower(criterion)

		switch {
		case strings.Contains(lower, "solar") && strings.Contains(projectType, "solar"):
			criteriaMet++
		case strings.Contains(lower, "wind") && strings.Contains(projectType, "wind"):
			criteriaMet++
		case strings.Contains(lower, "energy efficiency") && strings.Contains(projectType, "efficiency"):
			criteriaMet++
		case strings.Contains(lower, "commercial") && project.BuildingType == "commercial":
			criteriaMet++
		case strings.Contains(lower, "residential") && project.BuildingType == "residential":
			criteriaMet++
		}
	}

	// Expired deadlines disqualify regardless of criteria.
	if !inc.ApplicationDeadline.IsZero() && today.After(inc.ApplicationDeadline) {
		return false
	}
	if !inc.ProjectCompletionDeadline.IsZero() && today.After(inc.ProjectCompletionDeadline) {
		return false
	}

	return criteriaMet > 0
}
