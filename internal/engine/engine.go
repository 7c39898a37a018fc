package engine

import (
	"context"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/kevanbtc/donkey-financial-ecosystem/internal/esg"
	"github.com/kevanbtc/donkey-financial-ecosystem/internal/incentives"
	"github.com/kevanbtc/donkey-financial-ecosystem/internal/logging"
)

// roiMultiplier converts a cost fraction to a percentage.
var roiMultiplier = decimal.NewFromInt(100)

// Engine wires the metric store, score composer, catalog, and evaluator
// into the per-project processing pipeline. One Engine serves all projects;
// the catalog is read-only and the store shards by project, so concurrent
// Process calls for different projects never contend.
type Engine struct {
	store     *esg.Store
	tracker   *esg.Tracker
	composer  *esg.Composer
	catalog   *incentives.Catalog
	evaluator *incentives.Evaluator
}

// New creates an Engine over the given catalog with a fresh metric store
// and the system clock.
func New(catalog *incentives.Catalog) *Engine {
	return NewWithEvaluator(catalog, incentives.NewEvaluator())
}

// NewWithEvaluator creates an Engine with a caller-supplied evaluator,
// used by tests to pin the evaluation date.
func NewWithEvaluator(catalog *incentives.Catalog, evaluator *incentives.Evaluator) *Engine {
	store := esg.NewStore()
	return &Engine{
		store:     store,
		tracker:   esg.NewTracker(store),
		composer:  esg.NewComposer(store),
		catalog:   catalog,
		evaluator: evaluator,
	}
}

// Tracker exposes the metric recording surface for callers that track
// observations beyond the derived set (water, waste, diversity, compliance,
// certifications, ...).
func (e *Engine) Tracker() *esg.Tracker {
	return e.tracker
}

// Store exposes the metric log for replay and inspection.
func (e *Engine) Store() *esg.Store {
	return e.store
}

// Score composes the current ESG score for a project from its metric log.
func (e *Engine) Score(ctx context.Context, projectID string) esg.Score {
	return e.composer.Score(ctx, projectID)
}

// EligibleIncentives queries the catalog across all four jurisdiction
// scopes and filters to the incentives the project qualifies for, in
// federal, state, locality, utility order.
func (e *Engine) EligibleIncentives(ctx context.Context, input ProjectInput) []incentives.Incentive {
	candidates := e.catalog.Federal()
	candidates = append(candidates, e.catalog.ForState(input.State)...)
	candidates = append(candidates, e.catalog.ForLocality(input.City, input.State)...)
	candidates = append(candidates, e.catalog.ForUtility(input.UtilityProvider)...)

	return e.evaluator.EligibleFrom(ctx, candidates, input.Profile())
}

// Process runs the full pipeline for one project: derived metric recording,
// score composition, and the catalog/evaluator/calculator chain, merged into
// a single report. The score and incentive pipelines share no state and run
// independently.
func (e *Engine) Process(ctx context.Context, input ProjectInput) (*Report, error) {
	if err := validate(input); err != nil {
		return nil, err
	}

	logger := logging.FromContext(ctx).With().
		Str("component", "engine").
		Str("project_id", input.ProjectID).
		Logger()

	e.recordDerivedMetrics(ctx, input)

	var (
		score esg.Score
		lines []IncentiveLine
		total decimal.Decimal
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		score = e.composer.Score(gctx, input.ProjectID)
		return nil
	})
	g.Go(func() error {
		lines, total = e.priceIncentives(gctx, input)
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	report := &Report{
		ReportID:            ulid.Make().String(),
		ProjectID:           input.ProjectID,
		GeneratedAt:         time.Now(),
		Score:               score,
		Incentives:          lines,
		TotalIncentiveValue: total,
		NetProjectCost:      input.ProjectCost.Sub(total),
		ROIImprovement:      roiImprovement(total, input.ProjectCost),
	}

	if credit, ok := e.tracker.Ledger().CreditFor(input.ProjectID); ok {
		report.CarbonCredit = &credit
	}

	logger.Info().
		Int("incentives", len(lines)).
		Str("total_incentive_value", total.String()).
		Msg("processed project")

	return report, nil
}

// validate enforces the input contract: a project ID is required, the cost
// must not be negative, and supplied denominators of derived metrics must be
// positive so rates never divide by zero.
func validate(input ProjectInput) error {
	if input.ProjectID == "" {
		return &ValidationError{Field: "project_id", Reason: "is required"}
	}
	if input.ProjectCost.IsNegative() {
		return &ValidationError{Field: "project_cost", Reason: "must not be negative"}
	}
	if input.TotalWorkers != nil && *input.TotalWorkers <= 0 {
		return &ValidationError{Field: "total_workers", Reason: "must be positive"}
	}
	if input.TotalHours != nil && *input.TotalHours <= 0 {
		return &ValidationError{Field: "total_hours", Reason: "must be positive"}
	}
	if input.BaselineEnergyUsage != nil && *input.BaselineEnergyUsage <= 0 {
		return &ValidationError{Field: "baseline_energy_usage", Reason: "must be positive"}
	}
	return nil
}

// recordDerivedMetrics appends the fixed metric set implied by the
// project's declared type: renewable generation for solar projects,
// efficiency improvement for energy-efficiency projects, and local-hiring
// plus safety metrics for every project. Absent fields take the documented
// defaults.
func (e *Engine) recordDerivedMetrics(ctx context.Context, input ProjectInput) {
	projectType := strings.ToLower(input.ProjectType)

	if strings.Contains(projectType, "solar") {
		e.tracker.TrackRenewableEnergy(ctx, input.ProjectID, "solar_pv",
			orFloat(input.SystemCapacityKW, DefaultSystemCapacityKW),
			orFloat(input.AnnualProductionKWh, DefaultAnnualProductionKWh))
	}

	if strings.Contains(projectType, "energy efficiency") {
		e.tracker.TrackEnergyEfficiency(ctx, input.ProjectID,
			orFloat(input.SquareFootage, DefaultSquareFootage),
			orFloat(input.BaselineEnergyUsage, DefaultBaselineEnergyUsage),
			orFloat(input.ProjectedEnergyUsage, DefaultProjectedEnergyUsage))
	}

	e.tracker.TrackLocalHiring(ctx, input.ProjectID,
		orInt(input.TotalWorkers, DefaultTotalWorkers),
		orInt(input.LocalWorkers, DefaultLocalWorkers))

	e.tracker.TrackSafety(ctx, input.ProjectID,
		orFloat(input.TotalHours, DefaultTotalHours),
		orInt(input.Incidents, DefaultIncidents),
		orInt(input.NearMisses, DefaultNearMisses))
}

// priceIncentives runs the catalog -> evaluator -> calculator chain and
// returns report lines in catalog order with their unconditional sum.
func (e *Engine) priceIncentives(ctx context.Context, input ProjectInput) ([]IncentiveLine, decimal.Decimal) {
	eligible := e.EligibleIncentives(ctx, input)

	lines := make([]IncentiveLine, 0, len(eligible))
	total := decimal.Zero
	for _, inc := range eligible {
		value := incentives.Value(inc, input.ProjectCost, input.ProjectSize)
		lines = append(lines, IncentiveLine{
			IncentiveID:         inc.ID,
			Name:                inc.Name,
			Type:                inc.Type,
			Value:               value,
			RequiresPreApproval: inc.RequiresPreApproval,
			StackingAllowed:     inc.StackingAllowed,
			ApplicationDeadline: inc.ApplicationDeadline,
		})
		total = total.Add(value)
	}

	return lines, total
}

// roiImprovement is the total incentive value as a percentage of cost,
// defined as 0 when the cost is 0 rather than an error.
func roiImprovement(total, cost decimal.Decimal) float64 {
	if cost.IsZero() {
		return 0
	}
	return total.Div(cost).Mul(roiMultiplier).InexactFloat64()
}

func orFloat(v *float64, def float64) float64 {
	if v != nil {
		return *v
	}
	return def
}

func orInt(v *int, def int) int {
	if v != nil {
		return *v
	}
	return def
}
