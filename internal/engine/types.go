// Package engine orchestrates ESG metric recording, score composition, and
// incentive matching into a single per-project report.
package engine

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/kevanbtc/donkey-financial-ecosystem/internal/esg"
	"github.com/kevanbtc/donkey-financial-ecosystem/internal/incentives"
)

// Building types with eligibility significance.
const (
	BuildingCommercial  = "commercial"
	BuildingResidential = "residential"
)

// Documented defaults applied when optional project fields are absent.
const (
	DefaultSystemCapacityKW    = 10.0
	DefaultAnnualProductionKWh = 15000.0
	DefaultSquareFootage       = 5000.0
	DefaultBaselineEnergyUsage = 100000.0
	DefaultProjectedEnergyUsage = 70000.0
	DefaultTotalWorkers        = 10
	DefaultLocalWorkers        = 8
	DefaultTotalHours          = 2000.0
	DefaultIncidents           = 0
	DefaultNearMisses          = 2
)

// ProjectInput is the caller-supplied attribute bag for one project. Pointer
// fields are optional: nil means "not supplied", and the documented default
// applies where a derived metric needs the value. The engine does not retain
// the input beyond what is written into the metric store.
type ProjectInput struct {
	ProjectID    string `json:"project_id" yaml:"project_id"`
	ProjectType  string `json:"project_type" yaml:"project_type"`
	BuildingType string `json:"building_type" yaml:"building_type"`

	State           string `json:"state" yaml:"state"`
	City            string `json:"city" yaml:"city"`
	UtilityProvider string `json:"utility_provider" yaml:"utility_provider"`

	ProjectCost decimal.Decimal `json:"project_cost" yaml:"project_cost"`

	// ProjectSize drives per-unit incentive valuation (kW for solar,
	// sqft for efficiency deductions).
	ProjectSize *float64 `json:"project_size,omitempty" yaml:"project_size,omitempty"`

	SystemCapacityKW     *float64 `json:"system_capacity_kw,omitempty" yaml:"system_capacity_kw,omitempty"`
	AnnualProductionKWh  *float64 `json:"annual_production_kwh,omitempty" yaml:"annual_production_kwh,omitempty"`
	SquareFootage        *float64 `json:"square_footage,omitempty" yaml:"square_footage,omitempty"`
	BaselineEnergyUsage  *float64 `json:"baseline_energy_usage,omitempty" yaml:"baseline_energy_usage,omitempty"`
	ProjectedEnergyUsage *float64 `json:"projected_energy_usage,omitempty" yaml:"projected_energy_usage,omitempty"`

	TotalWorkers *int     `json:"total_workers,omitempty" yaml:"total_workers,omitempty"`
	LocalWorkers *int     `json:"local_workers,omitempty" yaml:"local_workers,omitempty"`
	TotalHours   *float64 `json:"total_hours,omitempty" yaml:"total_hours,omitempty"`
	Incidents    *int     `json:"incidents,omitempty" yaml:"incidents,omitempty"`
	NearMisses   *int     `json:"near_misses,omitempty" yaml:"near_misses,omitempty"`
}

// Profile extracts the attributes the eligibility evaluator inspects.
func (p ProjectInput) Profile() incentives.ProjectProfile {
	return incentives.ProjectProfile{
		ProjectType:  p.ProjectType,
		BuildingType: p.BuildingType,
	}
}

// IncentiveLine is one priced incentive in a report, in catalog order.
type IncentiveLine struct {
	IncentiveID string                   `json:"incentive_id"`
	Name        string                   `json:"name"`
	Type        incentives.IncentiveType `json:"type"`
	Value       decimal.Decimal          `json:"value"`

	RequiresPreApproval bool `json:"requires_pre_approval"`

	// StackingAllowed is surfaced so callers can apply their own stacking
	// policy; the total below sums every line unconditionally.
	StackingAllowed bool `json:"stacking_allowed"`

	ApplicationDeadline incentives.Date `json:"application_deadline,omitempty"`
}

// Report is the merged per-project output: the ESG score plus every
// eligible incentive priced against the project. Reports are reconstructed
// per call and never persisted by the engine.
type Report struct {
	ReportID    string    `json:"report_id"`
	ProjectID   string    `json:"project_id"`
	GeneratedAt time.Time `json:"generated_at"`

	Score esg.Score `json:"esg_score"`

	Incentives          []IncentiveLine `json:"available_incentives"`
	TotalIncentiveValue decimal.Decimal `json:"total_incentive_value"`
	NetProjectCost      decimal.Decimal `json:"net_project_cost"`

	// ROIImprovement is total incentive value as a percentage of project
	// cost, defined as 0 when the cost is 0.
	ROIImprovement float64 `json:"roi_improvement"`

	// CarbonCredit is present when the project accrued carbon credits
	// while its metrics were recorded.
	CarbonCredit *esg.CarbonCredit `json:"carbon_credit,omitempty"`
}

// ValidationError reports malformed project input. It is caller-surfaced
// and non-retryable.
type ValidationError struct {
	Field  string
	Reason string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid project input: %s %s", e.Field, e.Reason)
}
