package esg

import (
	"context"
	"fmt"
	"time"

	"github.com/kevanbtc/donkey-financial-ecosystem/internal/logging"
)

// gridCarbonFactor is the average tons of CO2 displaced per kWh of grid
// electricity avoided or generated renewably.
const gridCarbonFactor = 0.0007

// oshaHoursBase normalizes incident counts to the OSHA standard reporting
// base of 200,000 worked hours.
const oshaHoursBase = 200000.0

// Tracker records derived ESG metrics into a Store and maintains the carbon
// credit ledger for offsets produced along the way. One Tracker serves all
// projects; it carries no per-project state beyond the store and ledger.
type Tracker struct {
	store  *Store
	ledger *CreditLedger
}

// NewTracker creates a Tracker appending to store.
func NewTracker(store *Store) *Tracker {
	return &Tracker{store: store, ledger: NewCreditLedger()}
}

// Ledger exposes the carbon credit ledger accumulated by this tracker.
func (t *Tracker) Ledger() *CreditLedger {
	return t.ledger
}

// TrackEnergyEfficiency records the efficiency improvement of a retrofit as
// a percentage reduction from the baseline energy usage, along with the
// implied carbon offset. Offsets above zero accrue carbon credits.
func (t *Tracker) TrackEnergyEfficiency(
	ctx context.Context,
	projectID string,
	squareFootage, baselineUsage, actualUsage float64,
) Metric {
	improvement := (baselineUsage - actualUsage) / baselineUsage * 100
	offset := (baselineUsage - actualUsage) * gridCarbonFactor * squareFootage / 1000

	m := t.store.Record(Metric{
		Category:           CategoryEnvironmental,
		Name:               "energy_efficiency_improvement",
		Value:              improvement,
		Unit:               "percentage",
		Timestamp:          time.Now(),
		ProjectID:          projectID,
		VerificationMethod: "energy_modeling_software",
		ThirdPartyVerified: true,
		CarbonOffsetTons:   &offset,
	})

	if offset > 0 {
		t.ledger.Accrue(projectID, offset)
	}

	logging.FromContext(ctx).Debug().
		Str("component", "esg").
		Str("project_id", projectID).
		Float64("improvement_pct", improvement).
		Float64("carbon_offset_tons", offset).
		Msg("recorded energy efficiency metric")

	return m
}

// TrackRenewableEnergy records a renewable installation. The metric name
// embeds the system type (renewable_energy_solar_pv, ...) and the value is
// the installed capacity in kW. The carbon offset derives from annual
// production against the grid average.
func (t *Tracker) TrackRenewableEnergy(
	ctx context.Context,
	projectID, systemType string,
	capacityKW, annualProductionKWh float64,
) Metric {
	offset := annualProductionKWh * gridCarbonFactor

	m := t.store.Record(Metric{
		Category:           CategoryEnvironmental,
		Name:               fmt.Sprintf("renewable_energy_%s", systemType),
		Value:              capacityKW,
		Unit:               "kW_capacity",
		Timestamp:          time.Now(),
		ProjectID:          projectID,
		VerificationMethod: "utility_interconnection_agreement",
		ThirdPartyVerified: true,
		CarbonOffsetTons:   &offset,
	})

	logging.FromContext(ctx).Debug().
		Str("component", "esg").
		Str("project_id", projectID).
		Str("system_type", systemType).
		Float64("capacity_kw", capacityKW).
		Msg("recorded renewable energy metric")

	return m
}

// TrackWaterEfficiency records the percentage reduction in water usage
// against a baseline. Meter readings are self-reported, so the metric is not
// third-party verified.
func (t *Tracker) TrackWaterEfficiency(ctx context.Context, projectID string, baselineUsage, improvedUsage float64) Metric {
	savings := (baselineUsage - improvedUsage) / baselineUsage * 100

	return t.store.Record(Metric{
		Category:           CategoryEnvironmental,
		Name:               "water_efficiency_improvement",
		Value:              savings,
		Unit:               "percentage",
		Timestamp:          time.Now(),
		ProjectID:          projectID,
		VerificationMethod: "water_meter_readings",
	})
}

// TrackWasteDiversion records the share of construction waste diverted from
// landfills.
func (t *Tracker) TrackWasteDiversion(ctx context.Context, projectID string, totalWaste, divertedWaste float64) Metric {
	rate := divertedWaste / totalWaste * 100

	return t.store.Record(Metric{
		Category:           CategoryEnvironmental,
		Name:               "waste_diversion_rate",
		Value:              rate,
		Unit:               "percentage",
		Timestamp:          time.Now(),
		ProjectID:          projectID,
		VerificationMethod: "waste_management_receipts",
		ThirdPartyVerified: true,
	})
}

// TrackLocalHiring records the share of workers hired locally.
func (t *Tracker) TrackLocalHiring(ctx context.Context, projectID string, totalWorkers, localWorkers int) Metric {
	rate := float64(localWorkers) / float64(totalWorkers) * 100

	return t.store.Record(Metric{
		Category:           CategorySocial,
		Name:               "local_hire_rate",
		Value:              rate,
		Unit:               "percentage",
		Timestamp:          time.Now(),
		ProjectID:          projectID,
		VerificationMethod: "payroll_address_verification",
	})
}

// TrackDiversityHiring records minority, women, and veteran hire rates as
// three separate metrics, returned in that order.
func (t *Tracker) TrackDiversityHiring(
	ctx context.Context,
	projectID string,
	totalWorkers, minorityWorkers, womenWorkers, veteranWorkers int,
) []Metric {
	now := time.Now()
	total := float64(totalWorkers)

	rates := []struct {
		name   string
		count  int
		method string
	}{
		{"minority_hire_rate", minorityWorkers, "self_identification_forms"},
		{"women_hire_rate", womenWorkers, "self_identification_forms"},
		{"veteran_hire_rate", veteranWorkers, "dd214_verification"},
	}

	metrics := make([]Metric, 0, len(rates))
	for _, r := range rates {
		metrics = append(metrics, t.store.Record(Metric{
			Category:           CategorySocial,
			Name:               r.name,
			Value:              float64(r.count) / total * 100,
			Unit:               "percentage",
			Timestamp:          now,
			ProjectID:          projectID,
			VerificationMethod: r.method,
		}))
	}
	return metrics
}

// TrackApprenticeship records the share of worked hours performed by
// registered apprentices.
func (t *Tracker) TrackApprenticeship(ctx context.Context, projectID string, totalHours, apprenticeHours float64) Metric {
	rate := apprenticeHours / totalHours * 100

	return t.store.Record(Metric{
		Category:           CategorySocial,
		Name:               "apprenticeship_rate",
		Value:              rate,
		Unit:               "percentage",
		Timestamp:          time.Now(),
		ProjectID:          projectID,
		VerificationMethod: "union_training_records",
	})
}

// TrackSafety records the OSHA recordable incident rate and the near-miss
// reporting rate, both normalized per 200,000 worked hours. Returns the two
// metrics in that order.
func (t *Tracker) TrackSafety(ctx context.Context, projectID string, totalHours float64, incidents, nearMisses int) []Metric {
	now := time.Now()

	incidentMetric := t.store.Record(Metric{
		Category:           CategorySocial,
		Name:               "osha_incident_rate",
		Value:              float64(incidents) / totalHours * oshaHoursBase,
		Unit:               "incidents_per_200k_hours",
		Timestamp:          now,
		ProjectID:          projectID,
		VerificationMethod: "osha_logs",
	})

	nearMissMetric := t.store.Record(Metric{
		Category:           CategorySocial,
		Name:               "near_miss_rate",
		Value:              float64(nearMisses) / totalHours * oshaHoursBase,
		Unit:               "near_misses_per_200k_hours",
		Timestamp:          now,
		ProjectID:          projectID,
		VerificationMethod: "safety_reporting_system",
	})

	return []Metric{incidentMetric, nearMissMetric}
}

// TrackCompliance records permit, safety, and environmental compliance
// scores as three governance metrics, returned in that order.
func (t *Tracker) TrackCompliance(
	ctx context.Context,
	projectID string,
	permitCompliance, safetyCompliance, environmentalCompliance float64,
) []Metric {
	now := time.Now()

	scores := []struct {
		name  string
		value float64
	}{
		{"permit_compliance", permitCompliance},
		{"safety_compliance", safetyCompliance},
		{"environmental_compliance", environmentalCompliance},
	}

	metrics := make([]Metric, 0, len(scores))
	for _, s := range scores {
		metrics = append(metrics, t.store.Record(Metric{
			Category:           CategoryGovernance,
			Name:               s.name,
			Value:              s.value,
			Unit:               "percentage",
			Timestamp:          now,
			ProjectID:          projectID,
			VerificationMethod: "regulatory_audit",
		}))
	}
	return metrics
}

// TrackCertifications records the count of certifications (LEED, Energy
// Star, ...) held by a project.
func (t *Tracker) TrackCertifications(ctx context.Context, projectID string, certifications []string) Metric {
	return t.store.Record(Metric{
		Category:           CategoryGovernance,
		Name:               "certification_count",
		Value:              float64(len(certifications)),
		Unit:               "count",
		Timestamp:          time.Now(),
		ProjectID:          projectID,
		VerificationMethod: "certification_body_verification",
	})
}
