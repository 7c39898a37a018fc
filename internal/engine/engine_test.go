package engine

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kevanbtc/donkey-financial-ecosystem/internal/incentives"
)

// newTestEngine pins the evaluation date so deadline-gated incentives behave
// deterministically: after the 2024 application deadlines, well before the
// 2032 federal ones.
func newTestEngine() *Engine {
	evaluator := incentives.NewEvaluatorAt(func() time.Time {
		return time.Date(2025, time.June, 15, 12, 0, 0, 0, time.UTC)
	})
	return NewWithEvaluator(incentives.NewCatalog(), evaluator)
}

func floatPtr(v float64) *float64 { return &v }

func intPtr(v int) *int { return &v }

func residentialSolarInput() ProjectInput {
	return ProjectInput{
		ProjectID:           "RES_2024_TAMPA_001",
		ProjectType:         "residential solar installation",
		BuildingType:        BuildingResidential,
		State:               "FL",
		City:                "Tampa",
		UtilityProvider:     "TECO",
		ProjectCost:         decimal.NewFromInt(25000),
		ProjectSize:         floatPtr(8.0),
		SystemCapacityKW:    floatPtr(8.0),
		AnnualProductionKWh: floatPtr(12000),
		TotalWorkers:        intPtr(4),
		LocalWorkers:        intPtr(4),
		TotalHours:          floatPtr(200),
		Incidents:           intPtr(0),
		NearMisses:          intPtr(0),
	}
}

func TestProcessValidation(t *testing.T) {
	eng := newTestEngine()

	tests := []struct {
		name  string
		input ProjectInput
		field string
	}{
		{
			name:  "missing project id",
			input: ProjectInput{ProjectCost: decimal.NewFromInt(1000)},
			field: "project_id",
		},
		{
			name: "negative cost",
			input: ProjectInput{
				ProjectID:   "p1",
				ProjectCost: decimal.NewFromInt(-5),
			},
			field: "project_cost",
		},
		{
			name: "zero total workers would divide the hire rate by zero",
			input: ProjectInput{
				ProjectID:    "p1",
				ProjectCost:  decimal.NewFromInt(1000),
				TotalWorkers: intPtr(0),
				LocalWorkers: intPtr(0),
			},
			field: "total_workers",
		},
		{
			name: "zero total hours would divide the safety rates by zero",
			input: ProjectInput{
				ProjectID:   "p1",
				ProjectCost: decimal.NewFromInt(1000),
				TotalHours:  floatPtr(0),
			},
			field: "total_hours",
		},
		{
			name: "non-positive baseline usage would divide the improvement by zero",
			input: ProjectInput{
				ProjectID:           "p1",
				ProjectType:         "energy efficiency retrofit",
				ProjectCost:         decimal.NewFromInt(1000),
				BaselineEnergyUsage: floatPtr(0),
			},
			field: "baseline_energy_usage",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := eng.Process(context.Background(), tt.input)
			require.Error(t, err)

			var vErr *ValidationError
			require.ErrorAs(t, err, &vErr)
			assert.Equal(t, tt.field, vErr.Field)
		})
	}
}

func TestProcessResidentialSolarEndToEnd(t *testing.T) {
	eng := newTestEngine()

	report, err := eng.Process(context.Background(), residentialSolarInput())
	require.NoError(t, err)

	assert.Equal(t, "RES_2024_TAMPA_001", report.ProjectID)
	assert.NotEmpty(t, report.ReportID)

	// The federal 30% ITC applies: 25000 * 0.30 = 7500. With Tampa and
	// TECO matching nothing and the FL rebate expired, it is the only line.
	require.Len(t, report.Incentives, 1)
	itc := report.Incentives[0]
	assert.Equal(t, "ITC_SOLAR_2024", itc.IncentiveID)
	assert.True(t, itc.Value.Equal(decimal.NewFromInt(7500)), "got %s", itc.Value)

	assert.True(t, report.TotalIncentiveValue.Equal(decimal.NewFromInt(7500)),
		"total %s", report.TotalIncentiveValue)
	assert.True(t, report.NetProjectCost.Equal(decimal.NewFromInt(17500)),
		"net %s", report.NetProjectCost)
	assert.InDelta(t, 30.0, report.ROIImprovement, 0.001)
}

func TestProcessRecordsDerivedMetrics(t *testing.T) {
	eng := newTestEngine()

	_, err := eng.Process(context.Background(), residentialSolarInput())
	require.NoError(t, err)

	metrics := eng.Store().MetricsFor("RES_2024_TAMPA_001")

	// Renewable generation + local hiring + the two safety rates.
	require.Len(t, metrics, 4)
	assert.Equal(t, "renewable_energy_solar_pv", metrics[0].Name)
	assert.Equal(t, 8.0, metrics[0].Value)
	assert.Equal(t, "local_hire_rate", metrics[1].Name)
	assert.InDelta(t, 100.0, metrics[1].Value, 1e-9)
	assert.Equal(t, "osha_incident_rate", metrics[2].Name)
	assert.Equal(t, "near_miss_rate", metrics[3].Name)
}

func TestProcessAppliesDefaultsForAbsentFields(t *testing.T) {
	eng := newTestEngine()

	input := ProjectInput{
		ProjectID:    "DEFAULTS_001",
		ProjectType:  "warehouse energy efficiency retrofit",
		BuildingType: BuildingCommercial,
		State:        "FL",
		ProjectCost:  decimal.NewFromInt(100000),
	}

	_, err := eng.Process(context.Background(), input)
	require.NoError(t, err)

	metrics := eng.Store().MetricsFor("DEFAULTS_001")
	require.Len(t, metrics, 4)

	efficiency := metrics[0]
	assert.Equal(t, "energy_efficiency_improvement", efficiency.Name)
	// Default baseline 100000 -> projected 70000 is a 30% improvement.
	assert.InDelta(t, 30.0, efficiency.Value, 1e-9)

	hiring := metrics[1]
	// Default 8 of 10 workers local.
	assert.InDelta(t, 80.0, hiring.Value, 1e-9)
}

func TestProcessScoreMatchesDirectComposition(t *testing.T) {
	eng := newTestEngine()

	report, err := eng.Process(context.Background(), residentialSolarInput())
	require.NoError(t, err)

	rescored := eng.Score(context.Background(), "RES_2024_TAMPA_001")

	assert.Equal(t, report.Score.Environmental, rescored.Environmental)
	assert.Equal(t, report.Score.Social, rescored.Social)
	assert.Equal(t, report.Score.Governance, rescored.Governance)
	assert.Equal(t, report.Score.Overall, rescored.Overall)
}

func TestProcessZeroCostROIIsZero(t *testing.T) {
	eng := newTestEngine()

	input := ProjectInput{
		ProjectID:    "FREEBIE_001",
		ProjectType:  "residential solar installation",
		BuildingType: BuildingResidential,
		State:        "FL",
		ProjectCost:  decimal.Zero,
	}

	report, err := eng.Process(context.Background(), input)
	require.NoError(t, err)

	assert.Zero(t, report.ROIImprovement)
	// Only the percentage-based ITC applies, and 30% of zero is zero.
	assert.True(t, report.TotalIncentiveValue.Equal(decimal.Zero))
}

func TestProcessUnknownScopesYieldNoIncentives(t *testing.T) {
	eng := newTestEngine()

	input := ProjectInput{
		ProjectID:       "NOWHERE_001",
		ProjectType:     "parking lot repaving",
		BuildingType:    "industrial",
		State:           "ZZ",
		City:            "Nowhere",
		UtilityProvider: "Mystery Electric",
		ProjectCost:     decimal.NewFromInt(50000),
	}

	report, err := eng.Process(context.Background(), input)
	require.NoError(t, err)

	assert.Empty(t, report.Incentives)
	assert.True(t, report.TotalIncentiveValue.Equal(decimal.Zero))
	assert.True(t, report.NetProjectCost.Equal(decimal.NewFromInt(50000)))
	assert.Zero(t, report.ROIImprovement)
}

func TestProcessCommercialSolarStacksScopes(t *testing.T) {
	eng := newTestEngine()

	input := ProjectInput{
		ProjectID:           "STORM_2024_MIAMI_001",
		ProjectType:         "storm restoration with solar installation",
		BuildingType:        BuildingCommercial,
		State:               "FL",
		City:                "Miami",
		UtilityProvider:     "Florida Power & Light",
		ProjectCost:         decimal.NewFromInt(250000),
		ProjectSize:         floatPtr(50.0),
		SystemCapacityKW:    floatPtr(50.0),
		AnnualProductionKWh: floatPtr(75000),
		TotalWorkers:        intPtr(15),
		LocalWorkers:        intPtr(12),
		TotalHours:          floatPtr(3000),
		Incidents:           intPtr(0),
		NearMisses:          intPtr(1),
	}

	report, err := eng.Process(context.Background(), input)
	require.NoError(t, err)

	values := make(map[string]decimal.Decimal, len(report.Incentives))
	for _, line := range report.Incentives {
		values[line.IncentiveID] = line.Value
	}

	// ITC: 30% of 250000.
	require.Contains(t, values, "ITC_SOLAR_2024")
	assert.True(t, values["ITC_SOLAR_2024"].Equal(decimal.NewFromInt(75000)))

	// 179D is per-unit: 5.36 * size 50.
	require.Contains(t, values, "179D_DEDUCTION_2024")
	assert.True(t, values["179D_DEDUCTION_2024"].Equal(decimal.NewFromInt(268)),
		"got %s", values["179D_DEDUCTION_2024"])

	// PACE qualifies on the commercial signal but carries no dollar value.
	require.Contains(t, values, "FL_PACE_2024")
	assert.True(t, values["FL_PACE_2024"].Equal(decimal.Zero))

	// "Miami" does not resolve to the Miami-Dade table key, and the full
	// utility name does not resolve to the FPL key.
	assert.NotContains(t, values, "MIAMI_SOLAR_REBATE_2024")
	assert.NotContains(t, values, "FPL_SOLAR_REBATE_2024")

	assert.True(t, report.TotalIncentiveValue.Equal(decimal.NewFromInt(75268)),
		"total %s", report.TotalIncentiveValue)
}

func TestProcessCarriesStackingFlagThrough(t *testing.T) {
	eng := newTestEngine()

	report, err := eng.Process(context.Background(), residentialSolarInput())
	require.NoError(t, err)

	require.NotEmpty(t, report.Incentives)
	for _, line := range report.Incentives {
		assert.True(t, line.StackingAllowed, "builtin incentives all allow stacking")
	}
}

func TestProcessWorsenedUsageFloorsEnvironmentalScore(t *testing.T) {
	eng := newTestEngine()

	// Projected usage far above baseline: the improvement metric goes deep
	// negative and must floor the category at 0 instead of dragging the
	// overall score negative.
	input := ProjectInput{
		ProjectID:            "REGRESS_001",
		ProjectType:          "warehouse energy efficiency retrofit",
		BuildingType:         BuildingCommercial,
		State:                "FL",
		ProjectCost:          decimal.NewFromInt(80000),
		BaselineEnergyUsage:  floatPtr(10000),
		ProjectedEnergyUsage: floatPtr(200000),
	}

	report, err := eng.Process(context.Background(), input)
	require.NoError(t, err)

	assert.Equal(t, 0.0, report.Score.Environmental)
	assert.GreaterOrEqual(t, report.Score.Overall, 0.0)
	// Negative offsets never accrue credits.
	assert.Nil(t, report.CarbonCredit)
}

func TestProcessReportsCarbonCredits(t *testing.T) {
	eng := newTestEngine()

	input := ProjectInput{
		ProjectID:            "RETRO_001",
		ProjectType:          "warehouse energy efficiency retrofit",
		BuildingType:         BuildingCommercial,
		State:                "FL",
		ProjectCost:          decimal.NewFromInt(80000),
		SquareFootage:        floatPtr(10000),
		BaselineEnergyUsage:  floatPtr(120000),
		ProjectedEnergyUsage: floatPtr(80000),
	}

	report, err := eng.Process(context.Background(), input)
	require.NoError(t, err)

	require.NotNil(t, report.CarbonCredit)
	assert.InDelta(t, 280.0, report.CarbonCredit.TonsOffset, 1e-9)
	assert.True(t, report.CarbonCredit.TotalValue.Equal(decimal.NewFromInt(14000)))
}

func TestEligibleIncentivesQueriesAllScopes(t *testing.T) {
	// Pin the clock before the 2024 application deadlines so the state and
	// locality scopes contribute.
	evaluator := incentives.NewEvaluatorAt(func() time.Time {
		return time.Date(2024, time.June, 15, 12, 0, 0, 0, time.UTC)
	})
	eng := NewWithEvaluator(incentives.NewCatalog(), evaluator)

	input := ProjectInput{
		ProjectID:       "SCOPES_001",
		ProjectType:     "residential solar installation",
		BuildingType:    BuildingResidential,
		State:           "FL",
		City:            "Miami Dade",
		UtilityProvider: "FPL",
		ProjectCost:     decimal.NewFromInt(25000),
	}

	eligible := eng.EligibleIncentives(context.Background(), input)

	ids := make([]string, 0, len(eligible))
	for _, inc := range eligible {
		ids = append(ids, inc.ID)
	}

	// Federal, state, locality, utility, in that order.
	assert.Equal(t, []string{
		"ITC_SOLAR_2024",
		"FL_SOLAR_REBATE_2024",
		"MIAMI_SOLAR_REBATE_2024",
		"FPL_SOLAR_REBATE_2024",
	}, ids)
}

func TestTrackerSurfaceFeedsScore(t *testing.T) {
	eng := newTestEngine()
	ctx := context.Background()

	eng.Tracker().TrackWasteDiversion(ctx, "MANUAL_001", 200, 150)
	eng.Tracker().TrackCompliance(ctx, "MANUAL_001", 98, 95, 92)
	eng.Tracker().TrackCertifications(ctx, "MANUAL_001", []string{"LEED Gold"})

	score := eng.Score(ctx, "MANUAL_001")

	assert.Greater(t, score.Environmental, 50.0)
	assert.Greater(t, score.Governance, 50.0)
	assert.Equal(t, 50.0, score.Social)
}
