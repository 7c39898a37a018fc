package incentives

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fixedClock pins the evaluation date for deterministic tests.
func fixedClock(year int, month time.Month, day int) func() time.Time {
	return func() time.Time {
		return time.Date(year, month, day, 12, 0, 0, 0, time.UTC)
	}
}

func TestIsEligibleCriteriaSignals(t *testing.T) {
	evaluator := NewEvaluatorAt(fixedClock(2024, time.June, 1))

	tests := []struct {
		name     string
		criteria []string
		project  ProjectProfile
		want     bool
	}{
		{
			name:     "solar criterion matches solar project",
			criteria: []string{"Solar PV system installation"},
			project:  ProjectProfile{ProjectType: "residential solar installation"},
			want:     true,
		},
		{
			name:     "solar criterion rejects wind project",
			criteria: []string{"Solar PV system installation"},
			project:  ProjectProfile{ProjectType: "wind turbine retrofit"},
			want:     false,
		},
		{
			name:     "wind criterion matches wind project",
			criteria: []string{"Wind energy facility"},
			project:  ProjectProfile{ProjectType: "offshore wind farm"},
			want:     true,
		},
		{
			name:     "energy efficiency criterion matches efficiency project",
			criteria: []string{"Energy efficiency or renewable energy project"},
			project:  ProjectProfile{ProjectType: "hvac efficiency upgrade"},
			want:     true,
		},
		{
			name:     "commercial criterion matches commercial building",
			criteria: []string{"Commercial building"},
			project:  ProjectProfile{ProjectType: "roof replacement", BuildingType: "commercial"},
			want:     true,
		},
		{
			name:     "residential criterion matches residential building",
			criteria: []string{"Residential property owner"},
			project:  ProjectProfile{ProjectType: "roof replacement", BuildingType: "residential"},
			want:     true,
		},
		{
			name:     "resident alone is not a residential signal",
			criteria: []string{"New York State resident"},
			project:  ProjectProfile{ProjectType: "roof replacement", BuildingType: "residential"},
			want:     false,
		},
		{
			name:     "one signal among inert criteria suffices",
			criteria: []string{"System must meet IRS guidelines", "Solar PV system installation"},
			project:  ProjectProfile{ProjectType: "solar carport"},
			want:     true,
		},
		{
			name:     "inert criteria alone never qualify",
			criteria: []string{"System must meet IRS guidelines", "Prevailing wage requirements met"},
			project:  ProjectProfile{ProjectType: "solar carport"},
			want:     false,
		},
		{
			name:     "matching is case-insensitive",
			criteria: []string{"SOLAR pv SYSTEM"},
			project:  ProjectProfile{ProjectType: "Residential SOLAR Installation"},
			want:     true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			inc := Incentive{ID: "TEST", EligibilityCriteria: tt.criteria}
			assert.Equal(t, tt.want, evaluator.IsEligible(inc, tt.project))
		})
	}
}

func TestIsEligibleDeadlines(t *testing.T) {
	project := ProjectProfile{ProjectType: "residential solar installation"}
	criteria := []string{"Solar PV system installation"}

	tests := []struct {
		name      string
		incentive Incentive
		today     func() time.Time
		want      bool
	}{
		{
			name: "application deadline in the past rejects despite criteria match",
			incentive: Incentive{
				EligibilityCriteria: criteria,
				ApplicationDeadline: NewDate(2024, time.December, 31),
			},
			today: fixedClock(2025, time.January, 1),
			want:  false,
		},
		{
			name: "application deadline day itself is still eligible",
			incentive: Incentive{
				EligibilityCriteria: criteria,
				ApplicationDeadline: NewDate(2024, time.December, 31),
			},
			today: fixedClock(2024, time.December, 31),
			want:  true,
		},
		{
			name: "completion deadline in the past rejects",
			incentive: Incentive{
				EligibilityCriteria:       criteria,
				ProjectCompletionDeadline: NewDate(2025, time.December, 31),
			},
			today: fixedClock(2026, time.June, 1),
			want:  false,
		},
		{
			name: "no deadlines, criteria decide",
			incentive: Incentive{
				EligibilityCriteria: criteria,
			},
			today: fixedClock(2030, time.June, 1),
			want:  true,
		},
		{
			name: "start deadline is not an eligibility gate",
			incentive: Incentive{
				EligibilityCriteria:  criteria,
				ProjectStartDeadline: NewDate(2020, time.January, 1),
			},
			today: fixedClock(2026, time.June, 1),
			want:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			evaluator := NewEvaluatorAt(tt.today)
			assert.Equal(t, tt.want, evaluator.IsEligible(tt.incentive, project))
		})
	}
}

func TestEligibleFromPreservesOrder(t *testing.T) {
	evaluator := NewEvaluatorAt(fixedClock(2024, time.June, 1))
	project := ProjectProfile{ProjectType: "solar installation"}

	incs := []Incentive{
		{ID: "A", EligibilityCriteria: []string{"Solar PV system"}},
		{ID: "B", EligibilityCriteria: []string{"Wind energy facility"}},
		{ID: "C", EligibilityCriteria: []string{"Solar energy device"}},
	}

	eligible := evaluator.EligibleFrom(context.Background(), incs, project)

	require.Len(t, eligible, 2)
	assert.Equal(t, "A", eligible[0].ID)
	assert.Equal(t, "C", eligible[1].ID)
}

func TestDateParsingAndComparison(t *testing.T) {
	d, err := ParseDate("2024-12-31")
	require.NoError(t, err)
	assert.Equal(t, "2024-12-31", d.String())
	assert.False(t, d.IsZero())

	later := NewDate(2025, time.January, 1)
	assert.True(t, later.After(d))
	assert.False(t, d.After(d))

	_, err = ParseDate("12/31/2024")
	assert.Error(t, err)

	var zero Date
	assert.True(t, zero.IsZero())
	assert.Equal(t, "", zero.String())
}
