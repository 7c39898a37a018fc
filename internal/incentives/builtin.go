package incentives

import (
	"time"

	"github.com/shopspring/decimal"
)

// Builtin incentive tables. Each builder returns fresh slices so a catalog
// never shares backing arrays with another.

func pctPtr(v float64) *float64 { return &v }

func decPtr(d decimal.Decimal) *decimal.Decimal { return &d }

func builtinFederal() []Incentive {
	return []Incentive{
		{
			ID:         "ITC_SOLAR_2024",
			Name:       "Solar Investment Tax Credit",
			Type:       FederalTaxCredit,
			Amount:     decimal.Zero,
			Percentage: pctPtr(30.0),
			State:      "ALL",
			EligibilityCriteria: []string{
				"Solar PV system installation",
				"System must be placed in service by Dec 31, 2032",
				"System must meet IRS guidelines",
			},
			ProjectStartDeadline:      NewDate(2032, time.December, 31),
			ProjectCompletionDeadline: NewDate(2032, time.December, 31),
			StackingAllowed:           true,
			ClawbackProvisions:        []string{"System must remain in service for 5 years"},
		},
		{
			ID:     "PTC_WIND_2024",
			Name:   "Wind Production Tax Credit",
			Type:   FederalTaxCredit,
			Amount: decimal.NewFromInt(28),
			State:  "ALL",
			EligibilityCriteria: []string{
				"Wind energy facility",
				"Construction begins before Jan 1, 2025",
			},
			ProjectStartDeadline: NewDate(2024, time.December, 31),
			StackingAllowed:      true,
		},
		{
			ID:     "179D_DEDUCTION_2024",
			Name:   "179D Energy Efficient Commercial Buildings Deduction",
			Type:   FederalTaxCredit,
			Amount: decimal.NewFromFloat(5.36),
			State:  "ALL",
			EligibilityCriteria: []string{
				"Commercial building",
				"50%+ energy reduction vs ASHRAE standard",
				"Prevailing wage requirements met",
			},
			StackingAllowed: true,
		},
		{
			ID:     "45L_CREDIT_2024",
			Name:   "45L New Energy Efficient Home Credit",
			Type:   FederalTaxCredit,
			Amount: decimal.NewFromInt(5000),
			State:  "ALL",
			EligibilityCriteria: []string{
				"Qualified new home",
				"Energy Star or equivalent certification",
				"Meets prevailing wage requirements",
			},
			ProjectCompletionDeadline: NewDate(2032, time.December, 31),
			StackingAllowed:           true,
		},
	}
}

func builtinState() map[string][]Incentive {
	return map[string][]Incentive{
		"FL": {
			{
				ID:        "FL_SOLAR_REBATE_2024",
				Name:      "Florida Solar Rebate Program",
				Type:      StateTaxCredit,
				Amount:    decimal.Zero,
				MaxAmount: decPtr(decimal.NewFromInt(20000)),
				State:     "FL",
				EligibilityCriteria: []string{
					"Florida resident",
					"Solar PV system",
					"System size 2kW minimum",
				},
				ApplicationDeadline: NewDate(2024, time.December, 31),
				RequiresPreApproval: true,
				StackingAllowed:     true,
			},
			{
				ID:        "FL_PACE_2024",
				Name:      "Florida PACE Financing",
				Type:      PACEFinancing,
				Amount:    decimal.Zero,
				MaxAmount: decPtr(decimal.NewFromInt(1000000)),
				State:     "FL",
				EligibilityCriteria: []string{
					"Commercial or industrial property",
					"Energy efficiency or renewable energy project",
				},
				RequiresPreApproval: true,
				StackingAllowed:     true,
			},
		},
		"TX": {
			{
				ID:         "TX_SOLAR_EXEMPTION_2024",
				Name:       "Texas Solar Property Tax Exemption",
				Type:       StateTaxCredit,
				Amount:     decimal.Zero,
				Percentage: pctPtr(100.0),
				State:      "TX",
				EligibilityCriteria: []string{
					"Solar energy device",
					"Installed on or in connection with dwelling",
				},
				StackingAllowed: true,
			},
		},
		"LA": {
			{
				ID:         "LA_SOLAR_TAX_CREDIT_2024",
				Name:       "Louisiana Solar Tax Credit",
				Type:       StateTaxCredit,
				Amount:     decimal.Zero,
				Percentage: pctPtr(25.0),
				MaxAmount:  decPtr(decimal.NewFromInt(12500)),
				State:      "LA",
				EligibilityCriteria: []string{
					"Louisiana resident",
					"Solar energy system for residence",
				},
				ProjectCompletionDeadline: NewDate(2025, time.December, 31),
				StackingAllowed:           true,
			},
		},
		"NY": {
			{
				ID:         "NY_SOLAR_TAX_CREDIT_2024",
				Name:       "New York State Solar Tax Credit",
				Type:       StateTaxCredit,
				Amount:     decimal.Zero,
				Percentage: pctPtr(25.0),
				MaxAmount:  decPtr(decimal.NewFromInt(5000)),
				State:      "NY",
				EligibilityCriteria: []string{
					"New York State resident",
					"Solar electric generating equipment",
				},
				ProjectCompletionDeadline: NewDate(2025, time.December, 31),
				StackingAllowed:           true,
			},
		},
	}
}

func builtinLocal() map[string][]Incentive {
	return map[string][]Incentive{
		"miami_dade_fl": {
			{
				ID:        "MIAMI_SOLAR_REBATE_2024",
				Name:      "Miami-Dade Solar Rebate",
				Type:      LocalRebate,
				Amount:    decimal.NewFromInt(1000),
				MaxAmount: decPtr(decimal.NewFromInt(1000)),
				State:     "FL",
				Locality:  "Miami-Dade",
				EligibilityCriteria: []string{
					"Miami-Dade County resident",
					"Solar PV installation",
				},
				ApplicationDeadline: NewDate(2024, time.December, 31),
				RequiresPreApproval: true,
				StackingAllowed:     true,
			},
		},
	}
}

func builtinUtility() map[string][]Incentive {
	return map[string][]Incentive{
		"fpl": {
			{
				ID:              "FPL_SOLAR_REBATE_2024",
				Name:            "FPL SolarTogether Program",
				Type:            UtilityRebate,
				Amount:          decimal.NewFromFloat(0.03),
				State:           "FL",
				UtilityProvider: "Florida Power & Light",
				EligibilityCriteria: []string{
					"FPL customer",
					"Community solar subscription",
				},
				RequiresPreApproval: true,
				StackingAllowed:     true,
			},
		},
	}
}
