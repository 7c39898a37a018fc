package incentives

import "github.com/shopspring/decimal"

// percentDivisor converts a percentage to a fraction.
var percentDivisor = decimal.NewFromInt(100)

// Value computes the monetary value of an incentive for a project.
//
//   - Percentage incentives value at cost x percentage/100, capped at
//     MaxAmount when one is set.
//   - Otherwise, when the caller supplies a project size and the incentive
//     carries a non-zero amount, the amount is per-unit: size x amount
//     (e.g. $/kW, $/sqft).
//   - Otherwise the flat amount applies (zero when unset).
//
// The result is never negative for non-negative inputs. All arithmetic is
// exact decimal; no rounding drift accumulates across cap comparisons.
func Value(inc Incentive, projectCost decimal.Decimal, projectSize *float64) decimal.Decimal {
	if inc.Percentage != nil && *inc.Percentage != 0 {
		value := projectCost.Mul(decimal.NewFromFloat(*inc.Percentage)).Div(percentDivisor)
		if inc.MaxAmount != nil {
			value = decimal.Min(value, *inc.MaxAmount)
		}
		return value
	}

	if projectSize != nil && *projectSize != 0 && !inc.Amount.IsZero() {
		return decimal.NewFromFloat(*projectSize).Mul(inc.Amount)
	}

	return inc.Amount
}
