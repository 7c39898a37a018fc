// Package incentives holds the jurisdiction-scoped catalog of financial
// incentives for clean-energy construction projects, the eligibility
// evaluator that matches projects against incentive criteria, and the value
// calculator that prices eligible incentives.
//
// Catalog content is immutable reference data: loaded once at construction
// and never mutated by evaluation. Monetary amounts use exact decimal
// arithmetic; deadlines are calendar dates.
package incentives

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// IncentiveType classifies an incentive's funding mechanism.
type IncentiveType string

// Incentive funding mechanisms.
const (
	FederalTaxCredit IncentiveType = "federal_tax_credit"
	StateTaxCredit   IncentiveType = "state_tax_credit"
	LocalRebate      IncentiveType = "local_rebate"
	UtilityRebate    IncentiveType = "utility_rebate"
	Grant            IncentiveType = "grant"
	LowInterestLoan  IncentiveType = "low_interest_loan"
	PACEFinancing    IncentiveType = "pace_financing"
)

// dateLayout is the wire format for calendar dates.
const dateLayout = "2006-01-02"

// Date is a calendar date with no time-of-day component. The zero Date
// means "not set".
type Date struct {
	t time.Time
}

// NewDate builds a Date from year, month, day.
func NewDate(year int, month time.Month, day int) Date {
	return Date{t: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// DateOf truncates a time.Time to its calendar date.
func DateOf(t time.Time) Date {
	return NewDate(t.Year(), t.Month(), t.Day())
}

// ParseDate parses a YYYY-MM-DD string.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return Date{}, fmt.Errorf("parsing date %q: %w", s, err)
	}
	return Date{t: t}, nil
}

// IsZero reports whether the date is unset.
func (d Date) IsZero() bool { return d.t.IsZero() }

// After reports whether d falls strictly after other.
func (d Date) After(other Date) bool { return d.t.After(other.t) }

// String renders the date as YYYY-MM-DD, or empty for the zero Date.
func (d Date) String() string {
	if d.IsZero() {
		return ""
	}
	return d.t.Format(dateLayout)
}

// MarshalJSON encodes the date as a YYYY-MM-DD string, or null when unset.
func (d Date) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte("null"), nil
	}
	return []byte(`"` + d.String() + `"`), nil
}

// UnmarshalJSON decodes a YYYY-MM-DD string or null.
func (d *Date) UnmarshalJSON(data []byte) error {
	s := string(data)
	if s == "null" || s == `""` {
		*d = Date{}
		return nil
	}
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		s = s[1 : len(s)-1]
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// UnmarshalYAML decodes a YYYY-MM-DD scalar.
func (d *Date) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var s string
	if err := unmarshal(&s); err != nil {
		return err
	}
	if s == "" {
		*d = Date{}
		return nil
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// Incentive is one financial incentive opportunity. The zero values of the
// optional fields (nil Percentage and MaxAmount, empty Locality and
// UtilityProvider, zero Dates) mean "not applicable".
type Incentive struct {
	ID   string        `json:"id" yaml:"id"`
	Name string        `json:"name" yaml:"name"`
	Type IncentiveType `json:"type" yaml:"type"`

	// Amount is a flat or per-unit dollar amount. Interpreted per-unit
	// when the caller supplies a project size and Percentage is unset.
	Amount decimal.Decimal `json:"amount" yaml:"amount"`

	// Percentage, when set, values the incentive as a share of project
	// cost (30 means 30%).
	Percentage *float64 `json:"percentage,omitempty" yaml:"percentage,omitempty"`

	// MaxAmount caps percentage-based values.
	MaxAmount *decimal.Decimal `json:"max_amount,omitempty" yaml:"max_amount,omitempty"`

	// State is a 2-letter code, or "ALL" for federal scope.
	State           string `json:"state" yaml:"state"`
	Locality        string `json:"locality,omitempty" yaml:"locality,omitempty"`
	UtilityProvider string `json:"utility_provider,omitempty" yaml:"utility_provider,omitempty"`

	// EligibilityCriteria are matched as independent positive signals:
	// any one satisfied criterion qualifies the project.
	EligibilityCriteria []string `json:"eligibility_criteria" yaml:"eligibility_criteria"`

	ApplicationDeadline       Date `json:"application_deadline,omitempty" yaml:"application_deadline,omitempty"`
	ProjectStartDeadline      Date `json:"project_start_deadline,omitempty" yaml:"project_start_deadline,omitempty"`
	ProjectCompletionDeadline Date `json:"project_completion_deadline,omitempty" yaml:"project_completion_deadline,omitempty"`

	RequiresPreApproval bool `json:"requires_pre_approval" yaml:"requires_pre_approval"`

	// StackingAllowed is carried through to reports for the caller's
	// stacking policy; the engine itself sums eligible incentives
	// unconditionally.
	StackingAllowed bool `json:"stacking_allowed" yaml:"stacking_allowed"`

	ClawbackProvisions []string `json:"clawback_provisions,omitempty" yaml:"clawback_provisions,omitempty"`
}

// ProjectProfile is the slice of project attributes the eligibility
// evaluator inspects.
type ProjectProfile struct {
	ProjectType  string
	BuildingType string
}
