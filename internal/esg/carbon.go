package esg

import (
	"sync"
	"time"

	"github.com/shopspring/decimal"
)

// marketValuePerTon is the carbon credit market rate applied when credits
// accrue. Pricing is fixed at accrual time; revaluation is a caller concern.
var marketValuePerTon = decimal.NewFromInt(50)

// CarbonCredit is a project's accumulated carbon credit position.
type CarbonCredit struct {
	ProjectID         string          `json:"project_id"`
	TonsOffset        float64         `json:"tons_offset"`
	MarketValuePerTon decimal.Decimal `json:"market_value_per_ton"`
	TotalValue        decimal.Decimal `json:"total_value"`

	// RetirementDate is set once the credits are retired against an
	// emissions claim; nil while the position is open.
	RetirementDate *time.Time `json:"retirement_date,omitempty"`
}

// CreditLedger tracks carbon credits accrued per project. Accruals for the
// same project accumulate into a single open position.
type CreditLedger struct {
	mu      sync.RWMutex
	credits map[string]CarbonCredit
}

// NewCreditLedger creates an empty ledger.
func NewCreditLedger() *CreditLedger {
	return &CreditLedger{credits: make(map[string]CarbonCredit)}
}

// Accrue adds tons of offset to the project's open position at the current
// market rate and returns the updated position.
func (l *CreditLedger) Accrue(projectID string, tons float64) CarbonCredit {
	l.mu.Lock()
	defer l.mu.Unlock()

	c := l.credits[projectID]
	c.ProjectID = projectID
	c.TonsOffset += tons
	c.MarketValuePerTon = marketValuePerTon
	c.TotalValue = decimal.NewFromFloat(c.TonsOffset).Mul(marketValuePerTon)
	l.credits[projectID] = c
	return c
}

// CreditFor returns the project's position and whether one exists.
func (l *CreditLedger) CreditFor(projectID string) (CarbonCredit, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	c, ok := l.credits[projectID]
	return c, ok
}

// Retire marks the project's credits as retired at the given time. Retiring
// a project with no open position is a no-op returning false.
func (l *CreditLedger) Retire(projectID string, at time.Time) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	c, ok := l.credits[projectID]
	if !ok || c.RetirementDate != nil {
		return false
	}
	c.RetirementDate = &at
	l.credits[projectID] = c
	return true
}
