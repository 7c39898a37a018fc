package esg

import (
	"context"
	"strings"
	"time"

	"github.com/kevanbtc/donkey-financial-ecosystem/internal/logging"
)

// Category weights for the overall score.
const (
	weightEnvironmental = 0.40
	weightSocial        = 0.35
	weightGovernance    = 0.25
)

// baselineScore is the neutral starting point for every category. A category
// with no recorded metrics scores exactly this value.
const baselineScore = 50.0

// Category scores are clamped to [minScore, maxScore].
const (
	minScore = 0.0
	maxScore = 100.0
)

// Tier thresholds, evaluated highest-first with inclusive lower bounds.
const (
	tierPlatinumMin = 90.0
	tierGoldMin     = 80.0
	tierSilverMin   = 70.0
	tierBronzeMin   = 60.0
)

// Peer percentile display bounds.
const (
	percentileFloor   = 5.0
	percentileCeiling = 95.0
	percentileLift    = 0.1
)

// verifiedBonus is added once per third-party-verified environmental metric.
const verifiedBonus = 2.0

// Composer reduces a project's metric log into an ESG Score. It reads from
// a Store and holds no per-project state, so a single Composer may be shared
// across concurrent scoring calls.
type Composer struct {
	store *Store
}

// NewComposer creates a Composer reading from store.
func NewComposer(store *Store) *Composer {
	return &Composer{store: store}
}

// Score computes the current ESG score for projectID. The result is a pure
// function of the metric log at call time: calling Score twice without an
// intervening Record yields identical component values.
func (c *Composer) Score(ctx context.Context, projectID string) Score {
	logger := logging.FromContext(ctx).With().
		Str("component", "esg").
		Str("project_id", projectID).
		Logger()

	env := environmentalScore(c.store.MetricsByCategory(projectID, CategoryEnvironmental))
	soc := socialScore(c.store.MetricsByCategory(projectID, CategorySocial))
	gov := governanceScore(c.store.MetricsByCategory(projectID, CategoryGovernance))

	overall := env*weightEnvironmental + soc*weightSocial + gov*weightGovernance

	score := Score{
		Environmental:      env,
		Social:             soc,
		Governance:         gov,
		Overall:            overall,
		PeerPercentile:     peerPercentile(overall),
		Timestamp:          time.Now(),
		CertificationLevel: CertificationLevel(overall),
	}

	logger.Debug().
		Float64("overall", overall).
		Str("tier", score.CertificationLevel).
		Msg("composed ESG score")

	return score
}

// environmentalScore accumulates the environmental pillar from its metric
// log. Each metric name contributes a capped increment; third-party-verified
// metrics earn an additional bonus that stacks across metrics.
func environmentalScore(metrics []Metric) float64 {
	if len(metrics) == 0 {
		return baselineScore
	}

	score := baselineScore
	for _, m := range metrics {
		switch {
		case m.Name == "energy_efficiency_improvement":
			score += min(20, m.Value*0.5)
		case strings.Contains(m.Name, "renewable_energy"):
			score += 15
		case m.Name == "water_efficiency_improvement":
			score += min(10, m.Value*0.3)
		case m.Name == "waste_diversion_rate":
			score += min(15, m.Value*0.2)
		}

		if m.ThirdPartyVerified {
			score += verifiedBonus
		}
	}

	return clampScore(score)
}

// socialScore accumulates the social pillar. Any hire-rate metric other than
// local_hire_rate is treated as a diversity hiring signal. OSHA incident
// rates are banded: below 2.0 incidents per 200k hours is industry-leading,
// below 4.0 is average.
func socialScore(metrics []Metric) float64 {
	if len(metrics) == 0 {
		return baselineScore
	}

	score := baselineScore
	for _, m := range metrics {
		switch {
		case m.Name == "local_hire_rate":
			score += min(15, m.Value*0.3)
		case strings.Contains(m.Name, "hire_rate"):
			score += min(10, m.Value*0.2)
		case m.Name == "apprenticeship_rate":
			score += min(10, m.Value*0.4)
		case m.Name == "osha_incident_rate":
			switch {
			case m.Value < 2.0:
				score += 15
			case m.Value < 4.0:
				score += 5
			}
		}
	}

	return clampScore(score)
}

// governanceScore accumulates the governance pillar from compliance and
// certification metrics.
func governanceScore(metrics []Metric) float64 {
	if len(metrics) == 0 {
		return baselineScore
	}

	score := baselineScore
	for _, m := range metrics {
		switch {
		case strings.Contains(m.Name, "compliance"):
			score += min(15, m.Value/100*15)
		case m.Name == "certification_count":
			score += min(10, m.Value*3)
		}
	}

	return clampScore(score)
}

// clampScore bounds a category score to [0,100]. Negative-value metrics
// (a retrofit that worsened usage, a negative hire rate) can drag the
// accumulated score below the baseline.
func clampScore(score float64) float64 {
	return min(maxScore, max(minScore, score))
}

// peerPercentile is a display-only placeholder, not a statistical
// percentile: the overall score lifted by 10% and clamped to [5,95].
func peerPercentile(overall float64) float64 {
	return min(percentileCeiling, max(percentileFloor, overall+overall*percentileLift))
}

// CertificationLevel maps an overall score to its tier label.
func CertificationLevel(overall float64) string {
	switch {
	case overall >= tierPlatinumMin:
		return TierPlatinum
	case overall >= tierGoldMin:
		return TierGold
	case overall >= tierSilverMin:
		return TierSilver
	case overall >= tierBronzeMin:
		return TierBronze
	default:
		return TierStandard
	}
}
