// Package esg records environmental, social, and governance observations for
// construction projects and composes them into category and overall scores.
//
// Metrics are append-only: once recorded they are never mutated or removed,
// and scores are always recomputed from the full log at call time.
package esg

import (
	"fmt"
	"time"
)

// Category partitions metrics into the three ESG pillars.
type Category string

// ESG metric categories.
const (
	CategoryEnvironmental Category = "environmental"
	CategorySocial        Category = "social"
	CategoryGovernance    Category = "governance"
)

// Certification tiers, derived from the overall score.
const (
	TierPlatinum = "Platinum"
	TierGold     = "Gold"
	TierSilver   = "Silver"
	TierBronze   = "Bronze"
	TierStandard = "Standard"
)

// Metric is a single timestamped ESG observation for a project.
// Metrics are immutable once recorded; the same name may appear multiple
// times for a project (time series).
type Metric struct {
	// ID is a ULID assigned when the metric is recorded.
	ID string `json:"id"`

	Category  Category  `json:"category"`
	Name      string    `json:"name"`
	Value     float64   `json:"value"`
	Unit      string    `json:"unit"`
	Timestamp time.Time `json:"timestamp"`
	ProjectID string    `json:"project_id"`

	// VerificationMethod names the evidence source (payroll records,
	// utility interconnection agreement, regulatory audit, ...).
	VerificationMethod string `json:"verification_method"`

	// ThirdPartyVerified marks metrics confirmed by an external party.
	// Verified environmental metrics earn a scoring bonus.
	ThirdPartyVerified bool `json:"third_party_verified"`

	// CarbonOffsetTons is set on metrics whose activity displaces grid
	// emissions (renewable generation, efficiency retrofits).
	CarbonOffsetTons *float64 `json:"carbon_offset_tons,omitempty"`
}

// Score is a point-in-time ESG assessment for a project. All component
// scores are clamped to [0,100]; Overall is the weighted combination of
// already-clamped components, so it is intrinsically in [0,100].
type Score struct {
	Environmental  float64   `json:"environmental"`
	Social         float64   `json:"social"`
	Governance     float64   `json:"governance"`
	Overall        float64   `json:"overall"`
	PeerPercentile float64   `json:"peer_percentile"`
	Timestamp      time.Time `json:"timestamp"`

	// CertificationLevel is the tier label for Overall
	// (Standard, Bronze, Silver, Gold, Platinum).
	CertificationLevel string `json:"certification_level"`
}

// String renders a compact one-line summary, useful in logs.
func (s Score) String() string {
	return fmt.Sprintf("E:%.1f S:%.1f G:%.1f overall:%.1f (%s)",
		s.Environmental, s.Social, s.Governance, s.Overall, s.CertificationLevel)
}
