// Package drilldown resolves a single hazard selection into its derived
// metrics for the per-record detail panel.
package drilldown

import (
	"errors"

	"hazard-insights-go/internal/types"
)

// ErrNotFound is returned when no record matches the selected hazard. The
// presentation layer degrades gracefully on it; it never aborts rendering.
var ErrNotFound = errors.New("hazard not found")

// ClassMetrics is one labeled metric group of the detail panel.
type ClassMetrics struct {
	Probability *int `json:"probability"`
	Severity    *int `json:"severity"`
	RiskScore   *int `json:"risk_score"`
}

// Detail is the drill-down view of one hazard record.
type Detail struct {
	HazardIdentified string       `json:"hazard_identified"`
	Human            ClassMetrics `json:"human"`
	Property         ClassMetrics `json:"property"`
	Environment      ClassMetrics `json:"environment"`
	ExactLocation    string       `json:"exact_location,omitempty"`
	DateAndTime      string       `json:"date_and_time,omitempty"`
}

// Resolve looks up hazard in the canonical (unfiltered, enriched) dataset so
// the figures are independent of active filters. Hazard identifiers are not
// guaranteed unique; ties resolve deterministically to the first occurrence
// in load order.
func Resolve(canon []types.EnrichedRecord, hazard string) (Detail, error) {
	for _, r := range canon {
		if r.HazardIdentified != hazard {
			continue
		}
		return Detail{
			HazardIdentified: r.HazardIdentified,
			Human:            ClassMetrics{Probability: r.ProbH, Severity: r.SevH, RiskScore: r.RiskH},
			Property:         ClassMetrics{Probability: r.ProbP, Severity: r.SevP, RiskScore: r.RiskP},
			Environment:      ClassMetrics{Probability: r.ProbE, Severity: r.SevE, RiskScore: r.RiskE},
			ExactLocation:    r.ExactLocation,
			DateAndTime:      r.DateAndTime,
		}, nil
	}
	return Detail{}, ErrNotFound
}
