// Package filter narrows the canonical dataset by the user's selections.
package filter

import (
	"hazard-insights-go/internal/types"
)

// Spec is the active set of restrictions per filterable dimension. An empty
// slice means no restriction on that dimension; dimensions combine with AND.
type Spec struct {
	Locations  []string `json:"locations"`
	Categories []string `json:"categories"`
	RiskLevels []string `json:"risk_levels"`
}

// Apply returns the records matching every constrained dimension, in the
// order they appear in canon. Pure and idempotent; canon is never mutated.
func Apply(canon []types.EnrichedRecord, spec Spec) []types.EnrichedRecord {
	loc := toSet(spec.Locations)
	cat := toSet(spec.Categories)
	risk := toSet(spec.RiskLevels)

	out := make([]types.EnrichedRecord, 0, len(canon))
	for _, r := range canon {
		if !member(loc, r.ExactLocation) {
			continue
		}
		if !member(cat, r.Category) {
			continue
		}
		if !member(risk, r.SelectedRiskLevel) {
			continue
		}
		out = append(out, r)
	}
	return out
}

func toSet(values []string) map[string]struct{} {
	if len(values) == 0 {
		return nil
	}
	set := make(map[string]struct{}, len(values))
	for _, v := range values {
		set[v] = struct{}{}
	}
	return set
}

// member treats an empty set as "no constraint".
func member(set map[string]struct{}, v string) bool {
	if len(set) == 0 {
		return true
	}
	_, ok := set[v]
	return ok
}
