package dataset

import (
	"hazard-insights-go/internal/extractor"
	"hazard-insights-go/internal/types"
)

// Enrich derives the per-class numeric columns for every record: H/P/E values
// extracted from the Probability, Severity and Score texts, plus the risk
// products RiskX = ProbX * SevX. Runs once over the complete, unfiltered
// dataset; the result is the canonical set for the rest of the session and
// drill-down figures are taken from it regardless of active filters.
func Enrich(records []types.Record) []types.EnrichedRecord {
	out := make([]types.EnrichedRecord, 0, len(records))
	for _, r := range records {
		prob := extractor.Extract(r.ProbabilityText)
		sev := extractor.Extract(r.SeverityText)
		score := extractor.Extract(r.ScoreText)

		e := types.EnrichedRecord{Record: r}
		e.ProbH, e.ProbP, e.ProbE = prob.H, prob.P, prob.E
		e.SevH, e.SevP, e.SevE = sev.H, sev.P, sev.E
		e.ScoreH, e.ScoreP, e.ScoreE = score.H, score.P, score.E
		e.RiskH = mul(prob.H, sev.H)
		e.RiskP = mul(prob.P, sev.P)
		e.RiskE = mul(prob.E, sev.E)
		out = append(out, e)
	}
	return out
}

// mul is nil-propagating: a missing factor makes the product absent, not zero.
func mul(a, b *int) *int {
	if a == nil || b == nil {
		return nil
	}
	v := *a * *b
	return &v
}
