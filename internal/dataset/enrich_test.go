package dataset

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"hazard-insights-go/internal/types"
)

func intp(v int) *int { return &v }

func TestEnrichDerivesColumns(t *testing.T) {
	in := []types.Record{{
		HazardIdentified: "exposed wiring",
		ProbabilityText:  "H=3 P=2",
		SeverityText:     "H=4 P=5 E=1",
		ScoreText:        "H=12 P=10",
	}}
	out := Enrich(in)
	if len(out) != 1 {
		t.Fatalf("expected 1 record, got %d", len(out))
	}
	e := out[0]

	if diff := cmp.Diff(intp(3), e.ProbH); diff != "" {
		t.Errorf("ProbH mismatch:\n%s", diff)
	}
	if e.ProbE != nil {
		t.Errorf("ProbE = %d, want absent", *e.ProbE)
	}
	if diff := cmp.Diff(intp(12), e.RiskH); diff != "" {
		t.Errorf("RiskH mismatch:\n%s", diff)
	}
	if diff := cmp.Diff(intp(10), e.RiskP); diff != "" {
		t.Errorf("RiskP mismatch:\n%s", diff)
	}
	// SevE present but ProbE absent: the product is absent, not zero.
	if e.RiskE != nil {
		t.Errorf("RiskE = %d, want absent", *e.RiskE)
	}
}

func TestEnrichKeepsSourceText(t *testing.T) {
	in := []types.Record{{ProbabilityText: "H=3", SeverityText: "H=4", ScoreText: "H=12"}}
	out := Enrich(in)
	if diff := cmp.Diff(in[0], out[0].Record); diff != "" {
		t.Errorf("source record changed during enrichment (-in +out):\n%s", diff)
	}
}

func TestEnrichZeroFactors(t *testing.T) {
	in := []types.Record{{ProbabilityText: "H=0", SeverityText: "H=5"}}
	out := Enrich(in)
	if diff := cmp.Diff(intp(0), out[0].RiskH); diff != "" {
		t.Errorf("RiskH mismatch (zero probability is a value):\n%s", diff)
	}
}
