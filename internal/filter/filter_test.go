package filter

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"hazard-insights-go/internal/types"
)

func rec(category, location, risk string) types.EnrichedRecord {
	return types.EnrichedRecord{Record: types.Record{
		Category:          category,
		ExactLocation:     location,
		SelectedRiskLevel: risk,
	}}
}

func canonSet() []types.EnrichedRecord {
	return []types.EnrichedRecord{
		rec("Fire", "Block A", "High"),
		rec("Electrical", "Block A", "Low"),
		rec("Fire", "Block B", "Low"),
		rec("Chemical", "Block C", "High"),
	}
}

func TestApplyEmptySpecIsIdentity(t *testing.T) {
	canon := canonSet()
	got := Apply(canon, Spec{})
	if diff := cmp.Diff(canon, got); diff != "" {
		t.Errorf("empty spec changed the set (-canon +got):\n%s", diff)
	}
}

func TestApplySingleDimension(t *testing.T) {
	canon := canonSet()
	got := Apply(canon, Spec{Categories: []string{"Fire"}})
	want := []types.EnrichedRecord{canon[0], canon[2]}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("category filter mismatch (-want +got):\n%s", diff)
	}
}

func TestApplyIsIdempotent(t *testing.T) {
	canon := canonSet()
	spec := Spec{Categories: []string{"Fire"}}
	once := Apply(canon, spec)
	twice := Apply(once, spec)
	if diff := cmp.Diff(once, twice); diff != "" {
		t.Errorf("re-applying the same spec changed the set:\n%s", diff)
	}
}

func TestApplyDimensionsCombineWithAND(t *testing.T) {
	canon := canonSet()
	got := Apply(canon, Spec{
		Categories: []string{"Fire", "Electrical"},
		Locations:  []string{"Block A"},
	})
	want := []types.EnrichedRecord{canon[0], canon[1]}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("AND semantics mismatch (-want +got):\n%s", diff)
	}
}

func TestApplyNoMatches(t *testing.T) {
	got := Apply(canonSet(), Spec{RiskLevels: []string{"Critical"}})
	if len(got) != 0 {
		t.Errorf("expected empty result, got %d records", len(got))
	}
}

func TestApplyDoesNotMutateCanon(t *testing.T) {
	canon := canonSet()
	want := canonSet()
	_ = Apply(canon, Spec{Categories: []string{"Fire"}})
	if diff := cmp.Diff(want, canon); diff != "" {
		t.Errorf("canonical set mutated:\n%s", diff)
	}
}
