package dataset

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"hazard-insights-go/internal/types"
)

const fullHeader = "Category,Sub Category,Exact Location,Hazard Identified,Type Hazard," +
	"Probability,Severity,Score (P × S),Selected Risk Level,Date and Time,Compliance Date,Remark"

func writeCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "hazards.csv")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write csv: %v", err)
	}
	return path
}

func TestLoadCSV(t *testing.T) {
	path := writeCSV(t, fullHeader+"\n"+
		`Electrical,Wiring,Block A,exposed wiring,"H = Y, P = Y",H=3 P=2,H=4 P=5,H=12 P=10,High,2024-03-01 10:30,2024-03-15,Open`+"\n"+
		`Fire,Storage,Block B,fuel drums,P = Y,P=1,P=2,P=2,Low,2024-03-02,2024-03-20,Closed`+"\n")

	records, err := Load(path, "")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	want := []types.Record{
		{
			Category:          "Electrical",
			SubCategory:       "Wiring",
			ExactLocation:     "Block A",
			HazardIdentified:  "exposed wiring",
			TypeHazard:        "H = Y, P = Y",
			ProbabilityText:   "H=3 P=2",
			SeverityText:      "H=4 P=5",
			ScoreText:         "H=12 P=10",
			SelectedRiskLevel: "High",
			DateAndTime:       "2024-03-01 10:30",
			ComplianceDate:    "2024-03-15",
			Remark:            "Open",
		},
		{
			Category:          "Fire",
			SubCategory:       "Storage",
			ExactLocation:     "Block B",
			HazardIdentified:  "fuel drums",
			TypeHazard:        "P = Y",
			ProbabilityText:   "P=1",
			SeverityText:      "P=2",
			ScoreText:         "P=2",
			SelectedRiskLevel: "Low",
			DateAndTime:       "2024-03-02",
			ComplianceDate:    "2024-03-20",
			Remark:            "Closed",
		},
	}
	if diff := cmp.Diff(want, records); diff != "" {
		t.Errorf("records mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadHeaderIsCaseInsensitive(t *testing.T) {
	path := writeCSV(t, "category,sub category,exact location,hazard identified,type hazard,"+
		"probability,severity,score (p × s),selected risk level,date and time,compliance date,remark\n"+
		"Fire,Storage,Block B,fuel drums,P = Y,P=1,P=2,P=2,Low,2024-03-02,2024-03-20,Closed\n")
	records, err := Load(path, "")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(records) != 1 || records[0].Category != "Fire" {
		t.Errorf("unexpected records: %+v", records)
	}
}

func TestLoadMissingColumn(t *testing.T) {
	// header without Remark and Compliance Date
	path := writeCSV(t, "Category,Sub Category,Exact Location,Hazard Identified,Type Hazard,"+
		"Probability,Severity,Score (P × S),Selected Risk Level,Date and Time\n"+
		"Fire,Storage,Block B,fuel drums,P = Y,P=1,P=2,P=2,Low,2024-03-02\n")
	_, err := Load(path, "")
	if !errors.Is(err, ErrMissingColumn) {
		t.Fatalf("Load error = %v, want ErrMissingColumn", err)
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.csv"), "")
	if err == nil {
		t.Fatal("Load succeeded on a missing file")
	}
}

func TestLoadShortRows(t *testing.T) {
	// rows may be ragged; absent trailing cells read as empty
	path := writeCSV(t, fullHeader+"\n"+"Fire,Storage,Block B\n")
	records, err := Load(path, "")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("expected 1 record, got %d", len(records))
	}
	if records[0].Remark != "" || records[0].HazardIdentified != "" {
		t.Errorf("short row fields not empty: %+v", records[0])
	}
}
