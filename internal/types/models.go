package types

// Record is one row of the hazard-report dataset, text columns kept verbatim.
// ProbabilityText/SeverityText/ScoreText carry the "H=3 P=2 E=1" micro-format
// decoded by the extractor during enrichment.
type Record struct {
	Category          string `json:"category"`
	SubCategory       string `json:"sub_category"`
	ExactLocation     string `json:"exact_location"`
	HazardIdentified  string `json:"hazard_identified"`
	TypeHazard        string `json:"type_hazard"`
	ProbabilityText   string `json:"probability"`
	SeverityText      string `json:"severity"`
	ScoreText         string `json:"score"`
	SelectedRiskLevel string `json:"selected_risk_level"`
	DateAndTime       string `json:"date_and_time"`
	ComplianceDate    string `json:"compliance_date"`
	Remark            string `json:"remark"`
}

// EnrichedRecord is a Record plus the derived per-class columns. A nil field
// means the value was absent from the source text; zero is a real extracted
// magnitude and stays distinguishable from "not present".
type EnrichedRecord struct {
	Record

	ProbH *int `json:"prob_h"`
	ProbP *int `json:"prob_p"`
	ProbE *int `json:"prob_e"`

	SevH *int `json:"sev_h"`
	SevP *int `json:"sev_p"`
	SevE *int `json:"sev_e"`

	ScoreH *int `json:"score_h"`
	ScoreP *int `json:"score_p"`
	ScoreE *int `json:"score_e"`

	// RiskX = ProbX * SevX, nil whenever either factor is nil.
	RiskH *int `json:"risk_h"`
	RiskP *int `json:"risk_p"`
	RiskE *int `json:"risk_e"`
}

// LabelCount is one row of a ranked frequency table.
type LabelCount struct {
	Label string `json:"label"`
	Count int    `json:"count"`
}
