// Package aggregator holds the read-only reductions behind each dashboard
// chart. Every function is a pure pass over the record slice it is given
// (filtered or canonical) and is recomputed on each call; the dataset is
// small and static per session, so nothing is cached.
package aggregator

import (
	"sort"
	"strings"
	"time"

	"hazard-insights-go/internal/types"
)

// CategoryCounts is the hazard frequency per Category.
func CategoryCounts(records []types.EnrichedRecord) map[string]int {
	return countBy(records, func(r types.EnrichedRecord) string { return r.Category })
}

// SubCategoryCounts is the hazard frequency per Sub Category.
func SubCategoryCounts(records []types.EnrichedRecord) map[string]int {
	return countBy(records, func(r types.EnrichedRecord) string { return r.SubCategory })
}

// LocationCounts is the hazard frequency per Exact Location.
func LocationCounts(records []types.EnrichedRecord) map[string]int {
	return countBy(records, func(r types.EnrichedRecord) string { return r.ExactLocation })
}

// RiskLevelCounts buckets records by their literal Selected Risk Level value.
// Unrecognized or empty values keep their own bucket rather than being
// dropped, so the counts always sum to the record-set size.
func RiskLevelCounts(records []types.EnrichedRecord) map[string]int {
	return countBy(records, func(r types.EnrichedRecord) string { return r.SelectedRiskLevel })
}

func countBy(records []types.EnrichedRecord, key func(types.EnrichedRecord) string) map[string]int {
	counts := map[string]int{}
	for _, r := range records {
		counts[key(r)]++
	}
	return counts
}

// Rank orders a frequency table descending by count, ties broken by label so
// repeated calls produce the same ranking.
func Rank(counts map[string]int) []types.LabelCount {
	out := make([]types.LabelCount, 0, len(counts))
	for k, v := range counts {
		out = append(out, types.LabelCount{Label: k, Count: v})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Label < out[j].Label
	})
	return out
}

// LabelShare is a frequency-table row with its share of the total.
type LabelShare struct {
	Label string  `json:"label"`
	Count int     `json:"count"`
	Share float64 `json:"share"`
}

// Distribution ranks a frequency table and annotates each row with its
// fraction of the total, for pie-style rendering.
func Distribution(counts map[string]int) []LabelShare {
	total := 0
	for _, v := range counts {
		total += v
	}
	ranked := Rank(counts)
	out := make([]LabelShare, 0, len(ranked))
	for _, lc := range ranked {
		share := 0.0
		if total > 0 {
			share = float64(lc.Count) / float64(total)
		}
		out = append(out, LabelShare{Label: lc.Label, Count: lc.Count, Share: share})
	}
	return out
}

// Presence counts how many records affect each impact class, from the
// "H = Y" / "P = Y" / "E = Y" markers in the Type Hazard text. Matches are
// case-insensitive and independent; a record may count toward several
// classes, or none.
type Presence struct {
	Human       int `json:"human"`
	Property    int `json:"property"`
	Environment int `json:"environment"`
}

func PresenceCounts(records []types.EnrichedRecord) Presence {
	var p Presence
	for _, r := range records {
		text := strings.ToLower(r.TypeHazard)
		if strings.Contains(text, "h = y") {
			p.Human++
		}
		if strings.Contains(text, "p = y") {
			p.Property++
		}
		if strings.Contains(text, "e = y") {
			p.Environment++
		}
	}
	return p
}

// Ranked returns the three classes ordered by count descending.
func (p Presence) Ranked() []types.LabelCount {
	return Rank(map[string]int{
		"Human":       p.Human,
		"Property":    p.Property,
		"Environment": p.Environment,
	})
}

// TimePoint is one bucket of the report timeline.
type TimePoint struct {
	Time  time.Time `json:"time"`
	Count int       `json:"count"`
}

// TimeSeriesResult carries the ordered valid buckets plus the count of rows
// whose Date and Time could not be parsed. Invalid rows are reported, never
// silently dropped.
type TimeSeriesResult struct {
	Points  []TimePoint `json:"points"`
	Invalid int         `json:"invalid"`
}

var timeLayouts = []string{
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
	"02-01-2006 15:04",
	"02-01-2006",
	"02/01/2006 15:04",
	"02/01/2006",
}

// TimeSeries counts records per parsed timestamp, ascending.
func TimeSeries(records []types.EnrichedRecord) TimeSeriesResult {
	counts := map[time.Time]int{}
	invalid := 0
	for _, r := range records {
		t, ok := parseTime(r.DateAndTime)
		if !ok {
			invalid++
			continue
		}
		counts[t]++
	}
	points := make([]TimePoint, 0, len(counts))
	for t, c := range counts {
		points = append(points, TimePoint{Time: t, Count: c})
	}
	sort.Slice(points, func(i, j int) bool { return points[i].Time.Before(points[j].Time) })
	return TimeSeriesResult{Points: points, Invalid: invalid}
}

func parseTime(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// CrossTab is a dense compliance-date by remark grid. Counts[i][j] is the
// number of records with Dates[i] and Remarks[j]; missing combinations are
// zero, not omitted.
type CrossTab struct {
	Dates   []string `json:"dates"`
	Remarks []string `json:"remarks"`
	Counts  [][]int  `json:"counts"`
}

// ComplianceCrossTab counts records per compliance date and remark.
func ComplianceCrossTab(records []types.EnrichedRecord) CrossTab {
	dateSet := map[string]struct{}{}
	remarkSet := map[string]struct{}{}
	pairs := map[[2]string]int{}
	for _, r := range records {
		dateSet[r.ComplianceDate] = struct{}{}
		remarkSet[r.Remark] = struct{}{}
		pairs[[2]string{r.ComplianceDate, r.Remark}]++
	}
	tab := CrossTab{
		Dates:   sortedKeys(dateSet),
		Remarks: sortedKeys(remarkSet),
	}
	tab.Counts = make([][]int, len(tab.Dates))
	for i, d := range tab.Dates {
		row := make([]int, len(tab.Remarks))
		for j, rem := range tab.Remarks {
			row[j] = pairs[[2]string{d, rem}]
		}
		tab.Counts[i] = row
	}
	return tab
}

func sortedKeys(set map[string]struct{}) []string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// ClassMeans holds a per-class average; nil when no record in the given set
// carries a value for that class.
type ClassMeans struct {
	H *float64 `json:"h"`
	P *float64 `json:"p"`
	E *float64 `json:"e"`
}

// MeanProbability averages ProbH/ProbP/ProbE across the records. Absent
// values are excluded from both numerator and denominator: a record missing
// ProbH does not dilute the ProbH mean.
func MeanProbability(records []types.EnrichedRecord) ClassMeans {
	return ClassMeans{
		H: mean(records, func(r types.EnrichedRecord) *int { return r.ProbH }),
		P: mean(records, func(r types.EnrichedRecord) *int { return r.ProbP }),
		E: mean(records, func(r types.EnrichedRecord) *int { return r.ProbE }),
	}
}

// MeanSeverity averages SevH/SevP/SevE, with the same absent-value rule.
func MeanSeverity(records []types.EnrichedRecord) ClassMeans {
	return ClassMeans{
		H: mean(records, func(r types.EnrichedRecord) *int { return r.SevH }),
		P: mean(records, func(r types.EnrichedRecord) *int { return r.SevP }),
		E: mean(records, func(r types.EnrichedRecord) *int { return r.SevE }),
	}
}

func mean(records []types.EnrichedRecord, field func(types.EnrichedRecord) *int) *float64 {
	sum, n := 0, 0
	for _, r := range records {
		if v := field(r); v != nil {
			sum += *v
			n++
		}
	}
	if n == 0 {
		return nil
	}
	m := float64(sum) / float64(n)
	return &m
}
