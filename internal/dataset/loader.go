package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/xuri/excelize/v2"

	"hazard-insights-go/internal/logger"
	"hazard-insights-go/internal/types"
)

// ErrMissingColumn marks a dataset whose header lacks one of the required
// columns. Load errors are fatal at startup.
var ErrMissingColumn = errors.New("missing required column")

var requiredColumns = []string{
	"Category",
	"Sub Category",
	"Exact Location",
	"Hazard Identified",
	"Type Hazard",
	"Probability",
	"Severity",
	"Score (P × S)",
	"Selected Risk Level",
	"Date and Time",
	"Compliance Date",
	"Remark",
}

// Load reads the hazard dataset from an xlsx or csv file (chosen by
// extension). The first row must be a header containing every required
// column; matching is trimmed and case-insensitive. Rows come back in file
// order, which later becomes the canonical load order.
func Load(path, sheet string) ([]types.Record, error) {
	log := logger.New().WithField("component", "dataset.loader").WithField("path", path)
	log.Info("loading dataset")

	rows, err := readRows(path, sheet)
	if err != nil {
		log.WithError(err).Error("read failed")
		return nil, err
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("dataset %s: empty file", path)
	}

	idx, err := mapHeader(rows[0])
	if err != nil {
		log.WithError(err).Error("header check failed")
		return nil, fmt.Errorf("dataset %s: %w", path, err)
	}

	cell := func(r []string, col string) string {
		i := idx[col]
		if i < len(r) {
			return strings.TrimSpace(r[i])
		}
		return ""
	}

	out := make([]types.Record, 0, len(rows)-1)
	for _, r := range rows[1:] {
		out = append(out, types.Record{
			Category:          cell(r, "Category"),
			SubCategory:       cell(r, "Sub Category"),
			ExactLocation:     cell(r, "Exact Location"),
			HazardIdentified:  cell(r, "Hazard Identified"),
			TypeHazard:        cell(r, "Type Hazard"),
			ProbabilityText:   cell(r, "Probability"),
			SeverityText:      cell(r, "Severity"),
			ScoreText:         cell(r, "Score (P × S)"),
			SelectedRiskLevel: cell(r, "Selected Risk Level"),
			DateAndTime:       cell(r, "Date and Time"),
			ComplianceDate:    cell(r, "Compliance Date"),
			Remark:            cell(r, "Remark"),
		})
	}
	log.WithField("rows", len(out)).Info("dataset loaded")
	return out, nil
}

// mapHeader resolves each required column to its index. Every required column
// must be present; extra header columns are ignored.
func mapHeader(header []string) (map[string]int, error) {
	norm := make(map[string]int, len(header))
	for i, h := range header {
		norm[strings.ToLower(strings.TrimSpace(h))] = i
	}
	idx := make(map[string]int, len(requiredColumns))
	var missing []string
	for _, col := range requiredColumns {
		i, ok := norm[strings.ToLower(col)]
		if !ok {
			missing = append(missing, col)
			continue
		}
		idx[col] = i
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrMissingColumn, strings.Join(missing, ", "))
	}
	return idx, nil
}

// readRows retries the open briefly; the file may still be syncing when the
// service starts. A missing file is permanent and fails immediately.
func readRows(path, sheet string) ([][]string, error) {
	var rows [][]string
	op := func() error {
		var err error
		rows, err = readRowsOnce(path, sheet)
		if err != nil && errors.Is(err, fs.ErrNotExist) {
			return backoff.Permanent(err)
		}
		return err
	}
	b := backoff.NewExponentialBackOff()
	b.MaxElapsedTime = 5 * time.Second
	if err := backoff.Retry(op, b); err != nil {
		return nil, err
	}
	return rows, nil
}

func readRowsOnce(path, sheet string) ([][]string, error) {
	if strings.EqualFold(filepath.Ext(path), ".csv") {
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("open csv: %w", err)
		}
		defer f.Close()
		r := csv.NewReader(f)
		r.FieldsPerRecord = -1
		rows, err := r.ReadAll()
		if err != nil {
			return nil, fmt.Errorf("read csv: %w", err)
		}
		return rows, nil
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()
	if sheet == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, fmt.Errorf("workbook %s: no sheets", path)
		}
		sheet = sheets[0]
	}
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("read sheet %s: %w", sheet, err)
	}
	return rows, nil
}
