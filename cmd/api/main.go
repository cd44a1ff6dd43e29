package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"hazard-insights-go/internal/aggregator"
	"hazard-insights-go/internal/config"
	"hazard-insights-go/internal/dataset"
	"hazard-insights-go/internal/drilldown"
	"hazard-insights-go/internal/filter"
	"hazard-insights-go/internal/logger"
	"hazard-insights-go/internal/types"
)

func main() {
	_ = godotenv.Load() // loads .env

	log := logger.New()
	log.WithField("service", "hazard-insights-go").Info("starting service")

	cfg, err := config.Load()
	if err != nil {
		log.WithError(err).Fatal("failed to load configuration")
	}

	// The canonical dataset: loaded and enriched once, read-only afterwards.
	// A load failure is the only fatal condition in the service.
	log.WithField("dataset_path", cfg.DatasetPath).Info("loading hazard dataset")
	records, err := dataset.Load(cfg.DatasetPath, cfg.SheetName)
	if err != nil {
		log.WithError(err).Fatal("failed to load hazard dataset")
	}
	canon := dataset.Enrich(records)
	log.WithField("rows", len(canon)).Info("canonical dataset ready")

	mux := http.NewServeMux()

	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, "ok")
	})

	// filtered returns the working set for this request's filter selections.
	filtered := func(r *http.Request) []types.EnrichedRecord {
		return filter.Apply(canon, specFromQuery(r.URL.Query()))
	}

	mux.HandleFunc("/preview", func(w http.ResponseWriter, r *http.Request) {
		reqLog := logger.New().WithRequest(r).WithField("handler", "preview")
		recs := filtered(r)
		limit := cfg.PreviewLimit
		if v := r.URL.Query().Get("limit"); v != "" {
			if n, err := strconv.Atoi(v); err == nil && n > 0 {
				limit = n
			}
		}
		if limit > len(recs) {
			limit = len(recs)
		}
		head := recs[:limit]
		ratings := make([]ratingRow, 0, len(head))
		for _, rec := range head {
			ratings = append(ratings, ratingRow{
				HazardIdentified: rec.HazardIdentified,
				ProbH:            rec.ProbH, ProbP: rec.ProbP, ProbE: rec.ProbE,
				SevH: rec.SevH, SevP: rec.SevP, SevE: rec.SevE,
			})
		}
		reqLog.WithField("rows", len(head)).Info("preview served")
		writeJSON(w, http.StatusOK, previewResponse{
			Total:   len(recs),
			Records: head,
			Ratings: ratings,
		})
	})

	mux.HandleFunc("/charts/categories", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, aggregator.Rank(aggregator.CategoryCounts(filtered(r))))
	})
	mux.HandleFunc("/charts/subcategories", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, aggregator.Rank(aggregator.SubCategoryCounts(filtered(r))))
	})
	mux.HandleFunc("/charts/locations", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, aggregator.Rank(aggregator.LocationCounts(filtered(r))))
	})
	mux.HandleFunc("/charts/risk-levels", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, aggregator.Distribution(aggregator.RiskLevelCounts(filtered(r))))
	})
	mux.HandleFunc("/charts/presence", func(w http.ResponseWriter, r *http.Request) {
		p := aggregator.PresenceCounts(filtered(r))
		writeJSON(w, http.StatusOK, presenceResponse{Counts: p, Ranked: p.Ranked()})
	})
	mux.HandleFunc("/charts/timeline", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, aggregator.TimeSeries(filtered(r)))
	})
	mux.HandleFunc("/charts/compliance", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, aggregator.ComplianceCrossTab(filtered(r)))
	})
	mux.HandleFunc("/charts/averages", func(w http.ResponseWriter, r *http.Request) {
		recs := filtered(r)
		writeJSON(w, http.StatusOK, averagesResponse{
			Probability: aggregator.MeanProbability(recs),
			Severity:    aggregator.MeanSeverity(recs),
		})
	})

	mux.HandleFunc("/dashboard", func(w http.ResponseWriter, r *http.Request) {
		recs := filtered(r)
		p := aggregator.PresenceCounts(recs)
		writeJSON(w, http.StatusOK, dashboardResponse{
			Total:         len(recs),
			Categories:    aggregator.Rank(aggregator.CategoryCounts(recs)),
			SubCategories: aggregator.Rank(aggregator.SubCategoryCounts(recs)),
			Locations:     aggregator.Rank(aggregator.LocationCounts(recs)),
			RiskLevels:    aggregator.Distribution(aggregator.RiskLevelCounts(recs)),
			Presence:      presenceResponse{Counts: p, Ranked: p.Ranked()},
			Timeline:      aggregator.TimeSeries(recs),
			Compliance:    aggregator.ComplianceCrossTab(recs),
			Averages: averagesResponse{
				Probability: aggregator.MeanProbability(recs),
				Severity:    aggregator.MeanSeverity(recs),
			},
		})
	})

	// Drill-down always resolves against the canonical set, so the figures
	// stay independent of the active filters.
	mux.HandleFunc("/drilldown", func(w http.ResponseWriter, r *http.Request) {
		reqLog := logger.New().WithRequest(r).WithField("handler", "drilldown")
		hazard := r.URL.Query().Get("hazard")
		if hazard == "" {
			reqLog.Warn("missing hazard")
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: "missing hazard"})
			return
		}
		detail, err := drilldown.Resolve(canon, hazard)
		if err != nil {
			if errors.Is(err, drilldown.ErrNotFound) {
				reqLog.WithField("hazard", hazard).Info("hazard not found")
				writeJSON(w, http.StatusNotFound, errorResponse{Error: "no record matches the selected hazard"})
				return
			}
			reqLog.WithError(err).Error("drilldown failed")
			writeJSON(w, http.StatusInternalServerError, errorResponse{Error: err.Error()})
			return
		}
		writeJSON(w, http.StatusOK, detail)
	})

	addr := fmt.Sprintf(":%s", cfg.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      mux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  120 * time.Second,
	}
	log.WithField("addr", addr).Info("listening")
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.WithError(err).Fatal("server terminated")
	}
}

// specFromQuery reads the repeatable filter params; absent params leave their
// dimension unconstrained.
func specFromQuery(q url.Values) filter.Spec {
	return filter.Spec{
		Locations:  q["location"],
		Categories: q["category"],
		RiskLevels: q["risk"],
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		logger.New().WithError(err).Error("failed to write response")
	}
}

type previewResponse struct {
	Total   int                    `json:"total"`
	Records []types.EnrichedRecord `json:"records"`
	Ratings []ratingRow            `json:"ratings"`
}

// ratingRow mirrors the dashboard's probability/severity preview table.
type ratingRow struct {
	HazardIdentified string `json:"hazard_identified"`
	ProbH            *int   `json:"prob_h"`
	ProbP            *int   `json:"prob_p"`
	ProbE            *int   `json:"prob_e"`
	SevH             *int   `json:"sev_h"`
	SevP             *int   `json:"sev_p"`
	SevE             *int   `json:"sev_e"`
}

type presenceResponse struct {
	Counts aggregator.Presence `json:"counts"`
	Ranked []types.LabelCount  `json:"ranked"`
}

type averagesResponse struct {
	Probability aggregator.ClassMeans `json:"probability"`
	Severity    aggregator.ClassMeans `json:"severity"`
}

type dashboardResponse struct {
	Total         int                         `json:"total"`
	Categories    []types.LabelCount          `json:"categories"`
	SubCategories []types.LabelCount          `json:"sub_categories"`
	Locations     []types.LabelCount          `json:"locations"`
	RiskLevels    []aggregator.LabelShare     `json:"risk_levels"`
	Presence      presenceResponse            `json:"presence"`
	Timeline      aggregator.TimeSeriesResult `json:"timeline"`
	Compliance    aggregator.CrossTab         `json:"compliance"`
	Averages      averagesResponse            `json:"averages"`
}

type errorResponse struct {
	Error string `json:"error"`
}
