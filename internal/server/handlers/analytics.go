// internal/server/handlers/analytics.go

package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"geodrive/internal/domain/insight"
	"geodrive/internal/service/intel"
)

// SummaryProvider fetches aggregate brand volume summaries.
type SummaryProvider interface {
	BrandSummary(ctx context.Context) ([]insight.BrandSummary, error)
}

// TrendProvider fetches normalized trend snapshots.
type TrendProvider interface {
	Fetch(ctx context.Context, company string) (*insight.TrendSnapshot, error)
}

// Comparer fetches normalized comparison views.
type Comparer interface {
	CompareProducts(ctx context.Context, model1, model2 string) (*insight.ProductComparison, error)
	CompareFeatures(ctx context.Context, company1, company2 string) (*insight.FeatureComparison, error)
}

// SentimentProvider serves the per-brand sentiment rollup from the archive.
type SentimentProvider interface {
	SentimentByBrand(ctx context.Context) ([]insight.BrandSentiment, error)
}

// AnalyticsHandler handles analytics-related HTTP requests
type AnalyticsHandler struct {
	summaries  SummaryProvider
	trends     TrendProvider
	comparer   Comparer
	sentiments SentimentProvider
}

// NewAnalyticsHandler creates a new analytics handler
func NewAnalyticsHandler(summaries SummaryProvider, trends TrendProvider, comparer Comparer, sentiments SentimentProvider) *AnalyticsHandler {
	return &AnalyticsHandler{
		summaries:  summaries,
		trends:     trends,
		comparer:   comparer,
		sentiments: sentiments,
	}
}

// GetBrandSummary returns aggregate post volume per brand
func (h *AnalyticsHandler) GetBrandSummary(w http.ResponseWriter, r *http.Request) {
	summaries, err := h.summaries.BrandSummary(r.Context())
	if err != nil {
		respondWithError(w, http.StatusBadGateway, "Failed to get brand summary", err)
		return
	}
	if summaries == nil {
		summaries = []insight.BrandSummary{}
	}

	respondWithJSON(w, http.StatusOK, summaries)
}

// GetSentimentByBrand returns archived post counts grouped by brand and sentiment
func (h *AnalyticsHandler) GetSentimentByBrand(w http.ResponseWriter, r *http.Request) {
	rows, err := h.sentiments.SentimentByBrand(r.Context())
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Failed to get sentiment rollup", err)
		return
	}
	if rows == nil {
		rows = []insight.BrandSentiment{}
	}

	respondWithJSON(w, http.StatusOK, rows)
}

// GetTrend returns the trend snapshot for a company
func (h *AnalyticsHandler) GetTrend(w http.ResponseWriter, r *http.Request) {
	company := chi.URLParam(r, "company")
	if company == "" {
		respondWithError(w, http.StatusBadRequest, "Missing company identifier", nil)
		return
	}

	snapshot, err := h.trends.Fetch(r.Context(), company)
	if err != nil {
		if errors.Is(err, intel.ErrTrendUnavailable) {
			respondWithError(w, http.StatusNotFound, "Trend unavailable", nil)
			return
		}
		respondWithError(w, http.StatusBadGateway, "Failed to get trend", err)
		return
	}

	respondWithJSON(w, http.StatusOK, snapshot)
}

// CompareProducts returns a two-product comparison
func (h *AnalyticsHandler) CompareProducts(w http.ResponseWriter, r *http.Request) {
	model1 := r.URL.Query().Get("model1")
	model2 := r.URL.Query().Get("model2")

	comparison, err := h.comparer.CompareProducts(r.Context(), model1, model2)
	if err != nil {
		respondWithComparisonError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{"comparison": comparison})
}

// CompareFeatures returns a company/feature-level comparison
func (h *AnalyticsHandler) CompareFeatures(w http.ResponseWriter, r *http.Request) {
	company1 := r.URL.Query().Get("company1")
	company2 := r.URL.Query().Get("company2")

	comparison, err := h.comparer.CompareFeatures(r.Context(), company1, company2)
	if err != nil {
		respondWithComparisonError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, comparison)
}

// respondWithComparisonError maps adapter failures to their user-displayable
// reasons without leaking transport detail.
func respondWithComparisonError(w http.ResponseWriter, err error) {
	if errors.Is(err, intel.ErrModelNotFound) {
		respondWithError(w, http.StatusNotFound, intel.ErrModelNotFound.Error(), nil)
		return
	}
	respondWithError(w, http.StatusBadGateway, intel.ErrComparisonFailed.Error(), err)
}

// Helper for JSON responses
func respondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	response, err := json.Marshal(payload)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte("Failed to marshal response"))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	w.Write(response)
}

// Helper for error responses
func respondWithError(w http.ResponseWriter, code int, message string, err error) {
	response := map[string]string{"error": message}

	if err != nil && code >= 500 {
		log.Error().Err(err).Int("code", code).Str("message", message).Msg("HTTP error")
	}

	jsonResponse, _ := json.Marshal(response)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	w.Write(jsonResponse)
}
