// internal/server/handlers/insight.go

package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"geodrive/internal/domain/insight"
	"geodrive/internal/service/intel"
)

// InsightHandler handles ingestion and engine state HTTP requests
type InsightHandler struct {
	engine   *intel.Engine
	composer *intel.ReportComposer
}

// NewInsightHandler creates a new insight handler
func NewInsightHandler(engine *intel.Engine, composer *intel.ReportComposer) *InsightHandler {
	return &InsightHandler{
		engine:   engine,
		composer: composer,
	}
}

type analyzeRequest struct {
	Text      string   `json:"text"`
	Latitude  *float64 `json:"latitude,omitempty"`
	Longitude *float64 `json:"longitude,omitempty"`
}

type deepScanRequest struct {
	Text string `json:"text"`
}

// Analyze classifies submitted text and applies the spike update
func (h *InsightHandler) Analyze(w http.ResponseWriter, r *http.Request) {
	var req analyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	result, err := h.engine.Analyze(r.Context(), req.Text, req.Latitude, req.Longitude)
	if err != nil {
		if errors.Is(err, insight.ErrNotFound) {
			respondWithError(w, http.StatusNotFound, "Classification unavailable", nil)
			return
		}
		if errors.Is(err, intel.ErrEmptyInput) {
			respondWithError(w, http.StatusBadRequest, "Text is required", nil)
			return
		}
		respondWithError(w, http.StatusBadGateway, "Analysis failed", err)
		return
	}

	respondWithJSON(w, http.StatusOK, result)
}

// DeepScan looks up a product profile and replaces the fingerprint
func (h *InsightHandler) DeepScan(w http.ResponseWriter, r *http.Request) {
	var req deepScanRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	result, err := h.engine.DeepScan(r.Context(), req.Text)
	if err != nil {
		if errors.Is(err, insight.ErrNotFound) {
			respondWithError(w, http.StatusNotFound, "Model not found", nil)
			return
		}
		if errors.Is(err, intel.ErrEmptyInput) {
			respondWithError(w, http.StatusBadRequest, "Model query is required", nil)
			return
		}
		respondWithError(w, http.StatusBadGateway, "Deep scan failed", err)
		return
	}

	respondWithJSON(w, http.StatusOK, result)
}

// GetFingerprint returns the current fingerprint vector with topic labels
func (h *InsightHandler) GetFingerprint(w http.ResponseWriter, r *http.Request) {
	vector := h.engine.Fingerprint()

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"fingerprint": vector.Pairs(),
		"values":      vector,
	})
}

// GetHistory returns the activity history, newest first
func (h *InsightHandler) GetHistory(w http.ResponseWriter, r *http.Request) {
	geoOnly := r.URL.Query().Get("geo") == "true"

	entries := h.engine.History(geoOnly)
	if entries == nil {
		entries = []insight.HistoryEntry{}
	}

	respondWithJSON(w, http.StatusOK, entries)
}

// GetReport composes a report for the requested kind
func (h *InsightHandler) GetReport(w http.ResponseWriter, r *http.Request) {
	kind := insight.ReportKind(chi.URLParam(r, "kind"))

	switch kind {
	case insight.ReportProduct, insight.ReportCompany, insight.ReportFull:
	default:
		respondWithError(w, http.StatusBadRequest, "Unknown report kind", nil)
		return
	}

	sections := h.composer.Compose(kind, h.engine.ReportState())
	if sections == nil {
		sections = []insight.ReportSection{}
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"kind":     kind,
		"sections": sections,
	})
}
