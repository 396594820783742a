package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/savegress/vitalscope/internal/config"
	"github.com/savegress/vitalscope/internal/insights"
	"github.com/savegress/vitalscope/internal/population"
	"github.com/savegress/vitalscope/pkg/models"
)

// Handlers contains all HTTP handlers
type Handlers struct {
	insights   *insights.Service
	population *population.Analyzer
	thresholds *config.Manager
}

// NewHandlers creates new handlers
func NewHandlers(svc *insights.Service, pop *population.Analyzer, thresholds *config.Manager) *Handlers {
	return &Handlers{
		insights:   svc,
		population: pop,
		thresholds: thresholds,
	}
}

// HealthCheck handles health check requests
func (h *Handlers) HealthCheck(w http.ResponseWriter, r *http.Request) {
	respond(w, http.StatusOK, map[string]string{
		"status":  "healthy",
		"service": "vitalscope",
		"time":    time.Now().UTC().Format(time.RFC3339),
	})
}

// PatientInsight computes the full analytics result for one patient
func (h *Handlers) PatientInsight(w http.ResponseWriter, r *http.Request) {
	var bundle models.RawPatientBundle
	if err := json.NewDecoder(r.Body).Decode(&bundle); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if bundle.Profile.PatientID == "" {
		respondError(w, http.StatusBadRequest, "profile.patientId is required")
		return
	}

	respond(w, http.StatusOK, h.insights.PatientInsight(&bundle))
}

// BatchInsightsRequest is the batch analytics request body
type BatchInsightsRequest struct {
	Bundles []models.RawPatientBundle `json:"bundles"`
}

// BatchInsights computes analytics for several patients in one call
func (h *Handlers) BatchInsights(w http.ResponseWriter, r *http.Request) {
	var req BatchInsightsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	now := time.Now()
	results := make([]models.PatientInsight, len(req.Bundles))
	for i := range req.Bundles {
		results[i] = h.insights.PatientInsightAt(&req.Bundles[i], now)
	}

	respond(w, http.StatusOK, map[string]interface{}{
		"batchId":  uuid.New().String(),
		"count":    len(results),
		"insights": results,
	})
}

// Statistics computes the statistical rollup for one patient
func (h *Handlers) Statistics(w http.ResponseWriter, r *http.Request) {
	var bundle models.RawPatientBundle
	if err := json.NewDecoder(r.Body).Decode(&bundle); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	respond(w, http.StatusOK, h.insights.Statistics(&bundle, time.Now()))
}

// PopulationRequest is the cohort analytics request body
type PopulationRequest struct {
	Bundles []models.RawPatientBundle `json:"bundles"`
}

// PopulationInsights computes cohort-level analytics
func (h *Handlers) PopulationInsights(w http.ResponseWriter, r *http.Request) {
	var req PopulationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	respond(w, http.StatusOK, h.population.Analyze(req.Bundles))
}

// GetConfiguration returns the live analytics thresholds
func (h *Handlers) GetConfiguration(w http.ResponseWriter, r *http.Request) {
	respond(w, http.StatusOK, h.thresholds.Get())
}

// UpdateConfiguration merges a partial threshold update
func (h *Handlers) UpdateConfiguration(w http.ResponseWriter, r *http.Request) {
	var patch config.AnalyticsPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	respond(w, http.StatusOK, h.thresholds.Update(patch))
}

// Helper functions

func respond(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respond(w, status, map[string]string{"error": message})
}
