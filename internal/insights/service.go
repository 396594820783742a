// Package insights composes the analysis engines into the per-patient
// results the dashboard consumes.
package insights

import (
	"math"
	"time"

	"github.com/savegress/vitalscope/internal/alerts"
	"github.com/savegress/vitalscope/internal/config"
	"github.com/savegress/vitalscope/internal/normalize"
	"github.com/savegress/vitalscope/internal/predict"
	"github.com/savegress/vitalscope/internal/recommend"
	"github.com/savegress/vitalscope/internal/risk"
	"github.com/savegress/vitalscope/internal/stats"
	"github.com/savegress/vitalscope/pkg/models"
)

// Service wires the engines to a shared threshold manager.
type Service struct {
	cfg      *config.Manager
	engine   *risk.Engine
	detector *alerts.Detector
}

// NewService creates the insight service around live thresholds.
func NewService(cfg *config.Manager) *Service {
	return &Service{
		cfg:      cfg,
		engine:   risk.NewEngine(cfg),
		detector: alerts.NewDetector(cfg),
	}
}

// PatientInsight runs PatientInsightAt against the wall clock.
func (s *Service) PatientInsight(raw *models.RawPatientBundle) models.PatientInsight {
	return s.PatientInsightAt(raw, time.Now())
}

// PatientInsightAt builds the full per-patient analytics result at a fixed
// reference time. Identical input at the same reference time yields
// identical output.
func (s *Service) PatientInsightAt(raw *models.RawPatientBundle, now time.Time) models.PatientInsight {
	bundle := normalize.Bundle(raw)
	cfg := s.cfg.Get()

	assessment := s.engine.AssessAt(&bundle, now)
	trends := risk.AnalyzeTrends(bundle.Vitals)
	adherence := risk.AdherenceScore(cfg.Adherence, bundle.CheckIns, now)

	var latest *models.VitalReading
	if len(bundle.Vitals) > 0 {
		latest = &bundle.Vitals[0]
	}

	return models.PatientInsight{
		PatientID:           bundle.Profile.PatientID,
		PatientName:         bundle.Profile.PatientName,
		OverallHealthScore:  overallHealthScore(assessment.RiskScore, adherence),
		RiskAssessment:      assessment,
		VitalsTrends:        trends,
		AdherenceScore:      adherence,
		LastCheckIn:         risk.LastCheckIn(bundle.CheckIns),
		EmergencyAlerts:     s.detector.DetectAt(&bundle, &assessment, now),
		PredictedOutcomes:   predict.Outcomes(&assessment, latest),
		CareRecommendations: recommend.Build(&assessment, trends),
	}
}

// Statistics builds the statistical rollup for one patient.
func (s *Service) Statistics(raw *models.RawPatientBundle, now time.Time) models.HealthStatistics {
	bundle := normalize.Bundle(raw)
	return stats.Compute(bundle.Vitals, now)
}

// overallHealthScore blends risk and adherence into a single 0-100 score.
// Risk dominates at 70% weight; the remainder rewards check-in consistency.
func overallHealthScore(riskScore, adherenceScore int) int {
	score := 100 - 0.7*float64(riskScore) - 0.3*float64(100-adherenceScore)
	clamped := math.Min(100, math.Max(0, score))
	return int(math.Round(clamped))
}
