package risk

import (
	"time"

	"github.com/savegress/vitalscope/internal/config"
	"github.com/savegress/vitalscope/pkg/models"
)

// Engine composes the individual scorers into a per-patient risk
// assessment. It holds no per-patient state; concurrent assessments are
// safe as long as each reads its thresholds through the manager.
type Engine struct {
	cfg *config.Manager
}

// NewEngine creates an assessment engine bound to live thresholds.
func NewEngine(cfg *config.Manager) *Engine {
	return &Engine{cfg: cfg}
}

// Assess runs AssessAt against the wall clock.
func (e *Engine) Assess(bundle *models.PatientBundle) models.RiskAssessment {
	return e.AssessAt(bundle, time.Now())
}

// AssessAt scores a patient bundle at a fixed reference time. The score is
// the clamped sum of the vital, adherence and trend contributions; factors
// and recommendations are the deduplicated union in first-occurrence order.
func (e *Engine) AssessAt(bundle *models.PatientBundle, now time.Time) models.RiskAssessment {
	cfg := e.cfg.Get()

	contributions := make([]Contribution, 0, 6)
	if len(bundle.Vitals) > 0 {
		latest := &bundle.Vitals[0]
		contributions = append(contributions,
			ScoreBloodPressure(cfg.BloodPressure, latest.Systolic, latest.Diastolic),
			ScoreHeartRate(cfg.HeartRate, latest.HeartRate),
			ScoreGlucose(cfg.Glucose, latest.Glucose),
			ScoreOxygen(cfg.Oxygen, latest.Oxygen),
		)
	}
	contributions = append(contributions,
		ScoreAdherence(cfg.Adherence, bundle.CheckIns, now),
		ScoreTrendRisk(AnalyzeTrends(bundle.Vitals)),
	)

	score := 0
	var factors, recommendations []string
	for _, c := range contributions {
		score += c.Score
		factors = appendUnique(factors, c.Factors)
		recommendations = appendUnique(recommendations, c.Recommendations)
	}
	if score > 100 {
		score = 100
	}
	if score < 0 {
		score = 0
	}

	level := LevelFor(score)
	if factors == nil {
		factors = []string{}
	}
	if recommendations == nil {
		recommendations = []string{}
	}

	return models.RiskAssessment{
		RiskLevel:       level,
		RiskScore:       score,
		RiskFactors:     factors,
		Recommendations: recommendations,
		Priority:        priorityFor(level, len(factors)),
		LastAssessed:    now,
		TrendDirection:  trendDirection(bundle.Vitals),
	}
}

// LevelFor maps a clamped risk score onto its ordinal level.
func LevelFor(score int) models.RiskLevel {
	switch {
	case score >= 80:
		return models.RiskLevelCritical
	case score >= 60:
		return models.RiskLevelHigh
	case score >= 40:
		return models.RiskLevelModerate
	}
	return models.RiskLevelLow
}

func priorityFor(level models.RiskLevel, factorCount int) int {
	priority := 2
	switch level {
	case models.RiskLevelCritical:
		priority = 5
	case models.RiskLevelHigh:
		priority = 4
	case models.RiskLevelModerate:
		priority = 3
	}
	if factorCount >= 3 {
		priority++
	}
	if priority > 5 {
		priority = 5
	}
	return priority
}

// trendDirection inspects the three most recent readings. For each adjacent
// pair, a blood pressure or heart rate value moving closer to its normal
// range from an abnormal position earns an improvement point; a value
// leaving its normal range loses one. Fewer than three readings is STABLE.
// Glucose and oxygen do not participate.
func trendDirection(vitals []models.VitalReading) models.TrendDirection {
	if len(vitals) < 3 {
		return models.TrendStable
	}

	recent := vitals[:3]
	net := 0
	for i := 0; i < len(recent)-1; i++ {
		curr, prev := &recent[i], &recent[i+1]
		net += movementScore(prev.Systolic, curr.Systolic, NormalRanges["systolic"])
		net += movementScore(prev.HeartRate, curr.HeartRate, NormalRanges["heartRate"])
	}

	switch {
	case net > 0:
		return models.TrendImproving
	case net < 0:
		return models.TrendDeclining
	}
	return models.TrendStable
}

func movementScore(prev, curr *float64, nr models.NormalRange) int {
	if prev == nil || curr == nil {
		return 0
	}

	prevDist := normalDistance(*prev, nr)
	currDist := normalDistance(*curr, nr)
	switch {
	case prevDist > 0 && currDist < prevDist:
		return 1
	case prevDist == 0 && currDist > 0:
		return -1
	}
	return 0
}

// normalDistance is zero inside the range, otherwise the distance to the
// nearest boundary.
func normalDistance(v float64, nr models.NormalRange) float64 {
	switch {
	case v < nr.Min:
		return nr.Min - v
	case v > nr.Max:
		return v - nr.Max
	}
	return 0
}

func appendUnique(dst []string, src []string) []string {
	for _, s := range src {
		seen := false
		for _, existing := range dst {
			if existing == s {
				seen = true
				break
			}
		}
		if !seen {
			dst = append(dst, s)
		}
	}
	return dst
}
