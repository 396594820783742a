// Package population runs the per-patient engine across a cohort and
// combines the results deterministically.
package population

import (
	"fmt"
	"math"
	"sort"
	"sync"
	"time"

	"github.com/savegress/vitalscope/internal/config"
	"github.com/savegress/vitalscope/internal/normalize"
	"github.com/savegress/vitalscope/internal/risk"
	"github.com/savegress/vitalscope/pkg/models"
)

const activeWindowDays = 30

// Analyzer fans the risk engine out over a cohort. Per-patient work is
// independent and runs concurrently; combination happens in input order so
// output never depends on completion order.
type Analyzer struct {
	cfg    *config.Manager
	engine *risk.Engine
}

// NewAnalyzer creates a cohort analyzer bound to live thresholds.
func NewAnalyzer(cfg *config.Manager) *Analyzer {
	return &Analyzer{cfg: cfg, engine: risk.NewEngine(cfg)}
}

// Analyze runs AnalyzeAt against the wall clock.
func (a *Analyzer) Analyze(rawBundles []models.RawPatientBundle) models.PopulationInsights {
	return a.AnalyzeAt(rawBundles, time.Now())
}

type patientResult struct {
	bundle     models.PatientBundle
	assessment models.RiskAssessment
	adherence  int
}

// AnalyzeAt computes cohort insights at a fixed reference time.
func (a *Analyzer) AnalyzeAt(rawBundles []models.RawPatientBundle, now time.Time) models.PopulationInsights {
	cfg := a.cfg.Get()

	results := make([]patientResult, len(rawBundles))
	var wg sync.WaitGroup
	for i := range rawBundles {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			bundle := normalize.Bundle(&rawBundles[i])
			results[i] = patientResult{
				bundle:     bundle,
				assessment: a.engine.AssessAt(&bundle, now),
				adherence:  risk.AdherenceScore(cfg.Adherence, bundle.CheckIns, now),
			}
		}(i)
	}
	wg.Wait()

	insights := models.PopulationInsights{
		TotalPatients: len(results),
		RiskDistribution: map[models.RiskLevel]int{
			models.RiskLevelLow:      0,
			models.RiskLevelModerate: 0,
			models.RiskLevelHigh:     0,
			models.RiskLevelCritical: 0,
		},
		GeneratedAt: now,
	}

	healthSum, adherenceSum := 0, 0
	factorCounts := make(map[string]int)
	factorOrder := []string{}
	conditionCounts := map[string]int{}

	for i := range results {
		r := &results[i]

		insights.RiskDistribution[r.assessment.RiskLevel]++
		if r.assessment.RiskLevel == models.RiskLevelHigh || r.assessment.RiskLevel == models.RiskLevelCritical {
			insights.HighRiskPatients++
		}
		if hasRecentCheckIn(r.bundle.CheckIns, now) {
			insights.ActivePatients++
		}
		healthSum += simplifiedHealthScore(&r.bundle, now)
		adherenceSum += r.adherence

		for _, f := range r.assessment.RiskFactors {
			if factorCounts[f] == 0 {
				factorOrder = append(factorOrder, f)
			}
			factorCounts[f]++
		}

		for _, cond := range conditionsOf(&r.bundle) {
			conditionCounts[cond]++
		}
	}

	if len(results) > 0 {
		insights.AverageHealthScore = roundDiv(healthSum, len(results))
		insights.AdherenceRate = roundDiv(adherenceSum, len(results))
	}
	insights.TrendingConcerns = topConcerns(factorCounts, factorOrder, 5)
	insights.CommonConditions = prevalence(conditionCounts, len(results))
	insights.Recommendations = cohortRecommendations(&insights)
	insights.Predictions = cohortPredictions(&insights)

	return insights
}

func hasRecentCheckIn(checkIns []models.CheckIn, now time.Time) bool {
	cutoff := now.AddDate(0, 0, -activeWindowDays)
	for i := range checkIns {
		if checkIns[i].RecordedAt.After(cutoff) && !checkIns[i].RecordedAt.After(now) {
			return true
		}
	}
	return false
}

// simplifiedHealthScore is the coarse cohort-averaging score: base 70,
// penalized per out-of-range current vital, bonused for check-in volume.
// It is deliberately cruder than the per-patient overallHealthScore.
func simplifiedHealthScore(bundle *models.PatientBundle, now time.Time) int {
	score := 70

	if len(bundle.Vitals) > 0 {
		latest := &bundle.Vitals[0]
		for _, m := range []struct {
			value *float64
			nr    models.NormalRange
		}{
			{latest.Systolic, risk.NormalRanges["systolic"]},
			{latest.Diastolic, risk.NormalRanges["diastolic"]},
			{latest.HeartRate, risk.NormalRanges["heartRate"]},
			{latest.Glucose, risk.NormalRanges["glucose"]},
			{latest.Oxygen, risk.NormalRanges["oxygen"]},
		} {
			if m.value != nil && (*m.value < m.nr.Min || *m.value > m.nr.Max) {
				score -= 8
			}
		}
	}

	recent := 0
	cutoff := now.AddDate(0, 0, -activeWindowDays)
	for i := range bundle.CheckIns {
		if !bundle.CheckIns[i].RecordedAt.Before(cutoff) && !bundle.CheckIns[i].RecordedAt.After(now) {
			recent++
		}
	}
	switch {
	case recent >= 20:
		score += 15
	case recent >= 10:
		score += 10
	case recent >= 1:
		score += 5
	}

	if score > 100 {
		score = 100
	}
	if score < 0 {
		score = 0
	}
	return score
}

// conditionsOf derives coarse condition flags from the latest reading only.
func conditionsOf(bundle *models.PatientBundle) []string {
	if len(bundle.Vitals) == 0 {
		return nil
	}
	latest := &bundle.Vitals[0]

	var conditions []string
	if latest.Systolic != nil && *latest.Systolic >= 140 {
		conditions = append(conditions, "Hypertension")
	}
	if latest.Glucose != nil && *latest.Glucose > 180 {
		conditions = append(conditions, "Diabetes")
	}
	if latest.HeartRate != nil && *latest.HeartRate > 100 {
		conditions = append(conditions, "Tachycardia")
	}
	return conditions
}

// topConcerns returns the n most frequent factors. Ties keep the order the
// factor was first encountered in the input.
func topConcerns(counts map[string]int, order []string, n int) []string {
	sorted := make([]string, len(order))
	copy(sorted, order)
	sort.SliceStable(sorted, func(i, j int) bool {
		return counts[sorted[i]] > counts[sorted[j]]
	})
	if len(sorted) > n {
		sorted = sorted[:n]
	}
	return sorted
}

// conditionOrder fixes the reporting order of cohort conditions.
var conditionOrder = []string{"Hypertension", "Diabetes", "Tachycardia"}

func prevalence(counts map[string]int, total int) []models.ConditionPrevalence {
	out := []models.ConditionPrevalence{}
	if total == 0 {
		return out
	}
	for _, cond := range conditionOrder {
		n := counts[cond]
		if n == 0 {
			continue
		}
		out = append(out, models.ConditionPrevalence{
			Condition:  cond,
			Patients:   n,
			Prevalence: math.Round(float64(n)/float64(total)*1000) / 10,
		})
	}
	return out
}

func cohortRecommendations(p *models.PopulationInsights) []string {
	recs := []string{}
	if p.TotalPatients == 0 {
		return recs
	}

	lowCount := p.RiskDistribution[models.RiskLevelLow]
	if p.HighRiskPatients > lowCount {
		recs = append(recs, "High-risk patients outnumber low-risk; review care team staffing levels")
	}
	if p.TotalPatients > 0 && p.ActivePatients*2 < p.TotalPatients {
		recs = append(recs, "Fewer than half of patients checked in this month; run an engagement campaign")
	}
	if p.AdherenceRate < 60 {
		recs = append(recs, "Cohort adherence is low; enable automated check-in reminders")
	}
	for _, c := range p.CommonConditions {
		if c.Condition == "Hypertension" && c.Prevalence >= 30 {
			recs = append(recs, "Hypertension prevalence is elevated; consider a blood pressure management program")
		}
	}
	return recs
}

func cohortPredictions(p *models.PopulationInsights) []string {
	preds := []string{}
	if p.HighRiskPatients > 0 {
		preds = append(preds, fmt.Sprintf("%d patients are at elevated risk of escalation within 30 days", p.HighRiskPatients))
	}
	if critical := p.RiskDistribution[models.RiskLevelCritical]; critical > 0 {
		preds = append(preds, fmt.Sprintf("%d patients may require intervention this week without follow-up", critical))
	}
	return preds
}

func roundDiv(sum, n int) int {
	return int(math.Round(float64(sum) / float64(n)))
}
