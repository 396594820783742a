// Package recommend maps an assessment and its trends onto categorized
// care actions via an independent rule table.
package recommend

import (
	"strings"

	"github.com/savegress/vitalscope/pkg/models"
)

// Build evaluates every recommendation rule. Rules are independent; more
// than one may apply to the same patient.
func Build(assessment *models.RiskAssessment, trends []models.VitalsTrend) []models.CareRecommendation {
	recs := []models.CareRecommendation{}

	if assessment.RiskLevel == models.RiskLevelCritical {
		recs = append(recs, models.CareRecommendation{
			Category:        models.CategoryIntervention,
			Priority:        models.PriorityUrgent,
			Recommendation:  "Arrange an immediate clinical review",
			Reasoning:       "Composite risk score is in the critical band",
			EstimatedImpact: "Reduces likelihood of an acute event",
			Timeline:        "Within 24 hours",
		})
	}

	for _, t := range trends {
		if t.Metric != "systolic" || !t.IsAbnormal {
			continue
		}
		priority := models.PriorityHigh
		timeline := "Within 1 week"
		if t.Current > 180 {
			priority = models.PriorityUrgent
			timeline = "Within 48 hours"
		}
		recs = append(recs, models.CareRecommendation{
			Category:        models.CategoryMedication,
			Priority:        priority,
			Recommendation:  "Review antihypertensive medication and dosing",
			Reasoning:       "Systolic blood pressure is outside the normal range",
			EstimatedImpact: "Brings blood pressure back toward target",
			Timeline:        timeline,
		})
		break
	}

	if mentionsActivity(assessment.RiskFactors) {
		recs = append(recs, models.CareRecommendation{
			Category:        models.CategoryLifestyle,
			Priority:        models.PriorityMedium,
			Recommendation:  "Introduce a graded daily activity plan",
			Reasoning:       "Risk factors point to low physical activity",
			EstimatedImpact: "Improves cardiovascular fitness over time",
			Timeline:        "Start within 2 weeks",
		})
	}

	if assessment.RiskLevel == models.RiskLevelHigh {
		recs = append(recs, models.CareRecommendation{
			Category:        models.CategoryMonitoring,
			Priority:        models.PriorityHigh,
			Recommendation:  "Increase check-in frequency to daily",
			Reasoning:       "Composite risk score is in the high band",
			EstimatedImpact: "Earlier detection of deterioration",
			Timeline:        "Within 3 days",
		})
	}

	return recs
}

func mentionsActivity(factors []string) bool {
	for _, f := range factors {
		lower := strings.ToLower(f)
		if strings.Contains(lower, "sedentary") || strings.Contains(lower, "activity") {
			return true
		}
	}
	return false
}
