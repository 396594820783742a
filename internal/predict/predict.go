// Package predict derives heuristic outcome estimates from a finished risk
// assessment. These are deterministic rules of thumb for dashboard
// prioritization, not a trained clinical model.
package predict

import (
	"fmt"
	"math"
	"strings"

	"github.com/savegress/vitalscope/pkg/models"
)

// Outcomes generates predicted outcomes from an assessment plus the latest
// normalized reading. The latest reading may be nil when a patient has no
// usable vitals; bonuses that depend on it simply do not apply.
func Outcomes(assessment *models.RiskAssessment, latest *models.VitalReading) []models.PredictedOutcome {
	outcomes := []models.PredictedOutcome{}
	score := float64(assessment.RiskScore)

	if basedOn := matchFactors(assessment.RiskFactors, cardiovascularTerms); len(basedOn) > 0 {
		probability := 0.6 * score
		if latest != nil && latest.Systolic != nil && *latest.Systolic > 140 {
			probability += 15
		}
		if latest != nil && latest.HeartRate != nil && *latest.HeartRate > 100 {
			probability += 10
		}
		outcomes = append(outcomes, models.PredictedOutcome{
			Condition:       "Cardiovascular Event",
			Probability:     clampProbability(probability, 95),
			Timeframe:       "6 months",
			ConfidenceLevel: models.ConfidenceMedium,
			BasedOn:         basedOn,
		})
	}

	if basedOn := matchFactors(assessment.RiskFactors, metabolicTerms); len(basedOn) > 0 {
		probability := 0.7 * score
		if latest != nil && latest.Glucose != nil {
			switch {
			case *latest.Glucose > 250:
				probability += 20
			case *latest.Glucose > 180:
				probability += 10
			}
		}
		outcomes = append(outcomes, models.PredictedOutcome{
			Condition:       "Diabetes Complications",
			Probability:     clampProbability(probability, 90),
			Timeframe:       "3 months",
			ConfidenceLevel: models.ConfidenceHigh,
			BasedOn:         basedOn,
		})
	}

	if assessment.RiskLevel == models.RiskLevelHigh || assessment.RiskLevel == models.RiskLevelCritical {
		outcomes = append(outcomes, models.PredictedOutcome{
			Condition:       "Hospital Readmission",
			Probability:     clampProbability(score+15, 85),
			Timeframe:       "30 days",
			ConfidenceLevel: models.ConfidenceHigh,
			BasedOn:         []string{fmt.Sprintf("Overall risk level %s", assessment.RiskLevel)},
		})
	}

	return outcomes
}

var cardiovascularTerms = []string{"hypertens", "blood pressure", "cardia", "heart rate"}

var metabolicTerms = []string{"glycemia", "glucose"}

// matchFactors returns, in input order, the factors containing any of the
// given lowercase terms.
func matchFactors(factors []string, terms []string) []string {
	var matched []string
	for _, f := range factors {
		lower := strings.ToLower(f)
		for _, term := range terms {
			if strings.Contains(lower, term) {
				matched = append(matched, f)
				break
			}
		}
	}
	return matched
}

func clampProbability(p, ceiling float64) int {
	return int(math.Round(math.Min(ceiling, p)))
}
