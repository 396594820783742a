package risk

import (
	"math"

	"github.com/savegress/vitalscope/pkg/models"
)

// NormalRanges are fixed reference intervals used for trend abnormality
// flags. These are intentionally separate from the configurable scoring
// thresholds: a trend is judged against textbook normals regardless of how
// a clinic tunes its alerting tiers.
var NormalRanges = map[string]models.NormalRange{
	"systolic":  {Min: 90, Max: 120},
	"diastolic": {Min: 60, Max: 80},
	"heartRate": {Min: 60, Max: 100},
	"glucose":   {Min: 70, Max: 140},
	"oxygen":    {Min: 95, Max: 100},
}

// trendMetrics fixes the order metrics appear in trend output.
var trendMetrics = []string{"systolic", "diastolic", "heartRate", "glucose", "oxygen"}

const trendChangePct = 5

// AnalyzeTrends compares, per metric, the two most recent readings that
// carry that metric. A metric present in only one reading compares the
// value against itself and reports STABLE. Readings are expected
// most-recent-first.
func AnalyzeTrends(vitals []models.VitalReading) []models.VitalsTrend {
	trends := make([]models.VitalsTrend, 0, len(trendMetrics))

	for _, metric := range trendMetrics {
		values := metricValues(vitals, metric, 2)
		if len(values) == 0 {
			continue
		}

		current := values[0]
		previous := current
		if len(values) > 1 {
			previous = values[1]
		}

		// changePercent is reported as magnitude; direction lives in Trend.
		t := models.VitalsTrend{
			Metric:        metric,
			Current:       current,
			Previous:      previous,
			Trend:         classifyTrend(current, previous),
			ChangePercent: math.Abs(changePercent(current, previous)),
			NormalRange:   NormalRanges[metric],
		}
		t.IsAbnormal = current < t.NormalRange.Min || current > t.NormalRange.Max
		if t.IsAbnormal {
			t.Recommendation = abnormalRecommendation(metric, current, t.NormalRange)
		}

		trends = append(trends, t)
	}

	return trends
}

// ScoreTrendRisk converts sharp short-term movement into a risk
// contribution. Only blood pressure and heart rate movement carry weight.
func ScoreTrendRisk(trends []models.VitalsTrend) Contribution {
	var c Contribution
	for _, t := range trends {
		switch {
		case t.Metric == "systolic" && math.Abs(t.ChangePercent) > 20:
			c.add(10, "Rapid blood pressure change", "Increase blood pressure monitoring frequency")
		case t.Metric == "heartRate" && math.Abs(t.ChangePercent) > 15:
			c.add(8, "High heart rate variability", "Review recent activity and medication timing")
		}
	}
	return c
}

// metricValues collects up to limit values of one metric, walking readings
// most-recent-first and skipping readings that lack the metric.
func metricValues(vitals []models.VitalReading, metric string, limit int) []float64 {
	values := make([]float64, 0, limit)
	for i := range vitals {
		if v := metricOf(&vitals[i], metric); v != nil {
			values = append(values, *v)
			if len(values) == limit {
				break
			}
		}
	}
	return values
}

func metricOf(r *models.VitalReading, metric string) *float64 {
	switch metric {
	case "systolic":
		return r.Systolic
	case "diastolic":
		return r.Diastolic
	case "heartRate":
		return r.HeartRate
	case "glucose":
		return r.Glucose
	case "oxygen":
		return r.Oxygen
	}
	return nil
}

func classifyTrend(current, previous float64) models.Trend {
	pct := changePercent(current, previous)
	switch {
	case pct > trendChangePct:
		return models.TrendRising
	case pct < -trendChangePct:
		return models.TrendFalling
	}
	return models.TrendSteady
}

func changePercent(current, previous float64) float64 {
	if previous == 0 {
		return 0
	}
	return (current - previous) / previous * 100
}

func abnormalRecommendation(metric string, current float64, nr models.NormalRange) string {
	switch metric {
	case "systolic", "diastolic":
		if current > nr.Max {
			return "Blood pressure above normal range; continue daily monitoring"
		}
		return "Blood pressure below normal range; watch for dizziness"
	case "heartRate":
		if current > nr.Max {
			return "Heart rate above normal range; recheck at rest"
		}
		return "Heart rate below normal range; recheck at rest"
	case "glucose":
		if current > nr.Max {
			return "Glucose above normal range; review diet and medication"
		}
		return "Glucose below normal range; keep fast-acting carbohydrates nearby"
	case "oxygen":
		return "Oxygen saturation below normal range; monitor for shortness of breath"
	}
	return ""
}
