// Package stats computes daily, weekly and overall rollups of a patient's
// reading history. Everything here is a pure function over the normalized
// readings; no clock is consulted except the caller-supplied reference.
package stats

import (
	"math"
	"sort"
	"time"

	"github.com/savegress/vitalscope/pkg/models"
)

const dateLayout = "2006-01-02"

// Compute builds the full statistical rollup for one patient at a fixed
// reference time. Readings may arrive in any order; grouping is by
// calendar date only.
func Compute(vitals []models.VitalReading, now time.Time) models.HealthStatistics {
	byDate := groupByDate(vitals)

	return models.HealthStatistics{
		DailyLogs:      dailyLogs(byDate),
		WeeklyAverages: weeklyAverages(byDate),
		OverallStats:   overallStatistics(vitals, byDate),
		LastUpdated:    now,
		DataPoints:     len(vitals),
	}
}

func groupByDate(vitals []models.VitalReading) map[string][]models.VitalReading {
	byDate := make(map[string][]models.VitalReading)
	for i := range vitals {
		key := vitals[i].RecordedAt.Format(dateLayout)
		byDate[key] = append(byDate[key], vitals[i])
	}
	return byDate
}

func sortedDates(byDate map[string][]models.VitalReading) []string {
	dates := make([]string, 0, len(byDate))
	for d := range byDate {
		dates = append(dates, d)
	}
	sort.Strings(dates)
	return dates
}

// dailyLogs returns one aggregate per calendar day with data,
// most-recent-first.
func dailyLogs(byDate map[string][]models.VitalReading) []models.DailyAggregate {
	dates := sortedDates(byDate)
	logs := make([]models.DailyAggregate, 0, len(dates))
	for i := len(dates) - 1; i >= 0; i-- {
		readings := byDate[dates[i]]
		logs = append(logs, models.DailyAggregate{
			Date:     dates[i],
			Readings: len(readings),
			Values:   aggregate(readings),
		})
	}
	return logs
}

// weeklyAverages partitions days-with-data (not calendar days, so gaps are
// skipped) into consecutive groups of up to seven, ascending, then returns
// the windows most-recent-first. Each window's trend compares the first and
// last day-with-data inside it.
func weeklyAverages(byDate map[string][]models.VitalReading) []models.WeeklyAggregate {
	dates := sortedDates(byDate)
	windows := make([]models.WeeklyAggregate, 0, (len(dates)+6)/7)

	for start := 0; start < len(dates); start += 7 {
		end := start + 7
		if end > len(dates) {
			end = len(dates)
		}
		window := dates[start:end]

		var combined []models.VitalReading
		for _, d := range window {
			combined = append(combined, byDate[d]...)
		}

		windows = append(windows, models.WeeklyAggregate{
			StartDate:     window[0],
			EndDate:       window[len(window)-1],
			DaysWithData:  len(window),
			TotalReadings: len(combined),
			Values:        aggregate(combined),
			Trends:        windowTrends(byDate[window[0]], byDate[window[len(window)-1]]),
		})
	}

	// Most-recent-first.
	for i, j := 0, len(windows)-1; i < j; i, j = i+1, j-1 {
		windows[i], windows[j] = windows[j], windows[i]
	}
	return windows
}

// windowTrends classifies per-metric movement between the window's first
// and last day aggregates. Metrics missing from either day are omitted.
func windowTrends(firstDay, lastDay []models.VitalReading) map[string]models.Trend {
	first := aggregate(firstDay)
	last := aggregate(lastDay)
	trends := make(map[string]models.Trend)

	if first.BloodPressure != nil && last.BloodPressure != nil {
		trends["systolic"] = classify(last.BloodPressure.Systolic, first.BloodPressure.Systolic)
		trends["diastolic"] = classify(last.BloodPressure.Diastolic, first.BloodPressure.Diastolic)
	}
	if first.HeartRate != nil && last.HeartRate != nil {
		trends["heartRate"] = classify(last.HeartRate.Avg, first.HeartRate.Avg)
	}
	if first.Glucose != nil && last.Glucose != nil {
		trends["glucose"] = classify(last.Glucose.Avg, first.Glucose.Avg)
	}
	if first.Oxygen != nil && last.Oxygen != nil {
		trends["oxygen"] = classify(last.Oxygen.Avg, first.Oxygen.Avg)
	}
	if first.Weight != nil && last.Weight != nil {
		trends["weight"] = classify(last.Weight.Avg, first.Weight.Avg)
	}

	return trends
}

func classify(current, previous float64) models.Trend {
	if previous == 0 {
		return models.TrendSteady
	}
	pct := (current - previous) / previous * 100
	switch {
	case pct > 5:
		return models.TrendRising
	case pct < -5:
		return models.TrendFalling
	}
	return models.TrendSteady
}

// overallStatistics aggregates the full history. complianceRate is the
// share of calendar days in the inclusive first-to-last span that have at
// least one reading; a single-day history counts as fully compliant.
func overallStatistics(vitals []models.VitalReading, byDate map[string][]models.VitalReading) models.OverallStatistics {
	stats := models.OverallStatistics{
		Values: aggregate(vitals),
	}
	if len(byDate) == 0 {
		return stats
	}

	dates := sortedDates(byDate)
	first, _ := time.Parse(dateLayout, dates[0])
	last, _ := time.Parse(dateLayout, dates[len(dates)-1])

	spanDays := int(last.Sub(first).Hours()/24) + 1
	if spanDays <= 1 {
		stats.ComplianceRate = 100
	} else {
		stats.ComplianceRate = int(math.Round(float64(len(dates)) / float64(spanDays) * 100))
	}

	stats.FirstReading = dates[0]
	stats.LastReading = dates[len(dates)-1]
	return stats
}
