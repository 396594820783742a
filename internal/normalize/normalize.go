// Package normalize resolves the naming variance between source tables and
// converts boundary records into typed internal entities. Alias resolution
// lives here and only here: scoring, trend analysis and aggregation all see
// the same canonical value for the same reading.
package normalize

import (
	"time"

	"github.com/savegress/vitalscope/pkg/models"
)

// GlucoseOf returns the glucose value for a raw reading, preferring the
// canonical glucoseLevel field and falling back to bloodSugar. A nil return
// means the reading carries no glucose measurement.
func GlucoseOf(r *models.RawVitalReading) *float64 {
	if r.GlucoseLevel != nil {
		return r.GlucoseLevel
	}
	return r.BloodSugar
}

// OxygenOf returns the oxygen saturation for a raw reading. Priority order
// is fixed: oxygenSaturation, then spo2, then oxygenLevel.
func OxygenOf(r *models.RawVitalReading) *float64 {
	if r.OxygenSaturation != nil {
		return r.OxygenSaturation
	}
	if r.SpO2 != nil {
		return r.SpO2
	}
	return r.OxygenLevel
}

// Reading converts a boundary record into the canonical internal form.
// The second return is false when the timestamp cannot be parsed; such
// readings are excluded from analysis rather than treated as an error.
func Reading(r *models.RawVitalReading) (models.VitalReading, bool) {
	ts, err := parseTimestamp(r.RecordedAt)
	if err != nil {
		return models.VitalReading{}, false
	}

	return models.VitalReading{
		RecordedAt:          ts,
		Systolic:            r.Systolic,
		Diastolic:           r.Diastolic,
		HeartRate:           r.HeartRate,
		Glucose:             GlucoseOf(r),
		Oxygen:              OxygenOf(r),
		Weight:              r.Weight,
		Mood:                r.Mood,
		PhysicalActivity:    r.PhysicalActivity,
		SocialEngagement:    r.SocialEngagement,
		Symptoms:            r.Symptoms,
		ActivityDescription: r.ActivityDescription,
		IsEmergency:         r.IsEmergency,
	}, true
}

// Bundle converts a raw patient bundle, dropping records whose timestamps
// fail to parse. Ordering of the surviving records is preserved
// (most-recent-first, as supplied by the query collaborator).
func Bundle(raw *models.RawPatientBundle) models.PatientBundle {
	out := models.PatientBundle{
		Profile:  raw.Profile,
		Vitals:   make([]models.VitalReading, 0, len(raw.Vitals)),
		CheckIns: make([]models.CheckIn, 0, len(raw.CheckIns)),
	}

	for i := range raw.Vitals {
		if v, ok := Reading(&raw.Vitals[i]); ok {
			out.Vitals = append(out.Vitals, v)
		}
	}

	for i := range raw.CheckIns {
		ts, err := parseTimestamp(raw.CheckIns[i].RecordedAt)
		if err != nil {
			continue
		}
		out.CheckIns = append(out.CheckIns, models.CheckIn{
			RecordedAt: ts,
			Note:       raw.CheckIns[i].Note,
		})
	}

	return out
}

// parseTimestamp accepts the formats the source tables actually emit.
func parseTimestamp(s string) (time.Time, error) {
	layouts := []string{
		time.RFC3339,
		"2006-01-02T15:04:05",
		"2006-01-02 15:04:05",
		"2006-01-02",
	}

	var lastErr error
	for _, layout := range layouts {
		ts, err := time.Parse(layout, s)
		if err == nil {
			return ts, nil
		}
		lastErr = err
	}
	return time.Time{}, lastErr
}
