package alerts

import (
	"testing"
	"time"

	"github.com/savegress/vitalscope/internal/config"
	"github.com/savegress/vitalscope/pkg/models"
)

var detectNow = time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)

func fp(v float64) *float64 {
	return &v
}

func newTestDetector() *Detector {
	return NewDetector(config.NewManager(config.DefaultAnalytics()))
}

func bundleWithLatest(mutate func(*models.VitalReading)) models.PatientBundle {
	r := models.VitalReading{RecordedAt: detectNow.Add(-time.Hour)}
	mutate(&r)
	return models.PatientBundle{
		Profile:  models.PatientProfile{PatientID: "pt-1"},
		Vitals:   []models.VitalReading{r},
		CheckIns: []models.CheckIn{{RecordedAt: detectNow.Add(-2 * time.Hour)}},
	}
}

func TestDetectAt_CriticalBloodPressure(t *testing.T) {
	d := newTestDetector()
	bundle := bundleWithLatest(func(r *models.VitalReading) {
		r.Systolic = fp(185)
		r.Diastolic = fp(125)
	})

	alerts := d.DetectAt(&bundle, nil, detectNow)

	if len(alerts) != 1 {
		t.Fatalf("expected one alert, got %d", len(alerts))
	}
	a := alerts[0]
	if a.Severity != models.AlertSeverityCritical || a.Type != models.AlertTypeVitalAnomaly {
		t.Errorf("expected CRITICAL VITAL_ANOMALY, got %s %s", a.Severity, a.Type)
	}
	if !a.ActionRequired {
		t.Error("critical alerts must require action")
	}
	if len(a.SuggestedActions) == 0 {
		t.Error("expected suggested actions")
	}
}

func TestDetectAt_CriticalOxygen(t *testing.T) {
	d := newTestDetector()
	bundle := bundleWithLatest(func(r *models.VitalReading) { r.Oxygen = fp(85) })

	alerts := d.DetectAt(&bundle, nil, detectNow)

	if len(alerts) != 1 || alerts[0].Type != models.AlertTypeVitalAnomaly {
		t.Fatalf("expected one vital anomaly alert, got %v", alerts)
	}
}

func TestDetectAt_HeartRateBounds(t *testing.T) {
	d := newTestDetector()

	high := bundleWithLatest(func(r *models.VitalReading) { r.HeartRate = fp(125) })
	if alerts := d.DetectAt(&high, nil, detectNow); len(alerts) != 1 {
		t.Errorf("expected alert for heart rate 125, got %v", alerts)
	}

	low := bundleWithLatest(func(r *models.VitalReading) { r.HeartRate = fp(55) })
	if alerts := d.DetectAt(&low, nil, detectNow); len(alerts) != 1 {
		t.Errorf("expected alert for heart rate 55, got %v", alerts)
	}

	normal := bundleWithLatest(func(r *models.VitalReading) { r.HeartRate = fp(80) })
	if alerts := d.DetectAt(&normal, nil, detectNow); len(alerts) != 0 {
		t.Errorf("expected no alerts for heart rate 80, got %v", alerts)
	}
}

func TestDetectAt_MissedCheckInsIsStrict(t *testing.T) {
	d := newTestDetector()

	atThreshold := models.PatientBundle{
		Profile:  models.PatientProfile{PatientID: "pt-1"},
		CheckIns: []models.CheckIn{{RecordedAt: detectNow.AddDate(0, 0, -3)}},
	}
	if alerts := d.DetectAt(&atThreshold, nil, detectNow); len(alerts) != 0 {
		t.Errorf("expected no alert at exactly 3 days, got %v", alerts)
	}

	pastThreshold := models.PatientBundle{
		Profile:  models.PatientProfile{PatientID: "pt-1"},
		CheckIns: []models.CheckIn{{RecordedAt: detectNow.AddDate(0, 0, -4)}},
	}
	alerts := d.DetectAt(&pastThreshold, nil, detectNow)
	if len(alerts) != 1 {
		t.Fatalf("expected one alert past the threshold, got %d", len(alerts))
	}
	a := alerts[0]
	if a.Type != models.AlertTypeMissedCheckIns || a.Severity != models.AlertSeverityWarning {
		t.Errorf("expected WARNING MISSED_CHECKINS, got %s %s", a.Severity, a.Type)
	}
	if a.ActionRequired {
		t.Error("warnings must not require action")
	}
	if a.Message != "No check-in recorded for 4 days" {
		t.Errorf("expected message naming 4 days, got %q", a.Message)
	}
}

func TestDetectAt_NoCheckInsDoesNotFireMissedAlert(t *testing.T) {
	d := newTestDetector()
	bundle := models.PatientBundle{Profile: models.PatientProfile{PatientID: "pt-1"}}

	if alerts := d.DetectAt(&bundle, nil, detectNow); len(alerts) != 0 {
		t.Errorf("expected no alerts for an empty bundle, got %v", alerts)
	}
}

func TestDetectAt_EmergencyFlagFiresExactlyOnce(t *testing.T) {
	d := newTestDetector()
	bundle := bundleWithLatest(func(r *models.VitalReading) {
		r.Systolic = fp(118)
		r.Diastolic = fp(76)
		r.IsEmergency = true
	})

	alerts := d.DetectAt(&bundle, nil, detectNow)

	if len(alerts) != 1 {
		t.Fatalf("expected exactly one alert, got %d", len(alerts))
	}
	a := alerts[0]
	if a.Type != models.AlertTypeEmergencyContact || a.Severity != models.AlertSeverityCritical {
		t.Errorf("expected CRITICAL EMERGENCY_CONTACT, got %s %s", a.Severity, a.Type)
	}
}

func TestDetectAt_RiskEscalation(t *testing.T) {
	d := newTestDetector()
	bundle := bundleWithLatest(func(r *models.VitalReading) {})
	assessment := models.RiskAssessment{RiskLevel: models.RiskLevelCritical, RiskScore: 92}

	alerts := d.DetectAt(&bundle, &assessment, detectNow)

	if len(alerts) != 1 {
		t.Fatalf("expected one escalation alert, got %d", len(alerts))
	}
	a := alerts[0]
	if a.Type != models.AlertTypeRiskEscalation || a.Severity != models.AlertSeverityUrgent {
		t.Errorf("expected URGENT RISK_ESCALATION, got %s %s", a.Severity, a.Type)
	}
	if !a.ActionRequired {
		t.Error("urgent alerts must require action")
	}
}

func TestDetectAt_RiskEscalationRespectsToggle(t *testing.T) {
	cfg := config.DefaultAnalytics()
	cfg.Alerts.EnablePredictive = false
	d := NewDetector(config.NewManager(cfg))

	bundle := bundleWithLatest(func(r *models.VitalReading) {})
	assessment := models.RiskAssessment{RiskLevel: models.RiskLevelCritical, RiskScore: 92}

	if alerts := d.DetectAt(&bundle, &assessment, detectNow); len(alerts) != 0 {
		t.Errorf("expected no alerts with predictive disabled, got %v", alerts)
	}
}

func TestDetectAt_IDsAreDeterministic(t *testing.T) {
	d := newTestDetector()
	bundle := bundleWithLatest(func(r *models.VitalReading) { r.Oxygen = fp(85) })

	first := d.DetectAt(&bundle, nil, detectNow)
	second := d.DetectAt(&bundle, nil, detectNow)

	if first[0].ID != second[0].ID {
		t.Errorf("expected stable alert IDs, got %q and %q", first[0].ID, second[0].ID)
	}
	if first[0].ID != "alert-pt-1-vital-o2" {
		t.Errorf("unexpected alert ID %q", first[0].ID)
	}
}

func TestDetectAt_MultipleAlertsMayFireTogether(t *testing.T) {
	d := newTestDetector()
	bundle := models.PatientBundle{
		Profile: models.PatientProfile{PatientID: "pt-1"},
		Vitals: []models.VitalReading{{
			RecordedAt:  detectNow.Add(-time.Hour),
			Systolic:    fp(190),
			Diastolic:   fp(125),
			Oxygen:      fp(84),
			IsEmergency: true,
		}},
		CheckIns: []models.CheckIn{{RecordedAt: detectNow.AddDate(0, 0, -10)}},
	}

	alerts := d.DetectAt(&bundle, nil, detectNow)

	if len(alerts) != 4 {
		t.Fatalf("expected 4 independent alerts, got %d", len(alerts))
	}
}
