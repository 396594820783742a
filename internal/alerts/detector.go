// Package alerts turns the latest readings and check-in cadence into typed
// emergency alerts. Checks are independent; a single evaluation may emit
// several alerts at once.
package alerts

import (
	"fmt"
	"time"

	"github.com/savegress/vitalscope/internal/config"
	"github.com/savegress/vitalscope/internal/risk"
	"github.com/savegress/vitalscope/pkg/models"
)

// Detector evaluates a patient bundle against the live critical bounds.
type Detector struct {
	cfg *config.Manager
}

// NewDetector creates a detector bound to live thresholds.
func NewDetector(cfg *config.Manager) *Detector {
	return &Detector{cfg: cfg}
}

// Detect runs DetectAt against the wall clock.
func (d *Detector) Detect(bundle *models.PatientBundle, assessment *models.RiskAssessment) []models.EmergencyAlert {
	return d.DetectAt(bundle, assessment, time.Now())
}

// DetectAt evaluates every alert condition at a fixed reference time.
// Alert IDs are derived from the patient and the trigger, so repeated
// evaluation of the same input yields the same IDs.
func (d *Detector) DetectAt(bundle *models.PatientBundle, assessment *models.RiskAssessment, now time.Time) []models.EmergencyAlert {
	cfg := d.cfg.Get()
	patientID := bundle.Profile.PatientID
	alerts := []models.EmergencyAlert{}

	if len(bundle.Vitals) > 0 {
		latest := &bundle.Vitals[0]

		if latest.Systolic != nil && latest.Diastolic != nil &&
			(*latest.Systolic > cfg.BloodPressure.CriticalSystolic || *latest.Diastolic > cfg.BloodPressure.CriticalDiastolic) {
			alerts = append(alerts, models.EmergencyAlert{
				ID:             alertID(patientID, "vital-bp"),
				Severity:       models.AlertSeverityCritical,
				Type:           models.AlertTypeVitalAnomaly,
				Message:        fmt.Sprintf("Blood pressure critically elevated: %.0f/%.0f mmHg", *latest.Systolic, *latest.Diastolic),
				Timestamp:      now,
				ActionRequired: true,
				SuggestedActions: []string{
					"Contact emergency services if symptomatic",
					"Notify the assigned care team immediately",
					"Recheck blood pressure within 5 minutes",
				},
			})
		}

		// Deliberately asymmetric: tachycardia alerts only past the
		// critical bound, bradycardia already at the low bound.
		if latest.HeartRate != nil &&
			(*latest.HeartRate > cfg.HeartRate.CriticalHigh || *latest.HeartRate < cfg.HeartRate.Low) {
			alerts = append(alerts, models.EmergencyAlert{
				ID:             alertID(patientID, "vital-hr"),
				Severity:       models.AlertSeverityCritical,
				Type:           models.AlertTypeVitalAnomaly,
				Message:        fmt.Sprintf("Heart rate critically abnormal: %.0f bpm", *latest.HeartRate),
				Timestamp:      now,
				ActionRequired: true,
				SuggestedActions: []string{
					"Notify the assigned care team immediately",
					"Recheck heart rate at rest",
					"Review recent medication changes",
				},
			})
		}

		if latest.Oxygen != nil && *latest.Oxygen < cfg.Oxygen.Critical {
			alerts = append(alerts, models.EmergencyAlert{
				ID:             alertID(patientID, "vital-o2"),
				Severity:       models.AlertSeverityCritical,
				Type:           models.AlertTypeVitalAnomaly,
				Message:        fmt.Sprintf("Oxygen saturation critically low: %.0f%%", *latest.Oxygen),
				Timestamp:      now,
				ActionRequired: true,
				SuggestedActions: []string{
					"Contact emergency services",
					"Apply supplemental oxygen if prescribed",
					"Keep the patient seated upright",
				},
			})
		}

		if latest.IsEmergency {
			alerts = append(alerts, models.EmergencyAlert{
				ID:             alertID(patientID, "emergency-flag"),
				Severity:       models.AlertSeverityCritical,
				Type:           models.AlertTypeEmergencyContact,
				Message:        "Patient flagged an emergency on their latest reading",
				Timestamp:      now,
				ActionRequired: true,
				SuggestedActions: []string{
					"Call the patient immediately",
					"Escalate to emergency contact if unreachable",
				},
			})
		}
	}

	if days := risk.DaysSinceLastCheckIn(bundle.CheckIns, now); days > cfg.Adherence.MissedCheckInDays && days >= 0 {
		alerts = append(alerts, models.EmergencyAlert{
			ID:             alertID(patientID, "missed-checkins"),
			Severity:       models.AlertSeverityWarning,
			Type:           models.AlertTypeMissedCheckIns,
			Message:        fmt.Sprintf("No check-in recorded for %d days", days),
			Timestamp:      now,
			ActionRequired: false,
			SuggestedActions: []string{
				"Send a check-in reminder",
				"Schedule an outreach call",
			},
		})
	}

	if assessment != nil && assessment.RiskLevel == models.RiskLevelCritical && cfg.Alerts.EnablePredictive {
		alerts = append(alerts, models.EmergencyAlert{
			ID:             alertID(patientID, "risk-escalation"),
			Severity:       models.AlertSeverityUrgent,
			Type:           models.AlertTypeRiskEscalation,
			Message:        fmt.Sprintf("Composite risk score escalated to %d (CRITICAL)", assessment.RiskScore),
			Timestamp:      now,
			ActionRequired: true,
			SuggestedActions: []string{
				"Review the full risk assessment",
				"Prioritize this patient in today's rounds",
			},
		})
	}

	return alerts
}

func alertID(patientID, trigger string) string {
	return fmt.Sprintf("alert-%s-%s", patientID, trigger)
}
