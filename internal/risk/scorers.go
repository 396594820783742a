package risk

import (
	"github.com/savegress/vitalscope/internal/config"
)

// Contribution is the result of a single scorer: a risk score plus the
// human-readable factors and recommendations that explain it. Absent input
// yields the zero Contribution.
type Contribution struct {
	Score           int
	Factors         []string
	Recommendations []string
}

func (c *Contribution) add(score int, factor, recommendation string) {
	c.Score += score
	c.Factors = append(c.Factors, factor)
	c.Recommendations = append(c.Recommendations, recommendation)
}

// ScoreBloodPressure scores a single blood pressure reading. Tiers are
// checked most severe first and only the first matching tier applies.
func ScoreBloodPressure(cfg config.BloodPressureThresholds, systolic, diastolic *float64) Contribution {
	var c Contribution
	if systolic == nil || diastolic == nil {
		return c
	}

	sys, dia := *systolic, *diastolic
	switch {
	case sys >= cfg.CriticalSystolic || dia >= cfg.CriticalDiastolic:
		c.add(30, "Hypertensive crisis", "Seek emergency medical attention immediately")
	case sys >= cfg.Stage2Systolic || dia >= cfg.Stage2Diastolic:
		c.add(20, "Stage 2 hypertension", "Schedule a medication review with your physician")
	case sys >= cfg.Stage1Systolic || dia >= cfg.Stage1Diastolic:
		c.add(10, "Stage 1 hypertension", "Monitor blood pressure daily and reduce sodium intake")
	}
	return c
}

// ScoreHeartRate scores a single heart rate reading.
func ScoreHeartRate(cfg config.HeartRateThresholds, heartRate *float64) Contribution {
	var c Contribution
	if heartRate == nil {
		return c
	}

	hr := *heartRate
	switch {
	case hr > cfg.CriticalHigh:
		c.add(25, "Severe tachycardia", "Seek immediate medical evaluation for heart rhythm")
	case hr < cfg.CriticalLow:
		c.add(25, "Severe bradycardia", "Seek immediate medical evaluation for heart rhythm")
	case hr > cfg.High:
		c.add(10, "Mild tachycardia", "Recheck heart rate after 30 minutes of rest")
	case hr < cfg.Low:
		c.add(10, "Mild bradycardia", "Recheck heart rate after 30 minutes of rest")
	}
	return c
}

// ScoreGlucose scores a single glucose reading (already alias-normalized).
func ScoreGlucose(cfg config.GlucoseThresholds, glucose *float64) Contribution {
	var c Contribution
	if glucose == nil {
		return c
	}

	g := *glucose
	switch {
	case g > cfg.CriticalHigh:
		c.add(30, "Severe hyperglycemia", "Seek emergency care for blood sugar control")
	case g < cfg.CriticalLow:
		c.add(30, "Severe hypoglycemia", "Take fast-acting glucose and seek emergency care")
	case g > cfg.High:
		c.add(15, "Hyperglycemia", "Review insulin or medication dosing with your care team")
	case g < cfg.Low:
		c.add(15, "Hypoglycemia", "Eat a fast-acting carbohydrate and recheck in 15 minutes")
	case g > cfg.Elevated:
		c.add(8, "Elevated blood glucose", "Review diet and monitor glucose more frequently")
	}
	return c
}

// ScoreOxygen scores a single oxygen saturation reading
// (already alias-normalized).
func ScoreOxygen(cfg config.OxygenThresholds, oxygen *float64) Contribution {
	var c Contribution
	if oxygen == nil {
		return c
	}

	o := *oxygen
	switch {
	case o < cfg.Critical:
		c.add(30, "Critical hypoxemia", "Seek emergency care - oxygen saturation critically low")
	case o < cfg.Low:
		c.add(15, "Low oxygen saturation", "Contact your care team today about oxygen levels")
	case o < cfg.Borderline:
		c.add(8, "Borderline oxygen saturation", "Recheck oxygen saturation and monitor for shortness of breath")
	}
	return c
}
