package risk

import (
	"fmt"
	"math"
	"time"

	"github.com/savegress/vitalscope/internal/config"
	"github.com/savegress/vitalscope/pkg/models"
)

const adherenceWindowDays = 30

// ScoreAdherence computes the check-in-frequency risk contribution.
// Contributions are additive, not mutually exclusive: a patient can be
// penalized for a low 30-day rate and for a long gap at the same time.
func ScoreAdherence(cfg config.AdherenceThresholds, checkIns []models.CheckIn, now time.Time) Contribution {
	var c Contribution

	if len(checkIns) == 0 {
		c.add(20, "No check-in history", "Establish a regular check-in routine")
		return c
	}

	rate := checkInRate(checkIns, now)
	switch {
	case rate < cfg.VeryLowAdherencePct:
		c.add(15, "Very low check-in adherence", "Contact the patient to re-establish daily check-ins")
	case rate < cfg.LowAdherencePct:
		c.add(8, "Low check-in adherence", "Encourage more frequent check-ins")
	}

	if days := daysSinceLastCheckIn(checkIns, now); days > cfg.StaleCheckInDays {
		c.add(10, fmt.Sprintf("No check-in for %d days", days), "Reach out to re-engage the patient")
	}

	return c
}

// AdherenceScore computes the 0-100 adherence score: the 30-day check-in
// rate capped at 100, with a 20-point penalty once the gap since the last
// check-in grows past the stale threshold.
func AdherenceScore(cfg config.AdherenceThresholds, checkIns []models.CheckIn, now time.Time) int {
	if len(checkIns) == 0 {
		return 0
	}

	score := math.Min(100, checkInRate(checkIns, now))
	if daysSinceLastCheckIn(checkIns, now) > cfg.StaleCheckInDays {
		score -= 20
	}
	if score < 0 {
		score = 0
	}
	return int(math.Round(score))
}

// LastCheckIn returns the most recent check-in time, or nil when the
// patient has never checked in.
func LastCheckIn(checkIns []models.CheckIn) *time.Time {
	var latest *time.Time
	for i := range checkIns {
		ts := checkIns[i].RecordedAt
		if latest == nil || ts.After(*latest) {
			t := ts
			latest = &t
		}
	}
	return latest
}

// DaysSinceLastCheckIn returns whole days elapsed since the most recent
// check-in, or -1 when there is none.
func DaysSinceLastCheckIn(checkIns []models.CheckIn, now time.Time) int {
	if len(checkIns) == 0 {
		return -1
	}
	return daysSinceLastCheckIn(checkIns, now)
}

func checkInRate(checkIns []models.CheckIn, now time.Time) float64 {
	cutoff := now.AddDate(0, 0, -adherenceWindowDays)
	count := 0
	for i := range checkIns {
		if !checkIns[i].RecordedAt.Before(cutoff) && !checkIns[i].RecordedAt.After(now) {
			count++
		}
	}
	return float64(count) / adherenceWindowDays * 100
}

func daysSinceLastCheckIn(checkIns []models.CheckIn, now time.Time) int {
	last := LastCheckIn(checkIns)
	if last == nil {
		return -1
	}
	elapsed := now.Sub(*last)
	if elapsed < 0 {
		return 0
	}
	return int(elapsed.Hours() / 24)
}
