package risk

import (
	"testing"
	"time"

	"github.com/savegress/vitalscope/internal/config"
	"github.com/savegress/vitalscope/pkg/models"
)

var adherenceNow = time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)

func checkInsDaysAgo(days ...int) []models.CheckIn {
	out := make([]models.CheckIn, 0, len(days))
	for _, d := range days {
		out = append(out, models.CheckIn{RecordedAt: adherenceNow.AddDate(0, 0, -d)})
	}
	return out
}

func TestScoreAdherence_NoHistory(t *testing.T) {
	cfg := config.DefaultAnalytics().Adherence

	c := ScoreAdherence(cfg, nil, adherenceNow)

	if c.Score != 20 {
		t.Errorf("expected score 20, got %d", c.Score)
	}
	if len(c.Factors) != 1 || c.Factors[0] != "No check-in history" {
		t.Errorf("expected no-history factor, got %v", c.Factors)
	}
}

func TestScoreAdherence_VeryLowRate(t *testing.T) {
	cfg := config.DefaultAnalytics().Adherence

	// 3 check-ins in 30 days is 10%, below the 30% floor; the most recent
	// one is today so no gap penalty applies.
	c := ScoreAdherence(cfg, checkInsDaysAgo(0, 10, 20), adherenceNow)

	if c.Score != 15 {
		t.Errorf("expected score 15, got %d", c.Score)
	}
}

func TestScoreAdherence_LowRate(t *testing.T) {
	cfg := config.DefaultAnalytics().Adherence

	// 10 check-ins in 30 days is 33%, between 30% and 60%.
	days := []int{0, 1, 2, 3, 4, 5, 6, 7, 8, 9}
	c := ScoreAdherence(cfg, checkInsDaysAgo(days...), adherenceNow)

	if c.Score != 8 {
		t.Errorf("expected score 8, got %d", c.Score)
	}
}

func TestScoreAdherence_GapIsAdditive(t *testing.T) {
	cfg := config.DefaultAnalytics().Adherence

	// 2 check-ins is 6.7% (+15) and the latest was 12 days ago (+10).
	c := ScoreAdherence(cfg, checkInsDaysAgo(12, 20), adherenceNow)

	if c.Score != 25 {
		t.Errorf("expected additive score 25, got %d", c.Score)
	}

	found := false
	for _, f := range c.Factors {
		if f == "No check-in for 12 days" {
			found = true
		}
	}
	if !found {
		t.Errorf("expected gap factor naming 12 days, got %v", c.Factors)
	}
}

func TestAdherenceScore_NoHistoryIsZero(t *testing.T) {
	cfg := config.DefaultAnalytics().Adherence
	if s := AdherenceScore(cfg, nil, adherenceNow); s != 0 {
		t.Errorf("expected 0, got %d", s)
	}
}

func TestAdherenceScore_DailyCheckInsCapAt100(t *testing.T) {
	cfg := config.DefaultAnalytics().Adherence

	checkIns := make([]models.CheckIn, 0, 30)
	for d := 0; d < 30; d++ {
		checkIns = append(checkIns, models.CheckIn{RecordedAt: adherenceNow.AddDate(0, 0, -d)})
	}

	if s := AdherenceScore(cfg, checkIns, adherenceNow); s != 100 {
		t.Errorf("expected 100, got %d", s)
	}
}

func TestAdherenceScore_GapPenalty(t *testing.T) {
	cfg := config.DefaultAnalytics().Adherence

	// 15 of the last 30 days have a check-in (50%), but the most recent
	// was 10 days ago, so the stale penalty applies.
	days := make([]int, 0, 15)
	for d := 10; d < 25; d++ {
		days = append(days, d)
	}
	s := AdherenceScore(cfg, checkInsDaysAgo(days...), adherenceNow)

	if s != 30 {
		t.Errorf("expected 50-20=30, got %d", s)
	}
}

func TestDaysSinceLastCheckIn(t *testing.T) {
	if d := DaysSinceLastCheckIn(nil, adherenceNow); d != -1 {
		t.Errorf("expected -1 for no history, got %d", d)
	}
	if d := DaysSinceLastCheckIn(checkInsDaysAgo(5, 9), adherenceNow); d != 5 {
		t.Errorf("expected 5, got %d", d)
	}
}

func TestLastCheckIn_PicksMostRecent(t *testing.T) {
	checkIns := checkInsDaysAgo(9, 2, 5)

	last := LastCheckIn(checkIns)
	if last == nil {
		t.Fatal("expected a check-in time")
	}
	if !last.Equal(adherenceNow.AddDate(0, 0, -2)) {
		t.Errorf("expected the 2-day-old check-in, got %v", last)
	}
}
