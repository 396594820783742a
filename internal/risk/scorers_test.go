package risk

import (
	"testing"

	"github.com/savegress/vitalscope/internal/config"
)

func fp(v float64) *float64 {
	return &v
}

func TestScoreBloodPressure_Crisis(t *testing.T) {
	cfg := config.DefaultAnalytics().BloodPressure

	c := ScoreBloodPressure(cfg, fp(185), fp(125))

	if c.Score != 30 {
		t.Errorf("expected score 30, got %d", c.Score)
	}
	if len(c.Factors) != 1 || c.Factors[0] != "Hypertensive crisis" {
		t.Errorf("expected factor 'Hypertensive crisis', got %v", c.Factors)
	}
	if len(c.Recommendations) != 1 {
		t.Errorf("expected one recommendation, got %v", c.Recommendations)
	}
}

func TestScoreBloodPressure_CrisisOnSingleBound(t *testing.T) {
	cfg := config.DefaultAnalytics().BloodPressure

	// Either bound at its critical value is enough.
	if c := ScoreBloodPressure(cfg, fp(180), fp(70)); c.Score != 30 {
		t.Errorf("systolic 180 expected score 30, got %d", c.Score)
	}
	if c := ScoreBloodPressure(cfg, fp(110), fp(120)); c.Score != 30 {
		t.Errorf("diastolic 120 expected score 30, got %d", c.Score)
	}
}

func TestScoreBloodPressure_Stage2(t *testing.T) {
	cfg := config.DefaultAnalytics().BloodPressure

	c := ScoreBloodPressure(cfg, fp(145), fp(85))

	if c.Score != 20 {
		t.Errorf("expected score 20, got %d", c.Score)
	}
	if c.Factors[0] != "Stage 2 hypertension" {
		t.Errorf("expected stage 2 factor, got %v", c.Factors)
	}
}

func TestScoreBloodPressure_Stage1(t *testing.T) {
	cfg := config.DefaultAnalytics().BloodPressure

	c := ScoreBloodPressure(cfg, fp(132), fp(75))

	if c.Score != 10 {
		t.Errorf("expected score 10, got %d", c.Score)
	}
}

func TestScoreBloodPressure_OnlyMostSevereTierApplies(t *testing.T) {
	cfg := config.DefaultAnalytics().BloodPressure

	// 185/125 satisfies every tier but only the crisis tier counts.
	c := ScoreBloodPressure(cfg, fp(185), fp(125))

	if c.Score != 30 {
		t.Errorf("expected score 30, got %d", c.Score)
	}
	if len(c.Factors) != 1 {
		t.Errorf("expected exactly one factor, got %v", c.Factors)
	}
}

func TestScoreBloodPressure_Normal(t *testing.T) {
	cfg := config.DefaultAnalytics().BloodPressure

	c := ScoreBloodPressure(cfg, fp(118), fp(76))

	if c.Score != 0 || len(c.Factors) != 0 {
		t.Errorf("expected zero contribution, got %+v", c)
	}
}

func TestScoreBloodPressure_MissingValues(t *testing.T) {
	cfg := config.DefaultAnalytics().BloodPressure

	if c := ScoreBloodPressure(cfg, nil, nil); c.Score != 0 {
		t.Errorf("expected zero contribution for missing pair, got %+v", c)
	}
	if c := ScoreBloodPressure(cfg, fp(185), nil); c.Score != 0 {
		t.Errorf("expected zero contribution for incomplete pair, got %+v", c)
	}
}

func TestScoreHeartRate_Tiers(t *testing.T) {
	cfg := config.DefaultAnalytics().HeartRate

	tests := []struct {
		name   string
		hr     float64
		score  int
		factor string
	}{
		{"severe tachycardia", 130, 25, "Severe tachycardia"},
		{"severe bradycardia", 45, 25, "Severe bradycardia"},
		{"mild tachycardia", 105, 10, "Mild tachycardia"},
		{"mild bradycardia", 55, 10, "Mild bradycardia"},
		{"normal", 72, 0, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := ScoreHeartRate(cfg, fp(tt.hr))
			if c.Score != tt.score {
				t.Errorf("hr %.0f: expected score %d, got %d", tt.hr, tt.score, c.Score)
			}
			if tt.factor != "" && (len(c.Factors) == 0 || c.Factors[0] != tt.factor) {
				t.Errorf("hr %.0f: expected factor %q, got %v", tt.hr, tt.factor, c.Factors)
			}
		})
	}
}

func TestScoreHeartRate_Missing(t *testing.T) {
	cfg := config.DefaultAnalytics().HeartRate
	if c := ScoreHeartRate(cfg, nil); c.Score != 0 {
		t.Errorf("expected zero contribution, got %+v", c)
	}
}

func TestScoreGlucose_Tiers(t *testing.T) {
	cfg := config.DefaultAnalytics().Glucose

	tests := []struct {
		name   string
		g      float64
		score  int
		factor string
	}{
		{"severe high", 420, 30, "Severe hyperglycemia"},
		{"severe low", 45, 30, "Severe hypoglycemia"},
		{"high", 260, 15, "Hyperglycemia"},
		{"low", 65, 15, "Hypoglycemia"},
		{"elevated", 190, 8, "Elevated blood glucose"},
		{"normal", 110, 0, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := ScoreGlucose(cfg, fp(tt.g))
			if c.Score != tt.score {
				t.Errorf("glucose %.0f: expected score %d, got %d", tt.g, tt.score, c.Score)
			}
			if tt.factor != "" && (len(c.Factors) == 0 || c.Factors[0] != tt.factor) {
				t.Errorf("glucose %.0f: expected factor %q, got %v", tt.g, tt.factor, c.Factors)
			}
		})
	}
}

func TestScoreOxygen_Tiers(t *testing.T) {
	cfg := config.DefaultAnalytics().Oxygen

	tests := []struct {
		name  string
		o     float64
		score int
	}{
		{"critical", 85, 30},
		{"low", 90, 15},
		{"borderline", 94, 8},
		{"normal", 97, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := ScoreOxygen(cfg, fp(tt.o))
			if c.Score != tt.score {
				t.Errorf("oxygen %.0f: expected score %d, got %d", tt.o, tt.score, c.Score)
			}
		})
	}
}
