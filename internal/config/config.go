package config

import (
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Config holds all configuration for VitalScope.
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Analytics AnalyticsConfig `yaml:"analytics"`
}

// ServerConfig holds server configuration.
type ServerConfig struct {
	Port        int    `yaml:"port"`
	Environment string `yaml:"environment"`
}

// AnalyticsConfig holds every tier boundary the scorers and the alert
// detector read. Scorers read the live config on each invocation, so an
// update takes effect on the next assessment.
type AnalyticsConfig struct {
	BloodPressure BloodPressureThresholds `yaml:"bloodPressure" json:"bloodPressure"`
	HeartRate     HeartRateThresholds     `yaml:"heartRate" json:"heartRate"`
	Glucose       GlucoseThresholds       `yaml:"glucose" json:"glucose"`
	Oxygen        OxygenThresholds        `yaml:"oxygen" json:"oxygen"`
	Adherence     AdherenceThresholds     `yaml:"adherence" json:"adherence"`
	Alerts        AlertBehavior           `yaml:"alerts" json:"alerts"`
}

// BloodPressureThresholds carries the staged blood pressure tier boundaries.
type BloodPressureThresholds struct {
	Stage1Systolic    float64 `yaml:"stage1Systolic" json:"stage1Systolic"`
	Stage1Diastolic   float64 `yaml:"stage1Diastolic" json:"stage1Diastolic"`
	Stage2Systolic    float64 `yaml:"stage2Systolic" json:"stage2Systolic"`
	Stage2Diastolic   float64 `yaml:"stage2Diastolic" json:"stage2Diastolic"`
	CriticalSystolic  float64 `yaml:"criticalSystolic" json:"criticalSystolic"`
	CriticalDiastolic float64 `yaml:"criticalDiastolic" json:"criticalDiastolic"`
}

// HeartRateThresholds carries heart rate tier boundaries in both directions.
type HeartRateThresholds struct {
	Low          float64 `yaml:"low" json:"low"`
	High         float64 `yaml:"high" json:"high"`
	CriticalLow  float64 `yaml:"criticalLow" json:"criticalLow"`
	CriticalHigh float64 `yaml:"criticalHigh" json:"criticalHigh"`
}

// GlucoseThresholds carries glucose tier boundaries in mg/dL.
type GlucoseThresholds struct {
	Elevated     float64 `yaml:"elevated" json:"elevated"`
	High         float64 `yaml:"high" json:"high"`
	Low          float64 `yaml:"low" json:"low"`
	CriticalHigh float64 `yaml:"criticalHigh" json:"criticalHigh"`
	CriticalLow  float64 `yaml:"criticalLow" json:"criticalLow"`
}

// OxygenThresholds carries oxygen saturation tier boundaries in percent.
type OxygenThresholds struct {
	Borderline float64 `yaml:"borderline" json:"borderline"`
	Low        float64 `yaml:"low" json:"low"`
	Critical   float64 `yaml:"critical" json:"critical"`
}

// AdherenceThresholds carries check-in adherence boundaries.
// MissedCheckInDays drives the missed-check-in alert (strictly greater
// than); StaleCheckInDays drives the risk contribution for long gaps.
type AdherenceThresholds struct {
	MissedCheckInDays   int     `yaml:"missedCheckInDays" json:"missedCheckInDays"`
	StaleCheckInDays    int     `yaml:"staleCheckInDays" json:"staleCheckInDays"`
	VeryLowAdherencePct float64 `yaml:"veryLowAdherencePct" json:"veryLowAdherencePct"`
	LowAdherencePct     float64 `yaml:"lowAdherencePct" json:"lowAdherencePct"`
}

// AlertBehavior controls alert generation.
type AlertBehavior struct {
	EnablePredictive      bool `yaml:"enablePredictive" json:"enablePredictive"`
	CooldownHours         int  `yaml:"cooldownHours" json:"cooldownHours"`
	EmergencyContactHours int  `yaml:"emergencyContactHours" json:"emergencyContactHours"`
}

// DefaultAnalytics returns the fixed default thresholds the engine is
// constructed with.
func DefaultAnalytics() AnalyticsConfig {
	return AnalyticsConfig{
		BloodPressure: BloodPressureThresholds{
			Stage1Systolic:    130,
			Stage1Diastolic:   80,
			Stage2Systolic:    140,
			Stage2Diastolic:   90,
			CriticalSystolic:  180,
			CriticalDiastolic: 120,
		},
		HeartRate: HeartRateThresholds{
			Low:          60,
			High:         100,
			CriticalLow:  50,
			CriticalHigh: 120,
		},
		Glucose: GlucoseThresholds{
			Elevated:     180,
			High:         250,
			Low:          70,
			CriticalHigh: 400,
			CriticalLow:  50,
		},
		Oxygen: OxygenThresholds{
			Borderline: 95,
			Low:        92,
			Critical:   88,
		},
		Adherence: AdherenceThresholds{
			MissedCheckInDays:   3,
			StaleCheckInDays:    7,
			VeryLowAdherencePct: 30,
			LowAdherencePct:     60,
		},
		Alerts: AlertBehavior{
			EnablePredictive:      true,
			CooldownHours:         4,
			EmergencyContactHours: 24,
		},
	}
}

// Load loads configuration from a YAML file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	// Expand environment variables
	expanded := os.ExpandEnv(string(data))

	cfg := &Config{Analytics: DefaultAnalytics()}
	if err := yaml.Unmarshal([]byte(expanded), cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// LoadFromEnv loads configuration from environment variables with defaults.
func LoadFromEnv() *Config {
	return &Config{
		Server: ServerConfig{
			Port:        getEnvInt("PORT", 3007),
			Environment: getEnv("ENVIRONMENT", "development"),
		},
		Analytics: DefaultAnalytics(),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return defaultValue
}
