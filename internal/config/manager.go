package config

import (
	"sync"
)

// Manager guards the live analytics thresholds. Reads return a copy so an
// in-flight assessment sees a consistent snapshot; updates are a plain
// section-level merge with no validation beyond shape.
type Manager struct {
	mu  sync.RWMutex
	cfg AnalyticsConfig
}

// AnalyticsPatch is a partial update: non-nil sections replace the current
// section wholesale.
type AnalyticsPatch struct {
	BloodPressure *BloodPressureThresholds `json:"bloodPressure,omitempty"`
	HeartRate     *HeartRateThresholds     `json:"heartRate,omitempty"`
	Glucose       *GlucoseThresholds       `json:"glucose,omitempty"`
	Oxygen        *OxygenThresholds        `json:"oxygen,omitempty"`
	Adherence     *AdherenceThresholds     `json:"adherence,omitempty"`
	Alerts        *AlertBehavior           `json:"alerts,omitempty"`
}

// NewManager creates a manager seeded with the given thresholds.
func NewManager(cfg AnalyticsConfig) *Manager {
	return &Manager{cfg: cfg}
}

// Get returns a snapshot of the current thresholds.
func (m *Manager) Get() AnalyticsConfig {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.cfg
}

// Replace swaps the thresholds wholesale.
func (m *Manager) Replace(cfg AnalyticsConfig) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.cfg = cfg
}

// Update merges a partial patch into the current thresholds.
func (m *Manager) Update(patch AnalyticsPatch) AnalyticsConfig {
	m.mu.Lock()
	defer m.mu.Unlock()

	if patch.BloodPressure != nil {
		m.cfg.BloodPressure = *patch.BloodPressure
	}
	if patch.HeartRate != nil {
		m.cfg.HeartRate = *patch.HeartRate
	}
	if patch.Glucose != nil {
		m.cfg.Glucose = *patch.Glucose
	}
	if patch.Oxygen != nil {
		m.cfg.Oxygen = *patch.Oxygen
	}
	if patch.Adherence != nil {
		m.cfg.Adherence = *patch.Adherence
	}
	if patch.Alerts != nil {
		m.cfg.Alerts = *patch.Alerts
	}

	return m.cfg
}
