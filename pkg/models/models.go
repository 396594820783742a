package models

import (
	"time"
)

// RiskLevel buckets a risk score into an ordinal severity tier.
type RiskLevel string

const (
	RiskLevelLow      RiskLevel = "LOW"
	RiskLevelModerate RiskLevel = "MODERATE"
	RiskLevelHigh     RiskLevel = "HIGH"
	RiskLevelCritical RiskLevel = "CRITICAL"
)

// TrendDirection classifies recent vital-sign movement relative to normal ranges.
type TrendDirection string

const (
	TrendImproving TrendDirection = "IMPROVING"
	TrendStable    TrendDirection = "STABLE"
	TrendDeclining TrendDirection = "DECLINING"
)

// Trend classifies the direction of change between two readings.
type Trend string

const (
	TrendRising  Trend = "RISING"
	TrendFalling Trend = "FALLING"
	TrendSteady  Trend = "STABLE"
)

// AlertSeverity defines emergency alert severity.
type AlertSeverity string

const (
	AlertSeverityWarning  AlertSeverity = "WARNING"
	AlertSeverityUrgent   AlertSeverity = "URGENT"
	AlertSeverityCritical AlertSeverity = "CRITICAL"
)

// AlertType defines the kind of emergency alert.
type AlertType string

const (
	AlertTypeVitalAnomaly     AlertType = "VITAL_ANOMALY"
	AlertTypeMissedCheckIns   AlertType = "MISSED_CHECKINS"
	AlertTypeRiskEscalation   AlertType = "RISK_ESCALATION"
	AlertTypeEmergencyContact AlertType = "EMERGENCY_CONTACT"
)

// RecommendationCategory defines care recommendation categories.
type RecommendationCategory string

const (
	CategoryMedication   RecommendationCategory = "MEDICATION"
	CategoryLifestyle    RecommendationCategory = "LIFESTYLE"
	CategoryMonitoring   RecommendationCategory = "MONITORING"
	CategoryFollowUp     RecommendationCategory = "FOLLOW_UP"
	CategoryIntervention RecommendationCategory = "INTERVENTION"
)

// RecommendationPriority defines care recommendation urgency.
type RecommendationPriority string

const (
	PriorityLow    RecommendationPriority = "LOW"
	PriorityMedium RecommendationPriority = "MEDIUM"
	PriorityHigh   RecommendationPriority = "HIGH"
	PriorityUrgent RecommendationPriority = "URGENT"
)

// ConfidenceLevel qualifies a predicted outcome.
type ConfidenceLevel string

const (
	ConfidenceLow    ConfidenceLevel = "LOW"
	ConfidenceMedium ConfidenceLevel = "MEDIUM"
	ConfidenceHigh   ConfidenceLevel = "HIGH"
)

// RawVitalReading is the boundary record as supplied by the data-fetch
// collaborator. Source tables disagree on field names: glucose arrives under
// glucoseLevel or bloodSugar, oxygen saturation under oxygenSaturation, spo2
// or oxygenLevel. Any missing field means "not measured", never zero.
type RawVitalReading struct {
	RecordedAt          string   `json:"recordedAt"`
	Systolic            *float64 `json:"systolic,omitempty"`
	Diastolic           *float64 `json:"diastolic,omitempty"`
	HeartRate           *float64 `json:"heartRate,omitempty"`
	GlucoseLevel        *float64 `json:"glucoseLevel,omitempty"`
	BloodSugar          *float64 `json:"bloodSugar,omitempty"`
	OxygenSaturation    *float64 `json:"oxygenSaturation,omitempty"`
	SpO2                *float64 `json:"spo2,omitempty"`
	OxygenLevel         *float64 `json:"oxygenLevel,omitempty"`
	Weight              *float64 `json:"weight,omitempty"`
	Mood                string   `json:"mood,omitempty"`
	PhysicalActivity    string   `json:"physicalActivity,omitempty"`
	SocialEngagement    string   `json:"socialEngagement,omitempty"`
	Symptoms            string   `json:"symptoms,omitempty"`
	ActivityDescription string   `json:"activityDescription,omitempty"`
	IsEmergency         bool     `json:"isEmergency,omitempty"`
}

// VitalReading is the normalized internal record. Glucose and oxygen aliases
// are already resolved; timestamps are parsed. Internal logic never re-checks
// source field names.
type VitalReading struct {
	RecordedAt          time.Time `json:"recordedAt"`
	Systolic            *float64  `json:"systolic,omitempty"`
	Diastolic           *float64  `json:"diastolic,omitempty"`
	HeartRate           *float64  `json:"heartRate,omitempty"`
	Glucose             *float64  `json:"glucose,omitempty"`
	Oxygen              *float64  `json:"oxygen,omitempty"`
	Weight              *float64  `json:"weight,omitempty"`
	Mood                string    `json:"mood,omitempty"`
	PhysicalActivity    string    `json:"physicalActivity,omitempty"`
	SocialEngagement    string    `json:"socialEngagement,omitempty"`
	Symptoms            string    `json:"symptoms,omitempty"`
	ActivityDescription string    `json:"activityDescription,omitempty"`
	IsEmergency         bool      `json:"isEmergency,omitempty"`
}

// RawCheckIn is a boundary check-in record; its presence alone counts
// toward adherence.
type RawCheckIn struct {
	RecordedAt string `json:"recordedAt"`
	Note       string `json:"note,omitempty"`
}

// CheckIn is the normalized check-in record.
type CheckIn struct {
	RecordedAt time.Time `json:"recordedAt"`
	Note       string    `json:"note,omitempty"`
}

// PatientProfile carries the identifying fields the engine echoes back.
type PatientProfile struct {
	PatientID   string `json:"patientId"`
	PatientName string `json:"patientName,omitempty"`
}

// RawPatientBundle is the per-patient input supplied by the database-query
// collaborator: vitals and check-ins ordered most-recent-first.
type RawPatientBundle struct {
	Profile  PatientProfile    `json:"profile"`
	Vitals   []RawVitalReading `json:"vitals"`
	CheckIns []RawCheckIn      `json:"checkIns"`
}

// PatientBundle is the normalized per-patient input.
type PatientBundle struct {
	Profile  PatientProfile `json:"profile"`
	Vitals   []VitalReading `json:"vitals"`
	CheckIns []CheckIn      `json:"checkIns"`
}

// RiskAssessment is the composed per-patient risk result.
type RiskAssessment struct {
	RiskLevel       RiskLevel      `json:"riskLevel"`
	RiskScore       int            `json:"riskScore"`
	RiskFactors     []string       `json:"riskFactors"`
	Recommendations []string       `json:"recommendations"`
	Priority        int            `json:"priority"`
	LastAssessed    time.Time      `json:"lastAssessed"`
	TrendDirection  TrendDirection `json:"trendDirection"`
}

// NormalRange is a fixed per-metric reference interval.
type NormalRange struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// VitalsTrend describes per-metric movement between the two most recent readings.
type VitalsTrend struct {
	Metric         string      `json:"metric"`
	Current        float64     `json:"current"`
	Previous       float64     `json:"previous"`
	Trend          Trend       `json:"trend"`
	ChangePercent  float64     `json:"changePercent"`
	IsAbnormal     bool        `json:"isAbnormal"`
	NormalRange    NormalRange `json:"normalRange"`
	Recommendation string      `json:"recommendation,omitempty"`
}

// EmergencyAlert is a typed alert with suggested actions. IDs are derived
// from patient and trigger so identical input yields identical output.
type EmergencyAlert struct {
	ID               string        `json:"id"`
	Severity         AlertSeverity `json:"severity"`
	Type             AlertType     `json:"type"`
	Message          string        `json:"message"`
	Timestamp        time.Time     `json:"timestamp"`
	ActionRequired   bool          `json:"actionRequired"`
	SuggestedActions []string      `json:"suggestedActions"`
}

// PredictedOutcome is a deterministic heuristic estimate, not a trained model.
type PredictedOutcome struct {
	Condition       string          `json:"condition"`
	Probability     int             `json:"probability"`
	Timeframe       string          `json:"timeframe"`
	ConfidenceLevel ConfidenceLevel `json:"confidenceLevel"`
	BasedOn         []string        `json:"basedOn"`
}

// CareRecommendation is a categorized, priority-ranked care action.
type CareRecommendation struct {
	Category        RecommendationCategory `json:"category"`
	Priority        RecommendationPriority `json:"priority"`
	Recommendation  string                 `json:"recommendation"`
	Reasoning       string                 `json:"reasoning"`
	EstimatedImpact string                 `json:"estimatedImpact"`
	Timeline        string                 `json:"timeline"`
}

// MetricAggregate is a mean/min/max/count rollup for one numeric vital.
type MetricAggregate struct {
	Avg   float64 `json:"avg"`
	Min   float64 `json:"min"`
	Max   float64 `json:"max"`
	Count int     `json:"count"`
}

// BloodPressureAggregate averages paired systolic/diastolic readings.
type BloodPressureAggregate struct {
	Systolic  float64 `json:"systolic"`
	Diastolic float64 `json:"diastolic"`
	Count     int     `json:"count"`
}

// WeightAggregate averages weight to one decimal.
type WeightAggregate struct {
	Avg   float64 `json:"avg"`
	Count int     `json:"count"`
}

// MoodAggregate carries the predominant mood plus the raw entries.
type MoodAggregate struct {
	Predominant string   `json:"predominant"`
	Entries     []string `json:"entries"`
}

// AggregateValues is the shared shape for daily, weekly and overall rollups.
type AggregateValues struct {
	BloodPressure    *BloodPressureAggregate `json:"bloodPressure,omitempty"`
	HeartRate        *MetricAggregate        `json:"heartRate,omitempty"`
	Glucose          *MetricAggregate        `json:"glucose,omitempty"`
	Oxygen           *MetricAggregate        `json:"oxygen,omitempty"`
	Weight           *WeightAggregate        `json:"weight,omitempty"`
	Mood             *MoodAggregate          `json:"mood,omitempty"`
	PhysicalActivity []string                `json:"physicalActivity,omitempty"`
	SocialEngagement []string                `json:"socialEngagement,omitempty"`
	Symptoms         []string                `json:"symptoms,omitempty"`
}

// DailyAggregate is a per-calendar-day rollup of all signals.
type DailyAggregate struct {
	Date     string          `json:"date"`
	Readings int             `json:"readings"`
	Values   AggregateValues `json:"values"`
}

// WeeklyAggregate is a window of up to seven days-with-data.
type WeeklyAggregate struct {
	StartDate     string           `json:"startDate"`
	EndDate       string           `json:"endDate"`
	DaysWithData  int              `json:"daysWithData"`
	TotalReadings int              `json:"totalReadings"`
	Values        AggregateValues  `json:"values"`
	Trends        map[string]Trend `json:"trends"`
}

// OverallStatistics aggregates the full reading history.
type OverallStatistics struct {
	Values         AggregateValues `json:"values"`
	ComplianceRate int             `json:"complianceRate"`
	FirstReading   string          `json:"firstReading,omitempty"`
	LastReading    string          `json:"lastReading,omitempty"`
}

// HealthStatistics is the statistical rollup output.
type HealthStatistics struct {
	DailyLogs      []DailyAggregate  `json:"dailyLogs"`
	WeeklyAverages []WeeklyAggregate `json:"weeklyAverages"`
	OverallStats   OverallStatistics `json:"overallStats"`
	LastUpdated    time.Time         `json:"lastUpdated"`
	DataPoints     int               `json:"dataPoints"`
}

// PatientInsight is the full per-patient analytics result.
type PatientInsight struct {
	PatientID           string               `json:"patientId"`
	PatientName         string               `json:"patientName,omitempty"`
	OverallHealthScore  int                  `json:"overallHealthScore"`
	RiskAssessment      RiskAssessment       `json:"riskAssessment"`
	VitalsTrends        []VitalsTrend        `json:"vitalsTrends"`
	AdherenceScore      int                  `json:"adherenceScore"`
	LastCheckIn         *time.Time           `json:"lastCheckIn,omitempty"`
	EmergencyAlerts     []EmergencyAlert     `json:"emergencyAlerts"`
	PredictedOutcomes   []PredictedOutcome   `json:"predictedOutcomes"`
	CareRecommendations []CareRecommendation `json:"careRecommendations"`
}

// ConditionPrevalence is a cohort prevalence entry.
type ConditionPrevalence struct {
	Condition  string  `json:"condition"`
	Patients   int     `json:"patients"`
	Prevalence float64 `json:"prevalence"`
}

// PopulationInsights is the cohort-level analytics result.
type PopulationInsights struct {
	TotalPatients      int                   `json:"totalPatients"`
	ActivePatients     int                   `json:"activePatients"`
	HighRiskPatients   int                   `json:"highRiskPatients"`
	AverageHealthScore int                   `json:"averageHealthScore"`
	RiskDistribution   map[RiskLevel]int     `json:"riskDistribution"`
	TrendingConcerns   []string              `json:"trendingConcerns"`
	CommonConditions   []ConditionPrevalence `json:"commonConditions"`
	AdherenceRate      int                   `json:"adherenceRate"`
	Recommendations    []string              `json:"recommendations"`
	Predictions        []string              `json:"predictions"`
	GeneratedAt        time.Time             `json:"generatedAt"`
}
