package domain

import "time"

// Severity - уровень предупреждения
type Severity string

const (
	SeverityInfo    Severity = "info"
	SeverityCaution Severity = "caution"
	SeverityWarning Severity = "warning"
)

// Warning types
const (
	WarningHighRiskLocation     = "high_risk_location"
	WarningModerateRiskLocation = "moderate_risk_location"
	WarningInfrastructureHazard = "infrastructure_hazard"
	WarningMajorRoadNearby      = "major_road_nearby"
	WarningTimeBasedRisk        = "time_based_risk"
	WarningEmergencyServices    = "emergency_services_nearby"
	WarningAnalysisError        = "analysis_error"

	WarningHighRiskArea   = "high_risk_area"
	WarningIndustrialArea = "industrial_area"
	WarningMajorRoad      = "major_road"
	WarningTimeBased      = "time_based"
	WarningSystem         = "system"
)

// Warning - предупреждение для точки или маршрута.
// Порядок в списке значим: сначала самые серьезные.
type Warning struct {
	Type           string   `json:"type"`
	Severity       Severity `json:"severity"`
	Message        string   `json:"message"`
	Details        string   `json:"details,omitempty"`
	Sections       []string `json:"sections,omitempty"`
	Recommendation string   `json:"recommendation,omitempty"`
}

// TimeRiskAssessment - вклад времени суток в риск
type TimeRiskAssessment struct {
	IsNight        bool     `json:"is_night"`
	IsLateNight    bool     `json:"is_late_night"`
	IsWeekend      bool     `json:"is_weekend"`
	RiskLevel      float64  `json:"risk_level"`
	Factors        []string `json:"factors"`
	Recommendation string   `json:"recommendation,omitempty"`
}

// LocationRiskResult - результат анализа одной точки
type LocationRiskResult struct {
	Section    string             `json:"section"`
	Coordinate Coordinate         `json:"coordinate"`
	RiskScore  float64            `json:"risk_score"`
	TimeRisk   TimeRiskAssessment `json:"time_risk"`
	Features   FeatureBucket      `json:"features"`
	Warnings   []Warning          `json:"warnings"`
	// Degraded - данные о карте недоступны, оценка по умолчанию
	Degraded   bool      `json:"degraded,omitempty"`
	AnalyzedAt time.Time `json:"analyzed_at"`
}

// SafetyLevel - итоговая оценка маршрута
type SafetyLevel string

const (
	SafetyLevelSafe     SafetyLevel = "safe"
	SafetyLevelModerate SafetyLevel = "moderate"
	SafetyLevelElevated SafetyLevel = "elevated"
	SafetyLevelHighRisk SafetyLevel = "high_risk"
)

type RouteOverall struct {
	SafetyLevel   SafetyLevel `json:"safety_level"`
	Color         string      `json:"color"`
	Message       string      `json:"message"`
	AvgRiskScore  float64     `json:"avg_risk_score"`
	MaxRiskScore  float64     `json:"max_risk_score"`
	TotalSections int         `json:"total_sections"`
}

// Recommendation priorities
const (
	PriorityHigh   = "high"
	PriorityMedium = "medium"
	PriorityInfo   = "info"
)

type Recommendation struct {
	Type     string `json:"type"`
	Message  string `json:"message"`
	Priority string `json:"priority"`
}

// RouteRiskResult - результат анализа маршрута по отрезкам
type RouteRiskResult struct {
	Success         bool                 `json:"success"`
	Error           string               `json:"error,omitempty"`
	From            Coordinate           `json:"from"`
	To              Coordinate           `json:"to"`
	Overall         *RouteOverall        `json:"overall,omitempty"`
	Warnings        []Warning            `json:"warnings"`
	Recommendations []Recommendation     `json:"recommendations"`
	Segments        []LocationRiskResult `json:"segments"`
	AnalyzedAt      time.Time            `json:"analyzed_at"`
}
