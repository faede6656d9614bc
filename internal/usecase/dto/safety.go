package dto

import "github.com/safety-navigator/internal/domain"

// DestinationCheckResponse - можно ли вести пользователя в точку
type DestinationCheckResponse struct {
	IsSafeForSidequest bool             `json:"is_safe_for_sidequest"`
	RequiresWarning    bool             `json:"requires_warning"`
	RiskScore          float64          `json:"risk_score"`
	Warnings           []domain.Warning `json:"warnings"`
	SafetyMessage      string           `json:"safety_message"`
	Recommendation     string           `json:"recommendation"`
	Degraded           bool             `json:"degraded,omitempty"`
}

// EmergencyServicesRequest - поиск экстренных служб
type EmergencyServicesRequest struct {
	Latitude  float64
	Longitude float64
	Radius    float64
	Type      string
}

// EmergencyService - найденная служба
type EmergencyService struct {
	ID        int64   `json:"id"`
	Type      string  `json:"type"`
	Name      string  `json:"name"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Distance  int     `json:"distance"`
	Address   string  `json:"address,omitempty"`
	Phone     string  `json:"phone,omitempty"`
	Website   string  `json:"website,omitempty"`
	Emergency bool    `json:"emergency"`
}

type EmergencyServicesResponse struct {
	Services       []EmergencyService `json:"services"`
	Count          int                `json:"count"`
	SearchRadius   float64            `json:"search_radius"`
	ClosestService *EmergencyService  `json:"closest_service"`
}
