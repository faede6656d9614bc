package dto

import (
	"time"

	"github.com/safety-navigator/internal/domain"
)

// RecordFixInput - новая позиция устройства
type RecordFixInput struct {
	DeviceID  string
	Latitude  float64
	Longitude float64
	Altitude  *float64
	Accuracy  *float64
	Source    domain.GPSSource
}

type RecordFixResponse struct {
	Fix        *domain.GPSFix           `json:"fix"`
	Navigation *domain.NavigationUpdate `json:"navigation,omitempty"`
}

type GPSHistoryResponse struct {
	DeviceID string           `json:"device_id"`
	Fixes    []*domain.GPSFix `json:"fixes"`
}

type CompassTarget struct {
	Name      string  `json:"name"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

type CompassReading struct {
	Bearing          int     `json:"bearing"`
	Distance         int     `json:"distance"`
	CanComplete      bool    `json:"can_complete"`
	CompletionRadius float64 `json:"completion_radius"`
}

type SafetyNotices struct {
	HasWarnings bool             `json:"has_warnings"`
	Message     string           `json:"message"`
	Warnings    []domain.Warning `json:"warnings,omitempty"`
}

// CompassResponse - направление и расстояние до цели активной навигации
type CompassResponse struct {
	HasTarget       bool                     `json:"has_target"`
	Message         string                   `json:"message,omitempty"`
	CurrentLocation domain.Coordinate        `json:"current_location"`
	Target          *CompassTarget           `json:"target,omitempty"`
	Compass         *CompassReading          `json:"compass,omitempty"`
	Navigation      *domain.NavigationUpdate `json:"navigation,omitempty"`
	Safety          *SafetyNotices           `json:"safety,omitempty"`
	Timestamp       time.Time                `json:"timestamp"`
}
