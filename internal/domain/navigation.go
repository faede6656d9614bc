package domain

import (
	"time"

	"github.com/google/uuid"
)

// Target - цель навигации
type Target struct {
	Name       string     `json:"name"`
	Coordinate Coordinate `json:"coordinate"`
}

// NavigationSession - активная навигация одного устройства.
// Расстояния хранятся в километрах.
type NavigationSession struct {
	ID                      uuid.UUID  `json:"id"`
	DeviceID                string     `json:"device_id"`
	Target                  Target     `json:"target"`
	StartLocation           Coordinate `json:"start_location"`
	LastLocation            Coordinate `json:"last_location"`
	LastDistanceKm          float64    `json:"last_distance_km"`
	LastAnnouncementTime    time.Time  `json:"last_announcement_time"`
	LastUpdateTime          time.Time  `json:"last_update_time"`
	StartTime               time.Time  `json:"start_time"`
	IsActive                bool       `json:"is_active"`
	HasArrived              bool       `json:"has_arrived"`
	TotalDistanceTraveledKm float64    `json:"total_distance_traveled_km"`
}

// NavigationStatus - результат обработки обновления позиции
type NavigationStatus string

const (
	NavigationStatusNavigating NavigationStatus = "navigating"
	NavigationStatusArrived    NavigationStatus = "arrived"
)

// NavigationUpdate - ответ трекера на новую позицию, расстояния в метрах
type NavigationUpdate struct {
	Status                      NavigationStatus  `json:"status"`
	CurrentDistanceMeters       float64           `json:"current_distance_meters"`
	DistanceChangeMeters        float64           `json:"distance_change_meters"`
	TotalDistanceTraveledMeters float64           `json:"total_distance_traveled_meters"`
	Announced                   bool              `json:"announced"`
	Session                     NavigationSession `json:"session"`
}

// NavigationThresholds - пороги трекера
type NavigationThresholds struct {
	DistanceChangeMeters float64       `json:"distance_change_meters"`
	AnnounceInterval     time.Duration `json:"announce_interval"`
	ArrivalMeters        float64       `json:"arrival_meters"`
}

type NavigationSummary struct {
	DeviceID              string    `json:"device_id"`
	Target                string    `json:"target"`
	CurrentDistanceMeters float64   `json:"current_distance_meters"`
	IsActive              bool      `json:"is_active"`
	StartTime             time.Time `json:"start_time"`
}

// TrackerStatus - состояние трекера для мониторинга
type TrackerStatus struct {
	ActiveCount int                  `json:"active_count"`
	Thresholds  NavigationThresholds `json:"thresholds"`
	Navigations []NavigationSummary  `json:"navigations"`
}

// Stop reasons
const (
	StopReasonManual  = "manual"
	StopReasonTimeout = "timeout"
)
