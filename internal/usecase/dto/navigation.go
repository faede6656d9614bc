package dto

import (
	"time"

	"github.com/safety-navigator/internal/domain"
)

// CoordinateInput - координаты в теле запроса, оба поля обязательны
type CoordinateInput struct {
	Latitude  *float64 `json:"latitude" validate:"required,min=-90,max=90"`
	Longitude *float64 `json:"longitude" validate:"required,min=-180,max=180"`
}

// Coordinate - вызывать после валидации
func (c CoordinateInput) Coordinate() domain.Coordinate {
	var out domain.Coordinate
	if c.Latitude != nil {
		out.Latitude = *c.Latitude
	}
	if c.Longitude != nil {
		out.Longitude = *c.Longitude
	}
	return out
}

type StartNavigationRequest struct {
	DeviceID   string          `json:"device_id" validate:"required,device_id"`
	TargetName string          `json:"target_name" validate:"required,max=200"`
	Target     CoordinateInput `json:"target"`
	Current    CoordinateInput `json:"current"`
}

type UpdateNavigationRequest struct {
	DeviceID string          `json:"device_id" validate:"required,device_id"`
	Current  CoordinateInput `json:"current"`
}

type StopNavigationRequest struct {
	DeviceID string `json:"device_id" validate:"required,device_id"`
	Reason   string `json:"reason,omitempty" validate:"omitempty,max=64"`
}

type StopNavigationResponse struct {
	DeviceID string `json:"device_id"`
	Stopped  bool   `json:"stopped"`
	Reason   string `json:"reason"`
}

// ThresholdsRequest - не заданные поля остаются прежними
type ThresholdsRequest struct {
	DistanceChangeMeters    float64 `json:"distance_change_meters" validate:"min=0"`
	AnnounceIntervalSeconds int     `json:"announce_interval_seconds" validate:"min=0"`
	ArrivalMeters           float64 `json:"arrival_meters" validate:"min=0"`
}

func (r ThresholdsRequest) Thresholds() domain.NavigationThresholds {
	return domain.NavigationThresholds{
		DistanceChangeMeters: r.DistanceChangeMeters,
		AnnounceInterval:     time.Duration(r.AnnounceIntervalSeconds) * time.Second,
		ArrivalMeters:        r.ArrivalMeters,
	}
}

type RecordFixRequest struct {
	DeviceID  string   `json:"device_id" validate:"omitempty,device_id"`
	Latitude  *float64 `json:"latitude" validate:"required,min=-90,max=90"`
	Longitude *float64 `json:"longitude" validate:"required,min=-180,max=180"`
	Altitude  *float64 `json:"altitude,omitempty"`
	Accuracy  *float64 `json:"accuracy,omitempty" validate:"omitempty,min=0"`
	Source    string   `json:"source,omitempty" validate:"omitempty,oneof=ble device manual simulation"`
}

func (r RecordFixRequest) Input() RecordFixInput {
	in := RecordFixInput{
		DeviceID: r.DeviceID,
		Altitude: r.Altitude,
		Accuracy: r.Accuracy,
		Source:   domain.GPSSource(r.Source),
	}
	if r.Latitude != nil {
		in.Latitude = *r.Latitude
	}
	if r.Longitude != nil {
		in.Longitude = *r.Longitude
	}
	return in
}

type CompassRequest struct {
	DeviceID  string   `json:"device_id" validate:"omitempty,device_id"`
	Latitude  *float64 `json:"latitude" validate:"required,min=-90,max=90"`
	Longitude *float64 `json:"longitude" validate:"required,min=-180,max=180"`
}
