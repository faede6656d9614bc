package domain

import (
	"time"

	"github.com/google/uuid"
)

// GPSSource - источник координат
type GPSSource string

const (
	GPSSourceBLE        GPSSource = "ble"
	GPSSourceDevice     GPSSource = "device"
	GPSSourceManual     GPSSource = "manual"
	GPSSourceSimulation GPSSource = "simulation"
	GPSSourceDefault    GPSSource = "default"
)

// GPSFix - сохраненная позиция устройства
type GPSFix struct {
	ID         uuid.UUID `json:"id" db:"id"`
	DeviceID   string    `json:"device_id" db:"device_id"`
	Latitude   float64   `json:"latitude" db:"latitude"`
	Longitude  float64   `json:"longitude" db:"longitude"`
	Altitude   *float64  `json:"altitude,omitempty" db:"altitude"`
	Accuracy   *float64  `json:"accuracy,omitempty" db:"accuracy"`
	Source     GPSSource `json:"source" db:"source"`
	RecordedAt time.Time `json:"recorded_at" db:"recorded_at"`
}

func (f GPSFix) Coordinate() Coordinate {
	return Coordinate{Latitude: f.Latitude, Longitude: f.Longitude}
}
