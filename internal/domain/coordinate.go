package domain

import (
	"errors"
	"fmt"
	"math"

	"github.com/paulmach/orb"
)

var ErrInvalidCoordinate = errors.New("coordinate out of range")

// Coordinate - точка WGS84 в градусах
type Coordinate struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// NewCoordinate создает координату с проверкой диапазонов
func NewCoordinate(lat, lng float64) (Coordinate, error) {
	c := Coordinate{Latitude: lat, Longitude: lng}
	if err := c.Validate(); err != nil {
		return Coordinate{}, err
	}
	return c, nil
}

func (c Coordinate) Validate() error {
	if math.IsNaN(c.Latitude) || c.Latitude < -90 || c.Latitude > 90 {
		return fmt.Errorf("%w: latitude %v", ErrInvalidCoordinate, c.Latitude)
	}
	if math.IsNaN(c.Longitude) || c.Longitude < -180 || c.Longitude > 180 {
		return fmt.Errorf("%w: longitude %v", ErrInvalidCoordinate, c.Longitude)
	}
	return nil
}

// Point переводит координату в orb.Point (порядок lon, lat)
func (c Coordinate) Point() orb.Point {
	return orb.Point{c.Longitude, c.Latitude}
}

func CoordinateFromPoint(p orb.Point) Coordinate {
	return Coordinate{Latitude: p.Lat(), Longitude: p.Lon()}
}
