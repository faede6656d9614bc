package geo

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/safety-navigator/internal/domain"
)

var samplePoints = []domain.Coordinate{
	{Latitude: 37.7749, Longitude: -122.4194},
	{Latitude: 37.7849, Longitude: -122.4094},
	{Latitude: 55.7558, Longitude: 37.6173},
	{Latitude: -33.8688, Longitude: 151.2093},
	{Latitude: 0, Longitude: 0},
	{Latitude: 89.9, Longitude: 179.9},
	{Latitude: -89.9, Longitude: -179.9},
}

func TestDistance_Symmetry(t *testing.T) {
	for _, a := range samplePoints {
		for _, b := range samplePoints {
			ab := Distance(a, b)
			ba := Distance(b, a)
			assert.InDelta(t, ab, ba, math.Max(1e-6*ab, 1e-9), "%v <-> %v", a, b)
		}
	}
}

func TestDistance_Identity(t *testing.T) {
	for _, a := range samplePoints {
		assert.Equal(t, 0.0, Distance(a, a))
	}
}

func TestDistance_Known(t *testing.T) {
	from := domain.Coordinate{Latitude: 37.7749, Longitude: -122.4194}
	to := domain.Coordinate{Latitude: 37.7849, Longitude: -122.4094}

	d := Distance(from, to)
	assert.InDelta(t, 1417, d, 5)
	assert.InDelta(t, d/1000, DistanceKm(from, to), 1e-12)

	// один градус долготы на экваторе
	assert.InDelta(t, 111195, Distance(domain.Coordinate{}, domain.Coordinate{Longitude: 1}), 1)
}

func TestBearing_Range(t *testing.T) {
	for _, a := range samplePoints {
		for _, b := range samplePoints {
			if a == b {
				continue
			}
			brg := Bearing(a, b)
			assert.GreaterOrEqual(t, brg, 0.0)
			assert.Less(t, brg, 360.0)
		}
	}
}

func TestBearing_Cardinal(t *testing.T) {
	origin := domain.Coordinate{}

	assert.InDelta(t, 0, Bearing(origin, domain.Coordinate{Latitude: 1}), 1e-9)
	assert.InDelta(t, 90, Bearing(origin, domain.Coordinate{Longitude: 1}), 1e-9)
	assert.InDelta(t, 180, Bearing(origin, domain.Coordinate{Latitude: -1}), 1e-9)
	assert.InDelta(t, 270, Bearing(origin, domain.Coordinate{Longitude: -1}), 1e-9)
}

func TestBearing_SamePoint(t *testing.T) {
	p := domain.Coordinate{Latitude: 37.7749, Longitude: -122.4194}
	assert.Equal(t, 0.0, Bearing(p, p))
}

func TestInterpolate(t *testing.T) {
	from := domain.Coordinate{Latitude: 10, Longitude: 20}
	to := domain.Coordinate{Latitude: 15, Longitude: 30}

	points := Interpolate(from, to, 5)
	require.Len(t, points, 6)
	assert.Equal(t, from, points[0])
	assert.Equal(t, to, points[5])
	assert.InDelta(t, 11, points[1].Latitude, 1e-9)
	assert.InDelta(t, 22, points[1].Longitude, 1e-9)

	assert.Len(t, Interpolate(from, to, 0), 2)
}

func TestBoundAround(t *testing.T) {
	center := domain.Coordinate{Latitude: 37.7749, Longitude: -122.4194}
	b := BoundAround(center, 200)

	assert.True(t, b.Contains(center.Point()))
	assert.InDelta(t, 400, Distance(
		domain.Coordinate{Latitude: b.Min.Lat(), Longitude: center.Longitude},
		domain.Coordinate{Latitude: b.Max.Lat(), Longitude: center.Longitude},
	), 5)
}
