// Package geo - расстояния и азимуты на сфере WGS84.
package geo

import (
	"math"

	"github.com/paulmach/orb"
	orbgeo "github.com/paulmach/orb/geo"

	"github.com/safety-navigator/internal/domain"
)

// EarthRadiusMeters - средний радиус Земли для формулы гаверсинуса
const EarthRadiusMeters = 6371000.0

// Distance возвращает расстояние по большому кругу в метрах
func Distance(a, b domain.Coordinate) float64 {
	dLat := toRadians(b.Latitude - a.Latitude)
	dLon := toRadians(b.Longitude - a.Longitude)

	lat1 := toRadians(a.Latitude)
	lat2 := toRadians(b.Latitude)

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Sin(dLon/2)*math.Sin(dLon/2)*math.Cos(lat1)*math.Cos(lat2)
	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))

	return EarthRadiusMeters * c
}

// DistanceKm - то же, что Distance, в километрах
func DistanceKm(a, b domain.Coordinate) float64 {
	return Distance(a, b) / 1000
}

// Bearing возвращает начальный азимут в градусах [0, 360).
// Для совпадающих точек азимут не определен, возвращается 0.
func Bearing(from, to domain.Coordinate) float64 {
	if from == to {
		return 0
	}
	deg := math.Mod(orbgeo.Bearing(from.Point(), to.Point())+360, 360)
	if deg >= 360 {
		deg = 0
	}
	return deg
}

// Interpolate делит отрезок from-to линейно по широте и долготе на segments частей
// и возвращает segments+1 точек, включая концы. Это прямая, а не маршрут по дорогам.
func Interpolate(from, to domain.Coordinate, segments int) []domain.Coordinate {
	if segments < 1 {
		segments = 1
	}

	points := make([]domain.Coordinate, 0, segments+1)
	for i := 0; i <= segments; i++ {
		ratio := float64(i) / float64(segments)
		points = append(points, domain.Coordinate{
			Latitude:  from.Latitude + (to.Latitude-from.Latitude)*ratio,
			Longitude: from.Longitude + (to.Longitude-from.Longitude)*ratio,
		})
	}
	return points
}

// BoundAround возвращает прямоугольник, описанный вокруг круга радиуса radiusMeters
func BoundAround(center domain.Coordinate, radiusMeters float64) orb.Bound {
	return orbgeo.NewBoundAroundPoint(center.Point(), radiusMeters)
}

// ValidateRadius проверяет радиус поиска в метрах
func ValidateRadius(radiusMeters, min, max float64) bool {
	return radiusMeters >= min && radiusMeters <= max
}

func toRadians(deg float64) float64 {
	return deg * math.Pi / 180
}
