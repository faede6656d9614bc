package postgresosm

import (
	"context"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/safety-navigator/internal/domain"
	"github.com/safety-navigator/internal/pkg/geo"
)

var barcelona = domain.Coordinate{Latitude: 41.3851, Longitude: 2.1734}

func TestBuildFeatureQuery(t *testing.T) {
	bound := geo.BoundAround(barcelona, 200)
	query, args := buildFeatureQuery(planetPointTable, barcelona, 200, bound, []domain.TagRule{
		{Key: "amenity", Values: []string{"police", "hospital"}},
		{Key: "power"},
		{Key: "emergency", Values: []string{"phone"}},
	})

	assert.Contains(t, query, "FROM planet_osm_point")
	assert.Contains(t, query, "COALESCE(amenity, (tags -> $8)) = ANY($9)")
	assert.Contains(t, query, "COALESCE(power, (tags -> $10)) IS NOT NULL")
	assert.Contains(t, query, "(tags -> $11) = ANY($12)")
	assert.Contains(t, query, "ST_DWithin(w4326::geography, point.geom, $3)")
	assert.Contains(t, query, "LIMIT 500")

	require.Len(t, args, 12)
	assert.Equal(t, barcelona.Longitude, args[0])
	assert.Equal(t, barcelona.Latitude, args[1])
	assert.Equal(t, 200.0, args[2])
	assert.Less(t, args[3].(float64), barcelona.Longitude)
	assert.Greater(t, args[6].(float64), barcelona.Latitude)
	assert.Equal(t, "amenity", args[7])
	assert.Equal(t, pq.Array([]string{"police", "hospital"}), args[8])
	assert.Equal(t, "emergency", args[10])
}

func TestBuildFeatureQuery_QuotesNatural(t *testing.T) {
	query, _ := buildFeatureQuery(planetPolygonTable, barcelona, 100, geo.BoundAround(barcelona, 100), []domain.TagRule{
		{Key: "natural", Values: []string{"wetland"}},
	})

	assert.Contains(t, query, `COALESCE("natural", (tags -> $8)) = ANY($9)`)
}

func TestFeatureRepository_EmptyTaxonomy(t *testing.T) {
	repo := NewFeatureRepository(NewDBForTest(nil, nil))

	features, err := repo.Query(context.Background(), barcelona, 200, nil)
	require.NoError(t, err)
	assert.Empty(t, features)
}

func TestFeatureRepository_Query_Integration(t *testing.T) {
	db := setupTestDB(t)
	defer teardownTestDB(t, db)
	skipIfNoOSMData(t, db)

	repo := NewFeatureRepository(db)

	features, err := repo.Query(context.Background(), barcelona, 500, []domain.TagRule{
		{Key: "amenity"},
		{Key: "highway"},
	})
	require.NoError(t, err)

	for _, f := range features {
		assertValidCoordinates(t, f.Location.Latitude, f.Location.Longitude)
		assertInRange(t, f.DistanceMeters, 0, 500, "distance")
		hasKey := f.Tag("amenity") != "" || f.Tag("highway") != ""
		assert.True(t, hasKey, "feature %d has no matching tag", f.ID)
	}
}
