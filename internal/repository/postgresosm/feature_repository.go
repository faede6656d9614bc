package postgresosm

import (
	"context"
	"fmt"
	"strings"

	"github.com/lib/pq"
	"github.com/paulmach/orb"
	"go.uber.org/zap"

	"github.com/safety-navigator/internal/domain"
	"github.com/safety-navigator/internal/domain/repository"
	"github.com/safety-navigator/internal/pkg/geo"
)

type featureRow struct {
	OSMID       int64   `db:"osm_id"`
	Lat         float64 `db:"lat"`
	Lon         float64 `db:"lon"`
	Distance    float64 `db:"distance"`
	TagsJSON    []byte  `db:"tags_json"`
	ColumnsJSON []byte  `db:"columns_json"`
}

type featureRepository struct {
	db     *DB
	logger *zap.Logger
}

// NewFeatureRepository - источник объектов карты из planet_osm_* таблиц osm2pgsql
func NewFeatureRepository(db *DB) repository.MapFeatureProvider {
	return &featureRepository{
		db:     db,
		logger: db.logger,
	}
}

func (r *featureRepository) Query(ctx context.Context, center domain.Coordinate, radiusMeters float64, taxonomy []domain.TagRule) ([]domain.MapFeature, error) {
	if len(taxonomy) == 0 {
		return []domain.MapFeature{}, nil
	}

	bound := geo.BoundAround(center, radiusMeters)
	features := []domain.MapFeature{}

	for _, table := range []string{planetPointTable, planetPolygonTable, planetLineTable} {
		query, args := buildFeatureQuery(table, center, radiusMeters, bound, taxonomy)

		var rows []featureRow
		if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
			r.logger.Error("failed to query osm features",
				zap.String("table", table),
				zap.Float64("lat", center.Latitude),
				zap.Float64("lon", center.Longitude),
				zap.Error(err))
			return nil, fmt.Errorf("%w: %s: %v", domain.ErrProviderUnavailable, table, err)
		}

		for _, row := range rows {
			kind, id := featureKind(table, row.OSMID)
			features = append(features, domain.MapFeature{
				ID:             id,
				Kind:           kind,
				Location:       domain.Coordinate{Latitude: row.Lat, Longitude: row.Lon},
				DistanceMeters: row.Distance,
				Tags:           mergeTags(row.TagsJSON, row.ColumnsJSON),
			})
		}
	}

	return features, nil
}

// buildFeatureQuery - bbox по индексу way, затем точный ST_DWithin по geography
func buildFeatureQuery(table string, center domain.Coordinate, radiusMeters float64, bound orb.Bound, taxonomy []domain.TagRule) (string, []interface{}) {
	args := []interface{}{
		center.Longitude, center.Latitude, radiusMeters,
		bound.Min.Lon(), bound.Min.Lat(), bound.Max.Lon(), bound.Max.Lat(),
	}
	argIdx := len(args) + 1

	conditions := make([]string, 0, len(taxonomy))
	for _, rule := range taxonomy {
		expr := tagExpr(rule.Key, &args, &argIdx)
		if len(rule.Values) == 0 {
			conditions = append(conditions, expr+" IS NOT NULL")
			continue
		}
		conditions = append(conditions, fmt.Sprintf("%s = ANY($%d)", expr, argIdx))
		args = append(args, pq.Array(rule.Values))
		argIdx++
	}

	query := fmt.Sprintf(`
		WITH point AS (
			SELECT ST_SetSRID(ST_MakePoint($1, $2), %d)::geography AS geom
		), data AS (
			SELECT osm_id, tags, %s AS columns_json,
				ST_Transform(ST_PointOnSurface(way), %d) AS w4326
			FROM %s
			WHERE way && ST_Transform(ST_MakeEnvelope($4, $5, $6, $7, %d), %d)
				AND (%s)
		)
		SELECT
			osm_id,
			ST_Y(w4326) AS lat,
			ST_X(w4326) AS lon,
			ST_Distance(w4326::geography, point.geom) AS distance,
			COALESCE(hstore_to_json(tags), '{}'::json)::text AS tags_json,
			columns_json
		FROM data, point
		WHERE ST_DWithin(w4326::geography, point.geom, $3)
		ORDER BY distance
		LIMIT %d
	`, SRID4326, columnsJSONExpr, SRID4326, table, SRID4326, SRID3857,
		strings.Join(conditions, " OR "), LimitFeaturesPerTable)

	return query, args
}

// tagExpr - колонка для известных ключей, иначе значение из hstore
func tagExpr(key string, args *[]interface{}, argIdx *int) string {
	hstore := fmt.Sprintf("(tags -> $%d)", *argIdx)
	*args = append(*args, key)
	*argIdx++

	if column, ok := knownColumns[key]; ok {
		return fmt.Sprintf("COALESCE(%s, %s)", column, hstore)
	}
	return hstore
}
