package postgresosm

const (
	SRID4326 = 4326
	SRID3857 = 3857

	// LimitFeaturesPerTable - ограничение выборки из каждой planet_osm таблицы
	LimitFeaturesPerTable = 500
)

const (
	planetPointTable   = "planet_osm_point"
	planetLineTable    = "planet_osm_line"
	planetPolygonTable = "planet_osm_polygon"
)

// knownColumns - ключи, которые osm2pgsql выносит в отдельные колонки.
// Остальные ключи лежат только в hstore tags.
var knownColumns = map[string]string{
	"amenity":          "amenity",
	"highway":          "highway",
	"landuse":          "landuse",
	"leisure":          "leisure",
	"power":            "power",
	"railway":          "railway",
	"military":         "military",
	"natural":          `"natural"`,
	"shop":             "shop",
	"tourism":          "tourism",
	"man_made":         "man_made",
	"public_transport": "public_transport",
	"aeroway":          "aeroway",
	"historic":         "historic",
}

// columnsJSONExpr - значения колонок, собранные в json для объединения с hstore
const columnsJSONExpr = `json_strip_nulls(json_build_object(
	'amenity', amenity, 'highway', highway, 'landuse', landuse, 'leisure', leisure,
	'power', power, 'railway', railway, 'military', military, 'natural', "natural",
	'shop', shop, 'tourism', tourism, 'man_made', man_made,
	'public_transport', public_transport, 'aeroway', aeroway, 'historic', historic
))::text`
