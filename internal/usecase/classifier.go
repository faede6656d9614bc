package usecase

import (
	"github.com/safety-navigator/internal/domain"
)

// classificationRule - набор правил одной категории
type classificationRule struct {
	bucket domain.BucketName
	rules  []domain.TagRule
}

// Порядок важен: объект попадает в первую подходящую категорию.
// amenity=hospital|police|fire_station совпадает и с risky, и с emergency,
// поэтому до emergency такие объекты не доходят.
var classificationOrder = []classificationRule{
	{
		bucket: domain.BucketRisky,
		rules: []domain.TagRule{
			{Key: "landuse", Values: []string{"industrial", "military", "quarry"}},
			{Key: "man_made", Values: []string{"wastewater_plant", "water_treatment", "tower"}},
			{Key: "military"},
			{Key: "railway", Values: []string{"rail", "subway", "tram"}},
			{Key: "power"},
			{Key: "highway", Values: majorRoadValues},
			{Key: "natural", Values: []string{"cliff", "water"}},
			{Key: "tourism", Values: []string{"attraction"}},
			{Key: "amenity", Values: emergencyAmenities},
		},
	},
	{
		bucket: domain.BucketEmergency,
		rules: []domain.TagRule{
			{Key: "amenity", Values: emergencyAmenities},
		},
	},
	{
		bucket: domain.BucketLighting,
		rules: []domain.TagRule{
			{Key: "highway", Values: []string{"street_lamp"}},
		},
	},
	{
		bucket: domain.BucketTransportation,
		rules: []domain.TagRule{
			{Key: "highway"},
			{Key: "railway"},
		},
	},
	{
		bucket: domain.BucketSafe,
		rules: []domain.TagRule{
			{Key: "landuse", Values: []string{"residential", "commercial", "retail"}},
			{Key: "amenity", Values: []string{"school", "university", "library", "community_centre", "park"}},
			{Key: "leisure", Values: []string{"park", "playground", "garden"}},
			{Key: "tourism", Values: []string{"hotel", "museum", "information"}},
		},
	},
}

var (
	majorRoadValues    = []string{"motorway", "trunk", "primary"}
	emergencyAmenities = []string{"hospital", "police", "fire_station"}
)

// safetyTaxonomy - теги, которые запрашиваются у источника для оценки точки
var safetyTaxonomy = []domain.TagRule{
	{Key: "landuse", Values: []string{"industrial", "military", "quarry", "residential", "commercial", "retail"}},
	{Key: "man_made", Values: []string{"wastewater_plant", "water_treatment", "tower"}},
	{Key: "military"},
	{Key: "highway", Values: []string{"motorway", "trunk", "primary", "secondary", "street_lamp"}},
	{Key: "railway", Values: []string{"rail", "subway", "tram"}},
	{Key: "power"},
	{Key: "natural", Values: []string{"cliff", "water", "wetland"}},
	{Key: "tourism", Values: []string{"attraction", "hotel", "museum", "information"}},
	{Key: "amenity", Values: []string{"hospital", "police", "fire_station", "school", "university", "library", "community_centre", "park"}},
	{Key: "leisure", Values: []string{"park", "playground", "garden"}},
}

// emergencyTaxonomy - теги для поиска экстренных служб
var emergencyTaxonomy = []domain.TagRule{
	{Key: "amenity", Values: emergencyAmenities},
}

// SafetyTaxonomy возвращает копию таксономии запроса для оценки риска
func SafetyTaxonomy() []domain.TagRule {
	out := make([]domain.TagRule, len(safetyTaxonomy))
	copy(out, safetyTaxonomy)
	return out
}

// FeatureClassifier раскладывает объекты карты по категориям риска
type FeatureClassifier struct {
	order []classificationRule
}

func NewFeatureClassifier() *FeatureClassifier {
	return &FeatureClassifier{order: classificationOrder}
}

// Classify возвращает категорию объекта, false если ни одно правило не подошло
func (c *FeatureClassifier) Classify(f domain.MapFeature) (domain.BucketName, bool) {
	for _, group := range c.order {
		for _, rule := range group.rules {
			if rule.Matches(f.Tags) {
				return group.bucket, true
			}
		}
	}
	return "", false
}

// Bucket классифицирует список объектов, неподходящие отбрасываются
func (c *FeatureClassifier) Bucket(features []domain.MapFeature) domain.FeatureBucket {
	bucket := domain.NewFeatureBucket()
	for _, f := range features {
		if name, ok := c.Classify(f); ok {
			bucket.Add(name, f)
		}
	}
	return bucket
}

// isMajorRoad - объект на магистрали (motorway, trunk, primary)
func isMajorRoad(f domain.MapFeature) bool {
	return domain.TagRule{Key: "highway", Values: majorRoadValues}.Matches(f.Tags)
}

func isIndustrial(f domain.MapFeature) bool {
	return f.Tag("landuse") == "industrial"
}
