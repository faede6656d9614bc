package domain

// FeatureKind - тип элемента OSM
type FeatureKind string

const (
	FeatureKindNode     FeatureKind = "node"
	FeatureKindWay      FeatureKind = "way"
	FeatureKindRelation FeatureKind = "relation"
)

// MapFeature - объект карты с тегами рядом с точкой запроса
type MapFeature struct {
	ID             int64             `json:"id"`
	Kind           FeatureKind       `json:"kind"`
	Location       Coordinate        `json:"location"`
	DistanceMeters float64           `json:"distance_meters"`
	Tags           map[string]string `json:"tags"`
}

func (f MapFeature) Tag(key string) string {
	return f.Tags[key]
}

// TagRule - правило таксономии: ключ тега и допустимые значения.
// Пустой Values означает любое значение.
type TagRule struct {
	Key    string
	Values []string
}

func (r TagRule) Matches(tags map[string]string) bool {
	v, ok := tags[r.Key]
	if !ok {
		return false
	}
	if len(r.Values) == 0 {
		return true
	}
	for _, allowed := range r.Values {
		if v == allowed {
			return true
		}
	}
	return false
}

// BucketName - категория риска, в которую попадает объект
type BucketName string

const (
	BucketRisky          BucketName = "risky"
	BucketEmergency      BucketName = "emergency"
	BucketLighting       BucketName = "lighting"
	BucketTransportation BucketName = "transportation"
	BucketSafe           BucketName = "safe"
)

// FeatureBucket - объекты, разложенные по категориям риска.
// Каждый объект попадает не более чем в одну категорию.
type FeatureBucket struct {
	Safe           []MapFeature `json:"safe"`
	Risky          []MapFeature `json:"risky"`
	Emergency      []MapFeature `json:"emergency"`
	Lighting       []MapFeature `json:"lighting"`
	Transportation []MapFeature `json:"transportation"`
}

// NewFeatureBucket возвращает пустые (не nil) категории
func NewFeatureBucket() FeatureBucket {
	return FeatureBucket{
		Safe:           []MapFeature{},
		Risky:          []MapFeature{},
		Emergency:      []MapFeature{},
		Lighting:       []MapFeature{},
		Transportation: []MapFeature{},
	}
}

func (b *FeatureBucket) Add(name BucketName, f MapFeature) {
	switch name {
	case BucketRisky:
		b.Risky = append(b.Risky, f)
	case BucketEmergency:
		b.Emergency = append(b.Emergency, f)
	case BucketLighting:
		b.Lighting = append(b.Lighting, f)
	case BucketTransportation:
		b.Transportation = append(b.Transportation, f)
	case BucketSafe:
		b.Safe = append(b.Safe, f)
	}
}

// Total - количество классифицированных объектов
func (b FeatureBucket) Total() int {
	return len(b.Safe) + len(b.Risky) + len(b.Emergency) + len(b.Lighting) + len(b.Transportation)
}
