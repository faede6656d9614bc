package postgresosm

import (
	"encoding/json"
	"strings"

	"github.com/safety-navigator/internal/domain"
)

func parseTags(raw []byte) map[string]string {
	if len(raw) == 0 {
		return map[string]string{}
	}

	var tmp map[string]string
	if err := json.Unmarshal(raw, &tmp); err != nil {
		return map[string]string{}
	}

	return tmp
}

// mergeTags объединяет hstore теги и значения колонок, колонки главнее
func mergeTags(hstore, columns []byte) map[string]string {
	tags := parseTags(hstore)
	for k, v := range parseTags(columns) {
		if strings.TrimSpace(v) == "" {
			continue
		}
		tags[k] = v
	}
	return tags
}

// featureKind - osm2pgsql хранит отношения с отрицательным osm_id
func featureKind(table string, osmID int64) (domain.FeatureKind, int64) {
	if table == planetPointTable {
		return domain.FeatureKindNode, osmID
	}
	if osmID < 0 {
		return domain.FeatureKindRelation, -osmID
	}
	return domain.FeatureKindWay, osmID
}
