package overpass

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/serjvanilla/go-overpass"
	"go.uber.org/zap"

	"github.com/safety-navigator/internal/domain"
	"github.com/safety-navigator/internal/domain/repository"
	"github.com/safety-navigator/internal/pkg/geo"
)

const (
	// queryTimeoutSeconds - серверный таймаут Overpass в заголовке запроса
	queryTimeoutSeconds = 15
	defaultMaxParallel  = 2
)

// Client - источник объектов карты через Overpass API
type Client struct {
	client  overpass.Client
	timeout time.Duration
	logger  *zap.Logger
}

// NewClient создает клиента Overpass API
func NewClient(endpoint string, maxParallel int, timeout time.Duration, logger *zap.Logger) *Client {
	if maxParallel <= 0 {
		maxParallel = defaultMaxParallel
	}
	httpClient := &http.Client{
		Timeout: timeout,
	}
	return &Client{
		client:  overpass.NewWithSettings(endpoint, maxParallel, httpClient),
		timeout: timeout,
		logger:  logger,
	}
}

var _ repository.MapFeatureProvider = (*Client)(nil)

// Query возвращает узлы и линии с тегами из таксономии в радиусе от центра
func (c *Client) Query(ctx context.Context, center domain.Coordinate, radiusMeters float64, taxonomy []domain.TagRule) ([]domain.MapFeature, error) {
	if len(taxonomy) == 0 {
		return []domain.MapFeature{}, nil
	}

	query := BuildQuery(center, radiusMeters, taxonomy)

	result, err := c.execute(ctx, query)
	if err != nil {
		c.logger.Warn("Overpass query failed",
			zap.Float64("lat", center.Latitude),
			zap.Float64("lon", center.Longitude),
			zap.Float64("radius", radiusMeters),
			zap.Error(err))
		return nil, fmt.Errorf("%w: %v", domain.ErrProviderUnavailable, err)
	}

	features := convertResult(center, result)

	c.logger.Debug("Overpass features loaded",
		zap.Float64("lat", center.Latitude),
		zap.Float64("lon", center.Longitude),
		zap.Int("count", len(features)))

	return features, nil
}

// execute - go-overpass не принимает context, поэтому ждем ответ в горутине
func (c *Client) execute(ctx context.Context, query string) (*overpass.Result, error) {
	type response struct {
		result overpass.Result
		err    error
	}

	done := make(chan response, 1)
	go func() {
		result, err := c.client.Query(query)
		done <- response{result: result, err: err}
	}()

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case resp := <-done:
		if resp.err != nil {
			return nil, resp.err
		}
		return &resp.result, nil
	}
}

// BuildQuery собирает Overpass QL: по node и way на каждое правило таксономии
func BuildQuery(center domain.Coordinate, radiusMeters float64, taxonomy []domain.TagRule) string {
	around := fmt.Sprintf("(around:%.0f,%.6f,%.6f)", radiusMeters, center.Latitude, center.Longitude)

	var b strings.Builder
	fmt.Fprintf(&b, "[out:json][timeout:%d];\n(\n", queryTimeoutSeconds)
	for _, rule := range taxonomy {
		filter := tagFilter(rule)
		fmt.Fprintf(&b, "  node%s%s;\n", filter, around)
		fmt.Fprintf(&b, "  way%s%s;\n", filter, around)
	}
	b.WriteString(");\nout body;\n>;\nout skel qt;")
	return b.String()
}

func tagFilter(rule domain.TagRule) string {
	key := escape(rule.Key)
	if len(rule.Values) == 0 {
		return fmt.Sprintf(`["%s"]`, key)
	}
	values := make([]string, 0, len(rule.Values))
	for _, v := range rule.Values {
		values = append(values, escape(v))
	}
	return fmt.Sprintf(`["%s"~"^(%s)$"]`, key, strings.Join(values, "|"))
}

func escape(s string) string {
	return strings.NewReplacer(`\`, `\\`, `"`, `\"`).Replace(s)
}

// convertResult переводит ответ в объекты карты. Узлы без тегов пришли
// только как геометрия линий и пропускаются, отношения не используются.
func convertResult(center domain.Coordinate, result *overpass.Result) []domain.MapFeature {
	features := make([]domain.MapFeature, 0, len(result.Nodes)+len(result.Ways))

	for _, node := range result.Nodes {
		if len(node.Tags) == 0 {
			continue
		}
		loc := domain.Coordinate{Latitude: node.Lat, Longitude: node.Lon}
		features = append(features, domain.MapFeature{
			ID:             node.ID,
			Kind:           domain.FeatureKindNode,
			Location:       loc,
			DistanceMeters: geo.Distance(center, loc),
			Tags:           node.Tags,
		})
	}

	for _, way := range result.Ways {
		if len(way.Tags) == 0 {
			continue
		}
		loc, ok := wayCenter(way)
		if !ok {
			continue
		}
		features = append(features, domain.MapFeature{
			ID:             way.ID,
			Kind:           domain.FeatureKindWay,
			Location:       loc,
			DistanceMeters: geo.Distance(center, loc),
			Tags:           way.Tags,
		})
	}

	return features
}

func wayCenter(way *overpass.Way) (domain.Coordinate, bool) {
	if way.Bounds != nil {
		return domain.Coordinate{
			Latitude:  (way.Bounds.Min.Lat + way.Bounds.Max.Lat) / 2,
			Longitude: (way.Bounds.Min.Lon + way.Bounds.Max.Lon) / 2,
		}, true
	}

	var lat, lon float64
	count := 0
	for _, node := range way.Nodes {
		if node == nil || (node.Lat == 0 && node.Lon == 0) {
			continue
		}
		lat += node.Lat
		lon += node.Lon
		count++
	}
	if count == 0 {
		return domain.Coordinate{}, false
	}
	return domain.Coordinate{Latitude: lat / float64(count), Longitude: lon / float64(count)}, true
}
