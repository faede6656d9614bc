package usecase

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/safety-navigator/internal/domain"
	"github.com/safety-navigator/internal/domain/repository"
	apperrors "github.com/safety-navigator/internal/pkg/errors"
	"github.com/safety-navigator/internal/pkg/geo"
	"github.com/safety-navigator/internal/usecase/dto"
)

const (
	defaultSearchRadius    = 200.0
	defaultRouteSegments   = 5
	defaultProviderTimeout = 20 * time.Second

	// degradedRiskScore - осторожная оценка, когда данных о карте нет
	degradedRiskScore = 2.0

	highRiskThreshold     = 3.5
	moderateRiskThreshold = 2.5

	sectionRequested   = "requested_location"
	sectionDestination = "destination_check"
	sectionStart       = "start"
	sectionFinish      = "destination"

	emergencyRadiusMin     = 100.0
	emergencyRadiusMax     = 5000.0
	emergencyRadiusDefault = 1000.0
)

// Слагаемые оценки риска точки
const (
	baseRisk            = 1.0
	riskyWeight         = 0.5
	majorRoadWeight     = 0.3
	safeWeight          = 0.2
	lightingWeight      = 0.1
	emergencyWeight     = 0.15
	nightRiskAdjustment = 0.5
	maxRiskScore        = 5.0
)

// SafetyConfig - параметры анализа безопасности
type SafetyConfig struct {
	SearchRadius    float64
	ProviderTimeout time.Duration
	RouteSegments   int
}

// SafetyUseCase оценивает риск точки и маршрута по объектам карты и времени суток
type SafetyUseCase struct {
	provider   repository.MapFeatureProvider
	classifier *FeatureClassifier
	timeRisk   *TimeRiskModel
	logger     *zap.Logger
	cfg        SafetyConfig
}

// NewSafetyUseCase создает новый SafetyUseCase
func NewSafetyUseCase(
	provider repository.MapFeatureProvider,
	timeRisk *TimeRiskModel,
	cfg SafetyConfig,
	logger *zap.Logger,
) *SafetyUseCase {
	if cfg.SearchRadius <= 0 {
		cfg.SearchRadius = defaultSearchRadius
	}
	if cfg.ProviderTimeout <= 0 {
		cfg.ProviderTimeout = defaultProviderTimeout
	}
	if cfg.RouteSegments <= 0 {
		cfg.RouteSegments = defaultRouteSegments
	}
	if timeRisk == nil {
		timeRisk = NewTimeRiskModel(nil, nil)
	}
	return &SafetyUseCase{
		provider:   provider,
		classifier: NewFeatureClassifier(),
		timeRisk:   timeRisk,
		logger:     logger,
		cfg:        cfg,
	}
}

// AnalyzeLocation - анализ одной точки. Ошибка возвращается только для неверных координат.
func (uc *SafetyUseCase) AnalyzeLocation(ctx context.Context, lat, lng float64) (*domain.LocationRiskResult, error) {
	coord, err := newCoordinate(lat, lng)
	if err != nil {
		return nil, err
	}
	result := uc.AnalyzeSection(ctx, coord, sectionRequested)
	return &result, nil
}

// AnalyzeSection оценивает точку и никогда не возвращает ошибку:
// при недоступности источника результат деградирует до осторожной оценки.
func (uc *SafetyUseCase) AnalyzeSection(ctx context.Context, coord domain.Coordinate, section string) domain.LocationRiskResult {
	now := uc.timeRisk.Now()

	features, err := uc.queryFeatures(ctx, coord, uc.cfg.SearchRadius, safetyTaxonomy)
	if err != nil {
		uc.logger.Warn("Safety analysis degraded",
			zap.String("section", section),
			zap.Float64("lat", coord.Latitude),
			zap.Float64("lon", coord.Longitude),
			zap.Error(err))
		return degradedResult(coord, section, now)
	}

	bucket := uc.classifier.Bucket(features)
	timeRisk := AssessTimeRisk(now)
	score := ScoreLocation(bucket, timeRisk)

	return domain.LocationRiskResult{
		Section:    section,
		Coordinate: coord,
		RiskScore:  score,
		TimeRisk:   timeRisk,
		Features:   bucket,
		Warnings:   LocationWarnings(bucket, score, timeRisk),
		AnalyzedAt: now,
	}
}

// AnalyzeRoute - анализ прямого маршрута по точкам интерполяции.
// Ошибка возвращается только для неверных координат.
func (uc *SafetyUseCase) AnalyzeRoute(ctx context.Context, fromLat, fromLng, toLat, toLng float64) (*domain.RouteRiskResult, error) {
	from, err := newCoordinate(fromLat, fromLng)
	if err != nil {
		return nil, err
	}
	to, err := newCoordinate(toLat, toLng)
	if err != nil {
		return nil, err
	}

	waypoints := geo.Interpolate(from, to, uc.cfg.RouteSegments)
	segments := make([]domain.LocationRiskResult, len(waypoints))

	var wg sync.WaitGroup
	for i, point := range waypoints {
		wg.Add(1)
		go func(i int, point domain.Coordinate) {
			defer wg.Done()
			segments[i] = uc.AnalyzeSection(ctx, point, waypointLabel(i, len(waypoints)))
		}(i, point)
	}
	wg.Wait()

	result := &domain.RouteRiskResult{
		From:       from,
		To:         to,
		AnalyzedAt: uc.timeRisk.Now(),
	}

	if allDegraded(segments) {
		uc.logger.Error("Route safety analysis unavailable",
			zap.Float64("from_lat", fromLat),
			zap.Float64("from_lon", fromLng),
			zap.Float64("to_lat", toLat),
			zap.Float64("to_lon", toLng))
		result.Success = false
		result.Error = "Unable to analyze route safety"
		result.Warnings = []domain.Warning{{
			Type:     domain.WarningSystem,
			Severity: domain.SeverityInfo,
			Message:  "Safety analysis unavailable - proceed with normal caution",
		}}
		result.Recommendations = []domain.Recommendation{}
		result.Segments = segments
		return result, nil
	}

	overall := aggregateRoute(segments)
	result.Success = true
	result.Overall = &overall
	result.Warnings = RouteWarnings(segments)
	result.Recommendations = RouteRecommendations(segments)
	result.Segments = segments

	uc.logger.Debug("Route safety analyzed",
		zap.String("safety_level", string(overall.SafetyLevel)),
		zap.Float64("avg_risk", overall.AvgRiskScore),
		zap.Float64("max_risk", overall.MaxRiskScore))

	return result, nil
}

// CheckDestination - подходит ли точка как цель прогулки
func (uc *SafetyUseCase) CheckDestination(ctx context.Context, lat, lng float64) (*dto.DestinationCheckResponse, error) {
	coord, err := newCoordinate(lat, lng)
	if err != nil {
		return nil, err
	}

	result := uc.AnalyzeSection(ctx, coord, sectionDestination)

	resp := &dto.DestinationCheckResponse{
		IsSafeForSidequest: result.RiskScore < 3.0,
		RequiresWarning:    result.RiskScore > 2.0,
		RiskScore:          result.RiskScore,
		Warnings:           result.Warnings,
		Degraded:           result.Degraded,
	}
	if resp.IsSafeForSidequest {
		resp.SafetyMessage = "Destination appears safe for exploration"
	} else {
		resp.SafetyMessage = "Destination may require extra caution"
	}
	if resp.RequiresWarning {
		resp.Recommendation = "Consider choosing a different mystery location"
	} else {
		resp.Recommendation = "Destination suitable for adventure"
	}
	return resp, nil
}

// FindEmergencyServices ищет больницы, полицию и пожарные части вокруг точки.
// В отличие от оценки риска, недоступность источника здесь возвращается ошибкой.
func (uc *SafetyUseCase) FindEmergencyServices(ctx context.Context, req dto.EmergencyServicesRequest) (*dto.EmergencyServicesResponse, error) {
	coord, err := newCoordinate(req.Latitude, req.Longitude)
	if err != nil {
		return nil, err
	}

	radius := req.Radius
	if radius == 0 {
		radius = emergencyRadiusDefault
	}
	if !geo.ValidateRadius(radius, emergencyRadiusMin, emergencyRadiusMax) {
		return nil, apperrors.ErrInvalidRadius.WithDetails(map[string]interface{}{
			"radius": radius,
			"min":    emergencyRadiusMin,
			"max":    emergencyRadiusMax,
		})
	}

	taxonomy := emergencyTaxonomy
	switch req.Type {
	case "", "all":
	case "hospital", "police", "fire_station":
		taxonomy = []domain.TagRule{{Key: "amenity", Values: []string{req.Type}}}
	default:
		return nil, apperrors.ErrInvalidRequest.WithMessage("type must be one of hospital, police, fire_station, all")
	}

	features, err := uc.queryFeatures(ctx, coord, radius, taxonomy)
	if err != nil {
		uc.logger.Error("Emergency services search failed",
			zap.Float64("lat", coord.Latitude),
			zap.Float64("lon", coord.Longitude),
			zap.Error(err))
		return nil, apperrors.ErrProviderUnavailable
	}

	services := make([]dto.EmergencyService, 0, len(features))
	for _, f := range features {
		if len(f.Tags) == 0 {
			continue
		}
		amenity := f.Tag("amenity")
		name := f.Tag("name")
		if name == "" {
			name = amenity + " facility"
		}
		address := f.Tag("addr:full")
		if address == "" {
			address = strings.TrimSpace(f.Tag("addr:housenumber") + " " + f.Tag("addr:street"))
		}
		services = append(services, dto.EmergencyService{
			ID:        f.ID,
			Type:      amenity,
			Name:      name,
			Latitude:  f.Location.Latitude,
			Longitude: f.Location.Longitude,
			Distance:  int(math.Round(f.DistanceMeters)),
			Address:   address,
			Phone:     f.Tag("phone"),
			Website:   f.Tag("website"),
			Emergency: f.Tag("emergency") == "yes",
		})
	}

	sort.SliceStable(services, func(i, j int) bool {
		return services[i].Distance < services[j].Distance
	})

	resp := &dto.EmergencyServicesResponse{
		Services:     services,
		Count:        len(services),
		SearchRadius: radius,
	}
	if len(services) > 0 {
		closest := services[0]
		resp.ClosestService = &closest
	}
	return resp, nil
}

// queryFeatures вызывает источник с ограничением по времени
func (uc *SafetyUseCase) queryFeatures(ctx context.Context, center domain.Coordinate, radius float64, taxonomy []domain.TagRule) ([]domain.MapFeature, error) {
	if uc.provider == nil {
		return nil, fmt.Errorf("%w: no provider configured", domain.ErrProviderUnavailable)
	}

	ctx, cancel := context.WithTimeout(ctx, uc.cfg.ProviderTimeout)
	defer cancel()

	features, err := uc.provider.Query(ctx, center, radius, taxonomy)
	if err != nil {
		if !errors.Is(err, domain.ErrProviderUnavailable) {
			err = fmt.Errorf("%w: %v", domain.ErrProviderUnavailable, err)
		}
		return nil, err
	}
	return features, nil
}

// ScoreLocation считает итоговую оценку риска в диапазоне [0, 5] с точностью 0.1
func ScoreLocation(bucket domain.FeatureBucket, timeRisk domain.TimeRiskAssessment) float64 {
	majorRoads := 0
	for _, f := range bucket.Transportation {
		if isMajorRoad(f) {
			majorRoads++
		}
	}

	increase := riskyWeight*float64(len(bucket.Risky)) + majorRoadWeight*float64(majorRoads)
	decrease := safeWeight*float64(len(bucket.Safe)) +
		lightingWeight*float64(len(bucket.Lighting)) +
		emergencyWeight*float64(len(bucket.Emergency))

	adjustment := 0.0
	if timeRisk.IsNight {
		adjustment = nightRiskAdjustment
	}

	score := baseRisk + increase - decrease + adjustment
	score = math.Max(0, math.Min(maxRiskScore, score))
	return round1(score)
}

// LocationWarnings строит предупреждения для точки, от самых серьезных
func LocationWarnings(bucket domain.FeatureBucket, score float64, timeRisk domain.TimeRiskAssessment) []domain.Warning {
	warnings := []domain.Warning{}

	if score >= highRiskThreshold {
		warnings = append(warnings, domain.Warning{
			Type:     domain.WarningHighRiskLocation,
			Severity: domain.SeverityWarning,
			Message:  "High risk area detected - exercise extreme caution",
		})
	} else if score >= moderateRiskThreshold {
		warnings = append(warnings, domain.Warning{
			Type:     domain.WarningModerateRiskLocation,
			Severity: domain.SeverityCaution,
			Message:  "Moderate risk area - stay alert",
		})
	}

	if len(bucket.Risky) > 0 {
		hazards := make([]string, 0, len(bucket.Risky))
		for _, f := range bucket.Risky {
			hazards = append(hazards, hazardName(f))
		}
		warnings = append(warnings, domain.Warning{
			Type:     domain.WarningInfrastructureHazard,
			Severity: domain.SeverityCaution,
			Message:  "Nearby hazards: " + strings.Join(hazards, ", "),
		})
	}

	for _, f := range bucket.Transportation {
		if isMajorRoad(f) {
			warnings = append(warnings, domain.Warning{
				Type:     domain.WarningMajorRoadNearby,
				Severity: domain.SeverityCaution,
				Message:  "Major road nearby - use caution when crossing",
			})
			break
		}
	}

	if timeRisk.RiskLevel > 1 {
		warnings = append(warnings, domain.Warning{
			Type:     domain.WarningTimeBasedRisk,
			Severity: domain.SeverityInfo,
			Message:  strings.Join(timeRisk.Factors, ", ") + " - extra caution advised",
		})
	}

	if len(bucket.Emergency) > 0 {
		warnings = append(warnings, domain.Warning{
			Type:     domain.WarningEmergencyServices,
			Severity: domain.SeverityInfo,
			Message:  "Emergency services nearby",
		})
	}

	return warnings
}

// RouteWarnings - предупреждения уровня маршрута, без повторов по отрезкам
func RouteWarnings(segments []domain.LocationRiskResult) []domain.Warning {
	warnings := []domain.Warning{}

	var highRisk []string
	for _, s := range segments {
		if s.RiskScore >= highRiskThreshold {
			highRisk = append(highRisk, s.Section)
		}
	}
	if len(highRisk) > 0 {
		warnings = append(warnings, domain.Warning{
			Type:     domain.WarningHighRiskArea,
			Severity: domain.SeverityWarning,
			Message:  "High risk area detected along your route. Exercise extra caution.",
			Details:  fmt.Sprintf("%d section(s) with elevated risk levels", len(highRisk)),
			Sections: highRisk,
		})
	}

	if anySegment(segments, func(s domain.LocationRiskResult) bool { return anyFeature(s.Features.Risky, isIndustrial) }) {
		warnings = append(warnings, domain.Warning{
			Type:           domain.WarningIndustrialArea,
			Severity:       domain.SeverityCaution,
			Message:        "Industrial area on route. Be aware of heavy vehicle traffic.",
			Recommendation: "Stay on designated walkways and be extra alert for vehicles",
		})
	}

	if anySegment(segments, func(s domain.LocationRiskResult) bool { return anyFeature(s.Features.Transportation, isMajorRoad) }) {
		warnings = append(warnings, domain.Warning{
			Type:           domain.WarningMajorRoad,
			Severity:       domain.SeverityCaution,
			Message:        "Route crosses major roads. Use designated crossings only.",
			Recommendation: "Look for pedestrian bridges, traffic lights, or crosswalks",
		})
	}

	for _, s := range segments {
		if s.TimeRisk.RiskLevel <= 1 {
			continue
		}
		if len(s.TimeRisk.Factors) > 0 {
			recommendation := s.TimeRisk.Recommendation
			if recommendation == "" {
				recommendation = "Consider traveling during daylight hours if possible"
			}
			warnings = append(warnings, domain.Warning{
				Type:           domain.WarningTimeBased,
				Severity:       domain.SeverityInfo,
				Message:        strings.Join(s.TimeRisk.Factors, ", "),
				Recommendation: recommendation,
			})
		}
		break
	}

	return warnings
}

// RouteRecommendations - советы по маршруту, две общие рекомендации добавляются всегда
func RouteRecommendations(segments []domain.LocationRiskResult) []domain.Recommendation {
	recommendations := []domain.Recommendation{}

	lighting, emergency := 0, 0
	for _, s := range segments {
		lighting += len(s.Features.Lighting)
		emergency += len(s.Features.Emergency)
	}

	if lighting < 2 {
		recommendations = append(recommendations, domain.Recommendation{
			Type:     "lighting",
			Message:  "Bring a flashlight or use phone light - limited street lighting detected",
			Priority: domain.PriorityMedium,
		})
	}
	if emergency > 0 {
		recommendations = append(recommendations, domain.Recommendation{
			Type:     "emergency_services",
			Message:  "Emergency services (police/hospital/fire) are nearby if needed",
			Priority: domain.PriorityInfo,
		})
	}

	return append(recommendations,
		domain.Recommendation{
			Type:     "general",
			Message:  "Stay aware of your surroundings and trust your instincts",
			Priority: domain.PriorityHigh,
		},
		domain.Recommendation{
			Type:     "general",
			Message:  "Share your location with someone you trust",
			Priority: domain.PriorityHigh,
		},
	)
}

// aggregateRoute - уровень безопасности по средней оценке отрезков.
// Уровень определяется по неокругленному среднему.
func aggregateRoute(segments []domain.LocationRiskResult) domain.RouteOverall {
	sum, maxScore := 0.0, 0.0
	for _, s := range segments {
		sum += s.RiskScore
		maxScore = math.Max(maxScore, s.RiskScore)
	}
	avg := sum / float64(len(segments))

	overall := domain.RouteOverall{
		AvgRiskScore:  round1(avg),
		MaxRiskScore:  maxScore,
		TotalSections: len(segments),
	}

	switch {
	case avg < 1.5:
		overall.SafetyLevel = domain.SafetyLevelSafe
		overall.Color = "green"
		overall.Message = "Route appears generally safe"
	case avg < 2.5:
		overall.SafetyLevel = domain.SafetyLevelModerate
		overall.Color = "yellow"
		overall.Message = "Route has some areas requiring caution"
	case avg < 3.5:
		overall.SafetyLevel = domain.SafetyLevelElevated
		overall.Color = "orange"
		overall.Message = "Route has elevated risk areas - exercise caution"
	default:
		overall.SafetyLevel = domain.SafetyLevelHighRisk
		overall.Color = "red"
		overall.Message = "High risk route detected - consider alternative path"
	}

	return overall
}

func degradedResult(coord domain.Coordinate, section string, now time.Time) domain.LocationRiskResult {
	return domain.LocationRiskResult{
		Section:    section,
		Coordinate: coord,
		RiskScore:  degradedRiskScore,
		TimeRisk:   AssessTimeRisk(now),
		Features:   domain.NewFeatureBucket(),
		Warnings: []domain.Warning{{
			Type:     domain.WarningAnalysisError,
			Severity: domain.SeverityInfo,
			Message:  "Unable to analyze this area - exercise normal caution",
		}},
		Degraded:   true,
		AnalyzedAt: now,
	}
}

func waypointLabel(i, total int) string {
	switch i {
	case 0:
		return sectionStart
	case total - 1:
		return sectionFinish
	default:
		return fmt.Sprintf("segment_%d", i)
	}
}

func hazardName(f domain.MapFeature) string {
	for _, key := range []string{"landuse", "highway", "railway"} {
		if v := f.Tag(key); v != "" {
			return v
		}
	}
	return "hazard"
}

func allDegraded(segments []domain.LocationRiskResult) bool {
	for _, s := range segments {
		if !s.Degraded {
			return false
		}
	}
	return len(segments) > 0
}

func anySegment(segments []domain.LocationRiskResult, pred func(domain.LocationRiskResult) bool) bool {
	for _, s := range segments {
		if pred(s) {
			return true
		}
	}
	return false
}

func anyFeature(features []domain.MapFeature, pred func(domain.MapFeature) bool) bool {
	for _, f := range features {
		if pred(f) {
			return true
		}
	}
	return false
}

func newCoordinate(lat, lng float64) (domain.Coordinate, error) {
	coord, err := domain.NewCoordinate(lat, lng)
	if err != nil {
		return domain.Coordinate{}, apperrors.ErrInvalidCoordinates.WithDetails(map[string]interface{}{
			"latitude":  lat,
			"longitude": lng,
		})
	}
	return coord, nil
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
