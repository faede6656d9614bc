package usecase

import (
	"context"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/safety-navigator/internal/domain"
	"github.com/safety-navigator/internal/domain/repository"
	apperrors "github.com/safety-navigator/internal/pkg/errors"
	"github.com/safety-navigator/internal/pkg/geo"
	"github.com/safety-navigator/internal/usecase/dto"
)

const (
	defaultDeviceID     = "default"
	defaultHistoryLimit = 50
	maxHistoryLimit     = 500

	compassRiskThreshold     = 3.0
	compassTimeRiskThreshold = 1.5
	approachMinMeters        = 20.0
	approachMaxMeters        = 100.0
)

// GPSConfig - параметры журнала позиций
type GPSConfig struct {
	DefaultLocation domain.Coordinate
	BLERetention    time.Duration
}

// GPSUseCase - журнал позиций, компас и передача позиций в трекер навигации
type GPSUseCase struct {
	repo    repository.GPSRepository
	tracker *NavigationTracker
	safety  *SafetyUseCase
	clock   Clock
	cfg     GPSConfig
	logger  *zap.Logger
}

// NewGPSUseCase создает новый GPSUseCase
func NewGPSUseCase(
	repo repository.GPSRepository,
	tracker *NavigationTracker,
	safety *SafetyUseCase,
	clock Clock,
	cfg GPSConfig,
	logger *zap.Logger,
) *GPSUseCase {
	if clock == nil {
		clock = SystemClock()
	}
	return &GPSUseCase{
		repo:    repo,
		tracker: tracker,
		safety:  safety,
		clock:   clock,
		cfg:     cfg,
		logger:  logger,
	}
}

// RecordFix сохраняет позицию и передает ее в активную навигацию устройства
func (uc *GPSUseCase) RecordFix(ctx context.Context, in dto.RecordFixInput) (*dto.RecordFixResponse, error) {
	fix, err := uc.newFix(in)
	if err != nil {
		return nil, err
	}

	if err := uc.repo.Save(ctx, fix); err != nil {
		uc.logger.Error("Failed to save GPS fix",
			zap.String("device_id", fix.DeviceID),
			zap.Error(err))
		return nil, apperrors.ErrDatabaseError
	}

	if fix.Source == domain.GPSSourceBLE && uc.cfg.BLERetention > 0 {
		uc.pruneBLE(ctx, fix)
	}

	resp := &dto.RecordFixResponse{Fix: fix}

	update, err := uc.tracker.Update(fix.DeviceID, fix.Coordinate())
	if err != nil {
		return nil, err
	}
	resp.Navigation = update

	return resp, nil
}

// Latest возвращает последнюю позицию или позицию по умолчанию
func (uc *GPSUseCase) Latest(ctx context.Context, deviceID string) (*domain.GPSFix, error) {
	deviceID = normalizeDeviceID(deviceID)

	fix, err := uc.repo.Latest(ctx, deviceID)
	if err != nil {
		uc.logger.Error("Failed to load latest GPS fix",
			zap.String("device_id", deviceID),
			zap.Error(err))
		return nil, apperrors.ErrDatabaseError
	}
	if fix != nil {
		return fix, nil
	}

	return &domain.GPSFix{
		DeviceID:   deviceID,
		Latitude:   uc.cfg.DefaultLocation.Latitude,
		Longitude:  uc.cfg.DefaultLocation.Longitude,
		Source:     domain.GPSSourceDefault,
		RecordedAt: uc.clock.Now(),
	}, nil
}

// History - позиции устройства от новых к старым
func (uc *GPSUseCase) History(ctx context.Context, deviceID string, limit int, sources []domain.GPSSource) (*dto.GPSHistoryResponse, error) {
	deviceID = normalizeDeviceID(deviceID)
	if limit <= 0 {
		limit = defaultHistoryLimit
	}
	if limit > maxHistoryLimit {
		limit = maxHistoryLimit
	}
	for _, s := range sources {
		if !validSource(s) {
			return nil, apperrors.ErrInvalidRequest.WithMessage("unknown GPS source: " + string(s))
		}
	}

	fixes, err := uc.repo.History(ctx, deviceID, sources, limit)
	if err != nil {
		uc.logger.Error("Failed to load GPS history",
			zap.String("device_id", deviceID),
			zap.Error(err))
		return nil, apperrors.ErrDatabaseError
	}
	if fixes == nil {
		fixes = []*domain.GPSFix{}
	}

	return &dto.GPSHistoryResponse{DeviceID: deviceID, Fixes: fixes}, nil
}

// Compass сохраняет позицию и возвращает азимут и расстояние до цели навигации.
// Ошибки проверки безопасности и сохранения не прерывают ответ.
func (uc *GPSUseCase) Compass(ctx context.Context, deviceID string, lat, lng float64) (*dto.CompassResponse, error) {
	current, err := newCoordinate(lat, lng)
	if err != nil {
		return nil, err
	}
	deviceID = normalizeDeviceID(deviceID)

	fix, _ := uc.newFix(dto.RecordFixInput{
		DeviceID:  deviceID,
		Latitude:  lat,
		Longitude: lng,
		Source:    domain.GPSSourceBLE,
	})
	if err := uc.repo.Save(ctx, fix); err != nil {
		uc.logger.Warn("Compass fix not saved",
			zap.String("device_id", deviceID),
			zap.Error(err))
	} else if uc.cfg.BLERetention > 0 {
		uc.pruneBLE(ctx, fix)
	}

	resp := &dto.CompassResponse{
		CurrentLocation: current,
		Timestamp:       fix.RecordedAt,
	}

	session, ok := uc.tracker.Get(deviceID)
	if !ok {
		resp.HasTarget = false
		resp.Message = "No active target set"
		return resp, nil
	}

	target := session.Target.Coordinate
	distance := geo.Distance(current, target)
	radius := uc.tracker.Thresholds().ArrivalMeters

	resp.HasTarget = true
	resp.Target = &dto.CompassTarget{
		Name:      session.Target.Name,
		Latitude:  target.Latitude,
		Longitude: target.Longitude,
	}
	resp.Compass = &dto.CompassReading{
		Bearing:          int(math.Round(geo.Bearing(current, target))) % 360,
		Distance:         int(math.Round(distance)),
		CanComplete:      distance <= radius,
		CompletionRadius: radius,
	}

	update, err := uc.tracker.Update(deviceID, current)
	if err != nil {
		return nil, err
	}
	resp.Navigation = update

	resp.Safety = uc.compassSafety(ctx, current, target, distance)
	return resp, nil
}

func (uc *GPSUseCase) compassSafety(ctx context.Context, current, target domain.Coordinate, distance float64) *dto.SafetyNotices {
	warnings := []domain.Warning{}

	if uc.safety != nil {
		here := uc.safety.AnalyzeSection(ctx, current, "current_location")
		if !here.Degraded && here.RiskScore > compassRiskThreshold {
			warnings = append(warnings, domain.Warning{
				Type:     "current_location_risk",
				Severity: domain.SeverityWarning,
				Message:  "You are in a high-risk area - exercise extra caution",
			})
		}
		if here.TimeRisk.RiskLevel > compassTimeRiskThreshold {
			warnings = append(warnings, domain.Warning{
				Type:     "time_warning",
				Severity: domain.SeverityCaution,
				Message:  strings.Join(here.TimeRisk.Factors, ", ") + " - stay alert",
			})
		}

		if distance < approachMaxMeters && distance > approachMinMeters {
			route, err := uc.safety.AnalyzeRoute(ctx, current.Latitude, current.Longitude, target.Latitude, target.Longitude)
			if err == nil && route.Success && len(route.Warnings) > 0 {
				warnings = append(warnings, domain.Warning{
					Type:     "approaching_destination",
					Severity: domain.SeverityInfo,
					Message:  "Approaching destination - " + route.Warnings[0].Message,
				})
			}
		}
	}

	if len(warnings) == 0 {
		return &dto.SafetyNotices{HasWarnings: false, Message: "No immediate safety concerns detected"}
	}
	return &dto.SafetyNotices{
		HasWarnings: true,
		Message:     "Safety notices for your current location",
		Warnings:    warnings,
	}
}

func (uc *GPSUseCase) newFix(in dto.RecordFixInput) (*domain.GPSFix, error) {
	if _, err := newCoordinate(in.Latitude, in.Longitude); err != nil {
		return nil, err
	}
	if in.Accuracy != nil && *in.Accuracy < 0 {
		return nil, apperrors.ErrInvalidRequest.WithMessage("accuracy must be non-negative")
	}

	source := in.Source
	if source == "" {
		source = domain.GPSSourceDevice
	}
	if !validSource(source) {
		return nil, apperrors.ErrInvalidRequest.WithMessage("unknown GPS source: " + string(source))
	}

	return &domain.GPSFix{
		ID:         uuid.New(),
		DeviceID:   normalizeDeviceID(in.DeviceID),
		Latitude:   in.Latitude,
		Longitude:  in.Longitude,
		Altitude:   in.Altitude,
		Accuracy:   in.Accuracy,
		Source:     source,
		RecordedAt: uc.clock.Now(),
	}, nil
}

// pruneBLE удаляет старые BLE-позиции устройства, они приходят часто
func (uc *GPSUseCase) pruneBLE(ctx context.Context, fix *domain.GPSFix) {
	deleted, err := uc.repo.DeleteOlderThan(ctx, fix.DeviceID, domain.GPSSourceBLE, fix.RecordedAt.Add(-uc.cfg.BLERetention))
	if err != nil {
		uc.logger.Warn("Failed to prune BLE fixes",
			zap.String("device_id", fix.DeviceID),
			zap.Error(err))
		return
	}
	if deleted > 0 {
		uc.logger.Debug("Pruned BLE fixes",
			zap.String("device_id", fix.DeviceID),
			zap.Int64("deleted", deleted))
	}
}

func validSource(s domain.GPSSource) bool {
	switch s {
	case domain.GPSSourceBLE, domain.GPSSourceDevice, domain.GPSSourceManual, domain.GPSSourceSimulation:
		return true
	}
	return false
}

func normalizeDeviceID(id string) string {
	id = strings.TrimSpace(id)
	if id == "" {
		return defaultDeviceID
	}
	return id
}
