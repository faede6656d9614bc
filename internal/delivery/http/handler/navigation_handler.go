package handler

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/safety-navigator/internal/domain"
	"github.com/safety-navigator/internal/pkg/errors"
	"github.com/safety-navigator/internal/pkg/utils"
	"github.com/safety-navigator/internal/pkg/validator"
	"github.com/safety-navigator/internal/usecase"
	"github.com/safety-navigator/internal/usecase/dto"
)

// NavigationHandler - управление навигацией устройств
type NavigationHandler struct {
	tracker *usecase.NavigationTracker
	logger  *zap.Logger
}

// NewNavigationHandler - создание нового NavigationHandler
func NewNavigationHandler(tracker *usecase.NavigationTracker, logger *zap.Logger) *NavigationHandler {
	return &NavigationHandler{
		tracker: tracker,
		logger:  logger,
	}
}

// Start godoc
// @Summary Начать навигацию к цели
// @Description Заменяет активную навигацию устройства, если она есть
// @Tags Navigation
// @Accept json
// @Produce json
// @Param request body dto.StartNavigationRequest true "Цель и текущая позиция"
// @Success 201 {object} utils.SuccessResponse{data=domain.NavigationSession}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 401 {object} utils.ErrorResponse
// @Security BearerAuth
// @Router /api/v1/navigation/start [post]
func (h *NavigationHandler) Start(c *fiber.Ctx) error {
	var req dto.StartNavigationRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.SendError(c, errors.ErrInvalidRequest)
	}
	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, err)
	}
	deviceID, err := resolveDeviceID(c, req.DeviceID)
	if err != nil {
		return utils.SendError(c, err)
	}

	session, err := h.tracker.Start(deviceID, domain.Target{
		Name:       req.TargetName,
		Coordinate: req.Target.Coordinate(),
	}, req.Current.Coordinate())
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendCreated(c, session)
}

// Update godoc
// @Summary Новая позиция для активной навигации
// @Tags Navigation
// @Accept json
// @Produce json
// @Param request body dto.UpdateNavigationRequest true "Текущая позиция"
// @Success 200 {object} utils.SuccessResponse{data=domain.NavigationUpdate}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Security BearerAuth
// @Router /api/v1/navigation/update [post]
func (h *NavigationHandler) Update(c *fiber.Ctx) error {
	var req dto.UpdateNavigationRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.SendError(c, errors.ErrInvalidRequest)
	}
	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, err)
	}
	deviceID, err := resolveDeviceID(c, req.DeviceID)
	if err != nil {
		return utils.SendError(c, err)
	}

	update, err := h.tracker.Update(deviceID, req.Current.Coordinate())
	if err != nil {
		return utils.SendError(c, err)
	}
	if update == nil {
		return utils.SendError(c, errors.ErrNoActiveSession)
	}

	return utils.SendSuccess(c, update, nil)
}

// Stop godoc
// @Summary Остановить навигацию
// @Tags Navigation
// @Accept json
// @Produce json
// @Param request body dto.StopNavigationRequest true "Устройство и причина"
// @Success 200 {object} utils.SuccessResponse{data=dto.StopNavigationResponse}
// @Failure 404 {object} utils.ErrorResponse
// @Security BearerAuth
// @Router /api/v1/navigation/stop [post]
func (h *NavigationHandler) Stop(c *fiber.Ctx) error {
	var req dto.StopNavigationRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.SendError(c, errors.ErrInvalidRequest)
	}
	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, err)
	}
	deviceID, err := resolveDeviceID(c, req.DeviceID)
	if err != nil {
		return utils.SendError(c, err)
	}

	reason := req.Reason
	if reason == "" {
		reason = domain.StopReasonManual
	}
	if !h.tracker.Stop(deviceID, reason) {
		return utils.SendError(c, errors.ErrNoActiveSession)
	}

	return utils.SendSuccess(c, dto.StopNavigationResponse{
		DeviceID: deviceID,
		Stopped:  true,
		Reason:   reason,
	}, nil)
}

// Status godoc
// @Summary Состояние трекера
// @Tags Navigation
// @Produce json
// @Success 200 {object} utils.SuccessResponse{data=domain.TrackerStatus}
// @Router /api/v1/navigation/status [get]
func (h *NavigationHandler) Status(c *fiber.Ctx) error {
	status := h.tracker.Status()
	return utils.SendSuccess(c, status, &utils.Meta{
		Total: status.ActiveCount,
	})
}

// Get godoc
// @Summary Навигация устройства
// @Tags Navigation
// @Produce json
// @Param deviceId path string true "Идентификатор устройства"
// @Success 200 {object} utils.SuccessResponse{data=domain.NavigationSession}
// @Failure 404 {object} utils.ErrorResponse
// @Security BearerAuth
// @Router /api/v1/navigation/{deviceId} [get]
func (h *NavigationHandler) Get(c *fiber.Ctx) error {
	deviceID, err := resolveDeviceID(c, c.Params("deviceId"))
	if err != nil {
		return utils.SendError(c, err)
	}

	session, ok := h.tracker.Get(deviceID)
	if !ok {
		return utils.SendError(c, errors.ErrNoActiveSession)
	}

	return utils.SendSuccess(c, session, nil)
}

// SetThresholds godoc
// @Summary Изменить пороги трекера
// @Description Нулевые значения оставляют текущие пороги
// @Tags Navigation
// @Accept json
// @Produce json
// @Param request body dto.ThresholdsRequest true "Пороги"
// @Success 200 {object} utils.SuccessResponse{data=domain.NavigationThresholds}
// @Failure 400 {object} utils.ErrorResponse
// @Router /api/v1/navigation/thresholds [put]
func (h *NavigationHandler) SetThresholds(c *fiber.Ctx) error {
	var req dto.ThresholdsRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.SendError(c, errors.ErrInvalidRequest)
	}
	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, err)
	}

	if err := h.tracker.SetThresholds(req.Thresholds()); err != nil {
		return utils.SendError(c, err)
	}

	h.logger.Info("Navigation thresholds updated",
		zap.Float64("distance_change_meters", req.DistanceChangeMeters),
		zap.Int("announce_interval_seconds", req.AnnounceIntervalSeconds),
		zap.Float64("arrival_meters", req.ArrivalMeters))

	return utils.SendSuccess(c, h.tracker.Thresholds(), nil)
}
