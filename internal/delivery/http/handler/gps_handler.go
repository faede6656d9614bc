package handler

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/safety-navigator/internal/domain"
	"github.com/safety-navigator/internal/pkg/errors"
	"github.com/safety-navigator/internal/pkg/utils"
	"github.com/safety-navigator/internal/pkg/validator"
	"github.com/safety-navigator/internal/usecase"
	"github.com/safety-navigator/internal/usecase/dto"
)

// GPSHandler - журнал позиций и компас
type GPSHandler struct {
	gpsUC  *usecase.GPSUseCase
	logger *zap.Logger
}

// NewGPSHandler - создание нового GPSHandler
func NewGPSHandler(gpsUC *usecase.GPSUseCase, logger *zap.Logger) *GPSHandler {
	return &GPSHandler{
		gpsUC:  gpsUC,
		logger: logger,
	}
}

// Record godoc
// @Summary Сохранить позицию устройства
// @Description Позиция передается в активную навигацию устройства
// @Tags GPS
// @Accept json
// @Produce json
// @Param request body dto.RecordFixRequest true "Позиция"
// @Success 201 {object} utils.SuccessResponse{data=dto.RecordFixResponse}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 500 {object} utils.ErrorResponse
// @Security BearerAuth
// @Router /api/v1/gps [post]
func (h *GPSHandler) Record(c *fiber.Ctx) error {
	var req dto.RecordFixRequest
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

	in := req.Input()
	in.DeviceID = deviceID

	result, err := h.gpsUC.RecordFix(c.UserContext(), in)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendCreated(c, result)
}

// Latest godoc
// @Summary Последняя позиция устройства
// @Tags GPS
// @Produce json
// @Param deviceId query string false "Идентификатор устройства"
// @Success 200 {object} utils.SuccessResponse{data=domain.GPSFix}
// @Security BearerAuth
// @Router /api/v1/gps [get]
func (h *GPSHandler) Latest(c *fiber.Ctx) error {
	deviceID, err := resolveDeviceID(c, c.Query("deviceId"))
	if err != nil {
		return utils.SendError(c, err)
	}

	fix, err := h.gpsUC.Latest(c.UserContext(), deviceID)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, fix, nil)
}

// History godoc
// @Summary История позиций устройства
// @Tags GPS
// @Produce json
// @Param deviceId query string false "Идентификатор устройства"
// @Param limit query int false "Количество (до 500)" default(50)
// @Param source query string false "Источники через запятую: ble,device,manual,simulation"
// @Success 200 {object} utils.SuccessResponse{data=dto.GPSHistoryResponse}
// @Failure 400 {object} utils.ErrorResponse
// @Security BearerAuth
// @Router /api/v1/gps/history [get]
func (h *GPSHandler) History(c *fiber.Ctx) error {
	deviceID, err := resolveDeviceID(c, c.Query("deviceId"))
	if err != nil {
		return utils.SendError(c, err)
	}

	var sources []domain.GPSSource
	for _, s := range strings.Split(c.Query("source"), ",") {
		if s = strings.TrimSpace(s); s != "" {
			sources = append(sources, domain.GPSSource(s))
		}
	}

	result, err := h.gpsUC.History(c.UserContext(), deviceID, c.QueryInt("limit", 0), sources)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, result, &utils.Meta{
		Total: len(result.Fixes),
	})
}

// Compass godoc
// @Summary Компас к цели активной навигации
// @Description Сохраняет позицию, возвращает азимут, расстояние и уведомления о безопасности
// @Tags GPS
// @Accept json
// @Produce json
// @Param request body dto.CompassRequest true "Текущая позиция"
// @Success 200 {object} utils.SuccessResponse{data=dto.CompassResponse}
// @Failure 400 {object} utils.ErrorResponse
// @Security BearerAuth
// @Router /api/v1/gps/compass [post]
func (h *GPSHandler) Compass(c *fiber.Ctx) error {
	var req dto.CompassRequest
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

	result, err := h.gpsUC.Compass(c.UserContext(), deviceID, *req.Latitude, *req.Longitude)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, result, nil)
}
