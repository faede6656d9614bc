package handler

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/safety-navigator/internal/pkg/utils"
	"github.com/safety-navigator/internal/usecase"
	"github.com/safety-navigator/internal/usecase/dto"
)

// SafetyHandler - оценка безопасности точек и маршрутов
type SafetyHandler struct {
	safetyUC *usecase.SafetyUseCase
	logger   *zap.Logger
}

// NewSafetyHandler - создание нового SafetyHandler
func NewSafetyHandler(safetyUC *usecase.SafetyUseCase, logger *zap.Logger) *SafetyHandler {
	return &SafetyHandler{
		safetyUC: safetyUC,
		logger:   logger,
	}
}

// AnalyzeLocation godoc
// @Summary Оценка риска точки
// @Description Оценивает риск по объектам карты в радиусе и времени суток. При недоступности источника карты возвращает осторожную оценку 2.0
// @Tags Safety
// @Produce json
// @Param lat query number true "Широта"
// @Param lng query number true "Долгота"
// @Success 200 {object} utils.SuccessResponse{data=domain.LocationRiskResult}
// @Failure 400 {object} utils.ErrorResponse
// @Router /api/v1/safety/analyze-location [get]
func (h *SafetyHandler) AnalyzeLocation(c *fiber.Ctx) error {
	lat, lng, err := queryPair(c, "lat", "lng")
	if err != nil {
		return utils.SendError(c, err)
	}

	result, err := h.safetyUC.AnalyzeLocation(c.UserContext(), lat, lng)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, result, nil)
}

// AnalyzeRoute godoc
// @Summary Оценка риска прямого маршрута
// @Tags Safety
// @Produce json
// @Param fromLat query number true "Широта старта"
// @Param fromLng query number true "Долгота старта"
// @Param toLat query number true "Широта цели"
// @Param toLng query number true "Долгота цели"
// @Success 200 {object} utils.SuccessResponse{data=domain.RouteRiskResult}
// @Failure 400 {object} utils.ErrorResponse
// @Router /api/v1/safety/analyze-route [get]
func (h *SafetyHandler) AnalyzeRoute(c *fiber.Ctx) error {
	fromLat, fromLng, err := queryPair(c, "fromLat", "fromLng")
	if err != nil {
		return utils.SendError(c, err)
	}
	toLat, toLng, err := queryPair(c, "toLat", "toLng")
	if err != nil {
		return utils.SendError(c, err)
	}

	result, err := h.safetyUC.AnalyzeRoute(c.UserContext(), fromLat, fromLng, toLat, toLng)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, result, &utils.Meta{
		Total: len(result.Segments),
	})
}

// CheckDestination godoc
// @Summary Проверка точки назначения
// @Tags Safety
// @Produce json
// @Param lat query number true "Широта"
// @Param lng query number true "Долгота"
// @Success 200 {object} utils.SuccessResponse{data=dto.DestinationCheckResponse}
// @Failure 400 {object} utils.ErrorResponse
// @Router /api/v1/safety/check-destination [get]
func (h *SafetyHandler) CheckDestination(c *fiber.Ctx) error {
	lat, lng, err := queryPair(c, "lat", "lng")
	if err != nil {
		return utils.SendError(c, err)
	}

	result, err := h.safetyUC.CheckDestination(c.UserContext(), lat, lng)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, result, nil)
}

// EmergencyServices godoc
// @Summary Ближайшие экстренные службы
// @Tags Safety
// @Produce json
// @Param lat query number true "Широта"
// @Param lng query number true "Долгота"
// @Param radius query number false "Радиус поиска в метрах (100-5000)" default(1000)
// @Param type query string false "hospital, police, fire_station или all" default(all)
// @Success 200 {object} utils.SuccessResponse{data=dto.EmergencyServicesResponse}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 503 {object} utils.ErrorResponse
// @Router /api/v1/safety/emergency-services [get]
func (h *SafetyHandler) EmergencyServices(c *fiber.Ctx) error {
	lat, lng, err := queryPair(c, "lat", "lng")
	if err != nil {
		return utils.SendError(c, err)
	}

	result, err := h.safetyUC.FindEmergencyServices(c.UserContext(), dto.EmergencyServicesRequest{
		Latitude:  lat,
		Longitude: lng,
		Radius:    c.QueryFloat("radius", 0),
		Type:      c.Query("type", "all"),
	})
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, result, &utils.Meta{
		Total: result.Count,
	})
}
