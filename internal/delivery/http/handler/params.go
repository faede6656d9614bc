package handler

import (
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/safety-navigator/internal/delivery/http/middleware"
	"github.com/safety-navigator/internal/pkg/errors"
)

// queryFloat - обязательный числовой query параметр
func queryFloat(c *fiber.Ctx, key string) (float64, error) {
	raw := strings.TrimSpace(c.Query(key))
	if raw == "" {
		return 0, errors.ErrInvalidCoordinates.WithMessage("missing query parameter: " + key)
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, errors.ErrInvalidCoordinates.WithMessage("invalid number in query parameter: " + key)
	}
	return v, nil
}

// queryPair читает пару координат, например lat и lng
func queryPair(c *fiber.Ctx, latKey, lngKey string) (float64, float64, error) {
	lat, err := queryFloat(c, latKey)
	if err != nil {
		return 0, 0, err
	}
	lng, err := queryFloat(c, lngKey)
	if err != nil {
		return 0, 0, err
	}
	return lat, lng, nil
}

// resolveDeviceID сверяет устройство из запроса с токеном.
// Без device_id в запросе берется устройство из токена.
func resolveDeviceID(c *fiber.Ctx, requested string) (string, error) {
	tokenID := middleware.TokenDeviceID(c)
	if tokenID == "" {
		return requested, nil
	}
	if requested == "" {
		return tokenID, nil
	}
	if requested != tokenID {
		return "", errors.ErrForbidden
	}
	return requested, nil
}
