package middleware

import (
	"github.com/gofiber/fiber/v2"

	"github.com/safety-navigator/internal/pkg/auth"
	"github.com/safety-navigator/internal/pkg/errors"
	"github.com/safety-navigator/internal/pkg/utils"
)

// DeviceIDLocal - ключ c.Locals с device_id из токена
const DeviceIDLocal = "device_id"

// DeviceAuth проверяет Bearer токен устройства. signer nil - проверка выключена.
func DeviceAuth(signer *auth.Signer) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if signer == nil {
			return c.Next()
		}

		claims, err := signer.ParseAuthorizationHeader(c.Get(fiber.HeaderAuthorization))
		if err != nil {
			return utils.SendError(c, errors.ErrUnauthorized)
		}

		c.Locals(DeviceIDLocal, claims.DeviceID)
		return c.Next()
	}
}

// TokenDeviceID возвращает device_id из токена, пусто если проверка выключена
func TokenDeviceID(c *fiber.Ctx) string {
	id, _ := c.Locals(DeviceIDLocal).(string)
	return id
}
