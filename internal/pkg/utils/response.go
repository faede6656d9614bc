package utils

import (
	stderrors "errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/safety-navigator/internal/pkg/errors"
)

type SuccessResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data"`
	Meta    *Meta       `json:"meta,omitempty"`
}

type ErrorResponse struct {
	Success bool             `json:"success"`
	Error   *errors.AppError `json:"error"`
}

type Meta struct {
	Total    int     `json:"total,omitempty"`
	Limit    int     `json:"limit,omitempty"`
	TimeMSec float64 `json:"time_ms,omitempty"`
}

func SendSuccess(c *fiber.Ctx, data interface{}, meta *Meta) error {
	return c.JSON(SuccessResponse{
		Success: true,
		Data:    data,
		Meta:    meta,
	})
}

func SendCreated(c *fiber.Ctx, data interface{}) error {
	return c.Status(fiber.StatusCreated).JSON(SuccessResponse{
		Success: true,
		Data:    data,
	})
}

func SendError(c *fiber.Ctx, err error) error {
	if appErr, ok := errors.As(err); ok {
		return c.Status(appErr.StatusCode).JSON(ErrorResponse{
			Error: appErr,
		})
	}

	var validationErrs validator.ValidationErrors
	if stderrors.As(err, &validationErrs) {
		return SendError(c, ValidationError(validationErrs))
	}

	// Unknown error - return 500
	return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{
		Error: errors.ErrInternalServer,
	})
}

// ValidationError переводит ошибки validator в INVALID_REQUEST с перечнем полей
func ValidationError(errs validator.ValidationErrors) *errors.AppError {
	fields := make(map[string]interface{}, len(errs))
	for _, fe := range errs {
		fields[fe.Namespace()] = fe.Tag()
	}
	return errors.ErrInvalidRequest.WithDetails(map[string]interface{}{
		"fields": fields,
	})
}
