package validator

import (
	"regexp"

	"github.com/go-playground/validator/v10"
)

var validate *validator.Validate

var deviceIDPattern = regexp.MustCompile(`^[A-Za-z0-9._:-]{1,128}$`)

func init() {
	validate = validator.New()
	_ = validate.RegisterValidation("device_id", func(fl validator.FieldLevel) bool {
		return deviceIDPattern.MatchString(fl.Field().String())
	})
}

// Validate - валидация структуры
func Validate(s interface{}) error {
	return validate.Struct(s)
}

// GetValidator - получить валидатор для кастомной конфигурации
func GetValidator() *validator.Validate {
	return validate
}
