package config

import (
	"strings"

	"fundwatch/internal/errorwrapper"

	"github.com/go-playground/validator/v10"
)

// ValidateConfig performs validation on the GlobalConfig structure.
func ValidateConfig(cfg *GlobalConfig) error {
	validate := validator.New()

	// Register custom validation for LogLevel
	_ = validate.RegisterValidation("loglevel", func(fl validator.FieldLevel) bool {
		level := strings.ToLower(fl.Field().String())
		switch level {
		case "", "debug", "info", "warn", "error", "fatal", "panic":
			return true
		default:
			return false
		}
	})

	// Register custom validation for LogFormat
	_ = validate.RegisterValidation("logformat", func(fl validator.FieldLevel) bool {
		format := strings.ToLower(fl.Field().String())
		switch format {
		case "", "console", "text", "json":
			return true
		default:
			return false
		}
	})

	// Register custom validation for the extractor strategy name
	_ = validate.RegisterValidation("sourceformat", func(fl validator.FieldLevel) bool {
		format := strings.ToLower(fl.Field().String())
		switch format {
		case "", "listing", "detail", "feed":
			return true
		default:
			return false
		}
	})

	// Register custom validation for the reminder weekday name
	_ = validate.RegisterValidation("weekday", func(fl validator.FieldLevel) bool {
		day := fl.Field().String()
		if day == "" {
			return true
		}
		_, ok := parseWeekday(day)
		return ok
	})

	if err := validate.Struct(cfg); err != nil {
		if fieldErrors, ok := err.(validator.ValidationErrors); ok && len(fieldErrors) > 0 {
			fe := fieldErrors[0]
			return errorwrapper.NewValidationError(fe.Namespace(), fe.Value(), "failed rule '"+fe.Tag()+"'")
		}
		return errorwrapper.WrapError(err, "config validation failed")
	}

	return nil
}
