package handlers

import (
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/finsight/cashflow_backend/internal/core/domain"
)

// RegisterCustomValidations installs engine-specific binding validations on
// gin's validator engine. Must run once before routes are served.
func RegisterCustomValidations() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return nil
	}
	return v.RegisterValidation("flowfrequency", func(fl validator.FieldLevel) bool {
		return domain.IsValidFrequency(domain.Frequency(fl.Field().String()))
	})
}
