package validator

import (
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
)

const (
	ErrRequired   = "is required"
	ErrMinValue   = "must be at least %s"
	ErrMaxValue   = "must be at most %s"
	ErrMinItems   = "must contain at least %s item(s)"
	ErrMaxLength  = "must be at most %s characters long"
	ErrNotInPast  = "must not be in the past"
	ErrInvalidVal = "is invalid"
)

func NewValidator() *validator.Validate {
	validator := validator.New(validator.WithRequiredStructEnabled())

	validator.RegisterValidation("notpast", validateNotPast)

	return validator
}

// validateNotPast accepts times that are not before the current time.
func validateNotPast(fl validator.FieldLevel) bool {
	t, ok := fl.Field().Interface().(time.Time)
	if !ok {
		return false
	}

	return !t.Before(time.Now())
}

// ValidationMessage converts validator errors into readable messages
func ValidationMessage(err validator.FieldError) string {
	switch err.Tag() {
	case "required":
		return ErrRequired
	case "min":
		if err.Kind().String() == "slice" {
			return fmt.Sprintf(ErrMinItems, err.Param())
		}
		return fmt.Sprintf(ErrMinValue, err.Param())
	case "max":
		if err.Kind().String() == "string" {
			return fmt.Sprintf(ErrMaxLength, err.Param())
		}
		return fmt.Sprintf(ErrMaxValue, err.Param())
	case "notpast":
		return ErrNotInPast
	default:
		return ErrInvalidVal
	}
}
