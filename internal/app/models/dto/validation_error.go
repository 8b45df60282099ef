package dto

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
)

// HandleValidationError converts a binding/validation error into an
// ErrorDetail with per-field messages where available.
func HandleValidationError(err error) *ErrorDetail {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return NewErrorDetail(ErrorCodeValidationFailed, "Invalid request format").WithDetails(err.Error())
	}

	messages := make([]string, 0, len(validationErrors))
	for _, fieldErr := range validationErrors {
		messages = append(messages, formatFieldError(fieldErr))
	}

	detail := NewErrorDetail(ErrorCodeValidationFailed, "Validation failed")
	detail = detail.WithDetails(strings.Join(messages, "; "))
	if len(validationErrors) == 1 {
		detail = detail.WithField(validationErrors[0].Field())
	}
	return detail
}

// formatFieldError creates a human-readable validation error message
func formatFieldError(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return e.Field() + " is required"
	case "min":
		return e.Field() + " must be at least " + e.Param()
	case "max":
		return e.Field() + " must be at most " + e.Param()
	case "email":
		return e.Field() + " must be a valid email address"
	case "oneof":
		return e.Field() + " must be one of: " + e.Param()
	default:
		return e.Field() + " validation failed: " + e.Tag()
	}
}
