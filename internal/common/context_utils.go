package common

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// ErrorResponse is the error payload returned by every endpoint.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// SendError maps a service error to its HTTP status and payload.
func SendError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, ErrNotFound):
		return c.JSON(http.StatusNotFound, ErrorResponse{Error: "Not found", Message: err.Error()})
	case errors.Is(err, ErrValidation):
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Validation failed", Message: err.Error()})
	case errors.Is(err, ErrConflict):
		return c.JSON(http.StatusConflict, ErrorResponse{Error: "Conflict", Message: err.Error()})
	default:
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Internal error", Message: err.Error()})
	}
}

// SendClientError sends a 400 with the standard payload.
func SendClientError(c echo.Context, message string) error {
	return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Validation failed", Message: message})
}

// SendNotFoundError sends a 404 for a missing resource.
func SendNotFoundError(c echo.Context, resource string, err error) error {
	return c.JSON(http.StatusNotFound, ErrorResponse{Error: fmt.Sprintf("%s not found", resource), Message: err.Error()})
}

// ValidateUUID parses a path or body identifier.
func ValidateUUID(idStr string, fieldName string) (uuid.UUID, error) {
	idStr = strings.TrimSpace(idStr)
	if idStr == "" {
		return uuid.Nil, Validationf("%s is required", fieldName)
	}
	id, err := uuid.Parse(idStr)
	if err != nil {
		return uuid.Nil, Validationf("%s has invalid UUID format", fieldName)
	}
	return id, nil
}

// ValidatePositiveInteger validates positive integer values with an upper bound.
func ValidatePositiveInteger(value int, fieldName string, maxValue int) error {
	if value <= 0 {
		return Validationf("%s must be positive", fieldName)
	}
	if value > maxValue {
		return Validationf("%s cannot exceed %d", fieldName, maxValue)
	}
	return nil
}

// ValidatePositiveFloat validates positive float values with an upper bound.
func ValidatePositiveFloat(value float64, fieldName string, maxValue float64) error {
	if value <= 0 {
		return Validationf("%s must be positive", fieldName)
	}
	if value > maxValue {
		return Validationf("%s cannot exceed %.2f", fieldName, maxValue)
	}
	return nil
}

// ParseTimestamp accepts RFC3339 timestamps and bare dates, the two
// formats the date-range endpoints take.
func ParseTimestamp(value string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, nil
	}
	if t, err := time.Parse("2006-01-02T15:04:05", value); err == nil {
		return t, nil
	}
	t, err := time.Parse("2006-01-02", value)
	if err != nil {
		return time.Time{}, Validationf("invalid date format: %s", value)
	}
	return t, nil
}

// ValidateDateRange rejects inverted ranges.
func ValidateDateRange(startDate, endDate time.Time) error {
	if endDate.Before(startDate) {
		return Validationf("endDate must not be before startDate")
	}
	return nil
}
