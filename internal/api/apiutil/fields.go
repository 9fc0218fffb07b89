package apiutil

import (
	"strings"

	"github.com/codr1/habitgrid/internal/calendar"
)

// ParseDayField parses a YYYY-MM-DD value. A blank value is a missing
// field.
func ParseDayField(raw string, field string) (calendar.Day, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return calendar.Day{}, FieldError{Field: field, Reason: "is required"}
	}
	day, err := calendar.ParseDay(raw)
	if err != nil {
		return calendar.Day{}, FieldError{Field: field, Reason: "must be a date like 2006-01-02"}
	}
	return day, nil
}

// ParseIDField trims and requires an opaque identifier.
func ParseIDField(raw string, field string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", FieldError{Field: field, Reason: "is required"}
	}
	if len(raw) > 128 || strings.ContainsAny(raw, "/?#") {
		return "", FieldError{Field: field, Reason: "is not a valid identifier"}
	}
	return raw, nil
}
