package habitapi

import (
	"errors"
	"fmt"
	"net/http"
)

var ErrEmptyHabitID = errors.New("habit id is required")

// APIError reports a non-2xx response from the habit API.
type APIError struct {
	Method     string
	Endpoint   string
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("habit api %s %s: status %d", e.Method, e.Endpoint, e.StatusCode)
	}
	return fmt.Sprintf("habit api %s %s: status %d: %s", e.Method, e.Endpoint, e.StatusCode, e.Body)
}

// IsNotFound reports whether err is a 404 from the habit API.
func IsNotFound(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound
}
