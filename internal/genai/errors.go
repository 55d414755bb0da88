package genai

import (
	"errors"
	"fmt"
)

// APIError is a failed remote call. StatusCode and Status carry the service's
// own classification so callers can pick a backoff profile.
type APIError struct {
	StatusCode int
	Status     string
	Message    string
}

func (e *APIError) Error() string {
	if e.Status != "" {
		return fmt.Sprintf("api error %d (%s): %s", e.StatusCode, e.Status, e.Message)
	}
	return fmt.Sprintf("api error %d: %s", e.StatusCode, e.Message)
}

// IsQuota reports whether err is a rate-limit / quota-exhausted rejection.
func IsQuota(err error) bool {
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		return false
	}
	return apiErr.StatusCode == 429 || apiErr.Status == "RESOURCE_EXHAUSTED"
}

// IsUnavailable reports whether err is a transient service outage.
func IsUnavailable(err error) bool {
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		return false
	}
	return apiErr.StatusCode == 503 || apiErr.Status == "UNAVAILABLE"
}
