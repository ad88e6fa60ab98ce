package model

import "fmt"

// StatusError wraps a non-2xx backend response. Callers treat it like any other
// failure; the status and body are kept for logs.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	if e.Body != "" {
		return fmt.Sprintf("HTTP %d: %s", e.StatusCode, e.Body)
	}
	return fmt.Sprintf("HTTP %d", e.StatusCode)
}
