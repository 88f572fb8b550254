// internal/app/system/apiclient/errors.go
package apiclient

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrUnauthorized is matched (via errors.Is) by any 401 response.
	ErrUnauthorized = errors.New("apiclient: unauthorized")

	// ErrUnavailable is returned by a client that has no base URL configured.
	ErrUnavailable = errors.New("apiclient: service not configured")

	// ErrNoListData is returned when a list endpoint answers with an object
	// that has no "data" key.
	ErrNoListData = errors.New("apiclient: list response has no data")
)

// StatusError describes a non-2xx response from a backend service.
type StatusError struct {
	Service string
	Method  string
	Path    string
	Code    int
	Body    string // truncated response body, for logs only
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s %s %s: %d %s", e.Service, e.Method, e.Path, e.Code, http.StatusText(e.Code))
}

// Is lets errors.Is(err, ErrUnauthorized) match 401 responses.
func (e *StatusError) Is(target error) bool {
	return target == ErrUnauthorized && e.Code == http.StatusUnauthorized
}

// IsUnauthorized reports whether err (or anything it wraps) is a 401.
func IsUnauthorized(err error) bool {
	return errors.Is(err, ErrUnauthorized)
}

// StatusCode returns the backend status code carried by err, or 0.
func StatusCode(err error) int {
	var se *StatusError
	if errors.As(err, &se) {
		return se.Code
	}
	return 0
}
