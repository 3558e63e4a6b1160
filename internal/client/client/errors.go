package client

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/k4jlpg/inventory/internal/common"
)

var (
	ErrUnavailable  = fmt.Errorf("%w: server unavailable", common.ErrNetwork)
	ErrBadResponse  = fmt.Errorf("%w: malformed server response", common.ErrNetwork)
	ErrUnauthorized = common.ErrUnauthorized
)

// APIError is a non-2xx answer from the remote service. Message holds the
// server provided error text when there was one.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("request failed with status %d", e.StatusCode)
}

// Is lets callers match API errors against the common taxonomy.
func (e *APIError) Is(target error) bool {
	switch target {
	case common.ErrNetwork:
		return true
	case common.ErrUnauthorized:
		return e.StatusCode == http.StatusUnauthorized || e.StatusCode == http.StatusForbidden
	case common.ErrNotFound:
		return e.StatusCode == http.StatusNotFound
	case common.ErrValidation:
		return e.StatusCode == http.StatusBadRequest
	}
	return false
}

// Message extracts a display message from err, preferring the server text.
func Message(err error) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Error()
	}
	return err.Error()
}
