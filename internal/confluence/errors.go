package confluence

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrMalformedResponse indicates a 2xx response without the fields we need.
var ErrMalformedResponse = errors.New("malformed Confluence response")

// APIError is returned for any non-2xx response.
type APIError struct {
	Method     string
	URL        string
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("API request failed with status %d", e.StatusCode)
	}
	return fmt.Sprintf("API request failed with status %d: %s", e.StatusCode, e.Body)
}

func statusOf(err error) int {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode
	}
	return 0
}

// IsConflict reports whether err is a version conflict on update.
func IsConflict(err error) bool {
	return statusOf(err) == http.StatusConflict
}

// IsUnauthorized reports whether Confluence rejected the credentials.
func IsUnauthorized(err error) bool {
	return statusOf(err) == http.StatusUnauthorized
}

// IsNotFound reports whether the page does not exist or is not visible.
func IsNotFound(err error) bool {
	return statusOf(err) == http.StatusNotFound
}
