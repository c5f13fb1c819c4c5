package omdb

import (
	"fmt"
	"strings"
)

// HTTPStatusError is returned when the API answers with a status other than 200.
type HTTPStatusError struct {
	StatusCode int
	Status     string
	// UpstreamError is the Error field of the response body, when the body
	// could be decoded as a search response.
	UpstreamError string
}

func (e *HTTPStatusError) Error() string {
	if e == nil {
		return "unexpected http status"
	}

	if upstream := strings.TrimSpace(e.UpstreamError); upstream != "" {
		return upstream
	}

	return fmt.Sprintf("unexpected http status %d", e.StatusCode)
}
