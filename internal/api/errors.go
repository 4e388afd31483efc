package api

import (
	"errors"
	"fmt"
)

// ErrNotFound indicates the requested photo or album does not exist
var ErrNotFound = errors.New("photo not found")

// ErrRateLimited indicates the photo service asked us to slow down
var ErrRateLimited = errors.New("photo service rate limit exceeded")

// ServerError represents a 5xx error from the photo service
type ServerError struct {
	StatusCode int
}

func (e *ServerError) Error() string {
	return fmt.Sprintf("photo service error: HTTP %d", e.StatusCode)
}
