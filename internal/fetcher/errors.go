package fetcher

import (
	"errors"
	"fmt"
)

// ErrTimeout is the distinct, user-readable error kind for a request that
// hit its hard timeout, as opposed to a generic network failure.
var ErrTimeout = errors.New("request timed out")

// StatusError is a non-2xx response from the API. Client errors (4xx)
// are terminal: retrying cannot fix a bad request or a missing game.
type StatusError struct {
	Code   int
	Reason string
}

func (e *StatusError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("api error %d: %s", e.Code, e.Reason)
	}
	return fmt.Sprintf("api error %d", e.Code)
}

// IsNotFound reports whether err is a 404 from the API.
func IsNotFound(err error) bool {
	var se *StatusError
	return errors.As(err, &se) && se.Code == 404
}

func isRetryable(err error) bool {
	if errors.Is(err, ErrTimeout) {
		return false
	}
	var se *StatusError
	if errors.As(err, &se) {
		return se.Code >= 500
	}
	return true
}
