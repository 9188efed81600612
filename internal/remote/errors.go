package remote

import (
	"errors"
	"fmt"
)

// Failure taxonomy for upstream fetches. The client never retries; callers
// decide policy from the error kind.
var (
	// ErrUnreachable: no HTTP response at all (DNS, connect, reset).
	ErrUnreachable = errors.New("remote: upstream unreachable")
	// ErrTimeout: the request exceeded its deadline. Distinct from
	// ErrUnreachable so callers can apply backoff selectively.
	ErrTimeout = errors.New("remote: request timed out")
	// ErrMalformedBody: 2xx response whose body is missing or undecodable.
	ErrMalformedBody = errors.New("remote: malformed response body")
)

// StatusError is a non-2xx upstream response.
type StatusError struct {
	Code int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("remote: unexpected status %d", e.Code)
}

// IsTransient reports whether err may succeed on a later identical call.
func IsTransient(err error) bool {
	if errors.Is(err, ErrUnreachable) || errors.Is(err, ErrTimeout) {
		return true
	}
	var se *StatusError
	return errors.As(err, &se) && se.Code >= 500
}
