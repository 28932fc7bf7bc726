package pokeapi

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned when the requested resource does not exist
	// upstream. Callers surface it unchanged; it is never cached.
	ErrNotFound = errors.New("pokeapi: resource not found")

	// ErrRateLimited is returned when the upstream API throttles us.
	ErrRateLimited = errors.New("pokeapi: rate limit exceeded")
)

// ConnectionError reports a transport level failure reaching the API. An
// open circuit breaker surfaces as a ConnectionError as well.
type ConnectionError struct {
	Err error
}

func (e *ConnectionError) Error() string {
	return fmt.Sprintf("pokeapi: connection failed: %v", e.Err)
}

func (e *ConnectionError) Unwrap() error {
	return e.Err
}

// ResponseError reports an error status the client has no sentinel for.
type ResponseError struct {
	StatusCode int
	Body       string
}

func (e *ResponseError) Error() string {
	return fmt.Sprintf("pokeapi: HTTP %d: %s", e.StatusCode, e.Body)
}
