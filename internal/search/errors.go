package search

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidQuery marks parameter and filter validation failures
	ErrInvalidQuery = errors.New("invalid query")
	// ErrConfiguration marks a service that cannot be constructed
	ErrConfiguration = errors.New("configuration error")
	// ErrTransport marks a failed call to the SourceStack API
	ErrTransport = errors.New("transport failure")
)

// SearchError is the only error kind returned by Service.
// Err carries the classification sentinel and, for transport failures, the cause.
type SearchError struct {
	Message    string
	StatusCode int
	Err        error
}

func (e *SearchError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("[%d] %s", e.StatusCode, e.Message)
	}
	return e.Message
}

func (e *SearchError) Unwrap() error {
	return e.Err
}

func invalidQuery(format string, args ...any) *SearchError {
	return &SearchError{
		Message: fmt.Sprintf(format, args...),
		Err:     ErrInvalidQuery,
	}
}

func transportFailure(message string, statusCode int, cause error) *SearchError {
	return &SearchError{
		Message:    message,
		StatusCode: statusCode,
		Err:        fmt.Errorf("%w: %w", ErrTransport, cause),
	}
}
