package llm

import (
	"errors"
	"fmt"
)

var (
	// ErrOllamaUnavailable indicates the Ollama server is unreachable.
	ErrOllamaUnavailable = errors.New("ollama server unavailable")

	// ErrTimeout indicates the chat request exceeded the configured timeout.
	ErrTimeout = errors.New("llm request timed out")

	// ErrBackendStatus indicates the backend answered with a non-success status.
	ErrBackendStatus = errors.New("ollama returned non-success status")

	// ErrInvalidOutput indicates the model response could not be parsed
	// into the expected structured format.
	ErrInvalidOutput = errors.New("invalid llm output format")

	// ErrRetryExhausted indicates all retry attempts have been exhausted.
	ErrRetryExhausted = errors.New("llm retry attempts exhausted")
)

// StatusError carries the status code and body of a failed backend call.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("ollama error: %d %s", e.StatusCode, e.Body)
}

func (e *StatusError) Unwrap() error { return ErrBackendStatus }

// Temporary reports whether the failure is worth retrying (5xx and 429).
func (e *StatusError) Temporary() bool {
	return e.StatusCode >= 500 || e.StatusCode == 429
}
