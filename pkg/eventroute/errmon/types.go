package errmon

import (
	"errors"
	"fmt"
)

// ErrNavigationAborted marks a navigation that was intentionally cancelled,
// for example by a redirect. It is never reported.
var ErrNavigationAborted = errors.New("navigation aborted")

// StatusCoder is implemented by errors that carry a numeric status.
type StatusCoder interface {
	StatusCode() int
}

// ResponseTexter is implemented by errors that carry a response body.
// A non-empty response text is preferred over Error() when normalizing.
type ResponseTexter interface {
	ResponseText() string
}

// StatusError represents a failed request with a status code.
type StatusError struct {
	Status   int
	Message  string
	Body     string
	Endpoint string
}

// Error implements the error interface.
func (e *StatusError) Error() string {
	if e.Endpoint != "" {
		return fmt.Sprintf("status %d at %s: %s", e.Status, e.Endpoint, e.Message)
	}
	return fmt.Sprintf("status %d: %s", e.Status, e.Message)
}

// StatusCode returns the status.
func (e *StatusError) StatusCode() int {
	return e.Status
}

// ResponseText returns the response body.
func (e *StatusError) ResponseText() string {
	return e.Body
}

// AdapterError marks an error raised by a data-access adapter. Adapters
// report their own failures, so the monitor skips these.
type AdapterError struct {
	Adapter string
	Err     error
}

// Error implements the error interface.
func (e *AdapterError) Error() string {
	return fmt.Sprintf("adapter %s: %v", e.Adapter, e.Err)
}

// Unwrap returns the underlying error.
func (e *AdapterError) Unwrap() error {
	return e.Err
}

// PanicError wraps a recovered panic value.
type PanicError struct {
	Value any
}

// Error implements the error interface.
func (e *PanicError) Error() string {
	return fmt.Sprintf("panic: %v", e.Value)
}

// Unwrap returns the panic value if it was an error.
func (e *PanicError) Unwrap() error {
	if err, ok := e.Value.(error); ok {
		return err
	}
	return nil
}
