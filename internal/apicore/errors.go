package apicore

import (
	"errors"
	"fmt"
)

// ErrNilCallback indicates that [*Dispatcher.Invoke] was given a nil callback.
var ErrNilCallback = errors.New("apicore: nil callback")

// ErrNilContext indicates that [*Dispatcher.Invoke] was given a nil context.
var ErrNilContext = errors.New("apicore: nil context")

// APIError is a failure reported by the service in a `stat="fail"` envelope.
type APIError struct {
	// Code is the numeric error code.
	Code int

	// Message is the human readable error message.
	Message string
}

var _ error = &APIError{}

// Error implements error.
func (err *APIError) Error() string {
	return fmt.Sprintf("apicore: API error %d: %s", err.Code, err.Message)
}

// ErrorCode returns the error code of err if it is or wraps an [*APIError],
// and zero otherwise.
func ErrorCode(err error) int {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Code
	}
	return 0
}

// ParseError indicates that the response is not a valid envelope.
type ParseError struct {
	// Reason describes what is wrong with the response.
	Reason string

	// Err is the OPTIONAL underlying error.
	Err error
}

var _ error = &ParseError{}

// Error implements error.
func (err *ParseError) Error() string {
	if err.Err != nil {
		return fmt.Sprintf("apicore: cannot parse response: %s: %s", err.Reason, err.Err.Error())
	}
	return fmt.Sprintf("apicore: cannot parse response: %s", err.Reason)
}

// Unwrap allows using errors.Is and errors.As on the underlying error.
func (err *ParseError) Unwrap() error {
	return err.Err
}
