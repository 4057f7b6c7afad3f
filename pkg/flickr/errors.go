package flickr

import (
	"github.com/goflickr/goflickr/internal/apicore"
	"github.com/goflickr/goflickr/internal/httpclientx"
)

// APIError is the error returned when the service replies with stat="fail".
type APIError = apicore.APIError

// ParseError indicates that the response is not a valid envelope or
// lacks the expected payload.
type ParseError = apicore.ParseError

// RequestFailedError indicates that the service returned a non-2xx status.
type RequestFailedError = httpclientx.ErrRequestFailed

// ErrorCode returns the code of err if it is or wraps an [*APIError], and
// zero otherwise.
func ErrorCode(err error) int {
	return apicore.ErrorCode(err)
}
