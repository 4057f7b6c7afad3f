package asyncx

import "errors"

// ErrUnknown is the error carried by a failed [Result] built with a nil error.
var ErrUnknown = errors.New("asyncx: unknown failure")
