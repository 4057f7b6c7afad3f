package asyncx

// Result is the outcome of a call, tagged with the call's [Token].
//
// Value is meaningful iff Success is true, Err iff Success is false.
type Result[T any] struct {
	Token   Token
	Success bool
	Value   T
	Err     error
}

// Succeeded returns a successful [Result].
func Succeeded[T any](token Token, value T) Result[T] {
	return Result[T]{Token: token, Success: true, Value: value}
}

// Failed returns a failed [Result]. A nil err is replaced with [ErrUnknown]
// so that a failed result always carries an error.
func Failed[T any](token Token, err error) Result[T] {
	if err == nil {
		err = ErrUnknown
	}
	return Result[T]{Token: token, Err: err}
}

// Unwrap returns the value or the error carried by the result.
func (r Result[T]) Unwrap() (T, error) {
	if !r.Success {
		var zero T
		return zero, r.Err
	}
	return r.Value, nil
}
