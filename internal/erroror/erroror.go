// Package erroror contains code to represent an error or a value.
package erroror

// Value represents an error or a value.
//
// The zero value is a successful zero Type.
type Value[Type any] struct {
	Err   error
	Value Type
}

// Ok returns a successful [*Value] wrapping v.
func Ok[Type any](v Type) *Value[Type] {
	return &Value[Type]{Value: v}
}

// Fail returns a failed [*Value] wrapping err.
func Fail[Type any](err error) *Value[Type] {
	return &Value[Type]{Err: err}
}

// Unwrap returns the value and the error in the conventional order.
func (v *Value[Type]) Unwrap() (Type, error) {
	return v.Value, v.Err
}
