// Package apiparam contains the name/value pairs used to build API requests.
package apiparam

import (
	"errors"
	"fmt"
	"reflect"
)

// ErrEmptyName indicates that a [*Parameter] was created with an empty name.
var ErrEmptyName = errors.New("apiparam: empty parameter name")

// Parameter is an immutable name/value pair used to build a request.
//
// A parameter created from an absent value is "dropped": it is carried along
// with the others so call sites can build lists unconditionally, but it never
// reaches the query string or the signature.
type Parameter struct {
	name    string
	value   string
	dropped bool
}

// New constructs a new [*Parameter]. The value is converted using its default
// string form. A nil value, including a typed nil pointer, map, slice or
// interface, produces a dropped parameter.
func New(name string, value any) (*Parameter, error) {
	if name == "" {
		return nil, ErrEmptyName
	}
	if isNil(value) {
		return &Parameter{name: name, dropped: true}, nil
	}
	return &Parameter{name: name, value: stringify(value)}, nil
}

// MustNew is like [New] but panics on error. Use it with literal names.
func MustNew(name string, value any) *Parameter {
	p, err := New(name, value)
	if err != nil {
		panic(err)
	}
	return p
}

// Name returns the parameter name.
func (p *Parameter) Name() string {
	return p.name
}

// Value returns the parameter value, which is empty when dropped.
func (p *Parameter) Value() string {
	return p.value
}

// Dropped returns whether this parameter must be omitted.
func (p *Parameter) Dropped() bool {
	return p.dropped
}

// String implements fmt.Stringer.
func (p *Parameter) String() string {
	if p.dropped {
		return p.name + "=<dropped>"
	}
	return p.name + "=" + p.value
}

func isNil(value any) bool {
	if value == nil {
		return true
	}
	switch rv := reflect.ValueOf(value); rv.Kind() {
	case reflect.Map, reflect.Pointer, reflect.Slice, reflect.Interface, reflect.Func, reflect.Chan:
		return rv.IsNil()
	}
	return false
}

func stringify(value any) string {
	rv := reflect.ValueOf(value)
	if rv.Kind() == reflect.Pointer {
		return fmt.Sprint(rv.Elem().Interface())
	}
	return fmt.Sprint(value)
}

// List is an ordered collection of parameters. The order reflects
// insertion at the call site, not the signature order.
type List []*Parameter

// Add appends a new parameter to the list.
func (l *List) Add(name string, value any) error {
	p, err := New(name, value)
	if err != nil {
		return err
	}
	*l = append(*l, p)
	return nil
}

// Kept returns the non-dropped parameters in their original order.
func (l List) Kept() List {
	out := make(List, 0, len(l))
	for _, p := range l {
		if p != nil && !p.dropped {
			out = append(out, p)
		}
	}
	return out
}

// Lookup returns the value of the first kept parameter with the given name.
func (l List) Lookup(name string) (string, bool) {
	for _, p := range l.Kept() {
		if p.name == name {
			return p.value, true
		}
	}
	return "", false
}
