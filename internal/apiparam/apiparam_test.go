package apiparam

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestNew(t *testing.T) {
	type testcase struct {
		name        string
		input       any
		expectValue string
		expectDrop  bool
	}

	var nilstring *string
	var nilmap map[string]string
	page := 3

	cases := []testcase{{
		name:        "string value",
		input:       "flickr.test.null",
		expectValue: "flickr.test.null",
	}, {
		name:        "integer value",
		input:       42,
		expectValue: "42",
	}, {
		name:        "boolean value",
		input:       true,
		expectValue: "true",
	}, {
		name:        "pointer to integer",
		input:       &page,
		expectValue: "3",
	}, {
		name:        "empty string is kept",
		input:       "",
		expectValue: "",
	}, {
		name:       "nil value",
		input:      nil,
		expectDrop: true,
	}, {
		name:       "typed nil pointer",
		input:      nilstring,
		expectDrop: true,
	}, {
		name:       "nil map",
		input:      nilmap,
		expectDrop: true,
	}}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p, err := New("foo", tc.input)
			if err != nil {
				t.Fatal(err)
			}
			if p.Name() != "foo" {
				t.Fatal("unexpected name", p.Name())
			}
			if diff := cmp.Diff(tc.expectValue, p.Value()); diff != "" {
				t.Fatal(diff)
			}
			if p.Dropped() != tc.expectDrop {
				t.Fatal("unexpected dropped flag", p.Dropped())
			}
		})
	}

	t.Run("empty name", func(t *testing.T) {
		p, err := New("", "bar")
		if !errors.Is(err, ErrEmptyName) {
			t.Fatal("unexpected error", err)
		}
		if p != nil {
			t.Fatal("expected nil parameter")
		}
	})
}

func TestMustNew(t *testing.T) {
	t.Run("panics on empty name", func(t *testing.T) {
		var got any
		func() {
			defer func() {
				got = recover()
			}()
			MustNew("", "bar")
		}()
		if !errors.Is(got.(error), ErrEmptyName) {
			t.Fatal("unexpected panic value", got)
		}
	})
}

func TestList(t *testing.T) {
	var list List
	for _, entry := range []struct {
		name  string
		value any
	}{
		{"method", "flickr.test.null"},
		{"user_id", nil},
		{"api_key", "ABC"},
	} {
		if err := list.Add(entry.name, entry.value); err != nil {
			t.Fatal(err)
		}
	}

	t.Run("Kept preserves order and skips dropped", func(t *testing.T) {
		var got []string
		for _, p := range list.Kept() {
			got = append(got, p.String())
		}
		expect := []string{"method=flickr.test.null", "api_key=ABC"}
		if diff := cmp.Diff(expect, got); diff != "" {
			t.Fatal(diff)
		}
	})

	t.Run("Lookup", func(t *testing.T) {
		if v, ok := list.Lookup("api_key"); !ok || v != "ABC" {
			t.Fatal("unexpected lookup result", v, ok)
		}
		if _, ok := list.Lookup("user_id"); ok {
			t.Fatal("dropped parameters should not be found")
		}
	})

	t.Run("Add with empty name", func(t *testing.T) {
		if err := list.Add("", 1); !errors.Is(err, ErrEmptyName) {
			t.Fatal("unexpected error", err)
		}
	})
}
