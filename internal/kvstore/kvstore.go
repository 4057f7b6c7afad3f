// Package kvstore contains key-value stores used to persist credentials.
package kvstore

import (
	"errors"
	"regexp"
)

// ErrNoSuchKey indicates that there's no value for the given key.
var ErrNoSuchKey = errors.New("no such key")

// ErrInvalidKey indicates that a key cannot be used as a file name.
var ErrInvalidKey = errors.New("invalid key")

// validKey matches keys usable as plain file names.
var validKey = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9._-]*$`)
