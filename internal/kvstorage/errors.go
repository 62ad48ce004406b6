package kvstorage

import "errors"

var (
	// ErrClosed is returned when a store is closed more than once.
	ErrClosed = errors.New("store already closed")

	// ErrInvalidKey is returned when a key contains a tab or line break.
	ErrInvalidKey = errors.New("key cannot contain tabs or line breaks")

	// ErrInvalidValue is returned when a value contains a line break.
	ErrInvalidValue = errors.New("value cannot contain line breaks")
)
