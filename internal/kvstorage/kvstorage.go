// Package kvstorage defines the key-value store contract shared by the
// action executor and the file-backed implementation.
package kvstorage

import "io"

// KVStore holds every entry in memory for the lifetime of one command.
// The backing file is read once when the store is opened and written once
// when it is closed.
type KVStore interface {
	// Get returns the value for key and whether it was present.
	Get(key string) (string, bool)

	// Insert stores value under key, replacing any previous value.
	// Callers decide whether overwriting is allowed.
	Insert(key, value string)

	// Delete removes key and returns its previous value, if any.
	Delete(key string) (string, bool)

	// Exists reports whether key is present.
	Exists(key string) bool

	// IsEmpty reports whether the store holds no entries.
	IsEmpty() bool

	// Count returns the number of entries.
	Count() int

	// GetAll returns the encoded dump of every entry, or false when the
	// store is empty.
	GetAll() (string, bool)

	// Clear removes every entry.
	Clear()

	// Close writes the entries back to disk and releases the store.
	io.Closer
}

// ValidateKey checks that key can be represented in the database file.
// Keys may not contain a tab or a line break. The empty key is allowed.
func ValidateKey(key string) error {
	for _, r := range key {
		switch r {
		case '\t', '\n', '\r':
			return ErrInvalidKey
		}
	}
	return nil
}

// ValidateValue checks that value fits on a single line of the database file.
func ValidateValue(value string) error {
	for _, r := range value {
		if r == '\n' || r == '\r' {
			return ErrInvalidValue
		}
	}
	return nil
}
