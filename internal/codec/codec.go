// Package codec reads and writes the line-oriented database file format.
//
// Each entry occupies one line:
//
//	#-#<key><TAB><value>\n
//
// Lines without a TAB are ignored on read and are not preserved on write.
package codec

import (
	"errors"
	"strings"
	"unicode/utf8"
)

const (
	// KeyPrefix marks the start of a key. It is stripped on read.
	KeyPrefix = "#-#"

	// ValuePrefix is reserved for a future value marker and is never emitted.
	ValuePrefix = "#$#"

	// DescriptionPrefix is reserved for entry descriptions and is never emitted.
	DescriptionPrefix = "#&#"

	// Separator splits a key from its value.
	Separator = "\t"
)

// ErrCorrupted is returned when the database contents are not valid UTF-8 text.
var ErrCorrupted = errors.New("database contents are not valid text")

// EncodeEntry formats a single entry as one line, including the trailing newline.
func EncodeEntry(key, value string) string {
	return KeyPrefix + key + Separator + value + "\n"
}

// Encode serializes every entry. Line order follows map iteration and is
// not stable between calls.
func Encode(entries map[string]string) []byte {
	var b strings.Builder
	for k, v := range entries {
		b.WriteString(EncodeEntry(k, v))
	}
	return []byte(b.String())
}

// Decode parses the file contents into a key/value map.
func Decode(data []byte) (map[string]string, error) {
	if !utf8.Valid(data) {
		return nil, ErrCorrupted
	}
	entries := make(map[string]string)
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSuffix(line, "\r")
		rawKey, value, ok := strings.Cut(line, Separator)
		if !ok {
			continue
		}
		entries[strings.Replace(rawKey, KeyPrefix, "", 1)] = value
	}
	return entries, nil
}
