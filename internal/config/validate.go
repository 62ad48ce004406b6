package config

import (
	"fmt"
	"sort"
	"strings"
)

// validValues maps known keys to their allowed values.
// An empty slice means any non-empty string is accepted.
var validValues = map[string][]string{
	KeyDatabasePath: {},
	KeyLogLevel:     {"trace", "debug", "info", "warn", "error", "fatal", "panic", "disabled"},
	KeyOutputColor:  {"auto", "always", "never"},
}

// IsKnownKey reports whether key is a recognised config key.
func IsKnownKey(key string) bool {
	_, ok := validValues[key]
	return ok
}

// KnownKeys returns the recognised config keys in sorted order.
func KnownKeys() []string {
	keys := make([]string, 0, len(validValues))
	for k := range validValues {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// ValidateValue checks a single value for a known key.
func ValidateValue(key, val string) error {
	allowed, ok := validValues[key]
	if !ok {
		return fmt.Errorf("unknown config key %q (known: %s)", key, strings.Join(KnownKeys(), ", "))
	}
	if len(allowed) > 0 {
		if !contains(allowed, val) {
			return fmt.Errorf("%s: invalid value %q (allowed: %s)", key, val, strings.Join(allowed, ", "))
		}
		return nil
	}
	if val == "" {
		return fmt.Errorf("%s: value cannot be empty", key)
	}
	return nil
}

// Validate checks all values in values for known keys. It returns an error
// describing every invalid value found, or nil if all values are valid.
func Validate(values map[string]string) error {
	var errs []string
	for _, key := range KnownKeys() {
		val, ok := values[key]
		if !ok {
			continue
		}
		if err := ValidateValue(key, val); err != nil {
			errs = append(errs, err.Error())
		}
	}

	if len(errs) == 0 {
		return nil
	}
	return fmt.Errorf("config validation failed:\n  %s", strings.Join(errs, "\n  "))
}

func contains(ss []string, s string) bool {
	for _, v := range ss {
		if v == s {
			return true
		}
	}
	return false
}
