// Package validation holds input checks shared by the descriptor builders
// and the configuration loader.
package validation

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
)

// ErrEmpty is returned for blank input.
var ErrEmpty = errors.New("must not be empty")

// ValidateDisplayText checks a descriptor name or description. The engine
// stores display data as NUL-terminated wide strings, so embedded NUL and
// other control characters are rejected along with blank text.
func ValidateDisplayText(s string) error {
	if strings.TrimSpace(s) == "" {
		return ErrEmpty
	}
	for i, r := range s {
		if r == unicode.ReplacementChar && !strings.HasPrefix(s[i:], "\uFFFD") {
			return fmt.Errorf("invalid UTF-8 at byte %d", i)
		}
		if unicode.IsControl(r) {
			return fmt.Errorf("control character %U at byte %d", r, i)
		}
	}
	return nil
}

// ValidatePath checks a file path taken from configuration.
func ValidatePath(path string) error {
	if path == "" {
		return ErrEmpty
	}

	// Check for null bytes
	if strings.Contains(path, "\x00") {
		return fmt.Errorf("null byte in path")
	}

	if path == ":memory:" {
		return nil
	}

	for _, part := range strings.FieldsFunc(path, func(r rune) bool { return r == '/' || r == '\\' }) {
		if part == ".." {
			return fmt.Errorf("path traversal not allowed: %s", path)
		}
	}
	return nil
}

// ValidateAllowlist checks that value is one of allowed.
func ValidateAllowlist(value string, allowed []string) error {
	for _, a := range allowed {
		if value == a {
			return nil
		}
	}
	return fmt.Errorf("value %q not in allowed list: %v", value, allowed)
}
