package errors

import (
	"strings"
	"unicode"
)

// MaxElementIDLength is the longest identifier accepted by ValidateElementID.
const MaxElementIDLength = 256

// ValidateElementID validates an element identifier taken from user input.
//
// The validation rules are intentionally conservative:
//   - No empty identifiers
//   - No leading or trailing whitespace
//   - No control characters or null bytes
//   - Maximum length of 256 bytes
//
// The ordering engine itself accepts any string; this check guards the
// manifest and HTTP layers where identifiers end up in logs, cache keys
// and DOT output.
func ValidateElementID(id string) error {
	if id == "" {
		return New(ErrCodeInvalidElementID, "element id cannot be empty")
	}

	if len(id) > MaxElementIDLength {
		return New(ErrCodeInvalidElementID, "element id too long (max %d characters)", MaxElementIDLength)
	}

	if strings.TrimSpace(id) != id {
		return New(ErrCodeInvalidElementID, "element id %q has leading or trailing whitespace", id)
	}

	for _, r := range id {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidElementID, "element id %q contains invalid control characters", id)
		}
	}

	return nil
}

// ValidateOneOf checks that value is one of the allowed values.
// It is used for enumerated options such as output formats and strategies.
func ValidateOneOf(code Code, name, value string, allowed ...string) error {
	for _, a := range allowed {
		if value == a {
			return nil
		}
	}
	return New(code, "invalid %s %q (want one of: %s)", name, value, strings.Join(allowed, ", "))
}
