// Package identifier validates untrusted numeric identifier strings
// before they reach the data layer.
//
// Validation is string-preserving: the validated identifier is returned
// as the original digit string, not converted to an integer, so exact
// textual identity survives until the data layer parses it.
package identifier

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/edustack/admin-api/internal/errs"
)

// MaxDigits caps identifier length. Fifteen digits keeps every accepted
// value comfortably inside the 64-bit integer range.
const MaxDigits = 15

// Validate checks a raw identifier string and returns it unchanged on
// success. label names the parameter in error messages ("id",
// "causeId"). Checks run in order: empty/whitespace, non-digit
// characters, length, leading zero, 64-bit representability.
func Validate(raw, label string) (string, error) {
	if strings.TrimSpace(raw) == "" {
		return "", errs.NewValidationError(
			errs.InvalidFormat,
			label,
			fmt.Sprintf("%s is required", label),
		)
	}

	if !isDigits(raw) {
		return "", invalidFormat(raw, label)
	}

	if len(raw) > MaxDigits {
		return "", invalidFormat(raw, label)
	}

	// "007" and "0" are different identifiers to a string comparison
	// but the same number; reject the ambiguous form.
	if len(raw) > 1 && raw[0] == '0' {
		return "", invalidFormat(raw, label)
	}

	if _, err := strconv.ParseInt(raw, 10, 64); err != nil {
		return "", invalidFormat(raw, label)
	}

	return raw, nil
}

func isDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

func invalidFormat(raw, label string) *errs.ValidationError {
	return errs.NewValidationError(
		errs.InvalidFormat,
		label,
		fmt.Sprintf("%s must be a valid numeric identifier", label),
	)
}
