// Package sanitize implements the ingress half of the boundary
// data-transformation layer.
//
// Every request payload is walked top-down before it reaches business
// logic. Dangerous record keys and injection signatures reject the
// request outright; embedded markup is stripped; oversized strings are
// rejected (or, in the explicitly selected truncating mode, cut down).
// The shallowest offending node wins, and its path is reported back to
// the client.
package sanitize

import (
	"fmt"
	"strings"

	"github.com/edustack/admin-api/internal/errs"
	"github.com/edustack/admin-api/internal/transform"
)

// Mode selects how oversized strings are handled.
//
// The two modes exist because their contracts differ: rejecting is the
// default for request payloads, truncation is reserved for call sites
// that have explicitly opted in (e.g. free-text search). They are never
// mixed implicitly.
type Mode int

const (
	// Reject fails with InputTooLong when a string exceeds the cap.
	Reject Mode = iota

	// Truncate silently cuts oversized strings down to the cap.
	Truncate
)

// Sanitizer walks dynamic payloads and enforces the sanitization
// policy. It holds only immutable state and is safe for concurrent use.
type Sanitizer struct {
	policy Policy
	mode   Mode
}

// NewSanitizer creates a Sanitizer for the given policy and mode.
func NewSanitizer(policy Policy, mode Mode) *Sanitizer {
	return &Sanitizer{policy: policy, mode: mode}
}

// Sanitize walks the payload and returns a cleaned copy, or a
// *errs.ValidationError naming the shallowest offending field.
// The input tree is never mutated.
func (s *Sanitizer) Sanitize(v transform.Value) (transform.Value, error) {
	return s.sanitizeNode(v, "")
}

// SanitizeString applies the scalar pipeline to a single raw string.
// Used for query parameters that never pass through a payload tree.
func (s *Sanitizer) SanitizeString(raw, field string) (string, error) {
	return s.sanitizeString(raw, field)
}

func (s *Sanitizer) sanitizeNode(v transform.Value, path string) (transform.Value, error) {
	switch v.Kind {
	case transform.KindRecord:
		// Keys are checked for the whole record before any value is
		// descended into, so a dangerous key is always reported at the
		// shallowest depth it occurs.
		for key := range v.Rec {
			if _, bad := s.policy.keys[strings.ToLower(key)]; bad {
				return transform.Null(), errs.NewValidationError(
					errs.PrototypePollutionRejected,
					joinPath(path, key),
					fmt.Sprintf("key %q is not allowed", key),
				)
			}
		}

		rec := make(map[string]transform.Value, len(v.Rec))
		for key, item := range v.Rec {
			clean, err := s.sanitizeNode(item, joinPath(path, key))
			if err != nil {
				return transform.Null(), err
			}
			rec[key] = clean
		}
		return transform.Record(rec), nil

	case transform.KindSequence:
		seq := make([]transform.Value, len(v.Seq))
		for i, item := range v.Seq {
			clean, err := s.sanitizeNode(item, fmt.Sprintf("%s[%d]", path, i))
			if err != nil {
				return transform.Null(), err
			}
			seq[i] = clean
		}
		return transform.Sequence(seq...), nil

	case transform.KindString:
		clean, err := s.sanitizeString(v.Str, path)
		if err != nil {
			return transform.Null(), err
		}
		return transform.String(clean), nil

	default:
		// Numbers, booleans and nulls pass through unchanged.
		return v, nil
	}
}

// sanitizeString runs the ordered scalar pipeline: length cap, markup
// stripping, injection signatures, NUL bytes, trim. The length check
// must run first so pattern scanning cost stays bounded.
func (s *Sanitizer) sanitizeString(raw, field string) (string, error) {
	if len(raw) > s.policy.MaxStringLength {
		if s.mode == Truncate {
			raw = raw[:s.policy.MaxStringLength]
		} else {
			return "", errs.NewValidationError(
				errs.InputTooLong,
				field,
				fmt.Sprintf("input exceeds maximum length of %d characters", s.policy.MaxStringLength),
			)
		}
	}

	for _, pattern := range s.policy.markup {
		raw = pattern.ReplaceAllString(raw, "")
	}

	for _, pattern := range s.policy.injection {
		if pattern.MatchString(raw) {
			return "", errs.NewValidationError(
				errs.SuspiciousInputRejected,
				field,
				"input contains a disallowed pattern",
			)
		}
	}

	raw = strings.ReplaceAll(raw, "\x00", "")
	return strings.TrimSpace(raw), nil
}

func joinPath(path, key string) string {
	if path == "" {
		return key
	}
	return path + "." + key
}
