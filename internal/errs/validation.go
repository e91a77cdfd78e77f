package errs

import (
	"fmt"
	"net/http"
)

// ValidationKind classifies why the boundary layer rejected a piece of
// input. The kinds double as machine-readable response codes.
type ValidationKind string

const (
	// InputTooLong: a string exceeded the configured maximum length.
	InputTooLong ValidationKind = "INPUT_TOO_LONG"

	// SuspiciousInputRejected: a string matched an injection signature.
	// These have no safe rewrite, so the whole request is rejected.
	SuspiciousInputRejected ValidationKind = "SUSPICIOUS_INPUT_REJECTED"

	// PrototypePollutionRejected: a record key matched the dangerous-key
	// denylist (__proto__, constructor, prototype).
	PrototypePollutionRejected ValidationKind = "PROTOTYPE_POLLUTION_REJECTED"

	// OutOfRange: a pagination or sort parameter failed strict validation.
	OutOfRange ValidationKind = "OUT_OF_RANGE"

	// InvalidFormat: an identifier or parameter is not in the expected format.
	InvalidFormat ValidationKind = "INVALID_FORMAT"
)

// ValidationError is a boundary-layer rejection. Field carries the path
// of the shallowest offending node ("profile.bio", "lectures[2].title")
// so clients can point at the exact input that failed.
type ValidationError struct {
	Kind    ValidationKind
	Field   string
	Message string
}

// NewValidationError creates a ValidationError.
func NewValidationError(kind ValidationKind, field, message string) *ValidationError {
	return &ValidationError{Kind: kind, Field: field, Message: message}
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Is makes errors.Is match on kind when the target is a *ValidationError
// with the same Kind (or with an empty Kind, matching any).
func (e *ValidationError) Is(target error) bool {
	t, ok := target.(*ValidationError)
	if !ok {
		return false
	}
	return t.Kind == "" || t.Kind == e.Kind
}

// HTTPError converts the rejection into the client-facing error shape:
// a 400 whose code is the validation kind and whose field errors carry
// the offending path.
func (e *ValidationError) HTTPError() *HTTPError {
	var fieldErrors []FieldError
	if e.Field != "" {
		fieldErrors = []FieldError{{Field: e.Field, Error: e.Message}}
	}

	return &HTTPError{
		Code:     string(e.Kind),
		Message:  e.Message,
		Status:   http.StatusBadRequest,
		Override: true,
		Errors:   fieldErrors,
	}
}
