package errs

import "strings"

// FieldError is a single field-level validation error.
//
// Example:
//
//	{ "field": "email", "error": "is required" }
type FieldError struct {
	// Field is the field name or path the error relates to
	// (e.g. "email", "profile.bio", "lectures[2].title").
	Field string `json:"field"`

	// Error is the human-readable message.
	Error string `json:"error"`
}

// ActionType is a string enum describing what the client should do next.
type ActionType string

const (
	// ActionTypeRedirect tells the client to redirect; Value holds the target.
	ActionTypeRedirect ActionType = "redirect"
)

// Action is an optional client instruction attached to an error response.
type Action struct {
	Type    ActionType `json:"type"`
	Message string     `json:"message"`
	Value   string     `json:"value"`
}

// HTTPError is the error shape serialized to clients.
//
// Code is a machine-friendly error code (e.g. "BAD_REQUEST",
// "SUSPICIOUS_INPUT_REJECTED"), Message the human-friendly text, and
// Status the HTTP status code the global error handler will write.
// Override lets middleware decide whether the message may be shown to
// end users verbatim.
type HTTPError struct {
	Code     string `json:"code"`
	Message  string `json:"message"`
	Status   int    `json:"status"`
	Override bool   `json:"override"`

	// Errors holds field-level validation errors.
	Errors []FieldError `json:"errors"`

	// Action is an optional client instruction.
	Action *Action `json:"action"`
}

// Error satisfies the built-in error interface.
func (e *HTTPError) Error() string {
	return e.Message
}

// Is makes errors.Is(err, &HTTPError{}) match any *HTTPError.
// It compares type only, not Code or Status.
func (e *HTTPError) Is(target error) bool {
	_, ok := target.(*HTTPError)
	return ok
}

// WithMessage returns a copy of the error with Message replaced,
// leaving the original untouched.
func (e *HTTPError) WithMessage(message string) *HTTPError {
	clone := *e
	clone.Message = message
	return &clone
}

// MakeUpperCaseWithUnderscores converts HTTP status text into a stable
// machine-readable code: "Bad Request" -> "BAD_REQUEST".
func MakeUpperCaseWithUnderscores(str string) string {
	return strings.ToUpper(strings.ReplaceAll(str, " ", "_"))
}
