// Package errs defines the HTTP error taxonomy and the error envelope.
//
// Every failure a handler can produce is an *HTTPError. The global error
// handler writes it to the client as
//
//	{ "success": false, "error": "<Message>" }
//
// and logs the Code, field errors, and wrapped cause, none of which are
// sent to the client.
package errs

import "strings"

// FieldError represents a field-level validation error.
type FieldError struct {
	// Field is the JSON name of the field (e.g. "texto").
	Field string `json:"field"`

	// Error is the human-readable error message.
	Error string `json:"error"`
}

// HTTPError is the main custom error type for API responses.
//
// Fields:
//   - Code: machine-friendly error code (e.g. "BAD_REQUEST"), logged only.
//   - Message: the message the client sees.
//   - Status: HTTP status code.
//   - Errors: per-field validation errors, logged only.
type HTTPError struct {
	Code    string
	Message string
	Status  int
	Errors  []FieldError

	// cause is the underlying error of a store failure. It is kept for
	// logging and errors.As, never serialized.
	cause error
}

// Response is the body written for every error.
type Response struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

func (e *HTTPError) Error() string {
	if e.cause != nil {
		return e.Message + ": " + e.cause.Error()
	}
	return e.Message
}

// Unwrap exposes the cause so errors.As can reach driver errors.
func (e *HTTPError) Unwrap() error {
	return e.cause
}

// Response returns the client-facing envelope for e.
func (e *HTTPError) Response() Response {
	return Response{Success: false, Error: e.Message}
}

// MakeUpperCaseWithUnderscores converts a string into UPPER_CASE_WITH_UNDERSCORES.
//
//	"Bad Request" -> "BAD_REQUEST"
func MakeUpperCaseWithUnderscores(str string) string {
	return strings.ToUpper(strings.ReplaceAll(str, " ", "_"))
}
