package errs

import (
	"net/http"
)

// Client-facing messages.
const (
	MessageRouteNotFound   = "Ruta no encontrada"
	MessageInvalidBody     = "El cuerpo de la petición no es válido"
	MessagePayloadTooLarge = "El cuerpo de la petición es demasiado grande"
	MessageInternal        = "Error interno del servidor"
)

// Codes that do not derive from the status text.
const (
	CodeValidation    = "VALIDATION_FAILED"
	CodeRouteNotFound = "ROUTE_NOT_FOUND"
	CodeStore         = "STORE_ERROR"
)

// NewBadRequestError creates a 400 Bad Request HTTPError.
//
// If code is nil it defaults to "BAD_REQUEST".
func NewBadRequestError(message string, code *string, errors []FieldError) *HTTPError {
	formattedCode := MakeUpperCaseWithUnderscores(http.StatusText(http.StatusBadRequest))
	if code != nil {
		formattedCode = *code
	}

	return &HTTPError{
		Code:    formattedCode,
		Message: message,
		Status:  http.StatusBadRequest,
		Errors:  errors,
	}
}

// NewValidationError creates the 400 returned when a required field is
// missing. It never reaches the store.
func NewValidationError(message string, errors []FieldError) *HTTPError {
	code := CodeValidation
	return NewBadRequestError(message, &code, errors)
}

// NewNotFoundError creates a 404 Not Found HTTPError for a missing resource.
func NewNotFoundError(message string) *HTTPError {
	return &HTTPError{
		Code:    MakeUpperCaseWithUnderscores(http.StatusText(http.StatusNotFound)),
		Message: message,
		Status:  http.StatusNotFound,
	}
}

// NewRouteError creates the 404 returned when no route matches.
func NewRouteError() *HTTPError {
	return &HTTPError{
		Code:    CodeRouteNotFound,
		Message: MessageRouteNotFound,
		Status:  http.StatusNotFound,
	}
}

// NewStoreError creates a 500 for any database-layer failure.
//
// message is the fixed text the client sees; cause is logged by the
// global error handler and never returned.
func NewStoreError(message string, cause error) *HTTPError {
	return &HTTPError{
		Code:    CodeStore,
		Message: message,
		Status:  http.StatusInternalServerError,
		cause:   cause,
	}
}

// NewInternalServerError creates a generic 500.
func NewInternalServerError() *HTTPError {
	return &HTTPError{
		Code:    MakeUpperCaseWithUnderscores(http.StatusText(http.StatusInternalServerError)),
		Message: MessageInternal,
		Status:  http.StatusInternalServerError,
	}
}

// NewPayloadTooLargeError creates the 413 returned when the body limit is hit.
func NewPayloadTooLargeError() *HTTPError {
	return &HTTPError{
		Code:    MakeUpperCaseWithUnderscores(http.StatusText(http.StatusRequestEntityTooLarge)),
		Message: MessagePayloadTooLarge,
		Status:  http.StatusRequestEntityTooLarge,
	}
}
