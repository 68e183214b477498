// Package validation contains the logic for validating request data.
//
// It uses the `validator` library to enforce rules defined in struct tags
// and extracts validation errors into a format the client can understand.
// Field names in messages are the JSON names, not the Go names.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"github.com/deppfellow/frases/internal/errs"
)

// Validatable is implemented by request payload types that know how to
// validate themselves.
type Validatable interface {
	Validate() error
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()

	// Report `json:"texto"` as "texto" instead of "Texto".
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			return fld.Name
		}
		return name
	})

	return v
}

// Struct validates s against its `validate` tags.
func Struct(s any) error {
	return validate.Struct(s)
}

// BindAndValidate binds request data into payload and validates it.
//
// Flow:
//  1. c.Bind(payload) populates the struct from path params and the JSON body.
//  2. payload.Validate() applies validation rules.
//  3. Any failure is returned as a 400 *errs.HTTPError, except a body cut
//     short by the body limit, which is a 413.
//
// payload must be a pointer to a struct.
func BindAndValidate(c echo.Context, payload Validatable) error {
	if err := c.Bind(payload); err != nil {
		if errors.Is(err, echo.ErrStatusRequestEntityTooLarge) {
			return errs.NewPayloadTooLargeError()
		}
		return errs.NewBadRequestError(errs.MessageInvalidBody, nil, nil)
	}

	if msg, fieldErrors := validateStruct(payload); fieldErrors != nil {
		return errs.NewValidationError(msg, fieldErrors)
	}

	return nil
}

// validateStruct calls v.Validate() and extracts field errors if validation fails.
func validateStruct(v Validatable) (string, []errs.FieldError) {
	if err := v.Validate(); err != nil {
		return extractValidationError(err)
	}
	return "", nil
}

// extractValidationError converts the error into field errors. The returned
// message is the first field's message, which is what the client sees.
func extractValidationError(err error) (string, []errs.FieldError) {
	var fieldErrors []errs.FieldError

	switch e := err.(type) {
	case validator.ValidationErrors:
		for _, fe := range e {
			fieldErrors = append(fieldErrors, errs.FieldError{
				Field: fe.Field(),
				Error: fieldMessage(fe),
			})
		}
	default:
		return err.Error(), []errs.FieldError{}
	}

	if len(fieldErrors) == 0 {
		return "Validation failed", []errs.FieldError{}
	}

	return fieldErrors[0].Error, fieldErrors
}

func fieldMessage(fe validator.FieldError) string {
	field := fe.Field()

	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("El campo '%s' es obligatorio", field)

	case "min":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("El campo '%s' debe tener al menos %s caracteres", field, fe.Param())
		}
		return fmt.Sprintf("El campo '%s' debe ser como mínimo %s", field, fe.Param())

	case "max":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("El campo '%s' no puede superar %s caracteres", field, fe.Param())
		}
		return fmt.Sprintf("El campo '%s' no puede superar %s", field, fe.Param())

	case "oneof":
		return fmt.Sprintf("El campo '%s' debe ser uno de: %s", field, fe.Param())

	default:
		if fe.Param() != "" {
			return fmt.Sprintf("%s: %s:%s", field, fe.Tag(), fe.Param())
		}
		return fmt.Sprintf("%s: %s", field, fe.Tag())
	}
}
