// Package validation binds JSON request bodies and turns validator
// failures into field errors the client can act on.
package validation

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"strings"

	"postboard/app/errs"

	"github.com/go-playground/validator/v10"
)

// Validatable is implemented by request payloads that validate themselves.
type Validatable interface {
	Validate() error
}

// InvalidJSONMessage is reported when the body cannot be decoded.
const InvalidJSONMessage = "Request body must be valid JSON."

// BindAndValidate decodes the request body into payload and validates it.
// An empty body decodes to the zero payload so that required fields are
// reported by validation rather than by the decoder. Validation failures
// are returned as a 400 carrying message and the offending fields.
func BindAndValidate(r *http.Request, payload Validatable, message string) error {
	if r.Body != nil {
		if err := json.NewDecoder(r.Body).Decode(payload); err != nil && !errors.Is(err, io.EOF) {
			return errs.NewBadRequestError(InvalidJSONMessage, nil).WithCause(err)
		}
	}

	if err := payload.Validate(); err != nil {
		return errs.NewBadRequestError(message, extractValidationError(err)).WithCause(err)
	}

	return nil
}

func extractValidationError(err error) []errs.FieldError {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return []errs.FieldError{{Field: "body", Error: err.Error()}}
	}

	fieldErrors := make([]errs.FieldError, 0, len(validationErrors))
	for _, fe := range validationErrors {
		var msg string

		switch fe.Tag() {
		case "required":
			msg = "is required"
		case "min":
			if fe.Kind() == reflect.String {
				msg = fmt.Sprintf("must be at least %s characters", fe.Param())
			} else {
				msg = fmt.Sprintf("must be at least %s", fe.Param())
			}
		case "max":
			if fe.Kind() == reflect.String {
				msg = fmt.Sprintf("must not exceed %s characters", fe.Param())
			} else {
				msg = fmt.Sprintf("must not exceed %s", fe.Param())
			}
		case "gt":
			msg = fmt.Sprintf("must be greater than %s", fe.Param())
		default:
			if fe.Param() != "" {
				msg = fmt.Sprintf("%s:%s", fe.Tag(), fe.Param())
			} else {
				msg = fe.Tag()
			}
		}

		fieldErrors = append(fieldErrors, errs.FieldError{
			Field: strings.ToLower(fe.Field()),
			Error: msg,
		})
	}

	return fieldErrors
}
