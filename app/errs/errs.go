// Package errs defines the error envelope returned to API clients.
//
// Every failed request is answered with an HTTPError serialized as JSON,
// so clients see the same shape whatever the status code.
package errs

import "strings"

// FieldError describes a single invalid field in a request body.
type FieldError struct {
	Field string `json:"field"`
	Error string `json:"error"`
}

// HTTPError is the error type handed from services to controllers.
type HTTPError struct {
	Code    string       `json:"code"`
	Message string       `json:"message"`
	Status  int          `json:"status"`
	Errors  []FieldError `json:"errors,omitempty"`

	// Err is the underlying cause. It is logged, never sent to the client.
	Err error `json:"-"`
}

func (e *HTTPError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *HTTPError) Unwrap() error {
	return e.Err
}

// WithCause returns a copy of the error carrying err as its cause.
func (e *HTTPError) WithCause(err error) *HTTPError {
	return &HTTPError{
		Code:    e.Code,
		Message: e.Message,
		Status:  e.Status,
		Errors:  e.Errors,
		Err:     err,
	}
}

// MakeUpperCaseWithUnderscores turns "Not Found" into "NOT_FOUND".
func MakeUpperCaseWithUnderscores(str string) string {
	return strings.ToUpper(strings.ReplaceAll(str, " ", "_"))
}
