// Package apierr is the error taxonomy of the account service. Operations
// return either a BadRequest (client-fixable: unknown email or id, conflict,
// bad credential, expired link) or an Unauthorized (missing/invalid auth
// credential). Anything else reaching the HTTP layer is treated as an
// internal error and never leaked to the client.
package apierr

import "errors"

// FieldError carries field-level validation detail.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Error is a typed domain error with a localized, human-readable message.
type Error struct {
	Status  int          `json:"-"`
	Message string       `json:"message"`
	Errors  []FieldError `json:"errors,omitempty"`
}

func (e *Error) Error() string { return e.Message }

// BadRequest builds a 400-class error.
func BadRequest(message string, fieldErrors ...FieldError) *Error {
	return &Error{Status: 400, Message: message, Errors: fieldErrors}
}

// Unauthorized builds a 401-class error.
func Unauthorized(message string) *Error {
	return &Error{Status: 401, Message: message}
}

// From extracts the typed error, if any, from an error chain.
func From(err error) (*Error, bool) {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}

// IsBadRequest reports whether err is a 400-class domain error.
func IsBadRequest(err error) bool {
	e, ok := From(err)
	return ok && e.Status == 400
}

// IsUnauthorized reports whether err is a 401-class domain error.
func IsUnauthorized(err error) bool {
	e, ok := From(err)
	return ok && e.Status == 401
}
