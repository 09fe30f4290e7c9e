package errors

import "fmt"

// HTTPError carries an HTTP status code and a client-facing message.
// Delivery layers map domain errors onto these before responding.
type HTTPError struct {
	Code    int
	Message string
	Fields  []FieldError
}

// FieldError describes a single invalid input field.
type FieldError struct {
	Field  string `json:"field"`
	Reason string `json:"reason"`
}

// NewHTTPError creates a new HTTPError.
func NewHTTPError(code int, message string) *HTTPError {
	return &HTTPError{Code: code, Message: message}
}

// NewValidationError creates a 422 error with field-level detail.
func NewValidationError(fields ...FieldError) *HTTPError {
	return &HTTPError{Code: 422, Message: "Validation failed", Fields: fields}
}

// WithField returns a copy of the error with an extra field detail attached.
func (e *HTTPError) WithField(field, reason string) *HTTPError {
	clone := *e
	clone.Fields = append(append([]FieldError{}, e.Fields...), FieldError{Field: field, Reason: reason})
	return &clone
}

// Error implements the error interface.
func (e *HTTPError) Error() string {
	return fmt.Sprintf("http error %d: %s", e.Code, e.Message)
}
