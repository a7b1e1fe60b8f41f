// Package apierror defines the error taxonomy shared by all services and the
// JSON envelope returned to clients. Every error response carries a stable
// machine-usable code plus a human-readable message; internal details (stack
// traces, SQL errors) never reach the client.
package apierror

import "net/http"

// Code identifies the class of failure. Codes are part of the public API.
type Code string

const (
	CodeValidation        Code = "validation_error"
	CodeNotFound          Code = "not_found"
	CodeInsufficientFunds Code = "insufficient_funds"
	CodeUnauthorized      Code = "unauthorized"
	CodeForbidden         Code = "forbidden"
	CodeConflict          Code = "conflict"
	CodeInternal          Code = "internal_error"
)

// Error is the canonical service-layer error. Handlers translate it into the
// matching HTTP status; anything that is not an *Error becomes a 500.
type Error struct {
	Code   Code   `json:"code"`
	Detail string `json:"detail"`
}

func (e *Error) Error() string { return e.Detail }

// HTTPStatus maps the error code to its response status.
func (e *Error) HTTPStatus() int {
	switch e.Code {
	case CodeValidation, CodeInsufficientFunds, CodeConflict:
		return http.StatusBadRequest
	case CodeNotFound:
		return http.StatusNotFound
	case CodeUnauthorized:
		return http.StatusUnauthorized
	case CodeForbidden:
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}

func Validation(msg string) *Error        { return &Error{Code: CodeValidation, Detail: msg} }
func NotFound(msg string) *Error          { return &Error{Code: CodeNotFound, Detail: msg} }
func InsufficientFunds(msg string) *Error { return &Error{Code: CodeInsufficientFunds, Detail: msg} }
func Unauthorized(msg string) *Error      { return &Error{Code: CodeUnauthorized, Detail: msg} }
func Forbidden(msg string) *Error         { return &Error{Code: CodeForbidden, Detail: msg} }
func Conflict(msg string) *Error          { return &Error{Code: CodeConflict, Detail: msg} }
func Internal(msg string) *Error          { return &Error{Code: CodeInternal, Detail: msg} }

// ValidationFields wraps per-field validation failures (validator tags).
type ValidationFields struct {
	Code   Code              `json:"code"`
	Detail string            `json:"detail"`
	Fields map[string]string `json:"fields"`
}

func NewValidationFields(fields map[string]string) *ValidationFields {
	return &ValidationFields{Code: CodeValidation, Detail: "validation failed", Fields: fields}
}
