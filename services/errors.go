package services

import (
	"errors"
	"net/http"
)

// ErrorCode is the closed set of failure categories surfaced to API callers.
type ErrorCode string

const (
	CodePermissionDenied ErrorCode = "PERMISSION_DENIED"
	CodeNotFound         ErrorCode = "NOT_FOUND"
	CodeInvalidArgument  ErrorCode = "INVALID_ARGUMENT"
	CodeInvalidState     ErrorCode = "INVALID_STATE"
)

// Error is a structured, user-visible service failure. Every failure is
// terminal for the current request; there is no retry path.
type Error struct {
	Code    ErrorCode
	Message string
}

func (e *Error) Error() string { return e.Message }

// HTTPStatus maps the error code to the response status the controllers use.
func (e *Error) HTTPStatus() int {
	switch e.Code {
	case CodePermissionDenied:
		return http.StatusForbidden
	case CodeNotFound:
		return http.StatusNotFound
	case CodeInvalidState:
		return http.StatusConflict
	default:
		return http.StatusBadRequest
	}
}

func PermissionDenied(message string) *Error {
	return &Error{Code: CodePermissionDenied, Message: message}
}

func NotFound(message string) *Error {
	return &Error{Code: CodeNotFound, Message: message}
}

func InvalidArgument(message string) *Error {
	return &Error{Code: CodeInvalidArgument, Message: message}
}

func InvalidState(message string) *Error {
	return &Error{Code: CodeInvalidState, Message: message}
}

// AsError unwraps err into a service Error when possible.
func AsError(err error) (*Error, bool) {
	var svcErr *Error
	if errors.As(err, &svcErr) {
		return svcErr, true
	}
	return nil, false
}
