package profile

import (
	"fmt"
	"net/http"
)

// Error codes produced locally, before or after the bio request.
const (
	CodeInvalidUsername = "INVALID_USERNAME"
	CodeNoData          = "NO_DATA"
	CodeUnknown         = "UNKNOWN_ERROR"
)

// Error is a profile failure that did not come from the transport layer.
// Upstream failures are returned as *fetch.Error instead.
type Error struct {
	Code    string
	Status  int
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("profile error %s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("profile error %s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

func errInvalidUsername() *Error {
	return &Error{Code: CodeInvalidUsername, Status: http.StatusBadRequest, Message: "Username is required"}
}

func errNoData() *Error {
	return &Error{Code: CodeNoData, Status: http.StatusNotFound, Message: "No profile data received"}
}

func errUnexpected(cause error) *Error {
	return &Error{
		Code:    CodeUnknown,
		Status:  http.StatusInternalServerError,
		Message: "An unexpected error occurred. Please try again.",
		Cause:   cause,
	}
}
