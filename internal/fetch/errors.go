package fetch

import (
	"fmt"
	"net/http"
)

// Code classifies an upstream failure.
type Code string

const (
	CodeBadRequest      Code = "BAD_REQUEST"
	CodeUnauthorized    Code = "UNAUTHORIZED"
	CodeRateLimited     Code = "RATE_LIMITED"
	CodeServerError     Code = "SERVER_ERROR"
	CodeRequestFailed   Code = "REQUEST_FAILED"
	CodeUserNotFound    Code = "USER_NOT_FOUND"
	CodeInvalidUsername Code = "INVALID_USERNAME"
	CodeNetwork         Code = "NETWORK_ERROR"
)

// Error represents a failed request to the identity API: either a non-2xx
// status or a connectivity problem. Message is safe to show to end users.
type Error struct {
	Op      string
	URL     string
	Status  int
	Code    Code
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s request to %s failed: %s: %v", e.Op, e.URL, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s request to %s failed: %s", e.Op, e.URL, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// StatusMapper turns a non-2xx status into a code and user-facing message.
type StatusMapper func(status int) (Code, string)

// SearchStatus maps statuses returned by the search endpoint.
func SearchStatus(status int) (Code, string) {
	switch {
	case status == http.StatusBadRequest:
		return CodeBadRequest, "Invalid search request"
	case status == http.StatusUnauthorized:
		return CodeUnauthorized, "Authentication required"
	case status == http.StatusTooManyRequests:
		return CodeRateLimited, "Too many requests. Please try again later."
	case status >= 500:
		return CodeServerError, "Server error. Please try again later."
	default:
		return CodeRequestFailed, fmt.Sprintf("Request failed with status %d", status)
	}
}

// BioStatus maps statuses returned by the bio endpoint.
func BioStatus(status int) (Code, string) {
	switch {
	case status == http.StatusNotFound:
		return CodeUserNotFound, "User profile not found"
	case status == http.StatusBadRequest:
		return CodeInvalidUsername, "Invalid username format"
	case status == http.StatusTooManyRequests:
		return CodeRateLimited, "Too many requests. Please try again later."
	case status >= 500:
		return CodeServerError, "Server error. Please try again later."
	default:
		return CodeRequestFailed, fmt.Sprintf("Request failed with status %d", status)
	}
}

func networkError(op, url string, cause error) *Error {
	return &Error{
		Op:      op,
		URL:     url,
		Code:    CodeNetwork,
		Message: "Network error. Please check your connection.",
		Cause:   cause,
	}
}
