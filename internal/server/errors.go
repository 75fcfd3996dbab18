package server

import (
	"errors"
	"net/http"

	"github.com/jonathan/people-finder/internal/fetch"
	"github.com/jonathan/people-finder/internal/profile"
	"github.com/jonathan/people-finder/internal/schemas"
	"github.com/jonathan/people-finder/internal/search"
	"github.com/jonathan/people-finder/internal/stream"
	"github.com/jonathan/people-finder/internal/users"
)

// Codes for errors raised by the HTTP layer itself.
const (
	CodeInvalidRequest = "INVALID_REQUEST"
	CodeStreamError    = "STREAM_ERROR"
	CodeEmailTaken     = "EMAIL_TAKEN"
	CodeUserNotFound   = "USER_NOT_FOUND"
	CodeInternal       = "INTERNAL_ERROR"
)

// apiError is the client-facing shape of a failure.
type apiError struct {
	Status  int
	Code    string
	Message string
}

// HTTPStatus returns the appropriate HTTP status code for an error
func HTTPStatus(err error) int {
	return describe(err).Status
}

func describe(err error) apiError {
	var (
		searchErr  *search.ValidationError
		schemaErr  *schemas.ValidationError
		profileErr *profile.Error
		fetchErr   *fetch.Error
		streamErr  *stream.Error
		dupErr     *users.ErrEmailAlreadyExists
		missingErr *users.ErrUserNotFound
		userErr    *users.ErrValidation
	)

	switch {
	case err == nil:
		return apiError{Status: http.StatusInternalServerError, Code: CodeInternal, Message: "Internal server error"}
	case errors.As(err, &searchErr):
		return apiError{Status: http.StatusBadRequest, Code: searchErr.Code, Message: searchErr.Message}
	case errors.As(err, &schemaErr):
		first := schemaErr.First()
		return apiError{Status: http.StatusBadRequest, Code: CodeInvalidRequest, Message: first.Field + ": " + first.Message}
	case errors.As(err, &profileErr):
		return apiError{Status: profileErr.Status, Code: profileErr.Code, Message: profileErr.Message}
	case errors.As(err, &fetchErr):
		return apiError{Status: upstreamStatus(fetchErr), Code: string(fetchErr.Code), Message: fetchErr.Message}
	case errors.As(err, &streamErr):
		return apiError{Status: http.StatusBadGateway, Code: CodeStreamError, Message: "The search stream was interrupted. Please try again."}
	case errors.As(err, &dupErr):
		return apiError{Status: http.StatusConflict, Code: CodeEmailTaken, Message: dupErr.Error()}
	case errors.As(err, &missingErr):
		return apiError{Status: http.StatusNotFound, Code: CodeUserNotFound, Message: "User not found"}
	case errors.As(err, &userErr):
		return apiError{Status: http.StatusBadRequest, Code: CodeInvalidRequest, Message: userErr.Field + " " + userErr.Message}
	default:
		return apiError{Status: http.StatusInternalServerError, Code: CodeInternal, Message: "Internal server error"}
	}
}

// upstreamStatus picks the status we answer with when the identity API fails.
func upstreamStatus(err *fetch.Error) int {
	switch err.Code {
	case fetch.CodeUserNotFound:
		return http.StatusNotFound
	case fetch.CodeInvalidUsername, fetch.CodeBadRequest:
		return http.StatusBadRequest
	case fetch.CodeRateLimited:
		return http.StatusTooManyRequests
	case fetch.CodeNetwork:
		return http.StatusServiceUnavailable
	default:
		return http.StatusBadGateway
	}
}
