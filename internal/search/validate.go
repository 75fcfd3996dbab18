package search

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
)

// Validation error codes.
const (
	CodeInvalidQuery   = "INVALID_QUERY"
	CodeQueryTooShort  = "QUERY_TOO_SHORT"
	CodeInvalidRequest = "INVALID_REQUEST"
)

// ValidationError is returned before any network call when a request is unusable.
type ValidationError struct {
	Field   string
	Code    string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error: %s - %s", e.Field, e.Message)
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})
	return v
}

// Validate checks the query and the remaining request fields.
func (r *Request) Validate() error {
	query := strings.TrimSpace(r.Query)
	if query == "" {
		return &ValidationError{Field: "query", Code: CodeInvalidQuery, Message: "Search query is required"}
	}
	if utf8.RuneCountInString(query) < MinQueryLength {
		return &ValidationError{
			Field:   "query",
			Code:    CodeQueryTooShort,
			Message: fmt.Sprintf("Search query must be at least %d characters", MinQueryLength),
		}
	}

	if err := validate.Struct(r); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
			fe := fieldErrs[0]
			return &ValidationError{
				Field:   fe.Field(),
				Code:    CodeInvalidRequest,
				Message: fmt.Sprintf("failed %q check", fe.Tag()),
			}
		}
		return fmt.Errorf("failed to validate search request: %w", err)
	}
	return nil
}

// upstream fills defaults and caps the limit.
func (r *Request) upstream() upstreamRequest {
	identity := r.IdentityType
	if identity == "" {
		identity = IdentityPerson
	}
	return upstreamRequest{
		Query:           strings.TrimSpace(r.Query),
		TorreGgID:       r.TorreGgID,
		IdentityType:    identity,
		Limit:           r.EffectiveLimit(),
		Meta:            boolOr(r.Meta, true),
		Excluding:       nonNil(r.Excluding),
		ExcludedPeople:  nonNil(r.ExcludedPeople),
		ExcludeContacts: boolOr(r.ExcludeContacts, true),
	}
}

// EffectiveLimit returns the requested limit with the default applied and capped at MaxLimit.
func (r *Request) EffectiveLimit() int {
	limit := r.Limit
	if limit <= 0 {
		limit = DefaultLimit
	}
	return min(limit, MaxLimit)
}

func boolOr(b *bool, def bool) bool {
	if b == nil {
		return def
	}
	return *b
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
