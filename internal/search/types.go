// Package search runs people/organization searches against the streaming
// identity endpoint and normalizes the streamed records into stable results.
package search

// IdentityType selects what kind of entity a search looks for.
type IdentityType string

const (
	IdentityPerson       IdentityType = "person"
	IdentityOrganization IdentityType = "organization"
)

const (
	// DefaultLimit is used when a request does not set one.
	DefaultLimit = 20
	// MaxLimit caps the number of results requested upstream.
	MaxLimit = 100
	// MinQueryLength is the shortest accepted query after trimming, counted
	// in runes: a single emoji is one character and is rejected.
	MinQueryLength = 2
)

// Request is a search as issued by a caller. Meta and ExcludeContacts default
// to true when unset; an explicit false is forwarded upstream as false.
type Request struct {
	Query           string       `json:"query"`
	TorreGgID       string       `json:"torreGgId,omitempty"`
	IdentityType    IdentityType `json:"identityType" validate:"omitempty,oneof=person organization"`
	Limit           int          `json:"limit,omitempty" validate:"gte=0"`
	Meta            *bool        `json:"meta,omitempty"`
	Excluding       []string     `json:"excluding,omitempty" validate:"dive,required"`
	ExcludedPeople  []string     `json:"excludedPeople,omitempty" validate:"dive,required"`
	ExcludeContacts *bool        `json:"excludeContacts,omitempty"`
}

// upstreamRequest is the body posted to the search endpoint; every field is sent.
type upstreamRequest struct {
	Query           string       `json:"query"`
	TorreGgID       string       `json:"torreGgId"`
	IdentityType    IdentityType `json:"identityType"`
	Limit           int          `json:"limit"`
	Meta            bool         `json:"meta"`
	Excluding       []string     `json:"excluding"`
	ExcludedPeople  []string     `json:"excludedPeople"`
	ExcludeContacts bool         `json:"excludeContacts"`
}

// Result is one normalized search hit.
type Result struct {
	ID          string       `json:"id"`
	Name        string       `json:"name"`
	Headline    string       `json:"headline"`
	Location    string       `json:"location"`
	Skills      []string     `json:"skills"`
	Avatar      *string      `json:"avatar,omitempty"`
	Type        IdentityType `json:"type"`
	Username    *string      `json:"username,omitempty"`
	Completion  *float64     `json:"completion,omitempty"`
	Verified    *bool        `json:"verified,omitempty"`
	Connections []any        `json:"connections"`
}

// Meta describes a result page. Total is the number of results returned.
type Meta struct {
	Total int `json:"total"`
	Page  int `json:"page"`
	Limit int `json:"limit"`
}

// Response is the outcome of a search.
type Response struct {
	Results []Result `json:"results"`
	Meta    Meta     `json:"meta"`
}
