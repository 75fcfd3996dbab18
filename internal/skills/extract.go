// Package skills derives skill lists from identity API payloads, either from an
// explicit skills array or by splitting a free-text professional headline.
package skills

import (
	"strings"

	"github.com/jonathan/people-finder/internal/payload"
)

const (
	// SearchCap bounds headline-derived skills on search result cards.
	SearchCap = 5
	// ProfileCap bounds headline-derived skills on profile pages.
	ProfileCap = 10

	unknownSkill = "Unknown skill"
	headlineKey  = "professionalHeadline"
	skillsKey    = "skills"
)

// FromPayload returns the explicit skills of obj when present, otherwise the
// first max tokens of its professional headline. The result is never nil.
func FromPayload(obj payload.Object, max int) []string {
	if explicit := FromArray(obj.Array(skillsKey)); len(explicit) > 0 {
		return explicit
	}
	headline, ok := obj.String(headlineKey)
	if !ok {
		return []string{}
	}
	return FromHeadline(headline, max)
}

// FromArray maps explicit skill entries to names. Strings are used verbatim;
// objects fall back from name to title to a fixed placeholder.
func FromArray(entries []any) []string {
	out := make([]string, 0, len(entries))
	for _, entry := range entries {
		if s, ok := entry.(string); ok {
			out = append(out, s)
			continue
		}
		out = append(out, payload.AsObject(entry).StringOr(unknownSkill, "name", "title"))
	}
	return out
}

// FromHeadline splits a headline on | , • - / and returns up to max trimmed,
// non-empty tokens in their original order. A max <= 0 means no cap.
func FromHeadline(headline string, max int) []string {
	tokens := strings.FieldsFunc(headline, isDelimiter)
	out := make([]string, 0, len(tokens))
	for _, token := range tokens {
		token = strings.TrimSpace(token)
		if token == "" {
			continue
		}
		out = append(out, token)
		if max > 0 && len(out) == max {
			break
		}
	}
	return out
}

func isDelimiter(r rune) bool {
	switch r {
	case '|', ',', '•', '-', '/':
		return true
	}
	return false
}
