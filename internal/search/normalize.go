package search

import (
	"github.com/jonathan/people-finder/internal/payload"
	"github.com/jonathan/people-finder/internal/skills"
)

// Field defaults for results.
const (
	DefaultName     = "Unknown"
	DefaultHeadline = "No headline"
	DefaultLocation = "Unknown location"
)

// Normalize maps raw records to results, silently dropping records with
// neither ggId nor ardaId. Order is preserved.
func Normalize(records []payload.Object, identityType IdentityType) []Result {
	results := make([]Result, 0, len(records))
	for _, obj := range records {
		if obj == nil || !obj.HasIdentity() {
			continue
		}
		results = append(results, NormalizeRecord(obj, identityType))
	}
	return results
}

// NormalizeRecord maps a single raw record. Every field receives a value;
// a record without identity gets a random placeholder id.
func NormalizeRecord(obj payload.Object, identityType IdentityType) Result {
	return Result{
		ID:          obj.Identity(),
		Name:        obj.StringOr(DefaultName, "name"),
		Headline:    obj.StringOr(DefaultHeadline, "professionalHeadline"),
		Location:    obj.StringOr(DefaultLocation, "locationName"),
		Skills:      skills.FromPayload(obj, skills.SearchCap),
		Avatar:      obj.OptString("imageUrl"),
		Type:        identityType,
		Username:    obj.OptString("username"),
		Completion:  obj.Float("completion"),
		Verified:    obj.Bool("verified"),
		Connections: obj.Values("connections"),
	}
}
