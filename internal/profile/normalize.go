package profile

import (
	"github.com/jonathan/people-finder/internal/payload"
	"github.com/jonathan/people-finder/internal/skills"
)

const (
	defaultName     = "Unknown"
	defaultHeadline = "No headline"
	defaultLocation = "Unknown location"
)

// Normalize maps a raw bio object to a Profile. Every collection is non-nil.
func Normalize(obj payload.Object) *Profile {
	return &Profile{
		ID:           obj.Identity(),
		Name:         obj.StringOr(defaultName, "name"),
		Username:     obj.StringOr("", "username", "publicId"),
		Headline:     obj.StringOr(defaultHeadline, "professionalHeadline", "headline"),
		Location:     obj.StringOr(defaultLocation, "locationName", "location"),
		Skills:       skills.FromPayload(obj, skills.ProfileCap),
		Avatar:       obj.OptString("imageUrl", "avatar"),
		Completion:   obj.Float("completion"),
		Verified:     obj.Flag("verified"),
		Connections:  obj.Values("connections"),
		Summary:      obj.OptString("summary"),
		Experience:   experience(obj.Objects("experience")),
		Education:    education(obj.Objects("education")),
		Achievements: achievements(obj.Objects("achievements")),
		Interests:    obj.Values("interests"),
		Languages:    languages(obj.Objects("languages")),
		Contact:      contact(obj.Object("contact")),
	}
}

func itemID(o payload.Object) string {
	if id, ok := o.String("id"); ok {
		return id
	}
	return payload.PlaceholderID()
}

func experience(items []payload.Object) []Experience {
	out := make([]Experience, 0, len(items))
	for _, o := range items {
		out = append(out, Experience{
			ID:          itemID(o),
			Title:       o.StringOr("Unknown Position", "title", "position"),
			Company:     o.StringOr("Unknown Company", "company", "organization"),
			Location:    o.StringOr("Unknown Location", "location", "city"),
			StartDate:   o.StringOr("", "startDate", "from"),
			EndDate:     o.OptString("endDate", "to"),
			Description: o.OptString("description", "summary"),
			Current:     o.Flag("current", "isCurrent"),
		})
	}
	return out
}

func education(items []payload.Object) []Education {
	out := make([]Education, 0, len(items))
	for _, o := range items {
		out = append(out, Education{
			ID:          itemID(o),
			Institution: o.StringOr("Unknown Institution", "institution", "school"),
			Degree:      o.StringOr("Unknown Degree", "degree", "field"),
			Field:       o.StringOr("Unknown Field", "field", "major", "specialization"),
			StartDate:   o.StringOr("", "startDate", "from"),
			EndDate:     o.OptString("endDate", "to"),
			Description: o.OptString("description", "summary"),
		})
	}
	return out
}

func achievements(items []payload.Object) []Achievement {
	out := make([]Achievement, 0, len(items))
	for _, o := range items {
		out = append(out, Achievement{
			ID:          itemID(o),
			Title:       o.StringOr("Unknown Achievement", "title", "name"),
			Issuer:      o.StringOr("Unknown Issuer", "issuer", "organization"),
			Date:        o.StringOr("", "date", "issuedDate"),
			Description: o.OptString("description", "summary"),
			URL:         o.OptString("url", "certificateUrl"),
		})
	}
	return out
}

func languages(items []payload.Object) []Language {
	out := make([]Language, 0, len(items))
	for _, o := range items {
		out = append(out, Language{
			Language:    o.StringOr("Unknown Language", "language", "name"),
			Proficiency: o.StringOr("Unknown", "proficiency", "level"),
		})
	}
	return out
}

func contact(o payload.Object) Contact {
	return Contact{
		Email:    o.OptString("email"),
		Phone:    o.OptString("phone"),
		Website:  o.OptString("website", "personalWebsite"),
		LinkedIn: o.OptString("linkedin", "linkedIn"),
		GitHub:   o.OptString("github"),
		Twitter:  o.OptString("twitter"),
	}
}
