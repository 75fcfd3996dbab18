// Package profile fetches a single identity bio and normalizes it into a
// profile page model.
package profile

// Profile is the normalized bio of one person.
type Profile struct {
	ID           string        `json:"id"`
	Name         string        `json:"name"`
	Username     string        `json:"username"`
	Headline     string        `json:"headline"`
	Location     string        `json:"location"`
	Skills       []string      `json:"skills"`
	Avatar       *string       `json:"avatar,omitempty"`
	Completion   *float64      `json:"completion,omitempty"`
	Verified     bool          `json:"verified"`
	Connections  []any         `json:"connections"`
	Summary      *string       `json:"summary,omitempty"`
	Experience   []Experience  `json:"experience"`
	Education    []Education   `json:"education"`
	Achievements []Achievement `json:"achievements"`
	Interests    []any         `json:"interests"`
	Languages    []Language    `json:"languages"`
	Contact      Contact       `json:"contact"`
}

type Experience struct {
	ID          string  `json:"id"`
	Title       string  `json:"title"`
	Company     string  `json:"company"`
	Location    string  `json:"location"`
	StartDate   string  `json:"startDate"`
	EndDate     *string `json:"endDate,omitempty"`
	Description *string `json:"description,omitempty"`
	Current     bool    `json:"current"`
}

type Education struct {
	ID          string  `json:"id"`
	Institution string  `json:"institution"`
	Degree      string  `json:"degree"`
	Field       string  `json:"field"`
	StartDate   string  `json:"startDate"`
	EndDate     *string `json:"endDate,omitempty"`
	Description *string `json:"description,omitempty"`
}

type Achievement struct {
	ID          string  `json:"id"`
	Title       string  `json:"title"`
	Issuer      string  `json:"issuer"`
	Date        string  `json:"date"`
	Description *string `json:"description,omitempty"`
	URL         *string `json:"url,omitempty"`
}

type Language struct {
	Language    string `json:"language"`
	Proficiency string `json:"proficiency"`
}

// Contact holds optional contact channels; absent ones are omitted.
type Contact struct {
	Email    *string `json:"email,omitempty"`
	Phone    *string `json:"phone,omitempty"`
	Website  *string `json:"website,omitempty"`
	LinkedIn *string `json:"linkedin,omitempty"`
	GitHub   *string `json:"github,omitempty"`
	Twitter  *string `json:"twitter,omitempty"`
}
