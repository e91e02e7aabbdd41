package models

type Duration string

const (
	DurationAny      Duration = ""
	DurationShort    Duration = "short"
	DurationStandard Duration = "standard"
	DurationLong     Duration = "long"
)

type Popularity string

const (
	PopularityAny     Popularity = ""
	PopularityFamous  Popularity = "famous"
	PopularityObscure Popularity = "obscure"
)

// Filters holds the discovery parameters and post-discovery predicates
// derived from one set of quiz answers. Dates use the YYYY-MM-DD layout.
type Filters struct {
	GenreID          int        `json:"genre_id,omitempty"`
	ReleasedFrom     string     `json:"released_from,omitempty"`
	ReleasedUntil    string     `json:"released_until,omitempty"`
	Popularity       Popularity `json:"popularity,omitempty"`
	OriginalLanguage string     `json:"original_language,omitempty"`
	Duration         Duration   `json:"duration,omitempty"`
	Franchise        bool       `json:"franchise"`
}
