package models

type Genre struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// Film is a discovery candidate. Runtime and InCollection are only known
// after a detail lookup.
type Film struct {
	ID               int     `json:"id"`
	Title            string  `json:"title"`
	ReleaseDate      string  `json:"release_date,omitempty"`
	OriginalLanguage string  `json:"original_language,omitempty"`
	Popularity       float64 `json:"popularity"`
	VoteCount        int     `json:"vote_count"`
	Runtime          *int    `json:"runtime,omitempty"`
	InCollection     bool    `json:"in_collection"`
}

func (f Film) Year() string {
	if len(f.ReleaseDate) < 4 {
		return ""
	}
	return f.ReleaseDate[:4]
}
