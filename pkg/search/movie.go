package search

import "strings"

// NoPoster is the placeholder the movie database uses when a title has no image.
const NoPoster = "N/A"

// Movie is one row of a search answer.
type Movie struct {
	Title string `json:"title" yaml:"title"`
	// Year is not guaranteed to be numeric, series use ranges such as "2001–2003".
	Year       string `json:"year" yaml:"year"`
	ExternalID string `json:"externalId" yaml:"externalId"`
	PosterURL  string `json:"posterUrl" yaml:"posterUrl"`
	Kind       string `json:"kind,omitempty" yaml:"kind,omitempty"`
}

func (m Movie) HasPoster() bool {
	poster := strings.TrimSpace(m.PosterURL)
	return poster != "" && poster != NoPoster
}

// Result is the outcome of one search.
type Result struct {
	Items []Movie `json:"items,omitempty" yaml:"items,omitempty"`
	// TotalCount is the string encoded total reported upstream, empty when absent.
	TotalCount string `json:"totalCount,omitempty" yaml:"totalCount,omitempty"`
	Succeeded  bool   `json:"succeeded" yaml:"succeeded"`
	// Error is empty when absent.
	Error string `json:"error,omitempty" yaml:"error,omitempty"`
}

// Failure builds a failed Result carrying the given message.
func Failure(message string) Result {
	return Result{
		Items:      nil,
		TotalCount: "",
		Succeeded:  false,
		Error:      message,
	}
}
