package omdb

import (
	"strings"

	"github.com/VitorNoe/MovieSearchApp/pkg/search"
)

const responseTrue = "True"

// SearchResponse is the body returned by the search endpoint.
type SearchResponse struct {
	Search       []SearchItem `json:"Search,omitempty" jsonschema:"description=Matching titles, present only when Response is True"`
	TotalResults string       `json:"totalResults,omitempty" jsonschema:"description=String encoded total number of matches"`
	Response     string       `json:"Response" jsonschema:"required,enum=True,enum=False,description=String typed success flag"`
	Error        string       `json:"Error,omitempty" jsonschema:"description=Upstream error message, present only when Response is False"`
}

// SearchItem is one entry of SearchResponse.Search.
type SearchItem struct {
	Title  string `json:"Title" jsonschema:"required"`
	Year   string `json:"Year" jsonschema:"required,description=Release year or year range"`
	ImdbID string `json:"imdbID" jsonschema:"required"`
	Poster string `json:"Poster" jsonschema:"required,description=Poster URL or N/A"`
	Type   string `json:"Type,omitempty" jsonschema:"description=movie, series or episode"`
}

// Result converts the wire response. A missing or unknown Response flag is a
// failure.
func (r *SearchResponse) Result() search.Result {
	result := search.Result{
		TotalCount: r.TotalResults,
		Succeeded:  strings.TrimSpace(r.Response) == responseTrue,
		Error:      r.Error,
	}

	if len(r.Search) > 0 {
		result.Items = make([]search.Movie, 0, len(r.Search))
		for _, item := range r.Search {
			result.Items = append(result.Items, search.Movie{
				Title:      item.Title,
				Year:       item.Year,
				ExternalID: item.ImdbID,
				PosterURL:  item.Poster,
				Kind:       item.Type,
			})
		}
	}

	return result
}
