package search

import "context"

// Fetcher issues a single search request against a movie database.
//
// Implementations return a Result for every well-formed answer of the remote
// API, including answers where the API itself reports no match, and an error
// for transport, status or decoding failures.
type Fetcher interface {
	Fetch(ctx context.Context, apiKey string, query string) (Result, error)
}

// Searcher never fails: errors are folded into the returned Result.
type Searcher interface {
	SearchMovies(ctx context.Context, query string) Result
}
