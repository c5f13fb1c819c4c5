package search

import (
	"context"
	"log/slog"
	"strings"

	"github.com/pkg/errors"
)

const UnknownErrorMessage = "Unknown error occurred"

// Repository queries a Fetcher with a preconfigured API key and turns every
// failure into a failed Result.
type Repository struct {
	fetcher Fetcher
	apiKey  string
}

// SearchMovies implements Searcher.
func (r *Repository) SearchMovies(ctx context.Context, query string) Result {
	result, err := r.fetcher.Fetch(ctx, r.apiKey, query)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			slog.DebugContext(ctx, "movie search cancelled", slog.String("query", query))
		} else {
			slog.WarnContext(ctx, "movie search failed", slog.String("query", query), slog.Any("error", errors.WithStack(err)))
		}

		message := strings.TrimSpace(err.Error())
		if message == "" {
			message = UnknownErrorMessage
		}

		return Failure(message)
	}

	return result
}

func NewRepository(fetcher Fetcher, apiKey string) *Repository {
	return &Repository{
		fetcher: fetcher,
		apiKey:  apiKey,
	}
}

var _ Searcher = &Repository{}
