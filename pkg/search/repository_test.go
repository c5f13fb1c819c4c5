package search

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"

	"github.com/pkg/errors"
)

type fetcherFunc func(ctx context.Context, apiKey string, query string) (Result, error)

func (fn fetcherFunc) Fetch(ctx context.Context, apiKey string, query string) (Result, error) {
	return fn(ctx, apiKey, query)
}

type emptyError struct{}

func (emptyError) Error() string { return "" }

func TestRepositorySearchMovies(t *testing.T) {
	type testCase struct {
		Name     string
		Fetch    fetcherFunc
		Expected Result
	}

	testCases := []testCase{
		{
			Name: "success is returned as is",
			Fetch: func(ctx context.Context, apiKey, query string) (Result, error) {
				return Result{
					Items:      []Movie{{Title: "Batman", Year: "1989", ExternalID: "tt0096895"}},
					TotalCount: "1",
					Succeeded:  true,
				}, nil
			},
			Expected: Result{
				Items:      []Movie{{Title: "Batman", Year: "1989", ExternalID: "tt0096895"}},
				TotalCount: "1",
				Succeeded:  true,
			},
		},
		{
			Name: "upstream failure is not an error",
			Fetch: func(ctx context.Context, apiKey, query string) (Result, error) {
				return Result{Succeeded: false, Error: "Movie not found!"}, nil
			},
			Expected: Result{Succeeded: false, Error: "Movie not found!"},
		},
		{
			Name: "transport error is normalized",
			Fetch: func(ctx context.Context, apiKey, query string) (Result, error) {
				return Result{}, errors.New("connection refused")
			},
			Expected: Result{Succeeded: false, Error: "connection refused"},
		},
		{
			Name: "error without message",
			Fetch: func(ctx context.Context, apiKey, query string) (Result, error) {
				return Result{}, emptyError{}
			},
			Expected: Result{Succeeded: false, Error: UnknownErrorMessage},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.Name, func(t *testing.T) {
			repository := NewRepository(tc.Fetch, "secret")

			result := repository.SearchMovies(context.Background(), "Batman")

			if e, g := tc.Expected.Succeeded, result.Succeeded; e != g {
				t.Errorf("result.Succeeded: expected '%v', got '%v'", e, g)
			}

			if e, g := tc.Expected.Error, result.Error; e != g {
				t.Errorf("result.Error: expected '%s', got '%s'", e, g)
			}

			if e, g := tc.Expected.TotalCount, result.TotalCount; e != g {
				t.Errorf("result.TotalCount: expected '%s', got '%s'", e, g)
			}

			if e, g := len(tc.Expected.Items), len(result.Items); e != g {
				t.Fatalf("len(result.Items): expected '%d', got '%d'", e, g)
			}

			for i := range tc.Expected.Items {
				if e, g := tc.Expected.Items[i], result.Items[i]; e != g {
					t.Errorf("result.Items[%d]: expected '%+v', got '%+v'", i, e, g)
				}
			}
		})
	}
}

func TestRepositoryInjectsAPIKey(t *testing.T) {
	var receivedKey, receivedQuery string

	repository := NewRepository(fetcherFunc(func(ctx context.Context, apiKey, query string) (Result, error) {
		receivedKey = apiKey
		receivedQuery = query
		return Result{Succeeded: true}, nil
	}), "configured-key")

	repository.SearchMovies(context.Background(), "Alien")

	if e, g := "configured-key", receivedKey; e != g {
		t.Errorf("apiKey: expected '%s', got '%s'", e, g)
	}

	if e, g := "Alien", receivedQuery; e != g {
		t.Errorf("query: expected '%s', got '%s'", e, g)
	}
}

func TestRepositoryCancelledSearchIsNotAWarning(t *testing.T) {
	var buff bytes.Buffer

	previous := slog.Default()
	slog.SetDefault(slog.New(slog.NewTextHandler(&buff, &slog.HandlerOptions{Level: slog.LevelWarn})))
	t.Cleanup(func() { slog.SetDefault(previous) })

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	repository := NewRepository(fetcherFunc(func(ctx context.Context, apiKey, query string) (Result, error) {
		return Result{}, errors.Wrap(ctx.Err(), "could not execute request")
	}), "secret")

	result := repository.SearchMovies(ctx, "Batman")

	if result.Succeeded {
		t.Errorf("result.Succeeded: expected false, got true")
	}

	if strings.Contains(buff.String(), "level=WARN") {
		t.Errorf("expected no warning for a cancelled search, got:\n%s", buff.String())
	}

	repository = NewRepository(fetcherFunc(func(ctx context.Context, apiKey, query string) (Result, error) {
		return Result{}, errors.New("connection refused")
	}), "secret")

	repository.SearchMovies(context.Background(), "Batman")

	if !strings.Contains(buff.String(), "level=WARN") {
		t.Errorf("expected a warning for a transport failure, got:\n%s", buff.String())
	}
}
