package omdb

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/VitorNoe/MovieSearchApp/pkg/search"
	"github.com/pkg/errors"
)

const (
	DefaultBaseURL = "https://www.omdbapi.com"
	DefaultTimeout = 30 * time.Second

	apiKeyParam = "apikey"
	searchParam = "s"

	maxErrorBodySize = 4096
)

type Options struct {
	BaseURL    string
	Timeout    time.Duration
	HTTPClient *http.Client
}

type OptionFunc func(opts *Options)

func WithBaseURL(baseURL string) OptionFunc {
	return func(opts *Options) {
		opts.BaseURL = baseURL
	}
}

func WithTimeout(timeout time.Duration) OptionFunc {
	return func(opts *Options) {
		opts.Timeout = timeout
	}
}

// WithHTTPClient replaces the default client. The timeout option is ignored
// in this case.
func WithHTTPClient(client *http.Client) OptionFunc {
	return func(opts *Options) {
		opts.HTTPClient = client
	}
}

func NewOptions(funcs ...OptionFunc) *Options {
	opts := &Options{
		BaseURL: DefaultBaseURL,
		Timeout: DefaultTimeout,
	}

	for _, fn := range funcs {
		fn(opts)
	}

	return opts
}

// Client queries the OMDb search endpoint.
type Client struct {
	baseURL    *url.URL
	httpClient *http.Client
}

// Fetch implements search.Fetcher.
func (c *Client) Fetch(ctx context.Context, apiKey string, query string) (search.Result, error) {
	searchURL := c.baseURL.JoinPath("/")

	params := searchURL.Query()
	params.Set(apiKeyParam, apiKey)
	params.Set(searchParam, query)
	searchURL.RawQuery = params.Encode()

	slog.DebugContext(ctx, "executing search", slog.String("url", redact(searchURL).String()))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, searchURL.String(), nil)
	if err != nil {
		return search.Result{}, errors.WithStack(redactError(err))
	}

	res, err := c.httpClient.Do(req)
	if err != nil {
		return search.Result{}, errors.WithStack(redactError(err))
	}

	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		statusErr := &HTTPStatusError{
			StatusCode: res.StatusCode,
			Status:     res.Status,
		}

		var payload SearchResponse
		if err := json.NewDecoder(io.LimitReader(res.Body, maxErrorBodySize)).Decode(&payload); err == nil {
			statusErr.UpstreamError = payload.Error
		}

		return search.Result{}, errors.WithStack(statusErr)
	}

	var payload SearchResponse
	if err := json.NewDecoder(res.Body).Decode(&payload); err != nil {
		return search.Result{}, errors.Wrap(err, "could not decode search response")
	}

	return payload.Result(), nil
}

// redact hides the API key from URLs that may end up in logs or in messages
// shown to users.
func redact(u *url.URL) *url.URL {
	redacted := *u

	params := redacted.Query()
	if params.Has(apiKeyParam) {
		params.Set(apiKeyParam, "REDACTED")
		redacted.RawQuery = params.Encode()
	}

	return &redacted
}

func redactError(err error) error {
	var urlErr *url.Error
	if !errors.As(err, &urlErr) {
		return err
	}

	u, parseErr := url.Parse(urlErr.URL)
	if parseErr != nil {
		return err
	}

	urlErr.URL = redact(u).String()

	return urlErr
}

func NewClient(funcs ...OptionFunc) (*Client, error) {
	opts := NewOptions(funcs...)

	baseURL, err := url.Parse(opts.BaseURL)
	if err != nil {
		return nil, errors.Wrapf(err, "could not parse base url '%s'", opts.BaseURL)
	}

	if baseURL.Scheme == "" || baseURL.Host == "" {
		return nil, errors.Errorf("invalid base url '%s'", opts.BaseURL)
	}

	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{
			Timeout: opts.Timeout,
		}
	}

	return &Client{
		baseURL:    baseURL,
		httpClient: httpClient,
	}, nil
}

var _ search.Fetcher = &Client{}
