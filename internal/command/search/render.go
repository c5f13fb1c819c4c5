package search

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	se "github.com/VitorNoe/MovieSearchApp/pkg/search"
	"github.com/gobwas/glob"
	"github.com/pkg/errors"
	"go.yaml.in/yaml/v3"
)

type Format string

const (
	FormatTable Format = "table"
	FormatJSON  Format = "json"
	FormatYAML  Format = "yaml"
)

func ParseFormat(raw string) (Format, error) {
	switch format := Format(strings.ToLower(strings.TrimSpace(raw))); format {
	case FormatTable, FormatJSON, FormatYAML:
		return format, nil
	default:
		return "", errors.Errorf("unknown output format '%s'", raw)
	}
}

// Extension returns the file extension used when saving a rendering.
func (f Format) Extension() string {
	switch f {
	case FormatJSON:
		return ".json"
	case FormatYAML:
		return ".yml"
	default:
		return ".txt"
	}
}

// FilterByTitle keeps the movies whose title matches the case insensitive
// glob pattern. An empty pattern keeps everything.
func FilterByTitle(movies []se.Movie, pattern string) ([]se.Movie, error) {
	if pattern == "" {
		return movies, nil
	}

	g, err := glob.Compile(strings.ToLower(pattern))
	if err != nil {
		return nil, errors.Wrapf(err, "invalid title pattern '%s'", pattern)
	}

	filtered := make([]se.Movie, 0, len(movies))
	for _, m := range movies {
		if g.Match(strings.ToLower(m.Title)) {
			filtered = append(filtered, m)
		}
	}

	return filtered, nil
}

func Render(w io.Writer, format Format, state se.State) error {
	switch format {
	case FormatJSON:
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(state); err != nil {
			return errors.WithStack(err)
		}

		return nil

	case FormatYAML:
		encoder := yaml.NewEncoder(w)
		encoder.SetIndent(2)
		if err := encoder.Encode(state); err != nil {
			return errors.WithStack(err)
		}

		if err := encoder.Close(); err != nil {
			return errors.WithStack(err)
		}

		return nil

	default:
		return renderTable(w, state)
	}
}

func renderTable(w io.Writer, state se.State) error {
	if state.HasError() {
		if _, err := fmt.Fprintf(w, "%s\n", state.ErrorMessage); err != nil {
			return errors.WithStack(err)
		}

		return nil
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)

	if _, err := fmt.Fprintln(tw, "TITLE\tYEAR\tTYPE\tIMDB ID\tPOSTER"); err != nil {
		return errors.WithStack(err)
	}

	for _, m := range state.Results {
		kind := m.Kind
		if kind == "" {
			kind = "-"
		}

		poster := "-"
		if m.HasPoster() {
			poster = m.PosterURL
		}

		if _, err := fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", m.Title, m.Year, kind, m.ExternalID, poster); err != nil {
			return errors.WithStack(err)
		}
	}

	if err := tw.Flush(); err != nil {
		return errors.WithStack(err)
	}

	return nil
}
