package search

import (
	"bytes"
	"strings"
	"testing"

	se "github.com/VitorNoe/MovieSearchApp/pkg/search"
	"github.com/pkg/errors"
)

func TestParseFormat(t *testing.T) {
	for raw, expected := range map[string]Format{
		"table": FormatTable,
		"JSON":  FormatJSON,
		" yaml": FormatYAML,
	} {
		format, err := ParseFormat(raw)
		if err != nil {
			t.Fatalf("%+v", errors.WithStack(err))
		}

		if format != expected {
			t.Errorf("ParseFormat('%s'): expected '%s', got '%s'", raw, expected, format)
		}
	}

	if _, err := ParseFormat("xml"); err == nil {
		t.Error("expected an error, got nil")
	}
}

func TestFilterByTitle(t *testing.T) {
	movies := []se.Movie{
		{Title: "Batman"},
		{Title: "Batman Begins"},
		{Title: "The Batman"},
	}

	filtered, err := FilterByTitle(movies, "BATMAN*")
	if err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	if e, g := 2, len(filtered); e != g {
		t.Fatalf("len(filtered): expected '%d', got '%d'", e, g)
	}

	all, err := FilterByTitle(movies, "")
	if err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	if e, g := len(movies), len(all); e != g {
		t.Errorf("len(all): expected '%d', got '%d'", e, g)
	}

	if _, err := FilterByTitle(movies, "[unterminated"); err == nil {
		t.Error("expected an error, got nil")
	}
}

func TestRenderTable(t *testing.T) {
	var buff bytes.Buffer

	state := se.State{
		Query: "Batman",
		Results: []se.Movie{
			{Title: "Batman", Year: "1989", ExternalID: "tt0096895", PosterURL: se.NoPoster},
		},
	}

	if err := Render(&buff, FormatTable, state); err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	lines := strings.Split(strings.TrimSpace(buff.String()), "\n")

	if e, g := 2, len(lines); e != g {
		t.Fatalf("len(lines): expected '%d', got '%d'", e, g)
	}

	if !strings.HasPrefix(lines[0], "TITLE") {
		t.Errorf("expected header line, got '%s'", lines[0])
	}

	if strings.Contains(lines[1], se.NoPoster) {
		t.Errorf("expected missing poster to be rendered as '-', got '%s'", lines[1])
	}
}

func TestRenderTableError(t *testing.T) {
	var buff bytes.Buffer

	if err := Render(&buff, FormatTable, se.State{ErrorMessage: se.MessageNoMovies}); err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	if e, g := se.MessageNoMovies+"\n", buff.String(); e != g {
		t.Errorf("output: expected '%s', got '%s'", e, g)
	}
}
