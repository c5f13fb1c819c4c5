package main

import (
	"github.com/VitorNoe/MovieSearchApp/internal/command"
	"github.com/VitorNoe/MovieSearchApp/internal/command/schema"
	"github.com/VitorNoe/MovieSearchApp/internal/command/search"
	"github.com/VitorNoe/MovieSearchApp/internal/command/serve"
)

var version = "dev"

func main() {
	command.Main(
		"moviesearch",
		version,
		"Search movies in the OMDb database",
		search.Search(),
		serve.Serve(),
		schema.Schema(),
	)
}
