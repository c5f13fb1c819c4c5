package search

import (
	"bytes"
	"os"
	"strings"

	"github.com/VitorNoe/MovieSearchApp/internal/command"
	"github.com/gosimple/slug"
	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"
)

func Search() *cli.Command {
	return &cli.Command{
		Name:      "search",
		Usage:     "Search movies by title",
		ArgsUsage: "<title>",
		Flags: append(command.APIFlags(),
			&cli.StringFlag{
				Name:    "format",
				Value:   string(FormatTable),
				Aliases: []string{"f"},
				EnvVars: []string{"MOVIESEARCH_FORMAT"},
				Usage:   "Output format: table, json or yaml",
			},
			&cli.StringFlag{
				Name:    "match",
				Value:   "",
				Aliases: []string{"m"},
				Usage:   "Only display titles matching this glob pattern",
			},
			&cli.BoolFlag{
				Name:  "save",
				Usage: "Write the rendering to a file",
			},
			&cli.StringFlag{
				Name:      "output",
				Value:     "",
				Aliases:   []string{"o"},
				Usage:     "File written with --save, default to slug of the query",
				TakesFile: true,
			},
		),
		Action: func(cliCtx *cli.Context) error {
			query := strings.Join(cliCtx.Args().Slice(), " ")
			output := cliCtx.String("output")
			match := cliCtx.String("match")

			format, err := ParseFormat(cliCtx.String("format"))
			if err != nil {
				return errors.WithStack(err)
			}

			cfg, err := command.LoadConfig(cliCtx)
			if err != nil {
				return errors.WithStack(err)
			}

			controller, err := command.NewController(cliCtx.Context, cfg)
			if err != nil {
				return errors.WithStack(err)
			}

			defer controller.Close()

			controller.OnQueryChange(query)
			controller.TriggerSearch()
			controller.Wait()

			state := controller.State()

			state.Results, err = FilterByTitle(state.Results, match)
			if err != nil {
				return errors.WithStack(err)
			}

			var buff bytes.Buffer

			if err := Render(&buff, format, state); err != nil {
				return errors.Wrap(err, "could not render results")
			}

			if _, err := cliCtx.App.Writer.Write(buff.Bytes()); err != nil {
				return errors.WithStack(err)
			}

			if cliCtx.Bool("save") && !state.HasError() {
				if output == "" {
					output = slug.Make(query) + format.Extension()
				}

				if err := os.WriteFile(output, buff.Bytes(), 0644); err != nil {
					return errors.Wrapf(err, "failed to write results")
				}
			}

			if state.HasError() {
				return errors.New(state.ErrorMessage)
			}

			return nil
		},
	}
}
