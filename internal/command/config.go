package command

import (
	"context"

	"github.com/VitorNoe/MovieSearchApp/internal/config"
	"github.com/VitorNoe/MovieSearchApp/pkg/omdb"
	"github.com/VitorNoe/MovieSearchApp/pkg/search"
	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"
)

// APIFlags are shared by the commands talking to the movie database. They
// take precedence over the configuration file and the environment.
func APIFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "api-key",
			Aliases: []string{"k"},
			Usage:   "OMDb API key",
		},
		&cli.StringFlag{
			Name:  "base-url",
			Usage: "OMDb API base url",
		},
		&cli.DurationFlag{
			Name:  "timeout",
			Usage: "HTTP timeout of a search request",
		},
	}
}

// LoadConfig resolves and validates the configuration for the running command.
func LoadConfig(cliCtx *cli.Context) (*config.Config, error) {
	cfg, err := config.Load(cliCtx.String("config"), cliCtx.String("env-file"))
	if err != nil {
		return nil, errors.WithStack(err)
	}

	if cliCtx.IsSet("api-key") {
		cfg.API.Key = cliCtx.String("api-key")
	}

	if cliCtx.IsSet("base-url") {
		cfg.API.BaseURL = cliCtx.String("base-url")
	}

	if cliCtx.IsSet("timeout") {
		cfg.API.Timeout = cliCtx.Duration("timeout")
	}

	if cliCtx.IsSet("address") {
		cfg.Server.Address = cliCtx.String("address")
	}

	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid configuration")
	}

	return cfg, nil
}

// NewController wires the OMDb transport, the repository and a search
// controller bound to ctx.
func NewController(ctx context.Context, cfg *config.Config) (*search.Controller, error) {
	client, err := omdb.NewClient(
		omdb.WithBaseURL(cfg.API.BaseURL),
		omdb.WithTimeout(cfg.API.Timeout),
	)
	if err != nil {
		return nil, errors.Wrap(err, "could not create omdb client")
	}

	repository := search.NewRepository(client, cfg.API.Key)

	return search.NewController(ctx, repository), nil
}
