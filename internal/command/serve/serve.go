package serve

import (
	"context"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/VitorNoe/MovieSearchApp/internal/command"
	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"
)

const shutdownTimeout = 10 * time.Second

func Serve() *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Expose a search controller over HTTP and WebSocket",
		Flags: append(command.APIFlags(),
			&cli.StringFlag{
				Name:    "address",
				Aliases: []string{"a"},
				Usage:   "Listening address",
			},
		),
		Action: func(cliCtx *cli.Context) error {
			cfg, err := command.LoadConfig(cliCtx)
			if err != nil {
				return errors.WithStack(err)
			}

			ctx, stop := signal.NotifyContext(cliCtx.Context, syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			controller, err := command.NewController(ctx, cfg)
			if err != nil {
				return errors.WithStack(err)
			}

			defer controller.Close()

			server := &http.Server{
				Addr:        cfg.Server.Address,
				Handler:     NewHandler(controller),
				ReadTimeout: 15 * time.Second,
			}

			errCh := make(chan error, 1)

			go func() {
				slog.InfoContext(ctx, "starting server", slog.String("address", cfg.Server.Address))
				if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					errCh <- errors.WithStack(err)
				}
				close(errCh)
			}()

			select {
			case err := <-errCh:
				if err != nil {
					return errors.Wrap(err, "server failed")
				}
				return nil
			case <-ctx.Done():
			}

			slog.InfoContext(ctx, "shutting down")

			// Shutdown does not track hijacked connections, closing the
			// controller ends the state streams.
			controller.Close()

			shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()

			if err := server.Shutdown(shutdownCtx); err != nil {
				return errors.Wrap(err, "could not shutdown server")
			}

			return nil
		},
	}
}
