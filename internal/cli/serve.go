package cli

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/localtalent/console/internal/api"
	"github.com/localtalent/console/internal/infrastructure/notify"
)

const shutdownTimeout = 10 * time.Second

func (r *runner) serveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the local console server",
		Long: `Serve the console API on localhost. The console drives a single
client session; notifications are collected for GET /notifications and a
failed refresh answers 401 with a redirect to the login route.

Swagger UI is served at /swagger/index.html and Prometheus metrics at /metrics.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			port, _ := cmd.Flags().GetString("port")
			if port == "" {
				port = r.cfg.Port
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			notices := notify.NewRecorder(0)
			routes := notify.NewRouteRecorder()
			surface := Surface{
				Notifier:  notify.Multi{notices, notify.NewLogger(r.log)},
				Navigator: routes,
			}
			app, err := Open(ctx, r.cfg, surface, r.log)
			if err != nil {
				return err
			}
			defer func() {
				if err := app.Close(context.WithoutCancel(ctx)); err != nil {
					r.log.Warn().Err(err).Msg("close client")
				}
			}()

			e := api.NewRouter(api.Deps{
				Auth:        app.Auth,
				Listings:    app.Listings,
				Bookings:    app.Bookings,
				Users:       app.Users,
				Notices:     notices,
				Routes:      routes,
				StoreDriver: r.cfg.Store.Driver,
				StorePinger: app.StorePinger,
				Upstream:    app.Client,
				Log:         r.log,
				Now:         r.opts.Now,
			})

			errCh := make(chan error, 1)
			go func() {
				r.log.Info().
					Str("port", port).
					Str("api_url", r.cfg.APIURL).
					Str("store", r.cfg.Store.Driver).
					Msg("console listening")
				errCh <- e.Start(":" + port)
			}()

			select {
			case err := <-errCh:
				if errors.Is(err, http.ErrServerClosed) {
					return nil
				}
				return err
			case <-ctx.Done():
			}

			r.log.Info().Msg("shutting down console")
			shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
			defer cancel()
			return e.Shutdown(shutdownCtx)
		},
	}
	cmd.Flags().String("port", "", "listen port (default $PORT)")
	return cmd
}
