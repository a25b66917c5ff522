package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/sethvargo/go-envconfig"
	"github.com/spf13/cobra"

	"github.com/localtalent/console/internal/core/domain"
	"github.com/localtalent/console/internal/infrastructure/config"
	"github.com/localtalent/console/internal/infrastructure/notify"
)

// Options are the process-level inputs of the command tree.
type Options struct {
	Lookuper envconfig.Lookuper
	Out      io.Writer
	Err      io.Writer
	// Logger builds the process logger once configuration is loaded. Nil
	// disables logging.
	Logger func(cfg *config.Config) zerolog.Logger
	Now    func() time.Time
}

// runner carries what every command needs once flags are parsed.
type runner struct {
	opts    Options
	cfg     *config.Config
	log     zerolog.Logger
	jsonOut bool
}

// NewRootCmd builds the localtalent command tree.
func NewRootCmd(opts Options) *cobra.Command {
	if opts.Lookuper == nil {
		opts.Lookuper = envconfig.OsLookuper()
	}
	if opts.Out == nil {
		opts.Out = os.Stdout
	}
	if opts.Err == nil {
		opts.Err = os.Stderr
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	r := &runner{opts: opts, log: zerolog.Nop()}

	root := &cobra.Command{
		Use:   "localtalent",
		Short: "LocalTalent marketplace client",
		Long: `Browse, book and manage services on the LocalTalent marketplace.

The session is kept between runs; sign in once with "localtalent login".

Examples:
  localtalent login --email ana@example.com --password secret1
  localtalent services browse --q logo
  localtalent bookings create 12 --date 2026-03-12 --time 10:00 --duration 2
  localtalent serve --port 8080`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.LoadFrom(cmd.Context(), r.opts.Lookuper)
			if err != nil {
				return err
			}
			r.cfg = cfg
			if r.opts.Logger != nil {
				r.log = r.opts.Logger(cfg)
			}
			return nil
		},
	}
	root.SetOut(opts.Out)
	root.SetErr(opts.Err)
	root.PersistentFlags().BoolVar(&r.jsonOut, "json", false, "print results as JSON")

	root.AddCommand(
		r.loginCmd(),
		r.registerCmd(),
		r.logoutCmd(),
		r.whoamiCmd(),
		r.servicesCmd(),
		r.bookingsCmd(),
		r.usersCmd(),
		r.serveCmd(),
	)
	return root
}

// open wires the client with terminal feedback: notifications and
// navigation hints go to stderr.
func (r *runner) open(cmd *cobra.Command) (*App, error) {
	surface := Surface{
		Notifier:  notify.NewPrinter(r.opts.Err),
		Navigator: notify.NewRoutePrinter(r.opts.Err),
	}
	return Open(cmd.Context(), r.cfg, surface, r.log)
}

// withApp runs fn against a freshly opened client and releases it after.
func (r *runner) withApp(cmd *cobra.Command, fn func(ctx context.Context, app *App) error) error {
	app, err := r.open(cmd)
	if err != nil {
		return err
	}
	defer func() {
		if err := app.Close(context.WithoutCancel(cmd.Context())); err != nil {
			r.log.Warn().Err(err).Msg("close client")
		}
	}()
	return fn(cmd.Context(), app)
}

var errSignedOut = errors.New(`not signed in; run "localtalent login"`)

// session returns the adopted identity or errSignedOut.
func session(app *App) (*domain.Session, error) {
	s, ok := app.Auth.Current()
	if !ok {
		return nil, fmt.Errorf("%w: %w", errSignedOut, domain.ErrNoSession)
	}
	return s, nil
}

func (r *runner) printJSON(v any) error {
	enc := json.NewEncoder(r.opts.Out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func (r *runner) printf(format string, args ...any) {
	fmt.Fprintf(r.opts.Out, format, args...)
}
