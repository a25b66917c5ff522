// Package cli is the localtalent command line: terminal commands over the
// marketplace API plus the serve command that hosts the local console.
package cli

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/localtalent/console/internal/core/ports"
	"github.com/localtalent/console/internal/core/request"
	"github.com/localtalent/console/internal/core/service"
	"github.com/localtalent/console/internal/infrastructure/apiclient"
	"github.com/localtalent/console/internal/infrastructure/config"
	"github.com/localtalent/console/internal/infrastructure/db/file"
	"github.com/localtalent/console/internal/infrastructure/db/memory"
	"github.com/localtalent/console/internal/infrastructure/db/mongo"
	"github.com/localtalent/console/internal/infrastructure/db/redis"
)

// Surface is where notifications and forced navigation end up: the terminal
// for regular commands, recorders for the console server.
type Surface struct {
	Notifier  ports.Notifier
	Navigator ports.Navigator
}

// App is one wired client: adapter, stores and services sharing one session.
type App struct {
	Config *config.Config

	Client      *apiclient.Client
	Store       ports.SessionStore
	StorePinger ports.Pinger

	Auth     *service.AuthService
	Listings *service.ListingService
	Bookings *service.BookingService
	Users    *service.UserService

	closers []func(context.Context) error
}

// Open wires the client for cfg and restores any stored session.
func Open(ctx context.Context, cfg *config.Config, s Surface, log zerolog.Logger) (*App, error) {
	app := &App{Config: cfg}

	if err := app.openStore(ctx, log); err != nil {
		return nil, err
	}

	jar, err := apiclient.NewFileJar(cfg.CookieFile(), cfg.APIURL, log.With().Str("component", "cookiejar").Logger())
	if err != nil {
		_ = app.Close(ctx)
		return nil, err
	}

	client, err := apiclient.New(cfg.APIURL, app.Store,
		apiclient.WithTimeout(cfg.HTTPTimeout),
		apiclient.WithCookieJar(jar),
		apiclient.WithNavigator(s.Navigator),
		apiclient.WithLogger(log.With().Str("component", "apiclient").Logger()),
	)
	if err != nil {
		_ = app.Close(ctx)
		return nil, err
	}
	app.Client = client

	helper := request.NewHelper(client, s.Notifier, log.With().Str("component", "request").Logger())
	app.Auth = service.NewAuthService(helper, app.Store, s.Navigator, log.With().Str("component", "auth").Logger())
	app.Listings = service.NewListingService(helper, log)
	app.Bookings = service.NewBookingService(helper, log)
	app.Users = service.NewUserService(helper)

	app.Auth.Init(ctx)
	return app, nil
}

func (a *App) openStore(ctx context.Context, log zerolog.Logger) error {
	cfg := a.Config
	switch cfg.Store.Driver {
	case config.DriverFile:
		a.Store = file.NewSessionStore(cfg.SessionFile())
	case config.DriverMemory:
		a.Store = memory.NewSessionStore()
	case config.DriverRedis:
		client, err := redis.Connect(ctx, redis.Config{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			return fmt.Errorf("open session store: %w", err)
		}
		store := redis.NewSessionStore(client, cfg.Redis.Prefix)
		a.Store, a.StorePinger = store, store
		a.closers = append(a.closers, func(context.Context) error { return client.Close() })
	case config.DriverMongo:
		client, db, err := mongo.Connect(ctx, mongo.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
		if err != nil {
			return fmt.Errorf("open session store: %w", err)
		}
		store := mongo.NewSessionStore(db, mongo.DefaultSlot)
		a.Store, a.StorePinger = store, store
		a.closers = append(a.closers, client.Disconnect)
	default:
		return fmt.Errorf("open session store: unknown driver %q", cfg.Store.Driver)
	}
	log.Debug().Str("driver", cfg.Store.Driver).Msg("session store ready")
	return nil
}

// Close drops the in-memory identity and releases store connections. The
// stored session is kept for the next run.
func (a *App) Close(ctx context.Context) error {
	if a.Auth != nil {
		a.Auth.Teardown()
	}
	var firstErr error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](ctx); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	a.closers = nil
	return firstErr
}
