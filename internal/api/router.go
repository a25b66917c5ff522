package api

import (
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/localtalent/console/internal/api/docs"
	"github.com/localtalent/console/internal/api/handler"
	"github.com/localtalent/console/internal/api/middleware"
	"github.com/localtalent/console/internal/core/domain"
	"github.com/localtalent/console/internal/core/ports"
	"github.com/localtalent/console/internal/infrastructure/notify"
)

// Deps are the collaborators of the console routes.
type Deps struct {
	Auth     ports.AuthService
	Listings ports.ListingService
	Bookings ports.BookingService
	Users    ports.UserService

	// Notices collects notifications for GET /notifications.
	Notices *notify.Recorder
	// Routes records the navigation the adapter forces on refresh failure.
	Routes *notify.RouteRecorder

	StoreDriver string
	StorePinger ports.Pinger
	Upstream    ports.Pinger

	Log zerolog.Logger
	Now func() time.Time
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(d Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HTTPErrorHandler = NewHTTPErrorHandler(d.Log)
	e.Validator = handler.NewValidator()

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echoprometheus.NewMiddleware("localtalent_console"))
	e.Use(requestLogger(d.Log))

	// --- Dependencies ---
	requireSession := middleware.RequireSession(d.Auth, d.Log)
	sessionExpiry := middleware.SessionExpiry(d.Routes, d.Auth)

	authHandler := handler.NewAuthHandler(d.Auth)
	serviceHandler := handler.NewServiceHandler(d.Listings, d.Bookings, d.Now)
	adminHandler := handler.NewAdminHandler(d.Listings, d.Bookings, d.Users, d.Log)
	notificationHandler := handler.NewNotificationHandler(d.Notices)

	// --- Health probes and tooling (no session required) ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(d.StoreDriver, d.StorePinger, d.Upstream)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	// --- Auth routes ---
	e.POST("/auth/register", authHandler.Register)
	e.POST("/auth/login", authHandler.Login)
	e.POST("/auth/logout", authHandler.Logout)
	e.GET("/auth/me", authHandler.Me, requireSession)

	e.GET("/notifications", notificationHandler.Drain)

	// --- Public catalogue ---
	services := e.Group("/services", sessionExpiry)
	services.GET("", serviceHandler.Browse)
	services.GET("/:id", serviceHandler.Show)
	services.GET("/:id/quote", serviceHandler.Quote)
	services.POST("/:id/bookings", serviceHandler.Book, requireSession)

	// --- Admin area ---
	admin := e.Group("/admin", sessionExpiry, requireSession)
	admin.GET("/tables/:endpoint", adminHandler.Table)
	admin.POST("/tables/:endpoint/:id/:action", adminHandler.RowAction)
	admin.POST("/services", adminHandler.CreateService)
	admin.PUT("/services/:id", adminHandler.UpdateService)
	admin.DELETE("/services/:id", adminHandler.DeleteService)
	admin.GET("/users", adminHandler.Users, middleware.RBAC(domain.RoleAdmin))
	admin.DELETE("/users/:id", adminHandler.DeleteUser, middleware.RBAC(domain.RoleAdmin))

	return e
}

// requestLogger logs every request with zerolog.
func requestLogger(log zerolog.Logger) echo.MiddlewareFunc {
	return echomiddleware.RequestLoggerWithConfig(echomiddleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v echomiddleware.RequestLoggerValues) error {
			evt := log.Info()
			if v.Error != nil {
				evt = log.Warn().Err(v.Error)
			}
			evt.
				Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Str("request_id", v.RequestID).
				Msg("request")
			return nil
		},
	})
}
