package api

import (
	"context"
	"time"

	sentryecho "github.com/getsentry/sentry-go/echo"
	"github.com/google/uuid"
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"
	"golang.org/x/time/rate"

	_ "github.com/hopebloom/auth-service/docs"
	"github.com/hopebloom/auth-service/internal/api/handler"
	"github.com/hopebloom/auth-service/internal/api/middleware"
	"github.com/hopebloom/auth-service/internal/core/domain"
	"github.com/hopebloom/auth-service/internal/core/ports"
)

// Deps is everything the router needs from main.
type Deps struct {
	Log    zerolog.Logger
	Users  ports.UserService
	Tokens ports.TokenVerifier

	// Checks back the readiness probe, keyed by dependency name.
	Checks map[string]func(ctx context.Context) error

	// RateLimitRPS <= 0 disables the per-IP limiter on /api/auth.
	RateLimitRPS   float64
	RateLimitBurst int

	// Sentry enables the sentryecho middleware. sentry.Init must already
	// have been called.
	Sentry bool

	// Registerer and Gatherer default to the Prometheus globals.
	Registerer prometheus.Registerer
	Gatherer   prometheus.Gatherer
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(d Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = NewHTTPErrorHandler(d.Log)

	if d.Registerer == nil {
		d.Registerer = prometheus.DefaultRegisterer
	}
	if d.Gatherer == nil {
		d.Gatherer = prometheus.DefaultGatherer
	}

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	if d.Sentry {
		e.Use(sentryecho.New(sentryecho.Options{Repanic: true}))
	}
	e.Use(echomiddleware.RequestIDWithConfig(echomiddleware.RequestIDConfig{
		Generator: uuid.NewString,
	}))
	e.Use(requestLogger(d.Log))
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOriginFunc:  func(string) (bool, error) { return true, nil },
		AllowCredentials: true,
		AllowHeaders:     []string{echo.HeaderAuthorization, echo.HeaderContentType},
	}))
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Subsystem:  "http",
		Registerer: d.Registerer,
		Skipper: func(c echo.Context) bool {
			return c.Path() == "/metrics"
		},
	}))

	// --- Ops ---
	e.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{Gatherer: d.Gatherer}))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	// --- Health probes (no auth required) ---
	checks := make(map[string]handler.Check, len(d.Checks))
	for name, fn := range d.Checks {
		checks[name] = fn
	}
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(checks)

	e.GET("/api/health", healthHandler.Liveness)
	e.GET("/api/health/ready", readinessHandler.Readiness)

	// --- Auth routes ---
	users := handler.NewUserHandler(d.Users)
	auth := e.Group("/api/auth")
	if d.RateLimitRPS > 0 {
		auth.Use(echomiddleware.RateLimiterWithConfig(echomiddleware.RateLimiterConfig{
			Store: echomiddleware.NewRateLimiterMemoryStoreWithConfig(echomiddleware.RateLimiterMemoryStoreConfig{
				Rate:      rate.Limit(d.RateLimitRPS),
				Burst:     d.RateLimitBurst,
				ExpiresIn: 3 * time.Minute,
			}),
		}))
	}

	auth.POST("/register", users.Register)
	auth.POST("/login", users.Login)
	auth.GET("/profile", users.Profile, middleware.Protect(d.Tokens))
	auth.GET("/admin", users.Admin, middleware.Protect(d.Tokens, domain.RoleAdmin))
	auth.POST("/assign-admin", users.AssignAdmin, middleware.Protect(d.Tokens, domain.RoleSuperuser))
	auth.GET("/users", users.ListUsers, middleware.Protect(d.Tokens, domain.RoleSuperuser))

	return e
}

func requestLogger(log zerolog.Logger) echo.MiddlewareFunc {
	return echomiddleware.RequestLoggerWithConfig(echomiddleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogRemoteIP:  true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v echomiddleware.RequestLoggerValues) error {
			ev := log.Info()
			if v.Status >= 500 {
				ev = log.Error().Err(v.Error)
			}
			ev.Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Str("request_id", v.RequestID).
				Str("remote_ip", v.RemoteIP).
				Msg("request")
			return nil
		},
	})
}
