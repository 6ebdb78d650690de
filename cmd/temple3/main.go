// Command temple3 runs the multi-tenant temple platform API.
package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/grandpajoe1980/temple3/internal/auth"
	"github.com/grandpajoe1980/temple3/internal/db"
	"github.com/grandpajoe1980/temple3/internal/events"
	"github.com/grandpajoe1980/temple3/internal/httpx"
	"github.com/grandpajoe1980/temple3/internal/messages"
	"github.com/grandpajoe1980/temple3/internal/temple"
	"github.com/grandpajoe1980/temple3/pkg/clientip"
	"github.com/grandpajoe1980/temple3/pkg/config"
	"github.com/grandpajoe1980/temple3/pkg/environment"
	"github.com/grandpajoe1980/temple3/pkg/httpserver"
	"github.com/grandpajoe1980/temple3/pkg/jwt"
	"github.com/grandpajoe1980/temple3/pkg/logger"
	"github.com/grandpajoe1980/temple3/pkg/pg"
	"github.com/grandpajoe1980/temple3/pkg/ratelimiter"
	"github.com/grandpajoe1980/temple3/pkg/requestid"
	"github.com/grandpajoe1980/temple3/pkg/tenant"
)

type appConfig struct {
	HTTP httpserver.Config
	DB   pg.Config

	Env       environment.Environment `env:"APP_ENV" envDefault:"development"`
	LogLevel  slog.Level              `env:"LOG_LEVEL" envDefault:"info"`
	JWTSecret string                  `env:"JWT_SECRET,required"`
	TokenTTL  time.Duration           `env:"TOKEN_TTL" envDefault:"24h"`

	RateLimitCapacity int           `env:"RATE_LIMIT_CAPACITY" envDefault:"100"`
	RateLimitRefill   int           `env:"RATE_LIMIT_REFILL" envDefault:"100"`
	RateLimitInterval time.Duration `env:"RATE_LIMIT_INTERVAL" envDefault:"1m"`
}

func main() {
	var cfg appConfig
	config.MustLoad(&cfg)

	log := logger.New(
		logger.WithLevel(cfg.LogLevel),
		logger.WithContextExtractors(
			requestid.LoggerExtractor(),
			environment.LoggerExtractor(),
			tenant.LoggerExtractor(),
			jwt.LoggerExtractor(),
		),
	)

	if err := run(context.Background(), cfg, log); err != nil {
		log.Error("server exited with error", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg appConfig, log *slog.Logger) error {
	pool, err := pg.Connect(ctx, cfg.DB)
	if err != nil {
		return err
	}
	defer pool.Close()

	if err := pg.Migrate(ctx, pool, db.Migrations(), cfg.DB, log); err != nil {
		return err
	}

	tokens, err := jwt.NewFromString(cfg.JWTSecret)
	if err != nil {
		return err
	}

	catalog := temple.NewRepository(pool)
	templeSvc := temple.NewService(catalog, log)
	templeHandler := temple.NewHandler(templeSvc)

	users := auth.NewRepository(pool)
	authSvc := auth.NewService(users, tokens, cfg.TokenTTL, log)
	authHandler := auth.NewHandler(authSvc)

	messageSvc := messages.NewService(messages.NewRepository(pool), users, log)
	messageHandler := messages.NewHandler(messageSvc)

	eventSvc := events.NewService(events.NewRepository(pool), log)
	eventHandler := events.NewHandler(eventSvc)

	limiterStore := ratelimiter.NewMemoryStore(5 * time.Minute)
	defer limiterStore.Close()
	limiter, err := ratelimiter.NewBucket(limiterStore, ratelimiter.Config{
		Capacity:       cfg.RateLimitCapacity,
		RefillRate:     cfg.RateLimitRefill,
		RefillInterval: cfg.RateLimitInterval,
	})
	if err != nil {
		return err
	}

	router := newRouter(routerDeps{
		log:            log,
		env:            cfg.Env,
		dbHealth:       pg.Healthcheck(pool),
		tokens:         tokens,
		catalog:        catalog,
		limiter:        limiter,
		templeHandler:  templeHandler,
		authHandler:    authHandler,
		messageHandler: messageHandler,
		eventHandler:   eventHandler,
	})

	srv := httpserver.NewFromConfig(cfg.HTTP, httpserver.WithLogger(log))
	return srv.Run(ctx, router)
}

type routerDeps struct {
	log            *slog.Logger
	env            environment.Environment
	dbHealth       func(context.Context) error
	tokens         *jwt.Service
	catalog        tenant.Provider
	limiter        *ratelimiter.Bucket
	templeHandler  *temple.Handler
	authHandler    *auth.Handler
	messageHandler *messages.Handler
	eventHandler   *events.Handler
}

func newRouter(deps routerDeps) http.Handler {
	r := chi.NewRouter()
	r.Use(requestid.Middleware)
	r.Use(environment.Middleware(deps.env))
	r.Use(chimw.Recoverer)

	r.Get("/health", httpserver.HealthCheckHandler(
		context.Background(), deps.log, deps.dbHealth,
	))

	r.Route("/api", func(r chi.Router) {
		r.Use(ratelimiter.Middleware(deps.limiter, clientip.GetIP))

		// Resolution runs on every API request; registration and
		// discovery work without an identifier, so resolution failures
		// there must not block the request.
		r.Use(tenant.Middleware(
			tenant.NewRequestResolver(),
			deps.catalog,
			tenant.WithErrorHandler(httpx.TenantErrorHandler),
			tenant.WithLogger(deps.log),
			tenant.WithSkipPaths("/api/tenants/search"),
		))

		r.Route("/tenants", func(r chi.Router) {
			deps.templeHandler.PublicRoutes(r)

			r.Route("/current", func(r chi.Router) {
				r.Use(tenant.RequireTenant(httpx.TenantErrorHandler))
				deps.templeHandler.CurrentReadRoutes(r)
				r.Group(func(r chi.Router) {
					r.Use(jwt.Middleware(deps.tokens, jwt.BearerTokenExtractor))
					r.Use(auth.RequireMembership(httpx.TenantErrorHandler))
					deps.templeHandler.CurrentWriteRoutes(r)
				})
			})
		})

		r.Route("/auth", func(r chi.Router) {
			r.Use(tenant.RequireTenant(httpx.TenantErrorHandler))
			deps.authHandler.PublicRoutes(r)
			r.Group(func(r chi.Router) {
				r.Use(jwt.Middleware(deps.tokens, jwt.BearerTokenExtractor))
				r.Use(auth.RequireMembership(httpx.TenantErrorHandler))
				deps.authHandler.ProtectedRoutes(r)
			})
		})

		r.Route("/messages", func(r chi.Router) {
			r.Use(tenant.RequireTenant(httpx.TenantErrorHandler))
			r.Use(jwt.Middleware(deps.tokens, jwt.BearerTokenExtractor))
			r.Use(auth.RequireMembership(httpx.TenantErrorHandler))
			deps.messageHandler.Routes(r)
		})

		r.Route("/events", func(r chi.Router) {
			r.Use(tenant.RequireTenant(httpx.TenantErrorHandler))
			deps.eventHandler.PublicRoutes(r)
			r.Group(func(r chi.Router) {
				r.Use(jwt.Middleware(deps.tokens, jwt.BearerTokenExtractor))
				r.Use(auth.RequireMembership(httpx.TenantErrorHandler))
				deps.eventHandler.ProtectedRoutes(r)
			})
		})
	})

	return r
}
