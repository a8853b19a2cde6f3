package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	httpSwagger "github.com/swaggo/http-swagger/v2"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"golang.org/x/sync/errgroup"

	_ "github.com/ghuser/pizzaorder/docs/swagger"
	"github.com/ghuser/pizzaorder/pkg/app"
	"github.com/ghuser/pizzaorder/pkg/cache"
	"github.com/ghuser/pizzaorder/pkg/config"
	"github.com/ghuser/pizzaorder/pkg/events"
	"github.com/ghuser/pizzaorder/pkg/httpx"
	"github.com/ghuser/pizzaorder/pkg/logger"
	"github.com/ghuser/pizzaorder/pkg/session"
	"github.com/ghuser/pizzaorder/pkg/telemetry"
	orderApi "github.com/ghuser/pizzaorder/services/order/application/api"
	"github.com/ghuser/pizzaorder/services/order/application/subscribers"
)

const (
	sweepInterval   = time.Minute
	shutdownTimeout = 30 * time.Second
)

// @title					Bloom Pizza Order API
// @version				1.0
// @description			Order form API backing the Bloom Pizza web shell.
// @license.name			MIT
// @license.url			https://opensource.org/licenses/MIT
// @host					localhost:8080
// @BasePath				/api
// @schemes				http https
func main() {
	if err := run(); err != nil {
		slog.Error("pizzaorder web stopped", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if err := config.ValidateForProduction(cfg); err != nil {
		return err
	}

	log := logger.New(cfg)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Telemetry: OTel tracing + metrics
	otelShutdown, metricsHandler, err := telemetry.Setup(ctx, cfg)
	if err != nil {
		return err
	}
	defer otelShutdown(context.Background()) //nolint:errcheck

	// Crash reporting: Sentry (optional, log and continue on failure)
	if err := telemetry.SetupSentry(cfg); err != nil {
		log.Warn("failed to setup sentry, continuing without crash reporting", "error", err)
	}
	defer telemetry.SentryFlush()

	metrics, err := telemetry.NewOrderMetrics(nil)
	if err != nil {
		return err
	}

	var health httpx.HealthChecks
	redisClient, err := cache.NewRedisClient(cfg)
	switch {
	case errors.Is(err, cache.ErrRedisDisabled):
		redisClient = nil
		log.Info("redis disabled, drafts are kept in memory only")
	case err != nil:
		return err
	default:
		defer redisClient.Close() //nolint:errcheck
		health.Redis = redisClient
		log.Info("redis connected")
	}

	eventBus := events.NewEventBus(log)
	defer eventBus.Close() //nolint:errcheck
	health.EventBus = eventBus

	if err := subscribers.RegisterAudit(ctx, eventBus, log); err != nil {
		return err
	}

	appConfig := &app.Application{
		Config:   cfg,
		Logger:   log,
		EventBus: eventBus,
		Redis:    redisClient,
		Metrics:  metrics,
	}
	var sessionClient *redis.Client
	backend := "cookie"
	if redisClient != nil {
		sessionClient, backend = redisClient.Client(), "redis"
	}
	appConfig.SessionStore = session.NewStore(sessionClient,
		[]byte(cfg.SessionAuthKey),
		[]byte(cfg.SessionEncryptionKey),
		cfg.Environment == config.EnvProduction,
	)
	log.Info("session store initialized", "backend", backend)

	r := httpx.NewRouter(
		httpx.ServerConfig{
			ServiceName:        cfg.ServiceName,
			IsDevelopment:      cfg.Environment == config.EnvDevelopment,
			CORSAllowedOrigins: cfg.CORSAllowedOrigins,
		},
		logger.Middleware(log),
		logger.Recovery(log),
		telemetry.SentryMiddleware(),
		otelhttp.NewMiddleware(cfg.ServiceName),
	)

	r.Get("/health", httpx.HealthHandler(health))
	r.Get("/metrics", metricsHandler.ServeHTTP)
	r.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))
	svcs := orderApi.OrderRoutes(r, appConfig)

	srv := httpx.NewServer(cfg.Addr, r)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("server listening", "addr", srv.Addr, "env", cfg.Environment, "order_endpoint", cfg.OrderEndpoint)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		return svcs.Forms.Run(gctx, sweepInterval)
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Info("shutting down...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	log.Info("server stopped")
	return nil
}
