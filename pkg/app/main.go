package app

import (
	"github.com/gorilla/sessions"

	"github.com/ghuser/pizzaorder/pkg/cache"
	"github.com/ghuser/pizzaorder/pkg/config"
	"github.com/ghuser/pizzaorder/pkg/events"
	"github.com/ghuser/pizzaorder/pkg/logger"
	"github.com/ghuser/pizzaorder/pkg/telemetry"
)

// Application holds shared infrastructure dependencies for all services.
// Pass to all service Routes calls during server initialization.
//
// Logging: app.Logger is backed by a trace-aware handler. Use slog's context
// methods and trace_id, span_id, request_id and form_id are injected automatically:
//
//	app.Logger.InfoContext(ctx, "order submitted", "size", size)
//	app.Logger.ErrorContext(ctx, "failed to persist draft", "error", err)
//
// Use app.Logger.Info/Error (no context) only for startup and shutdown messages.
type Application struct {
	Config       *config.Config
	Logger       logger.Logger
	EventBus     *events.EventBus
	Redis        *cache.RedisClient // nil when REDIS_URL is empty
	SessionStore sessions.Store     // Redis-backed when Redis is configured, cookie-backed otherwise
	Metrics      *telemetry.OrderMetrics
}
