package app

import (
	"github.com/ghuser/homestock/pkg/cache"
	"github.com/ghuser/homestock/pkg/config"
	"github.com/ghuser/homestock/pkg/database"
	"github.com/ghuser/homestock/pkg/events"
	"github.com/ghuser/homestock/pkg/logger"
)

// Application holds shared infrastructure dependencies for all services.
// Pass to each service's Routes call during server initialization.
//
// Logging: app.Logger is backed by a trace-aware handler — use slog's context
// methods and trace_id, span_id, and request_id are injected automatically:
//
//	app.Logger.InfoContext(ctx, "barcode scanned", "code", code)
//	app.Logger.ErrorContext(ctx, "failed to save", "error", err)
//
// Use app.Logger.Info/Error (no context) only for startup and shutdown messages.
type Application struct {
	Config   *config.Config
	Db       *database.Database
	Logger   logger.Logger
	EventBus *events.EventBus
	Redis    *cache.RedisClient
}
