package app

import (
	"github.com/ghuser/itemtracker/pkg/cache"
	"github.com/ghuser/itemtracker/pkg/config"
	"github.com/ghuser/itemtracker/pkg/database"
	"github.com/ghuser/itemtracker/pkg/events"
	"github.com/ghuser/itemtracker/pkg/logger"
)

// Application holds shared infrastructure dependencies for all services.
// Pass it to ItemRoutes and the event subscribers during server start-up.
//
// Logging: app.Logger is backed by a trace-aware handler. Use the context
// methods so trace_id, span_id and request_id are attached:
//
//	app.Logger.InfoContext(ctx, "item saved", "item_id", id)
type Application struct {
	Config   *config.Config
	Db       *database.Database // nil when STORE_DRIVER=memory
	Logger   logger.Logger
	EventBus *events.EventBus
	Redis    *cache.RedisClient // nil when REDIS_URL is empty
}

// IsProduction reports whether 5xx messages must be masked.
func (a *Application) IsProduction() bool {
	return a.Config != nil && a.Config.Environment == config.EnvProduction
}
