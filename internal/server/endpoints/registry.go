package endpoints

import (
	"github.com/jackzampolin/sommelier/internal/api"
)

// Config holds dependencies needed by some endpoints.
type Config struct {
	// AllowedOrigins is checked on WebSocket upgrades.
	AllowedOrigins []string
	// SwaggerSpecPath overrides the compiled-in OpenAPI document.
	SwaggerSpecPath string
}

// All returns all endpoint instances.
func All(cfg Config) []api.Endpoint {
	return []api.Endpoint{
		// Health endpoints
		&HealthEndpoint{},
		&ReadyEndpoint{},
		&StatusEndpoint{},

		// Recommendation endpoints
		&ListPersonasEndpoint{},
		&RecommendEndpoint{},
		&CompareEndpoint{},
		&BottleSearchEndpoint{},
		&WebSocketEndpoint{AllowedOrigins: cfg.AllowedOrigins},

		// Session endpoints
		&CreateSessionEndpoint{},
		&ListSessionsEndpoint{},
		&DeleteSessionEndpoint{},
		&SessionHistoryEndpoint{},
		&GetRecordEndpoint{},
		&ExportRecordEndpoint{},

		// Settings endpoints
		&ListSettingsEndpoint{},
		&GetSettingEndpoint{},

		// Metrics endpoints
		&ListMetricsEndpoint{},
		&MetricsSummaryEndpoint{},

		// Swagger/OpenAPI endpoints
		&SwaggerEndpoint{SpecPath: cfg.SwaggerSpecPath},
		&SwaggerUIEndpoint{},
	}
}

// SessionCommands returns endpoints for session operations.
// This groups session-related commands under "sessions" subcommand.
func SessionCommands() []api.Endpoint {
	return []api.Endpoint{
		&CreateSessionEndpoint{},
		&ListSessionsEndpoint{},
		&DeleteSessionEndpoint{},
		&SessionHistoryEndpoint{},
		&GetRecordEndpoint{},
		&ExportRecordEndpoint{},
	}
}

// SettingsCommands returns endpoints for settings operations.
// This groups settings-related commands under "settings" subcommand.
func SettingsCommands() []api.Endpoint {
	return []api.Endpoint{
		&ListSettingsEndpoint{},
		&GetSettingEndpoint{},
	}
}

// MetricsCommands returns endpoints for metrics operations.
func MetricsCommands() []api.Endpoint {
	return []api.Endpoint{
		&ListMetricsEndpoint{},
		&MetricsSummaryEndpoint{},
	}
}
