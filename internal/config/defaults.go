package config

import (
	"time"

	"guild-analytics-service/internal/analytics/core/domain"
	"guild-analytics-service/internal/analytics/core/usecase"
)

// DefaultConfig returns a Config populated with all default values.
func DefaultConfig() *Config {
	return &Config{
		HTTP: HTTPConfig{
			Addr:            ":8080",
			ShutdownTimeout: 5 * time.Second,
		},
		Postgres: PostgresConfig{
			MaxOpenConns:    20,
			MaxIdleConns:    10,
			ConnMaxLifetime: 30 * time.Minute,
		},
		Engine: EngineConfig{
			TickInterval: usecase.DefaultTickInterval,
			Timezone:     "Local",
			PageSize:     domain.PageValue,
			ReloadEvery:  10 * domain.PageValue,
			PhraseWindow: usecase.DefaultPhraseWindow,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
	}
}
