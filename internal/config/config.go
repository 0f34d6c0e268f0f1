package config

import (
	"errors"
	"fmt"
	"os"
	"time"
	_ "time/tzdata"

	"gopkg.in/yaml.v3"

	"guild-analytics-service/internal/analytics/adapters/postgres"
	"guild-analytics-service/internal/analytics/core/usecase"
)

// Config holds the service configuration.
type Config struct {
	HTTP     HTTPConfig     `yaml:"http"`
	Postgres PostgresConfig `yaml:"postgres"`
	Engine   EngineConfig   `yaml:"engine"`
	Logging  LoggingConfig  `yaml:"logging"`
}

type HTTPConfig struct {
	Addr            string        `yaml:"addr"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
}

type PostgresConfig struct {
	DSN             string        `yaml:"dsn"`
	MaxOpenConns    int           `yaml:"max_open_conns"`
	MaxIdleConns    int           `yaml:"max_idle_conns"`
	ConnMaxLifetime time.Duration `yaml:"conn_max_lifetime"`
	// MigrateOnStart creates missing tables before serving.
	MigrateOnStart  bool          `yaml:"migrate_on_start"`
}

type EngineConfig struct {
	TickInterval time.Duration `yaml:"tick_interval"`

	// Timezone is an IANA name; "Local" uses the host zone.
	Timezone string `yaml:"timezone"`

	PageSize     int    `yaml:"page_size"`
	ReloadEvery  int    `yaml:"reload_every"`
	PhraseWindow int    `yaml:"phrase_window"`
}

type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Load reads a YAML config file at path and merges it with defaults. An empty
// path yields the defaults. Environment overrides are applied last.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	cfg.applyEnv(os.LookupEnv)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv(lookup func(string) (string, bool)) {
	if v, ok := lookup("POSTGRES_DSN"); ok && v != "" {
		c.Postgres.DSN = v
	}
	if v, ok := lookup("HTTP_ADDR"); ok && v != "" {
		c.HTTP.Addr = v
	}
	if v, ok := lookup("LOG_LEVEL"); ok && v != "" {
		c.Logging.Level = v
	}
	if v, ok := lookup("ANALYTICS_TIMEZONE"); ok && v != "" {
		c.Engine.Timezone = v
	}
}

var (
	ErrMissingDSN    = errors.New("postgres dsn is not set")
	ErrInvalidEngine = errors.New("invalid engine settings")
)

// Validate checks the settings that cannot be defaulted.
func (c *Config) Validate() error {
	if c.Postgres.DSN == "" {
		return ErrMissingDSN
	}
	if c.Engine.PageSize < 0 || c.Engine.ReloadEvery < 0 || c.Engine.TickInterval < 0 {
		return fmt.Errorf("%w: negative value", ErrInvalidEngine)
	}
	if c.Engine.PhraseWindow < 0 || c.Engine.PhraseWindow > 20 {
		return fmt.Errorf("%w: phrase_window must be between 1 and 20", ErrInvalidEngine)
	}
	if _, err := c.Location(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidEngine, err)
	}
	return nil
}

// Location resolves the configured timezone.
func (c *Config) Location() (*time.Location, error) {
	switch c.Engine.Timezone {
	case "", "Local":
		return time.Local, nil
	default:
		return time.LoadLocation(c.Engine.Timezone)
	}
}

func (c *Config) Pool() postgres.PoolConfig {
	return postgres.PoolConfig{
		MaxOpenConns:    c.Postgres.MaxOpenConns,
		MaxIdleConns:    c.Postgres.MaxIdleConns,
		ConnMaxLifetime: c.Postgres.ConnMaxLifetime,
	}
}

func (c *Config) EngineSettings() (usecase.EngineConfig, error) {
	loc, err := c.Location()
	if err != nil {
		return usecase.EngineConfig{}, err
	}
	return usecase.EngineConfig{
		Location:     loc,
		TickInterval: c.Engine.TickInterval,
		PageSize:     c.Engine.PageSize,
		PhraseWindow: c.Engine.PhraseWindow,
		ReloadEvery:  c.Engine.ReloadEvery,
	}, nil
}
