package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"

	"github.com/Black-And-White-Club/clubhouse/internal/observability"
)

// Config struct to hold the configuration settings
type Config struct {
	Postgres      PostgresConfig      `yaml:"postgres"`
	NATS          NATSConfig          `yaml:"nats"`
	Ops           OpsConfig           `yaml:"ops"`
	Events        EventsConfig        `yaml:"events"`
	Observability ObservabilityConfig `yaml:"observability"`
}

// PostgresConfig holds Postgres configuration.
type PostgresConfig struct {
	DSN          string `yaml:"dsn" env:"DATABASE_URL"`
	MaxOpenConns int    `yaml:"max_open_conns" env:"DATABASE_MAX_OPEN_CONNS"`
}

// NATSConfig holds NATS configuration.
type NATSConfig struct {
	URL        string        `yaml:"url" env:"NATS_URL"`
	QueueGroup string        `yaml:"queue_group" env:"NATS_QUEUE_GROUP"`
	AckWait    time.Duration `yaml:"ack_wait" env:"NATS_ACK_WAIT"`
	// InMemory swaps NATS for a process-local bus.
	InMemory bool `yaml:"in_memory" env:"NATS_IN_MEMORY"`
}

// OpsConfig holds the health/metrics HTTP server configuration.
type OpsConfig struct {
	Address        string  `yaml:"address" env:"OPS_ADDRESS"`
	RateLimit      float64 `yaml:"rate_limit" env:"OPS_RATE_LIMIT"`
	RateLimitBurst int     `yaml:"rate_limit_burst" env:"OPS_RATE_LIMIT_BURST"`
}

// EventsConfig holds event admission settings.
type EventsConfig struct {
	DefaultTimezone string `yaml:"default_timezone" env:"EVENTS_DEFAULT_TIMEZONE"`
	// ActorRateLimit caps requests per second per caller; 0 disables it.
	ActorRateLimit      float64 `yaml:"actor_rate_limit" env:"EVENTS_ACTOR_RATE_LIMIT"`
	ActorRateLimitBurst int     `yaml:"actor_rate_limit_burst" env:"EVENTS_ACTOR_RATE_LIMIT_BURST"`
}

// ObservabilityConfig holds configuration for observability components
type ObservabilityConfig struct {
	Environment     string  `yaml:"environment" env:"ENV"`
	LogLevel        string  `yaml:"log_level" env:"LOG_LEVEL"`
	LogFormat       string  `yaml:"log_format" env:"LOG_FORMAT"`
	MetricsEnabled  bool    `yaml:"metrics_enabled" env:"METRICS_ENABLED"`
	TraceSampleRate float64 `yaml:"trace_sample_rate" env:"TRACE_SAMPLE_RATE"`
}

// LoadConfig loads the configuration from a YAML file, then applies
// environment overrides. When the file does not exist the configuration is
// built from the environment alone.
func LoadConfig(filename string) (*Config, error) {
	return LoadConfigWith(filename)
}

// LoadConfigWith is LoadConfig with command-line overrides applied after the
// environment and before validation.
func LoadConfigWith(filename string, overrides ...func(*Config)) (*Config, error) {
	cfg := defaults()

	data, err := os.ReadFile(filename)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to unmarshal config: %w", err)
		}
	case errors.Is(err, os.ErrNotExist):
		// env only
	default:
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse environment: %w", err)
	}
	for _, override := range overrides {
		override(cfg)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func defaults() *Config {
	return &Config{
		Postgres: PostgresConfig{MaxOpenConns: 10},
		NATS: NATSConfig{
			QueueGroup: "clubhouse",
			AckWait:    30 * time.Second,
		},
		Ops: OpsConfig{
			Address:        ":8080",
			RateLimit:      20,
			RateLimitBurst: 40,
		},
		Events: EventsConfig{
			DefaultTimezone:     "UTC",
			ActorRateLimit:      5,
			ActorRateLimitBurst: 10,
		},
		Observability: ObservabilityConfig{
			Environment:     "development",
			LogLevel:        "info",
			LogFormat:       "json",
			MetricsEnabled:  true,
			TraceSampleRate: 0.1,
		},
	}
}

// Validate checks required settings.
func (c *Config) Validate() error {
	if c.Postgres.DSN == "" {
		return errors.New("DATABASE_URL environment variable not set")
	}
	if c.NATS.URL == "" && !c.NATS.InMemory {
		return errors.New("NATS_URL environment variable not set")
	}
	if c.Observability.TraceSampleRate < 0 || c.Observability.TraceSampleRate > 1 {
		return fmt.Errorf("invalid trace sample rate: %v", c.Observability.TraceSampleRate)
	}
	return nil
}

// ToObsConfig maps the application config onto the observability config.
func ToObsConfig(appCfg *Config) observability.Config {
	return observability.Config{
		ServiceName:     "clubhouse",
		Environment:     appCfg.Observability.Environment,
		Version:         Version,
		LogLevel:        appCfg.Observability.LogLevel,
		LogFormat:       appCfg.Observability.LogFormat,
		TraceSampleRate: appCfg.Observability.TraceSampleRate,
		MetricsEnabled:  appCfg.Observability.MetricsEnabled,
	}
}

// Version is injected via -ldflags at build time.
var Version = "dev"
