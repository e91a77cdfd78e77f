// Package config manages environment-sourced configuration.
//
// It reads variables (optionally from a `.env` file via godotenv's
// autoload), maps them into structured Go types with koanf, and
// validates required values so the application fails fast on bad or
// missing configuration. Boundary policy knobs (asset base URL,
// pagination bounds, sanitizer limits) live here with fixed fallbacks.
package config

import (
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	_ "github.com/joho/godotenv/autoload"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
	"github.com/rs/zerolog"
)

// envPrefix scopes which environment variables are read.
// ADMINAPI_SERVER.PORT maps to Config.Server.Port.
const envPrefix = "ADMINAPI_"

// Config is the root configuration object.
//
// `koanf` tags control mapping from env keys; `validate` tags are
// enforced by go-playground/validator. Optional blocks are pointers and
// receive defaults when absent.
type Config struct {
	Primary       Primary              `koanf:"primary" validate:"required"`
	Server        ServerConfig         `koanf:"server" validate:"required"`
	Database      DatabaseConfig       `koanf:"database" validate:"required"`
	Redis         RedisConfig          `koanf:"redis" validate:"required"`
	Assets        AssetsConfig         `koanf:"assets"`
	Boundary      *BoundaryConfig      `koanf:"boundary"`
	Sync          *SyncConfig          `koanf:"sync"`
	Observability *ObservabilityConfig `koanf:"observability"`
}

// Primary holds top-level information about the runtime environment.
type Primary struct {
	Env string `koanf:"env" validate:"required"`
}

// ServerConfig groups HTTP server runtime settings. Timeouts are
// stored as seconds.
type ServerConfig struct {
	Port               string   `koanf:"port" validate:"required"`
	ReadTimeout        int      `koanf:"read_timeout" validate:"required"`
	WriteTimeout       int      `koanf:"write_timeout" validate:"required"`
	IdleTimeout        int      `koanf:"idle_timeout" validate:"required"`
	CORSAllowedOrigins []string `koanf:"cors_allowed_origins" validate:"required"`
	RateLimitPerSecond float64  `koanf:"rate_limit_per_second"`
	RateLimitBurst     int      `koanf:"rate_limit_burst"`
}

// DatabaseConfig contains PostgreSQL connection parameters and pool tuning.
type DatabaseConfig struct {
	Host            string `koanf:"host" validate:"required"`
	Port            int    `koanf:"port" validate:"required"`
	User            string `koanf:"user" validate:"required"`
	Password        string `koanf:"password" validate:"required"`
	Name            string `koanf:"name" validate:"required"`
	SSLMode         string `koanf:"ssl_mode" validate:"required"`
	MaxOpenConns    int    `koanf:"max_open_conns" validate:"required"`
	MaxIdleConns    int    `koanf:"max_idle_conns" validate:"required"`
	ConnMaxLifetime int    `koanf:"conn_max_lifetime" validate:"required"`
	ConnMaxIdleTime int    `koanf:"conn_max_idle_time" validate:"required"`
}

// RedisConfig contains Redis connection details ("host:port").
type RedisConfig struct {
	Address string `koanf:"address" validate:"required"`
}

// AssetsConfig configures egress URL materialization.
//
// BaseURL is the externally resolvable prefix for storage-relative
// paths. When absent, materialization is disabled and stored values
// leave the service as-is. A missing URL beats a broken response, so
// this block is intentionally optional.
type AssetsConfig struct {
	BaseURL string `koanf:"base_url"`
}

// BoundaryConfig tunes the ingress boundary policies. Optional; zero
// values select the fixed fallbacks in the pagination and sanitize
// packages.
type BoundaryConfig struct {
	MaxPage         int `koanf:"max_page"`
	MaxLimit        int `koanf:"max_limit"`
	MaxSearchLength int `koanf:"max_search_length"`
	MaxStringLength int `koanf:"max_string_length"`
}

// SyncConfig configures the cron-based user synchronization job.
// Optional: without an upstream URL the job is not scheduled.
type SyncConfig struct {
	// UpstreamURL is the directory endpoint users are pulled from.
	UpstreamURL string `koanf:"upstream_url"`

	// Schedule is a cron expression; default runs hourly.
	Schedule string `koanf:"schedule"`
}

// Load reads, unmarshals, validates and defaults the configuration.
// Errors during loading are fatal: there is no sensible way to run
// with a broken config.
func Load() (*Config, error) {
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

	k := koanf.New(".")

	err := k.Load(env.Provider(envPrefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, envPrefix))
	}), nil)
	if err != nil {
		logger.Fatal().Err(err).Msg("Could not load initial env variables.")
	}

	mainConfig := &Config{}
	if err := k.Unmarshal("", mainConfig); err != nil {
		logger.Fatal().Err(err).Msg("Could not unmarshal main config.")
	}

	validate := validator.New()
	if err := validate.Struct(mainConfig); err != nil {
		logger.Fatal().Err(err).Msg("Config validation failed.")
	}

	if mainConfig.Server.RateLimitPerSecond <= 0 {
		mainConfig.Server.RateLimitPerSecond = 50
	}
	if mainConfig.Server.RateLimitBurst <= 0 {
		mainConfig.Server.RateLimitBurst = 100
	}

	if mainConfig.Boundary == nil {
		mainConfig.Boundary = &BoundaryConfig{}
	}
	if mainConfig.Sync == nil {
		mainConfig.Sync = &SyncConfig{}
	}
	if mainConfig.Sync.Schedule == "" {
		mainConfig.Sync.Schedule = "@hourly"
	}

	if mainConfig.Observability == nil {
		mainConfig.Observability = DefaultObservabilityConfig()
	}

	// Service identity is forced so telemetry is labelled consistently
	// regardless of what the environment sets.
	mainConfig.Observability.ServiceName = "admin-api"
	mainConfig.Observability.Environment = mainConfig.Primary.Env

	if err := mainConfig.Observability.Validate(); err != nil {
		logger.Fatal().Err(err).Msg("invalid observability config")
	}

	return mainConfig, nil
}
