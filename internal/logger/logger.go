// Package logger configures the application's logging and
// observability plumbing.
//
// It builds the zerolog root logger (console output for local
// development, JSON for everything else), initializes the optional New
// Relic application, and forwards logs to New Relic via the
// logcontext-v2 zerolog writer when enabled.
package logger

import (
	"fmt"
	"os"
	"time"

	"github.com/edustack/admin-api/internal/config"
	"github.com/newrelic/go-agent/v3/integrations/logcontext-v2/zerologWriter"
	"github.com/newrelic/go-agent/v3/newrelic"
	"github.com/rs/zerolog"
)

// LoggerService owns the New Relic application instance (nil when New
// Relic is not configured) and hands out the root logger.
type LoggerService struct {
	app *newrelic.Application
}

// NewLoggerService initializes New Relic when a license key is
// configured. Without a key the service still works; GetApplication
// returns nil and every integration downgrades to a no-op.
func NewLoggerService(cfg *config.ObservabilityConfig) (*LoggerService, error) {
	if cfg.NewRelic.LicenseKey == "" {
		return &LoggerService{}, nil
	}

	opts := []newrelic.ConfigOption{
		newrelic.ConfigAppName(cfg.ServiceName),
		newrelic.ConfigLicense(cfg.NewRelic.LicenseKey),
		newrelic.ConfigAppLogForwardingEnabled(cfg.NewRelic.AppLogForwardingEnabled),
		newrelic.ConfigDistributedTracerEnabled(cfg.NewRelic.DistributedTracingEnabled),
	}
	if cfg.NewRelic.DebugLogging {
		opts = append(opts, newrelic.ConfigDebugLogger(os.Stderr))
	}

	app, err := newrelic.NewApplication(opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize new relic: %w", err)
	}

	return &LoggerService{app: app}, nil
}

// GetApplication returns the New Relic application, or nil when New
// Relic is disabled.
func (ls *LoggerService) GetApplication() *newrelic.Application {
	if ls == nil {
		return nil
	}
	return ls.app
}

// New builds the root zerolog logger according to the observability
// config. When the LoggerService carries a New Relic application and
// log forwarding is enabled, output is routed through the zerologWriter
// so logs arrive decorated with trace linking metadata.
func New(cfg *config.ObservabilityConfig, ls *LoggerService) zerolog.Logger {
	level, err := zerolog.ParseLevel(cfg.GetLogLevel())
	if err != nil {
		level = zerolog.InfoLevel
	}

	var logger zerolog.Logger
	switch {
	case ls.GetApplication() != nil && cfg.NewRelic.AppLogForwardingEnabled:
		writer := zerologWriter.New(os.Stdout, ls.GetApplication())
		logger = zerolog.New(writer)
	case cfg.Logging.Format == "console":
		logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339})
	default:
		logger = zerolog.New(os.Stdout)
	}

	return logger.Level(level).With().
		Timestamp().
		Str("service", cfg.ServiceName).
		Str("env", cfg.Environment).
		Logger()
}

// WithTraceContext returns a child logger carrying the New Relic trace
// and span identifiers, so log lines can be correlated with traces.
func WithTraceContext(logger zerolog.Logger, txn *newrelic.Transaction) zerolog.Logger {
	if txn == nil {
		return logger
	}
	md := txn.GetTraceMetadata()
	return logger.With().
		Str("trace.id", md.TraceID).
		Str("span.id", md.SpanID).
		Logger()
}

// NewPgxLogger builds the logger used for SQL query tracing. It writes
// human-readable output since query logging only runs in local env.
func NewPgxLogger(level zerolog.Level) zerolog.Logger {
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}).
		Level(level).With().
		Timestamp().
		Str("component", "pgx").
		Logger()
}

// GetPgxTraceLogLevel maps a zerolog level onto pgx tracelog's level
// scale (tracelog.LogLevelNone=1 .. tracelog.LogLevelTrace=6).
func GetPgxTraceLogLevel(level zerolog.Level) int {
	switch level {
	case zerolog.TraceLevel:
		return 6 // tracelog.LogLevelTrace
	case zerolog.DebugLevel:
		return 5 // tracelog.LogLevelDebug
	case zerolog.InfoLevel:
		return 4 // tracelog.LogLevelInfo
	case zerolog.WarnLevel:
		return 3 // tracelog.LogLevelWarn
	case zerolog.ErrorLevel:
		return 2 // tracelog.LogLevelError
	default:
		return 1 // tracelog.LogLevelNone
	}
}
