// Package server defines the application container that composes the
// service's shared dependencies and owns the HTTP server lifecycle:
// configuration, logger (plus optional New Relic wrapper), database
// pool, redis client, and the boundary-layer policy objects built once
// at startup and shared immutably across request workers.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/edustack/admin-api/internal/config"
	"github.com/edustack/admin-api/internal/database"
	"github.com/edustack/admin-api/internal/pagination"
	"github.com/edustack/admin-api/internal/sanitize"
	"github.com/edustack/admin-api/internal/transform"
	"github.com/newrelic/go-agent/v3/integrations/nrredis-v9"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	loggerPkg "github.com/edustack/admin-api/internal/logger"
)

// Server holds the application's shared resources. It is not the HTTP
// server itself; it wraps one and carries everything handlers,
// middleware and repositories need.
type Server struct {
	// Config holds all environment-sourced configuration.
	Config *config.Config

	// Logger is the application's root structured logger.
	Logger *zerolog.Logger

	// LoggerService optionally holds the New Relic application.
	LoggerService *loggerPkg.LoggerService

	// DB holds the PostgreSQL pool wrapper.
	DB *database.Database

	// Redis is the cache client.
	Redis *redis.Client

	// Materializer rewrites storage paths into URLs on egress. Built
	// once from the field registry and the configured base URL.
	Materializer *transform.Materializer

	// Sanitizer enforces the ingress sanitization policy in reject mode;
	// SearchSanitizer is the explicitly selected truncating variant used
	// for free-text search parameters.
	Sanitizer       *sanitize.Sanitizer
	SearchSanitizer *sanitize.Sanitizer

	// Pagination carries the immutable pagination bounds.
	Pagination pagination.Bounds

	// httpServer is the net/http server configured in SetupHTTPServer.
	httpServer *http.Server
}

// New constructs a Server and initializes its dependencies: database
// pool, redis client (optional at startup — a cache miss is cheaper
// than refusing to boot), and the immutable boundary policy tables.
func New(cfg *config.Config, logger *zerolog.Logger, loggerService *loggerPkg.LoggerService) (*Server, error) {
	db, err := database.New(cfg, logger, loggerService)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	redisClient := redis.NewClient(&redis.Options{
		Addr: cfg.Redis.Address,
	})

	if loggerService.GetApplication() != nil {
		redisClient.AddHook(nrredis.NewHook(redisClient.Options()))
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := redisClient.Ping(ctx).Err(); err != nil {
		logger.Error().Err(err).Msg("Failed to connect to Redis, continuing without cache")
	}

	policy := sanitize.NewPolicy(cfg.Boundary.MaxStringLength)

	server := &Server{
		Config:          cfg,
		Logger:          logger,
		LoggerService:   loggerService,
		DB:              db,
		Redis:           redisClient,
		Materializer:    transform.NewMaterializer(transform.DefaultRegistry(), cfg.Assets.BaseURL),
		Sanitizer:       sanitize.NewSanitizer(policy, sanitize.Reject),
		SearchSanitizer: sanitize.NewSanitizer(policy, sanitize.Truncate),
		Pagination: pagination.NewBounds(
			cfg.Boundary.MaxPage,
			cfg.Boundary.MaxLimit,
			cfg.Boundary.MaxSearchLength,
		),
	}

	return server, nil
}

// SetupHTTPServer configures the internal net/http server around the
// router. Timeouts protect against slow clients.
func (s *Server) SetupHTTPServer(handler http.Handler) {
	s.httpServer = &http.Server{
		Addr:         ":" + s.Config.Server.Port,
		Handler:      handler,
		ReadTimeout:  time.Duration(s.Config.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(s.Config.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(s.Config.Server.IdleTimeout) * time.Second,
	}
}

// Start runs the HTTP server. SetupHTTPServer must have been called.
// Blocks until the server stops or errors.
func (s *Server) Start() error {
	if s.httpServer == nil {
		return errors.New("HTTP server not initialized")
	}

	s.Logger.Info().
		Str("port", s.Config.Server.Port).
		Str("env", s.Config.Primary.Env).
		Msg("starting server")

	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully stops the HTTP server, then closes the database
// pool and redis client.
func (s *Server) Shutdown(ctx context.Context) error {
	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("failed to shutdown HTTP server: %w", err)
	}

	if err := s.DB.Close(); err != nil {
		return fmt.Errorf("failed to close database connection: %w", err)
	}

	if err := s.Redis.Close(); err != nil {
		return fmt.Errorf("failed to close redis client: %w", err)
	}

	return nil
}
