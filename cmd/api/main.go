package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/edustack/admin-api/internal/config"
	"github.com/edustack/admin-api/internal/database"
	"github.com/edustack/admin-api/internal/handler"
	"github.com/edustack/admin-api/internal/logger"
	"github.com/edustack/admin-api/internal/middleware"
	"github.com/edustack/admin-api/internal/repository"
	"github.com/edustack/admin-api/internal/router"
	"github.com/edustack/admin-api/internal/server"
	"github.com/edustack/admin-api/internal/service"
)

// shutdownTimeout bounds graceful shutdown before the process exits
// regardless of in-flight requests.
const shutdownTimeout = 15 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		os.Exit(1)
	}

	loggerService, err := logger.NewLoggerService(cfg.Observability)
	if err != nil {
		os.Exit(1)
	}

	log := logger.New(cfg.Observability, loggerService)

	ctx := context.Background()
	if err := database.Migrate(ctx, &log, cfg); err != nil {
		log.Fatal().Err(err).Msg("database migration failed")
	}

	srv, err := server.New(cfg, &log, loggerService)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize server")
	}

	repos := repository.NewRepositories(srv)

	services, err := service.NewServices(srv, repos)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize services")
	}

	if err := services.Sync.Start(); err != nil {
		log.Fatal().Err(err).Msg("failed to start user sync")
	}

	middlewares := middleware.NewMiddlewares(srv)
	handlers := handler.NewHandlers(srv, services)

	srv.SetupHTTPServer(router.New(middlewares, handlers))

	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server stopped unexpectedly")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down")

	services.Sync.Stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("shutdown failed")
		os.Exit(1)
	}

	log.Info().Msg("shutdown complete")
}
