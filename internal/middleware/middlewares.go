package middleware

import (
	"github.com/edustack/admin-api/internal/server"
	"github.com/newrelic/go-agent/v3/newrelic"
)

// Middlewares groups all middleware components used by the HTTP server
// so routing code has a single place to pull them from.
type Middlewares struct {
	// Global holds common middleware applied across the whole API:
	// CORS, request logging, recovery, secure headers, and the global
	// error handler.
	Global *GlobalMiddlewares

	// ContextEnhancer enriches each request with a request-scoped
	// logger (request_id, method, path, ip, trace metadata).
	ContextEnhancer *ContextEnhancer

	// Tracing provides New Relic transaction middleware.
	Tracing *TracingMiddleware

	// RateLimit throttles per-client request rates.
	RateLimit *RateLimitMiddleware
}

// NewMiddlewares constructs all middleware components from the app
// container. When New Relic is not configured nrApp stays nil and the
// tracing middleware degrades to a no-op.
func NewMiddlewares(s *server.Server) *Middlewares {
	var nrApp *newrelic.Application
	if s.LoggerService != nil {
		nrApp = s.LoggerService.GetApplication()
	}

	return &Middlewares{
		Global:          NewGlobalMiddlewares(s),
		ContextEnhancer: NewContextEnhancer(s),
		Tracing:         NewTracingMiddleware(nrApp),
		RateLimit:       NewRateLimitMiddleware(s),
	}
}
