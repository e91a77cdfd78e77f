package handler

import (
	"time"

	"github.com/edustack/admin-api/internal/middleware"
	"github.com/edustack/admin-api/internal/server"
	"github.com/labstack/echo/v4"
	"github.com/newrelic/go-agent/v3/integrations/nrpkgerrors"
	"github.com/newrelic/go-agent/v3/newrelic"
)

// Handler is the base handler type that holds shared application
// dependencies. Concrete handlers embed it to reach the server
// container (config, logger, db, redis, boundary policies).
type Handler struct {
	server *server.Server
}

// NewHandler constructs a base Handler. Returned by value: the struct
// only carries a pointer, copying is cheap.
func NewHandler(s *server.Server) Handler {
	return Handler{server: s}
}

// endpointFunc produces the response body for one request. Binding,
// boundary transforms and service calls all happen inside it; the
// surrounding pipeline owns logging, tracing and response writing.
type endpointFunc func(c echo.Context) (any, error)

// run is the shared execution pipeline for all endpoints. It
// centralizes:
//
//   - structured logging with the request-scoped logger
//   - New Relic attributes and error reporting
//   - timing
//   - JSON response writing
//
// Errors propagate to the global error handler, which owns the
// response shape for failures.
func (h Handler) run(c echo.Context, operation string, status int, fn endpointFunc) error {
	start := time.Now()

	txn := newrelic.FromContext(c.Request().Context())
	if txn != nil {
		txn.AddAttribute("handler.operation", operation)
	}

	logger := middleware.GetLogger(c).With().
		Str("operation", operation).
		Str("method", c.Request().Method).
		Str("route", c.Path()).
		Logger()

	result, err := fn(c)
	duration := time.Since(start)

	if err != nil {
		logger.Warn().
			Err(err).
			Dur("duration", duration).
			Msg("request failed")

		if txn != nil {
			txn.NoticeError(nrpkgerrors.Wrap(err))
			txn.AddAttribute("handler.status", "error")
			txn.AddAttribute("handler.duration_ms", duration.Milliseconds())
		}
		return err
	}

	if txn != nil {
		txn.AddAttribute("handler.status", "success")
		txn.AddAttribute("handler.duration_ms", duration.Milliseconds())
	}

	logger.Info().
		Dur("duration", duration).
		Msg("request completed")

	if result == nil {
		return c.NoContent(status)
	}
	return c.JSON(status, result)
}
