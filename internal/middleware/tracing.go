package middleware

import (
	"github.com/labstack/echo/v4"
	"github.com/newrelic/go-agent/v3/integrations/nrecho-v4"
	"github.com/newrelic/go-agent/v3/newrelic"
)

// TracingMiddleware wires New Relic transaction tracing into the Echo
// request life cycle. All methods degrade to no-ops when no agent is
// configured, so local development never requires a license key.
type TracingMiddleware struct {
	nrApp *newrelic.Application
}

// NewTracingMiddleware constructs the tracing middleware. nrApp may be
// nil.
func NewTracingMiddleware(nrApp *newrelic.Application) *TracingMiddleware {
	return &TracingMiddleware{
		nrApp: nrApp,
	}
}

// NewRelicMiddleware starts a New Relic transaction per request.
func (t *TracingMiddleware) NewRelicMiddleware() echo.MiddlewareFunc {
	if t.nrApp == nil {
		return func(next echo.HandlerFunc) echo.HandlerFunc {
			return next
		}
	}

	return nrecho.Middleware(t.nrApp)
}

// EnhanceTracing adds the request id as a transaction attribute so
// traces can be correlated with log lines.
func (t *TracingMiddleware) EnhanceTracing() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if txn := newrelic.FromContext(c.Request().Context()); txn != nil {
				if requestID := GetRequestID(c); requestID != "" {
					txn.AddAttribute("request.id", requestID)
				}
			}

			return next(c)
		}
	}
}
