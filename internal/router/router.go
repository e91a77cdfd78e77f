// Package router initializes the HTTP router (using Echo).
//
// It registers the middlewares and defines the API route groups,
// mapping specific paths to their corresponding handlers.
package router

import (
	"github.com/edustack/admin-api/internal/handler"
	"github.com/edustack/admin-api/internal/middleware"
	"github.com/labstack/echo/v4"
)

// New builds the Echo instance: global middleware first, then the
// route groups. The returned router is handed to the server as its
// http.Handler.
func New(mw *middleware.Middlewares, h *handler.Handlers) *echo.Echo {
	r := echo.New()
	r.HideBanner = true
	r.HidePort = true

	r.HTTPErrorHandler = mw.Global.GlobalErrorHandler

	r.Use(middleware.RequestID())
	r.Use(mw.Tracing.NewRelicMiddleware())
	r.Use(mw.ContextEnhancer.EnhanceContext())
	r.Use(mw.Tracing.EnhanceTracing())
	r.Use(mw.Global.RequestLogger())
	r.Use(mw.Global.Recover())
	r.Use(mw.Global.Secure())
	r.Use(mw.Global.CORS())
	r.Use(mw.RateLimit.Limiter())

	registerSystemRoutes(r, h)
	registerResourceRoutes(r, h)

	return r
}
