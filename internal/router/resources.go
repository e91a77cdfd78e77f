package router

import (
	"github.com/edustack/admin-api/internal/handler"
	"github.com/edustack/admin-api/internal/repository"
	"github.com/labstack/echo/v4"
)

// registerResourceRoutes mounts the CRUD surface of every managed
// entity under /api/v1. The route set is identical per entity; the
// descriptor parameterizes table, sort allow-list and registry type.
func registerResourceRoutes(r *echo.Echo, h *handler.Handlers) {
	api := r.Group("/api/v1")

	for segment, ent := range repository.Entities {
		g := api.Group("/" + segment)

		g.GET("", h.Resources.List(ent))
		g.GET("/export", h.Resources.Export(ent))
		g.GET("/:id", h.Resources.Get(ent))
		g.POST("", h.Resources.Create(ent))
		g.PUT("/:id", h.Resources.Update(ent))
		g.DELETE("/:id", h.Resources.Delete(ent))
	}
}
