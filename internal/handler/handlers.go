package handler

import (
	"github.com/edustack/admin-api/internal/server"
	"github.com/edustack/admin-api/internal/service"
)

// Handlers is a container that groups all HTTP handlers so router
// setup receives one object instead of many.
type Handlers struct {
	// Health serves the dependency health endpoint.
	Health *HealthHandler

	// Resources serves CRUD for every managed entity.
	Resources *ResourceHandler
}

// NewHandlers constructs the handler container.
func NewHandlers(s *server.Server, services *service.Services) *Handlers {
	return &Handlers{
		Health:    NewHealthHandler(s),
		Resources: NewResourceHandler(s, services),
	}
}
