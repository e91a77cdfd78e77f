package service

import (
	"github.com/edustack/admin-api/internal/lib/sync"
	"github.com/edustack/admin-api/internal/repository"
	"github.com/edustack/admin-api/internal/server"
)

// Services is the container for all business-logic services.
type Services struct {
	// Resources exposes CRUD over the managed entities.
	Resources *ResourceService

	// Sync runs the scheduled user directory synchronization.
	Sync *sync.SyncService
}

func NewServices(s *server.Server, repos *repository.Repositories) (*Services, error) {
	resources := NewResourceService(s, repos)

	return &Services{
		Resources: resources,
		Sync:      sync.NewSyncService(s, resources),
	}, nil
}
