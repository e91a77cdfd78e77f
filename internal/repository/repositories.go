package repository

import (
	"github.com/edustack/admin-api/internal/server"
)

// Repositories is the container for all repository instances, built
// once and shared by services and handlers.
type Repositories struct {
	// Entities performs CRUD over every managed entity table.
	Entities *EntityRepository
}

// NewRepositories constructs the repository container from the app
// container (DB pool on s.DB, cache on s.Redis, logger on s.Logger).
func NewRepositories(s *server.Server) *Repositories {
	return &Repositories{
		Entities: NewEntityRepository(s),
	}
}
