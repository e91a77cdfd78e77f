package service

import (
	"context"

	"github.com/edustack/admin-api/internal/pagination"
	"github.com/edustack/admin-api/internal/repository"
	"github.com/edustack/admin-api/internal/server"
	"github.com/edustack/admin-api/internal/transform"
	"github.com/newrelic/go-agent/v3/newrelic"
)

// ResourceService exposes CRUD over the managed entities. It is thin
// on purpose: the boundary transforms run in the handlers and the SQL
// lives in the repository, so this layer carries instrumentation and
// whatever cross-entity rules accrue over time.
type ResourceService struct {
	server *server.Server
	repos  *repository.Repositories
}

func NewResourceService(s *server.Server, repos *repository.Repositories) *ResourceService {
	return &ResourceService{
		server: s,
		repos:  repos,
	}
}

// List returns one page of entity records plus the unpaged total.
func (s *ResourceService) List(ctx context.Context, ent repository.Entity, params pagination.Params, sortBy, sortOrder string) (repository.ListResult, error) {
	defer s.segment(ctx, "service.list."+ent.Table).End()
	return s.repos.Entities.List(ctx, ent, params, sortBy, sortOrder)
}

// Get fetches one record by id.
func (s *ResourceService) Get(ctx context.Context, ent repository.Entity, id string) (transform.Value, error) {
	defer s.segment(ctx, "service.get."+ent.Table).End()
	return s.repos.Entities.GetByID(ctx, ent, id)
}

// Create stores a new record and returns the stored row.
func (s *ResourceService) Create(ctx context.Context, ent repository.Entity, record transform.Value) (transform.Value, error) {
	defer s.segment(ctx, "service.create."+ent.Table).End()
	return s.repos.Entities.Create(ctx, ent, record)
}

// Update applies fields to an existing record and returns the stored row.
func (s *ResourceService) Update(ctx context.Context, ent repository.Entity, id string, record transform.Value) (transform.Value, error) {
	defer s.segment(ctx, "service.update."+ent.Table).End()
	return s.repos.Entities.Update(ctx, ent, id, record)
}

// Delete removes a record by id.
func (s *ResourceService) Delete(ctx context.Context, ent repository.Entity, id string) error {
	defer s.segment(ctx, "service.delete."+ent.Table).End()
	return s.repos.Entities.Delete(ctx, ent, id)
}

// UpsertUser stores or refreshes a user keyed by external_id. Called
// from the directory sync job.
func (s *ResourceService) UpsertUser(ctx context.Context, record transform.Value) (transform.Value, error) {
	ent := repository.Entities["users"]
	defer s.segment(ctx, "service.upsert."+ent.Table).End()
	return s.repos.Entities.Upsert(ctx, ent, "external_id", record)
}

// segment opens a New Relic segment on the current transaction; a nil
// transaction yields a no-op segment.
func (s *ResourceService) segment(ctx context.Context, name string) *newrelic.Segment {
	txn := newrelic.FromContext(ctx)
	return txn.StartSegment(name)
}
