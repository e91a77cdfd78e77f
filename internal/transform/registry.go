package transform

// FieldKind describes what the materializer may do with a registered field.
type FieldKind int

const (
	// MaterializeURL marks a field holding a storage-relative path that
	// should be rewritten into an absolute URL on egress.
	MaterializeURL FieldKind = iota

	// Exclude marks a field the materializer must never touch, even if
	// its value looks like a relative path. Used for fields that hold
	// opaque storage keys the data layer still needs verbatim.
	Exclude
)

// Registry is the static map from entity-type name to the fields that
// are eligible for URL materialization.
//
// It is built once at startup and never mutated afterwards, so it is
// safe for unsynchronized concurrent reads from any number of request
// workers. Entity types absent from the registry pass through the
// materializer untouched.
type Registry struct {
	entities map[string]map[string]FieldKind
}

// NewRegistry builds a registry from an explicit entity/field table.
func NewRegistry(entities map[string]map[string]FieldKind) *Registry {
	return &Registry{entities: entities}
}

// DefaultRegistry returns the registry for the entity types this API serves.
func DefaultRegistry() *Registry {
	return NewRegistry(map[string]map[string]FieldKind{
		"User": {
			"avatarUrl":    MaterializeURL,
			"resumeUrl":    MaterializeURL,
			"passwordHash": Exclude,
		},
		"Institute": {
			"logoUrl":       MaterializeURL,
			"coverImageUrl": MaterializeURL,
		},
		"Organization": {
			"logoUrl": MaterializeURL,
		},
		"Cause": {
			"imageUrl":      MaterializeURL,
			"introVideoUrl": MaterializeURL,
		},
		"Lecture": {
			"thumbnailUrl": MaterializeURL,
			"videoUrl":     MaterializeURL,
		},
		"Documentation": {
			"docUrl": MaterializeURL,
		},
	})
}

// Has reports whether entityType is registered.
func (r *Registry) Has(entityType string) bool {
	_, ok := r.entities[entityType]
	return ok
}

// Lookup returns the policy for a field of an entity type.
func (r *Registry) Lookup(entityType, field string) (FieldKind, bool) {
	fields, ok := r.entities[entityType]
	if !ok {
		return 0, false
	}
	kind, ok := fields[field]
	return kind, ok
}
