package transform

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Materializer rewrites storage-relative paths inside query results into
// absolute URLs. It holds only immutable state (the field registry and
// the configured base URL), so a single instance is shared across all
// request workers.
//
// Materialization never fails. An unknown entity type, an empty base
// URL, or a value that is not a relative path all degrade to "value
// unchanged": a missing URL beats a broken response.
type Materializer struct {
	registry *Registry
	baseURL  string
}

// NewMaterializer creates a Materializer. baseURL may be empty, in which
// case materialization is disabled and results pass through as stored.
func NewMaterializer(registry *Registry, baseURL string) *Materializer {
	return &Materializer{
		registry: registry,
		baseURL:  strings.TrimSuffix(baseURL, "/"),
	}
}

// MaterializeResult transforms a query result read under the given
// entity type. The result may be a single record or a sequence of
// records (list endpoints); anything else is returned unchanged.
//
// The top-level entity type is always supplied by the caller. Types for
// nested records are inferred from their keys, see resolveRelation.
// The input tree is never mutated, and the operation is idempotent:
// re-materializing an already-absolute value is a no-op.
func (m *Materializer) MaterializeResult(entityType string, result Value) Value {
	switch result.Kind {
	case KindSequence:
		seq := make([]Value, len(result.Seq))
		for i, item := range result.Seq {
			seq[i] = m.MaterializeResult(entityType, item)
		}
		return Value{Kind: KindSequence, Seq: seq}

	case KindRecord:
		rec := make(map[string]Value, len(result.Rec))
		for key, item := range result.Rec {
			rec[key] = m.materializeField(entityType, key, item)
		}
		return Value{Kind: KindRecord, Rec: rec}

	default:
		return result
	}
}

// materializeField transforms a single field of a record belonging to
// entityType. String fields registered as MaterializeURL are rewritten;
// nested records and sequences are handed to the relation resolver.
func (m *Materializer) materializeField(entityType, key string, v Value) Value {
	switch v.Kind {
	case KindString:
		if kind, ok := m.registry.Lookup(entityType, key); ok && kind == MaterializeURL {
			return String(m.materializeURL(v.Str))
		}
		return v

	case KindRecord, KindSequence:
		return m.resolveRelation(key, v)

	default:
		// Non-string scalars are never rewritten, even when the field
		// name matches a registry entry.
		return v
	}
}

// resolveRelation infers the entity type of a nested record (or sequence
// of records) from its key and recurses under that type. Keys that do
// not resolve to a registered type recurse transparently, so deeper
// relations are still reached without transforming at this level.
func (m *Materializer) resolveRelation(key string, v Value) Value {
	childType := ""
	for _, candidate := range entityTypeCandidates(key) {
		if m.registry.Has(candidate) {
			childType = candidate
			break
		}
	}
	return m.MaterializeResult(childType, v)
}

// materializeURL prefixes a storage-relative path with the configured
// base URL. Values that are not relative paths (absolute URLs, opaque
// strings) and values seen with no base configured come back unchanged.
func (m *Materializer) materializeURL(s string) string {
	if m.baseURL == "" || s == "" {
		return s
	}
	if !strings.HasPrefix(s, "/") {
		return s
	}
	// "//host/path" is scheme-relative, already resolvable.
	if strings.HasPrefix(s, "//") {
		return s
	}
	return m.baseURL + s
}

// entityTypeCandidates derives candidate entity-type names from a record
// key: the capitalized key itself, then its naive singular when the key
// is plural ("lectures" -> "Lecture").
//
// This is a naming contract, not a stored relationship. It is
// intentionally brittle: irregular plurals ("addresses", "people") will
// not resolve and their records pass through untransformed. Swapping
// the convention for an explicit schema map only requires replacing
// this function.
func entityTypeCandidates(key string) []string {
	capitalized := keyToEntityType(key)
	if capitalized == "" {
		return nil
	}
	candidates := []string{capitalized}
	if strings.HasSuffix(capitalized, "s") && len(capitalized) > 1 {
		candidates = append(candidates, strings.TrimSuffix(capitalized, "s"))
	}
	return candidates
}

// keyToEntityType capitalizes the first rune of a record key, turning a
// relation key into an entity-type name ("documentation" -> "Documentation").
func keyToEntityType(key string) string {
	if key == "" {
		return ""
	}
	r, size := utf8.DecodeRuneInString(key)
	return string(unicode.ToUpper(r)) + key[size:]
}
