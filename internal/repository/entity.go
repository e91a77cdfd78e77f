package repository

// Entity describes one managed resource: its registry type name, its
// table, and the columns list/search/sort are allowed to touch.
// Descriptors are fixed at startup; handlers and repositories share
// them so the allowed surface is defined in exactly one place.
type Entity struct {
	// Type is the registry entity type, e.g. "User".
	Type string

	// Table is the PostgreSQL table name.
	Table string

	// SearchColumn receives the ILIKE search filter on list queries.
	SearchColumn string

	// SortColumns maps accepted sortBy request values to columns. Keys
	// double as the strict validator's allow-list.
	SortColumns map[string]string
}

// SortKeys returns the accepted sortBy values for the strict paginator.
func (e Entity) SortKeys() []string {
	keys := make([]string, 0, len(e.SortColumns))
	for k := range e.SortColumns {
		keys = append(keys, k)
	}
	return keys
}

// Entities lists every managed resource, keyed by URL segment.
var Entities = map[string]Entity{
	"users": {
		Type:         "User",
		Table:        "users",
		SearchColumn: "full_name",
		SortColumns: map[string]string{
			"fullName":  "full_name",
			"email":     "email",
			"createdAt": "created_at",
		},
	},
	"organizations": {
		Type:         "Organization",
		Table:        "organizations",
		SearchColumn: "name",
		SortColumns: map[string]string{
			"name":      "name",
			"createdAt": "created_at",
		},
	},
	"institutes": {
		Type:         "Institute",
		Table:        "institutes",
		SearchColumn: "name",
		SortColumns: map[string]string{
			"name":      "name",
			"createdAt": "created_at",
		},
	},
	"causes": {
		Type:         "Cause",
		Table:        "causes",
		SearchColumn: "title",
		SortColumns: map[string]string{
			"title":     "title",
			"createdAt": "created_at",
		},
	},
	"lectures": {
		Type:         "Lecture",
		Table:        "lectures",
		SearchColumn: "title",
		SortColumns: map[string]string{
			"title":     "title",
			"createdAt": "created_at",
		},
	},
	"documentations": {
		Type:         "Documentation",
		Table:        "documentations",
		SearchColumn: "title",
		SortColumns: map[string]string{
			"title":     "title",
			"createdAt": "created_at",
		},
	},
}
