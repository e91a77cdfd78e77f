package repository

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
	"time"
	"unicode"

	"github.com/edustack/admin-api/internal/errs"
	"github.com/edustack/admin-api/internal/transform"
)

// columnRe is the full shape a derived column name must have. Payload
// keys that do not map onto it never reach a query string.
var columnRe = regexp.MustCompile(`^[a-z][a-z0-9_]*$`)

// readOnlyColumns are managed by the database and never writable
// through a payload.
var readOnlyColumns = map[string]bool{
	"id":         true,
	"created_at": true,
	"updated_at": true,
}

// recordColumns converts a payload record into parallel column/value
// slices for query building. Keys are translated camelCase to
// snake_case and vetted against columnRe; only scalar fields are
// writable. Columns come out sorted so generated SQL is deterministic.
func recordColumns(record transform.Value) ([]string, []any, error) {
	if record.Kind != transform.KindRecord {
		return nil, nil, errs.NewBadRequestError("Request body must be an object", false, nil, nil, nil)
	}

	keys := make([]string, 0, len(record.Rec))
	for key := range record.Rec {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	columns := make([]string, 0, len(keys))
	values := make([]any, 0, len(keys))
	for _, key := range keys {
		column := camelToSnake(key)
		if !columnRe.MatchString(column) {
			return nil, nil, errs.NewBadRequestError(
				fmt.Sprintf("Unknown field: %s", key), false, nil, nil, nil,
			)
		}
		if readOnlyColumns[column] {
			continue
		}

		field := record.Rec[key]
		if !field.IsScalar() && field.Kind != transform.KindNull {
			return nil, nil, errs.NewBadRequestError(
				fmt.Sprintf("Field %s must be a scalar value", key), false, nil, nil, nil,
			)
		}

		columns = append(columns, column)
		values = append(values, field.ToAny())
	}

	if len(columns) == 0 {
		return nil, nil, errs.NewBadRequestError("Request body has no writable fields", false, nil, nil, nil)
	}
	return columns, values, nil
}

// camelToSnake maps payload field names onto column names:
// "coverImageUrl" -> "cover_image_url".
func camelToSnake(s string) string {
	var b strings.Builder
	b.Grow(len(s) + 4)
	for i, r := range s {
		if unicode.IsUpper(r) {
			if i > 0 {
				b.WriteByte('_')
			}
			b.WriteRune(unicode.ToLower(r))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// snakeToCamel maps column names onto payload field names:
// "cover_image_url" -> "coverImageUrl".
func snakeToCamel(s string) string {
	parts := strings.Split(s, "_")
	var b strings.Builder
	b.Grow(len(s))
	for i, part := range parts {
		if part == "" {
			continue
		}
		if i == 0 {
			b.WriteString(part)
			continue
		}
		b.WriteString(strings.ToUpper(part[:1]))
		b.WriteString(part[1:])
	}
	return b.String()
}

// normalizeDBValue maps driver types onto the shapes FromAny accepts.
// Timestamps become RFC 3339 strings in UTC.
func normalizeDBValue(v any) any {
	switch t := v.(type) {
	case time.Time:
		return t.UTC().Format(time.RFC3339)
	case []byte:
		return string(t)
	default:
		return v
	}
}
