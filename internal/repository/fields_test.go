package repository

import (
	"reflect"
	"testing"
	"time"

	"github.com/edustack/admin-api/internal/transform"
)

func TestCamelToSnake(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"coverImageUrl", "cover_image_url"},
		{"title", "title"},
		{"fullName", "full_name"},
		{"externalId", "external_id"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := camelToSnake(tt.in); got != tt.want {
				t.Errorf("camelToSnake(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestSnakeToCamel(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"cover_image_url", "coverImageUrl"},
		{"title", "title"},
		{"full_name", "fullName"},
		{"created_at", "createdAt"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := snakeToCamel(tt.in); got != tt.want {
				t.Errorf("snakeToCamel(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestRecordColumns(t *testing.T) {
	record := transform.Record(map[string]transform.Value{
		"fullName":  transform.String("Ada"),
		"email":     transform.String("ada@example.com"),
		"id":        transform.Number(7),
		"createdAt": transform.String("2026-01-01T00:00:00Z"),
	})

	columns, values, err := recordColumns(record)
	if err != nil {
		t.Fatalf("recordColumns: %v", err)
	}

	// id and created_at are read-only, columns come out sorted.
	wantColumns := []string{"email", "full_name"}
	if !reflect.DeepEqual(columns, wantColumns) {
		t.Errorf("columns = %v, want %v", columns, wantColumns)
	}
	wantValues := []any{"ada@example.com", "Ada"}
	if !reflect.DeepEqual(values, wantValues) {
		t.Errorf("values = %v, want %v", values, wantValues)
	}
}

func TestRecordColumnsRejections(t *testing.T) {
	tests := []struct {
		name   string
		record transform.Value
	}{
		{
			name:   "non-record payload",
			record: transform.String("plain"),
		},
		{
			name: "key that maps onto no legal column",
			record: transform.Record(map[string]transform.Value{
				"bad key!": transform.String("x"),
			}),
		},
		{
			name: "nested value on a scalar column",
			record: transform.Record(map[string]transform.Value{
				"profile": transform.Record(map[string]transform.Value{"a": transform.String("b")}),
			}),
		},
		{
			name:   "only read-only fields",
			record: transform.Record(map[string]transform.Value{"id": transform.Number(1)}),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, _, err := recordColumns(tt.record); err == nil {
				t.Error("expected error, got nil")
			}
		})
	}
}

func TestNormalizeDBValue(t *testing.T) {
	ts := time.Date(2026, 3, 14, 9, 26, 53, 0, time.FixedZone("", 2*3600))
	if got := normalizeDBValue(ts); got != "2026-03-14T07:26:53Z" {
		t.Errorf("time normalization = %v", got)
	}
	if got := normalizeDBValue([]byte("raw")); got != "raw" {
		t.Errorf("bytes normalization = %v", got)
	}
	if got := normalizeDBValue(int64(5)); got != int64(5) {
		t.Errorf("passthrough = %v", got)
	}
}
