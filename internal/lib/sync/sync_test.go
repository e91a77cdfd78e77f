package sync

import (
	"testing"

	"github.com/edustack/admin-api/internal/sanitize"
	"github.com/edustack/admin-api/internal/server"
	"github.com/edustack/admin-api/internal/transform"
	"github.com/rs/zerolog"
)

func newTestService() *SyncService {
	logger := zerolog.Nop()
	return NewSyncService(&server.Server{
		Logger:    &logger,
		Sanitizer: sanitize.NewSanitizer(sanitize.NewPolicy(0), sanitize.Reject),
	}, nil)
}

func TestPrepareAcceptsCleanRecord(t *testing.T) {
	svc := newTestService()

	record, err := svc.prepare(map[string]any{
		"id":        "ext-42",
		"email":     "ada@example.com",
		"fullName":  "Ada Lovelace",
		"avatarUrl": "/avatars/ada.png",
	})
	if err != nil {
		t.Fatalf("prepare: %v", err)
	}

	if got := record.Rec["externalId"].Str; got != "ext-42" {
		t.Errorf("externalId = %q", got)
	}
	if got := record.Rec["fullName"].Str; got != "Ada Lovelace" {
		t.Errorf("fullName = %q", got)
	}
	if _, ok := record.Rec["resumeUrl"]; ok {
		t.Error("absent optional field should stay absent")
	}
}

func TestPrepareRejectsBadRecords(t *testing.T) {
	tests := []struct {
		name  string
		entry map[string]any
	}{
		{
			name: "missing email",
			entry: map[string]any{
				"id":       "ext-1",
				"fullName": "No Email",
			},
		},
		{
			name: "malformed email",
			entry: map[string]any{
				"id":       "ext-2",
				"email":    "not-an-email",
				"fullName": "Bad Email",
			},
		},
		{
			name: "injection pattern in name",
			entry: map[string]any{
				"id":       "ext-3",
				"email":    "x@example.com",
				"fullName": "Robert'); DROP TABLE users; --",
			},
		},
		{
			name: "prototype pollution key",
			entry: map[string]any{
				"id":        "ext-4",
				"email":     "y@example.com",
				"fullName":  "Polluter",
				"__proto__": map[string]any{"admin": true},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := newTestService()
			if _, err := svc.prepare(tt.entry); err == nil {
				t.Error("expected rejection, got nil error")
			}
		})
	}
}

func TestStringField(t *testing.T) {
	record := transform.Record(map[string]transform.Value{
		"name": transform.String("x"),
		"age":  transform.Number(3),
	})

	if got := stringField(record, "name"); got != "x" {
		t.Errorf("stringField(name) = %q", got)
	}
	if got := stringField(record, "age"); got != "" {
		t.Errorf("non-string field should yield empty, got %q", got)
	}
	if got := stringField(transform.String("scalar"), "name"); got != "" {
		t.Errorf("non-record should yield empty, got %q", got)
	}
}
