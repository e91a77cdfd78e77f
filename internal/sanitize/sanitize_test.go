package sanitize

import (
	"errors"
	"strings"
	"testing"

	"github.com/edustack/admin-api/internal/errs"
	"github.com/edustack/admin-api/internal/transform"
)

func newTestSanitizer(mode Mode) *Sanitizer {
	return NewSanitizer(NewPolicy(100), mode)
}

func TestSanitize_PrototypePollution(t *testing.T) {
	s := newTestSanitizer(Reject)

	tests := []struct {
		name string
		in   transform.Value
		path string
	}{
		{
			name: "top level __proto__",
			in: transform.Record(map[string]transform.Value{
				"__proto__": transform.Record(map[string]transform.Value{"x": transform.Number(1)}),
			}),
			path: "__proto__",
		},
		{
			name: "nested constructor",
			in: transform.Record(map[string]transform.Value{
				"profile": transform.Record(map[string]transform.Value{
					"Constructor": transform.String("boom"),
				}),
			}),
			path: "profile.Constructor",
		},
		{
			name: "inside sequence",
			in: transform.Record(map[string]transform.Value{
				"items": transform.Sequence(
					transform.Record(map[string]transform.Value{
						"prototype": transform.Null(),
					}),
				),
			}),
			path: "items[0].prototype",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := s.Sanitize(tt.in)
			var verr *errs.ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("Sanitize() error = %v, want ValidationError", err)
			}
			if verr.Kind != errs.PrototypePollutionRejected {
				t.Errorf("kind = %s, want %s", verr.Kind, errs.PrototypePollutionRejected)
			}
			if verr.Field != tt.path {
				t.Errorf("field = %q, want %q", verr.Field, tt.path)
			}
		})
	}
}

func TestSanitize_InjectionSignatures(t *testing.T) {
	s := newTestSanitizer(Reject)

	rejected := []string{
		"1' OR '1'='1",
		"x UNION ALL SELECT password FROM users",
		"INSERT INTO admins VALUES (1)",
		"update users set role='root'",
		"DELETE FROM causes",
		"DROP TABLE lectures",
		"name'; -- comment",
		"/* sneaky */",
	}

	for _, input := range rejected {
		t.Run(input, func(t *testing.T) {
			in := transform.Record(map[string]transform.Value{"q": transform.String(input)})
			_, err := s.Sanitize(in)
			var verr *errs.ValidationError
			if !errors.As(err, &verr) || verr.Kind != errs.SuspiciousInputRejected {
				t.Errorf("Sanitize(%q) error = %v, want SuspiciousInputRejected", input, err)
			}
		})
	}

	// Ordinary prose with SQL-ish words in isolation must pass.
	ok := []string{
		"select a cause to support",
		"updates from the institute",
		"drop by the office",
	}
	for _, input := range ok {
		t.Run("ok/"+input, func(t *testing.T) {
			in := transform.Record(map[string]transform.Value{"q": transform.String(input)})
			if _, err := s.Sanitize(in); err != nil {
				t.Errorf("Sanitize(%q) unexpected error: %v", input, err)
			}
		})
	}
}

func TestSanitize_MarkupStripping(t *testing.T) {
	s := newTestSanitizer(Reject)

	tests := []struct {
		in   string
		want string
	}{
		{"<script>alert(1)</script>hello", "hello"},
		{"<iframe src='https://evil.test'></iframe>welcome", "welcome"},
		{"click <embed src=x/> here", "click  here"},
		{"javascript:alert(1)", "alert(1)"},
		{`<a onclick="steal()">link</a>`, "<a >link</a>"},
		{"plain text stays", "plain text stays"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			in := transform.Record(map[string]transform.Value{"body": transform.String(tt.in)})
			got, err := s.Sanitize(in)
			if err != nil {
				t.Fatalf("Sanitize() error: %v", err)
			}
			if cleaned := got.Rec["body"].Str; cleaned != tt.want {
				t.Errorf("sanitized = %q, want %q", cleaned, tt.want)
			}
		})
	}
}

func TestSanitize_LengthModes(t *testing.T) {
	long := strings.Repeat("a", 150)
	in := transform.Record(map[string]transform.Value{"bio": transform.String(long)})

	t.Run("reject mode fails", func(t *testing.T) {
		_, err := newTestSanitizer(Reject).Sanitize(in)
		var verr *errs.ValidationError
		if !errors.As(err, &verr) || verr.Kind != errs.InputTooLong {
			t.Errorf("error = %v, want InputTooLong", err)
		}
		if verr != nil && verr.Field != "bio" {
			t.Errorf("field = %q, want bio", verr.Field)
		}
	})

	t.Run("truncate mode cuts", func(t *testing.T) {
		got, err := newTestSanitizer(Truncate).Sanitize(in)
		if err != nil {
			t.Fatalf("Sanitize() error: %v", err)
		}
		if cleaned := got.Rec["bio"].Str; len(cleaned) != 100 {
			t.Errorf("len = %d, want 100", len(cleaned))
		}
	})
}

func TestSanitize_NullBytesAndTrim(t *testing.T) {
	s := newTestSanitizer(Reject)

	in := transform.Record(map[string]transform.Value{
		"name": transform.String("  jo\x00hn  "),
	})
	got, err := s.Sanitize(in)
	if err != nil {
		t.Fatalf("Sanitize() error: %v", err)
	}
	if cleaned := got.Rec["name"].Str; cleaned != "john" {
		t.Errorf("sanitized = %q, want %q", cleaned, "john")
	}
}

func TestSanitize_NonStringScalarsPass(t *testing.T) {
	s := newTestSanitizer(Reject)

	in := transform.Record(map[string]transform.Value{
		"count":  transform.Number(7),
		"active": transform.Bool(true),
		"none":   transform.Null(),
	})
	got, err := s.Sanitize(in)
	if err != nil {
		t.Fatalf("Sanitize() error: %v", err)
	}
	if got.Rec["count"].Num != 7 || !got.Rec["active"].Bool || got.Rec["none"].Kind != transform.KindNull {
		t.Errorf("non-string scalars changed: %#v", got)
	}
}

func TestSanitize_DoesNotMutateInput(t *testing.T) {
	s := newTestSanitizer(Reject)

	in := transform.Record(map[string]transform.Value{
		"body": transform.String("<script>x</script>keep"),
	})
	if _, err := s.Sanitize(in); err != nil {
		t.Fatalf("Sanitize() error: %v", err)
	}
	if in.Rec["body"].Str != "<script>x</script>keep" {
		t.Errorf("input mutated: %q", in.Rec["body"].Str)
	}
}
