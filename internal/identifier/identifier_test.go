package identifier

import (
	"errors"
	"strings"
	"testing"

	"github.com/edustack/admin-api/internal/errs"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		raw    string
		wantOK bool
	}{
		{"zero is valid", "0", true},
		{"simple id", "42", true},
		{"fifteen digits", strings.Repeat("9", 15), true},
		{"empty", "", false},
		{"whitespace only", "   ", false},
		{"leading zero", "007", false},
		{"letters mixed in", "123abc", false},
		{"negative", "-1", false},
		{"decimal", "1.5", false},
		{"sixteen digits", strings.Repeat("9", 16), false},
		{"internal whitespace", "12 3", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Validate(tt.raw, "id")
			if tt.wantOK {
				if err != nil {
					t.Fatalf("Validate(%q) error: %v", tt.raw, err)
				}
				if got != tt.raw {
					t.Errorf("Validate(%q) = %q, want the original string back", tt.raw, got)
				}
				return
			}

			var verr *errs.ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("Validate(%q) error = %v, want ValidationError", tt.raw, err)
			}
			if verr.Kind != errs.InvalidFormat {
				t.Errorf("kind = %s, want %s", verr.Kind, errs.InvalidFormat)
			}
		})
	}
}

func TestValidate_LabelInMessage(t *testing.T) {
	_, err := Validate("xyz", "causeId")
	var verr *errs.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if verr.Field != "causeId" {
		t.Errorf("field = %q, want causeId", verr.Field)
	}
}
