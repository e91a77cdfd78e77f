package pagination

import (
	"errors"
	"strings"
	"testing"

	"github.com/edustack/admin-api/internal/errs"
)

func TestClamp(t *testing.T) {
	bounds := NewBounds(1000, 100, 200)

	tests := []struct {
		name       string
		page       string
		limit      string
		search     string
		wantPage   int
		wantLimit  int
		wantSearch string
	}{
		{
			name: "defaults on empty", page: "", limit: "", search: "",
			wantPage: 1, wantLimit: 1, wantSearch: "",
		},
		{
			name: "in range passes through", page: "3", limit: "25", search: "alpha",
			wantPage: 3, wantLimit: 25, wantSearch: "alpha",
		},
		{
			name: "above max clamps", page: "9999", limit: "500", search: strings.Repeat("s", 300),
			wantPage: 1000, wantLimit: 100, wantSearch: strings.Repeat("s", 200),
		},
		{
			name: "non-numeric becomes one", page: "abc", limit: "-5",
			wantPage: 1, wantLimit: 1,
		},
		{
			name: "zero becomes one", page: "0", limit: "0",
			wantPage: 1, wantLimit: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := bounds.Clamp(tt.page, tt.limit, tt.search)
			if got.Page != tt.wantPage || got.Limit != tt.wantLimit || got.Search != tt.wantSearch {
				t.Errorf("Clamp() = %+v, want page=%d limit=%d search=%q",
					got, tt.wantPage, tt.wantLimit, tt.wantSearch)
			}
		})
	}
}

func TestValidate(t *testing.T) {
	bounds := NewBounds(1000, 100, 200)
	allowed := []string{"createdAt", "title"}

	t.Run("valid parameters", func(t *testing.T) {
		got, err := bounds.Validate("2", "50", "title", "DESC", allowed)
		if err != nil {
			t.Fatalf("Validate() error: %v", err)
		}
		if got.Page != 2 || got.Limit != 50 || got.SortBy != "title" || got.SortOrder != "desc" {
			t.Errorf("Validate() = %+v", got)
		}
	})

	t.Run("empty selects defaults", func(t *testing.T) {
		got, err := bounds.Validate("", "", "", "", allowed)
		if err != nil {
			t.Fatalf("Validate() error: %v", err)
		}
		if got.Page != 1 || got.Limit != 1 {
			t.Errorf("Validate() = %+v", got)
		}
	})

	fails := []struct {
		name                           string
		page, limit, sortBy, sortOrder string
		wantKind                       errs.ValidationKind
	}{
		{"page above max", "9999", "50", "", "", errs.OutOfRange},
		{"limit above max", "2", "500", "", "", errs.OutOfRange},
		{"page zero", "0", "10", "", "", errs.OutOfRange},
		{"page not numeric", "abc", "10", "", "", errs.InvalidFormat},
		{"sortBy not allowed", "1", "10", "password", "", errs.OutOfRange},
		{"sortOrder invalid", "1", "10", "title", "sideways", errs.OutOfRange},
	}

	for _, tt := range fails {
		t.Run(tt.name, func(t *testing.T) {
			_, err := bounds.Validate(tt.page, tt.limit, tt.sortBy, tt.sortOrder, allowed)
			var verr *errs.ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("Validate() error = %v, want ValidationError", err)
			}
			if verr.Kind != tt.wantKind {
				t.Errorf("kind = %s, want %s", verr.Kind, tt.wantKind)
			}
		})
	}
}

func TestSkip(t *testing.T) {
	tests := []struct {
		page, limit, want int
	}{
		{1, 10, 0},
		{3, 25, 50},
		{0, 10, 0}, // never negative
	}
	for _, tt := range tests {
		p := Params{Page: tt.page, Limit: tt.limit}
		if got := p.Skip(); got != tt.want {
			t.Errorf("Skip(page=%d, limit=%d) = %d, want %d", tt.page, tt.limit, got, tt.want)
		}
	}
}
