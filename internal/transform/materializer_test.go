package transform

import (
	"reflect"
	"testing"
)

const testBase = "https://cdn.example.com"

func TestMaterializeResult_RegisteredFields(t *testing.T) {
	m := NewMaterializer(DefaultRegistry(), testBase)

	tests := []struct {
		name       string
		entityType string
		in         Value
		want       Value
	}{
		{
			name:       "relative path rewritten",
			entityType: "Cause",
			in:         Record(map[string]Value{"imageUrl": String("/causes/a.jpg")}),
			want:       Record(map[string]Value{"imageUrl": String(testBase + "/causes/a.jpg")}),
		},
		{
			name:       "absolute url untouched",
			entityType: "Cause",
			in:         Record(map[string]Value{"introVideoUrl": String("https://youtu.be/x")}),
			want:       Record(map[string]Value{"introVideoUrl": String("https://youtu.be/x")}),
		},
		{
			name:       "unregistered field untouched",
			entityType: "Cause",
			in:         Record(map[string]Value{"title": String("/looks/like/a/path")}),
			want:       Record(map[string]Value{"title": String("/looks/like/a/path")}),
		},
		{
			name:       "non-string value never rewritten",
			entityType: "Cause",
			in:         Record(map[string]Value{"imageUrl": Number(42)}),
			want:       Record(map[string]Value{"imageUrl": Number(42)}),
		},
		{
			name:       "scheme-relative url untouched",
			entityType: "Organization",
			in:         Record(map[string]Value{"logoUrl": String("//cdn.other.com/logo.png")}),
			want:       Record(map[string]Value{"logoUrl": String("//cdn.other.com/logo.png")}),
		},
		{
			name:       "excluded field untouched",
			entityType: "User",
			in:         Record(map[string]Value{"passwordHash": String("/not/a/path")}),
			want:       Record(map[string]Value{"passwordHash": String("/not/a/path")}),
		},
		{
			name:       "sequence of records",
			entityType: "Documentation",
			in: Sequence(
				Record(map[string]Value{"docUrl": String("/docs/1.pdf")}),
				Record(map[string]Value{"docUrl": String("/docs/2.pdf")}),
			),
			want: Sequence(
				Record(map[string]Value{"docUrl": String(testBase + "/docs/1.pdf")}),
				Record(map[string]Value{"docUrl": String(testBase + "/docs/2.pdf")}),
			),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := m.MaterializeResult(tt.entityType, tt.in)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("MaterializeResult() = %#v, want %#v", got, tt.want)
			}
		})
	}
}

func TestMaterializeResult_NestedRelations(t *testing.T) {
	m := NewMaterializer(DefaultRegistry(), testBase)

	in := Record(map[string]Value{
		"imageUrl":      String("/causes/a.jpg"),
		"introVideoUrl": String("https://youtu.be/x"),
		"lectures": Sequence(
			Record(map[string]Value{
				"documentations": Sequence(
					Record(map[string]Value{"docUrl": String("/docs/b.pdf")}),
				),
			}),
		),
	})

	got := m.MaterializeResult("Cause", in)

	if url := got.Rec["imageUrl"].Str; url != testBase+"/causes/a.jpg" {
		t.Errorf("imageUrl = %q, want prefixed", url)
	}
	if url := got.Rec["introVideoUrl"].Str; url != "https://youtu.be/x" {
		t.Errorf("introVideoUrl = %q, want untouched", url)
	}
	docURL := got.Rec["lectures"].Seq[0].Rec["documentations"].Seq[0].Rec["docUrl"].Str
	if docURL != testBase+"/docs/b.pdf" {
		t.Errorf("nested docUrl = %q, want prefixed", docURL)
	}
}

func TestMaterializeResult_TransparentRecursion(t *testing.T) {
	// "metadata" resolves to no registered type, but traversal must
	// still reach the Documentation record below it.
	m := NewMaterializer(DefaultRegistry(), testBase)

	in := Record(map[string]Value{
		"metadata": Record(map[string]Value{
			"documentation": Record(map[string]Value{
				"docUrl": String("/docs/deep.pdf"),
			}),
		}),
	})

	got := m.MaterializeResult("Cause", in)
	docURL := got.Rec["metadata"].Rec["documentation"].Rec["docUrl"].Str
	if docURL != testBase+"/docs/deep.pdf" {
		t.Errorf("deep docUrl = %q, want prefixed", docURL)
	}
}

func TestMaterializeResult_Idempotent(t *testing.T) {
	m := NewMaterializer(DefaultRegistry(), testBase)

	in := Record(map[string]Value{"imageUrl": String("/causes/a.jpg")})
	once := m.MaterializeResult("Cause", in)
	twice := m.MaterializeResult("Cause", once)

	if !reflect.DeepEqual(once, twice) {
		t.Errorf("materializing twice diverged: %#v vs %#v", once, twice)
	}
}

func TestMaterializeResult_UnregisteredTypePassthrough(t *testing.T) {
	m := NewMaterializer(DefaultRegistry(), testBase)

	in := Record(map[string]Value{
		"fileUrl": String("/files/x.bin"),
		"count":   Number(2),
	})

	got := m.MaterializeResult("AuditLog", in)
	if !reflect.DeepEqual(got, in) {
		t.Errorf("unregistered type transformed: %#v, want %#v", got, in)
	}
}

func TestMaterializeResult_NoBaseURLDisablesRewrites(t *testing.T) {
	m := NewMaterializer(DefaultRegistry(), "")

	in := Record(map[string]Value{"imageUrl": String("/causes/a.jpg")})
	got := m.MaterializeResult("Cause", in)

	if !reflect.DeepEqual(got, in) {
		t.Errorf("rewrite happened without a base URL: %#v", got)
	}
}

func TestKeyToEntityType(t *testing.T) {
	tests := []struct {
		key  string
		want string
	}{
		{"documentation", "Documentation"},
		{"user", "User"},
		{"", ""},
		{"Lecture", "Lecture"},
	}
	for _, tt := range tests {
		if got := keyToEntityType(tt.key); got != tt.want {
			t.Errorf("keyToEntityType(%q) = %q, want %q", tt.key, got, tt.want)
		}
	}
}
