package transform

import (
	"reflect"
	"strings"
	"testing"
)

func TestWalk_PreservesShape(t *testing.T) {
	input := Record(map[string]Value{
		"name":   String("cause"),
		"active": Bool(true),
		"weight": Number(3),
		"tags":   Sequence(String("a"), String("b")),
		"nested": Record(map[string]Value{
			"note": String("x"),
			"none": Null(),
		}),
	})

	got := Walk(input, func(v Value) Value {
		if v.Kind == KindString {
			return String(strings.ToUpper(v.Str))
		}
		return v
	})

	want := Record(map[string]Value{
		"name":   String("CAUSE"),
		"active": Bool(true),
		"weight": Number(3),
		"tags":   Sequence(String("A"), String("B")),
		"nested": Record(map[string]Value{
			"note": String("X"),
			"none": Null(),
		}),
	})

	if !reflect.DeepEqual(got, want) {
		t.Errorf("Walk() = %#v, want %#v", got, want)
	}
}

func TestWalk_DoesNotMutateInput(t *testing.T) {
	input := Record(map[string]Value{
		"items": Sequence(String("keep")),
	})

	_ = Walk(input, func(v Value) Value {
		if v.Kind == KindString {
			return String("changed")
		}
		return v
	})

	if got := input.Rec["items"].Seq[0].Str; got != "keep" {
		t.Errorf("input mutated: got %q, want %q", got, "keep")
	}
}

func TestFromAny_RoundTrip(t *testing.T) {
	src := map[string]any{
		"id":    float64(7),
		"title": "lecture",
		"live":  false,
		"meta":  nil,
		"docs": []any{
			map[string]any{"docUrl": "/docs/a.pdf"},
		},
	}

	v, err := FromAny(src)
	if err != nil {
		t.Fatalf("FromAny() error: %v", err)
	}

	if !reflect.DeepEqual(v.ToAny(), src) {
		t.Errorf("round trip mismatch:\n got  %#v\n want %#v", v.ToAny(), src)
	}
}

func TestFromAny_RejectsUnsupportedType(t *testing.T) {
	if _, err := FromAny(make(chan int)); err == nil {
		t.Error("FromAny() should fail on unsupported types")
	}
}
