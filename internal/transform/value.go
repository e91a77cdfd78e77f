package transform

import "fmt"

// Kind discriminates the variants of a Value.
type Kind int

const (
	// KindNull is the zero Value, representing JSON null.
	KindNull Kind = iota
	// KindString is a string scalar.
	KindString
	// KindNumber is a numeric scalar (JSON numbers decode to float64).
	KindNumber
	// KindBool is a boolean scalar.
	KindBool
	// KindSequence is an ordered list of Values.
	KindSequence
	// KindRecord is a keyed collection of Values.
	KindRecord
)

func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindString:
		return "string"
	case KindNumber:
		return "number"
	case KindBool:
		return "bool"
	case KindSequence:
		return "sequence"
	case KindRecord:
		return "record"
	default:
		return "unknown"
	}
}

// Value is a closed tagged variant over a dynamic tree:
// scalar (string/number/bool/null), sequence, or record.
//
// Only the field matching Kind is meaningful; the others hold their
// zero value. Values are treated as immutable by every transform in
// this package: walkers build new sequences and records instead of
// modifying the ones they were given.
type Value struct {
	Kind Kind
	Str  string
	Num  float64
	Bool bool
	Seq  []Value
	Rec  map[string]Value
}

// Null returns the null Value.
func Null() Value { return Value{Kind: KindNull} }

// String returns a string scalar Value.
func String(s string) Value { return Value{Kind: KindString, Str: s} }

// Number returns a numeric scalar Value.
func Number(n float64) Value { return Value{Kind: KindNumber, Num: n} }

// Bool returns a boolean scalar Value.
func Bool(b bool) Value { return Value{Kind: KindBool, Bool: b} }

// Sequence returns a sequence Value over the given items.
func Sequence(items ...Value) Value { return Value{Kind: KindSequence, Seq: items} }

// Record returns a record Value over the given fields.
func Record(fields map[string]Value) Value { return Value{Kind: KindRecord, Rec: fields} }

// IsScalar reports whether v is a leaf node (null, string, number, bool).
func (v Value) IsScalar() bool {
	return v.Kind != KindSequence && v.Kind != KindRecord
}

// FromAny converts a decoded JSON value (the shapes produced by
// encoding/json into interface{}) into a Value tree.
//
// Integer types are accepted as well so trees can be built from
// database rows, not only from decoded request bodies.
func FromAny(src any) (Value, error) {
	switch t := src.(type) {
	case nil:
		return Null(), nil
	case string:
		return String(t), nil
	case bool:
		return Bool(t), nil
	case float64:
		return Number(t), nil
	case float32:
		return Number(float64(t)), nil
	case int:
		return Number(float64(t)), nil
	case int32:
		return Number(float64(t)), nil
	case int64:
		return Number(float64(t)), nil
	case []any:
		seq := make([]Value, 0, len(t))
		for _, item := range t {
			v, err := FromAny(item)
			if err != nil {
				return Null(), err
			}
			seq = append(seq, v)
		}
		return Sequence(seq...), nil
	case map[string]any:
		rec := make(map[string]Value, len(t))
		for key, item := range t {
			v, err := FromAny(item)
			if err != nil {
				return Null(), err
			}
			rec[key] = v
		}
		return Record(rec), nil
	default:
		return Null(), fmt.Errorf("transform: unsupported value type %T", src)
	}
}

// ToAny converts a Value tree back into the interface{} shapes used by
// encoding/json, so results can be serialized by the HTTP layer.
func (v Value) ToAny() any {
	switch v.Kind {
	case KindString:
		return v.Str
	case KindNumber:
		return v.Num
	case KindBool:
		return v.Bool
	case KindSequence:
		out := make([]any, len(v.Seq))
		for i, item := range v.Seq {
			out[i] = item.ToAny()
		}
		return out
	case KindRecord:
		out := make(map[string]any, len(v.Rec))
		for key, item := range v.Rec {
			out[key] = item.ToAny()
		}
		return out
	default:
		return nil
	}
}
