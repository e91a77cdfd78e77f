package transform

// ScalarVisitor is called for every scalar node during a walk.
// It receives the current scalar and returns its replacement;
// returning the input unchanged keeps the node as-is.
type ScalarVisitor func(v Value) Value

// Walk traverses a Value tree and returns a new tree of the same shape
// with visit applied to every scalar node.
//
// Sequences and records are copied, never modified in place, so the
// input tree remains valid after the call. Callers guarantee acyclic
// input: trees here originate from decoded JSON or database rows,
// which cannot contain cycles.
func Walk(v Value, visit ScalarVisitor) Value {
	switch v.Kind {
	case KindSequence:
		seq := make([]Value, len(v.Seq))
		for i, item := range v.Seq {
			seq[i] = Walk(item, visit)
		}
		return Value{Kind: KindSequence, Seq: seq}

	case KindRecord:
		rec := make(map[string]Value, len(v.Rec))
		for key, item := range v.Rec {
			rec[key] = Walk(item, visit)
		}
		return Value{Kind: KindRecord, Rec: rec}

	default:
		return visit(v)
	}
}
