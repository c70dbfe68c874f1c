package graph

// NodeID identifies a node in the graph. IDs are opaque; only identity matters.
type NodeID uint64

// Pair is an unordered pair of distinct nodes, stored canonically with U < V.
// A Pair is either an existing edge or a candidate non-edge; it carries no
// label itself.
type Pair struct {
	U NodeID
	V NodeID
}

// NewPair builds a canonical pair from two node IDs.
// Self-pairs are rejected with an invalid input error.
func NewPair(a, b NodeID) (Pair, error) {
	if a == b {
		return Pair{}, InvalidInputError("NewPair", "pair", "self-pair")
	}
	if a > b {
		a, b = b, a
	}
	return Pair{U: a, V: b}, nil
}

// MustPair is NewPair for statically known-distinct IDs; panics on a self-pair.
// Intended for fixed demonstration datasets and test fixtures.
func MustPair(a, b NodeID) Pair {
	p, err := NewPair(a, b)
	if err != nil {
		panic(err)
	}
	return p
}

// Less orders pairs by (U, V) for deterministic iteration.
func (p Pair) Less(o Pair) bool {
	if p.U != o.U {
		return p.U < o.U
	}
	return p.V < o.V
}

// Other returns the endpoint opposite to id, and whether id is an endpoint at all.
func (p Pair) Other(id NodeID) (NodeID, bool) {
	switch id {
	case p.U:
		return p.V, true
	case p.V:
		return p.U, true
	default:
		return 0, false
	}
}
