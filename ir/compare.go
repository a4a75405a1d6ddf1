package ir

import "math"

// Equal reports whether node a of da and node b of db are structurally
// equal. Aliases are resolved, so an alias equals a copy of its target.
// Tags are compared; anchors, styles and positions are not. Two NaN
// floats are equal. Comparison terminates on self-referential documents.
func Equal(da *Document, a NodeID, db *Document, b NodeID) bool {
	e := &equaler{da: da, db: db, active: map[[2]NodeID]bool{}}
	return e.equal(a, b)
}

// DocEqual reports whether the roots of a and b are equal.
func DocEqual(a, b *Document) bool {
	if a.Root == NoNode || b.Root == NoNode {
		return a.Root == b.Root
	}
	return Equal(a, a.Root, b, b.Root)
}

// StreamEqual reports whether a and b hold pairwise equal documents.
func StreamEqual(a, b *Stream) bool {
	if len(a.Docs) != len(b.Docs) {
		return false
	}
	for i := range a.Docs {
		if !DocEqual(a.Docs[i], b.Docs[i]) {
			return false
		}
	}
	return true
}

type equaler struct {
	da, db *Document
	// pairs being compared further up; meeting one again means a cycle
	// through aliases, which is assumed equal.
	active map[[2]NodeID]bool
}

func (e *equaler) equal(a, b NodeID) bool {
	a, errA := e.da.Resolve(a)
	b, errB := e.db.Resolve(b)
	if errA != nil || errB != nil {
		return false
	}
	na, nb := e.da.Node(a), e.db.Node(b)
	if na.Kind != nb.Kind || na.Tag != nb.Tag {
		return false
	}
	switch na.Kind {
	case NullKind:
		return true
	case BoolKind:
		return na.Bool == nb.Bool
	case IntKind:
		return na.Int == nb.Int
	case FloatKind:
		if math.IsNaN(na.Float) {
			return math.IsNaN(nb.Float)
		}
		return na.Float == nb.Float
	case StringKind:
		return na.Text == nb.Text
	}
	key := [2]NodeID{a, b}
	if e.active[key] {
		return true
	}
	e.active[key] = true
	defer delete(e.active, key)
	switch na.Kind {
	case SequenceKind:
		if len(na.Items) != len(nb.Items) {
			return false
		}
		for i := range na.Items {
			if !e.equal(na.Items[i], nb.Items[i]) {
				return false
			}
		}
		return true
	case MappingKind:
		if len(na.Pairs) != len(nb.Pairs) {
			return false
		}
		for i := range na.Pairs {
			pa, pb := na.Pairs[i], nb.Pairs[i]
			if !e.equal(pa.Key, pb.Key) || !e.equal(pa.Value, pb.Value) {
				return false
			}
		}
		return true
	}
	return false
}
