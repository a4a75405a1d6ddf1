package ir

import (
	"math"
	"strconv"

	"github.com/sturdio/sturdio/token"
)

// NodeID addresses a node within its Document.
type NodeID int32

// NoNode is the zero reference: no root, no target.
const NoNode NodeID = -1

// Pair is one mapping entry.
type Pair struct {
	Key   NodeID
	Value NodeID
}

// Node is a tagged variant: which value fields are meaningful depends on
// Kind. Text holds the value of a string and the source text of other
// parsed scalars.
type Node struct {
	Kind   Kind
	Tag    string
	Anchor string

	// Style is how a scalar was written; Flow is set for collections
	// written in flow style. Both are hints and do not affect equality.
	Style token.ScalarStyle
	Flow  bool

	Text  string
	Bool  bool
	Int   int64
	Float float64

	Items  []NodeID
	Pairs  []Pair
	Target NodeID

	Pos token.Pos

	pending bool
}

func Null() Node {
	return Node{Kind: NullKind, Target: NoNode}
}

func Bool(b bool) Node {
	return Node{Kind: BoolKind, Bool: b, Target: NoNode}
}

func Int(i int64) Node {
	return Node{Kind: IntKind, Int: i, Target: NoNode}
}

func Float(f float64) Node {
	return Node{Kind: FloatKind, Float: f, Target: NoNode}
}

func String(s string) Node {
	return Node{Kind: StringKind, Text: s, Target: NoNode}
}

func Sequence(items ...NodeID) Node {
	return Node{Kind: SequenceKind, Items: items, Target: NoNode}
}

func Mapping(pairs ...Pair) Node {
	return Node{Kind: MappingKind, Pairs: pairs, Target: NoNode}
}

func Alias(target NodeID) Node {
	return Node{Kind: AliasKind, Target: target}
}

// Len is the number of entries of a collection and 0 otherwise.
func (n *Node) Len() int {
	switch n.Kind {
	case SequenceKind:
		return len(n.Items)
	case MappingKind:
		return len(n.Pairs)
	}
	return 0
}

// ScalarText gives the canonical text of a scalar: strings as is,
// null as "null", floats always with a '.' or an exponent.
func (n *Node) ScalarText() string {
	switch n.Kind {
	case NullKind:
		return "null"
	case BoolKind:
		return strconv.FormatBool(n.Bool)
	case IntKind:
		return strconv.FormatInt(n.Int, 10)
	case FloatKind:
		return FormatFloat(n.Float)
	case StringKind:
		return n.Text
	}
	return ""
}

// FormatFloat formats f so that it reads back as a float: .inf, -.inf,
// .nan or a number containing '.' or an exponent.
func FormatFloat(f float64) string {
	switch {
	case math.IsNaN(f):
		return ".nan"
	case math.IsInf(f, 1):
		return ".inf"
	case math.IsInf(f, -1):
		return "-.inf"
	}
	s := strconv.FormatFloat(f, 'g', -1, 64)
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '.', 'e', 'E':
			return s
		}
	}
	return s + ".0"
}
