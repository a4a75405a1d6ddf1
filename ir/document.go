package ir

import (
	"fmt"
	"slices"
)

// Document is an arena of nodes with a root.
type Document struct {
	nodes  []Node
	Root   NodeID
	frozen bool
}

func NewDocument() *Document {
	return &Document{Root: NoNode}
}

// Stream is the ordered documents of one input.
type Stream struct {
	Docs []*Document
}

func (s *Stream) Len() int {
	return len(s.Docs)
}

// Len is the number of nodes in the arena.
func (d *Document) Len() int {
	return len(d.nodes)
}

// Node returns the node with the given ID. The node belongs to d and must
// not be modified when d is frozen.
func (d *Document) Node(id NodeID) *Node {
	if id < 0 || int(id) >= len(d.nodes) {
		panic(fmt.Sprintf("ir: node %d out of range [0,%d)", id, len(d.nodes)))
	}
	return &d.nodes[id]
}

func (d *Document) RootNode() *Node {
	if d.Root == NoNode {
		return nil
	}
	return d.Node(d.Root)
}

func (d *Document) Frozen() bool {
	return d.frozen
}

// Freeze makes d read-only. Freezing a document with reserved but
// unfilled nodes panics.
func (d *Document) Freeze() {
	for i := range d.nodes {
		if d.nodes[i].pending {
			panic(fmt.Sprintf("ir: freeze with pending node %d", i))
		}
	}
	d.frozen = true
}

func (d *Document) mutable() {
	if d.frozen {
		panic("ir: modification of frozen document")
	}
}

// Clone returns a mutable copy of d.
func (d *Document) Clone() *Document {
	res := &Document{Root: d.Root, nodes: make([]Node, len(d.nodes))}
	for i := range d.nodes {
		n := d.nodes[i]
		n.Items = slices.Clone(n.Items)
		n.Pairs = slices.Clone(n.Pairs)
		res.nodes[i] = n
	}
	return res
}

// Reserve allocates a node whose content is supplied later with Fill.
func (d *Document) Reserve() NodeID {
	d.mutable()
	d.nodes = append(d.nodes, Node{Kind: NullKind, Target: NoNode, pending: true})
	return NodeID(len(d.nodes) - 1)
}

// Fill sets the content of a reserved node, keeping its anchor when n has
// none. Children of n must exist and be complete.
func (d *Document) Fill(id NodeID, n Node) {
	d.mutable()
	cur := d.Node(id)
	if !cur.pending {
		panic(fmt.Sprintf("ir: fill of node %d which is not reserved", id))
	}
	d.checkChildren(&n)
	if n.Anchor == "" {
		n.Anchor = cur.Anchor
	}
	if n.Tag == "" {
		n.Tag = cur.Tag
	}
	n.pending = false
	*cur = n
}

// Add appends n to the arena and returns its ID.
func (d *Document) Add(n Node) NodeID {
	d.mutable()
	d.checkChildren(&n)
	n.pending = false
	d.nodes = append(d.nodes, n)
	return NodeID(len(d.nodes) - 1)
}

func (d *Document) checkChildren(n *Node) {
	check := func(id NodeID) {
		if d.Node(id).pending {
			panic(fmt.Sprintf("ir: reference to incomplete node %d", id))
		}
	}
	switch n.Kind {
	case SequenceKind:
		for _, id := range n.Items {
			check(id)
		}
	case MappingKind:
		for _, p := range n.Pairs {
			check(p.Key)
			check(p.Value)
		}
	case AliasKind:
		d.Node(n.Target)
	}
}

func (d *Document) AddNull() NodeID {
	return d.Add(Null())
}

func (d *Document) AddBool(b bool) NodeID {
	return d.Add(Bool(b))
}

func (d *Document) AddInt(i int64) NodeID {
	return d.Add(Int(i))
}

func (d *Document) AddFloat(f float64) NodeID {
	return d.Add(Float(f))
}

func (d *Document) AddString(s string) NodeID {
	return d.Add(String(s))
}

func (d *Document) AddSequence(items ...NodeID) NodeID {
	return d.Add(Sequence(items...))
}

func (d *Document) AddMapping(pairs ...Pair) NodeID {
	return d.Add(Mapping(pairs...))
}

// AddAlias adds a reference to target. The target may be a reserved
// node, which is how a collection refers to itself.
func (d *Document) AddAlias(target NodeID) NodeID {
	return d.Add(Alias(target))
}

func (d *Document) SetRoot(id NodeID) {
	d.mutable()
	if id != NoNode {
		d.Node(id)
	}
	d.Root = id
}

func (d *Document) SetAnchor(id NodeID, name string) {
	d.mutable()
	d.Node(id).Anchor = name
}

func (d *Document) SetTag(id NodeID, tag string) {
	d.mutable()
	d.Node(id).Tag = tag
}

// Append adds item to the sequence seq.
func (d *Document) Append(seq, item NodeID) {
	d.mutable()
	n := d.Node(seq)
	if n.Kind != SequenceKind {
		panic(fmt.Sprintf("ir: append to %s", n.Kind))
	}
	d.link(seq, item)
	n.Items = append(n.Items, item)
}

// Put sets the value of key in mapping m, replacing the value of the
// first entry whose key is equal to key or adding a new entry.
func (d *Document) Put(m, key, value NodeID) {
	d.mutable()
	n := d.Node(m)
	if n.Kind != MappingKind {
		panic(fmt.Sprintf("ir: put to %s", n.Kind))
	}
	d.link(m, key)
	d.link(m, value)
	for i := range n.Pairs {
		if Equal(d, n.Pairs[i].Key, d, key) {
			n.Pairs[i].Value = value
			return
		}
	}
	n.Pairs = append(n.Pairs, Pair{Key: key, Value: value})
}

// link panics if making child a child of parent would let structural
// traversal from parent reach parent again.
func (d *Document) link(parent, child NodeID) {
	if d.Node(child).pending {
		panic(fmt.Sprintf("ir: reference to incomplete node %d", child))
	}
	if d.reaches(child, parent) {
		panic(fmt.Sprintf("ir: node %d would contain itself", parent))
	}
}

func (d *Document) reaches(from, to NodeID) bool {
	seen := map[NodeID]bool{}
	var walk func(id NodeID) bool
	walk = func(id NodeID) bool {
		if id == to {
			return true
		}
		if seen[id] {
			return false
		}
		seen[id] = true
		n := d.Node(id)
		for _, c := range n.Items {
			if walk(c) {
				return true
			}
		}
		for _, p := range n.Pairs {
			if walk(p.Key) || walk(p.Value) {
				return true
			}
		}
		return false
	}
	return walk(from)
}

// Resolve follows aliases from id to a node which is not an alias.
func (d *Document) Resolve(id NodeID) (NodeID, error) {
	for range len(d.nodes) + 1 {
		n := d.Node(id)
		if n.Kind != AliasKind {
			return id, nil
		}
		id = n.Target
	}
	return NoNode, fmt.Errorf("%w: at node %d", ErrCycle, id)
}

// Get returns the value of the first entry of mapping m whose key is a
// scalar with the given canonical text.
func (d *Document) Get(m NodeID, key string) (NodeID, bool) {
	m, err := d.Resolve(m)
	if err != nil {
		return NoNode, false
	}
	n := d.Node(m)
	if n.Kind != MappingKind {
		return NoNode, false
	}
	for _, p := range n.Pairs {
		k, err := d.Resolve(p.Key)
		if err != nil {
			continue
		}
		kn := d.Node(k)
		if kn.Kind.IsScalar() && kn.ScalarText() == key {
			return p.Value, true
		}
	}
	return NoNode, false
}

// Anchors returns the IDs of anchored nodes in arena order.
func (d *Document) Anchors() []NodeID {
	var res []NodeID
	for i := range d.nodes {
		if d.nodes[i].Anchor != "" {
			res = append(res, NodeID(i))
		}
	}
	return res
}

// Truth reports whether the node is non-empty: true, non-zero, a
// non-empty string or a non-empty collection.
func (d *Document) Truth(id NodeID) bool {
	id, err := d.Resolve(id)
	if err != nil {
		return false
	}
	n := d.Node(id)
	switch n.Kind {
	case MappingKind, SequenceKind:
		return n.Len() != 0
	case StringKind:
		return n.Text != ""
	case IntKind:
		return n.Int != 0
	case FloatKind:
		return n.Float != 0
	case BoolKind:
		return n.Bool
	default:
		return false
	}
}
