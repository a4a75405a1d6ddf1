package encode

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/sturdio/sturdio/ir"
	"github.com/sturdio/sturdio/token"
)

// Encode writes doc to w. Nothing is written if encoding fails.
func Encode(doc *ir.Document, w io.Writer, opts ...EncodeOption) error {
	es := newEncState(opts)
	buf := &bytes.Buffer{}
	if err := es.document(buf, doc, doc.Root); err != nil {
		return err
	}
	_, err := w.Write(buf.Bytes())
	return err
}

// EncodeNode writes the subtree of doc at id to w as a document of its
// own.
func EncodeNode(doc *ir.Document, id ir.NodeID, w io.Writer, opts ...EncodeOption) error {
	es := newEncState(opts)
	buf := &bytes.Buffer{}
	if err := es.document(buf, doc, id); err != nil {
		return err
	}
	_, err := w.Write(buf.Bytes())
	return err
}

// EncodeStream writes the documents of s to w. In YAML documents after
// the first are preceded by "---"; in JSON each document is one value.
func EncodeStream(s *ir.Stream, w io.Writer, opts ...EncodeOption) error {
	es := newEncState(opts)
	buf := &bytes.Buffer{}
	for i, doc := range s.Docs {
		if i > 0 && !es.format.IsJSON() {
			buf.WriteString(es.color(ir.NullKind, SepColor, "---") + "\n")
		}
		if err := es.document(buf, doc, doc.Root); err != nil {
			return fmt.Errorf("document %d: %w", i, err)
		}
	}
	_, err := w.Write(buf.Bytes())
	return err
}

func Dump(doc *ir.Document, opts ...EncodeOption) ([]byte, error) {
	buf := &bytes.Buffer{}
	if err := Encode(doc, buf, opts...); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func DumpStream(s *ir.Stream, opts ...EncodeOption) ([]byte, error) {
	buf := &bytes.Buffer{}
	if err := EncodeStream(s, buf, opts...); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (es *EncState) color(k ir.Kind, a ColorAttr, s string) string {
	if es.Color == nil {
		return s
	}
	return es.Color(Colorable{Kind: k, Attr: a}, s)
}

func (es *EncState) document(buf *bytes.Buffer, doc *ir.Document, root ir.NodeID) error {
	if es.format.IsJSON() {
		return es.json(buf, doc, root)
	}
	if root == ir.NoNode {
		buf.WriteString(es.color(ir.NullKind, ValueColor, "null") + "\n")
		return nil
	}
	e := &encoder{
		EncState: es,
		doc:      doc,
		buf:      buf,
		shared:   map[ir.NodeID]bool{},
		names:    map[ir.NodeID]string{},
		taken:    map[string]ir.NodeID{},
		reserved: map[string]bool{},
	}
	for _, id := range doc.Anchors() {
		e.reserved[doc.Node(id).Anchor] = true
	}
	if err := e.scan(root, map[ir.NodeID]bool{}); err != nil {
		return err
	}
	return e.node(root, 0, posRoot)
}

func (es *EncState) json(buf *bytes.Buffer, doc *ir.Document, root ir.NodeID) error {
	d, err := doc.NodeJSON(root)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrEncoding, err)
	}
	if err := json.Indent(buf, d, "", strings.Repeat(" ", es.indent)); err != nil {
		return fmt.Errorf("%w: %w", ErrEncoding, err)
	}
	buf.WriteByte('\n')
	return nil
}

type position int

const (
	// at the start of a line, column 0
	posRoot position = iota
	// just after "key:"
	posValue
	// just after "- " or "? "
	posItem
)

type encoder struct {
	*EncState
	doc *ir.Document
	buf *bytes.Buffer

	// nodes reached more than once: through an alias or by being
	// shared. They are written once with an anchor, then as aliases.
	shared   map[ir.NodeID]bool
	names    map[ir.NodeID]string
	taken    map[string]ir.NodeID
	reserved map[string]bool
	seq      int
}

func (e *encoder) scan(id ir.NodeID, seen map[ir.NodeID]bool) error {
	n := e.doc.Node(id)
	if n.Kind == ir.AliasKind {
		t, err := e.doc.Resolve(id)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrEncoding, err)
		}
		e.shared[t] = true
		if seen[t] {
			return nil
		}
		return e.scan(t, seen)
	}
	if seen[id] {
		e.shared[id] = true
		return nil
	}
	seen[id] = true
	if tag := n.Tag; ir.IsCoreTag(tag) && tag != ir.KindTag(n.Kind) {
		return fmt.Errorf("%w: %w: %s node with tag %s", ErrEncoding, ir.ErrTag, n.Kind, tag)
	}
	for _, c := range n.Items {
		if err := e.scan(c, seen); err != nil {
			return err
		}
	}
	for _, p := range n.Pairs {
		if err := e.scan(p.Key, seen); err != nil {
			return err
		}
		if err := e.scan(p.Value, seen); err != nil {
			return err
		}
	}
	return nil
}

// target gives the node written in place of id: id itself, or the
// resolved target of an alias.
func (e *encoder) target(id ir.NodeID) (ir.NodeID, *ir.Node) {
	n := e.doc.Node(id)
	if n.Kind != ir.AliasKind {
		return id, n
	}
	t, _ := e.doc.Resolve(id)
	return t, e.doc.Node(t)
}

// asAlias reports whether id is written as an alias of a node already
// written, and the alias text.
func (e *encoder) asAlias(id ir.NodeID) (string, bool) {
	t, _ := e.target(id)
	name, ok := e.names[t]
	if !ok {
		return "", false
	}
	return "*" + name, true
}

func (e *encoder) needsAnchor(id ir.NodeID, n *ir.Node) bool {
	return n.Anchor != "" || e.shared[id]
}

func (e *encoder) anchorName(id ir.NodeID, n *ir.Node) string {
	name := n.Anchor
	if !validAnchor(name) {
		name = ""
	}
	if name == "" {
		for {
			e.seq++
			name = "a" + strconv.Itoa(e.seq)
			if _, ok := e.taken[name]; !ok && !e.reserved[name] {
				break
			}
		}
	}
	base := name
	for k := 2; ; k++ {
		other, ok := e.taken[name]
		if !ok || other == id {
			break
		}
		name = base + "_" + strconv.Itoa(k)
	}
	e.taken[name] = id
	e.names[id] = name
	return name
}

func validAnchor(name string) bool {
	if name == "" {
		return false
	}
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_', r == '-':
		default:
			return false
		}
	}
	return true
}

// props writes the anchor and tag of a node about to be written,
// registering its anchor.
func (e *encoder) props(id ir.NodeID, n *ir.Node) string {
	var parts []string
	if e.needsAnchor(id, n) {
		parts = append(parts, e.color(n.Kind, AnchorColor, "&"+e.anchorName(id, n)))
	}
	if n.Tag != "" {
		parts = append(parts, e.color(n.Kind, TagColor, n.Tag))
	}
	return strings.Join(parts, " ")
}

func (e *encoder) pad(n int) {
	e.buf.WriteString(strings.Repeat(" ", n))
}

// node writes id. ind is the column of the block content of the node.
func (e *encoder) node(id ir.NodeID, ind int, pos position) error {
	if alias, ok := e.asAlias(id); ok {
		e.inline(pos, e.color(ir.AliasKind, ValueColor, alias))
		return nil
	}
	id, n := e.target(id)
	props := e.props(id, n)
	switch n.Kind {
	case ir.SequenceKind, ir.MappingKind:
		if n.Len() == 0 || e.flow(n) {
			e.inline(pos, join(props, e.flowText(n, true)))
			return nil
		}
	default:
		if n.Kind == ir.StringKind {
			if header, lines, ok := literal(n.Text); ok {
				e.inline(pos, join(props, e.color(ir.StringKind, SepColor, header)))
				if pos == posRoot {
					ind = e.EncState.indent
				}
				for _, ln := range lines {
					if ln != "" {
						e.pad(ind)
						e.buf.WriteString(e.color(ir.StringKind, LiteralColor, ln))
					}
					e.buf.WriteByte('\n')
				}
				return nil
			}
		}
		e.inline(pos, join(props, e.scalar(n, false)))
		return nil
	}
	fresh := true
	switch {
	case props != "":
		if pos == posValue {
			e.buf.WriteByte(' ')
		}
		e.buf.WriteString(props + "\n")
	case pos == posValue:
		e.buf.WriteByte('\n')
	case pos == posItem:
		fresh = false
	}
	if n.Kind == ir.SequenceKind {
		return e.blockSequence(n, ind, fresh)
	}
	return e.blockMapping(n, ind, fresh)
}

// inline writes single line content at pos and ends the line.
func (e *encoder) inline(pos position, s string) {
	if pos == posValue {
		e.buf.WriteByte(' ')
	}
	e.buf.WriteString(s + "\n")
}

func join(props, s string) string {
	if props == "" {
		return s
	}
	return props + " " + s
}

func (e *encoder) blockSequence(n *ir.Node, ind int, fresh bool) error {
	for i, c := range n.Items {
		if i > 0 || fresh {
			e.pad(ind)
		}
		e.buf.WriteString(e.color(ir.SequenceKind, SepColor, "-") + " ")
		if err := e.node(c, ind+2, posItem); err != nil {
			return err
		}
	}
	return nil
}

func (e *encoder) blockMapping(n *ir.Node, ind int, fresh bool) error {
	for i, p := range n.Pairs {
		if i > 0 || fresh {
			e.pad(ind)
		}
		if key, ok := e.simpleKey(p.Key); ok {
			e.buf.WriteString(key + e.color(ir.MappingKind, SepColor, ":"))
		} else {
			e.buf.WriteString(e.color(ir.MappingKind, SepColor, "?") + " ")
			if err := e.node(p.Key, ind+2, posItem); err != nil {
				return err
			}
			e.pad(ind)
			e.buf.WriteString(e.color(ir.MappingKind, SepColor, ":"))
		}
		if err := e.node(p.Value, ind+e.EncState.indent, posValue); err != nil {
			return err
		}
	}
	return nil
}

// simpleKey renders a key that can be written before ':' on one line.
func (e *encoder) simpleKey(id ir.NodeID) (string, bool) {
	if _, ok := e.asAlias(id); ok {
		return "", false
	}
	id, n := e.target(id)
	if !n.Kind.IsScalar() || e.needsAnchor(id, n) {
		return "", false
	}
	plain := (&EncState{}).scalar(n, false)
	if n.Tag != "" {
		plain = n.Tag + " " + plain
	}
	if utf8.RuneCountInString(plain) > 1024 {
		return "", false
	}
	return e.key(n, false), true
}

// flow reports whether the non-empty collection n is written in flow
// style.
func (e *encoder) flow(n *ir.Node) bool {
	if n.Len() > e.flowMax {
		return false
	}
	ok := func(id ir.NodeID) bool {
		if _, alias := e.asAlias(id); alias {
			return false
		}
		c := e.doc.Node(id)
		if !c.Kind.IsScalar() || e.needsAnchor(id, c) {
			return false
		}
		return c.Kind != ir.StringKind || !strings.Contains(c.Text, "\n")
	}
	for _, c := range n.Items {
		if !ok(c) {
			return false
		}
	}
	for _, p := range n.Pairs {
		if !ok(p.Key) || !ok(p.Value) {
			return false
		}
	}
	return utf8.RuneCountInString(e.flowText(n, false)) <= e.flowWidth
}

// flowText renders a collection whose entries are all scalars.
func (e *encoder) flowText(n *ir.Node, colored bool) string {
	es := e.EncState
	if !colored {
		es = &EncState{}
	}
	sep := func(s string) string { return es.color(n.Kind, SepColor, s) }
	entry := func(id ir.NodeID) string {
		c := e.doc.Node(id)
		return join(es.tag(c), es.scalar(c, true))
	}
	var parts []string
	for _, c := range n.Items {
		parts = append(parts, entry(c))
	}
	for _, p := range n.Pairs {
		key := es.key(e.doc.Node(p.Key), true)
		parts = append(parts, key+sep(":")+" "+entry(p.Value))
	}
	lb, rb := "[", "]"
	if n.Kind == ir.MappingKind {
		lb, rb = "{", "}"
	}
	return sep(lb) + strings.Join(parts, sep(",")+" ") + sep(rb)
}

func (es *EncState) tag(n *ir.Node) string {
	if n.Tag == "" {
		return ""
	}
	return es.color(n.Kind, TagColor, n.Tag)
}

// key renders a scalar mapping key with its tag.
func (es *EncState) key(n *ir.Node, inFlow bool) string {
	if n.Kind != ir.StringKind {
		return join(es.tag(n), es.scalar(n, inFlow))
	}
	return join(es.tag(n), es.color(ir.MappingKind, FieldColor, quoteString(n.Text, inFlow)))
}

// scalar renders a scalar on one line.
func (es *EncState) scalar(n *ir.Node, inFlow bool) string {
	var s string
	switch n.Kind {
	case ir.StringKind:
		return es.color(ir.StringKind, ValueColor, quoteString(n.Text, inFlow))
	case ir.NullKind, ir.BoolKind, ir.IntKind, ir.FloatKind:
		s = n.ScalarText()
	}
	return es.color(n.Kind, ValueColor, s)
}

// quoteString gives v plain when it reads back as the same string under
// both the core and YAML 1.1 schemas, and double quoted otherwise.
// Numbers too large for an int64 are strings but are quoted all the same.
func quoteString(v string, inFlow bool) string {
	needs := token.NeedsQuote(v)
	if inFlow && !needs {
		needs = token.NeedsFlowQuote(v) || strings.ContainsAny(v, ":#")
	}
	if !needs {
		needs = !ir.CoreSchema.ResolvesAsString(v) ||
			!ir.YAML11Schema.ResolvesAsString(v) ||
			ir.CoreSchema.IsNumeric(v) || ir.YAML11Schema.IsNumeric(v) ||
			v == "<<" || v == "=" || looksLikeDate(v)
	}
	if needs {
		return token.Quote(v, false)
	}
	return v
}

// looksLikeDate matches the start of a YAML 1.1 timestamp, which some
// readers resolve to a time.
func looksLikeDate(v string) bool {
	if len(v) < 8 {
		return false
	}
	for i := range 4 {
		if v[i] < '0' || v[i] > '9' {
			return false
		}
	}
	return v[4] == '-'
}

// literal returns the header and lines of v written as a literal block
// scalar, or false if it is better written quoted.
func literal(v string) (string, []string, bool) {
	if !strings.Contains(v, "\n") {
		return "", nil, false
	}
	body := strings.TrimRight(v, "\n")
	if body == "" || !utf8.ValidString(v) {
		return "", nil, false
	}
	for _, r := range v {
		switch {
		case r == '\n':
		case r < ' ', r == 0x7f, r == '\u0085', r == '\u2028', r == '\u2029', r == '\ufeff':
			return "", nil, false
		case r >= 0x80 && r <= 0x9f:
			return "", nil, false
		}
	}
	lines := strings.Split(body, "\n")
	for _, ln := range lines {
		if ln != "" && strings.TrimLeft(ln, " ") == "" {
			return "", nil, false
		}
	}
	for _, ln := range lines {
		if ln == "" {
			continue
		}
		if ln[0] == ' ' {
			return "", nil, false
		}
		break
	}
	header := "|"
	switch trailing := len(v) - len(body); {
	case trailing == 0:
		header = "|-"
	case trailing > 1:
		header = "|+"
		for range trailing - 1 {
			lines = append(lines, "")
		}
	}
	return header, lines, true
}
