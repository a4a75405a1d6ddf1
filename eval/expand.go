package eval

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/sturdio/sturdio/debug"
	"github.com/sturdio/sturdio/ir"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
)

// ExpandEnv returns a frozen copy of doc in which the expressions of
// every string scalar, keys included, are expanded. doc is not modified.
// Anchors, aliases and tags are kept; a standard tag which no longer
// matches the kind of an expanded value is dropped.
func ExpandEnv(doc *ir.Document, env Env) (*ir.Document, error) {
	x := &expander{
		src:  doc,
		dst:  ir.NewDocument(),
		env:  map[string]any(env),
		done: map[ir.NodeID]ir.NodeID{},
	}
	if x.env == nil {
		x.env = map[string]any{}
	}
	if doc.Root != ir.NoNode {
		id, err := x.node(doc.Root, "$")
		if err != nil {
			return nil, err
		}
		x.dst.SetRoot(id)
	}
	x.dst.Freeze()
	return x.dst, nil
}

// ExpandString expands every expression of v into text. getpath and
// exists see an empty document.
func ExpandString(v string, env Env) (string, error) {
	x := &expander{src: ir.NewDocument(), env: map[string]any(env)}
	if x.env == nil {
		x.env = map[string]any{}
	}
	return x.text(v, "$")
}

type expander struct {
	src, dst *ir.Document
	env      map[string]any
	done     map[ir.NodeID]ir.NodeID
}

func (x *expander) node(id ir.NodeID, at string) (ir.NodeID, error) {
	if res, ok := x.done[id]; ok {
		return res, nil
	}
	n := x.src.Node(id)
	var (
		res ir.NodeID
		err error
	)
	switch n.Kind {
	case ir.AliasKind:
		var target ir.NodeID
		target, err = x.node(n.Target, at)
		if err != nil {
			return ir.NoNode, err
		}
		res = x.dst.AddAlias(target)
	case ir.StringKind:
		res, err = x.str(n, at)
		if err != nil {
			return ir.NoNode, err
		}
	case ir.SequenceKind, ir.MappingKind:
		return x.collection(id, n, at)
	default:
		c := *n
		res = x.dst.Add(c)
	}
	x.done[id] = res
	return res, nil
}

func (x *expander) collection(id ir.NodeID, n *ir.Node, at string) (ir.NodeID, error) {
	res := x.dst.Reserve()
	x.done[id] = res
	c := ir.Node{
		Kind:   n.Kind,
		Tag:    n.Tag,
		Anchor: n.Anchor,
		Flow:   n.Flow,
		Pos:    n.Pos,
		Target: ir.NoNode,
	}
	switch n.Kind {
	case ir.SequenceKind:
		c.Items = make([]ir.NodeID, len(n.Items))
		for i, item := range n.Items {
			cid, err := x.node(item, at+pathIndex(i))
			if err != nil {
				return ir.NoNode, err
			}
			c.Items[i] = cid
		}
	case ir.MappingKind:
		c.Pairs = make([]ir.Pair, len(n.Pairs))
		for i, p := range n.Pairs {
			k, err := x.node(p.Key, at)
			if err != nil {
				return ir.NoNode, err
			}
			v, err := x.node(p.Value, at+x.pathField(p.Key))
			if err != nil {
				return ir.NoNode, err
			}
			c.Pairs[i] = ir.Pair{Key: k, Value: v}
		}
	}
	x.dst.Fill(res, c)
	return res, nil
}

func (x *expander) str(n *ir.Node, at string) (ir.NodeID, error) {
	segs := split(n.Text)
	if len(segs) == 1 && segs[0].expr {
		val, err := x.eval(segs[0].text, at)
		if err != nil {
			return ir.NoNode, err
		}
		res, err := x.dst.AddValue(val)
		if err != nil {
			return ir.NoNode, fmt.Errorf("%w: %s: result of %q: %w", ErrEval, at, segs[0].text, err)
		}
		rn := x.dst.Node(res)
		rn.Anchor = n.Anchor
		rn.Pos = n.Pos
		if n.Tag != "" && !(ir.IsCoreTag(n.Tag) && ir.KindTag(rn.Kind) != n.Tag) {
			rn.Tag = n.Tag
		}
		return res, nil
	}
	s, err := x.join(segs, at)
	if err != nil {
		return ir.NoNode, err
	}
	c := *n
	c.Text = s
	return x.dst.Add(c), nil
}

func (x *expander) text(v, at string) (string, error) {
	return x.join(split(v), at)
}

func (x *expander) join(segs []segment, at string) (string, error) {
	if len(segs) == 1 && !segs[0].expr {
		return segs[0].text, nil
	}
	b := &strings.Builder{}
	for _, seg := range segs {
		if !seg.expr {
			b.WriteString(seg.text)
			continue
		}
		val, err := x.eval(seg.text, at)
		if err != nil {
			return "", err
		}
		s, err := textOf(val)
		if err != nil {
			return "", fmt.Errorf("%w: %s: result of %q: %w", ErrEval, at, seg.text, err)
		}
		b.WriteString(s)
	}
	return b.String(), nil
}

func (x *expander) eval(src, at string) (any, error) {
	program, err := expr.Compile(src, exprOpts(x.src, at)...)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: compiling %q: %w", ErrEval, at, src, err)
	}
	val, err := vm.Run(program, x.env)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: evaluating %q: %w", ErrEval, at, src, err)
	}
	if debug.Eval() {
		debug.Logf("eval %q at %s gave %#v\n", src, at, val)
	}
	return val, nil
}

func (x *expander) pathField(key ir.NodeID) string {
	k, err := x.src.Resolve(key)
	if err != nil {
		return ""
	}
	kn := x.src.Node(k)
	if !kn.Kind.IsScalar() {
		return ""
	}
	f := kn.ScalarText()
	return strings.TrimPrefix((&ir.Path{Field: &f}).String(), "$")
}

func pathIndex(i int) string {
	return "[" + strconv.Itoa(i) + "]"
}

// textOf gives the text which replaces an expression inside a string.
// Collections are written as compact JSON.
func textOf(v any) (string, error) {
	switch x := v.(type) {
	case nil:
		return "null", nil
	case string:
		return x, nil
	case bool:
		return strconv.FormatBool(x), nil
	case int:
		return strconv.Itoa(x), nil
	case int64:
		return strconv.FormatInt(x, 10), nil
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64), nil
	}
	doc, err := ir.FromValue(v)
	if err != nil {
		return "", err
	}
	d, err := doc.MarshalJSON()
	if err != nil {
		return "", err
	}
	return string(d), nil
}

type segment struct {
	text string
	expr bool
}

// split cuts v into text and the sources of its $[...] expressions.
// Adjacent text is merged.
func split(v string) []segment {
	var (
		res []segment
		lit []byte
	)
	flush := func() {
		if len(lit) != 0 {
			res = append(res, segment{text: string(lit)})
			lit = lit[:0]
		}
	}
	i := 0
	for i < len(v) {
		if v[i] != '$' || i+1 >= len(v) || v[i+1] != '[' {
			lit = append(lit, v[i])
			i++
			continue
		}
		src, end, ok := scanExpr(v, i+2)
		if !ok {
			lit = append(lit, v[i:]...)
			break
		}
		flush()
		res = append(res, segment{text: strings.TrimSpace(src), expr: true})
		i = end
	}
	flush()
	if len(res) == 0 {
		res = append(res, segment{})
	}
	return res
}

// scanExpr scans an expression starting at v[i], just after "$[". It
// returns the unescaped source and the index after the closing ']'.
func scanExpr(v string, i int) (src string, end int, ok bool) {
	var buf []byte
	depth := 0
	for i < len(v) {
		c := v[i]
		switch {
		case c == '\\' && i+1 < len(v):
			buf = append(buf, v[i+1])
			i += 2
			continue
		case c == '[':
			depth++
		case c == ']':
			if depth == 0 {
				return string(buf), i + 1, true
			}
			depth--
		}
		buf = append(buf, c)
		i++
	}
	return "", 0, false
}
