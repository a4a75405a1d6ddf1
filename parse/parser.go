package parse

import (
	"fmt"

	"github.com/sturdio/sturdio/debug"
	"github.com/sturdio/sturdio/ir"
	"github.com/sturdio/sturdio/token"
)

type parser struct {
	s    *token.Scanner
	opts *parseOpts

	tok    token.Token
	peeked bool

	doc     *ir.Document
	anchors map[string]ir.NodeID

	state  State
	states []State
	depth  int
}

func newParser(data []byte, opts *parseOpts) *parser {
	return &parser{s: token.NewScanner(data), opts: opts, state: StateStart}
}

func (p *parser) setState(s State) {
	if s == p.state {
		return
	}
	if debug.Parse() {
		debug.Logf("state %s -> %s\n", p.state, s)
	}
	p.state = s
}

// enter records the state to return to and moves to s.
func (p *parser) enter(s State, at token.Pos) error {
	p.depth++
	if p.depth > p.opts.maxDepth {
		return token.SyntaxErr(at, "exceeded max nesting depth %d", p.opts.maxDepth)
	}
	p.states = append(p.states, p.state)
	p.setState(s)
	return nil
}

func (p *parser) leave() {
	p.depth--
	s := p.states[len(p.states)-1]
	p.states = p.states[:len(p.states)-1]
	p.setState(s)
}

func (p *parser) peek() (*token.Token, error) {
	if !p.peeked {
		tok, err := p.s.Next()
		if err != nil {
			return nil, err
		}
		p.tok = tok
		p.peeked = true
	}
	return &p.tok, nil
}

func (p *parser) next() (token.Token, error) {
	if _, err := p.peek(); err != nil {
		return token.Token{}, err
	}
	p.peeked = false
	return p.tok, nil
}

func (p *parser) peekType() (token.TokenType, token.Pos, error) {
	tok, err := p.peek()
	if err != nil {
		return 0, token.Pos{}, err
	}
	return tok.Type, tok.Pos, nil
}

// document parses the next document. It returns nil and no error at the
// end of the stream.
func (p *parser) document() (*ir.Document, error) {
	p.setState(StateStart)
	for {
		typ, _, err := p.peekType()
		if err != nil {
			return nil, err
		}
		switch typ {
		case token.TStreamStart, token.TDocEnd:
			p.next()
			continue
		}
		if typ == token.TStreamEnd {
			return nil, nil
		}
		break
	}
	p.doc = ir.NewDocument()
	p.anchors = map[string]ir.NodeID{}
	p.setState(StateDocument)

	tok, err := p.peek()
	if err != nil {
		return nil, err
	}
	explicit := tok.Type == token.TDocStart
	if explicit {
		p.next()
		tok, err = p.peek()
		if err != nil {
			return nil, err
		}
	}
	var root ir.NodeID
	switch tok.Type {
	case token.TDocStart, token.TDocEnd, token.TStreamEnd:
		root = p.empty(tok.Pos)
	default:
		root, err = p.node(true, false)
		if err != nil {
			return nil, err
		}
	}
	p.doc.SetRoot(root)

	tok, err = p.peek()
	if err != nil {
		return nil, err
	}
	switch tok.Type {
	case token.TDocEnd:
		p.next()
	case token.TDocStart, token.TStreamEnd:
	default:
		return nil, token.ExpectedErr("document start", tok.Pos)
	}
	p.setState(StateDocumentEnd)
	doc := p.doc
	doc.Freeze()
	p.doc = nil
	p.anchors = nil
	return doc, nil
}

func (p *parser) empty(at token.Pos) ir.NodeID {
	n := ir.Null()
	n.Pos = at
	return p.doc.Add(n)
}

type props struct {
	anchor string
	tag    string
	pos    token.Pos
	set    bool
}

func (p *parser) properties() (*props, error) {
	res := &props{}
	for {
		tok, err := p.peek()
		if err != nil {
			return nil, err
		}
		switch tok.Type {
		case token.TAnchor:
			if res.anchor != "" {
				return nil, token.SyntaxErr(tok.Pos, "found duplicate anchor")
			}
			res.anchor = tok.Value
		case token.TTag:
			if res.tag != "" {
				return nil, token.SyntaxErr(tok.Pos, "found duplicate tag")
			}
			res.tag = ir.NormalizeTag(tok.Value)
		default:
			return res, nil
		}
		if !res.set {
			res.pos = tok.Pos
			res.set = true
		}
		p.next()
	}
}

func tagErr(err error, at token.Pos) error {
	return token.NewPosErr(fmt.Errorf("%w: %w", token.ErrSyntax, err), at)
}

// node parses one node. In block context an indentless sequence is
// accepted when indentless is set, which is the case for mapping keys
// and values.
func (p *parser) node(block, indentless bool) (ir.NodeID, error) {
	pr, err := p.properties()
	if err != nil {
		return ir.NoNode, err
	}
	tok, err := p.peek()
	if err != nil {
		return ir.NoNode, err
	}
	start := tok.Pos
	if pr.set {
		start = pr.pos
	}

	if tok.Type == token.TAlias {
		if pr.set {
			return ir.NoNode, token.SyntaxErr(tok.Pos, "an alias cannot have an anchor or tag")
		}
		p.next()
		target, ok := p.anchors[tok.Value]
		if !ok {
			return ir.NoNode, token.NewPosErr(fmt.Errorf("%w: undefined alias %q", ErrAnchor, tok.Value), tok.Pos)
		}
		n := ir.Alias(target)
		n.Pos = tok.Pos
		return p.doc.Add(n), nil
	}

	switch {
	case tok.Type == token.TScalar:
		p.next()
		n, err := p.opts.schema.ResolveScalar(pr.tag, tok.Value, tok.Style)
		if err != nil {
			return ir.NoNode, tagErr(err, start)
		}
		return p.finish(p.doc.Add(p.located(n, start)), pr), nil

	case tok.Type == token.TFlowSeqStart, tok.Type == token.TFlowMapStart,
		block && tok.Type == token.TBlockSeqStart,
		block && tok.Type == token.TBlockMapStart,
		block && indentless && tok.Type == token.TBlockEntry:
		return p.collection(tok.Type, pr, start)
	}

	if pr.set {
		n, err := p.opts.schema.ResolveScalar(pr.tag, "", token.PlainStyle)
		if err != nil {
			return ir.NoNode, tagErr(err, start)
		}
		return p.finish(p.doc.Add(p.located(n, start)), pr), nil
	}
	return ir.NoNode, token.ExpectedErr("node content", tok.Pos)
}

func (p *parser) located(n ir.Node, at token.Pos) ir.Node {
	n.Pos = at
	return n
}

func (p *parser) finish(id ir.NodeID, pr *props) ir.NodeID {
	if pr.anchor != "" {
		p.doc.SetAnchor(id, pr.anchor)
		p.anchors[pr.anchor] = id
	}
	return id
}

func (p *parser) collection(typ token.TokenType, pr *props, start token.Pos) (ir.NodeID, error) {
	id := p.doc.Reserve()
	p.finish(id, pr)

	var (
		n   ir.Node
		err error
	)
	switch typ {
	case token.TFlowSeqStart:
		n, err = p.flowSequence()
	case token.TFlowMapStart:
		n, err = p.flowMapping()
	case token.TBlockSeqStart:
		n, err = p.blockSequence()
	case token.TBlockMapStart:
		n, err = p.blockMapping()
	case token.TBlockEntry:
		n, err = p.indentlessSequence()
	}
	if err != nil {
		return ir.NoNode, err
	}
	switch pr.tag {
	case "", "!":
	case ir.SeqTag, ir.MapTag:
		if ir.KindTag(n.Kind) != pr.tag {
			return ir.NoNode, tagErr(fmt.Errorf("%w: %s with tag %s", ir.ErrTag, n.Kind, pr.tag), start)
		}
	default:
		if ir.IsCoreTag(pr.tag) {
			return ir.NoNode, tagErr(fmt.Errorf("%w: %s with tag %s", ir.ErrTag, n.Kind, pr.tag), start)
		}
	}
	n.Tag = pr.tag
	n.Anchor = pr.anchor
	n.Pos = start
	p.doc.Fill(id, n)
	return id, nil
}

func (p *parser) blockSequence() (ir.Node, error) {
	tok, _ := p.next()
	if err := p.enter(StateBlock, tok.Pos); err != nil {
		return ir.Node{}, err
	}
	defer p.leave()
	var items []ir.NodeID
	for {
		tok, err := p.next()
		if err != nil {
			return ir.Node{}, err
		}
		switch tok.Type {
		case token.TBlockEnd:
			return ir.Sequence(items...), nil
		case token.TBlockEntry:
		default:
			return ir.Node{}, token.ExpectedErr("'-' indicator", tok.Pos)
		}
		item, err := p.entry(false, token.TBlockEntry, token.TBlockEnd)
		if err != nil {
			return ir.Node{}, err
		}
		items = append(items, item)
	}
}

func (p *parser) indentlessSequence() (ir.Node, error) {
	tok, _ := p.peek()
	if err := p.enter(StateBlock, tok.Pos); err != nil {
		return ir.Node{}, err
	}
	defer p.leave()
	var items []ir.NodeID
	for {
		typ, _, err := p.peekType()
		if err != nil {
			return ir.Node{}, err
		}
		if typ != token.TBlockEntry {
			return ir.Sequence(items...), nil
		}
		p.next()
		item, err := p.entry(false, token.TBlockEntry, token.TKey, token.TValue, token.TBlockEnd)
		if err != nil {
			return ir.Node{}, err
		}
		items = append(items, item)
	}
}

// entry parses a block node, or gives an empty node if the next token
// is one of ends.
func (p *parser) entry(indentless bool, ends ...token.TokenType) (ir.NodeID, error) {
	typ, pos, err := p.peekType()
	if err != nil {
		return ir.NoNode, err
	}
	for _, e := range ends {
		if typ == e {
			return p.empty(pos), nil
		}
	}
	return p.node(true, indentless)
}

func (p *parser) blockMapping() (ir.Node, error) {
	tok, _ := p.next()
	if err := p.enter(StateBlock, tok.Pos); err != nil {
		return ir.Node{}, err
	}
	defer p.leave()
	var pairs []ir.Pair
	for {
		tok, err := p.peek()
		if err != nil {
			return ir.Node{}, err
		}
		var key ir.NodeID
		switch tok.Type {
		case token.TBlockEnd:
			p.next()
			return ir.Mapping(pairs...), nil
		case token.TKey:
			p.next()
			key, err = p.entry(true, token.TKey, token.TValue, token.TBlockEnd)
			if err != nil {
				return ir.Node{}, err
			}
		case token.TValue:
			key = p.empty(tok.Pos)
		default:
			return ir.Node{}, token.ExpectedErr("key", tok.Pos)
		}
		typ, pos, err := p.peekType()
		if err != nil {
			return ir.Node{}, err
		}
		var value ir.NodeID
		if typ == token.TValue {
			p.next()
			value, err = p.entry(true, token.TKey, token.TValue, token.TBlockEnd)
			if err != nil {
				return ir.Node{}, err
			}
		} else {
			value = p.empty(pos)
		}
		pairs = append(pairs, ir.Pair{Key: key, Value: value})
	}
}

// flowEntry parses a flow node, or gives an empty node if the next
// token is one of ends.
func (p *parser) flowEntry(ends ...token.TokenType) (ir.NodeID, error) {
	typ, pos, err := p.peekType()
	if err != nil {
		return ir.NoNode, err
	}
	for _, e := range ends {
		if typ == e {
			return p.empty(pos), nil
		}
	}
	return p.node(false, false)
}

// flowPair parses the rest of a pair after its optional '?' indicator.
func (p *parser) flowPair(explicit bool, end token.TokenType) (ir.Pair, error) {
	var (
		key ir.NodeID
		err error
	)
	if explicit {
		key, err = p.flowEntry(token.TValue, token.TFlowEntry, end)
	} else {
		key, err = p.node(false, false)
	}
	if err != nil {
		return ir.Pair{}, err
	}
	typ, pos, err := p.peekType()
	if err != nil {
		return ir.Pair{}, err
	}
	if typ != token.TValue {
		return ir.Pair{Key: key, Value: p.empty(pos)}, nil
	}
	p.next()
	value, err := p.flowEntry(token.TFlowEntry, end)
	if err != nil {
		return ir.Pair{}, err
	}
	return ir.Pair{Key: key, Value: value}, nil
}

func (p *parser) flowSequence() (ir.Node, error) {
	open, _ := p.next()
	if err := p.enter(StateFlow, open.Pos); err != nil {
		return ir.Node{}, err
	}
	defer p.leave()
	var items []ir.NodeID
	for first := true; ; first = false {
		tok, err := p.peek()
		if err != nil {
			return ir.Node{}, err
		}
		if tok.Type == token.TFlowSeqEnd {
			p.next()
			break
		}
		if !first {
			if tok.Type != token.TFlowEntry {
				return ir.Node{}, token.ExpectedErr("',' or ']'", tok.Pos)
			}
			p.next()
			if tok, err = p.peek(); err != nil {
				return ir.Node{}, err
			}
			if tok.Type == token.TFlowSeqEnd {
				p.next()
				break
			}
		}
		var item ir.NodeID
		switch tok.Type {
		case token.TKey, token.TValue:
			at := tok.Pos
			explicit := tok.Type == token.TKey
			var pair ir.Pair
			if explicit {
				p.next()
				pair, err = p.flowPair(true, token.TFlowSeqEnd)
			} else {
				pair, err = p.flowPairNoKey(token.TFlowSeqEnd)
			}
			if err != nil {
				return ir.Node{}, err
			}
			m := ir.Mapping(pair)
			m.Flow = true
			item = p.doc.Add(p.located(m, at))
		default:
			item, err = p.node(false, false)
			if err != nil {
				return ir.Node{}, err
			}
		}
		items = append(items, item)
	}
	n := ir.Sequence(items...)
	n.Flow = true
	return n, nil
}

func (p *parser) flowPairNoKey(end token.TokenType) (ir.Pair, error) {
	tok, err := p.next()
	if err != nil {
		return ir.Pair{}, err
	}
	key := p.empty(tok.Pos)
	value, err := p.flowEntry(token.TFlowEntry, end)
	if err != nil {
		return ir.Pair{}, err
	}
	return ir.Pair{Key: key, Value: value}, nil
}

func (p *parser) flowMapping() (ir.Node, error) {
	open, _ := p.next()
	if err := p.enter(StateFlow, open.Pos); err != nil {
		return ir.Node{}, err
	}
	defer p.leave()
	var pairs []ir.Pair
	for first := true; ; first = false {
		tok, err := p.peek()
		if err != nil {
			return ir.Node{}, err
		}
		if tok.Type == token.TFlowMapEnd {
			p.next()
			break
		}
		if !first {
			if tok.Type != token.TFlowEntry {
				return ir.Node{}, token.ExpectedErr("',' or '}'", tok.Pos)
			}
			p.next()
			if tok, err = p.peek(); err != nil {
				return ir.Node{}, err
			}
			if tok.Type == token.TFlowMapEnd {
				p.next()
				break
			}
		}
		var pair ir.Pair
		switch tok.Type {
		case token.TKey:
			p.next()
			pair, err = p.flowPair(true, token.TFlowMapEnd)
		case token.TValue:
			pair, err = p.flowPairNoKey(token.TFlowMapEnd)
		default:
			pair, err = p.flowPair(false, token.TFlowMapEnd)
		}
		if err != nil {
			return ir.Node{}, err
		}
		pairs = append(pairs, pair)
	}
	n := ir.Mapping(pairs...)
	n.Flow = true
	return n, nil
}
