package token

import (
	"bytes"
	"slices"
	"unicode/utf8"

	"github.com/sturdio/sturdio/debug"
)

// maxKeyLen bounds how far ahead a simple key may be resolved by ':'.
const maxKeyLen = 1024

type simpleKey struct {
	possible bool
	required bool
	number   int
	pos      Pos
	line     int
	col      int
}

// Scanner produces tokens from YAML text on demand.
//
// Indentation is tracked on a stack: a key or '-' entry at a deeper
// column opens a block collection, a shallower column closes it. Inside
// flow collections indentation is ignored. Plain and quoted scalars are
// recorded as candidate simple keys until a ':' confirms them.
type Scanner struct {
	src []byte
	i   int
	// 0-based
	line, col int

	tokens []Token
	parsed int

	started bool
	ended   bool
	done    bool

	indent    int
	indents   []int
	flowLevel int

	keyAllowed bool
	keys       []simpleKey

	err error
}

// NewScanner creates a scanner over src. A byte order mark is dropped,
// line endings are normalized to '\n' and a final newline is added when
// missing.
func NewScanner(src []byte) *Scanner {
	return &Scanner{src: normalize(src)}
}

func normalize(src []byte) []byte {
	src = bytes.TrimPrefix(src, []byte("\xef\xbb\xbf"))
	if bytes.IndexByte(src, '\r') >= 0 {
		src = bytes.ReplaceAll(src, []byte("\r\n"), []byte("\n"))
		src = bytes.ReplaceAll(src, []byte("\r"), []byte("\n"))
	}
	if len(src) > 0 && src[len(src)-1] != '\n' {
		res := make([]byte, len(src)+1)
		copy(res, src)
		res[len(src)] = '\n'
		src = res
	}
	return src
}

// Source returns the normalized input.
func (s *Scanner) Source() []byte {
	return s.src
}

// Next returns the next token. After the stream end token, Next keeps
// returning stream end tokens. Errors are sticky.
func (s *Scanner) Next() (Token, error) {
	if s.err != nil {
		return Token{}, s.err
	}
	if s.done {
		m := s.mark()
		return Token{Type: TStreamEnd, Pos: m, End: m}, nil
	}
	for {
		more, err := s.needMore()
		if err != nil {
			s.err = err
			return Token{}, err
		}
		if !more {
			break
		}
		if err := s.fetch(); err != nil {
			s.err = err
			return Token{}, err
		}
	}
	tok := s.tokens[0]
	s.tokens = s.tokens[1:]
	s.parsed++
	if tok.Type == TStreamEnd {
		s.done = true
	}
	if debug.Scan() {
		debug.Logf("scan %s at %s\n", tok.String(), tok.Pos)
	}
	return tok, nil
}

func (s *Scanner) needMore() (bool, error) {
	if len(s.tokens) == 0 {
		return true, nil
	}
	if err := s.staleKeys(); err != nil {
		return false, err
	}
	for i := range s.keys {
		k := &s.keys[i]
		if k.possible && k.number == s.parsed {
			return true, nil
		}
	}
	return false, nil
}

// position helpers

func (s *Scanner) mark() Pos {
	return Pos{Offset: s.i, Line: s.line + 1, Col: s.col + 1}
}

func (s *Scanner) eof() bool {
	return s.i >= len(s.src)
}

func (s *Scanner) at(k int) byte {
	if s.i+k < len(s.src) {
		return s.src[s.i+k]
	}
	return 0
}

func (s *Scanner) cur() byte {
	return s.at(0)
}

// blankz reports whether the byte k ahead is a blank, a break or the end.
func (s *Scanner) blankz(k int) bool {
	if s.i+k >= len(s.src) {
		return true
	}
	return isBlankOrBreak(s.src[s.i+k])
}

// skip advances over one rune that is not a line break.
func (s *Scanner) skip() {
	_, sz := utf8.DecodeRune(s.src[s.i:])
	s.i += sz
	s.col++
}

func (s *Scanner) skipBreak() {
	s.i++
	s.line++
	s.col = 0
}

// take advances over one rune and returns its bytes.
func (s *Scanner) take() []byte {
	_, sz := utf8.DecodeRune(s.src[s.i:])
	b := s.src[s.i : s.i+sz]
	s.i += sz
	s.col++
	return b
}

func (s *Scanner) errorf(format string, args ...any) error {
	return SyntaxErr(s.mark(), format, args...)
}

func isBlank(c byte) bool {
	return c == ' ' || c == '\t'
}

func isBreak(c byte) bool {
	return c == '\n'
}

func isBlankOrBreak(c byte) bool {
	return isBlank(c) || isBreak(c)
}

func isFlowIndicator(c byte) bool {
	switch c {
	case ',', '[', ']', '{', '}':
		return true
	}
	return false
}

func (s *Scanner) docIndicator(ind string) bool {
	return s.col == 0 && bytes.HasPrefix(s.src[s.i:], []byte(ind)) && s.blankz(3)
}

// fetching

func (s *Scanner) fetch() error {
	if !s.started {
		return s.fetchStreamStart()
	}
	if err := s.scanToNextToken(); err != nil {
		return err
	}
	if err := s.staleKeys(); err != nil {
		return err
	}
	s.unrollIndent(s.col)
	if s.eof() {
		return s.fetchStreamEnd()
	}
	c := s.cur()
	if s.col == 0 {
		if c == '%' {
			s.skipDirective()
			return nil
		}
		if s.docIndicator("---") {
			return s.fetchDocIndicator(TDocStart)
		}
		if s.docIndicator("...") {
			return s.fetchDocIndicator(TDocEnd)
		}
	}
	switch c {
	case '[':
		return s.fetchFlowStart(TFlowSeqStart)
	case '{':
		return s.fetchFlowStart(TFlowMapStart)
	case ']':
		return s.fetchFlowEnd(TFlowSeqEnd)
	case '}':
		return s.fetchFlowEnd(TFlowMapEnd)
	case ',':
		return s.fetchFlowEntry()
	case '-':
		if s.blankz(1) {
			return s.fetchBlockEntry()
		}
	case '?':
		if s.blankz(1) || (s.flowLevel > 0 && isFlowIndicator(s.at(1))) {
			return s.fetchKey()
		}
	case ':':
		if s.flowLevel > 0 || s.blankz(1) {
			return s.fetchValue()
		}
	case '*':
		return s.fetchAnchor(TAlias)
	case '&':
		return s.fetchAnchor(TAnchor)
	case '!':
		return s.fetchTag()
	case '|', '>':
		if s.flowLevel == 0 {
			return s.fetchBlockScalar(c == '|')
		}
	case '\'', '"':
		return s.fetchQuoted(c == '\'')
	}
	if s.plainStart() {
		return s.fetchPlain()
	}
	if c == '\t' {
		return s.errorf("found a tab character where an indentation space is expected")
	}
	r, _ := utf8.DecodeRune(s.src[s.i:])
	return s.errorf("found character %q that cannot start any token", r)
}

func (s *Scanner) plainStart() bool {
	c := s.cur()
	if isBlankOrBreak(c) {
		return false
	}
	switch c {
	case '-':
		return !s.blankz(1)
	case '?', ':':
		return !s.blankz(1) && !(s.flowLevel > 0 && isFlowIndicator(s.at(1)))
	case ',', '[', ']', '{', '}', '#', '&', '*', '!', '|', '>', '\'', '"', '%', '@', '`':
		return false
	}
	return true
}

func (s *Scanner) scanToNextToken() error {
	for {
		for !s.eof() {
			c := s.cur()
			if c == ' ' || (c == '\t' && (s.flowLevel > 0 || !s.keyAllowed || s.blankLineAhead())) {
				s.skip()
				continue
			}
			break
		}
		if s.cur() == '#' {
			for !s.eof() && !isBreak(s.cur()) {
				s.skip()
			}
		}
		if !s.eof() && isBreak(s.cur()) {
			s.skipBreak()
			if s.flowLevel == 0 {
				s.keyAllowed = true
			}
			continue
		}
		return nil
	}
}

// blankLineAhead reports whether only blanks and possibly a comment
// remain on the current line.
func (s *Scanner) blankLineAhead() bool {
	for j := s.i; j < len(s.src); j++ {
		switch s.src[j] {
		case ' ', '\t':
			continue
		case '\n', '#':
			return true
		default:
			return false
		}
	}
	return true
}

func (s *Scanner) skipDirective() {
	for !s.eof() && !isBreak(s.cur()) {
		s.skip()
	}
}

// simple keys

func (s *Scanner) staleKeys() error {
	for i := range s.keys {
		k := &s.keys[i]
		if k.possible && (k.line != s.line || k.pos.Offset+maxKeyLen < s.i) {
			if k.required {
				return ExpectedErr("':'", s.keyErrPos(k))
			}
			k.possible = false
		}
	}
	return nil
}

// keyErrPos reports a missing ':' at the end of the line holding the key.
func (s *Scanner) keyErrPos(k *simpleKey) Pos {
	j := k.pos.Offset
	col := k.col
	for j < len(s.src) && s.src[j] != '\n' {
		_, sz := utf8.DecodeRune(s.src[j:])
		j += sz
		col++
	}
	return Pos{Offset: j, Line: k.line + 1, Col: col + 1}
}

func (s *Scanner) saveKey() error {
	required := s.flowLevel == 0 && s.indent == s.col
	if !s.keyAllowed {
		return nil
	}
	if err := s.removeKey(); err != nil {
		return err
	}
	s.keys[len(s.keys)-1] = simpleKey{
		possible: true,
		required: required,
		number:   s.parsed + len(s.tokens),
		pos:      s.mark(),
		line:     s.line,
		col:      s.col,
	}
	return nil
}

func (s *Scanner) removeKey() error {
	k := &s.keys[len(s.keys)-1]
	if k.possible && k.required {
		return ExpectedErr("':'", s.keyErrPos(k))
	}
	k.possible = false
	return nil
}

// indentation

func (s *Scanner) rollIndent(col int, typ TokenType, number int, pos Pos) {
	if s.flowLevel > 0 {
		return
	}
	if s.indent >= col {
		return
	}
	s.indents = append(s.indents, s.indent)
	s.indent = col
	tok := Token{Type: typ, Pos: pos, End: pos}
	if number == -1 {
		s.tokens = append(s.tokens, tok)
		return
	}
	s.tokens = slices.Insert(s.tokens, number-s.parsed, tok)
}

func (s *Scanner) unrollIndent(col int) {
	if s.flowLevel > 0 {
		return
	}
	for s.indent > col {
		m := s.mark()
		s.tokens = append(s.tokens, Token{Type: TBlockEnd, Pos: m, End: m})
		s.indent = s.indents[len(s.indents)-1]
		s.indents = s.indents[:len(s.indents)-1]
	}
}

// token fetchers

func (s *Scanner) push(typ TokenType, start Pos) {
	s.tokens = append(s.tokens, Token{Type: typ, Pos: start, End: s.mark()})
}

func (s *Scanner) fetchStreamStart() error {
	s.started = true
	s.indent = -1
	s.keyAllowed = true
	s.keys = []simpleKey{{}}
	m := s.mark()
	s.tokens = append(s.tokens, Token{Type: TStreamStart, Pos: m, End: m})
	if !utf8.Valid(s.src) {
		for j := 0; j < len(s.src); {
			r, sz := utf8.DecodeRune(s.src[j:])
			if r == utf8.RuneError && sz == 1 {
				line := bytes.Count(s.src[:j], []byte{'\n'})
				col := utf8.RuneCount(s.src[bytes.LastIndexByte(s.src[:j], '\n')+1 : j])
				return SyntaxErr(Pos{Offset: j, Line: line + 1, Col: col + 1}, "invalid UTF-8")
			}
			j += sz
		}
	}
	return nil
}

func (s *Scanner) fetchStreamEnd() error {
	if s.ended {
		return nil
	}
	s.unrollIndent(-1)
	if err := s.removeKey(); err != nil {
		return err
	}
	s.keyAllowed = false
	s.ended = true
	m := s.mark()
	s.tokens = append(s.tokens, Token{Type: TStreamEnd, Pos: m, End: m})
	return nil
}

func (s *Scanner) fetchDocIndicator(typ TokenType) error {
	s.unrollIndent(-1)
	if err := s.removeKey(); err != nil {
		return err
	}
	s.keyAllowed = false
	start := s.mark()
	s.skip()
	s.skip()
	s.skip()
	s.push(typ, start)
	return nil
}

func (s *Scanner) fetchFlowStart(typ TokenType) error {
	if err := s.saveKey(); err != nil {
		return err
	}
	s.keys = append(s.keys, simpleKey{})
	s.flowLevel++
	s.keyAllowed = true
	start := s.mark()
	s.skip()
	s.push(typ, start)
	return nil
}

func (s *Scanner) fetchFlowEnd(typ TokenType) error {
	if err := s.removeKey(); err != nil {
		return err
	}
	if s.flowLevel > 0 {
		s.flowLevel--
		s.keys = s.keys[:len(s.keys)-1]
	}
	s.keyAllowed = false
	start := s.mark()
	s.skip()
	s.push(typ, start)
	return nil
}

func (s *Scanner) fetchFlowEntry() error {
	if err := s.removeKey(); err != nil {
		return err
	}
	s.keyAllowed = true
	start := s.mark()
	s.skip()
	s.push(TFlowEntry, start)
	return nil
}

func (s *Scanner) fetchBlockEntry() error {
	if s.flowLevel > 0 {
		return s.errorf("block sequence entries are not allowed in flow context")
	}
	if !s.keyAllowed {
		return s.errorf("block sequence entries are not allowed in this context")
	}
	s.rollIndent(s.col, TBlockSeqStart, -1, s.mark())
	if err := s.removeKey(); err != nil {
		return err
	}
	s.keyAllowed = true
	start := s.mark()
	s.skip()
	s.push(TBlockEntry, start)
	return nil
}

func (s *Scanner) fetchKey() error {
	if s.flowLevel == 0 {
		if !s.keyAllowed {
			return s.errorf("mapping keys are not allowed in this context")
		}
		s.rollIndent(s.col, TBlockMapStart, -1, s.mark())
	}
	if err := s.removeKey(); err != nil {
		return err
	}
	s.keyAllowed = s.flowLevel == 0
	start := s.mark()
	s.skip()
	s.push(TKey, start)
	return nil
}

func (s *Scanner) fetchValue() error {
	k := &s.keys[len(s.keys)-1]
	if k.possible {
		tok := Token{Type: TKey, Pos: k.pos, End: k.pos}
		s.tokens = slices.Insert(s.tokens, k.number-s.parsed, tok)
		s.rollIndent(k.col, TBlockMapStart, k.number, k.pos)
		k.possible = false
		s.keyAllowed = false
	} else {
		if s.flowLevel == 0 {
			if !s.keyAllowed {
				return s.errorf("mapping values are not allowed in this context")
			}
			s.rollIndent(s.col, TBlockMapStart, -1, s.mark())
		}
		s.keyAllowed = s.flowLevel == 0
	}
	start := s.mark()
	s.skip()
	s.push(TValue, start)
	return nil
}

func (s *Scanner) fetchAnchor(typ TokenType) error {
	if err := s.saveKey(); err != nil {
		return err
	}
	s.keyAllowed = false
	start := s.mark()
	s.skip()
	from := s.i
	for !s.eof() && !isBlankOrBreak(s.cur()) && !isFlowIndicator(s.cur()) {
		s.skip()
	}
	if s.i == from {
		what := "anchor"
		if typ == TAlias {
			what = "alias"
		}
		return s.errorf("did not find expected %s name", what)
	}
	s.tokens = append(s.tokens, Token{Type: typ, Pos: start, End: s.mark(), Value: string(s.src[from:s.i])})
	return nil
}

func (s *Scanner) fetchTag() error {
	if err := s.saveKey(); err != nil {
		return err
	}
	s.keyAllowed = false
	start := s.mark()
	from := s.i
	if s.at(1) == '<' {
		s.skip()
		s.skip()
		for !s.eof() && s.cur() != '>' && !isBlankOrBreak(s.cur()) {
			s.skip()
		}
		if s.cur() != '>' {
			return s.errorf("did not find the expected '>' while scanning a verbatim tag")
		}
		s.skip()
	} else {
		for !s.eof() && !isBlankOrBreak(s.cur()) && !(s.flowLevel > 0 && isFlowIndicator(s.cur())) {
			s.skip()
		}
	}
	if !s.blankz(0) && !(s.flowLevel > 0 && isFlowIndicator(s.cur())) {
		return s.errorf("did not find expected whitespace or line break after tag")
	}
	s.tokens = append(s.tokens, Token{Type: TTag, Pos: start, End: s.mark(), Value: string(s.src[from:s.i])})
	return nil
}

func (s *Scanner) fetchBlockScalar(literal bool) error {
	if err := s.removeKey(); err != nil {
		return err
	}
	s.keyAllowed = true
	tok, err := s.scanBlockScalar(literal)
	if err != nil {
		return err
	}
	s.tokens = append(s.tokens, tok)
	return nil
}

func (s *Scanner) fetchQuoted(single bool) error {
	if err := s.saveKey(); err != nil {
		return err
	}
	s.keyAllowed = false
	tok, err := s.scanQuoted(single)
	if err != nil {
		return err
	}
	s.tokens = append(s.tokens, tok)
	return nil
}

func (s *Scanner) fetchPlain() error {
	if err := s.saveKey(); err != nil {
		return err
	}
	s.keyAllowed = false
	tok, leadingBlanks, err := s.scanPlain()
	if err != nil {
		return err
	}
	if leadingBlanks {
		s.keyAllowed = true
	}
	s.tokens = append(s.tokens, tok)
	return nil
}
