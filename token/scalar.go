package token

import (
	"strconv"
	"strings"
	"unicode/utf8"
)

func (s *Scanner) scanPlain() (Token, bool, error) {
	var (
		buf           strings.Builder
		whitespaces   strings.Builder
		trailing      strings.Builder
		leadingBlanks bool
	)
	start := s.mark()
	end := start
	indent := s.indent + 1
	for {
		if s.docIndicator("---") || s.docIndicator("...") {
			break
		}
		if s.cur() == '#' {
			break
		}
		for !s.blankz(0) {
			c := s.cur()
			if c == ':' && (s.blankz(1) || (s.flowLevel > 0 && isFlowIndicator(s.at(1)))) {
				break
			}
			if s.flowLevel > 0 && isFlowIndicator(c) {
				break
			}
			if leadingBlanks || whitespaces.Len() > 0 {
				if leadingBlanks {
					if trailing.Len() == 0 {
						buf.WriteByte(' ')
					} else {
						buf.WriteString(trailing.String())
						trailing.Reset()
					}
					leadingBlanks = false
				} else {
					buf.WriteString(whitespaces.String())
				}
				whitespaces.Reset()
			}
			buf.Write(s.take())
			end = s.mark()
		}
		if !isBlankOrBreak(s.cur()) || s.eof() {
			break
		}
		for !s.eof() && isBlankOrBreak(s.cur()) {
			if isBlank(s.cur()) {
				if leadingBlanks && s.col < indent && s.cur() == '\t' {
					return Token{}, false, s.errorf("found a tab character that violates indentation")
				}
				if leadingBlanks {
					s.skip()
				} else {
					whitespaces.Write(s.take())
				}
				continue
			}
			if leadingBlanks {
				trailing.WriteByte('\n')
			} else {
				whitespaces.Reset()
				leadingBlanks = true
			}
			s.skipBreak()
		}
		if s.flowLevel == 0 && s.col < indent {
			break
		}
	}
	return Token{Type: TScalar, Pos: start, End: end, Value: buf.String(), Style: PlainStyle}, leadingBlanks, nil
}

func (s *Scanner) scanQuoted(single bool) (Token, error) {
	var (
		buf         strings.Builder
		whitespaces strings.Builder
		trailing    strings.Builder
	)
	quote := byte('"')
	style := DoubleQuotedStyle
	if single {
		quote = '\''
		style = SingleQuotedStyle
	}
	start := s.mark()
	s.skip()
	for {
		if s.docIndicator("---") || s.docIndicator("...") {
			return Token{}, s.errorf("found unexpected document indicator while scanning a quoted scalar")
		}
		if s.eof() {
			return Token{}, SyntaxErr(s.mark(), "found unexpected end of stream while scanning a quoted scalar started at %s", start)
		}
		leadingBlanks := false
		escapedBreak := false
		for !s.blankz(0) {
			c := s.cur()
			if single && c == '\'' && s.at(1) == '\'' {
				buf.WriteByte('\'')
				s.skip()
				s.skip()
				continue
			}
			if c == quote {
				break
			}
			if !single && c == '\\' && isBreak(s.at(1)) {
				s.skip()
				s.skipBreak()
				leadingBlanks = true
				escapedBreak = true
				break
			}
			if !single && c == '\\' {
				if err := s.scanEscape(&buf); err != nil {
					return Token{}, err
				}
				continue
			}
			buf.Write(s.take())
		}
		if s.cur() == quote {
			break
		}
		for !s.eof() && isBlankOrBreak(s.cur()) {
			if isBlank(s.cur()) {
				if leadingBlanks {
					s.skip()
				} else {
					whitespaces.Write(s.take())
				}
				continue
			}
			if leadingBlanks {
				trailing.WriteByte('\n')
			} else {
				whitespaces.Reset()
				leadingBlanks = true
			}
			s.skipBreak()
		}
		if leadingBlanks {
			if !escapedBreak && trailing.Len() == 0 {
				buf.WriteByte(' ')
			} else {
				buf.WriteString(trailing.String())
			}
		} else {
			buf.WriteString(whitespaces.String())
		}
		whitespaces.Reset()
		trailing.Reset()
	}
	s.skip()
	return Token{Type: TScalar, Pos: start, End: s.mark(), Value: buf.String(), Style: style}, nil
}

var simpleEscapes = map[byte]string{
	'0':  "\x00",
	'a':  "\a",
	'b':  "\b",
	't':  "\t",
	'\t': "\t",
	'n':  "\n",
	'v':  "\v",
	'f':  "\f",
	'r':  "\r",
	'e':  "\x1b",
	' ':  " ",
	'"':  "\"",
	'/':  "/",
	'\'': "'",
	'\\': "\\",
	'N':  "\u0085",
	'_':  "\u00a0",
	'L':  "\u2028",
	'P':  "\u2029",
}

func (s *Scanner) scanEscape(buf *strings.Builder) error {
	pos := s.mark()
	c := s.at(1)
	if r, ok := simpleEscapes[c]; ok {
		buf.WriteString(r)
		s.skip()
		s.skip()
		return nil
	}
	var n int
	switch c {
	case 'x':
		n = 2
	case 'u':
		n = 4
	case 'U':
		n = 8
	default:
		return SyntaxErr(pos, "found unknown escape character while parsing a quoted scalar")
	}
	if s.i+2+n > len(s.src) {
		return SyntaxErr(pos, "did not find expected hexadecimal number")
	}
	v, err := strconv.ParseUint(string(s.src[s.i+2:s.i+2+n]), 16, 32)
	if err != nil {
		return SyntaxErr(pos, "did not find expected hexadecimal number")
	}
	r := rune(v)
	if (r >= 0xD800 && r <= 0xDFFF) || r > utf8.MaxRune {
		return SyntaxErr(pos, "found invalid Unicode character escape code")
	}
	buf.WriteRune(r)
	for range n + 2 {
		s.skip()
	}
	return nil
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func (s *Scanner) scanBlockScalar(literal bool) (Token, error) {
	start := s.mark()
	style := FoldedStyle
	if literal {
		style = LiteralStyle
	}
	s.skip()

	chomping, increment := 0, 0
	readChomp := func() bool {
		switch s.cur() {
		case '+':
			chomping = 1
		case '-':
			chomping = -1
		default:
			return false
		}
		s.skip()
		return true
	}
	readIncrement := func() (bool, error) {
		if !isDigit(s.cur()) {
			return false, nil
		}
		if s.cur() == '0' {
			return false, s.errorf("found an indentation indicator equal to 0")
		}
		increment = int(s.cur() - '0')
		s.skip()
		return true, nil
	}
	if readChomp() {
		if _, err := readIncrement(); err != nil {
			return Token{}, err
		}
	} else if ok, err := readIncrement(); err != nil {
		return Token{}, err
	} else if ok {
		readChomp()
	}

	for isBlank(s.cur()) {
		s.skip()
	}
	if s.cur() == '#' {
		for !s.eof() && !isBreak(s.cur()) {
			s.skip()
		}
	}
	if !s.eof() && !isBreak(s.cur()) {
		return Token{}, s.errorf("did not find expected comment or line break while scanning a block scalar")
	}
	if !s.eof() {
		s.skipBreak()
	}
	end := s.mark()

	indent := 0
	if increment > 0 {
		if s.indent >= 0 {
			indent = s.indent + increment
		} else {
			indent = increment
		}
	}

	var buf strings.Builder
	trailing, err := s.blockScalarBreaks(&indent, &end)
	if err != nil {
		return Token{}, err
	}
	leadingBreak := ""
	leadingBlank := false
	for s.col == indent && !s.eof() {
		trailingBlank := isBlank(s.cur())
		if !literal && leadingBreak != "" && !leadingBlank && !trailingBlank {
			if trailing == "" {
				buf.WriteByte(' ')
			}
		} else {
			buf.WriteString(leadingBreak)
		}
		leadingBreak = ""
		buf.WriteString(trailing)
		leadingBlank = isBlank(s.cur())
		for !s.eof() && !isBreak(s.cur()) {
			buf.Write(s.take())
		}
		if s.eof() {
			break
		}
		leadingBreak = "\n"
		s.skipBreak()
		end = s.mark()
		trailing, err = s.blockScalarBreaks(&indent, &end)
		if err != nil {
			return Token{}, err
		}
	}
	if chomping != -1 {
		buf.WriteString(leadingBreak)
	}
	if chomping == 1 {
		buf.WriteString(trailing)
	}
	return Token{Type: TScalar, Pos: start, End: end, Value: buf.String(), Style: style}, nil
}

// blockScalarBreaks consumes empty lines and indentation ahead of block
// scalar content, fixing the content indentation if it is still unknown.
func (s *Scanner) blockScalarBreaks(indent *int, end *Pos) (string, error) {
	var breaks strings.Builder
	maxIndent := 0
	for {
		for (*indent == 0 || s.col < *indent) && s.cur() == ' ' {
			s.skip()
		}
		if s.col > maxIndent {
			maxIndent = s.col
		}
		if (*indent == 0 || s.col < *indent) && s.cur() == '\t' {
			return "", s.errorf("found a tab character where an indentation space is expected")
		}
		if s.eof() || !isBreak(s.cur()) {
			break
		}
		breaks.WriteByte('\n')
		s.skipBreak()
		*end = s.mark()
	}
	if *indent == 0 {
		*indent = max(maxIndent, s.indent+1, 1)
	}
	return breaks.String(), nil
}
