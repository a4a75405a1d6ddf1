package token

import (
	"errors"
	"strings"
	"testing"
)

func types(toks []Token) string {
	parts := make([]string, 0, len(toks))
	for i := range toks {
		parts = append(parts, toks[i].Type.String())
	}
	return strings.Join(parts, " ")
}

func TestTokenizeStructure(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"", "TStreamStart TStreamEnd"},
		{"a", "TStreamStart TScalar TStreamEnd"},
		{"a: 1\n", "TStreamStart TBlockMapStart TKey TScalar TValue TScalar TBlockEnd TStreamEnd"},
		{"- 1\n- 2\n", "TStreamStart TBlockSeqStart TBlockEntry TScalar TBlockEntry TScalar TBlockEnd TStreamEnd"},
		{"a:\n  b: c\n", "TStreamStart TBlockMapStart TKey TScalar TValue TBlockMapStart TKey TScalar TValue TScalar TBlockEnd TBlockEnd TStreamEnd"},
		{"a:\n- 1\n", "TStreamStart TBlockMapStart TKey TScalar TValue TBlockEntry TScalar TBlockEnd TStreamEnd"},
		{"[1, 2]", "TStreamStart TFlowSeqStart TScalar TFlowEntry TScalar TFlowSeqEnd TStreamEnd"},
		{"{a: 1}", "TStreamStart TFlowMapStart TKey TScalar TValue TScalar TFlowMapEnd TStreamEnd"},
		{"--- a\n...\n", "TStreamStart TDocStart TScalar TDocEnd TStreamEnd"},
		{"&x a: *x\n", "TStreamStart TBlockMapStart TKey TAnchor TScalar TValue TAlias TBlockEnd TStreamEnd"},
		{"!!str 1", "TStreamStart TTag TScalar TStreamEnd"},
		{"? a\n: b\n", "TStreamStart TBlockMapStart TKey TScalar TValue TScalar TBlockEnd TStreamEnd"},
		{"%YAML 1.2\n--- x\n", "TStreamStart TDocStart TScalar TStreamEnd"},
		{"# only a comment\n", "TStreamStart TStreamEnd"},
	}
	for _, c := range cases {
		toks, err := Tokenize(nil, []byte(c.in))
		if err != nil {
			t.Errorf("%q: %v", c.in, err)
			continue
		}
		if got := types(toks); got != c.want {
			t.Errorf("%q:\ngot  %s\nwant %s", c.in, got, c.want)
		}
	}
}

func scalars(t *testing.T, in string) []string {
	t.Helper()
	toks, err := Tokenize(nil, []byte(in))
	if err != nil {
		t.Fatalf("%q: %v", in, err)
	}
	var res []string
	for i := range toks {
		if toks[i].Type == TScalar {
			res = append(res, toks[i].Value)
		}
	}
	return res
}

func TestScalarValues(t *testing.T) {
	cases := []struct {
		in   string
		want []string
	}{
		{"plain text here", []string{"plain text here"}},
		{"a b\n c\n\n d\n", []string{"a b c\nd"}},
		{"k: v # comment\n", []string{"k", "v"}},
		{"k: a#b\n", []string{"k", "a#b"}},
		{"url: http://x.y/z\n", []string{"url", "http://x.y/z"}},
		{`'it''s'`, []string{"it's"}},
		{`"a\tb\n\u263A\x41"`, []string{"a\tb\n☺A"}},
		{"\"a\n  b\n\n  c\"", []string{"a b\nc"}},
		{"\"a\\\n  b\"", []string{"ab"}},
		{"|\n  a\n  b\n", []string{"a\nb\n"}},
		{"|-\n  a\n  b\n", []string{"a\nb"}},
		{"|+\n  a\n\n", []string{"a\n\n"}},
		{">\n  a\n  b\n\n  c\n", []string{"a b\nc\n"}},
		{">\n  a\n    x\n  b\n", []string{"a\n  x\nb\n"}},
		{"|2\n   a\n", []string{" a\n"}},
		{"k: |\n  x\n  y\nz: 1\n", []string{"k", "x\ny\n", "z", "1"}},
		{"[a b, 'c', \"d\"]", []string{"a b", "c", "d"}},
		{"{a: [1, 2], b: {c: d}}", []string{"a", "1", "2", "b", "c", "d"}},
	}
	for _, c := range cases {
		got := scalars(t, c.in)
		if strings.Join(got, "|") != strings.Join(c.want, "|") || len(got) != len(c.want) {
			t.Errorf("%q: got %q want %q", c.in, got, c.want)
		}
	}
}

func TestScalarStyle(t *testing.T) {
	toks, err := Tokenize(nil, []byte("- a\n- 'b'\n- \"c\"\n- |\n  d\n- >\n  e\n"))
	if err != nil {
		t.Fatal(err)
	}
	var styles []ScalarStyle
	for i := range toks {
		if toks[i].Type == TScalar {
			styles = append(styles, toks[i].Style)
		}
	}
	want := []ScalarStyle{PlainStyle, SingleQuotedStyle, DoubleQuotedStyle, LiteralStyle, FoldedStyle}
	if len(styles) != len(want) {
		t.Fatalf("got %v", styles)
	}
	for i := range want {
		if styles[i] != want[i] {
			t.Errorf("scalar %d: got %s want %s", i, styles[i], want[i])
		}
	}
}

func TestPositions(t *testing.T) {
	toks, err := Tokenize(nil, []byte("a: 1\nbé: [x]\n"))
	if err != nil {
		t.Fatal(err)
	}
	want := map[string]Pos{
		"a":  {Offset: 0, Line: 1, Col: 1},
		"1":  {Offset: 3, Line: 1, Col: 4},
		"bé": {Offset: 5, Line: 2, Col: 1},
		"x":  {Offset: 11, Line: 2, Col: 6},
	}
	for i := range toks {
		tok := &toks[i]
		if tok.Type != TScalar {
			continue
		}
		if p, ok := want[tok.Value]; ok && p != tok.Pos {
			t.Errorf("%q at %+v, want %+v", tok.Value, tok.Pos, p)
		}
	}
}

func TestNormalize(t *testing.T) {
	got := scalars(t, "\xef\xbb\xbfa: 1\r\nb: 2\r")
	want := []string{"a", "1", "b", "2"}
	if strings.Join(got, ",") != strings.Join(want, ",") {
		t.Errorf("got %q", got)
	}
}

func TestScanErrors(t *testing.T) {
	cases := []struct {
		in   string
		msg  string
		line int
	}{
		{"a: b: c\n", "mapping values are not allowed", 1},
		{"'abc", "unexpected end of stream", 2},
		{`"\q"`, "unknown escape", 1},
		{`"\uD800"`, "invalid Unicode", 1},
		{"[a, - b]", "block sequence entries are not allowed", 1},
		{"a: 1\n\tb: 2\n", "tab character", 2},
		{"@foo", "cannot start any token", 1},
		{"|0\n a\n", "indentation indicator equal to 0", 1},
		{"& a", "anchor name", 1},
		{"key\nother: 1\n", "mapping values are not allowed", 2},
		{"\xff", "invalid UTF-8", 1},
	}
	for _, c := range cases {
		_, err := Tokenize(nil, []byte(c.in))
		if err == nil {
			t.Errorf("%q: expected error", c.in)
			continue
		}
		if !errors.Is(err, ErrSyntax) {
			t.Errorf("%q: %v is not a syntax error", c.in, err)
		}
		var pe *PosErr
		if !errors.As(err, &pe) {
			t.Errorf("%q: %T is not a *PosErr", c.in, err)
			continue
		}
		if !strings.Contains(err.Error(), c.msg) {
			t.Errorf("%q: %q does not mention %q", c.in, err, c.msg)
		}
		if pe.Pos.Line != c.line {
			t.Errorf("%q: error at line %d, want %d", c.in, pe.Pos.Line, c.line)
		}
	}
}

func TestScannerSticky(t *testing.T) {
	s := NewScanner([]byte("a: b: c\n"))
	var err error
	for range 20 {
		if _, err = s.Next(); err != nil {
			break
		}
	}
	if err == nil {
		t.Fatal("expected error")
	}
	if _, err2 := s.Next(); err2 != err {
		t.Errorf("got %v after %v", err2, err)
	}
}

func TestScannerAfterEnd(t *testing.T) {
	s := NewScanner([]byte("x"))
	for range 5 {
		if _, err := s.Next(); err != nil {
			t.Fatal(err)
		}
	}
	tok, err := s.Next()
	if err != nil || tok.Type != TStreamEnd {
		t.Errorf("got %s %v", tok.String(), err)
	}
}
