package encode

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/fatih/color"
	goyaml "github.com/goccy/go-yaml"
	"github.com/google/go-cmp/cmp"
	yamlv3 "gopkg.in/yaml.v3"

	"github.com/sturdio/sturdio/format"
	"github.com/sturdio/sturdio/ir"
	"github.com/sturdio/sturdio/parse"
)

type dumpTest struct {
	in   string
	opts []EncodeOption
	want string
}

func TestDump(t *testing.T) {
	block := []EncodeOption{FlowThreshold(0)}
	dts := []dumpTest{
		{in: "a: 1\nb: [x, z]\n", want: "a: 1\nb: [x, z]\n"},
		{in: "a: 1\nb: [x, y]\n", want: "a: 1\nb: [x, \"y\"]\n"},
		{in: "[y, n, Y, N, \"yes\", \"Off\", o]", want: "- \"y\"\n- \"n\"\n- \"Y\"\n- \"N\"\n- \"yes\"\n- \"Off\"\n- o\n"},
		{in: "[\"1_000\", \"017\", \"0b11\"]", want: "[\"1_000\", \"017\", \"0b11\"]\n"},
		{in: "x: 9223372036854775808\n", want: "{x: \"9223372036854775808\"}\n"},
		{in: "x: 0xFFFFFFFFFFFFFFFF\n", want: "{x: \"0xFFFFFFFFFFFFFFFF\"}\n"},
		{in: "{a: 1, b: 2}", want: "{a: 1, b: 2}\n"},
		{in: "[1, 2, 3, 4, 5]", want: "- 1\n- 2\n- 3\n- 4\n- 5\n"},
		{in: "[1, 2]", opts: block, want: "- 1\n- 2\n"},
		{in: "[aaaaaaaaaa, bbbbbbbbbb]", opts: []EncodeOption{MaxFlowWidth(10)}, want: "- aaaaaaaaaa\n- bbbbbbbbbb\n"},
		{in: "a: []\nb: {}\nc: ''\nd:\n", want: "a: []\nb: {}\nc: \"\"\nd: null\n"},
		{in: "[1.0, 1e3, .inf, -.inf]", want: "[1.0, 1000.0, .inf, -.inf]\n"},
		{in: "[~, Null, TRUE, 0x1f]", want: "[null, null, true, 31]\n"},
		{
			in:   `[yes, "on", "123", "- a", "a: b", "#c", "", " lead", "~", "2024-01-02"]`,
			want: "- \"yes\"\n- \"on\"\n- \"123\"\n- \"- a\"\n- \"a: b\"\n- \"#c\"\n- \"\"\n- \" lead\"\n- \"~\"\n- \"2024-01-02\"\n",
		},
		{in: `["a,b", "x:y", "p#q"]`, want: "[\"a,b\", \"x:y\", \"p#q\"]\n"},
		{in: "[a,b]", opts: []EncodeOption{Indent(4), FlowThreshold(0)}, want: "- a\n- b\n"},
		{in: "text: |\n  line1\n  line2\n", want: "text: |\n  line1\n  line2\n"},
		{in: `text: "a\nb"`, want: "text: |-\n  a\n  b\n"},
		{in: `text: "a\n\n"`, want: "text: |+\n  a\n\n"},
		{in: `text: "\na\n"`, want: "text: |\n\n  a\n"},
		{in: `text: " a\nb"`, want: "text: \" a\\nb\"\n"},
		{in: `text: "a\tb\nc"`, want: "text: \"a\\tb\\nc\"\n"},
		{in: `["x\ny"]`, want: "- |-\n  x\n  y\n"},
		{in: `"x\ny\n"`, want: "|\n  x\n  y\n"},
		{
			in:   "a:\n  b:\n  - 1\n  - {c: d, e: [f]}\n",
			want: "a:\n  b:\n    - 1\n    - c: d\n      e: [f]\n",
		},
		{
			in:   "a:\n  b:\n  - 1\n  - {c: d, e: [f]}\n",
			opts: []EncodeOption{Indent(4)},
			want: "a:\n    b:\n        - 1\n        - c: d\n          e: [f]\n",
		},
		{in: "[[1, 2], [3]]", want: "- [1, 2]\n- [3]\n"},
		{in: "[[1, [2]]]", want: "- - 1\n  - [2]\n"},
		{in: "base: &b {x: 1}\nuse: *b\n", want: "base: &b {x: 1}\nuse: *b\n"},
		{in: "a: &x 1\nb: *x\nc: &x 2\nd: *x\n", want: "a: &x 1\nb: *x\nc: &x_2 2\nd: *x_2\n"},
		{in: "&s [1, *s]", want: "&s\n- 1\n- *s\n"},
		{in: "- &m\n  k: [1]\n- *m\n", want: "- &m\n  k: [1]\n- *m\n"},
		{in: "a: !!str 1\nb: !custom x\n", opts: block, want: "a: !!str \"1\"\nb: !custom x\n"},
		{in: "a: !!str 1\nb: !custom x\n", want: "{a: !!str \"1\", b: !custom x}\n"},
		{in: "t: !!set\n  x: 1\n  y: [2]\n", want: "t: !!set\n  x: 1\n  \"y\": [2]\n"},
		{in: "? [a, b]\n: v\n", want: "? [a, b]\n: v\n"},
		{in: "? - a\n  - [b]\n:\n  - c\n  - [d]\n", want: "? - a\n  - [b]\n:\n  - c\n  - [d]\n"},
		{in: "1: one\nnull: nil\n", opts: block, want: "1: one\nnull: nil\n"},
		{in: "\"a b\": 1\n\"yes\": 2\n", opts: block, want: "a b: 1\n\"yes\": 2\n"},
	}
	for _, dt := range dts {
		doc, err := parse.ParseString(dt.in)
		if err != nil {
			t.Errorf("parse %q: %v", dt.in, err)
			continue
		}
		got, err := Dump(doc, dt.opts...)
		if err != nil {
			t.Errorf("dump %q: %v", dt.in, err)
			continue
		}
		if diff := cmp.Diff(dt.want, string(got)); diff != "" {
			t.Errorf("dump %q (-want +got):\n%s", dt.in, diff)
		}
	}
}

var roundTrips = []string{
	"a: 1\nb: [x, y]\n",
	"[1, 2, 3, 4, 5, 6]",
	"- {a: 1}\n- [b, c]\n- \"d: e\"\n- |\n  f\n  g\n",
	"text: \"a\\n\\n\\n\"\nnext: x\n",
	"text: \"  indented\\nlines\\n\"\n",
	"? {a: 1}\n: b\n? [c]\n: [d]\n",
	"base: &b\n  x: 1\n  y: [1, 2]\nuse: *b\nagain: *b\n",
	"&s [1, *s, {k: *s}]",
	"a: &x 1\nb: *x\nc: &x 2\nd: *x\n",
	"[.nan, .inf, -.inf, 0.5, 1e-7, -0.0]",
	"k: !local {a: 1}\nl: !!float 3\nm: !<tag:yaml.org,2002:str> 4\n",
	"unicode: \"h\\u00e9llo \\u263a\"\nctl: \"\\x01\\e\\u2028\"\n",
	`[yes, no, "y", "n", "off", "0o17", "017", "1_000", "0b1", "<<", "="]`,
	"- - - deep\n    - er\n  - x\n- y\n",
	"empty:\nnested:\n  - []\n  - {}\n  -\n",
}

func TestRoundTrip(t *testing.T) {
	for _, in := range roundTrips {
		doc, err := parse.ParseString(in)
		if err != nil {
			t.Errorf("parse %q: %v", in, err)
			continue
		}
		out, err := Dump(doc)
		if err != nil {
			t.Errorf("dump %q: %v", in, err)
			continue
		}
		again, err := parse.ParseDocument(out)
		if err != nil {
			t.Errorf("reparse %q: %v\n%s", in, err, out)
			continue
		}
		if !ir.DocEqual(doc, again) {
			t.Errorf("%q changed through\n%s", in, out)
		}
		out2, err := Dump(again)
		if err != nil {
			t.Fatal(err)
		}
		if diff := cmp.Diff(string(out), string(out2)); diff != "" {
			t.Errorf("%q dump not stable (-first +second):\n%s", in, diff)
		}
	}
}

func TestDumpStream(t *testing.T) {
	s, err := parse.Parse([]byte("a\n---\n[b]\n---\n|\n  c\n"))
	if err != nil {
		t.Fatal(err)
	}
	got, err := DumpStream(s)
	if err != nil {
		t.Fatal(err)
	}
	want := "a\n---\n[b]\n---\n|\n  c\n"
	if diff := cmp.Diff(want, string(got)); diff != "" {
		t.Error(diff)
	}
	again, err := parse.Parse(got)
	if err != nil {
		t.Fatal(err)
	}
	if !ir.StreamEqual(s, again) {
		t.Error("stream changed through dump")
	}

	got, err = DumpStream(s, EncodeFormat(format.JSONFormat))
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff("\"a\"\n[\n  \"b\"\n]\n\"c\\n\"\n", string(got)); diff != "" {
		t.Error(diff)
	}
}

func TestDumpJSON(t *testing.T) {
	doc, err := parse.ParseString("a: [1, 2.5]\nb: x\nc: .inf\n")
	if err != nil {
		t.Fatal(err)
	}
	got, err := Dump(doc, EncodeFormat(format.JSONFormat))
	if err != nil {
		t.Fatal(err)
	}
	want := `{
  "a": [
    1,
    2.5
  ],
  "b": "x",
  "c": ".inf"
}
`
	if diff := cmp.Diff(want, string(got)); diff != "" {
		t.Error(diff)
	}
}

func TestEncodeNode(t *testing.T) {
	doc, err := parse.ParseString("a:\n  b: [1, 2]\n  c: &x {k: v}\nd: *x\n")
	if err != nil {
		t.Fatal(err)
	}
	buf := &bytes.Buffer{}
	id, err := doc.Lookup("a.b")
	if err != nil {
		t.Fatal(err)
	}
	if err := EncodeNode(doc, id, buf); err != nil {
		t.Fatal(err)
	}
	if got := buf.String(); got != "[1, 2]\n" {
		t.Errorf("got %q", got)
	}
	d, ok := doc.Get(doc.Root, "d")
	if !ok {
		t.Fatal("no d")
	}
	buf.Reset()
	if err := EncodeNode(doc, d, buf); err != nil {
		t.Fatal(err)
	}
	if got := buf.String(); got != "&x {k: v}\n" {
		t.Errorf("alias root: got %q", got)
	}
}

func TestSharedNodes(t *testing.T) {
	doc := ir.NewDocument()
	doc.SetAnchor(doc.AddNull(), "a1")
	x := doc.AddString("x")
	m := doc.AddMapping(ir.Pair{Key: doc.AddString("k"), Value: x})
	doc.SetRoot(doc.AddSequence(x, m, m))
	got, err := Dump(doc)
	if err != nil {
		t.Fatal(err)
	}
	want := "- &a2 x\n- &a3\n  k: *a2\n- *a3\n"
	if diff := cmp.Diff(want, string(got)); diff != "" {
		t.Error(diff)
	}
	again, err := parse.ParseDocument(got)
	if err != nil {
		t.Fatal(err)
	}
	if !ir.DocEqual(doc, again) {
		t.Error("shared nodes changed through dump")
	}
}

func TestEncodeErrors(t *testing.T) {
	doc := ir.NewDocument()
	id := doc.AddInt(1)
	doc.SetTag(id, ir.StrTag)
	doc.SetRoot(id)
	buf := &bytes.Buffer{}
	err := Encode(doc, buf)
	if !errors.Is(err, ErrEncoding) || !errors.Is(err, ir.ErrTag) {
		t.Errorf("expected tag error, got %v", err)
	}
	if buf.Len() != 0 {
		t.Errorf("partial output %q", buf.String())
	}
	if _, err := Dump(doc, EncodeFormat(format.JSONFormat)); err != nil {
		t.Errorf("json drops tags: %v", err)
	}
}

func TestEmptyDocument(t *testing.T) {
	if got := MustString(ir.NewDocument()); got != "null" {
		t.Errorf("got %q", got)
	}
}

func TestColors(t *testing.T) {
	prev := color.NoColor
	color.NoColor = false
	defer func() { color.NoColor = prev }()

	doc, err := parse.ParseString("a: [1, true]\nb: |\n  x\n")
	if err != nil {
		t.Fatal(err)
	}
	plain := MustString(doc)
	colored := MustString(doc, EncodeColors(NewColors()))
	if !strings.Contains(colored, "\x1b[") {
		t.Fatalf("no escapes in %q", colored)
	}
	if colored == plain {
		t.Error("colors had no effect")
	}
	if got := MustString(doc, EncodeColors(nil)); got != plain {
		t.Errorf("nil colors: %q", got)
	}
}

const conformance = `name: sturdio
version: "1.0"
enabled: true
count: 42
big: 18446744073709551616
ratio: 0.5
tags: [a, b, c]
empty: []
nothing: null
quoted: ["yes", "no", "on", "0x10", "2024-01-02", "a: b", "#x", "", "- y"]
nested:
  list:
    - one
    - two: 2
      three: [3]
    - [x, "y, z"]
  text: |
    first line
    second line
  stripped: "no newline\nat end"
  "key with: colon": v
unicode: "h\u00e9llo \u263a"
`

func normalize(t *testing.T, v any) any {
	t.Helper()
	d, err := json.Marshal(v)
	if err != nil {
		t.Fatal(err)
	}
	var res any
	if err := json.Unmarshal(d, &res); err != nil {
		t.Fatal(err)
	}
	return res
}

func TestExternalReaders(t *testing.T) {
	doc, err := parse.ParseString(conformance)
	if err != nil {
		t.Fatal(err)
	}
	want, err := doc.ToAny(doc.Root)
	if err != nil {
		t.Fatal(err)
	}
	out, err := Dump(doc)
	if err != nil {
		t.Fatal(err)
	}

	var v3 any
	if err := yamlv3.Unmarshal(out, &v3); err != nil {
		t.Fatalf("yaml.v3: %v\n%s", err, out)
	}
	if diff := cmp.Diff(normalize(t, want), normalize(t, v3)); diff != "" {
		t.Errorf("yaml.v3 reads (-want +got):\n%s", diff)
	}

	var gy any
	if err := goyaml.Unmarshal(out, &gy); err != nil {
		t.Fatalf("go-yaml: %v\n%s", err, out)
	}
	if diff := cmp.Diff(normalize(t, want), normalize(t, gy)); diff != "" {
		t.Errorf("go-yaml reads (-want +got):\n%s", diff)
	}
}
