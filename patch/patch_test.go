package patch

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/sturdio/sturdio/encode"
	"github.com/sturdio/sturdio/ir"
	"github.com/sturdio/sturdio/parse"
)

func mustParse(t *testing.T, s string) *ir.Document {
	t.Helper()
	doc, err := parse.ParseString(s)
	if err != nil {
		t.Fatalf("parse %q: %v", s, err)
	}
	return doc
}

func TestApply(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		ops  string
		want string
	}{
		{
			name: "add and remove",
			doc:  "a: 1\nb: [x, y]\n",
			ops:  `[{"op":"add","path":"/c","value":3},{"op":"remove","path":"/a"}]`,
			want: "b: [x, y]\nc: 3\n",
		},
		{
			name: "replace in sequence",
			doc:  "- a\n- b\n",
			ops:  `[{"op":"replace","path":"/1","value":{"k":"v"}}]`,
			want: "- a\n- k: v\n",
		},
		{
			name: "aliases are expanded",
			doc:  "base: &b {x: 1}\nuse: *b\n",
			ops:  `[{"op":"replace","path":"/use/x","value":2}]`,
			want: "base: {x: 1}\nuse: {x: 2}\n",
		},
		{
			name: "move and copy",
			doc:  "a: {v: 1}\n",
			ops:  `[{"op":"copy","from":"/a","path":"/b"},{"op":"move","from":"/a/v","path":"/c"}]`,
			want: "a: {}\nb: {v: 1}\nc: 1\n",
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			doc := mustParse(t, tc.doc)
			res, err := Apply(doc, []byte(tc.ops))
			if err != nil {
				t.Fatal(err)
			}
			want := mustParse(t, tc.want)
			if !ir.DocEqual(res, want) {
				t.Errorf("got\n%s\nwant\n%s", encode.MustString(res), encode.MustString(want))
			}
		})
	}
}

func TestApplyLeavesInput(t *testing.T) {
	doc := mustParse(t, "a: 1\n")
	before := encode.MustString(doc)
	if _, err := Apply(doc, []byte(`[{"op":"add","path":"/b","value":2}]`)); err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(before, encode.MustString(doc)); diff != "" {
		t.Errorf("input changed (-before +after):\n%s", diff)
	}
}

func TestApplyDocument(t *testing.T) {
	doc := mustParse(t, "name: old\n")
	ops := mustParse(t, "- op: replace\n  path: /name\n  value: new\n- op: test\n  path: /name\n  value: new\n")
	res, err := ApplyDocument(doc, ops)
	if err != nil {
		t.Fatal(err)
	}
	if got := encode.MustString(res, encode.FlowThreshold(0)); got != "name: new" {
		t.Errorf("got %q", got)
	}
}

func TestMerge(t *testing.T) {
	doc := mustParse(t, "a: 1\nb:\n  c: 2\n  d: 3\n")
	res, err := Merge(doc, []byte(`{"b":{"c":null},"e":true}`))
	if err != nil {
		t.Fatal(err)
	}
	want := mustParse(t, "a: 1\nb: {d: 3}\ne: true\n")
	if !ir.DocEqual(res, want) {
		t.Errorf("got\n%s", encode.MustString(res))
	}

	m := mustParse(t, "a: null\nz: [1]\n")
	res, err = MergeDocument(doc, m)
	if err != nil {
		t.Fatal(err)
	}
	want = mustParse(t, "b: {c: 2, d: 3}\nz: [1]\n")
	if !ir.DocEqual(res, want) {
		t.Errorf("got\n%s", encode.MustString(res))
	}
}

func TestDiff(t *testing.T) {
	from := mustParse(t, "a: 1\nb: 2\n")
	to := mustParse(t, "a: 1\nb: 3\nc: x\n")
	d, err := Diff(from, to)
	if err != nil {
		t.Fatal(err)
	}
	want := mustParse(t, "b: 3\nc: x\n")
	if !ir.DocEqual(d, want) {
		t.Fatalf("got\n%s", encode.MustString(d))
	}
	res, err := MergeDocument(from, d)
	if err != nil {
		t.Fatal(err)
	}
	if !ir.DocEqual(res, to) {
		t.Errorf("merging the diff gave\n%s", encode.MustString(res))
	}
}

func TestErrors(t *testing.T) {
	doc := mustParse(t, "a: 1\n")
	tests := []struct {
		name string
		fn   func() error
		want error
	}{
		{"bad operations", func() error {
			_, err := Apply(doc, []byte(`{"op":`))
			return err
		}, ErrPatch},
		{"missing path", func() error {
			_, err := Apply(doc, []byte(`[{"op":"remove","path":"/nope"}]`))
			return err
		}, ErrPatch},
		{"failed test", func() error {
			_, err := Apply(doc, []byte(`[{"op":"test","path":"/a","value":2}]`))
			return err
		}, ErrPatch},
		{"empty document", func() error {
			_, err := Apply(ir.NewDocument(), []byte(`[]`))
			return err
		}, ErrEmpty},
		{"bad merge", func() error {
			_, err := Merge(doc, []byte(`{`))
			return err
		}, ErrPatch},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if err := tc.fn(); !errors.Is(err, tc.want) {
				t.Errorf("got %v, want %v", err, tc.want)
			}
		})
	}
}
