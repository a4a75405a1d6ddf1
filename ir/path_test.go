package ir

import (
	"errors"
	"testing"
)

func sampleDoc() *Document {
	d := NewDocument()
	inner := d.AddMapping(
		Pair{Key: d.AddString("x.y"), Value: d.AddString("dotted")},
		Pair{Key: d.AddInt(7), Value: d.AddString("seven")},
	)
	list := d.AddSequence(d.AddInt(10), d.AddInt(20), inner)
	d.SetAnchor(list, "l")
	d.SetRoot(d.AddMapping(
		Pair{Key: d.AddString("a"), Value: d.AddMapping(Pair{Key: d.AddString("b"), Value: list})},
		Pair{Key: d.AddString("ref"), Value: d.AddAlias(list)},
	))
	d.Freeze()
	return d
}

func TestParsePathString(t *testing.T) {
	for in, want := range map[string]string{
		"":            "$",
		"$":           "$",
		"a":           "$.a",
		"a.b[0]":      "$.a.b[0]",
		"$.a.'x.y'":   "$.a.'x.y'",
		"[2].c":       "$[2].c",
		`a."q'"`:      `$.a.'q\''`,
		"$.a[0][1].b": "$.a[0][1].b",
	} {
		p, err := ParsePath(in)
		if err != nil {
			t.Errorf("%q: %v", in, err)
			continue
		}
		if got := p.String(); got != want {
			t.Errorf("%q: got %q want %q", in, got, want)
		}
	}
	for _, bad := range []string{"a[", "a[x]", "a[-1]", "a..b", "a.'open"} {
		if _, err := ParsePath(bad); !errors.Is(err, ErrPath) {
			t.Errorf("%q: expected ErrPath, got %v", bad, err)
		}
	}
}

func TestLookup(t *testing.T) {
	d := sampleDoc()
	tests := []struct {
		path string
		want string
		err  error
	}{
		{"a.b[1]", "20", nil},
		{"$.a.b[2].'x.y'", "dotted", nil},
		{"a.b[2].7", "seven", nil},
		{"ref[0]", "10", nil},
		{"ref[2].'x.y'", "dotted", nil},
		{"a.c", "", ErrNotFound},
		{"a.b[3]", "", ErrNotFound},
		{"a.b.c", "", ErrKind},
		{"a[0]", "", ErrKind},
	}
	for _, tt := range tests {
		id, err := d.Lookup(tt.path)
		if tt.err != nil {
			if !errors.Is(err, tt.err) {
				t.Errorf("%s: got %v want %v", tt.path, err, tt.err)
			}
			continue
		}
		if err != nil {
			t.Errorf("%s: %v", tt.path, err)
			continue
		}
		if got := d.Node(id).ScalarText(); got != tt.want {
			t.Errorf("%s: got %q want %q", tt.path, got, tt.want)
		}
	}
	if !d.Exists("a.b") || d.Exists("nope") {
		t.Error("Exists")
	}
	id, err := d.Lookup("ref")
	if err != nil {
		t.Fatal(err)
	}
	if d.Node(id).Kind != SequenceKind {
		t.Errorf("lookup of an alias should resolve it, got %s", d.Node(id).Kind)
	}
}
