package libdiff

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/sturdio/sturdio/encode"
	"github.com/sturdio/sturdio/ir"
	"github.com/sturdio/sturdio/parse"
)

func TestLines(t *testing.T) {
	got := Lines("a\nb\nc\n", "a\nx\nc\nd\n")
	want := []Line{
		{Equal, "a"},
		{Delete, "b"},
		{Insert, "x"},
		{Equal, "c"},
		{Insert, "d"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
}

func TestText(t *testing.T) {
	if got := Text("a\nb\n", "a\nb\n"); got != "" {
		t.Errorf("equal text gave %q", got)
	}
	want := " a\n-b\n+c\n"
	if got := Text("a\nb\n", "a\nc\n"); got != want {
		t.Errorf("got %q want %q", got, want)
	}
}

func TestFormatContext(t *testing.T) {
	lines := Lines("1\n2\n3\n4\n5\n6\n7\n", "1\n2\n3\nx\n5\n6\n7\n")
	want := " 3\n-4\n+x\n 5\n"
	if got := Format(lines, 1); got != want {
		t.Errorf("got %q want %q", got, want)
	}
	lines = Lines("1\n2\n3\n4\n5\n", "x\n2\n3\n4\ny\n")
	want = "-1\n+x\n...\n-5\n+y\n"
	if got := Format(lines, 0); got != want {
		t.Errorf("got %q want %q", got, want)
	}
}

func TestDocuments(t *testing.T) {
	parseDoc := func(s string) *ir.Document {
		doc, err := parse.ParseString(s)
		if err != nil {
			t.Fatal(err)
		}
		return doc
	}
	a := parseDoc("name: rx\nrate: 2\n")
	b := parseDoc("{name: 'rx', rate: 2}  # same\n")
	got, err := Documents(a, b)
	if err != nil {
		t.Fatal(err)
	}
	if got != "" {
		t.Errorf("equal documents gave %q", got)
	}

	c := parseDoc("name: rx\nrate: 3\n")
	got, err = Documents(a, c, encode.FlowThreshold(0))
	if err != nil {
		t.Fatal(err)
	}
	want := " name: rx\n-rate: 2\n+rate: 3\n"
	if got != want {
		t.Errorf("got %q want %q", got, want)
	}
}

func TestPatch(t *testing.T) {
	from := "the quick brown fox\njumps over\n"
	to := "the quick red fox\njumps over the dog\n"
	p := Patch(from, to)
	got, err := ApplyPatch(from, p)
	if err != nil {
		t.Fatal(err)
	}
	if got != to {
		t.Errorf("got %q want %q", got, to)
	}
	if _, err := ApplyPatch("01234567890123456789", Patch("abcdefghijklmnopqrst", "abcdefghijXlmnopqrst")); !errors.Is(err, ErrPatch) {
		t.Errorf("mismatched text: %v", err)
	}
	if _, err := ApplyPatch(from, "@@ nonsense"); !errors.Is(err, ErrPatch) {
		t.Errorf("bad patch: %v", err)
	}
}
