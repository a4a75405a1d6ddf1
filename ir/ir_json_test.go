package ir

import (
	"encoding/json"
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestToAny(t *testing.T) {
	d := sampleDoc()
	got, err := d.ToAny(d.Root)
	if err != nil {
		t.Fatal(err)
	}
	list := []any{int64(10), int64(20), map[string]any{"x.y": "dotted", "7": "seven"}}
	want := map[string]any{
		"a":   map[string]any{"b": list},
		"ref": list,
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("ToAny mismatch (-want +got):\n%s", diff)
	}
	if _, err := selfSeq().ToAny(0); !errors.Is(err, ErrCycle) {
		t.Errorf("expected cycle error, got %v", err)
	}
}

func TestMarshalJSONOrder(t *testing.T) {
	d := NewDocument()
	d.SetRoot(d.AddMapping(
		Pair{Key: d.AddString("z"), Value: d.AddFloat(1)},
		Pair{Key: d.AddString("a"), Value: d.AddSequence(d.AddNull(), d.AddBool(false), d.AddString("<&>"))},
		Pair{Key: d.AddString("inf"), Value: d.AddFloat(math.Inf(1))},
	))
	got, err := d.MarshalJSON()
	if err != nil {
		t.Fatal(err)
	}
	want := `{"z":1.0,"a":[null,false,"<&>"],"inf":".inf"}`
	if string(got) != want {
		t.Errorf("got %s want %s", got, want)
	}
}

func TestAddValue(t *testing.T) {
	type point struct{ X int }
	in := map[string]any{
		"n":    nil,
		"i":    3,
		"u":    uint8(4),
		"f":    float32(0.5),
		"s":    []string{"a", "b"},
		"m":    map[string]int{"k": 1},
		"num":  json.Number("12"),
		"fnum": json.Number("1.5"),
	}
	d, err := FromValue(in)
	if err != nil {
		t.Fatal(err)
	}
	got, err := d.ToAny(d.Root)
	if err != nil {
		t.Fatal(err)
	}
	want := map[string]any{
		"n":    nil,
		"i":    int64(3),
		"u":    int64(4),
		"f":    float64(0.5),
		"s":    []any{"a", "b"},
		"m":    map[string]any{"k": int64(1)},
		"num":  int64(12),
		"fnum": 1.5,
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
	keys := []string{}
	for _, p := range d.RootNode().Pairs {
		keys = append(keys, d.Node(p.Key).Text)
	}
	if strings.Join(keys, ",") != "f,fnum,i,m,n,num,s,u" {
		t.Errorf("keys not sorted: %v", keys)
	}
	if _, err := FromValue(point{X: 1}); !errors.Is(err, ErrKind) {
		t.Errorf("struct: got %v", err)
	}
}
