package ir

import (
	"math"
	"testing"
)

func pairDoc(build func(d *Document) NodeID) *Document {
	d := NewDocument()
	d.SetRoot(build(d))
	return d
}

func TestEqual(t *testing.T) {
	seq := func(vals ...int64) func(d *Document) NodeID {
		return func(d *Document) NodeID {
			ids := make([]NodeID, len(vals))
			for i, v := range vals {
				ids[i] = d.AddInt(v)
			}
			return d.AddSequence(ids...)
		}
	}
	kv := func(k string, v int64) func(d *Document) NodeID {
		return func(d *Document) NodeID {
			return d.AddMapping(Pair{Key: d.AddString(k), Value: d.AddInt(v)})
		}
	}
	tests := []struct {
		name string
		a, b func(d *Document) NodeID
		want bool
	}{
		{"null", func(d *Document) NodeID { return d.AddNull() }, func(d *Document) NodeID { return d.AddNull() }, true},
		{"int float", func(d *Document) NodeID { return d.AddInt(1) }, func(d *Document) NodeID { return d.AddFloat(1) }, false},
		{"nan", func(d *Document) NodeID { return d.AddFloat(math.NaN()) }, func(d *Document) NodeID { return d.AddFloat(math.NaN()) }, true},
		{"string", func(d *Document) NodeID { return d.AddString("a") }, func(d *Document) NodeID { return d.AddString("b") }, false},
		{"seq", seq(1, 2, 3), seq(1, 2, 3), true},
		{"seq len", seq(1, 2), seq(1, 2, 3), false},
		{"seq order", seq(2, 1), seq(1, 2), false},
		{"map", kv("a", 1), kv("a", 1), true},
		{"map key", kv("a", 1), kv("b", 1), false},
		{"map value", kv("a", 1), kv("a", 2), false},
		{"tag", func(d *Document) NodeID {
			id := d.AddString("x")
			d.SetTag(id, "!local")
			return id
		}, func(d *Document) NodeID { return d.AddString("x") }, false},
		{"alias", func(d *Document) NodeID {
			v := d.AddString("val")
			d.SetAnchor(v, "a")
			return d.AddSequence(v, d.AddAlias(v))
		}, func(d *Document) NodeID {
			return d.AddSequence(d.AddString("val"), d.AddString("val"))
		}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, b := pairDoc(tt.a), pairDoc(tt.b)
			if got := DocEqual(a, b); got != tt.want {
				t.Errorf("got %t want %t", got, tt.want)
			}
			if got := DocEqual(b, a); got != tt.want {
				t.Errorf("reversed: got %t want %t", got, tt.want)
			}
		})
	}
}

func selfSeq() *Document {
	d := NewDocument()
	s := d.Reserve()
	d.SetAnchor(s, "s")
	d.Fill(s, Sequence(d.AddInt(1), d.AddAlias(s)))
	d.SetRoot(s)
	d.Freeze()
	return d
}

func TestEqualSelfReferential(t *testing.T) {
	a, b := selfSeq(), selfSeq()
	if !DocEqual(a, b) {
		t.Error("self referential documents should be equal")
	}
	c := NewDocument()
	c.SetRoot(c.AddSequence(c.AddInt(1), c.AddSequence()))
	if DocEqual(a, c) {
		t.Error("unexpected equality")
	}
}
