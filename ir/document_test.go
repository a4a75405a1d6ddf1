package ir

import (
	"errors"
	"testing"
)

func mustPanic(t *testing.T, name string, f func()) {
	t.Helper()
	defer func() {
		if recover() == nil {
			t.Errorf("%s: expected panic", name)
		}
	}()
	f()
}

func TestFrozen(t *testing.T) {
	d := sampleDoc()
	mustPanic(t, "add", func() { d.AddNull() })
	mustPanic(t, "anchor", func() { d.SetAnchor(d.Root, "x") })
	mustPanic(t, "root", func() { d.SetRoot(NoNode) })
	c := d.Clone()
	if c.Frozen() {
		t.Fatal("clone is frozen")
	}
	c.Put(c.Root, c.AddString("new"), c.AddBool(true))
	if !c.Exists("new") || d.Exists("new") {
		t.Error("clone should be detached")
	}
	if DocEqual(c, d) {
		t.Error("modified clone equals original")
	}
}

func TestStructuralCycle(t *testing.T) {
	d := NewDocument()
	s := d.AddSequence()
	m := d.AddMapping(Pair{Key: d.AddString("k"), Value: s})
	mustPanic(t, "append self", func() { d.Append(s, s) })
	mustPanic(t, "append parent", func() { d.Append(s, m) })
	mustPanic(t, "put parent", func() { d.Put(m, d.AddString("x"), m) })
	r := d.Reserve()
	mustPanic(t, "pending child", func() { d.AddSequence(r) })
	mustPanic(t, "freeze pending", func() { d.Freeze() })
	d.Fill(r, Int(3))
	d.Append(s, r)
	if d.Node(s).Len() != 1 {
		t.Error("append")
	}
	mustPanic(t, "refill", func() { d.Fill(r, Int(4)) })
}

func TestPut(t *testing.T) {
	d := NewDocument()
	m := d.AddMapping()
	d.Put(m, d.AddString("a"), d.AddInt(1))
	d.Put(m, d.AddString("b"), d.AddInt(2))
	d.Put(m, d.AddString("a"), d.AddInt(3))
	d.SetRoot(m)
	if n := d.Node(m); n.Len() != 2 {
		t.Fatalf("got %d pairs", n.Len())
	}
	id, _ := d.Lookup("a")
	if d.Node(id).Int != 3 {
		t.Error("put should replace")
	}
}

func TestResolveAliasChain(t *testing.T) {
	d := NewDocument()
	v := d.AddString("v")
	a1 := d.AddAlias(v)
	a2 := d.AddAlias(a1)
	id, err := d.Resolve(a2)
	if err != nil || id != v {
		t.Errorf("got %d %v", id, err)
	}
	r := d.Reserve()
	loop := d.AddAlias(r)
	d.Fill(r, Alias(loop))
	if _, err := d.Resolve(loop); !errors.Is(err, ErrCycle) {
		t.Errorf("got %v", err)
	}
}

func TestTruth(t *testing.T) {
	d := NewDocument()
	for id, want := range map[NodeID]bool{
		d.AddNull():      false,
		d.AddBool(true):  true,
		d.AddInt(0):      false,
		d.AddFloat(0.5):  true,
		d.AddString(""):  false,
		d.AddSequence():  false,
		d.AddMapping():   false,
		d.AddString("x"): true,
	} {
		if got := d.Truth(id); got != want {
			t.Errorf("node %d (%s): got %t", id, d.Node(id).Kind, got)
		}
	}
}
