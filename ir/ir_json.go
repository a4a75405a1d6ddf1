package ir

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"reflect"
	"slices"
	"strconv"
)

// ToAny converts the subtree at id to plain Go values: nil, bool, int64,
// float64, string, []any and map[string]any. Mapping keys must be
// scalars and are converted to their canonical text. Aliases are
// expanded; a self-referential alias is an error wrapping ErrCycle.
func (d *Document) ToAny(id NodeID) (any, error) {
	return d.toAny(id, map[NodeID]bool{})
}

func (d *Document) toAny(id NodeID, active map[NodeID]bool) (any, error) {
	id, err := d.Resolve(id)
	if err != nil {
		return nil, err
	}
	n := d.Node(id)
	switch n.Kind {
	case NullKind:
		return nil, nil
	case BoolKind:
		return n.Bool, nil
	case IntKind:
		return n.Int, nil
	case FloatKind:
		return n.Float, nil
	case StringKind:
		return n.Text, nil
	}
	if active[id] {
		return nil, fmt.Errorf("%w: node %d contains itself", ErrCycle, id)
	}
	active[id] = true
	defer delete(active, id)
	switch n.Kind {
	case SequenceKind:
		res := make([]any, len(n.Items))
		for i, c := range n.Items {
			v, err := d.toAny(c, active)
			if err != nil {
				return nil, err
			}
			res[i] = v
		}
		return res, nil
	case MappingKind:
		res := make(map[string]any, len(n.Pairs))
		for _, p := range n.Pairs {
			k, err := d.keyText(p.Key)
			if err != nil {
				return nil, err
			}
			v, err := d.toAny(p.Value, active)
			if err != nil {
				return nil, err
			}
			res[k] = v
		}
		return res, nil
	}
	return nil, fmt.Errorf("%w: %s", ErrKind, n.Kind)
}

func (d *Document) keyText(id NodeID) (string, error) {
	id, err := d.Resolve(id)
	if err != nil {
		return "", err
	}
	n := d.Node(id)
	if !n.Kind.IsScalar() {
		return "", fmt.Errorf("%w: %s key", ErrKey, n.Kind)
	}
	return n.ScalarText(), nil
}

// MarshalJSON writes the root as compact JSON, keeping mapping order.
// Non-finite floats are written as the strings ".inf", "-.inf", ".nan".
func (d *Document) MarshalJSON() ([]byte, error) {
	return d.NodeJSON(d.Root)
}

// NodeJSON is MarshalJSON for the subtree at id.
func (d *Document) NodeJSON(id NodeID) ([]byte, error) {
	buf := &bytes.Buffer{}
	if id == NoNode {
		buf.WriteString("null")
		return buf.Bytes(), nil
	}
	if err := d.writeJSON(buf, id, map[NodeID]bool{}); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (d *Document) writeJSON(buf *bytes.Buffer, id NodeID, active map[NodeID]bool) error {
	id, err := d.Resolve(id)
	if err != nil {
		return err
	}
	n := d.Node(id)
	switch n.Kind {
	case NullKind:
		buf.WriteString("null")
		return nil
	case BoolKind:
		buf.WriteString(strconv.FormatBool(n.Bool))
		return nil
	case IntKind:
		buf.WriteString(strconv.FormatInt(n.Int, 10))
		return nil
	case FloatKind:
		if math.IsNaN(n.Float) || math.IsInf(n.Float, 0) {
			return writeJSONString(buf, FormatFloat(n.Float))
		}
		buf.WriteString(FormatFloat(n.Float))
		return nil
	case StringKind:
		return writeJSONString(buf, n.Text)
	}
	if active[id] {
		return fmt.Errorf("%w: node %d contains itself", ErrCycle, id)
	}
	active[id] = true
	defer delete(active, id)
	switch n.Kind {
	case SequenceKind:
		buf.WriteByte('[')
		for i, c := range n.Items {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := d.writeJSON(buf, c, active); err != nil {
				return err
			}
		}
		buf.WriteByte(']')
	case MappingKind:
		buf.WriteByte('{')
		for i, p := range n.Pairs {
			if i > 0 {
				buf.WriteByte(',')
			}
			k, err := d.keyText(p.Key)
			if err != nil {
				return err
			}
			if err := writeJSONString(buf, k); err != nil {
				return err
			}
			buf.WriteByte(':')
			if err := d.writeJSON(buf, p.Value, active); err != nil {
				return err
			}
		}
		buf.WriteByte('}')
	}
	return nil
}

func writeJSONString(buf *bytes.Buffer, s string) error {
	tmp := &bytes.Buffer{}
	enc := json.NewEncoder(tmp)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(s); err != nil {
		return err
	}
	buf.Write(bytes.TrimSuffix(tmp.Bytes(), []byte{'\n'}))
	return nil
}

// AddValue adds the Go value v and returns the ID of the node holding
// it. Maps with string keys are added with sorted keys. json.Number
// values become ints when they are integral.
func (d *Document) AddValue(v any) (NodeID, error) {
	switch x := v.(type) {
	case nil:
		return d.AddNull(), nil
	case bool:
		return d.AddBool(x), nil
	case string:
		return d.AddString(x), nil
	case int:
		return d.AddInt(int64(x)), nil
	case int64:
		return d.AddInt(x), nil
	case float64:
		return d.AddFloat(x), nil
	case json.Number:
		if i, err := x.Int64(); err == nil {
			return d.AddInt(i), nil
		}
		f, err := x.Float64()
		if err != nil {
			return NoNode, fmt.Errorf("%w: number %s", ErrKind, x)
		}
		return d.AddFloat(f), nil
	case []any:
		items := make([]NodeID, len(x))
		for i, e := range x {
			id, err := d.AddValue(e)
			if err != nil {
				return NoNode, err
			}
			items[i] = id
		}
		return d.AddSequence(items...), nil
	case map[string]any:
		keys := make([]string, 0, len(x))
		for k := range x {
			keys = append(keys, k)
		}
		slices.Sort(keys)
		pairs := make([]Pair, len(keys))
		for i, k := range keys {
			id, err := d.AddValue(x[k])
			if err != nil {
				return NoNode, err
			}
			pairs[i] = Pair{Key: d.AddString(k), Value: id}
		}
		return d.AddMapping(pairs...), nil
	}
	return d.addReflect(reflect.ValueOf(v))
}

func (d *Document) addReflect(rv reflect.Value) (NodeID, error) {
	switch rv.Kind() {
	case reflect.Pointer, reflect.Interface:
		if rv.IsNil() {
			return d.AddNull(), nil
		}
		return d.addReflect(rv.Elem())
	case reflect.Bool:
		return d.AddBool(rv.Bool()), nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return d.AddInt(rv.Int()), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		u := rv.Uint()
		if u > math.MaxInt64 {
			return d.AddFloat(float64(u)), nil
		}
		return d.AddInt(int64(u)), nil
	case reflect.Float32, reflect.Float64:
		return d.AddFloat(rv.Float()), nil
	case reflect.String:
		return d.AddString(rv.String()), nil
	case reflect.Slice, reflect.Array:
		items := make([]NodeID, rv.Len())
		for i := range rv.Len() {
			id, err := d.addReflect(rv.Index(i))
			if err != nil {
				return NoNode, err
			}
			items[i] = id
		}
		return d.AddSequence(items...), nil
	case reflect.Map:
		if rv.Type().Key().Kind() != reflect.String {
			return NoNode, fmt.Errorf("%w: map key %s", ErrKey, rv.Type().Key())
		}
		keys := rv.MapKeys()
		slices.SortFunc(keys, func(a, b reflect.Value) int {
			switch {
			case a.String() < b.String():
				return -1
			case a.String() > b.String():
				return 1
			}
			return 0
		})
		pairs := make([]Pair, len(keys))
		for i, k := range keys {
			id, err := d.addReflect(rv.MapIndex(k))
			if err != nil {
				return NoNode, err
			}
			pairs[i] = Pair{Key: d.AddString(k.String()), Value: id}
		}
		return d.AddMapping(pairs...), nil
	}
	return NoNode, fmt.Errorf("%w: cannot convert %s", ErrKind, rv.Type())
}

// FromValue builds a document whose root holds v.
func FromValue(v any) (*Document, error) {
	d := NewDocument()
	id, err := d.AddValue(v)
	if err != nil {
		return nil, err
	}
	d.SetRoot(id)
	return d, nil
}
