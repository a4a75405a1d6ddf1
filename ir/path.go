package ir

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"
)

// Path is a parsed node path: a chain of mapping fields and sequence
// indices.
type Path struct {
	Index *int
	Field *string
	Next  *Path
}

func (p *Path) String() string {
	buf := bytes.NewBuffer([]byte{'$'})
	for x := p; x != nil; x = x.Next {
		if x.Field != nil {
			f := *x.Field
			if f != "" && strings.IndexAny(f, "'.[]$ ") == -1 {
				buf.WriteString("." + f)
			} else {
				buf.WriteString(".'" + strings.ReplaceAll(f, "'", "\\'") + "'")
			}
			continue
		}
		if x.Index != nil {
			fmt.Fprintf(buf, "[%d]", *x.Index)
		}
	}
	return buf.String()
}

// ParsePath parses paths such as a.b[0], $.a.b[0] and .'x.y'[1]. The
// leading '$' is optional; an empty path or "$" is the root.
func ParsePath(p string) (*Path, error) {
	p = strings.TrimPrefix(p, "$")
	root := &Path{}
	if len(p) == 0 {
		return root, nil
	}
	if p[0] != '.' && p[0] != '[' {
		p = "." + p
	}
	if err := parseFrag(p, root); err != nil {
		return nil, fmt.Errorf("%w %q: %w", ErrPath, p, err)
	}
	return root, nil
}

func parseFrag(frag string, parent *Path) error {
	if len(frag) == 0 {
		return nil
	}
	var rest string
	switch frag[0] {
	case '.':
		field, r, err := parseField(frag[1:])
		if err != nil {
			return err
		}
		parent.Field = &field
		rest = r
	case '[':
		i := strings.IndexByte(frag[1:], ']')
		if i == -1 {
			return fmt.Errorf("expected '[' <index> ']'")
		}
		u64, err := strconv.ParseUint(frag[1:i+1], 10, 31)
		if err != nil {
			return fmt.Errorf("bad index %q", frag[1:i+1])
		}
		index := int(u64)
		parent.Index = &index
		rest = frag[i+2:]
	default:
		return fmt.Errorf("expected '.' or '['")
	}
	if len(rest) == 0 {
		return nil
	}
	next := &Path{}
	if err := parseFrag(rest, next); err != nil {
		return err
	}
	parent.Next = next
	return nil
}

func parseField(frag string) (field, rest string, err error) {
	if len(frag) == 0 {
		return "", "", fmt.Errorf("expected field at end of string")
	}
	if frag[0] != '\'' && frag[0] != '"' {
		i := strings.IndexAny(frag, ".[")
		if i == 0 {
			return "", "", fmt.Errorf("empty field")
		}
		if i == -1 {
			return frag, "", nil
		}
		return frag[:i], frag[i:], nil
	}
	q := frag[0]
	escaped := false
	res := make([]byte, 0, len(frag))
	for i := 1; i < len(frag); i++ {
		c := frag[i]
		switch {
		case c == '\\' && !escaped:
			escaped = true
		case c == q && !escaped:
			return string(res), frag[i+1:], nil
		default:
			escaped = false
			res = append(res, c)
		}
	}
	return "", "", fmt.Errorf("end of string scanning for %q", q)
}

// Lookup returns the node at path, following aliases on the way. The
// returned node is resolved: it is never an alias.
func (d *Document) Lookup(path string) (NodeID, error) {
	p, err := ParsePath(path)
	if err != nil {
		return NoNode, err
	}
	return d.LookupPath(p)
}

func (d *Document) LookupPath(p *Path) (NodeID, error) {
	if d.Root == NoNode {
		return NoNode, fmt.Errorf("%w: empty document", ErrNotFound)
	}
	id, err := d.Resolve(d.Root)
	if err != nil {
		return NoNode, err
	}
	at := &Path{}
	tail := at
	for x := p; x != nil; x = x.Next {
		n := d.Node(id)
		switch {
		case x.Field != nil:
			if n.Kind != MappingKind {
				return NoNode, fmt.Errorf("%w: %s is a %s, not a mapping", ErrKind, at, n.Kind)
			}
			v, ok := d.Get(id, *x.Field)
			if !ok {
				return NoNode, fmt.Errorf("%w: %s has no field %q", ErrNotFound, at, *x.Field)
			}
			id = v
		case x.Index != nil:
			if n.Kind != SequenceKind {
				return NoNode, fmt.Errorf("%w: %s is a %s, not a sequence", ErrKind, at, n.Kind)
			}
			if *x.Index >= len(n.Items) {
				return NoNode, fmt.Errorf("%w: %s has no index %d", ErrNotFound, at, *x.Index)
			}
			id = n.Items[*x.Index]
		default:
			continue
		}
		if id, err = d.Resolve(id); err != nil {
			return NoNode, err
		}
		tail.Next = &Path{Field: x.Field, Index: x.Index}
		tail = tail.Next
	}
	return id, nil
}

// Exists reports whether path addresses a node.
func (d *Document) Exists(path string) bool {
	_, err := d.Lookup(path)
	return err == nil
}
