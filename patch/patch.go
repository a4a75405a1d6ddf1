// Package patch applies JSON patches (RFC 6902) and JSON merge patches
// (RFC 7386) to documents.
//
// A document is patched through its JSON view: aliases are expanded and
// tags are dropped. Mappings of the result have the key order chosen by
// the JSON library, which sorts keys.
package patch

import (
	"fmt"

	"github.com/sturdio/sturdio/debug"
	"github.com/sturdio/sturdio/ir"
	"github.com/sturdio/sturdio/parse"

	jsonpatch "github.com/evanphx/json-patch"
)

// Apply applies the RFC 6902 operations in ops, a JSON array, to doc.
// doc is not modified.
func Apply(doc *ir.Document, ops []byte) (*ir.Document, error) {
	p, err := jsonpatch.DecodePatch(ops)
	if err != nil {
		return nil, fmt.Errorf("%w: decoding operations: %w", ErrPatch, err)
	}
	d, err := jsonView(doc)
	if err != nil {
		return nil, err
	}
	out, err := p.Apply(d)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrPatch, err)
	}
	if debug.Patch() {
		debug.Logf("json patch %s gave %s\n", ops, out)
	}
	return fromJSON(out)
}

// ApplyDocument is Apply with operations held in a document, such as a
// YAML patch file.
func ApplyDocument(doc, ops *ir.Document) (*ir.Document, error) {
	d, err := jsonView(ops)
	if err != nil {
		return nil, err
	}
	return Apply(doc, d)
}

// Merge applies the RFC 7386 merge patch m to doc. A null in m removes
// the corresponding field. doc is not modified.
func Merge(doc *ir.Document, m []byte) (*ir.Document, error) {
	d, err := jsonView(doc)
	if err != nil {
		return nil, err
	}
	out, err := jsonpatch.MergePatch(d, m)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrPatch, err)
	}
	if debug.Patch() {
		debug.Logf("merge patch %s gave %s\n", m, out)
	}
	return fromJSON(out)
}

func MergeDocument(doc, m *ir.Document) (*ir.Document, error) {
	d, err := jsonView(m)
	if err != nil {
		return nil, err
	}
	return Merge(doc, d)
}

// Diff returns the merge patch which turns from into to.
func Diff(from, to *ir.Document) (*ir.Document, error) {
	a, err := jsonView(from)
	if err != nil {
		return nil, err
	}
	b, err := jsonView(to)
	if err != nil {
		return nil, err
	}
	out, err := jsonpatch.CreateMergePatch(a, b)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrPatch, err)
	}
	return fromJSON(out)
}

func jsonView(doc *ir.Document) ([]byte, error) {
	if doc == nil || doc.Root == ir.NoNode {
		return nil, ErrEmpty
	}
	d, err := doc.MarshalJSON()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrPatch, err)
	}
	return d, nil
}

func fromJSON(d []byte) (*ir.Document, error) {
	res, err := parse.ParseDocument(d)
	if err != nil {
		return nil, fmt.Errorf("%w: reading result: %w", ErrPatch, err)
	}
	return res, nil
}
