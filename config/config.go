package config

import (
	"bytes"
	"fmt"

	"github.com/goccy/go-yaml"

	"github.com/sturdio/sturdio/encode"
	"github.com/sturdio/sturdio/iotools"
	"github.com/sturdio/sturdio/ir"
	"github.com/sturdio/sturdio/parse"
)

// Parser holds the parsed document of one configuration source.
type Parser struct {
	target *iotools.Target
	opts   []parse.ParseOption
	data   []byte
	doc    *ir.Document
}

// New parses target, which is anything accepted by iotools.Resolve.
// The source must hold at most one document.
func New(target any, opts ...parse.ParseOption) (*Parser, error) {
	t, err := iotools.Resolve(target)
	if err != nil {
		return nil, err
	}
	p := &Parser{target: t, opts: opts}
	if err := p.Parse(); err != nil {
		return nil, err
	}
	return p, nil
}

// NewAt parses the file name in directory dir.
func NewAt(dir, name string, opts ...parse.ParseOption) (*Parser, error) {
	return New(iotools.JoinPath(dir, name), opts...)
}

// Parse reads the source again and replaces the document. Sources other
// than paths are read once; Parse then reparses the saved content.
func (p *Parser) Parse() error {
	data := p.data
	if data == nil || p.target.Path != "" {
		d, err := p.target.ReadAll()
		if err != nil {
			return err
		}
		data = d
	}
	opts := append([]parse.ParseOption{parse.WithFilename(p.target.Name)}, p.opts...)
	doc, err := parse.ParseDocument(data, opts...)
	if err != nil {
		return err
	}
	p.data = data
	p.doc = doc
	return nil
}

func (p *Parser) Name() string {
	return p.target.Name
}

// Document returns the parsed document. It is frozen.
func (p *Parser) Document() *ir.Document {
	return p.doc
}

// Exists reports whether path addresses a node. Paths start at the root:
// a nested key is found by its full path, such as rx.center, not by its
// name alone.
func (p *Parser) Exists(path string) bool {
	return p.doc.Exists(path)
}

// Value returns the node at path as plain Go values, see ir.ToAny.
func (p *Parser) Value(path string) (any, error) {
	id, err := p.doc.Lookup(path)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", p.Name(), err)
	}
	return p.doc.ToAny(id)
}

// Decode decodes the whole document into v.
func (p *Parser) Decode(v any) error {
	return p.decode(p.doc.Root, "$", v)
}

func (p *Parser) decode(id ir.NodeID, path string, v any) error {
	buf := bytes.NewBuffer(nil)
	if err := encode.EncodeNode(p.doc, id, buf); err != nil {
		return fmt.Errorf("%w: encoding %s: %w", ErrDecode, path, err)
	}
	if err := yaml.Unmarshal(buf.Bytes(), v); err != nil {
		return fmt.Errorf("%w: %s of %s: %w", ErrDecode, path, p.Name(), err)
	}
	return nil
}

// Get decodes the node at path into a T. A missing path gives an error
// wrapping ErrNotFound.
func Get[T any](p *Parser, path string) (T, error) {
	var res T
	id, err := p.doc.Lookup(path)
	if err != nil {
		return res, fmt.Errorf("%s: %w", p.Name(), err)
	}
	if err := p.decode(id, path, &res); err != nil {
		var zero T
		return zero, err
	}
	return res, nil
}

// GetOr is Get returning def when path is missing or cannot be decoded.
func GetOr[T any](p *Parser, path string, def T) T {
	res, err := Get[T](p, path)
	if err != nil {
		return def
	}
	return res
}
