package parse

import (
	"fmt"
	"io"

	"github.com/sturdio/sturdio/ir"
)

// Decoder parses the documents of an input one at a time.
type Decoder struct {
	p   *parser
	err error
}

func NewDecoder(data []byte, opts ...ParseOption) *Decoder {
	return &Decoder{p: newParser(data, newParseOpts(opts))}
}

// Next returns the next document, or io.EOF after the last one. After an
// error, Next keeps returning that error.
func (d *Decoder) Next() (*ir.Document, error) {
	if d.err != nil {
		return nil, d.err
	}
	doc, err := d.p.document()
	if err != nil {
		d.p.setState(StateError)
		if d.p.opts.filename != "" {
			err = fmt.Errorf("%s: %w", d.p.opts.filename, err)
		}
		d.err = err
		return nil, err
	}
	if doc == nil {
		d.err = io.EOF
		return nil, io.EOF
	}
	return doc, nil
}

// State reports where the decoder is in the document grammar.
func (d *Decoder) State() State {
	return d.p.state
}
