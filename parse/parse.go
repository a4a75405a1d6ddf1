package parse

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/sturdio/sturdio/iotools"
	"github.com/sturdio/sturdio/ir"
)

// Parse parses every document of data.
func Parse(data []byte, opts ...ParseOption) (*ir.Stream, error) {
	dec := NewDecoder(data, opts...)
	res := &ir.Stream{}
	for {
		doc, err := dec.Next()
		if errors.Is(err, io.EOF) {
			return res, nil
		}
		if err != nil {
			return nil, err
		}
		res.Docs = append(res.Docs, doc)
	}
}

// ParseDocument parses data which must hold at most one document. An
// input without documents gives a document whose root is null.
func ParseDocument(data []byte, opts ...ParseOption) (*ir.Document, error) {
	dec := NewDecoder(data, opts...)
	doc, err := dec.Next()
	if errors.Is(err, io.EOF) {
		doc = ir.NewDocument()
		doc.SetRoot(doc.AddNull())
		doc.Freeze()
		return doc, nil
	}
	if err != nil {
		return nil, err
	}
	_, err = dec.Next()
	switch {
	case errors.Is(err, io.EOF):
		return doc, nil
	case err != nil:
		return nil, err
	}
	pOpts := newParseOpts(opts)
	if pOpts.filename != "" {
		return nil, fmt.Errorf("%s: %w", pOpts.filename, ErrMultipleDocuments)
	}
	return nil, ErrMultipleDocuments
}

func ParseString(s string, opts ...ParseOption) (*ir.Document, error) {
	return ParseDocument([]byte(s), opts...)
}

// ParseReader reads r to the end and parses every document.
func ParseReader(r io.Reader, opts ...ParseOption) (*ir.Stream, error) {
	buf := bytes.NewBuffer(nil)
	if _, err := io.Copy(buf, r); err != nil {
		return nil, err
	}
	return Parse(buf.Bytes(), opts...)
}

// ParseFile parses every document of target, which is anything accepted
// by iotools.Resolve. Compressed files are decompressed. The target name
// prefixes errors unless WithFilename is given.
func ParseFile(target any, opts ...ParseOption) (*ir.Stream, error) {
	data, name, err := iotools.ReadAll(target)
	if err != nil {
		return nil, err
	}
	return Parse(data, append([]ParseOption{WithFilename(name)}, opts...)...)
}
