package libdiff

import (
	"github.com/sturdio/sturdio/encode"
	"github.com/sturdio/sturdio/ir"
)

// Documents returns the line diff of the dumps of from and to, or "" when
// the documents are equal.
func Documents(from, to *ir.Document, opts ...encode.EncodeOption) (string, error) {
	if ir.DocEqual(from, to) {
		return "", nil
	}
	lines, err := DocumentLines(from, to, opts...)
	if err != nil {
		return "", err
	}
	if !Changed(lines) {
		return "", nil
	}
	return Format(lines, -1), nil
}

// DocumentLines is Lines over the dumps of from and to.
func DocumentLines(from, to *ir.Document, opts ...encode.EncodeOption) ([]Line, error) {
	a, err := encode.Dump(from, opts...)
	if err != nil {
		return nil, err
	}
	b, err := encode.Dump(to, opts...)
	if err != nil {
		return nil, err
	}
	return Lines(string(a), string(b)), nil
}
