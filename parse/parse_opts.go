package parse

import (
	"github.com/sturdio/sturdio/ir"
)

const defaultMaxDepth = 1000

type parseOpts struct {
	schema   *ir.Schema
	filename string
	maxDepth int
}

func newParseOpts(opts []ParseOption) *parseOpts {
	res := &parseOpts{schema: ir.CoreSchema, maxDepth: defaultMaxDepth}
	for _, f := range opts {
		f(res)
	}
	return res
}

type ParseOption func(*parseOpts)

// WithSchema sets how plain scalars are resolved. The default is
// ir.CoreSchema.
func WithSchema(s *ir.Schema) ParseOption {
	return func(o *parseOpts) { o.schema = s }
}

func ParseYAML11() ParseOption {
	return WithSchema(ir.YAML11Schema)
}

// WithFilename prefixes errors with name.
func WithFilename(name string) ParseOption {
	return func(o *parseOpts) { o.filename = name }
}

// MaxDepth bounds collection nesting.
func MaxDepth(n int) ParseOption {
	return func(o *parseOpts) { o.maxDepth = n }
}
