package eval

import (
	"os"

	"github.com/sturdio/sturdio/ir"

	"github.com/expr-lang/expr"
)

func exprOpts(doc *ir.Document, at string) []expr.Option {
	return []expr.Option{
		expr.Function("whereami", func(params ...any) (any, error) {
			return at, nil
		},
			new(func() string)),
		expr.Function("getpath", func(params ...any) (any, error) {
			path := params[0].(string)
			id, err := doc.Lookup(path)
			if err != nil {
				return nil, err
			}
			return doc.ToAny(id)
		},
			new(func(string) any)),
		expr.Function("exists", func(params ...any) (any, error) {
			return doc.Exists(params[0].(string)), nil
		},
			new(func(string) bool)),
		expr.Function("getenv", func(params ...any) (any, error) {
			return os.Getenv(params[0].(string)), nil
		},
			new(func(string) string)),
	}
}
