// Package eval expands expressions embedded in the string scalars of a
// document.
//
// An expression is written $[expr] and is evaluated with
// github.com/expr-lang/expr against an Env. Inside an expression \]
// stands for ] and \\ for \; brackets which balance, as in $[xs[0]], need
// no escaping. A $[ without its closing ] is kept as text.
//
// A string which is exactly one expression is replaced by the typed
// result, which may be a collection. Otherwise each expression is
// replaced by the text of its result.
//
// Expressions may call
//
//	getenv(name)    the value of an environment variable
//	getpath(path)   the value at path in the input document
//	exists(path)    whether path addresses a node of the input document
//	whereami()      the path of the node being expanded
package eval
