// Package token provides tokenization of YAML text.
//
// A [Scanner] turns a byte slice into a stream of [Token]s: structural
// tokens (block and flow collection boundaries, keys, values, entries,
// document markers) and content tokens (scalars, anchors, aliases,
// tags). Block structure is recovered from indentation while scanning,
// so the token stream is context free and can be consumed by a
// recursive descent parser.
//
// [Tokenize] is a convenience that collects every token of an input.
//
// Errors carry their position as a [PosErr] wrapping [ErrSyntax].
package token
