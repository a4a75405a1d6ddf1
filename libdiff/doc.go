// Package libdiff computes line diffs of text and of documents.
//
// Documents are compared through their canonical YAML dumps, so two
// documents which differ only in style, comments or anchor names have an
// empty diff.
package libdiff
