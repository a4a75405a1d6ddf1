// Package parse parses YAML text into ir documents.
//
// # Usage
//
//	// Parse every document of an input
//	stream, err := parse.Parse(data)
//	if err != nil {
//	    return err
//	}
//
//	// Parse exactly one document
//	doc, err := parse.ParseString("a: [1, 2, 3]\n")
//
//	// Parse with YAML 1.1 resolution (yes/no booleans and so on)
//	doc, err := parse.ParseDocument(data, parse.WithSchema(ir.YAML11Schema))
//
//	// Parse one document at a time
//	dec := parse.NewDecoder(data)
//	for {
//	    doc, err := dec.Next()
//	    if err == io.EOF {
//	        break
//	    }
//	    ...
//	}
//
// Errors are *token.PosErr values carrying the line and column of the
// offending token. They wrap token.ErrSyntax for grammar violations and
// ErrAnchor for aliases whose anchor is not defined. No partial result is
// returned with an error.
//
// # Related Packages
//
//   - github.com/sturdio/sturdio/ir - document representation
//   - github.com/sturdio/sturdio/encode - encode documents to text
//   - github.com/sturdio/sturdio/token - tokenization
package parse
