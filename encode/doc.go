// Package encode writes documents as YAML or JSON text.
//
// Output is deterministic: the same document always encodes to the same
// bytes, and parsing the output gives a document equal to the input.
// Collections with few short scalar entries are written in flow style,
// everything else in block style.
//
// # Usage
//
//	data, err := encode.Dump(doc)
//
//	// Encode with options
//	err := encode.Encode(doc, os.Stdout,
//	    encode.Indent(4),
//	    encode.FlowThreshold(0),
//	    encode.EncodeColors(encode.NewColors()))
//
//	// Encode to JSON
//	err := encode.Encode(doc, w, encode.EncodeFormat(format.JSONFormat))
//
// # Related Packages
//
//   - github.com/sturdio/sturdio/ir - Document representation
//   - github.com/sturdio/sturdio/parse - Parse text to documents
package encode
