// Package format names the textual output formats documents can be
// encoded to.
//
// # Usage
//
//	f, err := format.ParseFormat("json")
//	if err != nil {
//	    return err
//	}
//	err = encode.Encode(doc, w, encode.EncodeFormat(f))
//
// # Related Packages
//
//   - github.com/sturdio/sturdio/encode - Encode documents to text
package format
