// Package binfile reads and writes typed fields at a cursor over a file
// or an in-memory byte stream.
//
// A File is opened in a Mode and with a byte order that stays fixed
// until it is closed. Every read and write either succeeds completely
// and advances the cursor, or fails and leaves the cursor where it was.
//
// # Usage
//
//	err := binfile.Do("samples.bin", binfile.ReadOnly, func(f *binfile.File) error {
//	    n, err := binfile.Read[uint32](f)
//	    if err != nil {
//	        return err
//	    }
//	    iq, err := binfile.ReadComplexSlice[int16](f, int(n))
//	    ...
//	}, binfile.BigEndian())
//
// Targets are resolved by iotools.Resolve: a path, a []byte, a
// *bytes.Buffer, an *os.File or an io.Reader. Paths ending in .zst or
// .lz4 are decompressed and can only be read.
//
// A File does no locking; callers sharing one between goroutines must
// serialize access.
//
// # Related Packages
//
//   - github.com/sturdio/sturdio/iotools - Target resolution
package binfile
