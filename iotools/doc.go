// Package iotools resolves the targets accepted by sturdio entry points
// and holds small file system helpers.
//
// A target is a file path, a byte slice, a *bytes.Buffer, an *os.File or
// any io.Reader. [Resolve] normalizes it into a [Target]; [ReadAll]
// returns its content, decompressing paths ending in .zst or .lz4.
package iotools
