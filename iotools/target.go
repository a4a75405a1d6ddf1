package iotools

import (
	"bytes"
	"fmt"
	"io"
	"os"
)

// Target is a resolved target. Exactly one of Path, File, Buffer, Data
// and Reader is set.
type Target struct {
	Name   string
	Path   string
	File   *os.File
	Buffer *bytes.Buffer
	Data   []byte
	Reader io.Reader
}

// Resolve normalizes target. A path is neither opened nor checked here;
// a missing or unreadable file is reported with ErrNotFound or
// ErrPermission by whatever opens it, such as ReadAll.
func Resolve(target any) (*Target, error) {
	switch x := target.(type) {
	case nil:
		return nil, fmt.Errorf("%w: nil", ErrTarget)
	case *Target:
		return x, nil
	case string:
		if x == "" {
			return nil, fmt.Errorf("%w: empty path", ErrTarget)
		}
		return &Target{Name: x, Path: x}, nil
	case []byte:
		return &Target{Name: "<bytes>", Data: x}, nil
	case *bytes.Buffer:
		return &Target{Name: "<buffer>", Buffer: x}, nil
	case *os.File:
		return &Target{Name: x.Name(), File: x}, nil
	case io.Reader:
		return &Target{Name: "<reader>", Reader: x}, nil
	}
	return nil, fmt.Errorf("%w: %T", ErrTarget, target)
}

// Exists reports whether the path target exists. Non path targets
// always exist.
func (t *Target) Exists() bool {
	if t.Path == "" {
		return true
	}
	_, err := os.Stat(t.Path)
	return err == nil
}

// ReadAll returns the content of target and its name.
func ReadAll(target any) ([]byte, string, error) {
	t, err := Resolve(target)
	if err != nil {
		return nil, "", err
	}
	data, err := t.ReadAll()
	return data, t.Name, err
}

func (t *Target) ReadAll() ([]byte, error) {
	switch {
	case t.Path != "":
		data, err := os.ReadFile(t.Path)
		if err != nil {
			return nil, Classify(err)
		}
		c := CompressionFor(t.Path)
		if c == NoCompression {
			return data, nil
		}
		return Decompress(data, c)
	case t.File != nil:
		return io.ReadAll(t.File)
	case t.Buffer != nil:
		return t.Buffer.Bytes(), nil
	case t.Reader != nil:
		return io.ReadAll(t.Reader)
	}
	return t.Data, nil
}
