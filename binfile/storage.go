package binfile

import (
	"bytes"
	"errors"
	"io"
	"os"
)

// storage is what a File reads and writes through. Offsets and lengths
// are checked by File before they get here.
type storage interface {
	ReadAt(p []byte, off int64) (int, error)
	WriteAt(p []byte, off int64) (int, error)
	Flush() error
	Close() error
}

type fileStorage struct {
	f     *os.File
	owned bool
	dirty bool
}

func (s *fileStorage) ReadAt(p []byte, off int64) (int, error) {
	n, err := s.f.ReadAt(p, off)
	if n == len(p) && errors.Is(err, io.EOF) {
		err = nil
	}
	return n, err
}

func (s *fileStorage) WriteAt(p []byte, off int64) (int, error) {
	s.dirty = true
	return s.f.WriteAt(p, off)
}

func (s *fileStorage) Flush() error {
	if !s.dirty {
		return nil
	}
	s.dirty = false
	return s.f.Sync()
}

func (s *fileStorage) Close() error {
	if !s.owned {
		return nil
	}
	return s.f.Close()
}

// memStorage holds the whole content. When sink is set, flushing
// replaces the content of sink.
type memStorage struct {
	data []byte
	sink *bytes.Buffer
}

func (s *memStorage) ReadAt(p []byte, off int64) (int, error) {
	n := copy(p, s.data[off:])
	if n < len(p) {
		return n, io.EOF
	}
	return n, nil
}

func (s *memStorage) WriteAt(p []byte, off int64) (int, error) {
	end := off + int64(len(p))
	if end > int64(len(s.data)) {
		s.data = append(s.data, make([]byte, end-int64(len(s.data)))...)
	}
	return copy(s.data[off:], p), nil
}

func (s *memStorage) Flush() error {
	if s.sink == nil {
		return nil
	}
	s.sink.Reset()
	_, err := s.sink.Write(s.data)
	return err
}

func (s *memStorage) Close() error {
	return nil
}
