package binfile

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/sturdio/sturdio/debug"
	"github.com/sturdio/sturdio/iotools"
)

// File is an open binary resource with a cursor.
type File struct {
	name   string
	mode   Mode
	order  binary.ByteOrder
	log    *slog.Logger
	st     storage
	mem    *memStorage
	off    int64
	size   int64
	closed bool
}

// Open opens target in mode. An *os.File target is used as is and is
// not closed by Close.
func Open(target any, mode Mode, opts ...Option) (*File, error) {
	o := newOptions(opts)
	t, err := iotools.Resolve(target)
	if err != nil {
		return nil, err
	}
	f := &File{
		name:  t.Name,
		mode:  mode,
		order: o.order,
		log:   o.logger,
	}
	if err := f.open(t); err != nil {
		return nil, fmt.Errorf("open %s: %w", t.Name, err)
	}
	if mode == Append {
		f.off = f.size
	}
	f.log.Debug("binfile open", "name", f.name, "mode", mode.String(), "size", f.size)
	return f, nil
}

func (f *File) open(t *iotools.Target) error {
	switch {
	case t.Path != "" && iotools.CompressionFor(t.Path) != iotools.NoCompression:
		if f.mode.Writable() {
			return fmt.Errorf("%w: compressed files are read only", ErrMode)
		}
		data, err := t.ReadAll()
		if err != nil {
			return err
		}
		f.setMem(&memStorage{data: data})
	case t.Path != "":
		osf, err := os.OpenFile(t.Path, f.mode.osFlags(), 0o644)
		if err != nil {
			return iotools.Classify(err)
		}
		return f.setFile(&fileStorage{f: osf, owned: true})
	case t.File != nil:
		if f.mode.truncates() {
			if err := t.File.Truncate(0); err != nil {
				return iotools.Classify(err)
			}
		}
		return f.setFile(&fileStorage{f: t.File})
	case t.Buffer != nil:
		m := &memStorage{sink: t.Buffer}
		if !f.mode.truncates() {
			m.data = bytes.Clone(t.Buffer.Bytes())
		}
		f.setMem(m)
	case t.Reader != nil:
		data, err := io.ReadAll(t.Reader)
		if err != nil {
			return err
		}
		if f.mode.truncates() {
			data = nil
		}
		f.setMem(&memStorage{data: data})
	default:
		m := &memStorage{}
		if !f.mode.truncates() {
			m.data = bytes.Clone(t.Data)
		}
		f.setMem(m)
	}
	return nil
}

func (f *File) setMem(m *memStorage) {
	f.st = m
	f.mem = m
	f.size = int64(len(m.data))
}

func (f *File) setFile(s *fileStorage) error {
	fi, err := s.f.Stat()
	if err != nil {
		return errors.Join(err, s.Close())
	}
	f.st = s
	f.size = fi.Size()
	return nil
}

// Do opens target, calls fn and closes the file on every path out of
// fn. The error of fn and the error of closing are joined.
func Do(target any, mode Mode, fn func(*File) error, opts ...Option) (err error) {
	f, err := Open(target, mode, opts...)
	if err != nil {
		return err
	}
	defer func() {
		err = errors.Join(err, f.Close())
	}()
	return fn(f)
}

func (f *File) Name() string {
	return f.name
}

func (f *File) Mode() Mode {
	return f.mode
}

func (f *File) ByteOrder() binary.ByteOrder {
	return f.order
}

// Bytes returns the content of a memory backed file, nil for files on
// disk. The slice is valid until the next write.
func (f *File) Bytes() []byte {
	if f.mem == nil {
		return nil
	}
	return f.mem.data[:f.size]
}

// Flush writes buffered content through: to disk, or to the
// *bytes.Buffer the file was opened on.
func (f *File) Flush() error {
	if f.closed {
		return ErrClosed
	}
	if !f.mode.Writable() {
		return nil
	}
	return f.st.Flush()
}

// Close flushes and releases the file. Every later operation fails with
// ErrClosed.
func (f *File) Close() error {
	if f.closed {
		return ErrClosed
	}
	var err error
	if f.mode.Writable() {
		err = f.st.Flush()
	}
	f.closed = true
	err = errors.Join(err, f.st.Close())
	f.log.Debug("binfile close", "name", f.name, "size", f.size, "error", err)
	return err
}

func (f *File) check(write bool) error {
	if f.closed {
		return ErrClosed
	}
	if write && !f.mode.Writable() {
		return fmt.Errorf("%w: write in mode %s", ErrMode, f.mode)
	}
	if !write && !f.mode.Readable() {
		return fmt.Errorf("%w: read in mode %s", ErrMode, f.mode)
	}
	return nil
}

// peek reads n bytes at off without moving the cursor.
func (f *File) peek(off, n int64) ([]byte, error) {
	if err := f.check(false); err != nil {
		return nil, err
	}
	if n < 0 {
		return nil, fmt.Errorf("%w: negative length %d", ErrCapacity, n)
	}
	if off+n > f.size {
		return nil, fmt.Errorf("%w: %d bytes at offset %d, %d available", ErrEndOfStream, n, off, f.size-off)
	}
	buf := make([]byte, n)
	if _, err := f.st.ReadAt(buf, off); err != nil {
		return nil, err
	}
	if debug.BinFile() {
		debug.Logf("binfile %s: read %d bytes at %d\n", f.name, n, off)
	}
	return buf, nil
}

// read reads n bytes at the cursor and advances it.
func (f *File) read(n int64) ([]byte, error) {
	buf, err := f.peek(f.off, n)
	if err != nil {
		return nil, err
	}
	f.off += n
	return buf, nil
}

// write writes p at the cursor, or at the end in append modes, and
// moves the cursor past it.
func (f *File) write(p []byte) error {
	if err := f.check(true); err != nil {
		return err
	}
	off := f.off
	if f.mode.Appends() {
		off = f.size
	}
	end := off + int64(len(p))
	if end > f.size && !f.mode.Growable() {
		return fmt.Errorf("%w: %d bytes at offset %d, length %d", ErrCapacity, len(p), off, f.size)
	}
	if _, err := f.st.WriteAt(p, off); err != nil {
		return err
	}
	if debug.BinFile() {
		debug.Logf("binfile %s: wrote %d bytes at %d\n", f.name, len(p), off)
	}
	f.size = max(f.size, end)
	f.off = end
	return nil
}

// Seek sets the cursor. The result must lie within [0, Len()].
func (f *File) Seek(offset int64, whence int) (int64, error) {
	if f.closed {
		return 0, ErrClosed
	}
	var base int64
	switch whence {
	case io.SeekStart:
	case io.SeekCurrent:
		base = f.off
	case io.SeekEnd:
		base = f.size
	default:
		return f.off, fmt.Errorf("%w: whence %d", ErrInvalidOffset, whence)
	}
	off := base + offset
	if off < 0 || off > f.size {
		return f.off, fmt.Errorf("%w: %d not in [0, %d]", ErrInvalidOffset, off, f.size)
	}
	f.off = off
	return off, nil
}

func (f *File) Tell() (int64, error) {
	if f.closed {
		return 0, ErrClosed
	}
	return f.off, nil
}

// EOF reports whether the cursor is at the end.
func (f *File) EOF() (bool, error) {
	if f.closed {
		return false, ErrClosed
	}
	return f.off >= f.size, nil
}

func (f *File) Len() (int64, error) {
	if f.closed {
		return 0, ErrClosed
	}
	return f.size, nil
}

// Read implements io.Reader: it reads what is available, returning
// io.EOF at the end.
func (f *File) Read(p []byte) (int, error) {
	if err := f.check(false); err != nil {
		return 0, err
	}
	if f.off >= f.size {
		if len(p) == 0 {
			return 0, nil
		}
		return 0, io.EOF
	}
	n := min(int64(len(p)), f.size-f.off)
	buf, err := f.read(n)
	if err != nil {
		return 0, err
	}
	return copy(p, buf), nil
}

// Write implements io.Writer. It writes all of p or nothing.
func (f *File) Write(p []byte) (int, error) {
	if err := f.write(p); err != nil {
		return 0, err
	}
	return len(p), nil
}

var (
	_ io.ReadWriteSeeker = (*File)(nil)
	_ io.Closer          = (*File)(nil)
)
