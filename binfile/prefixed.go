package binfile

import (
	"encoding/binary"
	"fmt"
	"math"
	"unicode/utf8"
)

// VarintPrefix selects an unsigned varint length prefix in place of a
// fixed width one.
const VarintPrefix = -1

// readPrefix reads a length prefix at the cursor without moving it,
// returning the length and the size of the prefix.
func (f *File) readPrefix(width int) (uint64, int64, error) {
	switch width {
	case 1, 2, 4, 8:
		buf, err := f.peek(f.off, int64(width))
		if err != nil {
			return 0, 0, err
		}
		switch width {
		case 1:
			return uint64(buf[0]), 1, nil
		case 2:
			return uint64(f.order.Uint16(buf)), 2, nil
		case 4:
			return uint64(f.order.Uint32(buf)), 4, nil
		}
		return f.order.Uint64(buf), 8, nil
	case VarintPrefix:
		if err := f.check(false); err != nil {
			return 0, 0, err
		}
		n := min(int64(binary.MaxVarintLen64), f.size-f.off)
		buf, err := f.peek(f.off, n)
		if err != nil {
			return 0, 0, err
		}
		v, k := binary.Uvarint(buf)
		switch {
		case k == 0:
			return 0, 0, fmt.Errorf("%w: truncated varint at offset %d", ErrEndOfStream, f.off)
		case k < 0:
			return 0, 0, fmt.Errorf("%w: varint overflow at offset %d", ErrDecoding, f.off)
		}
		return v, int64(k), nil
	}
	return 0, 0, fmt.Errorf("%w: %d", ErrWidth, width)
}

func (f *File) appendPrefix(dst []byte, width int, n int) ([]byte, error) {
	var limit uint64
	switch width {
	case 1:
		limit = math.MaxUint8
	case 2:
		limit = math.MaxUint16
	case 4:
		limit = math.MaxUint32
	case 8, VarintPrefix:
		limit = math.MaxUint64
	default:
		return nil, fmt.Errorf("%w: %d", ErrWidth, width)
	}
	if uint64(n) > limit {
		return nil, fmt.Errorf("%w: length %d does not fit a %d byte prefix", ErrCapacity, n, width)
	}
	var tmp [8]byte
	switch width {
	case 1:
		return append(dst, byte(n)), nil
	case 2:
		f.order.PutUint16(tmp[:], uint16(n))
	case 4:
		f.order.PutUint32(tmp[:], uint32(n))
	case 8:
		f.order.PutUint64(tmp[:], uint64(n))
	default:
		return binary.AppendUvarint(dst, uint64(n)), nil
	}
	return append(dst, tmp[:width]...), nil
}

// ReadPrefixedBytes reads a length of width bytes, or a varint, and
// then that many bytes.
func (f *File) ReadPrefixedBytes(width int) ([]byte, error) {
	n, k, err := f.readPrefix(width)
	if err != nil {
		return nil, err
	}
	if n > uint64(f.size-f.off-k) {
		return nil, fmt.Errorf("%w: prefixed length %d at offset %d, %d available", ErrEndOfStream, n, f.off, f.size-f.off-k)
	}
	buf, err := f.peek(f.off+k, int64(n))
	if err != nil {
		return nil, err
	}
	f.off += k + int64(n)
	return buf, nil
}

// ReadPrefixedString is ReadPrefixedBytes for UTF-8 text. Invalid text
// fails with ErrDecoding and leaves the cursor in place.
func (f *File) ReadPrefixedString(width int) (string, error) {
	off := f.off
	buf, err := f.ReadPrefixedBytes(width)
	if err != nil {
		return "", err
	}
	if !utf8.Valid(buf) {
		f.off = off
		return "", fmt.Errorf("%w: invalid UTF-8 in string at offset %d", ErrDecoding, off)
	}
	return string(buf), nil
}

func (f *File) WritePrefixedBytes(width int, p []byte) error {
	buf, err := f.appendPrefix(make([]byte, 0, len(p)+binary.MaxVarintLen64), width, len(p))
	if err != nil {
		return err
	}
	return f.write(append(buf, p...))
}

func (f *File) WritePrefixedString(width int, s string) error {
	if !utf8.ValidString(s) {
		return fmt.Errorf("%w: invalid UTF-8 in string", ErrDecoding)
	}
	return f.WritePrefixedBytes(width, []byte(s))
}
