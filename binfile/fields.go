package binfile

import (
	"encoding/binary"
	"fmt"
	"io"
)

// Fixed is the set of fixed width field types.
type Fixed interface {
	~int8 | ~uint8 | ~int16 | ~uint16 | ~int32 | ~uint32 | ~int64 | ~uint64 | ~float32 | ~float64
}

func sizeOf[T Fixed]() int {
	var v T
	return binary.Size(v)
}

// Read reads one T at the cursor.
func Read[T Fixed](f *File) (T, error) {
	var v T
	buf, err := f.read(int64(sizeOf[T]()))
	if err != nil {
		return v, err
	}
	if _, err := binary.Decode(buf, f.order, &v); err != nil {
		return v, fmt.Errorf("%w: %w", ErrDecoding, err)
	}
	return v, nil
}

// Write writes v at the cursor.
func Write[T Fixed](f *File, v T) error {
	buf, err := binary.Append(nil, f.order, v)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrDecoding, err)
	}
	return f.write(buf)
}

// ReadSlice reads n consecutive T values.
func ReadSlice[T Fixed](f *File, n int) ([]T, error) {
	if n < 0 {
		return nil, fmt.Errorf("%w: negative count %d", ErrCapacity, n)
	}
	buf, err := f.peek(f.off, int64(n)*int64(sizeOf[T]()))
	if err != nil {
		return nil, err
	}
	res := make([]T, n)
	if _, err := binary.Decode(buf, f.order, res); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDecoding, err)
	}
	f.off += int64(len(buf))
	return res, nil
}

func WriteSlice[T Fixed](f *File, vs []T) error {
	buf, err := binary.Append(nil, f.order, vs)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrDecoding, err)
	}
	return f.write(buf)
}

// ReadComplex reads one complex sample: a T holding the in-phase part
// followed by a T holding the quadrature part.
func ReadComplex[T Fixed](f *File) (complex128, error) {
	buf, err := f.peek(f.off, 2*int64(sizeOf[T]()))
	if err != nil {
		return 0, err
	}
	var iq [2]T
	if _, err := binary.Decode(buf, f.order, iq[:]); err != nil {
		return 0, fmt.Errorf("%w: %w", ErrDecoding, err)
	}
	f.off += int64(len(buf))
	return complex(float64(iq[0]), float64(iq[1])), nil
}

func ReadComplexSlice[T Fixed](f *File, n int) ([]complex128, error) {
	parts, err := ReadSlice[T](f, 2*n)
	if err != nil {
		return nil, err
	}
	res := make([]complex128, n)
	for i := range res {
		res[i] = complex(float64(parts[2*i]), float64(parts[2*i+1]))
	}
	return res, nil
}

// WriteComplex writes c as a pair of T. Integer types truncate.
func WriteComplex[T Fixed](f *File, c complex128) error {
	return WriteSlice(f, []T{T(real(c)), T(imag(c))})
}

func WriteComplexSlice[T Fixed](f *File, cs []complex128) error {
	parts := make([]T, 0, 2*len(cs))
	for _, c := range cs {
		parts = append(parts, T(real(c)), T(imag(c)))
	}
	return WriteSlice(f, parts)
}

// SeekSample moves the cursor to sample n of type T from the start.
func SeekSample[T Fixed](f *File, n int64) error {
	_, err := f.Seek(n*int64(sizeOf[T]()), io.SeekStart)
	return err
}

// TellSample is the index of the T sample at the cursor.
func TellSample[T Fixed](f *File) (int64, error) {
	off, err := f.Tell()
	if err != nil {
		return 0, err
	}
	return off / int64(sizeOf[T]()), nil
}

func SeekComplexSample[T Fixed](f *File, n int64) error {
	_, err := f.Seek(2*n*int64(sizeOf[T]()), io.SeekStart)
	return err
}

func TellComplexSample[T Fixed](f *File) (int64, error) {
	off, err := f.Tell()
	if err != nil {
		return 0, err
	}
	return off / (2 * int64(sizeOf[T]())), nil
}

// ReadBytes reads exactly n bytes.
func (f *File) ReadBytes(n int) ([]byte, error) {
	return f.read(int64(n))
}

func (f *File) WriteBytes(p []byte) error {
	return f.write(p)
}
