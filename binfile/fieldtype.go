package binfile

import (
	"fmt"
	"strconv"
)

// FieldType names a fixed field type at run time.
type FieldType int

const (
	I8 FieldType = iota
	U8
	I16
	U16
	I32
	U32
	I64
	U64
	F32
	F64
	CI8
	CI16
	CF32
	CF64
)

var fieldTypeNames = []string{"i8", "u8", "i16", "u16", "i32", "u32", "i64", "u64", "f32", "f64", "ci8", "ci16", "cf32", "cf64"}

func FieldTypes() []FieldType {
	res := make([]FieldType, len(fieldTypeNames))
	for i := range res {
		res[i] = FieldType(i)
	}
	return res
}

func ParseFieldType(s string) (FieldType, error) {
	for i, name := range fieldTypeNames {
		if name == s {
			return FieldType(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrFieldType, s)
}

func (t FieldType) String() string {
	if t < 0 || int(t) >= len(fieldTypeNames) {
		return fmt.Sprintf("<field type %d>", int(t))
	}
	return fieldTypeNames[t]
}

func (t FieldType) MarshalText() ([]byte, error) {
	if t < 0 || int(t) >= len(fieldTypeNames) {
		return nil, fmt.Errorf("%w: %d", ErrFieldType, int(t))
	}
	return []byte(fieldTypeNames[t]), nil
}

func (t *FieldType) UnmarshalText(d []byte) error {
	v, err := ParseFieldType(string(d))
	if err != nil {
		return err
	}
	*t = v
	return nil
}

func (t FieldType) IsComplex() bool {
	return t >= CI8
}

// Size is the number of bytes one value takes.
func (t FieldType) Size() int {
	switch t {
	case I8, U8:
		return 1
	case I16, U16, CI8:
		return 2
	case I32, U32, F32, CI16:
		return 4
	case I64, U64, F64, CF32:
		return 8
	case CF64:
		return 16
	}
	return 0
}

// ReadValue reads one value of type t. Integers are returned with
// their Go type, complex samples as complex128.
func ReadValue(f *File, t FieldType) (any, error) {
	switch t {
	case I8:
		return Read[int8](f)
	case U8:
		return Read[uint8](f)
	case I16:
		return Read[int16](f)
	case U16:
		return Read[uint16](f)
	case I32:
		return Read[int32](f)
	case U32:
		return Read[uint32](f)
	case I64:
		return Read[int64](f)
	case U64:
		return Read[uint64](f)
	case F32:
		return Read[float32](f)
	case F64:
		return Read[float64](f)
	case CI8:
		return ReadComplex[int8](f)
	case CI16:
		return ReadComplex[int16](f)
	case CF32:
		return ReadComplex[float32](f)
	case CF64:
		return ReadComplex[float64](f)
	}
	return nil, fmt.Errorf("%w: %d", ErrFieldType, int(t))
}

// WriteValue parses text as a value of type t and writes it. Complex
// values use the strconv.ParseComplex syntax, such as 1+2i.
func WriteValue(f *File, t FieldType, text string) error {
	bits := t.Size() * 8
	switch t {
	case I8, I16, I32, I64:
		v, err := strconv.ParseInt(text, 0, bits)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrDecoding, err)
		}
		switch t {
		case I8:
			return Write(f, int8(v))
		case I16:
			return Write(f, int16(v))
		case I32:
			return Write(f, int32(v))
		}
		return Write(f, v)
	case U8, U16, U32, U64:
		v, err := strconv.ParseUint(text, 0, bits)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrDecoding, err)
		}
		switch t {
		case U8:
			return Write(f, uint8(v))
		case U16:
			return Write(f, uint16(v))
		case U32:
			return Write(f, uint32(v))
		}
		return Write(f, v)
	case F32, F64:
		v, err := strconv.ParseFloat(text, bits)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrDecoding, err)
		}
		if t == F32 {
			return Write(f, float32(v))
		}
		return Write(f, v)
	case CI8, CI16, CF32, CF64:
		c, err := strconv.ParseComplex(text, 128)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrDecoding, err)
		}
		switch t {
		case CI8:
			return WriteComplex[int8](f, c)
		case CI16:
			return WriteComplex[int16](f, c)
		case CF32:
			return WriteComplex[float32](f, c)
		}
		return WriteComplex[float64](f, c)
	}
	return fmt.Errorf("%w: %d", ErrFieldType, int(t))
}
