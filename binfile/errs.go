package binfile

import (
	"errors"
	"fmt"
	"io"
	"io/fs"

	"github.com/sturdio/sturdio/iotools"
)

var (
	ErrNotFound      = iotools.ErrNotFound
	ErrPermission    = iotools.ErrPermission
	ErrEndOfStream   = fmt.Errorf("end of stream: %w", io.ErrUnexpectedEOF)
	ErrCapacity      = errors.New("capacity exceeded")
	ErrDecoding      = errors.New("decoding error")
	ErrClosed        = fmt.Errorf("resource closed: %w", fs.ErrClosed)
	ErrMode          = errors.New("operation not allowed by mode")
	ErrInvalidOffset = errors.New("invalid offset")
	ErrWidth         = errors.New("invalid prefix width")
	ErrFieldType     = errors.New("unknown field type")
)
