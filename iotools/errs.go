package iotools

import (
	"errors"
	"fmt"
	"io/fs"
)

var (
	ErrNotFound   = fmt.Errorf("not found: %w", fs.ErrNotExist)
	ErrPermission = fmt.Errorf("permission denied: %w", fs.ErrPermission)
	ErrTarget     = errors.New("unsupported target")
)

// Classify maps file system errors to ErrNotFound and ErrPermission,
// keeping the original error in the chain.
func Classify(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, ErrNotFound), errors.Is(err, ErrPermission):
		return err
	case errors.Is(err, fs.ErrNotExist):
		return fmt.Errorf("%w: %w", ErrNotFound, err)
	case errors.Is(err, fs.ErrPermission):
		return fmt.Errorf("%w: %w", ErrPermission, err)
	}
	return err
}
