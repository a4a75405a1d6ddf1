package patch

import "errors"

var (
	ErrPatch = errors.New("patch error")
	ErrEmpty = errors.New("empty document")
)
