package ir

import (
	"errors"
)

var (
	ErrPath     = errors.New("bad path")
	ErrNotFound = errors.New("not found")
	ErrKind     = errors.New("wrong kind")
	ErrTag      = errors.New("tag mismatch")
	ErrCycle    = errors.New("alias cycle")
	ErrKey      = errors.New("unsupported key")
)
