package config

import (
	"errors"

	"github.com/sturdio/sturdio/ir"
)

var (
	ErrNotFound = ir.ErrNotFound
	ErrDecode   = errors.New("config decode error")
)
