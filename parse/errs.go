package parse

import (
	"errors"
)

var (
	ErrAnchor            = errors.New("anchor resolution error")
	ErrMultipleDocuments = errors.New("expected a single document")
)
