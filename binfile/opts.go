package binfile

import (
	"encoding/binary"
	"log/slog"
)

type options struct {
	order  binary.ByteOrder
	logger *slog.Logger
}

type Option func(*options)

func newOptions(opts []Option) *options {
	res := &options{order: binary.LittleEndian}
	for _, opt := range opts {
		opt(res)
	}
	if res.logger == nil {
		res.logger = slog.Default()
	}
	return res
}

// WithByteOrder sets the byte order of multi-byte fields. The default
// is little-endian.
func WithByteOrder(order binary.ByteOrder) Option {
	return func(o *options) {
		if order != nil {
			o.order = order
		}
	}
}

func BigEndian() Option {
	return WithByteOrder(binary.BigEndian)
}

func LittleEndian() Option {
	return WithByteOrder(binary.LittleEndian)
}

// WithLogger sets the logger open and close are reported to at debug
// level. The default is slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(o *options) { o.logger = l }
}
