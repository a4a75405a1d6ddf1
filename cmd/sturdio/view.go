package main

import (
	"fmt"
	"io"

	"github.com/sturdio/sturdio/encode"
	"github.com/sturdio/sturdio/ir"

	"github.com/scott-cotton/cli"
)

func view(cfg *ViewConfig, cc *cli.Context, args []string) error {
	args, err := cfg.View.Parse(cc, args)
	if err != nil {
		return err
	}
	files := inputs(args)
	for i, file := range files {
		s, err := readStream(cfg.MainConfig, cc, file)
		if err != nil {
			return err
		}
		if err := writeStream(cfg.MainConfig, cc.Out, s, i > 0); err != nil {
			return fmt.Errorf("error encoding %s: %w", file, err)
		}
	}
	return nil
}

// writeStream encodes s to w. With sep, a YAML stream is preceded by a
// document separator.
func writeStream(cfg *MainConfig, w io.Writer, s *ir.Stream, sep bool) error {
	if s.Len() == 0 {
		return nil
	}
	opts := cfg.encOpts(w)
	if sep && !cfg.fmat().IsJSON() {
		if _, err := w.Write([]byte("---\n")); err != nil {
			return err
		}
	}
	return encode.EncodeStream(s, w, opts...)
}
