package main

import (
	"bytes"
	"fmt"

	"github.com/sturdio/sturdio/encode"
	"github.com/sturdio/sturdio/ir"
	"github.com/sturdio/sturdio/libdiff"
	"github.com/sturdio/sturdio/parse"

	"github.com/scott-cotton/cli"
)

func check(cfg *CheckConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Check.Parse(cc, args)
	if err != nil {
		cfg.Check.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	failed := 0
	for _, file := range inputs(args) {
		if err := checkFile(cfg, cc, file); err != nil {
			theLog.Error("check failed", "file", file, "error", err)
			failed++
			continue
		}
		if !cfg.Quiet {
			theLog.Info("ok", "file", file)
		}
	}
	if failed > 0 {
		return cli.ExitCodeErr(1)
	}
	return nil
}

// checkFile verifies that the dump of file parses to equal documents and
// that dumping those gives the same text.
func checkFile(cfg *CheckConfig, cc *cli.Context, file string) error {
	s, err := readStream(cfg.MainConfig, cc, file)
	if err != nil {
		return err
	}
	opts := []encode.EncodeOption{encode.Indent(cfg.Indent)}
	first := bytes.NewBuffer(nil)
	if err := encode.EncodeStream(s, first, opts...); err != nil {
		return err
	}
	again, err := parse.Parse(first.Bytes(), cfg.parseOpts()...)
	if err != nil {
		return fmt.Errorf("dump does not parse: %w", err)
	}
	if !ir.StreamEqual(s, again) {
		return fmt.Errorf("dump parses to different documents")
	}
	second := bytes.NewBuffer(nil)
	if err := encode.EncodeStream(again, second, opts...); err != nil {
		return err
	}
	if d := libdiff.Text(first.String(), second.String()); d != "" {
		return fmt.Errorf("dump is not stable:\n%s", d)
	}
	return nil
}
