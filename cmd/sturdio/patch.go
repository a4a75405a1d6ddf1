package main

import (
	"fmt"

	"github.com/sturdio/sturdio/ir"
	"github.com/sturdio/sturdio/patch"

	"github.com/scott-cotton/cli"
)

func patchCmd(cfg *PatchConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Patch.Parse(cc, args)
	if err != nil {
		cfg.Patch.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if cfg.File == "" {
		return fmt.Errorf("%w: patch requires -f", cli.ErrUsage)
	}
	p, err := readDocument(cfg.MainConfig, cc, cfg.File)
	if err != nil {
		return err
	}
	apply := patch.ApplyDocument
	if cfg.Merge {
		apply = patch.MergeDocument
	}
	for i, file := range inputs(args) {
		s, err := readStream(cfg.MainConfig, cc, file)
		if err != nil {
			return err
		}
		res := &ir.Stream{}
		for j, doc := range s.Docs {
			out, err := apply(doc, p)
			if err != nil {
				return fmt.Errorf("error patching document %d of %s: %w", j, file, err)
			}
			res.Docs = append(res.Docs, out)
		}
		if err := writeStream(cfg.MainConfig, cc.Out, res, i > 0); err != nil {
			return fmt.Errorf("error encoding result: %w", err)
		}
	}
	return nil
}
