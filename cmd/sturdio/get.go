package main

import (
	"fmt"

	"github.com/sturdio/sturdio/encode"

	"github.com/scott-cotton/cli"
)

func get(cfg *GetConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Get.Parse(cc, args)
	if err != nil {
		cfg.Get.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if len(args) == 0 {
		return fmt.Errorf("%w: get requires one argument, a node path", cli.ErrUsage)
	}
	path := args[0]
	if path == "" {
		return fmt.Errorf("%w: invalid path \"\"", cli.ErrUsage)
	}
	n := 0
	for _, file := range inputs(args[1:]) {
		s, err := readStream(cfg.MainConfig, cc, file)
		if err != nil {
			return err
		}
		for i, doc := range s.Docs {
			id, err := doc.Lookup(path)
			if err != nil {
				return fmt.Errorf("error querying document %d of %s with %s: %w", i, file, path, err)
			}
			if n > 0 && !cfg.fmat().IsJSON() {
				if _, err := cc.Out.Write([]byte("---\n")); err != nil {
					return err
				}
			}
			if err := encode.EncodeNode(doc, id, cc.Out, cfg.encOpts(cc.Out)...); err != nil {
				return fmt.Errorf("error encoding result: %w", err)
			}
			n++
		}
	}
	return nil
}
