package main

import (
	"fmt"

	"github.com/sturdio/sturdio/iotools"
	"github.com/sturdio/sturdio/ir"
	"github.com/sturdio/sturdio/parse"

	"github.com/scott-cotton/cli"
)

// inputs defaults to stdin, written "-".
func inputs(args []string) []string {
	if len(args) == 0 {
		return []string{"-"}
	}
	return args
}

func target(cc *cli.Context, file string) any {
	if file == "-" {
		return cc.In
	}
	return file
}

func readStream(cfg *MainConfig, cc *cli.Context, file string) (*ir.Stream, error) {
	s, err := parse.ParseFile(target(cc, file), cfg.parseOpts()...)
	if err != nil {
		return nil, fmt.Errorf("error processing %s: %w", file, err)
	}
	theLog.Debug("parsed", "file", file, "documents", s.Len())
	return s, nil
}

func readDocument(cfg *MainConfig, cc *cli.Context, file string) (*ir.Document, error) {
	data, name, err := iotools.ReadAll(target(cc, file))
	if err != nil {
		return nil, fmt.Errorf("could not read %q: %w", file, err)
	}
	opts := append([]parse.ParseOption{parse.WithFilename(name)}, cfg.parseOpts()...)
	doc, err := parse.ParseDocument(data, opts...)
	if err != nil {
		return nil, fmt.Errorf("error processing %s: %w", file, err)
	}
	return doc, nil
}
