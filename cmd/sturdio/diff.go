package main

import (
	"fmt"
	"strings"

	"github.com/sturdio/sturdio/libdiff"

	"github.com/fatih/color"
	"github.com/scott-cotton/cli"
)

func diff(cfg *DiffConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Diff.Parse(cc, args)
	if err != nil {
		cfg.Diff.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if len(args) != 2 {
		return fmt.Errorf("%w: diff requires 2 args, got %v", cli.ErrUsage, args)
	}
	a, err := readDocument(cfg.MainConfig, cc, args[0])
	if err != nil {
		return err
	}
	b, err := readDocument(cfg.MainConfig, cc, args[1])
	if err != nil {
		return err
	}
	lines, err := libdiff.DocumentLines(a, b, cfg.plainOpts()...)
	if err != nil {
		return err
	}
	if !libdiff.Changed(lines) {
		return nil
	}
	out := libdiff.Format(lines, cfg.Context)
	if cfg.colorful(cc.Out) {
		out = colorDiff(out)
	}
	if _, err := cc.Out.Write([]byte(out)); err != nil {
		return err
	}
	return cli.ExitCodeErr(1)
}

func colorDiff(text string) string {
	del := color.RGB(0xff, 0x5f, 0x5f).SprintFunc()
	ins := color.RGB(0x5f, 0xd7, 0x5f).SprintFunc()
	skip := color.RGB(0x87, 0x87, 0x87).SprintFunc()
	lines := strings.SplitAfter(text, "\n")
	for i, ln := range lines {
		body := strings.TrimSuffix(ln, "\n")
		nl := ln[len(body):]
		switch {
		case strings.HasPrefix(body, "-"):
			lines[i] = del(body) + nl
		case strings.HasPrefix(body, "+"):
			lines[i] = ins(body) + nl
		case body == "...":
			lines[i] = skip(body) + nl
		}
	}
	return strings.Join(lines, "")
}
