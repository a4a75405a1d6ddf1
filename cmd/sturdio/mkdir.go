package main

import (
	"fmt"

	"github.com/sturdio/sturdio/iotools"

	"github.com/scott-cotton/cli"
)

func mkdir(cfg *MkdirConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Mkdir.Parse(cc, args)
	if err != nil {
		return err
	}
	if len(args) == 0 {
		return fmt.Errorf("%w: mkdir requires directories", cli.ErrUsage)
	}
	for _, dir := range args {
		if err := iotools.EnsurePathExists(dir); err != nil {
			return err
		}
		theLog.Debug("ensured directory", "path", dir)
	}
	return nil
}
