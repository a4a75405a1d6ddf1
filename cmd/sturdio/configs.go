package main

import (
	"fmt"
	"io"
	"os"

	"github.com/sturdio/sturdio/encode"
	"github.com/sturdio/sturdio/eval"
	"github.com/sturdio/sturdio/format"
	"github.com/sturdio/sturdio/parse"

	"github.com/scott-cotton/cli"

	"github.com/mattn/go-isatty"
)

type MainConfig struct {
	Color   bool `cli:"name=color desc='encode with color'"`
	J       bool `cli:"name=j aliases=json desc='output json'"`
	Y       bool `cli:"name=y aliases=yaml desc='output yaml'"`
	YAML11  bool `cli:"name=yaml11 desc='resolve plain scalars with YAML 1.1 rules'"`
	Indent  int  `cli:"name=indent desc='indentation of block collections'"`
	Verbose bool `cli:"name=v aliases=verbose desc='log debug messages'"`

	OutFormat *format.Format

	Out      string
	CloseOut func() error

	Main *cli.Command
}

func (cfg *MainConfig) fmtFunc(fps ...**format.Format) cli.FuncOpt {
	return cli.FuncOpt(func(_ *cli.Context, v string) (any, error) {
		f, err := format.ParseFormat(v)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", cli.ErrUsage, err)
		}
		for _, fp := range fps {
			*fp = &f
		}
		return f, nil
	})
}

func (cfg *MainConfig) parseOpts() []parse.ParseOption {
	if cfg.YAML11 {
		return []parse.ParseOption{parse.ParseYAML11()}
	}
	return nil
}

func (cfg *MainConfig) fmat() format.Format {
	fmat := format.YAMLFormat
	if cfg.J {
		fmat = format.JSONFormat
	}
	if cfg.OutFormat != nil {
		fmat = *cfg.OutFormat
	}
	return fmat
}

// plainOpts are encOpts without colors.
func (cfg *MainConfig) plainOpts() []encode.EncodeOption {
	return []encode.EncodeOption{
		encode.EncodeFormat(cfg.fmat()),
		encode.Indent(cfg.Indent),
	}
}

func (cfg *MainConfig) encOpts(w io.Writer) []encode.EncodeOption {
	res := cfg.plainOpts()
	if cfg.colorful(w) {
		res = append(res, encode.EncodeColors(encode.NewColors()))
	}
	return res
}

// colorful reports whether output to w is colored: -color forces it,
// otherwise terminals get colors.
func (cfg *MainConfig) colorful(w io.Writer) bool {
	if cfg.Color {
		return true
	}
	for _, opt := range cfg.Main.Opts {
		if opt.Name != "color" {
			continue
		}
		if opt.Value != nil {
			return false
		}
		break
	}
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd())
}

type ViewConfig struct {
	*MainConfig

	View *cli.Command
}

type GetConfig struct {
	*MainConfig

	Get *cli.Command
}

type DiffConfig struct {
	*MainConfig
	Context int `cli:"name=c desc='lines of context around changes, -1 for all'"`

	Diff *cli.Command
}

type CheckConfig struct {
	*MainConfig
	Quiet bool `cli:"name=q desc='only report failures'"`

	Check *cli.Command
}

type PatchConfig struct {
	*MainConfig
	File  string `cli:"name=f desc='file holding the patch, json or yaml'"`
	Merge bool   `cli:"name=m desc='treat the patch as a json merge patch'"`

	Patch *cli.Command
}

type EvalConfig struct {
	*MainConfig
	Env   eval.Env
	OSEnv bool `cli:"name=osenv desc='start from the process environment'"`

	Eval *cli.Command
}

type BinConfig struct {
	*MainConfig
	Bin *cli.Command
}

type BinReadConfig struct {
	*MainConfig
	Type string `cli:"name=t desc='field type: i8 u8 i16 u16 i32 u32 i64 u64 f32 f64 ci8 ci16 cf32 cf64'"`
	N    int    `cli:"name=n desc='number of values, 0 to read to the end'"`
	Off  int    `cli:"name=off desc='byte offset to start at'"`
	BE   bool   `cli:"name=be desc='big endian'"`

	Read *cli.Command
}

type BinInfoConfig struct {
	*MainConfig
	Type string `cli:"name=t desc='field type used to count samples'"`

	Info *cli.Command
}

type BinWriteConfig struct {
	*MainConfig
	Type   string `cli:"name=t desc='field type of the values'"`
	BE     bool   `cli:"name=be desc='big endian'"`
	Append bool   `cli:"name=a desc='append instead of truncating'"`

	Write *cli.Command
}

type MkdirConfig struct {
	*MainConfig
	Mkdir *cli.Command
}
