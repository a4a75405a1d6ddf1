package main

import (
	"errors"
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/sturdio/sturdio/binfile"
	"github.com/sturdio/sturdio/encode"
	"github.com/sturdio/sturdio/ir"

	"github.com/scott-cotton/cli"
)

func binOpts(be bool) []binfile.Option {
	opts := []binfile.Option{binfile.WithLogger(theLog)}
	if be {
		opts = append(opts, binfile.BigEndian())
	}
	return opts
}

func binRead(cfg *BinReadConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Read.Parse(cc, args)
	if err != nil {
		cfg.Read.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if len(args) != 1 {
		return fmt.Errorf("%w: read requires one file, got %v", cli.ErrUsage, args)
	}
	t, err := binfile.ParseFieldType(cfg.Type)
	if err != nil {
		return fmt.Errorf("%w: %w", cli.ErrUsage, err)
	}
	var values []any
	err = binfile.Do(args[0], binfile.ReadOnly, func(f *binfile.File) error {
		if _, err := f.Seek(int64(cfg.Off), io.SeekStart); err != nil {
			return err
		}
		for cfg.N <= 0 || len(values) < cfg.N {
			v, err := binfile.ReadValue(f, t)
			if cfg.N <= 0 && errors.Is(err, binfile.ErrEndOfStream) {
				return nil
			}
			if err != nil {
				return fmt.Errorf("value %d: %w", len(values), err)
			}
			if c, ok := v.(complex128); ok {
				v = []any{real(c), imag(c)}
			}
			values = append(values, v)
		}
		return nil
	}, binOpts(cfg.BE)...)
	if err != nil {
		return err
	}
	if values == nil {
		values = []any{}
	}
	doc, err := ir.FromValue(values)
	if err != nil {
		return err
	}
	return encode.Encode(doc, cc.Out, cfg.encOpts(cc.Out)...)
}

func binInfo(cfg *BinInfoConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Info.Parse(cc, args)
	if err != nil {
		cfg.Info.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if len(args) == 0 {
		return fmt.Errorf("%w: info requires files", cli.ErrUsage)
	}
	var t *binfile.FieldType
	if cfg.Type != "" {
		ft, err := binfile.ParseFieldType(cfg.Type)
		if err != nil {
			return fmt.Errorf("%w: %w", cli.ErrUsage, err)
		}
		t = &ft
	}
	res := &ir.Stream{}
	for _, file := range args {
		doc := ir.NewDocument()
		err := binfile.Do(file, binfile.ReadOnly, func(f *binfile.File) error {
			n, err := f.Len()
			if err != nil {
				return err
			}
			pairs := []ir.Pair{
				{Key: doc.AddString("name"), Value: doc.AddString(f.Name())},
				{Key: doc.AddString("bytes"), Value: doc.AddInt(n)},
			}
			if t != nil {
				pairs = append(pairs,
					ir.Pair{Key: doc.AddString("type"), Value: doc.AddString(t.String())},
					ir.Pair{Key: doc.AddString("samples"), Value: doc.AddInt(n / int64(t.Size()))},
					ir.Pair{Key: doc.AddString("trailing"), Value: doc.AddInt(n % int64(t.Size()))})
			}
			doc.SetRoot(doc.AddMapping(pairs...))
			return nil
		}, binOpts(false)...)
		if err != nil {
			return err
		}
		doc.Freeze()
		res.Docs = append(res.Docs, doc)
	}
	return encode.EncodeStream(res, cc.Out, cfg.encOpts(cc.Out)...)
}

// splitAtOperand cuts args after the first operand so that what follows,
// negative numbers included, is never parsed as options. A "--" just
// before or just after the operand is dropped.
func splitAtOperand(cmd *cli.Command, args []string) (head, rest []string) {
	opts := cmd.AllOpts()
	for i := 0; i < len(args); i++ {
		arg := args[i]
		if arg == "--" {
			head = append(slices.Clone(args[:i]), args[i+1:min(i+2, len(args))]...)
			return head, dropDashes(args[min(i+2, len(args)):])
		}
		if arg == "" || arg == "-" || arg[0] != '-' {
			return args[:i+1], dropDashes(args[i+1:])
		}
		name, _, hasValue := strings.Cut(strings.TrimPrefix(arg[1:], "-"), "=")
		if opt := opts[name]; opt != nil && !hasValue && opt.Type.ArgRequired() {
			i++
		}
	}
	return args, nil
}

func dropDashes(args []string) []string {
	if len(args) > 0 && args[0] == "--" {
		return args[1:]
	}
	return args
}

func binWrite(cfg *BinWriteConfig, cc *cli.Context, args []string) error {
	head, values := splitAtOperand(cfg.Write, args)
	args, err := cfg.Write.Parse(cc, head)
	if err != nil {
		cfg.Write.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if len(args) < 1 {
		return fmt.Errorf("%w: write requires a file", cli.ErrUsage)
	}
	args = append(args, values...)
	t, err := binfile.ParseFieldType(cfg.Type)
	if err != nil {
		return fmt.Errorf("%w: %w", cli.ErrUsage, err)
	}
	mode := binfile.WriteOnly
	if cfg.Append {
		mode = binfile.Append
	}
	return binfile.Do(args[0], mode, func(f *binfile.File) error {
		for i, v := range args[1:] {
			if err := binfile.WriteValue(f, t, v); err != nil {
				return fmt.Errorf("value %d %q: %w", i, v, err)
			}
		}
		return f.Flush()
	}, binOpts(cfg.BE)...)
}
