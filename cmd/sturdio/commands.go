package main

import (
	"log/slog"

	"github.com/scott-cotton/cli"

	"github.com/sturdio/sturdio"
	"github.com/sturdio/sturdio/eval"
)

func MainCommand() *cli.Command {
	cfg := &MainConfig{}
	sOpts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	opts := append(sOpts, []*cli.Opt{
		&cli.Opt{
			Name:        "o",
			Description: "output file (default stdout)",
			Type:        cli.NamedFuncOpt(cfg.outOpt, "(filepath)"),
		},
		&cli.Opt{
			Name:        "O",
			Aliases:     []string{"ofmt"},
			Description: "output format: json/j, yaml/y",
			Type:        cli.NamedFuncOpt(cfg.fmtFunc(&cfg.OutFormat), "(format)"),
		}}...)

	return cli.NewCommandAt(&cfg.Main, "sturdio").
		WithSynopsis("sturdio [opts] command [opts]").
		WithDescription("sturdio "+sturdio.Version+" reads yaml configuration and binary sample files.").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return sMain(cfg, cc, args)
		}).
		WithSubs(
			ViewCommand(cfg),
			GetCommand(cfg),
			DiffCommand(cfg),
			CheckCommand(cfg),
			PatchCommand(cfg),
			EvalCommand(cfg),
			BinCommand(cfg),
			MkdirCommand(cfg))
}

func ViewCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &ViewConfig{MainConfig: mainCfg}
	return cli.NewCommandAt(&cfg.View, "view").
		WithAliases("v").
		WithSynopsis("view [files]").
		WithDescription("view yaml files in canonical form, in color on terminals").
		WithRun(func(cc *cli.Context, args []string) error {
			return view(cfg, cc, args)
		})
}

func GetCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &GetConfig{MainConfig: mainCfg}
	return cli.NewCommandAt(&cfg.Get, "get").
		WithAliases("g").
		WithSynopsis("get <path> [files]").
		WithDescription("get the node at path, such as a.b[0], from every document").
		WithRun(func(cc *cli.Context, args []string) error {
			return get(cfg, cc, args)
		})
}

func DiffCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &DiffConfig{MainConfig: mainCfg, Context: 3}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	return cli.NewCommandAt(&cfg.Diff, "diff").
		WithAliases("d").
		WithOpts(opts...).
		WithSynopsis("diff [-c n] a b").
		WithDescription("diff the canonical dumps of two yaml documents; exits 1 when they differ").
		WithRun(func(cc *cli.Context, args []string) error {
			return diff(cfg, cc, args)
		})
}

func CheckCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &CheckConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	return cli.NewCommandAt(&cfg.Check, "check").
		WithAliases("c").
		WithOpts(opts...).
		WithSynopsis("check [-q] [files]").
		WithDescription("check that files parse and that dumping them is stable").
		WithRun(func(cc *cli.Context, args []string) error {
			return check(cfg, cc, args)
		})
}

func PatchCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &PatchConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	return cli.NewCommandAt(&cfg.Patch, "patch").
		WithAliases("p").
		WithOpts(opts...).
		WithSynopsis("patch -f patch [-m] [files]").
		WithDescription("apply a json patch (RFC 6902) or with -m a merge patch (RFC 7386) to every document").
		WithRun(func(cc *cli.Context, args []string) error {
			return patchCmd(cfg, cc, args)
		})
}

func EvalCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &EvalConfig{MainConfig: mainCfg, Env: eval.Env{}}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	opts = append(opts,
		&cli.Opt{
			Name:        "e",
			Description: "set a variable, yaml values are decoded",
			Type:        cli.NamedFuncOpt(cli.FuncOpt(envOptTypeFunc(cfg.Env)), "(path=val)"),
		})
	return cli.NewCommandAt(&cfg.Eval, "eval").
		WithAliases("e").
		WithOpts(opts...).
		WithSynopsis("eval [-osenv] [-e path=val [ -e path2=val2 ]...] [files]").
		WithDescription(evalDescription).
		WithRun(func(cc *cli.Context, args []string) error {
			return evalCmd(cfg, cc, args)
		})
}

const evalDescription = `eval expands $[expr] expressions in string scalars.

Variables come from, in increasing precedence, the process environment
with -osenv, a yaml mapping in $` + eval.EnvEnv + ` and -e arguments. A
string which is exactly one expression takes the typed result.`

func envOptTypeFunc(env eval.Env) func(cc *cli.Context, a string) (any, error) {
	return func(cc *cli.Context, a string) (any, error) {
		if err := envFunc(env, a); err != nil {
			return nil, err
		}
		return 0, nil
	}
}

func BinCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &BinConfig{MainConfig: mainCfg}
	return cli.NewCommandAt(&cfg.Bin, "bin").
		WithAliases("b").
		WithSynopsis("bin <subcommand>").
		WithDescription("read, inspect and write binary sample files").
		WithRun(func(cc *cli.Context, args []string) error {
			return dispatch(cfg.Bin, cc, args)
		}).
		WithSubs(
			BinReadCommand(mainCfg),
			BinInfoCommand(mainCfg),
			BinWriteCommand(mainCfg))
}

func BinReadCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &BinReadConfig{MainConfig: mainCfg, Type: "u8"}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	return cli.NewCommandAt(&cfg.Read, "read").
		WithAliases("r").
		WithOpts(opts...).
		WithSynopsis("read [-t type] [-n count] [-off bytes] [-be] file").
		WithDescription("read values of one field type as a yaml sequence; complex values are [re, im]").
		WithRun(func(cc *cli.Context, args []string) error {
			return binRead(cfg, cc, args)
		})
}

func BinInfoCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &BinInfoConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	return cli.NewCommandAt(&cfg.Info, "info").
		WithAliases("i").
		WithOpts(opts...).
		WithSynopsis("info [-t type] file").
		WithDescription("show the size of a binary file").
		WithRun(func(cc *cli.Context, args []string) error {
			return binInfo(cfg, cc, args)
		})
}

func BinWriteCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &BinWriteConfig{MainConfig: mainCfg, Type: "u8"}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	return cli.NewCommandAt(&cfg.Write, "write").
		WithAliases("w").
		WithOpts(opts...).
		WithSynopsis("write [-t type] [-be] [-a] file values...").
		WithDescription("write values of one field type; complex values are written like 1+2i").
		WithRun(func(cc *cli.Context, args []string) error {
			return binWrite(cfg, cc, args)
		})
}

func MkdirCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &MkdirConfig{MainConfig: mainCfg}
	return cli.NewCommandAt(&cfg.Mkdir, "mkdir").
		WithSynopsis("mkdir dirs...").
		WithDescription("create directories and their parents if missing").
		WithRun(func(cc *cli.Context, args []string) error {
			return mkdir(cfg, cc, args)
		})
}

func setVerbose(v bool) {
	if v {
		logLevel.Set(slog.LevelDebug)
	}
}
