package main

import (
	"fmt"
	"strings"

	"github.com/sturdio/sturdio/eval"
	"github.com/sturdio/sturdio/ir"

	"github.com/goccy/go-yaml"
	"github.com/scott-cotton/cli"
)

func evalCmd(cfg *EvalConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Eval.Parse(cc, args)
	if err != nil {
		return err
	}
	env, err := evalEnv(cfg)
	if err != nil {
		return err
	}
	for i, file := range inputs(args) {
		s, err := readStream(cfg.MainConfig, cc, file)
		if err != nil {
			return err
		}
		res := &ir.Stream{}
		for j, doc := range s.Docs {
			out, err := eval.ExpandEnv(doc, env)
			if err != nil {
				return fmt.Errorf("error evaluating document %d of %s: %w", j, file, err)
			}
			res.Docs = append(res.Docs, out)
		}
		if err := writeStream(cfg.MainConfig, cc.Out, res, i > 0); err != nil {
			return fmt.Errorf("error encoding result: %w", err)
		}
	}
	return nil
}

func evalEnv(cfg *EvalConfig) (eval.Env, error) {
	env := eval.Env{}
	if cfg.OSEnv {
		env = eval.OSEnv()
	}
	fromEnv, err := eval.LoadEnv()
	if err != nil {
		return nil, err
	}
	if fromEnv != nil {
		if env, err = eval.MergeEnv(env, fromEnv); err != nil {
			return nil, err
		}
	}
	if len(cfg.Env) != 0 {
		if env, err = eval.MergeEnv(env, cfg.Env); err != nil {
			return nil, err
		}
	}
	theLog.Debug("eval env", "vars", len(env))
	return env, nil
}

func envFunc(env eval.Env, a string) error {
	key, val, ok := strings.Cut(a, "=")
	if !ok {
		return fmt.Errorf("%w: argument %q expected key=val", cli.ErrUsage, a)
	}
	var v any
	err := yaml.Unmarshal([]byte(val), &v)
	if err != nil {
		return err
	}
	parts := strings.Split(key, ".")
	n := len(parts)
	tmpEnv := map[string]any(env)
	for i, part := range parts {
		if i == n-1 {
			tmpEnv[part] = v
			break
		}
		next := tmpEnv[part]
		if next == nil {
			next = map[string]any{}
			tmpEnv[part] = next
		}
		nextEnv, ok := next.(map[string]any)
		if !ok {
			return fmt.Errorf("cannot access %s, list or scalar", strings.Join(parts[:i+1], "."))
		}
		tmpEnv = nextEnv
	}
	return nil
}
