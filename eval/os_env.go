package eval

import (
	"fmt"
	"os"
	"strings"

	"github.com/sturdio/sturdio/debug"
	"github.com/sturdio/sturdio/ir"
	"github.com/sturdio/sturdio/parse"
	"github.com/sturdio/sturdio/patch"
)

// EnvEnv names the environment variable from which LoadEnv reads a YAML
// mapping.
const EnvEnv = "STURDIO_ENV"

// Env holds the variables visible to expressions.
type Env map[string]any

// OSEnv returns the process environment with every variable under its
// own name.
func OSEnv() Env {
	res := Env{}
	for _, kv := range os.Environ() {
		k, v, ok := strings.Cut(kv, "=")
		if !ok || k == "" {
			continue
		}
		res[k] = v
	}
	return res
}

// LoadEnv parses the mapping held in $STURDIO_ENV. An unset variable
// gives a nil Env.
func LoadEnv() (Env, error) {
	envEnv := os.Getenv(EnvEnv)
	if envEnv == "" {
		return nil, nil
	}
	doc, err := parse.ParseString(envEnv)
	if err != nil {
		return nil, fmt.Errorf("error decoding env $%s: %w", EnvEnv, err)
	}
	res, err := toEnv(doc)
	if err != nil {
		return nil, fmt.Errorf("error decoding env $%s: %w", EnvEnv, err)
	}
	if debug.Eval() {
		debug.Logf("loaded env from $%s: %s\n", EnvEnv, map[string]any(res))
	}
	return res, nil
}

// MergeEnv merges p into dst as a JSON merge patch: nested mappings are
// merged and a nil value removes a variable. Neither argument is
// modified.
func MergeEnv(dst, p Env) (Env, error) {
	doc, err := ir.FromValue(map[string]any(dst))
	if err != nil {
		return nil, err
	}
	pDoc, err := ir.FromValue(map[string]any(p))
	if err != nil {
		return nil, err
	}
	res, err := patch.MergeDocument(doc, pDoc)
	if err != nil {
		return nil, err
	}
	return toEnv(res)
}

func toEnv(doc *ir.Document) (Env, error) {
	v, err := doc.ToAny(doc.Root)
	if err != nil {
		return nil, err
	}
	switch x := v.(type) {
	case nil:
		return Env{}, nil
	case map[string]any:
		return Env(x), nil
	}
	return nil, fmt.Errorf("%w: env is a %s, not a mapping", ErrEval, doc.RootNode().Kind)
}
