// Package debug holds environment switched tracing used while
// developing the scanner, parser and binary engine.
package debug

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"sync"
)

type debug struct {
	Scan    bool
	Parse   bool
	BinFile bool
	Patch   bool
	Eval    bool
}

var (
	d   *debug
	mu  sync.Mutex
	out io.Writer = os.Stderr
)

func init() {
	d = &debug{}
	d.Scan = boolEnv("STURDIO_DEBUG_SCAN")
	d.Parse = boolEnv("STURDIO_DEBUG_PARSE")
	d.BinFile = boolEnv("STURDIO_DEBUG_BINFILE")
	d.Patch = boolEnv("STURDIO_DEBUG_PATCH")
	d.Eval = boolEnv("STURDIO_DEBUG_EVAL")
}

func boolEnv(v string) bool {
	x := os.Getenv(v)
	if x == "" {
		return false
	}
	b, _ := strconv.ParseBool(x)
	return b
}

func Scan() bool {
	return d.Scan
}
func Parse() bool {
	return d.Parse
}
func BinFile() bool {
	return d.BinFile
}
func Patch() bool {
	return d.Patch
}
func Eval() bool {
	return d.Eval
}

// SetOutput redirects debug output, returning the previous writer.
func SetOutput(w io.Writer) io.Writer {
	mu.Lock()
	defer mu.Unlock()
	prev := out
	out = w
	return prev
}

func Logf(msg string, args ...any) {
	for i := range args {
		switch x := args[i].(type) {
		case map[string]any, []any:
			b, err := json.MarshalIndent(x, "   |", "  ")
			if err != nil {
				continue
			}
			args[i] = string(b)
		}
	}
	mu.Lock()
	defer mu.Unlock()
	fmt.Fprintf(out, msg, args...)
}
