package main

import (
	"bytes"
	"encoding/binary"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/google/go-cmp/cmp"
	"github.com/scott-cotton/cli"

	"github.com/sturdio/sturdio/eval"
)

func TestEnvFunc(t *testing.T) {
	env := eval.Env{}
	for _, a := range []string{"host=h", "rx.rate=2.5", "rx.gains=[1, 2]", "rx.on=true"} {
		if err := envFunc(env, a); err != nil {
			t.Fatalf("%s: %v", a, err)
		}
	}
	rx, ok := env["rx"].(map[string]any)
	if !ok {
		t.Fatalf("rx is %T", env["rx"])
	}
	if env["host"] != "h" || rx["rate"] != 2.5 || rx["on"] != true {
		t.Errorf("env %v", env)
	}
	if err := envFunc(env, "novalue"); err == nil {
		t.Error("expected usage error")
	}
	if err := envFunc(env, "host.x=1"); err == nil {
		t.Error("expected error descending into a scalar")
	}
}

func TestColorDiff(t *testing.T) {
	prev := color.NoColor
	color.NoColor = false
	defer func() { color.NoColor = prev }()

	got := colorDiff(" a\n-b\n+c\n...\n")
	lines := strings.Split(got, "\n")
	if lines[0] != " a" {
		t.Errorf("equal line changed: %q", lines[0])
	}
	for _, ln := range lines[1:4] {
		if !strings.Contains(ln, "\x1b[") {
			t.Errorf("line not colored: %q", ln)
		}
	}
}

func TestCheckFile(t *testing.T) {
	dir := t.TempDir()
	good := filepath.Join(dir, "good.yaml")
	if err := os.WriteFile(good, []byte("a: &x [1, 2]\nb: *x\ntext: |\n  l1\n  l2\n---\n- !tag v\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg := &CheckConfig{MainConfig: &MainConfig{}}
	if err := checkFile(cfg, nil, good); err != nil {
		t.Error(err)
	}
	bad := filepath.Join(dir, "bad.yaml")
	if err := os.WriteFile(bad, []byte("a: [1\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := checkFile(cfg, nil, bad); err == nil {
		t.Error("expected error")
	}
}

func TestEvalEnv(t *testing.T) {
	t.Setenv(eval.EnvEnv, "host: env\nport: 1\n")
	cfg := &EvalConfig{MainConfig: &MainConfig{}, Env: eval.Env{}}
	if err := envFunc(cfg.Env, "port=2"); err != nil {
		t.Fatal(err)
	}
	env, err := evalEnv(cfg)
	if err != nil {
		t.Fatal(err)
	}
	want := eval.Env{"host": "env", "port": int64(2)}
	if diff := cmp.Diff(want, env); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
}

func TestSplitAtOperand(t *testing.T) {
	cmd := BinWriteCommand(&MainConfig{})
	tests := []struct {
		args       []string
		head, rest []string
	}{
		{[]string{"-t", "i16", "f", "1", "-3"}, []string{"-t", "i16", "f"}, []string{"1", "-3"}},
		{[]string{"-t=i16", "-a", "f", "-3"}, []string{"-t=i16", "-a", "f"}, []string{"-3"}},
		{[]string{"-t", "i16", "--", "f", "-3"}, []string{"-t", "i16", "f"}, []string{"-3"}},
		{[]string{"f", "--", "-3", "--"}, []string{"f"}, []string{"-3", "--"}},
		{[]string{"-be", "f"}, []string{"-be", "f"}, []string{}},
		{[]string{"-t", "i16"}, []string{"-t", "i16"}, nil},
	}
	for _, tt := range tests {
		head, rest := splitAtOperand(cmd, tt.args)
		if diff := cmp.Diff(tt.head, head); diff != "" {
			t.Errorf("%v head (-want +got):\n%s", tt.args, diff)
		}
		if diff := cmp.Diff(tt.rest, rest); diff != "" {
			t.Errorf("%v rest (-want +got):\n%s", tt.args, diff)
		}
	}
}

func TestBinWriteNegative(t *testing.T) {
	path := filepath.Join(t.TempDir(), "x.bin")
	run := func(args ...string) string {
		t.Helper()
		out := &bytes.Buffer{}
		cc := cli.DefaultContext()
		cc.Out = nopWriteCloser{out}
		if err := MainCommand().Run(cc, args); err != nil {
			t.Fatalf("%v: %v", args, err)
		}
		return out.String()
	}
	run("bin", "write", "-t", "i16", path, "1", "-3", "-32768")
	run("bin", "write", "-t", "i16", "-a", "--", path, "-2")

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	got := make([]int16, len(data)/2)
	if _, err := binary.Decode(data, binary.LittleEndian, got); err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]int16{1, -3, -32768, -2}, got); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
	if got := run("bin", "read", "-t", "i16", path); got != "[1, -3, -32768, -2]\n" {
		t.Errorf("read back %q", got)
	}
}

type nopWriteCloser struct{ io.Writer }

func (nopWriteCloser) Close() error { return nil }
