package eval

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestOSEnv(t *testing.T) {
	t.Setenv("STURDIO_TEST_VAR", "a=b")
	if got := OSEnv()["STURDIO_TEST_VAR"]; got != "a=b" {
		t.Errorf("got %v", got)
	}
}

func TestLoadEnv(t *testing.T) {
	t.Setenv(EnvEnv, "")
	env, err := LoadEnv()
	if err != nil || env != nil {
		t.Errorf("unset: %v %v", env, err)
	}

	t.Setenv(EnvEnv, "host: h\nport: 80\nbands: [1, 2]\n")
	env, err = LoadEnv()
	if err != nil {
		t.Fatal(err)
	}
	want := Env{"host": "h", "port": int64(80), "bands": []any{int64(1), int64(2)}}
	if diff := cmp.Diff(want, env); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}

	t.Setenv(EnvEnv, "3")
	if _, err := LoadEnv(); !errors.Is(err, ErrEval) {
		t.Errorf("scalar env: %v", err)
	}
	t.Setenv(EnvEnv, "a: [")
	if _, err := LoadEnv(); err == nil {
		t.Error("expected syntax error")
	}
}

func TestMergeEnv(t *testing.T) {
	dst := Env{"a": 1, "b": map[string]any{"c": 2, "d": 3}}
	p := Env{"b": map[string]any{"c": nil}, "e": "x"}
	got, err := MergeEnv(dst, p)
	if err != nil {
		t.Fatal(err)
	}
	want := Env{"a": int64(1), "b": map[string]any{"d": int64(3)}, "e": "x"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
	if _, ok := dst["b"].(map[string]any)["c"]; !ok {
		t.Error("dst modified")
	}
}
