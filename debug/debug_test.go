package debug

import (
	"bytes"
	"testing"
)

func TestLogf(t *testing.T) {
	buf := bytes.NewBuffer(nil)
	prev := SetOutput(buf)
	defer SetOutput(prev)

	Logf("state %s -> %s\n", "start", "document")
	Logf("val %s\n", map[string]any{"a": 1})

	want := "state start -> document\nval {\n   |  \"a\": 1\n   |}\n"
	if buf.String() != want {
		t.Errorf("got %q, want %q", buf.String(), want)
	}
}

func TestBoolEnv(t *testing.T) {
	t.Setenv("STURDIO_TEST_BOOL", "true")
	if !boolEnv("STURDIO_TEST_BOOL") {
		t.Error("expected true")
	}
	t.Setenv("STURDIO_TEST_BOOL", "nope")
	if boolEnv("STURDIO_TEST_BOOL") {
		t.Error("expected false for unparsable value")
	}
}
