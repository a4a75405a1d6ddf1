package token

import "testing"

func TestNeedsQuote(t *testing.T) {
	cases := map[string]bool{
		"":         true,
		"abc":      false,
		"a b":      false,
		" a":       true,
		"a ":       true,
		"- a":      true,
		"-a":       false,
		"a: b":     true,
		"a:b":      false,
		"a #b":     true,
		"a#b":      false,
		"#a":       true,
		"line\nbr": true,
		"---":      true,
		"*x":       true,
		"ünï":      false,
	}
	for in, want := range cases {
		if got := NeedsQuote(in); got != want {
			t.Errorf("NeedsQuote(%q) = %t", in, got)
		}
	}
	if !NeedsFlowQuote("a,b") || NeedsFlowQuote("ab") {
		t.Error("NeedsFlowQuote")
	}
}

func TestQuoteRoundTrip(t *testing.T) {
	ins := []string{"", "a", "it's", `say "hi"`, `back\slash`, "tab\tnl\n", "\x00\x1b\u0085\u2028", "é☺"}
	for _, in := range ins {
		for _, auto := range []bool{false, true} {
			q := Quote(in, auto)
			got := scalars(t, q)
			if len(got) != 1 || got[0] != in {
				t.Errorf("Quote(%q, %t) = %s scans as %q", in, auto, q, got)
			}
		}
	}
	if q := Quote(`say "hi"`, true); q != `'say "hi"'` {
		t.Errorf("got %s", q)
	}
}
