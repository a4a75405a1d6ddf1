package token

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"
)

// NeedsQuote reports whether v cannot be written as a plain scalar
// and read back as the same text. It is lexical only: whether a plain
// scalar resolves to a string is decided by a schema.
func NeedsQuote(v string) bool {
	if v == "" {
		return true
	}
	if !utf8.ValidString(v) {
		return true
	}
	switch v[0] {
	case ' ', '\t', '#', ',', '[', ']', '{', '}', '&', '*', '!', '|', '>', '\'', '"', '%', '@', '`':
		return true
	case '-', '?', ':':
		if len(v) == 1 || v[1] == ' ' || v[1] == '\t' {
			return true
		}
	}
	switch v[len(v)-1] {
	case ' ', '\t', ':':
		return true
	}
	if strings.HasPrefix(v, "---") || strings.HasPrefix(v, "...") {
		return true
	}
	if strings.Contains(v, ": ") || strings.Contains(v, " #") || strings.Contains(v, "\t#") {
		return true
	}
	for _, r := range v {
		if r == '\n' || r == utf8.RuneError || unicode.IsControl(r) || r == '\u2028' || r == '\u2029' || r == '\ufeff' {
			return true
		}
	}
	return false
}

// NeedsFlowQuote is NeedsQuote for scalars inside a flow collection,
// where flow indicators end a plain scalar.
func NeedsFlowQuote(v string) bool {
	return NeedsQuote(v) || strings.ContainsAny(v, ",[]{}")
}

// Quote returns v as a double quoted scalar. When autoSingle is set and
// v has more double quotes or backslashes than single quotes and
// nothing requiring an escape, it is single quoted instead.
func Quote(v string, autoSingle bool) string {
	nsq, nother := 0, 0
	escapes := false
	d := make([]byte, 1, len(v)+2)
	d[0] = '"'
	for _, r := range v {
		switch r {
		case '"':
			nother++
			d = append(d, '\\', '"')
		case '\\':
			nother++
			d = append(d, '\\', '\\')
		case '\'':
			nsq++
			d = append(d, '\'')
		case 0:
			escapes = true
			d = append(d, '\\', '0')
		case '\a':
			escapes = true
			d = append(d, '\\', 'a')
		case '\b':
			escapes = true
			d = append(d, '\\', 'b')
		case '\t':
			escapes = true
			d = append(d, '\\', 't')
		case '\n':
			escapes = true
			d = append(d, '\\', 'n')
		case '\v':
			escapes = true
			d = append(d, '\\', 'v')
		case '\f':
			escapes = true
			d = append(d, '\\', 'f')
		case '\r':
			escapes = true
			d = append(d, '\\', 'r')
		case 0x1b:
			escapes = true
			d = append(d, '\\', 'e')
		case '\u0085':
			escapes = true
			d = append(d, '\\', 'N')
		case '\u00a0':
			escapes = true
			d = append(d, '\\', '_')
		case '\u2028':
			escapes = true
			d = append(d, '\\', 'L')
		case '\u2029':
			escapes = true
			d = append(d, '\\', 'P')
		default:
			switch {
			case r == utf8.RuneError:
				escapes = true
				d = append(d, "\ufffd"...)
			case unicode.IsControl(r) || r == '\ufeff':
				escapes = true
				d = fmt.Appendf(d, `\u%04x`, r)
			default:
				d = utf8.AppendRune(d, r)
			}
		}
	}
	d = append(d, '"')
	if !autoSingle || escapes || nsq >= nother {
		return string(d)
	}
	return "'" + strings.ReplaceAll(v, "'", "''") + "'"
}
