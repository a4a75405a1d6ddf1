package ir

import (
	"math"
	"strconv"
	"strings"
)

// Schema resolves the text of plain scalars to typed values.
type Schema struct {
	name    string
	null    map[string]bool
	bools   map[string]bool
	// intFn reports whether text is written as an integer and, if so,
	// whether the value fits an int64.
	intFn   func(string) (v int64, isInt, ok bool)
	floatFn func(string) (float64, bool)
}

func (s *Schema) Name() string {
	return s.name
}

func (s *Schema) String() string {
	return s.name
}

// Resolve returns a node holding the value of the plain scalar text.
// Integers outside the int64 range, in any base, resolve as strings
// holding their text.
func (s *Schema) Resolve(text string) Node {
	if s.null[text] {
		return Null()
	}
	if b, ok := s.bools[text]; ok {
		return Bool(b)
	}
	if i, isInt, ok := s.intFn(text); isInt {
		if !ok {
			return String(text)
		}
		return Int(i)
	}
	if f, ok := s.floatFn(text); ok {
		return Float(f)
	}
	return String(text)
}

// ResolvesAsString reports whether text written as a plain scalar would
// read back as the string text.
func (s *Schema) ResolvesAsString(text string) bool {
	return s.Resolve(text).Kind == StringKind
}

// IsNumeric reports whether text is written as a number, whether or not
// its value is in range.
func (s *Schema) IsNumeric(text string) bool {
	if _, isInt, _ := s.intFn(text); isInt {
		return true
	}
	_, ok := s.floatFn(text)
	return ok
}

// CoreSchema is the YAML 1.2 core schema.
var CoreSchema = &Schema{
	name: "core",
	null: map[string]bool{"": true, "~": true, "null": true, "Null": true, "NULL": true},
	bools: map[string]bool{
		"true": true, "True": true, "TRUE": true,
		"false": false, "False": false, "FALSE": false,
	},
	intFn:   coreInt,
	floatFn: coreFloat,
}

// YAML11Schema also accepts the YAML 1.1 forms: yes/no/on/off/y/n
// booleans, 0b binary and leading-zero octal integers, and '_' digit
// separators.
var YAML11Schema = &Schema{
	name:    "yaml1.1",
	null:    CoreSchema.null,
	bools:   yaml11Bools(),
	intFn:   yaml11Int,
	floatFn: yaml11Float,
}

// SchemaByName returns "core" or "yaml1.1".
func SchemaByName(name string) (*Schema, bool) {
	switch name {
	case "core", "1.2", "yaml1.2":
		return CoreSchema, true
	case "yaml1.1", "1.1":
		return YAML11Schema, true
	}
	return nil, false
}

func yaml11Bools() map[string]bool {
	res := map[string]bool{}
	for _, w := range []string{"y", "yes", "true", "on"} {
		res[w] = true
		res[strings.ToUpper(w)] = true
		res[strings.ToUpper(w[:1])+w[1:]] = true
	}
	for _, w := range []string{"n", "no", "false", "off"} {
		res[w] = false
		res[strings.ToUpper(w)] = false
		res[strings.ToUpper(w[:1])+w[1:]] = false
	}
	return res
}

func splitSign(s string) (neg bool, rest string) {
	if len(s) > 0 && (s[0] == '-' || s[0] == '+') {
		return s[0] == '-', s[1:]
	}
	return false, s
}

func allIn(s, set string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if strings.IndexByte(set, s[i]) < 0 {
			return false
		}
	}
	return true
}

const (
	decDigits = "0123456789"
	octDigits = "01234567"
	hexDigits = "0123456789abcdefABCDEF"
)

func signed(neg bool, u uint64) (int64, bool) {
	if neg {
		if u > 1<<63 {
			return 0, false
		}
		return -int64(u), true
	}
	if u > math.MaxInt64 {
		return 0, false
	}
	return int64(u), true
}

// parseUnsigned parses digits already checked to be in base. Only a
// value out of range fails.
func parseUnsigned(digits string, base int, neg bool) (v int64, isInt, ok bool) {
	u, err := strconv.ParseUint(digits, base, 64)
	if err != nil {
		return 0, true, false
	}
	v, ok = signed(neg, u)
	return v, true, ok
}

func coreInt(s string) (int64, bool, bool) {
	if strings.HasPrefix(s, "0o") && allIn(s[2:], octDigits) {
		return parseUnsigned(s[2:], 8, false)
	}
	if strings.HasPrefix(s, "0x") && allIn(s[2:], hexDigits) {
		return parseUnsigned(s[2:], 16, false)
	}
	neg, rest := splitSign(s)
	if !allIn(rest, decDigits) {
		return 0, false, false
	}
	return parseUnsigned(rest, 10, neg)
}

func yaml11Int(s string) (int64, bool, bool) {
	neg, rest := splitSign(s)
	rest = strings.ReplaceAll(rest, "_", "")
	switch {
	case strings.HasPrefix(rest, "0b") && allIn(rest[2:], "01"):
		return parseUnsigned(rest[2:], 2, neg)
	case strings.HasPrefix(rest, "0x") && allIn(rest[2:], hexDigits):
		return parseUnsigned(rest[2:], 16, neg)
	case strings.HasPrefix(rest, "0o") && allIn(rest[2:], octDigits):
		return parseUnsigned(rest[2:], 8, neg)
	case len(rest) > 1 && rest[0] == '0' && allIn(rest[1:], octDigits):
		return parseUnsigned(rest[1:], 8, neg)
	case allIn(rest, decDigits):
		return parseUnsigned(rest, 10, neg)
	}
	return 0, false, false
}

func special(s string) (float64, bool) {
	neg, rest := splitSign(s)
	switch rest {
	case ".inf", ".Inf", ".INF":
		if neg {
			return math.Inf(-1), true
		}
		return math.Inf(1), true
	case ".nan", ".NaN", ".NAN":
		if s != rest {
			return 0, false
		}
		return math.NaN(), true
	}
	return 0, false
}

// isDecimalFloat matches [-+]?(\.[0-9]+|[0-9]+(\.[0-9]*)?)([eE][-+]?[0-9]+)?
func isDecimalFloat(s string) bool {
	_, s = splitSign(s)
	i := 0
	intDigits := 0
	for i < len(s) && s[i] >= '0' && s[i] <= '9' {
		i++
		intDigits++
	}
	fracDigits := 0
	if i < len(s) && s[i] == '.' {
		i++
		for i < len(s) && s[i] >= '0' && s[i] <= '9' {
			i++
			fracDigits++
		}
	}
	if intDigits == 0 && fracDigits == 0 {
		return false
	}
	if i < len(s) && (s[i] == 'e' || s[i] == 'E') {
		i++
		if i < len(s) && (s[i] == '-' || s[i] == '+') {
			i++
		}
		expDigits := 0
		for i < len(s) && s[i] >= '0' && s[i] <= '9' {
			i++
			expDigits++
		}
		if expDigits == 0 {
			return false
		}
	}
	return i == len(s)
}

func coreFloat(s string) (float64, bool) {
	if f, ok := special(s); ok {
		return f, true
	}
	if !isDecimalFloat(s) {
		return 0, false
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil && !isRangeErr(err) {
		return 0, false
	}
	return f, true
}

func yaml11Float(s string) (float64, bool) {
	if f, ok := special(s); ok {
		return f, true
	}
	return coreFloat(strings.ReplaceAll(s, "_", ""))
}

func isRangeErr(err error) bool {
	ne, ok := err.(*strconv.NumError)
	return ok && ne.Err == strconv.ErrRange
}
