package ir

import (
	"fmt"
	"strings"

	"github.com/sturdio/sturdio/token"
)

const (
	StrTag   = "!!str"
	IntTag   = "!!int"
	FloatTag = "!!float"
	BoolTag  = "!!bool"
	NullTag  = "!!null"
	SeqTag   = "!!seq"
	MapTag   = "!!map"

	longPrefix = "tag:yaml.org,2002:"
)

// NormalizeTag rewrites the verbatim forms of the standard tags, such as
// !<tag:yaml.org,2002:str>, to their short !! form.
func NormalizeTag(tag string) string {
	if strings.HasPrefix(tag, "!<") && strings.HasSuffix(tag, ">") {
		tag = tag[2 : len(tag)-1]
	}
	if rest, ok := strings.CutPrefix(tag, longPrefix); ok {
		return "!!" + rest
	}
	return tag
}

// IsCoreTag reports whether tag is one of the standard tags.
func IsCoreTag(tag string) bool {
	switch tag {
	case StrTag, IntTag, FloatTag, BoolTag, NullTag, SeqTag, MapTag:
		return true
	}
	return false
}

// KindTag is the standard tag of a kind.
func KindTag(k Kind) string {
	switch k {
	case NullKind:
		return NullTag
	case BoolKind:
		return BoolTag
	case IntKind:
		return IntTag
	case FloatKind:
		return FloatTag
	case StringKind:
		return StrTag
	case SequenceKind:
		return SeqTag
	case MappingKind:
		return MapTag
	}
	return ""
}

// ResolveScalar resolves scalar text written with the given tag and
// style. Untagged plain scalars are resolved by s; quoted and block
// scalars, the non-specific tag "!" and tags outside the standard set
// give strings. A standard tag which does not match the text is an
// error wrapping ErrTag.
func (s *Schema) ResolveScalar(tag, text string, style token.ScalarStyle) (Node, error) {
	var res Node
	switch tag {
	case "":
		if style == token.PlainStyle {
			res = s.Resolve(text)
		} else {
			res = String(text)
		}
	case StrTag:
		res = String(text)
	case NullTag, BoolTag, IntTag, FloatTag:
		res = s.Resolve(text)
		want := tag
		if tag == FloatTag && res.Kind != FloatKind {
			if f, ok := s.floatFn(text); ok {
				res = Float(f)
			}
		}
		if KindTag(res.Kind) != want {
			return Node{}, fmt.Errorf("%w: %q is not a valid %s", ErrTag, text, tag)
		}
	case SeqTag, MapTag:
		return Node{}, fmt.Errorf("%w: scalar with tag %s", ErrTag, tag)
	default:
		res = String(text)
	}
	res.Tag = tag
	res.Text = text
	res.Style = style
	return res, nil
}
