package token

import (
	"fmt"
)

type TokenType int

const (
	TStreamStart TokenType = iota
	TStreamEnd
	TDocStart
	TDocEnd
	TBlockSeqStart
	TBlockMapStart
	TBlockEnd
	TFlowSeqStart
	TFlowSeqEnd
	TFlowMapStart
	TFlowMapEnd
	TBlockEntry
	TFlowEntry
	TKey
	TValue
	TAlias
	TAnchor
	TTag
	TScalar
)

func (t TokenType) String() string {
	s, ok := map[TokenType]string{
		TStreamStart:   "TStreamStart",
		TStreamEnd:     "TStreamEnd",
		TDocStart:      "TDocStart",
		TDocEnd:        "TDocEnd",
		TBlockSeqStart: "TBlockSeqStart",
		TBlockMapStart: "TBlockMapStart",
		TBlockEnd:      "TBlockEnd",
		TFlowSeqStart:  "TFlowSeqStart",
		TFlowSeqEnd:    "TFlowSeqEnd",
		TFlowMapStart:  "TFlowMapStart",
		TFlowMapEnd:    "TFlowMapEnd",
		TBlockEntry:    "TBlockEntry",
		TFlowEntry:     "TFlowEntry",
		TKey:           "TKey",
		TValue:         "TValue",
		TAlias:         "TAlias",
		TAnchor:        "TAnchor",
		TTag:           "TTag",
		TScalar:        "TScalar",
	}[t]
	if ok {
		return s
	}
	return fmt.Sprintf("TokenType(%d)", int(t))
}

// Describe gives the token type in the words used by error messages.
func (t TokenType) Describe() string {
	switch t {
	case TStreamEnd:
		return "end of stream"
	case TDocStart:
		return "document start"
	case TDocEnd:
		return "document end"
	case TBlockSeqStart, TBlockEntry:
		return "'-' indicator"
	case TBlockMapStart:
		return "block mapping"
	case TBlockEnd:
		return "end of block"
	case TFlowSeqStart:
		return "'['"
	case TFlowSeqEnd:
		return "']'"
	case TFlowMapStart:
		return "'{'"
	case TFlowMapEnd:
		return "'}'"
	case TFlowEntry:
		return "','"
	case TKey:
		return "'?' indicator"
	case TValue:
		return "':' indicator"
	case TAlias:
		return "alias"
	case TAnchor:
		return "anchor"
	case TTag:
		return "tag"
	case TScalar:
		return "scalar"
	}
	return t.String()
}

type ScalarStyle int

const (
	PlainStyle ScalarStyle = iota
	SingleQuotedStyle
	DoubleQuotedStyle
	LiteralStyle
	FoldedStyle
)

func (s ScalarStyle) String() string {
	switch s {
	case PlainStyle:
		return "plain"
	case SingleQuotedStyle:
		return "single"
	case DoubleQuotedStyle:
		return "double"
	case LiteralStyle:
		return "literal"
	case FoldedStyle:
		return "folded"
	}
	return fmt.Sprintf("ScalarStyle(%d)", int(s))
}

// Token is one lexical unit. Value holds the decoded scalar text, the
// anchor or alias name, or the tag as written.
type Token struct {
	Type  TokenType
	Pos   Pos
	End   Pos
	Value string
	Style ScalarStyle
}

func (t *Token) Info() string {
	return fmt.Sprintf("%s %s", t.Type, t.Pos.String())
}

func (t *Token) String() string {
	switch t.Type {
	case TScalar:
		return fmt.Sprintf("%s(%s %q)", t.Type, t.Style, t.Value)
	case TAlias, TAnchor, TTag:
		return fmt.Sprintf("%s(%s)", t.Type, t.Value)
	default:
		return t.Type.String()
	}
}
