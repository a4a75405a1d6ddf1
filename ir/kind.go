package ir

import "fmt"

type Kind uint8

const (
	NullKind Kind = iota
	BoolKind
	IntKind
	FloatKind
	StringKind
	SequenceKind
	MappingKind
	AliasKind
)

func (k Kind) String() string {
	s, ok := map[Kind]string{
		NullKind:     "Null",
		BoolKind:     "Bool",
		IntKind:      "Int",
		FloatKind:    "Float",
		StringKind:   "String",
		SequenceKind: "Sequence",
		MappingKind:  "Mapping",
		AliasKind:    "Alias",
	}[k]
	if ok {
		return s
	}
	return "<unknown kind>"
}

func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

func (k *Kind) UnmarshalText(d []byte) error {
	kk, ok := map[string]Kind{
		"Null":     NullKind,
		"Bool":     BoolKind,
		"Int":      IntKind,
		"Float":    FloatKind,
		"String":   StringKind,
		"Sequence": SequenceKind,
		"Mapping":  MappingKind,
		"Alias":    AliasKind,
	}[string(d)]
	if !ok {
		return fmt.Errorf("unrecognized kind %q", d)
	}
	*k = kk
	return nil
}

func Kinds() []Kind {
	return []Kind{
		NullKind,
		BoolKind,
		IntKind,
		FloatKind,
		StringKind,
		SequenceKind,
		MappingKind,
		AliasKind,
	}
}

// IsScalar reports whether k is one of the scalar kinds.
func (k Kind) IsScalar() bool {
	return k <= StringKind
}

func (k Kind) IsCollection() bool {
	return k == SequenceKind || k == MappingKind
}
