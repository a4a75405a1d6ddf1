package encode

import "github.com/sturdio/sturdio/format"

const (
	DefaultIndent        = 2
	DefaultFlowThreshold = 4
	DefaultMaxFlowWidth  = 80
)

// EncState holds the options of an encoding.
type EncState struct {
	format    format.Format
	indent    int
	flowMax   int
	flowWidth int

	Color func(Colorable, string) string
}

type EncodeOption func(*EncState)

func newEncState(opts []EncodeOption) *EncState {
	es := &EncState{
		indent:    DefaultIndent,
		flowMax:   DefaultFlowThreshold,
		flowWidth: DefaultMaxFlowWidth,
	}
	for _, opt := range opts {
		opt(es)
	}
	if es.indent < 1 {
		es.indent = DefaultIndent
	}
	return es
}

func EncodeFormat(f format.Format) EncodeOption {
	return func(es *EncState) { es.format = f }
}

// FormatFromOpts extracts the format from encode options.
func FormatFromOpts(opts ...EncodeOption) format.Format {
	return newEncState(opts).format
}

// Indent sets the number of spaces per nesting level.
func Indent(n int) EncodeOption {
	return func(es *EncState) { es.indent = n }
}

// FlowThreshold is the largest number of entries a collection may have
// and still be written in flow style. 0 writes every non-empty
// collection in block style.
func FlowThreshold(n int) EncodeOption {
	return func(es *EncState) { es.flowMax = n }
}

// MaxFlowWidth is the widest a flow collection may be written.
func MaxFlowWidth(n int) EncodeOption {
	return func(es *EncState) { es.flowWidth = n }
}

func EncodeColors(c *Colors) EncodeOption {
	return func(es *EncState) {
		if c == nil {
			es.Color = nil
			return
		}
		es.Color = c.Color
	}
}
