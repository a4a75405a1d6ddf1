package parse

import "fmt"

// State is the position of the parser in the document grammar.
//
// A document moves from StateStart to StateDocument when its first token
// is seen, to StateBlock or StateFlow while a collection of that style is
// open, and to StateDocumentEnd once its root is complete. StateError is
// entered on any error and is final. After StateDocumentEnd the parser
// returns to StateStart for the next document.
type State int

const (
	StateStart State = iota
	StateDocument
	StateBlock
	StateFlow
	StateDocumentEnd
	StateError
)

func (s State) String() string {
	switch s {
	case StateStart:
		return "start"
	case StateDocument:
		return "document"
	case StateBlock:
		return "block"
	case StateFlow:
		return "flow"
	case StateDocumentEnd:
		return "document end"
	case StateError:
		return "error"
	}
	return fmt.Sprintf("State(%d)", int(s))
}
