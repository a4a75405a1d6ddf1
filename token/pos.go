package token

import "fmt"

// Pos is a location in the scanned input. Line and Col are 1-based and
// count runes; Offset is a 0-based byte offset into the normalized input.
type Pos struct {
	Offset int
	Line   int
	Col    int
}

func (p Pos) String() string {
	return fmt.Sprintf("line %d, column %d", p.Line, p.Col)
}

// IsZero reports whether p carries no location, which is the case for
// nodes built in memory rather than parsed.
func (p Pos) IsZero() bool {
	return p.Line == 0
}
