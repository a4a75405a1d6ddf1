package token

import (
	"errors"
	"fmt"
)

var (
	ErrSyntax = errors.New("syntax error")
)

// PosErr is an error at a position of the input.
type PosErr struct {
	Err error
	Pos Pos
}

func (e *PosErr) Unwrap() error {
	return e.Err
}

func (e *PosErr) Error() string {
	return fmt.Sprintf("%s at %s", e.Err.Error(), e.Pos.String())
}

func NewPosErr(e error, p Pos) *PosErr {
	return &PosErr{Err: e, Pos: p}
}

// SyntaxErr builds a positioned syntax error.
func SyntaxErr(p Pos, format string, args ...any) error {
	return NewPosErr(fmt.Errorf("%w: %s", ErrSyntax, fmt.Sprintf(format, args...)), p)
}

func ExpectedErr(what string, p Pos) error {
	return SyntaxErr(p, "did not find expected %s", what)
}

func UnexpectedErr(what string, p Pos) error {
	return SyntaxErr(p, "unexpected %s", what)
}
