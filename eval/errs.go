package eval

import "errors"

var ErrEval = errors.New("evaluation error")
