package binfile

import (
	"fmt"
	"os"
)

type Mode int

const (
	// ReadOnly reads an existing resource.
	ReadOnly Mode = iota
	// WriteOnly creates or truncates, and grows on write.
	WriteOnly
	// ReadWrite reads and overwrites an existing resource without
	// changing its length.
	ReadWrite
	// ReadWriteGrow creates or truncates, reads, and grows on write.
	ReadWriteGrow
	// Append writes at the end, growing. The cursor starts at the end.
	Append
	// AppendRead reads from the cursor, which starts at 0, and
	// writes at the end.
	AppendRead
)

// ParseMode parses the fopen style mode strings r, w, rw, r+, w+, a and
// a+. A 'b' is accepted and ignored.
func ParseMode(s string) (Mode, error) {
	m, ok := map[string]Mode{
		"r":   ReadOnly,
		"rb":  ReadOnly,
		"w":   WriteOnly,
		"wb":  WriteOnly,
		"rw":  ReadWrite,
		"r+":  ReadWrite,
		"rb+": ReadWrite,
		"r+b": ReadWrite,
		"w+":  ReadWriteGrow,
		"wb+": ReadWriteGrow,
		"w+b": ReadWriteGrow,
		"a":   Append,
		"ab":  Append,
		"a+":  AppendRead,
		"ab+": AppendRead,
		"a+b": AppendRead,
	}[s]
	if !ok {
		return 0, fmt.Errorf("%w: unknown mode %q", ErrMode, s)
	}
	return m, nil
}

func (m Mode) String() string {
	switch m {
	case ReadOnly:
		return "r"
	case WriteOnly:
		return "w"
	case ReadWrite:
		return "r+"
	case ReadWriteGrow:
		return "w+"
	case Append:
		return "a"
	case AppendRead:
		return "a+"
	default:
		return fmt.Sprintf("<mode %d>", int(m))
	}
}

func (m Mode) Readable() bool {
	return m != WriteOnly && m != Append
}

func (m Mode) Writable() bool {
	return m != ReadOnly
}

// Growable reports whether writes may extend the resource.
func (m Mode) Growable() bool {
	switch m {
	case WriteOnly, ReadWriteGrow, Append, AppendRead:
		return true
	}
	return false
}

// Appends reports whether every write goes to the end.
func (m Mode) Appends() bool {
	return m == Append || m == AppendRead
}

func (m Mode) truncates() bool {
	return m == WriteOnly || m == ReadWriteGrow
}

func (m Mode) osFlags() int {
	switch m {
	case WriteOnly:
		return os.O_WRONLY | os.O_CREATE | os.O_TRUNC
	case ReadWrite:
		return os.O_RDWR
	case ReadWriteGrow:
		return os.O_RDWR | os.O_CREATE | os.O_TRUNC
	case Append:
		return os.O_WRONLY | os.O_CREATE
	case AppendRead:
		return os.O_RDWR | os.O_CREATE
	}
	return os.O_RDONLY
}
