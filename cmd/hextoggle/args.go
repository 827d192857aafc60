package main

import (
	"os"
	"strings"

	"github.com/printfn/hextoggle/errors"
)

// operand is a file name argument, or "-" for stdin or stdout.
type operand struct {
	name  string
	stdio bool
}

func (o operand) String() string {
	if o.stdio {
		return "-"
	}
	return o.name
}

// splitArgs separates flags from operands.
// Flags may come before, between, or after file names.
// After "--", every argument is a file name, even "-" and "-x".
func splitArgs(args []string) (flags []string, operands []operand) {
	raw := false
	for _, a := range args {
		switch {
		case raw:
			operands = append(operands, operand{name: a})
		case a == "--":
			raw = true
		case a == "-":
			operands = append(operands, operand{stdio: true})
		case strings.HasPrefix(a, "-"):
			flags = append(flags, a)
		default:
			operands = append(operands, operand{name: a})
		}
	}
	return flags, operands
}

// resolveOperands picks the input and output of a conversion.
// One file name converts that file in place.
// With no operands, the conversion runs from stdin to stdout,
// which only makes sense when the direction is forced.
func resolveOperands(operands []operand, forced bool) (in, out operand, err error) {
	switch len(operands) {
	case 0:
		if !forced {
			return in, out, errors.WithDetail(errInvalidArgs, "no file given")
		}
		return operand{stdio: true}, operand{stdio: true}, nil
	case 1:
		return operands[0], operands[0], nil
	case 2:
		return operands[0], operands[1], nil
	}
	return in, out, errors.WithDetail(errInvalidArgs, "too many file names")
}

// inPlace reports whether in and out name the same file,
// in which case the output goes through a temporary file.
func inPlace(in, out operand) bool {
	if in.stdio || out.stdio {
		return false
	}
	if in.name == out.name {
		return true
	}
	fi, err := os.Stat(in.name)
	if err != nil {
		return false
	}
	fo, err := os.Stat(out.name)
	if err != nil {
		return false
	}
	return os.SameFile(fi, fo)
}
