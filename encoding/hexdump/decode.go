package hexdump

import (
	"bufio"
	"fmt"
	"io"
)

// Position locates a character in a dump.
type Position struct {
	Offset uint64 // characters before this one, counting from 0
	Line   uint64 // counting from 1
	Col    uint64 // counting from 1; 0 for a newline
}

// A FormatError reports malformed input to the decoder.
type FormatError struct {
	Position
	Char byte // offending character; unset if EOF
	EOF  bool // input ended between two hex digits
}

func (e *FormatError) Error() string {
	what := fmt.Sprintf("unexpected %q", e.Char)
	if e.EOF {
		what = "unexpected end of input inside a byte"
	}
	return fmt.Sprintf("invalid format at character %d, line %d, col %d: %s",
		e.Offset, e.Line, e.Col, what)
}

// A Decoder converts a dump to binary one character at a time.
// The zero value is not usable; use NewDecoder.
type Decoder struct {
	w *bufio.Writer // nil for a dry run

	pending  byte // first digit of a pair, if havePend
	havePend bool
	skipLine bool // inside a preview, until the next newline
	depth    int  // nesting of bracketed text

	pos      Position // of the last character consumed
	consumed uint64
	written  uint64
	err      error
}

// NewDecoder returns a Decoder that writes decoded bytes to w.
// If w is nil, the decoder still checks its input
// but writes nothing.
// Decoded bytes are buffered; call Close to flush them.
func NewDecoder(w io.Writer) *Decoder {
	d := &Decoder{pos: Position{Line: 1}}
	if w != nil {
		d.w = bufio.NewWriter(w)
	}
	return d
}

// Consume feeds one character to d.
// It returns a *FormatError if c cannot appear where it does.
// Once Consume has returned an error,
// it returns the same error for every later call.
func (d *Decoder) Consume(c byte) error {
	if d.err != nil {
		return d.err
	}
	d.pos.Offset = d.consumed
	d.consumed++
	if c == '\n' {
		d.pos.Line++
		d.pos.Col = 0
	} else {
		d.pos.Col++
	}

	ok, err := d.step(c)
	if err != nil {
		d.err = err
		return err
	}
	if !ok {
		d.err = &FormatError{Position: d.pos, Char: c}
	}
	return d.err
}

// step applies the transition for c.
// Precedence matters: a preview may contain brackets,
// so the skip-line rules come before the bracket rules.
func (d *Decoder) step(c byte) (ok bool, err error) {
	if d.havePend {
		lo, ok := fromHexChar(c)
		if !ok {
			return false, nil
		}
		d.havePend = false
		return true, d.emit(d.pending<<4 | lo)
	}
	switch {
	case d.skipLine && c != '\n':
		return true, nil
	case c == '\n':
		d.skipLine = false
		return true, nil
	case c == '|':
		d.skipLine = true
		return true, nil
	case c == '[':
		d.depth++
		return true, nil
	case d.depth > 0 && c == ']':
		d.depth--
		return true, nil
	case d.depth > 0:
		return true, nil
	}
	if hi, ok := fromHexChar(c); ok {
		d.pending = hi
		d.havePend = true
		return true, nil
	}
	switch c {
	case ' ', '\n', '\r', '\t':
		return true, nil
	}
	return false, nil
}

func (d *Decoder) emit(b byte) error {
	d.written++
	if d.w == nil {
		return nil
	}
	return d.w.WriteByte(b)
}

// Close reports an error if the input ended halfway through a byte,
// and otherwise flushes the decoded bytes to the underlying writer.
func (d *Decoder) Close() error {
	if d.err != nil {
		return d.err
	}
	if d.havePend {
		pos := d.pos
		pos.Offset = d.consumed
		d.err = &FormatError{Position: pos, EOF: true}
		return d.err
	}
	if d.w != nil {
		return d.w.Flush()
	}
	return nil
}

// Pos returns the position of the last character consumed.
func (d *Decoder) Pos() Position {
	return d.pos
}

// Consumed returns the number of characters consumed so far.
func (d *Decoder) Consumed() uint64 {
	return d.consumed
}

// Written returns the number of bytes decoded so far.
func (d *Decoder) Written() uint64 {
	return d.written
}
