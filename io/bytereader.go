// Package io supplements the standard io package
// with helpers for character-at-a-time readers.
package io

import "io"

// ByteReader returns an io.ByteReader that reads from r.
// If r already implements io.ByteReader, it is returned as-is.
//
// The returned reader never reports a byte and an error
// together: if the underlying Read yields data along with
// an error, the byte is returned first and the error is
// held until the next call.
func ByteReader(r io.Reader) io.ByteReader {
	if br, ok := r.(io.ByteReader); ok {
		return br
	}
	return &byteReader{r: r}
}

type byteReader struct {
	r   io.Reader
	buf [1]byte
	err error
}

func (r *byteReader) ReadByte() (byte, error) {
	if r.err != nil {
		return 0, r.err
	}
	for {
		n, err := r.r.Read(r.buf[:])
		if n > 0 {
			r.err = err
			return r.buf[0], nil
		}
		if err != nil {
			r.err = err
			return 0, err
		}
	}
}
