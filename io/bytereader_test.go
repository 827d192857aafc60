package io

import (
	"bytes"
	"io"
	"testing"
	"testing/iotest"
)

func TestByteReader(t *testing.T) {
	r := ByteReader(reader{bytes.NewReader([]byte{1})})
	c, err := r.ReadByte()
	if err != nil {
		t.Errorf("err = %v want nil", err)
	}
	if c != 1 {
		t.Errorf("c = %d want 1", c)
	}
	c, err = r.ReadByte()
	if err != io.EOF {
		t.Errorf("err = %v want %v", err, io.EOF)
	}
}

func TestDataErrByteReader(t *testing.T) {
	r := ByteReader(iotest.DataErrReader(bytes.NewReader([]byte{1})))
	c, err := r.ReadByte()
	if err != nil {
		t.Errorf("err = %v want nil", err)
	}
	if c != 1 {
		t.Errorf("c = %d want 1", c)
	}
	c, err = r.ReadByte()
	if err != io.EOF {
		t.Errorf("err = %v want %v", err, io.EOF)
	}
}

func TestStickyErrByteReader(t *testing.T) {
	r := ByteReader(iotest.TimeoutReader(reader{bytes.NewReader([]byte{1, 2})}))
	if c, err := r.ReadByte(); err != nil || c != 1 {
		t.Fatalf("ReadByte() = %d, %v want 1, nil", c, err)
	}
	_, err := r.ReadByte()
	if err != iotest.ErrTimeout {
		t.Fatalf("err = %v want %v", err, iotest.ErrTimeout)
	}
	_, err = r.ReadByte()
	if err != iotest.ErrTimeout {
		t.Errorf("err = %v want sticky %v", err, iotest.ErrTimeout)
	}
}

func TestIdentityByteReader(t *testing.T) {
	br := bytes.NewReader(nil)
	got := ByteReader(br)
	if got != br {
		t.Errorf("byte reader = %#v want %#v", got, br)
	}
}

type reader struct{ io.Reader }
