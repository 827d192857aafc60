package toggle

import (
	"bytes"
	"strings"
	"testing"

	"golang.org/x/crypto/sha3"

	"github.com/printfn/hextoggle/encoding/hexdump"
	"github.com/printfn/hextoggle/errors"
	"github.com/printfn/hextoggle/testutil"
)

func dump(t *testing.T, data []byte) []byte {
	var buf bytes.Buffer
	_, err := hexdump.EncodeStream(&buf, bytes.NewReader(data), nil, 0)
	if err != nil {
		testutil.FatalErr(t, err)
	}
	return buf.Bytes()
}

func digest(b []byte) []byte {
	sum := sha3.Sum256(b)
	return sum[:]
}

func TestConvertAutoEncodes(t *testing.T) {
	cases := []string{
		"",
		"x",
		"|",
		"| hextoggle",
		"| hextoggle output fil",
		"| hextoggle output filE and more",
		"not a dump at all, just text\n",
		strings.Repeat("\x00\xff", 100),
	}
	for _, in := range cases {
		var auto, forced bytes.Buffer
		rep, err := Convert(&auto, strings.NewReader(in), Options{})
		if err != nil {
			testutil.FatalErr(t, err)
		}
		_, err = Convert(&forced, strings.NewReader(in), Options{Mode: Encode})
		if err != nil {
			testutil.FatalErr(t, err)
		}
		testutil.ExpectEqual(t, auto.Bytes(), forced.Bytes(), "auto vs forced encode of "+in)
		testutil.ExpectEqual(t, auto.Bytes(), dump(t, []byte(in)), "auto encode of "+in)

		want := &Report{
			Mode:         Encode,
			Fallback:     true,
			BytesRead:    uint64(len(in)),
			BytesWritten: uint64(auto.Len()),
			Digest:       digest([]byte(in)),
		}
		testutil.ExpectEqual(t, rep, want, "report for "+in)
	}
}

func TestConvertRoundTrip(t *testing.T) {
	for _, n := range []int{0, 1, 15, 16, 17, 100, 1024, 5000} {
		data := make([]byte, n)
		for i := range data {
			data[i] = byte(i*7 + n)
		}

		var enc bytes.Buffer
		rep, err := Convert(&enc, bytes.NewReader(data), Options{BatchBlocks: 3})
		if err != nil {
			testutil.FatalErr(t, err)
		}
		if rep.Mode != Encode {
			t.Fatalf("n=%d: first conversion mode = %v want %v", n, rep.Mode, Encode)
		}

		var dec bytes.Buffer
		rep, err = Convert(&dec, bytes.NewReader(enc.Bytes()), Options{})
		if err != nil {
			testutil.FatalErr(t, err)
		}
		want := &Report{
			Mode:         Decode,
			BytesRead:    uint64(enc.Len()),
			BytesWritten: uint64(n),
			Digest:       digest(data),
		}
		testutil.ExpectEqual(t, rep, want, "decode report")
		if !bytes.Equal(dec.Bytes(), data) {
			t.Errorf("n=%d: round trip = %x want %x", n, dec.Bytes(), data)
		}
	}
}

func TestConvertForcedDecode(t *testing.T) {
	var out bytes.Buffer
	rep, err := Convert(&out, strings.NewReader("48 65 6c 6c 6f"), Options{Mode: Decode})
	if err != nil {
		testutil.FatalErr(t, err)
	}
	if got := out.String(); got != "Hello" {
		t.Errorf("Convert = %q want %q", got, "Hello")
	}
	if rep.Mode != Decode || rep.Fallback {
		t.Errorf("report = %+v want decode without fallback", rep)
	}

	// Without the header, auto mode encodes the same text.
	out.Reset()
	rep, err = Convert(&out, strings.NewReader("48 65 6c 6c 6f"), Options{})
	if err != nil {
		testutil.FatalErr(t, err)
	}
	if !rep.Fallback || !bytes.HasPrefix(out.Bytes(), []byte(hexdump.Header+"\n")) {
		t.Errorf("auto convert of bare hex = %q, %+v want a dump", out.Bytes(), rep)
	}
}

func TestConvertInvalid(t *testing.T) {
	in := hexdump.Header + "\n41 4x\n"
	var out bytes.Buffer
	rep, err := Convert(&out, strings.NewReader(in), Options{})
	if rep != nil {
		t.Errorf("report = %+v want nil", rep)
	}
	ferr, ok := errors.Root(err).(*hexdump.FormatError)
	if !ok {
		t.Fatalf("Convert error root = %T (%v) want *hexdump.FormatError", errors.Root(err), err)
	}
	want := hexdump.Position{Offset: 28, Line: 2, Col: 5}
	testutil.ExpectEqual(t, ferr.Position, want, "error position")
	testutil.ExpectEqual(t, errors.Data(err), map[string]interface{}{
		"offset": uint64(28),
		"line":   uint64(2),
		"col":    uint64(5),
	}, "error data")
}

func TestConvertDryRun(t *testing.T) {
	data := []byte("dry run data")
	rep, err := Convert(nil, bytes.NewReader(data), Options{Mode: Encode})
	if err != nil {
		testutil.FatalErr(t, err)
	}
	testutil.ExpectEqual(t, rep.BytesWritten, uint64(len(dump(t, data))), "dry encode size")

	rep, err = Convert(nil, bytes.NewReader(dump(t, data)), Options{})
	if err != nil {
		testutil.FatalErr(t, err)
	}
	testutil.ExpectEqual(t, rep.Digest, digest(data), "dry decode digest")
	testutil.ExpectEqual(t, rep.BytesWritten, uint64(len(data)), "dry decode size")

	_, err = Convert(nil, strings.NewReader(hexdump.Header+"\nq"), Options{})
	if _, ok := errors.Root(err).(*hexdump.FormatError); !ok {
		t.Errorf("dry run of bad dump error = %v want a format error", err)
	}
}

func TestModeString(t *testing.T) {
	cases := map[Mode]string{
		Auto:    "auto",
		Decode:  "decode",
		Encode:  "encode",
		Mode(9): "Mode(9)",
	}
	for m, want := range cases {
		if got := m.String(); got != want {
			t.Errorf("Mode(%d).String() = %q want %q", int(m), got, want)
		}
	}
}
