// Package toggle converts a stream to whichever form it isn't in:
// a hex dump becomes binary, and anything else becomes a hex dump.
package toggle

import (
	"bufio"
	"hash"
	"io"
	"strconv"
	"time"

	"golang.org/x/crypto/sha3"

	"github.com/printfn/hextoggle/encoding/hexdump"
	"github.com/printfn/hextoggle/errors"
	"github.com/printfn/hextoggle/metrics"
)

// ErrInternal is the root of errors that mean
// the converter reached a state it should never reach.
var ErrInternal = errors.New("internal assertion failed")

// Mode selects the direction of a conversion.
type Mode int

const (
	// Auto decodes input that starts with hexdump.Header
	// and encodes anything else.
	Auto Mode = iota

	// Decode treats all input as a dump, header or not.
	Decode

	// Encode treats all input as binary.
	Encode
)

func (m Mode) String() string {
	switch m {
	case Auto:
		return "auto"
	case Decode:
		return "decode"
	case Encode:
		return "encode"
	}
	return "Mode(" + strconv.Itoa(int(m)) + ")"
}

// Options configures Convert.
type Options struct {
	Mode Mode

	// BatchBlocks is the number of 16-byte blocks
	// encoded at a time. Zero means hexdump.DefaultBatchBlocks.
	BatchBlocks int
}

// Report describes a finished conversion.
type Report struct {
	Mode         Mode // Decode or Encode, the direction taken
	Fallback     bool // Auto mode found no header and encoded
	BytesRead    uint64
	BytesWritten uint64

	// Digest is the SHA3-256 hash of the binary side:
	// the input when encoding, the output when decoding.
	Digest []byte
}

// Convert reads r to the end and writes its conversion to w.
// If w is nil, Convert does all the work but writes nothing,
// which checks that a dump is well formed.
//
// If the input is not a valid dump, the returned error
// has a *hexdump.FormatError as its root.
func Convert(w io.Writer, r io.Reader, opt Options) (*Report, error) {
	defer metrics.RecordElapsed(time.Now())

	// The decoder and the encoder share one buffered reader,
	// so input the probe buffered but didn't consume stays available.
	br := bufio.NewReader(r)
	h := sha3.New256()

	if opt.Mode == Encode {
		return encode(w, br, nil, h, opt)
	}

	dw := io.Writer(h)
	if w != nil {
		dw = io.MultiWriter(w, h)
	}
	res := hexdump.DecodeStream(dw, br, opt.Mode == Auto)
	switch res.Status {
	case hexdump.Decoded:
		return &Report{
			Mode:         Decode,
			BytesRead:    res.BytesRead,
			BytesWritten: res.BytesWritten,
			Digest:       h.Sum(nil),
		}, nil
	case hexdump.RetryAsEncode:
		metrics.Fallbacks.Add()
		rep, err := encode(w, br, res.Prefix, h, opt)
		if rep != nil {
			rep.Fallback = true
		}
		return rep, err
	case hexdump.Invalid:
		metrics.Invalid.Add()
		ferr, ok := res.Err.(*hexdump.FormatError)
		if !ok {
			return nil, errors.Wrapf(ErrInternal, "invalid input without a format error: %v", res.Err)
		}
		return nil, errors.WithData(errors.Wrap(ferr, "decoding"),
			"offset", ferr.Offset,
			"line", ferr.Line,
			"col", ferr.Col,
		)
	case hexdump.Failed:
		return nil, errors.Wrap(res.Err, "decoding")
	}
	return nil, errors.Wrapf(ErrInternal, "decoder returned status %v", res.Status)
}

func encode(w io.Writer, r io.Reader, prefix []byte, h hash.Hash, opt Options) (*Report, error) {
	h.Write(prefix)
	st, err := hexdump.EncodeStream(w, io.TeeReader(r, h), prefix, opt.BatchBlocks)
	if err != nil {
		return nil, errors.Wrap(err, "encoding")
	}
	return &Report{
		Mode:         Encode,
		BytesRead:    st.BytesRead,
		BytesWritten: st.BytesWritten,
		Digest:       h.Sum(nil),
	}, nil
}
