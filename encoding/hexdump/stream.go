package hexdump

import (
	"io"
	"strconv"

	"github.com/printfn/hextoggle/encoding/bufpool"
	"github.com/printfn/hextoggle/errors"
	hexio "github.com/printfn/hextoggle/io"
	"github.com/printfn/hextoggle/metrics"
)

// Stats counts the bytes that went into and came out of a conversion.
type Stats struct {
	BytesRead    uint64
	BytesWritten uint64 // or, for a dry run, would have written
}

// EncodeStream writes a dump of prefix followed by everything in r to w,
// starting with the header line.
// It converts batchBlocks blocks at a time (DefaultBatchBlocks if
// batchBlocks <= 0); the batch size doesn't affect the output.
// Prefix holds input the caller already consumed from r,
// such as a failed header probe.
// If w is nil, the rows are still built but not written.
func EncodeStream(w io.Writer, r io.Reader, prefix []byte, batchBlocks int) (Stats, error) {
	if batchBlocks <= 0 {
		batchBlocks = DefaultBatchBlocks
	}
	if min := (len(prefix) + BlockSize - 1) / BlockSize; batchBlocks < min {
		batchBlocks = min
	}
	in := make([]byte, batchBlocks*BlockSize)
	out := bufpool.Get(HeaderLen + 1 + EncodedLen(len(in)))
	defer bufpool.Put(out)

	var st Stats
	out.WriteString(Header)
	out.WriteByte('\n')

	er := errors.NewReader(r)
	var addr uint64
	n := copy(in, prefix)
	for {
		m, err := io.ReadFull(er, in[n:])
		n += m
		if err != nil && err != io.EOF && err != io.ErrUnexpectedEOF {
			return st, errors.Wrap(err, "reading binary input")
		}

		out.Write(AppendEncode(out.AvailableBuffer(), in[:n], addr))
		st.BytesRead += uint64(n)
		st.BytesWritten += uint64(out.Len())
		metrics.Rows.AddN(uint64((n + BlockSize - 1) / BlockSize))
		metrics.BytesEncoded.AddN(uint64(n))
		if w != nil {
			if _, err := w.Write(out.Bytes()); err != nil {
				return st, errors.Wrap(err, "writing dump")
			}
		}
		out.Reset()

		if n < len(in) {
			return st, nil
		}
		addr += uint64(n)
		n = 0
	}
}

// Status says how a call to DecodeStream ended.
type Status int

const (
	// Decoded means the whole input was a valid dump.
	Decoded Status = iota

	// RetryAsEncode means the input did not start with Header.
	// The characters consumed while checking are in Result.Prefix.
	RetryAsEncode

	// Invalid means the input was not a valid dump.
	// Result.Err is a *FormatError.
	Invalid

	// Failed means reading or writing failed.
	Failed
)

func (s Status) String() string {
	switch s {
	case Decoded:
		return "decoded"
	case RetryAsEncode:
		return "retry-as-encode"
	case Invalid:
		return "invalid"
	case Failed:
		return "failed"
	}
	return "Status(" + strconv.Itoa(int(s)) + ")"
}

// Result is the outcome of DecodeStream.
type Result struct {
	Status Status
	Prefix []byte // for RetryAsEncode
	Err    error  // for Invalid and Failed
	Stats
}

// DecodeStream decodes the dump in r and writes the binary data to w.
// If w is nil, DecodeStream checks r but writes nothing.
//
// If probeHeader is true, the first HeaderLen characters of r
// must be Header; DecodeStream stops at the first one that isn't,
// or at the end of a shorter input, and returns RetryAsEncode
// with every character consumed so far.
// No data has been written to w in that case.
func DecodeStream(w io.Writer, r io.Reader, probeHeader bool) Result {
	br := hexio.ByteReader(r)
	d := NewDecoder(w)
	var probe []byte
	if probeHeader {
		probe = make([]byte, 0, HeaderLen)
	}

	result := func(s Status, err error) Result {
		res := Result{Status: s, Err: err}
		res.BytesRead = d.Consumed()
		res.BytesWritten = d.Written()
		if s == RetryAsEncode {
			res.Prefix = probe
		}
		if s == Decoded {
			metrics.BytesDecoded.AddN(res.BytesWritten)
		}
		return res
	}

	for {
		c, err := br.ReadByte()
		if err == io.EOF {
			break
		} else if err != nil {
			return result(Failed, errors.Wrap(err, "reading dump"))
		}

		if probeHeader && len(probe) < HeaderLen {
			probe = append(probe, c)
			if Header[len(probe)-1] != c {
				return result(RetryAsEncode, nil)
			}
		}

		if err := d.Consume(c); err != nil {
			if _, ok := err.(*FormatError); ok {
				return result(Invalid, err)
			}
			return result(Failed, errors.Wrap(err, "writing binary output"))
		}
	}

	if probeHeader && len(probe) < HeaderLen {
		return result(RetryAsEncode, nil)
	}
	if err := d.Close(); err != nil {
		if _, ok := err.(*FormatError); ok {
			return result(Invalid, err)
		}
		return result(Failed, errors.Wrap(err, "writing binary output"))
	}
	return result(Decoded, nil)
}
