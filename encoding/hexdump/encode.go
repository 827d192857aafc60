package hexdump

// EncodedLen returns the length of the rows encoding n bytes.
// It does not include the header line.
func EncodedLen(n int) int {
	rows := n / BlockSize
	size := rows * RowWidth
	if rem := n % BlockSize; rem > 0 {
		size += rowLen(rem)
	}
	return size
}

// Encode writes the rows for src into dst,
// labelling the first row with address addr.
// It returns the number of bytes written, EncodedLen(len(src)).
// Encode panics if dst is too short.
//
// Every row except the last holds BlockSize bytes;
// so long as src is a multiple of BlockSize,
// consecutive calls produce a seamless dump.
func Encode(dst, src []byte, addr uint64) int {
	n := 0
	for len(src) > 0 {
		k := BlockSize
		if len(src) < k {
			k = len(src)
		}
		n += encodeRow(dst[n:], src[:k], addr)
		src = src[k:]
		addr += BlockSize
	}
	return n
}

// AppendEncode appends the rows for src to dst
// and returns the extended buffer.
func AppendEncode(dst, src []byte, addr uint64) []byte {
	n := len(dst)
	size := EncodedLen(len(src))
	if cap(dst)-n < size {
		grown := make([]byte, n, n+size)
		copy(grown, dst)
		dst = grown
	}
	dst = dst[:n+size]
	Encode(dst[n:], src, addr)
	return dst
}

// encodeRow writes one row holding src (1 to BlockSize bytes)
// and returns its length.
func encodeRow(dst, src []byte, addr uint64) int {
	w := rowLen(len(src))
	_ = dst[w-1]
	for i := 0; i < w-1; i++ {
		dst[i] = layout[i].render(src, addr)
	}
	dst[w-1] = '\n'
	return w
}
