package hexdump

// colKind says how a row column gets its content.
type colKind uint8

const (
	colLit     colKind = iota // the fixed byte lit
	colAddrHex                // hex digit of addr>>arg
	colAddrDec                // decimal digit of addr/arg
	colHigh                   // high nibble of source byte arg
	colLow                    // low nibble of source byte arg
	colPreview                // SafeChar of source byte arg
)

type column struct {
	kind colKind
	lit  byte
	arg  uint64
}

// layout describes every column of a full row.
// It is the only place that knows where things go.
//
//	[0000000000 00000000000]4865 6c6c 6f2c 2057 6f72 6c64 210a 0a23|Hello, World!..#
//	0         1         2         3         4         5         6         7         8
//	012345678901234567890123456789012345678901234567890123456789012345678901234567890
var layout = buildLayout()

const (
	addrHexDigits = 10
	addrDecDigits = 11
	hexStart      = 24 // first hex column
	previewStart  = 64 // first preview column
)

func buildLayout() (l [RowWidth]column) {
	lit := func(c byte) column { return column{kind: colLit, lit: c} }

	l[0] = lit('[')
	for i := 0; i < addrHexDigits; i++ {
		l[1+i] = column{kind: colAddrHex, arg: uint64(4 * (addrHexDigits - 1 - i))}
	}
	l[11] = lit(' ')
	pow := uint64(1)
	for i := addrDecDigits - 1; i >= 0; i-- {
		l[12+i] = column{kind: colAddrDec, arg: pow}
		pow *= 10
	}
	l[23] = lit(']')

	// Bytes go in pairs: "4865 6c6c ...".
	for b := 0; b < BlockSize; b++ {
		c := hexStart + 2*b + b/2
		l[c] = column{kind: colHigh, arg: uint64(b)}
		l[c+1] = column{kind: colLow, arg: uint64(b)}
	}
	for g := 1; g < BlockSize/2; g++ {
		l[hexStart-1+5*g] = lit(' ')
	}

	l[previewStart-1] = lit('|')
	for b := 0; b < BlockSize; b++ {
		l[previewStart+b] = column{kind: colPreview, arg: uint64(b)}
	}
	l[RowWidth-1] = lit('\n')
	return l
}

// render returns the content of column c for a row
// holding src at address addr.
// Byte columns past the end of src are blank.
func (c column) render(src []byte, addr uint64) byte {
	switch c.kind {
	case colLit:
		return c.lit
	case colAddrHex:
		return hextable[addr>>c.arg&0xf]
	case colAddrDec:
		return '0' + byte(addr/c.arg%10)
	}
	if c.arg >= uint64(len(src)) {
		return ' '
	}
	b := src[c.arg]
	switch c.kind {
	case colHigh:
		return hextable[b>>4]
	case colLow:
		return hextable[b&0xf]
	case colPreview:
		return SafeChar(b)
	}
	panic("hexdump: unknown column kind")
}

// rowLen returns the length of a row holding n bytes, 1 <= n <= BlockSize.
func rowLen(n int) int {
	return RowWidth - (BlockSize - n)
}
