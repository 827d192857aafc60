/*

Package hexdump converts between binary data and a fixed-width,
line-oriented hex dump.

A dump starts with the header line

	| hextoggle output file

followed by one row per 16 bytes of input:

	[0000000010 00000000016]4865 6c6c 6f2c 2057 6f72 6c64 210a 0a23|Hello, World!..#

Each row carries the address of its first byte in hex and in decimal
inside brackets, the bytes as pairs of hex digits, and a preview of the
bytes after a vertical bar. The last row of a dump may be short; it ends
right after the preview of its last byte.

When decoding, bracketed text is skipped (brackets nest), everything from
a vertical bar to the end of the line is skipped, and whitespace is
ignored. All remaining characters must form pairs of hex digits, so a
dump may be edited by hand before it is converted back.

*/
package hexdump

// Header is the first line of every dump, without its newline.
const Header = "| hextoggle output file"

// HeaderLen is the length of Header.
const HeaderLen = len(Header)

const (
	// BlockSize is the number of input bytes encoded per row.
	BlockSize = 16

	// RowWidth is the length of a full row, including its newline.
	RowWidth = 81

	// DefaultBatchBlocks is the number of blocks EncodeStream
	// converts per batch when the caller doesn't choose.
	DefaultBatchBlocks = 64
)

const hextable = "0123456789abcdef"

// fromHexChar converts a hex character into its value and a success flag.
func fromHexChar(c byte) (byte, bool) {
	switch {
	case '0' <= c && c <= '9':
		return c - '0', true
	case 'a' <= c && c <= 'f':
		return c - 'a' + 10, true
	case 'A' <= c && c <= 'F':
		return c - 'A' + 10, true
	}
	return 0, false
}

// SafeChar returns b if it is printable ASCII (space through tilde),
// and '.' otherwise.
func SafeChar(b byte) byte {
	if b >= ' ' && b <= '~' {
		return b
	}
	return '.'
}
