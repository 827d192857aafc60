/*

Command hextoggle converts a file to a hex dump, or a hex dump back
to the file it came from, whichever applies.

Usage:

	hextoggle [-n] [-d|-e] [-v] [file]
	hextoggle [-n] [-d|-e] [-v] [input] [output]
	hextoggle [-n] [-d|-e] [-v] -

With one file name, hextoggle converts the file in place.
It writes to a temporary file in the same directory
and renames it over the original when the conversion succeeds.
With two, it reads input and writes output.
A file name of "-" means stdin or stdout.
After "--", every argument is a file name.

A hex dump starts with the line

	| hextoggle output file

followed by one line per 16 bytes of data:
the address in hex and decimal in brackets,
the bytes in hex, and a preview after a "|".
When decoding, text in brackets and from "|" to the end of the line
is ignored, as is white space between bytes.

Without flags, input that starts with the header line is decoded
and anything else is encoded.
Flag -d decodes even without the header;
flag -e encodes even with one.
Flag -n does all the work but writes nothing,
which checks that a dump is valid.
Flag -v logs each step to stderr.

Environment:

	HEXTOGGLE_BLOCK_BATCH  blocks of 16 bytes to encode at a time (64)
	HEXTOGGLE_LOG_FILE     write logs to this file instead of stderr
	HEXTOGGLE_LOG_SIZE     rotate the log file at this many bytes (5000000)
	HEXTOGGLE_LOG_COUNT    number of log files to keep (3)
	HEXTOGGLE_VERBOSE      same as -v

Exit status is 0 on success,
1 for invalid arguments,
2 if a file failed to open or an I/O error occurred,
3 if the output could not be moved into place,
4 for an invalid hex dump,
and 5 if an internal assertion failed.

*/
package main
