// Copyright (C) 2023 Michael J. Fromberger. All Rights Reserved.

package escape

import (
	"unicode/utf8"

	"go4.org/mem"
)

var controlEsc = [...]byte{
	'\b': 'b',
	'\f': 'f',
	'\n': 'n',
	'\r': 'r',
	'\t': 't',
	' ':  ' ', // sentinel
}

var hexDigit = []byte("0123456789abcdef")

// AppendQuote appends the JSON string encoding of src to dst, with escapes
// and enclosing double quotation marks, and returns the extended slice.
func AppendQuote(dst []byte, src mem.RO) []byte {
	dst = append(dst, '"')
	for src.Len() != 0 {
		r, n := mem.DecodeRune(src)
		if n == 0 {
			n = 1
		}
		switch {
		case r < ' ':
			if b := controlEsc[r]; b != 0 {
				dst = append(dst, '\\', b)
			} else {
				dst = append(dst, '\\', 'u', '0', '0', hexDigit[int(r>>4)], hexDigit[int(r&15)])
			}
		case r == '\\' || r == '"':
			dst = append(dst, '\\', byte(r))
		case r == 0x7f:
			dst = append(dst, `\u007f`...)
		case r < utf8.RuneSelf:
			dst = append(dst, byte(r))
		case r == '\u2028':
			dst = append(dst, `\u2028`...)
		case r == '\u2029':
			dst = append(dst, `\u2029`...)
		case r == utf8.RuneError:
			dst = append(dst, `\ufffd`...)
		default:
			dst = mem.Append(dst, src.SliceTo(n))
		}
		src = src.SliceFrom(n)
	}
	return append(dst, '"')
}
