// Copyright (C) 2023 Michael J. Fromberger. All Rights Reserved.

// Package escape handles decoding of JSON string escapes and quoting of
// string values for output.
package escape

import "unicode/utf8"

// Control maps the character following a backslash to the byte it denotes.
// It reports false for 'u' and for characters that are not valid escapes.
func Control(c byte) (byte, bool) {
	switch c {
	case '"', '\\', '/':
		return c, true
	case 'b':
		return '\b', true
	case 'f':
		return '\f', true
	case 'n':
		return '\n', true
	case 'r':
		return '\r', true
	case 't':
		return '\t', true
	}
	return 0, false
}

// Unhex reports the value of the hexadecimal digit c.
func Unhex(c byte) (rune, bool) {
	switch {
	case '0' <= c && c <= '9':
		return rune(c - '0'), true
	case 'a' <= c && c <= 'f':
		return rune(c - 'a' + 10), true
	case 'A' <= c && c <= 'F':
		return rune(c - 'A' + 10), true
	}
	return 0, false
}

// IsHighSurrogate reports whether r is the first half of a UTF-16 pair.
func IsHighSurrogate(r rune) bool { return 0xD800 <= r && r < 0xDC00 }

// IsLowSurrogate reports whether r is the second half of a UTF-16 pair.
func IsLowSurrogate(r rune) bool { return 0xDC00 <= r && r <= 0xDFFF }

// Combine returns the scalar value encoded by the surrogate pair hi, lo.
// The caller must ensure hi and lo are high and low surrogates.
func Combine(hi, lo rune) rune {
	return (hi-0xD800)<<10 + (lo - 0xDC00) + 0x10000
}

// RuneLen reports the number of bytes required to encode r as UTF-8.
// Surrogate halves and invalid values count as the replacement rune.
func RuneLen(r rune) int {
	if n := utf8.RuneLen(r); n > 0 {
		return n
	}
	return utf8.RuneLen(utf8.RuneError)
}

// PutRune writes the UTF-8 encoding of r into buf and returns the number of
// bytes written. Surrogate halves are written as the replacement rune. The
// caller must ensure len(buf) >= RuneLen(r).
func PutRune(buf []byte, r rune) int { return utf8.EncodeRune(buf, r) }
