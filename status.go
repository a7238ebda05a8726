// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package jstream

import (
	"errors"
	"fmt"
	"io"
)

// Status is the outcome of feeding input to a Parser.
type Status byte

// Constants defining the valid Status values.
const (
	Ok            Status = iota // input consumed; the document is not yet complete
	EndOfDocument               // the outermost container was closed
	Cancelled                   // a listener asked to stop
	NoMoreData                  // the input ended before the document was complete

	// Grammar violations.
	ColonExpected                  // ':' must follow an object key
	OpeningBraceExpected           // a document must begin with '{' or '['
	StringStartExpected            // an object key must begin with '"'
	CommaOrClosingBraceExpected    // ',' or '}' must follow an object member
	CommaOrClosingBracketExpected  // ',' or ']' must follow an array element
	TrueExpected                   // malformed "true"
	FalseExpected                  // malformed "false"
	NullExpected                   // malformed "null"
	HexExpected                    // a \u escape requires four hex digits
	UnexpectedContentAfterDocument // non-space input after the document
	NotInObject                    // '}' does not close an object
	NotInArray                     // ']' does not close an array
	UnescapedControl               // a byte below 0x20 other than tab, CR, LF, or 0x7F, in a string
	MultipleDecimalPoints          // a number has more than one '.'
	MultipleExponents              // a number has more than one exponent
	DecimalPointInExponent         // '.' after the exponent marker
	BadExponent                    // '+' or '-' not directly after the exponent marker
	BadValue                       // input that cannot begin a value
	BadEscapeChar                  // unknown character after '\'
	BadUnicodeEscapeChar           // a high surrogate must be followed by \u

	// Resource exhaustion.
	BufferFull // the token buffer cannot hold the current key and value
	StackFull  // containers are nested too deeply

	InternalError // the parser reached an unknown state

	numStatus // sentinel; do not use
)

var statusName = [...]string{
	Ok:                             "Ok",
	EndOfDocument:                  "EndOfDocument",
	Cancelled:                      "Cancelled",
	NoMoreData:                     "NoMoreData",
	ColonExpected:                  "ColonExpected",
	OpeningBraceExpected:           "OpeningBraceExpected",
	StringStartExpected:            "StringStartExpected",
	CommaOrClosingBraceExpected:    "CommaOrClosingBraceExpected",
	CommaOrClosingBracketExpected:  "CommaOrClosingBracketExpected",
	TrueExpected:                   "TrueExpected",
	FalseExpected:                  "FalseExpected",
	NullExpected:                   "NullExpected",
	HexExpected:                    "HexExpected",
	UnexpectedContentAfterDocument: "UnexpectedContentAfterDocument",
	NotInObject:                    "NotInObject",
	NotInArray:                     "NotInArray",
	UnescapedControl:               "UnescapedControl",
	MultipleDecimalPoints:          "MultipleDecimalPoints",
	MultipleExponents:              "MultipleExponents",
	DecimalPointInExponent:         "DecimalPointInExponent",
	BadExponent:                    "BadExponent",
	BadValue:                       "BadValue",
	BadEscapeChar:                  "BadEscapeChar",
	BadUnicodeEscapeChar:           "BadUnicodeEscapeChar",
	BufferFull:                     "BufferFull",
	StackFull:                      "StackFull",
	InternalError:                  "InternalError",
}

var statusText = [...]string{
	Ok:                             "ok",
	EndOfDocument:                  "end of document",
	Cancelled:                      "cancelled by listener",
	NoMoreData:                     "input ended before the document was complete",
	ColonExpected:                  `expected ":" after object key`,
	OpeningBraceExpected:           `expected "{" or "[" at start of document`,
	StringStartExpected:            "expected string for object key",
	CommaOrClosingBraceExpected:    `expected "," or "}" after object member`,
	CommaOrClosingBracketExpected:  `expected "," or "]" after array element`,
	TrueExpected:                   "expected true",
	FalseExpected:                  "expected false",
	NullExpected:                   "expected null",
	HexExpected:                    "expected hex digit in Unicode escape",
	UnexpectedContentAfterDocument: "unexpected content after document",
	NotInObject:                    `unexpected "}" outside object`,
	NotInArray:                     `unexpected "]" outside array`,
	UnescapedControl:               "unescaped control character in string",
	MultipleDecimalPoints:          "multiple decimal points in number",
	MultipleExponents:              "multiple exponents in number",
	DecimalPointInExponent:         "decimal point in exponent",
	BadExponent:                    "sign must follow exponent marker",
	BadValue:                       "invalid value",
	BadEscapeChar:                  "invalid escape character",
	BadUnicodeEscapeChar:           `expected "\u" after high surrogate`,
	BufferFull:                     "token buffer full",
	StackFull:                      "nesting too deep",
	InternalError:                  "internal error",
}

// String returns the name of the status constant.
func (s Status) String() string {
	if s >= numStatus {
		return fmt.Sprintf("Status(%d)", byte(s))
	}
	return statusName[s]
}

// Text returns a human-readable description of s.
func (s Status) Text() string {
	if s >= numStatus {
		return "unknown status"
	}
	return statusText[s]
}

// IsError reports whether s denotes malformed input, exhausted resources, or
// an internal failure. The control statuses Ok, EndOfDocument and Cancelled
// are not errors.
func (s Status) IsError() bool { return s >= NoMoreData }

// ErrCancelled is reported by Parse when a Listener asks to stop.
var ErrCancelled = errors.New("parsing cancelled by listener")

// SyntaxError is the concrete type of errors reported for malformed input and
// exhausted resources.
type SyntaxError struct {
	Status   Status  // the failure
	Offset   int     // byte offset of the offending input, 0-based
	Location LineCol // line and column of the offending input

	err error
}

// Error satisfies the error interface.
func (s *SyntaxError) Error() string {
	return fmt.Sprintf("at %s: %s", s.Location, s.Status.Text())
}

// Unwrap supports error wrapping.
func (s *SyntaxError) Unwrap() error { return s.err }

// statusErr converts a terminal status to an error. It returns nil for Ok and
// EndOfDocument.
func statusErr(s Status, pos position) error {
	switch s {
	case Ok, EndOfDocument:
		return nil
	case Cancelled:
		return ErrCancelled
	}
	serr := &SyntaxError{Status: s, Offset: pos.offset, Location: pos.lineCol()}
	if s == NoMoreData {
		serr.err = io.ErrUnexpectedEOF
	}
	return serr
}
