// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package jstream

import (
	"fmt"

	"github.com/creachadair/jstream/internal/escape"
	"github.com/creachadair/jstream/internal/nest"
)

// A Listener receives events from a Parser. If a method returns false,
// parsing stops and the parser reports Cancelled.
//
// The Element argument to a Listener method is only valid for the duration of
// that method call. If the method needs to retain information about the
// element after it returns, it must copy the relevant data.
type Listener interface {
	// StartElement reports a complete value, or the start of an object or
	// array.
	StartElement(e *Element) bool

	// EndElement reports the end of an object or array.
	EndElement(e *Element) bool
}

// Default and minimum construction parameters.
const (
	DefaultBufferSize = 128
	MinBufferSize     = 32
	DefaultMaxDepth   = 20
	DefaultReadSize   = 64
)

// Options are construction parameters for a Parser. A nil *Options is ready
// for use and provides default values.
type Options struct {
	// The capacity of the token buffer in bytes. It must be large enough to
	// hold the longest key plus the longest value in the input, plus one.
	// If zero, DefaultBufferSize is used; otherwise it must be at least
	// MinBufferSize.
	BufferSize int

	// The maximum nesting depth of objects and arrays.
	// If zero, DefaultMaxDepth is used.
	MaxDepth int

	// The number of bytes Parse reads from its input at a time.
	// If zero, DefaultReadSize is used.
	ReadSize int

	// An arbitrary value copied into every Element reported by the parser.
	Tag any
}

func (o *Options) bufferSize() int {
	if o == nil || o.BufferSize == 0 {
		return DefaultBufferSize
	}
	return o.BufferSize
}

func (o *Options) maxDepth() int {
	if o == nil || o.MaxDepth <= 0 {
		return DefaultMaxDepth
	}
	return o.MaxDepth
}

func (o *Options) readSize() int {
	if o == nil || o.ReadSize <= 0 {
		return DefaultReadSize
	}
	return o.ReadSize
}

func (o *Options) tag() any {
	if o == nil {
		return nil
	}
	return o.Tag
}

// State is the state of a Parser between input bytes.
type State byte

// Constants defining the valid State values.
const (
	StartDocument    State = iota // expecting '{' or '['
	EndDocument                   // the document is complete
	InObject                      // after '{': expecting a key or '}'
	ObjectMember                  // after ',' in an object: expecting a key
	InKey                         // inside an object key
	EndKey                        // after a key: expecting ':'
	AfterKey                      // after ':': expecting a value
	InArray                       // after '[': expecting a value or ']'
	ArrayElement                  // after ',' in an array: expecting a value
	InString                      // inside a string value
	StartEscape                   // after '\' in a string
	Unicode                       // inside the hex digits of a \u escape
	UnicodeSurrogate              // after a high surrogate: expecting \u
	InNumber                      // inside a number
	InTrue                        // inside the constant true
	InFalse                       // inside the constant false
	InNull                        // inside the constant null
	AfterValue                    // after a value: expecting ',' or a closing delimiter
	Failed                        // a terminal status was reported; Reset to reuse

	numState // sentinel; do not use
)

var stateStr = [...]string{
	StartDocument:    "StartDocument",
	EndDocument:      "EndDocument",
	InObject:         "InObject",
	ObjectMember:     "ObjectMember",
	InKey:            "InKey",
	EndKey:           "EndKey",
	AfterKey:         "AfterKey",
	InArray:          "InArray",
	ArrayElement:     "ArrayElement",
	InString:         "InString",
	StartEscape:      "StartEscape",
	Unicode:          "Unicode",
	UnicodeSurrogate: "UnicodeSurrogate",
	InNumber:         "InNumber",
	InTrue:           "InTrue",
	InFalse:          "InFalse",
	InNull:           "InNull",
	AfterValue:       "AfterValue",
	Failed:           "Failed",
}

func (s State) String() string {
	if s >= numState {
		return fmt.Sprintf("State(%d)", byte(s))
	}
	return stateStr[s]
}

// A literal describes the expected spelling of a constant.
type literal struct {
	text string
	typ  Type
	fail Status
}

var (
	litTrue  = literal{"true", True, TrueExpected}
	litFalse = literal{"false", False, FalseExpected}
	litNull  = literal{"null", Null, NullExpected}
)

// A Parser is an incremental JSON parser. Input is supplied in arbitrary
// pieces by calling Feed or FeedByte, and the parser reports the structure of
// the input to a Listener as each element is completed.
//
// A Parser uses a fixed-size token buffer and a fixed-depth nesting stack,
// both allocated when it is constructed. The text of the current object key
// and the current value are held together in the token buffer, separated by a
// single zero byte.
//
// A Parser is not safe for concurrent use by multiple goroutines.
type Parser struct {
	listener Listener
	tag      any
	readSize int

	state  State
	failed Status // Ok unless a terminal status has been reported
	stack  *nest.Stack
	pos    position
	elem   Element

	buf    []byte // token buffer; len(buf) is its capacity
	n      int    // bytes in use
	keyLen int    // length of the key; the separator is at buf[keyLen]

	str State // InKey or InString, where escapes return to

	// Number state.
	dot, exp bool

	// Constant state.
	lit  literal
	litN int

	// Unicode escape state.
	hexN  int  // hex digits seen
	code  rune // code unit being decoded
	high  rune // pending high surrogate, or 0
	bridN int  // bytes of "\u" seen after a high surrogate
}

// New constructs a new Parser that delivers events to l. If opts == nil,
// default options are used. A nil listener is permitted; in that case the
// parser only validates its input. New panics if the requested buffer size is
// less than MinBufferSize.
func New(l Listener, opts *Options) *Parser {
	size := opts.bufferSize()
	if size < MinBufferSize {
		panic(fmt.Sprintf("jstream: buffer size %d is less than minimum %d", size, MinBufferSize))
	}
	return &Parser{
		listener: l,
		tag:      opts.tag(),
		readSize: opts.readSize(),
		stack:    nest.New(opts.maxDepth()),
		buf:      make([]byte, size),
	}
}

// SetListener sets the listener that receives subsequent events. It may be
// called at any time, including from within a Listener method.
func (p *Parser) SetListener(l Listener) { p.listener = l }

// SetTag sets the tag copied into subsequent elements.
func (p *Parser) SetTag(tag any) { p.tag = tag }

// State reports the current state of the parser.
func (p *Parser) State() State {
	if p.failed != Ok {
		return Failed
	}
	return p.state
}

// Offset reports the number of bytes consumed since construction or the last
// call to Reset. After a failure, it is the offset of the offending byte.
func (p *Parser) Offset() int { return p.pos.offset }

// Location reports the line and column of the next input byte.
func (p *Parser) Location() LineCol { return p.pos.lineCol() }

// Err returns the terminal status of the parser as an error, or nil if the
// parser has not failed. Cancellation is reported as ErrCancelled, and all
// other failures have concrete type *SyntaxError.
func (p *Parser) Err() error { return statusErr(p.failed, p.pos) }

// Reset discards all parser state and prepares p to parse a new document.
// The listener and tag are preserved.
func (p *Parser) Reset() {
	p.state = StartDocument
	p.failed = Ok
	p.stack.Clear()
	p.pos = position{}
	p.n, p.keyLen = 0, 0
	p.str = InString
	p.dot, p.exp = false, false
	p.lit, p.litN = literal{}, 0
	p.hexN, p.code, p.high, p.bridN = 0, 0, 0, 0
}

// Feed parses the bytes of data in order. It stops at the first byte for
// which FeedByte reports a status other than Ok, and returns that status.
// If all of data is consumed without completing the document, Feed returns
// Ok.
func (p *Parser) Feed(data []byte) Status {
	for _, c := range data {
		if st := p.FeedByte(c); st != Ok {
			return st
		}
	}
	return Ok
}

// FeedByte parses a single byte of input.
//
// It returns Ok if c was consumed and more input is required, EndOfDocument
// if c closed the outermost container, Cancelled if a listener asked to
// stop, or an error status describing why c is not valid at this point in
// the input. After EndOfDocument, only whitespace is accepted. Any status
// other than Ok or EndOfDocument is terminal: subsequent calls report the
// same status without consuming input until Reset is called.
func (p *Parser) FeedByte(c byte) Status {
	if p.failed != Ok {
		return p.failed
	}
	st := p.parse(c)
	if st != Ok && st != EndOfDocument {
		p.failed = st
		return st
	}
	p.pos.advance(c)
	return st
}

func (p *Parser) parse(c byte) Status {
	switch p.state {
	case InKey, InString:
		switch {
		case c == '"':
			if p.state == InKey {
				p.keyLen = p.n
				p.state = EndKey
				return p.put(0)
			}
			return p.startElement(String)
		case c == '\\':
			p.state = StartEscape
			return Ok
		case isSpace(c):
			return p.put(c)
		case c < ' ' || c == 0x7f:
			return UnescapedControl
		}
		return p.put(c)

	case InObject, ObjectMember:
		if isSpace(c) {
			return Ok
		} else if c == '}' && p.state == InObject {
			return p.endContainer(Object)
		} else if c == '"' {
			p.state, p.str = InKey, InKey
			return Ok
		}
		return StringStartExpected

	case EndKey:
		if isSpace(c) {
			return Ok
		} else if c == ':' {
			p.state = AfterKey
			return Ok
		}
		return ColonExpected

	case AfterKey:
		if isSpace(c) {
			return Ok
		}
		return p.startValue(c)

	case InArray, ArrayElement:
		if isSpace(c) {
			return Ok
		}
		switch c {
		case ']':
			if p.state == ArrayElement {
				return BadValue // trailing comma
			}
			return p.endContainer(Array)
		case '}':
			if p.state == ArrayElement {
				return CommaOrClosingBracketExpected
			}
			return p.endContainer(Object)
		}
		return p.startValue(c)

	case StartEscape:
		if c == 'u' {
			p.state, p.hexN, p.code = Unicode, 0, 0
			return Ok
		}
		d, ok := escape.Control(c)
		if !ok {
			return BadEscapeChar
		}
		p.state = p.str
		return p.put(d)

	case Unicode:
		v, ok := escape.Unhex(c)
		if !ok {
			return HexExpected
		}
		p.code = p.code<<4 | v
		if p.hexN++; p.hexN == 4 {
			return p.endUnicode(p.code)
		}
		return Ok

	case UnicodeSurrogate:
		if c != "\\u"[p.bridN] {
			return BadUnicodeEscapeChar
		}
		if p.bridN++; p.bridN == 2 {
			p.state, p.hexN, p.code = Unicode, 0, 0
		}
		return Ok

	case AfterValue:
		if isSpace(c) {
			return Ok
		}
		obj := p.stack.Peek().Object
		switch c {
		case '}':
			return p.endContainer(Object)
		case ']':
			return p.endContainer(Array)
		case ',':
			if obj {
				p.state = ObjectMember
			} else {
				p.state = ArrayElement
			}
			return Ok
		}
		if obj {
			return CommaOrClosingBraceExpected
		}
		return CommaOrClosingBracketExpected

	case InNumber:
		switch {
		case isDigit(c):
			return p.put(c)
		case c == '.':
			if p.dot {
				return MultipleDecimalPoints
			} else if p.exp {
				return DecimalPointInExponent
			}
			p.dot = true
			return p.put(c)
		case c == 'e' || c == 'E':
			if p.exp {
				return MultipleExponents
			}
			p.exp = true
			return p.put(c)
		case c == '+' || c == '-':
			if last := p.buf[p.n-1]; last != 'e' && last != 'E' {
				return BadExponent
			}
			return p.put(c)
		}

		// The number ended with the previous byte; c belongs to whatever
		// follows it.
		if st := p.startElement(Number); st != Ok {
			return st
		}
		return p.parse(c)

	case InTrue, InFalse, InNull:
		if c != p.lit.text[p.litN] {
			return p.lit.fail
		}
		if st := p.put(c); st != Ok {
			return st
		}
		if p.litN++; p.litN == len(p.lit.text) {
			return p.startElement(p.lit.typ)
		}
		return Ok

	case StartDocument:
		if isSpace(c) {
			return Ok
		}
		switch c {
		case '{':
			return p.startContainer(Object)
		case '[':
			return p.startContainer(Array)
		}
		return OpeningBraceExpected

	case EndDocument:
		if isSpace(c) {
			return Ok
		}
		return UnexpectedContentAfterDocument
	}
	return InternalError
}

// put appends c to the token buffer.
func (p *Parser) put(c byte) Status {
	if p.n >= len(p.buf) {
		return BufferFull
	}
	p.buf[p.n] = c
	p.n++
	return Ok
}

// putRune appends the UTF-8 encoding of r to the token buffer.
func (p *Parser) putRune(r rune) Status {
	if p.n+escape.RuneLen(r) > len(p.buf) {
		return BufferFull
	}
	p.n += escape.PutRune(p.buf[p.n:], r)
	return Ok
}

// startValue begins a value whose first byte is c.
func (p *Parser) startValue(c byte) Status {
	if p.n == 0 {
		// No key precedes this value: record an empty one.
		p.keyLen = 0
		if st := p.put(0); st != Ok {
			return st
		}
	}
	switch c {
	case '{':
		return p.startContainer(Object)
	case '[':
		return p.startContainer(Array)
	case '"':
		p.state, p.str = InString, InString
		return Ok
	case 't':
		return p.startLiteral(InTrue, litTrue)
	case 'f':
		return p.startLiteral(InFalse, litFalse)
	case 'n':
		return p.startLiteral(InNull, litNull)
	}
	if c == '-' || isDigit(c) {
		p.state, p.dot, p.exp = InNumber, false, false
		return p.put(c)
	}
	return BadValue
}

func (p *Parser) startLiteral(s State, lit literal) Status {
	p.state, p.lit, p.litN = s, lit, 1
	return p.put(lit.text[0])
}

func (p *Parser) startContainer(t Type) Status {
	if p.stack.Len() == p.stack.Cap() {
		return StackFull
	}
	if st := p.startElement(t); st != Ok {
		return st
	}
	if !p.stack.Push(nest.Frame{Object: t == Object}) {
		return StackFull
	}
	if t == Object {
		p.state = InObject
	} else {
		p.state = InArray
	}
	return Ok
}

// startElement reports an element of type t to the listener, using the
// contents of the token buffer, and clears the buffer.
func (p *Parser) startElement(t Type) Status {
	e := &p.elem
	*e = Element{
		Tag:       p.tag,
		Type:      t,
		Level:     p.stack.Len(),
		Container: p.enclosing(),
	}
	if e.Container.Kind == Object {
		e.Key = p.buf[:p.keyLen:p.keyLen]
	}
	if !t.IsContainer() {
		e.Value = p.buf[p.keyLen+1 : p.n : p.n]
	}
	if !p.stack.IsEmpty() {
		p.stack.Peek().Index++
	}

	p.state = AfterValue
	p.n, p.keyLen = 0, 0
	if p.listener != nil && !p.listener.StartElement(e) {
		return Cancelled
	}
	return Ok
}

// enclosing returns the descriptor for the next child of the innermost open
// container.
func (p *Parser) enclosing() Container {
	if p.stack.IsEmpty() {
		return Container{Kind: Document}
	}
	f := p.stack.Peek()
	if f.Object {
		return Container{Kind: Object, Index: f.Index}
	}
	return Container{Kind: Array, Index: f.Index}
}

// endContainer closes the innermost container, which must have type t.
func (p *Parser) endContainer(t Type) Status {
	if p.stack.Peek().Object != (t == Object) {
		if t == Object {
			return NotInObject
		}
		return NotInArray
	}
	p.stack.Pop()

	e := &p.elem
	*e = Element{
		Tag:       p.tag,
		Type:      t,
		Level:     p.stack.Len(),
		Container: p.enclosing(),
	}
	if !p.stack.IsEmpty() {
		// The parent's count already includes this container.
		e.Container.Index--
	}

	if p.stack.IsEmpty() {
		p.state = EndDocument
	} else {
		p.state = AfterValue
	}
	if p.listener != nil && !p.listener.EndElement(e) {
		return Cancelled
	}
	if p.state == EndDocument {
		return EndOfDocument
	}
	return Ok
}

// endUnicode records the code unit r decoded from a \u escape.
func (p *Parser) endUnicode(r rune) Status {
	p.state = p.str
	if hi := p.high; hi != 0 {
		p.high = 0
		if escape.IsLowSurrogate(r) {
			return p.putRune(escape.Combine(hi, r))
		}
		// The high surrogate was not followed by a low one.
		if st := p.putRune(hi); st != Ok {
			return st
		}
	}
	if escape.IsHighSurrogate(r) {
		p.high, p.bridN = r, 0
		p.state = UnicodeSurrogate
		return Ok
	}
	return p.putRune(r)
}

// isSpace reports whether c is JSON whitespace.
func isSpace(c byte) bool { return c == ' ' || c == '\t' || c == '\n' || c == '\r' }

func isDigit(c byte) bool { return '0' <= c && c <= '9' }
