// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package jstream

import (
	"bytes"
	"io"
	"strconv"

	"github.com/creachadair/jstream/internal/escape"
	"go4.org/mem"
)

// Colors are ANSI escape sequences used by a Printer to highlight output.
type Colors struct {
	Key   []byte             // object member keys
	Value [String + 1][]byte // values, indexed by Type
	Reset []byte             // restores the default rendition
}

// DefaultColors is a color scheme suitable for dark and light terminals.
var DefaultColors = &Colors{
	Key: []byte("\033[1;34m"),
	Value: [...][]byte{
		Null:   []byte("\033[1;30m"),
		True:   []byte("\033[0;33m"),
		False:  []byte("\033[0;33m"),
		Number: []byte("\033[0;36m"),
		String: []byte("\033[0;32m"),
	},
	Reset: []byte("\033[0m"),
}

// A Printer is a Listener that writes an indented outline of each event to
// a writer, one line per event:
//
//	OBJ(1) name: String = "value"
//
// gives the enclosing container kind (OBJ, ARR, or DOC at the top level), the
// sibling index, the key if any, and the type and value of the element.
// Objects and arrays are shown by their opening and closing delimiters.
//
// If a write fails, the Printer cancels parsing and records the error.
type Printer struct {
	w      io.Writer
	colors *Colors
	buf    []byte
	err    error
}

// NewPrinter constructs a Printer that writes to w. If c != nil, the output
// is decorated with its escape sequences.
func NewPrinter(w io.Writer, c *Colors) *Printer { return &Printer{w: w, colors: c} }

// Err returns the first write error encountered by p, or nil.
func (p *Printer) Err() error { return p.err }

// StartElement implements the Listener interface.
func (p *Printer) StartElement(e *Element) bool {
	p.indent(e.Level)
	p.buf = append(p.buf, containerTag(e.Container.Kind)...)
	p.buf = append(p.buf, '(')
	p.buf = strconv.AppendInt(p.buf, int64(e.Container.Index), 10)
	p.buf = append(p.buf, ") "...)
	if e.HasKey() {
		p.color(p.colorKey())
		p.buf = append(p.buf, e.Key...)
		p.color(p.reset())
		p.buf = append(p.buf, ": "...)
	}
	switch e.Type {
	case Object:
		p.buf = append(p.buf, '{')
	case Array:
		p.buf = append(p.buf, '[')
	default:
		p.buf = append(p.buf, typeLabel(e.Type)...)
		p.buf = append(p.buf, " = "...)
		p.color(p.colorValue(e.Type))
		if e.Type == String {
			p.buf = escape.AppendQuote(p.buf, mem.B(e.Value))
		} else {
			p.buf = append(p.buf, e.Value...)
		}
		p.color(p.reset())
	}
	return p.flush()
}

// EndElement implements the Listener interface.
func (p *Printer) EndElement(e *Element) bool {
	p.indent(e.Level)
	if e.Type == Object {
		p.buf = append(p.buf, '}')
	} else {
		p.buf = append(p.buf, ']')
	}
	return p.flush()
}

func (p *Printer) indent(level int) {
	p.buf = append(p.buf[:0], bytes.Repeat([]byte("  "), level)...)
}

func (p *Printer) color(code []byte) { p.buf = append(p.buf, code...) }

func (p *Printer) colorKey() []byte {
	if p.colors == nil {
		return nil
	}
	return p.colors.Key
}

func (p *Printer) colorValue(t Type) []byte {
	if p.colors == nil || int(t) >= len(p.colors.Value) {
		return nil
	}
	return p.colors.Value[t]
}

func (p *Printer) reset() []byte {
	if p.colors == nil {
		return nil
	}
	return p.colors.Reset
}

func (p *Printer) flush() bool {
	p.buf = append(p.buf, '\n')
	if _, err := p.w.Write(p.buf); err != nil {
		p.err = err
		return false
	}
	return true
}

var typeLabels = [...]string{
	Null:   "Null",
	True:   "True",
	False:  "False",
	Number: "Number",
	String: "String",
}

func typeLabel(t Type) string {
	if int(t) < len(typeLabels) && typeLabels[t] != "" {
		return typeLabels[t]
	}
	return t.String()
}

func containerTag(t Type) string {
	switch t {
	case Object:
		return "OBJ"
	case Array:
		return "ARR"
	}
	return "DOC"
}
