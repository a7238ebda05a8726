// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package jstream

import "fmt"

// A LineCol describes the line number and column offset of a location in
// source text.
type LineCol struct {
	Line   int // line number, 1-based
	Column int // byte offset of column in line, 0-based
}

func (lc LineCol) String() string { return fmt.Sprintf("%d:%d", lc.Line, lc.Column) }

// A position tracks the location of the next input byte.
type position struct {
	offset int // bytes consumed, 0-based
	line   int // 0-based
	col    int // 0-based
}

func (p *position) advance(c byte) {
	p.offset++
	if c == '\n' {
		p.line++
		p.col = 0
	} else {
		p.col++
	}
}

func (p position) lineCol() LineCol { return LineCol{Line: p.line + 1, Column: p.col} }
