// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package jstream

import (
	"context"
	"fmt"
	"io"
)

// Parse reads r until the end of input and feeds its contents to p. It
// returns nil if r contained exactly one complete document, optionally
// followed by whitespace. If the input ends before the document is complete,
// Parse reports a *SyntaxError with status NoMoreData. If a listener cancels
// parsing, Parse reports ErrCancelled.
//
// Parse does not reset p, so it may be used to resume a document that was
// partially fed by other means.
func (p *Parser) Parse(r io.Reader) error { return p.ParseContext(context.Background(), r) }

// ParseContext behaves as Parse, but stops with the error from ctx if ctx
// ends before the input is exhausted. The context is checked between reads.
func (p *Parser) ParseContext(ctx context.Context, r io.Reader) error {
	if p.failed != Ok {
		return p.Err()
	}
	buf := make([]byte, p.readSize)
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		nr, rerr := r.Read(buf)
		for _, c := range buf[:nr] {
			// Feed byte-wise so that trailing content after the end of the
			// document is also checked.
			if st := p.FeedByte(c); st != Ok && st != EndOfDocument {
				return p.Err()
			}
		}
		if rerr == io.EOF {
			if p.state != EndDocument {
				p.failed = NoMoreData
				return p.Err()
			}
			return nil
		} else if rerr != nil {
			return fmt.Errorf("read input: %w", rerr)
		}
	}
}
