// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

// Package throttle provides an io.Reader that delivers its input at a
// bounded rate, to exercise incremental parsing with slow producers.
package throttle

import (
	"context"
	"io"

	"golang.org/x/time/rate"
)

// A Reader wraps an io.Reader and limits the rate at which bytes are
// returned from it. Each call to Read returns at most Chunk bytes.
type Reader struct {
	ctx   context.Context
	r     io.Reader
	chunk int
	lim   *rate.Limiter
}

// NewReader returns a Reader that delivers bytes from r at no more than
// bytesPerSecond, in reads of at most chunk bytes. A bytesPerSecond of zero
// or less disables rate limiting. Waiting for the limiter is governed by
// ctx. NewReader panics if chunk < 1.
func NewReader(ctx context.Context, r io.Reader, bytesPerSecond float64, chunk int) *Reader {
	if chunk < 1 {
		panic("throttle: chunk size must be positive")
	}
	lim := rate.NewLimiter(rate.Inf, chunk)
	if bytesPerSecond > 0 {
		// Allow one chunk immediately; later chunks wait for the rate.
		lim = rate.NewLimiter(rate.Limit(bytesPerSecond), chunk)
	}
	return &Reader{ctx: ctx, r: r, chunk: chunk, lim: lim}
}

// Read implements io.Reader. It reads at most one chunk from the underlying
// reader and then waits until the limiter permits the bytes to be returned.
func (t *Reader) Read(p []byte) (int, error) {
	if len(p) > t.chunk {
		p = p[:t.chunk]
	}
	nr, err := t.r.Read(p)
	if nr > 0 {
		if werr := t.lim.WaitN(t.ctx, nr); werr != nil {
			return 0, werr
		}
	}
	return nr, err
}
