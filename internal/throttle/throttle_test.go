// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package throttle_test

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/creachadair/jstream/internal/throttle"
	"github.com/creachadair/mds/mtest"
)

func TestChunks(t *testing.T) {
	const input = "0123456789abcdefghij"
	r := throttle.NewReader(context.Background(), strings.NewReader(input), 0, 3)

	var sizes []int
	var got strings.Builder
	buf := make([]byte, 64)
	for {
		n, err := r.Read(buf)
		if n > 0 {
			sizes = append(sizes, n)
			got.Write(buf[:n])
		}
		if err == io.EOF {
			break
		} else if err != nil {
			t.Fatalf("Read: unexpected error: %v", err)
		}
	}
	if got.String() != input {
		t.Errorf("Read: got %q, want %q", got.String(), input)
	}
	for _, n := range sizes {
		if n > 3 {
			t.Errorf("Read returned %d bytes, want at most 3", n)
		}
	}
}

func TestRate(t *testing.T) {
	// At 200 bytes/sec with a 10-byte burst, 30 bytes need at least 100ms.
	r := throttle.NewReader(context.Background(), strings.NewReader(strings.Repeat("x", 30)), 200, 10)
	start := time.Now()
	data, err := io.ReadAll(r)
	if err != nil {
		t.Fatalf("ReadAll: unexpected error: %v", err)
	}
	if len(data) != 30 {
		t.Errorf("ReadAll: got %d bytes, want 30", len(data))
	}
	if elapsed := time.Since(start); elapsed < 90*time.Millisecond {
		t.Errorf("ReadAll took %v, want at least 90ms", elapsed)
	}
}

func TestContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	r := throttle.NewReader(ctx, strings.NewReader("abc"), 1, 1)
	if _, err := r.Read(make([]byte, 1)); !errors.Is(err, context.Canceled) {
		t.Errorf("Read: got %v, want %v", err, context.Canceled)
	}
}

func TestContract(t *testing.T) {
	mtest.MustPanic(t, func() { throttle.NewReader(context.Background(), strings.NewReader(""), 0, 0) })
}
