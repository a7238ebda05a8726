// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package jstream_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"testing"

	"github.com/creachadair/jstream"
)

// benchInput constructs a document of n records with a mix of value types.
func benchInput(n int) []byte {
	var buf bytes.Buffer
	buf.WriteString(`{"records":[`)
	for i := range n {
		if i > 0 {
			buf.WriteByte(',')
		}
		fmt.Fprintf(&buf, `{"id":%d,"name":"item \"%d\"","price":%d.25e-1,"tags":["a","bé"],"ok":true,"next":null}`, i, i, i)
	}
	buf.WriteString(`]}`)
	return buf.Bytes()
}

func BenchmarkParser(b *testing.B) {
	input := benchInput(500)
	b.Logf("Benchmark input: %d bytes", len(input))

	b.Run("Decoder", func(b *testing.B) {
		for b.Loop() {
			dec := json.NewDecoder(bytes.NewReader(input))
			for {
				_, err := dec.Token()
				if err == io.EOF {
					break
				} else if err != nil {
					b.Fatalf("Unexpected error: %v", err)
				}
			}
		}
	})

	b.Run("Feed", func(b *testing.B) {
		// For a fair comparison, convert numbers to values as the Decoder does.
		l := funcListener{start: func(e *jstream.Element) bool {
			if e.Type == jstream.Number {
				e.Float64()
			}
			return true
		}}
		p := jstream.New(l, nil)
		for b.Loop() {
			p.Reset()
			if st := p.Feed(input); st != jstream.EndOfDocument {
				b.Fatalf("Feed: got %v, want EndOfDocument", st)
			}
		}
	})

	b.Run("Parse", func(b *testing.B) {
		p := jstream.New(nil, nil)
		for b.Loop() {
			p.Reset()
			if err := p.Parse(bytes.NewReader(input)); err != nil {
				b.Fatalf("Parse: unexpected error: %v", err)
			}
		}
	})
}
