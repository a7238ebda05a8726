// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package jstream_test

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"testing/iotest"

	"github.com/creachadair/jstream"
)

func TestParse(t *testing.T) {
	for _, doc := range testDocs {
		for _, size := range []int{1, 3, jstream.DefaultReadSize} {
			want := new(testHandler)
			jstream.New(want, nil).Feed([]byte(doc))

			got := new(testHandler)
			p := jstream.New(got, &jstream.Options{ReadSize: size})
			if err := p.Parse(strings.NewReader(doc + "  \n")); err != nil {
				t.Errorf("Parse %#q (read size %d): unexpected error: %v", doc, size, err)
			}
			if diff := diffStrings(want.output(), got.output()); diff != "" {
				t.Errorf("Parse %#q (read size %d): (-want, +got)\n%s", doc, size, diff)
			}
		}
	}
}

func TestParseErrors(t *testing.T) {
	t.Run("Incomplete", func(t *testing.T) {
		err := jstream.New(nil, nil).Parse(strings.NewReader(`{"a":[1,2`))
		var serr *jstream.SyntaxError
		if !errors.As(err, &serr) || serr.Status != jstream.NoMoreData {
			t.Fatalf("Parse: got %v, want NoMoreData", err)
		}
		if !errors.Is(err, io.ErrUnexpectedEOF) {
			t.Errorf("Parse: error %v does not wrap %v", err, io.ErrUnexpectedEOF)
		}
		if serr.Offset != 9 {
			t.Errorf("Parse: offset %d, want 9", serr.Offset)
		}
	})

	t.Run("Empty", func(t *testing.T) {
		err := jstream.New(nil, nil).Parse(strings.NewReader(""))
		if !errors.Is(err, io.ErrUnexpectedEOF) {
			t.Errorf("Parse: got %v, want %v", err, io.ErrUnexpectedEOF)
		}
	})

	t.Run("TrailingContent", func(t *testing.T) {
		err := jstream.New(nil, nil).Parse(strings.NewReader(`[1] 2`))
		var serr *jstream.SyntaxError
		if !errors.As(err, &serr) || serr.Status != jstream.UnexpectedContentAfterDocument {
			t.Errorf("Parse: got %v, want UnexpectedContentAfterDocument", err)
		}
	})

	t.Run("Syntax", func(t *testing.T) {
		err := jstream.New(nil, nil).Parse(strings.NewReader(`[1,]`))
		var serr *jstream.SyntaxError
		if !errors.As(err, &serr) || serr.Status != jstream.BadValue {
			t.Errorf("Parse: got %v, want BadValue", err)
		}
		if errors.Is(err, io.ErrUnexpectedEOF) {
			t.Errorf("Parse: error %v should not wrap %v", err, io.ErrUnexpectedEOF)
		}
	})

	t.Run("Cancel", func(t *testing.T) {
		p := jstream.New(funcListener{start: func(e *jstream.Element) bool {
			return e.Type != jstream.String
		}}, nil)
		if err := p.Parse(strings.NewReader(`[1,"x",2]`)); err != jstream.ErrCancelled {
			t.Errorf("Parse: got %v, want %v", err, jstream.ErrCancelled)
		}

		// A failed parser reports its status without reading.
		if err := p.Parse(iotest.ErrReader(errors.New("unused"))); err != jstream.ErrCancelled {
			t.Errorf("Parse after cancel: got %v, want %v", err, jstream.ErrCancelled)
		}
	})

	t.Run("ReadError", func(t *testing.T) {
		bad := errors.New("bad read")
		r := io.MultiReader(strings.NewReader(`[1,`), iotest.ErrReader(bad))
		if err := jstream.New(nil, nil).Parse(r); !errors.Is(err, bad) {
			t.Errorf("Parse: got %v, want %v", err, bad)
		}
	})

	t.Run("Context", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		err := jstream.New(nil, nil).ParseContext(ctx, strings.NewReader(`[]`))
		if !errors.Is(err, context.Canceled) {
			t.Errorf("ParseContext: got %v, want %v", err, context.Canceled)
		}
	})
}

func TestParseResume(t *testing.T) {
	th := new(testHandler)
	p := jstream.New(th, nil)
	if st := p.Feed([]byte(`{"a":`)); st != jstream.Ok {
		t.Fatalf("Feed: got %v, want Ok", st)
	}
	if err := p.Parse(iotest.OneByteReader(strings.NewReader(`"b"}`))); err != nil {
		t.Fatalf("Parse: unexpected error: %v", err)
	}
	const want = `
start object 0 document[0]
start string 1 object[0] key="a" <b>
end object 0 document[0]`
	if diff := diffStrings(want, th.output()); diff != "" {
		t.Errorf("Output: (-want, +got)\n%s", diff)
	}
}
