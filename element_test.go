// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package jstream_test

import (
	"testing"

	"github.com/creachadair/jstream"
	"github.com/google/go-cmp/cmp"
)

// collect parses input and returns copies of the elements reported by
// StartElement.
func collect(t *testing.T, input string) []jstream.Element {
	t.Helper()
	var out []jstream.Element
	l := funcListener{start: func(e *jstream.Element) bool {
		cp := *e
		if e.Key != nil {
			cp.Key = append([]byte{}, e.Key...)
		}
		if e.Value != nil {
			cp.Value = append([]byte{}, e.Value...)
		}
		out = append(out, cp)
		return true
	}}
	if st := jstream.New(l, nil).Feed([]byte(input)); st != jstream.EndOfDocument {
		t.Fatalf("Feed %#q: got %v, want EndOfDocument", input, st)
	}
	return out
}

func TestElementFields(t *testing.T) {
	got := collect(t, `{"a":[1,"x"],"":null}`)
	want := []jstream.Element{
		{Type: jstream.Object, Level: 0, Container: jstream.Container{Kind: jstream.Document}},
		{Type: jstream.Array, Level: 1, Container: jstream.Container{Kind: jstream.Object}, Key: []byte("a")},
		{Type: jstream.Number, Level: 2, Container: jstream.Container{Kind: jstream.Array}, Value: []byte("1")},
		{Type: jstream.String, Level: 2, Container: jstream.Container{Kind: jstream.Array, Index: 1}, Value: []byte("x")},
		{Type: jstream.Null, Level: 1, Container: jstream.Container{Kind: jstream.Object, Index: 1},
			Key: []byte{}, Value: []byte("null")},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Elements: (-want, +got)\n%s", diff)
	}
}

func TestEndElementFields(t *testing.T) {
	var got []jstream.Element
	l := funcListener{end: func(e *jstream.Element) bool {
		got = append(got, *e)
		return true
	}}
	const input = `{"a":[1,"x"],"b":{"c":null},"":[]}`
	if st := jstream.New(l, &jstream.Options{Tag: "t"}).Feed([]byte(input)); st != jstream.EndOfDocument {
		t.Fatalf("Feed: got %v, want EndOfDocument", st)
	}
	want := []jstream.Element{
		{Tag: "t", Type: jstream.Array, Level: 1, Container: jstream.Container{Kind: jstream.Object}},
		{Tag: "t", Type: jstream.Object, Level: 1, Container: jstream.Container{Kind: jstream.Object, Index: 1}},
		{Tag: "t", Type: jstream.Array, Level: 1, Container: jstream.Container{Kind: jstream.Object, Index: 2}},
		{Tag: "t", Type: jstream.Object, Level: 0, Container: jstream.Container{Kind: jstream.Document}},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("End elements: (-want, +got)\n%s", diff)
	}
	for _, e := range got {
		if e.Key != nil || e.Value != nil {
			t.Errorf("End %v: key %q, value %q; want both nil", &e, e.Key, e.Value)
		}
	}
}

func TestElementAccessors(t *testing.T) {
	es := collect(t, `{"n":-12,"f":2.5e1,"s":"","t":"hi","b":true,"z":0,"o":{}}`)
	byKey := make(map[string]*jstream.Element)
	for i := range es {
		if es[i].HasKey() {
			byKey[es[i].KeyString()] = &es[i]
		}
	}

	n := byKey["n"]
	if !n.KeyIs("n") || n.KeyIs("m") || !n.ValueIs("-12") {
		t.Errorf("KeyIs/ValueIs: unexpected result for %v", n)
	}
	if !n.IsInteger() {
		t.Errorf("IsInteger(%v): got false, want true", n)
	}
	if v, err := n.Int64(); err != nil || v != -12 {
		t.Errorf("Int64(%v): got %v, %v; want -12, nil", n, v, err)
	}

	f := byKey["f"]
	if f.IsInteger() {
		t.Errorf("IsInteger(%v): got true, want false", f)
	}
	if v, err := f.Float64(); err != nil || v != 25 {
		t.Errorf("Float64(%v): got %v, %v; want 25, nil", f, v, err)
	}
	if _, err := f.Int64(); err == nil {
		t.Errorf("Int64(%v): got nil error, want error", f)
	}

	if _, err := byKey["t"].Int64(); err == nil {
		t.Error("Int64 of a string: got nil error, want error")
	}
	if _, err := byKey["b"].Float64(); err == nil {
		t.Error("Float64 of a constant: got nil error, want error")
	}
	if got := byKey["t"].ValueString(); got != "hi" {
		t.Errorf("ValueString: got %q, want %q", got, "hi")
	}

	for key, want := range map[string]bool{
		"n": true, "f": true, "s": false, "t": true, "b": true, "z": false, "o": false,
	} {
		if got := byKey[key].Bool(); got != want {
			t.Errorf("Bool(%v): got %v, want %v", byKey[key], got, want)
		}
	}
}

func TestElementString(t *testing.T) {
	es := collect(t, `[{"k":"v"}]`)
	var got []string
	for _, e := range es {
		got = append(got, e.String())
	}
	want := []string{
		`array level=0 document[0]`,
		`object level=1 array[0]`,
		`string level=2 object[0] key="k" value="v"`,
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("String: (-want, +got)\n%s", diff)
	}
}

func TestTypeString(t *testing.T) {
	if got := jstream.Type(99).String(); got != "Type(99)" {
		t.Errorf("Type(99).String(): got %q", got)
	}
	for _, typ := range []jstream.Type{jstream.Object, jstream.Array} {
		if !typ.IsContainer() {
			t.Errorf("%v.IsContainer: got false, want true", typ)
		}
	}
	if jstream.Document.IsContainer() || jstream.String.IsContainer() {
		t.Error("IsContainer: got true for a non-container")
	}
}
