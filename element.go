// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package jstream

import (
	"bytes"
	"fmt"

	"go4.org/mem"
)

// Type is the type of a JSON element.
type Type byte

// Constants defining the valid Type values.
const (
	Document Type = iota // the top level; appears only as a Container kind
	Object               // { ... }
	Array                // [ ... ]
	Null                 // constant: null
	True                 // constant: true
	False                // constant: false
	Number               // number, as written in the input
	String               // string, with escapes decoded
)

var typeStr = [...]string{
	Document: "document",
	Object:   "object",
	Array:    "array",
	Null:     "null",
	True:     "true",
	False:    "false",
	Number:   "number",
	String:   "string",
}

func (t Type) String() string {
	if int(t) >= len(typeStr) {
		return fmt.Sprintf("Type(%d)", byte(t))
	}
	return typeStr[t]
}

// IsContainer reports whether t is Object or Array.
func (t Type) IsContainer() bool { return t == Object || t == Array }

// A Container identifies the kind of an element's enclosing container and
// the position of the element among its siblings.
type Container struct {
	Kind  Type // Object, Array, or Document for the outermost element
	Index int  // 0-based position among siblings
}

// IsObject reports whether the enclosing container is an object.
func (c Container) IsObject() bool { return c.Kind == Object }

// An Element describes a single parse event. The parser reuses a single
// Element value, and the Key and Value slices alias its token buffer: an
// Element is only valid for the duration of the Listener call that receives
// it. A listener that needs the data afterward must copy it.
//
// Which fields are meaningful depends on the event and the Type:
//
//	Field     | StartElement                          | EndElement
//	--------- | ------------------------------------- | ---------------
//	Tag       | always                                | always
//	Type      | always                                | Object or Array
//	Level     | always                                | always
//	Container | always                                | always
//	Key       | object members only; nil otherwise    | nil
//	Value     | Number, String, True, False, Null     | nil
//
// For Object and Array start events Value is nil. For True, False and Null
// the Value is the literal text; for Number it is the number exactly as it
// appeared in the input; for String it is the content with escapes decoded.
type Element struct {
	Tag       any       // the caller's tag, see Options
	Type      Type      // the type of the element
	Level     int       // the number of containers enclosing the element
	Container Container // the enclosing container and sibling index
	Key       []byte    // the object member key, with escapes decoded
	Value     []byte    // the value text, see above
}

// HasKey reports whether e is an object member.
func (e *Element) HasKey() bool { return e.Container.Kind == Object }

// KeyIs reports whether the key of e is equal to key.
func (e *Element) KeyIs(key string) bool { return mem.B(e.Key).EqualString(key) }

// ValueIs reports whether the value text of e is equal to text.
func (e *Element) ValueIs(text string) bool { return mem.B(e.Value).EqualString(text) }

// KeyString returns a copy of the key of e.
func (e *Element) KeyString() string { return string(e.Key) }

// ValueString returns a copy of the value text of e.
func (e *Element) ValueString() string { return string(e.Value) }

// IsInteger reports whether e is a Number with no fraction or exponent.
func (e *Element) IsInteger() bool {
	return e.Type == Number && !bytes.ContainsAny(e.Value, ".eE")
}

// Int64 returns the value of a Number element as an int64. It reports an
// error if e is not a Number, or if its text is not a valid integer.
func (e *Element) Int64() (int64, error) {
	if e.Type != Number {
		return 0, fmt.Errorf("element is %v, not a number", e.Type)
	}
	return mem.ParseInt(mem.B(e.Value), 10, 64)
}

// Float64 returns the value of a Number element as a float64. It reports an
// error if e is not a Number, or if its text is not a valid number.
func (e *Element) Float64() (float64, error) {
	if e.Type != Number {
		return 0, fmt.Errorf("element is %v, not a number", e.Type)
	}
	return mem.ParseFloat(mem.B(e.Value), 64)
}

// Bool reports the truth value of e: True is true, a Number is true if it is
// non-zero, a String is true if it is non-empty. All other types are false.
func (e *Element) Bool() bool {
	switch e.Type {
	case True:
		return true
	case Number:
		v, err := e.Float64()
		return err == nil && v != 0
	case String:
		return len(e.Value) != 0
	}
	return false
}

func (e *Element) String() string {
	var sb bytes.Buffer
	fmt.Fprintf(&sb, "%v level=%d %v[%d]", e.Type, e.Level, e.Container.Kind, e.Container.Index)
	if e.HasKey() {
		fmt.Fprintf(&sb, " key=%q", e.Key)
	}
	if e.Value != nil {
		fmt.Fprintf(&sb, " value=%q", e.Value)
	}
	return sb.String()
}
